package presenter

// rowCache holds the visible range, the row count and the row data known for
// the visible range. rows[i] is the row at the absolute index pageStart+i;
// len(rows) never exceeds pageSize.
type rowCache[T any] struct {
	pageStart     int
	pageSize      int
	rowCount      int
	rowCountExact bool
	rows          []Slot[T]
}

func (c *rowCache[T]) clone() rowCache[T] {
	d := *c
	d.rows = append([]Slot[T](nil), c.rows...)
	return d
}

func (c *rowCache[T]) visibleRange() Range { return Range{c.pageStart, c.pageSize} }

// expectedSize returns the number of rows the current page can hold given the
// row count.
func (c *rowCache[T]) expectedSize() int {
	return max(0, min(c.pageSize, c.rowCount-c.pageStart))
}

func (c *rowCache[T]) slot(i int) Slot[T] {
	if 0 <= i && i < len(c.rows) {
		return c.rows[i]
	}
	return Slot[T]{}
}

// setData merges values, the first of which is at the absolute index start,
// into the part of the cache that overlaps the page. It returns the absolute
// range of slots that were replaced or padded, and false if
// the values were ignored because they do not touch the page.
func (c *rowCache[T]) setData(start int, values []T) (Range, bool) {
	valuesEnd := start + len(values)
	pageEnd := c.pageStart + c.pageSize
	boundedStart := max(c.pageStart, start)
	boundedEnd := min(pageEnd, valuesEnd)
	if start != c.pageStart && boundedStart >= boundedEnd {
		return Range{}, false
	}
	// Slots between the end of the known data and the new values become
	// placeholders.
	cacheOffset := max(0, boundedStart-c.pageStart-len(c.rows))
	for i := 0; i < cacheOffset; i++ {
		c.rows = append(c.rows, Slot[T]{})
	}
	for i := boundedStart; i < boundedEnd; i++ {
		v := SlotOf(values[i-start])
		if rel := i - c.pageStart; rel < len(c.rows) {
			c.rows[rel] = v
		} else {
			c.rows = append(c.rows, v)
		}
	}
	return Range{boundedStart - cacheOffset, max(0, boundedEnd-boundedStart) + cacheOffset}, true
}

// shift moves the start of the page to start, keeping the rows that are
// still on a page of the given length. When the page moves backwards by less
// than that length, placeholders are inserted in front of the kept rows and
// their absolute range is returned with true.
func (c *rowCache[T]) shift(start, length int) (Range, bool) {
	if start == c.pageStart {
		return Range{}, false
	}
	if start > c.pageStart {
		if increase := start - c.pageStart; len(c.rows) > increase {
			c.rows = append(c.rows[:0:0], c.rows[increase:]...)
		} else {
			c.rows = nil
		}
		c.pageStart = start
		return Range{}, false
	}
	decrease := c.pageStart - start
	c.pageStart = start
	if len(c.rows) > 0 && decrease < length {
		rows := make([]Slot[T], decrease, decrease+len(c.rows))
		c.rows = append(rows, c.rows...)
		return Range{start, decrease}, true
	}
	c.rows = nil
	return Range{}, false
}

// trim drops the rows that can no longer be on the page given the page size
// and the row count. It returns the absolute range of the dropped rows.
func (c *rowCache[T]) trim() Range {
	n := c.expectedSize()
	if len(c.rows) <= n {
		return Range{}
	}
	dropped := Range{c.pageStart + n, len(c.rows) - n}
	c.rows = c.rows[:n:n]
	return dropped
}
