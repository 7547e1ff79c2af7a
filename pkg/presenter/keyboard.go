package presenter

// SetKeyboardSelectionPolicy sets the keyboard selection policy.
func (p *Presenter[T]) SetKeyboardSelectionPolicy(policy KeyboardSelectionPolicy) error {
	if policy == p.kbSelectionPolicy {
		return nil
	}
	p.kbSelectionPolicy = policy
	_, err := p.ensurePending()
	return err
}

// SetKeyboardPagingPolicy sets the keyboard paging policy.
func (p *Presenter[T]) SetKeyboardPagingPolicy(policy KeyboardPagingPolicy) {
	p.kbPagingPolicy = policy
}

// SetKeyboardSelectedRow moves keyboard selection to the page-relative
// index. An index beyond the page changes the visible range according to
// the keyboard paging policy. Unless forceUpdate is true, selecting the row
// that is already selected does nothing.
func (p *Presenter[T]) SetKeyboardSelectedRow(index int, stealFocus, forceUpdate bool) error {
	if p.kbSelectionPolicy == KeyboardDisabled {
		return nil
	}
	if p.kbPagingPolicy.LimitedToRange() {
		index = max(0, min(index, p.RowDataSize()-1))
	}
	pending, err := p.ensurePending()
	if err != nil {
		return err
	}
	pending.viewTouched = true
	if !forceUpdate && index == pending.kbRow && pending.kbValue.Known {
		return nil
	}

	pageStart, pageSize := pending.pageStart, pending.pageSize
	rowCount := pending.rowCount
	absIndex := pageStart + index
	if absIndex >= rowCount && pending.rowCountExact {
		absIndex = rowCount - 1
	}
	index = max(0, absIndex) - pageStart
	if p.kbPagingPolicy.LimitedToRange() {
		index = max(0, min(index, pageSize-1))
	}

	pending.kbRow = 0
	pending.kbValue = Slot[T]{}
	pending.kbRowChanged = true
	if 0 <= index && index < pageSize {
		pending.kbRow = index
		pending.kbValue = pending.slot(index)
		pending.kbStealFocus = stealFocus
		return nil
	}

	switch p.kbPagingPolicy {
	case ChangePage:
		if pageSize <= 0 {
			return nil
		}
		for index < 0 {
			pageStart -= pageSize
			index += pageSize
		}
		for index >= pageSize {
			pageStart += pageSize
			index -= pageSize
		}
		if pageStart < 0 {
			index += pageStart
			pageStart = 0
		}
	case IncreaseRange:
		for index < 0 {
			pageSize += p.cfg.PageIncrement
			pageStart -= p.cfg.PageIncrement
			index += p.cfg.PageIncrement
		}
		if pageStart < 0 {
			index += pageStart
			pageSize += pageStart
			pageStart = 0
		}
		for index >= pageSize {
			pageSize += p.cfg.PageIncrement
		}
		if pending.rowCountExact {
			pageSize = min(pageSize, rowCount-pageStart)
			if index >= rowCount {
				index = rowCount - 1
			}
		}
	}

	if pageStart != pending.pageStart || pageSize != pending.pageSize {
		if err := p.SetVisibleRange(Range{pageStart, max(0, pageSize)}); err != nil {
			return err
		}
	}
	pending.kbRow = max(0, index)
	pending.kbValue = Slot[T]{}
	pending.kbStealFocus = stealFocus
	return nil
}

// ClearKeyboardSelectedRowValue forgets the value of the keyboard-selected
// row, so that the next resolution pass does not look for it in new data.
func (p *Presenter[T]) ClearKeyboardSelectedRowValue() error {
	if !p.current().kbValue.Known {
		return nil
	}
	pending, err := p.ensurePending()
	if err != nil {
		return err
	}
	pending.kbValue = Slot[T]{}
	return nil
}

// HasKeyboardNext reports whether keyboard selection can move to a next row.
func (p *Presenter[T]) HasKeyboardNext() bool {
	if p.kbSelectionPolicy == KeyboardDisabled {
		return false
	}
	s := p.current()
	if s.kbRow < len(s.rows)-1 {
		return true
	}
	if p.kbPagingPolicy.LimitedToRange() {
		return false
	}
	return !s.rowCountExact || s.pageStart+s.kbRow < s.rowCount-1
}

// HasKeyboardPrev reports whether keyboard selection can move to a previous
// row.
func (p *Presenter[T]) HasKeyboardPrev() bool {
	if p.kbSelectionPolicy == KeyboardDisabled {
		return false
	}
	s := p.current()
	if s.kbRow > 0 {
		return true
	}
	return !p.kbPagingPolicy.LimitedToRange() && s.pageStart > 0
}

// KeyboardNext moves keyboard selection to the next row.
func (p *Presenter[T]) KeyboardNext() error {
	if !p.HasKeyboardNext() {
		return nil
	}
	return p.SetKeyboardSelectedRow(p.current().kbRow+1, true, false)
}

// KeyboardPrev moves keyboard selection to the previous row.
func (p *Presenter[T]) KeyboardPrev() error {
	if !p.HasKeyboardPrev() {
		return nil
	}
	return p.SetKeyboardSelectedRow(p.current().kbRow-1, true, false)
}

// KeyboardNextPage moves keyboard selection one page down. It does nothing
// under CurrentPage.
func (p *Presenter[T]) KeyboardNextPage() error {
	s := p.current()
	switch p.kbPagingPolicy {
	case ChangePage:
		return p.SetKeyboardSelectedRow(s.pageSize, true, false)
	case IncreaseRange:
		return p.SetKeyboardSelectedRow(s.kbRow+p.cfg.PageIncrement, true, false)
	}
	return nil
}

// KeyboardPrevPage moves keyboard selection one page up. It does nothing
// under CurrentPage.
func (p *Presenter[T]) KeyboardPrevPage() error {
	s := p.current()
	switch p.kbPagingPolicy {
	case ChangePage:
		return p.SetKeyboardSelectedRow(-s.pageSize, true, false)
	case IncreaseRange:
		return p.SetKeyboardSelectedRow(s.kbRow-p.cfg.PageIncrement, true, false)
	}
	return nil
}

// KeyboardHome moves keyboard selection to the first row of the dataset.
func (p *Presenter[T]) KeyboardHome() error {
	if p.kbPagingPolicy.LimitedToRange() {
		return nil
	}
	return p.SetKeyboardSelectedRow(-p.current().pageStart, true, false)
}

// KeyboardEnd moves keyboard selection to the last row of the dataset.
func (p *Presenter[T]) KeyboardEnd() error {
	if p.kbPagingPolicy.LimitedToRange() {
		return nil
	}
	s := p.current()
	return p.SetKeyboardSelectedRow(s.rowCount-1-s.pageStart, true, false)
}
