package cells

// ViewData keeps per-row state of a cell that is not part of the row value,
// keyed by row key.
type ViewData[V any] struct {
	m map[any]V
}

// NewViewData creates an empty ViewData.
func NewViewData[V any]() *ViewData[V] { return &ViewData[V]{m: make(map[any]V)} }

// Get returns the state of a row.
func (d *ViewData[V]) Get(key any) (V, bool) {
	v, ok := d.m[key]
	return v, ok
}

// Set sets the state of a row.
func (d *ViewData[V]) Set(key any, v V) { d.m[key] = v }

// Delete removes the state of a row.
func (d *ViewData[V]) Delete(key any) { delete(d.m, key) }

// Len returns the number of rows with state.
func (d *ViewData[V]) Len() int { return len(d.m) }

// Retain drops the state of all rows whose keys are not in keys. It is
// called when rows leave the cache.
func (d *ViewData[V]) Retain(keys []any) {
	keep := make(map[any]bool, len(keys))
	for _, k := range keys {
		keep[k] = true
	}
	for k := range d.m {
		if !keep[k] {
			delete(d.m, k)
		}
	}
}

// Retainer is implemented by cells with view data.
type Retainer interface {
	Retain(keys []any)
}
