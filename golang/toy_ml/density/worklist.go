package density

// IntIterable is the interface for iteration over a growing collection of point indices.
type IntIterable interface {
	HasNext() bool
	GetNext() int
}

// Worklist is a FIFO queue of point indices with an explicit read cursor.
// Every index is accepted at most once, so popped items are never seen again.
type Worklist struct {
	items  []int
	pos    int
	queued []bool
}

// NewWorklist creates an empty worklist for indices in [0, size).
func NewWorklist(size int) *Worklist {
	return &Worklist{queued: make([]bool, size)}
}

// Push appends the index unless it has already been queued. It reports whether the index was added.
func (w *Worklist) Push(ind int) bool {
	if w.queued[ind] {
		return false
	}
	w.queued[ind] = true
	w.items = append(w.items, ind)
	return true
}

// PushAll queues every index of the slice in order.
func (w *Worklist) PushAll(inds []int) {
	for _, ind := range inds {
		w.Push(ind)
	}
}

// GetNext returns the index under the cursor and moves the cursor forward.
func (w *Worklist) GetNext() int {
	val := w.items[w.pos]
	w.pos++
	return val
}

// HasNext checks whether there are unprocessed indices left.
func (w *Worklist) HasNext() bool {
	return w.pos < len(w.items)
}

// Processed is the number of indices popped so far.
func (w *Worklist) Processed() int {
	return w.pos
}

// Queued is the number of indices ever accepted.
func (w *Worklist) Queued() int {
	return len(w.items)
}
