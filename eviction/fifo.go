// This file implements FIFO eviction.

package eviction

// fifo keeps keys in first-insertion order and ignores reads.
type fifo struct {
	keyOrder
}

func newFIFO() *fifo {
	return &fifo{keyOrder: newKeyOrder()}
}

// OnGet is a no-op: FIFO does not care about reads.
func (f *fifo) OnGet(string) {}

// OnPut appends k the first time it is seen. An overwrite keeps its place in line.
func (f *fifo) OnPut(k string) {
	if f.has(k) {
		return
	}
	f.pushBack(k)
}
