package game

// History is a bounded FIFO of replayable events. Appending at capacity
// evicts the oldest entry. It is not safe for concurrent use; the session
// guards it with its own lock.
type History[T any] struct {
	limit int
	items []T
}

func NewHistory[T any](limit int) *History[T] {
	return &History[T]{limit: limit}
}

func (h *History[T]) Append(item T) {
	if h.limit <= 0 {
		return
	}
	if len(h.items) >= h.limit {
		n := copy(h.items, h.items[1:])
		h.items = h.items[:n]
	}
	h.items = append(h.items, item)
}

// Snapshot returns the buffered events oldest-first. The returned slice is
// the caller's to keep.
func (h *History[T]) Snapshot() []T {
	out := make([]T, len(h.items))
	copy(out, h.items)
	return out
}

func (h *History[T]) Clear() {
	h.items = h.items[:0]
}

func (h *History[T]) Len() int {
	return len(h.items)
}
