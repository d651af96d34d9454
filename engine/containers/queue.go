package containers

import "sync"

// Queue is a concurrent multi-producer queue. Any number of goroutines may
// Push while a single consumer drains; items pushed during a drain simply
// land in the next snapshot.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{}
}

// Push adds an element to the back of the queue.
func (q *Queue[T]) Push(value T) {
	q.mu.Lock()
	q.items = append(q.items, value)
	q.mu.Unlock()
}

// Drain removes and returns a snapshot of all queued elements in FIFO
// order. The returned slice is owned by the caller.
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	items := q.items
	q.items = nil
	q.mu.Unlock()
	return items
}

// Len reports the number of currently queued elements.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// IsEmpty checks if the queue is empty.
func (q *Queue[T]) IsEmpty() bool {
	return q.Len() == 0
}
