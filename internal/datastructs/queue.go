package queue

import (
	"sync"
)

// CQueue is an unbounded FIFO queue whose Dequeue blocks until a value is
// available or the queue is closed.
type CQueue[T any] struct {
	data   []T
	closed bool

	lock     *sync.Mutex
	notEmpty *sync.Cond
}

func NewCQueue[T any]() *CQueue[T] {
	var lock sync.Mutex
	return &CQueue[T]{
		data:     make([]T, 0),
		notEmpty: sync.NewCond(&lock),
		lock:     &lock,
	}
}

// Enqueue appends value. It reports false if the queue is closed.
func (q *CQueue[T]) Enqueue(value T) bool {
	q.lock.Lock()
	defer q.lock.Unlock()

	if q.closed {
		return false
	}
	q.data = append(q.data, value)
	q.notEmpty.Signal()
	return true
}

// Dequeue removes the oldest value. After Close it keeps returning queued
// values and then reports false once the queue is drained.
func (q *CQueue[T]) Dequeue() (T, bool) {
	q.lock.Lock()
	defer q.lock.Unlock()

	for len(q.data) == 0 && !q.closed {
		q.notEmpty.Wait()
	}

	var res T
	if len(q.data) == 0 {
		return res, false
	}
	res = q.data[0]
	q.data = q.data[1:]
	return res, true
}

func (q *CQueue[T]) Len() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	return len(q.data)
}

// Close stops accepting values and wakes every blocked Dequeue.
func (q *CQueue[T]) Close() {
	q.lock.Lock()
	defer q.lock.Unlock()

	q.closed = true
	q.notEmpty.Broadcast()
}
