package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCQueueFIFO(t *testing.T) {
	q := NewCQueue[int]()
	for i := 1; i <= 3; i++ {
		assert.True(t, q.Enqueue(i))
	}
	assert.Equal(t, 3, q.Len())

	for want := 1; want <= 3; want++ {
		got, ok := q.Dequeue()
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestCQueueDequeueBlocksUntilEnqueue(t *testing.T) {
	q := NewCQueue[string]()
	out := make(chan string)
	go func() {
		v, _ := q.Dequeue()
		out <- v
	}()

	time.Sleep(10 * time.Millisecond)
	q.Enqueue("x")

	select {
	case v := <-out:
		assert.Equal(t, "x", v)
	case <-time.After(time.Second):
		t.Fatal("dequeue did not wake up")
	}
}

func TestCQueueCloseDrains(t *testing.T) {
	q := NewCQueue[int]()
	q.Enqueue(7)
	q.Close()

	assert.False(t, q.Enqueue(8))

	v, ok := q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok = q.Dequeue()
	assert.False(t, ok)
}
