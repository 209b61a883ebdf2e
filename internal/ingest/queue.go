package ingest

import (
	"sync"

	"github.com/led-robster/process-logger/internal/logstore"
)

// Queue hands entries from the producer goroutine to the consumer. Push
// never blocks and never drops; the consumer waits on Ready and then drains
// everything pending in one go.
type Queue struct {
	mu      sync.Mutex
	pending []logstore.Entry
	ready   chan struct{}
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{ready: make(chan struct{}, 1)}
}

// Push enqueues e and signals the consumer.
func (q *Queue) Push(e logstore.Entry) {
	q.mu.Lock()
	q.pending = append(q.pending, e)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
		// A wake-up is already pending; the consumer will drain e with it.
	}
}

// Ready fires at least once after every Push.
func (q *Queue) Ready() <-chan struct{} {
	return q.ready
}

// Drain removes and returns all pending entries in push order.
func (q *Queue) Drain() []logstore.Entry {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := q.pending
	q.pending = nil
	return out
}

// Len returns the number of entries waiting to be drained.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
