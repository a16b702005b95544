// Package dispatch provides a single-goroutine serial execution queue.
// The media engine funnels every signal delivery through one SerialQueue so
// attribute observations, session notifications and progress ticks reach
// their observers in a single total order.
package dispatch

import (
	"sync"
)

// SerialQueue runs submitted tasks one at a time, in submission order, on a
// single dedicated goroutine.
type SerialQueue struct {
	tasks chan func()

	// done is closed when the run loop has drained and exited
	done chan struct{}

	closeOnce sync.Once

	// mu guards closed so Async never sends on a closed channel
	mu     sync.RWMutex
	closed bool
}

// NewSerialQueue creates a queue and starts its run loop.
func NewSerialQueue() *SerialQueue {
	q := &SerialQueue{
		tasks: make(chan func(), 64),
		done:  make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *SerialQueue) run() {
	defer close(q.done)
	for task := range q.tasks {
		task()
	}
}

// Async submits a task for execution. Tasks run in submission order.
// Submitting to a closed queue is a no-op.
func (q *SerialQueue) Async(task func()) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return
	}
	q.tasks <- task
}

// Sync submits a task and waits for it to finish. Because tasks run in
// order, Sync with an empty task acts as a barrier: every task submitted
// before it has completed when Sync returns.
func (q *SerialQueue) Sync(task func()) {
	var wg sync.WaitGroup
	wg.Add(1)

	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return
	}
	q.tasks <- func() {
		defer wg.Done()
		task()
	}
	q.mu.RUnlock()

	wg.Wait()
}

// Close stops accepting tasks, runs the ones already submitted and waits for
// the run loop to exit. It is safe to call more than once.
func (q *SerialQueue) Close() {
	q.closeOnce.Do(func() {
		q.mu.Lock()
		q.closed = true
		close(q.tasks)
		q.mu.Unlock()
	})
	<-q.done
}
