package core

import (
	"sync"

	"github.com/mshaverdo/assert"
)

// Waiter is a single-use hand-off slot held by a session suspended in a
// blocking pop. A producer fires it at most once, transferring ownership of
// one list element to the suspended session.
type Waiter struct {
	key string
	ch  chan []byte
}

func newWaiter(key string) *Waiter {
	return &Waiter{key: key, ch: make(chan []byte, 1)}
}

// Key returns the key the waiter is blocked on.
func (w *Waiter) Key() string {
	return w.key
}

// Wait suspends the caller until a producer hands over an element.
// ok is false if the waiter was aborted by session teardown.
func (w *Waiter) Wait() (value []byte, ok bool) {
	value, ok = <-w.ch
	return value, ok
}

// fire must be called with the registry lock held: delivery and queue removal
// have to be atomic with respect to deregistration.
func (w *Waiter) fire(value []byte) {
	assert.True(len(w.ch) == 0, "waiter fired twice")
	w.ch <- value
}

// waiterRegistry keeps a strict FIFO queue of waiters per key.
// A queue entry exists only while its session is suspended.
type waiterRegistry struct {
	mu     sync.Mutex
	queues map[string][]*Waiter
}

func newWaiterRegistry() *waiterRegistry {
	return &waiterRegistry{queues: make(map[string][]*Waiter)}
}

// enqueue appends w to the queue of its key.
func (r *waiterRegistry) enqueue(w *Waiter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.queues[w.key] = append(r.queues[w.key], w)
}

// fireFirst pops the oldest waiter for key and hands it the element produced
// by pop. It reports whether such a waiter existed; pop is not invoked
// otherwise.
func (r *waiterRegistry) fireFirst(key string, pop func() []byte) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	queue := r.queues[key]
	if len(queue) == 0 {
		return false
	}

	w := queue[0]
	if len(queue) == 1 {
		delete(r.queues, key)
	} else {
		r.queues[key] = queue[1:]
	}

	w.fire(pop())
	return true
}

// deregister detaches w from the registry on session teardown.
// If w is still queued, it is removed and aborted. If w has already been
// fired, the undelivered element is recovered and returned with requeue=true,
// and w is aborted as well: the caller owns the element now and should put it
// back into the keyspace.
func (r *waiterRegistry) deregister(w *Waiter) (orphan []byte, requeue bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	queue := r.queues[w.key]
	for i, queued := range queue {
		if queued != w {
			continue
		}

		queue = append(queue[:i], queue[i+1:]...)
		if len(queue) == 0 {
			delete(r.queues, w.key)
		} else {
			r.queues[w.key] = queue
		}
		close(w.ch)
		return nil, false
	}

	// not queued: either never registered or already fired
	select {
	case orphan = <-w.ch:
		close(w.ch)
		return orphan, true
	default:
		return nil, false
	}
}

// pending returns the number of waiters queued for key.
func (r *waiterRegistry) pending(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queues[key])
}
