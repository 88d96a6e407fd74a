package core

import (
	"time"

	"github.com/mshaverdo/assert"
)

// Core provides domain operations on the storage -- Get, Set, LPush, LBPop, etc.
// Every operation is atomic with respect to every other: the storage bucket
// guard is held for the whole read-modify-write, including waiter wake-ups.
type Core struct {
	engine  *StorageHash
	waiters *waiterRegistry
}

// New constructs new Core instance around the provided engine
func New(engine *StorageHash) *Core {
	return &Core{engine: engine, waiters: newWaiterRegistry()}
}

// Set key to hold value. An existing item of any kind is overwritten wholesale;
// creation time and TTL are reset. Zero ttl means the key never expires.
func (c *Core) Set(key string, value []byte, ttl time.Duration) {
	item := NewItemBytes(value)
	if ttl > 0 {
		item.SetTtl(ttl)
	}

	c.engine.update(key, func(*Item) *Item {
		return item
	})
}

// Get the value of key. If the key does not exist, ErrNotFound is returned.
// An item observed expired is removed in the same critical section.
func (c *Core) Get(key string) (result []byte, err error) {
	now := time.Now()

	c.engine.update(key, func(item *Item) *Item {
		switch {
		case item == nil:
			err = ErrNotFound
			return nil
		case item.IsExpiredAt(now):
			// passive expiry
			err = ErrNotFound
			return nil
		case item.Kind() != Bytes:
			err = ErrWrongType
			return item
		}

		result = item.Bytes()
		return item
	})

	return result, err
}

// Ttl returns the remaining lifetime of key in milliseconds, clamped to zero.
// A missing key and a key without expiration are both reported as -1.
func (c *Core) Ttl(key string) (ms int64) {
	now := time.Now()
	ms = -1

	c.engine.update(key, func(item *Item) *Item {
		if item == nil {
			return nil
		}
		if item.IsExpiredAt(now) {
			return nil
		}

		if remaining, ok := item.Ttl(now); ok {
			ms = int64(remaining / time.Millisecond)
		}
		return item
	})

	return ms
}

// DbSize returns the count of keys currently stored, without sweeping
// not-yet-collected expired items.
func (c *Core) DbSize() int {
	return c.engine.Size()
}

// RPush appends values to the tail of the list stored at key, creating the
// list if the key is absent, and returns the resulting length.
func (c *Core) RPush(key string, values [][]byte) (count int, err error) {
	return c.push(key, values, false)
}

// LPush inserts values at the head of the list stored at key: each value is
// prepended in argument order, so the last one ends up at index 0.
// Returns the resulting length.
func (c *Core) LPush(key string, values [][]byte) (count int, err error) {
	return c.push(key, values, true)
}

func (c *Core) push(key string, values [][]byte, front bool) (count int, err error) {
	assert.True(len(values) > 0, "push without values")
	now := time.Now()

	c.engine.update(key, func(item *Item) *Item {
		if item != nil && item.IsExpiredAt(now) {
			item = nil
		}
		if item == nil {
			item = NewItemList(nil)
		}
		if item.Kind() != List {
			err = ErrWrongType
			return item
		}

		for _, v := range values {
			if front {
				item.ListPushFront(v)
			} else {
				item.ListPushBack(v)
			}
		}
		count = item.ListLen()

		// Hand fresh heads over to blocked poppers, oldest waiter first. Each
		// hand-off pops the element a non-blocking LPop would return at that
		// point, so waiters observe the same order as a chain of LPop calls.
		for item.ListLen() > 0 && c.waiters.fireFirst(key, item.ListPopFront) {
		}

		if item.ListLen() == 0 {
			return nil
		}
		return item
	})

	return count, err
}

// LPop removes and returns the head of the list stored at key.
// A list drained to empty is removed from the keyspace in the same critical
// section.
func (c *Core) LPop(key string) (result []byte, err error) {
	c.engine.update(key, func(item *Item) *Item {
		switch {
		case item == nil:
			err = ErrNotFound
			return nil
		case item.Kind() != List:
			err = ErrWrongType
			return item
		}

		result = item.ListPopFront()
		if item.ListLen() == 0 {
			return nil
		}
		return item
	})

	return result, err
}

// LPopCount removes and returns up to count heads of the list stored at key,
// fewer if the list drains first. count must be positive.
func (c *Core) LPopCount(key string, count int) (result [][]byte, err error) {
	assert.True(count > 0, "LPopCount() with non-positive count")

	c.engine.update(key, func(item *Item) *Item {
		switch {
		case item == nil:
			err = ErrNotFound
			return nil
		case item.Kind() != List:
			err = ErrWrongType
			return item
		}

		if count > item.ListLen() {
			count = item.ListLen()
		}
		result = make([][]byte, 0, count)
		for i := 0; i < count; i++ {
			result = append(result, item.ListPopFront())
		}

		if item.ListLen() == 0 {
			return nil
		}
		return item
	})

	return result, err
}

// LLen returns the length of the list stored at key, 0 if the key is absent.
func (c *Core) LLen(key string) (count int, err error) {
	c.engine.update(key, func(item *Item) *Item {
		switch {
		case item == nil:
			return nil
		case item.Kind() != List:
			err = ErrWrongType
			return item
		}

		count = item.ListLen()
		return item
	})

	return count, err
}

// LRange returns the inclusive slice [start, stop] of the list stored at key.
// Negative indexes count from the tail: -1 is the last element. Out-of-range
// bounds are clamped to the list; an empty result is an empty slice, as is a
// missing key.
func (c *Core) LRange(key string, start, stop int) (result [][]byte, err error) {
	result = [][]byte{}

	c.engine.update(key, func(item *Item) *Item {
		switch {
		case item == nil:
			return nil
		case item.Kind() != List:
			err = ErrWrongType
			return item
		}

		length := item.ListLen()
		if start < 0 {
			start += length
		}
		if stop < 0 {
			stop += length
		}
		if start < 0 {
			start = 0
		}
		if stop > length-1 {
			stop = length - 1
		}
		if start > stop {
			return item
		}

		result = item.ListSlice(start, stop)
		return item
	})

	return result, err
}

// LBPop pops the head of the list stored at key, if there is one. Otherwise it
// registers a fresh waiter in the key queue and returns it: the caller must
// suspend on waiter.Wait() outside any keyspace guard. The presence check and
// the waiter registration are one critical section, so a concurrent push
// either ends up on the fast path here or fires the registered waiter.
func (c *Core) LBPop(key string) (result []byte, waiter *Waiter, err error) {
	now := time.Now()

	c.engine.update(key, func(item *Item) *Item {
		if item != nil && item.IsExpiredAt(now) {
			item = nil
		}
		if item == nil {
			waiter = newWaiter(key)
			c.waiters.enqueue(waiter)
			return nil
		}
		if item.Kind() != List {
			err = ErrWrongType
			return item
		}

		result = item.ListPopFront()
		if item.ListLen() == 0 {
			return nil
		}
		return item
	})

	return result, waiter, err
}

// Deregister detaches a waiter on session teardown. A still-queued waiter is
// removed and aborted; an already-fired one has its undelivered element pushed
// back to the head of its list, where it may immediately satisfy the next
// blocked popper.
func (c *Core) Deregister(w *Waiter) {
	orphan, requeue := c.waiters.deregister(w)
	if !requeue {
		return
	}

	// LPush fails only if a SET replaced the list after the hand-off; the
	// element has no list to return to then.
	_, _ = c.LPush(w.Key(), [][]byte{orphan})
}

// WaitersFor returns the count of sessions currently blocked on key.
func (c *Core) WaitersFor(key string) int {
	return c.waiters.pending(key)
}
