package core

import "github.com/mshaverdo/assert"

const dequeMinCap = 8

// deque is a growable ring buffer of byte strings with O(1) push/pop at both ends.
// The zero value is ready to use.
type deque struct {
	buf  [][]byte
	head int
	size int
}

func (d *deque) Len() int {
	return d.size
}

// At returns the i-th element counting from the front. i must be in [0, Len).
func (d *deque) At(i int) []byte {
	assert.True(0 <= i && i < d.size, "deque index out of range")
	return d.buf[(d.head+i)%len(d.buf)]
}

func (d *deque) PushFront(value []byte) {
	d.grow()
	d.head = (d.head - 1 + len(d.buf)) % len(d.buf)
	d.buf[d.head] = value
	d.size++
}

func (d *deque) PushBack(value []byte) {
	d.grow()
	d.buf[(d.head+d.size)%len(d.buf)] = value
	d.size++
}

func (d *deque) PopFront() []byte {
	assert.True(d.size > 0, "PopFront() on empty deque")

	value := d.buf[d.head]
	d.buf[d.head] = nil
	d.head = (d.head + 1) % len(d.buf)
	d.size--
	return value
}

func (d *deque) PopBack() []byte {
	assert.True(d.size > 0, "PopBack() on empty deque")

	i := (d.head + d.size - 1) % len(d.buf)
	value := d.buf[i]
	d.buf[i] = nil
	d.size--
	return value
}

// Slice returns a copy of elements [start, stop] counting from the front.
// Bounds must be normalized: 0 <= start <= stop < Len.
func (d *deque) Slice(start, stop int) [][]byte {
	assert.True(0 <= start && start <= stop && stop < d.size, "deque slice out of range")

	result := make([][]byte, 0, stop-start+1)
	for i := start; i <= stop; i++ {
		result = append(result, d.At(i))
	}
	return result
}

func (d *deque) grow() {
	if d.size < len(d.buf) {
		return
	}

	newCap := len(d.buf) * 2
	if newCap < dequeMinCap {
		newCap = dequeMinCap
	}

	buf := make([][]byte, newCap)
	for i := 0; i < d.size; i++ {
		buf[i] = d.buf[(d.head+i)%len(d.buf)]
	}
	d.buf = buf
	d.head = 0
}
