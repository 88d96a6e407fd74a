package core

import (
	"time"

	"github.com/mshaverdo/assert"
)

//go:generate stringer -type=ItemKind
type ItemKind int

const (
	Bytes ItemKind = iota
	List
)

// Item is a tagged value stored in the keyspace: either a byte string or a list
// of byte strings. It carries the instant of its last (re)creation and an
// optional TTL relative to that instant.
type Item struct {
	kind      ItemKind
	bytes     []byte
	list      deque
	createdAt time.Time
	ttl       time.Duration // 0 means the item never expires
}

// NewItemBytes constructs a string Item without expiration.
func NewItemBytes(bytes []byte) *Item {
	return &Item{kind: Bytes, bytes: bytes, createdAt: time.Now()}
}

// NewItemList constructs a list Item holding values front to back.
func NewItemList(values [][]byte) *Item {
	i := &Item{kind: List, createdAt: time.Now()}
	for _, v := range values {
		i.list.PushBack(v)
	}
	return i
}

func (i *Item) Kind() ItemKind {
	return i.kind
}

func (i *Item) Bytes() []byte {
	assert.True(i.kind == Bytes, "trying to get Bytes value on "+i.kind.String())
	return i.bytes
}

// SetTtl sets item expiration to ttl after the item creation instant.
func (i *Item) SetTtl(ttl time.Duration) {
	assert.True(ttl >= 0, "negative TTL")
	i.ttl = ttl
}

// IsExpiredAt reports whether the item TTL has elapsed at the instant now.
func (i *Item) IsExpiredAt(now time.Time) bool {
	return i.ttl > 0 && now.After(i.createdAt.Add(i.ttl))
}

// Ttl returns the remaining lifetime at the instant now, clamped to zero.
// ok is false if the item has no expiration.
func (i *Item) Ttl(now time.Time) (remaining time.Duration, ok bool) {
	if i.ttl == 0 {
		return 0, false
	}

	remaining = i.createdAt.Add(i.ttl).Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

func (i *Item) ListLen() int {
	assert.True(i.kind == List, "trying to get List value on "+i.kind.String())
	return i.list.Len()
}

func (i *Item) ListPushFront(value []byte) {
	assert.True(i.kind == List, "trying to get List value on "+i.kind.String())
	i.list.PushFront(value)
}

func (i *Item) ListPushBack(value []byte) {
	assert.True(i.kind == List, "trying to get List value on "+i.kind.String())
	i.list.PushBack(value)
}

func (i *Item) ListPopFront() []byte {
	assert.True(i.kind == List, "trying to get List value on "+i.kind.String())
	return i.list.PopFront()
}

func (i *Item) ListPopBack() []byte {
	assert.True(i.kind == List, "trying to get List value on "+i.kind.String())
	return i.list.PopBack()
}

// ListSlice returns a copy of list elements [start, stop], inclusive.
func (i *Item) ListSlice(start, stop int) [][]byte {
	assert.True(i.kind == List, "trying to get List value on "+i.kind.String())
	return i.list.Slice(start, stop)
}
