package core

import (
	"sync"

	"github.com/OneOfOne/xxhash"
)

const (
	bucketsCount = 1024
)

//For in-memory storage (not on disc) hashmap should be faster thar b-tree
// hashmap sharding gives significant performance boost on wide keyspace
type StorageHash struct {
	mu [bucketsCount]sync.Mutex

	data [bucketsCount]map[string]*Item
}

// NewStorageHash constructs new StorageHash instance
func NewStorageHash() *StorageHash {
	s := &StorageHash{}
	for i := range s.data {
		s.data[i] = make(map[string]*Item)
	}
	return s
}

// update runs fn with exclusive access to the bucket holding key.
// fn receives the current Item mapped to key (nil if the key is absent) and
// returns its replacement; returning nil removes the key. A whole command is
// one update call, so per-command atomicity holds across all sessions.
// fn must not block.
func (e *StorageHash) update(key string, fn func(item *Item) *Item) {
	b := getBucket(key)
	e.mu[b].Lock()

	if item := fn(e.data[b][key]); item != nil {
		e.data[b][key] = item
	} else {
		delete(e.data[b], key)
	}

	e.mu[b].Unlock()
}

// Size returns the count of items currently stored, expired ones included.
func (e *StorageHash) Size() (count int) {
	for b := range e.data {
		e.mu[b].Lock()
		count += len(e.data[b])
		e.mu[b].Unlock()
	}

	return count
}

// Keys returns all keys existing in the Storage
func (e *StorageHash) Keys() (keys []string) {
	totalLen := 0
	for b := range e.data {
		e.mu[b].Lock()
		totalLen += len(e.data[b])
		e.mu[b].Unlock()
	}

	//add 1% to avoid whole keys slice reallocation when couple of items added
	keys = make([]string, 0, totalLen+totalLen/100)
	for b := range e.data {
		e.mu[b].Lock()
		for k := range e.data[b] {
			keys = append(keys, k)
		}
		e.mu[b].Unlock()
	}

	return keys
}

func getBucket(key string) int {
	return int(xxhash.ChecksumString64(key) % bucketsCount)
}
