package core

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-test/deep"
)

func TestStorageHash_Update(t *testing.T) {
	e := NewStorageHash()

	// create
	e.update("key", func(item *Item) *Item {
		if item != nil {
			t.Errorf("update() on empty storage: item %v != nil", item)
		}
		return NewItemBytes([]byte("v1"))
	})

	// read-modify-write sees the stored item
	e.update("key", func(item *Item) *Item {
		if item == nil || string(item.Bytes()) != "v1" {
			t.Errorf("update(): item %v, want bytes %q", item, "v1")
		}
		return NewItemBytes([]byte("v2"))
	})

	// returning nil removes the key
	e.update("key", func(item *Item) *Item {
		if item == nil || string(item.Bytes()) != "v2" {
			t.Errorf("update(): item %v, want bytes %q", item, "v2")
		}
		return nil
	})

	e.update("key", func(item *Item) *Item {
		if item != nil {
			t.Errorf("update() after removal: item %v != nil", item)
		}
		return nil
	})

	if e.Size() != 0 {
		t.Errorf("Size(): %d != 0", e.Size())
	}
}

func TestStorageHash_SizeKeys(t *testing.T) {
	data := map[string]*Item{
		"bytes": NewItemBytes([]byte("data")),
		"list":  NewItemList([][]byte{[]byte("a")}),
		"測":     NewItemBytes([]byte("測試")),
	}

	e := NewStorageHash()
	e.SetData(data)

	if e.Size() != len(data) {
		t.Errorf("Size(): %d != %d", e.Size(), len(data))
	}

	want := []string{}
	for key := range data {
		want = append(want, key)
	}

	got := e.Keys()
	sort.Strings(got)
	sort.Strings(want)

	if diff := deep.Equal(got, want); diff != nil {
		t.Errorf("Keys(): %s", diff)
	}
}

func TestStorageHash_concurrency(t *testing.T) {
	tests := [][]string{
		{"aa", "bb", "cc"},
		{"aa", "bb", "cc", "測", "測試"},
		{"測", "別れ、比類のない", "hhh"},
	}

	var keys []string
	for i := 0; i < 100; i++ {
		keys = append(keys, fmt.Sprintf("%d", rand.Uint64()))
	}
	tests = append(tests, keys)

	e := NewStorageHash()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go storageHashWorker(&wg, e, tests)
	}

	wg.Wait()

	// Due to last operation of every storageHashWorker is an insert of the last
	// keyset, after all workers done exactly the last keyset should remain
	got := e.Keys()
	want := append([]string{}, tests[len(tests)-1]...)
	sort.Strings(got)
	sort.Strings(want)
	if diff := deep.Equal(got, want); diff != nil {
		t.Errorf("Keys(): %s", diff)
	}
}

func storageHashWorker(wg *sync.WaitGroup, e *StorageHash, tests [][]string) {
	defer wg.Done()

	for _, keys := range tests {
		for _, key := range keys {
			item := NewItemBytes([]byte(time.Now().String()))
			e.update(key, func(*Item) *Item { return item })
			e.update(key, func(got *Item) *Item { return got })
		}
		e.Size()
		e.Keys()
		for _, key := range keys {
			e.update(key, func(*Item) *Item { return nil })
		}
	}

	keys := tests[len(tests)-1]
	for _, key := range keys {
		item := NewItemBytes([]byte(time.Now().String()))
		e.update(key, func(*Item) *Item { return item })
	}
}
