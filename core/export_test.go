package core

import "time"

func (e *StorageHash) SetData(data map[string]*Item) {
	for k, v := range data {
		item := v
		e.update(k, func(*Item) *Item { return item })
	}
}

// Backdate shifts the item creation instant into the past to test expiry
// without sleeping.
func (i *Item) Backdate(d time.Duration) {
	i.createdAt = i.createdAt.Add(-d)
}
