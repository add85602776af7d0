// Package keylock provides per-key mutual exclusion for int64 keys.
package keylock

import "sync"

// KeyLock hands out one mutex per key. The zero value is ready to use.
// Entries are never removed; the key space is user ids, bounded by the
// bot's audience.
type KeyLock struct {
	locks sync.Map
}

// Lock acquires the mutex for key and returns the matching unlock.
func (l *KeyLock) Lock(key int64) func() {
	v, _ := l.locks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
