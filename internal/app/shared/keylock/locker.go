// Package keylock serializes work per key without a global lock.
package keylock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

type Locker struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func New() *Locker {
	return &Locker{entries: map[string]*entry{}}
}

// Lock blocks until key is free and returns the matching unlock func.
// Idle keys are dropped so the map only holds keys in use.
func (l *Locker) Lock(key string) func() {
	l.mu.Lock()
	if l.entries == nil {
		l.entries = map[string]*entry{}
	}
	e, ok := l.entries[key]
	if !ok {
		e = &entry{}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()
			l.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(l.entries, key)
			}
			l.mu.Unlock()
		})
	}
}

func (l *Locker) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
