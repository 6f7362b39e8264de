package provision

import "sync"

// locker serializes work on the same key
type locker struct {
	m     sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	sync.Mutex
	refs int
}

func newLocker() *locker {
	return &locker{locks: make(map[string]*lockEntry)}
}

// lock locks key and returns its unlock function
func (l *locker) lock(key string) func() {
	l.m.Lock()
	entry, ok := l.locks[key]
	if !ok {
		entry = &lockEntry{}
		l.locks[key] = entry
	}
	entry.refs++
	l.m.Unlock()

	entry.Lock()

	return func() {
		entry.Unlock()

		l.m.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, key)
		}
		l.m.Unlock()
	}
}
