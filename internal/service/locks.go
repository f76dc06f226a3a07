package service

import "sync"

// CodeLocks provides a mutex per workshop code.  Admission and
// workshop deletion for the same code serialize on the same lock
// while unrelated codes proceed fully in parallel; there is no global
// lock around store access.  Entries are reference counted and removed
// once the last holder releases, so the map stays bounded by the
// number of codes currently in flight.
type CodeLocks struct {
	mu    sync.Mutex
	locks map[string]*codeLock
}

type codeLock struct {
	mu   sync.Mutex
	refs int
}

// NewCodeLocks returns an empty lock set.  A single instance must be
// shared by every component that mutates registrations for a code.
func NewCodeLocks() *CodeLocks {
	return &CodeLocks{locks: make(map[string]*codeLock)}
}

// Lock acquires the mutex for the given code, blocking while another
// holder owns it.  The returned function releases the lock.
func (c *CodeLocks) Lock(code string) (unlock func()) {
	c.mu.Lock()
	l := c.locks[code]
	if l == nil {
		l = &codeLock{}
		c.locks[code] = l
	}
	l.refs++
	c.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		c.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(c.locks, code)
		}
		c.mu.Unlock()
	}
}
