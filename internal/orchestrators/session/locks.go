package session

import "sync"

// sessionLock serializes every mutation of one session
type sessionLock struct {
	mu sync.Mutex
	// resolving is guarded by mu and marks a round whose generation is in flight
	resolving bool
	// refs is guarded by the registry mutex
	refs int
}

// lockRegistry hands out one lock per session id and forgets idle ones
type lockRegistry struct {
	mu      sync.Mutex
	entries map[string]*sessionLock
}

func newLockRegistry() *lockRegistry {
	return &lockRegistry{entries: make(map[string]*sessionLock)}
}

// acquire returns the locked lock for id
func (r *lockRegistry) acquire(id string) *sessionLock {
	r.mu.Lock()
	l, ok := r.entries[id]
	if !ok {
		l = &sessionLock{}
		r.entries[id] = l
	}
	l.refs++
	r.mu.Unlock()

	l.mu.Lock()
	return l
}

// release unlocks l and drops the reference taken by acquire
func (r *lockRegistry) release(id string, l *sessionLock) {
	l.mu.Unlock()
	r.drop(id, l)
}

// retain keeps l registered across an unlocked window
func (r *lockRegistry) retain(l *sessionLock) {
	r.mu.Lock()
	l.refs++
	r.mu.Unlock()
}

func (r *lockRegistry) drop(id string, l *sessionLock) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.refs--
	if l.refs == 0 && r.entries[id] == l {
		delete(r.entries, id)
	}
}

func (r *lockRegistry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
