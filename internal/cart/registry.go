package cart

import (
	"sync"
	"time"
)

// Registry holds one synchronizer per visitor session.
type Registry struct {
	deps Deps
	now  func() time.Time

	mu      sync.Mutex
	entries map[string]*registryEntry
}

type registryEntry struct {
	sync     *Synchronizer
	lastSeen time.Time
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{
		deps:    deps,
		now:     time.Now,
		entries: make(map[string]*registryEntry),
	}
}

// Get returns the synchronizer of sessionID, creating it on first use.
func (r *Registry) Get(sessionID string) *Synchronizer {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[sessionID]
	if !ok {
		e = &registryEntry{sync: NewSynchronizer(r.deps)}
		r.entries[sessionID] = e
	}
	e.lastSeen = r.now()
	return e.sync
}

// Drop forgets the cart of sessionID, e.g. on logout.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, sessionID)
}

// Sweep drops carts idle for longer than maxIdle and returns their
// session ids.
func (r *Registry) Sweep(maxIdle time.Duration) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxIdle)
	var evicted []string
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
