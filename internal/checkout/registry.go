package checkout

import (
	"sync"
	"time"
)

// Registry holds one controller per visitor session. carts resolves the
// session's local cart.
type Registry struct {
	deps  Deps
	carts func(sessionID string) Cart
	now   func() time.Time

	mu      sync.Mutex
	entries map[string]*registryEntry
}

type registryEntry struct {
	controller *Controller
	lastSeen   time.Time
}

func NewRegistry(deps Deps, carts func(sessionID string) Cart) *Registry {
	return &Registry{
		deps:    deps,
		carts:   carts,
		now:     time.Now,
		entries: make(map[string]*registryEntry),
	}
}

func (r *Registry) Get(sessionID string) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[sessionID]
	if !ok {
		e = &registryEntry{controller: NewController(r.deps, sessionCart{id: sessionID, carts: r.carts})}
		r.entries[sessionID] = e
	}
	e.lastSeen = r.now()
	return e.controller
}

func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, sessionID)
}

// Sweep drops controllers idle for longer than maxIdle and returns their
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

// sessionCart looks the cart up on every use, so a cart recreated after an
// idle sweep is still the one cleared.
type sessionCart struct {
	id    string
	carts func(sessionID string) Cart
}

func (c sessionCart) Clear() {
	if cart := c.carts(c.id); cart != nil {
		cart.Clear()
	}
}
