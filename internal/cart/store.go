package cart

import (
	"sync"

	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/domain/entity"
)

// Store is a visitor's local cart. Every write bumps a generation counter,
// which lets a caller tell whether the list changed since it last looked.
type Store struct {
	mu    sync.Mutex
	items []entity.CartItem
	gen   uint64
}

func NewStore() *Store {
	return &Store{}
}

// Items returns a copy of the current list.
func (s *Store) Items() []entity.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return entity.CloneItems(s.items)
}

// View returns the list with its totals.
func (s *Store) View() entity.CartView {
	return entity.NewCartView(s.Items())
}

func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Clear empties the list.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.gen++
}

// Mutate applies fn to a copy of the list and stores the result. It returns
// the list as it was before and the generation fn produced.
func (s *Store) Mutate(fn func(items []entity.CartItem) []entity.CartItem) (before []entity.CartItem, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before = entity.CloneItems(s.items)
	s.items = fn(entity.CloneItems(s.items))
	s.gen++
	return before, s.gen
}

// ReplaceIf stores items only when the generation is still expected, i.e.
// no local write happened since the caller observed it.
func (s *Store) ReplaceIf(items []entity.CartItem, expected uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != expected {
		return false
	}
	s.items = entity.CloneItems(items)
	s.gen++
	return true
}

// Rollback undoes a write that produced generation gen. When nothing was
// written since, the whole snapshot is restored. Otherwise only partial is
// applied so later writes survive.
func (s *Store) Rollback(snapshot []entity.CartItem, gen uint64, partial func(items []entity.CartItem) []entity.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen == gen {
		s.items = entity.CloneItems(snapshot)
	} else {
		s.items = partial(entity.CloneItems(s.items))
	}
	s.gen++
}

func indexOf(items []entity.CartItem, id int64) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func insertAt(items []entity.CartItem, i int, item entity.CartItem) []entity.CartItem {
	if i < 0 {
		i = 0
	}
	if i > len(items) {
		i = len(items)
	}
	items = append(items, entity.CartItem{})
	copy(items[i+1:], items[i:])
	items[i] = item
	return items
}
