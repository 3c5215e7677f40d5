// Package cart keeps a visitor's cart in step with the remote API.
//
// Removals and quantity changes are optimistic: the local list changes
// first and is rolled back if the API rejects the change. Additions wait
// for the API because the new line id is assigned remotely.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jcmexdev/workshop-storefront/internal/api"
	"github.com/jcmexdev/workshop-storefront/internal/coordinator"
	"github.com/jcmexdev/workshop-storefront/internal/pkg/i18n"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/ports"
)

// TokenSource yields the login token of the visitor being served, or ""
// when the visitor is not logged in.
type TokenSource interface {
	Token(ctx context.Context) string
}

// Deps are shared by every visitor's synchronizer.
type Deps struct {
	Service  ports.CartService
	Runner   *coordinator.Runner
	Notifier ports.Notifier
	Tokens   TokenSource
}

// Synchronizer owns one visitor's cart.
type Synchronizer struct {
	deps  Deps
	store *Store

	mu     sync.Mutex
	adding map[int64]struct{}
}

func NewSynchronizer(deps Deps) *Synchronizer {
	if deps.Notifier == nil {
		deps.Notifier = ports.NotifierFunc(func(context.Context, entity.Toast) {})
	}
	return &Synchronizer{
		deps:   deps,
		store:  NewStore(),
		adding: make(map[int64]struct{}),
	}
}

// Snapshot returns the current list with its totals.
func (s *Synchronizer) Snapshot() entity.CartView {
	return s.store.View()
}

// Clear empties the local list, e.g. after an order was placed.
func (s *Synchronizer) Clear() {
	s.store.Clear()
}

// FetchCart replaces the local list with the remote one. Failures leave the
// list untouched and are only logged.
func (s *Synchronizer) FetchCart(ctx context.Context) {
	token := s.deps.Tokens.Token(ctx)
	if token == "" {
		return
	}

	gen := s.store.Generation()
	reply, err := s.deps.Service.GetCart(ctx, token)
	if err != nil {
		slog.DebugContext(ctx, "fetch cart failed", "error", err)
		return
	}
	if !reply.HasItems {
		return
	}
	if !s.store.ReplaceIf(reply.Items, gen) {
		slog.DebugContext(ctx, "discarding stale cart fetch")
	}
}

// AddToCart adds one unit of product. A second add for the same product
// while the first is pending returns ErrAddInFlight.
func (s *Synchronizer) AddToCart(ctx context.Context, product entity.Product) error {
	token := s.deps.Tokens.Token(ctx)
	if token == "" {
		s.notify(ctx, entity.ToastError, i18n.Tc(ctx, i18n.LoginRequiredForCart))
		return ErrNotAuthenticated
	}

	if !s.beginAdd(product.ID) {
		s.notify(ctx, entity.ToastInfo, i18n.Tc(ctx, i18n.CartAddInFlight))
		return ErrAddInFlight
	}
	defer s.endAdd(product.ID)

	gen := s.store.Generation()
	reply, err := s.deps.Service.AddItem(ctx, token, product.ID, 1)
	if err != nil {
		s.fail(ctx, err, i18n.CartAddFailed, i18n.CartAddError)
		return fmt.Errorf("cart: add product %d: %w", product.ID, err)
	}

	if reply.HasItems && s.store.ReplaceIf(reply.Items, gen) {
		return nil
	}
	s.FetchCart(ctx)
	return nil
}

// RemoveFromCart removes a line locally, then remotely. If the API rejects
// the removal the line reappears where it was.
func (s *Synchronizer) RemoveFromCart(ctx context.Context, itemID int64) error {
	token := s.deps.Tokens.Token(ctx)
	if token == "" {
		s.notify(ctx, entity.ToastError, i18n.Tc(ctx, i18n.LoginRequired))
		return ErrNotAuthenticated
	}

	var (
		removed    entity.CartItem
		removedAt  = -1
		snapshot   []entity.CartItem
		appliedGen uint64
	)

	err := s.deps.Runner.Run(ctx, coordinator.Mutation{
		Name:    "cart.remove_item",
		Subject: fmt.Sprintf("cart_item:%d", itemID),
		Payload: map[string]int64{"cart_item_id": itemID},
		Apply: func() {
			snapshot, appliedGen = s.store.Mutate(func(items []entity.CartItem) []entity.CartItem {
				if i := indexOf(items, itemID); i >= 0 {
					removed, removedAt = items[i], i
					return append(items[:i], items[i+1:]...)
				}
				return items
			})
		},
		Confirm: func(ctx context.Context) error {
			_, err := s.deps.Service.RemoveItem(ctx, token, itemID)
			return err
		},
		Revert: func(context.Context) error {
			s.store.Rollback(snapshot, appliedGen, func(items []entity.CartItem) []entity.CartItem {
				if removedAt < 0 || indexOf(items, itemID) >= 0 {
					return items
				}
				return insertAt(items, removedAt, removed)
			})
			return nil
		},
	})
	if err != nil {
		s.fail(ctx, err, i18n.CartRemoveFailed, i18n.CartRemoveError)
		return fmt.Errorf("cart: %w", err)
	}
	return nil
}

// UpdateQuantity sets a line's quantity locally, recomputing its total,
// then remotely. Quantities below 1 are ignored. A rejected update restores
// the previous quantity.
func (s *Synchronizer) UpdateQuantity(ctx context.Context, itemID int64, qty int) error {
	if qty < 1 {
		return nil
	}
	token := s.deps.Tokens.Token(ctx)
	if token == "" {
		s.notify(ctx, entity.ToastError, i18n.Tc(ctx, i18n.LoginRequired))
		return ErrNotAuthenticated
	}

	var (
		previous   entity.CartItem
		found      bool
		snapshot   []entity.CartItem
		appliedGen uint64
	)

	err := s.deps.Runner.Run(ctx, coordinator.Mutation{
		Name:    "cart.update_quantity",
		Subject: fmt.Sprintf("cart_item:%d", itemID),
		Payload: map[string]int64{"cart_item_id": itemID, "quantity": int64(qty)},
		Apply: func() {
			snapshot, appliedGen = s.store.Mutate(func(items []entity.CartItem) []entity.CartItem {
				if i := indexOf(items, itemID); i >= 0 {
					previous, found = items[i], true
					items[i] = items[i].WithQuantity(qty)
				}
				return items
			})
		},
		Confirm: func(ctx context.Context) error {
			reply, err := s.deps.Service.UpdateQuantity(ctx, token, itemID, qty)
			if err != nil {
				return err
			}
			if reply.HasItems && !s.store.ReplaceIf(reply.Items, appliedGen) {
				slog.DebugContext(ctx, "discarding stale cart update reply", "cart_item_id", itemID)
			}
			return nil
		},
		Revert: func(context.Context) error {
			s.store.Rollback(snapshot, appliedGen, func(items []entity.CartItem) []entity.CartItem {
				if !found {
					return items
				}
				if i := indexOf(items, itemID); i >= 0 {
					items[i].Quantity = previous.Quantity
					items[i].ItemTotal = previous.ItemTotal
				}
				return items
			})
			return nil
		},
	})
	if err != nil {
		s.fail(ctx, err, i18n.CartUpdateFailed, i18n.CartUpdateError)
		return fmt.Errorf("cart: %w", err)
	}
	return nil
}

func (s *Synchronizer) beginAdd(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.adding[productID]; busy {
		return false
	}
	s.adding[productID] = struct{}{}
	return true
}

func (s *Synchronizer) endAdd(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.adding, productID)
}

// fail toasts the server message of a business failure, or the generic
// message for transport failures.
func (s *Synchronizer) fail(ctx context.Context, err error, failed, broken i18n.Key) {
	if !api.IsBusiness(err) && !errors.Is(err, context.Canceled) {
		slog.ErrorContext(ctx, "cart request failed", "error", err)
	}
	s.notify(ctx, entity.ToastError, api.Message(err, i18n.Tc(ctx, failed), i18n.Tc(ctx, broken)))
}

func (s *Synchronizer) notify(ctx context.Context, kind entity.ToastKind, msg string) {
	s.deps.Notifier.Notify(ctx, entity.Toast{Kind: kind, Message: msg})
}
