// Package checkout drives the move from the cart to a placed order.
//
// The controller has two states. It enters StateCheckout only once the
// server returned an order summary, and Back always returns to StateCart.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/jcmexdev/workshop-storefront/internal/api"
	"github.com/jcmexdev/workshop-storefront/internal/pkg/i18n"
	"github.com/jcmexdev/workshop-storefront/internal/pkg/requestid"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/ports"
)

type State string

const (
	StateCart     State = "cart"
	StateCheckout State = "checkout"
)

var (
	ErrNotAuthenticated = api.ErrNotAuthenticated
	// ErrBusy is returned when the same action is already in flight.
	ErrBusy = errors.New("checkout: request already in flight")
	// ErrNotInCheckout is returned when an action needs a loaded summary.
	ErrNotInCheckout = errors.New("checkout: no order summary loaded")
	// ErrMethodNotOffered is returned for a payment method the summary does
	// not offer.
	ErrMethodNotOffered = errors.New("checkout: payment method not offered")
)

// TokenSource yields the visitor's login token, or "".
type TokenSource interface {
	Token(ctx context.Context) string
}

// Cart is the local cart emptied after an order.
type Cart interface {
	Clear()
}

type Deps struct {
	Orders   ports.OrderService
	Notifier ports.Notifier
	Tokens   TokenSource
}

// View is the controller state as shown to the visitor.
type View struct {
	State         State                `json:"state"`
	Summary       *entity.OrderSummary `json:"summary,omitempty"`
	PaymentMethod entity.PaymentMethod `json:"payment_method,omitempty"`
}

// Outcome is the result of a successful submission. RedirectURL is set for
// online payments, which continue on the payment provider's page.
type Outcome struct {
	RedirectURL string `json:"redirect_url,omitempty"`
	OrderID     int64  `json:"order_id,omitempty"`
	Message     string `json:"message,omitempty"`
}

// Controller is one visitor's checkout.
type Controller struct {
	deps Deps
	cart Cart

	fetching   atomic.Bool
	submitting atomic.Bool

	mu      sync.Mutex
	state   State
	summary *entity.OrderSummary
	method  entity.PaymentMethod
}

func NewController(deps Deps, cart Cart) *Controller {
	if deps.Notifier == nil {
		deps.Notifier = ports.NotifierFunc(func(context.Context, entity.Toast) {})
	}
	return &Controller{deps: deps, cart: cart, state: StateCart}
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return View{State: c.state, Summary: c.summary, PaymentMethod: c.method}
}

// FetchOrderSummary loads the summary and enters StateCheckout. On failure
// the controller stays where it was.
func (c *Controller) FetchOrderSummary(ctx context.Context) (View, error) {
	token := c.deps.Tokens.Token(ctx)
	if token == "" {
		c.notify(ctx, entity.ToastError, i18n.Tc(ctx, i18n.LoginRequired))
		return c.View(), ErrNotAuthenticated
	}
	if !c.fetching.CompareAndSwap(false, true) {
		return c.View(), ErrBusy
	}
	defer c.fetching.Store(false)

	summary, err := c.deps.Orders.GetSummary(ctx, token)
	if err != nil {
		c.fail(ctx, err, i18n.SummaryLoadFailed, i18n.SummaryLoadError)
		return c.View(), fmt.Errorf("checkout: summary: %w", err)
	}

	c.mu.Lock()
	c.state = StateCheckout
	c.summary = summary
	c.method = summary.PaymentOptions.DefaultMethod()
	c.mu.Unlock()

	return c.View(), nil
}

// SelectPaymentMethod picks one of the methods the summary offers.
func (c *Controller) SelectPaymentMethod(ctx context.Context, m entity.PaymentMethod) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := View{State: c.state, Summary: c.summary, PaymentMethod: c.method}
	if c.state != StateCheckout || c.summary == nil {
		return view, ErrNotInCheckout
	}
	if !m.Valid() || !c.summary.PaymentOptions.Offers(m) {
		c.notify(ctx, entity.ToastError, i18n.Tc(ctx, i18n.PaymentMethodInvalid))
		return view, ErrMethodNotOffered
	}
	c.method = m
	view.PaymentMethod = m
	return view, nil
}

// Back returns to the cart and forgets the summary.
func (c *Controller) Back() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
	return View{State: c.state}
}

// Submit places the order with the selected payment method. Any success
// clears the local cart and returns to StateCart. A failure leaves the
// state unchanged.
func (c *Controller) Submit(ctx context.Context) (*Outcome, error) {
	token := c.deps.Tokens.Token(ctx)
	if token == "" {
		c.notify(ctx, entity.ToastError, i18n.Tc(ctx, i18n.LoginRequired))
		return nil, ErrNotAuthenticated
	}

	c.mu.Lock()
	state, method := c.state, c.method
	c.mu.Unlock()
	if state != StateCheckout {
		return nil, ErrNotInCheckout
	}
	if method == "" {
		c.notify(ctx, entity.ToastError, i18n.Tc(ctx, i18n.PaymentMethodInvalid))
		return nil, ErrMethodNotOffered
	}

	if !c.submitting.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer c.submitting.Store(false)

	// one key per submission unless the browser sent its own
	if requestid.IdempotencyKey(ctx) == "" {
		ctx = requestid.WithIdempotencyKey(ctx, uuid.NewString())
	}

	res, err := c.deps.Orders.CreateOrder(ctx, token, method)
	if err != nil {
		c.fail(ctx, err, i18n.OrderCreateFailed, i18n.OrderCreateError)
		return nil, fmt.Errorf("checkout: create order: %w", err)
	}

	if c.cart != nil {
		c.cart.Clear()
	}
	c.mu.Lock()
	c.reset()
	c.mu.Unlock()

	out := &Outcome{OrderID: res.OrderID}
	switch {
	case res.InvoiceURL != "":
		out.RedirectURL = res.InvoiceURL
		return out, nil
	case res.OrderID != 0:
		out.Message = res.Message
		if out.Message == "" {
			out.Message = i18n.Tc(ctx, i18n.OrderReceived)
		}
	default:
		out.Message = res.ServerMsg
		if out.Message == "" {
			out.Message = i18n.Tc(ctx, i18n.OrderCreated)
		}
	}
	c.notify(ctx, entity.ToastSuccess, out.Message)
	return out, nil
}

// reset must be called with c.mu held.
func (c *Controller) reset() {
	c.state = StateCart
	c.summary = nil
	c.method = ""
}

func (c *Controller) fail(ctx context.Context, err error, failed, broken i18n.Key) {
	if !api.IsBusiness(err) {
		slog.ErrorContext(ctx, "checkout request failed", "error", err)
	}
	c.notify(ctx, entity.ToastError, api.Message(err, i18n.Tc(ctx, failed), i18n.Tc(ctx, broken)))
}

func (c *Controller) notify(ctx context.Context, kind entity.ToastKind, msg string) {
	c.deps.Notifier.Notify(ctx, entity.Toast{Kind: kind, Message: msg})
}
