package cart

import (
	"errors"

	"github.com/jcmexdev/workshop-storefront/internal/api"
)

var (
	// ErrNotAuthenticated is returned, with no remote call, when no token
	// is stored for the visitor.
	ErrNotAuthenticated = api.ErrNotAuthenticated

	// ErrAddInFlight is returned when an add for the same product is
	// still pending.
	ErrAddInFlight = errors.New("cart: add already in flight for product")
)
