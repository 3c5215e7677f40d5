package ports

import (
	"context"

	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/domain/entity"
)

// CartService is the remote cart. Every call needs a login token. A reply
// without HasItems leaves the local list as it is.
type CartService interface {
	GetCart(ctx context.Context, token string) (entity.CartReply, error)
	AddItem(ctx context.Context, token string, productID int64, quantity int) (entity.CartReply, error)
	RemoveItem(ctx context.Context, token string, itemID int64) (entity.CartReply, error)
	UpdateQuantity(ctx context.Context, token string, itemID int64, quantity int) (entity.CartReply, error)
}

// OrderService turns the remote cart into an order.
type OrderService interface {
	GetSummary(ctx context.Context, token string) (*entity.OrderSummary, error)
	CreateOrder(ctx context.Context, token string, method entity.PaymentMethod) (*entity.OrderResult, error)
}

// ProductService lists the boutique catalog. The token is optional.
type ProductService interface {
	ListProducts(ctx context.Context, token string, page int) (entity.Page[entity.Product], error)
}
