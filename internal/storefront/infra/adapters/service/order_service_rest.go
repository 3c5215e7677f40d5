package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jcmexdev/workshop-storefront/internal/api"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/ports"
)

// RESTOrderService is the adapter for the order endpoints.
type RESTOrderService struct {
	client *api.Client
}

func NewRESTOrderService(client *api.Client) ports.OrderService {
	return &RESTOrderService{client: client}
}

var _ ports.OrderService = (*RESTOrderService)(nil)

func (s *RESTOrderService) GetSummary(ctx context.Context, token string) (*entity.OrderSummary, error) {
	var summary entity.OrderSummary
	if _, err := s.client.Do(ctx, api.Request{Method: http.MethodGet, Path: "orders/summary", Token: token}, &summary); err != nil {
		return nil, fmt.Errorf("rest GetSummary: %w", err)
	}
	return &summary, nil
}

// CreateOrder places the order. Once the API reports success the order
// exists, so the data payload is read leniently and never fails the call.
func (s *RESTOrderService) CreateOrder(ctx context.Context, token string, method entity.PaymentMethod) (*entity.OrderResult, error) {
	env, err := s.client.Do(ctx, api.Request{
		Method: http.MethodPost,
		Path:   "orders/create",
		Token:  token,
		Form:   url.Values{"payment_type": {method.PaymentType()}},
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("rest CreateOrder: %w", err)
	}
	res := decodeOrder(env.Data)
	res.ServerMsg = env.Msg
	return &res, nil
}
