package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jcmexdev/workshop-storefront/internal/api"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/ports"
)

// RESTCartService talks to the cart endpoints of the remote API.
type RESTCartService struct {
	client *api.Client
}

func NewRESTCartService(client *api.Client) ports.CartService {
	return &RESTCartService{client: client}
}

var _ ports.CartService = (*RESTCartService)(nil)

func (s *RESTCartService) GetCart(ctx context.Context, token string) (entity.CartReply, error) {
	return s.call(ctx, api.Request{Method: http.MethodGet, Path: "cart", Token: token})
}

// AddItem posts a multipart form, as the cart/add endpoint expects.
func (s *RESTCartService) AddItem(ctx context.Context, token string, productID int64, quantity int) (entity.CartReply, error) {
	return s.call(ctx, api.Request{
		Method: http.MethodPost,
		Path:   "cart/add",
		Token:  token,
		Multipart: url.Values{
			"product_id": {strconv.FormatInt(productID, 10)},
			"quantity":   {strconv.Itoa(quantity)},
		},
	})
}

func (s *RESTCartService) RemoveItem(ctx context.Context, token string, itemID int64) (entity.CartReply, error) {
	return s.call(ctx, api.Request{
		Method: http.MethodDelete,
		Path:   "cart/delete-item",
		Token:  token,
		Form:   url.Values{"cart_item_id": {strconv.FormatInt(itemID, 10)}},
	})
}

func (s *RESTCartService) UpdateQuantity(ctx context.Context, token string, itemID int64, quantity int) (entity.CartReply, error) {
	return s.call(ctx, api.Request{
		Method: http.MethodPut,
		Path:   "cart/update",
		Token:  token,
		Form: url.Values{
			"items[0][cart_item_id]": {strconv.FormatInt(itemID, 10)},
			"items[0][quantity]":     {strconv.Itoa(quantity)},
		},
	})
}

func (s *RESTCartService) call(ctx context.Context, req api.Request) (entity.CartReply, error) {
	env, err := s.client.Do(ctx, req, nil)
	if err != nil {
		return entity.CartReply{}, fmt.Errorf("rest %s %s: %w", req.Method, req.Path, err)
	}
	reply, err := decodeCart(env.Data)
	if err != nil {
		return entity.CartReply{}, fmt.Errorf("rest %s %s: %w", req.Method, req.Path, err)
	}
	return reply, nil
}
