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

type RESTProductService struct {
	client *api.Client
}

func NewRESTProductService(client *api.Client) ports.ProductService {
	return &RESTProductService{client: client}
}

var _ ports.ProductService = (*RESTProductService)(nil)

func (s *RESTProductService) ListProducts(ctx context.Context, token string, page int) (entity.Page[entity.Product], error) {
	env, err := s.client.Do(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "drhope/products",
		Token:  token,
		Query:  url.Values{"page": {strconv.Itoa(page)}},
	}, nil)
	if err != nil {
		return entity.Page[entity.Product]{}, fmt.Errorf("rest ListProducts: %w", err)
	}
	items, err := decodeList[entity.Product](env.Data)
	if err != nil {
		return entity.Page[entity.Product]{}, fmt.Errorf("rest ListProducts: %w", err)
	}
	return entity.NewRemotePage(items, page), nil
}
