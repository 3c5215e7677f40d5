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

type RESTWorkshopService struct {
	client *api.Client
}

func NewRESTWorkshopService(client *api.Client) ports.WorkshopService {
	return &RESTWorkshopService{client: client}
}

var _ ports.WorkshopService = (*RESTWorkshopService)(nil)

func (s *RESTWorkshopService) ListWorkshops(ctx context.Context, token string) (entity.WorkshopListing, error) {
	var listing entity.WorkshopListing
	if _, err := s.client.Do(ctx, api.Request{Method: http.MethodGet, Path: "workshops", Token: token}, &listing); err != nil {
		return entity.WorkshopListing{}, fmt.Errorf("rest ListWorkshops: %w", err)
	}
	return listing, nil
}

func (s *RESTWorkshopService) GetWorkshop(ctx context.Context, token string, id int64) (*entity.WorkshopDetails, error) {
	var details entity.WorkshopDetails
	path := "workshops/" + strconv.FormatInt(id, 10)
	if _, err := s.client.Do(ctx, api.Request{Method: http.MethodGet, Path: path, Token: token}, &details); err != nil {
		return nil, fmt.Errorf("rest GetWorkshop %d: %w", id, err)
	}
	return &details, nil
}

// Subscribe posts the subscription form. Gift and self subscriptions send
// different field sets.
func (s *RESTWorkshopService) Subscribe(ctx context.Context, token string, req entity.SubscriptionRequest) (*entity.SubscriptionResult, error) {
	form := url.Values{
		"package_id":        {strconv.FormatInt(req.PackageID, 10)},
		"subscription_type": {string(req.Type)},
		"country_id":        {strconv.FormatInt(req.CountryID, 10)},
	}
	if req.Type == entity.SubscriptionGift {
		form.Set("recipient_name", req.RecipientName)
		form.Set("recipient_phone", req.RecipientPhone)
		form.Set("message", req.Message)
	} else {
		form.Set("full_name", req.FullName)
		form.Set("email", req.Email)
		form.Set("phone", req.Phone)
	}

	var res entity.SubscriptionResult
	if _, err := s.client.Do(ctx, api.Request{
		Method:    http.MethodPost,
		Path:      "subscriptions/create",
		Token:     token,
		Multipart: form,
	}, &res); err != nil {
		return nil, fmt.Errorf("rest Subscribe: %w", err)
	}
	return &res, nil
}

func (s *RESTWorkshopService) Join(ctx context.Context, token string) (*entity.JoinInfo, error) {
	var info entity.JoinInfo
	if _, err := s.client.Do(ctx, api.Request{Method: http.MethodPost, Path: "workshop/join", Token: token}, &info); err != nil {
		return nil, fmt.Errorf("rest Join: %w", err)
	}
	return &info, nil
}
