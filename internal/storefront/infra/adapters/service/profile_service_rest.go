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

type RESTProfileService struct {
	client *api.Client
}

func NewRESTProfileService(client *api.Client) ports.ProfileService {
	return &RESTProfileService{client: client}
}

var _ ports.ProfileService = (*RESTProfileService)(nil)

func (s *RESTProfileService) GetProfile(ctx context.Context, token string) (*entity.Profile, error) {
	var profile entity.Profile
	if _, err := s.client.Do(ctx, api.Request{Method: http.MethodGet, Path: "profile/details", Token: token}, &profile); err != nil {
		return nil, fmt.Errorf("rest GetProfile: %w", err)
	}
	return &profile, nil
}

func (s *RESTProfileService) SuggestWorkshops(ctx context.Context, token string) ([]entity.Workshop, error) {
	env, err := s.client.Do(ctx, api.Request{Method: http.MethodGet, Path: "profile/suggest-workshops", Token: token}, nil)
	if err != nil {
		return nil, fmt.Errorf("rest SuggestWorkshops: %w", err)
	}
	return decodeList[entity.Workshop](env.Data)
}

func (s *RESTProfileService) SubmitReview(ctx context.Context, token string, review entity.Review) (string, error) {
	env, err := s.client.Do(ctx, api.Request{
		Method: http.MethodPost,
		Path:   "profile/review",
		Token:  token,
		Multipart: url.Values{
			"subscription_id": {strconv.FormatInt(review.SubscriptionID, 10)},
			"workshop_id":     {strconv.FormatInt(review.WorkshopID, 10)},
			"rating":          {strconv.Itoa(review.Rating)},
			"review":          {review.Comment},
		},
	}, nil)
	if err != nil {
		return "", fmt.Errorf("rest SubmitReview: %w", err)
	}
	return env.Msg, nil
}

func (s *RESTProfileService) Download(ctx context.Context, token string, kind entity.DocumentKind, ref int64) (*entity.Document, error) {
	path := fmt.Sprintf("profile/subscription/%d/%s", ref, kind)
	body, contentType, err := s.client.Stream(ctx, path, token)
	if err != nil {
		return nil, fmt.Errorf("rest Download %s: %w", kind, err)
	}
	if contentType == "" {
		contentType = "application/pdf"
	}
	return &entity.Document{ContentType: contentType, Body: body}, nil
}
