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

type RESTContentService struct {
	client *api.Client
}

func NewRESTContentService(client *api.Client) ports.ContentService {
	return &RESTContentService{client: client}
}

var _ ports.ContentService = (*RESTContentService)(nil)

func (s *RESTContentService) Settings(ctx context.Context, token string) (*entity.Settings, error) {
	var settings entity.Settings
	if _, err := s.client.Do(ctx, api.Request{Method: http.MethodGet, Path: "home/settings", Token: token}, &settings); err != nil {
		return nil, fmt.Errorf("rest Settings: %w", err)
	}
	return &settings, nil
}

func (s *RESTContentService) Gallery(ctx context.Context, page int) (entity.Page[entity.GalleryImage], error) {
	items, err := list[entity.GalleryImage](ctx, s.client, api.Request{
		Path:  "drhope/gallery",
		Query: url.Values{"page": {strconv.Itoa(page)}},
	})
	if err != nil {
		return entity.Page[entity.GalleryImage]{}, fmt.Errorf("rest Gallery: %w", err)
	}
	return entity.NewRemotePage(items, page), nil
}

func (s *RESTContentService) Partners(ctx context.Context) ([]entity.Partner, error) {
	items, err := list[entity.Partner](ctx, s.client, api.Request{Path: "drhope/partners"})
	if err != nil {
		return nil, fmt.Errorf("rest Partners: %w", err)
	}
	return items, nil
}

func (s *RESTContentService) Partner(ctx context.Context, id int64) (*entity.Partner, error) {
	var partner entity.Partner
	path := "drhope/partners/" + strconv.FormatInt(id, 10)
	if _, err := s.client.Do(ctx, api.Request{Method: http.MethodGet, Path: path}, &partner); err != nil {
		return nil, fmt.Errorf("rest Partner %d: %w", id, err)
	}
	return &partner, nil
}

func (s *RESTContentService) Reviews(ctx context.Context) ([]entity.WorkshopReview, error) {
	items, err := list[entity.WorkshopReview](ctx, s.client, api.Request{Path: "drhope/reviews"})
	if err != nil {
		return nil, fmt.Errorf("rest Reviews: %w", err)
	}
	return items, nil
}

func (s *RESTContentService) Videos(ctx context.Context) ([]entity.MediaLink, error) {
	items, err := list[entity.MediaLink](ctx, s.client, api.Request{Path: "drhope/videos"})
	if err != nil {
		return nil, fmt.Errorf("rest Videos: %w", err)
	}
	return items, nil
}

func (s *RESTContentService) InstagramLives(ctx context.Context) ([]entity.MediaLink, error) {
	items, err := list[entity.MediaLink](ctx, s.client, api.Request{Path: "drhope/instagram-lives"})
	if err != nil {
		return nil, fmt.Errorf("rest InstagramLives: %w", err)
	}
	return items, nil
}

func (s *RESTContentService) RequestConsultation(ctx context.Context, token, message string) (string, error) {
	env, err := s.client.Do(ctx, api.Request{
		Method: http.MethodPost,
		Path:   "drhope/support",
		Token:  token,
		JSON:   map[string]string{"message": message},
	}, nil)
	if err != nil {
		return "", fmt.Errorf("rest RequestConsultation: %w", err)
	}
	return env.Msg, nil
}

func list[T any](ctx context.Context, client *api.Client, req api.Request) ([]T, error) {
	req.Method = http.MethodGet
	env, err := client.Do(ctx, req, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[T](env.Data)
}
