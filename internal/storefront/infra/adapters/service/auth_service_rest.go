package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jcmexdev/workshop-storefront/internal/api"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/ports"
)

type RESTAuthService struct {
	client *api.Client
}

func NewRESTAuthService(client *api.Client) ports.AuthService {
	return &RESTAuthService{client: client}
}

var _ ports.AuthService = (*RESTAuthService)(nil)

func (s *RESTAuthService) Login(ctx context.Context, creds entity.Credentials) (*entity.AuthResult, error) {
	var res entity.AuthResult
	if _, err := s.client.Do(ctx, api.Request{Method: http.MethodPost, Path: "login", JSON: creds}, &res); err != nil {
		return nil, fmt.Errorf("rest Login: %w", err)
	}
	return &res, nil
}

func (s *RESTAuthService) Register(ctx context.Context, reg entity.Registration) (*entity.AuthResult, error) {
	var res entity.AuthResult
	if _, err := s.client.Do(ctx, api.Request{Method: http.MethodPost, Path: "register", JSON: reg}, &res); err != nil {
		return nil, fmt.Errorf("rest Register: %w", err)
	}
	return &res, nil
}

func (s *RESTAuthService) Logout(ctx context.Context, token string) error {
	if _, err := s.client.Do(ctx, api.Request{Method: http.MethodPost, Path: "logout", Token: token}, nil); err != nil {
		return fmt.Errorf("rest Logout: %w", err)
	}
	return nil
}

func (s *RESTAuthService) Countries(ctx context.Context) ([]entity.Country, error) {
	env, err := s.client.Do(ctx, api.Request{Method: http.MethodGet, Path: "countries"}, nil)
	if err != nil {
		return nil, fmt.Errorf("rest Countries: %w", err)
	}
	return decodeList[entity.Country](env.Data)
}
