package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jcmexdev/workshop-storefront/internal/api"
	"github.com/jcmexdev/workshop-storefront/internal/pkg/cache"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/ports"
)

// Settings fetches the site settings once and serves them from the cache
// until the TTL passes.
type Settings struct {
	content ports.ContentService
	cache   cache.Cache
	ttl     time.Duration
	group   singleflight.Group
}

func NewSettings(content ports.ContentService, c cache.Cache, ttl time.Duration) *Settings {
	return &Settings{content: content, cache: c, ttl: ttl}
}

// Get returns the settings. A 401 from the API is not an error: it yields
// nil settings and nothing is cached.
func (s *Settings) Get(ctx context.Context, token string) (*entity.Settings, error) {
	key := s.cache.GenerateKey("settings", "site")

	if raw, err := s.cache.Get(ctx, key); err != nil {
		slog.WarnContext(ctx, "settings cache read failed", "error", err)
	} else if raw != "" {
		var cached entity.Settings
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return &cached, nil
		}
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		settings, err := s.content.Settings(ctx, token)
		if err != nil {
			return nil, err
		}
		if b, err := json.Marshal(settings); err == nil {
			if err := s.cache.Set(ctx, key, string(b), s.ttl); err != nil {
				slog.WarnContext(ctx, "settings cache write failed", "error", err)
			}
		}
		return settings, nil
	})
	if api.IsUnauthorized(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: settings: %w", err)
	}
	return v.(*entity.Settings), nil
}

// Warm fetches the settings at start-up. Failures are logged only.
func (s *Settings) Warm(ctx context.Context) {
	if _, err := s.Get(ctx, ""); err != nil {
		slog.WarnContext(ctx, "could not preload settings", "error", err)
	}
}
