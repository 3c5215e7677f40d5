// Package session is the visitor's application context: which visitor a
// request belongs to, the login token stored for them, and the site
// settings shared by everyone.
//
// The browser only holds a signed cookie with an opaque session id. The
// token itself lives in the cache under that id.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/jcmexdev/workshop-storefront/internal/pkg/cache"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/ports"
)

const sessionIDKey = "sid"

type Options struct {
	CookieName string
	Secret     string
	TokenTTL   time.Duration
	Secure     bool
}

// Manager resolves sessions and their tokens.
type Manager struct {
	store      *sessions.CookieStore
	cookieName string
	cache      cache.Cache
	tokenTTL   time.Duration
	auth       ports.AuthService
	now        func() time.Time

	mu           sync.RWMutex
	onInvalidate []func(sessionID string)
}

func NewManager(opts Options, c cache.Cache, auth ports.AuthService) *Manager {
	store := sessions.NewCookieStore([]byte(opts.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(opts.TokenTTL.Seconds()),
		Secure:   opts.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{
		store:      store,
		cookieName: opts.CookieName,
		cache:      c,
		tokenTTL:   opts.TokenTTL,
		auth:       auth,
		now:        time.Now,
	}
}

// OnInvalidate registers fn to run whenever a session loses its token.
func (m *Manager) OnInvalidate(fn func(sessionID string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onInvalidate = append(m.onInvalidate, fn)
}

// Resolve returns the session id of r, issuing a new cookie on w when the
// request has none or it cannot be decoded.
func (m *Manager) Resolve(w http.ResponseWriter, r *http.Request) (string, error) {
	sess, err := m.store.Get(r, m.cookieName)
	if err != nil {
		// tampered or rotated secret; Get still returns a fresh session
		slog.DebugContext(r.Context(), "discarding undecodable session cookie", "error", err)
	}

	if id, ok := sess.Values[sessionIDKey].(string); ok && id != "" {
		return id, nil
	}

	id := uuid.NewString()
	sess.Values[sessionIDKey] = id
	if err := sess.Save(r, w); err != nil {
		return "", fmt.Errorf("session: save cookie: %w", err)
	}
	return id, nil
}

// Token returns the stored token of sessionID, or "" when there is none.
// An expired JWT is removed and reported as "".
func (m *Manager) Token(ctx context.Context, sessionID string) (string, error) {
	token, err := m.cache.Get(ctx, m.tokenKey(sessionID))
	if err != nil {
		return "", fmt.Errorf("session: read token: %w", err)
	}
	if token == "" {
		return "", nil
	}
	if tokenExpired(token, m.now()) {
		slog.InfoContext(ctx, "stored token expired, invalidating session")
		m.Invalidate(ctx, sessionID)
		return "", nil
	}
	return token, nil
}

// SetToken stores token for sessionID. The entry lives as long as the JWT
// does, capped by the configured TTL.
func (m *Manager) SetToken(ctx context.Context, sessionID, token string) error {
	ttl := m.tokenTTL
	if exp, ok := tokenExpiry(token); ok {
		if left := exp.Sub(m.now()); left > 0 && left < ttl {
			ttl = left
		}
	}
	if err := m.cache.Set(ctx, m.tokenKey(sessionID), token, ttl); err != nil {
		return fmt.Errorf("session: store token: %w", err)
	}
	return nil
}

// Invalidate removes the token of sessionID and runs the invalidation
// hooks. Cache failures are logged, never returned.
func (m *Manager) Invalidate(ctx context.Context, sessionID string) {
	if err := m.cache.Delete(ctx, m.tokenKey(sessionID)); err != nil {
		slog.ErrorContext(ctx, "failed to delete session token", "error", err)
	}

	m.mu.RLock()
	hooks := append([]func(string){}, m.onInvalidate...)
	m.mu.RUnlock()
	for _, fn := range hooks {
		fn(sessionID)
	}
}

// Logout tells the API the token is no longer used, then invalidates the
// session whether or not the API call succeeded.
func (m *Manager) Logout(ctx context.Context, sessionID string) error {
	token, err := m.Token(ctx, sessionID)
	if err != nil {
		slog.WarnContext(ctx, "logout: could not read token", "error", err)
	}

	var logoutErr error
	if token != "" && m.auth != nil {
		if logoutErr = m.auth.Logout(ctx, token); logoutErr != nil {
			slog.WarnContext(ctx, "remote logout failed, clearing local session anyway", "error", logoutErr)
		}
	}

	m.Invalidate(ctx, sessionID)
	return logoutErr
}

func (m *Manager) tokenKey(sessionID string) string {
	return m.cache.GenerateKey("session", sessionID)
}
