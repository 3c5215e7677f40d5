package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jcmexdev/workshop-storefront/internal/api"
	"github.com/jcmexdev/workshop-storefront/internal/pkg/cache"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/ports"
)

type fakeAuth struct {
	ports.AuthService
	logoutErr error
	loggedOut string
}

func (f *fakeAuth) Logout(_ context.Context, token string) error {
	f.loggedOut = token
	return f.logoutErr
}

func newManager(t *testing.T, auth ports.AuthService) (*Manager, *cache.MemoryCache) {
	t.Helper()
	c := cache.NewMemoryCache("storefront")
	m := NewManager(Options{CookieName: "sf", Secret: "0123456789abcdef0123456789abcdef", TokenTTL: time.Hour}, c, auth)
	return m, c
}

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("api-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func TestResolve_IssuesAndReusesCookie(t *testing.T) {
	m, _ := newManager(t, nil)

	rec := httptest.NewRecorder()
	id, err := m.Resolve(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil || id == "" {
		t.Fatalf("resolve: %q %v", id, err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || !cookies[0].HttpOnly {
		t.Fatalf("expected one http-only cookie, got %+v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	again, err := m.Resolve(httptest.NewRecorder(), req)
	if err != nil || again != id {
		t.Fatalf("expected the same session id, got %q (%v)", again, err)
	}

	forged := httptest.NewRequest(http.MethodGet, "/", nil)
	forged.AddCookie(&http.Cookie{Name: "sf", Value: "garbage"})
	other, err := m.Resolve(httptest.NewRecorder(), forged)
	if err != nil || other == "" || other == id {
		t.Fatalf("expected a fresh session for a bad cookie, got %q (%v)", other, err)
	}
}

func TestToken_StoreAndInvalidate(t *testing.T) {
	m, _ := newManager(t, nil)
	ctx := context.Background()

	var dropped string
	m.OnInvalidate(func(id string) { dropped = id })

	if err := m.SetToken(ctx, "s1", "opaque-token"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if tok, _ := m.Token(ctx, "s1"); tok != "opaque-token" {
		t.Fatalf("expected opaque token kept, got %q", tok)
	}

	m.Invalidate(ctx, "s1")
	if tok, _ := m.Token(ctx, "s1"); tok != "" {
		t.Fatalf("expected no token, got %q", tok)
	}
	if dropped != "s1" {
		t.Fatalf("expected invalidation hook to run")
	}
}

func TestToken_ExpiredJWTIsInvalidated(t *testing.T) {
	m, _ := newManager(t, nil)
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	tok := signed(t, now.Add(10*time.Minute))
	if err := m.SetToken(ctx, "s1", tok); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := m.Token(ctx, "s1"); got != tok {
		t.Fatalf("expected a live token")
	}

	now = now.Add(11 * time.Minute)
	if got, _ := m.Token(ctx, "s1"); got != "" {
		t.Fatalf("expected expired token to be dropped")
	}
}

func TestLogout_ClearsEvenWhenRemoteFails(t *testing.T) {
	auth := &fakeAuth{logoutErr: errors.New("503")}
	m, _ := newManager(t, auth)
	ctx := context.Background()
	m.SetToken(ctx, "s1", "tok")

	if err := m.Logout(ctx, "s1"); err == nil {
		t.Fatalf("expected the remote error to be reported")
	}
	if auth.loggedOut != "tok" {
		t.Fatalf("expected the API to be told, got %q", auth.loggedOut)
	}
	if got, _ := m.Token(ctx, "s1"); got != "" {
		t.Fatalf("token must be removed after logout")
	}
}

func TestContextTokens(t *testing.T) {
	ctx := WithSession(context.Background(), "s1", "tok")
	if IDFromContext(ctx) != "s1" || (ContextTokens{}).Token(ctx) != "tok" {
		t.Fatalf("unexpected context values")
	}
	if (ContextTokens{}).Token(context.Background()) != "" {
		t.Fatalf("expected empty token without a session")
	}
}

type fakeContent struct {
	ports.ContentService
	calls atomic.Int32
	err   error
}

func (f *fakeContent) Settings(context.Context, string) (*entity.Settings, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &entity.Settings{WhatsApp: "971500000"}, nil
}

func TestSettings_FetchedOnce(t *testing.T) {
	content := &fakeContent{}
	s := NewSettings(content, cache.NewMemoryCache("storefront"), time.Hour)

	for i := 0; i < 3; i++ {
		got, err := s.Get(context.Background(), "")
		if err != nil || got.WhatsApp != "971500000" {
			t.Fatalf("get: %+v %v", got, err)
		}
	}
	if n := content.calls.Load(); n != 1 {
		t.Fatalf("expected one remote call, got %d", n)
	}
}

func TestSettings_UnauthorizedIsNotAnError(t *testing.T) {
	content := &fakeContent{err: &api.Error{Status: http.StatusUnauthorized}}
	s := NewSettings(content, cache.NewMemoryCache("storefront"), time.Hour)

	got, err := s.Get(context.Background(), "stale")
	if err != nil || got != nil {
		t.Fatalf("expected nil settings and no error, got %+v %v", got, err)
	}

	content.err = errors.New("dial tcp: refused")
	if _, err := s.Get(context.Background(), ""); err == nil {
		t.Fatalf("expected transport errors to surface")
	}
}
