package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/workshop-storefront/internal/pkg/i18n"
	"github.com/jcmexdev/workshop-storefront/internal/pkg/requestid"
)

func TestAttachTracingMetadata(t *testing.T) {
	var gotID, gotKey string
	h := middleware.RequestID(AttachTracingMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = requestid.FromContext(r.Context())
		gotKey = requestid.IdempotencyKey(r.Context())
	})))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-1")
	req.Header.Set(requestid.HeaderXIdempotencyKey, "idem-7")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if gotID != "abc-1" || gotKey != "idem-7" {
		t.Fatalf("unexpected ids %q %q", gotID, gotKey)
	}
	if rec.Header().Get(requestid.HeaderXRequestId) != "abc-1" {
		t.Fatalf("expected the request id echoed back")
	}
}

func TestLanguage(t *testing.T) {
	cases := []struct {
		header, query, want string
	}{
		{"", "", "ar"},
		{"en-US,en;q=0.9", "", "en"},
		{"fr-FR", "", "ar"},
		{"en", "ar", "ar"},
	}
	for _, tc := range cases {
		var got string
		h := Language(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = i18n.FromContext(r.Context()).String()
		}))

		target := "/"
		if tc.query != "" {
			target += "?lang=" + tc.query
		}
		req := httptest.NewRequest(http.MethodGet, target, nil)
		if tc.header != "" {
			req.Header.Set("Accept-Language", tc.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if got != tc.want || rec.Header().Get("Content-Language") != tc.want {
			t.Errorf("header %q query %q: got %q, want %q", tc.header, tc.query, got, tc.want)
		}
	}
}
