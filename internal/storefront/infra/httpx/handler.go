package httpx

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/workshop-storefront/internal/cart"
	"github.com/jcmexdev/workshop-storefront/internal/checkout"
	"github.com/jcmexdev/workshop-storefront/internal/coordinator/mutationlog"
	"github.com/jcmexdev/workshop-storefront/internal/pkg/cache"
	"github.com/jcmexdev/workshop-storefront/internal/pkg/i18n"
	"github.com/jcmexdev/workshop-storefront/internal/session"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/ports"
)

// Handler serves the storefront API used by the browser UI.
type Handler struct {
	sessions  *session.Manager
	settings  *session.Settings
	carts     *cart.Registry
	checkouts *checkout.Registry

	auth      ports.AuthService
	products  ports.ProductService
	workshops ports.WorkshopService
	profile   ports.ProfileService
	content   ports.ContentService
	health    cache.Pinger
	journal   mutationlog.Reader
}

type Deps struct {
	Sessions  *session.Manager
	Settings  *session.Settings
	Carts     *cart.Registry
	Checkouts *checkout.Registry

	Auth      ports.AuthService
	Products  ports.ProductService
	Workshops ports.WorkshopService
	Profile   ports.ProfileService
	Content   ports.ContentService
	// Health is pinged by /healthz. Optional.
	Health cache.Pinger
	// Journal serves /debug/mutations/{id}. Optional.
	Journal mutationlog.Reader
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		sessions:  d.Sessions,
		settings:  d.Settings,
		carts:     d.Carts,
		checkouts: d.Checkouts,
		auth:      d.Auth,
		products:  d.Products,
		workshops: d.Workshops,
		profile:   d.Profile,
		content:   d.Content,
		health:    d.Health,
		journal:   d.Journal,
	}
}

// withSession resolves the visitor's session and token and opens the
// request's toast box.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := withToastBox(r.Context())

		id, err := h.sessions.Resolve(w, r)
		if err != nil {
			slog.ErrorContext(ctx, "could not resolve session", "error", err)
			writeError(w, r.WithContext(ctx), http.StatusInternalServerError, "session_error", "")
			return
		}

		token, err := h.sessions.Token(ctx, id)
		if err != nil {
			// cache outage: serve the visitor as logged out
			slog.WarnContext(ctx, "could not read session token", "error", err)
		}

		next.ServeHTTP(w, r.WithContext(session.WithSession(ctx, id, token)))
	})
}

func (h *Handler) invalidate(r *http.Request) {
	if id := session.IDFromContext(r.Context()); id != "" {
		h.sessions.Invalidate(r.Context(), id)
	}
}

func (h *Handler) cartFor(r *http.Request) *cart.Synchronizer {
	return h.carts.Get(session.IDFromContext(r.Context()))
}

func (h *Handler) checkoutFor(r *http.Request) *checkout.Controller {
	return h.checkouts.Get(session.IDFromContext(r.Context()))
}

func token(r *http.Request) string {
	return session.TokenFromContext(r.Context())
}

func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, &ValidationError{Field: name, Message: i18n.Tc(r.Context(), i18n.FieldInvalid, name)}
	}
	return id, nil
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
