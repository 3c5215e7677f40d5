package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/jcmexdev/workshop-storefront/internal/api"
	"github.com/jcmexdev/workshop-storefront/internal/cart"
	"github.com/jcmexdev/workshop-storefront/internal/checkout"
	"github.com/jcmexdev/workshop-storefront/internal/pkg/i18n"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/domain/entity"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respond writes data with the toasts raised so far.
func respond(w http.ResponseWriter, r *http.Request, status int, data any) {
	lang := i18n.FromContext(r.Context())
	writeJSON(w, status, Response{
		Data:   data,
		Toasts: toastsFrom(r.Context()),
		Lang:   lang.String(),
		Dir:    i18n.Dir(lang),
	})
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	toasts := toastsFrom(r.Context())
	if len(toasts) == 0 && msg != "" {
		toasts = []entity.Toast{{ID: uuid.NewString(), Kind: entity.ToastError, Message: msg}}
	}
	lang := i18n.FromContext(r.Context())
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
		Toasts:  toasts,
		Lang:    lang.String(),
		Dir:     i18n.Dir(lang),
	})
}

// handleError maps err to a response. failed is shown for API rejections
// without a message, broken for transport failures.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error, failed, broken i18n.Key) {
	ctx := r.Context()

	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, r, http.StatusUnprocessableEntity, "validation_failed", verr.Message)

	case errors.Is(err, api.ErrNotAuthenticated):
		writeError(w, r, http.StatusUnauthorized, "not_authenticated", i18n.Tc(ctx, i18n.LoginRequired))

	case api.IsUnauthorized(err):
		h.invalidate(r)
		writeError(w, r, http.StatusUnauthorized, "session_expired", i18n.Tc(ctx, i18n.LoginRequired))

	case errors.Is(err, cart.ErrAddInFlight):
		writeError(w, r, http.StatusConflict, "add_in_flight", i18n.Tc(ctx, i18n.CartAddInFlight))

	case errors.Is(err, checkout.ErrBusy):
		writeError(w, r, http.StatusConflict, "request_in_flight", i18n.Tc(ctx, i18n.RequestInFlight))

	case errors.Is(err, checkout.ErrNotInCheckout):
		writeError(w, r, http.StatusConflict, "not_in_checkout", i18n.Tc(ctx, i18n.SummaryLoadFailed))

	case errors.Is(err, checkout.ErrMethodNotOffered):
		writeError(w, r, http.StatusUnprocessableEntity, "payment_method_invalid", i18n.Tc(ctx, i18n.PaymentMethodInvalid))

	case api.IsBusiness(err):
		writeError(w, r, http.StatusUnprocessableEntity, "rejected", api.Message(err, i18n.Tc(ctx, failed), ""))

	default:
		slog.ErrorContext(ctx, "upstream request failed", "path", r.URL.Path, "error", err)
		writeError(w, r, http.StatusBadGateway, "upstream_unavailable", i18n.Tc(ctx, broken))
	}
}
