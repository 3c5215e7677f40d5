package httpx

import (
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/workshop-storefront/internal/api"
	"github.com/jcmexdev/workshop-storefront/internal/pkg/i18n"
	"github.com/jcmexdev/workshop-storefront/internal/session"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/domain/entity"
)

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err, i18n.LoginFailed, i18n.LoginError)
		return
	}
	if err := checkPhone(r.Context(), "phone", req.Phone, req.CountryCode); err != nil {
		h.handleError(w, r, err, i18n.LoginFailed, i18n.LoginError)
		return
	}

	res, err := h.auth.Login(r.Context(), entity.Credentials{
		Email:       req.Email,
		Phone:       req.Phone,
		CountryID:   req.CountryID,
		CountryCode: req.CountryCode,
	})
	if err != nil {
		h.handleError(w, r, err, i18n.LoginFailed, i18n.LoginError)
		return
	}
	h.signIn(w, r, res)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err, i18n.RegisterFailed, i18n.RegisterError)
		return
	}
	if err := checkPhone(r.Context(), "phone", req.Phone, req.CountryCode); err != nil {
		h.handleError(w, r, err, i18n.RegisterFailed, i18n.RegisterError)
		return
	}

	res, err := h.auth.Register(r.Context(), entity.Registration{
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		CountryID:   req.CountryID,
		CountryCode: req.CountryCode,
	})
	if err != nil {
		h.handleError(w, r, err, i18n.RegisterFailed, i18n.RegisterError)
		return
	}
	h.signIn(w, r, res)
}

// signIn stores the returned token. A reply without a token leaves the
// visitor logged out.
func (h *Handler) signIn(w http.ResponseWriter, r *http.Request, res *entity.AuthResult) {
	if res == nil || res.Token == "" {
		respond(w, r, http.StatusOK, AuthResponse{LoggedIn: false})
		return
	}
	sid := session.IDFromContext(r.Context())
	if err := h.sessions.SetToken(r.Context(), sid, res.Token); err != nil {
		slog.ErrorContext(r.Context(), "could not store session token", "error", err)
		writeError(w, r, http.StatusInternalServerError, "session_error", i18n.Tc(r.Context(), i18n.GenericError))
		return
	}
	respond(w, r, http.StatusOK, AuthResponse{LoggedIn: true})
}

// Logout always succeeds locally; a failed remote logout is only logged.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	_ = h.sessions.Logout(r.Context(), session.IDFromContext(r.Context()))
	respond(w, r, http.StatusOK, AuthResponse{LoggedIn: false})
}

func (h *Handler) Countries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.auth.Countries(r.Context())
	if err != nil {
		h.handleError(w, r, err, i18n.ContentLoadFailed, i18n.ContentLoadError)
		return
	}
	respond(w, r, http.StatusOK, countries)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	p, err := h.loadProfile(r)
	if err != nil {
		h.handleError(w, r, err, i18n.ContentLoadFailed, i18n.ServerConnection)
		return
	}
	respond(w, r, http.StatusOK, p)
}

func (h *Handler) loadProfile(r *http.Request) (*entity.Profile, error) {
	tok := token(r)
	if tok == "" {
		return nil, api.ErrNotAuthenticated
	}
	return h.profile.GetProfile(r.Context(), tok)
}

func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	tok := token(r)
	if tok == "" {
		h.handleError(w, r, api.ErrNotAuthenticated, i18n.ContentLoadFailed, i18n.ContentLoadError)
		return
	}
	list, err := h.profile.SuggestWorkshops(r.Context(), tok)
	if err != nil {
		h.handleError(w, r, err, i18n.ContentLoadFailed, i18n.ContentLoadError)
		return
	}
	respond(w, r, http.StatusOK, list)
}

func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err, i18n.ReviewError, i18n.ServerConnection)
		return
	}
	tok := token(r)
	if tok == "" {
		h.handleError(w, r, api.ErrNotAuthenticated, i18n.ReviewError, i18n.ServerConnection)
		return
	}

	msg, err := h.profile.SubmitReview(r.Context(), tok, entity.Review{
		SubscriptionID: req.SubscriptionID,
		WorkshopID:     req.WorkshopID,
		Rating:         req.Rating,
		Comment:        req.Comment,
	})
	if err != nil {
		h.handleError(w, r, err, i18n.ReviewError, i18n.ServerConnection)
		return
	}
	if msg == "" {
		msg = i18n.Tc(r.Context(), i18n.ReviewSent)
	}
	notify(r.Context(), entity.ToastSuccess, msg)
	respond(w, r, http.StatusCreated, MessageResponse{Message: msg})
}

// Download streams the certificate or invoice of one of the visitor's
// subscriptions. ?view=1 serves it inline.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	failed := i18n.FileDownloadFailed
	if r.URL.Query().Get("view") == "1" {
		failed = i18n.FileViewFailed
	}

	kind := entity.DocumentKind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		writeError(w, r, http.StatusNotFound, "not_found", i18n.Tc(r.Context(), failed))
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		h.handleError(w, r, err, failed, i18n.FileError)
		return
	}

	p, err := h.loadProfile(r)
	if err != nil {
		h.handleError(w, r, err, failed, i18n.FileError)
		return
	}
	sub, ok := p.FindSubscription(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, "not_found", i18n.Tc(r.Context(), failed))
		return
	}

	ref := sub.ID
	if kind == entity.DocumentCertificate {
		if !sub.CanInstallCertificate {
			slog.InfoContext(r.Context(), "certificate requested before it is available", "subscription_id", sub.ID)
			writeError(w, r, http.StatusConflict, "certificate_unavailable", i18n.Tc(r.Context(), failed))
			return
		}
		ref = sub.Workshop.ID
	}

	doc, err := h.profile.Download(r.Context(), token(r), kind, ref)
	if err != nil {
		h.handleError(w, r, err, failed, i18n.FileError)
		return
	}
	defer doc.Body.Close()

	disposition := "attachment"
	if r.URL.Query().Get("view") == "1" {
		disposition = "inline"
	}
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{
		"filename": kind.FileName(sub.Workshop.Title),
	}))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, doc.Body); err != nil {
		slog.WarnContext(r.Context(), "document stream interrupted", "kind", kind, "error", err)
	}
}
