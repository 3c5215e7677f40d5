package httpx

import (
	"net/http"
	"strings"

	"github.com/jcmexdev/workshop-storefront/internal/pkg/i18n"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/domain/entity"
)

// Settings serves the site links. When the API refuses the visitor's token
// the links are served empty; other failures are reported.
func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	s, err := h.settings.Get(r.Context(), token(r))
	if err != nil {
		h.handleError(w, r, err, i18n.SettingsLoadFailed, i18n.SettingsLoadError)
		return
	}
	if s == nil {
		s = &entity.Settings{}
	}
	respond(w, r, http.StatusOK, s)
}

func (h *Handler) Gallery(w http.ResponseWriter, r *http.Request) {
	page, err := h.content.Gallery(r.Context(), pageParam(r))
	if err != nil {
		h.handleError(w, r, err, i18n.ContentLoadFailed, i18n.ContentLoadError)
		return
	}
	respond(w, r, http.StatusOK, page)
}

func (h *Handler) Partners(w http.ResponseWriter, r *http.Request) {
	list, err := h.content.Partners(r.Context())
	if err != nil {
		h.handleError(w, r, err, i18n.ContentLoadFailed, i18n.ContentLoadError)
		return
	}
	respond(w, r, http.StatusOK, list)
}

func (h *Handler) Partner(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		h.handleError(w, r, err, i18n.ContentLoadFailed, i18n.ContentLoadError)
		return
	}
	p, err := h.content.Partner(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err, i18n.ContentLoadFailed, i18n.ContentLoadError)
		return
	}
	respond(w, r, http.StatusOK, p)
}

func (h *Handler) Reviews(w http.ResponseWriter, r *http.Request) {
	list, err := h.content.Reviews(r.Context())
	if err != nil {
		h.handleError(w, r, err, i18n.ContentLoadFailed, i18n.ContentLoadError)
		return
	}
	respond(w, r, http.StatusOK, list)
}

func (h *Handler) Videos(w http.ResponseWriter, r *http.Request) {
	list, err := h.content.Videos(r.Context())
	if err != nil {
		h.handleError(w, r, err, i18n.ContentLoadFailed, i18n.ContentLoadError)
		return
	}
	respond(w, r, http.StatusOK, list)
}

func (h *Handler) InstagramLives(w http.ResponseWriter, r *http.Request) {
	list, err := h.content.InstagramLives(r.Context())
	if err != nil {
		h.handleError(w, r, err, i18n.ContentLoadFailed, i18n.ContentLoadError)
		return
	}
	respond(w, r, http.StatusOK, list)
}

// RequestConsultation forwards the visitor's message. Logged-out visitors
// may send one too.
func (h *Handler) RequestConsultation(w http.ResponseWriter, r *http.Request) {
	var req ConsultationRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err, i18n.ConsultationFailed, i18n.ConsultationError)
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeError(w, r, http.StatusUnprocessableEntity, "validation_failed", i18n.Tc(r.Context(), i18n.ConsultationEmpty))
		return
	}

	msg, err := h.content.RequestConsultation(r.Context(), token(r), message)
	if err != nil {
		h.handleError(w, r, err, i18n.ConsultationFailed, i18n.ConsultationError)
		return
	}
	if msg != "" {
		notify(r.Context(), entity.ToastSuccess, msg)
	}
	respond(w, r, http.StatusCreated, MessageResponse{Message: msg})
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
