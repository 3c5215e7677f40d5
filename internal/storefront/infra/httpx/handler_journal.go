package httpx

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/workshop-storefront/internal/coordinator/mutationlog"
)

type MutationStatusResponse struct {
	Latest  *mutationlog.Entry  `json:"latest"`
	History []mutationlog.Entry `json:"history"`
}

// MutationStatus reports how an optimistic cart change ended. The id is the
// mutation_id logged when a change is rejected.
func (h *Handler) MutationStatus(w http.ResponseWriter, r *http.Request) {
	if h.journal == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "journal_disabled"})
		return
	}
	id := chi.URLParam(r, "id")

	latest, err := h.journal.GetLatest(r.Context(), id)
	if errors.Is(err, mutationlog.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	history, err := h.journal.History(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, MutationStatusResponse{Latest: latest, History: history})
}
