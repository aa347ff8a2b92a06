package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sentineldr/core/internal/httperr"
)

func (s *Server) handleDebateStart(w http.ResponseWriter, r *http.Request) {
	alertID := chi.URLParam(r, "alertID")
	turns, err := s.coordinator.StartDebate(r.Context(), alertID)
	if err != nil {
		httperr.Write(w, httperr.FromDomain(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"alert_id": alertID, "turns": turns})
}
