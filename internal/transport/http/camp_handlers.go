package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sentineldr/core/internal/httperr"
)

func (s *Server) handleCampsList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.coordinator.Graph.Camps())
}

func (s *Server) handleCampsGenerate(w http.ResponseWriter, r *http.Request) {
	camps, err := s.coordinator.GenerateCampRecommendations(r.Context())
	if err != nil {
		httperr.Write(w, httperr.FromDomain(err))
		return
	}
	writeJSON(w, http.StatusOK, camps)
}

func (s *Server) handleCampApprove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	camp, err := s.coordinator.ApproveCamp(r.Context(), id)
	if err != nil {
		httperr.Write(w, httperr.FromDomain(err))
		return
	}
	writeJSON(w, http.StatusOK, camp)
}

func (s *Server) handleCampReject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	camp, err := s.coordinator.RejectCamp(r.Context(), id)
	if err != nil {
		httperr.Write(w, httperr.FromDomain(err))
		return
	}
	writeJSON(w, http.StatusOK, camp)
}
