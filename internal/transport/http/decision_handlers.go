package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sentineldr/core/internal/httperr"
)

// humanDecisionRequest is the body for POST /api/decisions/contradiction/{id}.
type humanDecisionRequest struct {
	Decision string `json:"decision"`
	DecidedBy string `json:"decided_by"`
}

func (s *Server) handleResolveContradiction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req humanDecisionRequest
	if herr := decodeJSON(r, &req); herr != nil {
		httperr.Write(w, herr)
		return
	}
	if req.DecidedBy == "" {
		req.DecidedBy = "operator"
	}
	alert, err := s.coordinator.ResolveContradiction(r.Context(), id, req.Decision, req.DecidedBy)
	if err != nil {
		httperr.Write(w, httperr.FromDomain(err))
		return
	}
	writeJSON(w, http.StatusOK, alert)
}

func (s *Server) handleApproveAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	action, err := s.coordinator.ApproveAction(r.Context(), id)
	if err != nil {
		httperr.Write(w, httperr.FromDomain(err))
		return
	}
	writeJSON(w, http.StatusOK, action)
}

// rejectActionRequest is the optional body for POST /api/decisions/action/{id}/reject.
type rejectActionRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) handleRejectAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req rejectActionRequest
	if r.ContentLength > 0 {
		if herr := decodeJSON(r, &req); herr != nil {
			httperr.Write(w, herr)
			return
		}
	}
	action, err := s.coordinator.RejectAction(r.Context(), id, req.Reason)
	if err != nil {
		httperr.Write(w, httperr.FromDomain(err))
		return
	}
	writeJSON(w, http.StatusOK, action)
}
