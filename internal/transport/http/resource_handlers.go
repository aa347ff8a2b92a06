package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sentineldr/core/internal/httperr"
)

// assignResourceRequest is the body for POST /api/resources/assign.
type assignResourceRequest struct {
	ResourceID string `json:"resource_id"`
	IncidentID string `json:"incident_id"`
}

func (s *Server) handleResourceAssign(w http.ResponseWriter, r *http.Request) {
	var req assignResourceRequest
	if herr := decodeJSON(r, &req); herr != nil {
		httperr.Write(w, herr)
		return
	}
	if err := s.coordinator.AssignResource(r.Context(), req.ResourceID, req.IncidentID); err != nil {
		httperr.Write(w, httperr.FromDomain(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"resource_id": req.ResourceID, "incident_id": req.IncidentID, "status": "dispatched"})
}

func (s *Server) handleResourceUnassign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.coordinator.UnassignResource(r.Context(), id); err != nil {
		httperr.Write(w, httperr.FromDomain(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"resource_id": id, "status": "available"})
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.coordinator.GenerateAllocationPlan(r.Context())
	if err != nil {
		httperr.Write(w, httperr.FromDomain(err))
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handlePlanApprove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	plan, err := s.coordinator.ApprovePlan(r.Context(), id)
	if err != nil {
		httperr.Write(w, httperr.FromDomain(err))
		return
	}
	writeJSON(w, http.StatusOK, plan)
}
