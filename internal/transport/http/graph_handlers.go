package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sentineldr/core/internal/graph"
	"github.com/sentineldr/core/internal/httperr"
)

// handleGraph returns the full current graph snapshot.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.coordinator.Graph.Snapshot())
}

func (s *Server) handleListIncidents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.coordinator.Graph.Incidents())
}

func (s *Server) handleGetIncident(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	inc, ok := s.coordinator.Graph.Incident(id)
	if !ok {
		httperr.Write(w, httperr.NotFound("incident "+id+" not found"))
		return
	}
	writeJSON(w, http.StatusOK, inc)
}

func (s *Server) handleListResources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.coordinator.Graph.Resources())
}

func (s *Server) handleGraphStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.coordinator.Graph.GetStats())
}

// handlePendingDecisions returns every unresolved contradiction alert and
// every action recommendation still awaiting a human decision.
func (s *Server) handlePendingDecisions(w http.ResponseWriter, r *http.Request) {
	var alerts []graph.ContradictionAlert
	for _, a := range s.coordinator.Graph.Contradictions() {
		if !a.Resolved {
			alerts = append(alerts, a)
		}
	}
	var actions []graph.ActionRecommendation
	for _, a := range s.coordinator.Graph.Actions() {
		if a.Status == graph.ActionPending {
			actions = append(actions, a)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"contradictions": alerts,
		"actions":        actions,
	})
}

func (s *Server) handleAuditByDecision(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	writeJSON(w, http.StatusOK, s.coordinator.Graph.AuditByDecision(id))
}

func (s *Server) handleAuditByIncident(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	writeJSON(w, http.StatusOK, s.coordinator.Graph.AuditByIncident(id))
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.coordinator.Graph.Timeline())
}
