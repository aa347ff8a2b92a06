package http

import "net/http"

// startSimulationRequest is the body for POST /api/simulation/start.
type startSimulationRequest struct {
	ScenarioID string  `json:"scenario_id"`
	Speed      float64 `json:"speed"`
}

func (s *Server) handleSimStart(w http.ResponseWriter, r *http.Request) {
	var req startSimulationRequest
	if r.ContentLength > 0 {
		_ = decodeJSON(r, &req) // defaults below cover a missing/partial body
	}
	if req.ScenarioID == "" {
		req.ScenarioID = "earthquake_001"
	}
	if req.Speed <= 0 {
		req.Speed = 1.0
	}
	s.coordinator.StartSimulation(req.ScenarioID, req.Speed)
	s.broadcastSimStatus(r)
	writeJSON(w, http.StatusOK, s.coordinator.SimulationStatus())
}

func (s *Server) handleSimPause(w http.ResponseWriter, r *http.Request) {
	s.coordinator.PauseSimulation()
	s.broadcastSimStatus(r)
	writeJSON(w, http.StatusOK, s.coordinator.SimulationStatus())
}

func (s *Server) handleSimResume(w http.ResponseWriter, r *http.Request) {
	s.coordinator.ResumeSimulation()
	s.broadcastSimStatus(r)
	writeJSON(w, http.StatusOK, s.coordinator.SimulationStatus())
}

func (s *Server) handleSimReset(w http.ResponseWriter, r *http.Request) {
	s.coordinator.ResetSimulation(r.Context())
	s.broadcastSimStatus(r)
	writeJSON(w, http.StatusOK, s.coordinator.SimulationStatus())
}

func (s *Server) handleSimStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.coordinator.SimulationStatus())
}

func (s *Server) broadcastSimStatus(r *http.Request) {
	s.coordinator.Broadcast.Broadcast(r.Context(), "sim_status", s.coordinator.SimulationStatus())
}
