// Package http wires the coordinator's operations to a chi router: REST
// handlers for graph reads, signal ingestion, human decisions, simulation
// control, audit, debate, resources, camps, copilot, and voice, plus a
// coder/websocket dashboard feed.
package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sentineldr/core/internal/coordinator"
	"github.com/sentineldr/core/internal/httperr"
	"github.com/sentineldr/core/internal/telemetry"
)

// Server bundles the chi router over one Coordinator.
type Server struct {
	router      chi.Router
	coordinator *coordinator.Coordinator
	log         telemetry.Logger
	hub         *hub
}

// NewServer builds the router and registers every route.
func NewServer(c *coordinator.Coordinator, log telemetry.Logger) *Server {
	if log == nil {
		log = telemetry.NewNoopLogger()
	}
	s := &Server{
		router:      chi.NewRouter(),
		coordinator: c,
		log:         log,
		hub:         newHub(c, log),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Get("/ws", s.hub.serveWS)

	s.router.Route("/api/graph", func(r chi.Router) {
		r.Get("/", s.handleGraph)
		r.Get("/incidents", s.handleListIncidents)
		r.Get("/incidents/{id}", s.handleGetIncident)
		r.Get("/resources", s.handleListResources)
		r.Get("/stats", s.handleGraphStats)
	})

	s.router.Route("/api/signals", func(r chi.Router) {
		r.Post("/image", s.handleSignalImage)
		r.Post("/audio", s.handleSignalAudio)
		r.Post("/text", s.handleSignalText)
	})

	s.router.Route("/api/decisions", func(r chi.Router) {
		r.Get("/pending", s.handlePendingDecisions)
		r.Post("/contradiction/{id}", s.handleResolveContradiction)
		r.Post("/action/{id}/approve", s.handleApproveAction)
		r.Post("/action/{id}/reject", s.handleRejectAction)
	})

	s.router.Route("/api/simulation", func(r chi.Router) {
		r.Post("/start", s.handleSimStart)
		r.Post("/pause", s.handleSimPause)
		r.Post("/resume", s.handleSimResume)
		r.Post("/reset", s.handleSimReset)
		r.Get("/status", s.handleSimStatus)
	})

	s.router.Route("/api/audit", func(r chi.Router) {
		r.Get("/decision/{id}", s.handleAuditByDecision)
		r.Get("/incident/{id}", s.handleAuditByIncident)
	})
	s.router.Get("/api/timeline", s.handleTimeline)

	s.router.Post("/api/debate/{alertID}/start", s.handleDebateStart)

	s.router.Route("/api/resources", func(r chi.Router) {
		r.Post("/assign", s.handleResourceAssign)
		r.Post("/unassign/{id}", s.handleResourceUnassign)
		r.Post("/generate-plan", s.handleGeneratePlan)
		r.Post("/plans/{id}/approve", s.handlePlanApprove)
	})

	s.router.Route("/api/camps", func(r chi.Router) {
		r.Get("/", s.handleCampsList)
		r.Post("/generate", s.handleCampsGenerate)
		r.Post("/{id}/approve", s.handleCampApprove)
		r.Post("/{id}/reject", s.handleCampReject)
	})

	s.router.Post("/api/copilot/ask", s.handleCopilotAsk)

	s.router.Route("/api/voice", func(r chi.Router) {
		r.Get("/report", s.handleVoiceReport)
		r.Post("/synthesize", s.handleVoiceSynthesize)
		r.Post("/transcribe", s.handleVoiceTranscribe)
		r.Get("/reports", s.handleVoiceReports)
	})
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "time": time.Now().UTC()})
}

// writeJSON is the shared success-path encoder every handler uses; error
// paths go through httperr.Write instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) *httperr.Error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return httperr.BadRequest("invalid request body: " + err.Error())
	}
	return nil
}
