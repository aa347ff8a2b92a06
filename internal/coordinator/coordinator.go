// Package coordinator wires the situation graph, analyzer oracle,
// contradiction detector, and planning trigger into the operations the
// transport layer calls: signal ingestion, human decisions, simulation
// control, staged debate, and bulk allocation planning.
package coordinator

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sentineldr/core/internal/broadcast"
	"github.com/sentineldr/core/internal/detector"
	"github.com/sentineldr/core/internal/graph"
	"github.com/sentineldr/core/internal/oracle"
	"github.com/sentineldr/core/internal/planner"
	"github.com/sentineldr/core/internal/telemetry"
)

// maxRecentEvents bounds the in-memory timeline feed shown on the dashboard,
// independent of the graph's append-only audit log.
const maxRecentEvents = 50

// Event is one entry in the coordinator's recent-events ring buffer, the
// lightweight feed the dashboard timeline renders from.
type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data"`
}

// SimulationStatus mirrors the simulation driver's current state.
type SimulationStatus struct {
	Running        bool    `json:"running"`
	Paused         bool    `json:"paused"`
	ScenarioID     string  `json:"scenario_id"`
	ScenarioName   string  `json:"scenario_name"`
	CurrentTime    time.Time `json:"current_time"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

// simDriver is the subset of *simulation.Driver the coordinator depends on,
// narrowed so this package never imports simulation (simulation imports
// coordinator instead, keeping the dependency one-directional).
type simDriver interface {
	Run(ctx context.Context, scenarioID string, speed float64)
	Pause()
	Resume()
}

// Coordinator is the single point of mutation for signal ingestion, human
// decisions, simulation control, and bulk planning. It owns no lock of its
// own for graph state — that discipline lives in SituationGraph — but
// serializes its own simulation-control and recent-events bookkeeping.
type Coordinator struct {
	Graph     *graph.SituationGraph
	Oracle    *oracle.Oracle
	Detector  *detector.Detector
	Planner   *planner.Planner
	Broadcast *broadcast.Fabric
	log       telemetry.Logger
	metrics   telemetry.Metrics
	tracer    telemetry.Tracer

	mu           sync.Mutex
	simRunning   bool
	simPaused    bool
	simCancel    context.CancelFunc
	simDriver    simDriver
	recentEvents []Event
}

// New constructs a Coordinator over an already-wired graph, oracle,
// detector, planner, and broadcast fabric.
func New(g *graph.SituationGraph, o *oracle.Oracle, d *detector.Detector, p *planner.Planner, b *broadcast.Fabric, log telemetry.Logger, metrics telemetry.Metrics, tracer telemetry.Tracer) *Coordinator {
	if log == nil {
		log = telemetry.NewNoopLogger()
	}
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	if tracer == nil {
		tracer = telemetry.NewNoopTracer()
	}
	return &Coordinator{Graph: g, Oracle: o, Detector: d, Planner: p, Broadcast: b, log: log, metrics: metrics, tracer: tracer}
}

// SetSimulationDriver installs the driver StartSimulation hands control to.
// Kept as a setter (rather than a constructor argument) because the driver
// itself is constructed with a reference back to the coordinator.
func (c *Coordinator) SetSimulationDriver(d simDriver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.simDriver = d
}

// ---- signal ingestion ----

// ProcessSignal routes one incoming signal to the matching analyzer, folds
// its output into the graph, runs contradiction detection (outside of a
// running simulation, which handles contradictions via scripted injection
// instead), and gives the planning trigger a chance to fire.
func (c *Coordinator) ProcessSignal(ctx context.Context, signalType, content string, metadata map[string]any) (map[string]any, error) {
	started := time.Now()
	ctx, span := c.tracer.Start(ctx, "coordinator.process_signal")
	defer span.End()

	signalID := shortID()
	c.addEvent("signal_"+signalType, map[string]any{"signal_id": signalID, "type": signalType, "metadata": metadata})

	var out oracle.AnalyzerOutput
	sector := stringField(metadata, "sector")

	switch signalType {
	case "image":
		out = c.Oracle.AnalyzeVision(ctx, oracle.VisionInput{
			Description: firstNonEmpty(content, stringField(metadata, "description")),
			Sector:      sector,
		})
	case "audio":
		out = c.Oracle.AnalyzeAudio(ctx, oracle.AudioInput{
			Transcript: firstNonEmpty(stringField(metadata, "transcript"), content),
			Sector:     sector,
		})
	case "text":
		out = c.Oracle.AnalyzeText(ctx, oracle.TextInput{Text: content, Sector: sector})
	default:
		return nil, fmt.Errorf("unknown signal type: %s", signalType)
	}

	c.Broadcast.Broadcast(ctx, "signal_processed", map[string]any{
		"signal_id":   signalID,
		"signal_type": signalType,
		"agent_name":  out.AnalyzerName,
		"output_type": out.OutputType,
		"data":        out.Data,
		"confidence":  out.Confidence,
		"reasoning":   out.Reasoning,
		"timestamp":   out.Timestamp,
		"metadata":    metadata,
	})

	c.foldIntoGraph(ctx, out, signalType, signalID, metadata)

	simRunning := c.isSimulationRunning()
	var alert *graph.ContradictionAlert
	if !simRunning {
		alert = c.Detector.CheckAndRaise(ctx, c.Graph)
	}
	if action := c.Planner.MaybeTrigger(ctx, c.Graph); action != nil {
		c.Broadcast.Broadcast(ctx, "action_recommendation", action)
		c.addEvent("action_recommended", map[string]any{
			"action_id": action.ID, "action_type": action.ActionType, "resources": action.ResourcesToAllocate,
		})
	}

	c.Broadcast.Broadcast(ctx, "graph_update", c.Graph.Snapshot())
	if alert != nil {
		c.Broadcast.Broadcast(ctx, "contradiction_alert", alert)
		c.addEvent("contradiction_detected", map[string]any{"alert_id": alert.ID, "entity": alert.EntityName})
	}
	c.Broadcast.Broadcast(ctx, "timeline_event", map[string]any{"events": c.RecentEvents(10)})

	c.metrics.RecordTimer("signal.broadcast_latency", time.Since(started), "signal_type", signalType)
	c.log.Info(ctx, "signal processed", "signal_id", signalID, "signal_type", signalType, "agent", out.AnalyzerName)

	return map[string]any{
		"signal_id":   signalID,
		"agent":       out.AnalyzerName,
		"output_type": out.OutputType,
		"confidence":  out.Confidence,
		"data":        out.Data,
	}, nil
}

// foldIntoGraph applies the per-modality merge rule from spec §4.5: image
// and audio signals each materialize a new incident; text signals never do,
// instead accumulating named-entity claims for the contradiction detector
// (skipped entirely while a simulation drives scripted injections).
func (c *Coordinator) foldIntoGraph(ctx context.Context, out oracle.AnalyzerOutput, signalType, signalID string, metadata map[string]any) *graph.IncidentNode {
	now := time.Now().UTC()
	loc := resolveLocation(metadata, signalID)
	source := graph.SourceReference{
		SourceID: signalID, SourceType: sourceTypeOrText(signalType),
		Timestamp: now, RawContentRef: signalID, CredibilityScore: out.Confidence,
	}

	switch signalType {
	case "image":
		damage := stringFieldOr(out.Data, "damage_level", "moderate")
		urgency := oracle.DamageToUrgency(damage)
		casualties := subMap(out.Data, "estimated_casualties")
		incident := c.Graph.AddIncident(graph.IncidentNode{
			ID:           "inc_" + signalID,
			IncidentType: incidentTypeFromDamageTypes(out.Data),
			Location:     loc,
			DamageLevel:  damage,
			Urgency:      urgency,
			Trapped:      casualtyRange(casualties),
			Confidence:   floatFieldOr(out.Data, "overall_confidence", 0.5),
			Sources:      []graph.SourceReference{source},
			DecayRate:    0.02,
			Status:       graph.IncidentActive,
		})
		c.Broadcast.Broadcast(ctx, "new_incident", incident)
		return incident

	case "audio":
		urgency := oracle.ParseUrgency(stringFieldOr(out.Data, "urgency", "high"))
		damage := graph.DamageModerate
		if urgency == graph.UrgencyCritical {
			damage = graph.DamageSevere
		}
		persons := subMap(out.Data, "persons_involved")
		trapped := subMap(persons, "trapped")
		incident := c.Graph.AddIncident(graph.IncidentNode{
			ID:           "inc_" + signalID,
			IncidentType: stringFieldOr(out.Data, "incident_type", "emergency"),
			Location:     loc,
			DamageLevel:  damage,
			Urgency:      urgency,
			Trapped:      casualtyRange(trapped),
			Confidence:   floatFieldOr(out.Data, "overall_confidence", 0.5),
			Sources:      []graph.SourceReference{source},
			DecayRate:    0.02,
			Status:       graph.IncidentActive,
		})
		c.Broadcast.Broadcast(ctx, "new_incident", incident)
		return incident

	case "text":
		if c.isSimulationRunning() {
			return nil
		}
		claims, _ := out.Data["claims"].([]any)
		for _, raw := range claims {
			claimMap, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			entityName := entityNameFromClaim(claimMap)
			if entityName == "" {
				continue
			}
			c.Detector.Accumulate(entityName, detector.NewClaim(
				"text_"+signalID,
				stringFieldOr(out.Data, "source_type", "unverified"),
				stringFieldOr(claimMap, "claim", ""),
				floatFieldOr(claimMap, "confidence", 0.4),
			))
		}
		return nil
	}
	return nil
}

// ---- human decisions ----

// ResolveContradiction records the operator's resolution of one alert.
func (c *Coordinator) ResolveContradiction(ctx context.Context, alertID, decision, decidedBy string) (*graph.ContradictionAlert, error) {
	alert, err := c.Graph.ResolveContradiction(alertID, decision, decidedBy)
	if err != nil {
		return nil, err
	}
	c.Broadcast.Broadcast(ctx, "decision_made", map[string]any{"type": "contradiction", "id": alertID, "decision": decision})
	c.Broadcast.Broadcast(ctx, "graph_update", c.Graph.Snapshot())
	c.addEvent("contradiction_resolved", map[string]any{"alert_id": alertID, "resolution": decision})
	return &alert, nil
}

// ApproveAction approves a pending action and dispatches its resources.
func (c *Coordinator) ApproveAction(ctx context.Context, actionID string) (*graph.ActionRecommendation, error) {
	action, err := c.Graph.ApproveAction(actionID)
	if err != nil {
		return nil, err
	}
	c.Broadcast.Broadcast(ctx, "decision_made", map[string]any{
		"type": "action", "id": actionID, "decision": "approved", "resources": action.ResourcesToAllocate,
	})
	c.Broadcast.Broadcast(ctx, "graph_update", c.Graph.Snapshot())
	c.addEvent("action_approved", map[string]any{"action_id": actionID, "resources": action.ResourcesToAllocate})
	c.metrics.IncCounter("actions.approved", 1)
	c.log.Info(ctx, "action approved", "action_id", actionID)
	return &action, nil
}

// RejectAction rejects a pending action with an optional reason.
func (c *Coordinator) RejectAction(ctx context.Context, actionID, reason string) (*graph.ActionRecommendation, error) {
	action, err := c.Graph.RejectAction(actionID, reason)
	if err != nil {
		return nil, err
	}
	c.Broadcast.Broadcast(ctx, "decision_made", map[string]any{"type": "action", "id": actionID, "decision": "rejected", "reason": reason})
	c.Broadcast.Broadcast(ctx, "graph_update", c.Graph.Snapshot())
	c.metrics.IncCounter("actions.rejected", 1)
	c.log.Info(ctx, "action rejected", "action_id", actionID, "reason", reason)
	return &action, nil
}

// ---- simulation control ----

// StartSimulation cancels any running simulation and hands control to the
// installed driver in a new goroutine.
func (c *Coordinator) StartSimulation(scenarioID string, speed float64) {
	c.log.Info(context.Background(), "simulation started", "scenario_id", scenarioID, "speed", speed)
	c.mu.Lock()
	if c.simCancel != nil {
		c.simCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.simCancel = cancel
	c.simRunning = true
	c.simPaused = false
	driver := c.simDriver
	c.mu.Unlock()

	if driver == nil {
		return
	}
	go func() {
		driver.Run(ctx, scenarioID, speed)
		c.mu.Lock()
		c.simRunning = false
		c.mu.Unlock()
	}()
}

// PauseSimulation pauses event pacing without cancelling the run.
func (c *Coordinator) PauseSimulation() {
	c.log.Info(context.Background(), "simulation paused")
	c.mu.Lock()
	c.simPaused = true
	c.simRunning = false
	driver := c.simDriver
	c.mu.Unlock()
	if driver != nil {
		driver.Pause()
	}
}

// ResumeSimulation resumes a paused run.
func (c *Coordinator) ResumeSimulation() {
	c.log.Info(context.Background(), "simulation resumed")
	c.mu.Lock()
	c.simPaused = false
	c.simRunning = true
	driver := c.simDriver
	c.mu.Unlock()
	if driver != nil {
		driver.Resume()
	}
}

// ResetSimulation cancels any running simulation, clears the detector and
// recent-events feed, and resets the graph to empty.
func (c *Coordinator) ResetSimulation(ctx context.Context) {
	c.mu.Lock()
	if c.simCancel != nil {
		c.simCancel()
		c.simCancel = nil
	}
	c.simRunning = false
	c.simPaused = false
	c.recentEvents = nil
	c.mu.Unlock()

	c.Detector.Reset()
	c.Graph.Reset()
	c.Broadcast.Broadcast(ctx, "graph_update", c.Graph.Snapshot())
	c.log.Info(ctx, "simulation reset")
}

// isSimulationRunning reports whether a simulation is actively driving events
// (used to skip direct contradiction checks and claim accumulation in favor
// of the scenario's scripted injections).
func (c *Coordinator) isSimulationRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.simRunning
}

// SimulationStatus reports the coordinator's current simulation state.
func (c *Coordinator) SimulationStatus() SimulationStatus {
	c.mu.Lock()
	running, paused := c.simRunning, c.simPaused
	c.mu.Unlock()
	scenarioID, scenarioName, currentTime, elapsed := c.Graph.ScenarioMeta()
	return SimulationStatus{
		Running:        running,
		Paused:         paused,
		ScenarioID:     scenarioID,
		ScenarioName:   scenarioName,
		CurrentTime:    currentTime,
		ElapsedSeconds: elapsed.Seconds(),
	}
}

// ---- staged debate ----

// DebateTurn is one turn of a staged four-turn debate over a contradiction.
type DebateTurn struct {
	Turn       int     `json:"turn"`
	Role       string  `json:"role"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence,omitempty"`
}

var debateRoles = [4]string{"defender", "challenger", "rebuttal", "synthesis"}

// StartDebate runs the four staged debate turns over one contradiction
// alert, broadcasting each as it completes.
func (c *Coordinator) StartDebate(ctx context.Context, alertID string) ([]DebateTurn, error) {
	alert, ok := c.Graph.Contradiction(alertID)
	if !ok {
		return nil, fmt.Errorf("contradiction %s: %w", alertID, graph.ErrNotFound)
	}
	claimA, claimB := "", ""
	if len(alert.Claims) > 0 {
		claimA = alert.Claims[0].Claim
	}
	if len(alert.Claims) > 1 {
		claimB = alert.Claims[1].Claim
	}

	c.addEvent("debate_started", map[string]any{"alert_id": alertID, "entity": alert.EntityName})

	var history strings.Builder
	turns := make([]DebateTurn, 0, 4)
	for turn := 1; turn <= 4; turn++ {
		out := c.Oracle.AnalyzeDebate(ctx, oracle.DebateInput{
			EntityName: alert.EntityName, ClaimA: claimA, ClaimB: claimB,
			Turn: turn, History: history.String(),
		})
		text, _ := out.Data["text"].(string)
		dt := DebateTurn{Turn: turn, Role: debateRoles[turn-1], Text: text, Confidence: out.Confidence}
		turns = append(turns, dt)
		history.WriteString(fmt.Sprintf("\n[%s]: %s\n", dt.Role, dt.Text))

		c.Broadcast.Broadcast(ctx, "debate_turn", dt)
		if turn < 4 {
			select {
			case <-ctx.Done():
				return turns, ctx.Err()
			case <-time.After(500 * time.Millisecond):
			}
		}
	}
	c.addEvent("debate_completed", map[string]any{"alert_id": alertID, "turns": len(turns)})
	return turns, nil
}

// ---- bulk allocation planning ----

// GenerateAllocationPlan calls the allocation analyzer over the whole graph
// and materializes a plan with its resource assignments and any proposed
// camps.
func (c *Coordinator) GenerateAllocationPlan(ctx context.Context) (*graph.AllocationPlan, error) {
	incidents := c.Graph.Incidents()
	resources := c.Graph.Resources()

	incidentSummaries := make([]string, 0, len(incidents))
	for _, inc := range incidents {
		if inc.Status != graph.IncidentActive {
			continue
		}
		incidentSummaries = append(incidentSummaries, fmt.Sprintf("%s: %s urgency in sector %s", inc.ID, inc.Urgency, inc.Location.Sector))
	}
	resourceSummaries := make([]string, 0, len(resources))
	for _, r := range resources {
		resourceSummaries = append(resourceSummaries, fmt.Sprintf("%s (%s) status=%s", r.ID, r.ResourceType, r.Status))
	}

	out := c.Oracle.AnalyzeAllocation(ctx, oracle.AllocationInput{ActiveIncidents: incidentSummaries, AvailableResources: resourceSummaries})

	now := time.Now().UTC()
	var assignments []graph.ResourceAssignment
	if raw, ok := out.Data["resource_assignments"].([]any); ok {
		for _, item := range raw {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			assignments = append(assignments, graph.ResourceAssignment{
				ID:                  "assign_" + shortID(),
				ResourceID:          stringFieldOr(m, "resource_id", ""),
				TargetIncidentID:    stringFieldOr(m, "target_incident_id", ""),
				Rationale:           stringFieldOr(m, "rationale", ""),
				Priority:            intFieldOr(m, "priority", 1),
				EstimatedETAMinutes: intPtrField(m, "estimated_eta_minutes"),
				CreatedAt:           now,
			})
		}
	}

	var camps []graph.CampRecommendation
	if raw, ok := out.Data["camp_recommendations"].([]any); ok {
		for _, item := range raw {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			loc := subMap(m, "location")
			camps = append(camps, graph.CampRecommendation{
				ID:              "camp_" + shortID(),
				Name:            stringFieldOr(m, "name", "Camp"),
				Location:        graph.Location{Lat: floatFieldOr(loc, "lat", 37.78), Lng: floatFieldOr(loc, "lng", -122.41)},
				CampType:        stringFieldOr(m, "camp_type", "relief_camp"),
				CapacityPersons: intFieldOr(m, "capacity_persons", 100),
				Rationale:       stringFieldOr(m, "rationale", ""),
				Confidence:      floatFieldOr(m, "confidence", 0.7),
				Factors:         subMap(m, "factors"),
				Status:          graph.ActionPending,
				CreatedAt:       now,
			})
		}
	}

	plan := c.Graph.AddAllocationPlan(graph.AllocationPlan{
		ResourceAssignments: assignments,
		CampRecommendations: camps,
		OverallConfidence:   floatFieldOr(out.Data, "overall_confidence", out.Confidence),
		KeyAssumptions:      toStringSlice(out.Data["key_assumptions"]),
		Status:              graph.ActionPending,
	})
	c.addEvent("allocation_plan_generated", map[string]any{"plan_id": plan.ID})
	c.Broadcast.Broadcast(ctx, "allocation_update", plan)
	return plan, nil
}

// GenerateCampRecommendations generates a full allocation plan and returns
// only its camp recommendations, also persisting each as a standalone camp
// record so it can be approved/rejected independently of the plan.
func (c *Coordinator) GenerateCampRecommendations(ctx context.Context) ([]graph.CampRecommendation, error) {
	plan, err := c.GenerateAllocationPlan(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]graph.CampRecommendation, 0, len(plan.CampRecommendations))
	for _, camp := range plan.CampRecommendations {
		added := c.Graph.AddCamp(camp)
		out = append(out, *added)
		c.Broadcast.Broadcast(ctx, "camp_recommendation", added)
	}
	return out, nil
}

// ---- resource & camp decisions ----

// AssignResource manually dispatches one resource to one incident.
func (c *Coordinator) AssignResource(ctx context.Context, resourceID, incidentID string) error {
	if err := c.Graph.AssignResourceManual(resourceID, incidentID); err != nil {
		return err
	}
	c.Broadcast.Broadcast(ctx, "resource_update", map[string]any{"resource_id": resourceID, "incident_id": incidentID, "status": graph.ResourceDispatched})
	c.Broadcast.Broadcast(ctx, "graph_update", c.Graph.Snapshot())
	return nil
}

// UnassignResource returns one resource to available.
func (c *Coordinator) UnassignResource(ctx context.Context, resourceID string) error {
	if err := c.Graph.UnassignResource(resourceID); err != nil {
		return err
	}
	c.Broadcast.Broadcast(ctx, "resource_update", map[string]any{"resource_id": resourceID, "status": graph.ResourceAvailable})
	c.Broadcast.Broadcast(ctx, "graph_update", c.Graph.Snapshot())
	return nil
}

// ApprovePlan approves an allocation plan, dispatching its resource
// assignments.
func (c *Coordinator) ApprovePlan(ctx context.Context, planID string) (*graph.AllocationPlan, error) {
	plan, err := c.Graph.ApprovePlan(planID)
	if err != nil {
		return nil, err
	}
	c.Broadcast.Broadcast(ctx, "decision_made", map[string]any{"type": "plan", "id": planID, "decision": "approved"})
	c.Broadcast.Broadcast(ctx, "graph_update", c.Graph.Snapshot())
	c.log.Info(ctx, "plan approved", "plan_id", planID)
	return &plan, nil
}

// ApproveCamp approves a standalone camp recommendation.
func (c *Coordinator) ApproveCamp(ctx context.Context, campID string) (*graph.CampRecommendation, error) {
	camp, err := c.Graph.ApproveCamp(campID)
	if err != nil {
		return nil, err
	}
	c.Broadcast.Broadcast(ctx, "decision_made", map[string]any{"type": "camp", "id": campID, "decision": "approved"})
	c.Broadcast.Broadcast(ctx, "graph_update", c.Graph.Snapshot())
	return &camp, nil
}

// RejectCamp rejects a standalone camp recommendation.
func (c *Coordinator) RejectCamp(ctx context.Context, campID string) (*graph.CampRecommendation, error) {
	camp, err := c.Graph.RejectCamp(campID)
	if err != nil {
		return nil, err
	}
	c.Broadcast.Broadcast(ctx, "decision_made", map[string]any{"type": "camp", "id": campID, "decision": "rejected"})
	c.Broadcast.Broadcast(ctx, "graph_update", c.Graph.Snapshot())
	return &camp, nil
}

// ---- recent events ----

// AddEvent records one entry in the recent-events ring buffer. Exposed for
// the simulation driver, which raises events (aftershock, time_marker, ...)
// outside of ProcessSignal's normal path.
func (c *Coordinator) AddEvent(eventType string, data map[string]any) {
	c.addEvent(eventType, data)
}

// IsPaused reports whether the simulation is currently paused, polled by the
// simulation driver's pacing loop.
func (c *Coordinator) IsPaused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.simPaused
}

// SeedScenarioMetadata stamps the graph's scenario fields and clock at the
// start of a simulation run.
func (c *Coordinator) SeedScenarioMetadata(scenarioID, scenarioName string, start time.Time) {
	c.Graph.SetScenario(scenarioID, scenarioName, start)
}

// TranscribeVoice records a voice report and routes its transcript through
// the same text-ingestion path as any other free-text signal, per the
// voice surface's transcribe semantics.
func (c *Coordinator) TranscribeVoice(ctx context.Context, transcript, campName, callerLocation string) (*graph.VoiceReport, error) {
	report := c.Graph.AddVoiceReport(graph.VoiceReport{
		ID:             shortID(),
		Transcript:     transcript,
		CampName:       campName,
		CallerLocation: callerLocation,
		CreatedAt:      time.Now().UTC(),
	})
	metadata := map[string]any{}
	if campName != "" {
		metadata["camp_name"] = campName
	}
	if callerLocation != "" {
		metadata["sector"] = callerLocation
	}
	if _, err := c.ProcessSignal(ctx, "text", transcript, metadata); err != nil {
		return nil, err
	}
	c.Broadcast.Broadcast(ctx, "voice_report", report)
	c.addEvent("voice_report", map[string]any{"voice_report_id": report.ID, "camp_name": campName})
	return report, nil
}

func (c *Coordinator) addEvent(eventType string, data map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recentEvents = append(c.recentEvents, Event{ID: shortID(), Type: eventType, Timestamp: time.Now().UTC(), Data: data})
	if len(c.recentEvents) > maxRecentEvents {
		c.recentEvents = c.recentEvents[len(c.recentEvents)-maxRecentEvents:]
	}
}

// RecentEvents returns up to the last n events (all of them if n<=0).
func (c *Coordinator) RecentEvents(n int) []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n <= 0 || n > len(c.recentEvents) {
		n = len(c.recentEvents)
	}
	out := make([]Event, n)
	copy(out, c.recentEvents[len(c.recentEvents)-n:])
	return out
}

func shortID() string {
	return uuid.NewString()[:8]
}
