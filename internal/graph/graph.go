package graph

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a mutation references an id that does
	// not exist in the graph.
	ErrNotFound = errors.New("entity not found")
)

// SituationGraph is the top-level aggregate. It owns every entity and is
// the sole place mutations occur. All exported mutation methods take the
// single graph-wide lock; spec §5 explicitly sanctions a single coarse lock
// as the simplest correct discipline at this throughput, and no third-party
// actor/locking library appears anywhere in the retrieval pack for this
// concern.
type SituationGraph struct {
	mu sync.Mutex

	ScenarioID        string
	ScenarioName      string
	ScenarioStartTime time.Time
	CurrentSimTime    time.Time
	LastUpdated       time.Time

	incidents      map[string]*IncidentNode
	resources      map[string]*ResourceNode
	locations      map[string]*LocationNode
	edges          map[string]*GraphEdge
	contradictions map[string]*ContradictionAlert
	actions        map[string]*ActionRecommendation
	plans          map[string]*AllocationPlan
	camps          map[string]*CampRecommendation
	voiceReports   map[string]*VoiceReport

	audit []AuditEvent
}

// New constructs an empty SituationGraph.
func New() *SituationGraph {
	now := time.Now().UTC()
	return &SituationGraph{
		ScenarioStartTime: now,
		CurrentSimTime:    now,
		LastUpdated:       now,
		incidents:         map[string]*IncidentNode{},
		resources:         map[string]*ResourceNode{},
		locations:         map[string]*LocationNode{},
		edges:             map[string]*GraphEdge{},
		contradictions:    map[string]*ContradictionAlert{},
		actions:           map[string]*ActionRecommendation{},
		plans:             map[string]*AllocationPlan{},
		camps:             map[string]*CampRecommendation{},
		voiceReports:      map[string]*VoiceReport{},
	}
}

func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()[:8]
}

func (g *SituationGraph) touch(t time.Time) {
	g.LastUpdated = t
}

func (g *SituationGraph) appendAudit(eventType string, payload map[string]any) {
	g.audit = append(g.audit, AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		Payload:   payload,
	})
}

// ---- incidents ----

// AddIncident inserts a new incident, assigning it an id if none is set.
func (g *SituationGraph) AddIncident(in IncidentNode) *IncidentNode {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().UTC()
	if in.ID == "" {
		in.ID = newID("inc")
	}
	in.CreatedAt = now
	in.UpdatedAt = now
	node := in
	g.incidents[node.ID] = &node
	g.touch(now)
	g.appendAudit("incident_added", map[string]any{"incident_id": node.ID, "urgency": node.Urgency})
	return &node
}

// Incident returns a copy of the incident with the given id.
func (g *SituationGraph) Incident(id string) (IncidentNode, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.incidents[id]
	if !ok {
		return IncidentNode{}, false
	}
	return *n, true
}

// Incidents returns a snapshot copy of all incidents.
func (g *SituationGraph) Incidents() []IncidentNode {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]IncidentNode, 0, len(g.incidents))
	for _, n := range g.incidents {
		out = append(out, *n)
	}
	return out
}

// UpdateIncident applies fn to the incident with the given id under the
// graph lock, bumping updated_at and the graph's last_updated.
func (g *SituationGraph) UpdateIncident(id string, fn func(*IncidentNode)) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.incidents[id]
	if !ok {
		return fmt.Errorf("incident %s: %w", id, ErrNotFound)
	}
	fn(n)
	now := time.Now().UTC()
	n.UpdatedAt = now
	g.touch(now)
	g.appendAudit("incident_updated", map[string]any{"incident_id": id})
	return nil
}

// ---- resources ----

// AddResource inserts a new resource.
func (g *SituationGraph) AddResource(r ResourceNode) *ResourceNode {
	g.mu.Lock()
	defer g.mu.Unlock()
	if r.ID == "" {
		r.ID = newID("res")
	}
	r.UpdatedAt = time.Now().UTC()
	node := r
	g.resources[node.ID] = &node
	g.touch(node.UpdatedAt)
	g.appendAudit("resource_added", map[string]any{"resource_id": node.ID})
	return &node
}

// Resource returns a copy of the resource with the given id.
func (g *SituationGraph) Resource(id string) (ResourceNode, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.resources[id]
	if !ok {
		return ResourceNode{}, false
	}
	return *r, true
}

// Resources returns a snapshot copy of all resources.
func (g *SituationGraph) Resources() []ResourceNode {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]ResourceNode, 0, len(g.resources))
	for _, r := range g.resources {
		out = append(out, *r)
	}
	return out
}

// AvailableResources returns a snapshot copy of resources with
// status = available.
func (g *SituationGraph) AvailableResources() []ResourceNode {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []ResourceNode
	for _, r := range g.resources {
		if r.Status == ResourceAvailable {
			out = append(out, *r)
		}
	}
	return out
}

// UpdateResource applies fn to the resource with the given id.
func (g *SituationGraph) UpdateResource(id string, fn func(*ResourceNode)) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.resources[id]
	if !ok {
		return fmt.Errorf("resource %s: %w", id, ErrNotFound)
	}
	fn(r)
	r.UpdatedAt = time.Now().UTC()
	g.touch(r.UpdatedAt)
	g.appendAudit("resource_updated", map[string]any{"resource_id": id})
	return nil
}

// ---- locations ----

// AddLocation inserts a new location node.
func (g *SituationGraph) AddLocation(l LocationNode) *LocationNode {
	g.mu.Lock()
	defer g.mu.Unlock()
	if l.ID == "" {
		l.ID = newID("loc")
	}
	l.UpdatedAt = time.Now().UTC()
	node := l
	g.locations[node.ID] = &node
	g.touch(node.UpdatedAt)
	g.appendAudit("location_added", map[string]any{"location_id": node.ID})
	return &node
}

// Locations returns a snapshot copy of all location nodes.
func (g *SituationGraph) Locations() []LocationNode {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]LocationNode, 0, len(g.locations))
	for _, l := range g.locations {
		out = append(out, *l)
	}
	return out
}

// ---- edges ----

// AddEdge inserts a new informational edge between two entity ids.
func (g *SituationGraph) AddEdge(e GraphEdge) *GraphEdge {
	g.mu.Lock()
	defer g.mu.Unlock()
	if e.ID == "" {
		e.ID = newID("edge")
	}
	edge := e
	g.edges[edge.ID] = &edge
	g.touch(time.Now().UTC())
	return &edge
}

// ---- contradictions ----

// AddContradiction inserts a new, unresolved contradiction alert.
func (g *SituationGraph) AddContradiction(a ContradictionAlert) *ContradictionAlert {
	g.mu.Lock()
	defer g.mu.Unlock()
	if a.ID == "" {
		a.ID = newID("alert")
	}
	a.CreatedAt = time.Now().UTC()
	alert := a
	g.contradictions[alert.ID] = &alert
	g.touch(alert.CreatedAt)
	g.appendAudit("contradiction_added", map[string]any{"alert_id": alert.ID, "entity_name": alert.EntityName, "verdict": alert.Verdict})
	return &alert
}

// Contradiction returns a copy of the alert with the given id.
func (g *SituationGraph) Contradiction(id string) (ContradictionAlert, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	a, ok := g.contradictions[id]
	if !ok {
		return ContradictionAlert{}, false
	}
	return *a, true
}

// Contradictions returns a snapshot copy of all alerts.
func (g *SituationGraph) Contradictions() []ContradictionAlert {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]ContradictionAlert, 0, len(g.contradictions))
	for _, a := range g.contradictions {
		out = append(out, *a)
	}
	return out
}

// ResolveContradiction marks an alert resolved with the given decision.
// Resolving an already-resolved alert is a no-op: it returns the existing
// record unchanged.
func (g *SituationGraph) ResolveContradiction(id, decision, resolvedBy string) (ContradictionAlert, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	a, ok := g.contradictions[id]
	if !ok {
		return ContradictionAlert{}, fmt.Errorf("alert %s: %w", id, ErrNotFound)
	}
	if a.Resolved {
		return *a, nil
	}
	now := time.Now().UTC()
	a.Resolved = true
	a.Resolution = decision
	a.ResolvedBy = resolvedBy
	a.ResolvedAt = &now
	g.touch(now)
	g.appendAudit("contradiction_resolved", map[string]any{"alert_id": id, "decision": decision})
	return *a, nil
}

// ---- actions ----

// AddAction inserts a new pending action recommendation.
func (g *SituationGraph) AddAction(a ActionRecommendation) *ActionRecommendation {
	g.mu.Lock()
	defer g.mu.Unlock()
	if a.ID == "" {
		a.ID = newID("act")
	}
	a.CreatedAt = time.Now().UTC()
	if a.Status == "" {
		a.Status = ActionPending
	}
	action := a
	g.actions[action.ID] = &action
	g.touch(action.CreatedAt)
	g.appendAudit("action_added", map[string]any{"action_id": action.ID, "target_incident_id": action.TargetIncidentID})
	return &action
}

// Action returns a copy of the action with the given id.
func (g *SituationGraph) Action(id string) (ActionRecommendation, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	a, ok := g.actions[id]
	if !ok {
		return ActionRecommendation{}, false
	}
	return *a, true
}

// Actions returns a snapshot copy of all actions.
func (g *SituationGraph) Actions() []ActionRecommendation {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]ActionRecommendation, 0, len(g.actions))
	for _, a := range g.actions {
		out = append(out, *a)
	}
	return out
}

// PendingActionCount returns the number of actions with status = pending.
func (g *SituationGraph) PendingActionCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, a := range g.actions {
		if a.Status == ActionPending {
			n++
		}
	}
	return n
}

// ApproveAction atomically: sets the action to approved, stamps
// decided_at (decided_by is not set); for each listed resource id, sets
// status=dispatched, assigned_incident, destination, eta_minutes=8; for the
// target incident, sets status=responding and appends the resource ids
// (deduped).
//
// If the action is already decided, it is returned unchanged and nothing is
// dispatched. A listed resource that is missing or no longer available is
// skipped, and the remaining available resources are still dispatched
// (spec's "exactly one succeeds" boundary case is enforced at the
// per-resource level, not the whole action).
func (g *SituationGraph) ApproveAction(id string) (ActionRecommendation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	a, ok := g.actions[id]
	if !ok {
		return ActionRecommendation{}, fmt.Errorf("action %s: %w", id, ErrNotFound)
	}
	if a.Status != ActionPending {
		return *a, nil
	}

	now := time.Now().UTC()
	a.Status = ActionApproved
	a.DecidedAt = &now

	var dispatched []string
	for _, rid := range a.ResourcesToAllocate {
		r, ok := g.resources[rid]
		if !ok || r.Status != ResourceAvailable {
			continue // second concurrent approval, or stale id: resource already taken
		}
		r.Status = ResourceDispatched
		r.AssignedIncident = a.TargetIncidentID
		r.Destination = a.TargetLocation
		eta := dispatchETAMinutes
		r.ETAMinutes = &eta
		r.UpdatedAt = now
		dispatched = append(dispatched, rid)
	}

	if a.TargetIncidentID != "" {
		if inc, ok := g.incidents[a.TargetIncidentID]; ok {
			inc.Status = IncidentResponding
			inc.AssignedResources = dedupAppend(inc.AssignedResources, dispatched)
			inc.UpdatedAt = now
		}
	}

	g.touch(now)
	g.appendAudit("action_approved", map[string]any{"action_id": id, "dispatched": dispatched})
	return *a, nil
}

// RejectAction sets an action's status to rejected, stamping decided_at.
func (g *SituationGraph) RejectAction(id, reason string) (ActionRecommendation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	a, ok := g.actions[id]
	if !ok {
		return ActionRecommendation{}, fmt.Errorf("action %s: %w", id, ErrNotFound)
	}
	if a.Status != ActionPending {
		return *a, nil
	}
	now := time.Now().UTC()
	a.Status = ActionRejected
	a.DecidedAt = &now
	g.touch(now)
	g.appendAudit("action_rejected", map[string]any{"action_id": id, "reason": reason})
	return *a, nil
}

// ---- manual assignment ----

// AssignResourceManual mirrors ApproveAction's dispatch semantics for a
// single (resource, incident) pair.
func (g *SituationGraph) AssignResourceManual(resourceID, incidentID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.resources[resourceID]
	if !ok {
		return fmt.Errorf("resource %s: %w", resourceID, ErrNotFound)
	}
	inc, ok := g.incidents[incidentID]
	if !ok {
		return fmt.Errorf("incident %s: %w", incidentID, ErrNotFound)
	}
	now := time.Now().UTC()
	r.Status = ResourceDispatched
	r.AssignedIncident = incidentID
	dest := inc.Location
	r.Destination = &dest
	eta := dispatchETAMinutes
	r.ETAMinutes = &eta
	r.UpdatedAt = now

	inc.Status = IncidentResponding
	inc.AssignedResources = dedupAppend(inc.AssignedResources, []string{resourceID})
	inc.UpdatedAt = now

	g.touch(now)
	g.appendAudit("resource_assigned", map[string]any{"resource_id": resourceID, "incident_id": incidentID})
	return nil
}

// UnassignResource reverses AssignResourceManual/ApproveAction for one
// resource: it returns to available and is dropped from its incident's list.
func (g *SituationGraph) UnassignResource(resourceID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.resources[resourceID]
	if !ok {
		return fmt.Errorf("resource %s: %w", resourceID, ErrNotFound)
	}
	incidentID := r.AssignedIncident
	now := time.Now().UTC()
	r.Status = ResourceAvailable
	r.AssignedIncident = ""
	r.Destination = nil
	r.ETAMinutes = nil
	r.UpdatedAt = now

	if incidentID != "" {
		if inc, ok := g.incidents[incidentID]; ok {
			inc.AssignedResources = removeString(inc.AssignedResources, resourceID)
			inc.UpdatedAt = now
		}
	}
	g.touch(now)
	g.appendAudit("resource_unassigned", map[string]any{"resource_id": resourceID, "incident_id": incidentID})
	return nil
}

// ---- plans, camps, voice reports ----

// AddAllocationPlan inserts a new allocation plan.
func (g *SituationGraph) AddAllocationPlan(p AllocationPlan) *AllocationPlan {
	g.mu.Lock()
	defer g.mu.Unlock()
	if p.ID == "" {
		p.ID = newID("plan")
	}
	p.CreatedAt = time.Now().UTC()
	if p.Status == "" {
		p.Status = ActionPending
	}
	plan := p
	g.plans[plan.ID] = &plan
	g.touch(plan.CreatedAt)
	g.appendAudit("allocation_plan_added", map[string]any{"plan_id": plan.ID})
	return &plan
}

// Plan returns a copy of the allocation plan with the given id.
func (g *SituationGraph) Plan(id string) (AllocationPlan, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.plans[id]
	if !ok {
		return AllocationPlan{}, false
	}
	return *p, true
}

// ApprovePlan marks an allocation plan approved and, for each of its
// resource assignments whose resource is still available, dispatches that
// resource to its target incident exactly as ApproveAction does.
func (g *SituationGraph) ApprovePlan(id string) (AllocationPlan, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.plans[id]
	if !ok {
		return AllocationPlan{}, fmt.Errorf("plan %s: %w", id, ErrNotFound)
	}
	if p.Status != ActionPending {
		return *p, nil
	}

	now := time.Now().UTC()
	p.Status = ActionApproved
	p.DecidedAt = &now

	for _, assignment := range p.ResourceAssignments {
		r, ok := g.resources[assignment.ResourceID]
		if !ok || r.Status != ResourceAvailable {
			continue
		}
		inc, ok := g.incidents[assignment.TargetIncidentID]
		if !ok {
			continue
		}
		r.Status = ResourceDispatched
		r.AssignedIncident = assignment.TargetIncidentID
		dest := inc.Location
		r.Destination = &dest
		eta := dispatchETAMinutes
		if assignment.EstimatedETAMinutes != nil {
			eta = *assignment.EstimatedETAMinutes
		}
		r.ETAMinutes = &eta
		r.UpdatedAt = now

		inc.Status = IncidentResponding
		inc.AssignedResources = dedupAppend(inc.AssignedResources, []string{assignment.ResourceID})
		inc.UpdatedAt = now
	}

	g.touch(now)
	g.appendAudit("allocation_plan_approved", map[string]any{"plan_id": id})
	return *p, nil
}

// AddCamp inserts a new camp recommendation.
func (g *SituationGraph) AddCamp(c CampRecommendation) *CampRecommendation {
	g.mu.Lock()
	defer g.mu.Unlock()
	if c.ID == "" {
		c.ID = newID("camp")
	}
	c.CreatedAt = time.Now().UTC()
	if c.Status == "" {
		c.Status = ActionPending
	}
	camp := c
	g.camps[camp.ID] = &camp
	g.touch(camp.CreatedAt)
	g.appendAudit("camp_added", map[string]any{"camp_id": camp.ID})
	return &camp
}

// Camps returns a snapshot copy of all camp recommendations.
func (g *SituationGraph) Camps() []CampRecommendation {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]CampRecommendation, 0, len(g.camps))
	for _, c := range g.camps {
		out = append(out, *c)
	}
	return out
}

// ApproveCamp marks a camp recommendation approved.
func (g *SituationGraph) ApproveCamp(id string) (CampRecommendation, error) {
	return g.decideCamp(id, ActionApproved)
}

// RejectCamp marks a camp recommendation rejected.
func (g *SituationGraph) RejectCamp(id string) (CampRecommendation, error) {
	return g.decideCamp(id, ActionRejected)
}

func (g *SituationGraph) decideCamp(id, status string) (CampRecommendation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, ok := g.camps[id]
	if !ok {
		return CampRecommendation{}, fmt.Errorf("camp %s: %w", id, ErrNotFound)
	}
	if c.Status != ActionPending {
		return *c, nil
	}
	now := time.Now().UTC()
	c.Status = status
	c.DecidedAt = &now
	g.touch(now)
	g.appendAudit("camp_decided", map[string]any{"camp_id": id, "status": status})
	return *c, nil
}

// AddVoiceReport inserts a new voice report.
func (g *SituationGraph) AddVoiceReport(v VoiceReport) *VoiceReport {
	g.mu.Lock()
	defer g.mu.Unlock()
	if v.ID == "" {
		v.ID = newID("voice")
	}
	v.CreatedAt = time.Now().UTC()
	report := v
	g.voiceReports[report.ID] = &report
	g.touch(report.CreatedAt)
	g.appendAudit("voice_report_added", map[string]any{"voice_id": report.ID})
	return &report
}

// VoiceReports returns a snapshot copy of all voice reports.
func (g *SituationGraph) VoiceReports() []VoiceReport {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]VoiceReport, 0, len(g.voiceReports))
	for _, v := range g.voiceReports {
		out = append(out, *v)
	}
	return out
}

// ---- confidence decay ----

// DecayConfidences reduces every active incident's confidence by
// decay_rate * elapsedMinutes, floored at 0.1. Only status=active incidents
// are affected.
func (g *SituationGraph) DecayConfidences(elapsedMinutes float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := time.Now().UTC()
	for _, inc := range g.incidents {
		if inc.Status != IncidentActive {
			continue
		}
		inc.Confidence -= inc.DecayRate * elapsedMinutes
		if inc.Confidence < minConfidenceFloor {
			inc.Confidence = minConfidenceFloor
		}
		inc.UpdatedAt = now
	}
	g.touch(now)
}

// ---- audit log ----

// AuditByDecision returns audit events whose payload references the given
// decision id (action, alert, camp, or plan id).
func (g *SituationGraph) AuditByDecision(id string) []AuditEvent {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []AuditEvent
	for _, e := range g.audit {
		for _, key := range []string{"action_id", "alert_id", "camp_id", "plan_id"} {
			if v, ok := e.Payload[key]; ok && v == id {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// AuditByIncident returns audit events whose payload references the given
// incident id.
func (g *SituationGraph) AuditByIncident(id string) []AuditEvent {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []AuditEvent
	for _, e := range g.audit {
		if v, ok := e.Payload["incident_id"]; ok && v == id {
			out = append(out, e)
			continue
		}
		if v, ok := e.Payload["target_incident_id"]; ok && v == id {
			out = append(out, e)
		}
	}
	return out
}

// Timeline returns the full, ordered audit log.
func (g *SituationGraph) Timeline() []AuditEvent {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]AuditEvent, len(g.audit))
	copy(out, g.audit)
	return out
}

// ---- stats ----

// Stats is the aggregate view returned by GET /api/graph/stats. An empty
// graph returns all-zeros.
type Stats struct {
	TotalIncidents        int `json:"total_incidents"`
	ActiveIncidents       int `json:"active_incidents"`
	RespondingIncidents   int `json:"responding_incidents"`
	TotalResources        int `json:"total_resources"`
	AvailableResources    int `json:"available_resources"`
	DispatchedResources   int `json:"dispatched_resources"`
	UnresolvedContradictions int `json:"unresolved_contradictions"`
	PendingActions        int `json:"pending_actions"`
}

// GetStats computes the current aggregate view.
func (g *SituationGraph) GetStats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	var s Stats
	s.TotalIncidents = len(g.incidents)
	for _, inc := range g.incidents {
		switch inc.Status {
		case IncidentActive:
			s.ActiveIncidents++
		case IncidentResponding:
			s.RespondingIncidents++
		}
	}
	s.TotalResources = len(g.resources)
	for _, r := range g.resources {
		switch r.Status {
		case ResourceAvailable:
			s.AvailableResources++
		case ResourceDispatched:
			s.DispatchedResources++
		}
	}
	for _, a := range g.contradictions {
		if !a.Resolved {
			s.UnresolvedContradictions++
		}
	}
	s.PendingActions = g.pendingActionCountLocked()
	return s
}

func (g *SituationGraph) pendingActionCountLocked() int {
	n := 0
	for _, a := range g.actions {
		if a.Status == ActionPending {
			n++
		}
	}
	return n
}

// ---- reset ----

// Reset clears every entity and the audit log, and resets scenario
// metadata to a fresh clock.
func (g *SituationGraph) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := time.Now().UTC()
	g.incidents = map[string]*IncidentNode{}
	g.resources = map[string]*ResourceNode{}
	g.locations = map[string]*LocationNode{}
	g.edges = map[string]*GraphEdge{}
	g.contradictions = map[string]*ContradictionAlert{}
	g.actions = map[string]*ActionRecommendation{}
	g.plans = map[string]*AllocationPlan{}
	g.camps = map[string]*CampRecommendation{}
	g.voiceReports = map[string]*VoiceReport{}
	g.audit = nil
	g.ScenarioID = ""
	g.ScenarioName = ""
	g.ScenarioStartTime = now
	g.CurrentSimTime = now
	g.LastUpdated = now
}

// SetSimTime advances the simulated clock.
func (g *SituationGraph) SetSimTime(t time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.CurrentSimTime = t
}

// SetScenario stamps the scenario identity a simulation run starts with.
// ScenarioID/ScenarioName/ScenarioStartTime are otherwise read-only outside
// this file; every write to them must take the lock, so callers (the
// simulation driver included) go through this method rather than the
// exported fields directly.
func (g *SituationGraph) SetScenario(id, name string, start time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ScenarioID = id
	g.ScenarioName = name
	g.ScenarioStartTime = start
	g.CurrentSimTime = start
}

// ScenarioMeta returns the current scenario id, name, sim time, and elapsed
// duration since the scenario started.
func (g *SituationGraph) ScenarioMeta() (id, name string, currentTime time.Time, elapsed time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ScenarioID, g.ScenarioName, g.CurrentSimTime, g.CurrentSimTime.Sub(g.ScenarioStartTime)
}

// Snapshot is the exported, JSON-serializable view of the full graph state,
// the payload every "graph_update" broadcast and GET /api/graph response
// carries. SituationGraph itself is not directly marshalable: its entity
// maps and mutex are unexported so every read goes through the lock.
type Snapshot struct {
	ScenarioID        string                   `json:"scenario_id"`
	ScenarioName      string                   `json:"scenario_name"`
	ScenarioStartTime time.Time                `json:"scenario_start_time"`
	CurrentSimTime    time.Time                `json:"current_sim_time"`
	LastUpdated       time.Time                `json:"last_updated"`
	Incidents         []IncidentNode           `json:"incidents"`
	Resources         []ResourceNode           `json:"resources"`
	Locations         []LocationNode           `json:"locations"`
	Contradictions    []ContradictionAlert     `json:"contradictions"`
	Actions           []ActionRecommendation   `json:"pending_actions"`
	Plans             []AllocationPlan         `json:"allocation_plans"`
	Camps             []CampRecommendation     `json:"camps"`
	VoiceReports      []VoiceReport            `json:"voice_reports"`
}

// Snapshot returns the full current graph state as a plain, JSON-ready
// value — the dashboard's "give me everything" view.
func (g *SituationGraph) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	s := Snapshot{
		ScenarioID:        g.ScenarioID,
		ScenarioName:      g.ScenarioName,
		ScenarioStartTime: g.ScenarioStartTime,
		CurrentSimTime:    g.CurrentSimTime,
		LastUpdated:       g.LastUpdated,
	}
	for _, n := range g.incidents {
		s.Incidents = append(s.Incidents, *n)
	}
	for _, n := range g.resources {
		s.Resources = append(s.Resources, *n)
	}
	for _, n := range g.locations {
		s.Locations = append(s.Locations, *n)
	}
	for _, n := range g.contradictions {
		s.Contradictions = append(s.Contradictions, *n)
	}
	for _, n := range g.actions {
		s.Actions = append(s.Actions, *n)
	}
	for _, n := range g.plans {
		s.Plans = append(s.Plans, *n)
	}
	for _, n := range g.camps {
		s.Camps = append(s.Camps, *n)
	}
	for _, n := range g.voiceReports {
		s.VoiceReports = append(s.VoiceReports, *n)
	}
	return s
}

func dedupAppend(existing []string, add []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, v := range existing {
		seen[v] = true
	}
	out := existing
	for _, v := range add {
		if !seen[v] {
			out = append(out, v)
			seen[v] = true
		}
	}
	return out
}

// removeString returns a new slice omitting target. It never writes through
// items' backing array, since a previously returned Snapshot may still
// reference it.
func removeString(items []string, target string) []string {
	out := make([]string, 0, len(items))
	for _, v := range items {
		if v != target {
			out = append(out, v)
		}
	}
	return out
}
