// Package planner implements the Planning Trigger: the cooldown/backpressure
// gate that decides when to invoke the Planning analyzer and materialize an
// ActionRecommendation.
package planner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sentineldr/core/internal/graph"
	"github.com/sentineldr/core/internal/oracle"
	"github.com/sentineldr/core/internal/telemetry"
)

const (
	// defaultCooldown is the minimum wall-clock interval between two
	// Planning-analyzer invocations.
	defaultCooldown = 20 * time.Second
	// maxPendingActions caps the pending-action queue; above this, the
	// trigger does not fire even if the other gates pass.
	maxPendingActions = 3
	// decisionWindow is how far in the future a materialized action's
	// decision_deadline is set.
	decisionWindow = 5 * time.Minute
	// maxResourcesInContext caps how many available resources are included
	// in the Planning analyzer's context.
	maxResourcesInContext = 6
)

// Planner holds the planning clock and cooldown configuration.
type Planner struct {
	mu       sync.Mutex
	lastFire time.Time
	cooldown time.Duration
	oracle   *oracle.Oracle
	log      telemetry.Logger
	metrics  telemetry.Metrics
	tracer   telemetry.Tracer
}

// New constructs a Planner with the default cooldown.
func New(o *oracle.Oracle, log telemetry.Logger, metrics telemetry.Metrics, tracer telemetry.Tracer) *Planner {
	if log == nil {
		log = telemetry.NewNoopLogger()
	}
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	if tracer == nil {
		tracer = telemetry.NewNoopTracer()
	}
	return &Planner{cooldown: defaultCooldown, oracle: o, log: log, metrics: metrics, tracer: tracer}
}

// MaybeTrigger checks all of the spec §4.4 gates and, if they pass, stamps
// the planning clock (before calling the analyzer, so concurrent signals
// cannot double-trigger), builds context, and materializes one pending
// ActionRecommendation. Returns nil if any gate fails.
func (p *Planner) MaybeTrigger(ctx context.Context, g *graph.SituationGraph) *graph.ActionRecommendation {
	incidents := g.Incidents()
	var unassignedCritical []graph.IncidentNode
	for _, inc := range incidents {
		if inc.Status != graph.IncidentActive {
			continue
		}
		if inc.Urgency != graph.UrgencyCritical && inc.Urgency != graph.UrgencyHigh {
			continue
		}
		unassignedCritical = append(unassignedCritical, inc)
	}
	if len(unassignedCritical) == 0 {
		return nil
	}

	available := g.AvailableResources()
	if len(available) == 0 {
		return nil
	}

	if g.PendingActionCount() >= maxPendingActions {
		return nil
	}

	if !p.stampClockIfCooledDown() {
		p.metrics.IncCounter("planner.skipped_cooldown", 1)
		return nil
	}

	ctx, span := p.tracer.Start(ctx, "planner.maybe_trigger")
	defer span.End()

	target := unassignedCritical[0]
	resourceContext := make([]string, 0, maxResourcesInContext)
	resourceIDs := make([]string, 0, maxResourcesInContext)
	for i, r := range available {
		if i >= maxResourcesInContext {
			break
		}
		resourceContext = append(resourceContext, fmt.Sprintf("%s (%s)", r.ID, r.ResourceType))
		resourceIDs = append(resourceIDs, r.ID)
	}
	incidentContext := make([]string, 0, len(unassignedCritical))
	for _, inc := range unassignedCritical {
		incidentContext = append(incidentContext, fmt.Sprintf("%s: %s urgency, %s damage", inc.ID, inc.Urgency, inc.DamageLevel))
	}

	out := p.oracle.AnalyzePlanning(ctx, oracle.PlanningContext{
		ActiveIncidents:         incidentContext,
		AvailableResources:      resourceContext,
		HospitalCapacitySummary: hospitalSummary(g),
		RoadWeatherHints:        "no known road closures; weather nominal",
	})

	rationale, _ := out.Data["rationale"].(string)
	if rationale == "" {
		rationale = "Dispatch available resources to the highest-urgency unassigned incident."
	}
	actionType, _ := out.Data["action_type"].(string)
	if actionType == "" {
		actionType = "dispatch"
	}

	action := g.AddAction(graph.ActionRecommendation{
		ActionType:            actionType,
		TargetIncidentID:      target.ID,
		TargetLocation:        &target.Location,
		ResourcesToAllocate:   pickResources(resourceIDs, target),
		Rationale:             rationale,
		SupportingFactors:     toStringSlice(out.Data["supporting_factors"]),
		Confidence:            out.Confidence,
		Tradeoffs:             toStringSlice(out.Data["tradeoffs"]),
		UncertaintyFactors:    toStringSlice(out.Data["uncertainty_factors"]),
		RequiresHumanApproval: true,
		DecisionDeadline:      time.Now().UTC().Add(decisionWindow),
		TimeSensitivity:       toString(out.Data["time_sensitivity"]),
		Status:                graph.ActionPending,
	})
	p.log.Info(ctx, "planning action recommended", "action_id", action.ID, "incident_id", target.ID, "action_type", actionType)
	return action
}

// stampClockIfCooledDown atomically checks and stamps the planning clock: if
// the cooldown has elapsed, it stamps "now" and returns true; otherwise it
// leaves the clock untouched and returns false. This single critical section
// is what prevents two concurrent signals from both passing the gate.
func (p *Planner) stampClockIfCooledDown() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	if !p.lastFire.IsZero() && now.Sub(p.lastFire) < p.cooldown {
		return false
	}
	p.lastFire = now
	return true
}

func hospitalSummary(g *graph.SituationGraph) string {
	var total, used int
	any := false
	for _, l := range g.Locations() {
		if l.LocationType != "hospital" || l.CapacityTotal == nil {
			continue
		}
		any = true
		total += *l.CapacityTotal
		if l.CapacityUsed != nil {
			used += *l.CapacityUsed
		}
	}
	if !any {
		return "no hospital capacity data available"
	}
	return fmt.Sprintf("%d/%d beds in use across known hospitals", used, total)
}

func pickResources(available []string, target graph.IncidentNode) []string {
	if len(available) == 0 {
		return nil
	}
	n := 2
	if len(available) < n {
		n = len(available)
	}
	return append([]string(nil), available[:n]...)
}

func toStringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		if strs, ok := v.([]string); ok {
			return strs
		}
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}
