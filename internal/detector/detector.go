// Package detector implements the Contradiction Detector: claim
// accumulation per named entity, verification-triggered alert creation, and
// the at-most-one-unresolved-alert-per-entity invariant.
package detector

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sentineldr/core/internal/graph"
	"github.com/sentineldr/core/internal/oracle"
	"github.com/sentineldr/core/internal/telemetry"
)

// Detector holds the two process-scoped structures from spec §4.3.
type Detector struct {
	mu             sync.Mutex
	claimsByEntity map[string][]graph.Claim
	handled        map[string]bool

	oracle  *oracle.Oracle
	log     telemetry.Logger
	metrics telemetry.Metrics
	tracer  telemetry.Tracer
}

// New constructs an empty Detector.
func New(o *oracle.Oracle, log telemetry.Logger, metrics telemetry.Metrics, tracer telemetry.Tracer) *Detector {
	if log == nil {
		log = telemetry.NewNoopLogger()
	}
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	if tracer == nil {
		tracer = telemetry.NewNoopTracer()
	}
	return &Detector{
		claimsByEntity: map[string][]graph.Claim{},
		handled:        map[string]bool{},
		oracle:         o,
		log:            log,
		metrics:        metrics,
		tracer:         tracer,
	}
}

// Accumulate appends one claim to the entity's claim list, unless the entity
// is already handled (in which case it is silently dropped). name must be a
// parsed, non-empty entity name; callers skip the call otherwise.
func (d *Detector) Accumulate(name string, claim graph.Claim) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.handled[name] {
		return
	}
	d.claimsByEntity[name] = append(d.claimsByEntity[name], claim)
}

// CheckAndRaise iterates a snapshot of accumulated entity names and, for the
// first entity with >=2 claims not yet handled, invokes the Verification
// analyzer. On a CONTRADICTION or TEMPORAL_GAP verdict it creates exactly
// one alert in g, marks the entity handled, clears its claim list, and
// returns the created alert — then stops, since at most one alert is raised
// per call. On any analyzer error, or when no entity qualifies, it returns
// nil and (for an analyzer error) clears the entity's claims to avoid an
// infinite retry loop.
func (d *Detector) CheckAndRaise(ctx context.Context, g *graph.SituationGraph) *graph.ContradictionAlert {
	name, claims, ok := d.firstPendingEntity()
	if !ok {
		return nil
	}

	ctx, span := d.tracer.Start(ctx, "detector.check_and_raise")
	defer span.End()

	claimStrings := make([]string, len(claims))
	for i, c := range claims {
		claimStrings[i] = c.Claim
	}
	out := d.oracle.AnalyzeVerification(ctx, oracle.VerificationInput{EntityName: name, Claims: claimStrings})

	verdict, _ := out.Data["verdict"].(string)
	verdict = strings.ToUpper(strings.TrimSpace(verdict))

	d.mu.Lock()
	// Re-check under lock: another goroutine may have already handled this
	// entity while the (possibly slow) verification call was in flight.
	if d.handled[name] {
		d.mu.Unlock()
		return nil
	}
	switch verdict {
	case strings.ToUpper(graph.VerdictContradiction), strings.ToUpper(graph.VerdictTemporalGap):
		d.handled[name] = true
		delete(d.claimsByEntity, name)
		d.mu.Unlock()

		severity, _ := out.Data["severity"].(string)
		if severity == "" {
			severity = graph.AlertSeverityMedium
		}
		recommended, _ := out.Data["recommended_action"].(string)
		if recommended == "" {
			recommended = graph.RecommendFlagForHuman
		}
		alert := g.AddContradiction(graph.ContradictionAlert{
			EntityType:        "named_entity",
			EntityName:        name,
			EntityID:          slugify(name),
			Claims:            claims,
			Verdict:           strings.ToLower(verdict),
			Severity:          severity,
			RecommendedAction: recommended,
			Urgency:           graph.UrgencyHigh,
		})
		d.log.Info(ctx, "contradiction raised", "entity", name, "alert_id", alert.ID, "verdict", alert.Verdict)
		d.metrics.IncCounter("detector.contradictions_raised", 1, "verdict", strings.ToLower(verdict))
		return alert
	default:
		delete(d.claimsByEntity, name)
		d.mu.Unlock()
		return nil
	}
}

func (d *Detector) firstPendingEntity() (string, []graph.Claim, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	names := make([]string, 0, len(d.claimsByEntity))
	for n := range d.claimsByEntity {
		names = append(names, n)
	}
	for _, n := range names {
		if d.handled[n] {
			continue
		}
		if claims := d.claimsByEntity[n]; len(claims) >= 2 {
			out := make([]graph.Claim, len(claims))
			copy(out, claims)
			return n, out, true
		}
	}
	return "", nil, false
}

// Reset clears both process-scoped structures (used by simulation reset).
func (d *Detector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.claimsByEntity = map[string][]graph.Claim{}
	d.handled = map[string]bool{}
}

// InjectContradiction is the simulation driver's unconditional path: it
// pushes claims directly, calls Verification, and creates the alert
// regardless of verdict — using forcedVerdict when set, overriding any
// downgrade the analyzer would otherwise apply.
func (d *Detector) InjectContradiction(ctx context.Context, g *graph.SituationGraph, name string, claims []graph.Claim, forcedVerdict, temporalAnalysis string) *graph.ContradictionAlert {
	d.mu.Lock()
	d.claimsByEntity[name] = claims
	d.mu.Unlock()

	claimStrings := make([]string, len(claims))
	for i, c := range claims {
		claimStrings[i] = c.Claim
	}
	out := d.oracle.AnalyzeVerification(ctx, oracle.VerificationInput{EntityName: name, Claims: claimStrings})
	verdict, _ := out.Data["verdict"].(string)
	severity, _ := out.Data["severity"].(string)
	if severity == "" {
		severity = graph.AlertSeverityMedium
	}
	if forcedVerdict != "" {
		verdict = forcedVerdict
		severity = graph.AlertSeverityHigh
	}

	d.mu.Lock()
	d.handled[name] = true
	delete(d.claimsByEntity, name)
	d.mu.Unlock()

	alert := g.AddContradiction(graph.ContradictionAlert{
		EntityType:        "named_entity",
		EntityID:          slugify(name),
		EntityName:        name,
		Claims:            claims,
		Verdict:           strings.ToLower(verdict),
		Severity:          severity,
		TemporalAnalysis:  temporalAnalysis,
		RecommendedAction: graph.RecommendFlagForHuman,
		Urgency:           graph.UrgencyHigh,
	})
	return alert
}

func slugify(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	return name
}

func newClaim(source, sourceType, claim string, confidence float64) graph.Claim {
	return NewClaim(source, sourceType, claim, confidence)
}

// NewClaim builds a timestamped Claim, the shape callers accumulate via
// Accumulate or pass to InjectContradiction.
func NewClaim(source, sourceType, claim string, confidence float64) graph.Claim {
	return graph.Claim{Source: source, SourceType: sourceType, Claim: claim, Confidence: confidence, Timestamp: time.Now().UTC()}
}
