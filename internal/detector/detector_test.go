package detector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentineldr/core/internal/graph"
	"github.com/sentineldr/core/internal/oracle"
)

// fakeVerificationLLM always reports a contradiction, letting tests exercise
// the detector's alert-creation path without a real oracle backend.
type fakeVerificationLLM struct{}

func (fakeVerificationLLM) Complete(context.Context, string) (string, error) {
	return `{"verdict": "CONTRADICTION", "severity": "high", "recommended_action": "flag_for_human", "overall_confidence": 0.8}`, nil
}

func TestCheckAndRaise_CreatesOneAlertAfterTwoClaims(t *testing.T) {
	g := graph.New()
	d := New(oracle.New(fakeVerificationLLM{}, nil, nil), nil, nil, nil)

	d.Accumulate("Main Street Bridge", newClaim("report-1", "text", "bridge collapsed", 0.72))
	d.CheckAndRaise(context.Background(), g)
	require.Empty(t, g.Contradictions(), "needs at least two claims before a verdict is attempted")

	d.Accumulate("Main Street Bridge", newClaim("report-2", "text", "bridge is intact", 0.89))
	d.CheckAndRaise(context.Background(), g)

	alerts := g.Contradictions()
	require.Len(t, alerts, 1)
	assert.Equal(t, "main_street_bridge", alerts[0].EntityID)
}

func TestCheckAndRaise_AtMostOneAlertPerEntity(t *testing.T) {
	g := graph.New()
	d := New(oracle.New(fakeVerificationLLM{}, nil, nil), nil, nil, nil)

	d.Accumulate("Main Street Bridge", newClaim("r1", "text", "collapsed", 0.7))
	d.Accumulate("Main Street Bridge", newClaim("r2", "text", "intact", 0.8))
	d.CheckAndRaise(context.Background(), g)
	d.Accumulate("Main Street Bridge", newClaim("r3", "text", "collapsed again", 0.6))
	d.Accumulate("Main Street Bridge", newClaim("r4", "text", "still intact", 0.6))
	d.CheckAndRaise(context.Background(), g)

	unresolved := 0
	for _, a := range g.Contradictions() {
		if a.EntityName == "Main Street Bridge" && !a.Resolved {
			unresolved++
		}
	}
	assert.LessOrEqual(t, unresolved, 1)
}

func TestInjectContradiction_UsesForcedVerdict(t *testing.T) {
	g := graph.New()
	d := New(oracle.New(nil, nil, nil), nil, nil, nil)

	alert := d.InjectContradiction(context.Background(), g, "Main Street Bridge", []graph.Claim{
		newClaim("drone-1", "image", "bridge collapsed", 0.72),
		newClaim("radio-1", "audio", "bridge is passable", 0.89),
	}, "CONTRADICTION", "")

	assert.Equal(t, "contradiction", alert.Verdict)
	assert.Equal(t, graph.AlertSeverityHigh, alert.Severity)
	assert.Equal(t, "main_street_bridge", alert.EntityID)
}
