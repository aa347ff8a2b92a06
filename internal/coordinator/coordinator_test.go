package coordinator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentineldr/core/internal/broadcast"
	"github.com/sentineldr/core/internal/detector"
	"github.com/sentineldr/core/internal/graph"
	"github.com/sentineldr/core/internal/oracle"
	"github.com/sentineldr/core/internal/planner"
)

func newTestCoordinator() *Coordinator {
	g := graph.New()
	o := oracle.New(nil, nil, nil)
	return New(g, o, detector.New(o, nil, nil, nil), planner.New(o, nil, nil, nil), broadcast.New(nil), nil, nil, nil)
}

func TestProcessSignal_ImageCreatesIncident(t *testing.T) {
	c := newTestCoordinator()
	result, err := c.ProcessSignal(context.Background(), "image", "collapsed building", map[string]any{"sector": "3"})
	require.NoError(t, err)
	assert.Equal(t, "vision", result["agent"])
	assert.Len(t, c.Graph.Incidents(), 1)
}

func TestProcessSignal_TextNeverCreatesIncident(t *testing.T) {
	c := newTestCoordinator()
	_, err := c.ProcessSignal(context.Background(), "text", "reports of a collapse on Elm street", map[string]any{"sector": "2"})
	require.NoError(t, err)
	assert.Empty(t, c.Graph.Incidents())
}

func TestProcessSignal_UnknownTypeErrors(t *testing.T) {
	c := newTestCoordinator()
	_, err := c.ProcessSignal(context.Background(), "smell", "", nil)
	assert.Error(t, err)
}

func TestAssignAndUnassignResource(t *testing.T) {
	c := newTestCoordinator()
	inc := c.Graph.AddIncident(graph.IncidentNode{Status: graph.IncidentActive})
	res := c.Graph.AddResource(graph.ResourceNode{Status: graph.ResourceAvailable})

	require.NoError(t, c.AssignResource(context.Background(), res.ID, inc.ID))
	got, ok := c.Graph.Resource(res.ID)
	require.True(t, ok)
	assert.Equal(t, graph.ResourceDispatched, got.Status)

	require.NoError(t, c.UnassignResource(context.Background(), res.ID))
	got, ok = c.Graph.Resource(res.ID)
	require.True(t, ok)
	assert.Equal(t, graph.ResourceAvailable, got.Status)
}

func TestApproveAndRejectCamp(t *testing.T) {
	c := newTestCoordinator()
	camp := c.Graph.AddCamp(graph.CampRecommendation{Name: "Riverside Camp", Status: graph.ActionPending})

	approved, err := c.ApproveCamp(context.Background(), camp.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)

	camp2 := c.Graph.AddCamp(graph.CampRecommendation{Name: "Hillside Camp", Status: graph.ActionPending})
	rejected, err := c.RejectCamp(context.Background(), camp2.ID)
	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected.Status)
}

func TestSeedScenarioMetadataAndStatus(t *testing.T) {
	c := newTestCoordinator()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.SeedScenarioMetadata("earthquake_001", "Metro City 6.8 Earthquake", start)

	status := c.SimulationStatus()
	assert.Equal(t, "earthquake_001", status.ScenarioID)
	assert.Equal(t, "Metro City 6.8 Earthquake", status.ScenarioName)
	assert.False(t, status.Running)
}

func TestTranscribeVoiceRoutesThroughTextIngestion(t *testing.T) {
	c := newTestCoordinator()
	report, err := c.TranscribeVoice(context.Background(), "Family trapped near Oak and 5th", "Riverside Camp", "3")
	require.NoError(t, err)
	assert.Equal(t, "Riverside Camp", report.CampName)
	assert.Len(t, c.Graph.VoiceReports(), 1)
	assert.Empty(t, c.Graph.Incidents(), "text ingestion never materializes an incident")
}

func TestRecentEventsBounded(t *testing.T) {
	c := newTestCoordinator()
	for i := 0; i < maxRecentEvents+10; i++ {
		c.AddEvent("test_event", map[string]any{"i": i})
	}
	assert.Len(t, c.RecentEvents(0), maxRecentEvents)
}

func TestStartDebate_FourTurnsOverContradiction(t *testing.T) {
	c := newTestCoordinator()
	alert := c.Graph.AddContradiction(graph.ContradictionAlert{
		EntityName: "bridge_status",
		Claims: []graph.Claim{
			{Source: "news", Claim: "bridge is collapsed"},
			{Source: "field_report", Claim: "bridge is intact"},
		},
	})
	turns, err := c.StartDebate(context.Background(), alert.ID)
	require.NoError(t, err)
	require.Len(t, turns, 4)
	assert.Equal(t, "synthesis", turns[3].Role)
}

func TestStartDebate_UnknownAlertErrors(t *testing.T) {
	c := newTestCoordinator()
	_, err := c.StartDebate(context.Background(), "does-not-exist")
	assert.Error(t, err)
}
