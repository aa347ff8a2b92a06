package planner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentineldr/core/internal/graph"
	"github.com/sentineldr/core/internal/oracle"
)

func newTestGraphWithCriticalIncident() *graph.SituationGraph {
	g := graph.New()
	g.AddIncident(graph.IncidentNode{Status: graph.IncidentActive, Urgency: graph.UrgencyCritical, DamageLevel: graph.DamageSevere})
	g.AddResource(graph.ResourceNode{Status: graph.ResourceAvailable, ResourceType: "ambulance"})
	return g
}

func TestMaybeTrigger_FiresWhenGatesPass(t *testing.T) {
	g := newTestGraphWithCriticalIncident()
	p := New(oracle.New(nil, nil, nil), nil, nil, nil)

	action := p.MaybeTrigger(context.Background(), g)
	require.NotNil(t, action)
	assert.Equal(t, graph.ActionPending, action.Status)
	assert.NotEmpty(t, action.ResourcesToAllocate)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), action.DecisionDeadline, 2*time.Second)
}

func TestMaybeTrigger_NoAvailableResourcesBlocks(t *testing.T) {
	g := graph.New()
	g.AddIncident(graph.IncidentNode{Status: graph.IncidentActive, Urgency: graph.UrgencyCritical})
	p := New(oracle.New(nil, nil, nil), nil, nil, nil)
	assert.Nil(t, p.MaybeTrigger(context.Background(), g))
}

func TestMaybeTrigger_NoCriticalIncidentsBlocks(t *testing.T) {
	g := graph.New()
	g.AddResource(graph.ResourceNode{Status: graph.ResourceAvailable})
	p := New(oracle.New(nil, nil, nil), nil, nil, nil)
	assert.Nil(t, p.MaybeTrigger(context.Background(), g))
}

func TestMaybeTrigger_CooldownAllowsAtMostOnePerWindow(t *testing.T) {
	g := newTestGraphWithCriticalIncident()
	p := New(oracle.New(nil, nil, nil), nil, nil, nil)

	fired := 0
	for i := 0; i < 5; i++ {
		if p.MaybeTrigger(context.Background(), g) != nil {
			fired++
		}
	}
	assert.Equal(t, 1, fired, "cooldown must allow at most one invocation within the window")
}

func TestMaybeTrigger_PendingActionCapBlocks(t *testing.T) {
	g := newTestGraphWithCriticalIncident()
	g.AddAction(graph.ActionRecommendation{Status: graph.ActionPending})
	g.AddAction(graph.ActionRecommendation{Status: graph.ActionPending})
	g.AddAction(graph.ActionRecommendation{Status: graph.ActionPending})
	p := New(oracle.New(nil, nil, nil), nil, nil, nil)
	assert.Nil(t, p.MaybeTrigger(context.Background(), g))
}
