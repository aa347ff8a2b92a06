package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproveAction_DispatchesAtomically(t *testing.T) {
	g := New()
	inc := g.AddIncident(IncidentNode{IncidentType: "collapse", Status: IncidentActive, Confidence: 0.8})
	amb7 := g.AddResource(ResourceNode{ResourceType: "ambulance", UnitID: "AMB-7", Status: ResourceAvailable})
	amb12 := g.AddResource(ResourceNode{ResourceType: "ambulance", UnitID: "AMB-12", Status: ResourceAvailable})
	amb15 := g.AddResource(ResourceNode{ResourceType: "ambulance", UnitID: "AMB-15", Status: ResourceAvailable})

	action := g.AddAction(ActionRecommendation{
		ActionType:          "dispatch",
		TargetIncidentID:    inc.ID,
		ResourcesToAllocate: []string{amb7.ID, amb12.ID, amb15.ID},
	})

	decided, err := g.ApproveAction(action.ID)
	require.NoError(t, err)
	assert.Equal(t, ActionApproved, decided.Status)
	assert.NotNil(t, decided.DecidedAt)

	gotInc, ok := g.Incident(inc.ID)
	require.True(t, ok)
	assert.Equal(t, IncidentResponding, gotInc.Status)
	assert.ElementsMatch(t, []string{amb7.ID, amb12.ID, amb15.ID}, gotInc.AssignedResources)

	for _, id := range []string{amb7.ID, amb12.ID, amb15.ID} {
		r, ok := g.Resource(id)
		require.True(t, ok)
		assert.Equal(t, ResourceDispatched, r.Status)
		assert.Equal(t, inc.ID, r.AssignedIncident)
		require.NotNil(t, r.ETAMinutes)
		assert.Equal(t, 8, *r.ETAMinutes)
	}
}

func TestApproveAction_ConcurrentResourceContention(t *testing.T) {
	g := New()
	inc := g.AddIncident(IncidentNode{Status: IncidentActive})
	res := g.AddResource(ResourceNode{Status: ResourceAvailable})

	a1 := g.AddAction(ActionRecommendation{TargetIncidentID: inc.ID, ResourcesToAllocate: []string{res.ID}})
	a2 := g.AddAction(ActionRecommendation{TargetIncidentID: inc.ID, ResourcesToAllocate: []string{res.ID}})

	d1, err := g.ApproveAction(a1.ID)
	require.NoError(t, err)
	d2, err := g.ApproveAction(a2.ID)
	require.NoError(t, err)

	assert.Equal(t, ActionApproved, d1.Status)
	assert.Equal(t, ActionApproved, d2.Status)

	r, ok := g.Resource(res.ID)
	require.True(t, ok)
	assert.Equal(t, ResourceDispatched, r.Status)

	gotInc, _ := g.Incident(inc.ID)
	assert.Len(t, gotInc.AssignedResources, 1, "resource must only be dispatched once across both approvals")
}

func TestManualAssignUnassign_RoundTrips(t *testing.T) {
	g := New()
	inc := g.AddIncident(IncidentNode{Status: IncidentActive})
	res := g.AddResource(ResourceNode{Status: ResourceAvailable})

	require.NoError(t, g.AssignResourceManual(res.ID, inc.ID))
	require.NoError(t, g.UnassignResource(res.ID))

	r, _ := g.Resource(res.ID)
	assert.Equal(t, ResourceAvailable, r.Status)
	assert.Empty(t, r.AssignedIncident)
	assert.Nil(t, r.Destination)

	gotInc, _ := g.Incident(inc.ID)
	assert.NotContains(t, gotInc.AssignedResources, res.ID)
}

func TestResolveContradiction_IdempotentOnAlreadyResolved(t *testing.T) {
	g := New()
	alert := g.AddContradiction(ContradictionAlert{EntityName: "Bridge"})
	first, err := g.ResolveContradiction(alert.ID, "confirmed", "operator-1")
	require.NoError(t, err)
	second, err := g.ResolveContradiction(alert.ID, "different-decision", "operator-2")
	require.NoError(t, err)
	assert.Equal(t, first, second, "resolving an already-resolved alert is a no-op")
}

func TestDecayConfidences_MonotonicWithFloor(t *testing.T) {
	g := New()
	i1 := g.AddIncident(IncidentNode{Status: IncidentActive, Confidence: 0.85, DecayRate: 0.01})
	i2 := g.AddIncident(IncidentNode{Status: IncidentActive, Confidence: 0.85, DecayRate: 0.01})

	g.DecayConfidences(5.0)
	got1, _ := g.Incident(i1.ID)
	got2, _ := g.Incident(i2.ID)
	assert.InDelta(t, 0.80, got1.Confidence, 1e-9)
	assert.InDelta(t, 0.80, got2.Confidence, 1e-9)

	g.DecayConfidences(1000)
	got1, _ = g.Incident(i1.ID)
	got2, _ = g.Incident(i2.ID)
	assert.Equal(t, minConfidenceFloor, got1.Confidence)
	assert.Equal(t, minConfidenceFloor, got2.Confidence)
}

func TestGetStats_EmptyGraphIsAllZeros(t *testing.T) {
	g := New()
	assert.Equal(t, Stats{}, g.GetStats())
}

func TestHaversineKm_ZeroForSamePoint(t *testing.T) {
	loc := Location{Lat: 37.77, Lng: -122.42}
	assert.InDelta(t, 0.0, HaversineKm(loc, loc), 1e-9)
}

func TestHaversineKm_KnownDistance(t *testing.T) {
	sf := Location{Lat: 37.7749, Lng: -122.4194}
	la := Location{Lat: 34.0522, Lng: -118.2437}
	// SF-LA is ~559km great circle.
	d := HaversineKm(sf, la)
	assert.InDelta(t, 559, d, 10)
}
