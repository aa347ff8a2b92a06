package simulation

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sentineldr/core/internal/coordinator"
	"github.com/sentineldr/core/internal/detector"
	"github.com/sentineldr/core/internal/graph"
)

// Driver replays a Scenario's timeline against a coordinator at
// human-observable pacing. It implements the coordinator's simDriver
// interface (Run/Pause/Resume) without that interface ever naming this
// type, keeping the import edge one-directional: simulation depends on
// coordinator, never the reverse.
type Driver struct {
	coordinator *coordinator.Coordinator
	scenarioDir string
}

// NewDriver constructs a Driver over the given coordinator. scenarioDir may
// be empty, in which case every scenario id resolves to DefaultScenario.
func NewDriver(c *coordinator.Coordinator, scenarioDir string) *Driver {
	return &Driver{coordinator: c, scenarioDir: scenarioDir}
}

// Pause and Resume are no-ops: the coordinator itself tracks pause state,
// and Run's pacing loop polls Coordinator.IsPaused directly.
func (d *Driver) Pause()  {}
func (d *Driver) Resume() {}

// Run loads and replays one scenario's timeline. It returns when the
// context is cancelled (ResetSimulation) or the timeline completes.
func (d *Driver) Run(ctx context.Context, scenarioID string, speed float64) {
	if speed <= 0 {
		speed = 1.0
	}
	scenario, err := Load(d.scenarioDir, scenarioID)
	if err != nil {
		scenario = DefaultScenario()
	}

	start := time.Now().UTC()
	d.coordinator.SeedScenarioMetadata(scenario.ScenarioID, scenario.ScenarioName, start)
	d.loadInitialResources(scenario.InitialResources)
	d.loadInitialLocations(scenario.InitialLocations)

	d.coordinator.Broadcast.Broadcast(ctx, "graph_update", d.coordinator.Graph.Snapshot())
	d.coordinator.Broadcast.Broadcast(ctx, "sim_status", d.coordinator.SimulationStatus())

	for _, event := range scenario.Events {
		if ctx.Err() != nil {
			return
		}
		for d.coordinator.IsPaused() {
			select {
			case <-ctx.Done():
				return
			case <-time.After(200 * time.Millisecond):
			}
		}

		delay := event.DemoDelaySeconds
		if delay == 0 {
			delay = 3.0
		}
		wait := math.Max(0.3, delay/speed)
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Duration(wait * float64(time.Second))):
		}

		simTime := start.Add(time.Duration(event.TimeOffsetSeconds) * time.Second)
		d.coordinator.Graph.SetSimTime(simTime)

		switch event.EventType {
		case "signal", "signal_batch":
			// Fire as a detached task so pacing of subsequent events is
			// never blocked on a slow analyzer call.
			go d.processEvent(context.Background(), event, simTime)
		default:
			d.processEvent(ctx, event, simTime)
		}

		d.coordinator.Broadcast.Broadcast(ctx, "sim_status", d.coordinator.SimulationStatus())
	}
}

func (d *Driver) processEvent(ctx context.Context, event ScenarioEvent, simTime time.Time) {
	switch event.EventType {
	case "signal":
		d.processSignal(ctx, event.Data, simTime)
	case "signal_batch":
		signals, _ := event.Data["signals"].([]any)
		for _, raw := range signals {
			data, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			d.processSignal(ctx, data, simTime)
			time.Sleep(300 * time.Millisecond)
		}
	case "aftershock":
		d.processAftershock(ctx, event.Data, simTime)
	case "resource_change":
		d.processResourceChange(ctx, event.Data)
	case "contradiction_inject":
		d.injectContradiction(ctx, event.Data, simTime)
	case "time_marker":
		label, _ := event.Data["label"].(string)
		d.coordinator.AddEvent("time_marker", map[string]any{"label": label})
		d.coordinator.Broadcast.Broadcast(ctx, "timeline_event", map[string]any{"events": d.coordinator.RecentEvents(10)})
	}
}

func (d *Driver) processSignal(ctx context.Context, data map[string]any, simTime time.Time) {
	signalType, _ := data["type"].(string)
	if signalType == "" {
		signalType = "text"
	}
	locationData, _ := data["location"].(map[string]any)
	metadata := map[string]any{
		"location":    locationData,
		"sector":      firstNonNil(data["sector"], subField(locationData, "sector")),
		"sim_time":    simTime.Format(time.RFC3339),
		"source_type": data["source_type"],
	}

	content, _ := data["content"].(string)
	if content == "" {
		content, _ = data["description"].(string)
	}
	if content == "" {
		content = "Simulated emergency signal"
	}

	switch signalType {
	case "text":
		if v, ok := data["source_type"]; ok {
			metadata["source_type"] = v
		} else {
			metadata["source_type"] = "unverified"
		}
		_, _ = d.coordinator.ProcessSignal(ctx, "text", content, metadata)
	case "audio":
		transcript, _ := data["transcript"].(string)
		if transcript == "" {
			transcript = content
		}
		metadata["transcript"] = transcript
		_, _ = d.coordinator.ProcessSignal(ctx, "audio", "", metadata)
	case "image":
		metadata["description"] = content
		_, _ = d.coordinator.ProcessSignal(ctx, "image", content, metadata)
	}

	d.coordinator.Broadcast.Broadcast(ctx, "graph_update", d.coordinator.Graph.Snapshot())
}

func (d *Driver) processAftershock(ctx context.Context, data map[string]any, simTime time.Time) {
	magnitude, ok := data["magnitude"].(float64)
	if !ok {
		magnitude = 4.2
	}
	d.coordinator.AddEvent("aftershock", map[string]any{"magnitude": magnitude, "sim_time": simTime.Format(time.RFC3339)})
	d.coordinator.Graph.DecayConfidences(5.0)
	d.coordinator.Broadcast.Broadcast(ctx, "graph_update", d.coordinator.Graph.Snapshot())
	d.coordinator.Broadcast.Broadcast(ctx, "timeline_event", map[string]any{
		"events": d.coordinator.RecentEvents(10),
		"alert": map[string]any{
			"type":     "aftershock",
			"message":  fmt.Sprintf("AFTERSHOCK %.1fM - updating confidence levels", magnitude),
			"severity": "warning",
		},
	})
}

func (d *Driver) processResourceChange(ctx context.Context, data map[string]any) {
	resourceID, _ := data["resource_id"].(string)
	updates, _ := data["updates"].(map[string]any)
	if resourceID == "" {
		return
	}
	err := d.coordinator.Graph.UpdateResource(resourceID, func(r *graph.ResourceNode) {
		if status, ok := updates["status"].(string); ok {
			r.Status = status
		}
	})
	if err != nil {
		return
	}
	d.coordinator.Broadcast.Broadcast(ctx, "resource_update", map[string]any{"resource_id": resourceID, "updates": updates})
}

func (d *Driver) injectContradiction(ctx context.Context, data map[string]any, simTime time.Time) {
	entityName, _ := data["entity"].(string)
	if entityName == "" {
		entityName = "Unknown"
	}
	rawClaims, _ := data["claims"].([]any)
	claims := make([]graph.Claim, 0, len(rawClaims))
	for _, raw := range rawClaims {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		source, _ := m["source"].(string)
		sourceType, _ := m["source_type"].(string)
		claimText, _ := m["claim"].(string)
		confidence, _ := m["confidence"].(float64)
		claims = append(claims, detector.NewClaim(source, sourceType, claimText, confidence))
	}
	forcedVerdict, _ := data["force_verdict"].(string)
	temporalAnalysis, _ := data["temporal_analysis"].(string)

	alert := d.coordinator.Detector.InjectContradiction(ctx, d.coordinator.Graph, entityName, claims, forcedVerdict, temporalAnalysis)
	d.coordinator.AddEvent("contradiction_detected", map[string]any{"alert_id": alert.ID, "entity": entityName})
	d.coordinator.Broadcast.Broadcast(ctx, "contradiction_alert", alert)
	d.coordinator.Broadcast.Broadcast(ctx, "graph_update", d.coordinator.Graph.Snapshot())
}

func (d *Driver) loadInitialResources(resources map[string][]ScenarioResource) {
	sectorLocations := map[string]graph.Location{
		"1": {Lat: 37.790, Lng: -122.402},
		"2": {Lat: 37.780, Lng: -122.410},
		"3": {Lat: 37.772, Lng: -122.418},
		"4": {Lat: 37.760, Lng: -122.405},
		"5": {Lat: 37.755, Lng: -122.415},
	}
	for resourceType, items := range resources {
		singular := resourceType
		if len(singular) > 1 && singular[len(singular)-1] == 's' {
			singular = singular[:len(singular)-1]
		}
		for _, item := range items {
			base, ok := sectorLocations[item.Sector]
			if !ok {
				base = graph.Location{Lat: 37.78, Lng: -122.41}
			}
			base.Sector = item.Sector
			personnel := item.Personnel
			if personnel == 0 {
				personnel = 2
			}
			status := item.Status
			if status == "" {
				status = graph.ResourceAvailable
			}
			d.coordinator.Graph.AddResource(graph.ResourceNode{
				ID:                item.ID,
				ResourceType:      singular,
				UnitID:            item.ID,
				CurrentLocation:   base,
				Status:            status,
				Personnel:         personnel,
				CapacityRemaining: 2,
			})
		}
	}
}

func (d *Driver) loadInitialLocations(locations []ScenarioLocation) {
	for _, loc := range locations {
		status := loc.Status
		if status == "" {
			status = graph.LocationOperational
		}
		accessibility := loc.Accessibility
		if accessibility == "" {
			accessibility = graph.AccessAccessible
		}
		d.coordinator.Graph.AddLocation(graph.LocationNode{
			ID:            loc.ID,
			Location:      graph.Location{Lat: loc.Lat, Lng: loc.Lng, Name: loc.Name},
			LocationType:  loc.LocationType,
			CapacityTotal: loc.CapacityTotal,
			CapacityUsed:  loc.CapacityUsed,
			Status:        status,
			Accessibility: accessibility,
			Confidence:    0.9,
		})
	}
}

func subField(m map[string]any, key string) any {
	if m == nil {
		return nil
	}
	return m[key]
}

func firstNonNil(values ...any) any {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
