// Package simulation implements the Simulation Driver: scripted timeline
// replay of a scenario's resources, locations, and events against a
// coordinator, at human-observable pacing.
package simulation

// Scenario is a fully-loaded demo timeline: initial graph seed data plus an
// ordered list of events to replay.
type Scenario struct {
	ScenarioID      string                       `json:"scenario_id" yaml:"scenario_id"`
	ScenarioName    string                       `json:"scenario_name" yaml:"scenario_name"`
	Description     string                       `json:"description" yaml:"description"`
	InitialResources map[string][]ScenarioResource `json:"initial_resources" yaml:"initial_resources"`
	InitialLocations []ScenarioLocation          `json:"initial_locations" yaml:"initial_locations"`
	Events          []ScenarioEvent              `json:"events" yaml:"events"`
}

// ScenarioResource seeds one dispatchable unit before the timeline starts.
type ScenarioResource struct {
	ID        string `json:"id" yaml:"id"`
	Sector    string `json:"sector" yaml:"sector"`
	Status    string `json:"status" yaml:"status"`
	Personnel int    `json:"personnel" yaml:"personnel"`
}

// ScenarioLocation seeds one point of interest (hospital, bridge, shelter).
type ScenarioLocation struct {
	ID            string  `json:"id" yaml:"id"`
	LocationType  string  `json:"location_type" yaml:"location_type"`
	Name          string  `json:"name" yaml:"name"`
	Lat           float64 `json:"lat" yaml:"lat"`
	Lng           float64 `json:"lng" yaml:"lng"`
	CapacityTotal *int    `json:"capacity_total,omitempty" yaml:"capacity_total,omitempty"`
	CapacityUsed  *int    `json:"capacity_used,omitempty" yaml:"capacity_used,omitempty"`
	Status        string  `json:"status" yaml:"status"`
	Accessibility string  `json:"accessibility" yaml:"accessibility"`
}

// ScenarioEvent is one entry in the timeline, paced by DemoDelaySeconds and
// logically placed at TimeOffsetSeconds into the simulated clock.
type ScenarioEvent struct {
	TimeOffsetSeconds int            `json:"time_offset_seconds" yaml:"time_offset_seconds"`
	DemoDelaySeconds  float64        `json:"demo_delay_seconds" yaml:"demo_delay_seconds"`
	EventType         string         `json:"event_type" yaml:"event_type"` // signal, signal_batch, aftershock, resource_change, contradiction_inject, time_marker
	Data              map[string]any `json:"data" yaml:"data"`
}
