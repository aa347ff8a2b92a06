package simulation

func intPtr(v int) *int { return &v }

// DefaultScenario is the built-in Metro City earthquake timeline, used
// whenever a requested scenario id cannot be loaded from disk. It mirrors
// the thirteen-event demo timeline: an initial building collapse, a
// social-media report of the same collapse, a first-responder rescue call, a
// secondary fire, a hospital capacity update, a trapped-family call, a
// scripted bridge-status contradiction, its aerial-verification resolution,
// a 911 transcript corroborating the trapped family, a planning time
// marker, an aftershock, and its secondary collapse and gas-leak aftermath.
func DefaultScenario() Scenario {
	return Scenario{
		ScenarioID:   "earthquake_001",
		ScenarioName: "Metro City 6.8 Earthquake",
		Description:  "Major earthquake strikes Metro City.",
		InitialResources: map[string][]ScenarioResource{
			"ambulances": {
				{ID: "AMB-1", Sector: "1", Status: "available"},
				{ID: "AMB-2", Sector: "1", Status: "available"},
				{ID: "AMB-3", Sector: "2", Status: "available"},
				{ID: "AMB-4", Sector: "2", Status: "available"},
				{ID: "AMB-5", Sector: "3", Status: "available"},
				{ID: "AMB-6", Sector: "3", Status: "available"},
				{ID: "AMB-7", Sector: "4", Status: "available"},
				{ID: "AMB-8", Sector: "4", Status: "available"},
				{ID: "AMB-9", Sector: "5", Status: "available"},
				{ID: "AMB-10", Sector: "5", Status: "available"},
				{ID: "AMB-11", Sector: "1", Status: "available"},
				{ID: "AMB-12", Sector: "3", Status: "available"},
			},
			"fire_trucks": {
				{ID: "ENGINE-1", Sector: "1", Status: "available"},
				{ID: "ENGINE-2", Sector: "2", Status: "available"},
				{ID: "ENGINE-3", Sector: "3", Status: "available"},
				{ID: "ENGINE-4", Sector: "4", Status: "available"},
				{ID: "LADDER-1", Sector: "1", Status: "available"},
				{ID: "LADDER-2", Sector: "3", Status: "available"},
			},
			"search_teams": {
				{ID: "SAR-1", Sector: "1", Personnel: 6, Status: "available"},
				{ID: "SAR-2", Sector: "2", Personnel: 6, Status: "available"},
				{ID: "SAR-3", Sector: "3", Personnel: 6, Status: "available"},
				{ID: "SAR-4", Sector: "4", Personnel: 6, Status: "available"},
			},
			"helicopters": {
				{ID: "HELI-1", Sector: "central", Status: "available"},
				{ID: "HELI-2", Sector: "central", Status: "available"},
			},
		},
		InitialLocations: []ScenarioLocation{
			{ID: "loc_metro_general", LocationType: "hospital", Name: "Metro General Hospital", Lat: 37.7850, Lng: -122.4050, CapacityTotal: intPtr(200), CapacityUsed: intPtr(90), Status: "operational", Accessibility: "accessible"},
			{ID: "loc_st_marys", LocationType: "hospital", Name: "St. Mary's Medical", Lat: 37.7620, Lng: -122.4180, CapacityTotal: intPtr(150), CapacityUsed: intPtr(45), Status: "operational", Accessibility: "accessible"},
			{ID: "loc_main_bridge", LocationType: "bridge", Name: "Main Street Bridge", Lat: 37.7800, Lng: -122.4100, Status: "operational", Accessibility: "accessible"},
		},
		Events: []ScenarioEvent{
			{
				TimeOffsetSeconds: 5, DemoDelaySeconds: 2, EventType: "signal",
				Data: map[string]any{
					"type":        "image",
					"location":    map[string]any{"lat": 37.790, "lng": -122.402, "sector": "4"},
					"content":     "Building collapse at 500 Market Street. Multi-story pancake collapse visible. Heavy debris field. Smoke rising from eastern section.",
					"description": "collapse_severe_001.jpg",
					"metadata":    map[string]any{"source": "first_responder_camera"},
				},
			},
			{
				TimeOffsetSeconds: 8, DemoDelaySeconds: 1.5, EventType: "signal",
				Data: map[string]any{
					"type":        "text",
					"content":     "OMG major collapse on Market Street!! Everyone stay away!! Building completely down!! #MetroCityQuake",
					"source_type": "social_media",
					"location":    map[string]any{"name": "500 Market Street"},
				},
			},
			{
				TimeOffsetSeconds: 12, DemoDelaySeconds: 2, EventType: "signal",
				Data: map[string]any{
					"type":        "audio",
					"transcript":  "Unit 7 to dispatch - we have multiple people trapped on the 4th floor at 500 Market Street. Stairwells are compromised. Pancake collapse on floors 2 through 4. Requesting search and rescue and minimum 3 ambulances. We can hear voices in the debris.",
					"location":    map[string]any{"lat": 37.790, "lng": -122.402, "sector": "4"},
					"source_type": "first_responder",
				},
			},
			{
				TimeOffsetSeconds: 15, DemoDelaySeconds: 2, EventType: "signal",
				Data: map[string]any{
					"type":        "image",
					"location":    map[string]any{"lat": 37.772, "lng": -122.418, "sector": "3"},
					"content":     "Active fire visible from residential building in Sector 3. Smoke column rising. Adjacent structures at risk.",
					"description": "fire_smoke_001.jpg",
					"metadata":    map[string]any{"source": "drone_camera"},
				},
			},
			{
				TimeOffsetSeconds: 18, DemoDelaySeconds: 1.5, EventType: "signal",
				Data: map[string]any{
					"type":        "text",
					"content":     "Metro General Hospital Status Update: Current ER capacity at 45%. Accepting trauma cases. Recommend diverting non-critical to St. Mary's Medical. All surgical teams on standby.",
					"source_type": "official_report",
					"location":    map[string]any{"name": "Metro General Hospital"},
				},
			},
			{
				TimeOffsetSeconds: 22, DemoDelaySeconds: 2, EventType: "signal",
				Data: map[string]any{
					"type":        "audio",
					"transcript":  "This is civilian calling 911 - we are trapped in our apartment on Oak Street, third floor. The staircase has collapsed. There are 4 of us including 2 children. Please help us.",
					"location":    map[string]any{"lat": 37.775, "lng": -122.420, "sector": "3"},
					"source_type": "civilian",
				},
			},
			{
				TimeOffsetSeconds: 32, DemoDelaySeconds: 3, EventType: "contradiction_inject",
				Data: map[string]any{
					"entity":            "Main Street Bridge",
					"entity_type":       "infrastructure",
					"temporal_analysis": "Satellite image predates audio report by 21 minutes. Bridge collapse may have occurred after image capture.",
					"force_verdict":     "CONTRADICTION",
					"claims": []any{
						map[string]any{
							"source":      "audio_report",
							"source_type": "first_responder",
							"claim":       "Bridge collapsed, completely impassable - confirmed collapse of main span",
							"confidence":  0.72,
						},
						map[string]any{
							"source":      "satellite_img_14:40",
							"source_type": "satellite",
							"claim":       "Bridge appears structurally intact, no visible collapse",
							"confidence":  0.89,
						},
					},
				},
			},
			{
				TimeOffsetSeconds: 55, DemoDelaySeconds: 2, EventType: "signal",
				Data: map[string]any{
					"type":        "image",
					"location":    map[string]any{"lat": 37.780, "lng": -122.410, "sector": "2"},
					"content":     "AERIAL VERIFICATION: Main Street Bridge - Main span has collapsed. Deck failure on western section confirmed. Bridge is impassable. Debris in waterway.",
					"description": "bridge_collapsed_aerial.jpg",
					"metadata":    map[string]any{"source": "HELI-1_aerial_verification"},
				},
			},
			{
				TimeOffsetSeconds: 68, DemoDelaySeconds: 3, EventType: "signal",
				Data: map[string]any{
					"type":        "text",
					"content":     "911 Transcript: Caller reports family trapped in apartment building, 3rd floor, Oak Street and 5th Avenue. Building partially collapsed. 4 people including 2 children. Can hear other voices in building.",
					"source_type": "911_transcript",
					"location":    map[string]any{"name": "Oak Street Building"},
				},
			},
			{
				TimeOffsetSeconds: 72, DemoDelaySeconds: 1, EventType: "time_marker",
				Data: map[string]any{"label": "Planning Agent generating recommendations..."},
			},
			{
				TimeOffsetSeconds: 120, DemoDelaySeconds: 3, EventType: "aftershock",
				Data: map[string]any{"magnitude": 4.2},
			},
			{
				TimeOffsetSeconds: 125, DemoDelaySeconds: 2, EventType: "signal",
				Data: map[string]any{
					"type":        "image",
					"location":    map[string]any{"lat": 37.772, "lng": -122.418, "sector": "3"},
					"content":     "Secondary building collapse in Sector 3 following aftershock. Three-story residential structure partially collapsed. Active fire nearby.",
					"description": "collapse_secondary.jpg",
					"metadata":    map[string]any{"source": "ground_camera"},
				},
			},
			{
				TimeOffsetSeconds: 130, DemoDelaySeconds: 2, EventType: "signal",
				Data: map[string]any{
					"type":        "text",
					"content":     "PG&E Alert: Gas leak detected at intersection of Oak Street and Elm Avenue, Sector 3. Field crews dispatched. Recommend immediate 200-meter evacuation radius.",
					"source_type": "utility_company",
					"location":    map[string]any{"name": "Oak/Elm Intersection"},
				},
			},
		},
	}
}
