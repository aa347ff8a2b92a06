package oracle

// VisionInput is the structured input to the Vision analyzer.
type VisionInput struct {
	ContentBase64 string
	Sector        string
	Description   string
}

// AudioInput is the structured input to the Audio analyzer.
type AudioInput struct {
	Transcript string
	Sector     string
}

// TextInput is the structured input to the Text analyzer.
type TextInput struct {
	Text   string
	Sector string
}

// VerificationInput is the structured input to the Verification analyzer.
type VerificationInput struct {
	EntityName string
	Claims     []string // free-form claim strings, most recent last
}

// PlanningContext summarizes graph state for the Planning analyzer.
type PlanningContext struct {
	ActiveIncidents        []string // short descriptions
	AvailableResources     []string
	HospitalCapacitySummary string
	RoadWeatherHints       string
}

// TemporalInput is the structured input to the Temporal analyzer.
type TemporalInput struct {
	EntityName string
	Claims     []string
}

// AllocationInput summarizes graph state for the Allocation analyzer.
type AllocationInput struct {
	ActiveIncidents    []string
	AvailableResources []string
}

// DebateInput carries the contradiction alert context for staged debate.
type DebateInput struct {
	EntityName string
	ClaimA     string
	ClaimB     string
	Turn       int    // 1=defender, 2=challenger, 3=rebuttal, 4=synthesis
	History    string // prior turns' text, for turns 2-4
}

// CopilotInput carries an operator's natural-language question plus a
// pre-rendered summary of the current situation for the Copilot analyzer.
type CopilotInput struct {
	Question    string
	Situation   string
	HistoryText string // prior Q/A turns, most recent last, already formatted
}
