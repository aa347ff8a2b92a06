package oracle

import (
	"context"
	"fmt"
)

const visionSystemPrompt = `You are a disaster damage assessment specialist analyzing images from an active emergency. Respond only with a JSON object describing damage_level, damage_types, estimated_casualties{min,max,confidence}, accessibility, hazards, and overall_confidence.`

// AnalyzeVision assesses a damage-report image (or description) and returns
// a damage_assessment output. On oracle failure it returns a canned
// severe-collapse assessment.
func (o *Oracle) AnalyzeVision(ctx context.Context, in VisionInput) AnalyzerOutput {
	prompt := fmt.Sprintf("%s\n\nSector: %s\nDescription: %s", visionSystemPrompt, in.Sector, in.Description)
	data, confidence, fellBack := o.run(ctx, "vision", prompt, func() (map[string]any, float64) {
		d := visionFallback(0)
		return d, d["overall_confidence"].(float64)
	})
	return AnalyzerOutput{
		AnalyzerName: "vision", OutputType: "damage_assessment", Data: data,
		Confidence: confidence, Reasoning: fmt.Sprintf("Vision analysis: %v damage detected", data["damage_level"]),
		Timestamp: now(), Fallback: fellBack,
	}
}

const audioSystemPrompt = `You are an emergency communications analyst. Respond only with a JSON object describing transcript, speaker_type, incident_type, urgency, persons_involved{trapped{min,max}}, and overall_confidence.`

// AnalyzeAudio processes an emergency audio transcript and returns an
// audio_analysis output.
func (o *Oracle) AnalyzeAudio(ctx context.Context, in AudioInput) AnalyzerOutput {
	prompt := fmt.Sprintf("%s\n\nTranscript: %s", audioSystemPrompt, in.Transcript)
	data, confidence, fellBack := o.run(ctx, "audio", prompt, func() (map[string]any, float64) {
		d := audioFallback(0, in.Transcript)
		return d, d["overall_confidence"].(float64)
	})
	return AnalyzerOutput{
		AnalyzerName: "audio", OutputType: "audio_analysis", Data: data,
		Confidence: confidence, Reasoning: fmt.Sprintf("Audio analysis: %v reporting %v", data["speaker_type"], data["incident_type"]),
		Timestamp: now(), Fallback: fellBack,
	}
}

const textSystemPrompt = `You are a disaster-response text classifier. Respond only with a JSON object describing source_type, claims (list of {claim, location{name}, confidence}), urgency, and overall_confidence.`

// AnalyzeText classifies a free-text signal. Text never creates an incident
// directly (spec §4.5); it feeds the contradiction detector's claim
// accumulator.
func (o *Oracle) AnalyzeText(ctx context.Context, in TextInput) AnalyzerOutput {
	prompt := fmt.Sprintf("%s\n\nSector: %s\nText: %s", textSystemPrompt, in.Sector, in.Text)
	data, confidence, fellBack := o.run(ctx, "text", prompt, func() (map[string]any, float64) {
		d := textFallback(in.Text)
		return d, d["overall_confidence"].(float64)
	})
	return AnalyzerOutput{
		AnalyzerName: "text", OutputType: "text_classification", Data: data,
		Confidence: confidence, Reasoning: "Text analysis of incoming report", Timestamp: now(), Fallback: fellBack,
	}
}

const verificationSystemPrompt = `You are a cross-source verification analyst. Given two or more claims about the same entity, respond only with a JSON object describing verdict (consistent|contradiction|uncertain|temporal_gap), severity, recommended_action, and overall_confidence.`

// AnalyzeVerification compares accumulated claims about one entity and
// returns a verdict used by the contradiction detector.
func (o *Oracle) AnalyzeVerification(ctx context.Context, in VerificationInput) AnalyzerOutput {
	prompt := fmt.Sprintf("%s\n\nEntity: %s\nClaims: %v", verificationSystemPrompt, in.EntityName, in.Claims)
	data, confidence, fellBack := o.run(ctx, "verification", prompt, func() (map[string]any, float64) {
		d := verificationFallback(in.EntityName)
		return d, d["overall_confidence"].(float64)
	})
	return AnalyzerOutput{
		AnalyzerName: "verification", OutputType: "verification_verdict", Data: data,
		Confidence: confidence, Reasoning: fmt.Sprintf("Verification verdict for %s: %v", in.EntityName, data["verdict"]),
		Timestamp: now(), Fallback: fellBack,
	}
}

const planningSystemPrompt = `You are a resource allocation planner for an active disaster response. Given active incidents and available resources, respond only with a JSON object describing action_type, rationale, supporting_factors, tradeoffs, uncertainty_factors, confidence, and time_sensitivity.`

// AnalyzePlanning proposes a resource-allocation action for the planning
// trigger to materialize as an ActionRecommendation.
func (o *Oracle) AnalyzePlanning(ctx context.Context, in PlanningContext) AnalyzerOutput {
	prompt := fmt.Sprintf("%s\n\nActive incidents: %v\nAvailable resources: %v\nHospitals: %s\nRoad/weather: %s",
		planningSystemPrompt, in.ActiveIncidents, in.AvailableResources, in.HospitalCapacitySummary, in.RoadWeatherHints)
	data, confidence, fellBack := o.run(ctx, "planning", prompt, func() (map[string]any, float64) {
		d := planningFallback()
		return d, d["confidence"].(float64)
	})
	return AnalyzerOutput{
		AnalyzerName: "planning", OutputType: "action_recommendation", Data: data,
		Confidence: confidence, Reasoning: "Planning analyzer recommendation", Timestamp: now(), Fallback: fellBack,
	}
}

const temporalSystemPrompt = `You are a timeline-reconciliation analyst. Given claims with timestamps, respond only with a JSON object describing temporal_analysis and verdict (consistent|contradiction|uncertain|temporal_gap).`

// AnalyzeTemporal reconciles the timing of conflicting claims.
func (o *Oracle) AnalyzeTemporal(ctx context.Context, in TemporalInput) AnalyzerOutput {
	prompt := fmt.Sprintf("%s\n\nEntity: %s\nClaims: %v", temporalSystemPrompt, in.EntityName, in.Claims)
	data, _, fellBack := o.run(ctx, "temporal", prompt, func() (map[string]any, float64) {
		return temporalFallback(), 0.5
	})
	return AnalyzerOutput{
		AnalyzerName: "temporal", OutputType: "temporal_analysis", Data: data,
		Confidence: 0.5, Reasoning: "Temporal reconciliation", Timestamp: now(), Fallback: fellBack,
	}
}

const allocationSystemPrompt = `You are a bulk resource allocation planner. Given all active incidents and available resources, respond only with a JSON object describing resource_assignments (list of {resource_id, target_incident_id, rationale, priority, estimated_eta_minutes}), camp_recommendations (list of {name, location{lat,lng}, camp_type, capacity_persons, rationale, confidence, factors}), overall_confidence, and key_assumptions.`

// AnalyzeAllocation proposes a batch allocation plan for
// generate_allocation_plan.
func (o *Oracle) AnalyzeAllocation(ctx context.Context, in AllocationInput) AnalyzerOutput {
	prompt := fmt.Sprintf("%s\n\nIncidents: %v\nResources: %v", allocationSystemPrompt, in.ActiveIncidents, in.AvailableResources)
	data, confidence, fellBack := o.run(ctx, "allocation", prompt, func() (map[string]any, float64) {
		d := allocationFallback()
		return d, d["confidence"].(float64)
	})
	return AnalyzerOutput{
		AnalyzerName: "allocation", OutputType: "allocation_plan", Data: data,
		Confidence: confidence, Reasoning: "Allocation analyzer plan", Timestamp: now(), Fallback: fellBack,
	}
}

var debateRolePrompts = [4]string{
	"You are the DEFENDER in a staged debate. Argue that the first claim about %s is the more reliable account. Respond in prose, not JSON.",
	"You are the CHALLENGER in a staged debate. Argue that the second, contradicting claim about %s is the more reliable account. Respond in prose, not JSON.",
	"You are the DEFENDER again, rebutting the challenger's argument about %s. Respond in prose, not JSON.",
	"You are the SYNTHESIS voice. Weigh both arguments about %s and give a final verdict. End your reply with a line exactly of the form CONFIDENCE: X.XX.",
}

// AnalyzeDebate runs one turn of the four-turn staged debate
// (defender/challenger/rebuttal/synthesis) over a contradiction.
func (o *Oracle) AnalyzeDebate(ctx context.Context, in DebateInput) AnalyzerOutput {
	idx := in.Turn - 1
	if idx < 0 || idx > 3 {
		idx = 0
	}
	prompt := fmt.Sprintf(debateRolePrompts[idx], in.EntityName)
	prompt += fmt.Sprintf("\n\nFirst claim: %s\nSecond claim: %s", in.ClaimA, in.ClaimB)
	if in.History != "" {
		prompt = in.History + "\n\n" + prompt
	}
	text, ok := o.complete(ctx, "debate", prompt)
	var data map[string]any
	fellBack := !ok
	if ok {
		data = map[string]any{"text": text}
		if in.Turn == 4 {
			data["confidence"] = extractConfidence(text)
		}
	} else {
		data = debateFallback(in.Turn, in.EntityName)
	}
	confidence := 0.5
	if c, ok := data["confidence"].(float64); ok {
		confidence = c
	}
	return AnalyzerOutput{
		AnalyzerName: "debate", OutputType: "debate_turn", Data: data,
		Confidence: confidence, Reasoning: "Staged debate turn", Timestamp: now(), Fallback: fellBack,
	}
}

const copilotSystemPrompt = `You are an AI co-pilot for a disaster response coordination center. Answer the operator's question in plain, direct English: cite incident ids, sector numbers, and confidence percentages where relevant; be brief (2-4 sentences unless the question needs more); say so if you're uncertain; reason explicitly through tradeoffs or "what if" questions. You are advising a human who makes the final call.`

// AnalyzeCopilot answers a free-text operator question against a
// pre-rendered situation summary, returning prose (not JSON).
func (o *Oracle) AnalyzeCopilot(ctx context.Context, in CopilotInput) AnalyzerOutput {
	prompt := fmt.Sprintf("%s\n\nCurrent operational situation:\n%s\n\n%sQuestion: %s",
		copilotSystemPrompt, in.Situation, in.HistoryText, in.Question)
	text, ok := o.complete(ctx, "copilot", prompt)
	fellBack := !ok
	if !ok {
		text = copilotFallback(in.Question, in.Situation)
	}
	return AnalyzerOutput{
		AnalyzerName: "copilot", OutputType: "copilot_answer", Data: map[string]any{"answer": text},
		Confidence: 0.6, Reasoning: "Conversational query over current situation", Timestamp: now(), Fallback: fellBack,
	}
}

// run is the common oracle-call-then-fallback path shared by every
// JSON-returning analyzer: call the backend, tolerantly extract JSON, and
// fall back deterministically on any failure.
func (o *Oracle) run(ctx context.Context, analyzer, prompt string, fallback func() (map[string]any, float64)) (data map[string]any, confidence float64, fellBack bool) {
	text, ok := o.complete(ctx, analyzer, prompt)
	if ok {
		if extracted, err := ExtractJSON(text); err == nil {
			if c, ok := extracted["overall_confidence"].(float64); ok {
				return extracted, c, false
			}
			if c, ok := extracted["confidence"].(float64); ok {
				return extracted, c, false
			}
			return extracted, 0.5, false
		}
		o.log.Warn(ctx, "oracle output unparseable, using fallback", "analyzer", analyzer)
	}
	d, c := fallback()
	return d, c, true
}
