// Package oracle implements the Analyzer Oracle family: one analyzer per
// (modality x task), each returning a typed AnalyzerOutput and falling back
// to a deterministic, task-appropriate result when the underlying LLM call
// fails or its output cannot be parsed.
package oracle

import (
	"context"
	"strings"
	"time"

	"github.com/sentineldr/core/internal/oracle/llm"
	"github.com/sentineldr/core/internal/telemetry"
)

// AnalyzerOutput is the uniform result of every analyzer.
type AnalyzerOutput struct {
	AnalyzerName string         `json:"analyzer_name"`
	OutputType   string         `json:"output_type"`
	Data         map[string]any `json:"data"`
	Confidence   float64        `json:"confidence"`
	Sources      []string       `json:"sources,omitempty"`
	Reasoning    string         `json:"reasoning,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
	Fallback     bool           `json:"fallback"`
}

// Oracle holds the set of LLM backends available to analyzers. A nil
// Client is valid: every analyzer falls back deterministically.
type Oracle struct {
	llm     llm.Client
	log     telemetry.Logger
	metrics telemetry.Metrics
}

// New constructs an Oracle. client may be nil, in which case every analyzer
// call immediately uses its fallback.
func New(client llm.Client, log telemetry.Logger, metrics telemetry.Metrics) *Oracle {
	if log == nil {
		log = telemetry.NewNoopLogger()
	}
	return &Oracle{llm: client, log: log, metrics: metrics}
}

// complete runs prompt against the configured LLM backend, returning the raw
// text response. If no backend is configured or the call fails, ok is false
// and callers must use the fallback.
func (o *Oracle) complete(ctx context.Context, analyzer, prompt string) (text string, ok bool) {
	if o.llm == nil {
		return "", false
	}
	started := time.Now()
	resp, err := o.llm.Complete(ctx, prompt)
	if o.metrics != nil {
		o.metrics.RecordTimer("oracle.call_latency", time.Since(started), "analyzer", analyzer)
	}
	if err != nil {
		o.log.Warn(ctx, "oracle call failed, using fallback", "analyzer", analyzer, "error", err.Error())
		if o.metrics != nil {
			o.metrics.IncCounter("oracle.fallback", 1, "analyzer", analyzer)
		}
		return "", false
	}
	return resp, true
}

// ParseUrgency implements the spec's exact first-match rule: any string
// containing "critical", "high", "medium", or "low" (checked in that order)
// maps to that level; anything else defaults to "high". This rule is
// intentionally loose because scenario scripts and LLM free text rely on it.
func ParseUrgency(raw string) string {
	s := strings.ToLower(raw)
	for _, level := range []string{"critical", "high", "medium", "low"} {
		if strings.Contains(s, level) {
			return level
		}
	}
	return "high"
}

// DamageToUrgency implements the fixed map from spec §4.5: catastrophic and
// severe damage map to critical urgency, moderate to high, minor to medium,
// none to low.
func DamageToUrgency(damage string) string {
	switch strings.ToLower(damage) {
	case "catastrophic", "severe":
		return "critical"
	case "moderate":
		return "high"
	case "minor":
		return "medium"
	default:
		return "low"
	}
}

func now() time.Time { return time.Now().UTC() }
