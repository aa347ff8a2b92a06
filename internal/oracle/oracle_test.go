package oracle

import (
	"context"
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON_FencedBlock(t *testing.T) {
	text := "Here is my answer:\n```json\n{\"damage_level\": \"severe\", \"overall_confidence\": 0.8}\n```\nThanks."
	got, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.Equal(t, "severe", got["damage_level"])
}

func TestExtractJSON_WholePayload(t *testing.T) {
	text := `{"urgency": "critical"}`
	got, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.Equal(t, "critical", got["urgency"])
}

func TestExtractJSON_BalancedBraceScan(t *testing.T) {
	text := `Sure, the result is {"verdict": "contradiction", "note": "braces {nested} inside string"} — let me know if you need more.`
	got, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.Equal(t, "contradiction", got["verdict"])
}

func TestExtractJSON_StripsTrailingCommas(t *testing.T) {
	text := `{"a": 1, "b": 2,}`
	got, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.Equal(t, float64(1), got["a"])
}

func TestExtractJSON_NoJSONFails(t *testing.T) {
	_, err := ExtractJSON("no json here at all")
	assert.ErrorIs(t, err, ErrNoJSON)
}

func TestExtractJSON_IdempotentOnWellFormedJSON(t *testing.T) {
	props := gopter.NewProperties(nil)
	props.Property("extract(serialize(x)) == x for flat string/number maps", prop.ForAll(
		func(a string, b float64) bool {
			text := `{"a": "` + a + `", "b": ` + jsonNumber(b) + `}`
			got, err := ExtractJSON(text)
			if err != nil {
				return false
			}
			return got["a"] == a && got["b"] == b
		},
		gen.AlphaString(),
		gen.Float64Range(-1000, 1000),
	))
	props.TestingRun(t)
}

func jsonNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func TestParseUrgency_FirstMatchWins(t *testing.T) {
	assert.Equal(t, "critical", ParseUrgency("this is CRITICAL and also high"))
	assert.Equal(t, "high", ParseUrgency("moderately high risk"))
	assert.Equal(t, "medium", ParseUrgency("medium concern"))
	assert.Equal(t, "low", ParseUrgency("low priority"))
	assert.Equal(t, "high", ParseUrgency("completely ambiguous text"), "defaults to high when no level word is present")
}

func TestExtractConfidence_ParsesTrailingLine(t *testing.T) {
	assert.InDelta(t, 0.82, extractConfidence("The evidence favors the challenger.\nCONFIDENCE: 0.82"), 1e-9)
	assert.Equal(t, 0.5, extractConfidence("no confidence line here"))
	assert.Equal(t, 1.0, extractConfidence("CONFIDENCE: 1.5"), "clamped to 1")
	assert.Equal(t, 0.0, extractConfidence("CONFIDENCE: -0.5"), "clamped to 0")
}

func TestOracle_NilClientAlwaysFallsBack(t *testing.T) {
	o := New(nil, nil, nil)
	out := o.AnalyzeVision(context.Background(), VisionInput{Sector: "A"})
	assert.True(t, out.Fallback)
	assert.Equal(t, DamageSevere, out.Data["damage_level"])
	assert.InDelta(t, 0.72, out.Data["estimated_casualties"].(map[string]any)["confidence"].(float64), 1e-9)
}

func TestOracle_DebateFourTurnFallback(t *testing.T) {
	o := New(nil, nil, nil)
	roles := []string{"defender", "challenger", "rebuttal", "synthesis"}
	for turn := 1; turn <= 4; turn++ {
		out := o.AnalyzeDebate(context.Background(), DebateInput{EntityName: "Main Street Bridge", Turn: turn})
		assert.Equal(t, roles[turn-1], out.Data["role"])
		if turn == 4 {
			assert.GreaterOrEqual(t, out.Confidence, 0.0)
			assert.LessOrEqual(t, out.Confidence, 1.0)
		}
	}
}
