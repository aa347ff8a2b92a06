package oracle

import (
	"regexp"
	"strconv"
)

var confidenceLineRE = regexp.MustCompile(`(?i)CONFIDENCE:\s*(-?[0-9]*\.?[0-9]+)`)

// extractConfidence parses a trailing "CONFIDENCE: X.XX" line from the
// debate synthesis turn's free text, clamping to [0,1]. Returns 0.5 if no
// such line is present.
func extractConfidence(text string) float64 {
	m := confidenceLineRE.FindStringSubmatch(text)
	if len(m) != 2 {
		return 0.5
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0.5
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
