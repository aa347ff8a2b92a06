package oracle

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var fencedBlockRE = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// ErrNoJSON is returned when no candidate JSON object could be extracted
// from the oracle's free-form text.
var ErrNoJSON = errors.New("no JSON object found in oracle output")

// ExtractJSON tolerantly extracts a JSON object from free-form oracle text.
// It tries, in order: a fenced code block; the whole payload as JSON; the
// first balanced {...} found via brace-depth scanning; and, if strict
// parsing of that balanced span fails, the same span with trailing commas
// stripped. If none recover a valid object, ErrNoJSON is returned and the
// caller must fall back.
func ExtractJSON(text string) (map[string]any, error) {
	if m, ok := tryParse(fencedBlockMatch(text)); ok {
		return m, nil
	}
	if m, ok := tryParse(strings.TrimSpace(text)); ok {
		return m, nil
	}
	span := balancedBraceSpan(text)
	if span == "" {
		return nil, ErrNoJSON
	}
	if m, ok := tryParse(span); ok {
		return m, nil
	}
	if m, ok := tryParse(stripTrailingCommas(span)); ok {
		return m, nil
	}
	return nil, ErrNoJSON
}

func fencedBlockMatch(text string) string {
	m := fencedBlockRE.FindStringSubmatch(text)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}

func tryParse(candidate string) (map[string]any, bool) {
	if candidate == "" {
		return nil, false
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(candidate), &m); err != nil {
		return nil, false
	}
	return m, true
}

// balancedBraceSpan returns the first balanced {...} substring, tracking
// brace depth and ignoring braces inside string literals.
func balancedBraceSpan(text string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i, r := range text {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			inString = true
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					return text[start : i+1]
				}
			}
		}
	}
	return ""
}

var trailingCommaRE = regexp.MustCompile(`,\s*([}\]])`)

func stripTrailingCommas(s string) string {
	return trailingCommaRE.ReplaceAllString(s, "$1")
}
