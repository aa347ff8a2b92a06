package coordinator

import (
	"hash/fnv"
	"strings"

	"github.com/sentineldr/core/internal/graph"
)

// resolveLocation reads metadata["location"] if present; otherwise it
// deterministically jitters a base point within a 0.1-degree box, keyed off
// the signal id so repeated simulation runs place the same signal at the
// same spot.
func resolveLocation(metadata map[string]any, signalID string) graph.Location {
	loc := subMap(metadata, "location")
	sector := stringField(metadata, "sector")
	if sector == "" {
		sector = stringFieldOr(loc, "sector", "1")
	}
	if lat, latOK := loc["lat"].(float64); latOK {
		if lng, lngOK := loc["lng"].(float64); lngOK {
			return graph.Location{Lat: lat, Lng: lng, Sector: sector, Name: stringField(loc, "name")}
		}
	}
	return graph.Location{
		Lat:    37.78 + jitter(signalID)*0.1,
		Lng:    -122.41 + jitter(reverse(signalID))*0.1,
		Sector: sector,
		Name:   stringField(metadata, "location_name"),
	}
}

// jitter maps a string deterministically into [-0.5, 0.5) via FNV-1a,
// standing in for the original implementation's hash()-based jitter.
func jitter(s string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	v := h.Sum32() % 1000
	return float64(v)/1000 - 0.5
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

func sourceTypeOrText(signalType string) string {
	switch signalType {
	case "image", "audio", "text":
		return signalType
	default:
		return "text"
	}
}

func incidentTypeFromDamageTypes(data map[string]any) string {
	raw, ok := data["damage_types"].([]any)
	if !ok {
		return "damage"
	}
	for _, v := range raw {
		if s, ok := v.(string); ok && s == "structural_collapse" {
			return "structural_collapse"
		}
	}
	return "damage"
}

func entityNameFromClaim(claim map[string]any) string {
	loc := subMap(claim, "location")
	return stringField(loc, "name")
}

func casualtyRange(m map[string]any) *graph.CasualtyRange {
	if m == nil {
		return nil
	}
	_, minOK := m["min"]
	_, maxOK := m["max"]
	if !minOK && !maxOK {
		return nil
	}
	return &graph.CasualtyRange{Min: intFieldOr(m, "min", 0), Max: intFieldOr(m, "max", 0)}
}

func subMap(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	if sub, ok := m[key].(map[string]any); ok {
		return sub
	}
	return nil
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func stringFieldOr(m map[string]any, key, def string) string {
	if v := stringField(m, key); v != "" {
		return v
	}
	return def
}

func floatFieldOr(m map[string]any, key string, def float64) float64 {
	if m == nil {
		return def
	}
	if f, ok := m[key].(float64); ok {
		return f
	}
	return def
}

func intFieldOr(m map[string]any, key string, def int) int {
	if m == nil {
		return def
	}
	if f, ok := m[key].(float64); ok {
		return int(f)
	}
	if i, ok := m[key].(int); ok {
		return i
	}
	return def
}

func intPtrField(m map[string]any, key string) *int {
	if m == nil {
		return nil
	}
	f, ok := m[key].(float64)
	if !ok {
		return nil
	}
	v := int(f)
	return &v
}

func toStringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		if strs, ok := v.([]string); ok {
			return strs
		}
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
