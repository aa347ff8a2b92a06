// Package config loads server settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Settings holds the server's environment-driven configuration. Missing
// credentials never prevent startup: the corresponding oracle backend simply
// runs in fallback-only mode.
type Settings struct {
	Port             string
	LogFormat        string // "text" or "json"
	GeminiAPIKey     string
	AnthropicAPIKey  string
	OpenAIAPIKey     string
	ElevenLabsAPIKey string
	CORSOrigins      []string
	SimulationSpeed  float64
	RedisAddr        string // optional; enables the Pulse broadcast sink when set
}

// Load reads Settings from the process environment, applying the same
// defaults as the original service.
func Load() Settings {
	return Settings{
		Port:             getenv("PORT", "8080"),
		LogFormat:        getenv("LOG_FORMAT", "text"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		AnthropicAPIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		ElevenLabsAPIKey: os.Getenv("ELEVENLABS_API_KEY"),
		CORSOrigins:      splitCSV(os.Getenv("CORS_ORIGINS")),
		SimulationSpeed:  getenvFloat("SIMULATION_SPEED", 1.0),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func splitCSV(v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return []string{"*"}
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
