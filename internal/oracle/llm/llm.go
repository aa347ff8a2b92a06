// Package llm provides the oracle's selectable LLM backends. Every backend
// satisfies the same single-turn Client interface; analyzers are agnostic to
// which concrete provider is wired in.
package llm

import "context"

// Client completes a single free-form prompt and returns the model's raw
// text response. Every backend adapter in this package implements it.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
