package llm

import (
	"context"
	"errors"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicClient is a single-turn Client backed by the Anthropic Claude
// Messages API.
type AnthropicClient struct {
	messages *sdk.MessageService
	model    string
	maxTok   int64
}

// NewAnthropic constructs an AnthropicClient from an API key and model
// identifier (e.g. string(sdk.ModelClaudeSonnet4_5_20250929)).
func NewAnthropic(apiKey, model string, maxTokens int64) (*AnthropicClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("anthropic api key is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("anthropic model identifier is required")
	}
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	client := sdk.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClient{messages: &client.Messages, model: model, maxTok: maxTokens}, nil
}

// Complete sends prompt as a single user message and returns the
// concatenated text of the response's content blocks.
func (c *AnthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: c.maxTok,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Text != "" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
