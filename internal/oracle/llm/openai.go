package llm

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient is a single-turn Client backed by the OpenAI Chat Completions
// API.
type OpenAIClient struct {
	chat  *openai.Client
	model string
}

// NewOpenAI constructs an OpenAIClient from an API key and model identifier.
func NewOpenAI(apiKey, model string) (*OpenAIClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openai api key is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("openai model identifier is required")
	}
	return &OpenAIClient{chat: openai.NewClient(apiKey), model: model}, nil
}

// Complete sends prompt as a single user message and returns the first
// choice's message content.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.chat.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
