package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

// BedrockClient is a single-turn Client backed by the AWS Bedrock Converse
// API.
type BedrockClient struct {
	runtime *bedrockruntime.Client
	model   string
}

// NewBedrock constructs a BedrockClient using the default AWS config chain
// (environment, shared config, IAM role) and the given model identifier.
func NewBedrock(ctx context.Context, region, model string) (*BedrockClient, error) {
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("bedrock model identifier is required")
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &BedrockClient{runtime: bedrockruntime.NewFromConfig(cfg), model: model}, nil
}

// Complete sends prompt as a single user turn via Converse and returns the
// concatenated text content of the response.
func (c *BedrockClient) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := c.runtime.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(c.model),
		Messages: []brtypes.Message{
			{
				Role:    brtypes.ConversationRoleUser,
				Content: []brtypes.ContentBlock{&brtypes.ContentBlockMemberText{Value: prompt}},
			},
		},
	})
	if err != nil {
		return "", err
	}
	msg, ok := out.Output.(*brtypes.ConverseOutputMemberMessage)
	if !ok {
		return "", errors.New("bedrock: unexpected output shape")
	}
	var sb strings.Builder
	for _, block := range msg.Value.Content {
		if tb, ok := block.(*brtypes.ContentBlockMemberText); ok {
			sb.WriteString(tb.Value)
		}
	}
	return sb.String(), nil
}
