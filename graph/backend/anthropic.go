package backend

import (
	"context"
	"fmt"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/otimme/attractor-engine/graph"
)

// AnthropicBackend sends the resolved prompt as a single user turn to
// Claude.
type AnthropicBackend struct {
	apiKey    string
	modelName string
}

// NewAnthropicBackend creates an AnthropicBackend. An empty modelName
// defaults to a current Sonnet snapshot.
func NewAnthropicBackend(apiKey, modelName string) *AnthropicBackend {
	if modelName == "" {
		modelName = "claude-sonnet-4-5-20250929"
	}
	return &AnthropicBackend{apiKey: apiKey, modelName: modelName}
}

// Run implements Backend.
func (b *AnthropicBackend) Run(ctx context.Context, node *graph.Node, prompt string, _ *graph.Context, _ RunOptions) (Result, error) {
	if b.apiKey == "" {
		return Result{}, fmt.Errorf("anthropic backend: API key is required")
	}
	modelName := b.modelName
	if m := node.AttrString("llm_model"); m != "" {
		modelName = m
	}

	client := anthropicsdk.NewClient(option.WithAPIKey(b.apiKey))
	resp, err := client.Messages.New(ctx, anthropicsdk.MessageNewParams{
		Model:     anthropicsdk.Model(modelName),
		MaxTokens: 4096,
		Messages: []anthropicsdk.MessageParam{
			anthropicsdk.NewUserMessage(anthropicsdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("anthropic backend: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return TextResult(text), nil
}
