package backend

import (
	"context"
	"fmt"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/otimme/attractor-engine/graph"
)

// OpenAIBackend sends the resolved prompt as a single chat-completion
// turn.
type OpenAIBackend struct {
	apiKey    string
	modelName string
}

// NewOpenAIBackend creates an OpenAIBackend. An empty modelName defaults
// to "gpt-4o".
func NewOpenAIBackend(apiKey, modelName string) *OpenAIBackend {
	if modelName == "" {
		modelName = "gpt-4o"
	}
	return &OpenAIBackend{apiKey: apiKey, modelName: modelName}
}

// Run implements Backend.
func (b *OpenAIBackend) Run(ctx context.Context, node *graph.Node, prompt string, _ *graph.Context, _ RunOptions) (Result, error) {
	if b.apiKey == "" {
		return Result{}, fmt.Errorf("openai backend: API key is required")
	}
	modelName := b.modelName
	if m := node.AttrString("llm_model"); m != "" {
		modelName = m
	}

	client := openaisdk.NewClient(option.WithAPIKey(b.apiKey))
	resp, err := client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model:    openaisdk.ChatModel(modelName),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{openaisdk.UserMessage(prompt)},
	})
	if err != nil {
		return Result{}, fmt.Errorf("openai backend: %w", err)
	}
	if len(resp.Choices) == 0 {
		return TextResult(""), nil
	}
	return TextResult(resp.Choices[0].Message.Content), nil
}
