package backend

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/otimme/attractor-engine/graph"
)

// GoogleBackend sends the resolved prompt as a single-turn generation
// request to Gemini.
type GoogleBackend struct {
	apiKey    string
	modelName string
}

// NewGoogleBackend creates a GoogleBackend. An empty modelName defaults to
// "gemini-1.5-flash".
func NewGoogleBackend(apiKey, modelName string) *GoogleBackend {
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &GoogleBackend{apiKey: apiKey, modelName: modelName}
}

// Run implements Backend.
func (b *GoogleBackend) Run(ctx context.Context, node *graph.Node, prompt string, _ *graph.Context, _ RunOptions) (Result, error) {
	if b.apiKey == "" {
		return Result{}, fmt.Errorf("google backend: API key is required")
	}
	modelName := b.modelName
	if m := node.AttrString("llm_model"); m != "" {
		modelName = m
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(b.apiKey))
	if err != nil {
		return Result{}, fmt.Errorf("google backend: %w", err)
	}
	defer func() { _ = client.Close() }()

	genModel := client.GenerativeModel(modelName)
	resp, err := genModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return Result{}, fmt.Errorf("google backend: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return TextResult(""), nil
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text += string(t)
		}
	}
	return TextResult(text), nil
}
