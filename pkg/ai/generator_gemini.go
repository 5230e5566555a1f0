package ai

import (
	"context"
	"strings"
)

// DefaultGeminiModel is the model used for blog generation when none is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiBlogOptions are the fixed sampling parameters for Gemini blog generation.
var GeminiBlogOptions = GenerationOptions{
	Temperature:     0.9,
	TopK:            50,
	TopP:            0.95,
	MaxOutputTokens: 4096,
}

// GeminiGenerator wraps GeminiClient with a fixed model and sampling options.
// The response stream is fully buffered before GenerateText returns.
type GeminiGenerator struct {
	client *GeminiClient
	model  string
	opts   GenerationOptions
}

// NewGeminiGenerator builds a streaming Gemini-based TextGenerator.
func NewGeminiGenerator(client *GeminiClient, model string, opts GenerationOptions) *GeminiGenerator {
	if strings.TrimSpace(model) == "" {
		model = DefaultGeminiModel
	}
	return &GeminiGenerator{client: client, model: model, opts: opts}
}

// GenerateText implements TextGenerator by concatenating every streamed chunk.
func (g *GeminiGenerator) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var out strings.Builder
	err := g.client.StreamText(ctx, g.model, systemPrompt, userPrompt, g.opts, func(chunk string) error {
		out.WriteString(chunk)
		return nil
	})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}
