package ai

import "context"

// TextGenerator generates text from a system prompt and user prompt.
// Every blog provider (Gemini streaming, Azure OpenAI chat) implements this interface.
type TextGenerator interface {
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// GenerationOptions holds sampling parameters bound to a generator at construction.
// Zero values are omitted from the request so the provider default applies.
type GenerationOptions struct {
	Temperature     float64
	TopP            float64
	TopK            int
	MaxOutputTokens int
}
