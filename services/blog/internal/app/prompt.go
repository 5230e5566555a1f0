package app

import (
	"fmt"

	"blogai/pkg/domain"
)

const blogPromptTemplate = `
Write at a 5th grade level. Use clear, simple language and natural phrasing, like how people talk in everyday conversation. Keep the words easy, the tone chill, and the vibe friendly.

## Writing Style:
- Make it personal, casual, and engaging, like a real person talking.
- Use paragraphs, natural pacing, and real-world examples.
- Use simple language and avoid technical jargon.
- Add human touches like relatable and conversational phrases.

## Structure :
1. A short, relatable 2-3 sentence introduction.
2. A catchy H1 title using #
3. A Markdown-formatted Table of Contents with 4-6 H2 sections (##), numbered.
4. Each H2 section should contain:
   - Two subpoints using ### with ~150-200 words total.
5. A ## Frequently Asked Questions section:
   - 4 common questions with short, helpful 2-3 sentence answers.
6. A ## Conclusion (2-3 sentences to wrap up).

## Format:
Use proper Markdown. Output only the blog, no extra explanations.

## Topic:
%s
`

const azureSystemPrompt = "You're a common human. You follow a clear blog structure with TOC, FAQs, and Conclusion. " +
	"Your tone is friendly, casual, and conversational, written for 5th-grade readers. " +
	"Avoid robotic, generic, or overly formal writing."

// BuildPrompt interpolates topic verbatim into the blog template.
func BuildPrompt(topic string) string {
	return fmt.Sprintf(blogPromptTemplate, topic)
}

// SystemPrompt returns the system instruction sent alongside the prompt.
// Gemini receives the template alone.
func SystemPrompt(provider domain.Provider) string {
	if provider == domain.ProviderAzureGPT4o {
		return azureSystemPrompt
	}
	return ""
}
