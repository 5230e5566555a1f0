package domain

import "strings"

// Provider selects which upstream LLM generates a blog.
type Provider string

const (
	ProviderGemini     Provider = "gemini"
	ProviderAzureGPT4o Provider = "gpt-4o-azure"
)

// DefaultProvider is used when a request does not name a model.
const DefaultProvider = ProviderGemini

// Providers lists every recognised provider in display order.
var Providers = []Provider{ProviderGemini, ProviderAzureGPT4o}

// ParseProvider maps a model selector to a Provider, ignoring case.
func ParseProvider(selector string) (Provider, bool) {
	selector = strings.ToLower(selector)
	for _, p := range Providers {
		if string(p) == selector {
			return p, true
		}
	}
	return "", false
}

// BlogRequest is the body accepted by POST /generate_blog.
// Model is nil when the field is absent or null.
type BlogRequest struct {
	Topic string  `json:"topic"`
	Model *string `json:"model,omitempty"`
}

// BlogResponse carries the generated Markdown document.
type BlogResponse struct {
	Blog string `json:"blog"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
