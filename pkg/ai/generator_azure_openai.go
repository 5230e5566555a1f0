package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultAzureAPIVersion is the Azure OpenAI REST api-version used when none is configured.
const DefaultAzureAPIVersion = "2025-01-01-preview"

// AzureBlogOptions are the fixed sampling parameters for Azure chat blog generation.
var AzureBlogOptions = GenerationOptions{
	Temperature:     0.9,
	TopP:            0.95,
	MaxOutputTokens: 2048,
}

// AzureOpenAIConfig identifies an Azure OpenAI chat deployment.
type AzureOpenAIConfig struct {
	Endpoint   string
	APIKey     string
	Deployment string
	APIVersion string
	Timeout    time.Duration
}

// AzureOpenAIGenerator calls an Azure OpenAI /chat/completions deployment.
type AzureOpenAIGenerator struct {
	endpoint   string
	apiKey     string
	deployment string
	apiVersion string
	opts       GenerationOptions
	httpClient *http.Client
}

// NewAzureOpenAIGenerator builds an Azure chat-completion TextGenerator.
// Missing endpoint, key or deployment are reported on the first call.
func NewAzureOpenAIGenerator(cfg AzureOpenAIConfig, opts GenerationOptions) *AzureOpenAIGenerator {
	apiVersion := strings.TrimSpace(cfg.APIVersion)
	if apiVersion == "" {
		apiVersion = DefaultAzureAPIVersion
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &AzureOpenAIGenerator{
		endpoint:   strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		deployment: strings.TrimSpace(cfg.Deployment),
		apiVersion: apiVersion,
		opts:       opts,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GenerateText implements TextGenerator using the Azure chat completions API.
func (g *AzureOpenAIGenerator) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	switch {
	case g.endpoint == "":
		return "", fmt.Errorf("azure openai endpoint required")
	case g.apiKey == "":
		return "", fmt.Errorf("azure openai api key required")
	case g.deployment == "":
		return "", fmt.Errorf("azure openai deployment required")
	}

	messages := make([]oaiMessage, 0, 2)
	if strings.TrimSpace(systemPrompt) != "" {
		messages = append(messages, oaiMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, oaiMessage{Role: "user", Content: userPrompt})

	reqBody := oaiChatRequest{
		Model:       g.deployment,
		Messages:    messages,
		Temperature: g.opts.Temperature,
		TopP:        g.opts.TopP,
		MaxTokens:   g.opts.MaxOutputTokens,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		g.endpoint, url.PathEscape(g.deployment), url.QueryEscape(g.apiVersion))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("azure openai request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp oaiErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Error.Message != "" {
			return "", fmt.Errorf("azure openai api error: %s", errResp.Error.Message)
		}
		return "", fmt.Errorf("azure openai api error: %s", resp.Status)
	}

	var chatResp oaiChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("azure openai decode: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from azure openai")
	}
	choice := chatResp.Choices[0]
	content := ""
	if choice.Message.Content != nil {
		content = *choice.Message.Content
	}
	if content == "" && choice.FinishReason == "content_filter" {
		return "", fmt.Errorf("azure openai response filtered: %s", choice.FinishReason)
	}
	return content, nil
}

// OpenAI-style chat request/response types.

type oaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type oaiChatRequest struct {
	Model       string       `json:"model"`
	Messages    []oaiMessage `json:"messages"`
	Temperature float64      `json:"temperature,omitempty"`
	TopP        float64      `json:"top_p,omitempty"`
	MaxTokens   int          `json:"max_tokens,omitempty"`
}

type oaiChatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

type oaiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
