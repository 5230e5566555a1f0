package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"blogai/internal/util"
	"blogai/pkg/ai"
	"blogai/pkg/domain"
)

// Config holds runtime configuration for the core application.
type Config struct {
	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModel   string

	AzureAPIKey     string
	AzureEndpoint   string
	AzureDeployment string
	AzureAPIVersion string

	ProviderTimeout time.Duration

	// Generators replaces the adapter built for a provider. Tests and the CLI use it.
	Generators map[domain.Provider]ai.TextGenerator
}

// App generates blogs by dispatching a fixed prompt to the selected provider.
// It holds no mutable state and is safe for concurrent use.
type App struct {
	generators map[domain.Provider]ai.TextGenerator
}

// New constructs the application with one generator per recognised provider.
func New(cfg Config) (*App, error) {
	generators := make(map[domain.Provider]ai.TextGenerator, len(domain.Providers))
	for provider, gen := range cfg.Generators {
		if _, ok := domain.ParseProvider(string(provider)); !ok {
			return nil, fmt.Errorf("unknown provider: %s", provider)
		}
		generators[provider] = gen
	}
	if _, ok := generators[domain.ProviderGemini]; !ok {
		client := ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.ProviderTimeout)
		generators[domain.ProviderGemini] = ai.NewGeminiGenerator(client, cfg.GeminiModel, ai.GeminiBlogOptions)
	}
	if _, ok := generators[domain.ProviderAzureGPT4o]; !ok {
		generators[domain.ProviderAzureGPT4o] = ai.NewAzureOpenAIGenerator(ai.AzureOpenAIConfig{
			Endpoint:   cfg.AzureEndpoint,
			APIKey:     cfg.AzureAPIKey,
			Deployment: cfg.AzureDeployment,
			APIVersion: cfg.AzureAPIVersion,
			Timeout:    cfg.ProviderTimeout,
		}, ai.AzureBlogOptions)
	}
	for _, provider := range domain.Providers {
		if generators[provider] == nil {
			return nil, fmt.Errorf("generator for provider %s is nil", provider)
		}
	}
	return &App{generators: generators}, nil
}

// GenerateBlog validates the request, builds the prompt and returns the provider's text.
// Invalid requests fail with an error matching ErrInvalidInput; provider failures
// are returned as *ProviderError.
func (a *App) GenerateBlog(ctx context.Context, req domain.BlogRequest) (domain.BlogResponse, error) {
	topic := strings.TrimSpace(req.Topic)
	selector := string(domain.DefaultProvider)
	if req.Model != nil {
		selector = *req.Model
	}
	logger := util.LoggerFromContext(ctx)
	logger.Info("blog request received", "model", strings.ToLower(selector), "topic", topic)

	if topic == "" {
		return domain.BlogResponse{}, ErrMissingTopic
	}
	provider, ok := domain.ParseProvider(selector)
	if !ok {
		return domain.BlogResponse{}, ErrInvalidModel
	}

	logger.Info("dispatching blog generation", "provider", provider)
	blog, err := a.dispatch(ctx, provider, BuildPrompt(topic))
	if err != nil {
		logger.Error("blog generation failed", "provider", provider, "err", err)
		return domain.BlogResponse{}, err
	}
	return domain.BlogResponse{Blog: blog}, nil
}

// dispatch calls the provider and converts every error or panic into a *ProviderError.
func (a *App) dispatch(ctx context.Context, provider domain.Provider, prompt string) (blog string, err error) {
	defer func() {
		if r := recover(); r != nil {
			blog = ""
			err = &ProviderError{Provider: provider, Err: fmt.Errorf("%v", r)}
		}
	}()
	text, genErr := a.generators[provider].GenerateText(ctx, SystemPrompt(provider), prompt)
	if genErr != nil {
		return "", &ProviderError{Provider: provider, Err: genErr}
	}
	return text, nil
}
