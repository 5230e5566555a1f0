package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"blogai/internal/util"
	"blogai/pkg/domain"
	"blogai/services/blog/internal/app"
	"blogai/services/blog/internal/config"
)

func newGenerateCmd() *cobra.Command {
	var (
		topic      string
		model      string
		configPath string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a blog post for a topic",
		Long:  `Generate a blog post with the same prompt, provider settings and validation as POST /generate_blog.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			// stdout carries the blog, so logs go to stderr.
			logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: util.ParseLevel(cfg.LogLevel),
			})).With("service", "blogctl")
			appCore, err := app.New(app.Config{
				GeminiAPIKey:    cfg.GeminiAPIKey,
				GeminiBaseURL:   cfg.GeminiBaseURL,
				GeminiModel:     cfg.GeminiModel,
				AzureAPIKey:     cfg.AzureAPIKey,
				AzureEndpoint:   cfg.AzureEndpoint,
				AzureDeployment: cfg.AzureDeployment,
				AzureAPIVersion: cfg.AzureAPIVersion,
				ProviderTimeout: cfg.ProviderTimeout(),
			})
			if err != nil {
				return err
			}

			req := domain.BlogRequest{Topic: topic}
			if cmd.Flags().Changed("model") {
				req.Model = &model
			}
			ctx := util.ContextWithLogger(cmd.Context(), logger.With("request_id", util.NewRequestID()))
			resp, err := appCore.GenerateBlog(ctx, req)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), resp.Blog)
			return err
		},
	}
	cmd.Flags().StringVar(&topic, "topic", "", "Blog topic (required)")
	cmd.Flags().StringVar(&model, "model", string(domain.DefaultProvider), "Model: gemini or gpt-4o-azure")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config.yaml (defaults to $BLOG_CONFIG, then ./config.yaml)")
	return cmd
}

func newPromptCmd() *cobra.Command {
	var (
		topic string
		model string
	)
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the prompt sent to a provider for a topic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, ok := domain.ParseProvider(model)
			if !ok {
				return app.ErrInvalidModel
			}
			if system := app.SystemPrompt(provider); system != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "# system\n%s\n\n# user\n", system)
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), app.BuildPrompt(topic))
			return err
		},
	}
	cmd.Flags().StringVar(&topic, "topic", "", "Blog topic")
	cmd.Flags().StringVar(&model, "model", string(domain.DefaultProvider), "Model: gemini or gpt-4o-azure")
	return cmd
}
