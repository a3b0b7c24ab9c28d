package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/phyraph/gemki/internal/config"
	"github.com/phyraph/gemki/internal/generation"
	"github.com/phyraph/gemki/internal/platform/gemini"
	"github.com/phyraph/gemki/internal/platform/groq"
	"github.com/phyraph/gemki/internal/prompt"
)

// NewProvider returns the completion provider named by cfg.Provider.
func NewProvider(cfg config.LLMConfig, logger *slog.Logger) (generation.Completer, error) {
	switch cfg.Provider {
	case "", "gemini":
		var opts []gemini.Option
		if cfg.BaseURL != "" {
			opts = append(opts, gemini.WithBaseURL(cfg.BaseURL))
		}
		p, err := gemini.NewProvider(logger.With("component", "gemini_provider"), opts...)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "groq":
		p, err := groq.NewProvider(logger.With("component", "groq_provider"))
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", generation.ErrInvalidConfig, cfg.Provider)
	}
}

// Models returns the tier to model id mapping configured for cfg.Provider.
func Models(cfg config.LLMConfig) generation.Models {
	return generation.Models{Fast: cfg.FastModel, Smart: cfg.SmartModel}
}

// NewFromConfig builds a Service from application configuration.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Service, error) {
	builder, err := prompt.NewBuilder(cfg.LLM.PromptTemplatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt template: %w", err)
	}

	provider, err := NewProvider(cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	client, err := generation.NewClient(provider, Models(cfg.LLM), logger.With("component", "generation_client"))
	if err != nil {
		return nil, fmt.Errorf("failed to create generation client: %w", err)
	}

	return NewService(builder, client, cfg.Reveal.StepDelay, logger)
}
