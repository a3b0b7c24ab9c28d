package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phyraph/gemki/internal/domain"
	"github.com/phyraph/gemki/internal/redact"
)

// Generator turns a built prompt into generated text.
//
// Implementations must fail with domain.ErrMissingCredential, without any
// network I/O, when apiKey is empty, and with domain.ErrGenerationFailed for
// any remote failure. They do not retry.
type Generator interface {
	Generate(ctx context.Context, apiKey string, model domain.ModelTier, prompt string) (string, error)
}

// Completer is a single text-completion call against one provider.
// modelID is the provider's own model identifier.
type Completer interface {
	Complete(ctx context.Context, apiKey, modelID, prompt string) (string, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, apiKey, modelID, prompt string) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, apiKey, modelID, prompt string) (string, error) {
	return f(ctx, apiKey, modelID, prompt)
}

// Models maps model tiers to provider model ids.
type Models struct {
	Fast  string
	Smart string
}

// Resolve returns the provider model id for a tier.
func (m Models) Resolve(tier domain.ModelTier) (string, error) {
	switch tier {
	case domain.ModelFast:
		return m.Fast, nil
	case domain.ModelSmart:
		return m.Smart, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidModelTier, tier)
	}
}

// Client is the Generator used by the pipeline.
type Client struct {
	provider Completer
	models   Models
	logger   *slog.Logger
}

var _ Generator = (*Client)(nil)

// NewClient creates a Client for the given provider and model mapping.
func NewClient(provider Completer, models Models, logger *slog.Logger) (*Client, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: provider cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if models.Fast == "" || models.Smart == "" {
		return nil, fmt.Errorf("%w: both model ids are required", ErrInvalidConfig)
	}

	return &Client{
		provider: provider,
		models:   models,
		logger:   logger,
	}, nil
}

// Generate implements Generator.
func (c *Client) Generate(
	ctx context.Context,
	apiKey string,
	model domain.ModelTier,
	prompt string,
) (string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return "", domain.ErrMissingCredential
	}

	modelID, err := c.models.Resolve(model)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	c.logger.InfoContext(ctx, "requesting generation",
		"model_tier", string(model),
		"model_id", modelID,
		"prompt_length", len(prompt))

	text, err := c.provider.Complete(ctx, apiKey, modelID, prompt)
	if err != nil {
		c.logger.ErrorContext(ctx, "generation failed",
			"model_id", modelID,
			"error", redact.Error(err))
		return "", fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}

	c.logger.InfoContext(ctx, "generation succeeded",
		"model_id", modelID,
		"text_length", len(text))

	return text, nil
}
