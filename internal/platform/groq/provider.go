// Package groq provides a generation.Completer backed by Groq's chat
// completion API. It is the alternate provider selected with llm.provider=groq.
package groq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/conneroisu/groq-go"
	"github.com/phyraph/gemki/internal/generation"
)

// Provider implements generation.Completer using Groq.
type Provider struct {
	logger *slog.Logger
}

var _ generation.Completer = (*Provider)(nil)

// NewProvider creates a Groq provider.
func NewProvider(logger *slog.Logger) (*Provider, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Provider{logger: logger}, nil
}

// Complete sends prompt as a single user message and returns the reply.
func (p *Provider) Complete(ctx context.Context, apiKey, modelID, prompt string) (string, error) {
	if apiKey == "" {
		return "", fmt.Errorf("%w: groq API key cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := groq.NewClient(apiKey)
	if err != nil {
		return "", fmt.Errorf("%w: create groq client: %v", generation.ErrInvalidConfig, err)
	}

	p.logger.DebugContext(ctx, "Making Groq API call",
		"model", modelID,
		"prompt_length", len(prompt))

	resp, err := client.ChatCompletion(ctx, groq.ChatCompletionRequest{
		Model: groq.ChatModel(modelID),
		Messages: []groq.ChatCompletionMessage{
			{Role: groq.RoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("groq API call failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", generation.ErrInvalidResponse)
	}

	return resp.Choices[0].Message.Content, nil
}
