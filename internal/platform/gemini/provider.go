package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phyraph/gemki/internal/generation"
	"google.golang.org/genai"
)

// Provider implements generation.Completer using the Gemini API.
type Provider struct {
	// logger is used for structured logging
	logger *slog.Logger

	// baseURL overrides the API endpoint when non-empty
	baseURL string

	// httpClient overrides the transport when non-nil
	httpClient *http.Client
}

var _ generation.Completer = (*Provider)(nil)

// Option customises a Provider.
type Option func(*Provider)

// WithBaseURL points the provider at a different endpoint.
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) {
		p.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		p.httpClient = client
	}
}

// NewProvider creates a Gemini provider.
func NewProvider(logger *slog.Logger, opts ...Option) (*Provider, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	p := &Provider{logger: logger}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Complete sends prompt to the model and returns the generated text.
func (p *Provider) Complete(ctx context.Context, apiKey, modelID, prompt string) (string, error) {
	if apiKey == "" {
		return "", fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if p.baseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: p.baseURL}
	}
	if p.httpClient != nil {
		clientConfig.HTTPClient = p.httpClient
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	p.logger.DebugContext(ctx, "Making Gemini API call",
		"model", modelID,
		"prompt_length", len(prompt))

	resp, err := client.Models.GenerateContent(ctx, modelID, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}

	return extractText(resp)
}

// extractText flattens the first candidate's text parts.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s)", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}

	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}

	return b.String(), nil
}
