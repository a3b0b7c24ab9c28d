package domain

import (
	"github.com/google/uuid"
)

// GenerationRequest is created once per user-triggered generation and never
// modified afterwards. Its ID doubles as the invalidation token for the reveal
// that follows: any update carrying a different ID is stale.
type GenerationRequest struct {
	ID     uuid.UUID `json:"id"`
	Prompt string    `json:"-"`
	Model  ModelTier `json:"model"`
}

// NewGenerationRequest creates a request with a fresh identifier.
func NewGenerationRequest(prompt string, model ModelTier) GenerationRequest {
	return GenerationRequest{
		ID:     uuid.New(),
		Prompt: prompt,
		Model:  model,
	}
}

// GenerationResult holds the full text returned for a request.
type GenerationResult struct {
	RequestID uuid.UUID `json:"request_id"`
	Text      string    `json:"text"`
}
