package api

import (
	"strings"

	"github.com/google/uuid"
	"github.com/phyraph/gemki/internal/domain"
	"github.com/phyraph/gemki/internal/reveal"
)

// APIKeyHeader carries the caller's model API key.
const APIKeyHeader = "X-API-Key"

// GenerateRequest is the body of POST /api/generate and /api/generate/stream.
type GenerateRequest struct {
	// APIKey is used only when the X-API-Key header is absent.
	APIKey string `json:"api_key,omitempty"`
	Model  string `json:"model" validate:"omitempty,oneof=fast smart flash pro"`
	Text   string `json:"text"`
}

// normalize lower-cases the model name so validation is case-insensitive.
func (r *GenerateRequest) normalize() {
	r.Model = strings.ToLower(strings.TrimSpace(r.Model))
}

// CardResponse is one flashcard.
type CardResponse struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// GenerateResponse is the result of a generation.
type GenerateResponse struct {
	RequestID uuid.UUID      `json:"request_id"`
	Text      string         `json:"text"`
	Cards     []CardResponse `json:"cards"`
}

// StepResponse is the data of one "step" server-sent event.
type StepResponse struct {
	RequestID uuid.UUID      `json:"request_id"`
	Text      string         `json:"text"`
	Cards     []CardResponse `json:"cards"`
	Done      bool           `json:"done"`
}

// SourceResponse carries text extracted from an uploaded file.
type SourceResponse struct {
	Text string `json:"text"`
}

// ParseRequest is the body of POST /api/parse.
type ParseRequest struct {
	Text string `json:"text"`
}

// ParseResponse lists the cards found in a text.
type ParseResponse struct {
	Cards []CardResponse `json:"cards"`
}

// ExportRequest is the body of POST /api/export.
type ExportRequest struct {
	Text     string `json:"text"`
	Filename string `json:"filename" validate:"omitempty,max=255"`
}

// ModelResponse describes a selectable model tier.
type ModelResponse struct {
	ID      domain.ModelTier `json:"id"`
	Label   string           `json:"label"`
	ModelID string           `json:"model_id"`
}

func cardsToResponse(cards []domain.Flashcard) []CardResponse {
	out := make([]CardResponse, len(cards))
	for i, c := range cards {
		out[i] = CardResponse{Front: c.Front, Back: c.Back}
	}
	return out
}

func stepToResponse(step reveal.Step, cards []domain.Flashcard) StepResponse {
	return StepResponse{
		RequestID: step.RequestID,
		Text:      step.Text,
		Cards:     cardsToResponse(cards),
		Done:      step.Done,
	}
}
