package session

import (
	"github.com/google/uuid"
	"github.com/phyraph/gemki/internal/domain"
	"github.com/phyraph/gemki/internal/reveal"
)

// Event is an input to Reduce.
type Event interface {
	eventName() string
}

// KeyEntered sets the API key.
type KeyEntered struct{ Key string }

// ModelSelected sets the model tier.
type ModelSelected struct{ Model domain.ModelTier }

// InputChanged replaces the input text with manual edits.
type InputChanged struct{ Text string }

// FileLoaded replaces the input text with the contents of an accepted file.
type FileLoaded struct{ Text string }

// FileRejected reports a file that could not be used.
type FileRejected struct{ Err error }

// GenerateRequested starts a generation.
type GenerateRequested struct{ Request domain.GenerationRequest }

// GenerationFailed ends a generation without output.
type GenerationFailed struct {
	RequestID uuid.UUID
	Err       error
}

// RevealStepped carries one step of the reveal.
type RevealStepped struct{ Step reveal.Step }

// CopyFailed records a clipboard failure. It never changes state.
type CopyFailed struct{ Err error }

// CardNext, CardPrev, CardLanded and CardFlipped drive the carousel.
type (
	CardNext    struct{}
	CardPrev    struct{}
	CardLanded  struct{}
	CardFlipped struct{}
)

func (KeyEntered) eventName() string        { return "key_entered" }
func (ModelSelected) eventName() string     { return "model_selected" }
func (InputChanged) eventName() string      { return "input_changed" }
func (FileLoaded) eventName() string        { return "file_loaded" }
func (FileRejected) eventName() string      { return "file_rejected" }
func (GenerateRequested) eventName() string { return "generate_requested" }
func (GenerationFailed) eventName() string  { return "generation_failed" }
func (RevealStepped) eventName() string     { return "reveal_stepped" }
func (CopyFailed) eventName() string        { return "copy_failed" }
func (CardNext) eventName() string          { return "card_next" }
func (CardPrev) eventName() string          { return "card_prev" }
func (CardLanded) eventName() string        { return "card_landed" }
func (CardFlipped) eventName() string       { return "card_flipped" }

// EventName returns a stable name for ev, used in logs.
func EventName(ev Event) string {
	if ev == nil {
		return ""
	}
	return ev.eventName()
}
