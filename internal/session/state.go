// Package session holds the state of one interactive flashcard session and
// the pure reducer that advances it. Nothing in this package performs I/O:
// callers run side effects (generation, reveal, clipboard) and feed their
// outcomes back in as events.
package session

import (
	"strings"

	"github.com/google/uuid"
	"github.com/phyraph/gemki/internal/cards"
	"github.com/phyraph/gemki/internal/domain"
)

// State is a snapshot of a session. Treat it as immutable.
type State struct {
	APIKey string           `json:"-"`
	Model  domain.ModelTier `json:"model"`
	Input  string           `json:"input"`

	Output string `json:"output"`
	Error  string `json:"error,omitempty"`

	Loading   bool `json:"loading"`
	Streaming bool `json:"streaming"`

	CurrentRequest uuid.UUID `json:"current_request"`
	Carousel       Carousel  `json:"carousel"`
}

// New returns the initial state.
func New(model domain.ModelTier) State {
	if !model.Valid() {
		model = domain.ModelFast
	}
	return State{Model: model}
}

// Busy reports whether a generation is in flight.
func (s State) Busy() bool {
	return s.Loading || s.Streaming
}

// Reduce returns the state that results from applying ev to s.
func Reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case KeyEntered:
		s.APIKey = e.Key
	case ModelSelected:
		if e.Model.Valid() {
			s.Model = e.Model
		}
	case InputChanged:
		s.Input = e.Text
	case FileLoaded:
		s.Input = e.Text
		s.Error = ""
	case FileRejected:
		s.Error = domain.UserMessage(e.Err)

	case GenerateRequested:
		if strings.TrimSpace(s.APIKey) == "" {
			s.Error = domain.MsgMissingCredential
			return s
		}
		s.Error = ""
		s.Output = ""
		s.Loading = true
		s.Streaming = true
		s.CurrentRequest = e.Request.ID
		s.Carousel = s.Carousel.Load(nil)

	case GenerationFailed:
		if e.RequestID != s.CurrentRequest {
			return s
		}
		s.Error = domain.UserMessage(e.Err)
		s.Output = ""
		s.Loading = false
		s.Streaming = false
		s.Carousel = s.Carousel.Load(nil)

	case RevealStepped:
		if e.Step.RequestID != s.CurrentRequest || !s.Streaming {
			return s
		}
		s.Loading = false
		s.Output = e.Step.Text
		s.Carousel = s.Carousel.Load(cards.Parse(e.Step.Text))
		if e.Step.Done {
			s.Streaming = false
		}

	case CardNext:
		s.Carousel = s.Carousel.Next()
	case CardPrev:
		s.Carousel = s.Carousel.Prev()
	case CardLanded:
		s.Carousel = s.Carousel.Land()
	case CardFlipped:
		s.Carousel = s.Carousel.Flip()

	case CopyFailed:
		// logged by the store, not shown
	}

	return s
}
