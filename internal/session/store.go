package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/phyraph/gemki/internal/events"
	"github.com/phyraph/gemki/internal/redact"
)

// StateChangedEvent is the event type published after every dispatch.
const StateChangedEvent = "session.state_changed"

// StateChanged is the payload of a StateChangedEvent.
type StateChanged struct {
	Cause    string
	Previous State
	Current  State
}

// Store owns the current State and serialises dispatches.
type Store struct {
	mu      sync.Mutex
	state   State
	emitter events.Emitter[StateChanged]
	logger  *slog.Logger
}

// NewStore creates a Store. emitter may be nil.
func NewStore(initial State, emitter events.Emitter[StateChanged], logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		state:   initial,
		emitter: emitter,
		logger:  logger.With("component", "session_store"),
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies ev and publishes the transition. The returned error comes
// from subscribers only; the state change itself cannot fail.
func (s *Store) Dispatch(ctx context.Context, ev Event) (State, error) {
	if cf, ok := ev.(CopyFailed); ok {
		s.logger.WarnContext(ctx, "copy to clipboard failed", "error", redact.Error(cf.Err))
	}

	s.mu.Lock()
	prev := s.state
	next := Reduce(prev, ev)
	s.state = next
	s.mu.Unlock()

	if next.Error != "" && next.Error != prev.Error {
		s.logger.InfoContext(ctx, "session error displayed",
			"event", EventName(ev),
			"message", next.Error)
	}

	if s.emitter == nil {
		return next, nil
	}

	err := s.emitter.EmitEvent(ctx, events.New(StateChangedEvent, StateChanged{
		Cause:    EventName(ev),
		Previous: prev,
		Current:  next,
	}))
	return next, err
}
