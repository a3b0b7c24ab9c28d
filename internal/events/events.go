package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event wraps a payload with identifying metadata.
type Event[T any] struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type names the kind of event, e.g. "session.state_changed"
	Type string `json:"type"`

	// Payload carries the event-specific data
	Payload T `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// New creates an Event with a fresh ID.
func New[T any](eventType string, payload T) *Event[T] {
	return &Event[T]{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
}

// Handler defines an interface for components that can handle events.
type Handler[T any] interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *Event[T]) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc[T any] func(ctx context.Context, event *Event[T]) error

// HandleEvent calls f.
func (f HandlerFunc[T]) HandleEvent(ctx context.Context, event *Event[T]) error {
	return f(ctx, event)
}

// Emitter defines an interface for components that can emit events.
type Emitter[T any] interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *Event[T]) error
}
