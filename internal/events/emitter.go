package events

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryEmitter stores registered handlers in memory and dispatches events
// to them synchronously, in registration order.
type InMemoryEmitter[T any] struct {
	handlers []Handler[T]
	mu       sync.RWMutex
	logger   *slog.Logger
}

var _ Emitter[struct{}] = (*InMemoryEmitter[struct{}])(nil)

// NewInMemoryEmitter creates a new instance of InMemoryEmitter.
func NewInMemoryEmitter[T any](logger *slog.Logger) *InMemoryEmitter[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEmitter[T]{
		handlers: make([]Handler[T], 0),
		logger:   logger.With("component", "in_memory_event_emitter"),
	}
}

// RegisterHandler adds a new event handler to receive events.
func (e *InMemoryEmitter[T]) RegisterHandler(handler Handler[T]) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, handler)
	e.logger.Debug("registered new event handler", "handler_count", len(e.handlers))
}

// EmitEvent publishes the given event to all registered handlers.
// If any handler returns an error, the event will still be sent to all other handlers,
// and the first error encountered will be returned.
func (e *InMemoryEmitter[T]) EmitEvent(ctx context.Context, event *Event[T]) error {
	e.mu.RLock()
	handlers := make([]Handler[T], len(e.handlers))
	copy(handlers, e.handlers)
	e.mu.RUnlock()

	if len(handlers) == 0 {
		e.logger.Debug("no handlers registered for event",
			"event_id", event.ID,
			"event_type", event.Type)
		return nil
	}

	var firstErr error
	for i, handler := range handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			e.logger.Error("handler failed to process event",
				"error", err,
				"handler_index", i,
				"event_id", event.ID,
				"event_type", event.Type)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
