package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type testPayload struct {
	Text string
	Done bool
}

func TestNew(t *testing.T) {
	payload := testPayload{Text: "Paris", Done: true}

	event := New("reveal.step", payload)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, "reveal.step", event.Type)
	assert.Equal(t, payload, event.Payload)
	assert.WithinDuration(t, time.Now(), event.CreatedAt, 2*time.Second)

	other := New("reveal.step", payload)
	assert.NotEqual(t, event.ID, other.ID)
}

// MockEventHandler implements the Handler interface for testing
type MockEventHandler struct {
	// The last event received by this handler
	LastEvent *Event[testPayload]
	// Error to return from HandleEvent
	HandlerError error
	// Count of events handled
	HandledCount int
}

// HandleEvent implements the Handler interface
func (h *MockEventHandler) HandleEvent(_ context.Context, event *Event[testPayload]) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}

func TestHandlerFunc(t *testing.T) {
	var got *Event[testPayload]
	expectedErr := errors.New("handler error")

	var h Handler[testPayload] = HandlerFunc[testPayload](func(_ context.Context, e *Event[testPayload]) error {
		got = e
		return expectedErr
	})

	event := New("test_type", testPayload{Text: "x"})
	err := h.HandleEvent(context.Background(), event)

	assert.Equal(t, expectedErr, err)
	assert.Same(t, event, got)
}
