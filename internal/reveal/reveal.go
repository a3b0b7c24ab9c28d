// Package reveal animates text that has already been fully received by
// exposing it one word at a time on a fixed cadence. It is presentation only:
// the final step always carries the complete text, so skipping or cancelling a
// reveal never changes the result.
//
// Each run is bound to a Ticket. Starting a new ticket on the same Scheduler
// invalidates every older one, and a run whose ticket is stale stops before its
// next emit. This is what keeps a superseded generation from overwriting a
// newer one.
package reveal

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultDelay is the pause between two steps.
const DefaultDelay = 50 * time.Millisecond

// ErrSuperseded is returned by Run when a newer ticket was started.
var ErrSuperseded = errors.New("reveal superseded by a newer request")

// Step is one increment of a reveal.
type Step struct {
	RequestID uuid.UUID `json:"request_id"`
	Text      string    `json:"text"`
	Index     int       `json:"index"`
	Total     int       `json:"total"`
	Done      bool      `json:"done"`
}

// Steps returns the growing prefixes of text, one per space-separated word.
// Each word is followed by a single space. Empty text yields a single empty step.
func Steps(text string) []string {
	if text == "" {
		return []string{""}
	}

	words := strings.Split(text, " ")
	steps := make([]string, 0, len(words))

	var b strings.Builder
	b.Grow(len(text) + 1)
	for _, word := range words {
		b.WriteString(word)
		b.WriteByte(' ')
		steps = append(steps, b.String())
	}

	return steps
}

// Scheduler runs reveals for one display. It is safe for concurrent use.
type Scheduler struct {
	delay time.Duration

	mu         sync.Mutex
	generation uint64
}

// NewScheduler creates a Scheduler. A negative delay is treated as zero.
func NewScheduler(delay time.Duration) *Scheduler {
	if delay < 0 {
		delay = 0
	}
	return &Scheduler{delay: delay}
}

// Ticket authorises one reveal run.
type Ticket struct {
	id         uuid.UUID
	generation uint64
	scheduler  *Scheduler
}

// ID returns the request identifier the ticket was issued for.
func (t Ticket) ID() uuid.UUID {
	return t.id
}

// Valid reports whether no newer ticket has been started, and Cancel has not
// been called, since this one was issued.
func (t Ticket) Valid() bool {
	if t.scheduler == nil {
		return false
	}
	t.scheduler.mu.Lock()
	defer t.scheduler.mu.Unlock()
	return t.scheduler.generation == t.generation
}

// Start issues a ticket for requestID and invalidates all earlier tickets.
func (s *Scheduler) Start(requestID uuid.UUID) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return Ticket{id: requestID, generation: s.generation, scheduler: s}
}

// Cancel invalidates the current ticket without starting a new one.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
}

// Run emits the steps of text in order, pausing between them. It returns
// ErrSuperseded if the ticket goes stale, or the context error if ctx ends.
// emit is never called after Run returns.
func (s *Scheduler) Run(ctx context.Context, ticket Ticket, text string, emit func(Step)) error {
	steps := Steps(text)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for i, prefix := range steps {
		if i > 0 && s.delay > 0 {
			if timer == nil {
				timer = time.NewTimer(s.delay)
			} else {
				timer.Reset(s.delay)
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}

		if err := ctx.Err(); err != nil {
			return err
		}
		if !ticket.Valid() {
			return ErrSuperseded
		}

		emit(Step{
			RequestID: ticket.id,
			Text:      prefix,
			Index:     i,
			Total:     len(steps),
			Done:      i == len(steps)-1,
		})
	}

	return nil
}
