// Package pipeline wires prompt building, generation, reveal and parsing into
// the two operations the front ends need: a one-shot generate and a streamed
// generate that replays the result word by word.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phyraph/gemki/internal/cards"
	"github.com/phyraph/gemki/internal/domain"
	"github.com/phyraph/gemki/internal/generation"
	"github.com/phyraph/gemki/internal/prompt"
	"github.com/phyraph/gemki/internal/redact"
	"github.com/phyraph/gemki/internal/reveal"
)

// GenerateInput is one user-triggered generation.
type GenerateInput struct {
	APIKey string
	Model  domain.ModelTier
	Text   string
}

// Result is the parsed outcome of a generation.
type Result struct {
	domain.GenerationResult
	Cards []domain.Flashcard `json:"cards"`
}

// Service runs the flashcard pipeline.
type Service struct {
	builder   *prompt.Builder
	generator generation.Generator
	delay     time.Duration
	logger    *slog.Logger
}

// NewService creates a Service. delay is the pause between reveal steps.
func NewService(
	builder *prompt.Builder,
	generator generation.Generator,
	delay time.Duration,
	logger *slog.Logger,
) (*Service, error) {
	if builder == nil {
		return nil, errors.New("prompt builder cannot be nil")
	}
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Service{
		builder:   builder,
		generator: generator,
		delay:     delay,
		logger:    logger.With("component", "pipeline"),
	}, nil
}

// Prepare builds the prompt and assigns a request id.
func (s *Service) Prepare(in GenerateInput) domain.GenerationRequest {
	return domain.NewGenerationRequest(s.builder.Build(in.Text), in.Model)
}

// Run sends a prepared request to the generator and parses the reply.
func (s *Service) Run(ctx context.Context, apiKey string, req domain.GenerationRequest) (*Result, error) {
	log := s.logger.With("request_id", req.ID.String())

	text, err := s.generator.Generate(ctx, apiKey, req.Model, req.Prompt)
	if err != nil {
		log.WarnContext(ctx, "generation did not complete", "error", redact.Error(err))
		return nil, err
	}

	parsed := cards.Parse(text)
	log.InfoContext(ctx, "generation parsed",
		"model_tier", string(req.Model),
		"text_length", len(text),
		"card_count", len(parsed))

	return &Result{
		GenerationResult: domain.GenerationResult{RequestID: req.ID, Text: text},
		Cards:            parsed,
	}, nil
}

// Generate runs the whole pipeline for in.
func (s *Service) Generate(ctx context.Context, in GenerateInput) (*Result, error) {
	return s.Run(ctx, in.APIKey, s.Prepare(in))
}

// Reveal replays res through the scheduler under ticket.
func (s *Service) Reveal(
	ctx context.Context,
	scheduler *reveal.Scheduler,
	ticket reveal.Ticket,
	res *Result,
	emit func(reveal.Step),
) error {
	if err := scheduler.Run(ctx, ticket, res.Text, emit); err != nil {
		if errors.Is(err, reveal.ErrSuperseded) {
			s.logger.DebugContext(ctx, "reveal superseded", "request_id", res.RequestID.String())
		}
		return fmt.Errorf("reveal interrupted: %w", err)
	}
	return nil
}

// Stream generates for in and then emits reveal steps until the text is
// complete. Nothing is emitted if generation fails.
func (s *Service) Stream(ctx context.Context, in GenerateInput, emit func(reveal.Step)) error {
	res, err := s.Generate(ctx, in)
	if err != nil {
		return err
	}

	scheduler := reveal.NewScheduler(s.delay)
	return s.Reveal(ctx, scheduler, scheduler.Start(res.RequestID), res, emit)
}
