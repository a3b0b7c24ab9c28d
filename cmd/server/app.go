package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phyraph/gemki/internal/api"
	"github.com/phyraph/gemki/internal/config"
	"github.com/phyraph/gemki/internal/pipeline"
)

// application holds all the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	pipeline api.FlashcardService
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	svc, err := pipeline.NewFromConfig(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize pipeline: %w", err)
	}

	logger.Info("Application initialized successfully",
		"provider", cfg.LLM.Provider,
		"fast_model", cfg.LLM.FastModel,
		"smart_model", cfg.LLM.SmartModel)

	return &application{
		config:   cfg,
		logger:   logger,
		pipeline: svc,
	}, nil
}

// Run starts the HTTP server and blocks until it shuts down.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
