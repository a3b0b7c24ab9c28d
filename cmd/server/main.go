// Package main implements the entry point for the Gemki API server, which
// turns study text into flashcards using a hosted language model.
package main

import (
	"context"
	"log"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		app.logger.Error("Server stopped with error", "error", err)
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging and builds the
// application's dependencies.
func initializeApp() (*application, error) {
	cfg, err := loadAppConfig()
	if err != nil {
		return nil, err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return nil, err
	}

	return newApplication(cfg, logger)
}
