package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phyraph/gemki/internal/api"
	apiMiddleware "github.com/phyraph/gemki/internal/api/middleware"
	"github.com/phyraph/gemki/internal/pipeline"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(middleware.Recoverer)

	flashcardHandler := api.NewFlashcardHandler(
		app.pipeline,
		pipeline.Models(app.config.LLM),
		app.config.Export.DefaultFilename,
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/models", flashcardHandler.Models)
		r.Post("/generate", flashcardHandler.Generate)
		r.Post("/generate/stream", flashcardHandler.Stream)
		r.Post("/source", flashcardHandler.Source)
		r.Post("/parse", flashcardHandler.Parse)
		r.Post("/export", flashcardHandler.Export)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
