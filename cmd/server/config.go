package main

import (
	"fmt"
	"log/slog"

	"github.com/phyraph/gemki/internal/config"
)

// loadAppConfig loads the application configuration from environment variables or config file.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"llm_provider", cfg.LLM.Provider)

	if cfg.LLM.BaseURL != "" {
		slog.Debug("LLM endpoint override", "base_url_present", true)
	}

	return cfg, nil
}
