package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
//
// The model API key is deliberately absent: it is supplied per request or per
// session and never read from configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
	Reveal   RevealConfig   `mapstructure:"reveal"`
	Carousel CarouselConfig `mapstructure:"carousel"`
	Export   ExportConfig   `mapstructure:"export" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// Supported generation providers.
const (
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
)

// LLMConfig selects the generation provider and its models. Unset models
// default per provider.
type LLMConfig struct {
	Provider   string `mapstructure:"provider" validate:"required,oneof=gemini groq"`
	FastModel  string `mapstructure:"fast_model" validate:"required"`
	SmartModel string `mapstructure:"smart_model" validate:"required"`
	// BaseURL overrides the provider endpoint. Empty means the provider default.
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
	// PromptTemplatePath points at an optional replacement prompt template.
	PromptTemplatePath string `mapstructure:"prompt_template_path"`
}

// RevealConfig controls the word-by-word reveal.
type RevealConfig struct {
	StepDelay time.Duration `mapstructure:"step_delay" validate:"gte=0"`
}

// CarouselConfig controls card navigation.
type CarouselConfig struct {
	Animation time.Duration `mapstructure:"animation" validate:"gte=0"`
}

// ExportConfig controls CSV export.
type ExportConfig struct {
	DefaultFilename string `mapstructure:"default_filename" validate:"required"`
	Dir             string `mapstructure:"dir"`
}
