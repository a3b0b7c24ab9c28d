package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phyraph/gemki/internal/reveal"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. GEMKI_SERVER_PORT.
const EnvPrefix = "GEMKI"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("llm.provider", ProviderGemini)
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.prompt_template_path", "")

	v.SetDefault("reveal.step_delay", reveal.DefaultDelay)
	v.SetDefault("carousel.animation", "300ms")

	v.SetDefault("export.default_filename", "flashcards.csv")
	v.SetDefault("export.dir", "")
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path searches for
// config.yaml in the working directory and ./config; a missing file is not an
// error in that case.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Model ids have no static default, so bind them for Unmarshal to see.
	for _, key := range []string{"llm.fast_model", "llm.smart_model"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.LLM.applyModelDefaults()

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// providerModels are the fast and smart model ids used when none are configured.
var providerModels = map[string][2]string{
	ProviderGemini: {"gemini-1.5-flash", "gemini-1.5-pro"},
	ProviderGroq:   {"llama-3.1-8b-instant", "llama-3.3-70b-versatile"},
}

// applyModelDefaults fills unset model ids from the selected provider.
func (c *LLMConfig) applyModelDefaults() {
	models, ok := providerModels[c.Provider]
	if !ok {
		return
	}
	if c.FastModel == "" {
		c.FastModel = models[0]
	}
	if c.SmartModel == "" {
		c.SmartModel = models[1]
	}
}
