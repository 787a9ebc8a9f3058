// Package config loads process configuration from the environment.
package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/onekill0503/dnd-bot/internal/errors"
)

// Config is the server configuration. Every field maps to a DND_ variable.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// RedisAddr enables durable sessions; empty keeps sessions in memory
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"1h"`

	OpenAIAPIKey  string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string        `env:"OPENAI_BASE_URL"`
	OpenAIModel   string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAITimeout time.Duration `env:"OPENAI_TIMEOUT" envDefault:"60s"`

	TTSModel string `env:"TTS_MODEL" envDefault:"gpt-4o-mini-tts"`
	TTSVoice string `env:"TTS_VOICE" envDefault:"onyx"`
	// NarrationDir receives narration clips; empty disables voice output
	NarrationDir string `env:"NARRATION_DIR"`

	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
	DefaultMaxPlayers int    `env:"DEFAULT_MAX_PLAYERS" envDefault:"4"`
}

// Prefix is prepended to every variable name
const Prefix = "DND_"

// Load parses the configuration and validates it
func Load(envFiles ...string) (*Config, error) {
	cfg, err := Parse(envFiles...)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse reads optional .env files, then parses the environment without
// validating. Maintenance commands that need only part of it use Parse.
func Parse(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// variables already set win over the file
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to load %s", f)
		}
	}

	cfg, err := env.ParseAsWithOptions[Config](env.Options{Prefix: Prefix})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse environment").WithCode(errors.CodeInvalidArgument)
	}
	return &cfg, nil
}

// Validate checks values the environment parser cannot
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("HTTP_ADDR", c.HTTPAddr, vb)
	errors.ValidateRequired("OPENAI_API_KEY", c.OpenAIAPIKey, vb)
	errors.ValidateRange("DEFAULT_MAX_PLAYERS", c.DefaultMaxPlayers, 1, 10, vb)
	if c.SessionTTL <= 0 {
		vb.InvalidField("SESSION_TTL", "must be positive")
	}
	if c.OpenAITimeout <= 0 {
		vb.InvalidField("OPENAI_TIMEOUT", "must be positive")
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		vb.InvalidField("LOG_LEVEL", "must be one of debug, info, warn, error")
	}

	return vb.Build()
}

// SlogLevel returns the configured log level
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
