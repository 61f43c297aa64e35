// Package config provides application configuration management with
// multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (MINBAR_* plus GEMINI_API_KEY)
//  2. Config file (~/.minbar/config.yaml or ./config.yaml)
//  3. Default values
//
// Error Handling:
//   - Sentinel errors for Go-idiomatic checking with errors.Is()
//   - Wrapped with context using fmt.Errorf("%w: details", ErrXxx)
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrMissingAPIKey indicates the Gemini API key is missing.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrInvalidModelName indicates the model name is invalid.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidTemperature indicates the temperature value is out of range.
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidTopP indicates the top_p value is out of range.
	ErrInvalidTopP = errors.New("invalid top_p")

	// ErrInvalidTopK indicates the top_k value is out of range.
	ErrInvalidTopK = errors.New("invalid top_k")

	// ErrInvalidMaxTokens indicates the max tokens value is out of range.
	ErrInvalidMaxTokens = errors.New("invalid max tokens")

	// ErrInvalidTimeout indicates the generation timeout is out of range.
	ErrInvalidTimeout = errors.New("invalid generation timeout")

	// ErrInvalidDatabasePath indicates the database path is empty.
	ErrInvalidDatabasePath = errors.New("invalid database path")

	// ErrInvalidHistoryLimit indicates the history limit is out of range.
	ErrInvalidHistoryLimit = errors.New("invalid history limit")

	// ErrInvalidRateLimit indicates the API rate limit is out of range.
	ErrInvalidRateLimit = errors.New("invalid rate limit")
)

const (
	// DefaultModelName is the Gemini model used when none is configured.
	DefaultModelName = "gemini-2.5-flash"

	// DefaultHistoryLimit is the number of recent session messages passed
	// to the answer pipeline as conversation context.
	DefaultHistoryLimit = 5

	// MaxHistoryLimit bounds the history window to keep prompts small.
	MaxHistoryLimit = 50

	// DefaultGenerateTimeout bounds a single generation call. Hosted
	// generation APIs can hang; the pipeline treats an expired deadline
	// like any other generator failure.
	DefaultGenerateTimeout = 45 * time.Second
)

// Config stores application configuration.
type Config struct {
	// Generation configuration
	ModelName   string  `mapstructure:"model_name"`
	Temperature float32 `mapstructure:"temperature"`
	TopP        float32 `mapstructure:"top_p"`
	TopK        int32   `mapstructure:"top_k"`
	MaxTokens   int32   `mapstructure:"max_tokens"`

	// GenerateTimeoutSeconds bounds a single generator call.
	GenerateTimeoutSeconds int `mapstructure:"generate_timeout_seconds"`

	// GeminiAPIKey is read from the GEMINI_API_KEY environment variable
	// only; it is never written to the config file.
	GeminiAPIKey string `mapstructure:"-"`

	// Knowledge corpus configuration
	CorpusDir string `mapstructure:"corpus_dir"`

	// Storage configuration
	DatabasePath string `mapstructure:"database_path"`

	// HTTP server configuration
	Addr      string  `mapstructure:"addr"`
	RateLimit float64 `mapstructure:"rate_limit"` // requests per second, 0 disables
	RateBurst int     `mapstructure:"rate_burst"`

	// Conversation history window passed to the pipeline.
	HistoryLimit int `mapstructure:"history_limit"`

	// Logging configuration
	LogJSON  bool   `mapstructure:"log_json"`
	LogLevel string `mapstructure:"log_level"`
}

// GenerateTimeout returns the generation timeout as a duration.
func (c *Config) GenerateTimeout() time.Duration {
	if c.GenerateTimeoutSeconds <= 0 {
		return DefaultGenerateTimeout
	}
	return time.Duration(c.GenerateTimeoutSeconds) * time.Second
}

// Load loads configuration.
// Priority: environment variables > configuration file > default values.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".minbar")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	setDefaults(v, configDir)

	v.SetEnvPrefix("MINBAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is not an error; defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using defaults",
			"search_paths", []string{configDir, "."})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("model_name", DefaultModelName)
	v.SetDefault("temperature", 0.7)
	v.SetDefault("top_p", 0.95)
	v.SetDefault("top_k", 40)
	v.SetDefault("max_tokens", 2048)
	v.SetDefault("generate_timeout_seconds", int(DefaultGenerateTimeout/time.Second))

	v.SetDefault("corpus_dir", "data")
	v.SetDefault("database_path", filepath.Join(configDir, "minbar.db"))

	v.SetDefault("addr", "127.0.0.1:8000")
	v.SetDefault("rate_limit", 0.0)
	v.SetDefault("rate_burst", 10)

	v.SetDefault("history_limit", DefaultHistoryLimit)

	v.SetDefault("log_json", false)
	v.SetDefault("log_level", "info")
}
