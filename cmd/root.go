// Package cmd contains the minbar CLI commands.
package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/minbarhq/minbar/internal/config"
	"github.com/minbarhq/minbar/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "minbar",
	Short: "minbar - Islamic Q&A backend",
	Long: `minbar answers Islamic questions from a local knowledge corpus and the
Gemini generation API, with devotional response formatting, chat sessions,
and user profiles.

Run "minbar serve" to start the HTTP API, or "minbar ask" for a one-shot
question from the terminal.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env file is fine; the environment may already be set.
		_ = godotenv.Load()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads and validates the configuration shared by all commands.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger from configuration.
func newLogger(cfg *config.Config) log.Logger {
	return log.New(log.Config{
		Level: parseLevel(cfg.LogLevel),
		JSON:  cfg.LogJSON,
	})
}

// parseLevel maps the configured level name to a slog level, defaulting to
// info for unknown names.
func parseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
