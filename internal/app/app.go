// Package app wires the application components into one container: config,
// logger, database, stores, knowledge corpus, retriever, generator, and the
// answer pipeline.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/minbarhq/minbar/internal/agent"
	"github.com/minbarhq/minbar/internal/config"
	"github.com/minbarhq/minbar/internal/database"
	"github.com/minbarhq/minbar/internal/gemini"
	"github.com/minbarhq/minbar/internal/knowledge"
	"github.com/minbarhq/minbar/internal/log"
	"github.com/minbarhq/minbar/internal/retrieval"
	"github.com/minbarhq/minbar/internal/session"
	"github.com/minbarhq/minbar/internal/user"
)

// App is the application container.
type App struct {
	Config    *config.Config
	Logger    log.Logger
	DB        *sql.DB
	Knowledge *knowledge.Store
	Retriever *retrieval.Retriever
	Sessions  *session.Store
	Users     *user.Store
	Pipeline  *agent.Pipeline
}

// New builds the full container: validates config, opens and migrates the
// database, loads the knowledge corpus, and wires the answer pipeline.
func New(ctx context.Context, cfg *config.Config, logger log.Logger) (*App, error) {
	if err := cfg.ValidateServe(); err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}
	if logger == nil {
		logger = log.NewNop()
	}

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info("database ready", "path", cfg.DatabasePath)

	store := knowledge.Load(cfg.CorpusDir, logger)
	retriever := retrieval.New(store, logger)

	generator, err := gemini.NewClient(ctx, cfg, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	pipeline := agent.NewPipeline(retriever, generator, logger, cfg.GenerateTimeout(), cfg.HistoryLimit)

	return &App{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Knowledge: store,
		Retriever: retriever,
		Sessions:  session.NewStore(db, logger),
		Users:     user.NewStore(db, logger),
		Pipeline:  pipeline,
	}, nil
}

// Close releases the container's resources.
func (a *App) Close() error {
	a.Logger.Info("shutting down")
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
	}
	return nil
}
