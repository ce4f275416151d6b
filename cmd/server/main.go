// Package main implements the entry point for the AI mock interview API
// server, which generates interview questions with Gemini and grades the
// answers users submit.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aimock/aimock-api/internal/config"
	"github.com/aimock/aimock-api/internal/platform/logger"
	"github.com/aimock/aimock-api/internal/platform/postgres"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

// run loads configuration, prepares the database and serves HTTP until the
// process is told to stop.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"model", cfg.LLM.ModelName)

	db, err := postgres.Open(ctx, cfg.Database.URL, log)
	if err != nil {
		return err
	}

	if err := postgres.Migrate(ctx, db, log, postgres.MigrateUp); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app, err := newApplication(ctx, cfg, log, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}
