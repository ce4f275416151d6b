package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/aimock/aimock-api/internal/api"
	"github.com/aimock/aimock-api/internal/config"
	"github.com/aimock/aimock-api/internal/generation"
	"github.com/aimock/aimock-api/internal/platform/gemini"
	"github.com/aimock/aimock-api/internal/platform/metrics"
	"github.com/aimock/aimock-api/internal/platform/postgres"
	"github.com/aimock/aimock-api/internal/service"
	"github.com/aimock/aimock-api/internal/service/auth"
	"github.com/aimock/aimock-api/internal/store"
)

// retryMargin is added to the gate interval so a retried request is not
// throttled again.
const retryMargin = 50 * time.Millisecond

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config

	logger  *slog.Logger
	db      *sql.DB
	health  api.Pinger
	metrics *metrics.Metrics

	jwtService       auth.JWTService
	interviewService service.InterviewService
	answerService    service.AnswerService
}

// newApplication creates a new application instance with all dependencies initialized.
// The database must already be open and migrated.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	m := metrics.New()
	generator, err := gemini.NewGatedGenerator(ctx, logger, cfg.LLM, cfg.Interview, m)
	if err != nil {
		return nil, err
	}

	app, err := assembleApplication(cfg, logger, stores{
		tx:         store.NewDBTransactor(db),
		interviews: postgres.NewPostgresInterviewStore(db, logger),
		answers:    postgres.NewPostgresAnswerStore(db, logger),
	}, generator, jwtService, m)
	if err != nil {
		return nil, err
	}
	app.db = db
	app.health = db
	return app, nil
}

// stores groups the persistence dependencies of the services.
type stores struct {
	tx         store.Transactor
	interviews store.InterviewStore
	answers    store.AnswerStore
}

// assembleApplication builds the services on top of already constructed
// infrastructure.
func assembleApplication(
	cfg *config.Config,
	logger *slog.Logger,
	s stores,
	generator generation.Generator,
	jwtService auth.JWTService,
	m *metrics.Metrics,
) (*application, error) {
	retry := service.WithRetryPolicy(service.RetryPolicy{
		MaxRetries: cfg.Interview.ThrottleRetries,
		Interval:   cfg.LLM.MinRequestInterval() + retryMargin,
	})

	interviewService, err := service.NewInterviewService(s.tx, s.interviews, s.answers, generator, logger, retry)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize interview service: %w", err)
	}
	answerService, err := service.NewAnswerService(s.interviews, s.answers, generator, logger, retry)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize answer service: %w", err)
	}

	return &application{
		config:           cfg,
		logger:           logger,
		metrics:          m,
		jwtService:       jwtService,
		interviewService: interviewService,
		answerService:    answerService,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("Failed to close database connection", "error", err)
		return
	}
	app.logger.Info("Database connection closed")
}
