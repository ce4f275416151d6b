package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aimock/aimock-api/internal/domain"
	"github.com/aimock/aimock-api/internal/platform/logger"
	"github.com/aimock/aimock-api/internal/store"
)

const interviewColumns = `id, user_id, position, description, experience, tech_stack, questions, created_at, updated_at`

// PostgresInterviewStore implements store.InterviewStore on PostgreSQL.
// Questions are stored as a JSONB array of {question, answer} objects.
type PostgresInterviewStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.InterviewStore = (*PostgresInterviewStore)(nil)

// NewPostgresInterviewStore creates an interview store over db, which may be
// a pool or a transaction. If logger is nil, the default logger is used.
func NewPostgresInterviewStore(db store.DBTX, logger *slog.Logger) *PostgresInterviewStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresInterviewStore{
		db:     db,
		logger: logger.With(slog.String("component", "interview_store")),
	}
}

// WithTx returns a store that runs its queries in tx.
func (s *PostgresInterviewStore) WithTx(tx *sql.Tx) store.InterviewStore {
	return &PostgresInterviewStore{db: tx, logger: s.logger}
}

// Create implements store.InterviewStore.Create.
func (s *PostgresInterviewStore) Create(ctx context.Context, interview *domain.Interview) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := interview.Validate(); err != nil {
		log.WarnContext(ctx, "interview validation failed during create",
			slog.String("error", err.Error()),
			slog.String("interview_id", interview.ID.String()))
		return err
	}

	questions, err := json.Marshal(interview.Questions)
	if err != nil {
		return fmt.Errorf("failed to encode questions: %w", err)
	}

	query := `
		INSERT INTO interviews (` + interviewColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.db.ExecContext(ctx, query,
		interview.ID,
		interview.UserID,
		interview.Position,
		interview.Description,
		interview.Experience,
		interview.TechStack,
		questions,
		interview.CreatedAt,
		interview.UpdatedAt,
	)
	if err != nil {
		log.ErrorContext(ctx, "failed to create interview",
			slog.String("error", err.Error()),
			slog.String("interview_id", interview.ID.String()))
		return store.NewStoreError("interview", "create", "insert failed", MapError(err))
	}

	log.InfoContext(ctx, "interview created successfully",
		slog.String("interview_id", interview.ID.String()),
		slog.Int("question_count", len(interview.Questions)))
	return nil
}

// GetByID implements store.InterviewStore.GetByID.
func (s *PostgresInterviewStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Interview, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE id = $1`
	interview, err := scanInterview(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.DebugContext(ctx, "interview not found", slog.String("interview_id", id.String()))
			return nil, store.ErrInterviewNotFound
		}
		log.ErrorContext(ctx, "failed to get interview by ID",
			slog.String("error", err.Error()),
			slog.String("interview_id", id.String()))
		return nil, store.NewStoreError("interview", "get", "query failed", MapError(err))
	}

	return interview, nil
}

// Update implements store.InterviewStore.Update.
func (s *PostgresInterviewStore) Update(ctx context.Context, interview *domain.Interview) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := interview.Validate(); err != nil {
		log.WarnContext(ctx, "interview validation failed during update",
			slog.String("error", err.Error()),
			slog.String("interview_id", interview.ID.String()))
		return err
	}

	questions, err := json.Marshal(interview.Questions)
	if err != nil {
		return fmt.Errorf("failed to encode questions: %w", err)
	}

	query := `
		UPDATE interviews
		SET position = $1, description = $2, experience = $3, tech_stack = $4,
		    questions = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := s.db.ExecContext(ctx, query,
		interview.Position,
		interview.Description,
		interview.Experience,
		interview.TechStack,
		questions,
		interview.UpdatedAt,
		interview.ID,
	)
	if err != nil {
		log.ErrorContext(ctx, "failed to update interview",
			slog.String("error", err.Error()),
			slog.String("interview_id", interview.ID.String()))
		return store.NewStoreError("interview", "update", "update failed", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrInterviewNotFound); err != nil {
		return err
	}

	log.InfoContext(ctx, "interview updated successfully",
		slog.String("interview_id", interview.ID.String()))
	return nil
}

// Delete implements store.InterviewStore.Delete.
func (s *PostgresInterviewStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM interviews WHERE id = $1`, id)
	if err != nil {
		log.ErrorContext(ctx, "failed to delete interview",
			slog.String("error", err.Error()),
			slog.String("interview_id", id.String()))
		return store.NewStoreError("interview", "delete", "delete failed", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrInterviewNotFound); err != nil {
		return err
	}

	log.InfoContext(ctx, "interview deleted successfully", slog.String("interview_id", id.String()))
	return nil
}

// ListByUser implements store.InterviewStore.ListByUser.
func (s *PostgresInterviewStore) ListByUser(ctx context.Context, userID string) ([]*domain.Interview, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE user_id = $1 ORDER BY created_at DESC, id`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.ErrorContext(ctx, "failed to list interviews", slog.String("error", err.Error()))
		return nil, store.NewStoreError("interview", "list", "query failed", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.ErrorContext(ctx, "failed to close rows", slog.String("error", err.Error()))
		}
	}()

	interviews := []*domain.Interview{}
	for rows.Next() {
		interview, err := scanInterview(rows)
		if err != nil {
			log.ErrorContext(ctx, "failed to scan interview row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("interview", "list", "scan failed", err)
		}
		interviews = append(interviews, interview)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("interview", "list", "iteration failed", MapError(err))
	}

	log.DebugContext(ctx, "listed interviews", slog.Int("count", len(interviews)))
	return interviews, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInterview(row rowScanner) (*domain.Interview, error) {
	var (
		interview domain.Interview
		questions []byte
	)
	err := row.Scan(
		&interview.ID,
		&interview.UserID,
		&interview.Position,
		&interview.Description,
		&interview.Experience,
		&interview.TechStack,
		&questions,
		&interview.CreatedAt,
		&interview.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(questions, &interview.Questions); err != nil {
		return nil, fmt.Errorf("failed to decode questions of interview %s: %w", interview.ID, err)
	}
	return &interview, nil
}
