package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aimock/aimock-api/internal/domain"
	"github.com/aimock/aimock-api/internal/platform/logger"
	"github.com/aimock/aimock-api/internal/store"
)

const answerColumns = `id, interview_id, user_id, question, correct_answer, user_answer, feedback, rating, created_at`

// PostgresAnswerStore implements store.AnswerStore on PostgreSQL.
type PostgresAnswerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.AnswerStore = (*PostgresAnswerStore)(nil)

// NewPostgresAnswerStore creates an answer store over db, which may be a pool
// or a transaction. If logger is nil, the default logger is used.
func NewPostgresAnswerStore(db store.DBTX, logger *slog.Logger) *PostgresAnswerStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAnswerStore{
		db:     db,
		logger: logger.With(slog.String("component", "answer_store")),
	}
}

// WithTx returns a store that runs its queries in tx.
func (s *PostgresAnswerStore) WithTx(tx *sql.Tx) store.AnswerStore {
	return &PostgresAnswerStore{db: tx, logger: s.logger}
}

// Create implements store.AnswerStore.Create.
func (s *PostgresAnswerStore) Create(ctx context.Context, answer *domain.UserAnswer) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := answer.Validate(); err != nil {
		log.WarnContext(ctx, "answer validation failed during create",
			slog.String("error", err.Error()),
			slog.String("answer_id", answer.ID.String()))
		return err
	}

	query := `
		INSERT INTO user_answers (` + answerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		answer.ID,
		answer.InterviewID,
		answer.UserID,
		answer.Question,
		answer.CorrectAnswer,
		answer.Answer,
		answer.Feedback,
		answer.Rating,
		answer.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.WarnContext(ctx, "question already answered",
				slog.String("interview_id", answer.InterviewID.String()))
			return store.ErrAnswerExists
		}
		log.ErrorContext(ctx, "failed to create answer",
			slog.String("error", err.Error()),
			slog.String("answer_id", answer.ID.String()),
			slog.String("interview_id", answer.InterviewID.String()))
		return store.NewStoreError("answer", "create", "insert failed", MapError(err))
	}

	log.InfoContext(ctx, "answer created successfully",
		slog.String("answer_id", answer.ID.String()),
		slog.String("interview_id", answer.InterviewID.String()),
		slog.Int("rating", answer.Rating))
	return nil
}

// ListByInterview implements store.AnswerStore.ListByInterview.
func (s *PostgresAnswerStore) ListByInterview(
	ctx context.Context,
	interviewID uuid.UUID,
	userID string,
) ([]*domain.UserAnswer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + answerColumns + `
		FROM user_answers
		WHERE interview_id = $1 AND user_id = $2
		ORDER BY created_at, id
	`
	rows, err := s.db.QueryContext(ctx, query, interviewID, userID)
	if err != nil {
		log.ErrorContext(ctx, "failed to list answers",
			slog.String("error", err.Error()),
			slog.String("interview_id", interviewID.String()))
		return nil, store.NewStoreError("answer", "list", "query failed", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.ErrorContext(ctx, "failed to close rows", slog.String("error", err.Error()))
		}
	}()

	answers := []*domain.UserAnswer{}
	for rows.Next() {
		answer, err := scanAnswer(rows)
		if err != nil {
			log.ErrorContext(ctx, "failed to scan answer row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("answer", "list", "scan failed", err)
		}
		answers = append(answers, answer)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("answer", "list", "iteration failed", MapError(err))
	}

	log.DebugContext(ctx, "listed answers",
		slog.String("interview_id", interviewID.String()),
		slog.Int("count", len(answers)))
	return answers, nil
}

// GetByQuestion implements store.AnswerStore.GetByQuestion.
func (s *PostgresAnswerStore) GetByQuestion(
	ctx context.Context,
	interviewID uuid.UUID,
	userID, question string,
) (*domain.UserAnswer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + answerColumns + `
		FROM user_answers
		WHERE interview_id = $1 AND user_id = $2 AND md5(question) = md5($3) AND question = $3
	`
	answer, err := scanAnswer(s.db.QueryRowContext(ctx, query, interviewID, userID, question))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAnswerNotFound
		}
		log.ErrorContext(ctx, "failed to get answer by question",
			slog.String("error", err.Error()),
			slog.String("interview_id", interviewID.String()))
		return nil, store.NewStoreError("answer", "get", "query failed", MapError(err))
	}
	return answer, nil
}

// DeleteByInterview implements store.AnswerStore.DeleteByInterview.
func (s *PostgresAnswerStore) DeleteByInterview(ctx context.Context, interviewID uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM user_answers WHERE interview_id = $1`, interviewID)
	if err != nil {
		log.ErrorContext(ctx, "failed to delete answers",
			slog.String("error", err.Error()),
			slog.String("interview_id", interviewID.String()))
		return 0, store.NewStoreError("answer", "delete", "delete failed", MapError(err))
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, store.NewStoreError("answer", "delete", "rows affected unavailable", err)
	}

	log.DebugContext(ctx, "deleted answers",
		slog.String("interview_id", interviewID.String()),
		slog.Int64("count", removed))
	return removed, nil
}

func scanAnswer(row rowScanner) (*domain.UserAnswer, error) {
	var answer domain.UserAnswer
	err := row.Scan(
		&answer.ID,
		&answer.InterviewID,
		&answer.UserID,
		&answer.Question,
		&answer.CorrectAnswer,
		&answer.Answer,
		&answer.Feedback,
		&answer.Rating,
		&answer.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &answer, nil
}
