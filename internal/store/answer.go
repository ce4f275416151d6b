package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/aimock/aimock-api/internal/domain"
)

// AnswerStore defines the interface for recorded answer persistence.
type AnswerStore interface {
	// Create saves a new answer.
	// Returns ErrAnswerExists if the user already answered the question in
	// this interview, and store.ErrInvalidEntity if the interview is gone.
	Create(ctx context.Context, answer *domain.UserAnswer) error

	// ListByInterview returns userID's answers for an interview in the order
	// they were recorded. Returns an empty slice if there are none.
	ListByInterview(ctx context.Context, interviewID uuid.UUID, userID string) ([]*domain.UserAnswer, error)

	// GetByQuestion returns userID's answer to question in an interview.
	// Returns ErrAnswerNotFound if the question has not been answered.
	GetByQuestion(ctx context.Context, interviewID uuid.UUID, userID, question string) (*domain.UserAnswer, error)

	// DeleteByInterview removes every answer recorded for an interview and
	// returns how many were removed.
	DeleteByInterview(ctx context.Context, interviewID uuid.UUID) (int64, error)

	// WithTx returns an AnswerStore that runs its queries in tx.
	WithTx(tx *sql.Tx) AnswerStore
}
