package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/aimock/aimock-api/internal/domain"
)

// InterviewStore defines the interface for interview persistence.
type InterviewStore interface {
	// Create saves a new interview.
	// Returns validation errors from the domain Interview if data is invalid.
	Create(ctx context.Context, interview *domain.Interview) error

	// GetByID retrieves an interview by its unique ID.
	// Returns ErrInterviewNotFound if the interview does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Interview, error)

	// Update saves the job fields, questions and UpdatedAt of an existing interview.
	// Returns ErrInterviewNotFound if the interview does not exist.
	Update(ctx context.Context, interview *domain.Interview) error

	// Delete removes an interview and, through the schema, its answers.
	// Returns ErrInterviewNotFound if the interview does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByUser returns the interviews owned by userID, newest first.
	// Returns an empty slice if the user has none.
	ListByUser(ctx context.Context, userID string) ([]*domain.Interview, error)

	// WithTx returns an InterviewStore that runs its queries in tx.
	WithTx(tx *sql.Tx) InterviewStore
}
