package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aimock/aimock-api/internal/domain"
	"github.com/aimock/aimock-api/internal/generation"
	"github.com/aimock/aimock-api/internal/platform/logger"
	"github.com/aimock/aimock-api/internal/store"
)

// InterviewService provides interview-related operations
type InterviewService interface {
	// CreateInterview generates questions for input and saves a new interview owned by userID.
	CreateInterview(ctx context.Context, userID string, input domain.InterviewInput) (*domain.Interview, error)

	// GetInterview returns an interview owned by userID.
	// Returns ErrInterviewNotFound or ErrNotOwned.
	GetInterview(ctx context.Context, userID string, interviewID uuid.UUID) (*domain.Interview, error)

	// ListInterviews returns the interviews owned by userID, newest first.
	ListInterviews(ctx context.Context, userID string) ([]*domain.Interview, error)

	// UpdateInterview replaces the job fields, regenerates the questions and
	// discards the answers recorded for the previous questions.
	UpdateInterview(
		ctx context.Context,
		userID string,
		interviewID uuid.UUID,
		input domain.InterviewInput,
	) (*domain.Interview, error)

	// DeleteInterview removes an interview and its answers.
	DeleteInterview(ctx context.Context, userID string, interviewID uuid.UUID) error
}

// InterviewServiceError wraps errors from the interview service with context.
type InterviewServiceError struct {
	// Operation is the operation that failed (e.g., "create_interview")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for InterviewServiceError.
func (e *InterviewServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("interview service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("interview service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *InterviewServiceError) Unwrap() error {
	return e.Err
}

// NewInterviewServiceError creates a new InterviewServiceError.
// It returns known sentinel errors directly without wrapping.
func NewInterviewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrNotOwned):
		return ErrNotOwned
	case errors.Is(err, ErrInterviewNotFound), errors.Is(err, store.ErrInterviewNotFound):
		return ErrInterviewNotFound
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return &InterviewServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// interviewServiceImpl implements the InterviewService interface
type interviewServiceImpl struct {
	tx         store.Transactor
	interviews store.InterviewStore
	answers    store.AnswerStore
	generator  generation.Generator
	retry      RetryPolicy
	logger     *slog.Logger
}

// NewInterviewService creates a new InterviewService.
// It returns an error if any of the required dependencies are nil.
func NewInterviewService(
	tx store.Transactor,
	interviews store.InterviewStore,
	answers store.AnswerStore,
	generator generation.Generator,
	logger *slog.Logger,
	opts ...Option,
) (InterviewService, error) {
	if tx == nil {
		return nil, &InterviewServiceError{Operation: "create_service", Message: "transactor cannot be nil"}
	}
	if interviews == nil {
		return nil, &InterviewServiceError{Operation: "create_service", Message: "interview store cannot be nil"}
	}
	if answers == nil {
		return nil, &InterviewServiceError{Operation: "create_service", Message: "answer store cannot be nil"}
	}
	if generator == nil {
		return nil, &InterviewServiceError{Operation: "create_service", Message: "generator cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	o := buildOptions(opts)
	return &interviewServiceImpl{
		tx:         tx,
		interviews: interviews,
		answers:    answers,
		generator:  generator,
		retry:      o.retry,
		logger:     logger.With("component", "interview_service"),
	}, nil
}

// CreateInterview implements InterviewService
func (s *interviewServiceImpl) CreateInterview(
	ctx context.Context,
	userID string,
	input domain.InterviewInput,
) (*domain.Interview, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	questions, err := s.generateQuestions(ctx, log, input)
	if err != nil {
		return nil, NewInterviewServiceError("create_interview", "failed to generate questions", err)
	}

	interview, err := domain.NewInterview(userID, input, questions)
	if err != nil {
		log.ErrorContext(ctx, "failed to create interview object", "error", err, "user_id", userID)
		return nil, NewInterviewServiceError("create_interview", "failed to create interview object", err)
	}

	if err := s.interviews.Create(ctx, interview); err != nil {
		log.ErrorContext(ctx, "failed to save interview",
			"error", err,
			"user_id", userID,
			"interview_id", interview.ID)
		return nil, NewInterviewServiceError("create_interview", "failed to save interview", err)
	}

	log.InfoContext(ctx, "interview created",
		"interview_id", interview.ID,
		"user_id", userID,
		"question_count", len(interview.Questions))
	return interview, nil
}

// GetInterview implements InterviewService
func (s *interviewServiceImpl) GetInterview(
	ctx context.Context,
	userID string,
	interviewID uuid.UUID,
) (*domain.Interview, error) {
	interview, err := loadOwnedInterview(ctx, s.interviews, userID, interviewID)
	if err != nil {
		return nil, NewInterviewServiceError("get_interview", "failed to load interview", err)
	}
	return interview, nil
}

// ListInterviews implements InterviewService
func (s *interviewServiceImpl) ListInterviews(ctx context.Context, userID string) ([]*domain.Interview, error) {
	interviews, err := s.interviews.ListByUser(ctx, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).ErrorContext(ctx, "failed to list interviews",
			"error", err,
			"user_id", userID)
		return nil, NewInterviewServiceError("list_interviews", "failed to list interviews", err)
	}
	return interviews, nil
}

// UpdateInterview implements InterviewService. The interview row and the
// removal of its previous answers are written in one transaction.
func (s *interviewServiceImpl) UpdateInterview(
	ctx context.Context,
	userID string,
	interviewID uuid.UUID,
	input domain.InterviewInput,
) (*domain.Interview, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	interview, err := loadOwnedInterview(ctx, s.interviews, userID, interviewID)
	if err != nil {
		return nil, NewInterviewServiceError("update_interview", "failed to load interview", err)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	questions, err := s.generateQuestions(ctx, log, input)
	if err != nil {
		return nil, NewInterviewServiceError("update_interview", "failed to generate questions", err)
	}
	if err := interview.Revise(input, questions); err != nil {
		return nil, NewInterviewServiceError("update_interview", "failed to revise interview", err)
	}

	var removed int64
	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.interviews.WithTx(tx).Update(ctx, interview); err != nil {
			return err
		}
		n, err := s.answers.WithTx(tx).DeleteByInterview(ctx, interview.ID)
		if err != nil {
			return err
		}
		removed = n
		return nil
	})
	if err != nil {
		log.ErrorContext(ctx, "failed to update interview",
			"error", err,
			"interview_id", interviewID)
		return nil, NewInterviewServiceError("update_interview", "failed to save interview", err)
	}

	log.InfoContext(ctx, "interview updated",
		"interview_id", interview.ID,
		"question_count", len(interview.Questions),
		"answers_removed", removed)
	return interview, nil
}

// DeleteInterview implements InterviewService
func (s *interviewServiceImpl) DeleteInterview(ctx context.Context, userID string, interviewID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := loadOwnedInterview(ctx, s.interviews, userID, interviewID); err != nil {
		return NewInterviewServiceError("delete_interview", "failed to load interview", err)
	}

	if err := s.interviews.Delete(ctx, interviewID); err != nil {
		log.ErrorContext(ctx, "failed to delete interview",
			"error", err,
			"interview_id", interviewID)
		return NewInterviewServiceError("delete_interview", "failed to delete interview", err)
	}

	log.InfoContext(ctx, "interview deleted", "interview_id", interviewID, "user_id", userID)
	return nil
}

func (s *interviewServiceImpl) generateQuestions(
	ctx context.Context,
	log *slog.Logger,
	input domain.InterviewInput,
) ([]domain.QARecord, error) {
	questions, err := retryThrottled(ctx, s.retry, log, "generate_questions",
		func(ctx context.Context) ([]domain.QARecord, error) {
			return s.generator.GenerateQuestions(ctx, input)
		})
	if err != nil {
		log.WarnContext(ctx, "question generation failed",
			"error", err,
			"position", input.Position)
		return nil, err
	}
	if err := domain.ValidateQuestions(questions); err != nil {
		log.WarnContext(ctx, "generated questions are unusable",
			"error", err,
			"count", len(questions))
		return nil, fmt.Errorf("%w: %w: %w", generation.ErrInvalidResponse, ErrIncompleteQuestions, err)
	}
	return questions, nil
}

// loadOwnedInterview fetches an interview and checks that userID owns it.
func loadOwnedInterview(
	ctx context.Context,
	interviews store.InterviewStore,
	userID string,
	interviewID uuid.UUID,
) (*domain.Interview, error) {
	interview, err := interviews.GetByID(ctx, interviewID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrInterviewNotFound
		}
		return nil, err
	}
	if !interview.OwnedBy(userID) {
		return nil, ErrNotOwned
	}
	return interview, nil
}
