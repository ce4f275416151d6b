package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/aimock/aimock-api/internal/domain"
	"github.com/aimock/aimock-api/internal/generation"
	"github.com/aimock/aimock-api/internal/platform/logger"
	"github.com/aimock/aimock-api/internal/store"
)

// AnswerSummary is the feedback view of an interview: every recorded answer
// and the mean of their ratings.
type AnswerSummary struct {
	Interview     *domain.Interview
	Answers       []*domain.UserAnswer
	OverallRating float64
}

// AnswerService provides operations for recording answers and reading feedback
type AnswerService interface {
	// SubmitAnswer grades answer against the reference answer of question and
	// records the result. Each question can be answered once.
	SubmitAnswer(
		ctx context.Context,
		userID string,
		interviewID uuid.UUID,
		question string,
		answer string,
	) (*domain.UserAnswer, error)

	// ListAnswers returns the answers userID recorded for an interview.
	ListAnswers(ctx context.Context, userID string, interviewID uuid.UUID) (*AnswerSummary, error)
}

// AnswerServiceError wraps errors from the answer service with context.
type AnswerServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for AnswerServiceError.
func (e *AnswerServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("answer service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("answer service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *AnswerServiceError) Unwrap() error {
	return e.Err
}

// NewAnswerServiceError creates a new AnswerServiceError.
// It returns known sentinel errors directly without wrapping.
func NewAnswerServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrNotOwned):
		return ErrNotOwned
	case errors.Is(err, ErrInterviewNotFound), errors.Is(err, store.ErrInterviewNotFound):
		return ErrInterviewNotFound
	case errors.Is(err, ErrQuestionNotFound):
		return ErrQuestionNotFound
	case errors.Is(err, ErrAlreadyAnswered), errors.Is(err, store.ErrAnswerExists):
		return ErrAlreadyAnswered
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return &AnswerServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

type answerServiceImpl struct {
	interviews store.InterviewStore
	answers    store.AnswerStore
	generator  generation.Generator
	retry      RetryPolicy
	logger     *slog.Logger
}

// NewAnswerService creates a new AnswerService.
// It returns an error if any of the required dependencies are nil.
func NewAnswerService(
	interviews store.InterviewStore,
	answers store.AnswerStore,
	generator generation.Generator,
	logger *slog.Logger,
	opts ...Option,
) (AnswerService, error) {
	if interviews == nil {
		return nil, &AnswerServiceError{Operation: "create_service", Message: "interview store cannot be nil"}
	}
	if answers == nil {
		return nil, &AnswerServiceError{Operation: "create_service", Message: "answer store cannot be nil"}
	}
	if generator == nil {
		return nil, &AnswerServiceError{Operation: "create_service", Message: "generator cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	o := buildOptions(opts)
	return &answerServiceImpl{
		interviews: interviews,
		answers:    answers,
		generator:  generator,
		retry:      o.retry,
		logger:     logger.With("component", "answer_service"),
	}, nil
}

// SubmitAnswer implements AnswerService
func (s *answerServiceImpl) SubmitAnswer(
	ctx context.Context,
	userID string,
	interviewID uuid.UUID,
	question string,
	answer string,
) (*domain.UserAnswer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateAnswerText(answer); err != nil {
		return nil, err
	}

	interview, err := loadOwnedInterview(ctx, s.interviews, userID, interviewID)
	if err != nil {
		return nil, NewAnswerServiceError("submit_answer", "failed to load interview", err)
	}

	record, ok := findQuestion(interview, question)
	if !ok {
		log.DebugContext(ctx, "answer submitted for unknown question", "interview_id", interviewID)
		return nil, ErrQuestionNotFound
	}

	_, err = s.answers.GetByQuestion(ctx, interviewID, userID, record.Question)
	switch {
	case err == nil:
		return nil, ErrAlreadyAnswered
	case !store.IsNotFoundError(err):
		log.ErrorContext(ctx, "failed to look up existing answer",
			"error", err,
			"interview_id", interviewID)
		return nil, NewAnswerServiceError("submit_answer", "failed to look up existing answer", err)
	}

	req := generation.FeedbackRequest{
		Question:      record.Question,
		CorrectAnswer: record.Answer,
		UserAnswer:    strings.TrimSpace(answer),
	}
	feedback, err := retryThrottled(ctx, s.retry, log, "generate_feedback",
		func(ctx context.Context) (*domain.Feedback, error) {
			return s.generator.GenerateFeedback(ctx, req)
		})
	if err != nil {
		log.WarnContext(ctx, "feedback generation failed",
			"error", err,
			"interview_id", interviewID)
		return nil, NewAnswerServiceError("submit_answer", "failed to generate feedback", err)
	}
	if feedback == nil {
		return nil, NewAnswerServiceError("submit_answer", "generator returned no feedback", generation.ErrInvalidResponse)
	}

	ua, err := domain.NewUserAnswer(interviewID, userID, record, answer, *feedback)
	if err != nil {
		return nil, NewAnswerServiceError("submit_answer", "failed to create answer object", err)
	}

	if err := s.answers.Create(ctx, ua); err != nil {
		if !errors.Is(err, store.ErrAnswerExists) {
			log.ErrorContext(ctx, "failed to save answer",
				"error", err,
				"interview_id", interviewID)
		}
		return nil, NewAnswerServiceError("submit_answer", "failed to save answer", err)
	}

	log.InfoContext(ctx, "answer recorded",
		"interview_id", interviewID,
		"answer_id", ua.ID,
		"rating", ua.Rating)
	return ua, nil
}

// ListAnswers implements AnswerService
func (s *answerServiceImpl) ListAnswers(
	ctx context.Context,
	userID string,
	interviewID uuid.UUID,
) (*AnswerSummary, error) {
	interview, err := loadOwnedInterview(ctx, s.interviews, userID, interviewID)
	if err != nil {
		return nil, NewAnswerServiceError("list_answers", "failed to load interview", err)
	}

	answers, err := s.answers.ListByInterview(ctx, interviewID, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).ErrorContext(ctx, "failed to list answers",
			"error", err,
			"interview_id", interviewID)
		return nil, NewAnswerServiceError("list_answers", "failed to list answers", err)
	}

	return &AnswerSummary{
		Interview:     interview,
		Answers:       answers,
		OverallRating: domain.AverageRating(answers),
	}, nil
}

// findQuestion returns the record of interview whose question matches text,
// ignoring surrounding whitespace.
func findQuestion(interview *domain.Interview, text string) (domain.QARecord, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.QARecord{}, false
	}
	for _, q := range interview.Questions {
		if strings.TrimSpace(q.Question) == text {
			return q, true
		}
	}
	return domain.QARecord{}, false
}
