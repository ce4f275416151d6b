package mocks

import (
	"context"
	"sync"

	"github.com/aimock/aimock-api/internal/domain"
	"github.com/aimock/aimock-api/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	GenerateQuestionsFn func(ctx context.Context, input domain.InterviewInput) ([]domain.QARecord, error)
	GenerateFeedbackFn  func(ctx context.Context, req generation.FeedbackRequest) (*domain.Feedback, error)

	// Default response values
	Questions []domain.QARecord
	Feedback  *domain.Feedback
	Err       error

	mu               sync.Mutex
	questionInputs   []domain.InterviewInput
	feedbackRequests []generation.FeedbackRequest
}

var _ generation.Generator = (*MockGenerator)(nil)

// GenerateQuestions implements generation.Generator
func (m *MockGenerator) GenerateQuestions(ctx context.Context, input domain.InterviewInput) ([]domain.QARecord, error) {
	m.mu.Lock()
	m.questionInputs = append(m.questionInputs, input)
	m.mu.Unlock()

	if m.GenerateQuestionsFn != nil {
		return m.GenerateQuestionsFn(ctx, input)
	}
	return m.Questions, m.Err
}

// GenerateFeedback implements generation.Generator
func (m *MockGenerator) GenerateFeedback(ctx context.Context, req generation.FeedbackRequest) (*domain.Feedback, error) {
	m.mu.Lock()
	m.feedbackRequests = append(m.feedbackRequests, req)
	m.mu.Unlock()

	if m.GenerateFeedbackFn != nil {
		return m.GenerateFeedbackFn(ctx, req)
	}
	return m.Feedback, m.Err
}

// QuestionCalls returns the inputs GenerateQuestions was called with.
func (m *MockGenerator) QuestionCalls() []domain.InterviewInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.InterviewInput(nil), m.questionInputs...)
}

// FeedbackCalls returns the requests GenerateFeedback was called with.
func (m *MockGenerator) FeedbackCalls() []generation.FeedbackRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]generation.FeedbackRequest(nil), m.feedbackRequests...)
}

// NewMockGeneratorWithQuestions creates a MockGenerator that returns questions.
func NewMockGeneratorWithQuestions(questions ...domain.QARecord) *MockGenerator {
	return &MockGenerator{Questions: questions}
}

// NewMockGeneratorWithError creates a MockGenerator that returns err from every call.
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{Err: err}
}
