package generation

import (
	"context"

	"github.com/aimock/aimock-api/internal/domain"
)

// FeedbackRequest is one answered question to be graded.
type FeedbackRequest struct {
	Question      string
	CorrectAnswer string
	UserAnswer    string
}

// Generator defines the interface for generating interview content.
// This interface serves as a boundary between the application core and
// external AI/LLM services, following the hexagonal architecture pattern.
type Generator interface {
	// GenerateQuestions creates interview questions with reference answers
	// for the described position.
	//
	// Parameters:
	//   - ctx: Context for the operation, which can be used for cancellation
	//   - input: The position, description, experience and tech stack
	//
	// Returns:
	//   - The generated records in generation order
	//   - An error if the generation fails for any reason (see errors.go for specific types)
	GenerateQuestions(ctx context.Context, input domain.InterviewInput) ([]domain.QARecord, error)

	// GenerateFeedback rates a user's answer against the reference answer.
	GenerateFeedback(ctx context.Context, req FeedbackRequest) (*domain.Feedback, error)
}
