package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MinAnswerLength is the shortest answer that is sent for feedback.
const MinAnswerLength = 10

// Common validation errors for UserAnswer
var (
	ErrEmptyAnswerID          = errors.New("answer ID cannot be empty")
	ErrEmptyAnswerInterviewID = errors.New("answer interview ID cannot be empty")
	ErrEmptyAnswerUserID      = errors.New("answer user ID cannot be empty")
	ErrEmptyAnswerQuestion    = errors.New("answer question cannot be empty")
	ErrAnswerTooShort         = errors.New("your answer should be more than 10 characters")
)

// UserAnswer is the answer a user recorded for one question of an interview,
// together with the AI feedback it received.
type UserAnswer struct {
	ID            uuid.UUID `json:"id"`
	InterviewID   uuid.UUID `json:"mockIdRef"`
	UserID        string    `json:"userId"`
	Question      string    `json:"question"`
	CorrectAnswer string    `json:"correct_ans"`
	Answer        string    `json:"user_ans"`
	Feedback      string    `json:"feedback"`
	Rating        int       `json:"rating"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewUserAnswer creates a UserAnswer for the given question of an interview
// with the feedback the AI produced. Returns an error if validation fails.
func NewUserAnswer(
	interviewID uuid.UUID,
	userID string,
	question QARecord,
	answer string,
	feedback Feedback,
) (*UserAnswer, error) {
	ua := &UserAnswer{
		ID:            uuid.New(),
		InterviewID:   interviewID,
		UserID:        userID,
		Question:      question.Question,
		CorrectAnswer: question.Answer,
		Answer:        strings.TrimSpace(answer),
		Feedback:      feedback.Feedback,
		Rating:        feedback.Rating,
		CreatedAt:     time.Now().UTC(),
	}

	if err := ua.Validate(); err != nil {
		return nil, err
	}

	return ua, nil
}

// Validate checks if the UserAnswer has valid data.
func (a *UserAnswer) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyAnswerID
	}
	if a.InterviewID == uuid.Nil {
		return ErrEmptyAnswerInterviewID
	}
	if strings.TrimSpace(a.UserID) == "" {
		return ErrEmptyAnswerUserID
	}
	if strings.TrimSpace(a.Question) == "" {
		return ErrEmptyAnswerQuestion
	}
	if err := ValidateAnswerText(a.Answer); err != nil {
		return err
	}
	fb := Feedback{Rating: a.Rating, Feedback: a.Feedback}
	return fb.Validate()
}

// ValidateAnswerText checks that an answer is long enough to be assessed.
func ValidateAnswerText(answer string) error {
	if utf8.RuneCountInString(strings.TrimSpace(answer)) < MinAnswerLength {
		return NewValidationError("answer", "must be at least 10 characters", ErrAnswerTooShort)
	}
	return nil
}

// AverageRating returns the mean rating of answers, or 0 when there are none.
func AverageRating(answers []*UserAnswer) float64 {
	if len(answers) == 0 {
		return 0
	}
	total := 0
	for _, a := range answers {
		total += a.Rating
	}
	return float64(total) / float64(len(answers))
}
