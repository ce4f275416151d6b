package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Field limits for interview input.
const (
	MaxPositionLength    = 100
	MinDescriptionLength = 10
)

// Common validation errors for Interview
var (
	ErrEmptyInterviewID     = errors.New("interview ID cannot be empty")
	ErrEmptyInterviewUserID = errors.New("interview user ID cannot be empty")
	ErrEmptyPosition        = errors.New("position is required")
	ErrPositionTooLong      = errors.New("position must be 100 characters or less")
	ErrDescriptionTooShort  = errors.New("description is required")
	ErrNegativeExperience   = errors.New("experience cannot be empty or negative")
	ErrEmptyTechStack       = errors.New("tech stack must be at least a character")
	ErrNoQuestions          = errors.New("interview must have at least one question")
	ErrIncompleteQuestion   = errors.New("question and answer cannot be empty")
)

// InterviewInput holds the job description fields a user fills in to create
// or update a mock interview.
type InterviewInput struct {
	Position    string `json:"position"`
	Description string `json:"description"`
	Experience  int    `json:"experience"`
	TechStack   string `json:"techStack"`
}

// Validate checks the input against the form rules.
func (in InterviewInput) Validate() error {
	position := strings.TrimSpace(in.Position)
	if position == "" {
		return NewValidationError("position", "is required", ErrEmptyPosition)
	}
	if utf8.RuneCountInString(position) > MaxPositionLength {
		return NewValidationError("position", "must be 100 characters or less", ErrPositionTooLong)
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Description)) < MinDescriptionLength {
		return NewValidationError("description", "must be at least 10 characters", ErrDescriptionTooShort)
	}
	if in.Experience < 0 {
		return NewValidationError("experience", "cannot be negative", ErrNegativeExperience)
	}
	if strings.TrimSpace(in.TechStack) == "" {
		return NewValidationError("techStack", "is required", ErrEmptyTechStack)
	}
	return nil
}

// Interview is a mock interview owned by a user: the job it targets and the
// questions generated for it.
type Interview struct {
	ID          uuid.UUID  `json:"id"`
	UserID      string     `json:"userId"`
	Position    string     `json:"position"`
	Description string     `json:"description"`
	Experience  int        `json:"experience"`
	TechStack   string     `json:"techStack"`
	Questions   []QARecord `json:"questions"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewInterview creates a new Interview for userID from the given input and
// generated questions. It assigns a new ID and sets both timestamps.
// Returns an error if validation fails.
func NewInterview(userID string, input InterviewInput, questions []QARecord) (*Interview, error) {
	now := time.Now().UTC()
	interview := &Interview{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	interview.apply(input)
	interview.Questions = questions

	if err := interview.Validate(); err != nil {
		return nil, err
	}

	return interview, nil
}

// Validate checks if the Interview has valid data.
func (i *Interview) Validate() error {
	if i.ID == uuid.Nil {
		return ErrEmptyInterviewID
	}

	if strings.TrimSpace(i.UserID) == "" {
		return ErrEmptyInterviewUserID
	}

	if err := i.Input().Validate(); err != nil {
		return err
	}

	return ValidateQuestions(i.Questions)
}

// Input returns the user-editable fields of the interview.
func (i *Interview) Input() InterviewInput {
	return InterviewInput{
		Position:    i.Position,
		Description: i.Description,
		Experience:  i.Experience,
		TechStack:   i.TechStack,
	}
}

// Revise replaces the job fields and questions and bumps UpdatedAt.
// The interview is left unchanged if the result would be invalid.
func (i *Interview) Revise(input InterviewInput, questions []QARecord) error {
	if err := input.Validate(); err != nil {
		return err
	}
	if err := ValidateQuestions(questions); err != nil {
		return err
	}

	i.apply(input)
	i.Questions = questions
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// TechStackItems splits the comma-separated tech stack into trimmed, non-empty items.
func (i *Interview) TechStackItems() []string {
	parts := strings.Split(i.TechStack, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// OwnedBy reports whether the interview belongs to userID.
func (i *Interview) OwnedBy(userID string) bool {
	return i.UserID == userID
}

func (i *Interview) apply(input InterviewInput) {
	i.Position = strings.TrimSpace(input.Position)
	i.Description = strings.TrimSpace(input.Description)
	i.Experience = input.Experience
	i.TechStack = strings.TrimSpace(input.TechStack)
}

// ValidateQuestions checks that there is at least one question and that every
// record has both a question and an answer.
func ValidateQuestions(questions []QARecord) error {
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	for _, q := range questions {
		if !q.IsComplete() {
			return ErrIncompleteQuestion
		}
	}
	return nil
}
