package api

import (
	"math"
	"time"

	"github.com/aimock/aimock-api/internal/domain"
	"github.com/aimock/aimock-api/internal/service"
)

// InterviewRequest is the payload for creating or updating an interview.
type InterviewRequest struct {
	Position    string `json:"position"    validate:"required,max=100"`
	Description string `json:"description" validate:"required"`
	// Experience is a pointer so that 0 years is distinguishable from a missing field.
	Experience *int   `json:"experience" validate:"required,gte=0,lte=50"`
	TechStack  string `json:"techStack"  validate:"required"`
}

// Input converts the request to the domain input.
func (r InterviewRequest) Input() domain.InterviewInput {
	input := domain.InterviewInput{
		Position:    r.Position,
		Description: r.Description,
		TechStack:   r.TechStack,
	}
	if r.Experience != nil {
		input.Experience = *r.Experience
	}
	return input
}

// QuestionResponse is one generated question and its reference answer.
type QuestionResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// InterviewResponse represents the response data for an interview
type InterviewResponse struct {
	ID             string             `json:"id"`
	UserID         string             `json:"userId"`
	Position       string             `json:"position"`
	Description    string             `json:"description"`
	Experience     int                `json:"experience"`
	TechStack      string             `json:"techStack"`
	TechStackItems []string           `json:"techStackItems"`
	Questions      []QuestionResponse `json:"questions"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

// InterviewListResponse wraps the caller's interviews.
type InterviewListResponse struct {
	Interviews []InterviewResponse `json:"interviews"`
}

// SubmitAnswerRequest is the payload for recording an answer.
type SubmitAnswerRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer"   validate:"required"`
}

// AnswerResponse represents a recorded answer and its feedback.
type AnswerResponse struct {
	ID            string    `json:"id"`
	InterviewID   string    `json:"interviewId"`
	Question      string    `json:"question"`
	CorrectAnswer string    `json:"correctAnswer"`
	UserAnswer    string    `json:"userAnswer"`
	Feedback      string    `json:"feedback"`
	Rating        int       `json:"rating"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FeedbackResponse lists the answers of an interview with their mean rating.
type FeedbackResponse struct {
	InterviewID   string           `json:"interviewId"`
	Position      string           `json:"position"`
	OverallRating float64          `json:"overallRating"`
	AnswerCount   int              `json:"answerCount"`
	QuestionCount int              `json:"questionCount"`
	Answers       []AnswerResponse `json:"answers"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

func interviewToResponse(iv *domain.Interview) InterviewResponse {
	questions := make([]QuestionResponse, 0, len(iv.Questions))
	for _, q := range iv.Questions {
		questions = append(questions, QuestionResponse{Question: q.Question, Answer: q.Answer})
	}
	return InterviewResponse{
		ID:             iv.ID.String(),
		UserID:         iv.UserID,
		Position:       iv.Position,
		Description:    iv.Description,
		Experience:     iv.Experience,
		TechStack:      iv.TechStack,
		TechStackItems: iv.TechStackItems(),
		Questions:      questions,
		CreatedAt:      iv.CreatedAt,
		UpdatedAt:      iv.UpdatedAt,
	}
}

func answerToResponse(a *domain.UserAnswer) AnswerResponse {
	return AnswerResponse{
		ID:            a.ID.String(),
		InterviewID:   a.InterviewID.String(),
		Question:      a.Question,
		CorrectAnswer: a.CorrectAnswer,
		UserAnswer:    a.Answer,
		Feedback:      a.Feedback,
		Rating:        a.Rating,
		CreatedAt:     a.CreatedAt,
	}
}

func summaryToResponse(s *service.AnswerSummary) FeedbackResponse {
	answers := make([]AnswerResponse, 0, len(s.Answers))
	for _, a := range s.Answers {
		answers = append(answers, answerToResponse(a))
	}
	return FeedbackResponse{
		InterviewID:   s.Interview.ID.String(),
		Position:      s.Interview.Position,
		OverallRating: math.Round(s.OverallRating*10) / 10,
		AnswerCount:   len(answers),
		QuestionCount: len(s.Interview.Questions),
		Answers:       answers,
	}
}
