package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/aimock/aimock-api/internal/api/shared"
	"github.com/aimock/aimock-api/internal/domain"
	"github.com/aimock/aimock-api/internal/service"
)

type mockInterviewService struct {
	mock.Mock
}

func (m *mockInterviewService) CreateInterview(
	ctx context.Context,
	userID string,
	input domain.InterviewInput,
) (*domain.Interview, error) {
	args := m.Called(ctx, userID, input)
	iv, _ := args.Get(0).(*domain.Interview)
	return iv, args.Error(1)
}

func (m *mockInterviewService) GetInterview(
	ctx context.Context,
	userID string,
	interviewID uuid.UUID,
) (*domain.Interview, error) {
	args := m.Called(ctx, userID, interviewID)
	iv, _ := args.Get(0).(*domain.Interview)
	return iv, args.Error(1)
}

func (m *mockInterviewService) ListInterviews(ctx context.Context, userID string) ([]*domain.Interview, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]*domain.Interview)
	return list, args.Error(1)
}

func (m *mockInterviewService) UpdateInterview(
	ctx context.Context,
	userID string,
	interviewID uuid.UUID,
	input domain.InterviewInput,
) (*domain.Interview, error) {
	args := m.Called(ctx, userID, interviewID, input)
	iv, _ := args.Get(0).(*domain.Interview)
	return iv, args.Error(1)
}

func (m *mockInterviewService) DeleteInterview(ctx context.Context, userID string, interviewID uuid.UUID) error {
	args := m.Called(ctx, userID, interviewID)
	return args.Error(0)
}

type mockAnswerService struct {
	mock.Mock
}

func (m *mockAnswerService) SubmitAnswer(
	ctx context.Context,
	userID string,
	interviewID uuid.UUID,
	question string,
	answer string,
) (*domain.UserAnswer, error) {
	args := m.Called(ctx, userID, interviewID, question, answer)
	ua, _ := args.Get(0).(*domain.UserAnswer)
	return ua, args.Error(1)
}

func (m *mockAnswerService) ListAnswers(
	ctx context.Context,
	userID string,
	interviewID uuid.UUID,
) (*service.AnswerSummary, error) {
	args := m.Called(ctx, userID, interviewID)
	s, _ := args.Get(0).(*service.AnswerSummary)
	return s, args.Error(1)
}

// asUser stands in for the auth middleware. An empty userID leaves the
// request unauthenticated.
func asUser(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID != "" {
				r = r.WithContext(shared.WithUserID(r.Context(), userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func newTestRouter(userID string, interviews service.InterviewService, answers service.AnswerService) http.Handler {
	r := chi.NewRouter()
	r.Use(asUser(userID))
	if interviews != nil {
		h := NewInterviewHandler(interviews, nil)
		r.Post("/interviews", h.CreateInterview)
		r.Get("/interviews", h.ListInterviews)
		r.Get("/interviews/{id}", h.GetInterview)
		r.Put("/interviews/{id}", h.UpdateInterview)
		r.Delete("/interviews/{id}", h.DeleteInterview)
	}
	if answers != nil {
		h := NewAnswerHandler(answers, nil)
		r.Post("/interviews/{id}/answers", h.SubmitAnswer)
		r.Get("/interviews/{id}/answers", h.ListAnswers)
	}
	return r
}
