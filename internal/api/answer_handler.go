package api

import (
	"log/slog"
	"net/http"

	"github.com/aimock/aimock-api/internal/api/shared"
	"github.com/aimock/aimock-api/internal/platform/logger"
	"github.com/aimock/aimock-api/internal/service"
)

// AnswerHandler handles answer and feedback HTTP requests
type AnswerHandler struct {
	answerService service.AnswerService
	logger        *slog.Logger
}

// NewAnswerHandler creates a new AnswerHandler
func NewAnswerHandler(answerService service.AnswerService, logger *slog.Logger) *AnswerHandler {
	if answerService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("answerService cannot be nil for AnswerHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AnswerHandler{
		answerService: answerService,
		logger:        logger.With(slog.String("component", "answer_handler")),
	}
}

// SubmitAnswer handles POST /api/interviews/{id}/answers requests.
// The answer is graded by the model and stored with its rating.
func (h *AnswerHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, interviewID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	answer, err := h.answerService.SubmitAnswer(r.Context(), userID, interviewID, req.Question, req.Answer)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit answer")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, answerToResponse(answer))
}

// ListAnswers handles GET /api/interviews/{id}/answers requests
func (h *AnswerHandler) ListAnswers(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, interviewID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	summary, err := h.answerService.ListAnswers(r.Context(), userID, interviewID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load feedback")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summaryToResponse(summary))
}
