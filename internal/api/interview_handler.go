package api

import (
	"log/slog"
	"net/http"

	"github.com/aimock/aimock-api/internal/api/shared"
	"github.com/aimock/aimock-api/internal/platform/logger"
	"github.com/aimock/aimock-api/internal/service"
)

// InterviewHandler handles interview-related HTTP requests
type InterviewHandler struct {
	interviewService service.InterviewService
	logger           *slog.Logger
}

// NewInterviewHandler creates a new InterviewHandler
func NewInterviewHandler(interviewService service.InterviewService, logger *slog.Logger) *InterviewHandler {
	if interviewService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("interviewService cannot be nil for InterviewHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &InterviewHandler{
		interviewService: interviewService,
		logger:           logger.With(slog.String("component", "interview_handler")),
	}
}

// CreateInterview handles POST /api/interviews requests.
// It generates the questions for the described job and stores the interview.
func (h *InterviewHandler) CreateInterview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req InterviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	interview, err := h.interviewService.CreateInterview(r.Context(), userID, req.Input())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create interview")
		return
	}

	log.DebugContext(r.Context(), "interview created", slog.String("interview_id", interview.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, interviewToResponse(interview))
}

// ListInterviews handles GET /api/interviews requests
func (h *InterviewHandler) ListInterviews(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	interviews, err := h.interviewService.ListInterviews(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list interviews")
		return
	}

	resp := InterviewListResponse{Interviews: make([]InterviewResponse, 0, len(interviews))}
	for _, iv := range interviews {
		resp.Interviews = append(resp.Interviews, interviewToResponse(iv))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetInterview handles GET /api/interviews/{id} requests
func (h *InterviewHandler) GetInterview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, interviewID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	interview, err := h.interviewService.GetInterview(r.Context(), userID, interviewID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get interview")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, interviewToResponse(interview))
}

// UpdateInterview handles PUT /api/interviews/{id} requests.
// The questions are regenerated and answers to the old questions are discarded.
func (h *InterviewHandler) UpdateInterview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, interviewID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req InterviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	interview, err := h.interviewService.UpdateInterview(r.Context(), userID, interviewID, req.Input())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update interview")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, interviewToResponse(interview))
}

// DeleteInterview handles DELETE /api/interviews/{id} requests
func (h *InterviewHandler) DeleteInterview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, interviewID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.interviewService.DeleteInterview(r.Context(), userID, interviewID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete interview")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
