package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aimock/aimock-api/internal/platform/logger"
)

func TestRespondWithJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusCreated, map[string]interface{}{"message": "success", "data": 123})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body["message"])
	assert.Equal(t, float64(123), body["data"])
}

func TestRespondWithError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(SetTraceID(req.Context(), "trace-1"))
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusNotFound, "Interview not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Interview not found", body.Error)
	assert.Equal(t, "trace-1", body.TraceID)
}

func TestRespondWithErrorAndLog(t *testing.T) {
	log, buf := logger.GetTestLogger(t)

	t.Run("server error is logged redacted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/interviews", nil)
		req = req.WithContext(logger.WithLogger(req.Context(), log))
		w := httptest.NewRecorder()

		err := errors.New("dial postgres://app:hunter22@db:5432/aimock failed")
		RespondWithErrorAndLog(w, req, http.StatusInternalServerError, "An unexpected error occurred", err)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "hunter22")
		assert.NotContains(t, w.Body.String(), "postgres")
		assert.Empty(t, w.Header().Get("Retry-After"))

		logger.AssertLogContains(t, buf, "API error response")
		logger.AssertLogContains(t, buf, `"level":"ERROR"`)
		logger.AssertLogNotContains(t, buf, "hunter22")
	})

	t.Run("retry after header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/interviews", nil)
		w := httptest.NewRecorder()

		RespondWithErrorAndLog(w, req, http.StatusTooManyRequests, "Please slow down. Try again in a second.",
			errors.New("throttled"), WithRetryAfter(1))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "1", w.Header().Get("Retry-After"))
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Please slow down. Try again in a second.", body.Error)
	})
}
