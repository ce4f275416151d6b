package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"

	"github.com/aimock/aimock-api/internal/api/shared"
	"github.com/aimock/aimock-api/internal/platform/logger"
)

func TestTrace(t *testing.T) {
	t.Parallel()

	log, buf := logger.GetTestLogger(t)

	var traceID string
	handler := Trace(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		reqLog, ok := logger.FromContext(r.Context())
		assert.True(t, ok)
		reqLog.Info("inside handler")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Len(t, traceID, shared.TraceIDLength)
	assert.Equal(t, traceID, rr.Header().Get("X-Trace-Id"))
	logger.AssertLogContains(t, buf, `"trace_id":"`+traceID+`"`)
	logger.AssertLogContains(t, buf, "inside handler")
}

func TestTrace_ReusesChiRequestID(t *testing.T) {
	t.Parallel()

	log, _ := logger.GetTestLogger(t)

	var traceID string
	handler := chimw.RequestID(Trace(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimw.RequestIDHeader, "client-supplied-id")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, "client-supplied-id", traceID)
	assert.Equal(t, "client-supplied-id", rr.Header().Get("X-Trace-Id"))
}
