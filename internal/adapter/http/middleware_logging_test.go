package adapthttp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"bmitracker/internal/metrics"
)

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := &Server{log: zap.New(core), metrics: metrics.Nop{}}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("OK"))
	})
	handler := withRequestID(s.withLogging(next))

	req := httptest.NewRequest(http.MethodGet, "/test-path", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTeapot, w.Code)

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/test-path", fields["path"])
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, w.Header().Get(requestIDHeader), fields["request_id"])
}

type statusCounter struct {
	metrics.Nop
	codes []int
}

func (c *statusCounter) RecordHTTPStatus(code int) { c.codes = append(c.codes, code) }

func TestRecoveryMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	rec := &statusCounter{}
	s := &Server{log: zap.New(core), metrics: rec}

	boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })
	handler := s.withLogging(s.withRecovery(boom))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, logs.FilterMessage("panic serving request").Len())
	assert.Equal(t, []int{http.StatusInternalServerError}, rec.codes)
}
