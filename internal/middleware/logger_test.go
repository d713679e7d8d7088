package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"verdantgoods.org/shop-web/internal/observability"
)

func TestRequestLoggerExposesContextLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		observability.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusTeapot)
	})
	h := chimw.RequestID(RequestLogger(logger)(inner))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shop", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)

	entries := logs.All()
	require.Len(t, entries, 2)

	handlerEntry := entries[0]
	assert.Equal(t, "inside handler", handlerEntry.Message)
	handlerFields := handlerEntry.ContextMap()
	assert.NotEmpty(t, handlerFields["request_id"])

	requestEntry := entries[1]
	assert.Equal(t, "request", requestEntry.Message)
	fields := requestEntry.ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/shop", fields["path"])
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, handlerFields["request_id"], fields["request_id"])
}
