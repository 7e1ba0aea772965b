package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func tracedEngine(t *testing.T) (*gin.Engine, *tracetest.SpanRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	engine := gin.New()
	engine.Use(RequestID(), Tracing("test"), ClientKeys())
	engine.POST("/api/audio/session", func(c *gin.Context) {
		c.String(http.StatusInternalServerError, "boom")
	})
	engine.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	return engine, recorder
}

func spanAttr(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracingNamesSpanByRoute(t *testing.T) {
	engine, recorder := tracedEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz?token=secret", nil)
	engine.ServeHTTP(httptest.NewRecorder(), req)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /healthz", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)

	route, ok := spanAttr(spans[0], "http.route")
	require.True(t, ok)
	assert.Equal(t, "/healthz", route.AsString())
	for _, kv := range spans[0].Attributes() {
		assert.NotContains(t, kv.Value.Emit(), "secret")
	}
}

func TestTracingMarksServerErrors(t *testing.T) {
	engine, recorder := tracedEngine(t)

	req := httptest.NewRequest(http.MethodPost, "/api/audio/session", nil)
	engine.ServeHTTP(httptest.NewRecorder(), req)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)

	status, ok := spanAttr(spans[0], "http.status_code")
	require.True(t, ok)
	assert.Equal(t, int64(http.StatusInternalServerError), status.AsInt64())

	keys, ok := spanAttr(spans[0], "client_keys")
	require.True(t, ok)
	assert.False(t, keys.AsBool())
}
