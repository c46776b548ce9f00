package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dukex/trialkit/pkg/otelhelper"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestTracing(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	var handlerSpan trace.SpanContext

	app := fiber.New()
	app.Use(Tracing(provider.Tracer("test")))
	app.Get("/trial-apps/:id", func(c fiber.Ctx) error {
		handlerSpan = trace.SpanFromContext(c.Context()).SpanContext()

		return c.SendStatus(http.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/trial-apps/app-1", nil))
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	assert.Equal(t, "HTTP GET /trial-apps/:id", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("http.route", "/trial-apps/:id"))
	assert.Contains(t, spans[0].Attributes(), attribute.Int(otelhelper.HTTPStatusKey, http.StatusNoContent))

	require.True(t, handlerSpan.IsValid())
	assert.Equal(t, spans[0].SpanContext().SpanID(), handlerSpan.SpanID())
}
