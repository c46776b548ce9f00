package web

import (
	"github.com/dukex/trialkit/pkg/otelhelper"
	"github.com/gofiber/fiber/v3"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Tracing records one span per request, named after the method and matched route. Handlers
// see the span through c.Context().
func Tracing(tracer trace.Tracer) fiber.Handler {
	return func(c fiber.Ctx) error {
		ctx, span := otelhelper.StartSpan(c.Context(), tracer, "HTTP "+c.Method(),
			attribute.String("http.target", c.Path()),
		)
		defer span.End()

		c.SetContext(ctx)

		err := c.Next()

		route := c.Route().Path
		span.SetName("HTTP " + c.Method() + " " + route)
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int(otelhelper.HTTPStatusKey, c.Response().StatusCode()),
		)

		if err != nil {
			otelhelper.SetError(span, err)
		}

		return err
	}
}
