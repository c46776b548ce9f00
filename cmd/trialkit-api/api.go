// Package main provides the trialkit API server.
package main

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/dukex/trialkit/pkg/persistence"
	"github.com/dukex/trialkit/pkg/registry"
	"github.com/dukex/trialkit/pkg/services"
	"github.com/dukex/trialkit/pkg/web"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"go.opentelemetry.io/otel/trace"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	registry    *registry.Registry
	tracer      trace.Tracer
	apiToken    string
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	registry *registry.Registry,
	tracer trace.Tracer,
	apiToken string,
) *API {
	return &API{
		logger:      logger,
		persistence: persistence,
		registry:    registry,
		tracer:      tracer,
		apiToken:    apiToken,
	}
}

func (a *API) App() *fiber.App {
	handlers := web.NewAPIHandlers(
		services.NewTrialApp(a.persistence),
		services.NewWorkflow(a.persistence, a.registry),
		a.registry,
	)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))
	app.Use(web.Tracing(a.tracer))
	app.Use(web.BearerToken(a.apiToken,
		"/",
		"/health",
		healthcheck.DefaultLivenessEndpoint,
		healthcheck.DefaultReadinessEndpoint,
	))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("trialkit API")
	})

	handlers.Mount(app)

	return app
}

// Start serves the API on port until ctx is done.
func (a *API) Start(ctx context.Context, port int) error {
	app := a.App()

	go func() {
		<-ctx.Done()

		a.logger.Info("Shutting down API server")

		if err := app.Shutdown(); err != nil {
			a.logger.Error("Failed to shut down API server", "error", err)
		}
	}()

	return app.Listen(":" + strconv.Itoa(port))
}
