package web

import (
	"github.com/dukex/trialkit/pkg/persistence"
	"github.com/dukex/trialkit/pkg/services"
	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"
)

func problem(c fiber.Ctx, status int, kind, detail string) error {
	p := problems.NewStatusProblem(status).
		WithInstance(c.Path()).
		WithType(kind).
		WithDetail(detail)

	return c.Status(status).JSON(p)
}

func badRequest(c fiber.Ctx, detail string) error {
	return problem(c, fiber.StatusBadRequest, "validation_error", detail)
}

func notFound(c fiber.Ctx, detail string) error {
	return problem(c, fiber.StatusNotFound, "not_found", detail)
}

func unauthorized(c fiber.Ctx) error {
	return problem(c, fiber.StatusUnauthorized, "unauthorized", "a valid bearer token is required")
}

func internalError(c fiber.Ctx, err error) error {
	p := problems.NewStatusProblem(fiber.StatusInternalServerError).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(p)
}

// handleServiceError maps service and persistence errors to problem responses.
func handleServiceError(c fiber.Ctx, err error) error {
	switch {
	case services.IsValidationError(err):
		return badRequest(c, services.ErrorMessage(err))
	case services.IsConflictError(err):
		return problem(c, fiber.StatusConflict, "conflict", services.ErrorMessage(err))
	case persistence.IsTrialAppNotFound(err):
		return problem(c, fiber.StatusNotFound, "trial_app_not_found", "trial app not found")
	case persistence.IsNodeNotFound(err):
		return problem(c, fiber.StatusNotFound, "node_not_found", "node not found")
	case persistence.IsWorkflowNotFound(err):
		return problem(c, fiber.StatusNotFound, "workflow_not_found", "workflow not found")
	default:
		return internalError(c, err)
	}
}
