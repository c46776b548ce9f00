package web

import (
	"github.com/dukex/trialkit/pkg/services"
	"github.com/gofiber/fiber/v3"
)

// GetTrialAppInfo serves the TryAppInfo of a trial app.
func (h *APIHandlers) GetTrialAppInfo(c fiber.Ctx) error {
	info, err := h.trialAppService.FetchInfo(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(info)
}

func (h *APIHandlers) ListTrialApps(c fiber.Ctx) error {
	apps, err := h.trialAppService.List(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(apps)
}

func (h *APIHandlers) CreateTrialApp(c fiber.Ctx) error {
	var req services.TrialAppRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	app, err := h.trialAppService.Create(c.Context(), &req)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(app)
}

func (h *APIHandlers) UpdateTrialApp(c fiber.Ctx) error {
	var req services.TrialAppRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	app, err := h.trialAppService.Update(c.Context(), c.Params("id"), &req)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(app)
}

func (h *APIHandlers) DeleteTrialApp(c fiber.Ctx) error {
	if err := h.trialAppService.Delete(c.Context(), c.Params("id")); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
