// Package web provides the HTTP handlers of the trialkit API.
package web

import (
	"net/http"
	"time"

	"github.com/dukex/trialkit/pkg/registry"
	"github.com/dukex/trialkit/pkg/services"
	"github.com/gofiber/fiber/v3"
)

type APIHandlers struct {
	trialAppService *services.TrialApp
	workflowService *services.Workflow
	registry        *registry.Registry
}

func NewAPIHandlers(
	trialAppService *services.TrialApp,
	workflowService *services.Workflow,
	registry *registry.Registry,
) *APIHandlers {
	return &APIHandlers{
		trialAppService: trialAppService,
		workflowService: workflowService,
		registry:        registry,
	}
}

// Mount registers every API route on router.
func (h *APIHandlers) Mount(router fiber.Router) {
	a := router.Group("/trial-apps")
	a.Get("/", h.ListTrialApps)
	a.Post("/", h.CreateTrialApp)
	a.Get("/:id", h.GetTrialAppInfo)
	a.Put("/:id", h.UpdateTrialApp)
	a.Delete("/:id", h.DeleteTrialApp)

	n := router.Group("/node-types")
	n.Get("/", h.ListNodeTypes)
	n.Post("/trigger-schedule/preview", h.PreviewSchedule)
	n.Get("/:type", h.GetNodeType)
	n.Post("/:type/check", h.CheckNodeType)

	w := router.Group("/workflows")
	w.Get("/", h.ListWorkflows)
	w.Post("/", h.CreateWorkflow)
	w.Get("/:id", h.GetWorkflow)
	w.Delete("/:id", h.DeleteWorkflow)
	w.Post("/:id/nodes", h.AddWorkflowNode)
	w.Patch("/:id/nodes/:nodeId", h.UpdateWorkflowNode)
	w.Delete("/:id/nodes/:nodeId", h.DeleteWorkflowNode)

	router.Get("/health", h.HealthCheck)
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	repositoryCheck, ok := h.workflowService.HealthCheck(c.Context())

	status := "unhealthy"
	message := "trialkit API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if ok {
		status = "healthy"
		message = "trialkit API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}
