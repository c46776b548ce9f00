package web

import (
	"github.com/dukex/trialkit/pkg/i18n"
	"github.com/dukex/trialkit/pkg/services"
	"github.com/gofiber/fiber/v3"
)

func (h *APIHandlers) ListWorkflows(c fiber.Ctx) error {
	workflows, err := h.workflowService.List(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(workflows)
}

func (h *APIHandlers) GetWorkflow(c fiber.Ctx) error {
	workflow, err := h.workflowService.FetchByID(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(workflow)
}

func (h *APIHandlers) CreateWorkflow(c fiber.Ctx) error {
	var req services.CreateWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	workflow, err := h.workflowService.Create(c.Context(), &req)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(workflow)
}

func (h *APIHandlers) DeleteWorkflow(c fiber.Ctx) error {
	if err := h.workflowService.Delete(c.Context(), c.Params("id")); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// AddWorkflowNode instantiates a node type inside a workflow. Validation messages follow
// Accept-Language.
func (h *APIHandlers) AddWorkflowNode(c fiber.Ctx) error {
	translator := i18n.FromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))

	var req services.AddNodeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := i18n.Validator().Struct(req); err != nil {
		return badRequest(c, i18n.ValidationMessage(err, translator))
	}

	node, err := h.workflowService.AddNode(c.Context(), c.Params("id"), &req, translator)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(node)
}

func (h *APIHandlers) UpdateWorkflowNode(c fiber.Ctx) error {
	translator := i18n.FromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))

	var req services.UpdateNodeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	node, err := h.workflowService.UpdateNode(c.Context(), c.Params("id"), c.Params("nodeId"), &req, translator)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(node)
}

func (h *APIHandlers) DeleteWorkflowNode(c fiber.Ctx) error {
	if err := h.workflowService.DeleteNode(c.Context(), c.Params("id"), c.Params("nodeId")); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
