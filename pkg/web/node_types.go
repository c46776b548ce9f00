package web

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/dukex/trialkit/pkg/i18n"
	"github.com/dukex/trialkit/pkg/models"
	"github.com/dukex/trialkit/pkg/nodes/trigger"
	"github.com/gofiber/fiber/v3"
)

const (
	defaultPreviewRuns = 5
	maxPreviewRuns     = 50
)

func (h *APIHandlers) ListNodeTypes(c fiber.Ctx) error {
	return c.JSON(h.registry.List())
}

// GetNodeType serves the metadata and default data of one node type.
func (h *APIHandlers) GetNodeType(c fiber.Ctx) error {
	nodeType := models.BlockEnum(c.Params("type"))

	descriptor, ok := h.registry.Get(nodeType)
	if !ok {
		return notFound(c, "unknown node type "+string(nodeType))
	}

	defaults, err := descriptor.DefaultConfig()
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(models.NodeTypeInfo{
		MetaData:     descriptor.MetaData(),
		DefaultValue: defaults,
	})
}

// CheckNodeType validates the request body as node data of the given type. Messages are
// rendered in the language picked from Accept-Language.
func (h *APIHandlers) CheckNodeType(c fiber.Ctx) error {
	nodeType := models.BlockEnum(c.Params("type"))
	translator := i18n.FromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))

	body := c.Body()
	if len(body) > 0 && !json.Valid(body) {
		return badRequest(c, "Invalid JSON format")
	}

	result, err := h.registry.CheckValid(nodeType, json.RawMessage(body), translator)
	if err != nil {
		return notFound(c, "unknown node type "+string(nodeType))
	}

	return c.JSON(result)
}

// PreviewSchedule checks the request body as schedule trigger data and lists its next fire
// times. Query parameters: count (1 to 50, default 5) and from (RFC 3339, default now).
func (h *APIHandlers) PreviewSchedule(c fiber.Ctx) error {
	count := defaultPreviewRuns
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPreviewRuns {
			return badRequest(c, fmt.Sprintf("count must be an integer between 1 and %d", maxPreviewRuns))
		}

		count = n
	}

	from := time.Now()
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(c, "from must be an RFC 3339 timestamp")
		}

		from = parsed
	}

	var cfg models.ScheduleTriggerNodeConfig
	if err := json.Unmarshal(c.Body(), &cfg); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	translator := i18n.FromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
	if result := trigger.ScheduleDefault.CheckValid(cfg, translator); !result.IsValid {
		return badRequest(c, result.ErrorMessage)
	}

	preview, err := trigger.Preview(cfg, count, from)
	if err != nil {
		return badRequest(c, err.Error())
	}

	return c.JSON(preview)
}
