package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dukex/trialkit/pkg/models"
	"github.com/dukex/trialkit/pkg/otelhelper"
	"go.opentelemetry.io/otel/attribute"
)

// ListNodeTypes returns the metadata of every node type the server knows.
func (c *Client) ListNodeTypes(ctx context.Context) ([]models.NodeMetaData, error) {
	var metas []models.NodeMetaData
	if err := c.getJSON(ctx, "/node-types", "/node-types", &metas); err != nil {
		return nil, err
	}

	return metas, nil
}

// NodeDefault returns the metadata and default data of one node type.
func (c *Client) NodeDefault(ctx context.Context, nodeType models.BlockEnum) (*models.NodeTypeInfo, error) {
	var info models.NodeTypeInfo
	if err := c.getJSON(ctx, "/node-types/{type}", "/node-types/"+string(nodeType), &info,
		attribute.String(otelhelper.NodeTypeKey, string(nodeType))); err != nil {
		return nil, err
	}

	return &info, nil
}

// CheckNode asks the server to validate payload as nodeType.
func (c *Client) CheckNode(ctx context.Context, nodeType models.BlockEnum, payload map[string]any) (*models.ValidationResult, error) {
	body, err := c.call(ctx, http.MethodPost, "/node-types/{type}/check", "/node-types/"+string(nodeType)+"/check", payload,
		attribute.String(otelhelper.NodeTypeKey, string(nodeType)))
	if err != nil {
		return nil, err
	}

	var result models.ValidationResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	return &result, nil
}

// PreviewSchedule asks the server for the next count fire times of a schedule trigger config
// after from. A zero count or from leaves the server defaults in place.
func (c *Client) PreviewSchedule(ctx context.Context, config map[string]any, count int, from time.Time) (*models.SchedulePreview, error) {
	query := url.Values{}
	if count != 0 {
		query.Set("count", strconv.Itoa(count))
	}

	if !from.IsZero() {
		query.Set("from", from.Format(time.RFC3339))
	}

	path := "/node-types/trigger-schedule/preview"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	body, err := c.call(ctx, http.MethodPost, "/node-types/trigger-schedule/preview", path, config,
		attribute.String(otelhelper.NodeTypeKey, string(models.BlockTriggerSchedule)))
	if err != nil {
		return nil, err
	}

	var preview models.SchedulePreview
	if err := json.Unmarshal(body, &preview); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	return &preview, nil
}

func (c *Client) getJSON(ctx context.Context, route, path string, out any, attrs ...attribute.KeyValue) error {
	body, err := c.call(ctx, http.MethodGet, route, path, nil, attrs...)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	return nil
}
