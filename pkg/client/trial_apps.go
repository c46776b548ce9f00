package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dukex/trialkit/pkg/i18n"
	"github.com/dukex/trialkit/pkg/models"
	"github.com/dukex/trialkit/pkg/otelhelper"
	"github.com/xeipuuv/gojsonschema"
	"go.opentelemetry.io/otel/attribute"
)

var tryAppInfoSchema = gojsonschema.NewGoLoader(models.TryAppInfoSchema)

// FetchTryAppInfo issues exactly one GET /trial-apps/{appID}. appID is placed into the path
// as given; callers are responsible for URL-safe identifiers.
func (c *Client) FetchTryAppInfo(ctx context.Context, appID string) (*models.TryAppInfo, error) {
	body, err := c.call(ctx, http.MethodGet, "/trial-apps/{id}", "/trial-apps/"+appID, nil,
		attribute.String(otelhelper.AppIDKey, appID))
	if err != nil {
		return nil, err
	}

	if err := checkSchema(body); err != nil {
		return nil, err
	}

	var info models.TryAppInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	if err := i18n.Validator().Struct(&info); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidResponse, i18n.ValidationMessage(err, nil))
	}

	return &info, nil
}

func checkSchema(body []byte) error {
	result, err := gojsonschema.Validate(tryAppInfoSchema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	if !result.Valid() {
		var violations []string
		for _, desc := range result.Errors() {
			violations = append(violations, desc.String())
		}

		return fmt.Errorf("%w: %s", ErrInvalidResponse, strings.Join(violations, "; "))
	}

	return nil
}
