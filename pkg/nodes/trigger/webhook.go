package trigger

import (
	"net/http"
	"slices"

	"github.com/dukex/trialkit/pkg/i18n"
	"github.com/dukex/trialkit/pkg/models"
	"github.com/dukex/trialkit/pkg/nodes"
)

const (
	minWebhookStatusCode = 200
	maxWebhookStatusCode = 399
)

var (
	webhookMethods = []string{
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
		http.MethodHead,
	}

	webhookContentTypes = []string{
		"application/json",
		"application/x-www-form-urlencoded",
		"multipart/form-data",
		"text/plain",
		"application/octet-stream",
	}
)

// WebhookDefault is the webhook trigger node type.
var WebhookDefault = nodes.NewDefault(
	models.MetaSpec{
		Sort:    3,
		Type:    models.BlockTriggerWebhook,
		IsStart: true,
	},
	models.WebhookTriggerNodeConfig{
		Method:      http.MethodPost,
		ContentType: "application/json",
		Headers:     []models.WebhookParameter{},
		Params:      []models.WebhookParameter{},
		Body:        []models.WebhookParameter{},
		AsyncMode:   true,
		StatusCode:  http.StatusOK,
	},
	models.WebhookTriggerNodeConfig.Clone,
	checkWebhook,
)

func checkWebhook(payload models.WebhookTriggerNodeConfig, t i18n.Translator) models.ValidationResult {
	if payload.Method == "" {
		return models.Invalid(t.T(i18n.MsgFieldRequired, t.T(i18n.FieldWebhookMethod)))
	}

	if !slices.Contains(webhookMethods, payload.Method) {
		return models.Invalid(t.T(i18n.MsgInvalidValue, t.T(i18n.FieldWebhookMethod)))
	}

	if payload.ContentType == "" {
		return models.Invalid(t.T(i18n.MsgFieldRequired, t.T(i18n.FieldWebhookContentType)))
	}

	if !slices.Contains(webhookContentTypes, payload.ContentType) {
		return models.Invalid(t.T(i18n.MsgInvalidValue, t.T(i18n.FieldWebhookContentType)))
	}

	if payload.StatusCode < minWebhookStatusCode || payload.StatusCode > maxWebhookStatusCode {
		return models.Invalid(t.T(i18n.MsgStatusCodeRange))
	}

	for _, params := range [][]models.WebhookParameter{payload.Headers, payload.Params, payload.Body} {
		if result := checkWebhookParameters(params, t); !result.IsValid {
			return result
		}
	}

	return models.Valid()
}

func checkWebhookParameters(params []models.WebhookParameter, t i18n.Translator) models.ValidationResult {
	seen := make(map[string]struct{}, len(params))

	for _, param := range params {
		if param.Name == "" {
			return models.Invalid(t.T(i18n.MsgFieldRequired, t.T(i18n.FieldWebhookParamName)))
		}

		if _, dup := seen[param.Name]; dup {
			return models.Invalid(t.T(i18n.MsgDuplicateParameter, param.Name))
		}

		seen[param.Name] = struct{}{}
	}

	return models.Valid()
}
