package trigger

import (
	"encoding/json"
	"testing"

	"github.com/dukex/trialkit/pkg/i18n"
	"github.com/dukex/trialkit/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPluginDefault_MetaData(t *testing.T) {
	meta := PluginDefault.MetaData()

	assert.Equal(t, 1, meta.Sort)
	assert.Equal(t, models.BlockTriggerPlugin, meta.Type)
	assert.True(t, meta.IsStart)
	assert.Equal(t, models.BlockTriggerPlugin, PluginDefault.Type())
}

func TestPluginDefault_MetaDataIndependentOfOtherNodes(t *testing.T) {
	assert.Equal(t, 2, ScheduleDefault.MetaData().Sort)
	assert.Equal(t, 3, WebhookDefault.MetaData().Sort)

	meta := PluginDefault.MetaData()
	assert.Equal(t, 1, meta.Sort)
	assert.Equal(t, models.BlockTriggerPlugin, meta.Type)
	assert.True(t, meta.IsStart)
}

func TestPluginDefault_DefaultValue(t *testing.T) {
	want := models.PluginTriggerNodeConfig{
		PluginID:  "",
		EventName: "",
		Config:    map[string]any{},
	}

	assert.Equal(t, want, PluginDefault.DefaultValue())
	assert.Equal(t, want, PluginDefault.DefaultValue())
}

func TestPluginDefault_DefaultValueNotShared(t *testing.T) {
	instance := PluginDefault.DefaultValue()
	instance.PluginID = "langgenius/github"
	instance.EventName = "issue_opened"
	instance.Config["repo"] = "trialkit"

	next := PluginDefault.DefaultValue()
	assert.Empty(t, next.PluginID)
	assert.Empty(t, next.EventName)
	assert.Empty(t, next.Config)
}

func TestPluginDefault_DefaultConfigJSON(t *testing.T) {
	config, err := PluginDefault.DefaultConfig()
	require.NoError(t, err)

	raw, err := json.Marshal(config)
	require.NoError(t, err)
	assert.JSONEq(t, `{"plugin_id":"","event_name":"","config":{}}`, string(raw))
}

func TestPluginDefault_CheckValidAlwaysValid(t *testing.T) {
	want := models.ValidationResult{IsValid: true, ErrorMessage: ""}

	payloads := []models.PluginTriggerNodeConfig{
		{},
		PluginDefault.DefaultValue(),
		{PluginID: "p", EventName: "e", Config: map[string]any{"k": []any{1, 2}}},
	}

	translators := []i18n.Translator{nil, i18n.Nop, i18n.New(i18n.LocaleEN), i18n.New(i18n.LocaleZH)}

	for _, payload := range payloads {
		for _, tr := range translators {
			assert.Equal(t, want, PluginDefault.CheckValid(payload, tr))
		}
	}
}

func TestPluginDefault_CheckValidRawAlwaysValid(t *testing.T) {
	raws := []string{``, `null`, `{}`, `[]`, `"text"`, `42`, `{"plugin_id":"","unexpected":{"nested":true}}`}

	for _, raw := range raws {
		result := PluginDefault.CheckValidRaw(json.RawMessage(raw), i18n.New(i18n.LocaleEN))
		assert.True(t, result.IsValid, "payload %q", raw)
		assert.Empty(t, result.ErrorMessage, "payload %q", raw)
	}
}
