// Package trigger declares the node types that can start a workflow from an external event.
package trigger

import (
	"github.com/dukex/trialkit/pkg/i18n"
	"github.com/dukex/trialkit/pkg/models"
	"github.com/dukex/trialkit/pkg/nodes"
)

// PluginDefault is the plugin trigger node type: an entry point fired when a plugin emits
// the configured event.
var PluginDefault = nodes.NewDefault(
	models.MetaSpec{
		Sort:    1,
		Type:    models.BlockTriggerPlugin,
		IsStart: true,
	},
	models.PluginTriggerNodeConfig{
		PluginID:  "",
		EventName: "",
		Config:    map[string]any{},
	},
	models.PluginTriggerNodeConfig.Clone,
	checkPlugin,
)

// checkPlugin accepts every payload. plugin_id and event_name are not enforced here.
func checkPlugin(_ models.PluginTriggerNodeConfig, _ i18n.Translator) models.ValidationResult {
	return models.Valid()
}
