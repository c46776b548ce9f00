// Package testutil provides test data builders for trial apps, workflows and nodes.
package testutil

import (
	"github.com/dukex/trialkit/pkg/models"
	"github.com/google/uuid"
)

// CreateTestTrialApp creates a chat trial app named "demo" that can be overridden.
func CreateTestTrialApp(overrides ...func(*models.TrialApp)) *models.TrialApp {
	app := &models.TrialApp{
		ID:   uuid.New().String(),
		Name: "demo",
		Mode: models.AppModeChat,
		Site: models.SiteInfo{
			Title:    "Demo",
			IconType: models.IconTypeEmoji,
			Icon:     "🤖",
		},
	}

	for _, override := range overrides {
		override(app)
	}

	return app
}

// CreateTestNode creates an enabled plugin trigger node with default values that can be overridden.
func CreateTestNode(overrides ...func(*models.WorkflowNode)) *models.WorkflowNode {
	node := &models.WorkflowNode{
		ID:      uuid.New().String(),
		Type:    models.BlockTriggerPlugin,
		Title:   "Test Node",
		Enabled: true,
		Data: map[string]any{
			"plugin_id":  "",
			"event_name": "",
			"config":     map[string]any{},
		},
	}

	for _, override := range overrides {
		override(node)
	}

	return node
}

// WithPluginTrigger makes the node listen to eventName of pluginID.
func WithPluginTrigger(pluginID, eventName string, config map[string]any) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		if config == nil {
			config = map[string]any{}
		}

		n.Type = models.BlockTriggerPlugin
		n.Data = map[string]any{
			"plugin_id":  pluginID,
			"event_name": eventName,
			"config":     config,
		}
	}
}

func WithData(data map[string]any) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		n.Data = data
	}
}

func WithTitle(title string) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		n.Title = title
	}
}

func WithEnabled(enabled bool) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		n.Enabled = enabled
	}
}

func WithType(nodeType models.BlockEnum) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		n.Type = nodeType
	}
}

func WithID(id string) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		n.ID = id
	}
}

// CreateTestWorkflow creates an empty workflow of appID.
func CreateTestWorkflow(appID string, nodes ...*models.WorkflowNode) *models.Workflow {
	if nodes == nil {
		nodes = []*models.WorkflowNode{}
	}

	return &models.Workflow{
		ID:    uuid.New().String(),
		AppID: appID,
		Name:  "Test Workflow",
		Nodes: nodes,
	}
}
