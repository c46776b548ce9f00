package models

import "time"

// Workflow is the node graph attached to an app. Connections are owned by the editor
// and are not stored here.
type Workflow struct {
	ID        string          `json:"id"         validate:"omitempty,record_id"`
	AppID     string          `json:"app_id"     validate:"required"`
	Name      string          `json:"name"       validate:"required,min=1"`
	Nodes     []*WorkflowNode `json:"nodes"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// WorkflowNode is a node instance in a workflow.
type WorkflowNode struct {
	ID      string         `json:"id"      validate:"required"`
	Type    BlockEnum      `json:"type"    validate:"required"`
	Title   string         `json:"title"`
	Enabled bool           `json:"enabled"`
	Data    map[string]any `json:"data"`
}

// IsTriggerNode reports whether the node can start the workflow from an external event.
func (n *WorkflowNode) IsTriggerNode() bool {
	return n.Type.IsTrigger()
}

// PluginTrigger extracts plugin trigger fields from the node data.
// ok is false when the node is not a plugin trigger.
func (n *WorkflowNode) PluginTrigger() (PluginTriggerNodeConfig, bool) {
	if n.Type != BlockTriggerPlugin {
		return PluginTriggerNodeConfig{}, false
	}

	cfg := PluginTriggerNodeConfig{Config: map[string]any{}}
	cfg.PluginID, _ = n.Data["plugin_id"].(string)
	cfg.EventName, _ = n.Data["event_name"].(string)

	if config, ok := n.Data["config"].(map[string]any); ok {
		cfg.Config = cloneMap(config)
	}

	return cfg, true
}

// NodeByID returns the node with the given id, or nil.
func (w *Workflow) NodeByID(id string) *WorkflowNode {
	for _, node := range w.Nodes {
		if node.ID == id {
			return node
		}
	}

	return nil
}
