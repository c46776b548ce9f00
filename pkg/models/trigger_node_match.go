package models

// TriggerNodeMatch is a plugin trigger node that matches an incoming plugin event.
// The dispatcher emits one workflow.triggered event per match.
type TriggerNodeMatch struct {
	WorkflowID string `json:"workflow_id"`
	AppID      string `json:"app_id"`

	// Node is the matching trigger node as stored in the workflow
	Node *WorkflowNode `json:"node"`
}

// MatchPluginTriggers returns the enabled plugin trigger nodes of workflows listening to
// pluginID and eventName, in workflow then node order.
func MatchPluginTriggers(workflows []*Workflow, pluginID, eventName string) []*TriggerNodeMatch {
	matches := make([]*TriggerNodeMatch, 0)

	for _, workflow := range workflows {
		for _, node := range workflow.Nodes {
			if !node.Enabled {
				continue
			}

			cfg, ok := node.PluginTrigger()
			if !ok || cfg.PluginID != pluginID || cfg.EventName != eventName {
				continue
			}

			matches = append(matches, &TriggerNodeMatch{
				WorkflowID: workflow.ID,
				AppID:      workflow.AppID,
				Node:       node,
			})
		}
	}

	return matches
}
