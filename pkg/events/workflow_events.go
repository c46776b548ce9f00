package events

// WorkflowTriggered asks the workflow runner to start WorkflowID from TriggerNodeID.
type WorkflowTriggered struct {
	BaseEvent

	AppID         string         `json:"app_id"`
	TriggerNodeID string         `json:"trigger_node_id"`
	TriggerData   map[string]any `json:"trigger_data,omitempty"`
}

func NewWorkflowTriggered(workflowID, appID, triggerNodeID string, triggerData map[string]any) *WorkflowTriggered {
	return &WorkflowTriggered{
		BaseEvent:     NewBaseEvent(WorkflowTriggeredEvent, workflowID),
		AppID:         appID,
		TriggerNodeID: triggerNodeID,
		TriggerData:   triggerData,
	}
}

func (w WorkflowTriggered) GetType() EventType {
	return WorkflowTriggeredEvent
}
