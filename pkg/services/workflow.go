package services

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/dukex/trialkit/pkg/i18n"
	"github.com/dukex/trialkit/pkg/models"
	"github.com/dukex/trialkit/pkg/persistence"
	"github.com/dukex/trialkit/pkg/registry"
	"github.com/google/uuid"
)

// CreateWorkflowRequest creates an empty workflow for a trial app.
type CreateWorkflowRequest struct {
	AppID string `json:"app_id" validate:"required"`
	Name  string `json:"name"   validate:"required,min=1,max=255"`
}

// AddNodeRequest instantiates a node type. Data is overlaid on the type's default value.
type AddNodeRequest struct {
	Type    models.BlockEnum `json:"type"    validate:"required"`
	Title   string           `json:"title"`
	Enabled *bool            `json:"enabled"`
	Data    map[string]any   `json:"data"`
}

// UpdateNodeRequest changes an existing node. Nil fields are left untouched and Data is
// overlaid on the current node data.
type UpdateNodeRequest struct {
	Title   *string        `json:"title"`
	Enabled *bool          `json:"enabled"`
	Data    map[string]any `json:"data"`
}

type Workflow struct {
	persistence persistence.Persistence
	registry    *registry.Registry
}

// NewWorkflow creates a new workflow service.
func NewWorkflow(persistence persistence.Persistence, registry *registry.Registry) *Workflow {
	return &Workflow{
		persistence: persistence,
		registry:    registry,
	}
}

// HealthCheck checks the health of the persistence layer.
func (w *Workflow) HealthCheck(ctx context.Context) (string, bool) {
	if w.persistence == nil {
		return "Persistence layer not initialized", false
	}

	err := w.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	if err := w.registry.HealthCheck(); err != nil {
		return "Node registry is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

func (w *Workflow) FetchByID(ctx context.Context, id string) (*models.Workflow, error) {
	return w.persistence.WorkflowByID(ctx, id)
}

func (w *Workflow) List(ctx context.Context) ([]*models.Workflow, error) {
	return w.persistence.Workflows(ctx)
}

// Create stores an empty workflow owned by an existing trial app.
func (w *Workflow) Create(ctx context.Context, req *CreateWorkflowRequest) (*models.Workflow, error) {
	if err := i18n.Validator().Struct(req); err != nil {
		return nil, NewValidationError("CreateWorkflow", "validation_error", i18n.ValidationMessage(err, nil), ErrInvalidRequest)
	}

	if _, err := w.persistence.TrialAppByID(ctx, req.AppID); err != nil {
		return nil, err
	}

	workflow := &models.Workflow{
		ID:    uuid.New().String(),
		AppID: req.AppID,
		Name:  req.Name,
		Nodes: make([]*models.WorkflowNode, 0),
	}

	if err := w.persistence.SaveWorkflow(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to save workflow: %w", err)
	}

	return workflow, nil
}

func (w *Workflow) Delete(ctx context.Context, workflowID string) error {
	return w.persistence.DeleteWorkflow(ctx, workflowID)
}

// AddNode instantiates req.Type from its default value, validates the result with the
// type's checker and appends it to the workflow.
func (w *Workflow) AddNode(ctx context.Context, workflowID string, req *AddNodeRequest, translator i18n.Translator) (*models.WorkflowNode, error) {
	descriptor, ok := w.registry.Get(req.Type)
	if !ok {
		return nil, NewValidationError("AddNode", "unknown_node_type", "unknown node type "+string(req.Type), ErrUnknownNodeType)
	}

	workflow, err := w.persistence.WorkflowByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	meta := descriptor.MetaData()
	if meta.IsSingleton && slices.ContainsFunc(workflow.Nodes, func(n *models.WorkflowNode) bool { return n.Type == req.Type }) {
		return nil, &ServiceError{Op: "AddNode", Code: "conflict", Message: "workflow already has a " + string(req.Type) + " node", Err: ErrSingletonNodeTaken}
	}

	data, err := descriptor.DefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to build default config: %w", err)
	}

	maps.Copy(data, req.Data)

	if err := w.checkNode(req.Type, data, translator, "AddNode"); err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = meta.Title
	}

	node := &models.WorkflowNode{
		ID:      uuid.New().String(),
		Type:    req.Type,
		Title:   title,
		Enabled: req.Enabled == nil || *req.Enabled,
		Data:    data,
	}

	workflow.Nodes = append(workflow.Nodes, node)

	if err := w.persistence.SaveWorkflow(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to save workflow: %w", err)
	}

	return node, nil
}

// UpdateNode applies req to a node and validates the resulting data again.
func (w *Workflow) UpdateNode(ctx context.Context, workflowID, nodeID string, req *UpdateNodeRequest, translator i18n.Translator) (*models.WorkflowNode, error) {
	workflow, err := w.persistence.WorkflowByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	node := workflow.NodeByID(nodeID)
	if node == nil {
		return nil, persistence.NewNodeError("UpdateNode", workflowID, nodeID, persistence.ErrNodeNotFound)
	}

	data := models.CloneData(node.Data)
	maps.Copy(data, req.Data)

	if err := w.checkNode(node.Type, data, translator, "UpdateNode"); err != nil {
		return nil, err
	}

	node.Data = data

	if req.Title != nil {
		node.Title = *req.Title
	}

	if req.Enabled != nil {
		node.Enabled = *req.Enabled
	}

	if err := w.persistence.SaveWorkflow(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to save workflow: %w", err)
	}

	return node, nil
}

// DeleteNode removes a node unless its type is marked undeletable.
func (w *Workflow) DeleteNode(ctx context.Context, workflowID, nodeID string) error {
	workflow, err := w.persistence.WorkflowByID(ctx, workflowID)
	if err != nil {
		return err
	}

	index := slices.IndexFunc(workflow.Nodes, func(n *models.WorkflowNode) bool { return n.ID == nodeID })
	if index < 0 {
		return persistence.NewNodeError("DeleteNode", workflowID, nodeID, persistence.ErrNodeNotFound)
	}

	if descriptor, ok := w.registry.Get(workflow.Nodes[index].Type); ok && descriptor.MetaData().IsUndeletable {
		return &ServiceError{Op: "DeleteNode", Code: "conflict", Message: "node " + nodeID + " cannot be deleted", Err: ErrNodeUndeletable}
	}

	workflow.Nodes = slices.Delete(workflow.Nodes, index, index+1)

	if err := w.persistence.SaveWorkflow(ctx, workflow); err != nil {
		return fmt.Errorf("failed to save workflow: %w", err)
	}

	return nil
}

func (w *Workflow) checkNode(nodeType models.BlockEnum, data map[string]any, translator i18n.Translator, op string) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return NewValidationError(op, "invalid_node_config", err.Error(), ErrInvalidNodeConfig)
	}

	result, err := w.registry.CheckValid(nodeType, raw, translator)
	if err != nil {
		return NewValidationError(op, "unknown_node_type", err.Error(), ErrUnknownNodeType)
	}

	if !result.IsValid {
		return NewValidationError(op, "invalid_node_config", result.ErrorMessage, ErrInvalidNodeConfig)
	}

	return nil
}
