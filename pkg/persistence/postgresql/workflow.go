package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dukex/trialkit/pkg/models"
	"github.com/dukex/trialkit/pkg/persistence"
)

// WorkflowRepository handles workflow-related database operations.
type WorkflowRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewWorkflowRepository creates a new workflow repository.
func NewWorkflowRepository(db *sql.DB, logger *slog.Logger) *WorkflowRepository {
	return &WorkflowRepository{db: db, logger: logger}
}

// GetAll returns all workflows from the database.
func (r *WorkflowRepository) GetAll(ctx context.Context) ([]*models.Workflow, error) {
	query := `
		SELECT
			id
		  , app_id
		  , name
		  , nodes
		  , created_at
		  , updated_at
		FROM workflows
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query workflows: %w", err)
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	workflows := make([]*models.Workflow, 0)

	for rows.Next() {
		workflow, err := scanWorkflow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workflow: %w", err)
		}

		workflows = append(workflows, workflow)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating workflows: %w", err)
	}

	return workflows, nil
}

func (r *WorkflowRepository) GetByID(ctx context.Context, id string) (*models.Workflow, error) {
	query := `
		SELECT
			id
		  , app_id
		  , name
		  , nodes
		  , created_at
		  , updated_at
		FROM workflows
		WHERE id = $1
	`

	workflow, err := scanWorkflow(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewWorkflowError("ByID", id, persistence.ErrWorkflowNotFound)
		}

		return nil, persistence.NewWorkflowError("ByID", id, err)
	}

	return workflow, nil
}

// Save upserts a workflow with all of its nodes.
func (r *WorkflowRepository) Save(ctx context.Context, workflow *models.Workflow) error {
	now := time.Now().UTC()

	if workflow.CreatedAt.IsZero() {
		workflow.CreatedAt = now
	}

	workflow.UpdatedAt = now

	nodes := workflow.Nodes
	if nodes == nil {
		nodes = []*models.WorkflowNode{}
	}

	nodesJSON, err := json.Marshal(nodes)
	if err != nil {
		return persistence.NewWorkflowError("Save", workflow.ID, fmt.Errorf("failed to marshal nodes: %w", err))
	}

	query := `
		INSERT INTO workflows (id, app_id, name, nodes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			app_id = EXCLUDED.app_id,
			name = EXCLUDED.name,
			nodes = EXCLUDED.nodes,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		workflow.ID,
		workflow.AppID,
		workflow.Name,
		nodesJSON,
		workflow.CreatedAt,
		workflow.UpdatedAt,
	)
	if err != nil {
		return persistence.NewWorkflowError("Save", workflow.ID, err)
	}

	return nil
}

// Delete removes a workflow.
func (r *WorkflowRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM workflows WHERE id = $1`, id)
	if err != nil {
		return persistence.NewWorkflowError("Delete", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return persistence.NewWorkflowError("Delete", id, fmt.Errorf("failed to get rows affected: %w", err))
	}

	if rowsAffected == 0 {
		return persistence.NewWorkflowError("Delete", id, persistence.ErrWorkflowNotFound)
	}

	return nil
}

// FindPluginTriggerNodes unnests the node arrays in SQL so only matching nodes are returned.
func (r *WorkflowRepository) FindPluginTriggerNodes(ctx context.Context, pluginID, eventName string) ([]*models.TriggerNodeMatch, error) {
	query := `
		SELECT
			w.id
		  , w.app_id
		  , node.value
		FROM workflows w
		CROSS JOIN LATERAL jsonb_array_elements(w.nodes) WITH ORDINALITY AS node(value, position)
		WHERE node.value->>'type' = $1
		  AND COALESCE((node.value->>'enabled')::boolean, false)
		  AND node.value->'data'->>'plugin_id' = $2
		  AND node.value->'data'->>'event_name' = $3
		ORDER BY w.created_at, w.id, node.position
	`

	rows, err := r.db.QueryContext(ctx, query, string(models.BlockTriggerPlugin), pluginID, eventName)
	if err != nil {
		return nil, fmt.Errorf("failed to query plugin trigger nodes: %w", err)
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	matches := make([]*models.TriggerNodeMatch, 0)

	for rows.Next() {
		var (
			match    models.TriggerNodeMatch
			nodeJSON []byte
		)

		if err := rows.Scan(&match.WorkflowID, &match.AppID, &nodeJSON); err != nil {
			return nil, fmt.Errorf("failed to scan plugin trigger node: %w", err)
		}

		if err := json.Unmarshal(nodeJSON, &match.Node); err != nil {
			return nil, fmt.Errorf("failed to unmarshal plugin trigger node: %w", err)
		}

		matches = append(matches, &match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plugin trigger nodes: %w", err)
	}

	return matches, nil
}

func scanWorkflow(row rowScanner) (*models.Workflow, error) {
	var (
		workflow  models.Workflow
		nodesJSON []byte
	)

	err := row.Scan(&workflow.ID, &workflow.AppID, &workflow.Name, &nodesJSON, &workflow.CreatedAt, &workflow.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(nodesJSON, &workflow.Nodes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal nodes of workflow %s: %w", workflow.ID, err)
	}

	workflow.CreatedAt = workflow.CreatedAt.UTC()
	workflow.UpdatedAt = workflow.UpdatedAt.UTC()

	return &workflow, nil
}
