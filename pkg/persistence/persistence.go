// Package persistence provides the storage abstraction for trial apps and workflows.
package persistence

import (
	"context"

	"github.com/dukex/trialkit/pkg/models"
)

// Persistence stores trial apps and workflows. Lookups of missing records return an error
// matching ErrTrialAppNotFound or ErrWorkflowNotFound.
type Persistence interface {
	TrialApps(ctx context.Context) ([]*models.TrialApp, error)
	TrialAppByID(ctx context.Context, id string) (*models.TrialApp, error)
	SaveTrialApp(ctx context.Context, app *models.TrialApp) error
	DeleteTrialApp(ctx context.Context, id string) error

	Workflows(ctx context.Context) ([]*models.Workflow, error)
	WorkflowByID(ctx context.Context, id string) (*models.Workflow, error)
	SaveWorkflow(ctx context.Context, workflow *models.Workflow) error
	DeleteWorkflow(ctx context.Context, id string) error

	// FindPluginTriggerNodes returns enabled plugin trigger nodes listening to the event.
	FindPluginTriggerNodes(ctx context.Context, pluginID, eventName string) ([]*models.TriggerNodeMatch, error)

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
