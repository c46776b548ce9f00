// Package file provides file-based persistence for trial apps and workflows.
package file

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/dukex/trialkit/pkg/models"
	"github.com/dukex/trialkit/pkg/persistence"
)

// Persistence implements the persistence.Persistence interface using the file system.
// Each record is one JSON document: {root}/trial_apps/{id}.json and {root}/workflows/{id}.json.
type Persistence struct {
	root         string
	mu           sync.RWMutex
	trialAppRepo *TrialAppRepository
	workflowRepo *WorkflowRepository
}

// NewPersistence creates a new instance of Persistence with the specified root directory.
func NewPersistence(root string) *Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	return &Persistence{
		root:         cleanRoot,
		trialAppRepo: NewTrialAppRepository(cleanRoot),
		workflowRepo: NewWorkflowRepository(cleanRoot),
	}
}

// Close performs any necessary cleanup. For file-based persistence, there is nothing to clean up.
func (fp *Persistence) Close(_ context.Context) error {
	return nil
}

// HealthCheck checks if the file persistence layer is healthy by verifying the root directory exists.
func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

func (fp *Persistence) TrialApps(ctx context.Context) ([]*models.TrialApp, error) {
	fp.mu.RLock()
	defer fp.mu.RUnlock()

	return fp.trialAppRepo.GetAll(ctx)
}

func (fp *Persistence) TrialAppByID(ctx context.Context, id string) (*models.TrialApp, error) {
	fp.mu.RLock()
	defer fp.mu.RUnlock()

	return fp.trialAppRepo.GetByID(ctx, id)
}

func (fp *Persistence) SaveTrialApp(ctx context.Context, app *models.TrialApp) error {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	return fp.trialAppRepo.Save(ctx, app)
}

func (fp *Persistence) DeleteTrialApp(ctx context.Context, id string) error {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	return fp.trialAppRepo.Delete(ctx, id)
}

func (fp *Persistence) Workflows(ctx context.Context) ([]*models.Workflow, error) {
	fp.mu.RLock()
	defer fp.mu.RUnlock()

	return fp.workflowRepo.GetAll(ctx)
}

func (fp *Persistence) WorkflowByID(ctx context.Context, id string) (*models.Workflow, error) {
	fp.mu.RLock()
	defer fp.mu.RUnlock()

	return fp.workflowRepo.GetByID(ctx, id)
}

func (fp *Persistence) SaveWorkflow(ctx context.Context, workflow *models.Workflow) error {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	return fp.workflowRepo.Save(ctx, workflow)
}

func (fp *Persistence) DeleteWorkflow(ctx context.Context, id string) error {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	return fp.workflowRepo.Delete(ctx, id)
}

// FindPluginTriggerNodes scans every workflow file; there is no index on disk.
func (fp *Persistence) FindPluginTriggerNodes(ctx context.Context, pluginID, eventName string) ([]*models.TriggerNodeMatch, error) {
	workflows, err := fp.Workflows(ctx)
	if err != nil {
		return nil, err
	}

	return models.MatchPluginTriggers(workflows, pluginID, eventName), nil
}

var _ persistence.Persistence = (*Persistence)(nil)
