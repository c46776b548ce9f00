package file

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"time"

	"github.com/dukex/trialkit/pkg/models"
	"github.com/dukex/trialkit/pkg/persistence"
)

// TrialAppRepository handles trial app file operations.
type TrialAppRepository struct {
	docs documents[models.TrialApp]
}

func NewTrialAppRepository(root string) *TrialAppRepository {
	return &TrialAppRepository{docs: documents[models.TrialApp]{dir: filepath.Join(root, "trial_apps")}}
}

// GetAll returns every trial app ordered by creation time.
func (r *TrialAppRepository) GetAll(_ context.Context) ([]*models.TrialApp, error) {
	apps, err := r.docs.readAll()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(apps, func(i, j int) bool {
		if apps[i].CreatedAt.Equal(apps[j].CreatedAt) {
			return apps[i].ID < apps[j].ID
		}

		return apps[i].CreatedAt.Before(apps[j].CreatedAt)
	})

	return apps, nil
}

func (r *TrialAppRepository) GetByID(_ context.Context, id string) (*models.TrialApp, error) {
	app, err := r.docs.read(id)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, persistence.NewTrialAppError("ByID", id, persistence.ErrTrialAppNotFound)
		}

		return nil, persistence.NewTrialAppError("ByID", id, err)
	}

	return app, nil
}

func (r *TrialAppRepository) Save(_ context.Context, app *models.TrialApp) error {
	now := time.Now().UTC()
	if app.CreatedAt.IsZero() {
		app.CreatedAt = now
	}

	app.UpdatedAt = now

	if err := r.docs.write(app.ID, app); err != nil {
		return persistence.NewTrialAppError("Save", app.ID, err)
	}

	return nil
}

func (r *TrialAppRepository) Delete(_ context.Context, id string) error {
	err := r.docs.remove(id)
	if errors.Is(err, fs.ErrNotExist) {
		return persistence.NewTrialAppError("Delete", id, persistence.ErrTrialAppNotFound)
	}

	if err != nil {
		return persistence.NewTrialAppError("Delete", id, err)
	}

	return nil
}
