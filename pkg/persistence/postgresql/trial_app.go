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

// TrialAppRepository handles trial app database operations.
type TrialAppRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewTrialAppRepository(db *sql.DB, logger *slog.Logger) *TrialAppRepository {
	return &TrialAppRepository{db: db, logger: logger}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// GetAll returns every trial app ordered by creation time.
func (r *TrialAppRepository) GetAll(ctx context.Context) ([]*models.TrialApp, error) {
	query := `
		SELECT
			id
		  , name
		  , mode
		  , site
		  , created_at
		  , updated_at
		FROM trial_apps
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query trial apps: %w", err)
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	apps := make([]*models.TrialApp, 0)

	for rows.Next() {
		app, err := scanTrialApp(rows)
		if err != nil {
			return nil, err
		}

		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial apps: %w", err)
	}

	return apps, nil
}

func (r *TrialAppRepository) GetByID(ctx context.Context, id string) (*models.TrialApp, error) {
	query := `
		SELECT
			id
		  , name
		  , mode
		  , site
		  , created_at
		  , updated_at
		FROM trial_apps
		WHERE id = $1
	`

	app, err := scanTrialApp(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewTrialAppError("ByID", id, persistence.ErrTrialAppNotFound)
		}

		return nil, persistence.NewTrialAppError("ByID", id, err)
	}

	return app, nil
}

func (r *TrialAppRepository) Save(ctx context.Context, app *models.TrialApp) error {
	now := time.Now().UTC()
	if app.CreatedAt.IsZero() {
		app.CreatedAt = now
	}

	app.UpdatedAt = now

	siteJSON, err := json.Marshal(app.Site)
	if err != nil {
		return persistence.NewTrialAppError("Save", app.ID, fmt.Errorf("failed to marshal site: %w", err))
	}

	query := `
		INSERT INTO trial_apps (id, name, mode, site, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			mode = EXCLUDED.mode,
			site = EXCLUDED.site,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.db.ExecContext(ctx, query, app.ID, app.Name, string(app.Mode), siteJSON, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		return persistence.NewTrialAppError("Save", app.ID, err)
	}

	return nil
}

func (r *TrialAppRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trial_apps WHERE id = $1`, id)
	if err != nil {
		return persistence.NewTrialAppError("Delete", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return persistence.NewTrialAppError("Delete", id, fmt.Errorf("failed to get rows affected: %w", err))
	}

	if rowsAffected == 0 {
		return persistence.NewTrialAppError("Delete", id, persistence.ErrTrialAppNotFound)
	}

	return nil
}

func scanTrialApp(row rowScanner) (*models.TrialApp, error) {
	var (
		app      models.TrialApp
		mode     string
		siteJSON []byte
	)

	err := row.Scan(&app.ID, &app.Name, &mode, &siteJSON, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return nil, err
	}

	app.Mode = models.AppMode(mode)

	if err := json.Unmarshal(siteJSON, &app.Site); err != nil {
		return nil, fmt.Errorf("failed to unmarshal site of trial app %s: %w", app.ID, err)
	}

	app.CreatedAt = app.CreatedAt.UTC()
	app.UpdatedAt = app.UpdatedAt.UTC()

	return &app, nil
}
