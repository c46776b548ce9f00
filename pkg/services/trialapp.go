package services

import (
	"context"
	"fmt"

	"github.com/dukex/trialkit/pkg/i18n"
	"github.com/dukex/trialkit/pkg/models"
	"github.com/dukex/trialkit/pkg/persistence"
	"github.com/google/uuid"
)

// TrialAppRequest carries the writable fields of a trial app.
type TrialAppRequest struct {
	ID   string          `json:"id,omitempty" validate:"omitempty,record_id"`
	Name string          `json:"name"         validate:"required,min=1,max=255"`
	Mode models.AppMode  `json:"mode"         validate:"required"`
	Site models.SiteInfo `json:"site"`
}

// TrialApp handles trial app business operations.
type TrialApp struct {
	persistence persistence.Persistence
}

func NewTrialApp(persistence persistence.Persistence) *TrialApp {
	return &TrialApp{persistence: persistence}
}

func (s *TrialApp) FetchByID(ctx context.Context, id string) (*models.TrialApp, error) {
	return s.persistence.TrialAppByID(ctx, id)
}

// FetchInfo returns the public TryAppInfo projection of a trial app.
func (s *TrialApp) FetchInfo(ctx context.Context, id string) (*models.TryAppInfo, error) {
	app, err := s.persistence.TrialAppByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return app.Info(), nil
}

func (s *TrialApp) List(ctx context.Context) ([]*models.TrialApp, error) {
	return s.persistence.TrialApps(ctx)
}

// Create stores a new trial app. A missing id is generated.
func (s *TrialApp) Create(ctx context.Context, req *TrialAppRequest) (*models.TrialApp, error) {
	if err := i18n.Validator().StructPartial(req, "ID"); err != nil {
		return nil, NewValidationError("CreateTrialApp", "validation_error", i18n.ValidationMessage(err, nil), ErrInvalidRequest)
	}

	id := req.ID
	if id == "" {
		id = uuid.New().String()
	} else {
		_, err := s.persistence.TrialAppByID(ctx, id)
		if err == nil {
			return nil, &ServiceError{Op: "CreateTrialApp", Code: "conflict", Message: "trial app " + id + " already exists", Err: ErrTrialAppExists}
		}

		if !persistence.IsTrialAppNotFound(err) {
			return nil, fmt.Errorf("failed to check trial app: %w", err)
		}
	}

	app := &models.TrialApp{
		ID:   id,
		Name: req.Name,
		Mode: req.Mode,
		Site: req.Site,
	}

	if err := validateTrialApp("CreateTrialApp", app); err != nil {
		return nil, err
	}

	if err := s.persistence.SaveTrialApp(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to save trial app: %w", err)
	}

	return app, nil
}

// Update replaces the writable fields of an existing trial app.
func (s *TrialApp) Update(ctx context.Context, id string, req *TrialAppRequest) (*models.TrialApp, error) {
	app, err := s.persistence.TrialAppByID(ctx, id)
	if err != nil {
		return nil, err
	}

	app.Name = req.Name
	app.Mode = req.Mode
	app.Site = req.Site

	if err := validateTrialApp("UpdateTrialApp", app); err != nil {
		return nil, err
	}

	if err := s.persistence.SaveTrialApp(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to save trial app: %w", err)
	}

	return app, nil
}

func (s *TrialApp) Delete(ctx context.Context, id string) error {
	return s.persistence.DeleteTrialApp(ctx, id)
}

func validateTrialApp(op string, app *models.TrialApp) error {
	if err := i18n.Validator().Struct(app); err != nil {
		return NewValidationError(op, "validation_error", i18n.ValidationMessage(err, nil), ErrInvalidRequest)
	}

	return nil
}
