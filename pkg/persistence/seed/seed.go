// Package seed loads trial apps and workflows from a YAML document into a persistence.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/dukex/trialkit/pkg/i18n"
	"github.com/dukex/trialkit/pkg/models"
	"github.com/dukex/trialkit/pkg/persistence"
	"github.com/goccy/go-yaml"
)

// File is the seed document. Keys follow the JSON names of the models:
//
//	trial_apps:
//	  - id: demo
//	    name: Demo
//	    mode: chat
//	    site:
//	      title: Demo
type File struct {
	TrialApps []*models.TrialApp `json:"trial_apps"`
	Workflows []*models.Workflow `json:"workflows"`
}

// Parse decodes and validates a seed document.
func Parse(data []byte) (*File, error) {
	raw, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	var file File
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to decode seed: %w", err)
	}

	validate := i18n.Validator()

	for i, app := range file.TrialApps {
		if app.ID == "" {
			return nil, fmt.Errorf("trial_apps[%d]: id is required", i)
		}

		if err := validate.Struct(app); err != nil {
			return nil, fmt.Errorf("trial_apps[%d] %s: %s", i, app.ID, i18n.ValidationMessage(err, nil))
		}
	}

	for i, workflow := range file.Workflows {
		if workflow.ID == "" {
			return nil, fmt.Errorf("workflows[%d]: id is required", i)
		}

		if err := validate.Struct(workflow); err != nil {
			return nil, fmt.Errorf("workflows[%d] %s: %s", i, workflow.ID, i18n.ValidationMessage(err, nil))
		}
	}

	return &file, nil
}

// LoadFile reads and parses the seed document at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	return Parse(data)
}

// Apply upserts every record of file into p.
func Apply(ctx context.Context, logger *slog.Logger, p persistence.Persistence, file *File) error {
	for _, app := range file.TrialApps {
		if err := p.SaveTrialApp(ctx, app); err != nil {
			return fmt.Errorf("failed to seed trial app %s: %w", app.ID, err)
		}
	}

	for _, workflow := range file.Workflows {
		if err := p.SaveWorkflow(ctx, workflow); err != nil {
			return fmt.Errorf("failed to seed workflow %s: %w", workflow.ID, err)
		}
	}

	logger.InfoContext(ctx, "Seed applied", "trial_apps", len(file.TrialApps), "workflows", len(file.Workflows))

	return nil
}
