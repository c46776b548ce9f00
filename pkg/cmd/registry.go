package cmd

import (
	"log/slog"

	"github.com/dukex/trialkit/pkg/registry"
)

// NewRegistry returns a registry holding every built-in node type.
func NewRegistry(log *slog.Logger) (*registry.Registry, error) {
	reg := registry.NewRegistry(log)

	if err := reg.RegisterDefaultNodes(); err != nil {
		return nil, err
	}

	return reg, nil
}
