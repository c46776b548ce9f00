// Package cmd provides common initialization functions for command-line applications.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dukex/trialkit/pkg/persistence"
	"github.com/dukex/trialkit/pkg/persistence/cache"
	"github.com/dukex/trialkit/pkg/persistence/file"
	"github.com/dukex/trialkit/pkg/persistence/postgresql"
	"github.com/dukex/trialkit/pkg/persistence/seed"
)

const (
	providerFile     = "file"
	providerPostgres = "postgres"
)

// PersistenceConfig selects and decorates the storage backend.
type PersistenceConfig struct {
	// DatabaseURL is file://<dir>, postgres://... or postgresql://...; a bare path is a directory.
	DatabaseURL string
	// RedisURL enables the trial app read-through cache when set.
	RedisURL string
	CacheTTL time.Duration
	// SeedFile is a YAML document of trial apps and workflows upserted at startup.
	SeedFile string
}

func NewPersistence(ctx context.Context, logger *slog.Logger, cfg PersistenceConfig) (persistence.Persistence, error) {
	var (
		base persistence.Persistence
		err  error
	)

	switch parsePersistenceProvider(cfg.DatabaseURL) {
	case providerPostgres:
		base, err = postgresql.NewPersistence(ctx, logger, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
	default:
		base = file.NewPersistence(cfg.DatabaseURL)
	}

	if cfg.SeedFile != "" {
		if err := applySeed(ctx, logger, base, cfg.SeedFile); err != nil {
			return nil, errors.Join(err, base.Close(ctx))
		}
	}

	if cfg.RedisURL == "" {
		return base, nil
	}

	cached, err := cache.NewFromURL(ctx, base, cfg.RedisURL, cfg.CacheTTL, logger)
	if err != nil {
		return nil, errors.Join(err, base.Close(ctx))
	}

	return cached, nil
}

func applySeed(ctx context.Context, logger *slog.Logger, p persistence.Persistence, path string) error {
	document, err := seed.LoadFile(path)
	if err != nil {
		return err
	}

	if err := seed.Apply(ctx, logger, p, document); err != nil {
		return fmt.Errorf("failed to apply seed %s: %w", path, err)
	}

	return nil
}

func parsePersistenceProvider(databaseURL string) string {
	scheme, _, found := strings.Cut(databaseURL, "://")
	if !found {
		return providerFile
	}

	switch scheme {
	case "postgres", "postgresql":
		return providerPostgres
	default:
		return providerFile
	}
}
