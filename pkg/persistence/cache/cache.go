// Package cache decorates a persistence.Persistence with a Redis read-through cache for
// trial app lookups.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dukex/trialkit/pkg/models"
	"github.com/dukex/trialkit/pkg/persistence"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultTTL = 5 * time.Minute
	keyPrefix  = "trialkit:trial_app:"
)

// Persistence serves TrialAppByID from Redis when possible. Saves and deletes go to the
// wrapped persistence first and then drop the cached entry. Redis failures are logged and
// never fail a call.
type Persistence struct {
	persistence.Persistence

	client redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
	owned  bool
}

// New wraps next. The caller keeps ownership of client.
func New(next persistence.Persistence, client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *Persistence {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Persistence{
		Persistence: next,
		client:      client,
		ttl:         ttl,
		logger:      logger.With("module", "cache"),
	}
}

// NewFromURL parses a redis:// URL, checks the connection and wraps next. Close also
// closes the Redis client.
func NewFromURL(ctx context.Context, next persistence.Persistence, redisURL string, ttl time.Duration, logger *slog.Logger) (*Persistence, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(options)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.InfoContext(ctx, "Connected to Redis", "addr", options.Addr, "db", options.DB)

	p := New(next, client, ttl, logger)
	p.owned = true

	return p, nil
}

func key(id string) string {
	return keyPrefix + id
}

func (p *Persistence) TrialAppByID(ctx context.Context, id string) (*models.TrialApp, error) {
	cached, err := p.client.Get(ctx, key(id)).Bytes()

	switch {
	case err == nil:
		var app models.TrialApp
		if err := json.Unmarshal(cached, &app); err == nil {
			return &app, nil
		}

		p.logger.WarnContext(ctx, "Dropping undecodable cache entry", "app_id", id)
		p.invalidate(ctx, id)
	case errors.Is(err, redis.Nil):
	default:
		p.logger.WarnContext(ctx, "Cache read failed", "app_id", id, "error", err)
	}

	app, err := p.Persistence.TrialAppByID(ctx, id)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(app)
	if err != nil {
		p.logger.WarnContext(ctx, "Failed to encode trial app for cache", "app_id", id, "error", err)

		return app, nil
	}

	if err := p.client.Set(ctx, key(id), encoded, p.ttl).Err(); err != nil {
		p.logger.WarnContext(ctx, "Cache write failed", "app_id", id, "error", err)
	}

	return app, nil
}

func (p *Persistence) SaveTrialApp(ctx context.Context, app *models.TrialApp) error {
	if err := p.Persistence.SaveTrialApp(ctx, app); err != nil {
		return err
	}

	p.invalidate(ctx, app.ID)

	return nil
}

func (p *Persistence) DeleteTrialApp(ctx context.Context, id string) error {
	if err := p.Persistence.DeleteTrialApp(ctx, id); err != nil {
		return err
	}

	p.invalidate(ctx, id)

	return nil
}

// HealthCheck reports the wrapped persistence only; a degraded cache still serves reads.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	if err := p.client.Ping(ctx).Err(); err != nil {
		p.logger.WarnContext(ctx, "Redis ping failed", "error", err)
	}

	return p.Persistence.HealthCheck(ctx)
}

func (p *Persistence) Close(ctx context.Context) error {
	err := p.Persistence.Close(ctx)

	if p.owned {
		err = errors.Join(err, p.client.Close())
	}

	return err
}

func (p *Persistence) invalidate(ctx context.Context, id string) {
	if err := p.client.Del(ctx, key(id)).Err(); err != nil {
		p.logger.WarnContext(ctx, "Cache invalidation failed", "app_id", id, "error", err)
	}
}

var _ persistence.Persistence = (*Persistence)(nil)
