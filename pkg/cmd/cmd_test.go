package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/dukex/trialkit/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestParsePersistenceProvider(t *testing.T) {
	tests := map[string]string{
		"file:///var/lib/trialkit":            providerFile,
		"./data":                              providerFile,
		"postgres://u:p@localhost/trialkit":   providerPostgres,
		"postgresql://u:p@localhost/trialkit": providerPostgres,
		"mongodb://localhost":                 providerFile,
	}

	for url, want := range tests {
		assert.Equal(t, want, parsePersistenceProvider(url), "url %q", url)
	}
}

func TestNewPersistence_FileWithSeed(t *testing.T) {
	dir := t.TempDir()
	seedPath := filepath.Join(dir, "seed.yaml")

	require.NoError(t, os.WriteFile(seedPath, []byte(`
trial_apps:
  - id: demo
    name: Demo
    mode: chat
    site:
      title: Demo site
`), 0o600))

	ctx := context.Background()

	p, err := NewPersistence(ctx, testLogger(), PersistenceConfig{
		DatabaseURL: "file://" + filepath.Join(dir, "data"),
		SeedFile:    seedPath,
	})
	require.NoError(t, err)

	defer func() {
		assert.NoError(t, p.Close(ctx))
	}()

	app, err := p.TrialAppByID(ctx, "demo")
	require.NoError(t, err)
	assert.Equal(t, models.AppModeChat, app.Mode)
	assert.Equal(t, "Demo site", app.Site.Title)
}

func TestNewPersistence_BadSeed(t *testing.T) {
	_, err := NewPersistence(context.Background(), testLogger(), PersistenceConfig{
		DatabaseURL: t.TempDir(),
		SeedFile:    filepath.Join(t.TempDir(), "missing.yaml"),
	})
	assert.Error(t, err)
}

func TestNewPersistence_BadRedisURL(t *testing.T) {
	_, err := NewPersistence(context.Background(), testLogger(), PersistenceConfig{
		DatabaseURL: t.TempDir(),
		RedisURL:    "not-a-redis-url",
	})
	assert.Error(t, err)
}

func TestNewEventBus(t *testing.T) {
	bus, err := NewEventBus("gochannel", "test", nil, testLogger())
	require.NoError(t, err)
	assert.NotEmpty(t, bus.GenerateID())
	assert.NoError(t, bus.Close())

	_, err = NewEventBus("kafka", "test", nil, testLogger())
	assert.Error(t, err)

	_, err = NewEventBus("rabbitmq", "test", nil, testLogger())
	assert.Error(t, err)
}

func TestNewRegistry(t *testing.T) {
	reg, err := NewRegistry(testLogger())
	require.NoError(t, err)

	assert.Len(t, reg.List(), 3)
	assert.NoError(t, reg.HealthCheck())
}

func TestNewTracer_Disabled(t *testing.T) {
	tracer, shutdown, err := NewTracer(context.Background(), false, "test")
	require.NoError(t, err)

	_, span := tracer.Start(context.Background(), "noop")
	span.End()

	assert.NoError(t, shutdown(context.Background()))
}
