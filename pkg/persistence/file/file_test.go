package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dukex/trialkit/pkg/models"
	"github.com/dukex/trialkit/pkg/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoApp(id string) *models.TrialApp {
	return &models.TrialApp{
		ID:   id,
		Name: "Demo " + id,
		Mode: models.AppModeChat,
		Site: models.SiteInfo{Title: "Demo", IconType: models.IconTypeEmoji, Icon: "🤖"},
	}
}

func pluginWorkflow(id, pluginID, eventName string, enabled bool) *models.Workflow {
	return &models.Workflow{
		ID:    id,
		AppID: "app-" + id,
		Name:  "Workflow " + id,
		Nodes: []*models.WorkflowNode{
			{
				ID:      id + "-trigger",
				Type:    models.BlockTriggerPlugin,
				Enabled: enabled,
				Data: map[string]any{
					"plugin_id":  pluginID,
					"event_name": eventName,
					"config":     map[string]any{"repo": "trialkit"},
				},
			},
			{ID: id + "-answer", Type: models.BlockAnswer, Enabled: true},
		},
	}
}

func TestNewPersistence(t *testing.T) {
	p := NewPersistence("/tmp/test")
	assert.Equal(t, "/tmp/test", p.root)

	p = NewPersistence("file:///tmp/test")
	assert.Equal(t, "/tmp/test", p.root)
}

func TestPersistence_Close(t *testing.T) {
	assert.NoError(t, NewPersistence("./test-data").Close(t.Context()))
}

func TestPersistence_HealthCheck(t *testing.T) {
	assert.NoError(t, NewPersistence(t.TempDir()).HealthCheck(t.Context()))
	assert.ErrorIs(t, NewPersistence(filepath.Join(t.TempDir(), "missing")).HealthCheck(t.Context()), os.ErrNotExist)
}

func TestPersistence_TrialAppRoundTrip(t *testing.T) {
	testDir := t.TempDir()
	p := NewPersistence(testDir)

	app := demoApp("app-1")
	require.NoError(t, p.SaveTrialApp(t.Context(), app))

	assert.FileExists(t, filepath.Join(testDir, "trial_apps", "app-1.json"))
	assert.False(t, app.CreatedAt.IsZero())
	assert.False(t, app.UpdatedAt.IsZero())

	loaded, err := p.TrialAppByID(t.Context(), "app-1")
	require.NoError(t, err)
	assert.Equal(t, app.Name, loaded.Name)
	assert.Equal(t, app.Mode, loaded.Mode)
	assert.Equal(t, app.Site, loaded.Site)
	assert.True(t, app.CreatedAt.Equal(loaded.CreatedAt))
}

func TestPersistence_SaveTrialAppKeepsCreatedAt(t *testing.T) {
	p := NewPersistence(t.TempDir())

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	app := demoApp("app-1")
	app.CreatedAt = created

	require.NoError(t, p.SaveTrialApp(t.Context(), app))

	assert.Equal(t, created, app.CreatedAt)
	assert.True(t, app.UpdatedAt.After(created))
}

func TestPersistence_TrialAppNotFound(t *testing.T) {
	p := NewPersistence(t.TempDir())

	_, err := p.TrialAppByID(t.Context(), "missing")
	assert.ErrorIs(t, err, persistence.ErrTrialAppNotFound)

	err = p.DeleteTrialApp(t.Context(), "missing")
	assert.True(t, persistence.IsTrialAppNotFound(err))
}

func TestPersistence_TrialAppsOrderedAndDeleted(t *testing.T) {
	p := NewPersistence(t.TempDir())

	apps, err := p.TrialApps(t.Context())
	require.NoError(t, err)
	assert.Empty(t, apps)

	for i, id := range []string{"b", "a", "c"} {
		app := demoApp(id)
		app.CreatedAt = time.Date(2024, 1, i+1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, p.SaveTrialApp(t.Context(), app))
	}

	apps, err = p.TrialApps(t.Context())
	require.NoError(t, err)
	require.Len(t, apps, 3)
	assert.Equal(t, "b", apps[0].ID)
	assert.Equal(t, "a", apps[1].ID)
	assert.Equal(t, "c", apps[2].ID)

	require.NoError(t, p.DeleteTrialApp(t.Context(), "a"))

	apps, err = p.TrialApps(t.Context())
	require.NoError(t, err)
	assert.Len(t, apps, 2)
}

func TestPersistence_WorkflowRoundTrip(t *testing.T) {
	testDir := t.TempDir()
	p := NewPersistence(testDir)

	workflow := pluginWorkflow("wf-1", "github", "issue_opened", true)
	require.NoError(t, p.SaveWorkflow(t.Context(), workflow))
	assert.FileExists(t, filepath.Join(testDir, "workflows", "wf-1.json"))

	loaded, err := p.WorkflowByID(t.Context(), "wf-1")
	require.NoError(t, err)
	require.Len(t, loaded.Nodes, 2)
	assert.Equal(t, models.BlockTriggerPlugin, loaded.Nodes[0].Type)
	assert.Equal(t, "github", loaded.Nodes[0].Data["plugin_id"])

	require.NoError(t, p.DeleteWorkflow(t.Context(), "wf-1"))

	_, err = p.WorkflowByID(t.Context(), "wf-1")
	assert.True(t, persistence.IsWorkflowNotFound(err))
	assert.ErrorIs(t, p.DeleteWorkflow(t.Context(), "wf-1"), persistence.ErrWorkflowNotFound)
}

func TestPersistence_IgnoresForeignFiles(t *testing.T) {
	testDir := t.TempDir()
	p := NewPersistence(testDir)

	require.NoError(t, p.SaveWorkflow(t.Context(), pluginWorkflow("wf-1", "p", "e", true)))
	require.NoError(t, os.WriteFile(filepath.Join(testDir, "workflows", "README.md"), []byte("notes"), 0600))

	workflows, err := p.Workflows(t.Context())
	require.NoError(t, err)
	assert.Len(t, workflows, 1)
}

func TestPersistence_FindPluginTriggerNodes(t *testing.T) {
	p := NewPersistence(t.TempDir())

	require.NoError(t, p.SaveWorkflow(t.Context(), pluginWorkflow("wf-1", "github", "issue_opened", true)))
	require.NoError(t, p.SaveWorkflow(t.Context(), pluginWorkflow("wf-2", "github", "issue_closed", true)))
	require.NoError(t, p.SaveWorkflow(t.Context(), pluginWorkflow("wf-3", "github", "issue_opened", false)))
	require.NoError(t, p.SaveWorkflow(t.Context(), pluginWorkflow("wf-4", "slack", "issue_opened", true)))

	matches, err := p.FindPluginTriggerNodes(t.Context(), "github", "issue_opened")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "wf-1", matches[0].WorkflowID)
	assert.Equal(t, "app-wf-1", matches[0].AppID)
	assert.Equal(t, "wf-1-trigger", matches[0].Node.ID)

	matches, err = p.FindPluginTriggerNodes(t.Context(), "unknown", "event")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestPersistence_ConcurrentSaves(t *testing.T) {
	p := NewPersistence(t.TempDir())

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			app := demoApp("app")
			app.Name = "Demo " + string(rune('a'+i))
			assert.NoError(t, p.SaveTrialApp(t.Context(), app))
		}()
	}

	wg.Wait()

	apps, err := p.TrialApps(t.Context())
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestPersistence_RejectsPathLikeIDs(t *testing.T) {
	testDir := t.TempDir()
	p := NewPersistence(testDir)

	require.NoError(t, p.SaveTrialApp(t.Context(), demoApp("shared")))

	for _, id := range []string{"tenant-a/shared", "../shared", "../../etc/shared", "./shared", ".", ""} {
		err := p.SaveTrialApp(t.Context(), demoApp(id))
		assert.ErrorIs(t, err, persistence.ErrInvalidID, "save %q", id)

		_, err = p.TrialAppByID(t.Context(), id)
		assert.ErrorIs(t, err, persistence.ErrTrialAppNotFound, "get %q", id)

		assert.ErrorIs(t, p.DeleteTrialApp(t.Context(), id), persistence.ErrTrialAppNotFound, "delete %q", id)

		err = p.SaveWorkflow(t.Context(), pluginWorkflow(id, "p", "e", true))
		assert.ErrorIs(t, err, persistence.ErrInvalidID, "save workflow %q", id)
	}

	app, err := p.TrialAppByID(t.Context(), "shared")
	require.NoError(t, err)
	assert.Equal(t, "Demo shared", app.Name)

	entries, err := os.ReadDir(testDir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.Contains(t, []string{"trial_apps", "workflows"}, entry.Name())
	}
}
