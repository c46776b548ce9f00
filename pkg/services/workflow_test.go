package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/dukex/trialkit/pkg/i18n"
	"github.com/dukex/trialkit/pkg/mocks"
	"github.com/dukex/trialkit/pkg/models"
	"github.com/dukex/trialkit/pkg/nodes"
	"github.com/dukex/trialkit/pkg/persistence"
	"github.com/dukex/trialkit/pkg/persistence/file"
	"github.com/dukex/trialkit/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	r := registry.NewRegistry(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
	require.NoError(t, r.RegisterDefaultNodes())

	return r
}

func setupWorkflowService(t *testing.T) (*Workflow, *models.Workflow) {
	t.Helper()

	store := file.NewPersistence(t.TempDir())
	require.NoError(t, store.SaveTrialApp(context.Background(), &models.TrialApp{
		ID:   "app-1",
		Name: "Demo",
		Mode: models.AppModeWorkflow,
		Site: models.SiteInfo{Title: "Demo"},
	}))

	service := NewWorkflow(store, newTestRegistry(t))

	workflow, err := service.Create(context.Background(), &CreateWorkflowRequest{AppID: "app-1", Name: "Triage"})
	require.NoError(t, err)

	return service, workflow
}

func TestWorkflow_CreateRequiresApp(t *testing.T) {
	service := NewWorkflow(file.NewPersistence(t.TempDir()), newTestRegistry(t))

	_, err := service.Create(context.Background(), &CreateWorkflowRequest{AppID: "missing", Name: "x"})
	assert.True(t, IsNotFoundError(err))

	_, err = service.Create(context.Background(), &CreateWorkflowRequest{AppID: "app"})
	assert.True(t, IsValidationError(err))
}

func TestWorkflow_AddPluginNodeUsesDefault(t *testing.T) {
	service, workflow := setupWorkflowService(t)
	ctx := context.Background()

	node, err := service.AddNode(ctx, workflow.ID, &AddNodeRequest{
		Type: models.BlockTriggerPlugin,
		Data: map[string]any{"plugin_id": "github", "event_name": "issue_opened"},
	}, i18n.New(i18n.LocaleEN))
	require.NoError(t, err)

	assert.NotEmpty(t, node.ID)
	assert.True(t, node.Enabled)
	assert.Equal(t, "github", node.Data["plugin_id"])
	assert.Equal(t, map[string]any{}, node.Data["config"])

	other, err := service.AddNode(ctx, workflow.ID, &AddNodeRequest{Type: models.BlockTriggerPlugin}, nil)
	require.NoError(t, err)
	assert.Equal(t, "", other.Data["plugin_id"])

	stored, err := service.FetchByID(ctx, workflow.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Nodes, 2)
}

func TestWorkflow_AddNodeInvalidConfig(t *testing.T) {
	service, workflow := setupWorkflowService(t)

	_, err := service.AddNode(context.Background(), workflow.ID, &AddNodeRequest{
		Type: models.BlockTriggerSchedule,
		Data: map[string]any{"mode": "cron", "cron_expression": ""},
	}, i18n.New(i18n.LocaleZH))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidNodeConfig)
	assert.True(t, IsValidationError(err))
	assert.Equal(t, "Cron 表达式不能为空", ErrorMessage(err))

	stored, err := service.FetchByID(context.Background(), workflow.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Nodes)
}

func TestWorkflow_AddNodeUnknownType(t *testing.T) {
	service, workflow := setupWorkflowService(t)

	_, err := service.AddNode(context.Background(), workflow.ID, &AddNodeRequest{Type: models.BlockLLM}, nil)
	assert.ErrorIs(t, err, ErrUnknownNodeType)
}

func TestWorkflow_AddNodeSingleton(t *testing.T) {
	r := newTestRegistry(t)
	require.NoError(t, r.Register(nodes.NewDefault(
		models.MetaSpec{Type: models.BlockStart, IsSingleton: true, IsUndeletable: true, Title: "Start"},
		map[string]any{},
		models.CloneData,
		func(map[string]any, i18n.Translator) models.ValidationResult { return models.Valid() },
	)))

	store := file.NewPersistence(t.TempDir())
	require.NoError(t, store.SaveWorkflow(context.Background(), &models.Workflow{ID: "wf", AppID: "app", Name: "wf"}))

	service := NewWorkflow(store, r)

	node, err := service.AddNode(context.Background(), "wf", &AddNodeRequest{Type: models.BlockStart}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Start", node.Title)

	_, err = service.AddNode(context.Background(), "wf", &AddNodeRequest{Type: models.BlockStart}, nil)
	assert.ErrorIs(t, err, ErrSingletonNodeTaken)
	assert.True(t, IsConflictError(err))

	err = service.DeleteNode(context.Background(), "wf", node.ID)
	assert.ErrorIs(t, err, ErrNodeUndeletable)
}

func TestWorkflow_UpdateNode(t *testing.T) {
	service, workflow := setupWorkflowService(t)
	ctx := context.Background()

	node, err := service.AddNode(ctx, workflow.ID, &AddNodeRequest{Type: models.BlockTriggerWebhook}, nil)
	require.NoError(t, err)

	disabled := false
	title := "Incoming webhook"

	updated, err := service.UpdateNode(ctx, workflow.ID, node.ID, &UpdateNodeRequest{
		Title:   &title,
		Enabled: &disabled,
		Data:    map[string]any{"method": "PUT"},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, title, updated.Title)
	assert.False(t, updated.Enabled)
	assert.Equal(t, "PUT", updated.Data["method"])
	assert.Equal(t, "application/json", updated.Data["content_type"])

	_, err = service.UpdateNode(ctx, workflow.ID, node.ID, &UpdateNodeRequest{
		Data: map[string]any{"status_code": 500},
	}, i18n.New(i18n.LocaleEN))
	assert.ErrorIs(t, err, ErrInvalidNodeConfig)
	assert.Equal(t, "Status code must be between 200 and 399", ErrorMessage(err))

	stored, err := service.FetchByID(ctx, workflow.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 200, stored.Nodes[0].Data["status_code"])

	_, err = service.UpdateNode(ctx, workflow.ID, "missing", &UpdateNodeRequest{}, nil)
	assert.ErrorIs(t, err, persistence.ErrNodeNotFound)
}

func TestWorkflow_DeleteNode(t *testing.T) {
	service, workflow := setupWorkflowService(t)
	ctx := context.Background()

	node, err := service.AddNode(ctx, workflow.ID, &AddNodeRequest{Type: models.BlockTriggerPlugin}, nil)
	require.NoError(t, err)

	require.NoError(t, service.DeleteNode(ctx, workflow.ID, node.ID))
	assert.True(t, IsNotFoundError(service.DeleteNode(ctx, workflow.ID, node.ID)))

	stored, err := service.FetchByID(ctx, workflow.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Nodes)
}

func TestWorkflow_HealthCheck(t *testing.T) {
	mockPersistence := &mocks.MockPersistence{}
	mockPersistence.On("HealthCheck", mock.Anything).Return(nil)

	message, ok := NewWorkflow(mockPersistence, newTestRegistry(t)).HealthCheck(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "Persistence layer is healthy", message)

	_, ok = NewWorkflow(nil, newTestRegistry(t)).HealthCheck(context.Background())
	assert.False(t, ok)
}
