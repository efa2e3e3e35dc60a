package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpforge/mcpforge/internal/errs"
	"github.com/mcpforge/mcpforge/internal/model"
	"github.com/mcpforge/mcpforge/pkg/testhelpers"
	"github.com/mcpforge/mcpforge/pkg/types"
)

func newTestService(t *testing.T) *ServerService {
	t.Helper()
	db, err := testhelpers.CreateTestDB()
	require.NoError(t, err)
	return NewServerService(db)
}

func sampleConfig(name string) *types.ServerConfig {
	return &types.ServerConfig{
		Name:    name,
		Version: "1.0.0",
		Tools: []types.ToolDescriptor{
			{
				Name:        "user_list",
				Description: "List users",
				InputSchema: types.ToolInputSchema{Type: types.SchemaTypeObject},
			},
			{
				Name:        "user_show",
				Description: "Show a user",
				InputSchema: types.ToolInputSchema{
					Type:     types.SchemaTypeObject,
					Required: []string{"id"},
				},
				Metadata: map[string]any{"uri": "/users/{id}"},
			},
		},
	}
}

func TestCreateAndGet(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(&model.Server{Name: "srv", Version: "1.0.0", Status: types.ServerStatusInactive})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	fetched, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "srv", fetched.Name)

	byName, err := svc.GetByName("srv")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
}

func TestGetMissing(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(999)
	var notFound *errs.ServerNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, uint(999), notFound.ID)

	_, err = svc.GetByName("ghost")
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ghost", notFound.Name)
}

func TestListPagination(t *testing.T) {
	svc := newTestService(t)

	for _, name := range []string{"a", "b", "c"} {
		_, err := svc.Create(&model.Server{Name: name, Version: "1.0.0", Status: types.ServerStatusInactive})
		require.NoError(t, err)
	}

	servers, total, err := svc.List(1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, servers, 2)

	servers, _, err = svc.List(2, 2)
	require.NoError(t, err)
	assert.Len(t, servers, 1)

	t.Run("non-positive inputs fall back to defaults", func(t *testing.T) {
		servers, total, err := svc.List(0, -1)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, servers, 3)
	})
}

func TestUpdate(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(&model.Server{Name: "srv", Version: "1.0.0", Status: types.ServerStatusInactive})
	require.NoError(t, err)

	updated, err := svc.Update(created.ID, map[string]any{
		"version": "2.0.0",
		"status":  types.ServerStatusActive,
	})
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", updated.Version)
	assert.True(t, updated.IsActive())
}

func TestSetToolActive(t *testing.T) {
	svc := newTestService(t)

	server, err := svc.SyncFromConfig(sampleConfig("srv"))
	require.NoError(t, err)
	require.Len(t, server.Tools, 2)

	tool, err := svc.SetToolActive(server.ID, server.Tools[0].ID, false)
	require.NoError(t, err)
	assert.False(t, tool.IsActive)

	fetched, err := svc.Get(server.ID)
	require.NoError(t, err)
	assert.False(t, fetched.Tools[0].IsActive)
	assert.True(t, fetched.Tools[1].IsActive, "only the targeted tool flips")

	t.Run("unknown tool", func(t *testing.T) {
		_, err := svc.SetToolActive(server.ID, 999, false)
		var notFound *errs.ToolNotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("tool of another server is out of reach", func(t *testing.T) {
		other, err := svc.SyncFromConfig(sampleConfig("other"))
		require.NoError(t, err)

		_, err = svc.SetToolActive(server.ID, other.Tools[0].ID, false)
		var notFound *errs.ToolNotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)

	server, err := svc.SyncFromConfig(sampleConfig("srv"))
	require.NoError(t, err)
	require.Len(t, server.Tools, 2)

	require.NoError(t, svc.Delete(server.ID))

	_, err = svc.Get(server.ID)
	var notFound *errs.ServerNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestSyncFromConfig(t *testing.T) {
	svc := newTestService(t)

	server, err := svc.SyncFromConfig(sampleConfig("srv"))
	require.NoError(t, err)
	assert.Equal(t, "srv", server.Name)
	assert.Equal(t, types.ServerStatusInactive, server.Status)
	require.Len(t, server.Tools, 2)
	assert.True(t, server.Tools[0].IsActive)

	t.Run("re-sync replaces the tool rows", func(t *testing.T) {
		cfg := sampleConfig("srv")
		cfg.Version = "2.0.0"
		cfg.Tools = cfg.Tools[:1]

		server, err := svc.SyncFromConfig(cfg)
		require.NoError(t, err)
		assert.Equal(t, "2.0.0", server.Version)
		require.Len(t, server.Tools, 1)
		assert.Equal(t, "user_list", server.Tools[0].Name)
	})

	t.Run("status survives a re-sync", func(t *testing.T) {
		_, err := svc.Update(server.ID, map[string]any{"status": types.ServerStatusActive})
		require.NoError(t, err)

		synced, err := svc.SyncFromConfig(sampleConfig("srv"))
		require.NoError(t, err)
		assert.Equal(t, types.ServerStatusActive, synced.Status)
	})
}
