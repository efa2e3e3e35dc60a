package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpforge/mcpforge/internal/errs"
	"github.com/mcpforge/mcpforge/internal/service/server"
	"github.com/mcpforge/mcpforge/pkg/testhelpers"
	"github.com/mcpforge/mcpforge/pkg/types"
)

func newTestServer(t *testing.T, accessToken string) (*Server, *server.ServerService) {
	t.Helper()
	db, err := testhelpers.CreateTestDB()
	require.NoError(t, err)

	svc := server.NewServerService(db)
	s, err := NewServer(&ServerOptions{
		Port:          "0",
		AccessToken:   accessToken,
		ServerService: svc,
	})
	require.NoError(t, err)
	return s, svc
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealthAndMetadata(t *testing.T) {
	s, _ := newTestServer(t, "")

	w := doJSON(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/metadata", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var m types.ServerMetadata
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	assert.NotEmpty(t, m.Version)
}

func TestServerCRUD(t *testing.T) {
	s, _ := newTestServer(t, "")

	w := doJSON(t, s, http.MethodPost, "/api/v0/servers", types.CreateServerInput{
		Name:        "blog-server",
		Description: "Blog tools",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID      uint   `json:"ID"`
		Name    string `json:"name"`
		Version string `json:"version"`
		Status  string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "blog-server", created.Name)
	assert.Equal(t, "1.0.0", created.Version, "version defaults to 1.0.0")
	assert.Equal(t, "inactive", created.Status, "status defaults to inactive")

	t.Run("get", func(t *testing.T) {
		w := doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/v0/servers/%d", created.ID), nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("update", func(t *testing.T) {
		w := doJSON(t, s, http.MethodPut, fmt.Sprintf("/api/v0/servers/%d", created.ID),
			types.CreateServerInput{Status: "active"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"active"`)
	})

	t.Run("list", func(t *testing.T) {
		w := doJSON(t, s, http.MethodGet, "/api/v0/servers", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total":1`)
	})

	t.Run("delete", func(t *testing.T) {
		w := doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/v0/servers/%d", created.ID), nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/v0/servers/%d", created.ID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestToggleTool(t *testing.T) {
	s, svc := newTestServer(t, "")

	synced, err := svc.SyncFromConfig(&types.ServerConfig{
		Name:    "blog-server",
		Version: "1.0.0",
		Tools: []types.ToolDescriptor{
			{Name: "post_list", InputSchema: types.ToolInputSchema{Type: types.SchemaTypeObject}},
		},
	})
	require.NoError(t, err)
	require.Len(t, synced.Tools, 1)

	path := fmt.Sprintf("/api/v0/servers/%d/tools/%d", synced.ID, synced.Tools[0].ID)
	w := doJSON(t, s, http.MethodPut, path, map[string]any{"is_active": false})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_active":false`)

	t.Run("unknown tool yields the not-found envelope", func(t *testing.T) {
		w := doJSON(t, s, http.MethodPut,
			fmt.Sprintf("/api/v0/servers/%d/tools/999", synced.ID),
			map[string]any{"is_active": true})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// Not-found responses carry the full error envelope: message, stable code,
// category and remediation suggestions.
func TestErrorEnvelope(t *testing.T) {
	s, _ := newTestServer(t, "")

	w := doJSON(t, s, http.MethodGet, "/api/v0/servers/999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, errs.CodeNotFound, envelope.Code)
	assert.Equal(t, errs.CategoryNotFound, envelope.Category)
	assert.NotEmpty(t, envelope.Suggestions)
}

func TestValidateEndpoint(t *testing.T) {
	s, _ := newTestServer(t, "")

	w := doJSON(t, s, http.MethodPost, "/api/v0/validate", map[string]any{
		"name":    "",
		"version": "1.0",
		"tools":   "not-an-array",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result types.ValidationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Valid)
	assert.GreaterOrEqual(t, len(result.Errors), 3)
}

func TestAccessTokenMiddleware(t *testing.T) {
	s, _ := newTestServer(t, "sekrit")

	t.Run("missing token rejected", func(t *testing.T) {
		w := doJSON(t, s, http.MethodGet, "/api/v0/servers", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v0/servers", nil)
		req.Header.Set("Authorization", "Bearer sekrit")
		w := httptest.NewRecorder()
		s.Router().ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("health stays open", func(t *testing.T) {
		w := doJSON(t, s, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
