package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GriffinCanCode/FileBridge/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Workspace.Root = t.TempDir()
	cfg.RateLimit.Enabled = false

	srv, err := New(cfg, nil)
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 && json.Valid(w.Body.Bytes()) {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestRootAndHealth(t *testing.T) {
	srv := newTestServer(t)

	w, body := doJSON(t, srv, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "online", body["status"])

	w, body = doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", body["status"])
}

func TestListServices(t *testing.T) {
	srv := newTestServer(t)

	w, body := doJSON(t, srv, http.MethodGet, "/services", nil)
	require.Equal(t, http.StatusOK, w.Code)

	services := body["services"].([]interface{})
	assert.Len(t, services, 3)

	w, body = doJSON(t, srv, http.MethodGet, "/services?category=system", nil)
	require.Equal(t, http.StatusOK, w.Code)
	services = body["services"].([]interface{})
	assert.Len(t, services, 1)

	w, _ = doJSON(t, srv, http.MethodGet, "/services?category=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDiscoverServices(t *testing.T) {
	srv := newTestServer(t)

	w, body := doJSON(t, srv, http.MethodPost, "/services/discover", map[string]interface{}{
		"intent": "copy a file into another directory",
	})
	require.Equal(t, http.StatusOK, w.Code)

	services := body["services"].([]interface{})
	require.NotEmpty(t, services)
	first := services[0].(map[string]interface{})
	assert.Equal(t, "filesystem", first["id"])
}

func TestExecuteRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	w, body := doJSON(t, srv, http.MethodPost, "/services/execute", map[string]interface{}{
		"tool_id": "filesystem.write",
		"params": map[string]interface{}{
			"path":    "documents/hello.txt",
			"content": "hi there",
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, body["request_id"])

	result := body["result"].(map[string]interface{})
	require.Equal(t, true, result["success"])

	w, body = doJSON(t, srv, http.MethodPost, "/services/execute", map[string]interface{}{
		"tool_id": "filesystem.read",
		"params":  map[string]interface{}{"path": "documents/hello.txt"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	result = body["result"].(map[string]interface{})
	data := result["data"].(map[string]interface{})
	assert.Equal(t, "hi there", data["content"])
}

func TestExecuteFailureKeepsOutcome(t *testing.T) {
	srv := newTestServer(t)

	w, body := doJSON(t, srv, http.MethodPost, "/services/execute", map[string]interface{}{
		"tool_id": "filesystem.delete",
		"params":  map[string]interface{}{"path": "documents/missing.txt"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	result := body["result"].(map[string]interface{})
	assert.Equal(t, false, result["success"])
	data := result["data"].(map[string]interface{})
	assert.Equal(t, "not_found", data["kind"])
}

func TestExecuteValidation(t *testing.T) {
	srv := newTestServer(t)

	// Missing params entirely.
	w, _ := doJSON(t, srv, http.MethodPost, "/services/execute", map[string]interface{}{
		"tool_id": "filesystem.read",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed tool ID.
	w, _ = doJSON(t, srv, http.MethodPost, "/services/execute", map[string]interface{}{
		"tool_id": "nodots",
		"params":  map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown service.
	w, _ = doJSON(t, srv, http.MethodPost, "/services/execute", map[string]interface{}{
		"tool_id": "nosuch.tool",
		"params":  map[string]interface{}{},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, srv, http.MethodGet, "/health", nil)
	doJSON(t, srv, http.MethodPost, "/services/execute", map[string]interface{}{
		"tool_id": "filesystem.delete",
		"params":  map[string]interface{}{"path": "documents/missing.txt"},
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "filebridge_http_requests_total")
	assert.Contains(t, w.Body.String(), `filebridge_mutations_total{kind="not_found",operation="delete"}`)
}
