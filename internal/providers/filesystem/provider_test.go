package filesystem

import (
	"context"
	"testing"

	"github.com/GriffinCanCode/FileBridge/internal/shared/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	ws, err := paths.New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, ws.Ensure())
	return NewProvider(ws, BackupPolicy{}, nil)
}

func exec(t *testing.T, p *Provider, toolID string, params map[string]interface{}) map[string]interface{} {
	t.Helper()
	result, err := p.Execute(context.Background(), toolID, params, nil)
	require.NoError(t, err)
	require.True(t, result.Success, "tool %s failed: %v", toolID, result.Error)
	return result.Data
}

func execFail(t *testing.T, p *Provider, toolID string, params map[string]interface{}) map[string]interface{} {
	t.Helper()
	result, err := p.Execute(context.Background(), toolID, params, nil)
	require.NoError(t, err)
	require.False(t, result.Success, "tool %s unexpectedly succeeded", toolID)
	return result.Data
}

func TestUnknownTool(t *testing.T) {
	p := newTestProvider(t)
	result, err := p.Execute(context.Background(), "filesystem.nope", nil, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestDefinitionCoversHandlers(t *testing.T) {
	p := newTestProvider(t)
	def := p.Definition()

	assert.Equal(t, "filesystem", def.ID)
	require.NotEmpty(t, def.Tools)

	// Every advertised tool must be executable.
	for _, tool := range def.Tools {
		_, ok := p.handlers[tool.ID]
		assert.True(t, ok, "tool %s has no handler", tool.ID)
	}
	assert.Equal(t, len(def.Tools), len(p.handlers))
}

func TestPathEscapeRejected(t *testing.T) {
	p := newTestProvider(t)
	execFail(t, p, "filesystem.read", map[string]interface{}{"path": "../../etc/passwd"})
	execFail(t, p, "filesystem.write", map[string]interface{}{"path": "/etc/cron.d/evil", "content": "x"})
	execFail(t, p, "filesystem.delete", map[string]interface{}{"path": "../outside"})
}
