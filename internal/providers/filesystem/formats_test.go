package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONReadWrite(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.json.write", map[string]interface{}{
		"path": "cache/config.json",
		"data": map[string]interface{}{"name": "bridge", "port": 8090},
	})

	data := exec(t, p, "filesystem.json.read", map[string]interface{}{"path": "cache/config.json"})
	parsed := data["data"].(map[string]interface{})
	assert.Equal(t, "bridge", parsed["name"])
	assert.Equal(t, float64(8090), parsed["port"])
}

func TestYAMLReadWrite(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.yaml.write", map[string]interface{}{
		"path": "cache/config.yaml",
		"data": map[string]interface{}{"enabled": true, "level": "info"},
	})

	data := exec(t, p, "filesystem.yaml.read", map[string]interface{}{"path": "cache/config.yaml"})
	parsed := data["data"].(map[string]interface{})
	assert.Equal(t, true, parsed["enabled"])
	assert.Equal(t, "info", parsed["level"])
}

func TestTOMLReadWrite(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.toml.write", map[string]interface{}{
		"path": "cache/config.toml",
		"data": map[string]interface{}{"title": "bridge"},
	})

	data := exec(t, p, "filesystem.toml.read", map[string]interface{}{"path": "cache/config.toml"})
	parsed := data["data"].(map[string]interface{})
	assert.Equal(t, "bridge", parsed["title"])
}

func TestInvalidJSONFails(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.write", map[string]interface{}{"path": "cache/bad.json", "content": "{broken"})
	execFail(t, p, "filesystem.json.read", map[string]interface{}{"path": "cache/bad.json"})
}

func TestCSVReadWrite(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.csv.write", map[string]interface{}{
		"path": "cache/table.csv",
		"records": []interface{}{
			[]interface{}{"name", "count"},
			[]interface{}{"alpha", 1},
			[]interface{}{"beta", 2},
		},
	})

	data := exec(t, p, "filesystem.csv.read", map[string]interface{}{"path": "cache/table.csv"})
	assert.Equal(t, 3, data["count"])

	// Header-aware read returns keyed rows.
	data = exec(t, p, "filesystem.csv.read", map[string]interface{}{
		"path": "cache/table.csv", "header": true,
	})
	require.Equal(t, 2, data["count"])
	rows := data["rows"].([]interface{})
	first := rows[0].(map[string]interface{})
	assert.Equal(t, "alpha", first["name"])
	assert.Equal(t, "1", first["count"])
}
