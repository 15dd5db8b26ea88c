package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seedSearchFiles(t *testing.T, p *Provider) {
	t.Helper()
	exec(t, p, "filesystem.write", map[string]interface{}{
		"path": "documents/report.txt", "content": "quarterly results\nrevenue up\n", "make_parents": true,
	})
	exec(t, p, "filesystem.write", map[string]interface{}{
		"path": "documents/notes/draft.md", "content": "draft revenue notes\n", "make_parents": true,
	})
	exec(t, p, "filesystem.write", map[string]interface{}{
		"path": "cache/data.json", "content": "{\"revenue\": 1}", "make_parents": true,
	})
}

func TestFindByName(t *testing.T) {
	p := newTestProvider(t)
	seedSearchFiles(t, p)

	data := exec(t, p, "filesystem.find", map[string]interface{}{"path": ".", "term": "REPORT"})
	assert.Equal(t, 1, data["count"])
	assert.Equal(t, []string{"documents/report.txt"}, data["matches"])
}

func TestGlob(t *testing.T) {
	p := newTestProvider(t)
	seedSearchFiles(t, p)

	data := exec(t, p, "filesystem.glob", map[string]interface{}{"path": ".", "pattern": "documents/**/*.md"})
	assert.Equal(t, []string{"documents/notes/draft.md"}, data["matches"])
}

func TestSearchContent(t *testing.T) {
	p := newTestProvider(t)
	seedSearchFiles(t, p)

	data := exec(t, p, "filesystem.search_content", map[string]interface{}{
		"path": ".", "term": "revenue",
	})
	assert.Equal(t, 3, data["count"])

	matches := data["matches"].([]interface{})
	for _, raw := range matches {
		m := raw.(searchMatch)
		assert.Greater(t, m.Line, 0)
		assert.Contains(t, m.Context, "revenue")
	}
}

func TestSearchContentExtensionFilter(t *testing.T) {
	p := newTestProvider(t)
	seedSearchFiles(t, p)

	data := exec(t, p, "filesystem.search_content", map[string]interface{}{
		"path": ".", "term": "revenue",
		"extensions": []interface{}{"md"},
	})
	assert.Equal(t, 1, data["count"])
}

func TestSearchContentMaxResults(t *testing.T) {
	p := newTestProvider(t)
	seedSearchFiles(t, p)

	data := exec(t, p, "filesystem.search_content", map[string]interface{}{
		"path": ".", "term": "revenue", "max_results": 1,
	})
	assert.Equal(t, 1, data["count"])
}

func TestRecentFiles(t *testing.T) {
	p := newTestProvider(t)
	seedSearchFiles(t, p)

	data := exec(t, p, "filesystem.recent_files", map[string]interface{}{"path": ".", "hours": 1})
	assert.Equal(t, 3, data["count"])
}
