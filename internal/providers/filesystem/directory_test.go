package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirListAndHidden(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.write", map[string]interface{}{"path": "documents/a.txt", "content": "x"})
	exec(t, p, "filesystem.write", map[string]interface{}{"path": "documents/.hidden", "content": "x"})

	data := exec(t, p, "filesystem.dir.list", map[string]interface{}{"path": "documents"})
	assert.Equal(t, 1, data["count"])

	data = exec(t, p, "filesystem.dir.list", map[string]interface{}{
		"path": "documents", "include_hidden": true,
	})
	assert.Equal(t, 2, data["count"])
}

func TestDirCreateAndExists(t *testing.T) {
	p := newTestProvider(t)

	data := exec(t, p, "filesystem.dir.exists", map[string]interface{}{"path": "documents/projects"})
	assert.Equal(t, false, data["exists"])

	exec(t, p, "filesystem.dir.create", map[string]interface{}{"path": "documents/projects/alpha"})

	data = exec(t, p, "filesystem.dir.exists", map[string]interface{}{"path": "documents/projects"})
	assert.Equal(t, true, data["exists"])
}

func TestDirWalk(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.write", map[string]interface{}{
		"path": "documents/x/one.txt", "content": "1", "make_parents": true,
	})
	exec(t, p, "filesystem.write", map[string]interface{}{
		"path": "documents/x/y/two.txt", "content": "2", "make_parents": true,
	})

	data := exec(t, p, "filesystem.dir.walk", map[string]interface{}{"path": "documents"})
	assert.Equal(t, 2, data["count"])
	assert.Equal(t, false, data["truncated"])
}

func TestDirScanClassifies(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.write", map[string]interface{}{"path": "media/photo.jpg", "content": "x"})
	exec(t, p, "filesystem.write", map[string]interface{}{"path": "media/song.mp3", "content": "x"})
	exec(t, p, "filesystem.write", map[string]interface{}{"path": "media/readme.txt", "content": "x"})

	data := exec(t, p, "filesystem.dir.scan", map[string]interface{}{"path": "media"})
	counts := data["counts"].(map[string]interface{})
	assert.Equal(t, 1, counts[KindImage])
	assert.Equal(t, 1, counts[KindAudio])
	assert.Equal(t, 1, counts[KindText])

	// Kind filter narrows the entries but not the counts.
	data = exec(t, p, "filesystem.dir.scan", map[string]interface{}{"path": "media", "kind": KindImage})
	entries := data["entries"].([]interface{})
	require.Len(t, entries, 1)
}

func TestDirTree(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.write", map[string]interface{}{
		"path": "documents/a/b/deep.txt", "content": "x", "make_parents": true,
	})

	data := exec(t, p, "filesystem.dir.tree", map[string]interface{}{"path": "documents", "max_depth": 1})
	tree := data["tree"].(map[string]interface{})
	assert.Equal(t, "documents", tree["name"])
	assert.Equal(t, true, tree["is_dir"])

	children := tree["children"].([]interface{})
	require.Len(t, children, 1)
	child := children[0].(map[string]interface{})
	assert.Equal(t, "a", child["name"])
	assert.Equal(t, true, child["truncated"])
}
