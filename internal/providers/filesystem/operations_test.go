package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCopyTool(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.write", map[string]interface{}{"path": "documents/a.txt", "content": "hello"})
	data := exec(t, p, "filesystem.copy", map[string]interface{}{
		"source": "documents/a.txt", "destination": "documents/b.txt",
	})
	assert.Equal(t, true, data["success"])

	read := exec(t, p, "filesystem.read", map[string]interface{}{"path": "documents/b.txt"})
	assert.Equal(t, "hello", read["content"])
}

func TestCopyToolReportsKind(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.write", map[string]interface{}{"path": "documents/a.txt", "content": "new"})
	exec(t, p, "filesystem.write", map[string]interface{}{"path": "documents/b.txt", "content": "old"})

	data := execFail(t, p, "filesystem.copy", map[string]interface{}{
		"source": "documents/a.txt", "destination": "documents/b.txt",
	})
	assert.Equal(t, string(KindAlreadyExists), data["kind"])

	data = execFail(t, p, "filesystem.copy", map[string]interface{}{
		"source": "documents/missing.txt", "destination": "documents/c.txt",
	})
	assert.Equal(t, string(KindNotFound), data["kind"])
}

func TestCopyToolOverwriteBackup(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.write", map[string]interface{}{"path": "documents/a.txt", "content": "new"})
	exec(t, p, "filesystem.write", map[string]interface{}{"path": "documents/b.txt", "content": "old"})

	data := exec(t, p, "filesystem.copy", map[string]interface{}{
		"source":      "documents/a.txt",
		"destination": "documents/b.txt",
		"overwrite":   true,
		"backup":      true,
	})
	assert.Contains(t, data["backup_path"], ".bak.")
}

func TestMoveTool(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.write", map[string]interface{}{"path": "documents/a.txt", "content": "hello"})
	exec(t, p, "filesystem.move", map[string]interface{}{
		"source": "documents/a.txt", "destination": "temp/moved.txt",
	})

	gone := exec(t, p, "filesystem.exists", map[string]interface{}{"path": "documents/a.txt"})
	assert.Equal(t, false, gone["exists"])

	read := exec(t, p, "filesystem.read", map[string]interface{}{"path": "temp/moved.txt"})
	assert.Equal(t, "hello", read["content"])
}

func TestDeleteTool(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.write", map[string]interface{}{"path": "documents/a.txt", "content": "x"})
	exec(t, p, "filesystem.delete", map[string]interface{}{"path": "documents/a.txt"})

	data := execFail(t, p, "filesystem.delete", map[string]interface{}{"path": "documents/a.txt"})
	assert.Equal(t, string(KindNotFound), data["kind"])
}

func TestMutationObserver(t *testing.T) {
	p := newTestProvider(t)

	type observed struct{ op, kind string }
	var seen []observed
	p.SetObserver(func(op, kind string) {
		seen = append(seen, observed{op, kind})
	})

	exec(t, p, "filesystem.write", map[string]interface{}{"path": "documents/a.txt", "content": "x"})
	exec(t, p, "filesystem.delete", map[string]interface{}{"path": "documents/a.txt"})
	execFail(t, p, "filesystem.delete", map[string]interface{}{"path": "documents/a.txt"})

	assert.Equal(t, []observed{
		{"delete", ""},
		{"delete", "not_found"},
	}, seen)
}

func TestRenameTool(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.write", map[string]interface{}{"path": "documents/old.txt", "content": "x"})
	exec(t, p, "filesystem.rename", map[string]interface{}{
		"path": "documents/old.txt", "new_name": "new.txt",
	})

	data := exec(t, p, "filesystem.exists", map[string]interface{}{"path": "documents/new.txt"})
	assert.Equal(t, true, data["exists"])

	execFail(t, p, "filesystem.rename", map[string]interface{}{
		"path": "documents/new.txt", "new_name": "../escape.txt",
	})
}
