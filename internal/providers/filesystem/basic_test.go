package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndRead(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.write", map[string]interface{}{
		"path":    "documents/note.txt",
		"content": "line one\nline two\nline three\n",
	})

	data := exec(t, p, "filesystem.read", map[string]interface{}{"path": "documents/note.txt"})
	assert.Equal(t, "line one\nline two\nline three\n", data["content"])
	assert.Equal(t, 3, data["line_count"])
	assert.Equal(t, false, data["truncated"])
}

func TestReadTruncation(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.write", map[string]interface{}{
		"path":    "documents/long.txt",
		"content": "a\nb\nc\nd\ne\n",
	})

	data := exec(t, p, "filesystem.read", map[string]interface{}{
		"path":      "documents/long.txt",
		"max_lines": 2,
	})
	assert.Equal(t, "a\nb", data["content"])
	assert.Equal(t, true, data["truncated"])
	assert.Equal(t, 5, data["line_count"])
}

func TestWriteAppendMode(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.write", map[string]interface{}{"path": "documents/log.txt", "content": "first\n"})
	exec(t, p, "filesystem.write", map[string]interface{}{
		"path": "documents/log.txt", "content": "second\n", "append": true,
	})

	data := exec(t, p, "filesystem.read", map[string]interface{}{"path": "documents/log.txt"})
	assert.Equal(t, "first\nsecond\n", data["content"])
}

func TestWriteMakeParents(t *testing.T) {
	p := newTestProvider(t)

	execFail(t, p, "filesystem.write", map[string]interface{}{
		"path": "documents/deep/nested/a.txt", "content": "x",
	})
	exec(t, p, "filesystem.write", map[string]interface{}{
		"path": "documents/deep/nested/a.txt", "content": "x", "make_parents": true,
	})
}

func TestReadRejectsBinary(t *testing.T) {
	p := newTestProvider(t)

	path := filepath.Join(p.ops.Workspace.DocumentsDir(), "blob.bin")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x01}, 0o644))

	execFail(t, p, "filesystem.read", map[string]interface{}{"path": "documents/blob.bin"})
}

func TestReadLinesRejectsBinary(t *testing.T) {
	p := newTestProvider(t)

	path := filepath.Join(p.ops.Workspace.DocumentsDir(), "blob.bin")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x01}, 0o644))

	result, err := p.Execute(context.Background(), "filesystem.read_lines",
		map[string]interface{}{"path": "documents/blob.bin"}, nil)
	require.NoError(t, err)
	require.False(t, result.Success)
	// The failure names the detected charset and points at read_binary.
	assert.Contains(t, *result.Error, "not valid UTF-8")
	assert.Contains(t, *result.Error, "filesystem.read_binary")
}

func TestReadLinesRange(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.write", map[string]interface{}{
		"path": "documents/lines.txt", "content": "1\n2\n3\n4\n5\n",
	})

	data := exec(t, p, "filesystem.read_lines", map[string]interface{}{
		"path": "documents/lines.txt", "start": 2, "count": 2,
	})
	assert.Equal(t, []interface{}{"2", "3"}, data["lines"])
	assert.Equal(t, 5, data["total_lines"])
}

func TestBinaryRoundTrip(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.write_binary", map[string]interface{}{
		"path": "cache/blob.bin", "content": "AAEC/w==",
	})

	data := exec(t, p, "filesystem.read_binary", map[string]interface{}{"path": "cache/blob.bin"})
	assert.Equal(t, "AAEC/w==", data["content"])
	assert.Equal(t, 4, data["size"])
}

func TestCreateAndExists(t *testing.T) {
	p := newTestProvider(t)

	data := exec(t, p, "filesystem.exists", map[string]interface{}{"path": "documents/new.txt"})
	assert.Equal(t, false, data["exists"])

	exec(t, p, "filesystem.create", map[string]interface{}{"path": "documents/new.txt"})

	data = exec(t, p, "filesystem.exists", map[string]interface{}{"path": "documents/new.txt"})
	assert.Equal(t, true, data["exists"])

	// Creating an existing file is refused.
	execFail(t, p, "filesystem.create", map[string]interface{}{"path": "documents/new.txt"})
}
