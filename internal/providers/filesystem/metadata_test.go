package filesystem

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatTool(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.write", map[string]interface{}{"path": "documents/a.go", "content": "package a\n"})

	data := exec(t, p, "filesystem.stat", map[string]interface{}{"path": "documents/a.go"})
	assert.Equal(t, "a.go", data["name"])
	assert.Equal(t, false, data["is_dir"])
	assert.Equal(t, ".go", data["extension"])
	assert.Equal(t, KindCode, data["kind"])
	assert.Equal(t, int64(10), data["size"])
}

func TestStatToolTextPreview(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.write", map[string]interface{}{
		"path": "documents/notes.txt", "content": "line one\nline two\nline three\n",
	})

	data := exec(t, p, "filesystem.stat", map[string]interface{}{"path": "documents/notes.txt"})
	assert.Equal(t, "line one\nline two\nline three\n", data["preview"])
	assert.Equal(t, 3, data["line_count"])
}

func TestStatToolPreviewTruncates(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.write", map[string]interface{}{
		"path": "documents/long.txt", "content": strings.Repeat("x", 1500),
	})

	data := exec(t, p, "filesystem.stat", map[string]interface{}{"path": "documents/long.txt"})
	preview := data["preview"].(string)
	assert.Len(t, preview, 1003)
	assert.True(t, strings.HasSuffix(preview, "..."))
	assert.Equal(t, 1, data["line_count"])
}

func TestStatToolNoPreviewForBinary(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.write_binary", map[string]interface{}{
		"path":    "cache/blob.bin",
		"content": base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, 0x00, 0x01}),
	})

	data := exec(t, p, "filesystem.stat", map[string]interface{}{"path": "cache/blob.bin"})
	assert.NotContains(t, data, "preview")
	assert.NotContains(t, data, "line_count")
}

func TestSizeTool(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.write", map[string]interface{}{"path": "documents/a.txt", "content": "hello"})

	data := exec(t, p, "filesystem.size", map[string]interface{}{"path": "documents/a.txt"})
	assert.Equal(t, int64(5), data["size"])
	assert.Equal(t, "5 B", data["size_human"])
}

func TestTotalSizeTool(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.write", map[string]interface{}{"path": "documents/a.txt", "content": "12345"})
	exec(t, p, "filesystem.write", map[string]interface{}{
		"path": "documents/sub/b.txt", "content": "123", "make_parents": true,
	})

	data := exec(t, p, "filesystem.total_size", map[string]interface{}{"path": "documents"})
	assert.Equal(t, int64(8), data["size"])
	assert.Equal(t, int64(2), data["file_count"])
}

func TestMimeTypeTool(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.write", map[string]interface{}{"path": "cache/data.json", "content": "{\"a\":1}"})

	data := exec(t, p, "filesystem.mime_type", map[string]interface{}{"path": "cache/data.json"})
	assert.Contains(t, data["mime_type"], "json")
}

func TestFileKindTool(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.write", map[string]interface{}{"path": "media/clip.mp4", "content": "x"})

	data := exec(t, p, "filesystem.file_kind", map[string]interface{}{"path": "media/clip.mp4"})
	assert.Equal(t, KindVideo, data["kind"])
}

func TestIsTextTool(t *testing.T) {
	p := newTestProvider(t)

	exec(t, p, "filesystem.write", map[string]interface{}{"path": "documents/a.txt", "content": "plain text here"})

	data := exec(t, p, "filesystem.is_text", map[string]interface{}{"path": "documents/a.txt"})
	assert.Equal(t, true, data["is_text"])
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512 B", humanSize(512))
	assert.Equal(t, "1.0 KB", humanSize(1024))
	assert.Equal(t, "1.5 MB", humanSize(3*1024*1024/2))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindImage, KindOf("photo.JPG"))
	assert.Equal(t, KindArchive, KindOf("bundle.tar"))
	assert.Equal(t, KindUnknown, KindOf("noext"))
}
