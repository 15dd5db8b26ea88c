package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedArchiveFiles(t *testing.T, p *Provider) {
	t.Helper()
	exec(t, p, "filesystem.write", map[string]interface{}{"path": "documents/a.txt", "content": "alpha"})
	exec(t, p, "filesystem.write", map[string]interface{}{
		"path": "documents/sub/b.txt", "content": "beta", "make_parents": true,
	})
}

func TestZipRoundTrip(t *testing.T) {
	p := newTestProvider(t)
	seedArchiveFiles(t, p)

	exec(t, p, "filesystem.zip.create", map[string]interface{}{
		"sources":     []interface{}{"documents"},
		"destination": "cache/docs.zip",
	})

	listed := exec(t, p, "filesystem.zip.list", map[string]interface{}{"path": "cache/docs.zip"})
	assert.Equal(t, 2, listed["count"])

	exec(t, p, "filesystem.zip.extract", map[string]interface{}{
		"path": "cache/docs.zip", "destination": "temp/out",
	})

	read := exec(t, p, "filesystem.read", map[string]interface{}{"path": "temp/out/documents/sub/b.txt"})
	assert.Equal(t, "beta", read["content"])
}

func TestTarGzipRoundTrip(t *testing.T) {
	p := newTestProvider(t)
	seedArchiveFiles(t, p)

	created := exec(t, p, "filesystem.tar.create", map[string]interface{}{
		"sources":     []interface{}{"documents"},
		"destination": "cache/docs.tar.gz",
	})
	assert.Equal(t, "gzip", created["compression"])

	listed := exec(t, p, "filesystem.tar.list", map[string]interface{}{"path": "cache/docs.tar.gz"})
	assert.Equal(t, 2, listed["count"])

	exec(t, p, "filesystem.tar.extract", map[string]interface{}{
		"path": "cache/docs.tar.gz", "destination": "temp/out",
	})

	read := exec(t, p, "filesystem.read", map[string]interface{}{"path": "temp/out/documents/a.txt"})
	assert.Equal(t, "alpha", read["content"])
}

func TestTarZstdRoundTrip(t *testing.T) {
	p := newTestProvider(t)
	seedArchiveFiles(t, p)

	created := exec(t, p, "filesystem.tar.create", map[string]interface{}{
		"sources":     []interface{}{"documents/a.txt"},
		"destination": "cache/docs.tar.zst",
	})
	assert.Equal(t, "zstd", created["compression"])

	exec(t, p, "filesystem.tar.extract", map[string]interface{}{
		"path": "cache/docs.tar.zst", "destination": "temp/out",
	})

	read := exec(t, p, "filesystem.read", map[string]interface{}{"path": "temp/out/a.txt"})
	assert.Equal(t, "alpha", read["content"])
}

func TestSafeJoinRejectsEscape(t *testing.T) {
	_, err := safeJoin("/tmp/out", "../evil.txt")
	require.Error(t, err)

	target, err := safeJoin("/tmp/out", "sub/ok.txt")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out/sub/ok.txt", target)
}
