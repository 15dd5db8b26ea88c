package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/GriffinCanCode/FileBridge/internal/shared/types"
	"github.com/charlievieth/fastwalk"
	"github.com/gabriel-vasile/mimetype"
)

// MetadataOps handles file metadata queries
type MetadataOps struct {
	*FilesystemOps
}

// GetTools returns metadata tool definitions
func (m *MetadataOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.stat",
			Name:        "File Stat",
			Description: "Get file metadata",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.size",
			Name:        "File Size",
			Description: "Get file size in bytes",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "number",
		},
		{
			ID:          "filesystem.total_size",
			Name:        "Total Size",
			Description: "Total size of a directory tree",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
			},
			Returns: "number",
		},
		{
			ID:          "filesystem.mime_type",
			Name:        "MIME Type",
			Description: "Detect MIME type from content",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "string",
		},
		{
			ID:          "filesystem.file_kind",
			Name:        "File Kind",
			Description: "Classify file (image, video, audio, code, ...)",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "string",
		},
		{
			ID:          "filesystem.is_text",
			Name:        "Is Text",
			Description: "Check if file content is text",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "boolean",
		},
	}
}

// Stat returns file metadata
func (m *MetadataOps) Stat(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}

	fullPath, err := m.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return Failure(fmt.Sprintf("stat failed: %v", err))
	}

	data := entryData(fullPath, info)
	data["mode"] = info.Mode().String()
	data["extension"] = strings.ToLower(filepath.Ext(info.Name()))
	data["kind"] = KindOf(fullPath)

	if !info.IsDir() && info.Size() <= previewMaxFileSize {
		if preview, lines, ok := textPreview(fullPath); ok {
			data["preview"] = preview
			data["line_count"] = lines
		}
	}
	return Success(data)
}

const (
	previewChars       = 1000
	previewMaxFileSize = 10 << 20
)

// textPreview returns the first previewChars characters and the line
// count of a UTF-8 text file. Binary content yields no preview.
func textPreview(path string) (string, int, bool) {
	raw, err := os.ReadFile(path)
	if err != nil || !utf8.Valid(raw) {
		return "", 0, false
	}

	content := string(raw)
	lines := countLines(content)

	runes := []rune(content)
	if len(runes) > previewChars {
		return string(runes[:previewChars]) + "...", lines, true
	}
	return content, lines, true
}

// Size returns file size
func (m *MetadataOps) Size(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}

	fullPath, err := m.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return Failure(fmt.Sprintf("stat failed: %v", err))
	}

	return Success(map[string]interface{}{
		"size":       info.Size(),
		"size_human": humanSize(info.Size()),
		"path":       path,
	})
}

// TotalSize sums file sizes under a directory
func (m *MetadataOps) TotalSize(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}

	fullPath, err := m.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	var total int64
	var count int64
	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, fullPath, func(p string, entry os.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return nil
		}
		atomic.AddInt64(&total, info.Size())
		atomic.AddInt64(&count, 1)
		return nil
	})
	if err != nil {
		return Failure(fmt.Sprintf("total size failed: %v", err))
	}

	return Success(map[string]interface{}{
		"size":       total,
		"size_human": humanSize(total),
		"file_count": count,
		"path":       path,
	})
}

// MimeType detects the MIME type from file content
func (m *MetadataOps) MimeType(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}

	fullPath, err := m.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	mtype, err := mimetype.DetectFile(fullPath)
	if err != nil {
		return Failure(fmt.Sprintf("detect failed: %v", err))
	}

	return Success(map[string]interface{}{
		"mime_type": mtype.String(),
		"extension": mtype.Extension(),
		"path":      path,
	})
}

// FileKind classifies a file by extension
func (m *MetadataOps) FileKind(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}

	fullPath, err := m.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	return Success(map[string]interface{}{"kind": KindOf(fullPath), "path": path})
}

// IsText checks whether file content is textual
func (m *MetadataOps) IsText(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}

	fullPath, err := m.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	mtype, err := mimetype.DetectFile(fullPath)
	if err != nil {
		return Failure(fmt.Sprintf("detect failed: %v", err))
	}

	isText := false
	for mt := mtype; mt != nil; mt = mt.Parent() {
		if mt.Is("text/plain") {
			isText = true
			break
		}
	}

	return Success(map[string]interface{}{"is_text": isText, "mime_type": mtype.String(), "path": path})
}

func humanSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
