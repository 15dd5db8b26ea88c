package filesystem

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/GriffinCanCode/FileBridge/internal/shared/types"
	"github.com/saintfish/chardet"
)

// BasicOps handles basic file I/O
type BasicOps struct {
	*FilesystemOps
}

// GetTools returns basic file operation tool definitions
func (b *BasicOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.read",
			Name:        "Read File",
			Description: "Read text file contents",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "max_lines", Type: "number", Description: "Truncate after this many lines", Required: false},
			},
			Returns: "string",
		},
		{
			ID:          "filesystem.write",
			Name:        "Write File",
			Description: "Write text content to file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "content", Type: "string", Description: "Content to write", Required: true},
				{Name: "append", Type: "boolean", Description: "Append instead of overwrite", Required: false},
				{Name: "make_parents", Type: "boolean", Description: "Create missing parent directories", Required: false},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.append",
			Name:        "Append to File",
			Description: "Append text content to file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "content", Type: "string", Description: "Content to append", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.create",
			Name:        "Create File",
			Description: "Create empty file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.exists",
			Name:        "File Exists",
			Description: "Check if file or directory exists",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Path to check", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.read_lines",
			Name:        "Read Lines",
			Description: "Read a range of lines from a text file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "start", Type: "number", Description: "First line, 1-based", Required: false},
				{Name: "count", Type: "number", Description: "Number of lines", Required: false},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.read_binary",
			Name:        "Read Binary",
			Description: "Read file contents as base64",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "string",
		},
		{
			ID:          "filesystem.write_binary",
			Name:        "Write Binary",
			Description: "Write base64 content to file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "content", Type: "string", Description: "Base64 content", Required: true},
			},
			Returns: "boolean",
		},
	}
}

// Read reads a text file
func (b *BasicOps) Read(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}

	fullPath, err := b.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	raw, err := os.ReadFile(fullPath)
	if err != nil {
		return Failure(fmt.Sprintf("read failed: %v", err))
	}

	if !utf8.Valid(raw) {
		encoding := detectEncoding(raw)
		return Failure(fmt.Sprintf("file is not valid UTF-8 (detected %s); use filesystem.read_binary", encoding))
	}

	content := string(raw)
	lineCount := countLines(content)

	truncated := false
	if maxLines := intParam(params, "max_lines", 0); maxLines > 0 && lineCount > maxLines {
		lines := strings.SplitN(content, "\n", maxLines+1)
		content = strings.Join(lines[:maxLines], "\n")
		truncated = true
	}

	return Success(map[string]interface{}{
		"content":    content,
		"path":       path,
		"line_count": lineCount,
		"truncated":  truncated,
	})
}

// Write writes or appends text content to a file
func (b *BasicOps) Write(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}
	content, hasContent := params["content"].(string)
	if !hasContent {
		return Failure("content parameter required")
	}

	fullPath, err := b.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	if boolParam(params, "make_parents", false) {
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			return Failure(fmt.Sprintf("create parents failed: %v", err))
		}
	}

	if boolParam(params, "append", false) {
		if err := appendFile(fullPath, []byte(content)); err != nil {
			return Failure(fmt.Sprintf("append failed: %v", err))
		}
	} else {
		if err := writeAtomic(fullPath, []byte(content)); err != nil {
			return Failure(fmt.Sprintf("write failed: %v", err))
		}
	}

	return Success(map[string]interface{}{"written": true, "path": path, "size": len(content)})
}

// Append appends text content to a file
func (b *BasicOps) Append(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}
	content, hasContent := params["content"].(string)
	if !hasContent {
		return Failure("content parameter required")
	}

	fullPath, err := b.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	if err := appendFile(fullPath, []byte(content)); err != nil {
		return Failure(fmt.Sprintf("append failed: %v", err))
	}

	return Success(map[string]interface{}{"appended": true, "path": path})
}

// Create creates an empty file
func (b *BasicOps) Create(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}

	fullPath, err := b.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return Failure(fmt.Sprintf("create failed: %v", err))
	}
	f.Close()

	return Success(map[string]interface{}{"created": true, "path": path})
}

// Exists checks whether a path exists
func (b *BasicOps) Exists(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}

	fullPath, err := b.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return Success(map[string]interface{}{"exists": false, "path": path})
	}

	return Success(map[string]interface{}{"exists": true, "path": path, "is_dir": info.IsDir()})
}

// ReadLines reads a line range from a text file
func (b *BasicOps) ReadLines(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}

	fullPath, err := b.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	raw, err := os.ReadFile(fullPath)
	if err != nil {
		return Failure(fmt.Sprintf("read failed: %v", err))
	}
	if !utf8.Valid(raw) {
		encoding := detectEncoding(raw)
		return Failure(fmt.Sprintf("file is not valid UTF-8 (detected %s); use filesystem.read_binary", encoding))
	}

	lines := strings.Split(strings.TrimSuffix(string(raw), "\n"), "\n")
	total := len(lines)

	start := intParam(params, "start", 1)
	if start < 1 {
		start = 1
	}
	count := intParam(params, "count", total)

	if start > total {
		lines = []string{}
	} else {
		end := start - 1 + count
		if end > total {
			end = total
		}
		lines = lines[start-1 : end]
	}

	out := make([]interface{}, len(lines))
	for i, line := range lines {
		out[i] = line
	}

	return Success(map[string]interface{}{"lines": out, "path": path, "total_lines": total})
}

// ReadBinary reads file contents as base64
func (b *BasicOps) ReadBinary(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}

	fullPath, err := b.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	raw, err := os.ReadFile(fullPath)
	if err != nil {
		return Failure(fmt.Sprintf("read failed: %v", err))
	}

	return Success(map[string]interface{}{
		"content": base64.StdEncoding.EncodeToString(raw),
		"path":    path,
		"size":    len(raw),
	})
}

// WriteBinary writes base64 content to a file
func (b *BasicOps) WriteBinary(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}
	encoded, ok := params["content"].(string)
	if !ok {
		return Failure("content parameter required")
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Failure(fmt.Sprintf("invalid base64 content: %v", err))
	}

	fullPath, err := b.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	if err := writeAtomic(fullPath, raw); err != nil {
		return Failure(fmt.Sprintf("write failed: %v", err))
	}

	return Success(map[string]interface{}{"written": true, "path": path, "size": len(raw)})
}

// writeAtomic writes through a temp file and renames it into place.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".fb-write-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func appendFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// countLines counts lines the way an editor would: a trailing newline
// does not start an extra line.
func countLines(content string) int {
	n := strings.Count(content, "\n")
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}

// detectEncoding guesses the charset of non-UTF-8 content.
func detectEncoding(data []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "unknown"
	}
	return result.Charset
}
