package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/GriffinCanCode/FileBridge/internal/shared/types"
	"github.com/charlievieth/fastwalk"
)

// DirectoryOps handles directory operations
type DirectoryOps struct {
	*FilesystemOps
}

// GetTools returns directory operation tool definitions
func (d *DirectoryOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.dir.list",
			Name:        "List Directory",
			Description: "List files and directories",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
				{Name: "include_hidden", Type: "boolean", Description: "Include dotfiles", Required: false},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.dir.create",
			Name:        "Create Directory",
			Description: "Create directory including parents",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.dir.delete",
			Name:        "Delete Directory",
			Description: "Delete directory tree, confirming removal",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
				{Name: "backup", Type: "boolean", Description: "Preserve the deleted tree", Required: false},
			},
			Returns: "outcome",
		},
		{
			ID:          "filesystem.dir.exists",
			Name:        "Directory Exists",
			Description: "Check if directory exists",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.dir.walk",
			Name:        "Walk Directory",
			Description: "List all files under a directory recursively",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
				{Name: "max_results", Type: "number", Description: "Stop after this many entries", Required: false},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.dir.scan",
			Name:        "Scan Directory",
			Description: "Classify directory contents by file kind",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
				{Name: "kind", Type: "string", Description: "Only include this kind", Required: false},
				{Name: "recursive", Type: "boolean", Description: "Descend into subdirectories", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.dir.tree",
			Name:        "Directory Tree",
			Description: "Nested directory structure",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
				{Name: "max_depth", Type: "number", Description: "Depth limit", Required: false},
			},
			Returns: "object",
		},
	}
}

// List lists a directory
func (d *DirectoryOps) List(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}

	fullPath, err := d.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return Failure(fmt.Sprintf("list failed: %v", err))
	}

	includeHidden := boolParam(params, "include_hidden", false)
	files := make([]interface{}, 0, len(entries))
	for _, entry := range entries {
		if !includeHidden && strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, entryData(filepath.Join(fullPath, entry.Name()), info))
	}

	return Success(map[string]interface{}{"entries": files, "path": path, "count": len(files)})
}

// Create creates a directory
func (d *DirectoryOps) Create(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}

	fullPath, err := d.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	if err := os.MkdirAll(fullPath, 0o755); err != nil {
		return Failure(fmt.Sprintf("create failed: %v", err))
	}

	return Success(map[string]interface{}{"created": true, "path": path})
}

// Delete removes a directory tree through the mutator
func (d *DirectoryOps) Delete(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	ops := &OperationsOps{FilesystemOps: d.FilesystemOps}
	return ops.Delete(ctx, params, appCtx)
}

// Exists checks whether a directory exists
func (d *DirectoryOps) Exists(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}

	fullPath, err := d.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	info, err := os.Stat(fullPath)
	exists := err == nil && info.IsDir()
	return Success(map[string]interface{}{"exists": exists, "path": path})
}

// Walk lists all files under a directory recursively
func (d *DirectoryOps) Walk(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}

	fullPath, err := d.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	maxResults := intParam(params, "max_results", 10000)

	var mu sync.Mutex
	var files []interface{}
	truncated := false

	conf := fastwalk.Config{Follow: false}
	walkErr := fastwalk.Walk(&conf, fullPath, func(p string, entry os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return nil
		}

		mu.Lock()
		defer mu.Unlock()
		if len(files) >= maxResults {
			truncated = true
			return nil
		}
		files = append(files, entryData(p, info))
		return nil
	})
	if walkErr != nil {
		return Failure(fmt.Sprintf("walk failed: %v", walkErr))
	}

	return Success(map[string]interface{}{
		"entries":   files,
		"path":      path,
		"count":     len(files),
		"truncated": truncated,
	})
}

// Scan classifies directory contents by file kind
func (d *DirectoryOps) Scan(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}

	fullPath, err := d.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	kindFilter, _ := stringParam(params, "kind")
	recursive := boolParam(params, "recursive", false)

	var mu sync.Mutex
	counts := map[string]int{}
	var entries []interface{}

	collect := func(p string, info os.FileInfo) {
		kind := KindOf(p)
		mu.Lock()
		defer mu.Unlock()
		counts[kind]++
		if kindFilter == "" || kind == kindFilter {
			data := entryData(p, info)
			data["kind"] = kind
			entries = append(entries, data)
		}
	}

	if recursive {
		conf := fastwalk.Config{Follow: false}
		err = fastwalk.Walk(&conf, fullPath, func(p string, entry os.DirEntry, err error) error {
			if err != nil || entry.IsDir() {
				return nil
			}
			info, err := entry.Info()
			if err != nil {
				return nil
			}
			collect(p, info)
			return nil
		})
	} else {
		var dirEntries []os.DirEntry
		dirEntries, err = os.ReadDir(fullPath)
		for _, entry := range dirEntries {
			if entry.IsDir() {
				continue
			}
			info, infoErr := entry.Info()
			if infoErr != nil {
				continue
			}
			collect(filepath.Join(fullPath, entry.Name()), info)
		}
	}
	if err != nil {
		return Failure(fmt.Sprintf("scan failed: %v", err))
	}

	return Success(map[string]interface{}{
		"entries": entries,
		"counts":  countsData(counts),
		"path":    path,
	})
}

// Tree returns a nested directory structure
func (d *DirectoryOps) Tree(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}

	fullPath, err := d.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	maxDepth := intParam(params, "max_depth", 5)
	tree, err := buildTree(fullPath, maxDepth)
	if err != nil {
		return Failure(fmt.Sprintf("tree failed: %v", err))
	}

	return Success(map[string]interface{}{"tree": tree, "path": path})
}

func buildTree(path string, depth int) (map[string]interface{}, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	node := map[string]interface{}{
		"name":   filepath.Base(path),
		"is_dir": info.IsDir(),
	}
	if !info.IsDir() {
		node["size"] = info.Size()
		return node, nil
	}
	if depth <= 0 {
		node["truncated"] = true
		return node, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	children := make([]interface{}, 0, len(entries))
	for _, entry := range entries {
		child, err := buildTree(filepath.Join(path, entry.Name()), depth-1)
		if err != nil {
			continue
		}
		children = append(children, child)
	}
	node["children"] = children
	return node, nil
}

func entryData(path string, info os.FileInfo) map[string]interface{} {
	return map[string]interface{}{
		"name":     info.Name(),
		"path":     path,
		"size":     info.Size(),
		"is_dir":   info.IsDir(),
		"modified": info.ModTime(),
	}
}

func countsData(counts map[string]int) map[string]interface{} {
	out := make(map[string]interface{}, len(counts))
	for k, v := range counts {
		out[k] = v
	}
	return out
}
