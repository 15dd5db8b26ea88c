package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/GriffinCanCode/FileBridge/internal/shared/types"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

// SearchOps handles file search and content search
type SearchOps struct {
	*FilesystemOps
}

// GetTools returns search tool definitions
func (s *SearchOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.find",
			Name:        "Find Files",
			Description: "Find files whose name contains a term",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Root directory", Required: true},
				{Name: "term", Type: "string", Description: "Name substring, case-insensitive", Required: true},
				{Name: "max_results", Type: "number", Description: "Max results (default 100)", Required: false},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.glob",
			Name:        "Glob Files",
			Description: "Match files with glob patterns (** supported)",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Root directory", Required: true},
				{Name: "pattern", Type: "string", Description: "Glob pattern", Required: true},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.search_content",
			Name:        "Search Content",
			Description: "Search text files for a term",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Root directory", Required: true},
				{Name: "term", Type: "string", Description: "Search term", Required: true},
				{Name: "max_results", Type: "number", Description: "Max matches (default 100)", Required: false},
				{Name: "extensions", Type: "array", Description: "Restrict to these extensions", Required: false},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.recent_files",
			Name:        "Recent Files",
			Description: "Find recently modified files",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Root directory", Required: true},
				{Name: "hours", Type: "number", Description: "Hours ago (default 24)", Required: false},
				{Name: "limit", Type: "number", Description: "Max results (default 50)", Required: false},
			},
			Returns: "array",
		},
	}
}

// Find finds files by name substring
func (s *SearchOps) Find(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}
	term, ok := stringParam(params, "term")
	if !ok {
		return Failure("term parameter required")
	}

	fullPath, err := s.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	maxResults := intParam(params, "max_results", 100)
	needle := strings.ToLower(term)

	var mu sync.Mutex
	matches := []string{}

	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, fullPath, func(p string, entry os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil || entry.IsDir() {
			return nil
		}
		if !strings.Contains(strings.ToLower(entry.Name()), needle) {
			return nil
		}

		mu.Lock()
		defer mu.Unlock()
		if len(matches) < maxResults {
			if rel, err := filepath.Rel(fullPath, p); err == nil {
				matches = append(matches, rel)
			}
		}
		return nil
	})
	if err != nil {
		return Failure(fmt.Sprintf("find failed: %v", err))
	}

	sort.Strings(matches)
	return Success(map[string]interface{}{"path": path, "matches": matches, "count": len(matches)})
}

// Glob performs advanced glob matching
func (s *SearchOps) Glob(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}
	pattern, ok := stringParam(params, "pattern")
	if !ok {
		return Failure("pattern parameter required")
	}

	fullPath, err := s.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	matches, err := doublestar.Glob(os.DirFS(fullPath), pattern)
	if err != nil {
		return Failure(fmt.Sprintf("glob failed: %v", err))
	}

	sort.Strings(matches)
	return Success(map[string]interface{}{"path": path, "matches": matches, "count": len(matches)})
}

// searchMatch is one content hit with its surrounding context.
type searchMatch struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Context string `json:"context"`
}

// SearchContent searches text files for a term
func (s *SearchOps) SearchContent(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}
	term, ok := stringParam(params, "term")
	if !ok {
		return Failure("term parameter required")
	}

	fullPath, err := s.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	maxResults := intParam(params, "max_results", 100)
	extensions := extensionSet(params["extensions"])

	var mu sync.Mutex
	var matches []interface{}

	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, fullPath, func(p string, entry os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil || entry.IsDir() {
			return nil
		}
		if len(extensions) > 0 && !extensions[strings.ToLower(filepath.Ext(p))] {
			return nil
		}

		mu.Lock()
		full := len(matches) >= maxResults
		mu.Unlock()
		if full {
			return nil
		}

		fileMatches := searchFile(p, fullPath, term)
		if len(fileMatches) == 0 {
			return nil
		}

		mu.Lock()
		defer mu.Unlock()
		for _, m := range fileMatches {
			if len(matches) >= maxResults {
				break
			}
			matches = append(matches, m)
		}
		return nil
	})
	if err != nil {
		return Failure(fmt.Sprintf("search failed: %v", err))
	}

	return Success(map[string]interface{}{
		"path":    path,
		"term":    term,
		"matches": matches,
		"count":   len(matches),
	})
}

// searchFile finds term occurrences in a single text file, reporting
// line numbers and a clipped context window around each hit.
func searchFile(path, root, term string) []searchMatch {
	raw, err := os.ReadFile(path)
	if err != nil || !utf8.Valid(raw) {
		return nil
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}

	const contextRadius = 50
	var out []searchMatch

	for i, line := range strings.Split(string(raw), "\n") {
		col := strings.Index(strings.ToLower(line), strings.ToLower(term))
		if col < 0 {
			continue
		}

		start := col - contextRadius
		if start < 0 {
			start = 0
		}
		end := col + len(term) + contextRadius
		if end > len(line) {
			end = len(line)
		}

		out = append(out, searchMatch{
			File:    rel,
			Line:    i + 1,
			Column:  col + 1,
			Context: line[start:end],
		})
	}
	return out
}

// RecentFiles finds files modified within a time window
func (s *SearchOps) RecentFiles(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}

	fullPath, err := s.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	hours := intParam(params, "hours", 24)
	limit := intParam(params, "limit", 50)
	cutoff := time.Now().Add(-time.Duration(hours) * time.Hour)

	type recentFile struct {
		path     string
		modified time.Time
		size     int64
	}

	var mu sync.Mutex
	var files []recentFile

	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, fullPath, func(p string, entry os.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return nil
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().Before(cutoff) {
			return nil
		}
		rel, err := filepath.Rel(fullPath, p)
		if err != nil {
			rel = p
		}

		mu.Lock()
		files = append(files, recentFile{path: rel, modified: info.ModTime(), size: info.Size()})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return Failure(fmt.Sprintf("recent files failed: %v", err))
	}

	sort.Slice(files, func(i, j int) bool { return files[i].modified.After(files[j].modified) })
	if len(files) > limit {
		files = files[:limit]
	}

	out := make([]interface{}, len(files))
	for i, f := range files {
		out[i] = map[string]interface{}{"path": f.path, "modified": f.modified, "size": f.size}
	}

	return Success(map[string]interface{}{"path": path, "files": out, "count": len(out)})
}

func extensionSet(v interface{}) map[string]bool {
	arr, ok := v.([]interface{})
	if !ok {
		return nil
	}
	set := make(map[string]bool, len(arr))
	for _, e := range arr {
		if ext, ok := e.(string); ok && ext != "" {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			set[strings.ToLower(ext)] = true
		}
	}
	return set
}
