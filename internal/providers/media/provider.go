// Package media provides tools for image files and media libraries.
package media

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/GriffinCanCode/FileBridge/internal/infrastructure/logging"
	"github.com/GriffinCanCode/FileBridge/internal/providers/filesystem"
	"github.com/GriffinCanCode/FileBridge/internal/shared/paths"
	"github.com/GriffinCanCode/FileBridge/internal/shared/types"
	"github.com/charlievieth/fastwalk"
	"github.com/gabriel-vasile/mimetype"
)

// Provider implements media tools over the workspace media directory.
type Provider struct {
	workspace *paths.Workspace
	mutator   *filesystem.Mutator
}

// NewProvider creates a media provider
func NewProvider(workspace *paths.Workspace, log *logging.Logger) *Provider {
	return &Provider{
		workspace: workspace,
		mutator:   filesystem.NewMutator(log),
	}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "media",
		Name:        "Media Service",
		Description: "Image inspection and media library organization",
		Category:    types.CategoryMedia,
		Capabilities: []string{
			"inspect",
			"organize",
		},
		Tools: []types.Tool{
			{
				ID:          "media.image_info",
				Name:        "Image Info",
				Description: "Get image dimensions and format",
				Parameters: []types.Parameter{
					{Name: "path", Type: "string", Description: "Image path", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "media.file_kind",
				Name:        "Media Kind",
				Description: "Classify a file as image, video, audio or other",
				Parameters: []types.Parameter{
					{Name: "path", Type: "string", Description: "File path", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "media.list",
				Name:        "List Media",
				Description: "List media files by kind",
				Parameters: []types.Parameter{
					{Name: "kind", Type: "string", Description: "image, video or audio", Required: false},
				},
				Returns: "array",
			},
			{
				ID:          "media.organize_by_date",
				Name:        "Organize by Date",
				Description: "Group media files into year/month directories",
				Parameters: []types.Parameter{
					{Name: "apply", Type: "boolean", Description: "Perform the moves instead of planning", Required: false},
				},
				Returns: "object",
			},
		},
	}
}

// Execute runs a media operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "media.image_info":
		return p.imageInfo(params, appCtx)
	case "media.file_kind":
		return p.fileKind(params)
	case "media.list":
		return p.list(params)
	case "media.organize_by_date":
		return p.organizeByDate(ctx, params)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) imageInfo(params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return failure("path parameter required")
	}

	appID := ""
	if appCtx != nil && appCtx.AppID != nil {
		appID = *appCtx.AppID
	}
	fullPath, err := p.workspace.Resolve(path, appID)
	if err != nil {
		return failure(err.Error())
	}

	f, err := os.Open(fullPath)
	if err != nil {
		return failure(fmt.Sprintf("open failed: %v", err))
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return failure(fmt.Sprintf("not a decodable image: %v", err))
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return failure(fmt.Sprintf("stat failed: %v", err))
	}

	mtype, err := mimetype.DetectFile(fullPath)
	mime := ""
	if err == nil {
		mime = mtype.String()
	}

	return success(map[string]interface{}{
		"path":      path,
		"width":     cfg.Width,
		"height":    cfg.Height,
		"format":    format,
		"mime_type": mime,
		"size":      info.Size(),
	})
}

func (p *Provider) fileKind(params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return failure("path parameter required")
	}

	kind := filesystem.KindOf(path)
	return success(map[string]interface{}{
		"path":  path,
		"kind":  kind,
		"media": kind == filesystem.KindImage || kind == filesystem.KindVideo || kind == filesystem.KindAudio,
	})
}

func (p *Provider) list(params map[string]interface{}) (*types.Result, error) {
	kindFilter, _ := params["kind"].(string)
	mediaDir := p.workspace.MediaDir()

	type mediaFile struct {
		path     string
		kind     string
		size     int64
		modified time.Time
	}

	// fastwalk runs callbacks concurrently.
	var mu sync.Mutex
	var found []mediaFile

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, mediaDir, func(path string, entry os.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return nil
		}
		kind := filesystem.KindOf(path)
		if kind != filesystem.KindImage && kind != filesystem.KindVideo && kind != filesystem.KindAudio {
			return nil
		}
		if kindFilter != "" && kind != kindFilter {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(mediaDir, path)
		if err != nil {
			rel = path
		}
		mu.Lock()
		found = append(found, mediaFile{path: rel, kind: kind, size: info.Size(), modified: info.ModTime()})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return failure(fmt.Sprintf("list failed: %v", err))
	}

	sort.Slice(found, func(i, j int) bool { return found[i].path < found[j].path })

	files := make([]interface{}, 0, len(found))
	for _, f := range found {
		files = append(files, map[string]interface{}{
			"path":     f.path,
			"kind":     f.kind,
			"size":     f.size,
			"modified": f.modified,
		})
	}

	return success(map[string]interface{}{"files": files, "count": len(files)})
}

// organizeByDate plans (or applies) moving loose media files into
// media/<year>/<month>/ based on their modification time. Files
// already inside a year directory are left alone.
func (p *Provider) organizeByDate(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	apply, _ := params["apply"].(bool)
	mediaDir := p.workspace.MediaDir()

	entries, err := os.ReadDir(mediaDir)
	if err != nil {
		return failure(fmt.Sprintf("read media dir failed: %v", err))
	}

	type plannedMove struct {
		from string
		to   string
	}
	var plan []plannedMove

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		kind := filesystem.KindOf(entry.Name())
		if kind != filesystem.KindImage && kind != filesystem.KindVideo && kind != filesystem.KindAudio {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		bucket := info.ModTime().Format("2006/01")
		plan = append(plan, plannedMove{
			from: filepath.Join(mediaDir, entry.Name()),
			to:   filepath.Join(mediaDir, bucket, entry.Name()),
		})
	}
	sort.Slice(plan, func(i, j int) bool { return plan[i].from < plan[j].from })

	moves := make([]interface{}, 0, len(plan))
	moved := 0
	for _, mv := range plan {
		entry := map[string]interface{}{"from": mv.from, "to": mv.to}
		if apply {
			out := p.mutator.Move(ctx, mv.from, mv.to, filesystem.Options{MakeParents: true})
			entry["success"] = out.Success
			if !out.Success {
				entry["kind"] = string(out.Kind)
				entry["message"] = out.Message
			} else {
				moved++
			}
		}
		moves = append(moves, entry)
	}

	return success(map[string]interface{}{
		"applied": apply,
		"planned": len(plan),
		"moved":   moved,
		"moves":   moves,
	})
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}
