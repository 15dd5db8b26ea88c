package filesystem

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/FileBridge/internal/infrastructure/logging"
	"github.com/GriffinCanCode/FileBridge/internal/shared/paths"
	"github.com/GriffinCanCode/FileBridge/internal/shared/types"
)

// handler executes a single tool.
type handler func(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error)

// Provider exposes all filesystem tools as one service.
type Provider struct {
	ops      *FilesystemOps
	handlers map[string]handler
	tools    []types.Tool
}

// NewProvider creates a filesystem provider rooted at the workspace.
func NewProvider(workspace *paths.Workspace, backups BackupPolicy, log *logging.Logger) *Provider {
	if log == nil {
		log = logging.NewNop()
	}
	ops := &FilesystemOps{
		Workspace: workspace,
		Mutator:   NewMutator(log),
		Backups:   backups,
		Log:       log,
	}

	basic := &BasicOps{FilesystemOps: ops}
	directory := &DirectoryOps{FilesystemOps: ops}
	operations := &OperationsOps{FilesystemOps: ops}
	metadata := &MetadataOps{FilesystemOps: ops}
	search := &SearchOps{FilesystemOps: ops}
	formats := &FormatsOps{FilesystemOps: ops}
	archives := &ArchivesOps{FilesystemOps: ops}
	collections := &CollectionsOps{FilesystemOps: ops}

	p := &Provider{ops: ops, handlers: map[string]handler{
		"filesystem.read":         basic.Read,
		"filesystem.write":        basic.Write,
		"filesystem.append":       basic.Append,
		"filesystem.create":       basic.Create,
		"filesystem.exists":       basic.Exists,
		"filesystem.read_lines":   basic.ReadLines,
		"filesystem.read_binary":  basic.ReadBinary,
		"filesystem.write_binary": basic.WriteBinary,

		"filesystem.dir.list":   directory.List,
		"filesystem.dir.create": directory.Create,
		"filesystem.dir.delete": directory.Delete,
		"filesystem.dir.exists": directory.Exists,
		"filesystem.dir.walk":   directory.Walk,
		"filesystem.dir.scan":   directory.Scan,
		"filesystem.dir.tree":   directory.Tree,

		"filesystem.copy":   operations.Copy,
		"filesystem.move":   operations.Move,
		"filesystem.delete": operations.Delete,
		"filesystem.rename": operations.Rename,

		"filesystem.stat":       metadata.Stat,
		"filesystem.size":       metadata.Size,
		"filesystem.total_size": metadata.TotalSize,
		"filesystem.mime_type":  metadata.MimeType,
		"filesystem.file_kind":  metadata.FileKind,
		"filesystem.is_text":    metadata.IsText,

		"filesystem.find":           search.Find,
		"filesystem.glob":           search.Glob,
		"filesystem.search_content": search.SearchContent,
		"filesystem.recent_files":   search.RecentFiles,

		"filesystem.json.read":  formats.ReadJSON,
		"filesystem.json.write": formats.WriteJSON,
		"filesystem.yaml.read":  formats.ReadYAML,
		"filesystem.yaml.write": formats.WriteYAML,
		"filesystem.toml.read":  formats.ReadTOML,
		"filesystem.toml.write": formats.WriteTOML,
		"filesystem.csv.read":   formats.ReadCSV,
		"filesystem.csv.write":  formats.WriteCSV,

		"filesystem.zip.create":  archives.CreateZip,
		"filesystem.zip.extract": archives.ExtractZip,
		"filesystem.zip.list":    archives.ListZip,
		"filesystem.tar.create":  archives.CreateTar,
		"filesystem.tar.extract": archives.ExtractTar,
		"filesystem.tar.list":    archives.ListTar,

		"filesystem.collection.create": collections.Create,
		"filesystem.collection.add":    collections.Add,
		"filesystem.collection.get":    collections.Get,
		"filesystem.collection.list":   collections.List,
	}}

	for _, group := range []interface{ GetTools() []types.Tool }{
		basic, directory, operations, metadata, search, formats, archives, collections,
	} {
		p.tools = append(p.tools, group.GetTools()...)
	}
	return p
}

// SetObserver registers a callback invoked after every mutation with
// the operation name and outcome kind.
func (p *Provider) SetObserver(fn func(operation, kind string)) {
	p.ops.Observe = fn
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "filesystem",
		Name:        "Filesystem Service",
		Description: "File and directory operations with verified mutations",
		Category:    types.CategoryFilesystem,
		Capabilities: []string{
			"read", "write", "create", "delete", "list",
			"stat", "move", "copy", "search", "archive",
		},
		Tools: p.tools,
		DataModels: []types.DataModel{
			{
				Name: "outcome",
				Fields: map[string]string{
					"success":     "boolean",
					"source":      "string",
					"destination": "string",
					"backup_path": "string",
					"kind":        "string",
					"message":     "string",
				},
			},
		},
	}
}

// Execute runs a filesystem tool
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	h, ok := p.handlers[toolID]
	if !ok {
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
	return h(ctx, params, appCtx)
}
