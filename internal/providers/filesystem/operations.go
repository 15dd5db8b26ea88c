package filesystem

import (
	"context"
	"path/filepath"

	"github.com/GriffinCanCode/FileBridge/internal/shared/types"
)

// OperationsOps handles destructive operations (copy, move, delete,
// rename). Every operation goes through the mutator so results are
// verified and partial states surface with their own error kinds.
type OperationsOps struct {
	*FilesystemOps
}

// GetTools returns file operation tool definitions
func (o *OperationsOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.copy",
			Name:        "Copy File",
			Description: "Copy file or directory with verified result",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source path", Required: true},
				{Name: "destination", Type: "string", Description: "Destination path", Required: true},
				{Name: "overwrite", Type: "boolean", Description: "Replace existing destination", Required: false},
				{Name: "backup", Type: "boolean", Description: "Preserve overwritten destination", Required: false},
				{Name: "make_parents", Type: "boolean", Description: "Create missing parent directories", Required: false},
			},
			Returns: "outcome",
		},
		{
			ID:          "filesystem.move",
			Name:        "Move File",
			Description: "Move or rename file/directory with verified result",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source path", Required: true},
				{Name: "destination", Type: "string", Description: "Destination path", Required: true},
				{Name: "overwrite", Type: "boolean", Description: "Replace existing destination", Required: false},
				{Name: "backup", Type: "boolean", Description: "Preserve overwritten destination", Required: false},
				{Name: "make_parents", Type: "boolean", Description: "Create missing parent directories", Required: false},
			},
			Returns: "outcome",
		},
		{
			ID:          "filesystem.delete",
			Name:        "Delete File",
			Description: "Delete file or directory, confirming removal",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Path to delete", Required: true},
				{Name: "backup", Type: "boolean", Description: "Preserve the deleted path", Required: false},
			},
			Returns: "outcome",
		},
		{
			ID:          "filesystem.rename",
			Name:        "Rename File",
			Description: "Rename file or directory in place",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "new_name", Type: "string", Description: "New name", Required: true},
				{Name: "overwrite", Type: "boolean", Description: "Replace existing target", Required: false},
			},
			Returns: "outcome",
		},
	}
}

// Copy copies a file or directory
func (o *OperationsOps) Copy(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	src, dst, opts, errResult := o.transferArgs(params, appCtx)
	if errResult != nil {
		return errResult, nil
	}
	return o.mutationResult("copy", o.Mutator.Copy(ctx, src, dst, opts))
}

// Move moves a file or directory
func (o *OperationsOps) Move(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	src, dst, opts, errResult := o.transferArgs(params, appCtx)
	if errResult != nil {
		return errResult, nil
	}
	return o.mutationResult("move", o.Mutator.Move(ctx, src, dst, opts))
}

// Delete removes a file or directory
func (o *OperationsOps) Delete(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}

	fullPath, err := o.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	opts := Options{Backup: boolParam(params, "backup", o.Backups.OnDelete)}
	return o.mutationResult("delete", o.Mutator.Delete(ctx, fullPath, opts))
}

// Rename renames a file within its directory
func (o *OperationsOps) Rename(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}
	newName, ok := stringParam(params, "new_name")
	if !ok {
		return Failure("new_name parameter required")
	}
	if newName != filepath.Base(newName) {
		return Failure("new_name must not contain path separators")
	}

	fullPath, err := o.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}
	newPath := filepath.Join(filepath.Dir(fullPath), newName)

	opts := Options{Overwrite: boolParam(params, "overwrite", false)}
	return o.mutationResult("rename", o.Mutator.Move(ctx, fullPath, newPath, opts))
}

// transferArgs resolves the shared copy/move parameters.
func (o *OperationsOps) transferArgs(params map[string]interface{}, appCtx *types.Context) (string, string, Options, *types.Result) {
	fails := func(msg string) (string, string, Options, *types.Result) {
		r, _ := Failure(msg)
		return "", "", Options{}, r
	}

	src, ok := stringParam(params, "source")
	if !ok {
		return fails("source parameter required")
	}
	dst, ok := stringParam(params, "destination")
	if !ok {
		return fails("destination parameter required")
	}

	fullSrc, err := o.ResolvePath(src, appCtx)
	if err != nil {
		return fails(err.Error())
	}
	fullDst, err := o.ResolvePath(dst, appCtx)
	if err != nil {
		return fails(err.Error())
	}

	opts := Options{
		Overwrite:   boolParam(params, "overwrite", false),
		Backup:      boolParam(params, "backup", o.Backups.OnOverwrite),
		MakeParents: boolParam(params, "make_parents", false),
	}
	return fullSrc, fullDst, opts, nil
}

// mutationResult converts an outcome into a tool result. Failures keep
// the structured outcome in Data so the client can branch on the kind.
func (o *OperationsOps) mutationResult(operation string, out Outcome) (*types.Result, error) {
	if o.Observe != nil {
		o.Observe(operation, string(out.Kind))
	}
	data := map[string]interface{}{"success": out.Success}
	if out.Source != "" {
		data["source"] = out.Source
	}
	if out.Destination != "" {
		data["destination"] = out.Destination
	}
	if out.BackupPath != "" {
		data["backup_path"] = out.BackupPath
	}
	if out.Kind != KindNone {
		data["kind"] = string(out.Kind)
	}
	if out.Message != "" {
		data["message"] = out.Message
	}

	if out.Success {
		return Success(data)
	}
	msg := out.Message
	if msg == "" {
		msg = string(out.Kind)
	}
	return &types.Result{Success: false, Data: data, Error: &msg}, nil
}
