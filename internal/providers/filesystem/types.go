package filesystem

import (
	"time"

	"github.com/GriffinCanCode/FileBridge/internal/infrastructure/logging"
	"github.com/GriffinCanCode/FileBridge/internal/shared/paths"
	"github.com/GriffinCanCode/FileBridge/internal/shared/types"
)

// FileInfo represents file metadata
type FileInfo struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	IsDir     bool      `json:"is_dir"`
	Mode      string    `json:"mode"`
	Modified  time.Time `json:"modified"`
	Extension string    `json:"extension,omitempty"`
}

// BackupPolicy holds the backup defaults applied when a request does
// not set the backup flag explicitly.
type BackupPolicy struct {
	OnOverwrite bool
	OnDelete    bool
}

// FilesystemOps provides common filesystem operation helpers
type FilesystemOps struct {
	Workspace *paths.Workspace
	Mutator   *Mutator
	Backups   BackupPolicy
	Log       *logging.Logger

	// Observe is called after every mutation with the operation name
	// and the outcome kind (empty on success). Optional.
	Observe func(operation, kind string)
}

// ResolvePath resolves a tool-supplied path inside the workspace,
// scoping relative paths to the calling app when one is set.
func (ops *FilesystemOps) ResolvePath(path string, appCtx *types.Context) (string, error) {
	appID := ""
	if appCtx != nil && appCtx.AppID != nil {
		appID = *appCtx.AppID
	}
	return ops.Workspace.Resolve(path, appID)
}

// Success helper
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure helper
func Failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}

func stringParam(params map[string]interface{}, key string) (string, bool) {
	v, ok := params[key].(string)
	return v, ok && v != ""
}

func boolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}

// intParam reads a numeric parameter. JSON decoding yields float64,
// so both forms are accepted.
func intParam(params map[string]interface{}, key string, def int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}
