package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Workspace subdirectories
const (
	Media       = "media"
	Cache       = "cache"
	Temp        = "temp"
	Documents   = "documents"
	UserData    = "userdata"
	Collections = "collections"
)

// Workspace is the root directory all file tools operate in.
// It is an explicit configuration value, never read from globals.
type Workspace struct {
	Root string
}

// New creates a workspace rooted at the given directory.
// The root is cleaned and made absolute.
func New(root string) (*Workspace, error) {
	if root == "" {
		return nil, fmt.Errorf("workspace root cannot be empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("invalid workspace root: %w", err)
	}
	return &Workspace{Root: filepath.Clean(abs)}, nil
}

// MediaDir returns the media directory
func (w *Workspace) MediaDir() string { return filepath.Join(w.Root, Media) }

// CacheDir returns the cache directory
func (w *Workspace) CacheDir() string { return filepath.Join(w.Root, Cache) }

// TempDir returns the temp directory
func (w *Workspace) TempDir() string { return filepath.Join(w.Root, Temp) }

// DocumentsDir returns the documents directory
func (w *Workspace) DocumentsDir() string { return filepath.Join(w.Root, Documents) }

// UserDataDir returns the userdata directory
func (w *Workspace) UserDataDir() string { return filepath.Join(w.Root, UserData) }

// CollectionsDir returns the collections directory
func (w *Workspace) CollectionsDir() string { return filepath.Join(w.Root, Collections) }

// StandardDirectories returns all subdirectories that should exist
func (w *Workspace) StandardDirectories() []string {
	return []string{
		w.MediaDir(),
		w.CacheDir(),
		w.TempDir(),
		w.DocumentsDir(),
		w.UserDataDir(),
		w.CollectionsDir(),
	}
}

// Ensure creates the workspace root and standard subdirectories.
func (w *Workspace) Ensure() error {
	dirs := append([]string{w.Root}, w.StandardDirectories()...)
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// Resolve turns a tool-supplied path into an absolute path inside the
// workspace. Relative paths are joined to the root (or to the app's
// userdata directory when appID is non-empty). Absolute paths are
// accepted only when already inside the root.
func (w *Workspace) Resolve(path, appID string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	var full string
	if filepath.IsAbs(path) {
		full = filepath.Clean(path)
	} else if appID != "" {
		if err := ValidateAppID(appID); err != nil {
			return "", err
		}
		full = filepath.Join(w.UserDataDir(), appID, path)
	} else {
		full = filepath.Join(w.Root, path)
	}

	if !w.Contains(full) {
		return "", fmt.Errorf("path %s is outside the workspace", path)
	}
	return full, nil
}

// Contains reports whether the cleaned path is inside the workspace root.
func (w *Workspace) Contains(path string) bool {
	clean := filepath.Clean(path)
	if clean == w.Root {
		return true
	}
	return strings.HasPrefix(clean, w.Root+string(os.PathSeparator))
}

// ValidateAppID checks if an app ID is valid for path construction
func ValidateAppID(appID string) error {
	if appID == "" {
		return fmt.Errorf("app ID cannot be empty")
	}
	if filepath.IsAbs(appID) {
		return fmt.Errorf("app ID cannot be an absolute path")
	}
	if filepath.Clean(appID) != appID || strings.Contains(appID, "..") {
		return fmt.Errorf("app ID contains invalid path components")
	}
	return nil
}
