package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/GriffinCanCode/FileBridge/internal/infrastructure/logging"
	"go.uber.org/zap"
)

// ErrorKind classifies mutation failures. Partial states get their own
// kinds so callers can tell "nothing happened" from "the filesystem is
// now in an intermediate state".
type ErrorKind string

const (
	KindNone             ErrorKind = ""
	KindNotFound         ErrorKind = "not_found"
	KindAlreadyExists    ErrorKind = "already_exists"
	KindPermissionDenied ErrorKind = "permission_denied"
	KindPartialMove      ErrorKind = "partial_move"
	KindDeleteUnverified ErrorKind = "delete_unverified"
	KindBackupFailed     ErrorKind = "backup_failed"
	KindIOError          ErrorKind = "io_error"
)

// Outcome reports the verified result of a mutation. On failure, Kind
// and Message say what happened and which paths are involved; on
// success, BackupPath is set when a backup was taken.
type Outcome struct {
	Success     bool      `json:"success"`
	Source      string    `json:"source,omitempty"`
	Destination string    `json:"destination,omitempty"`
	BackupPath  string    `json:"backup_path,omitempty"`
	Kind        ErrorKind `json:"kind,omitempty"`
	Message     string    `json:"message,omitempty"`
}

// Options controls a single mutation.
type Options struct {
	// Overwrite allows replacing an existing destination.
	Overwrite bool
	// Backup preserves the overwritten destination (or the deleted
	// path) at a timestamped sibling path before the mutation.
	Backup bool
	// MakeParents creates missing destination parent directories.
	MakeParents bool
}

const backupTimeFormat = "20060102T150405.000000000"

// Mutator performs copy, move and delete with a fixed discipline:
// validate inputs, take any requested backup, mutate, then verify the
// post-state before reporting success. A mutation is never reported
// successful on the strength of the OS call alone.
type Mutator struct {
	fs  FS
	log *logging.Logger
	now func() time.Time
}

// NewMutator creates a mutator over the real filesystem.
func NewMutator(log *logging.Logger) *Mutator {
	return NewMutatorFS(OSFS{}, log)
}

// NewMutatorFS creates a mutator over the given FS.
func NewMutatorFS(fsys FS, log *logging.Logger) *Mutator {
	if log == nil {
		log = logging.NewNop()
	}
	return &Mutator{fs: fsys, log: log, now: time.Now}
}

// Copy copies a file or directory. File content lands in a temporary
// file in the destination directory and is renamed into place, so a
// reader never observes a half-written destination.
func (m *Mutator) Copy(ctx context.Context, src, dst string, opts Options) Outcome {
	out := Outcome{Source: src, Destination: dst}

	srcInfo, fail := m.validate(ctx, src, dst, opts, &out)
	if fail {
		return out
	}

	if !m.prepareDestination(dst, opts, &out) {
		return out
	}

	var err error
	if srcInfo.IsDir() {
		err = m.copyDir(ctx, src, dst)
	} else {
		err = m.copyFile(ctx, src, dst, srcInfo)
	}
	if err != nil {
		return m.fail(&out, classify(err), fmt.Sprintf("copy failed: %v", err))
	}

	// Verify the destination before claiming success.
	dstInfo, err := m.fs.Stat(dst)
	if err != nil {
		return m.fail(&out, KindIOError, fmt.Sprintf("copy not verifiable: %v", err))
	}
	if !srcInfo.IsDir() && dstInfo.Size() != srcInfo.Size() {
		return m.fail(&out, KindIOError,
			fmt.Sprintf("copy incomplete: wrote %d of %d bytes", dstInfo.Size(), srcInfo.Size()))
	}

	out.Success = true
	m.log.Debug("copy verified", zap.String("source", src), zap.String("destination", dst))
	return out
}

// Move moves a file or directory, preferring an atomic rename and
// falling back to copy-then-delete across filesystems. If the copy
// lands but the source cannot be removed, the outcome is PartialMove:
// both paths exist and the caller must know.
func (m *Mutator) Move(ctx context.Context, src, dst string, opts Options) Outcome {
	out := Outcome{Source: src, Destination: dst}

	srcInfo, fail := m.validate(ctx, src, dst, opts, &out)
	if fail {
		return out
	}

	if !m.prepareDestination(dst, opts, &out) {
		return out
	}

	if err := m.fs.Rename(src, dst); err != nil {
		if !isCrossDevice(err) {
			return m.fail(&out, classify(err), fmt.Sprintf("move failed: %v", err))
		}
		if !m.moveAcrossVolumes(ctx, src, dst, srcInfo, &out) {
			return out
		}
	}

	// Verify: destination present, source gone.
	if _, err := m.fs.Stat(dst); err != nil {
		return m.fail(&out, KindIOError, fmt.Sprintf("move not verifiable: %v", err))
	}
	if _, err := m.fs.Stat(src); err == nil {
		return m.fail(&out, KindPartialMove, "source still exists after move")
	}

	out.Success = true
	m.log.Debug("move verified", zap.String("source", src), zap.String("destination", dst))
	return out
}

// Delete removes a file or directory and confirms it is gone. A
// removal the OS accepted but that left the path in place is reported
// as DeleteUnverified, never as success.
func (m *Mutator) Delete(ctx context.Context, path string, opts Options) Outcome {
	out := Outcome{Source: path}

	if err := ctx.Err(); err != nil {
		return m.fail(&out, KindIOError, err.Error())
	}

	info, err := m.fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m.fail(&out, KindNotFound, "path does not exist")
		}
		return m.fail(&out, classify(err), fmt.Sprintf("cannot inspect path: %v", err))
	}

	if opts.Backup {
		// Backup-by-rename doubles as the removal.
		backup := m.backupPath(path)
		if err := m.fs.Rename(path, backup); err != nil {
			return m.fail(&out, KindBackupFailed, fmt.Sprintf("backup failed: %v", err))
		}
		out.BackupPath = backup
	} else {
		if info.IsDir() {
			err = m.fs.RemoveAll(path)
		} else {
			err = m.fs.Remove(path)
		}
		if err != nil {
			return m.fail(&out, classify(err), fmt.Sprintf("delete failed: %v", err))
		}
	}

	// The OS accepted the removal; trust only a stat that proves it.
	if _, err := m.fs.Stat(path); err == nil {
		return m.fail(&out, KindDeleteUnverified, "path still exists after delete")
	} else if !errors.Is(err, os.ErrNotExist) {
		return m.fail(&out, KindDeleteUnverified, fmt.Sprintf("cannot confirm deletion: %v", err))
	}

	out.Success = true
	m.log.Debug("delete verified", zap.String("path", path), zap.String("backup", out.BackupPath))
	return out
}

// validate checks the source and destination preconditions shared by
// copy and move. It returns the source info and whether out already
// holds a failure.
func (m *Mutator) validate(ctx context.Context, src, dst string, opts Options, out *Outcome) (os.FileInfo, bool) {
	if err := ctx.Err(); err != nil {
		m.fail(out, KindIOError, err.Error())
		return nil, true
	}
	if src == dst {
		m.fail(out, KindIOError, "source and destination are the same path")
		return nil, true
	}

	srcInfo, err := m.fs.Stat(src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			m.fail(out, KindNotFound, "source does not exist")
		} else {
			m.fail(out, classify(err), fmt.Sprintf("cannot inspect source: %v", err))
		}
		return nil, true
	}

	if _, err := m.fs.Stat(dst); err == nil {
		if !opts.Overwrite {
			m.fail(out, KindAlreadyExists, "destination already exists")
			return nil, true
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		m.fail(out, classify(err), fmt.Sprintf("cannot inspect destination: %v", err))
		return nil, true
	}

	return srcInfo, false
}

// prepareDestination takes the pre-mutation backup and creates parent
// directories. A failed backup blocks the mutation entirely.
func (m *Mutator) prepareDestination(dst string, opts Options, out *Outcome) bool {
	if _, err := m.fs.Stat(dst); err == nil && opts.Backup {
		backup := m.backupPath(dst)
		if err := m.fs.Rename(dst, backup); err != nil {
			m.fail(out, KindBackupFailed, fmt.Sprintf("backup failed: %v", err))
			return false
		}
		out.BackupPath = backup
	}

	parent := filepath.Dir(dst)
	if _, err := m.fs.Stat(parent); errors.Is(err, os.ErrNotExist) {
		if !opts.MakeParents {
			m.fail(out, KindNotFound, "destination parent does not exist")
			return false
		}
		if err := m.fs.MkdirAll(parent, 0o755); err != nil {
			m.fail(out, classify(err), fmt.Sprintf("cannot create parent: %v", err))
			return false
		}
	}
	return true
}

// moveAcrossVolumes emulates rename over a filesystem boundary. It
// reports into out and returns whether the fallback fully succeeded.
// A failed fallback never destroys a destination the copy did not
// create: file copies land via temp-and-rename, so dst holds either
// its old content or the complete new content, and a directory tree
// is cleaned up only when the copy created it.
func (m *Mutator) moveAcrossVolumes(ctx context.Context, src, dst string, srcInfo os.FileInfo, out *Outcome) bool {
	if srcInfo.IsDir() {
		_, statErr := m.fs.Stat(dst)
		dstExisted := statErr == nil

		if err := m.copyDir(ctx, src, dst); err != nil {
			if !dstExisted {
				if rmErr := m.fs.RemoveAll(dst); rmErr != nil {
					m.log.Warn("fallback cleanup failed",
						zap.String("destination", dst), zap.Error(rmErr))
				}
			}
			m.fail(out, classify(err), fmt.Sprintf("move fallback copy failed: %v", err))
			return false
		}
		if err := m.fs.RemoveAll(src); err != nil {
			m.fail(out, KindPartialMove, fmt.Sprintf("copied but could not remove source: %v", err))
			return false
		}
		return true
	}

	if err := m.copyFile(ctx, src, dst, srcInfo); err != nil {
		m.fail(out, classify(err), fmt.Sprintf("move fallback copy failed: %v", err))
		return false
	}
	if err := m.fs.Remove(src); err != nil {
		m.fail(out, KindPartialMove, fmt.Sprintf("copied but could not remove source: %v", err))
		return false
	}
	return true
}

// copyFile streams src into a temp file beside dst and renames it into
// place once the content is synced.
func (m *Mutator) copyFile(ctx context.Context, src, dst string, srcInfo os.FileInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	in, err := m.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := m.fs.CreateTemp(filepath.Dir(dst), ".fb-copy-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	cleanup := func(cause error) error {
		tmp.Close()
		m.fs.Remove(tmpName)
		return cause
	}

	if _, err := io.Copy(tmp, in); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		m.fs.Remove(tmpName)
		return err
	}
	if err := m.fs.Chmod(tmpName, srcInfo.Mode().Perm()); err != nil {
		m.fs.Remove(tmpName)
		return err
	}
	if err := m.fs.Rename(tmpName, dst); err != nil {
		m.fs.Remove(tmpName)
		return err
	}
	return nil
}

// copyDir copies a directory tree. Individual files still go through
// the temp-and-rename path.
func (m *Mutator) copyDir(ctx context.Context, src, dst string) error {
	srcInfo, err := m.fs.Stat(src)
	if err != nil {
		return err
	}
	if err := m.fs.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}

	entries, err := m.fs.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := m.copyDir(ctx, srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		if err := m.copyFile(ctx, srcPath, dstPath, info); err != nil {
			return err
		}
	}
	return nil
}

func (m *Mutator) backupPath(path string) string {
	return path + ".bak." + m.now().UTC().Format(backupTimeFormat)
}

func (m *Mutator) fail(out *Outcome, kind ErrorKind, msg string) Outcome {
	out.Success = false
	out.Kind = kind
	out.Message = msg
	m.log.Debug("mutation failed",
		zap.String("kind", string(kind)),
		zap.String("source", out.Source),
		zap.String("destination", out.Destination),
		zap.String("message", msg))
	return *out
}

// classify maps OS errors to kinds. PartialMove and DeleteUnverified
// are assigned only by the verify steps, never here.
func classify(err error) ErrorKind {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return KindNotFound
	case errors.Is(err, os.ErrPermission):
		return KindPermissionDenied
	case errors.Is(err, os.ErrExist):
		return KindAlreadyExists
	default:
		return KindIOError
	}
}

func isCrossDevice(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}
