package filesystem

import (
	"io"
	"os"
)

// FS abstracts the handful of OS calls the mutator issues. The
// production implementation delegates straight to the os package;
// tests substitute implementations that misbehave in controlled ways
// so partial-failure reporting can be exercised.
type FS interface {
	Stat(name string) (os.FileInfo, error)
	ReadDir(name string) ([]os.DirEntry, error)
	Open(name string) (io.ReadCloser, error)
	CreateTemp(dir, pattern string) (TempFile, error)
	Chmod(name string, mode os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
	Rename(oldpath, newpath string) error
	Remove(name string) error
	RemoveAll(path string) error
}

// TempFile is the subset of *os.File the mutator writes through.
type TempFile interface {
	io.Writer
	Name() string
	Sync() error
	Close() error
}

// OSFS is the FS backed by the real filesystem.
type OSFS struct{}

func (OSFS) Stat(name string) (os.FileInfo, error)        { return os.Stat(name) }
func (OSFS) ReadDir(name string) ([]os.DirEntry, error)   { return os.ReadDir(name) }
func (OSFS) Open(name string) (io.ReadCloser, error)      { return os.Open(name) }
func (OSFS) Chmod(name string, mode os.FileMode) error    { return os.Chmod(name, mode) }
func (OSFS) MkdirAll(path string, perm os.FileMode) error { return os.MkdirAll(path, perm) }
func (OSFS) Rename(oldpath, newpath string) error         { return os.Rename(oldpath, newpath) }
func (OSFS) Remove(name string) error                     { return os.Remove(name) }
func (OSFS) RemoveAll(path string) error                  { return os.RemoveAll(path) }

func (OSFS) CreateTemp(dir, pattern string) (TempFile, error) {
	return os.CreateTemp(dir, pattern)
}
