// Package fs provides file system adapters: an afero-backed filesystem capability,
// a parallel finder, a tree fingerprinter and a glob path resolver.
package fs

import (
	iofs "io/fs"
	"time"

	"github.com/spf13/afero"
	"go.trai.ch/fsguard/internal/core/ports"
)

var _ ports.FileSystem = (*FileSystem)(nil)

// FileSystem implements ports.FileSystem on top of an afero.Fs.
type FileSystem struct {
	fs afero.Fs
}

// New returns a FileSystem over the operating system.
func New() *FileSystem {
	return NewFileSystem(afero.NewOsFs())
}

// NewFileSystem wraps an arbitrary afero filesystem, typically afero.NewMemMapFs in tests.
func NewFileSystem(fs afero.Fs) *FileSystem {
	return &FileSystem{fs: fs}
}

// Afero exposes the wrapped filesystem.
func (f *FileSystem) Afero() afero.Fs {
	return f.fs
}

// Lstat returns file info without following a trailing symbolic link when the
// filesystem knows about links.
func (f *FileSystem) Lstat(path string) (iofs.FileInfo, error) {
	if l, ok := f.fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return f.fs.Stat(path)
}

// Stat returns file info following symbolic links.
func (f *FileSystem) Stat(path string) (iofs.FileInfo, error) {
	return f.fs.Stat(path)
}

// ReadDir lists a directory sorted by name.
func (f *FileSystem) ReadDir(path string) ([]iofs.FileInfo, error) {
	return afero.ReadDir(f.fs, path)
}

// Remove deletes a single node.
func (f *FileSystem) Remove(path string) error {
	return f.fs.Remove(path)
}

// Chmod changes permission bits.
func (f *FileSystem) Chmod(path string, mode iofs.FileMode) error {
	return f.fs.Chmod(path, mode)
}

// Chtimes changes access and modification times.
func (f *FileSystem) Chtimes(path string, atime, mtime time.Time) error {
	return f.fs.Chtimes(path, atime, mtime)
}

// Rename moves a node.
func (f *FileSystem) Rename(oldpath, newpath string) error {
	return f.fs.Rename(oldpath, newpath)
}

// MkdirAll creates a directory and its parents.
func (f *FileSystem) MkdirAll(path string, perm iofs.FileMode) error {
	return f.fs.MkdirAll(path, perm)
}

// CanRead reports whether path is readable by the current process.
func (f *FileSystem) CanRead(path string) bool {
	if f.isOS() {
		return osAccess(path, accessRead)
	}
	return f.hasOwnerBit(path, 0o400)
}

// CanWrite reports whether path is writable by the current process.
func (f *FileSystem) CanWrite(path string) bool {
	if f.isOS() {
		return osAccess(path, accessWrite)
	}
	return f.hasOwnerBit(path, 0o200)
}

// SupportsPermissions reports whether Chmod is meaningful.
func (f *FileSystem) SupportsPermissions() bool {
	if f.isOS() {
		return osPermissions
	}
	return true
}

func (f *FileSystem) isOS() bool {
	_, ok := f.fs.(*afero.OsFs)
	return ok
}

func (f *FileSystem) hasOwnerBit(path string, bit iofs.FileMode) bool {
	info, err := f.fs.Stat(path)
	return err == nil && info.Mode().Perm()&bit != 0
}
