package ports

import (
	"io/fs"
	"time"
)

// FileSystem is the filesystem capability consumed by the tree algorithms.
//
//go:generate mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// Lstat returns file info without following a trailing symbolic link.
	Lstat(path string) (fs.FileInfo, error)
	// Stat returns file info following symbolic links.
	Stat(path string) (fs.FileInfo, error)
	// ReadDir lists the children of a directory sorted by name, without following symbolic links.
	ReadDir(path string) ([]fs.FileInfo, error)
	// Remove deletes a single node.
	Remove(path string) error
	// Chmod changes the permission bits of a node.
	Chmod(path string, mode fs.FileMode) error
	// Chtimes changes access and modification times.
	Chtimes(path string, atime, mtime time.Time) error
	// Rename moves a node.
	Rename(oldpath, newpath string) error
	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path string, perm fs.FileMode) error
	// CanRead reports whether the current process may read path.
	CanRead(path string) bool
	// CanWrite reports whether the current process may write path.
	CanWrite(path string) bool
	// SupportsPermissions reports whether Chmod has an effect on this filesystem.
	SupportsPermissions() bool
}
