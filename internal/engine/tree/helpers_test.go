package tree_test

import (
	"errors"
	iofs "io/fs"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	fsadapter "go.trai.ch/fsguard/internal/adapters/fs"
)

// strictFS refuses to remove non-empty directories and children of unwritable
// directories like a POSIX filesystem, and can inject failures for chosen paths.
type strictFS struct {
	*fsadapter.FileSystem
	failRemove  map[string]bool
	failReadDir map[string]error
}

func newStrictFS() *strictFS {
	return &strictFS{
		FileSystem:  fsadapter.NewFileSystem(afero.NewMemMapFs()),
		failRemove:  map[string]bool{},
		failReadDir: map[string]error{},
	}
}

func (s *strictFS) Remove(path string) error {
	if s.failRemove[path] {
		return &iofs.PathError{Op: "remove", Path: path, Err: syscall.EBUSY}
	}
	if !s.CanWrite(filepath.Dir(path)) {
		return &iofs.PathError{Op: "remove", Path: path, Err: syscall.EACCES}
	}
	info, err := s.Lstat(path)
	if err == nil && info.IsDir() {
		children, _ := s.FileSystem.ReadDir(path)
		if len(children) > 0 {
			return &iofs.PathError{Op: "remove", Path: path, Err: syscall.ENOTEMPTY}
		}
	}
	return s.FileSystem.Remove(path)
}

func (s *strictFS) ReadDir(path string) ([]iofs.FileInfo, error) {
	if err, ok := s.failReadDir[path]; ok {
		return nil, err
	}
	return s.FileSystem.ReadDir(path)
}

func (s *strictFS) exists(path string) bool {
	_, err := s.Lstat(path)
	return !errors.Is(err, iofs.ErrNotExist)
}

// build creates directories (trailing slash) and files below root.
func (s *strictFS) build(t *testing.T, root string, paths ...string) {
	t.Helper()
	require.NoError(t, s.MkdirAll(root, 0o755))
	for _, p := range paths {
		full := filepath.Join(root, p)
		if p[len(p)-1] == '/' {
			require.NoError(t, s.MkdirAll(full, 0o755))
			continue
		}
		require.NoError(t, s.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, afero.WriteFile(s.Afero(), full, []byte("x"), 0o644))
	}
}

// touch sets the modification time of every given path, relative to root.
func (s *strictFS) touch(t *testing.T, root string, mtime time.Time, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, s.Chtimes(filepath.Join(root, p), mtime, mtime))
	}
}

type fileInfo struct {
	name    string
	mode    iofs.FileMode
	modTime time.Time
}

func (f fileInfo) Name() string { return f.name }
func (f fileInfo) Size() int64 { return 0 }
func (f fileInfo) Mode() iofs.FileMode { return f.mode }
func (f fileInfo) ModTime() time.Time { return f.modTime }
func (f fileInfo) IsDir() bool { return f.mode.IsDir() }
func (f fileInfo) Sys() any { return nil }
