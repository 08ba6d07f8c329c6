package tree_test

import (
	"context"
	iofs "io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	fsadapter "go.trai.ch/fsguard/internal/adapters/fs"
	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/fsguard/internal/core/ports/mocks"
	"go.trai.ch/fsguard/internal/engine/activity"
	"go.trai.ch/fsguard/internal/engine/tree"
	"go.uber.org/mock/gomock"
)

func TestDeleteRecursively_RemovesEverything(t *testing.T) {
	fsys := newStrictFS()
	fsys.build(t, "/r", "a/b/c.txt", "a/d", "e/", "f")

	var ticks activity.Counter
	deleted, err := tree.NewDeleter(fsys, nil).DeleteRecursively(context.Background(), "/r", tree.DeleteOptions{Observer: &ticks})

	require.NoError(t, err)
	assert.True(t, deleted)
	assert.False(t, fsys.exists("/r"))
	assert.Equal(t, int64(6), ticks.Count())
}

func TestDeleteRecursively_SingleFile(t *testing.T) {
	fsys := newStrictFS()
	fsys.build(t, "/r", "f")

	deleted, err := tree.NewDeleter(fsys, nil).DeleteRecursively(context.Background(), "/r/f", tree.DeleteOptions{})

	require.NoError(t, err)
	assert.True(t, deleted)
	assert.False(t, fsys.exists("/r/f"))
}

func TestDeleteRecursively_MissingPathIsNoop(t *testing.T) {
	fsys := newStrictFS()

	deleted, err := tree.NewDeleter(fsys, nil).DeleteRecursively(context.Background(), "/nowhere", tree.DeleteOptions{})

	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeleteRecursively_FilterPrunesAtFirstMatch(t *testing.T) {
	fsys := newStrictFS()
	fsys.build(t, "/r",
		"keep/a.txt",
		"keep/cache/x.txt",
		"keep/cache/deeper/y",
		"cache/z",
		"b.tmp",
		"c.txt",
	)
	cache, err := domain.Glob("cache")
	require.NoError(t, err)
	tmp, err := domain.Glob("*.tmp")
	require.NoError(t, err)

	deleted, err := tree.NewDeleter(fsys, nil).DeleteRecursively(context.Background(), "/r", tree.DeleteOptions{
		Filter: domain.Or(cache, tmp),
	})

	require.NoError(t, err)
	assert.False(t, deleted, "root does not match the filter")
	for _, gone := range []string{"/r/keep/cache", "/r/keep/cache/x.txt", "/r/keep/cache/deeper/y", "/r/cache", "/r/b.tmp"} {
		assert.False(t, fsys.exists(gone), gone)
	}
	for _, kept := range []string{"/r", "/r/keep", "/r/keep/a.txt", "/r/c.txt"} {
		assert.True(t, fsys.exists(kept), kept)
	}
}

func TestDeleteRecursively_FilterMatchingRoot(t *testing.T) {
	fsys := newStrictFS()
	fsys.build(t, "/r", "a/b")

	deleted, err := tree.NewDeleter(fsys, nil).DeleteRecursively(context.Background(), "/r", tree.DeleteOptions{
		Filter: domain.AcceptAll(),
	})

	require.NoError(t, err)
	assert.True(t, deleted)
	assert.False(t, fsys.exists("/r"))
}

func TestDeleteRecursively_BestEffort(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Error(gomock.Any()).MinTimes(1)

	fsys := newStrictFS()
	fsys.build(t, "/r", "a/stuck", "a/free", "b")
	fsys.failRemove["/r/a/stuck"] = true

	deleted, err := tree.NewDeleter(fsys, logger).DeleteRecursively(context.Background(), "/r", tree.DeleteOptions{})

	require.NoError(t, err)
	assert.False(t, deleted)
	assert.True(t, fsys.exists("/r/a/stuck"))
	assert.False(t, fsys.exists("/r/a/free"))
	assert.False(t, fsys.exists("/r/b"))
}

func TestDeleteRecursively_Cancelled(t *testing.T) {
	fsys := newStrictFS()
	fsys.build(t, "/r", "a", "b")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	deleted, err := tree.NewDeleter(fsys, nil).DeleteRecursively(ctx, "/r", tree.DeleteOptions{})

	assert.ErrorIs(t, err, domain.ErrCancelled)
	assert.False(t, deleted)
	assert.True(t, fsys.exists("/r/a"))
}

func TestDeleteRecursively_VerboseLogging(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	gomock.InOrder(
		logger.EXPECT().Info("Deleting file '/r/f'"),
		logger.EXPECT().Info("Deleting directory '/r'"),
	)

	fsys := newStrictFS()
	fsys.build(t, "/r", "f")

	deleted, err := tree.NewDeleter(fsys, logger).DeleteRecursively(context.Background(), "/r", tree.DeleteOptions{Verbose: true})

	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestDelete_RetriesAfterOpeningPermissions(t *testing.T) {
	ctrl := gomock.NewController(t)
	fsys := mocks.NewMockFileSystem(ctrl)
	info := fileInfo{name: "ro", mode: 0o444}

	gomock.InOrder(
		fsys.EXPECT().Remove("/ro").Return(&iofs.PathError{Op: "remove", Path: "/ro", Err: syscall.EACCES}),
		fsys.EXPECT().Lstat("/ro").Return(info, nil),
		fsys.EXPECT().SupportsPermissions().Return(true),
		fsys.EXPECT().Chmod("/ro", iofs.FileMode(0o777)).Return(nil),
		fsys.EXPECT().Remove("/ro").Return(nil),
	)

	assert.True(t, tree.NewDeleter(fsys, nil).Delete("/ro"))
}

func TestDelete_NoRetryWithoutPermissionSupport(t *testing.T) {
	ctrl := gomock.NewController(t)
	fsys := mocks.NewMockFileSystem(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	fsys.EXPECT().Remove("/ro").Return(syscall.EACCES)
	fsys.EXPECT().Lstat("/ro").Return(fileInfo{name: "ro"}, nil)
	fsys.EXPECT().SupportsPermissions().Return(false)
	logger.EXPECT().Error(gomock.Any())

	assert.False(t, tree.NewDeleter(fsys, logger).Delete("/ro"))
}

func TestDelete_VanishedPathIsNotRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	fsys := mocks.NewMockFileSystem(ctrl)

	fsys.EXPECT().Remove("/gone").Return(iofs.ErrNotExist)
	fsys.EXPECT().Lstat("/gone").Return(nil, iofs.ErrNotExist)

	assert.False(t, tree.NewDeleter(fsys, nil).Delete("/gone"))
}

func TestDeleteRecursively_RepairsUnwritableDirectory(t *testing.T) {
	fsys := newStrictFS()
	fsys.build(t, "/r", "locked/f")
	require.NoError(t, fsys.Chmod("/r/locked", 0o555))

	deleted, err := tree.NewDeleter(fsys, nil).DeleteRecursively(context.Background(), "/r", tree.DeleteOptions{})

	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestDeleteRecursively_SymlinkToDirectoryIsNotFollowed(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "target")
	require.NoError(t, os.MkdirAll(target, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(target, "precious"), []byte("x"), 0o600))
	root := filepath.Join(tmpDir, "root")
	require.NoError(t, os.MkdirAll(root, 0o750))
	if err := os.Symlink(target, filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info("Deleting symbolic link to a directory '" + filepath.Join(root, "link") + "'")
	logger.EXPECT().Info("Deleting directory '" + root + "'")

	deleted, err := tree.NewDeleter(fsadapter.New(), logger).DeleteRecursively(context.Background(), root, tree.DeleteOptions{Verbose: true})

	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NoDirExists(t, root)
	assert.FileExists(t, filepath.Join(target, "precious"))
}

func TestDeleteRecursively_RootSymlinkDeletesOnlyLink(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "target")
	require.NoError(t, os.MkdirAll(target, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(target, "precious"), []byte("x"), 0o600))
	link := filepath.Join(tmpDir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	deleted, err := tree.NewDeleter(fsadapter.New(), nil).DeleteRecursively(context.Background(), link, tree.DeleteOptions{})

	require.NoError(t, err)
	assert.True(t, deleted)
	_, statErr := os.Lstat(link)
	assert.ErrorIs(t, statErr, iofs.ErrNotExist)
	assert.FileExists(t, filepath.Join(target, "precious"))
}
