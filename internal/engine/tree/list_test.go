package tree_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/fsguard/internal/core/ports/mocks"
	"go.trai.ch/fsguard/internal/engine/activity"
	"go.trai.ch/fsguard/internal/engine/tree"
	"go.uber.org/mock/gomock"
)

func listTree(t *testing.T) *strictFS {
	t.Helper()
	fsys := newStrictFS()
	fsys.build(t, "/t", "a/b.txt", "a/c.bin", "a/d/e.txt")
	return fsys
}

func TestListFiles_RecursiveByExtension(t *testing.T) {
	fsys := listTree(t)

	got, err := tree.NewLister(fsys, nil).ListFiles(context.Background(), "/t", []string{"txt"}, true, nil)

	require.NoError(t, err)
	assert.Equal(t, []domain.Entry{
		{Path: "/t/a/b.txt", Kind: domain.KindFile},
		{Path: "/t/a/d/e.txt", Kind: domain.KindFile},
	}, got)
}

func TestListFiles_NonRecursive(t *testing.T) {
	fsys := listTree(t)

	got, err := tree.NewLister(fsys, nil).ListFiles(context.Background(), "/t/a", nil, false, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"/t/a/b.txt", "/t/a/c.bin"}, domain.Paths(got))
}

func TestListFilesAndDirectories_PreOrderWithTicks(t *testing.T) {
	fsys := listTree(t)

	var ticks activity.Counter
	got, err := tree.NewLister(fsys, nil).ListFilesAndDirectories(context.Background(), "/t", true, &ticks)

	require.NoError(t, err)
	assert.Equal(t, []domain.Entry{
		{Path: "/t/a", Kind: domain.KindDirectory},
		{Path: "/t/a/b.txt", Kind: domain.KindFile},
		{Path: "/t/a/c.bin", Kind: domain.KindFile},
		{Path: "/t/a/d", Kind: domain.KindDirectory},
		{Path: "/t/a/d/e.txt", Kind: domain.KindFile},
	}, got)
	assert.Equal(t, int64(5), ticks.Count())
}

func TestListDirectories_DescendsThroughRejectedDirectories(t *testing.T) {
	fsys := listTree(t)
	onlyD, err := domain.Glob("d")
	require.NoError(t, err)

	var ticks activity.Counter
	got, err := tree.NewLister(fsys, nil).ListDirectories(context.Background(), "/t", onlyD, true, &ticks)

	require.NoError(t, err)
	assert.Equal(t, []string{"/t/a/d"}, domain.Paths(got))
	assert.Equal(t, int64(5), ticks.Count(), "non-matching nodes are ticked too")
}

func TestList_NonRecursiveFilterInline(t *testing.T) {
	fsys := listTree(t)

	got, err := tree.NewLister(fsys, nil).List(context.Background(), "/t/a", tree.ListOptions{
		Filter: domain.Extensions("bin").Or(domain.Directories()),
		Select: tree.SelectBoth,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"/t/a/c.bin", "/t/a/d"}, domain.Paths(got))
}

func TestList_EnvironmentFailures(t *testing.T) {
	tests := []struct {
		name   string
		dir    string
		setup  func(*strictFS)
		reason string
	}{
		{"not found", "/t/missing", func(*strictFS) {}, "Path '/t/missing' does not exist."},
		{"not a directory", "/t/a/b.txt", func(*strictFS) {}, "Path '/t/a/b.txt' is not a directory."},
		{"listing error", "/t/a", func(s *strictFS) { s.failReadDir["/t/a"] = errors.New("input/output error") }, "Error listing directory '/t/a'"},
		{"nested listing error", "/t", func(s *strictFS) { s.failReadDir["/t/a/d"] = errors.New("input/output error") }, "Error listing directory '/t/a/d'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := listTree(t)
			tt.setup(fsys)

			_, err := tree.NewLister(fsys, nil).ListFilesAndDirectories(context.Background(), tt.dir, true, nil)

			require.ErrorIs(t, err, domain.ErrEnvironmentFailure)
			var opErr *domain.OpError
			require.ErrorAs(t, err, &opErr)
			assert.Equal(t, tt.reason, opErr.Reason)
		})
	}
}

func TestList_LogsClassification(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn("Failed to get listing of directory '/t/a/b.txt' (path is file instead of directory).")

	_, err := tree.NewLister(listTree(t), logger).ListFiles(context.Background(), "/t/a/b.txt", nil, false, nil)

	assert.ErrorIs(t, err, domain.ErrEnvironmentFailure)
}

func TestList_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tree.NewLister(listTree(t), nil).ListFiles(ctx, "/t", nil, true, nil)

	assert.ErrorIs(t, err, domain.ErrCancelled)
}

func TestFindFiles_IncludesRoot(t *testing.T) {
	fsys := listTree(t)

	got, err := tree.FindFiles(context.Background(), fsys, "/t/a", domain.Or(domain.Directories(), domain.Extensions("bin")), nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"/t/a", "/t/a/c.bin", "/t/a/d"}, domain.Paths(got))
}

func TestCheckAccessible(t *testing.T) {
	fsys := listTree(t)
	require.NoError(t, fsys.Chmod("/t/a/c.bin", 0o444))

	assert.Empty(t, tree.CheckDirectoryAccessible(fsys, "/t/a", "Incoming", true))
	assert.Equal(t, "Incoming path '/t/nope' does not exist.", tree.CheckPathAccessible(fsys, "/t/nope", "Incoming", false))
	assert.Equal(t, "Outgoing path '/t/a/c.bin' is not writable.", tree.CheckFileAccessible(fsys, "/t/a/c.bin", "Outgoing", true))
	assert.Empty(t, tree.CheckFileAccessible(fsys, "/t/a/c.bin", "Outgoing", false))
	assert.Equal(t, "Path '/t/a/b.txt' is supposed to be a Buffer directory but isn't.", tree.CheckDirectoryAccessible(fsys, "/t/a/b.txt", "Buffer", false))
}
