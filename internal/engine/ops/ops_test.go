package ops_test

import (
	"context"
	iofs "io/fs"
	"path/filepath"
	"testing"
	"testing/synctest"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	fsadapter "go.trai.ch/fsguard/internal/adapters/fs"
	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/fsguard/internal/core/ports/mocks"
	"go.trai.ch/fsguard/internal/engine/activity"
	"go.trai.ch/fsguard/internal/engine/ops"
	"go.trai.ch/fsguard/internal/engine/supervisor"
	"go.uber.org/mock/gomock"
)

func memTree(t *testing.T, files ...string) *fsadapter.FileSystem {
	t.Helper()
	mem := afero.NewMemMapFs()
	for _, f := range files {
		require.NoError(t, mem.MkdirAll(filepath.Dir(f), 0o755))
		require.NoError(t, afero.WriteFile(mem, f, []byte("x"), 0o644))
	}
	return fsadapter.NewFileSystem(mem)
}

func TestOperations_Exists(t *testing.T) {
	o := ops.New(memTree(t, "/d/f"), nil)

	ok, err := o.Exists(context.Background(), "/d/f")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = o.Exists(context.Background(), "/d/missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOperations_DeleteRecursively(t *testing.T) {
	fsys := memTree(t, "/d/a/f", "/d/b")
	o := ops.New(fsys, nil)

	var ticks activity.Counter
	require.NoError(t, o.DeleteRecursively(context.Background(), "/d", nil, &ticks))

	_, err := fsys.Lstat("/d")
	assert.ErrorIs(t, err, iofs.ErrNotExist)
	assert.Equal(t, int64(3), ticks.Count())
}

func TestOperations_DeleteRecursivelyFailsWhenNothingWasDeleted(t *testing.T) {
	o := ops.New(memTree(t), nil)

	err := o.DeleteRecursively(context.Background(), "/nowhere", nil, nil)

	require.ErrorIs(t, err, domain.ErrNotDeleted)
}

func TestOperations_RemoveRecursivelyWithFilter(t *testing.T) {
	fsys := memTree(t, "/d/keep.txt", "/d/sub/drop.tmp", "/d/sub/keep.go")
	o := ops.New(fsys, nil)

	ok, err := o.RemoveRecursively(context.Background(), "/d", domain.Extensions("tmp"), nil)

	require.NoError(t, err)
	assert.False(t, ok, "root did not match the filter")
	_, err = fsys.Lstat("/d/sub/drop.tmp")
	assert.ErrorIs(t, err, iofs.ErrNotExist)
	_, err = fsys.Lstat("/d/sub/keep.go")
	assert.NoError(t, err)
}

func TestOperations_Primitives(t *testing.T) {
	fsys := memTree(t, "/d/f")
	o := ops.New(fsys, nil)
	ctx := context.Background()
	mtime := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, o.Mkdir(ctx, "/e/g"))
	require.NoError(t, o.Rename(ctx, "/d/f", "/e/g/f"))
	require.NoError(t, o.Touch(ctx, "/e/g/f", mtime))

	info, err := fsys.Stat("/e/g/f")
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime))

	err = o.Touch(ctx, "/missing", mtime)
	assert.Error(t, err)
}

func TestOperations_ListAndFind(t *testing.T) {
	o := ops.New(memTree(t, "/t/a/b.txt", "/t/a/c.bin", "/t/a/d/e.txt"), nil)
	ctx := context.Background()

	files, err := o.ListFiles(ctx, "/t", []string{"txt"}, true, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/t/a/b.txt", "/t/a/d/e.txt"}, domain.Paths(files))

	dirs, err := o.ListDirectories(ctx, "/t", nil, true, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/t/a", "/t/a/d"}, domain.Paths(dirs))

	found, err := o.Find(ctx, "/t/a/d", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/t/a/d", "/t/a/d/e.txt"}, domain.Paths(found))
}

func TestMonitored_PassesResultsThrough(t *testing.T) {
	fsys := memTree(t, "/t/a/b.txt", "/t/c.txt")
	m := ops.NewMonitored(ops.New(fsys, nil), supervisor.New(nil), domain.UseDefaultTiming())

	var ticks activity.Counter
	entries, err := m.ListFilesAndDirectories(context.Background(), "/t", true, &ticks)

	require.NoError(t, err)
	assert.Equal(t, []string{"/t/a", "/t/a/b.txt", "/t/c.txt"}, domain.Paths(entries))
	assert.Equal(t, int64(3), ticks.Count(), "caller observer still receives ticks")

	ok, err := m.RemoveRecursively(context.Background(), "/t", nil, nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMonitored_HungDeleteTimesOut(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fsys := mocks.NewMockFileSystem(ctrl)
		logger := mocks.NewMockLogger(ctrl)

		release := make(chan struct{})
		fsys.EXPECT().Lstat("/mnt/x").DoAndReturn(func(string) (iofs.FileInfo, error) {
			<-release
			return nil, iofs.ErrNotExist
		})
		logger.EXPECT().Warn("No delete activity of path /mnt/x for 00:00:00.110")

		params := domain.MustTimingParameters(10*time.Millisecond, 100*time.Millisecond)
		m := ops.NewMonitored(ops.New(fsys, nil), supervisor.New(logger), domain.WithTiming(params))

		_, err := m.RemoveRecursively(context.Background(), "/mnt/x", nil, nil)

		require.ErrorIs(t, err, domain.ErrHangTimeout)
		var opErr *domain.OpError
		require.ErrorAs(t, err, &opErr)
		assert.Equal(t, "removeRecursively", opErr.Operation)
		assert.Equal(t, 110*time.Millisecond, opErr.Elapsed)

		close(release)
		synctest.Wait()
	})
}

func TestMonitored_PrimitiveHangs(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fsys := mocks.NewMockFileSystem(ctrl)

		release := make(chan struct{})
		fsys.EXPECT().MkdirAll("/mnt/new", gomock.Any()).DoAndReturn(func(string, iofs.FileMode) error {
			<-release
			return nil
		})

		params := domain.MustTimingParameters(time.Second, 5*time.Second)
		m := ops.NewMonitored(ops.New(fsys, nil), nil, domain.WithTiming(params))

		start := time.Now()
		err := m.Mkdir(context.Background(), "/mnt/new")

		require.ErrorIs(t, err, domain.ErrHangTimeout)
		assert.Equal(t, 6*time.Second, time.Since(start))

		close(release)
		synctest.Wait()
	})
}

func TestSession_CountsVisitsAndLogsSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "ls visited 3 nodes")
	})

	factory := ops.NewFactory(memTree(t, "/t/a/b.txt", "/t/c.txt"), logger, supervisor.New(logger))
	session := factory.NewSession("ls", ops.SessionOptions{Unmonitored: true})
	assert.Equal(t, "ls", session.Name())

	var extra activity.Counter
	_, err := session.Ops().ListFilesAndDirectories(context.Background(), "/t", true, session.Observer(&extra))

	require.NoError(t, err)
	assert.Equal(t, int64(3), session.Visits())
	assert.Equal(t, int64(3), extra.Count())
	session.Close()
}

func TestSession_MonitoredByDefault(t *testing.T) {
	factory := ops.NewFactory(memTree(t), nil, supervisor.New(nil))

	session := factory.NewSession("rm", ops.SessionOptions{})

	assert.IsType(t, &ops.Monitored{}, session.Ops())
}
