package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fsguard/cmd/fsguard/commands"
	"go.trai.ch/fsguard/internal/adapters/fs"
	"go.trai.ch/fsguard/internal/adapters/journal"
	"go.trai.ch/fsguard/internal/app"
	"go.trai.ch/fsguard/internal/build"
	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/fsguard/internal/core/ports"
	"go.trai.ch/fsguard/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type harness struct {
	loader   *mocks.MockConfigLoader
	executor *mocks.MockExecutor
	cfg      *domain.Config
	root     string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	root := t.TempDir()

	h := &harness{
		loader:   mocks.NewMockConfigLoader(ctrl),
		executor: mocks.NewMockExecutor(ctrl),
		cfg:      domain.DefaultConfig(),
		root:     root,
	}
	h.cfg.Removal.Journal = filepath.Join(root, "removals.json")
	h.loader.EXPECT().Load(gomock.Any()).Return(h.cfg, nil).AnyTimes()

	t.Cleanup(func() {
		_ = domain.DefaultTimingParameters().Set(domain.DefaultPollInterval, domain.DefaultMaxInactivity)
	})
	return h
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	a := app.New(app.Dependencies{
		ConfigLoader: h.loader,
		Logger:       logger,
		FileSystem:   fs.New(),
		Finder:       fs.NewWalker(),
		Resolver:     fs.NewResolver(),
		Executor:     h.executor,
		OpenJournal:  journal.Open,
	})

	var out bytes.Buffer
	cli := commands.New(a)
	cli.SetOutput(&out)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return out.String(), err
}

func (h *harness) write(t *testing.T, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(h.root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(f), 0o600))
	}
}

func TestVersion(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "fsguard version "+build.Version+"\n", out)
}

func TestRm(t *testing.T) {
	h := newHarness(t)
	h.write(t, "build/a.o", "build/sub/b.o")
	target := filepath.Join(h.root, "build")

	out, err := h.run(t, "rm", target)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted\t"+target)
	assert.NoDirExists(t, target)
}

func TestRm_Extensions(t *testing.T) {
	h := newHarness(t)
	h.write(t, "build/a.o", "build/keep.c")
	target := filepath.Join(h.root, "build")

	out, err := h.run(t, "rm", "--ext", "o", target)
	require.NoError(t, err)
	assert.Contains(t, out, "kept\t"+target)
	assert.NoFileExists(t, filepath.Join(target, "a.o"))
	assert.FileExists(t, filepath.Join(target, "keep.c"))
}

func TestRm_RequiresPath(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "rm")
	require.Error(t, err)
}

func TestLs(t *testing.T) {
	h := newHarness(t)
	h.write(t, "data/a.csv", "data/b.txt", "data/nested/c.csv")
	dir := filepath.Join(h.root, "data")

	out, err := h.run(t, "ls", "-r", "--files", "--ext", "csv", dir)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.csv"),
		filepath.Join(dir, "nested", "c.csv"),
	}, lines)

	out, err = h.run(t, "ls", "--dirs", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "nested")+"/\n", out)
}

func TestLs_NotADirectory(t *testing.T) {
	h := newHarness(t)
	h.write(t, "file.txt")

	_, err := h.run(t, "ls", filepath.Join(h.root, "file.txt"))
	require.Error(t, err)
	assert.Equal(t, domain.KindEnvironment, domain.KindOf(err))
}

func TestFind(t *testing.T) {
	h := newHarness(t)
	h.write(t, "src/main.go", "src/readme.md", "src/.git/HEAD")

	out, err := h.run(t, "find", "--parallel", "--glob", "*.go", h.root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(h.root, "src", "main.go")+"\n", out)
}

func TestLastChanged(t *testing.T) {
	h := newHarness(t)
	h.write(t, "tree/a.txt")

	stamp := time.Date(2022, 3, 4, 5, 6, 7, 0, time.UTC)
	for _, p := range []string{"tree/a.txt", "tree"} {
		require.NoError(t, os.Chtimes(filepath.Join(h.root, p), stamp, stamp))
	}

	out, err := h.run(t, "lastchanged", filepath.Join(h.root, "tree"))
	require.NoError(t, err)
	fields := strings.Split(strings.TrimSpace(out), "\t")
	require.Len(t, fields, 2)
	got, err := time.Parse(time.RFC3339Nano, fields[0])
	require.NoError(t, err)
	assert.True(t, stamp.Equal(got), got)
}

func TestLastChanged_InvalidAfter(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "lastchanged", "--after", "yesterday", h.root)
	require.Error(t, err)
}

func TestCheck(t *testing.T) {
	h := newHarness(t)
	h.write(t, "file.txt")

	out, err := h.run(t, "check", "--dir", h.root)
	require.NoError(t, err)
	assert.Equal(t, "ok\t"+h.root+"\n", out)

	_, err = h.run(t, "check", "--dir", filepath.Join(h.root, "file.txt"))
	require.Error(t, err)
	assert.Equal(t, domain.KindEnvironment, domain.KindOf(err))
}

func TestSupervise(t *testing.T) {
	h := newHarness(t)
	h.executor.EXPECT().
		Execute(gomock.Any(), ports.Command{Argv: []string{"rsync", "-a", "src/", "dst/"}}, gomock.Any()).
		Return(nil)

	_, err := h.run(t, "supervise", "--max-inactivity", "5s", "--", "rsync", "-a", "src/", "dst/")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, domain.DefaultTimingParameters().MaxInactivity())
}

func TestQueue(t *testing.T) {
	h := newHarness(t)
	h.write(t, "old/a.txt")
	target := filepath.Join(h.root, "old")

	_, err := h.run(t, "queue", "add", target)
	require.NoError(t, err)

	out, err := h.run(t, "queue", "list")
	require.NoError(t, err)
	assert.Equal(t, "pending\t"+target+"\n", out)

	_, err = h.run(t, "queue", "drain")
	require.NoError(t, err)
	assert.NoDirExists(t, target)

	out, err = h.run(t, "queue", "list")
	require.NoError(t, err)
	assert.Empty(t, out)
}
