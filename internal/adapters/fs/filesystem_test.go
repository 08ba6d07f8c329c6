package fs_test

import (
	iofs "io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fsguard/internal/adapters/fs"
)

func TestFileSystem_ReadDirSortedByName(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll("/d", 0o755))
	for _, name := range []string{"c", "a", "b"} {
		require.NoError(t, afero.WriteFile(mem, "/d/"+name, nil, 0o644))
	}

	infos, err := fs.NewFileSystem(mem).ReadDir("/d")
	require.NoError(t, err)

	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name()
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestFileSystem_MemPermissionsFromModeBits(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/ro", nil, 0o444))
	require.NoError(t, afero.WriteFile(mem, "/rw", nil, 0o644))
	fsys := fs.NewFileSystem(mem)

	assert.True(t, fsys.SupportsPermissions())
	assert.True(t, fsys.CanRead("/ro"))
	assert.False(t, fsys.CanWrite("/ro"))
	assert.True(t, fsys.CanWrite("/rw"))
	assert.False(t, fsys.CanRead("/missing"))

	require.NoError(t, fsys.Chmod("/ro", 0o777))
	assert.True(t, fsys.CanWrite("/ro"))
}

func TestFileSystem_LstatDoesNotFollowLinks(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "target")
	link := filepath.Join(tmpDir, "link")
	require.NoError(t, os.Mkdir(target, 0o750))
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	fsys := fs.New()

	info, err := fsys.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&iofs.ModeSymlink)

	info, err = fsys.Stat(link)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
