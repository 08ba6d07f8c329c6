package fs

import (
	"encoding/binary"
	iofs "io/fs"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"
	"go.trai.ch/fsguard/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fingerprinter = (*Hasher)(nil)

// Hasher fingerprints directory trees from their metadata, never reading file content.
type Hasher struct {
	fs afero.Fs
}

// NewHasher creates a new Hasher over fs.
func NewHasher(fs afero.Fs) *Hasher {
	return &Hasher{fs: fs}
}

// Fingerprint computes the XXHash of relative paths, sizes, modes and modification times below root.
// Any created, deleted, grown or touched node changes the result.
func (h *Hasher) Fingerprint(root string) (uint64, error) {
	hasher := xxhash.New()
	var buf [8]byte

	err := afero.Walk(h.fs, root, func(path string, info iofs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}

		_, _ = hasher.WriteString(filepath.ToSlash(rel))
		_, _ = hasher.Write([]byte{0}) // Separator

		binary.LittleEndian.PutUint64(buf[:], uint64(info.Size())) //nolint:gosec // Sizes are non-negative
		_, _ = hasher.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(info.ModTime().UnixNano())) //nolint:gosec // Bit pattern only
		_, _ = hasher.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(info.Mode()))
		_, _ = hasher.Write(buf[:])
		return nil
	})
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to fingerprint tree"), "path", root)
	}

	return hasher.Sum64(), nil
}
