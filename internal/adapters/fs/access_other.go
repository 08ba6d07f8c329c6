//go:build !unix

package fs

import "os"

const (
	accessRead  uint32 = 0o4
	accessWrite uint32 = 0o2

	osPermissions = false
)

// osAccess approximates access(2) with the owner permission bits.
func osAccess(path string, mode uint32) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return uint32(info.Mode().Perm()>>6)&mode != 0
}
