//go:build unix

package fs

import "golang.org/x/sys/unix"

const (
	accessRead  = unix.R_OK
	accessWrite = unix.W_OK

	osPermissions = true
)

func osAccess(path string, mode uint32) bool {
	return unix.Access(path, mode) == nil
}
