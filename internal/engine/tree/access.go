package tree

import (
	"fmt"

	"go.trai.ch/fsguard/internal/core/ports"
)

// CheckPathAccessible returns an empty string if path exists and is readable, and
// writable when readWrite is set. Otherwise it describes the first problem found.
// kindDescription names the path's role in the message, e.g. "Incoming".
func CheckPathAccessible(fsys ports.FileSystem, path, kindDescription string, readWrite bool) string {
	if _, err := fsys.Stat(path); err != nil {
		return fmt.Sprintf("%s path '%s' does not exist.", kindDescription, path)
	}
	if !fsys.CanRead(path) {
		return fmt.Sprintf("%s path '%s' is not readable.", kindDescription, path)
	}
	if readWrite && !fsys.CanWrite(path) {
		return fmt.Sprintf("%s path '%s' is not writable.", kindDescription, path)
	}
	return ""
}

// CheckDirectoryAccessible is CheckPathAccessible that also requires a directory.
func CheckDirectoryAccessible(fsys ports.FileSystem, path, kindDescription string, readWrite bool) string {
	if msg := CheckPathAccessible(fsys, path, kindDescription, readWrite); msg != "" {
		return msg
	}
	info, err := fsys.Stat(path)
	if err != nil || !info.IsDir() {
		return fmt.Sprintf("Path '%s' is supposed to be a %s directory but isn't.", path, kindDescription)
	}
	return ""
}

// CheckFileAccessible is CheckPathAccessible that also requires a non-directory.
func CheckFileAccessible(fsys ports.FileSystem, path, kindDescription string, readWrite bool) string {
	if msg := CheckPathAccessible(fsys, path, kindDescription, readWrite); msg != "" {
		return msg
	}
	info, err := fsys.Stat(path)
	if err != nil || info.IsDir() {
		return fmt.Sprintf("Path '%s' is supposed to be a %s file but isn't.", path, kindDescription)
	}
	return ""
}
