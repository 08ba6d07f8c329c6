package domain

import (
	"path/filepath"
	"strings"
)

// Contains reports whether child is parent or lies below it. Both are compared lexically
// after cleaning.
func Contains(parent, child string) bool {
	parent = filepath.Clean(parent)
	child = filepath.Clean(child)
	if parent == child {
		return true
	}
	rel, err := filepath.Rel(parent, child)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Overlap reports whether one of a and b contains the other.
func Overlap(a, b string) bool {
	return Contains(a, b) || Contains(b, a)
}
