package domain

import "io/fs"

// EntryKind is the type of a filesystem node as seen by filters.
type EntryKind int

const (
	// KindFile is any node that is not a directory, symbolic links included.
	KindFile EntryKind = iota
	// KindDirectory is a directory.
	KindDirectory
)

func (k EntryKind) String() string {
	if k == KindDirectory {
		return "directory"
	}
	return "file"
}

// KindOfInfo maps file info to an EntryKind without following symbolic links.
func KindOfInfo(info fs.FileInfo) EntryKind {
	if info.IsDir() {
		return KindDirectory
	}
	return KindFile
}

// Entry is one listed node.
type Entry struct {
	Path string
	Kind EntryKind
}

// Paths returns the paths of entries in order.
func Paths(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}
