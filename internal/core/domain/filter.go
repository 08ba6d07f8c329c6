package domain

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/zerr"
)

// PathFilter decides whether a node is selected. A nil filter selects everything.
type PathFilter func(path string, kind EntryKind) bool

// Accept evaluates the filter, treating nil as accept-all.
func (f PathFilter) Accept(path string, kind EntryKind) bool {
	if f == nil {
		return true
	}
	return f(path, kind)
}

// And selects nodes accepted by f and every other filter.
func (f PathFilter) And(others ...PathFilter) PathFilter {
	return And(append([]PathFilter{f}, others...)...)
}

// Or selects nodes accepted by f or any other filter.
func (f PathFilter) Or(others ...PathFilter) PathFilter {
	return Or(append([]PathFilter{f}, others...)...)
}

// Not inverts f.
func (f PathFilter) Not() PathFilter {
	return func(path string, kind EntryKind) bool {
		return !f.Accept(path, kind)
	}
}

// And combines filters conjunctively. With no filters it accepts everything.
func And(filters ...PathFilter) PathFilter {
	return func(path string, kind EntryKind) bool {
		for _, f := range filters {
			if !f.Accept(path, kind) {
				return false
			}
		}
		return true
	}
}

// Or combines filters disjunctively. With no filters it accepts nothing.
func Or(filters ...PathFilter) PathFilter {
	return func(path string, kind EntryKind) bool {
		for _, f := range filters {
			if f.Accept(path, kind) {
				return true
			}
		}
		return false
	}
}

// AcceptAll selects every node.
func AcceptAll() PathFilter {
	return func(string, EntryKind) bool { return true }
}

// Directories selects directories only.
func Directories() PathFilter {
	return func(_ string, kind EntryKind) bool { return kind == KindDirectory }
}

// Files selects non-directories only.
func Files() PathFilter {
	return func(_ string, kind EntryKind) bool { return kind == KindFile }
}

// NotHidden rejects nodes whose base name starts with a dot.
func NotHidden() PathFilter {
	return func(path string, _ EntryKind) bool {
		return !strings.HasPrefix(filepath.Base(path), ".")
	}
}

// Extensions selects nodes whose last extension equals one of exts, compared case-insensitively.
// Extensions may be given with or without the leading dot. A name without an extension is
// never selected. No extensions selects everything.
func Extensions(exts ...string) PathFilter {
	if len(exts) == 0 {
		return AcceptAll()
	}
	normalized := make([]string, 0, len(exts))
	for _, ext := range exts {
		if ext = strings.TrimPrefix(ext, "."); ext != "" {
			normalized = append(normalized, ext)
		}
	}
	return func(path string, _ EntryKind) bool {
		found := strings.TrimPrefix(filepath.Ext(path), ".")
		if found == "" {
			return false
		}
		for _, ext := range normalized {
			if strings.EqualFold(found, ext) {
				return true
			}
		}
		return false
	}
}

// Glob selects nodes matching a doublestar pattern. Patterns without a slash
// are matched against the base name, others against the slash-separated path.
func Glob(pattern string) (PathFilter, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, zerr.With(zerr.Wrap(ErrInvalidFilter, "failed to parse glob"), "pattern", pattern)
	}
	byName := !strings.Contains(pattern, "/")
	return func(path string, _ EntryKind) bool {
		name := filepath.ToSlash(path)
		if byName {
			name = filepath.Base(path)
		}
		return doublestar.MatchUnvalidated(pattern, name)
	}, nil
}
