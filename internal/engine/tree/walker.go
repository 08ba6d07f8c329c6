// Package tree implements cancellable recursive algorithms over a filesystem:
// deletion, youngest modification time search and filtered listing.
package tree

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/fsguard/internal/core/ports"
)

// Action tells the walker how to continue after entering a node.
type Action int

const (
	// Continue descends into the node if it is a directory.
	Continue Action = iota
	// SkipChildren does not descend into the node.
	SkipChildren
	// Stop ends the whole traversal.
	Stop
)

// Node is a visited filesystem node. Info does not follow symbolic links except for the
// root, unless the visitor resolves them.
type Node struct {
	Path  string
	Info  fs.FileInfo
	Depth int

	parent *Node
	linked bool
}

// Kind returns the node's filter kind.
func (n Node) Kind() domain.EntryKind {
	return domain.KindOfInfo(n.Info)
}

// Visitor receives traversal callbacks.
type Visitor struct {
	// Enter is called for every node in pre-order.
	Enter func(n Node) (Action, error)
	// Leave is called for a directory after all of its children were processed.
	Leave func(n Node) error
	// Include filters the children of a directory before they are visited. Nil includes all.
	Include func(info fs.FileInfo) bool
	// ReadDirFailed decides whether a listing failure aborts the walk. Nil skips the children.
	ReadDirFailed func(n Node, err error) error
	// Resolve replaces the info of a symbolic link child before Include sees it, so the walk
	// follows the link. An error aborts the walk. A linked directory that is also one of its
	// own ancestors is entered but not descended into.
	Resolve func(path string, info fs.FileInfo) (fs.FileInfo, error)
}

// Walker is a depth-first, pre-order traversal over an explicit work stack.
// Before each child is entered, the context is checked and the observer ticked once.
type Walker struct {
	fs       ports.FileSystem
	observer ports.ActivityObserver
}

// NewWalker creates a Walker. observer may be nil.
func NewWalker(fsys ports.FileSystem, observer ports.ActivityObserver) *Walker {
	return &Walker{fs: fsys, observer: observer}
}

type frame struct {
	node  Node
	leave bool
}

// Walk visits root and, unless told otherwise, everything below it.
func (w *Walker) Walk(ctx context.Context, root Node, v Visitor) error {
	stack := []frame{{node: root}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := f.node

		if f.leave {
			if err := v.Leave(n); err != nil {
				return err
			}
			continue
		}

		if n.Depth > 0 {
			if err := ctx.Err(); err != nil {
				return domain.NewCancelled(n.Path, context.Cause(ctx))
			}
			w.tick()
		}

		action, err := v.Enter(n)
		if err != nil {
			return err
		}
		if action == Stop {
			return nil
		}
		if action == SkipChildren || !n.Info.IsDir() || n.loops() {
			continue
		}

		children, err := w.fs.ReadDir(n.Path)
		if err != nil {
			if v.ReadDirFailed != nil {
				if abort := v.ReadDirFailed(n, err); abort != nil {
					return abort
				}
			}
			children = nil
		}

		if v.Leave != nil {
			stack = append(stack, frame{node: n, leave: true})
		}
		parent := n
		for i := len(children) - 1; i >= 0; i-- {
			child := Node{
				Path:   filepath.Join(n.Path, children[i].Name()),
				Info:   children[i],
				Depth:  n.Depth + 1,
				parent: &parent,
			}
			if v.Resolve != nil && isSymlink(child.Info) {
				info, err := v.Resolve(child.Path, child.Info)
				if err != nil {
					return err
				}
				child.Info = info
				child.linked = true
			}
			if v.Include != nil && !v.Include(child.Info) {
				continue
			}
			stack = append(stack, frame{node: child})
		}
	}
	return nil
}

// loops reports whether n was reached through a link and is the same directory as one of its ancestors.
func (n Node) loops() bool {
	if !n.linked {
		return false
	}
	for p := n.parent; p != nil; p = p.parent {
		if os.SameFile(p.Info, n.Info) {
			return true
		}
	}
	return false
}

// followLinks resolves a symbolic link to the info of its target.
func followLinks(fsys ports.FileSystem) func(path string, info fs.FileInfo) (fs.FileInfo, error) {
	return func(path string, _ fs.FileInfo) (fs.FileInfo, error) {
		return fsys.Stat(path)
	}
}

func (w *Walker) tick() {
	if w.observer != nil {
		w.observer.Update()
	}
}

func isSymlink(info fs.FileInfo) bool {
	return info.Mode()&fs.ModeSymlink != 0
}
