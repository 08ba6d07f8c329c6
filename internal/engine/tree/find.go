package tree

import (
	"context"

	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/fsguard/internal/core/ports"
)

// FindFiles returns root and every node below it accepted by filter, in pre-order.
// Unlike List, the root itself is a candidate and unreadable directories are skipped.
func FindFiles(ctx context.Context, fsys ports.FileSystem, root string, filter domain.PathFilter, observer ports.ActivityObserver) ([]domain.Entry, error) {
	info, err := fsys.Lstat(root)
	if err != nil {
		return nil, domain.NewEnvironmentFailure(root, "cannot stat search root", err)
	}

	var result []domain.Entry
	err = NewWalker(fsys, observer).Walk(ctx, Node{Path: root, Info: info}, Visitor{
		Enter: func(n Node) (Action, error) {
			if filter.Accept(n.Path, n.Kind()) {
				result = append(result, domain.Entry{Path: n.Path, Kind: n.Kind()})
			}
			return Continue, nil
		},
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
