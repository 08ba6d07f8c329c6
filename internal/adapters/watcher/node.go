package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fsguard/internal/adapters/fs"
	"go.trai.ch/fsguard/internal/adapters/logger"
	"go.trai.ch/fsguard/internal/core/ports"
)

// NodeID is the unique identifier for the watcher factory Graft node.
const NodeID graft.ID = "adapter.watcher"

func init() {
	graft.Register(graft.Node[ports.WatcherFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.HasherNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.WatcherFactory, error) {
			fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(fingerprinter, log), nil
		},
	})
}
