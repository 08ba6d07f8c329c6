package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fsguard/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/fsguard/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/fsguard/internal/adapters/journal"   //nolint:depguard // Wired in app layer
	"go.trai.ch/fsguard/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/fsguard/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/fsguard/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/fsguard/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/fsguard/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			logger.ConfigurerNodeID,
			fs.FileSystemNodeID,
			fs.WalkerNodeID,
			fs.ResolverNodeID,
			shell.NodeID,
			telemetry.NodeID,
			watcher.NodeID,
			journal.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	var (
		deps Dependencies
		err  error
	)
	if deps.ConfigLoader, err = graft.Dep[ports.ConfigLoader](ctx); err != nil {
		return nil, err
	}
	if deps.Logger, err = graft.Dep[ports.Logger](ctx); err != nil {
		return nil, err
	}
	if deps.LogConfig, err = graft.Dep[ports.LogConfigurer](ctx); err != nil {
		return nil, err
	}
	if deps.FileSystem, err = graft.Dep[ports.FileSystem](ctx); err != nil {
		return nil, err
	}
	if deps.Finder, err = graft.Dep[ports.Finder](ctx); err != nil {
		return nil, err
	}
	if deps.Resolver, err = graft.Dep[ports.PathResolver](ctx); err != nil {
		return nil, err
	}
	if deps.Executor, err = graft.Dep[ports.Executor](ctx); err != nil {
		return nil, err
	}
	if deps.Telemetry, err = graft.Dep[ports.Telemetry](ctx); err != nil {
		return nil, err
	}
	if deps.Watchers, err = graft.Dep[ports.WatcherFactory](ctx); err != nil {
		return nil, err
	}
	if deps.OpenJournal, err = graft.Dep[ports.JournalOpener](ctx); err != nil {
		return nil, err
	}
	return New(deps), nil
}
