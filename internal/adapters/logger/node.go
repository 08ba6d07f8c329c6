package logger

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fsguard/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the logger Graft node.
	NodeID graft.ID = "adapter.logger"
	// ConfigurerNodeID is the unique identifier for the logger configuration Graft node.
	ConfigurerNodeID graft.ID = "adapter.logger.configurer"

	instanceNodeID graft.ID = "adapter.logger.instance"
)

func init() {
	graft.Register(graft.Node[*Logger]{
		ID:        instanceNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Logger, error) {
			return New(), nil
		},
	})

	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{instanceNodeID},
		Run: func(ctx context.Context) (ports.Logger, error) {
			return graft.Dep[*Logger](ctx)
		},
	})

	graft.Register(graft.Node[ports.LogConfigurer]{
		ID:        ConfigurerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{instanceNodeID},
		Run: func(ctx context.Context) (ports.LogConfigurer, error) {
			return graft.Dep[*Logger](ctx)
		},
	})
}
