package journal

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fsguard/internal/core/ports"
)

// NodeID is the unique identifier for the removal journal Graft node.
const NodeID graft.ID = "adapter.removal_journal"

func init() {
	graft.Register(graft.Node[ports.JournalOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.JournalOpener, error) {
			return Open, nil
		},
	})
}
