package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mvninspect/internal/core/ports"
)

// NodeID is the unique identifier for the resolution cache Graft node.
const NodeID graft.ID = "adapter.resolution_cache"

func init() {
	graft.Register(graft.Node[ports.ResolutionCache]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ResolutionCache, error) {
			store, err := NewStore()
			if err != nil {
				return nil, err
			}
			return store, nil
		},
	})
}
