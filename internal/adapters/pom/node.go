package pom

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mvninspect/internal/adapters/repository"
	"go.trai.ch/mvninspect/internal/core/ports"
)

// NodeID is the unique identifier for the descriptor reader Graft node.
const NodeID graft.ID = "adapter.pom"

func init() {
	graft.Register(graft.Node[ports.DescriptorReader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{repository.NodeID},
		Run: func(ctx context.Context) (ports.DescriptorReader, error) {
			fetcher, err := graft.Dep[ports.ArtifactFetcher](ctx)
			if err != nil {
				return nil, err
			}
			return NewReader(fetcher), nil
		},
	})
}
