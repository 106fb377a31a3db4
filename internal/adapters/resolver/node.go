package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mvninspect/internal/adapters/pom"
	"go.trai.ch/mvninspect/internal/adapters/repository"
	"go.trai.ch/mvninspect/internal/core/ports"
)

// NodeID is the unique identifier for the dependency resolver Graft node.
const NodeID graft.ID = "adapter.resolver"

func init() {
	graft.Register(graft.Node[ports.DependencyResolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{pom.NodeID, repository.NodeID},
		Run: func(ctx context.Context) (ports.DependencyResolver, error) {
			models, err := graft.Dep[ports.DescriptorReader](ctx)
			if err != nil {
				return nil, err
			}
			fetcher, err := graft.Dep[ports.ArtifactFetcher](ctx)
			if err != nil {
				return nil, err
			}
			return New(models, fetcher), nil
		},
	})
}
