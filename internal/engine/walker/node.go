package walker

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mvninspect/internal/adapters/logger"
	"go.trai.ch/mvninspect/internal/adapters/pom"
	"go.trai.ch/mvninspect/internal/adapters/telemetry"
	"go.trai.ch/mvninspect/internal/core/ports"
)

// NodeID is the unique identifier for the module walker Graft node.
const NodeID graft.ID = "engine.walker"

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{pom.NodeID, logger.NodeID, telemetry.NodeID},
		Run: func(ctx context.Context) (*Walker, error) {
			reader, err := graft.Dep[ports.DescriptorReader](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return New(reader, log, tracer), nil
		},
	})
}
