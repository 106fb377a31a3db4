package settings

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mvninspect/internal/core/ports"
)

// NodeID is the unique identifier for the settings reader Graft node.
const NodeID graft.ID = "adapter.settings"

func init() {
	graft.Register(graft.Node[ports.SettingsReader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SettingsReader, error) {
			return NewReader(), nil
		},
	})
}
