package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mvninspect/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/mvninspect/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/mvninspect/internal/adapters/resolver"  //nolint:depguard // Wired in app layer
	"go.trai.ch/mvninspect/internal/adapters/settings"  //nolint:depguard // Wired in app layer
	"go.trai.ch/mvninspect/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/mvninspect/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/mvninspect/internal/core/ports"
	"go.trai.ch/mvninspect/internal/engine/walker"
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
			settings.NodeID,
			walker.NodeID,
			resolver.NodeID,
			cas.NodeID,
			watcher.NodeID,
			logger.NodeID,
			telemetry.NodeID,
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
			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	settingsReader, err := graft.Dep[ports.SettingsReader](ctx)
	if err != nil {
		return nil, err
	}

	walk, err := graft.Dep[*walker.Walker](ctx)
	if err != nil {
		return nil, err
	}

	deps, err := graft.Dep[ports.DependencyResolver](ctx)
	if err != nil {
		return nil, err
	}

	cache, err := graft.Dep[ports.ResolutionCache](ctx)
	if err != nil {
		return nil, err
	}

	watch, err := graft.Dep[ports.Watcher](ctx)
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

	return New(settingsReader, walk, deps, cache, watch, log, tracer), nil
}
