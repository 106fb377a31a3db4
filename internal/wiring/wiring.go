// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/mvninspect/internal/adapters/cas"
	_ "go.trai.ch/mvninspect/internal/adapters/logger"
	_ "go.trai.ch/mvninspect/internal/adapters/pom"
	_ "go.trai.ch/mvninspect/internal/adapters/repository"
	_ "go.trai.ch/mvninspect/internal/adapters/resolver"
	_ "go.trai.ch/mvninspect/internal/adapters/settings"
	_ "go.trai.ch/mvninspect/internal/adapters/telemetry"
	_ "go.trai.ch/mvninspect/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/mvninspect/internal/app"
	_ "go.trai.ch/mvninspect/internal/engine/walker"
)
