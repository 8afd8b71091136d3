// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/recipe/internal/adapters/cmake"
	_ "go.trai.ch/recipe/internal/adapters/config"
	_ "go.trai.ch/recipe/internal/adapters/fs"
	_ "go.trai.ch/recipe/internal/adapters/index"
	_ "go.trai.ch/recipe/internal/adapters/lockfile"
	_ "go.trai.ch/recipe/internal/adapters/logger"
	_ "go.trai.ch/recipe/internal/adapters/telemetry"
	_ "go.trai.ch/recipe/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/recipe/internal/app"
	_ "go.trai.ch/recipe/internal/engine/resolver"
)
