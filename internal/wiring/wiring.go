// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/fsguard/internal/adapters/config"
	_ "go.trai.ch/fsguard/internal/adapters/fs"
	_ "go.trai.ch/fsguard/internal/adapters/journal"
	_ "go.trai.ch/fsguard/internal/adapters/logger"
	_ "go.trai.ch/fsguard/internal/adapters/shell"
	_ "go.trai.ch/fsguard/internal/adapters/telemetry"
	_ "go.trai.ch/fsguard/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/fsguard/internal/app"
)
