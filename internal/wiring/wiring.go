// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/conduit/internal/adapters/config"
	_ "go.trai.ch/conduit/internal/adapters/logger"
	_ "go.trai.ch/conduit/internal/adapters/metrics"
	_ "go.trai.ch/conduit/internal/adapters/shell"
	_ "go.trai.ch/conduit/internal/adapters/tasks"
	_ "go.trai.ch/conduit/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/conduit/internal/app"
	_ "go.trai.ch/conduit/internal/engine/orchestrator"
)
