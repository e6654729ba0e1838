// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/gbfsync/internal/adapters/cdn"
	_ "go.trai.ch/gbfsync/internal/adapters/config"
	_ "go.trai.ch/gbfsync/internal/adapters/ledger"
	_ "go.trai.ch/gbfsync/internal/adapters/logger"
	_ "go.trai.ch/gbfsync/internal/adapters/mediawiki"
	// Register app and engine nodes.
	_ "go.trai.ch/gbfsync/internal/app"
	_ "go.trai.ch/gbfsync/internal/engine/redirect"
	_ "go.trai.ch/gbfsync/internal/engine/resolver"
)
