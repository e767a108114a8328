// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/tiiuae/ghaf-slim-demo/internal/adapters/config"
	_ "github.com/tiiuae/ghaf-slim-demo/internal/adapters/fs"
	_ "github.com/tiiuae/ghaf-slim-demo/internal/adapters/listing"
	_ "github.com/tiiuae/ghaf-slim-demo/internal/adapters/logger"
	_ "github.com/tiiuae/ghaf-slim-demo/internal/adapters/nix"
	_ "github.com/tiiuae/ghaf-slim-demo/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "github.com/tiiuae/ghaf-slim-demo/internal/app"
	_ "github.com/tiiuae/ghaf-slim-demo/internal/engine/dispatcher"
	_ "github.com/tiiuae/ghaf-slim-demo/internal/engine/resolver"
)
