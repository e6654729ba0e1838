package ports

import "go.trai.ch/gbfsync/internal/core/domain"

// ConfigLoader defines the interface for loading the runtime configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves the configuration for the given working directory.
	// Files found walking up from cwd are layered under environment overrides.
	Load(cwd string) (*domain.Config, error)
}
