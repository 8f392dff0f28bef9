package ports

import "go.trai.ch/conduit/internal/core/domain"

// ConfigLoader defines the interface for loading the pipeline configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the pipeline file at path and returns its descriptors in declaration order.
	// Duplicate task ids are rejected here, before any task can run.
	Load(path string) (*domain.Pipeline, error)
}
