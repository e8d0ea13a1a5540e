package ports

import (
	"context"

	"model-serving-service/internal/core/domain"
)

// ServingEndpoint is where a model version answers predictions.
type ServingEndpoint struct {
	URL       string // Base URL of the model server
	ModelName string // Name used in the KServe v1 predict path
	Ready     bool
}

// ServingLocator finds the model server for a registry version
type ServingLocator interface {
	// Locate returns the endpoint serving version
	Locate(ctx context.Context, version *domain.ModelVersion) (*ServingEndpoint, error)

	// IsAvailable checks if KServe integration is enabled and configured
	IsAvailable() bool
}
