package ports

import (
	"context"

	"model-serving-service/internal/core/domain"
)

// ModelRegistry resolves registered models to concrete versions.
type ModelRegistry interface {
	// GetLatestVersion returns the newest version of name under stage, or
	// domain.ErrNoModelVersion when the stage holds none.
	GetLatestVersion(ctx context.Context, name string, stage domain.Stage) (*domain.ModelVersion, error)
}
