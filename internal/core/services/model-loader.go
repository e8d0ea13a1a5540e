package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"model-serving-service/internal/core/domain"
	ports "model-serving-service/internal/core/ports/output"
)

// ModelLoaderService resolves the latest registered version of a model and
// loads it into a predictor handle.
type ModelLoaderService struct {
	registry ports.ModelRegistry
	loader   ports.ModelLoader
}

func NewModelLoaderService(registry ports.ModelRegistry, loader ports.ModelLoader) *ModelLoaderService {
	return &ModelLoaderService{registry: registry, loader: loader}
}

// LoadLatest resolves name under stage and loads it. Both failures are fatal
// for callers; the returned error wraps domain.ErrNoModelVersion when the
// stage holds no versions.
func (s *ModelLoaderService) LoadLatest(ctx context.Context, name string, stage domain.Stage) (*domain.ModelVersion, ports.Predictor, error) {
	if name == "" {
		return nil, nil, domain.ErrInvalidModelName
	}

	version, err := s.registry.GetLatestVersion(ctx, name, stage)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve %s@%s: %w", name, stage, err)
	}
	if version == nil {
		return nil, nil, fmt.Errorf("resolve %s@%s: %w", name, stage, domain.ErrNoModelVersion)
	}

	predictor, err := s.loader.Load(ctx, version)
	if err != nil {
		return version, nil, fmt.Errorf("load %s: %w", version.URI(), err)
	}

	log.WithFields(log.Fields{
		"model":   version.Name,
		"version": version.Version,
		"stage":   stage,
		"run_id":  version.RunID,
	}).Info("model loaded")

	return version, predictor, nil
}
