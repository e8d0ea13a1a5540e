package ports

import (
	"context"

	"model-serving-service/internal/core/domain"
)

// Predictor is a loaded, read-only model handle. Implementations must be safe
// for concurrent use.
type Predictor interface {
	// Predict returns one raw output per frame row.
	Predict(ctx context.Context, frame *domain.Frame) ([]float64, error)
}

// ModelLoader turns a resolved registry version into an invocable handle.
type ModelLoader interface {
	Load(ctx context.Context, version *domain.ModelVersion) (Predictor, error)
}

// DatasetReader loads a processed tabular file.
type DatasetReader interface {
	Read(ctx context.Context, path string) (*domain.Dataset, error)
}
