package services

import (
	"context"
	"fmt"

	"model-serving-service/internal/core/domain"
	ports "model-serving-service/internal/core/ports/output"
)

// PredictionService scores single records against the model loaded at startup.
// The handle is never replaced, so no locking is needed.
type PredictionService struct {
	model   ports.Predictor
	version *domain.ModelVersion
}

func NewPredictionService(model ports.Predictor, version *domain.ModelVersion) *PredictionService {
	return &PredictionService{model: model, version: version}
}

// Version returns the registry version backing the handle, or nil.
func (s *PredictionService) Version() *domain.ModelVersion {
	return s.version
}

func (s *PredictionService) Predict(ctx context.Context, req *domain.PredictionRequest) (domain.Prediction, error) {
	if s.model == nil {
		return 0, domain.ErrModelNotLoaded
	}
	if err := req.Validate(); err != nil {
		return 0, err
	}

	outputs, err := s.model.Predict(ctx, req.Frame())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrPredictionFailed, err)
	}
	if len(outputs) != 1 {
		return 0, fmt.Errorf("%w: %d outputs for 1 row", domain.ErrPredictionShape, len(outputs))
	}

	return domain.ToPrediction(outputs[0])
}
