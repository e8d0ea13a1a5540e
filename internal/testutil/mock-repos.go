package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"model-serving-service/internal/core/domain"
	ports "model-serving-service/internal/core/ports/output"
)

// MockModelRegistry is a mock of ModelRegistry.
type MockModelRegistry struct {
	mock.Mock
}

func (m *MockModelRegistry) GetLatestVersion(ctx context.Context, name string, stage domain.Stage) (*domain.ModelVersion, error) {
	args := m.Called(ctx, name, stage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModelVersion), args.Error(1)
}

// MockModelLoader is a mock of ModelLoader.
type MockModelLoader struct {
	mock.Mock
}

func (m *MockModelLoader) Load(ctx context.Context, version *domain.ModelVersion) (ports.Predictor, error) {
	args := m.Called(ctx, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.Predictor), args.Error(1)
}

// MockPredictor is a mock of Predictor.
type MockPredictor struct {
	mock.Mock
}

func (m *MockPredictor) Predict(ctx context.Context, frame *domain.Frame) ([]float64, error) {
	args := m.Called(ctx, frame)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}

// MockDatasetReader is a mock of DatasetReader.
type MockDatasetReader struct {
	mock.Mock
}

func (m *MockDatasetReader) Read(ctx context.Context, path string) (*domain.Dataset, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dataset), args.Error(1)
}

// MockReportRepo is a mock of ReportRepository.
type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) Save(ctx context.Context, report *domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportRepo) List(ctx context.Context, filter ports.ReportListFilter) ([]*domain.Report, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Report), args.Error(1)
}
