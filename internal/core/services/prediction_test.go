package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"model-serving-service/internal/core/domain"
	"model-serving-service/internal/testutil"
)

func validRequest() *domain.PredictionRequest {
	return &domain.PredictionRequest{
		Gender: "Male", Age: 45, DrivingLicense: 1, RegionCode: 28,
		PreviouslyInsured: 0, VehicleAge: "< 1 Year", VehicleDamage: "No",
		AnnualPremium: 25000, PolicySalesChannel: 152, Vintage: 200,
	}
}

func TestPredictionService_Predict(t *testing.T) {
	model := new(testutil.MockPredictor)
	svc := NewPredictionService(model, &domain.ModelVersion{Name: "my_model", Version: "3"})

	model.On("Predict", mock.Anything, mock.MatchedBy(func(f *domain.Frame) bool {
		return f.Len() == 1 && len(f.Columns) == len(domain.FeatureColumns) && f.Rows[0][0] == 1
	})).Return([]float64{1}, nil)

	result, err := svc.Predict(context.Background(), validRequest())
	assert.NoError(t, err)
	assert.Equal(t, domain.PredictionPositive, result)
	model.AssertExpectations(t)
}

func TestPredictionService_InvalidField(t *testing.T) {
	model := new(testutil.MockPredictor)
	svc := NewPredictionService(model, nil)

	req := validRequest()
	req.VehicleAge = "ancient"

	_, err := svc.Predict(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidField)
	model.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything)
}

func TestPredictionService_ModelNotLoaded(t *testing.T) {
	svc := NewPredictionService(nil, nil)

	_, err := svc.Predict(context.Background(), validRequest())
	assert.ErrorIs(t, err, domain.ErrModelNotLoaded)
}

func TestPredictionService_ModelErrors(t *testing.T) {
	tests := []struct {
		name     string
		outputs  []float64
		err      error
		expected error
	}{
		{name: "model failure", err: errors.New("connection refused"), expected: domain.ErrPredictionFailed},
		{name: "no outputs", outputs: []float64{}, expected: domain.ErrPredictionShape},
		{name: "two outputs", outputs: []float64{0, 1}, expected: domain.ErrPredictionShape},
		{name: "probability output", outputs: []float64{0.73}, expected: domain.ErrNonBinaryOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := new(testutil.MockPredictor)
			svc := NewPredictionService(model, nil)
			model.On("Predict", mock.Anything, mock.Anything).Return(tt.outputs, tt.err)

			_, err := svc.Predict(context.Background(), validRequest())
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}
