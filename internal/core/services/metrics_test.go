package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeClassificationMetrics(t *testing.T) {
	tests := []struct {
		name        string
		labels      []float64
		predictions []float64
		expected    ClassificationMetrics
	}{
		{
			name:        "perfect",
			labels:      []float64{0, 1, 1, 0},
			predictions: []float64{0, 1, 1, 0},
			expected: ClassificationMetrics{
				Accuracy: 1, Precision: 1, Recall: 1, F1: 1,
				TruePositives: 2, TrueNegatives: 2,
			},
		},
		{
			name:        "mixed",
			labels:      []float64{1, 1, 0, 0},
			predictions: []float64{1, 0, 1, 0},
			expected: ClassificationMetrics{
				Accuracy: 0.5, Precision: 0.5, Recall: 0.5, F1: 0.5,
				TruePositives: 1, FalsePositives: 1, TrueNegatives: 1, FalseNegatives: 1,
			},
		},
		{
			name:        "never predicts positive",
			labels:      []float64{1, 0, 0, 0},
			predictions: []float64{0, 0, 0, 0},
			expected: ClassificationMetrics{
				Accuracy: 0.75, Precision: 0, Recall: 0, F1: 0,
				TrueNegatives: 3, FalseNegatives: 1,
			},
		},
		{
			name:        "empty input",
			labels:      []float64{},
			predictions: []float64{},
			expected:    ClassificationMetrics{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ComputeClassificationMetrics(tt.labels, tt.predictions)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m)
		})
	}
}

func TestComputeClassificationMetrics_LengthMismatch(t *testing.T) {
	_, err := ComputeClassificationMetrics([]float64{1}, []float64{1, 0})
	assert.Error(t, err)
}

func TestComputeClassificationMetrics_F1(t *testing.T) {
	// precision 2/3, recall 1
	m, err := ComputeClassificationMetrics([]float64{1, 1, 0}, []float64{1, 1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, m.Precision, 1e-9)
	assert.InDelta(t, 1.0, m.Recall, 1e-9)
	assert.InDelta(t, 0.8, m.F1, 1e-9)
}
