package services

import "fmt"

// ClassificationMetrics are binary metrics with class 1 as positive.
type ClassificationMetrics struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`

	TruePositives  int `json:"true_positives"`
	FalsePositives int `json:"false_positives"`
	TrueNegatives  int `json:"true_negatives"`
	FalseNegatives int `json:"false_negatives"`
}

// ComputeClassificationMetrics compares predictions with labels. Ratios with a
// zero denominator are 0.
func ComputeClassificationMetrics(labels, predictions []float64) (ClassificationMetrics, error) {
	var m ClassificationMetrics
	if len(labels) != len(predictions) {
		return m, fmt.Errorf("metrics: %d labels but %d predictions", len(labels), len(predictions))
	}

	correct := 0
	for i := range labels {
		if labels[i] == predictions[i] {
			correct++
		}
		actual := labels[i] == 1
		predicted := predictions[i] == 1
		switch {
		case actual && predicted:
			m.TruePositives++
		case !actual && predicted:
			m.FalsePositives++
		case actual && !predicted:
			m.FalseNegatives++
		default:
			m.TrueNegatives++
		}
	}

	m.Accuracy = safeDiv(float64(correct), float64(len(labels)))
	m.Precision = safeDiv(float64(m.TruePositives), float64(m.TruePositives+m.FalsePositives))
	m.Recall = safeDiv(float64(m.TruePositives), float64(m.TruePositives+m.FalseNegatives))
	m.F1 = safeDiv(2*m.Precision*m.Recall, m.Precision+m.Recall)
	return m, nil
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
