package services

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"model-serving-service/internal/core/domain"
	ports "model-serving-service/internal/core/ports/output"
)

const defaultSignatureSampleSize = 10

// Thresholds are inclusive lower bounds for the performance check.
type Thresholds struct {
	Accuracy  float64
	Precision float64
	Recall    float64
	F1        float64
}

// ModelValidationRequest describes one validation run
type ModelValidationRequest struct {
	ModelName   string
	Stage       domain.Stage
	HeldOutPath string
	LabelColumn string
	SampleSize  int
	Thresholds  Thresholds
}

// ModelValidationService runs the load, signature and performance checks
// against the latest registered version of a model.
type ModelValidationService struct {
	models  *ModelLoaderService
	reader  ports.DatasetReader
	reports ports.ReportRepository
}

// NewModelValidationService creates the service. reports may be nil.
func NewModelValidationService(models *ModelLoaderService, reader ports.DatasetReader, reports ports.ReportRepository) *ModelValidationService {
	return &ModelValidationService{models: models, reader: reader, reports: reports}
}

// Run performs setup and then every check. A returned error means setup or
// infrastructure failed and no verdict exists; check failures are in the report.
func (s *ModelValidationService) Run(ctx context.Context, req ModelValidationRequest) (*domain.Report, error) {
	version, predictor, err := s.models.LoadLatest(ctx, req.ModelName, req.Stage)
	if err != nil {
		return nil, err
	}

	heldOut, err := s.reader.Read(ctx, req.HeldOutPath)
	if err != nil {
		return nil, fmt.Errorf("read held-out set: %w", err)
	}
	features, err := heldOut.Features(req.LabelColumn)
	if err != nil {
		return nil, fmt.Errorf("split held-out features: %w", err)
	}
	labels, err := heldOut.Labels(req.LabelColumn)
	if err != nil {
		return nil, fmt.Errorf("read held-out labels: %w", err)
	}

	report := domain.NewReport(domain.ReportKindModelValidation, version.URI())

	report.Add(s.CheckLoaded(predictor))

	signature, err := s.CheckSignature(ctx, predictor, features, req.SampleSize)
	if err != nil {
		return nil, err
	}
	report.Add(signature)

	performance, err := s.CheckPerformance(ctx, predictor, features, labels, req.Thresholds)
	if err != nil {
		return nil, err
	}
	report.Add(performance)

	report.Finish()
	s.save(ctx, report)
	return report, nil
}

// CheckLoaded verifies the handle is usable.
func (s *ModelValidationService) CheckLoaded(predictor ports.Predictor) *domain.CheckResult {
	check := domain.NewCheckResult(domain.CheckModelLoaded)
	if predictor == nil {
		check.Fail(domain.Failure{Subject: "model", Message: domain.ErrModelNotLoaded.Error()})
	}
	return check
}

// CheckSignature predicts on the first sampleSize rows and checks the output
// has one binary value per row.
func (s *ModelValidationService) CheckSignature(ctx context.Context, predictor ports.Predictor, features *domain.Frame, sampleSize int) (*domain.CheckResult, error) {
	check := domain.NewCheckResult(domain.CheckModelSignature)
	if predictor == nil {
		check.Fail(domain.Failure{Subject: "model", Message: domain.ErrModelNotLoaded.Error()})
		return check, nil
	}
	if features.Len() == 0 {
		check.Fail(domain.Failure{Subject: "held-out set", Message: "no rows to sample"})
		return check, nil
	}

	if sampleSize <= 0 {
		sampleSize = defaultSignatureSampleSize
	}
	sample := features.Head(sampleSize)
	check.Details["sample_size"] = float64(sample.Len())

	predictions, err := predictor.Predict(ctx, sample)
	if errors.Is(err, domain.ErrPredictionShape) {
		check.Fail(domain.Failure{Subject: "predictions", Message: err.Error()})
		return check, nil
	}
	if err != nil {
		return nil, fmt.Errorf("signature sample prediction: %w", err)
	}

	if len(predictions) != sample.Len() {
		check.Fail(domain.Failure{
			Subject:  "predictions",
			Message:  "prediction count does not match sample size",
			Observed: fmt.Sprint(len(predictions)),
			Expected: fmt.Sprint(sample.Len()),
		})
	}

	nonBinary := 0
	first := 0.0
	for _, p := range predictions {
		if p != 0 && p != 1 {
			if nonBinary == 0 {
				first = p
			}
			nonBinary++
		}
	}
	if nonBinary > 0 {
		check.Fail(domain.Failure{
			Subject:  "predictions",
			Message:  fmt.Sprintf("%d of %d predictions are not 0 or 1", nonBinary, len(predictions)),
			Observed: domain.FormatCell(first),
			Expected: "0 or 1",
		})
	}

	if len(predictions) > 0 {
		log.WithField("prediction", predictions[0]).Debug("signature sample prediction")
	}
	return check, nil
}

// CheckPerformance predicts on every row and compares each metric with its
// threshold independently.
func (s *ModelValidationService) CheckPerformance(ctx context.Context, predictor ports.Predictor, features *domain.Frame, labels []float64, th Thresholds) (*domain.CheckResult, error) {
	check := domain.NewCheckResult(domain.CheckModelPerformance)
	if predictor == nil {
		check.Fail(domain.Failure{Subject: "model", Message: domain.ErrModelNotLoaded.Error()})
		return check, nil
	}
	if features.Len() == 0 {
		check.Fail(domain.Failure{Subject: "held-out set", Message: "no rows to score"})
		return check, nil
	}

	predictions, err := predictor.Predict(ctx, features)
	if errors.Is(err, domain.ErrPredictionShape) {
		check.Fail(domain.Failure{Subject: "predictions", Message: err.Error()})
		return check, nil
	}
	if err != nil {
		return nil, fmt.Errorf("held-out prediction: %w", err)
	}

	m, err := ComputeClassificationMetrics(labels, predictions)
	if err != nil {
		check.Fail(domain.Failure{Subject: "predictions", Message: err.Error()})
		return check, nil
	}

	metrics := []struct {
		name      string
		value     float64
		threshold float64
	}{
		{"accuracy", m.Accuracy, th.Accuracy},
		{"precision", m.Precision, th.Precision},
		{"recall", m.Recall, th.Recall},
		{"f1", m.F1, th.F1},
	}
	for _, metric := range metrics {
		check.Details[metric.name] = metric.value
		if metric.value < metric.threshold {
			check.Fail(domain.Failure{
				Subject:  metric.name,
				Message:  fmt.Sprintf("%s should be at least %.2f", metric.name, metric.threshold),
				Observed: fmt.Sprintf("%.4f", metric.value),
				Expected: fmt.Sprintf(">= %.2f", metric.threshold),
			})
		}
	}
	return check, nil
}

func (s *ModelValidationService) save(ctx context.Context, report *domain.Report) {
	if s.reports == nil {
		return
	}
	if err := s.reports.Save(ctx, report); err != nil {
		log.WithError(err).WithField("report_id", report.ID).Warn("save validation report failed")
	}
}
