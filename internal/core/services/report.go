package services

import (
	"context"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"model-serving-service/internal/core/domain"
	ports "model-serving-service/internal/core/ports/output"
)

const maxReportListLimit = 200

// ReportService reads persisted validation reports. A nil repository means
// persistence is switched off.
type ReportService struct {
	repo ports.ReportRepository
}

func NewReportService(repo ports.ReportRepository) *ReportService {
	return &ReportService{repo: repo}
}

func (s *ReportService) Enabled() bool {
	return s.repo != nil
}

func (s *ReportService) Get(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	if s.repo == nil {
		return nil, domain.ErrReportStoreDisabled
	}
	if id == uuid.Nil {
		return nil, domain.ErrInvalidReportID
	}
	return s.repo.GetByID(ctx, id)
}

func (s *ReportService) List(ctx context.Context, filter ports.ReportListFilter) ([]*domain.Report, error) {
	if s.repo == nil {
		return nil, domain.ErrReportStoreDisabled
	}
	if filter.Limit > maxReportListLimit {
		filter.Limit = maxReportListLimit
	}
	return s.repo.List(ctx, filter)
}

// LogReport writes one entry per check and one per failure.
func LogReport(report *domain.Report) {
	for _, check := range report.Checks {
		fields := log.Fields{
			"report_id": report.ID,
			"kind":      report.Kind,
			"subject":   report.Subject,
			"check":     check.Name,
			"passed":    check.Passed,
		}
		for k, v := range check.Details {
			fields[k] = v
		}
		entry := log.WithFields(fields)
		if check.Passed {
			entry.Info("check passed")
			continue
		}
		entry.Warn("check failed")
		for _, f := range check.Failures {
			log.WithFields(log.Fields{
				"check":    check.Name,
				"subject":  f.Subject,
				"observed": f.Observed,
				"expected": f.Expected,
			}).Warn(f.Message)
		}
	}

	log.WithFields(log.Fields{
		"report_id": report.ID,
		"kind":      report.Kind,
		"passed":    report.Passed(),
		"failures":  report.FailureCount(),
		"duration":  report.FinishedAt.Sub(report.StartedAt).String(),
	}).Info("report finished")
}
