package dto

import (
	"time"

	"github.com/google/uuid"

	"model-serving-service/internal/core/domain"
)

type ReportResponse struct {
	ID           uuid.UUID             `json:"id"`
	Kind         string                `json:"kind"`
	Subject      string                `json:"subject"`
	Passed       bool                  `json:"passed"`
	FailureCount int                   `json:"failure_count"`
	StartedAt    string                `json:"started_at"`
	FinishedAt   string                `json:"finished_at"`
	Checks       []*domain.CheckResult `json:"checks"`
}

type ListReportsResponse struct {
	Items []ReportResponse `json:"items"`
	Size  int              `json:"size"`
}

func ToReportResponse(r *domain.Report) ReportResponse {
	checks := r.Checks
	if checks == nil {
		checks = []*domain.CheckResult{}
	}
	return ReportResponse{
		ID:           r.ID,
		Kind:         string(r.Kind),
		Subject:      r.Subject,
		Passed:       r.Passed(),
		FailureCount: r.FailureCount(),
		StartedAt:    r.StartedAt.Format(time.RFC3339),
		FinishedAt:   r.FinishedAt.Format(time.RFC3339),
		Checks:       checks,
	}
}

func ToListReportsResponse(reports []*domain.Report) ListReportsResponse {
	items := make([]ReportResponse, 0, len(reports))
	for _, r := range reports {
		items = append(items, ToReportResponse(r))
	}
	return ListReportsResponse{Items: items, Size: len(items)}
}
