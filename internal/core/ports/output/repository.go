package ports

import (
	"context"

	"github.com/google/uuid"

	"model-serving-service/internal/core/domain"
)

type ReportListFilter struct {
	Kind    domain.ReportKind
	Subject string
	Limit   int
}

// ReportRepository persists finished validation reports.
type ReportRepository interface {
	Save(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	List(ctx context.Context, filter ReportListFilter) ([]*domain.Report, error)
}
