package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"model-serving-service/internal/core/domain"
	output "model-serving-service/internal/core/ports/output"
)

const defaultListLimit = 50

const reportSchema = `
	CREATE TABLE IF NOT EXISTS validation_report (
		id            UUID PRIMARY KEY,
		kind          TEXT        NOT NULL,
		subject       TEXT        NOT NULL,
		passed        BOOLEAN     NOT NULL,
		failure_count INTEGER     NOT NULL,
		checks        JSONB       NOT NULL,
		started_at    TIMESTAMPTZ NOT NULL,
		finished_at   TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_validation_report_kind_started
		ON validation_report (kind, started_at DESC);
`

type reportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(pool *pgxpool.Pool) output.ReportRepository {
	return &reportRepo{pool: pool}
}

// EnsureSchema creates the report table when it does not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, reportSchema); err != nil {
		return fmt.Errorf("ensure report schema: %w", err)
	}
	return nil
}

func (r *reportRepo) Save(ctx context.Context, report *domain.Report) error {
	checksJSON, err := json.Marshal(report.Checks)
	if err != nil {
		return fmt.Errorf("marshal checks: %w", err)
	}

	query := `
		INSERT INTO validation_report
			(id, kind, subject, passed, failure_count, checks, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE
		SET passed = EXCLUDED.passed,
			failure_count = EXCLUDED.failure_count,
			checks = EXCLUDED.checks,
			finished_at = EXCLUDED.finished_at
	`
	_, err = r.pool.Exec(ctx, query,
		report.ID, string(report.Kind), report.Subject,
		report.Passed(), report.FailureCount(), checksJSON,
		report.StartedAt, report.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

func (r *reportRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	query := `
		SELECT id, kind, subject, checks, started_at, finished_at
		FROM validation_report
		WHERE id = $1
	`
	report, err := scanReport(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("get report by id: %w", err)
	}
	return report, nil
}

func (r *reportRepo) List(ctx context.Context, filter output.ReportListFilter) ([]*domain.Report, error) {
	query, args := buildListQuery(filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	reports := []*domain.Report{}
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate report rows: %w", err)
	}
	return reports, nil
}

func buildListQuery(filter output.ReportListFilter) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filter.Kind != "" {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", argPos))
		args = append(args, string(filter.Kind))
		argPos++
	}
	if filter.Subject != "" {
		conditions = append(conditions, fmt.Sprintf("subject = $%d", argPos))
		args = append(args, filter.Subject)
		argPos++
	}

	whereClause := "1=1"
	if len(conditions) > 0 {
		whereClause = strings.Join(conditions, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT id, kind, subject, checks, started_at, finished_at
		FROM validation_report
		WHERE %s
		ORDER BY started_at DESC
		LIMIT $%d
	`, whereClause, argPos)
	return query, args
}

func scanReport(row pgx.Row) (*domain.Report, error) {
	var (
		report     domain.Report
		kind       string
		checksJSON []byte
		startedAt  time.Time
		finishedAt time.Time
	)
	if err := row.Scan(&report.ID, &kind, &report.Subject, &checksJSON, &startedAt, &finishedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(checksJSON, &report.Checks); err != nil {
		return nil, fmt.Errorf("unmarshal checks: %w", err)
	}
	report.Kind = domain.ReportKind(kind)
	report.StartedAt = startedAt.UTC()
	report.FinishedAt = finishedAt.UTC()
	return &report, nil
}

// Ensure interface compliance
var _ output.ReportRepository = (*reportRepo)(nil)
