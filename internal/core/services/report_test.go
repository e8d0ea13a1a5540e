package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"model-serving-service/internal/core/domain"
	ports "model-serving-service/internal/core/ports/output"
	"model-serving-service/internal/testutil"
)

func TestReportService_Disabled(t *testing.T) {
	svc := NewReportService(nil)
	assert.False(t, svc.Enabled())

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrReportStoreDisabled)

	_, err = svc.List(context.Background(), ports.ReportListFilter{})
	assert.ErrorIs(t, err, domain.ErrReportStoreDisabled)
}

func TestReportService_Get(t *testing.T) {
	repo := new(testutil.MockReportRepo)
	svc := NewReportService(repo)

	report := domain.NewReport(domain.ReportKindDataQuality, "train_final.csv")
	repo.On("GetByID", mock.Anything, report.ID).Return(report, nil)

	got, err := svc.Get(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, report, got)

	_, err = svc.Get(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, domain.ErrInvalidReportID)
	repo.AssertExpectations(t)
}

func TestReportService_ListCapsLimit(t *testing.T) {
	repo := new(testutil.MockReportRepo)
	svc := NewReportService(repo)

	repo.On("List", mock.Anything, ports.ReportListFilter{Kind: domain.ReportKindModelValidation, Limit: maxReportListLimit}).
		Return([]*domain.Report{}, nil)

	reports, err := svc.List(context.Background(), ports.ReportListFilter{Kind: domain.ReportKindModelValidation, Limit: 10000})
	require.NoError(t, err)
	assert.Empty(t, reports)
	repo.AssertExpectations(t)
}

func TestLogReport(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	report := domain.NewReport(domain.ReportKindModelValidation, "models:/my_model/3")
	report.Add(domain.NewCheckResult(domain.CheckModelLoaded))
	perf := domain.NewCheckResult(domain.CheckModelPerformance)
	perf.Details["accuracy"] = 0.2
	perf.Fail(domain.Failure{Subject: "accuracy", Message: "accuracy should be at least 0.40", Observed: "0.2000"})
	report.Add(perf)
	report.Finish()

	LogReport(report)

	entries := hook.AllEntries()
	require.Len(t, entries, 4)
	assert.Equal(t, "check passed", entries[0].Message)
	assert.Equal(t, "check failed", entries[1].Message)
	assert.Equal(t, 0.2, entries[1].Data["accuracy"])
	assert.Equal(t, "accuracy should be at least 0.40", entries[2].Message)
	assert.Equal(t, false, hook.LastEntry().Data["passed"])
	assert.Equal(t, 1, hook.LastEntry().Data["failures"])
}
