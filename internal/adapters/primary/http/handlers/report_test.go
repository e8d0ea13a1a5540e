package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"model-serving-service/internal/core/domain"
	ports "model-serving-service/internal/core/ports/output"
	"model-serving-service/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListReports(t *testing.T) {
	repo := new(testutil.MockReportRepo)
	r := setupRouter(nil, repo)

	report := domain.NewReport(domain.ReportKindDataQuality, "train_final.csv")
	check := domain.NewCheckResult(domain.CheckCompleteness)
	check.Fail(domain.Failure{Subject: "train_final.csv", Message: "found 2 missing values in train_final.csv"})
	report.Add(check)
	report.Finish()

	repo.On("List", mock.Anything, ports.ReportListFilter{Kind: domain.ReportKindDataQuality, Limit: 5}).
		Return([]*domain.Report{report}, nil)

	w := get(r, "/reports?kind=data_quality&limit=5")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, float64(1), resp["size"])
	item := resp["items"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, false, item["passed"])
	assert.Equal(t, float64(1), item["failure_count"])
	repo.AssertExpectations(t)
}

func TestGetReport(t *testing.T) {
	repo := new(testutil.MockReportRepo)
	r := setupRouter(nil, repo)

	report := domain.NewReport(domain.ReportKindModelValidation, "models:/my_model/3")
	report.Add(domain.NewCheckResult(domain.CheckModelLoaded))
	report.Finish()
	repo.On("GetByID", mock.Anything, report.ID).Return(report, nil)

	w := get(r, "/reports/"+report.ID.String())

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "model_validation", resp["kind"])
	assert.Equal(t, true, resp["passed"])
}

func TestGetReport_Errors(t *testing.T) {
	missing := uuid.New()
	repo := new(testutil.MockReportRepo)
	repo.On("GetByID", mock.Anything, missing).Return(nil, domain.ErrReportNotFound)

	tests := []struct {
		name     string
		repo     *testutil.MockReportRepo
		path     string
		expected int
	}{
		{name: "not found", repo: repo, path: "/reports/" + missing.String(), expected: http.StatusNotFound},
		{name: "bad id", repo: repo, path: "/reports/not-a-uuid", expected: http.StatusBadRequest},
		{name: "store disabled", repo: nil, path: "/reports/" + missing.String(), expected: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(nil, tt.repo)
			w := get(r, tt.path)
			assert.Equal(t, tt.expected, w.Code)
			assert.Contains(t, decode(t, w), "error")
		})
	}
}
