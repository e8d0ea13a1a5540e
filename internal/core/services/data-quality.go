package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"model-serving-service/internal/core/domain"
	ports "model-serving-service/internal/core/ports/output"
)

// DataQualityRequest names the processed datasets and the target bounds.
type DataQualityRequest struct {
	TrainPath        string
	TestPath         string
	LabelColumn      string
	MinPositiveRatio float64
	MaxPositiveRatio float64
}

// DataQualityService checks processed train/test datasets. It never modifies them.
type DataQualityService struct {
	reader  ports.DatasetReader
	reports ports.ReportRepository
}

// NewDataQualityService creates the service. reports may be nil.
func NewDataQualityService(reader ports.DatasetReader, reports ports.ReportRepository) *DataQualityService {
	return &DataQualityService{reader: reader, reports: reports}
}

// Run reads both datasets and runs every check.
func (s *DataQualityService) Run(ctx context.Context, req DataQualityRequest) (*domain.Report, error) {
	train, err := s.reader.Read(ctx, req.TrainPath)
	if err != nil {
		return nil, fmt.Errorf("read train set: %w", err)
	}
	test, err := s.reader.Read(ctx, req.TestPath)
	if err != nil {
		return nil, fmt.Errorf("read test set: %w", err)
	}

	report := domain.NewReport(domain.ReportKindDataQuality, req.TrainPath+" | "+req.TestPath)
	report.Add(s.CheckSchema(train, test, req.LabelColumn))
	report.Add(s.CheckCompleteness(train, test))
	report.Add(s.CheckTarget(train, test, req.LabelColumn, req.MinPositiveRatio, req.MaxPositiveRatio))
	report.Finish()

	if s.reports != nil {
		if err := s.reports.Save(ctx, report); err != nil {
			log.WithError(err).WithField("report_id", report.ID).Warn("save data quality report failed")
		}
	}
	return report, nil
}

// CheckSchema requires identical column sets and, label excluded, identical
// inferred column types.
func (s *DataQualityService) CheckSchema(train, test *domain.Dataset, label string) *domain.CheckResult {
	check := domain.NewCheckResult(domain.CheckSchemaConsistency)

	trainTypes := columnTypes(train)
	testTypes := columnTypes(test)

	onlyTrain := missingFrom(trainTypes, testTypes)
	onlyTest := missingFrom(testTypes, trainTypes)
	if len(onlyTrain) > 0 || len(onlyTest) > 0 {
		check.Fail(domain.Failure{
			Subject:  "columns",
			Message:  "train and test column sets differ",
			Observed: fmt.Sprintf("train only: [%s]; test only: [%s]", strings.Join(onlyTrain, ", "), strings.Join(onlyTest, ", ")),
		})
	}

	for _, name := range train.ColumnNames() {
		if name == label {
			continue
		}
		testType, ok := testTypes[name]
		if !ok {
			continue
		}
		if trainTypes[name] != testType {
			check.Fail(domain.Failure{
				Subject:  name,
				Message:  "column type differs between train and test",
				Observed: fmt.Sprintf("train=%s test=%s", trainTypes[name], testType),
			})
		}
	}

	check.Details["columns"] = float64(len(train.Columns))
	return check
}

// CheckCompleteness requires zero missing cells in every dataset.
func (s *DataQualityService) CheckCompleteness(datasets ...*domain.Dataset) *domain.CheckResult {
	check := domain.NewCheckResult(domain.CheckCompleteness)

	for _, ds := range datasets {
		missing := ds.MissingCount()
		check.Details["missing:"+ds.Name] = float64(missing)
		if missing == 0 {
			continue
		}

		var cols []string
		for _, c := range ds.Columns {
			if c.Missing > 0 {
				cols = append(cols, fmt.Sprintf("%s=%d", c.Name, c.Missing))
			}
		}
		check.Fail(domain.Failure{
			Subject:  ds.Name,
			Message:  fmt.Sprintf("found %d missing values in %s", missing, ds.Name),
			Observed: strings.Join(cols, ", "),
			Expected: "0",
		})
	}
	return check
}

// CheckTarget requires the label to take exactly the values {0,1} in both
// datasets and the train positive ratio to lie strictly inside (min, max).
func (s *DataQualityService) CheckTarget(train, test *domain.Dataset, label string, minRatio, maxRatio float64) *domain.CheckResult {
	check := domain.NewCheckResult(domain.CheckTargetSanity)

	trainRatio, trainOK := s.checkLabelValues(check, train, label)
	testRatio, testOK := s.checkLabelValues(check, test, label)
	if testOK {
		check.Details["test_positive_ratio"] = testRatio
	}
	if !trainOK {
		return check
	}

	check.Details["train_positive_ratio"] = trainRatio
	log.WithFields(log.Fields{
		"train_positive_ratio": fmt.Sprintf("%.4f", trainRatio),
		"test_positive_ratio":  fmt.Sprintf("%.4f", testRatio),
	}).Info("target distribution")

	switch {
	case trainRatio <= minRatio:
		check.Fail(domain.Failure{
			Subject:  train.Name,
			Message:  "positive class too rare in train",
			Observed: fmt.Sprintf("%.4f", trainRatio),
			Expected: fmt.Sprintf("> %.2f", minRatio),
		})
	case trainRatio >= maxRatio:
		check.Fail(domain.Failure{
			Subject:  train.Name,
			Message:  "positive class too common in train",
			Observed: fmt.Sprintf("%.4f", trainRatio),
			Expected: fmt.Sprintf("< %.2f", maxRatio),
		})
	}
	return check
}

// checkLabelValues records a failure unless the distinct label values are
// exactly {0,1}. It returns the mean of the numeric labels and whether the
// column could be read at all.
func (s *DataQualityService) checkLabelValues(check *domain.CheckResult, ds *domain.Dataset, label string) (float64, bool) {
	values, err := ds.Values(label)
	if err != nil {
		check.Fail(domain.Failure{Subject: ds.Name, Message: err.Error()})
		return 0, false
	}

	distinct := map[string]struct{}{}
	sum, n := 0.0, 0
	binary := true
	for _, v := range values {
		f, ok := domain.AsFloat(v)
		if !ok {
			binary = false
			distinct[domain.FormatCell(v)] = struct{}{}
			continue
		}
		sum += f
		n++
		distinct[domain.FormatCell(f)] = struct{}{}
		if f != 0 && f != 1 {
			binary = false
		}
	}

	_, hasZero := distinct["0"]
	_, hasOne := distinct["1"]
	if !binary || !hasZero || !hasOne {
		observed := make([]string, 0, len(distinct))
		for k := range distinct {
			observed = append(observed, k)
		}
		sort.Strings(observed)
		check.Fail(domain.Failure{
			Subject:  ds.Name,
			Message:  fmt.Sprintf("%s must take exactly the values {0, 1}", label),
			Observed: "{" + strings.Join(observed, ", ") + "}",
			Expected: "{0, 1}",
		})
	}

	return safeDiv(sum, float64(n)), true
}

func columnTypes(ds *domain.Dataset) map[string]domain.ColumnType {
	out := make(map[string]domain.ColumnType, len(ds.Columns))
	for _, c := range ds.Columns {
		out[c.Name] = c.Type
	}
	return out
}

// missingFrom lists keys of a absent from b, sorted.
func missingFrom(a, b map[string]domain.ColumnType) []string {
	var out []string
	for k := range a {
		if _, ok := b[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
