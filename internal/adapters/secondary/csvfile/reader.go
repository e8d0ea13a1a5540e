package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"model-serving-service/internal/core/domain"
	ports "model-serving-service/internal/core/ports/output"
)

// missingMarkers are the cell spellings read as missing values.
var missingMarkers = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

type reader struct{}

// NewReader returns a DatasetReader for comma separated files with a header row.
func NewReader() ports.DatasetReader {
	return &reader{}
}

func (r *reader) Read(ctx context.Context, path string) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Parse(ctx, filepath.Base(path), f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	log.WithFields(log.Fields{
		"path":    path,
		"rows":    ds.Len(),
		"columns": len(ds.Columns),
	}).Debug("dataset loaded")
	return ds, nil
}

// Parse reads CSV from src and infers a type per column.
func Parse(ctx context.Context, name string, src io.Reader) (*domain.Dataset, error) {
	cr := csv.NewReader(src)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.ErrDatasetEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var raw [][]string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) && errors.Is(parseErr.Err, csv.ErrFieldCount) {
			return nil, fmt.Errorf("%w: line %d", domain.ErrRaggedRow, parseErr.Line)
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		raw = append(raw, record)
	}

	ds := &domain.Dataset{
		Name:    name,
		Columns: make([]domain.Column, len(header)),
		Rows:    make([][]any, len(raw)),
	}
	for i := range ds.Rows {
		ds.Rows[i] = make([]any, len(header))
	}

	for col, colName := range header {
		kind, missing := inferType(raw, col)
		ds.Columns[col] = domain.Column{Name: colName, Type: kind, Missing: missing}
		for i, record := range raw {
			ds.Rows[i][col] = convert(record[col], kind)
		}
	}
	return ds, nil
}

func isMissing(cell string) bool {
	_, ok := missingMarkers[cell]
	return ok
}

// inferType picks the narrowest type holding every non-missing cell. Integer
// columns with missing cells widen to float64.
var boolValues = map[string]bool{
	"True": true, "TRUE": true, "true": true,
	"False": false, "FALSE": false, "false": false,
}

func inferType(raw [][]string, col int) (domain.ColumnType, int) {
	missing := 0
	isInt, isFloat, isBool := true, true, true
	seen := 0

	for _, record := range raw {
		cell := record[col]
		if isMissing(cell) {
			missing++
			continue
		}
		seen++
		if isInt {
			if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				isFloat = false
			}
		}
		if isBool {
			_, isBool = boolValues[cell]
		}
	}

	switch {
	case len(raw) == 0:
		return domain.ColumnTypeObject, missing
	case seen == 0:
		// all missing reads as float NaN
		return domain.ColumnTypeFloat64, missing
	case isInt && missing == 0:
		return domain.ColumnTypeInt64, missing
	case isInt || isFloat:
		return domain.ColumnTypeFloat64, missing
	case isBool && missing == 0:
		return domain.ColumnTypeBool, missing
	default:
		return domain.ColumnTypeObject, missing
	}
}

func convert(cell string, kind domain.ColumnType) any {
	if isMissing(cell) {
		return nil
	}
	switch kind {
	case domain.ColumnTypeInt64:
		v, _ := strconv.ParseInt(cell, 10, 64)
		return v
	case domain.ColumnTypeFloat64:
		v, _ := strconv.ParseFloat(cell, 64)
		return v
	case domain.ColumnTypeBool:
		return boolValues[cell]
	default:
		return cell
	}
}
