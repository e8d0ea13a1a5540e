package testutil

import "model-serving-service/internal/core/domain"

// NewDataset builds a dataset with inferred column types from typed rows.
// A nil cell counts as missing and widens an integer column to float64.
func NewDataset(name string, columns []string, rows [][]any) *domain.Dataset {
	ds := &domain.Dataset{Name: name, Rows: rows}
	for i, col := range columns {
		c := domain.Column{Name: col}
		kind := domain.ColumnTypeInt64
		for _, row := range rows {
			switch row[i].(type) {
			case nil:
				c.Missing++
				if kind == domain.ColumnTypeInt64 {
					kind = domain.ColumnTypeFloat64
				}
			case float64:
				if kind == domain.ColumnTypeInt64 {
					kind = domain.ColumnTypeFloat64
				}
			case string:
				kind = domain.ColumnTypeObject
			}
		}
		c.Type = kind
		ds.Columns = append(ds.Columns, c)
	}
	return ds
}
