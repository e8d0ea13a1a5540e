package domain

import (
	"fmt"
	"strconv"
)

type ColumnType string

const (
	ColumnTypeInt64   ColumnType = "int64"
	ColumnTypeFloat64 ColumnType = "float64"
	ColumnTypeBool    ColumnType = "bool"
	ColumnTypeObject  ColumnType = "object"
)

type Column struct {
	Name    string     `json:"name"`
	Type    ColumnType `json:"type"`
	Missing int        `json:"missing"`
}

// Frame is an ordered table handed to a model. Cells are int, int64, float64,
// bool or string.
type Frame struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"data"`
}

func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Rows)
}

// Head returns a frame sharing the first n rows.
func (f *Frame) Head(n int) *Frame {
	if n > len(f.Rows) {
		n = len(f.Rows)
	}
	if n < 0 {
		n = 0
	}
	return &Frame{Columns: f.Columns, Rows: f.Rows[:n]}
}

// Dataset is a labeled table read from a processed file. A nil cell is missing.
type Dataset struct {
	Name    string
	Columns []Column
	Rows    [][]any
}

func (d *Dataset) Len() int {
	return len(d.Rows)
}

func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the column and its index.
func (d *Dataset) Column(name string) (Column, int, error) {
	for i, c := range d.Columns {
		if c.Name == name {
			return c, i, nil
		}
	}
	return Column{}, -1, fmt.Errorf("%w: %s in %s", ErrColumnNotFound, name, d.Name)
}

// MissingCount is the total number of missing cells.
func (d *Dataset) MissingCount() int {
	total := 0
	for _, c := range d.Columns {
		total += c.Missing
	}
	return total
}

// Values returns the cells of one column in row order.
func (d *Dataset) Values(name string) ([]any, error) {
	_, idx, err := d.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(d.Rows))
	for i, row := range d.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Features returns every column except label as a frame.
func (d *Dataset) Features(label string) (*Frame, error) {
	_, idx, err := d.Column(label)
	if err != nil {
		return nil, err
	}

	columns := make([]string, 0, len(d.Columns)-1)
	for i, c := range d.Columns {
		if i != idx {
			columns = append(columns, c.Name)
		}
	}

	rows := make([][]any, len(d.Rows))
	for i, row := range d.Rows {
		out := make([]any, 0, len(row)-1)
		out = append(out, row[:idx]...)
		out = append(out, row[idx+1:]...)
		rows[i] = out
	}
	return &Frame{Columns: columns, Rows: rows}, nil
}

// Labels returns the label column as numbers.
func (d *Dataset) Labels(label string) ([]float64, error) {
	values, err := d.Values(label)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(values))
	for i, v := range values {
		f, ok := AsFloat(v)
		if !ok {
			return nil, fmt.Errorf("%w: %s row %d is %v", ErrInvalidField, label, i, v)
		}
		out[i] = f
	}
	return out, nil
}

// AsFloat converts a numeric or boolean cell. Missing and text cells report false.
func AsFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// FormatCell renders a cell for diagnostics.
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return "NaN"
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
