package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-serving-service/internal/core/domain"
)

func TestParse_InfersTypes(t *testing.T) {
	src := strings.Join([]string{
		"Gender,Age,Annual_Premium,Vehicle_Damage,Flag,Response",
		"1,45,25000.0,Yes,True,0",
		"0,23,31000.5,No,False,1",
	}, "\n")

	ds, err := Parse(context.Background(), "train_final.csv", strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, "train_final.csv", ds.Name)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, []string{"Gender", "Age", "Annual_Premium", "Vehicle_Damage", "Flag", "Response"}, ds.ColumnNames())

	expected := []domain.ColumnType{
		domain.ColumnTypeInt64, domain.ColumnTypeInt64, domain.ColumnTypeFloat64,
		domain.ColumnTypeObject, domain.ColumnTypeBool, domain.ColumnTypeInt64,
	}
	for i, c := range ds.Columns {
		assert.Equal(t, expected[i], c.Type, c.Name)
	}

	assert.Equal(t, []any{int64(1), int64(45), 25000.0, "Yes", true, int64(0)}, ds.Rows[0])
	assert.Equal(t, 0, ds.MissingCount())
}

func TestParse_MissingCellsWidenIntegers(t *testing.T) {
	src := "Age,Region_Code,Note\n30,28,a\n,NaN,NA\n41,3,b\n"

	ds, err := Parse(context.Background(), "test_final.csv", strings.NewReader(src))
	require.NoError(t, err)

	age, _, err := ds.Column("Age")
	require.NoError(t, err)
	assert.Equal(t, domain.ColumnTypeFloat64, age.Type)
	assert.Equal(t, 1, age.Missing)

	note, _, err := ds.Column("Note")
	require.NoError(t, err)
	assert.Equal(t, domain.ColumnTypeObject, note.Type)
	assert.Equal(t, 1, note.Missing)

	assert.Equal(t, 3, ds.MissingCount())
	assert.Nil(t, ds.Rows[1][0])
	assert.Equal(t, 30.0, ds.Rows[0][0])
}

func TestParse_StripsByteOrderMark(t *testing.T) {
	ds, err := Parse(context.Background(), "bom.csv", strings.NewReader("\ufeffAge,Response\n1,0\n"))
	require.NoError(t, err)
	assert.Equal(t, "Age", ds.Columns[0].Name)
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse(context.Background(), "empty.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrDatasetEmpty)
}

func TestParse_RaggedRow(t *testing.T) {
	_, err := Parse(context.Background(), "bad.csv", strings.NewReader("a,b\n1,2\n3\n"))
	assert.ErrorIs(t, err, domain.ErrRaggedRow)
}

func TestParse_HeaderOnly(t *testing.T) {
	ds, err := Parse(context.Background(), "header.csv", strings.NewReader("Age,Response\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
	assert.Len(t, ds.Columns, 2)
	for _, c := range ds.Columns {
		assert.Equal(t, domain.ColumnTypeObject, c.Type, c.Name)
	}
}

func TestParse_BoolSpellings(t *testing.T) {
	ds, err := Parse(context.Background(), "flags.csv", strings.NewReader("A,B\nTRUE,false\ntrue,FALSE\n"))
	require.NoError(t, err)

	for _, c := range ds.Columns {
		assert.Equal(t, domain.ColumnTypeBool, c.Type, c.Name)
	}
	assert.Equal(t, []any{true, false}, ds.Rows[0])
	assert.Equal(t, []any{true, false}, ds.Rows[1])
}

func TestParse_AllMissingColumnIsFloat(t *testing.T) {
	ds, err := Parse(context.Background(), "nan.csv", strings.NewReader("A,B\n,1\nNaN,2\n"))
	require.NoError(t, err)
	assert.Equal(t, domain.ColumnTypeFloat64, ds.Columns[0].Type)
	assert.Equal(t, 2, ds.Columns[0].Missing)
}

func TestReader_Read(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "train_final.csv")
	require.NoError(t, os.WriteFile(path, []byte("Age,Response\n30,1\n40,0\n"), 0o600))

	ds, err := NewReader().Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "train_final.csv", ds.Name)

	labels, err := ds.Labels("Response")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, labels)
}

func TestReader_Read_NotFound(t *testing.T) {
	_, err := NewReader().Read(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
