package dataframe

import (
	"errors"
	"testing"

	"github.com/Pilo-pillow/dataclean/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFrame() DataFrame {
	return New(
		series.New([]string{"a", "b", "NaN"}, series.String, "name"),
		series.New([]int{1, 2, 3}, series.Int, "n"),
		series.New([]float64{0.5, 1.5, 2.5}, series.Float, "f"),
	)
}

func TestNew(t *testing.T) {
	df := sampleFrame()
	require.NoError(t, df.Err)
	rows, cols := df.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, []string{"name", "n", "f"}, df.Names())
	assert.Equal(t, []series.Type{series.String, series.Int, series.Float}, df.Types())

	assert.Error(t, New().Err)
	assert.Error(t, New(series.Ints([]int{1}), series.Ints([]int{1, 2})).Err)
}

func TestNewFixesColnames(t *testing.T) {
	df := New(
		series.New([]int{1}, series.Int, "x"),
		series.New([]int{2}, series.Int, "x"),
		series.Ints([]int{3}),
		series.Ints([]int{4}),
	)
	assert.Equal(t, []string{"x_0", "x_1", "X0", "X1"}, df.Names())
}

func TestNewCopiesInput(t *testing.T) {
	s := series.New([]int{1, 2}, series.Int, "n")
	df := New(s)
	s.Name = "changed"
	assert.Equal(t, []string{"n"}, df.Names())
}

func TestCol(t *testing.T) {
	df := sampleFrame()
	assert.Equal(t, []string{"1", "2", "3"}, df.Col("n").Records())

	col := df.Col("missing")
	var uce *UnknownColumnError
	require.True(t, errors.As(col.Err, &uce))
	assert.Equal(t, "missing", uce.Name)
	assert.True(t, df.HasCol("f"))
	assert.False(t, df.HasCol("missing"))
}

func TestSelectAndDrop(t *testing.T) {
	df := sampleFrame()

	assert.Equal(t, []string{"f", "name"}, df.Select([]string{"f", "name"}).Names())
	assert.Equal(t, []string{"n"}, df.Select(1).Names())
	assert.Equal(t, []string{"name", "f"}, df.Drop("n").Names())
	assert.Equal(t, []string{"n"}, df.Drop([]bool{true, false, true}).Names())

	var uce *UnknownColumnError
	assert.True(t, errors.As(df.Select("zz").Err, &uce))
	assert.True(t, errors.As(df.Drop([]string{"zz"}).Err, &uce))
	assert.Error(t, df.Select(7).Err)

	none := df.Drop([]int{0, 1, 2})
	require.NoError(t, none.Err)
	assert.Equal(t, 0, none.Ncol())
	assert.Equal(t, 3, none.Nrow())
	assert.Equal(t, "Empty DataFrame", none.String())
}

func TestSubset(t *testing.T) {
	df := sampleFrame()
	sub := df.Subset([]bool{true, false, true})
	require.NoError(t, sub.Err)
	assert.Equal(t, 2, sub.Nrow())
	assert.Equal(t, []string{"1", "3"}, sub.Col("n").Records())

	assert.Equal(t, []string{"b"}, df.Subset(1).Col("name").Records())
	assert.Error(t, df.Subset([]bool{true}).Err)

	empty := df.Drop([]int{0, 1, 2}).Subset([]bool{true, false, true})
	require.NoError(t, empty.Err)
	assert.Equal(t, 2, empty.Nrow())
}

func TestMutate(t *testing.T) {
	df := sampleFrame()

	replaced := df.Mutate(series.New([]string{"x", "y", "z"}, series.String, "n"))
	require.NoError(t, replaced.Err)
	assert.Equal(t, series.String, replaced.Col("n").Type())
	assert.Equal(t, series.Int, df.Col("n").Type())

	added := df.Mutate(series.New([]bool{true, false, true}, series.Bool, "flag"))
	assert.Equal(t, []string{"name", "n", "f", "flag"}, added.Names())
	assert.Equal(t, 3, df.Ncol())

	assert.Error(t, df.Mutate(series.Ints([]int{1})).Err)
}

func TestRename(t *testing.T) {
	df := sampleFrame()
	out := df.Rename("count", "n")
	require.NoError(t, out.Err)
	assert.Equal(t, []string{"name", "count", "f"}, out.Names())
	assert.Equal(t, []string{"name", "n", "f"}, df.Names())

	assert.Equal(t, []string{"f_0", "n", "f_1"}, df.Rename("f", "name").Names())

	var uce *UnknownColumnError
	assert.True(t, errors.As(df.Rename("x", "nope").Err, &uce))
}

func TestCapply(t *testing.T) {
	df := sampleFrame().Select([]string{"n", "f"})
	doubled := df.Capply(func(s series.Series) series.Series {
		return s.Map(func(v series.Value) series.Value {
			return series.FloatValue(v.Float() * 2)
		})
	})
	require.NoError(t, doubled.Err)
	assert.Equal(t, []string{"2", "4", "6"}, doubled.Col("n").Records())
	assert.Equal(t, []string{"1", "3", "5"}, doubled.Col("f").Records())
}

func TestRecordsAndMaps(t *testing.T) {
	df := sampleFrame()
	assert.Equal(t, [][]string{
		{"name", "n", "f"},
		{"a", "1", "0.5"},
		{"b", "2", "1.5"},
		{"NaN", "3", "2.5"},
	}, df.Records())

	maps := df.Maps()
	require.Len(t, maps, 3)
	assert.Equal(t, map[string]interface{}{"name": "a", "n": 1, "f": 0.5}, maps[0])
	assert.Nil(t, maps[2]["name"])

	assert.True(t, df.Elem(2, 0).IsNA())
}

func TestCopyIsDeep(t *testing.T) {
	df := sampleFrame()
	cp := df.Copy()
	cp.columns[0].Name = "renamed"
	cp.columns[1] = series.New([]int{9, 9, 9}, series.Int, "n")
	assert.Equal(t, []string{"name", "n", "f"}, df.Names())
	assert.Equal(t, []string{"1", "2", "3"}, df.Col("n").Records())
}

func TestString(t *testing.T) {
	out := sampleFrame().String()
	assert.Contains(t, out, "[3x3] DataFrame")
	assert.Contains(t, out, "<string>")
	assert.Contains(t, out, "NaN")

	assert.Equal(t, "DataFrame error: empty DataFrame", New().String())
}
