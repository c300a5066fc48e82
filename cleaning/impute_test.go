package cleaning

import (
	"errors"
	"testing"

	"github.com/Pilo-pillow/dataclean/dataframe"
	"github.com/Pilo-pillow/dataclean/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImputeMode(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"a", "b", "NaN", "a"}, series.String, "s"),
		series.New([]interface{}{1, nil, 2, 2}, series.Int, "n"),
		series.New([]bool{true, false, true, true}, series.Bool, "b"),
	)
	out, err := ImputeMode(df)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "a", "a"}, out.Col("s").Records())
	assert.Equal(t, []string{"1", "2", "2", "2"}, out.Col("n").Records())
	assert.Equal(t, series.Int, out.Col("n").Type())
	assert.Equal(t, df.Col("b").Records(), out.Col("b").Records())

	assert.Equal(t, 1, df.Col("s").NaNCount())
	assert.Equal(t, 1, df.Col("n").NaNCount())
}

func TestImputeModeTieBreak(t *testing.T) {
	df := dataframe.New(series.New([]string{"b", "a", "NaN", "a", "b"}, series.String, "s"))
	out, err := ImputeMode(df)
	require.NoError(t, err)
	assert.Equal(t, "b", out.Elem(2, 0).String())
}

func TestImputeModeSelectedColumns(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"x", "NaN", "x"}, series.String, "first"),
		series.New([]string{"y", "NaN", "y"}, series.String, "second"),
	)
	out, err := ImputeMode(df, "second")
	require.NoError(t, err)
	assert.Equal(t, 1, out.Col("first").NaNCount())
	assert.Equal(t, 0, out.Col("second").NaNCount())
}

func TestImputeModeAllMissing(t *testing.T) {
	df := dataframe.New(
		series.New([]interface{}{nil, nil}, series.Float, "empty"),
		series.New([]interface{}{"k", nil}, series.String, "some"),
	)
	out, err := ImputeMode(df)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Col("empty").NaNCount())
	assert.Equal(t, []string{"k", "k"}, out.Col("some").Records())
}

func TestImputeModeUnknownColumn(t *testing.T) {
	_, err := ImputeMode(surveyFrame(), "status", "nope")
	var uce *dataframe.UnknownColumnError
	require.True(t, errors.As(err, &uce))
	assert.Equal(t, "nope", uce.Name)
}
