package cleaning

import (
	"errors"
	"testing"

	"github.com/Pilo-pillow/dataclean/dataframe"
	"github.com/Pilo-pillow/dataclean/series"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func surveyFrame() dataframe.DataFrame {
	return dataframe.New(
		series.New([]string{"yes", "no", "unknown", "yes"}, series.String, "status"),
		series.New([]string{"a", "NaN", "b", "a"}, series.String, "code"),
	)
}

func TestCountUniqueValues(t *testing.T) {
	df := surveyFrame()
	out, err := CountUniqueValues(df, "status", "code")
	require.NoError(t, err)

	assert.Equal(t, []string{FeatureColumn, "yes", "no", "unknown", "a", "NaN", "b"}, out.Names())
	assert.Equal(t, []string{"status", "code"}, out.Col(FeatureColumn).Records())
	assert.Equal(t, [][]string{
		{"feature", "yes", "no", "unknown", "a", "NaN", "b"},
		{"status", "2", "1", "1", "0", "0", "0"},
		{"code", "0", "0", "0", "2", "1", "1"},
	}, out.Records())

	for r := 0; r < out.Nrow(); r++ {
		sum := 0
		for c := 1; c < out.Ncol(); c++ {
			n, err := out.Elem(r, c).Int()
			require.NoError(t, err)
			sum += n
		}
		assert.Equal(t, df.Nrow(), sum)
	}
}

func TestCountUniqueValuesNameClashes(t *testing.T) {
	df := dataframe.New(
		series.Infer([]interface{}{"1", 1, 1, "feature"}, "mixed"),
	)
	require.Equal(t, series.Object, df.Col("mixed").Type())

	out, err := CountUniqueValues(df, "mixed")
	require.NoError(t, err)
	assert.Equal(t, []string{FeatureColumn, "1", "1_1", "feature_1"}, out.Names())
	assert.Equal(t, []string{"mixed", "1", "2", "1"}, out.Records()[1])
}

func TestCountUniqueValuesColumnNamedNaN(t *testing.T) {
	df := dataframe.New(series.New([]string{"x"}, series.String, "NaN"))
	out, err := CountUniqueValues(df, "NaN")
	require.NoError(t, err)
	assert.Equal(t, []string{"NaN"}, out.Col(FeatureColumn).Records())
	assert.Equal(t, 0, out.Col(FeatureColumn).NaNCount())
}

func TestCountUniqueValuesLargeIntegers(t *testing.T) {
	df := dataframe.New(series.New([]int{1 << 53, 1<<53 + 1, 1 << 53}, series.Int, "id"))
	out, err := CountUniqueValues(df, "id")
	require.NoError(t, err)
	assert.Equal(t, []string{FeatureColumn, "9007199254740992", "9007199254740993"}, out.Names())
	assert.Equal(t, []string{"id", "2", "1"}, out.Records()[1])
}

func TestCountUniqueValuesEmptyString(t *testing.T) {
	df := dataframe.New(series.New([]string{"", "a", ""}, series.String, "s"))
	out, err := CountUniqueValues(df, "s")
	require.NoError(t, err)
	assert.Equal(t, []string{FeatureColumn, EmptyValueColumn, "a"}, out.Names())
	assert.Equal(t, []string{"s", "2", "1"}, out.Records()[1])
}

func TestCountUniqueValuesUnknownColumns(t *testing.T) {
	_, err := CountUniqueValues(surveyFrame(), "status", "x", "y")
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 2)

	var uce *dataframe.UnknownColumnError
	require.True(t, errors.As(err, &uce))
	assert.Equal(t, "x", uce.Name)
}

func TestCountUniqueValuesInvalidFrame(t *testing.T) {
	_, err := CountUniqueValues(dataframe.New(), "a")
	assert.Error(t, err)
}
