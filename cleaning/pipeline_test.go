package cleaning

import (
	"context"
	"errors"
	"testing"

	"github.com/Pilo-pillow/dataclean/dataframe"
	"github.com/Pilo-pillow/dataclean/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineRun(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"yes", "no", "unknown", "yes"}, series.String, "status"),
		series.New([]interface{}{nil, nil, nil, 1}, series.Int, "sparse"),
		series.New([]string{"a", "NaN", "NaN", "a"}, series.String, "city"),
	)
	p := NewPipeline(
		Replace([]string{"status"}, Replacements{"unknown": nil, "yes": 1, "no": 0}),
		DropColumns(0.5),
		DropRows(0.5),
		Impute(),
	)
	require.Equal(t, 4, p.Len())

	out, err := p.Run(context.Background(), df)
	require.NoError(t, err)
	assert.Equal(t, []string{"status", "city"}, out.Names())
	assert.Equal(t, []string{"1", "0", "1"}, out.Col("status").Records())
	assert.Equal(t, []string{"a", "a", "a"}, out.Col("city").Records())
	assert.Equal(t, 3, df.Ncol())
}

func TestPipelineStepError(t *testing.T) {
	called := false
	p := NewPipeline(DropColumns(2)).Add(StepFunc("never", func(df dataframe.DataFrame) (dataframe.DataFrame, error) {
		called = true
		return df, nil
	}))

	_, err := p.Run(context.Background(), surveyFrame())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 0 (drop_columns_missing)")
	var te *ThresholdError
	assert.True(t, errors.As(err, &te))
	assert.False(t, called)
}

func TestPipelineCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewPipeline(Impute()).Run(ctx, surveyFrame())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestPipelineCustomStep(t *testing.T) {
	upper := StepFunc("upper", func(df dataframe.DataFrame) (dataframe.DataFrame, error) {
		return ReplaceValues(df, []string{"code"}, Replacements{"a": "A"})
	})
	p := NewPipeline()
	assert.Equal(t, 0, p.Len())
	p.Add(upper).Add(Impute("code"))
	assert.Equal(t, "upper", upper.Name())

	out, err := p.Run(context.Background(), surveyFrame())
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "A", "b", "A"}, out.Col("code").Records())
}

func TestEmptyPipelineReturnsInput(t *testing.T) {
	df := surveyFrame()
	out, err := NewPipeline().Run(context.Background(), df)
	require.NoError(t, err)
	assert.Equal(t, df.Records(), out.Records())
}

func TestPipelineRunAll(t *testing.T) {
	p := NewPipeline(Replace([]string{"status"}, Replacements{"unknown": nil}), Impute("status"))
	dfs := []dataframe.DataFrame{surveyFrame(), surveyFrame(), surveyFrame()}

	out, err := p.RunAll(context.Background(), dfs, 2)
	require.NoError(t, err)
	require.Len(t, out, 3)
	for _, df := range out {
		assert.Equal(t, []string{"yes", "no", "yes", "yes"}, df.Col("status").Records())
	}
	assert.Equal(t, "unknown", dfs[0].Elem(2, 0).String())
}

func TestPipelineRunAllError(t *testing.T) {
	p := NewPipeline(Impute("status"))
	dfs := []dataframe.DataFrame{surveyFrame(), dataframe.New()}

	_, err := p.RunAll(context.Background(), dfs, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frame 1")
}
