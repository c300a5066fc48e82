package dataframe

import (
	"testing"

	"github.com/Pilo-pillow/dataclean/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	df := New(
		series.New([]string{"b", "a", "NaN", "c"}, series.String, "s"),
		series.New([]interface{}{1, 2, nil, 4}, series.Int, "n"),
	)
	desc := df.Describe()
	require.NoError(t, desc.Err)
	assert.Equal(t, []string{"列名", "s", "n"}, desc.Names())
	assert.Equal(t, 10, desc.Nrow())

	assert.Equal(t, []string{
		"计数", "缺失", "平均值", "中位数", "标准差", "最小值", "25%", "50%", "75%", "最大值",
	}, desc.Col("列名").Records())
	assert.Equal(t, []string{"3", "1", "-", "-", "-", "a", "-", "-", "-", "c"}, desc.Col("s").Records())

	n := desc.Col("n").Float()
	assert.Equal(t, series.Float, desc.Col("n").Type())
	assert.Equal(t, 3.0, n[0])
	assert.Equal(t, 1.0, n[1])
	assert.InDelta(t, 7.0/3, n[2], 1e-9)
	assert.Equal(t, 2.0, n[3])
	assert.Equal(t, 1.0, n[5])
	assert.Equal(t, 4.0, n[9])
}

func TestDescribeKeepsError(t *testing.T) {
	assert.Error(t, New().Describe().Err)
}
