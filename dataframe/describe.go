package dataframe

import (
	"github.com/Pilo-pillow/dataclean/series"
)

// Describe 返回 DataFrame 的描述性统计信息。统计量只基于非缺失值计算。
func (df DataFrame) Describe() DataFrame {
	if df.Err != nil {
		return df
	}
	labels := series.Strings([]string{
		"计数",
		"缺失",
		"平均值",
		"中位数",
		"标准差",
		"最小值",
		"25%",
		"50%",
		"75%",
		"最大值",
	})
	labels.Name = "列名"

	ss := []series.Series{labels}
	for _, col := range df.columns {
		count := col.Len() - col.NaNCount()
		var newCol series.Series
		switch col.Type() {
		case series.Bool, series.Float, series.Int:
			newCol = series.New([]float64{
				float64(count),
				float64(col.NaNCount()),
				col.Mean(),
				col.Median(),
				col.StdDev(),
				col.Min(),
				col.Quantile(0.25),
				col.Quantile(0.50),
				col.Quantile(0.75),
				col.Max(),
			}, series.Float, col.Name)
		default:
			newCol = series.New([]interface{}{
				count,
				col.NaNCount(),
				"-",
				"-",
				"-",
				col.MinStr(),
				"-",
				"-",
				"-",
				col.MaxStr(),
			}, series.String, col.Name)
		}
		ss = append(ss, newCol)
	}
	return New(ss...)
}
