package cleaning

import (
	"fmt"
	"log/slog"

	"github.com/Pilo-pillow/dataclean/dataframe"
	"github.com/Pilo-pillow/dataclean/series"
)

// FeatureColumn 是汇总结果中保存原列名的列。
const FeatureColumn = "feature"

// EmptyValueColumn 是空字符串取值在 CountUniqueValues 结果中的列名。
const EmptyValueColumn = "<empty>"

// CountUniqueValues 统计 columns 中每一列各个取值（包括缺失值）出现的次数。
//
// 结果每行对应一个请求的列，按请求顺序排列，第一列 feature 为列名；
// 其余每列对应一个出现过的取值，按首次出现顺序排列，单元格为该取值在该列中的次数，
// 未出现时为 0。缺失值对应的列名为 NaN，空字符串对应 EmptyValueColumn，
// 打印结果相同的取值会追加 _1、_2 等后缀。
// 每行计数之和等于 df 的行数。
//
// 任一列名不存在时返回 *dataframe.UnknownColumnError（多个时合并为 *multierror.Error）。
func CountUniqueValues(df dataframe.DataFrame, columns ...string) (dataframe.DataFrame, error) {
	if err := checkColumns(df, columns); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("count unique values: %w", err)
	}

	var order []series.Key
	labels := make(map[series.Key]series.Value)
	perFeature := make([]map[series.Key]int, len(columns))
	features := make([]series.Value, len(columns))
	for i, col := range columns {
		features[i] = series.Literal(col)
		counts := df.Col(col).ValueCounts(false)
		perFeature[i] = make(map[series.Key]int, len(counts))
		for _, c := range counts {
			k := c.Value.Key()
			if _, ok := labels[k]; !ok {
				labels[k] = c.Value
				order = append(order, k)
			}
			perFeature[i][k] = c.N
		}
	}

	used := map[string]struct{}{FeatureColumn: {}}
	ss := []series.Series{series.New(features, series.String, FeatureColumn)}
	for _, k := range order {
		n := make([]int, len(columns))
		for i := range columns {
			n[i] = perFeature[i][k]
		}
		name := labels[k].String()
		if name == "" {
			name = EmptyValueColumn
		}
		ss = append(ss, series.New(n, series.Int, uniqueName(name, used)))
	}
	slog.Debug("统计不同取值完成", "columns", columns, "values", len(order))
	return dataframe.New(ss...), nil
}

// uniqueName 返回不在 used 中的列名，并将其加入 used。
func uniqueName(name string, used map[string]struct{}) string {
	candidate := name
	for i := 1; ; i++ {
		if _, ok := used[candidate]; !ok {
			used[candidate] = struct{}{}
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d", name, i)
	}
}
