package cleaning

import (
	"fmt"
	"log/slog"

	"github.com/Pilo-pillow/dataclean/dataframe"
	"github.com/Pilo-pillow/dataclean/series"
)

// 缺失汇总结果的列名
const (
	MissingCountColumn = "missing_count"
	MissingPctColumn   = "missing_pct"
)

// SummarizeMissing 为 df 的每一列计算缺失单元格个数和缺失百分比（个数 / 行数 × 100）。
// 结果每行对应一列，包含 feature、missing_count 和 missing_pct 三列。
// 当 df 没有行时 missing_pct 为 0。
func SummarizeMissing(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if err := checkColumns(df, nil); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("summarize missing: %w", err)
	}

	names := df.Names()
	features := make([]series.Value, len(names))
	counts := make([]int, len(names))
	pcts := make([]float64, len(names))
	for i, name := range names {
		features[i] = series.Literal(name)
		counts[i] = df.Col(name).NaNCount()
		pcts[i] = missingFraction(counts[i], df.Nrow()) * 100
	}
	return dataframe.New(
		series.New(features, series.String, FeatureColumn),
		series.New(counts, series.Int, MissingCountColumn),
		series.New(pcts, series.Float, MissingPctColumn),
	), nil
}

// missingFraction 返回 missing / total，total 为 0 时返回 0。
func missingFraction(missing, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(missing) / float64(total)
}

// DropColumnsMissing 删除缺失比例严格大于 threshold 的列。
//
// threshold 是 [0,1] 内的比例而不是百分比；缺失比例恰好等于 threshold 的列会被保留。
// threshold 超出范围时返回 *ThresholdError。
func DropColumnsMissing(df dataframe.DataFrame, threshold float64) (dataframe.DataFrame, error) {
	if err := checkColumns(df, nil); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("drop columns: %w", err)
	}
	if err := checkThreshold(threshold); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("drop columns: %w", err)
	}

	dropped := []string{}
	for _, name := range df.Names() {
		if missingFraction(df.Col(name).NaNCount(), df.Nrow()) > threshold {
			dropped = append(dropped, name)
		}
	}
	out := df.Drop(dropped)
	if out.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("drop columns: %w", out.Err)
	}
	slog.Debug("删除缺失过多的列", "threshold", threshold, "dropped", dropped)
	return out, nil
}

// DropRowsMissing 保留缺失比例小于或等于 threshold 的行，删除其余行。
//
// threshold 是 [0,1] 内的比例；缺失比例恰好等于 threshold 的行会被保留。
// threshold 超出范围时返回 *ThresholdError。
func DropRowsMissing(df dataframe.DataFrame, threshold float64) (dataframe.DataFrame, error) {
	if err := checkColumns(df, nil); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("drop rows: %w", err)
	}
	if err := checkThreshold(threshold); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("drop rows: %w", err)
	}

	missing := make([]int, df.Nrow())
	for _, name := range df.Names() {
		for i, na := range df.Col(name).IsNaN() {
			if na {
				missing[i]++
			}
		}
	}
	keep := make([]bool, df.Nrow())
	kept := 0
	for i, n := range missing {
		keep[i] = missingFraction(n, df.Ncol()) <= threshold
		if keep[i] {
			kept++
		}
	}
	out := df.Subset(keep)
	if out.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("drop rows: %w", out.Err)
	}
	slog.Debug("删除缺失过多的行", "threshold", threshold, "dropped", df.Nrow()-kept)
	return out, nil
}
