package cleaning

import (
	"fmt"
	"log/slog"

	"github.com/Pilo-pillow/dataclean/dataframe"
)

// ImputeMode 用每列出现次数最多的非缺失值填补该列的缺失单元格。
// 未指定 columns 时处理所有列。
//
// 众数在填补前对每列计算一次；多个取值次数相同时取在列中最先出现的那个。
// 没有缺失值的列保持不变；全部缺失的列没有众数，也保持不变。
// 任一列名不存在时返回 *dataframe.UnknownColumnError（多个时合并为 *multierror.Error）。
func ImputeMode(df dataframe.DataFrame, columns ...string) (dataframe.DataFrame, error) {
	if err := checkColumns(df, columns); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("impute mode: %w", err)
	}
	if len(columns) == 0 {
		columns = df.Names()
	}

	out := df.Copy()
	for _, col := range columns {
		s := out.Col(col)
		if !s.HasNaN() {
			continue
		}
		mode, ok := s.Mode()
		if !ok {
			slog.Debug("列全部缺失，跳过众数填补", "column", col)
			continue
		}
		out = out.Mutate(s.FillNaN(mode))
		if out.Err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("impute mode: column %q: %w", col, out.Err)
		}
	}
	return out, nil
}
