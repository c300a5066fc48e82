package cleaning

import (
	"fmt"
	"log/slog"

	"github.com/Pilo-pillow/dataclean/dataframe"
	"github.com/Pilo-pillow/dataclean/series"
)

// Replacements 是取值替换表。键和值都通过 series.ValueOf 转换：
// 值为 nil 表示替换为缺失值，键为 nil 表示匹配缺失的单元格。
// 整数与浮点数按数值匹配，文本 "1" 与整数 1 互不匹配。
type Replacements map[interface{}]interface{}

// keyed 将替换表转换为以 series.Key 为键的形式。
func (r Replacements) keyed() map[series.Key]series.Value {
	m := make(map[series.Key]series.Value, len(r))
	for k, v := range r {
		m[series.ValueOf(k).Key()] = series.ValueOf(v)
	}
	return m
}

// ReplaceValues 返回一个新的 DataFrame，其中 columns 各列里与 replacements 键相等的单元格
// 被替换为对应的值，其余单元格和未列出的列保持不变。
// 替换后每个受影响的列都会根据新的取值重新推断列类型，例如把 yes/no 替换成 1/0 后列变为 Int。
//
// 任一列名不存在时返回 *dataframe.UnknownColumnError（多个时合并为 *multierror.Error），
// 输入的 DataFrame 不会被修改。
func ReplaceValues(df dataframe.DataFrame, columns []string, replacements Replacements) (dataframe.DataFrame, error) {
	if err := checkColumns(df, columns); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("replace values: %w", err)
	}

	m := replacements.keyed()
	out := df.Copy()
	for _, col := range columns {
		before := out.Col(col)
		after := before.Replace(m)
		out = out.Mutate(after)
		if out.Err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("replace values: column %q: %w", col, out.Err)
		}
		if before.Type() != after.Type() {
			slog.Debug("替换后列类型改变", "column", col, "from", before.Type(), "to", after.Type())
		}
	}
	return out, nil
}
