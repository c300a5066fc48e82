package cleaning

import (
	"fmt"
	"math"

	"github.com/Pilo-pillow/dataclean/dataframe"
	"github.com/hashicorp/go-multierror"
)

// ThresholdError 表示缺失阈值不是 [0,1] 区间内的比例。
type ThresholdError struct{ Threshold float64 }

// Error 返回 ThresholdError 的文本描述。
func (e *ThresholdError) Error() string {
	return fmt.Sprintf("threshold %v is not a fraction in [0,1]", e.Threshold)
}

// checkThreshold 检查 threshold 是否为 [0,1] 内的比例，NaN 视为无效。
func checkThreshold(threshold float64) error {
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return &ThresholdError{Threshold: threshold}
	}
	return nil
}

// checkColumns 检查 DataFrame 自身没有错误且包含所有列名。
// 所有缺失的列名都会以 *dataframe.UnknownColumnError 的形式合并返回。
func checkColumns(df dataframe.DataFrame, columns []string) error {
	if df.Err != nil {
		return fmt.Errorf("invalid DataFrame: %w", df.Err)
	}
	var result *multierror.Error
	for _, col := range columns {
		if !df.HasCol(col) {
			result = multierror.Append(result, &dataframe.UnknownColumnError{Name: col})
		}
	}
	return result.ErrorOrNil()
}
