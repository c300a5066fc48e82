package dataframe

import "fmt"

// UnknownColumnError 表示请求的列名在 DataFrame 中不存在。
type UnknownColumnError struct{ Name string }

// Error 返回 UnknownColumnError 的文本描述。
func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("column %q does not exist in the DataFrame", e.Name)
}
