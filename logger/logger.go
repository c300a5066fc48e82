package logger

import (
	"io"
	"log/slog"
	"os"
)

// InitLogger 初始化全局日志记录器
// 创建 JSON 格式的日志处理器,输出到 stdout
func InitLogger(level slog.Level) {
	slog.SetDefault(New(os.Stdout, level))
}

// New 创建输出到 w 的 JSON 日志记录器
func New(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}
