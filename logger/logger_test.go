package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, slog.LevelInfo)

	l.Debug("不会输出")
	assert.Zero(t, buf.Len())

	l.Info("删除缺失过多的列", "threshold", 0.5)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "删除缺失过多的列", entry["msg"])
	assert.Equal(t, 0.5, entry["threshold"])
}

func TestInitLoggerSetsDefault(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	InitLogger(slog.LevelDebug)
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
}
