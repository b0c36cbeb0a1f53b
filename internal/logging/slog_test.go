package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func newBufferLogger() (*SlogLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	l := slog.New(slog.NewJSONHandler(buf, nil))
	return NewSlogLogger(l), buf
}

func TestSlogLogger_Info(t *testing.T) {
	logger, buf := newBufferLogger()

	logger.Info(context.Background(), "hello", "key", "value")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	require.Equal(t, "hello", record["msg"])
	require.Equal(t, "value", record["key"])
	require.Equal(t, "INFO", record["level"])
}

func TestSlogLogger_With(t *testing.T) {
	logger, buf := newBufferLogger()

	child := logger.With("component", "test")
	child.Error(context.Background(), "boom")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	require.Equal(t, "boom", record["msg"])
	require.Equal(t, "test", record["component"])
	require.Equal(t, "ERROR", record["level"])
}
