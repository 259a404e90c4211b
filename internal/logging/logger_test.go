package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level LogLevel, format string) (*FreqLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := NewLogger(&LoggerConfig{
		Level:  level,
		Format: format,
		Output: buf,
	})
	return logger, buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"ERROR", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, "text")
	ctx := context.Background()

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	assert.Empty(t, buf.String())

	logger.Warn(ctx, nil, "warn message")
	assert.Contains(t, buf.String(), "warn message")
}

func TestJSONOutputCarriesFields(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, "json")

	logger.WithComponent("producer").Info(context.Background(), "scan pass complete",
		"files", 3,
		"root", "files",
	)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	assert.Equal(t, "scan pass complete", record["msg"])
	assert.Equal(t, "producer", record["component"])
	assert.Equal(t, float64(3), record["files"])
	assert.Equal(t, "files", record["root"])
}

func TestErrorFieldIncluded(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, "json")

	logger.Error(context.Background(), errors.New("boom"), "processing failed")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "boom", record["error"])
}

func TestWithAccumulatesFields(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, "json")

	scoped := logger.With("worker", 1).With("run", 7)
	scoped.Info(context.Background(), "consumer started")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, float64(1), record["worker"])
	assert.Equal(t, float64(7), record["run"])
}

func TestDiscardProducesNoOutput(t *testing.T) {
	logger := Discard()
	// Must not panic and must stay silent at every level.
	logger.Debug(context.Background(), "x")
	logger.Info(context.Background(), "x")
	logger.Warn(context.Background(), nil, "x")
	logger.Error(context.Background(), errors.New("x"), "x")
}
