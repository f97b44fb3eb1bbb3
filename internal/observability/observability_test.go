package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "info", "json")

	logger.Debug("hidden")
	logger.Info("dataset loaded", "records", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "dataset loaded", entry["msg"])
	assert.InDelta(t, 3, entry["records"], 0)
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "debug", "text")

	logger.Debug("optional columns not found")
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), `msg="optional columns not found"`)
}

func TestNewMetricsForTesting(t *testing.T) {
	m := NewMetricsForTesting()

	m.RowsSkipped.WithLabelValues("invalid_date").Inc()
	m.RowsSkipped.WithLabelValues("invalid_date").Inc()
	m.Queries.WithLabelValues("wettest_month").Inc()

	assert.InDelta(t, 2, testutil.ToFloat64(m.RowsSkipped.WithLabelValues("invalid_date")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Queries.WithLabelValues("wettest_month")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.DatasetLoaded), 0)
}
