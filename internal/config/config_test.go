package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultDataFile, cfg.DataFile)
	assert.Equal(t, rune(0), cfg.CSVDelimiter)
	assert.Equal(t, ".", cfg.ChartDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.MetricsAddr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.PublishEnabled())
	assert.Equal(t, "daily-weather-records", cfg.KafkaTopic)
	assert.Equal(t, 50, cfg.BatchSize)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("DATA_FILE", "poa.csv")
	t.Setenv("CSV_DELIMITER", ";")
	t.Setenv("CHART_DIR", "/tmp/charts")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("METRICS_ADDR", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "custom-records")
	t.Setenv("BATCH_SIZE", "100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "poa.csv", cfg.DataFile)
	assert.Equal(t, ';', cfg.CSVDelimiter)
	assert.Equal(t, "/tmp/charts", cfg.ChartDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.PublishEnabled())
	assert.Equal(t, "custom-records", cfg.KafkaTopic)
	assert.Equal(t, 100, cfg.BatchSize)
}

func TestLoad_Delimiter(t *testing.T) {
	tests := []struct {
		in   string
		want rune
	}{
		{"auto", 0},
		{",", ','},
		{";", ';'},
		{"tab", '\t'},
		{`\t`, '\t'},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Setenv("CSV_DELIMITER", tt.in)
			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.CSVDelimiter)
		})
	}
}

func TestLoad_InvalidDelimiter(t *testing.T) {
	t.Setenv("CSV_DELIMITER", "::")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CSV_DELIMITER")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidBatchSize(t *testing.T) {
	t.Setenv("BATCH_SIZE", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATCH_SIZE")
}

func TestLoad_BatchSizeTooLarge(t *testing.T) {
	t.Setenv("BATCH_SIZE", "9999")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATCH_SIZE")
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DATA_FILE=from-dotenv.csv\nCHART_DIR=out\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("CHART_DIR", "from-env")
	t.Cleanup(func() { os.Unsetenv("DATA_FILE") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.csv", cfg.DataFile)
	assert.Equal(t, "from-env", cfg.ChartDir, "real environment wins over .env")
}
