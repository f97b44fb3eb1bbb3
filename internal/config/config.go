package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// DefaultDataFile is the dataset read when neither DATA_FILE nor -data is given.
const DefaultDataFile = "Anexo_Arquivo_Dados_Projeto_Logica_e_programacao_de_computadores.csv"

// Config holds all application settings, populated from environment variables.
type Config struct {
	DataFile     string
	CSVDelimiter rune // 0 means detect from the header line
	ChartDir     string

	LogLevel  string
	LogFormat string

	// Ops endpoint; disabled when MetricsAddr is empty.
	MetricsAddr     string
	ShutdownTimeout time.Duration

	// Record export; disabled when KafkaBrokers is empty.
	KafkaBrokers []string
	KafkaTopic   string
	BatchSize    int
}

// Load reads configuration from environment variables, applying defaults where unset.
// A .env file in the working directory is applied first when present; variables
// already set in the environment take precedence over it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	delimiter, err := parseDelimiter(sharedcfg.EnvOrDefault("CSV_DELIMITER", ""))
	if err != nil {
		return nil, err
	}

	var brokers []string
	if raw := strings.TrimSpace(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "")); raw != "" {
		brokers = sharedcfg.ParseBrokers(raw)
	}

	cfg := &Config{
		DataFile:        sharedcfg.EnvOrDefault("DATA_FILE", DefaultDataFile),
		CSVDelimiter:    delimiter,
		ChartDir:        sharedcfg.EnvOrDefault("CHART_DIR", "."),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		MetricsAddr:     sharedcfg.EnvOrDefault("METRICS_ADDR", ""),
		ShutdownTimeout: shutdownTimeout,
		KafkaBrokers:    brokers,
		KafkaTopic:      sharedcfg.EnvOrDefault("KAFKA_TOPIC", "daily-weather-records"),
		BatchSize:       batchSize,
	}

	if cfg.DataFile == "" {
		return nil, errors.New("DATA_FILE must not be empty")
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// PublishEnabled reports whether record export has brokers to talk to.
func (c *Config) PublishEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "", "auto":
		return 0, nil
	case ",", ";":
		return rune(s[0]), nil
	case "\t", `\t`, "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("invalid CSV_DELIMITER %q: use one of , ; tab", s)
	}
}
