// Command climate loads a daily weather history file and answers queries about
// it from an interactive menu.
//
// Usage:
//
//	go run ./cmd/climate -data poa_1961_2016.csv
//	go run ./cmd/climate -data poa.xlsx -publish
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/climate-history-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/climate-history-service/internal/adapter/kafka"
	"github.com/couchcryptid/climate-history-service/internal/cli"
	"github.com/couchcryptid/climate-history-service/internal/config"
	"github.com/couchcryptid/climate-history-service/internal/domain"
	"github.com/couchcryptid/climate-history-service/internal/observability"
	"github.com/couchcryptid/climate-history-service/internal/pipeline"
	"github.com/couchcryptid/climate-history-service/internal/report"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	dataFile := flag.String("data", cfg.DataFile, "path to the daily weather file (.csv or .xlsx)")
	publish := flag.Bool("publish", false, "export loaded records to KAFKA_TOPIC")
	flag.Parse()

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Ops endpoint (feature-flagged via METRICS_ADDR).
	gate := &httpadapter.DatasetGate{}
	if cfg.MetricsAddr != "" {
		srv := httpadapter.NewServer(cfg.MetricsAddr, gate, prometheus.DefaultGatherer, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("ops server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("ops server shutdown error", "error", err)
			}
		}()
	}

	fmt.Println("Loading data... (please wait)")
	loader := pipeline.NewLoader(logger, metrics)
	ds, err := loader.LoadFile(ctx, *dataFile, pipeline.FileOptions{Delimiter: cfg.CSVDelimiter})
	if err != nil {
		fmt.Fprintln(os.Stderr, describeLoadError(err))
		return 1
	}
	gate.MarkLoaded(httpadapter.DatasetStatus{Source: ds.Source, Records: len(ds.Records), LoadedAt: ds.LoadedAt})

	if err := report.WriteSummary(os.Stdout, ds.Records); err != nil {
		logger.Error("write summary", "error", err)
		return 1
	}

	if *publish {
		if err := exportRecords(ctx, cfg, ds, logger, metrics); err != nil {
			logger.Error("record export failed", "error", err)
		}
	}

	session := cli.NewSession(ds.Records, os.Stdin, os.Stdout, cli.Options{
		ChartDir: cfg.ChartDir,
		Logger:   logger,
		Metrics:  metrics,
	})

	// The session blocks on stdin, so a signal has to end the run from here.
	done := make(chan error, 1)
	go func() { done <- session.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			logger.Error("session error", "error", err)
			return 1
		}
	case <-ctx.Done():
		fmt.Println()
		logger.Info("interrupted")
	}
	return 0
}

func exportRecords(ctx context.Context, cfg *config.Config, ds pipeline.Dataset, logger *slog.Logger, metrics *observability.Metrics) error {
	if !cfg.PublishEnabled() {
		logger.Warn("-publish given but KAFKA_BROKERS is not set, skipping export")
		return nil
	}

	publisher := kafkaadapter.NewPublisher(cfg, logger, metrics)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}()
	return publisher.Publish(ctx, ds.Source, ds.Records)
}

// describeLoadError renders a fatal load error as one line for the terminal.
func describeLoadError(err error) string {
	var mce *domain.MissingColumnError
	switch {
	case errors.As(err, &mce):
		return "Header error: " + mce.Error()
	case errors.Is(err, pipeline.ErrSourceNotFound):
		return err.Error()
	case errors.Is(err, pipeline.ErrEmptySource):
		return "The data file is empty."
	default:
		return "Could not load data: " + err.Error()
	}
}
