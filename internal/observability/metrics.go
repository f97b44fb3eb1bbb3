package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "climate"

// Metrics holds the Prometheus counters, histograms, and gauges for loading and querying.
type Metrics struct {
	RowsRead      prometheus.Counter
	RowsSkipped   *prometheus.CounterVec // labels: reason={invalid_date,malformed_row}
	RecordsLoaded prometheus.Gauge
	DatasetLoaded prometheus.Gauge
	LoadDuration  prometheus.Histogram

	// Query metrics.
	Queries        *prometheus.CounterVec // labels: query={interval,wettest_month,yearly_min,chart,overall_mean}
	QueryErrors    *prometheus.CounterVec // labels: query
	ChartsRendered prometheus.Counter

	RecordsPublished prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics(true)

	prometheus.MustRegister(
		m.RowsRead,
		m.RowsSkipped,
		m.RecordsLoaded,
		m.DatasetLoaded,
		m.LoadDuration,
		m.Queries,
		m.QueryErrors,
		m.ChartsRendered,
		m.RecordsPublished,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics(false)
}

func newMetrics(withHelp bool) *Metrics {
	help := func(s string) string {
		if withHelp {
			return s
		}
		return ""
	}

	return &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_read_total",
			Help:      help("Total data rows read from the input file."),
		}),
		RowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_skipped_total",
			Help:      help("Data rows dropped during load, by reason."),
		}, []string{"reason"}),
		RecordsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_loaded",
			Help:      help("Records held in memory after the last load."),
		}),
		DatasetLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_loaded",
			Help:      help("1 once the dataset has been loaded, 0 before."),
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      help("Duration of a complete file load."),
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      help("Queries answered, by query name."),
		}, []string{"query"}),
		QueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_errors_total",
			Help:      help("Queries that ended in an error, by query name."),
		}, []string{"query"}),
		ChartsRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "charts_rendered_total",
			Help:      help("Chart images written to disk."),
		}),
		RecordsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_published_total",
			Help:      help("Records written to the export topic."),
		}),
	}
}
