package pipeline

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/couchcryptid/climate-history-service/internal/domain"
	"github.com/couchcryptid/climate-history-service/internal/observability"
)

var (
	// ErrSourceNotFound is returned when the input file does not exist.
	ErrSourceNotFound = errors.New("data file not found")

	// ErrEmptySource is returned when the input has no header row.
	ErrEmptySource = errors.New("data file is empty")
)

// Skip reasons reported on the rows_skipped_total metric.
const (
	skipInvalidDate = "invalid_date"
	skipMalformed   = "malformed_row"
)

// ctxCheckInterval is how many rows are read between context checks.
const ctxCheckInterval = 1024

// RowReader yields table rows one at a time and returns io.EOF after the last
// row. The first row is the header. *csv.Reader satisfies it.
type RowReader interface {
	Read() ([]string, error)
}

// Dataset is the immutable result of one load.
type Dataset struct {
	Source      string
	Records     []domain.WeatherRecord // source row order
	RowsRead    int
	RowsSkipped int
	LoadedAt    time.Time
}

// Loader turns raw rows into weather records.
type Loader struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewLoader creates a Loader with the given observability.
func NewLoader(logger *slog.Logger, metrics *observability.Metrics) *Loader {
	return &Loader{logger: logger, metrics: metrics}
}

// Load reads the header, resolves the canonical columns and converts every
// data row. Rows with an unparseable date are skipped without logging; a
// missing mandatory column aborts the load.
func (l *Loader) Load(ctx context.Context, source string, r RowReader) (Dataset, error) {
	start := time.Now()

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return Dataset{}, ErrEmptySource
	}
	if err != nil {
		return Dataset{}, fmt.Errorf("read header: %w", err)
	}

	cols, err := domain.ResolveHeader(header)
	if err != nil {
		return Dataset{}, err
	}
	if unresolved := cols.Unresolved(); len(unresolved) > 0 {
		l.logger.Debug("optional columns not found, values will be absent", "fields", unresolved)
	}
	idx := indexColumns(header, cols)

	ds := Dataset{Source: source}
	for {
		if ds.RowsRead%ctxCheckInterval == 0 && ctx.Err() != nil {
			return Dataset{}, ctx.Err()
		}

		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			ds.RowsRead++
			l.skip(&ds, skipMalformed)
			continue
		}
		if err != nil {
			return Dataset{}, fmt.Errorf("read row %d: %w", ds.RowsRead+2, err)
		}

		ds.RowsRead++
		record, ok := buildRecord(row, idx)
		if !ok {
			l.skip(&ds, skipInvalidDate)
			continue
		}
		ds.Records = append(ds.Records, record)
	}

	ds.LoadedAt = domain.Now()
	elapsed := time.Since(start)

	l.metrics.RowsRead.Add(float64(ds.RowsRead))
	l.metrics.RecordsLoaded.Set(float64(len(ds.Records)))
	l.metrics.LoadDuration.Observe(elapsed.Seconds())
	l.metrics.DatasetLoaded.Set(1)

	l.logger.Info("dataset loaded",
		"source", source,
		"rows", ds.RowsRead,
		"records", len(ds.Records),
		"skipped", ds.RowsSkipped,
		"duration", elapsed,
	)
	return ds, nil
}

func (l *Loader) skip(ds *Dataset, reason string) {
	ds.RowsSkipped++
	l.metrics.RowsSkipped.WithLabelValues(reason).Inc()
}

// columnIndex holds the row position of each canonical field, -1 when unresolved.
type columnIndex map[domain.Field]int

func indexColumns(header []string, cols domain.ColumnMap) columnIndex {
	idx := make(columnIndex, len(cols))
	for field, name := range cols {
		idx[field] = -1
		if name == "" {
			continue
		}
		for i, h := range header {
			if h == name {
				idx[field] = i
				break
			}
		}
	}
	return idx
}

// cell returns the value at the field's position, or "" when the field is
// unresolved or the row is shorter than the header.
func (idx columnIndex) cell(row []string, f domain.Field) string {
	i, ok := idx[f]
	if !ok || i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func buildRecord(row []string, idx columnIndex) (domain.WeatherRecord, bool) {
	date, err := domain.ParseDate(idx.cell(row, domain.FieldDate))
	if err != nil {
		return domain.WeatherRecord{}, false
	}
	return domain.WeatherRecord{
		Date:          date,
		Precipitation: domain.ParseOptionalNumber(idx.cell(row, domain.FieldPrecipitation)),
		MaxTemp:       domain.ParseOptionalNumber(idx.cell(row, domain.FieldMaxTemp)),
		MinTemp:       domain.ParseOptionalNumber(idx.cell(row, domain.FieldMinTemp)),
		MeanTemp:      domain.ParseOptionalNumber(idx.cell(row, domain.FieldMeanTemp)),
		Humidity:      domain.ParseOptionalNumber(idx.cell(row, domain.FieldHumidity)),
		WindSpeed:     domain.ParseOptionalNumber(idx.cell(row, domain.FieldWindSpeed)),
	}, true
}
