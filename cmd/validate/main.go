// Command validate loads a daily weather file with the analyzer pipeline and
// prints a data-quality report: ingestion counts, per-field coverage and
// descriptive statistics, calendar continuity, and physical plausibility.
// It exits non-zero when a structural problem is found.
//
// Usage:
//
//	go run ./cmd/validate -data poa_1961_2016.csv
//	go run ./cmd/validate -data poa.csv -delimiter ';' -max-errors 50
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/aclements/go-moremath/stats"
	"github.com/couchcryptid/climate-history-service/internal/config"
	"github.com/couchcryptid/climate-history-service/internal/domain"
	"github.com/couchcryptid/climate-history-service/internal/observability"
	"github.com/couchcryptid/climate-history-service/internal/pipeline"
)

const dateLayout = "02/01/2006"

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
	notes  []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) notef(format string, args ...any) {
	p.notes = append(p.notes, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// fieldSpec pairs a canonical field with its accessor.
type fieldSpec struct {
	field domain.Field
	value func(domain.WeatherRecord) domain.Value
}

var fields = []fieldSpec{
	{domain.FieldPrecipitation, func(r domain.WeatherRecord) domain.Value { return r.Precipitation }},
	{domain.FieldMaxTemp, func(r domain.WeatherRecord) domain.Value { return r.MaxTemp }},
	{domain.FieldMinTemp, func(r domain.WeatherRecord) domain.Value { return r.MinTemp }},
	{domain.FieldMeanTemp, func(r domain.WeatherRecord) domain.Value { return r.MeanTemp }},
	{domain.FieldHumidity, func(r domain.WeatherRecord) domain.Value { return r.Humidity }},
	{domain.FieldWindSpeed, func(r domain.WeatherRecord) domain.Value { return r.WindSpeed }},
}

func main() {
	dataFile := flag.String("data", config.DefaultDataFile, "path to the daily weather file (.csv or .xlsx)")
	delimiter := flag.String("delimiter", "", "field delimiter: , ; or tab (default: detect)")
	maxErrors := flag.Int("max-errors", 20, "maximum errors listed per phase")
	flag.Parse()

	comma, err := parseDelimiter(*delimiter)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	os.Exit(run(os.Stdout, *dataFile, comma, *maxErrors))
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",", ";":
		return rune(s[0]), nil
	case "tab", `\t`, "\t":
		return '\t', nil
	default:
		return 0, fmt.Errorf("invalid -delimiter %q", s)
	}
}

func run(w io.Writer, path string, comma rune, maxErrors int) int {
	fmt.Fprintln(w, "=== Weather Data Quality Validation ===")
	fmt.Fprintln(w)

	loader := pipeline.NewLoader(slog.New(slog.DiscardHandler), observability.NewMetricsForTesting())
	ds, err := loader.LoadFile(context.Background(), path, pipeline.FileOptions{Delimiter: comma})
	if err != nil {
		fmt.Fprintf(w, "FATAL: load %s: %v\n", path, err)
		return 1
	}

	phases := []*phase{
		validateIngestion(ds),
		validateCoverage(w, ds.Records),
		validateContinuity(ds.Records),
		validatePlausibility(ds.Records),
	}

	fmt.Fprintln(w)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Rows: %d read, %d loaded, %d skipped\n", ds.RowsRead, len(ds.Records), ds.RowsSkipped)

	for _, p := range phases {
		if p.passed() && len(p.notes) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for _, n := range p.notes {
			fmt.Fprintf(w, "  note: %s\n", n)
		}
		for i, e := range p.errors {
			if i == maxErrors {
				fmt.Fprintf(w, "  ... %d more\n", len(p.errors)-maxErrors)
				break
			}
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

// ── Phases ──

func validateIngestion(ds pipeline.Dataset) *phase {
	p := &phase{name: "Phase 1: Ingestion"}
	if len(ds.Records) == 0 {
		p.errorf("no record has a valid date (%d rows read)", ds.RowsRead)
	}
	if ds.RowsRead > 0 && ds.RowsSkipped*10 > ds.RowsRead {
		p.errorf("%d of %d rows skipped (more than 10%%)", ds.RowsSkipped, ds.RowsRead)
	} else if ds.RowsSkipped > 0 {
		p.notef("%d rows skipped for invalid dates or malformed lines", ds.RowsSkipped)
	}
	return p
}

func validateCoverage(w io.Writer, records []domain.WeatherRecord) *phase {
	p := &phase{name: "Phase 2: Field coverage"}
	if len(records) == 0 {
		return p
	}

	fmt.Fprintf(w, "%-14s %8s %9s %9s %9s %9s\n", "FIELD", "PRESENT", "MIN", "MAX", "MEAN", "STDDEV")
	for _, f := range fields {
		xs := presentValues(records, f.value)
		pct := 100 * float64(len(xs)) / float64(len(records))
		if len(xs) == 0 {
			fmt.Fprintf(w, "%-14s %7.1f%% %9s %9s %9s %9s\n", f.field, pct, "-", "-", "-", "-")
			p.notef("%s has no values", f.field)
			continue
		}
		sample := stats.Sample{Xs: xs}
		lo, hi := sample.Bounds()
		fmt.Fprintf(w, "%-14s %7.1f%% %9.1f %9.1f %9.2f %9.2f\n", f.field, pct, lo, hi, sample.Mean(), sample.StdDev())
	}

	if len(presentValues(records, fields[0].value)) == 0 {
		p.errorf("precipitation column resolved but never has a value; the wettest-month query cannot answer")
	}

	inWindow := 0
	for _, r := range records {
		y := r.Date.Year()
		if y >= domain.MinTempWindowStart && y <= domain.MinTempWindowEnd && r.MinTemp.Valid() {
			inWindow++
		}
	}
	if inWindow == 0 {
		p.errorf("no minimum temperature between %d and %d; the yearly average queries cannot answer",
			domain.MinTempWindowStart, domain.MinTempWindowEnd)
	}
	return p
}

func validateContinuity(records []domain.WeatherRecord) *phase {
	p := &phase{name: "Phase 3: Calendar continuity"}
	if len(records) == 0 {
		return p
	}

	dates := make([]time.Time, len(records))
	for i, r := range records {
		dates[i] = r.Date
	}
	slices.SortFunc(dates, time.Time.Compare)

	missing := 0
	for i := 1; i < len(dates); i++ {
		gap := int(dates[i].Sub(dates[i-1]).Hours() / 24)
		switch {
		case gap == 0:
			p.errorf("duplicate day %s", dates[i].Format(dateLayout))
		case gap > 1:
			missing += gap - 1
			if gap > 31 {
				p.notef("gap of %d days after %s", gap-1, dates[i-1].Format(dateLayout))
			}
		}
	}

	span := int(dates[len(dates)-1].Sub(dates[0]).Hours()/24) + 1
	p.notef("%s to %s: %d days expected, %d missing",
		dates[0].Format(dateLayout), dates[len(dates)-1].Format(dateLayout), span, missing)
	return p
}

func validatePlausibility(records []domain.WeatherRecord) *phase {
	p := &phase{name: "Phase 4: Physical plausibility"}
	for _, r := range records {
		day := r.Date.Format(dateLayout)
		if v, ok := r.Precipitation.Get(); ok && v < 0 {
			p.errorf("%s: negative precipitation %.1f", day, v)
		}
		if v, ok := r.Humidity.Get(); ok && (v < 0 || v > 100) {
			p.errorf("%s: relative humidity %.1f outside 0-100", day, v)
		}
		if v, ok := r.WindSpeed.Get(); ok && v < 0 {
			p.errorf("%s: negative wind speed %.1f", day, v)
		}
		lo, okLo := r.MinTemp.Get()
		hi, okHi := r.MaxTemp.Get()
		if okLo && okHi && lo > hi {
			p.errorf("%s: minimum %.1f above maximum %.1f", day, lo, hi)
		}
	}
	return p
}

func presentValues(records []domain.WeatherRecord, value func(domain.WeatherRecord) domain.Value) []float64 {
	var xs []float64
	for _, r := range records {
		if v, ok := value(r).Get(); ok {
			xs = append(xs, v)
		}
	}
	return xs
}
