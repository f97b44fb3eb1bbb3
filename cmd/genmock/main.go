// Command genmock writes a deterministic synthetic daily weather file in the
// Porto Alegre station layout, for demos and test fixtures. The output mixes
// in blank cells, "-" placeholders, comma decimals and a few impossible dates
// so that every loader path is exercised. The written file is loaded back with
// the real pipeline to report what the analyzer will see.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/poa_1961_2016.csv -from 1961 -to 2016 -seed 42
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/climate-history-service/internal/domain"
	"github.com/couchcryptid/climate-history-service/internal/observability"
	"github.com/couchcryptid/climate-history-service/internal/pipeline"
)

var header = []string{"data", "precip", "maxima", "minima", "horas_insol", "temp_media", "um_relativa", "vel_vento"}

// Probabilities per cell or row.
const (
	pBlank       = 0.02
	pPlaceholder = 0.01
	pBadDate     = 0.001
	pRain        = 0.3
)

type options struct {
	fromYear, toYear int
	seed             uint64
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output CSV path")
	from := flag.Int("from", 1961, "first year to generate")
	to := flag.Int("to", 2016, "last year to generate")
	seed := flag.Uint64("seed", 42, "random seed")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *from > *to {
		return fmt.Errorf("-from %d is after -to %d", *from, *to)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	rows, err := generate(f, options{fromYear: *from, toYear: *to, seed: *seed})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", *out, err)
	}
	log.Printf("wrote %d rows to %s", rows, *out)

	loader := pipeline.NewLoader(slog.New(slog.DiscardHandler), observability.NewMetricsForTesting())
	ds, err := loader.LoadFile(context.Background(), *out, pipeline.FileOptions{})
	if err != nil {
		return fmt.Errorf("reloading %s: %w", *out, err)
	}
	printStats(ds)
	return nil
}

// generate writes one row per calendar day from January 1 of fromYear through
// December 31 of toYear and returns the number of data rows.
func generate(w io.Writer, opts options) (int, error) {
	rng := rand.New(rand.NewPCG(opts.seed, opts.seed^0x9e3779b97f4a7c15))

	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write(header); err != nil {
		return 0, err
	}

	rows := 0
	start := time.Date(opts.fromYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(opts.toYear, time.December, 31, 0, 0, 0, 0, time.UTC)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if err := cw.Write(dayRow(rng, d)); err != nil {
			return rows, err
		}
		rows++
	}

	cw.Flush()
	return rows, cw.Error()
}

func dayRow(rng *rand.Rand, d time.Time) []string {
	// Southern hemisphere: warmest around mid January.
	season := math.Cos(2 * math.Pi * float64(d.YearDay()-15) / 365.25)
	minTemp := 14 + 6*season + rng.NormFloat64()*2
	maxTemp := minTemp + 8 + rng.Float64()*5
	meanTemp := (minTemp + maxTemp) / 2

	precip := 0.0
	if rng.Float64() < pRain {
		precip = rng.ExpFloat64() * 9
	}

	date := d.Format("02/01/2006")
	if rng.Float64() < pBadDate {
		date = fmt.Sprintf("31/02/%d", d.Year())
	}

	return []string{
		date,
		cell(rng, precip),
		cell(rng, maxTemp),
		cell(rng, minTemp),
		cell(rng, rng.Float64()*12),
		cell(rng, meanTemp),
		cell(rng, 60+rng.Float64()*35),
		cell(rng, 0.5+rng.Float64()*4),
	}
}

// cell renders v with a comma decimal, or as blank or "-" now and then.
func cell(rng *rand.Rand, v float64) string {
	switch p := rng.Float64(); {
	case p < pBlank:
		return ""
	case p < pBlank+pPlaceholder:
		return "-"
	default:
		return strings.Replace(strconv.FormatFloat(v, 'f', 1, 64), ".", ",", 1)
	}
}

func printStats(ds pipeline.Dataset) {
	fmt.Println("\n=== Reloaded with the analyzer pipeline ===")
	fmt.Printf("Rows read: %d, records: %d, skipped: %d\n", ds.RowsRead, len(ds.Records), ds.RowsSkipped)

	if best, err := domain.WettestMonth(ds.Records); err == nil {
		fmt.Printf("Wettest month: %s (%.1f mm)\n", best.Period, best.Total)
	}
	if avgs, err := domain.YearlyMinAverages(ds.Records, int(time.July)); err == nil {
		fmt.Printf("July min-temp averages: %d years, overall mean %s °C\n", len(avgs), domain.OverallMean(avgs))
	}
}
