// Package report renders records and query results as plain-text tables.
package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/couchcryptid/climate-history-service/internal/domain"
)

const dateLayout = "02/01/2006"

// ErrUnknownMode is returned for a Mode outside the defined set.
var ErrUnknownMode = errors.New("unknown table mode")

// Mode selects which measurements WriteRecords shows.
type Mode int

const (
	ModeAll Mode = iota + 1
	ModePrecipitation
	ModeTemperatures
	ModeHumidityWind
)

// String names the mode as shown in the CLI submenu.
func (m Mode) String() string {
	switch m {
	case ModeAll:
		return "All data"
	case ModePrecipitation:
		return "Precipitation only"
	case ModeTemperatures:
		return "Temperatures only (max/min/mean)"
	case ModeHumidityWind:
		return "Humidity and wind only"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Modes lists every mode in menu order.
func Modes() []Mode {
	return []Mode{ModeAll, ModePrecipitation, ModeTemperatures, ModeHumidityWind}
}

type column struct {
	title string
	value func(domain.WeatherRecord) domain.Value
}

var (
	colPrecip   = column{"PRECIP(mm)", func(r domain.WeatherRecord) domain.Value { return r.Precipitation }}
	colMax      = column{"T_MAX(°C)", func(r domain.WeatherRecord) domain.Value { return r.MaxTemp }}
	colMin      = column{"T_MIN(°C)", func(r domain.WeatherRecord) domain.Value { return r.MinTemp }}
	colMean     = column{"T_MEAN(°C)", func(r domain.WeatherRecord) domain.Value { return r.MeanTemp }}
	colHumidity = column{"HUMID(%)", func(r domain.WeatherRecord) domain.Value { return r.Humidity }}
	colWind     = column{"WIND(m/s)", func(r domain.WeatherRecord) domain.Value { return r.WindSpeed }}
)

var layouts = map[Mode][]column{
	ModeAll:           {colPrecip, colMax, colMin, colMean, colHumidity, colWind},
	ModePrecipitation: {colPrecip},
	ModeTemperatures:  {colMax, colMin, colMean},
	ModeHumidityWind:  {colHumidity, colWind},
}

// WriteRecords prints one row per record with the columns of mode. Values are
// right-aligned with one decimal; absent values print as "-".
func WriteRecords(w io.Writer, records []domain.WeatherRecord, mode Mode) error {
	cols, ok := layouts[mode]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}

	bw := bufio.NewWriter(w)
	if len(records) == 0 {
		fmt.Fprintln(bw, "No records for the selected period.")
		return bw.Flush()
	}

	header := fmt.Sprintf("%-10s", "DATE")
	for _, c := range cols {
		header += " | " + c.title
	}
	fmt.Fprintln(bw, header)
	fmt.Fprintln(bw, strings.Repeat("-", utf8.RuneCountInString(header)))

	for _, r := range records {
		fmt.Fprintf(bw, "%-10s", r.Date.Format(dateLayout))
		for _, c := range cols {
			fmt.Fprintf(bw, " | %*s", utf8.RuneCountInString(c.title), c.value(r))
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// WriteWettestMonth prints the wettest month and its precipitation total.
func WriteWettestMonth(w io.Writer, m domain.MonthlyTotal) error {
	_, err := fmt.Fprintf(w, "Wettest month: %s %d | Total precipitation = %.1f mm\n",
		m.Period.Month, m.Period.Year, m.Total)
	return err
}

// WriteYearlyAverages prints the per-year mean minimum temperature for month.
func WriteYearlyAverages(w io.Writer, averages domain.YearlyAverages, month int) error {
	bw := bufio.NewWriter(w)
	if len(averages) == 0 {
		fmt.Fprintf(bw, "Not enough data for %s in %s.\n", time.Month(month), window())
		return bw.Flush()
	}

	fmt.Fprintf(bw, "Mean minimum temperature, %s (%s):\n", time.Month(month), window())
	fmt.Fprintln(bw, "Year | Mean (°C)")
	fmt.Fprintln(bw, "----------------")
	for _, y := range averages.Years() {
		fmt.Fprintf(bw, "%d | %.2f\n", y, averages[y])
	}
	return bw.Flush()
}

// WriteOverallMean prints the mean of the yearly averages for month.
func WriteOverallMean(w io.Writer, mean domain.Value, month int) error {
	v, ok := mean.Get()
	if !ok {
		_, err := fmt.Fprintln(w, "Not enough data to compute the overall mean.")
		return err
	}
	_, err := fmt.Fprintf(w, "Overall mean minimum temperature in %s (%s): %.2f °C\n", time.Month(month), window(), v)
	return err
}

// WriteSummary prints the record count and the first and last dates loaded.
func WriteSummary(w io.Writer, records []domain.WeatherRecord) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Records loaded: %d\n", len(records))
	if len(records) > 0 {
		byDate := func(a, b domain.WeatherRecord) int { return a.Date.Compare(b.Date) }
		first := slices.MinFunc(records, byDate).Date
		last := slices.MaxFunc(records, byDate).Date
		fmt.Fprintf(bw, "Period loaded: %s to %s\n", first.Format(dateLayout), last.Format(dateLayout))
	}
	return bw.Flush()
}

func window() string {
	return fmt.Sprintf("%d-%d", domain.MinTempWindowStart, domain.MinTempWindowEnd)
}
