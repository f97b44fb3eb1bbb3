// Package cli runs the interactive query menu over a loaded record set.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/couchcryptid/climate-history-service/internal/adapter/chart"
	"github.com/couchcryptid/climate-history-service/internal/domain"
	"github.com/couchcryptid/climate-history-service/internal/observability"
	"github.com/couchcryptid/climate-history-service/internal/report"
	"github.com/go-playground/validator/v10"
)

// errQuit is returned by a step when the user picks the exit option.
var errQuit = errors.New("quit")

// Query names reported on the queries_total metric.
const (
	queryInterval     = "interval"
	queryWettestMonth = "wettest_month"
	queryYearlyMin    = "yearly_min"
	queryChart        = "chart"
	queryOverallMean  = "overall_mean"
)

// Options configures a Session.
type Options struct {
	ChartDir string
	Logger   *slog.Logger
	Metrics  *observability.Metrics
}

// Session answers menu queries against one immutable record set.
type Session struct {
	records  []domain.WeatherRecord
	p        *prompter
	out      io.Writer
	chartDir string
	logger   *slog.Logger
	metrics  *observability.Metrics
	validate *validator.Validate
}

// NewSession creates a Session reading answers from in and writing to out.
func NewSession(records []domain.WeatherRecord, in io.Reader, out io.Writer, opts Options) *Session {
	return &Session{
		records:  records,
		p:        &prompter{in: bufio.NewScanner(in), out: out},
		out:      out,
		chartDir: opts.ChartDir,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		validate: newValidator(),
	}
}

// Run shows the menu until the user exits, the input ends or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := s.step()
		switch {
		case errors.Is(err, errQuit):
			fmt.Fprintln(s.out, "Exiting. Thank you!")
			return nil
		case errors.Is(err, errEndOfInput):
			fmt.Fprintln(s.out)
			return nil
		case err != nil:
			return err
		}
	}
}

func (s *Session) step() error {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "=== MENU ===")
	fmt.Fprintln(s.out, "1) View interval (text)")
	fmt.Fprintln(s.out, "2) Wettest month (whole period)")
	fmt.Fprintf(s.out, "3) Minimum temperature averages for a month (%d-%d)\n", domain.MinTempWindowStart, domain.MinTempWindowEnd)
	fmt.Fprintln(s.out, "4) Chart of the averages (item 3)")
	fmt.Fprintf(s.out, "5) Overall minimum temperature mean for a month (%d-%d)\n", domain.MinTempWindowStart, domain.MinTempWindowEnd)
	fmt.Fprintln(s.out, "0) Exit")

	op, err := s.p.readInt("Choose an option: ", between(0, 5))
	if err != nil {
		return err
	}

	switch op {
	case 0:
		return errQuit
	case 1:
		return s.viewInterval()
	case 2:
		return s.wettestMonth()
	case 3:
		return s.yearlyAverages()
	case 4:
		return s.renderChart()
	default:
		return s.overallMean()
	}
}

func (s *Session) viewInterval() error {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "- Interval (month/year) -")

	var req intervalRequest
	var err error
	if req.FromMonth, err = s.p.readInt("Start month (1-12): ", between(1, 12)); err != nil {
		return err
	}
	if req.FromYear, err = s.p.readInt("Start year (e.g. 1961): ", unbounded); err != nil {
		return err
	}
	if req.ToMonth, err = s.p.readInt("End month (1-12): ", between(1, 12)); err != nil {
		return err
	}
	if req.ToYear, err = s.p.readInt("End year (e.g. 2016): ", unbounded); err != nil {
		return err
	}

	if err := s.validate.Struct(req); err != nil {
		s.queryFailed(queryInterval)
		fmt.Fprintln(s.out, describeInvalid(err))
		return nil
	}

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "What do you want to see?")
	modes := report.Modes()
	for i, m := range modes {
		fmt.Fprintf(s.out, "%d) %s\n", i+1, m)
	}
	choice, err := s.p.readInt(fmt.Sprintf("Choose (1-%d): ", len(modes)), between(1, len(modes)))
	if err != nil {
		return err
	}

	s.queried(queryInterval)
	records := domain.FilterInterval(s.records, req.from(), req.to())
	return report.WriteRecords(s.out, records, modes[choice-1])
}

func (s *Session) wettestMonth() error {
	best, err := domain.WettestMonth(s.records)
	if errors.Is(err, domain.ErrNoPrecipitationData) {
		s.queryFailed(queryWettestMonth)
		fmt.Fprintln(s.out, "No precipitation data available.")
		return nil
	}
	if err != nil {
		return err
	}

	s.queried(queryWettestMonth)
	return report.WriteWettestMonth(s.out, best)
}

func (s *Session) yearlyAverages() error {
	month, averages, err := s.monthAverages("Month (1-12): ", queryYearlyMin)
	if err != nil {
		return err
	}
	return report.WriteYearlyAverages(s.out, averages, month)
}

func (s *Session) renderChart() error {
	month, averages, err := s.monthAverages("Month (1-12) for the chart: ", queryChart)
	if err != nil {
		return err
	}

	path, err := chart.Save(s.chartDir, averages, month)
	if errors.Is(err, chart.ErrNoChartData) {
		s.queryFailed(queryChart)
		fmt.Fprintln(s.out, "No data to plot.")
		return nil
	}
	if err != nil {
		s.queryFailed(queryChart)
		s.logger.Error("chart render failed", "month", month, "error", err)
		fmt.Fprintf(s.out, "Could not create the chart: %v\n", err)
		return nil
	}

	s.metrics.ChartsRendered.Inc()
	s.logger.Info("chart saved", "path", path, "month", month, "years", len(averages))
	fmt.Fprintf(s.out, "Chart saved as: %s\n", path)
	fmt.Fprintln(s.out, "Chart generated successfully.")
	return nil
}

func (s *Session) overallMean() error {
	month, averages, err := s.monthAverages("Month (1-12): ", queryOverallMean)
	if err != nil {
		return err
	}
	return report.WriteOverallMean(s.out, domain.OverallMean(averages), month)
}

// monthAverages prompts for a month and computes its yearly minimum averages.
func (s *Session) monthAverages(prompt, query string) (int, domain.YearlyAverages, error) {
	month, err := s.p.readInt(prompt, between(1, 12))
	if err != nil {
		return 0, nil, err
	}
	averages, err := domain.YearlyMinAverages(s.records, month)
	if err != nil {
		s.queryFailed(query)
		return 0, nil, err
	}
	s.queried(query)
	return month, averages, nil
}

func (s *Session) queried(name string) {
	s.metrics.Queries.WithLabelValues(name).Inc()
}

func (s *Session) queryFailed(name string) {
	s.metrics.QueryErrors.WithLabelValues(name).Inc()
}
