// Package chart renders yearly temperature averages as PNG bar charts.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/climate-history-service/internal/domain"
	gochart "github.com/wcharczuk/go-chart/v2"
)

// ErrNoChartData is returned when there are no yearly averages to plot.
var ErrNoChartData = errors.New("no data to chart")

const (
	width      = 1024
	height     = 512
	barWidth   = 48
	barSpacing = 16
)

// FileName returns the image name used by Save for the given month.
func FileName(month int) string {
	return fmt.Sprintf("min_temp_%02d_%d_%d.png", month, domain.MinTempWindowStart, domain.MinTempWindowEnd)
}

// Render writes a PNG with one bar per year, in ascending year order.
func Render(w io.Writer, averages domain.YearlyAverages, month int) error {
	if len(averages) == 0 {
		return ErrNoChartData
	}

	years := averages.Years()
	bars := make([]gochart.Value, 0, len(years))
	lo, hi := 0.0, 0.0
	for _, y := range years {
		v := averages[y]
		lo, hi = math.Min(lo, v), math.Max(hi, v)
		bars = append(bars, gochart.Value{Value: v, Label: strconv.Itoa(y)})
	}
	if hi == lo {
		hi = lo + 1
	}

	graph := gochart.BarChart{
		Title:      fmt.Sprintf("Mean minimum temperature, month %02d (%d-%d)", month, domain.MinTempWindowStart, domain.MinTempWindowEnd),
		Background: gochart.Style{Padding: gochart.Box{Top: 40}},
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		YAxis: gochart.YAxis{
			Name:  "°C",
			Range: &gochart.ContinuousRange{Min: math.Floor(lo), Max: math.Ceil(hi)},
		},
		Bars: bars,
	}
	if err := graph.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// Save renders the chart into dir and returns the written path.
func Save(dir string, averages domain.YearlyAverages, month int) (string, error) {
	if len(averages) == 0 {
		return "", ErrNoChartData
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}

	path := filepath.Join(dir, FileName(month))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create chart file: %w", err)
	}

	if err := Render(f, averages, month); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close chart file: %w", err)
	}
	return path, nil
}
