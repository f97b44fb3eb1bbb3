package domain

import (
	"maps"
	"slices"
	"time"

	"github.com/aclements/go-moremath/stats"
)

// The minimum-temperature averages always cover this fixed span of years,
// regardless of what the dataset contains.
const (
	MinTempWindowStart = 2006
	MinTempWindowEnd   = 2016
)

// MonthlyTotal is a precipitation sum for one (year, month).
type MonthlyTotal struct {
	Period YearMonth `json:"period"`
	Total  float64   `json:"total_mm"`
}

// WettestMonth returns the month with the largest precipitation total.
// Absent values are skipped, so a month appears only if at least one of its
// days has a precipitation value. Ties go to the earliest month.
func WettestMonth(records []WeatherRecord) (MonthlyTotal, error) {
	totals := make(map[YearMonth]float64)
	for _, r := range records {
		p, ok := r.Precipitation.Get()
		if !ok {
			continue
		}
		totals[r.Period()] += p
	}
	if len(totals) == 0 {
		return MonthlyTotal{}, ErrNoPrecipitationData
	}

	keys := slices.SortedFunc(maps.Keys(totals), YearMonth.Compare)
	best := MonthlyTotal{Period: keys[0], Total: totals[keys[0]]}
	for _, k := range keys[1:] {
		if totals[k] > best.Total {
			best = MonthlyTotal{Period: k, Total: totals[k]}
		}
	}
	return best, nil
}

// YearlyAverages maps a year to the mean minimum temperature of one month in
// that year. Years without observations are absent from the map.
type YearlyAverages map[int]float64

// Years returns the years present, ascending.
func (y YearlyAverages) Years() []int {
	return slices.Sorted(maps.Keys(y))
}

// YearlyMinAverages computes, for each year of the fixed window, the mean of
// the present minimum temperatures recorded in month.
func YearlyMinAverages(records []WeatherRecord, month int) (YearlyAverages, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}

	samples := make(map[int][]float64)
	for _, r := range records {
		year := r.Date.Year()
		if year < MinTempWindowStart || year > MinTempWindowEnd || r.Date.Month() != time.Month(month) {
			continue
		}
		if v, ok := r.MinTemp.Get(); ok {
			samples[year] = append(samples[year], v)
		}
	}

	out := make(YearlyAverages, len(samples))
	for year, xs := range samples {
		out[year] = stats.Mean(xs)
	}
	return out, nil
}

// OverallMean is the unweighted mean of the per-year means: every year counts
// once no matter how many days it contributed. Absent for an empty map.
func OverallMean(averages YearlyAverages) Value {
	if len(averages) == 0 {
		return Value{}
	}
	years := averages.Years()
	xs := make([]float64, len(years))
	for i, y := range years {
		xs[i] = averages[y]
	}
	return Some(stats.Mean(xs))
}
