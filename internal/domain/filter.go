package domain

import "slices"

// FilterInterval returns the records whose (year, month) lies within
// [from, to], sorted by ascending date. Day of month is ignored. The input
// slice is left untouched. An inverted range simply matches nothing; callers
// that want to reject it should use ValidateInterval first.
func FilterInterval(records []WeatherRecord, from, to YearMonth) []WeatherRecord {
	out := make([]WeatherRecord, 0)
	for _, r := range records {
		p := r.Period()
		if from.Compare(p) <= 0 && p.Compare(to) <= 0 {
			out = append(out, r)
		}
	}

	slices.SortStableFunc(out, func(a, b WeatherRecord) int {
		return a.Date.Compare(b.Date)
	})
	return out
}

// ValidateInterval returns ErrInvertedInterval when from is later than to.
func ValidateInterval(from, to YearMonth) error {
	if from.Compare(to) > 0 {
		return ErrInvertedInterval
	}
	return nil
}

// Span returns the earliest and latest periods present in records.
func Span(records []WeatherRecord) (first, last YearMonth, ok bool) {
	if len(records) == 0 {
		return YearMonth{}, YearMonth{}, false
	}
	first, last = records[0].Period(), records[0].Period()
	for _, r := range records[1:] {
		p := r.Period()
		if p.Compare(first) < 0 {
			first = p
		}
		if p.Compare(last) > 0 {
			last = p
		}
	}
	return first, last, true
}
