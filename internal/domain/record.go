package domain

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Value is an optional measurement. The zero Value is absent.
type Value struct {
	v     float64
	valid bool
}

// Some returns a present Value. Non-finite inputs yield an absent Value so
// that NaN and ±Inf never enter an aggregation.
func Some(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{v: v, valid: true}
}

// Get returns the measurement and whether it is present.
func (x Value) Get() (float64, bool) { return x.v, x.valid }

// Valid reports whether the measurement is present.
func (x Value) Valid() bool { return x.valid }

// String renders the value with one decimal, or "-" when absent.
func (x Value) String() string {
	if !x.valid {
		return "-"
	}
	return fmt.Sprintf("%.1f", x.v)
}

// MarshalJSON encodes an absent value as null.
func (x Value) MarshalJSON() ([]byte, error) {
	if !x.valid {
		return []byte("null"), nil
	}
	return json.Marshal(x.v)
}

// UnmarshalJSON decodes null as absent.
func (x *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*x = Value{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode value: %w", err)
	}
	*x = Some(v)
	return nil
}

// WeatherRecord is one daily observation. Records are passed by value and
// never modified after the loader builds them.
type WeatherRecord struct {
	Date          time.Time `json:"date"` // UTC midnight
	Precipitation Value     `json:"precipitation"`
	MaxTemp       Value     `json:"max_temp"`
	MinTemp       Value     `json:"min_temp"`
	MeanTemp      Value     `json:"mean_temp"`
	Humidity      Value     `json:"humidity"`
	WindSpeed     Value     `json:"wind_speed"`
}

// Period returns the (year, month) the record belongs to.
func (r WeatherRecord) Period() YearMonth {
	return YearMonth{Year: r.Date.Year(), Month: r.Date.Month()}
}

// YearMonth is the grouping key for monthly aggregation and interval bounds.
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// Compare orders periods chronologically: -1 if a is earlier, +1 if later.
func (a YearMonth) Compare(b YearMonth) int {
	if c := cmp.Compare(a.Year, b.Year); c != 0 {
		return c
	}
	return cmp.Compare(a.Month, b.Month)
}

func (a YearMonth) String() string {
	return fmt.Sprintf("%02d/%04d", int(a.Month), a.Year)
}
