package domain

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{"zero padded", "07/09/1987", time.Date(1987, 9, 7, 0, 0, 0, 0, time.UTC)},
		{"single digits", "1/2/1961", time.Date(1961, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"surrounding whitespace", "  31/12/2016 ", time.Date(2016, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"leap day", "29/02/2016", time.Date(2016, 2, 29, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"31/13/2000",
		"31/02/2000",
		"29/02/2015",
		"00/01/2000",
		"01/01/00",
		"2000-01-01",
		"01/01/2000 12:00",
		"aa/bb/cccc",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := ParseDate(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDate)
		})
	}
}

func TestParseOptionalNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"integer", "10", 10},
		{"decimal point", "3.5", 3.5},
		{"decimal comma", "3,5", 3.5},
		{"negative", "-2.4", -2.4},
		{"whitespace", " 25.0 ", 25},
		{"zero", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseOptionalNumber(tt.input).Get()
			require.True(t, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseOptionalNumber_Absent(t *testing.T) {
	for _, in := range []string{"", "   ", "-", "NA", "na", "Na", "n/a", "abc", "NaN", "Inf", "-inf", "1.2.3"} {
		t.Run(in, func(t *testing.T) {
			assert.False(t, ParseOptionalNumber(in).Valid())
		})
	}
}

func TestParseOptionalNumber_CommaMatchesPeriod(t *testing.T) {
	for _, pair := range [][2]string{{"3,5", "3.5"}, {"0,1", "0.1"}, {"-12,75", "-12.75"}} {
		assert.Equal(t, ParseOptionalNumber(pair[1]), ParseOptionalNumber(pair[0]))
	}
}

func TestValue(t *testing.T) {
	t.Run("zero value is absent", func(t *testing.T) {
		var v Value
		_, ok := v.Get()
		assert.False(t, ok)
		assert.Equal(t, "-", v.String())
	})

	t.Run("zero is present", func(t *testing.T) {
		v := Some(0)
		got, ok := v.Get()
		assert.True(t, ok)
		assert.Zero(t, got)
		assert.Equal(t, "0.0", v.String())
	})

	t.Run("non-finite is absent", func(t *testing.T) {
		assert.False(t, Some(math.Inf(1)).Valid())
	})

	t.Run("json", func(t *testing.T) {
		data, err := json.Marshal(struct {
			A Value `json:"a"`
			B Value `json:"b"`
		}{A: Some(1.5)})
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":1.5,"b":null}`, string(data))

		var back struct {
			A Value `json:"a"`
			B Value `json:"b"`
		}
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, Some(1.5), back.A)
		assert.False(t, back.B.Valid())
	})
}
