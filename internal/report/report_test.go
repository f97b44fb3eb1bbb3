package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/climate-history-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []domain.WeatherRecord {
	return []domain.WeatherRecord{
		{
			Date:          time.Date(2010, time.January, 5, 0, 0, 0, 0, time.UTC),
			Precipitation: domain.Some(12.34),
			MaxTemp:       domain.Some(31),
			MinTemp:       domain.Some(19.96),
			MeanTemp:      domain.Some(25.5),
			Humidity:      domain.Some(70),
			WindSpeed:     domain.Some(2.3),
		},
		{Date: time.Date(2010, time.January, 6, 0, 0, 0, 0, time.UTC)},
	}
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestWriteRecords_All(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, sampleRecords(), ModeAll))

	got := lines(buf.String())
	require.Len(t, got, 4)
	assert.Equal(t, "DATE       | PRECIP(mm) | T_MAX(°C) | T_MIN(°C) | T_MEAN(°C) | HUMID(%) | WIND(m/s)", got[0])
	assert.Equal(t, strings.Repeat("-", 83), got[1])
	assert.Equal(t, "05/01/2010 |       12.3 |      31.0 |      20.0 |       25.5 |     70.0 |       2.3", got[2])
	assert.Equal(t, "06/01/2010 |          - |         - |         - |          - |        - |         -", got[3])
}

func TestWriteRecords_Modes(t *testing.T) {
	tests := []struct {
		mode   Mode
		header string
		row    string
	}{
		{ModePrecipitation, "DATE       | PRECIP(mm)", "05/01/2010 |       12.3"},
		{ModeTemperatures, "DATE       | T_MAX(°C) | T_MIN(°C) | T_MEAN(°C)", "05/01/2010 |      31.0 |      20.0 |       25.5"},
		{ModeHumidityWind, "DATE       | HUMID(%) | WIND(m/s)", "05/01/2010 |     70.0 |       2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteRecords(&buf, sampleRecords()[:1], tt.mode))

			got := lines(buf.String())
			require.Len(t, got, 3)
			assert.Equal(t, tt.header, got[0])
			assert.Equal(t, tt.row, got[2])
		})
	}
}

func TestWriteRecords_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, nil, ModeAll))
	assert.Equal(t, "No records for the selected period.\n", buf.String())
}

func TestWriteRecords_UnknownMode(t *testing.T) {
	var buf bytes.Buffer
	err := WriteRecords(&buf, sampleRecords(), Mode(9))
	assert.ErrorIs(t, err, ErrUnknownMode)
	assert.Zero(t, buf.Len())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestWriteRecords_WriterError(t *testing.T) {
	err := WriteRecords(failingWriter{}, sampleRecords(), ModeAll)
	assert.EqualError(t, err, "closed pipe")
}

func TestWriteWettestMonth(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWettestMonth(&buf, domain.MonthlyTotal{
		Period: domain.YearMonth{Year: 2010, Month: time.January},
		Total:  15.5,
	}))
	assert.Equal(t, "Wettest month: January 2010 | Total precipitation = 15.5 mm\n", buf.String())
}

func TestWriteYearlyAverages(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYearlyAverages(&buf, domain.YearlyAverages{2008: 9.126, 2006: 11}, 7))

	assert.Equal(t, []string{
		"Mean minimum temperature, July (2006-2016):",
		"Year | Mean (°C)",
		"----------------",
		"2006 | 11.00",
		"2008 | 9.13",
	}, lines(buf.String()))
}

func TestWriteYearlyAverages_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYearlyAverages(&buf, domain.YearlyAverages{}, 2))
	assert.Equal(t, "Not enough data for February in 2006-2016.\n", buf.String())
}

func TestWriteOverallMean(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOverallMean(&buf, domain.Some(10.456), 7))
	assert.Equal(t, "Overall mean minimum temperature in July (2006-2016): 10.46 °C\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteOverallMean(&buf, domain.Value{}, 7))
	assert.Equal(t, "Not enough data to compute the overall mean.\n", buf.String())
}

func TestWriteSummary(t *testing.T) {
	records := []domain.WeatherRecord{
		{Date: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(1961, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2016, 12, 31, 0, 0, 0, 0, time.UTC)},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, records))
	assert.Equal(t, "Records loaded: 3\nPeriod loaded: 01/01/1961 to 31/12/2016\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteSummary(&buf, nil))
	assert.Equal(t, "Records loaded: 0\n", buf.String())
}
