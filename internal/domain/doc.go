// Package domain models daily weather observations from the Porto Alegre
// climate record and the queries answered over them.
//
// # Data Source
//
// The input is a daily table (1961–2016) exported from a weather station
// archive as a delimited file. The first row is a header whose column names
// vary between exports ("precip" vs "precipitacao", "minima" vs "tmin", with
// or without accents), so columns are matched by prefix rather than by exact
// name. See [ResolveHeader].
//
// # Data Conventions
//
// Date format:
//
//	dd/mm/yyyy, e.g. "07/09/1987". Single-digit day and month are accepted,
//	the year must have four digits. Rows whose date cannot be parsed are
//	dropped by the loader without an error.
//
// Numeric cells:
//
//	Decimal point or decimal comma: "12.5" and "12,5" are the same value.
//	"" (blank), "-" and "NA" (any case) mean no observation. Anything else that
//	does not parse as a finite number is also treated as no observation.
//
// Missing observations:
//
//	A missing cell is carried as an absent [Value], never as zero. Sums and
//	means skip absent values, and a month whose precipitation is entirely
//	absent does not take part in the wettest-month ranking at all.
//
// Units:
//
//	precipitation mm | temperatures °C | relative humidity % | wind speed m/s
//
// # Queries
//
//	FilterInterval     records within an inclusive (year, month) range, by date
//	WettestMonth       (year, month) with the largest precipitation total
//	YearlyMinAverages  mean minimum temperature of one month, per year 2006–2016
//	OverallMean        unweighted mean of the per-year means
package domain
