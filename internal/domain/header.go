package domain

import "strings"

// Field names a canonical weather attribute, independent of the source header text.
type Field string

const (
	FieldDate          Field = "date"
	FieldPrecipitation Field = "precipitation"
	FieldMaxTemp       Field = "maxTemp"
	FieldMinTemp       Field = "minTemp"
	FieldMeanTemp      Field = "meanTemp"
	FieldHumidity      Field = "humidity"
	FieldWindSpeed     Field = "windSpeed"
)

// columnSpec lists the header prefixes accepted for a field, in priority order.
type columnSpec struct {
	field    Field
	prefixes []string
	required bool
}

// columnSpecs is evaluated top to bottom. Bare "max"/"min" come last so a
// dedicated column such as "tmax" wins over any header that merely starts with "max".
var columnSpecs = []columnSpec{
	{field: FieldDate, prefixes: []string{"data"}, required: true},
	{field: FieldPrecipitation, prefixes: []string{"precip", "precipit"}, required: true},
	{field: FieldMaxTemp, prefixes: []string{"maxima", "tmax", "temp_max", "max"}},
	{field: FieldMinTemp, prefixes: []string{"minima", "tmin", "temp_min", "min"}},
	{field: FieldMeanTemp, prefixes: []string{"temp_media", "tmed", "tempmed", "temperatura média", "media"}},
	{field: FieldHumidity, prefixes: []string{"um_relativa", "umidade", "ur"}},
	{field: FieldWindSpeed, prefixes: []string{"vel", "vento", "vel_vento", "velocidade"}},
}

// Fields returns the canonical fields in declaration order.
func Fields() []Field {
	out := make([]Field, len(columnSpecs))
	for i, s := range columnSpecs {
		out[i] = s.field
	}
	return out
}

func prefixesFor(f Field) []string {
	for _, s := range columnSpecs {
		if s.field == f {
			return s.prefixes
		}
	}
	return nil
}

// ColumnMap maps each canonical field to the source header it was resolved
// from. Unresolved optional fields map to "".
type ColumnMap map[Field]string

// Resolved reports whether a source column was found for f.
func (m ColumnMap) Resolved(f Field) bool {
	return m[f] != ""
}

// Unresolved lists the optional fields with no matching header, in declaration order.
func (m ColumnMap) Unresolved() []Field {
	var out []Field
	for _, s := range columnSpecs {
		if !m.Resolved(s.field) {
			out = append(out, s.field)
		}
	}
	return out
}

// ResolveHeader maps source headers to canonical fields by case-insensitive
// prefix. For each field the first prefix that matches any header wins, and
// within one prefix the leftmost header wins. A missing date or precipitation
// column is a *MissingColumnError.
func ResolveHeader(header []string) (ColumnMap, error) {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = normalizeHeader(h)
	}

	cols := make(ColumnMap, len(columnSpecs))
	for _, s := range columnSpecs {
		col := findColumn(header, normalized, s.prefixes)
		if col == "" && s.required {
			return nil, &MissingColumnError{Field: s.field}
		}
		cols[s.field] = col
	}
	return cols, nil
}

func findColumn(header, normalized, prefixes []string) string {
	for _, p := range prefixes {
		for i, h := range normalized {
			if h != "" && strings.HasPrefix(h, p) {
				return header[i]
			}
		}
	}
	return ""
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.TrimSpace(h))
}
