package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateRe matches day/month/year with a four-digit year, e.g. "7/9/1987" or "07/09/1987".
var dateRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

// ParseDate parses a dd/mm/yyyy cell into a UTC midnight time.
// Impossible dates such as "31/02/2000" or "31/13/2000" are rejected.
func ParseDate(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	m := dateRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, text)
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (Feb 31 -> Mar 2); a round trip catches it.
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, text)
	}
	return t, nil
}

// ParseOptionalNumber converts a numeric cell. Blank, "-", "NA" and any
// unparseable or non-finite text produce an absent Value.
func ParseOptionalNumber(text string) Value {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	if text == "" || text == "-" || strings.EqualFold(text, "na") {
		return Value{}
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Value{}
	}
	return Some(v)
}
