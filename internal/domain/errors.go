package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDate is returned by ParseDate for text that is not a dd/mm/yyyy calendar date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrMissingRequiredColumn matches any *MissingColumnError.
	ErrMissingRequiredColumn = errors.New("missing required column")

	// ErrInvalidMonth is returned when a month argument is outside 1..12.
	ErrInvalidMonth = errors.New("invalid month: use a value between 1 and 12")

	// ErrNoPrecipitationData means no record carries a precipitation value.
	ErrNoPrecipitationData = errors.New("no valid precipitation data")

	// ErrInvertedInterval means the interval start is later than its end.
	ErrInvertedInterval = errors.New("invalid interval: start is after end")
)

// MissingColumnError reports a mandatory field that no header matched.
type MissingColumnError struct {
	Field Field
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: no header matches %q (accepted prefixes: %v)",
		ErrMissingRequiredColumn, e.Field, prefixesFor(e.Field))
}

func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingRequiredColumn
}
