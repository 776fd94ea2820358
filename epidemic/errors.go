package epidemic

import "errors"

var (
	// ErrInputMismatch reports weather coverage shorter than the
	// requested duration, or a series with date gaps or out-of-order
	// rows.
	ErrInputMismatch = errors.New("weather input does not cover requested duration")

	// ErrInvalidParameter reports a non-positive period or rate, or a
	// threshold outside its physically valid range.
	ErrInvalidParameter = errors.New("invalid simulation parameter")

	// ErrDataQuality reports a missing or non-finite weather value, or
	// a rate multiplier that became non-finite during the run.
	ErrDataQuality = errors.New("weather data quality")
)
