// Package weather defines the daily weather series consumed by the
// epidemic simulator and validates its input contract.
package weather

import (
	"fmt"
	"math"
	"time"

	"github.com/lox/blightsim/internal/metrics"
)

// Day is a single daily weather observation.
type Day struct {
	Date      time.Time
	DayOfYear int
	TempMean  float64 // mean temperature, °C
	RHMean    float64 // mean relative humidity, %
	Rainfall  float64 // daily rainfall, mm
	Latitude  float64
	Longitude float64
}

// Series is a contiguous daily weather record, one Day per calendar
// day, sorted ascending by date.
type Series []Day

const (
	FlagTempOutOfRange = "temp_out_of_range"
	FlagRHOutOfRange   = "rh_out_of_range"
	FlagRainNegative   = "rain_negative"
	FlagValueNotFinite = "value_not_finite"
)

// ErrSeriesContract reports a violation of the series input contract
// (coverage, ordering or gaps).
type ErrSeriesContract struct {
	Reason string
}

func (e *ErrSeriesContract) Error() string {
	return fmt.Sprintf("weather series contract: %s", e.Reason)
}

// Validate checks the series against the input-boundary contract: at
// least duration rows, strictly ascending dates with no gaps, and
// finite values throughout. It returns advisory quality flags for
// physically implausible (but finite) values; hard contract
// violations return an error.
func (s Series) Validate(duration int) ([]string, error) {
	if len(s) < duration {
		return nil, &ErrSeriesContract{
			Reason: fmt.Sprintf("have %d days, need %d", len(s), duration),
		}
	}

	var flags []string
	for i, d := range s {
		if i > 0 {
			gap := d.Date.Sub(s[i-1].Date)
			if gap != 24*time.Hour {
				return nil, &ErrSeriesContract{
					Reason: fmt.Sprintf("dates not contiguous at row %d: %s then %s",
						i, s[i-1].Date.Format("2006-01-02"), d.Date.Format("2006-01-02")),
				}
			}
		}

		if !finite(d.TempMean) || !finite(d.RHMean) || !finite(d.Rainfall) {
			flags = appendFlag(flags, FlagValueNotFinite)
			continue
		}
		if d.TempMean < -40 || d.TempMean > 55 {
			flags = appendFlag(flags, FlagTempOutOfRange)
		}
		if d.RHMean < 0 || d.RHMean > 100 {
			flags = appendFlag(flags, FlagRHOutOfRange)
		}
		if d.Rainfall < 0 {
			flags = appendFlag(flags, FlagRainNegative)
		}
	}

	for _, f := range flags {
		metrics.WeatherFlagsTotal.WithLabelValues(f).Inc()
	}
	return flags, nil
}

func appendFlag(flags []string, flag string) []string {
	for _, f := range flags {
		if f == flag {
			return flags
		}
	}
	return append(flags, flag)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
