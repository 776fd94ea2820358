// Package epidemic implements a discrete-time compartmental SEIR model
// for weather-driven plant-disease epidemics. Each simulated day the
// healthy, latent, infectious and removed compartments advance under an
// infection rate modulated by temperature, wetness and crop age.
package epidemic

import (
	"fmt"
	"math"
	"time"

	"github.com/lox/blightsim/internal/metrics"
	"github.com/lox/blightsim/weather"
)

// State holds the compartment areas at the end of a simulated day.
// Diseased is the cumulative affected area (latent + infectious +
// removed).
type State struct {
	Healthy    float64
	Latent     float64
	Infectious float64
	Removed    float64
	Diseased   float64
}

// DayRecord is one row of a simulation result. The factor fields are
// the weather-derived multipliers applied in the transition into this
// day; day 0 is the initial condition and carries zero factors.
type DayRecord struct {
	Date time.Time
	Day  int
	State
	Severity   float64 // visible disease severity, percent
	TempFactor float64
	WetFactor  float64
	AgeFactor  float64
	Rate       float64 // effective daily infection rate
}

// Result is the complete daily trajectory of one simulation run. It is
// never mutated after Simulate returns.
type Result struct {
	Days []DayRecord
}

// Final returns the last day's record.
func (r *Result) Final() DayRecord {
	return r.Days[len(r.Days)-1]
}

// Simulate advances the epidemic day by day over the weather series and
// returns the full trajectory. Inputs are read-only; a failed run
// returns no partial result. The computation is deterministic:
// identical inputs produce identical output.
func Simulate(series weather.Series, p Parameters) (*Result, error) {
	res, err := simulate(series, p)
	if err != nil {
		metrics.SimulationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.SimulationsTotal.WithLabelValues("ok").Inc()
	metrics.SimulationDaysTotal.Add(float64(len(res.Days)))
	return res, nil
}

func simulate(series weather.Series, p Parameters) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := checkCoverage(series, p.Duration); err != nil {
		return nil, err
	}

	tempFn, err := p.TempResponse.predictor()
	if err != nil {
		return nil, err
	}
	ageFn, err := p.AgeResponse.predictor()
	if err != nil {
		return nil, err
	}

	healthy := p.InitialHealthy
	latent := p.InitialInfection
	var infectious, removed float64

	initial := DayRecord{
		Day:   0,
		State: makeState(healthy, latent, infectious, removed),
	}
	initial.Severity = severity(healthy, latent+infectious)
	if len(series) > 0 {
		initial.Date = series[0].Date
	}

	if p.Duration == 0 {
		return &Result{Days: []DayRecord{initial}}, nil
	}

	// infections[d] is the area newly infected on day d. A cohort
	// infected on day d turns infectious on day d+LatentPeriod and is
	// removed InfectiousPeriod days after that.
	infections := make([]float64, p.Duration)
	infections[0] = p.InitialInfection
	removedAt := make([]float64, p.Duration)
	var visibleRemoved float64

	days := make([]DayRecord, 0, p.Duration)
	days = append(days, initial)

	for d := 1; d < p.Duration; d++ {
		w := series[d-1]

		// Aging before new infections: a cohort infected today can
		// never also transition out today.
		var toInfectious, toRemoved float64
		if j := d - p.LatentPeriod; j >= 0 {
			toInfectious = infections[j]
		}
		if j := d - p.LatentPeriod - p.InfectiousPeriod; j >= 0 {
			toRemoved = infections[j]
		}
		latent = clampZero(latent - toInfectious)
		infectious = clampZero(infectious + toInfectious - toRemoved)
		removed += toRemoved
		removedAt[d] = toRemoved

		tempF := tempFn.Predict(w.TempMean)
		wetF := p.HumidityReduced
		if w.RHMean >= p.RHLimit || (p.RainLimit > 0 && w.Rainfall >= p.RainLimit) {
			wetF = 1
		}
		ageF := ageFn.Predict(float64(d - 1))

		total := healthy + latent + infectious + removed
		var healthyFrac float64
		if total > 0 {
			healthyFrac = healthy / total
		}
		rate := p.BaseRate * tempF * wetF * ageF * math.Pow(healthyFrac, p.Aggregation)
		if !finite(rate) {
			return nil, fmt.Errorf("%w: non-finite infection rate on day %d (temp=%v rh=%v)",
				ErrDataQuality, d, w.TempMean, w.RHMean)
		}

		newInfections := rate * infectious
		if newInfections > healthy {
			newInfections = healthy
		}
		healthy = clampZero(healthy - newInfections)
		latent += newInfections
		infections[d] = newInfections

		// Logistic canopy growth toward MaxArea, less natural
		// senescence of healthy tissue.
		total = healthy + latent + infectious + removed
		growth := p.HostGrowthRate * healthy * (1 - total/p.MaxArea)
		if growth < 0 {
			growth = 0
		}
		if total+growth > p.MaxArea {
			growth = p.MaxArea - total
		}
		healthy = clampZero(healthy + growth - p.SenescenceRate*healthy)

		// Severity counts removals within the trailing removal window;
		// older removed material is no longer visible on the host.
		visibleRemoved += toRemoved
		if j := d - p.RemovalPeriod; j >= 0 {
			visibleRemoved = clampZero(visibleRemoved - removedAt[j])
		}

		rec := DayRecord{
			Date:       series[d].Date,
			Day:        d,
			State:      makeState(healthy, latent, infectious, removed),
			Severity:   severity(healthy, latent+infectious+visibleRemoved),
			TempFactor: tempF,
			WetFactor:  wetF,
			AgeFactor:  ageF,
			Rate:       rate,
		}
		days = append(days, rec)
	}

	return &Result{Days: days}, nil
}

func makeState(healthy, latent, infectious, removed float64) State {
	return State{
		Healthy:    healthy,
		Latent:     latent,
		Infectious: infectious,
		Removed:    removed,
		Diseased:   latent + infectious + removed,
	}
}

// severity is the visible diseased fraction of the host, in percent.
func severity(healthy, visible float64) float64 {
	denom := healthy + visible
	if denom <= 0 {
		return 0
	}
	return visible / denom * 100
}

// checkCoverage enforces the series contract the simulator depends on.
// It never trusts upstream validation.
func checkCoverage(series weather.Series, duration int) error {
	if len(series) < duration {
		return fmt.Errorf("%w: have %d weather days, need %d", ErrInputMismatch, len(series), duration)
	}
	for i := 0; i < duration; i++ {
		w := series[i]
		if i > 0 && w.Date.Sub(series[i-1].Date) != 24*time.Hour {
			return fmt.Errorf("%w: date gap at row %d (%s to %s)", ErrInputMismatch, i,
				series[i-1].Date.Format("2006-01-02"), w.Date.Format("2006-01-02"))
		}
		if !finite(w.TempMean) || !finite(w.RHMean) || !finite(w.Rainfall) {
			return fmt.Errorf("%w: non-finite weather value on %s", ErrDataQuality, w.Date.Format("2006-01-02"))
		}
	}
	return nil
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
