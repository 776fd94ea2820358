package epidemic

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

// Curve is a piecewise-linear response function defined by (X, Y)
// control points with strictly increasing X. Evaluation outside the X
// range holds the nearest endpoint value, so curves that should be
// zero outside their viable range must end at zero.
type Curve struct {
	X []float64
	Y []float64
}

func (c Curve) validate(name string) error {
	if len(c.X) < 2 {
		return fmt.Errorf("%w: %s curve needs at least 2 points, has %d", ErrInvalidParameter, name, len(c.X))
	}
	if len(c.X) != len(c.Y) {
		return fmt.Errorf("%w: %s curve has %d x values but %d y values", ErrInvalidParameter, name, len(c.X), len(c.Y))
	}
	for i := range c.X {
		if math.IsNaN(c.X[i]) || math.IsInf(c.X[i], 0) || math.IsNaN(c.Y[i]) || math.IsInf(c.Y[i], 0) {
			return fmt.Errorf("%w: %s curve has non-finite point at index %d", ErrInvalidParameter, name, i)
		}
		if c.Y[i] < 0 {
			return fmt.Errorf("%w: %s curve has negative value %v at index %d", ErrInvalidParameter, name, c.Y[i], i)
		}
		if i > 0 && c.X[i] <= c.X[i-1] {
			return fmt.Errorf("%w: %s curve x values not strictly increasing at index %d", ErrInvalidParameter, name, i)
		}
	}
	return nil
}

func (c Curve) predictor() (interp.PiecewiseLinear, error) {
	var pl interp.PiecewiseLinear
	if err := pl.Fit(c.X, c.Y); err != nil {
		return pl, fmt.Errorf("%w: fit curve: %v", ErrInvalidParameter, err)
	}
	return pl, nil
}

// Parameters configures a single simulation run. Every field is
// required; defaults for specific diseases live in the diseases
// package, never inside the simulator.
type Parameters struct {
	// InitialHealthy is the healthy host area (or site count) at day 0.
	InitialHealthy float64

	// InitialInfection is the onset inoculum, placed in the latent
	// compartment at day 0.
	InitialInfection float64

	// LatentPeriod is the number of days between infection and
	// becoming infectious.
	LatentPeriod int

	// InfectiousPeriod is the number of days an infectious unit
	// spreads disease before removal.
	InfectiousPeriod int

	// RemovalPeriod is the window, in days, over which removed
	// material still counts toward the visible severity index. The
	// Removed compartment itself accumulates for the whole run.
	RemovalPeriod int

	// RHLimit is the relative-humidity threshold (%): the wetness
	// gate is active when RH >= RHLimit.
	RHLimit float64

	// RainLimit is the daily rainfall (mm) that also activates the
	// wetness gate, as an alternative moisture source to humidity.
	RainLimit float64

	// HumidityReduced is the wetness multiplier applied when the gate
	// is closed, in [0,1]. Zero gives a hard binary gate.
	HumidityReduced float64

	// BaseRate is the optimum daily infection rate coefficient.
	BaseRate float64

	// Aggregation is the exponent on the healthy-fraction density
	// term; 1 models a randomly mixed epidemic, larger values model
	// spatially aggregated lesions.
	Aggregation float64

	// HostGrowthRate is the relative daily logistic growth rate of
	// healthy tissue toward MaxArea.
	HostGrowthRate float64

	// SenescenceRate is the relative daily loss of healthy tissue to
	// natural senescence. Zero disables senescence.
	SenescenceRate float64

	// MaxArea is the carrying capacity of the host: total area across
	// all compartments never exceeds it.
	MaxArea float64

	// Duration is the number of simulated days. Zero yields only the
	// initial-condition day.
	Duration int

	// TempResponse maps mean temperature (°C) to an infection-rate
	// multiplier in [0,1], peaking at the disease optimum.
	TempResponse Curve

	// AgeResponse maps crop age (days since day 0) to an
	// infection-rate multiplier reflecting host-tissue susceptibility.
	AgeResponse Curve
}

// Validate rejects parameter sets before they reach the stepping loop.
func (p Parameters) Validate() error {
	if p.InitialHealthy <= 0 {
		return fmt.Errorf("%w: initial healthy area %v must be positive", ErrInvalidParameter, p.InitialHealthy)
	}
	if p.InitialInfection < 0 {
		return fmt.Errorf("%w: initial infection %v must be non-negative", ErrInvalidParameter, p.InitialInfection)
	}
	if p.LatentPeriod < 1 {
		return fmt.Errorf("%w: latent period %d must be at least 1 day", ErrInvalidParameter, p.LatentPeriod)
	}
	if p.InfectiousPeriod < 1 {
		return fmt.Errorf("%w: infectious period %d must be at least 1 day", ErrInvalidParameter, p.InfectiousPeriod)
	}
	if p.RemovalPeriod < 1 {
		return fmt.Errorf("%w: removal period %d must be at least 1 day", ErrInvalidParameter, p.RemovalPeriod)
	}
	if p.RHLimit < 0 || p.RHLimit > 100 {
		return fmt.Errorf("%w: rh limit %v outside [0,100]", ErrInvalidParameter, p.RHLimit)
	}
	if p.RainLimit < 0 {
		return fmt.Errorf("%w: rain limit %v must be non-negative", ErrInvalidParameter, p.RainLimit)
	}
	if p.HumidityReduced < 0 || p.HumidityReduced > 1 {
		return fmt.Errorf("%w: reduced wetness multiplier %v outside [0,1]", ErrInvalidParameter, p.HumidityReduced)
	}
	if p.BaseRate <= 0 {
		return fmt.Errorf("%w: base infection rate %v must be positive", ErrInvalidParameter, p.BaseRate)
	}
	if p.Aggregation <= 0 {
		return fmt.Errorf("%w: aggregation exponent %v must be positive", ErrInvalidParameter, p.Aggregation)
	}
	if p.HostGrowthRate < 0 {
		return fmt.Errorf("%w: host growth rate %v must be non-negative", ErrInvalidParameter, p.HostGrowthRate)
	}
	if p.SenescenceRate < 0 {
		return fmt.Errorf("%w: senescence rate %v must be non-negative", ErrInvalidParameter, p.SenescenceRate)
	}
	if p.MaxArea <= 0 {
		return fmt.Errorf("%w: max area %v must be positive", ErrInvalidParameter, p.MaxArea)
	}
	if p.InitialHealthy+p.InitialInfection > p.MaxArea {
		return fmt.Errorf("%w: initial area %v exceeds max area %v",
			ErrInvalidParameter, p.InitialHealthy+p.InitialInfection, p.MaxArea)
	}
	if p.Duration < 0 {
		return fmt.Errorf("%w: duration %d must be non-negative", ErrInvalidParameter, p.Duration)
	}
	if err := p.TempResponse.validate("temperature response"); err != nil {
		return err
	}
	return p.AgeResponse.validate("age response")
}
