package epidemic

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/lox/blightsim/weather"
)

func makeSeries(n int, temp, rh, rain float64) weather.Series {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	series := make(weather.Series, n)
	for i := range series {
		date := start.AddDate(0, 0, i)
		series[i] = weather.Day{
			Date:      date,
			DayOfYear: date.YearDay(),
			TempMean:  temp,
			RHMean:    rh,
			Rainfall:  rain,
			Latitude:  14.1,
			Longitude: 121.3,
		}
	}
	return series
}

func flatCurve() Curve {
	return Curve{X: []float64{0, 200}, Y: []float64{1, 1}}
}

func testParams() Parameters {
	return Parameters{
		InitialHealthy:   600,
		InitialInfection: 1,
		LatentPeriod:     5,
		InfectiousPeriod: 20,
		RemovalPeriod:    20,
		RHLimit:          90,
		RainLimit:        5,
		BaseRate:         1.0,
		Aggregation:      1,
		HostGrowthRate:   0.1,
		SenescenceRate:   0,
		MaxArea:          30000,
		Duration:         120,
		TempResponse:     Curve{X: []float64{10, 25, 40}, Y: []float64{0, 1, 0}},
		AgeResponse:      flatCurve(),
	}
}

func TestSimulateCompartmentInvariants(t *testing.T) {
	p := testParams()
	series := makeSeries(p.Duration, 25, 95, 0)

	res, err := Simulate(series, p)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if len(res.Days) != p.Duration {
		t.Fatalf("len(Days) = %d, want %d", len(res.Days), p.Duration)
	}

	for _, day := range res.Days {
		if day.Healthy < 0 || day.Latent < 0 || day.Infectious < 0 || day.Removed < 0 {
			t.Fatalf("day %d: negative compartment: %+v", day.Day, day.State)
		}
		sum := day.Healthy + day.Latent + day.Infectious + day.Removed
		if sum > p.MaxArea*(1+1e-9) {
			t.Fatalf("day %d: total area %v exceeds max %v", day.Day, sum, p.MaxArea)
		}
		if day.Diseased != day.Latent+day.Infectious+day.Removed {
			t.Errorf("day %d: Diseased = %v, want %v", day.Day, day.Diseased, day.Latent+day.Infectious+day.Removed)
		}
	}
}

func TestRemovedMonotonic(t *testing.T) {
	p := testParams()
	series := makeSeries(p.Duration, 25, 95, 0)

	res, err := Simulate(series, p)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	prev := 0.0
	for _, day := range res.Days {
		if day.Removed < prev {
			t.Fatalf("day %d: Removed %v decreased from %v", day.Day, day.Removed, prev)
		}
		prev = day.Removed
	}
}

func TestHumidityGateAtThreshold(t *testing.T) {
	p := testParams()
	p.Duration = 3
	// RH exactly at the limit must count as wet, not dry.
	series := makeSeries(3, 25, p.RHLimit, 0)

	res, err := Simulate(series, p)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	for _, day := range res.Days[1:] {
		if day.WetFactor != 1 {
			t.Errorf("day %d: WetFactor = %v at RH == limit, want 1", day.Day, day.WetFactor)
		}
	}
}

func TestDrySeasonNoInfections(t *testing.T) {
	p := testParams()
	series := makeSeries(p.Duration, 25, p.RHLimit-1, 0)

	res, err := Simulate(series, p)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	for _, day := range res.Days {
		if day.Rate != 0 {
			t.Errorf("day %d: infection rate %v under dry conditions, want 0", day.Day, day.Rate)
		}
		// Only the inoculum ever cycles through the compartments.
		if day.Diseased > p.InitialInfection+1e-12 {
			t.Errorf("day %d: Diseased = %v, want at most the inoculum %v", day.Day, day.Diseased, p.InitialInfection)
		}
	}

	// Host growth still runs.
	if final := res.Final(); final.Healthy <= p.InitialHealthy {
		t.Errorf("final Healthy = %v, want growth above %v", final.Healthy, p.InitialHealthy)
	}
}

func TestRainfallOpensWetnessGate(t *testing.T) {
	p := testParams()
	p.Duration = 3
	series := makeSeries(3, 25, p.RHLimit-20, p.RainLimit)

	res, err := Simulate(series, p)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if got := res.Days[1].WetFactor; got != 1 {
		t.Errorf("WetFactor = %v with rain at limit, want 1", got)
	}
}

func TestDeterminism(t *testing.T) {
	p := testParams()
	series := makeSeries(p.Duration, 24, 93, 2)

	a, err := Simulate(series, p)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	b, err := Simulate(series, p)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different results")
	}
}

func TestZeroDuration(t *testing.T) {
	p := testParams()
	p.Duration = 0
	series := makeSeries(1, 25, 95, 0)

	res, err := Simulate(series, p)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if len(res.Days) != 1 {
		t.Fatalf("len(Days) = %d, want 1", len(res.Days))
	}
	day := res.Days[0]
	if day.Healthy != p.InitialHealthy || day.Latent != p.InitialInfection {
		t.Errorf("initial state = %+v, want H=%v L=%v", day.State, p.InitialHealthy, p.InitialInfection)
	}
	if day.Infectious != 0 || day.Removed != 0 {
		t.Errorf("initial state has non-zero I/R: %+v", day.State)
	}
}

func TestInsufficientWeather(t *testing.T) {
	p := testParams()
	series := makeSeries(p.Duration-1, 25, 95, 0)

	_, err := Simulate(series, p)
	if !errors.Is(err, ErrInputMismatch) {
		t.Fatalf("err = %v, want ErrInputMismatch", err)
	}
}

func TestDateGapRejected(t *testing.T) {
	p := testParams()
	series := makeSeries(p.Duration, 25, 95, 0)
	series[40].Date = series[40].Date.AddDate(0, 0, 1)

	_, err := Simulate(series, p)
	if !errors.Is(err, ErrInputMismatch) {
		t.Fatalf("err = %v, want ErrInputMismatch", err)
	}
}

func TestNaNWeatherRejected(t *testing.T) {
	p := testParams()
	series := makeSeries(p.Duration, 25, 95, 0)
	series[7].TempMean = math.NaN()

	_, err := Simulate(series, p)
	if !errors.Is(err, ErrDataQuality) {
		t.Fatalf("err = %v, want ErrDataQuality", err)
	}
}

func TestFavorableSeasonScenario(t *testing.T) {
	p := testParams()
	p.Duration = 121
	series := makeSeries(p.Duration, 25, 95, 0)

	res, err := Simulate(series, p)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	firstInfectious := -1
	for _, day := range res.Days {
		if day.Infectious > 0 {
			firstInfectious = day.Day
			break
		}
	}
	if firstInfectious < 0 || firstInfectious >= p.LatentPeriod+1 {
		t.Errorf("Infectious first positive on day %d, want before day %d", firstInfectious, p.LatentPeriod+1)
	}

	if d60, d120 := res.Days[60].Diseased, res.Days[120].Diseased; d120 <= d60 {
		t.Errorf("Diseased(120) = %v not above Diseased(60) = %v", d120, d60)
	}
}

// TestAgingBeforeInfection pins the tie-break order: cohorts age out
// before the day's new infections arrive, so with a 1-day latent
// period the whole inoculum is infectious on day 1 and that day's new
// infections are all still latent.
func TestAgingBeforeInfection(t *testing.T) {
	p := testParams()
	p.InitialHealthy = 99
	p.LatentPeriod = 1
	p.HostGrowthRate = 0
	p.Duration = 2
	series := makeSeries(2, 25, 95, 0)

	res, err := Simulate(series, p)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	day1 := res.Days[1]
	if day1.Infectious != 1 {
		t.Errorf("day 1 Infectious = %v, want 1 (inoculum aged in)", day1.Infectious)
	}
	// rate = base * healthyFrac = 99/100; new infections = rate * I.
	wantLatent := 0.99
	if math.Abs(day1.Latent-wantLatent) > 1e-12 {
		t.Errorf("day 1 Latent = %v, want %v", day1.Latent, wantLatent)
	}
	if math.Abs(day1.Healthy-(99-0.99)) > 1e-12 {
		t.Errorf("day 1 Healthy = %v, want %v", day1.Healthy, 99-0.99)
	}
}

func TestResultAlignedWithWeatherDates(t *testing.T) {
	p := testParams()
	p.Duration = 10
	series := makeSeries(12, 25, 95, 0)

	res, err := Simulate(series, p)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	for i, day := range res.Days {
		if !day.Date.Equal(series[i].Date) {
			t.Errorf("day %d date = %s, want %s", i, day.Date, series[i].Date)
		}
		if day.Day != i {
			t.Errorf("day index = %d, want %d", day.Day, i)
		}
	}
}
