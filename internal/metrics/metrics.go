package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SimulationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blightsim_simulations_total",
			Help: "Total simulation runs by outcome",
		},
		[]string{"status"},
	)

	SimulationDaysTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blightsim_simulation_days_total",
			Help: "Total days stepped across all simulation runs",
		},
	)

	WeatherFlagsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blightsim_weather_flags_total",
			Help: "Advisory quality flags raised during weather validation",
		},
		[]string{"flag"},
	)

	BatchScenariosTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blightsim_batch_scenarios_total",
			Help: "Total batch scenarios processed by outcome",
		},
		[]string{"status"},
	)
)
