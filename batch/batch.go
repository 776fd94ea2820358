// Package batch runs many independent simulations in parallel. Runs
// share no mutable state, so they fan out across a fixed worker pool.
package batch

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/lox/blightsim/epidemic"
	"github.com/lox/blightsim/internal/metrics"
	"github.com/lox/blightsim/weather"
)

// Scenario pairs one weather series with one parameter set. Name is
// used only for logging and error reporting.
type Scenario struct {
	Name    string
	Weather weather.Series
	Params  epidemic.Parameters
}

// Outcome is the result of one scenario, aligned by Index to the input
// slice. Exactly one of Result and Err is set.
type Outcome struct {
	Index  int
	Name   string
	Result *epidemic.Result
	Err    error
}

// Run simulates every scenario using the given number of workers and
// returns outcomes aligned to scenario order. A cancelled context
// stops workers from picking up further scenarios; already-started
// runs complete. Individual failures are recorded per outcome, not
// returned as a Run error.
func Run(ctx context.Context, scenarios []Scenario, workers int) ([]Outcome, error) {
	if workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", workers)
	}
	if len(scenarios) == 0 {
		return nil, nil
	}
	if workers > len(scenarios) {
		workers = len(scenarios)
	}

	outcomes := make([]Outcome, len(scenarios))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				sc := scenarios[i]
				res, err := epidemic.Simulate(sc.Weather, sc.Params)
				if err != nil {
					log.Printf("batch: scenario %q: %v", sc.Name, err)
					metrics.BatchScenariosTotal.WithLabelValues("error").Inc()
				} else {
					metrics.BatchScenariosTotal.WithLabelValues("ok").Inc()
				}
				outcomes[i] = Outcome{Index: i, Name: sc.Name, Result: res, Err: err}
			}
		}()
	}

	var cancelled error
	for i := range scenarios {
		if err := ctx.Err(); err != nil {
			cancelled = err
			for j := i; j < len(scenarios); j++ {
				outcomes[j] = Outcome{Index: j, Name: scenarios[j].Name, Err: err}
			}
			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return outcomes, cancelled
}
