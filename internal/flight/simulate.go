// Package flight runs the point-mass aircraft model over a time span and
// returns its trajectory.
package flight

import (
	"context"
	"fmt"

	"github.com/san-kum/pointmass/internal/constants"
	"github.com/san-kum/pointmass/internal/control"
	"github.com/san-kum/pointmass/internal/dynamo"
	"github.com/san-kum/pointmass/internal/integrators"
	"github.com/san-kum/pointmass/internal/physics"
)

type Scenario struct {
	Physical   constants.Physical
	Initial    constants.InitialConditions
	Profile    dynamo.Profile
	TInitial   float64
	TFinal     float64
	Dt         float64
	Integrator dynamo.Integrator
	Metrics    []dynamo.Metric
	Observers  []dynamo.Observer
}

// DefaultScenario is ten seconds of trimmed level flight from the
// reference initial conditions, integrated with Euler at 100 Hz.
func DefaultScenario() Scenario {
	set := constants.Default()
	return Scenario{
		Physical:   set.Physical,
		Initial:    set.Initial,
		Profile:    control.LevelFlight(),
		TInitial:   0,
		TFinal:     10,
		Dt:         dynamo.DefaultDt,
		Integrator: integrators.NewEuler(),
	}
}

// Trajectory is the time history of one run. The four state series share
// their backing arrays with Result and are not modified after Run returns.
type Trajectory struct {
	Time  []float64
	V     []float64
	Gamma []float64
	Psi   []float64
	Phi   []float64

	Result *dynamo.Result
}

func (tr *Trajectory) Len() int {
	return len(tr.Time)
}

func newTrajectory(r *dynamo.Result) *Trajectory {
	return &Trajectory{
		Time:   r.Times,
		V:      r.Series[physics.IdxV],
		Gamma:  r.Series[physics.IdxGamma],
		Psi:    r.Series[physics.IdxPsi],
		Phi:    r.Series[physics.IdxPhi],
		Result: r,
	}
}

// Run integrates the scenario. Invalid time spans are rejected with a
// *dynamo.TimeSpanError before anything is allocated.
func Run(ctx context.Context, sc Scenario) (*Trajectory, error) {
	if err := sc.Physical.Validate(); err != nil {
		return nil, err
	}
	if err := sc.Initial.Validate(); err != nil {
		return nil, err
	}
	if sc.Profile == nil {
		return nil, fmt.Errorf("flight: no control profile")
	}

	integ := sc.Integrator
	if integ == nil {
		integ = integrators.NewEuler()
	}

	sim := dynamo.New(physics.NewAircraft(sc.Physical), integ, sc.Profile)
	for _, m := range sc.Metrics {
		sim.AddMetric(m)
	}
	for _, o := range sc.Observers {
		sim.AddObserver(o)
	}

	cfg := dynamo.Config{
		TInitial:      sc.TInitial,
		TFinal:        sc.TFinal,
		Dt:            sc.Dt,
		ValidateState: true,
	}
	result, err := sim.Run(ctx, sc.Initial.State(), cfg)
	if err != nil {
		return nil, err
	}
	return newTrajectory(result), nil
}

// Simulate integrates the reference model (standard gravity, explicit
// Euler) from ic under profile over [tInitial, tFinal) with step dt.
func Simulate(ctx context.Context, tInitial, tFinal, dt float64, ic constants.InitialConditions, profile dynamo.Profile) (*Trajectory, error) {
	sc := DefaultScenario()
	sc.TInitial = tInitial
	sc.TFinal = tFinal
	sc.Dt = dt
	sc.Initial = ic
	sc.Profile = profile
	return Run(ctx, sc)
}
