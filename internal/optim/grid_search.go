// Package optim searches control inputs that keep a run closest to a
// target condition.
package optim

import (
	"context"
	"errors"
	"math"

	"github.com/san-kum/pointmass/internal/control"
	"github.com/san-kum/pointmass/internal/flight"
	"github.com/san-kum/pointmass/internal/physics"
)

var ErrNoCandidate = errors.New("optim: no candidate completed")

// Range is an inclusive, evenly spaced set of Steps values.
type Range struct {
	Min, Max float64
	Steps    int
}

func (r Range) Values() []float64 {
	if r.Steps <= 1 || r.Max == r.Min {
		return []float64{(r.Min + r.Max) / 2}
	}
	vals := make([]float64, r.Steps)
	h := (r.Max - r.Min) / float64(r.Steps-1)
	for i := range vals {
		vals[i] = r.Min + float64(i)*h
	}
	return vals
}

// Objective scores a trajectory; lower is better.
type Objective func(tr *flight.Trajectory) float64

// SteadyState penalizes any drift of airspeed and flight-path angle from
// their initial values. Airspeed drift is normalized by V0.
func SteadyState(tr *flight.Trajectory) float64 {
	v0, g0 := tr.V[0], tr.Gamma[0]
	cost := 0.0
	for k := range tr.V {
		cost = math.Max(cost, math.Abs(tr.V[k]-v0)/v0+math.Abs(tr.Gamma[k]-g0))
	}
	return cost
}

type GridSearch struct {
	nx, nz Range
	// Refine reruns the search this many times on a grid shrunk around
	// the best point.
	Refine int
}

func NewGridSearch(nx, nz Range) *GridSearch {
	return &GridSearch{nx: nx, nz: nz}
}

// Search runs the base scenario once per (nx, nz) pair with roll rate
// fixed at zero and returns the best input and its score.
func (g *GridSearch) Search(ctx context.Context, base flight.Scenario, obj Objective) (control.Input, float64, error) {
	nx, nz := g.nx, g.nz
	var best control.Input
	bestScore := math.Inf(1)

	for pass := 0; pass <= g.Refine; pass++ {
		found := false
		for _, x := range nx.Values() {
			for _, z := range nz.Values() {
				if err := ctx.Err(); err != nil {
					return control.Input{}, 0, err
				}

				in := control.Input{Nx: x, Nz: z}
				sc := base
				sc.Profile = control.NewConstant(in)
				sc.Metrics, sc.Observers = nil, nil

				tr, err := flight.Run(ctx, sc)
				if err != nil {
					continue
				}
				if score := obj(tr); score < bestScore {
					best, bestScore, found = in, score, true
				}
			}
		}
		if !found && pass == 0 {
			return control.Input{}, 0, ErrNoCandidate
		}
		nx = shrink(nx, best.Nx)
		nz = shrink(nz, best.Nz)
	}

	return best, bestScore, nil
}

// shrink centers r on c with a span of two grid cells.
func shrink(r Range, c float64) Range {
	if r.Steps <= 1 {
		return r
	}
	h := (r.Max - r.Min) / float64(r.Steps-1)
	return Range{Min: c - h, Max: c + h, Steps: r.Steps}
}

// TrimAround returns ranges bracketing the analytic trim of the model for
// the scenario's initial flight-path and bank angles.
func TrimAround(sc flight.Scenario, halfWidth float64, steps int) (nx, nz Range) {
	gamma, phi := sc.Initial.Gamma0, sc.Initial.Phi0
	nx0 := math.Sin(gamma)
	nz0 := math.Cos(phi) / math.Max(math.Abs(math.Cos(gamma)), physics.MinTurnDenominator)
	return Range{Min: nx0 - halfWidth, Max: nx0 + halfWidth, Steps: steps},
		Range{Min: nz0 - halfWidth, Max: nz0 + halfWidth, Steps: steps}
}
