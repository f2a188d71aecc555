package optim

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/pointmass/internal/constants"
	"github.com/san-kum/pointmass/internal/flight"
)

func TestRangeValues(t *testing.T) {
	vals := Range{Min: 0, Max: 1, Steps: 5}.Values()
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i := range want {
		if math.Abs(vals[i]-want[i]) > 1e-12 {
			t.Errorf("index %d: expected %f, got %f", i, want[i], vals[i])
		}
	}

	if v := (Range{Min: 1, Max: 3, Steps: 1}).Values(); len(v) != 1 || v[0] != 2 {
		t.Errorf("single step should give the midpoint, got %v", v)
	}
}

func shortScenario(ic constants.InitialConditions) flight.Scenario {
	sc := flight.DefaultScenario()
	sc.Initial = ic
	sc.TFinal = 2
	return sc
}

func TestGridSearchFindsLevelTrim(t *testing.T) {
	sc := shortScenario(constants.InitialConditions{V0: 60})
	gs := NewGridSearch(Range{Min: -0.5, Max: 0.5, Steps: 5}, Range{Min: 0.5, Max: 1.5, Steps: 5})

	best, score, err := gs.Search(context.Background(), sc, SteadyState)
	if err != nil {
		t.Fatal(err)
	}
	if best.Nx != 0 || best.Nz != 1 {
		t.Errorf("expected trim (0, 1), got (%f, %f)", best.Nx, best.Nz)
	}
	if score != 0 {
		t.Errorf("expected zero cost at trim, got %g", score)
	}
}

func TestGridSearchRefinesClimbTrim(t *testing.T) {
	gamma := 5 * math.Pi / 180
	sc := shortScenario(constants.InitialConditions{V0: 60, Gamma0: gamma})
	nx, nz := TrimAround(sc, 0.05, 5)

	gs := NewGridSearch(Range{Min: nx.Min - 0.013, Max: nx.Max - 0.013, Steps: 5}, nz)
	gs.Refine = 4

	best, _, err := gs.Search(context.Background(), sc, SteadyState)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(best.Nx-math.Sin(gamma)) > 2e-3 {
		t.Errorf("expected nx near %f, got %f", math.Sin(gamma), best.Nx)
	}
	if math.Abs(best.Nz-1/math.Cos(gamma)) > 2e-3 {
		t.Errorf("expected nz near %f, got %f", 1/math.Cos(gamma), best.Nz)
	}
}

func TestGridSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gs := NewGridSearch(Range{Steps: 1}, Range{Min: 1, Max: 1, Steps: 1})
	if _, _, err := gs.Search(ctx, shortScenario(constants.InitialConditions{V0: 60}), SteadyState); err == nil {
		t.Error("expected context error")
	}
}

func TestGridSearchNoCandidate(t *testing.T) {
	sc := shortScenario(constants.InitialConditions{V0: 60})
	sc.Dt = -1
	gs := NewGridSearch(Range{Steps: 1}, Range{Min: 1, Max: 1, Steps: 1})
	if _, _, err := gs.Search(context.Background(), sc, SteadyState); err != ErrNoCandidate {
		t.Errorf("expected ErrNoCandidate, got %v", err)
	}
}
