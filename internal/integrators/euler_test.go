package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/pointmass/internal/constants"
	"github.com/san-kum/pointmass/internal/dynamo"
	"github.com/san-kum/pointmass/internal/physics"
)

func TestEulerSingleStep(t *testing.T) {
	ac := physics.NewAircraft(constants.DefaultPhysical())
	x := dynamo.State{60, 0.1, 0.2, 0.3}
	u := dynamo.Control{0.2, 1.1, 0.05}
	dt := 0.01

	next := NewEuler().Step(ac, x, u, 0, dt)
	dx := ac.Derive(x, u, 0)
	for i := range x {
		if next[i] != x[i]+dx[i]*dt {
			t.Errorf("component %d: expected %f, got %f", i, x[i]+dx[i]*dt, next[i])
		}
	}
}

func TestEulerDoesNotMutateInput(t *testing.T) {
	ac := physics.NewAircraft(constants.DefaultPhysical())
	x := dynamo.State{60, 0.1, 0.2, 0.3}
	orig := x.Clone()

	NewEuler().Step(ac, x, dynamo.Control{1, 2, 3}, 0, 0.1)
	for i := range x {
		if x[i] != orig[i] {
			t.Fatalf("input state modified at %d", i)
		}
	}
}

func TestEulerFirstOrder(t *testing.T) {
	dyn := &harmonic{}
	errAt := func(dt float64) float64 {
		x := dynamo.State{1.0, 0.0}
		steps := int(math.Round(1 / dt))
		for i := 0; i < steps; i++ {
			x = NewEuler().Step(dyn, x, nil, float64(i)*dt, dt)
		}
		return x.Sub(dynamo.State{math.Cos(1), -math.Sin(1)}).Norm()
	}

	ratio := errAt(0.01) / errAt(0.005)
	if math.Abs(ratio-2) > 0.1 {
		t.Errorf("expected error ratio ~2 when halving dt, got %f", ratio)
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range []string{"euler", "rk4"} {
		if _, err := Get(name); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	if _, err := Get("verlet"); err == nil {
		t.Error("expected error for unknown integrator")
	}
	if got := List(); len(got) != 2 || got[0] != "euler" {
		t.Errorf("unexpected list %v", got)
	}
}
