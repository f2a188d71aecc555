package dynamo

import (
	"context"
	"errors"
	"math"
	"testing"
)

type decay struct{}

func (d *decay) Derive(x State, u Control, t float64) State {
	return State{-x[0] + u[0]}
}

func (d *decay) StateDim() int   { return 1 }
func (d *decay) ControlDim() int { return 1 }

type euler struct{}

func (e *euler) Step(dyn System, x State, u Control, t float64, dt float64) State {
	dx := dyn.Derive(x, u, t)
	return State{x[0] + dt*dx[0]}
}

type zero struct{}

func (z zero) At(step int, t float64) Control { return Control{0} }

type profileFunc func(step int, t float64) Control

func (f profileFunc) At(step int, t float64) Control { return f(step, t) }

type stepLog struct {
	steps []int
}

func (s *stepLog) At(step int, t float64) Control {
	s.steps = append(s.steps, step)
	return Control{0}
}

func TestGridSize(t *testing.T) {
	tests := []struct {
		name       string
		t0, tf, dt float64
		expected   int
	}{
		{"exact multiple", 0, 10, 0.01, 1000},
		{"decimal noise", 0, 0.3, 0.1, 3},
		{"ceil remainder", 0, 1, 0.3, 4},
		{"offset", 1, 2, 0.1, 10},
		{"empty", 1, 1, 0.1, 0},
		{"reversed", 2, 1, 0.1, 0},
		{"zero dt", 0, 1, 0, 0},
		{"negative dt", 0, 1, -0.1, 0},
		{"nan", 0, math.NaN(), 0.1, 0},
		{"too many samples", 0, 1e20, 1, 0},
		{"infinite ratio", 0, 1e300, 1e-300, 0},
		{"one past the cap", 0, MaxGridSize + 1, 1, 0},
		{"at the cap", 0, MaxGridSize, 1, MaxGridSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GridSize(tt.t0, tt.tf, tt.dt); got != tt.expected {
				t.Errorf("GridSize(%g, %g, %g) = %d, want %d", tt.t0, tt.tf, tt.dt, got, tt.expected)
			}
		})
	}
}

func TestSimulatorRun(t *testing.T) {
	sim := New(&decay{}, &euler{}, zero{})

	cfg := Config{TInitial: 0, TFinal: 1.0, Dt: 0.1, ValidateState: true}
	result, err := sim.Run(context.Background(), State{1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Len() != 10 {
		t.Errorf("expected 10 samples, got %d", result.Len())
	}
	if len(result.Controls) != 10 {
		t.Errorf("expected 10 controls, got %d", len(result.Controls))
	}
	if result.StepsTaken != 9 {
		t.Errorf("expected 9 steps, got %d", result.StepsTaken)
	}

	// x_k = 0.9^k under Euler
	final := result.Final()[0]
	if math.Abs(final-math.Pow(0.9, 9)) > 1e-12 {
		t.Errorf("expected final state %.6f, got %.6f", math.Pow(0.9, 9), final)
	}
}

func TestSimulatorDoesNotAliasInitialState(t *testing.T) {
	sim := New(&decay{}, &euler{}, zero{})
	x0 := State{1.0}
	result, err := sim.Run(context.Background(), x0, DefaultConfig())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	x0[0] = 5
	if result.Series[0][0] != 1.0 {
		t.Error("result aliases caller's initial state")
	}
}

func TestSimulatorAsksProfileEveryStep(t *testing.T) {
	log := &stepLog{}
	sim := New(&decay{}, &euler{}, log)

	cfg := Config{TInitial: 0, TFinal: 0.05, Dt: 0.01}
	if _, err := sim.Run(context.Background(), State{1.0}, cfg); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(log.steps) != 5 {
		t.Fatalf("expected 5 profile calls, got %d", len(log.steps))
	}
	for i, k := range log.steps {
		if k != i {
			t.Errorf("call %d asked for step %d", i, k)
		}
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	sim := New(&decay{}, &euler{}, zero{})

	tests := []struct {
		name  string
		cfg   Config
		param string
	}{
		{"zero dt", Config{Dt: 0, TFinal: 1.0}, "dt"},
		{"negative dt", Config{Dt: -0.1, TFinal: 1.0}, "dt"},
		{"inf dt", Config{Dt: math.Inf(1), TFinal: 1.0}, "dt"},
		{"empty span", Config{Dt: 0.1, TInitial: 1, TFinal: 1}, "t_final"},
		{"reversed span", Config{Dt: 0.1, TInitial: 1, TFinal: 0}, "t_final"},
		{"nan start", Config{Dt: 0.1, TInitial: math.NaN(), TFinal: 1}, "t_initial"},
		{"oversized span", Config{Dt: 1, TFinal: 1e20}, "dt"},
		{"infinite ratio", Config{Dt: 1e-300, TFinal: 1e300}, "dt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := sim.Run(context.Background(), State{1.0}, tt.cfg)
			if result != nil {
				t.Error("expected no result")
			}
			var tse *TimeSpanError
			if !errors.As(err, &tse) {
				t.Fatalf("expected TimeSpanError, got %v", err)
			}
			if tse.Param != tt.param {
				t.Errorf("expected param %s, got %s", tt.param, tse.Param)
			}
			if !errors.Is(err, ErrInvalidTimeSpan) {
				t.Error("expected ErrInvalidTimeSpan")
			}
		})
	}
}

func TestSimulatorDimensionMismatch(t *testing.T) {
	sim := New(&decay{}, &euler{}, zero{})
	_, err := sim.Run(context.Background(), State{1.0, 2.0}, DefaultConfig())
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}

	wide := profileFunc(func(step int, t float64) Control { return Control{0, 0} })
	sim = New(&decay{}, &euler{}, wide)
	_, err = sim.Run(context.Background(), State{1.0}, DefaultConfig())
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch for control width, got %v", err)
	}
}

func TestSimulatorInvalidState(t *testing.T) {
	blowup := profileFunc(func(step int, t float64) Control { return Control{math.Inf(1)} })
	sim := New(&decay{}, &euler{}, blowup)

	_, err := sim.Run(context.Background(), State{1.0}, DefaultConfig())
	var se *SimulationError
	if !errors.As(err, &se) {
		t.Fatalf("expected SimulationError, got %v", err)
	}
	if se.Step != 1 {
		t.Errorf("expected failure at step 1, got %d", se.Step)
	}
	if !errors.Is(err, ErrInvalidState) {
		t.Error("expected ErrInvalidState")
	}
}

func TestSimulatorCanceled(t *testing.T) {
	sim := New(&decay{}, &euler{}, zero{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := sim.Run(ctx, State{1.0}, DefaultConfig()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

type testMetric struct {
	count int
	sum   float64
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(x State, u Control, time float64) {
	t.count++
	t.sum += x[0]
}
func (t *testMetric) Value() float64 { return float64(t.count) }
func (t *testMetric) Reset()         { t.count, t.sum = 0, 0 }

type countObserver struct{ n int }

func (c *countObserver) OnStep(x State, u Control, t float64) { c.n++ }

func TestSimulatorMetricsAndObservers(t *testing.T) {
	sim := New(&decay{}, &euler{}, zero{})
	m := &testMetric{}
	obs := &countObserver{}
	sim.AddMetric(m)
	sim.AddObserver(obs)

	cfg := Config{TFinal: 1, Dt: 0.1}
	result, err := sim.Run(context.Background(), State{1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Metrics["test"] != 10 {
		t.Errorf("expected metric to see 10 samples, got %f", result.Metrics["test"])
	}
	if obs.n != 10 {
		t.Errorf("expected observer to see 10 samples, got %d", obs.n)
	}

	// a second run starts from a reset metric
	result, _ = sim.Run(context.Background(), State{1.0}, cfg)
	if result.Metrics["test"] != 10 {
		t.Errorf("expected reset between runs, got %f", result.Metrics["test"])
	}
}

func TestRunWithCallback(t *testing.T) {
	sim := New(&decay{}, &euler{}, zero{})

	var times []float64
	err := sim.RunWithCallback(context.Background(), State{1.0}, Config{TFinal: 1, Dt: 0.1}, func(x State, u Control, t float64) bool {
		times = append(times, t)
		return len(times) < 4
	})
	if err != nil {
		t.Fatalf("callback run failed: %v", err)
	}
	if len(times) != 4 {
		t.Errorf("expected early stop after 4 samples, got %d", len(times))
	}

	if err := sim.RunWithCallback(context.Background(), State{1.0}, Config{TFinal: 1}, func(State, Control, float64) bool { return true }); err == nil {
		t.Error("expected error for zero dt")
	}
}

func TestRunWithCallbackStopsAtLastSample(t *testing.T) {
	// only the input at the last sample diverges; its step is never taken
	last := profileFunc(func(step int, t float64) Control {
		if step == 9 {
			return Control{math.Inf(1)}
		}
		return Control{0}
	})
	sim := New(&decay{}, &euler{}, last)

	samples := 0
	err := sim.RunWithCallback(context.Background(), State{1.0}, Config{TFinal: 1, Dt: 0.1, ValidateState: true}, func(State, Control, float64) bool {
		samples++
		return true
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if samples != 10 {
		t.Errorf("expected 10 samples, got %d", samples)
	}
}
