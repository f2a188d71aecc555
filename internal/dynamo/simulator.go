package dynamo

import (
	"context"
	"math"
)

// gridSnap absorbs floating point noise in (tFinal-tInitial)/dt so that
// spans that are whole multiples of dt produce exactly that many samples.
const gridSnap = 1e-9

// MaxGridSize bounds the number of samples a single run may allocate.
const MaxGridSize = math.MaxInt32

type Simulator struct {
	dyn        System
	integrator Integrator
	profile    Profile
	metrics    []Metric
	observers  []Observer
}

func New(dyn System, integrator Integrator, profile Profile) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		profile:    profile,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// GridSize returns the number of samples of the half-open grid
// [tInitial, tFinal) with spacing dt. It is zero for empty spans and for
// spans that would need more than MaxGridSize samples.
func GridSize(tInitial, tFinal, dt float64) int {
	if dt <= 0 || !(tFinal > tInitial) {
		return 0
	}
	ratio := (tFinal - tInitial) / dt
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio > MaxGridSize {
		return 0
	}
	if r := math.Round(ratio); math.Abs(ratio-r) <= gridSnap*math.Max(1, r) {
		return int(r)
	}
	return int(math.Ceil(ratio))
}

// Run integrates x0 over the grid described by cfg. The state at index k+1
// is computed from the state and profile input at index k only.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if len(x0) != s.dyn.StateDim() {
		return nil, &SimulationError{Step: 0, Time: cfg.TInitial, State: x0.Clone(), Wrapped: ErrDimensionMismatch}
	}

	n := GridSize(cfg.TInitial, cfg.TFinal, cfg.Dt)
	result := &Result{
		Times:    make([]float64, n),
		Series:   make([][]float64, len(x0)),
		Controls: make([]Control, n),
		Metrics:  make(map[string]float64),
	}
	for i := range result.Series {
		result.Series[i] = make([]float64, n)
	}
	for k := range result.Times {
		result.Times[k] = cfg.TInitial + float64(k)*cfg.Dt
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	for i, v := range x {
		result.Series[i][0] = v
	}

	for k := 0; k < n; k++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		t := result.Times[k]
		u := s.profile.At(k, t)
		if len(u) != s.dyn.ControlDim() {
			return nil, &SimulationError{Step: k, Time: t, State: x.Clone(), Wrapped: ErrDimensionMismatch}
		}
		result.Controls[k] = append(Control(nil), u...)

		for _, m := range s.metrics {
			m.Observe(x, u, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, u, t)
		}

		if k == n-1 {
			break
		}

		next := s.integrator.Step(s.dyn, x, u, t, cfg.Dt)
		if cfg.ValidateState && !next.IsValid() {
			return nil, &SimulationError{Step: k + 1, Time: result.Times[k+1], State: next, Wrapped: ErrInvalidState}
		}

		x = next
		for i, v := range x {
			result.Series[i][k+1] = v
		}
		result.StepsTaken++
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// ValidateConfig rejects time spans that would produce an empty or
// oversized grid.
func ValidateConfig(cfg Config) error {
	switch {
	case math.IsNaN(cfg.Dt) || math.IsInf(cfg.Dt, 0) || cfg.Dt <= 0:
		return &TimeSpanError{Param: "dt", Value: cfg.Dt}
	case math.IsNaN(cfg.TInitial) || math.IsInf(cfg.TInitial, 0):
		return &TimeSpanError{Param: "t_initial", Value: cfg.TInitial}
	case math.IsNaN(cfg.TFinal) || math.IsInf(cfg.TFinal, 0) || cfg.TFinal <= cfg.TInitial:
		return &TimeSpanError{Param: "t_final", Value: cfg.TFinal}
	}
	if GridSize(cfg.TInitial, cfg.TFinal, cfg.Dt) <= 0 {
		return &TimeSpanError{Param: "dt", Value: cfg.Dt}
	}
	return nil
}

// RunWithCallback steps the system without recording a trajectory. The
// callback sees every sample and stops the run by returning false.
func (s *Simulator) RunWithCallback(ctx context.Context, x0 State, cfg Config, callback func(State, Control, float64) bool) error {
	if err := ValidateConfig(cfg); err != nil {
		return err
	}
	if len(x0) != s.dyn.StateDim() {
		return ErrDimensionMismatch
	}

	n := GridSize(cfg.TInitial, cfg.TFinal, cfg.Dt)
	x := x0.Clone()
	for k := 0; k < n; k++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		t := cfg.TInitial + float64(k)*cfg.Dt
		u := s.profile.At(k, t)
		if !callback(x, u, t) || k == n-1 {
			return nil
		}

		x = s.integrator.Step(s.dyn, x, u, t, cfg.Dt)
		if cfg.ValidateState && !x.IsValid() {
			return &SimulationError{Step: k + 1, Time: t + cfg.Dt, State: x, Wrapped: ErrInvalidState}
		}
	}

	return nil
}
