package dynamo

import (
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

type Control []float64

type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

type Integrator interface {
	Step(dyn System, x State, u Control, t float64, dt float64) State
}

// Profile supplies the control input applied at grid index step (time t).
type Profile interface {
	At(step int, t float64) Control
}

type Metric interface {
	Name() string
	Observe(x State, u Control, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, u Control, t float64)
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

const DefaultDt = 0.01

type Config struct {
	TInitial      float64
	TFinal        float64
	Dt            float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		TInitial:      0,
		TFinal:        10.0,
		Dt:            DefaultDt,
		ValidateState: true,
	}
}

// Result holds the time grid and one series per state component. All
// slices have the same length and are not modified after Run returns.
type Result struct {
	Times      []float64
	Series     [][]float64
	Controls   []Control
	Metrics    map[string]float64
	StepsTaken int
}

func (r *Result) Len() int {
	return len(r.Times)
}

// At returns a copy of the state at grid index k.
func (r *Result) At(k int) State {
	x := make(State, len(r.Series))
	for i, s := range r.Series {
		x[i] = s[k]
	}
	return x
}

func (r *Result) Final() State {
	if r.Len() == 0 {
		return nil
	}
	return r.At(r.Len() - 1)
}

// States returns the trajectory as row vectors.
func (r *Result) States() []State {
	rows := make([]State, r.Len())
	for k := range rows {
		rows[k] = r.At(k)
	}
	return rows
}
