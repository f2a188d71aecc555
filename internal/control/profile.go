package control

import (
	"fmt"
	"sort"

	"github.com/san-kum/pointmass/internal/dynamo"
)

// Input is one control sample: normalized along-path and vertical load
// factors and roll rate in rad/s.
type Input struct {
	Nx float64 `yaml:"nx" json:"nx"`
	Nz float64 `yaml:"nz" json:"nz"`
	P  float64 `yaml:"p" json:"p"`
}

func (in Input) Control() dynamo.Control {
	return dynamo.Control{in.Nx, in.Nz, in.P}
}

// Trim is the steady, level, wings-stable input.
var Trim = Input{Nx: 0, Nz: 1, P: 0}

type Constant struct {
	in Input
}

func NewConstant(in Input) *Constant {
	return &Constant{in: in}
}

func LevelFlight() *Constant {
	return NewConstant(Trim)
}

func (c *Constant) At(step int, t float64) dynamo.Control {
	return c.in.Control()
}

// Sequence applies inputs[k] at step k and holds the last entry past the
// end.
type Sequence []Input

func (s Sequence) At(step int, t float64) dynamo.Control {
	if len(s) == 0 {
		return Trim.Control()
	}
	if step >= len(s) {
		step = len(s) - 1
	}
	if step < 0 {
		step = 0
	}
	return s[step].Control()
}

// Segment applies Input from Start (s) until the next segment begins.
type Segment struct {
	Start float64 `yaml:"start" json:"start"`
	Input `yaml:",inline"`
}

type Schedule struct {
	segments []Segment
}

// NewSchedule sorts segments by start time. Times before the first segment
// use the first segment's input.
func NewSchedule(segments []Segment) (*Schedule, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("schedule needs at least one segment")
	}
	sorted := append([]Segment(nil), segments...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Start == sorted[i-1].Start {
			return nil, fmt.Errorf("duplicate segment start %g", sorted[i].Start)
		}
	}
	return &Schedule{segments: sorted}, nil
}

func (s *Schedule) At(step int, t float64) dynamo.Control {
	i := sort.Search(len(s.segments), func(i int) bool { return s.segments[i].Start > t }) - 1
	if i < 0 {
		i = 0
	}
	return s.segments[i].Control()
}

func (s *Schedule) Segments() []Segment {
	return append([]Segment(nil), s.segments...)
}

type Func func(step int, t float64) dynamo.Control

func (f Func) At(step int, t float64) dynamo.Control {
	return f(step, t)
}
