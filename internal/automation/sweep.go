package automation

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/brunoga/deep"

	"github.com/san-kum/pointmass/internal/config"
	"github.com/san-kum/pointmass/internal/dynamo"
)

var sweepParams = map[string]func(*config.Config, float64){
	"airspeed_kts": func(c *config.Config, v float64) { c.InitState.AirspeedKts = v },
	"gamma_deg":    func(c *config.Config, v float64) { c.InitState.GammaDeg = v },
	"psi_deg":      func(c *config.Config, v float64) { c.InitState.PsiDeg = v },
	"phi_deg":      func(c *config.Config, v float64) { c.InitState.PhiDeg = v },
	"nx":           func(c *config.Config, v float64) { c.Control.Nx = v },
	"nz":           func(c *config.Config, v float64) { c.Control.Nz = v },
	"p_deg_s":      func(c *config.Config, v float64) { c.Control.PDegS = v },
	"dt":           func(c *config.Config, v float64) { c.Dt = v },
}

func SweepParams() []string {
	names := make([]string, 0, len(sweepParams))
	for name := range sweepParams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sweep runs Base once per value of Param, evenly spaced over
// [Min, Max]. Control parameters replace any segment schedule.
type Sweep struct {
	Base     *config.Config
	Param    string
	Min, Max float64
	NumSteps int
}

type SweepResult struct {
	ParamValue float64
	Final      dynamo.State
	Metrics    map[string]float64
}

func (s *Sweep) Values() []float64 {
	if s.NumSteps <= 1 {
		return []float64{s.Min}
	}
	vals := make([]float64, s.NumSteps)
	h := (s.Max - s.Min) / float64(s.NumSteps-1)
	for i := range vals {
		vals[i] = s.Min + float64(i)*h
	}
	return vals
}

func RunSweep(ctx context.Context, s *Sweep) ([]SweepResult, error) {
	set, ok := sweepParams[s.Param]
	if !ok {
		return nil, fmt.Errorf("unknown sweep parameter %q (available: %v)", s.Param, SweepParams())
	}
	base := s.Base
	if base == nil {
		base = config.DefaultConfig()
	}

	values := s.Values()
	results := make([]SweepResult, 0, len(values))
	for i, v := range values {
		cfg := deep.MustCopy(*base)
		set(&cfg, v)
		switch s.Param {
		case "nx", "nz", "p_deg_s":
			cfg.Control.Segments = nil
		}

		tr, err := runConfig(ctx, &cfg)
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", s.Param, v, err)
		}
		slog.Debug("sweep point", "n", i+1, "of", len(values), s.Param, v)

		results = append(results, SweepResult{
			ParamValue: v,
			Final:      tr.Result.Final(),
			Metrics:    tr.Result.Metrics,
		})
	}
	return results, nil
}
