// Package automation runs scripted batches and parameter sweeps of flight
// scenarios.
package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pointmass/internal/config"
	"github.com/san-kum/pointmass/internal/flight"
	"github.com/san-kum/pointmass/internal/metrics"
	"github.com/san-kum/pointmass/internal/physics"
	"github.com/san-kum/pointmass/internal/storage"
)

// Batch is a scripted sequence of runs.
type Batch struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step starts from a preset (or the defaults) and applies Config on top.
// Only the fields present in Config are overridden.
type Step struct {
	Preset string    `yaml:"preset"`
	SaveAs string    `yaml:"save_as"`
	Config yaml.Node `yaml:"config"`
}

func (s Step) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	if !s.Config.IsZero() {
		var ov controlOverride
		if err := s.Config.Decode(&ov); err != nil {
			return nil, fmt.Errorf("decode overrides: %w", err)
		}
		// a constant input replaces the preset's schedule unless the step
		// brings its own segments
		if ov.replacesSchedule() && len(cfg.Control.Segments) > 0 {
			slog.Debug("control override replaces segment schedule",
				"preset", s.Preset, "segments", len(cfg.Control.Segments))
			cfg.Control.Segments = nil
		}
		if err := s.Config.Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode overrides: %w", err)
		}
	}
	return cfg, nil
}

type controlOverride struct {
	Control *struct {
		Nx       *float64               `yaml:"nx"`
		Nz       *float64               `yaml:"nz"`
		PDegS    *float64               `yaml:"p_deg_s"`
		Segments []config.SegmentConfig `yaml:"segments"`
	} `yaml:"control"`
}

func (o controlOverride) replacesSchedule() bool {
	c := o.Control
	if c == nil || len(c.Segments) > 0 {
		return false
	}
	return c.Nx != nil || c.Nz != nil || c.PDegS != nil
}

func (s Step) name(i int) string {
	switch {
	case s.SaveAs != "":
		return s.SaveAs
	case s.Preset != "":
		return s.Preset
	}
	return fmt.Sprintf("step%d", i+1)
}

func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var batch Batch
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(batch.Steps) == 0 {
		return nil, fmt.Errorf("%s: batch has no steps", path)
	}
	return &batch, nil
}

// StepResult is one completed step. RunID is empty when no store is used.
type StepResult struct {
	Name       string
	RunID      string
	Trajectory *flight.Trajectory
}

// RunBatch executes every step in order and stops at the first failure,
// returning the steps completed so far. A nil store skips saving.
func RunBatch(ctx context.Context, batch *Batch, st *storage.Store) ([]StepResult, error) {
	results := make([]StepResult, 0, len(batch.Steps))

	for i, step := range batch.Steps {
		name := step.name(i)
		slog.Info("running batch step", "batch", batch.Name, "step", i+1, "of", len(batch.Steps), "name", name)

		cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		tr, err := runConfig(ctx, cfg)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		res := StepResult{Name: name, Trajectory: tr}
		if st != nil {
			res.RunID, err = st.Save(RunInfo(name, cfg), tr.Result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, res)
	}

	return results, nil
}

func runConfig(ctx context.Context, cfg *config.Config) (*flight.Trajectory, error) {
	sc, err := cfg.Scenario()
	if err != nil {
		return nil, err
	}
	sc.Metrics = metrics.Defaults(sc.Physical.G, sc.Initial.V0)
	return flight.Run(ctx, sc)
}

// RunInfo describes a run of cfg for the store.
func RunInfo(name string, cfg *config.Config) storage.RunInfo {
	p := cfg.Physical()
	return storage.RunInfo{
		Name:         name,
		Integrator:   cfg.Integrator,
		TInitial:     cfg.TInitial,
		TFinal:       cfg.TFinal,
		Dt:           cfg.Dt,
		Gravity:      p.G,
		InitialState: cfg.InitialConditions().State(),
		StateNames:   physics.StateNames,
		ControlNames: physics.ControlNames,
	}
}
