package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/pointmass/internal/automation"
	"github.com/san-kum/pointmass/internal/config"
	"github.com/san-kum/pointmass/internal/flight"
	"github.com/san-kum/pointmass/internal/metrics"
	"github.com/san-kum/pointmass/internal/storage"
)

// resolveConfig applies, in order: defaults, preset, config file, then
// any flag set explicitly on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	name := "custom"

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg, name = p, preset
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if preset == "" {
			name = "config"
		}
	}

	flags := cmd.Flags()
	if flags.Changed("t0") {
		cfg.TInitial = t0
	}
	if flags.Changed("tf") {
		cfg.TFinal = tf
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("v0-kts") {
		cfg.InitState.AirspeedKts = v0Kts
	}
	if flags.Changed("gamma0-deg") {
		cfg.InitState.GammaDeg = gamma0Deg
	}
	if flags.Changed("psi0-deg") {
		cfg.InitState.PsiDeg = psi0Deg
	}
	if flags.Changed("phi0-deg") {
		cfg.InitState.PhiDeg = phi0Deg
	}
	if flags.Changed("altitude-ft") {
		cfg.InitState.AltitudeFt = altitudeFt
	}

	// an explicit control input replaces any segment schedule
	if flags.Changed("nx") || flags.Changed("nz") || flags.Changed("p-deg") {
		if len(cfg.Control.Segments) > 0 {
			slog.Debug("control flags override segment schedule", "segments", len(cfg.Control.Segments))
			cfg.Control.Segments = nil
		}
		if flags.Changed("nx") {
			cfg.Control.Nx = nx
		}
		if flags.Changed("nz") {
			cfg.Control.Nz = nz
		}
		if flags.Changed("p-deg") {
			cfg.Control.PDegS = pDeg
		}
	}

	return cfg, name, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sc, err := cfg.Scenario()
	if err != nil {
		return err
	}
	sc.Metrics = metrics.Defaults(sc.Physical.G, sc.Initial.V0)

	slog.Info("running simulation",
		"scenario", name,
		"integrator", cfg.Integrator,
		"t0", cfg.TInitial,
		"tf", cfg.TFinal,
		"dt", cfg.Dt)
	start := time.Now()

	tr, err := flight.Run(context.Background(), sc)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	slog.Debug("simulation complete", "samples", tr.Len(), "elapsed", elapsed)

	fmt.Printf("completed in %v\n", elapsed)
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(automation.RunInfo(name, cfg), tr.Result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	last := tr.Len() - 1
	fmt.Printf("samples: %d\n", tr.Len())
	fmt.Printf("final: t=%.2fs v=%.2f m/s gamma=%.3f° psi=%.3f° phi=%.3f°\n",
		tr.Time[last], tr.V[last], deg(tr.Gamma[last]), deg(tr.Psi[last]), deg(tr.Phi[last]))

	printMetrics(os.Stdout, tr.Result.Metrics)
	return nil
}

func printMetrics(w io.Writer, m map[string]float64) {
	if len(m) == 0 {
		return
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "\nmetrics:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %.6f\n", name, m[name])
	}
}
