package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/pointmass/internal/dynamo"
	"github.com/san-kum/pointmass/internal/flight"
	"github.com/san-kum/pointmass/internal/integrators"
	"github.com/san-kum/pointmass/internal/optim"
	"github.com/san-kum/pointmass/internal/physics"
)

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = integrators.List()
	}

	type outcome struct {
		name    string
		tr      *flight.Trajectory
		elapsed time.Duration
	}
	var runs []outcome

	for _, intName := range names {
		cfg.Integrator = intName
		sc, err := cfg.Scenario()
		if err != nil {
			return err
		}

		start := time.Now()
		tr, err := flight.Run(context.Background(), sc)
		if err != nil {
			slog.Warn("integrator failed", "integrator", intName, "err", err)
			continue
		}
		runs = append(runs, outcome{name: intName, tr: tr, elapsed: time.Since(start)})
	}
	if len(runs) == 0 {
		return fmt.Errorf("no integrator completed")
	}

	fmt.Printf("comparing integrators for %s (dt=%.4f, span=[%.1f, %.1f)s)\n\n", name, cfg.Dt, cfg.TInitial, cfg.TFinal)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "INTEG\tV\tGAMMA\tPSI\tPHI\tMAX_DEV_%s\tTIME_MS\n", runs[0].name)

	ref := runs[0].tr.Result
	for _, r := range runs {
		final := r.tr.Result.Final()
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.6f\t%.6f\t%.3e\t%.2f\n",
			r.name,
			final[physics.IdxV],
			deg(final[physics.IdxGamma]),
			deg(final[physics.IdxPsi]),
			deg(final[physics.IdxPhi]),
			maxDeviation(ref, r.tr.Result),
			float64(r.elapsed.Microseconds())/1000,
		)
	}

	return w.Flush()
}

// maxDeviation is the largest absolute difference between two runs over
// all states and samples.
func maxDeviation(a, b *dynamo.Result) float64 {
	dev := 0.0
	for i := range a.Series {
		for k := range a.Series[i] {
			dev = math.Max(dev, math.Abs(a.Series[i][k]-b.Series[i][k]))
		}
	}
	return dev
}

func benchModel(cmd *cobra.Command, args []string) error {
	integ, err := integrators.Get(integrator)
	if err != nil {
		return err
	}

	sc := flight.DefaultScenario()
	dyn := physics.NewAircraft(sc.Physical)
	s := dynamo.New(dyn, integ, sc.Profile)

	spans := []float64{10.0, 60.0, 600.0}
	dts := []float64{0.001, 0.01, 0.1}

	fmt.Printf("benchmarking %s\n\n", integrator)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SPAN\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, span := range spans {
		for _, dt := range dts {
			cfg := dynamo.Config{TFinal: span, Dt: dt, ValidateState: true}

			steps := 0
			start := time.Now()
			err := s.RunWithCallback(context.Background(), sc.Initial.State(), cfg, func(dynamo.State, dynamo.Control, float64) bool {
				steps++
				return true
			})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%.0fs\t%.4fs\t%d\t%v\t%.0f\n",
				span, dt, steps, elapsed, float64(steps)/elapsed.Seconds())
		}
	}

	return w.Flush()
}

func searchTrim(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := cfg.Scenario()
	if err != nil {
		return err
	}

	nxRange, nzRange := optim.TrimAround(sc, trimWidth, trimSteps)
	gs := optim.NewGridSearch(nxRange, nzRange)
	gs.Refine = trimRefine

	slog.Info("searching trim", "scenario", name, "steps", trimSteps, "refine", trimRefine)
	start := time.Now()
	best, score, err := gs.Search(context.Background(), sc, optim.SteadyState)
	if err != nil {
		return err
	}

	fmt.Printf("trim for v0=%.2f m/s gamma0=%.2f° phi0=%.2f° (%v)\n",
		sc.Initial.V0, deg(sc.Initial.Gamma0), deg(sc.Initial.Phi0), time.Since(start))
	fmt.Printf("  nx: %.6f\n", best.Nx)
	fmt.Printf("  nz: %.6f\n", best.Nz)
	fmt.Printf("  cost: %.3e\n", score)
	return nil
}
