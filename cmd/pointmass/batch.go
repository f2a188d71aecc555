package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/pointmass/internal/automation"
	"github.com/san-kum/pointmass/internal/physics"
	"github.com/san-kum/pointmass/internal/storage"
)

func runBatch(cmd *cobra.Command, args []string) error {
	batch, err := automation.LoadBatch(args[0])
	if err != nil {
		return err
	}

	var st *storage.Store
	if !noSave {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	results, err := automation.RunBatch(context.Background(), batch, st)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tRUN_ID\tSAMPLES\tFINAL_V\tFINAL_PSI")
	for _, r := range results {
		final := r.Trajectory.Result.Final()
		runID := r.RunID
		if runID == "" {
			runID = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.3f\t%.3f\n",
			r.Name, runID, r.Trajectory.Len(), final[physics.IdxV], deg(final[physics.IdxPsi]))
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(context.Background(), &automation.Sweep{
		Base:     cfg,
		Param:    sweepParam,
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
	})
	if err != nil {
		return err
	}

	fmt.Printf("sweeping %s over %s\n\n", sweepParam, name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tV\tGAMMA\tPSI\tPHI\tENVELOPE\tENERGY_DRIFT\n", sweepParam)
	for _, r := range results {
		fmt.Fprintf(w, "%.4g\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3e\n",
			r.ParamValue,
			r.Final[physics.IdxV],
			deg(r.Final[physics.IdxGamma]),
			deg(r.Final[physics.IdxPsi]),
			deg(r.Final[physics.IdxPhi]),
			r.Metrics["envelope"],
			r.Metrics["energy_drift"],
		)
	}
	return w.Flush()
}
