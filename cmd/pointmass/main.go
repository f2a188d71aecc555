package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	dataDir  string
	logLevel string

	// scenario flags, shared by run, compare, bench and constants
	t0         float64
	tf         float64
	dt         float64
	v0Kts      float64
	gamma0Deg  float64
	psi0Deg    float64
	phi0Deg    float64
	altitudeFt float64
	nx         float64
	nz         float64
	pDeg       float64
	integrator string
	configFile string
	preset     string

	noSave bool

	plotWidth  int
	plotHeight int

	svgOut    string
	svgSeries string
	svgWidth  int
	svgHeight int

	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int

	trimSteps  int
	trimRefine int
	trimWidth  float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "pointmass",
		Short:         "point-mass aircraft flight simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(logLevel)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pointmass", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export ground track or a state series to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOut, "output", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().StringVar(&svgSeries, "series", "", "state to plot against time instead of the ground track")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 600, "image height")

	viewCmd := &cobra.Command{
		Use:   "view [run_id]",
		Short: "replay a run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  viewRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "compare integrators on the same scenario",
		RunE:  compareIntegrators,
	}
	addScenarioFlags(compareCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the model",
		Args:  cobra.NoArgs,
		RunE:  benchModel,
	}
	benchCmd.Flags().StringVar(&integrator, "integrator", "euler", "integrator")

	batchCmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "run a scripted batch of scenarios",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one scenario parameter",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "phi_deg", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 60, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 7, "number of values")

	trimCmd := &cobra.Command{
		Use:   "trim",
		Short: "search nx and nz that hold airspeed and flight-path angle",
		Args:  cobra.NoArgs,
		RunE:  searchTrim,
	}
	addScenarioFlags(trimCmd)
	trimCmd.Flags().IntVar(&trimSteps, "steps", 7, "grid points per axis")
	trimCmd.Flags().IntVar(&trimRefine, "refine", 6, "refinement passes")
	trimCmd.Flags().Float64Var(&trimWidth, "width", 0.2, "half-width of the initial search box")

	constantsCmd := &cobra.Command{
		Use:   "constants",
		Short: "print physical constants and derived design values",
		Args:  cobra.NoArgs,
		RunE:  showConstants,
	}
	addScenarioFlags(constantsCmd)

	autopilotCmd := &cobra.Command{
		Use:       "autopilot [on|off|toggle|status]",
		Short:     "set or show the autopilot flag",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"on", "off", "toggle", "status"},
		RunE:      autopilotFlag,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportJSONCmd, exportSVGCmd, viewCmd, presetsCmd, compareCmd, benchCmd, batchCmd, sweepCmd, trimCmd, constantsCmd, autopilotCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&t0, "t0", 0, "initial time (s)")
	f.Float64Var(&tf, "tf", 10, "final time (s), excluded")
	f.Float64Var(&dt, "dt", 0.01, "timestep (s)")
	f.Float64Var(&v0Kts, "v0-kts", 130, "initial airspeed (kt)")
	f.Float64Var(&gamma0Deg, "gamma0-deg", 0, "initial flight-path angle (deg)")
	f.Float64Var(&psi0Deg, "psi0-deg", 0, "initial heading (deg)")
	f.Float64Var(&phi0Deg, "phi0-deg", 0, "initial bank angle (deg)")
	f.Float64Var(&altitudeFt, "altitude-ft", 0, "altitude for the linearization point (ft)")
	f.Float64Var(&nx, "nx", 0, "along-path load factor")
	f.Float64Var(&nz, "nz", 1, "normal load factor")
	f.Float64Var(&pDeg, "p-deg", 0, "roll rate (deg/s)")
	f.StringVar(&integrator, "integrator", "euler", "integrator")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler), nil
}
