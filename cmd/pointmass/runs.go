package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/pointmass/internal/constants"
	"github.com/san-kum/pointmass/internal/export"
	"github.com/san-kum/pointmass/internal/physics"
	"github.com/san-kum/pointmass/internal/storage"
	"github.com/san-kum/pointmass/internal/viz"
)

func deg(rad float64) float64 { return constants.RadToDeg(rad) }

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tSPAN\tDT\tINTEG\tSAMPLES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t[%.1f, %.1f)s\t%.4fs\t%s\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.TInitial,
			run.TFinal,
			run.Dt,
			run.Integrator,
			run.Samples,
		)
	}

	return w.Flush()
}

var captions = map[string]string{
	"v":     "airspeed (m/s)",
	"gamma": "flight-path angle (deg)",
	"psi":   "heading (deg)",
	"phi":   "bank angle (deg)",
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	result, err := st.LoadResult(runID)
	if err != nil {
		return err
	}

	if result.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Name)
	fmt.Printf("samples: %d\n\n", result.Len())

	for i, series := range result.Series {
		name := fmt.Sprintf("x%d", i)
		if i < len(meta.StateNames) {
			name = meta.StateNames[i]
		}
		caption, ok := captions[name]
		if !ok {
			caption = name
		}

		data := series
		if name != physics.StateNames[physics.IdxV] {
			data = make([]float64, len(series))
			for k, v := range series {
				data[k] = deg(v)
			}
		}
		if flat(data) {
			fmt.Printf("%s: constant %.4f\n\n", caption, data[0])
			continue
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func flat(data []float64) bool {
	for _, v := range data[1:] {
		if math.Abs(v-data[0]) > 1e-12 {
			return false
		}
	}
	return true
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	result, err := st.LoadResult(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, result)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	result, err := st.LoadResult(runID)
	if err != nil {
		return err
	}

	var points []export.Point
	equalAspect := true
	if svgSeries == "" {
		points = export.GroundTrackPoints(viz.GroundTrack(result))
	} else {
		idx := slices.Index(meta.StateNames, svgSeries)
		if idx < 0 || idx >= len(result.Series) {
			return fmt.Errorf("unknown state %q (available: %v)", svgSeries, meta.StateNames)
		}
		points = export.SeriesPoints(result.Times, result.Series[idx])
		equalAspect = false
	}

	out := io.Writer(os.Stdout)
	if svgOut != "" {
		f, err := os.Create(svgOut)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	return export.PolylineSVG(out, points, svgWidth, svgHeight, "#00ff88", equalAspect)
}

func viewRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	result, err := st.LoadResult(runID)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(meta.Name, result, meta.StateNames), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
