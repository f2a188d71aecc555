package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/san-kum/pointmass/internal/autopilot"
	"github.com/san-kum/pointmass/internal/config"
	"github.com/san-kum/pointmass/internal/constants"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	onStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88")).Bold(true)
	offStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true)
)

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSPAN\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.0fs\t%s\n", name, p.TFinal-p.TInitial, p.Description)
	}
	return w.Flush()
}

func showConstants(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	set := cfg.Constants()
	if err := set.Physical.Validate(); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	section := func(title string) {
		w.Flush()
		fmt.Println(titleStyle.Render(title))
	}

	p := set.Physical
	section("physical")
	fmt.Fprintf(w, "  g\t%.5f\tm/s²\n", p.G)
	fmt.Fprintf(w, "  deg2rad\t%.10f\t\n", p.Deg2Rad)
	fmt.Fprintf(w, "  nm2m\t%.1f\tm\n", p.NM2M)
	fmt.Fprintf(w, "  kts2ms\t%.6f\t\n", p.Kts2Ms)
	fmt.Fprintf(w, "  ft2m\t%.4f\t\n", p.Ft2M)
	fmt.Fprintf(w, "  fl2m\t%.2f\t\n", p.FL2M)
	fmt.Fprintf(w, "  fpm2ms\t%.6f\t\n", p.FPM2Ms)

	ic := set.Initial
	section("initial conditions")
	fmt.Fprintf(w, "  v0\t%.3f\tm/s (%.0f kt)\n", ic.V0, constants.MsToKnots(ic.V0))
	fmt.Fprintf(w, "  gamma0\t%.3f\tdeg\n", deg(ic.Gamma0))
	fmt.Fprintf(w, "  psi0\t%.3f\tdeg\n", deg(ic.Psi0))
	fmt.Fprintf(w, "  phi0\t%.3f\tdeg\n", deg(ic.Phi0))

	section("wind")
	fmt.Fprintf(w, "  from\t%.0f\tdeg\n", deg(set.Wind.FromHeading))
	fmt.Fprintf(w, "  speed\t%.3f\tm/s\n", set.Wind.Speed)

	lin := set.Linearization
	section("linearization")
	fmt.Fprintf(w, "  altitude\t%.0f\tm\n", set.Position.Z)
	fmt.Fprintf(w, "  k\t%.6f\t1/s\n", lin.K)
	fmt.Fprintf(w, "  ve\t%.3f\tm/s\n", lin.Ve)
	fmt.Fprintf(w, "  u_e\t%.6f, %.6f, %.6f\tnx, nz, p\n", lin.Input[0], lin.Input[1], lin.Input[2])

	section("control design")
	params := set.ControlDesign.Params()
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s\t%.6g\t\n", k, params[k])
	}

	return w.Flush()
}

func autopilotFlag(cmd *cobra.Command, args []string) error {
	store := autopilot.NewStore(dataDir)

	word := "status"
	if len(args) > 0 {
		word = args[0]
	}

	var st autopilot.Status
	if word == "status" {
		loaded, err := store.Load()
		if err != nil {
			return err
		}
		st = loaded
	} else {
		c, err := autopilot.Parse(word)
		if err != nil {
			return err
		}
		st, err = store.Handle(c)
		if err != nil {
			return err
		}
	}

	state := offStyle.Render("OFF")
	if st.Engaged {
		state = onStyle.Render("ON")
	}
	fmt.Printf("autopilot: %s\n", state)
	if !st.ChangedAt.IsZero() {
		fmt.Printf("last: %s at %s\n", st.LastCommand, st.ChangedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
