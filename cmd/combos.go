package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/apexsigns/signcalc/internal/ibc"
)

var (
	combosDead     float64
	combosLive     float64
	combosRoofLive float64
	combosSnow     float64
	combosWind     float64
)

var combosCmd = &cobra.Command{
	Use:   "combos",
	Short: "Evaluate IBC 2024 ASD load combinations",
	Long: `Evaluate the IBC 2024 Section 1605.2.1 basic allowable stress design
load combinations for a set of service-level demands and report the
governing case.

All seven combinations are evaluated and retained; LC7 (0.6D + W)
carries the reduced dead load for the uplift check and can govern
foundations even when LC6 governs bending.

Demands are unit-agnostic: enter moments to combine moments, forces
to combine forces.

Examples:
  # Wind-governed pylon base moment
  signcalc combos --dead 0.5 --wind 15.6

  # Snow on a cantilever arm
  signcalc combos --dead 0.3 --snow 0.4 --wind 15.5`,
	Run: runCombos,
}

func init() {
	rootCmd.AddCommand(combosCmd)

	combosCmd.Flags().Float64VarP(&combosDead, "dead", "d", 0, "Dead load demand (D)")
	combosCmd.Flags().Float64VarP(&combosLive, "live", "l", 0, "Live load demand (L)")
	combosCmd.Flags().Float64Var(&combosRoofLive, "roof-live", 0, "Roof live load demand (Lr)")
	combosCmd.Flags().Float64VarP(&combosSnow, "snow", "s", 0, "Snow load demand (S)")
	combosCmd.Flags().Float64VarP(&combosWind, "wind", "w", 0, "Wind load demand (W)")
}

func runCombos(cmd *cobra.Command, args []string) {
	demands := ibc.Demands{
		Dead:     combosDead,
		Live:     combosLive,
		RoofLive: combosRoofLive,
		Snow:     combosSnow,
		Wind:     combosWind,
	}
	eval := ibc.Evaluate(demands)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     ASD LOAD COMBINATIONS - IBC 2024 SECTION 1605.2.1")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT DEMANDS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Dead (D):\t%.3f\n", demands.Dead)
	fmt.Fprintf(w, "  Live (L):\t%.3f\n", demands.Live)
	fmt.Fprintf(w, "  Roof Live (Lr):\t%.3f\n", demands.RoofLive)
	fmt.Fprintf(w, "  Snow (S):\t%.3f\n", demands.Snow)
	fmt.Fprintf(w, "  Wind (W):\t%.3f\n", demands.Wind)
	w.Flush()
	fmt.Println()

	fmt.Println("COMBINATIONS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, r := range eval.Results {
		mark := ""
		if r.Governs {
			mark = " ◄ governs"
		}
		fmt.Fprintf(w, "  %s:\t%s\t%.3f%s\n", r.ID, r.Description, r.Demand, mark)
	}
	w.Flush()
	fmt.Println()

	fmt.Printf("  ╔═════════════════════════════════════════╗\n")
	fmt.Printf("  ║  GOVERNING %s = %.3f     \n", eval.GoverningID, eval.MaxDemand)
	fmt.Printf("  ╚═════════════════════════════════════════╝\n")
	fmt.Println()

	fmt.Println("UPLIFT CHECK (LC7, 0.6D + W):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	fmt.Printf("  Net uplift demand: %.3f\n", ibc.UpliftDemand(demands))
	fmt.Println()
}
