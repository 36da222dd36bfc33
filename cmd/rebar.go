package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/apexsigns/signcalc/internal/aci"
	"github.com/apexsigns/signcalc/internal/rebar"
)

var (
	rebarType      string
	rebarDiameter  float64
	rebarDepth     float64
	rebarWidth     float64
	rebarLength    float64
	rebarThickness float64
	rebarBar       string
	rebarFc        float64
	rebarFy        float64
	rebarCover     float64
)

var rebarCmd = &cobra.Command{
	Use:   "rebar",
	Short: "Reinforcement schedule and material takeoff (ACI 318-19)",
	Long: `Produce the rebar schedule and concrete quantities for a sign
foundation, with waste factors applied to the order quantities.

Cylindrical foundations (direct_burial, drilled_pier) get a vertical
cage with spiral confinement; spread footings get a bottom mat in both
directions.

Examples:
  # 3 ft diameter pier, 6.5 ft deep
  signcalc rebar --type drilled_pier --diameter 3.0 --depth 6.5

  # Monument pad with #5 bars
  signcalc rebar --type spread_footing --width 4 --length 4 --thickness 3 --bar "#5"`,
	Run: runRebar,
}

func init() {
	rootCmd.AddCommand(rebarCmd)

	rebarCmd.Flags().StringVarP(&rebarType, "type", "t", string(rebar.DirectBurial), "Foundation type: direct_burial, drilled_pier, spread_footing")
	rebarCmd.Flags().Float64Var(&rebarDiameter, "diameter", 0, "Pier diameter (ft)")
	rebarCmd.Flags().Float64Var(&rebarDepth, "depth", 0, "Pier depth (ft)")
	rebarCmd.Flags().Float64Var(&rebarWidth, "width", 0, "Footing width (ft)")
	rebarCmd.Flags().Float64Var(&rebarLength, "length", 0, "Footing length (ft)")
	rebarCmd.Flags().Float64Var(&rebarThickness, "thickness", 0, "Footing thickness (ft)")
	rebarCmd.Flags().StringVarP(&rebarBar, "bar", "b", "", "Bar size #3-#11, default #4")
	rebarCmd.Flags().Float64Var(&rebarFc, "fc", 0, "Concrete strength f'c (ksi), default 3.0")
	rebarCmd.Flags().Float64Var(&rebarFy, "fy", 0, "Rebar yield strength (ksi), default 60")
	rebarCmd.Flags().Float64Var(&rebarCover, "cover", 0, "Concrete cover (in), default 3.0")
}

func runRebar(cmd *cobra.Command, args []string) {
	schedule, err := rebar.Design(rebar.Input{
		Type:        rebar.FoundationType(rebarType),
		DiameterFt:  rebarDiameter,
		DepthFt:     rebarDepth,
		WidthFt:     rebarWidth,
		LengthFt:    rebarLength,
		ThicknessFt: rebarThickness,
		FcKsi:       rebarFc,
		FyKsi:       rebarFy,
		BarSize:     aci.BarSize(rebarBar),
		CoverIn:     rebarCover,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     REINFORCEMENT SCHEDULE - ACI 318-19")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("BAR SCHEDULE:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  MARK\tSIZE\tQTY\tLENGTH\tWEIGHT\tLOCATION\n")
	fmt.Fprintf(w, "  ────\t────\t───\t──────\t──────\t────────\n")
	for _, b := range schedule.VerticalBars {
		fmt.Fprintf(w, "  %s\t%s\t%d\t%.1f ft\t%.0f lbs\t%s\n",
			b.Mark, b.Size, b.Quantity, b.LengthFt, b.WeightLbs(), b.Location)
	}
	for _, b := range schedule.HorizontalBars {
		fmt.Fprintf(w, "  %s\t%s\t%d\t%.1f ft\t%.0f lbs\t%s\n",
			b.Mark, b.Size, b.Quantity, b.LengthFt, b.WeightLbs(), b.Location)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("DEVELOPMENT LENGTH (Section 25.4):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Tension Ld:\t%.1f in\n", schedule.DevelopmentLengthIn)
	fmt.Fprintf(w, "  Factors:\tψt=%.1f ψe=%.1f ψs=%.1f λ=%.1f\n",
		schedule.DevelopmentFactors.PsiT, schedule.DevelopmentFactors.PsiE,
		schedule.DevelopmentFactors.PsiS, schedule.DevelopmentFactors.Lambda)
	w.Flush()
	fmt.Println()

	fmt.Println("MATERIAL TAKEOFF:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Concrete Placed:\t%.2f cu yd (%.1f tons)\n",
		schedule.Concrete.VolumeCuYd, schedule.Concrete.WeightTons)
	fmt.Fprintf(w, "  Concrete to Order:\t%.2f cu yd (%.0f%% waste)\n",
		schedule.ConcreteOrderCuYd, (rebar.ConcreteWasteFactor-1.0)*100.0)
	fmt.Fprintf(w, "  Rebar Weight:\t%.0f lbs (%.3f tons)\n",
		schedule.TotalRebarWeightLbs, schedule.TotalRebarWeightTons)
	fmt.Fprintf(w, "  Rebar to Order:\t%.3f tons (%.0f%% waste)\n",
		schedule.RebarOrderTons, (rebar.RebarWasteFactor-1.0)*100.0)
	w.Flush()
	fmt.Println()

	fmt.Printf("  ╔═════════════════════════════════════════════════╗\n")
	fmt.Printf("  ║  CONCRETE %.2f cu yd / REBAR %.0f lbs      \n",
		schedule.ConcreteOrderCuYd, schedule.TotalRebarWeightLbs)
	fmt.Printf("  ╚═════════════════════════════════════════════════╝\n")
	fmt.Println()

	fmt.Println("CODE REFERENCES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	for _, ref := range schedule.CodeRefs {
		fmt.Printf("  %s\n", ref)
	}
	fmt.Println()
}
