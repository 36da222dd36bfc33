package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/apexsigns/signcalc/internal/solver"
)

var (
	doubleSpacing      float64
	doubleDistribution string
	doubleBraced       bool
)

var solveDoubleCmd = &cobra.Command{
	Use:   "double",
	Short: "Design a sign carried on two poles",
	Long: `Design a two-pole sign structure: the wind load splits between the
poles, each pole and its foundation is designed for its share, and the
spacing-dependent checks run between them (lateral stability,
differential settlement).

The poles are symmetric, so the per-pole design covers either one.

Examples:
  # 20x6 ft cabinet on two poles 12 ft apart
  signcalc solve double --width 20 --sign-height 6 --height 15 \
    --wind-speed 115 --spacing 12

  # Wide spacing with bracing provided between the poles
  signcalc solve double --width 30 --sign-height 8 --height 12 \
    --wind-speed 105 --spacing 26 --braced`,
	Run: runSolveDouble,
}

func init() {
	solveCmd.AddCommand(solveDoubleCmd)

	solveDoubleCmd.Flags().Float64Var(&doubleSpacing, "spacing", 0, "Pole spacing on centers (ft) [required]")
	solveDoubleCmd.Flags().StringVar(&doubleDistribution, "distribution", string(solver.DistributionEqual), "Load split: equal or proportional")
	solveDoubleCmd.Flags().BoolVar(&doubleBraced, "braced", false, "Lateral bracing provided between the poles")

	solveDoubleCmd.MarkFlagRequired("spacing")
}

func runSolveDouble(cmd *cobra.Command, args []string) {
	single, err := buildSingleConfig()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	result, err := solver.SolveDouble(solver.DoubleConfig{
		SingleConfig:    single,
		SpacingFt:       doubleSpacing,
		Distribution:    solver.Distribution(doubleDistribution),
		BracingProvided: doubleBraced,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if solveJSON {
		printJSON(result)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     DOUBLE POLE SIGN DESIGN - %s\n", result.Config.Application)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("LOAD DISTRIBUTION:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Total Wind Force:\t%.0f lbs / %.2f kip-ft\n",
		result.TotalWind.ForceLbs, result.TotalWind.MomentKipFt)
	fmt.Fprintf(w, "  Per Pole:\t%.0f lbs / %.2f kip-ft (%s)\n",
		result.ForcePerPoleLbs, result.MomentPerPoleKipFt, result.Config.Distribution)
	fmt.Fprintf(w, "  Total Dead Load:\t%.0f lbs\n", result.TotalDeadLbs)
	fmt.Fprintf(w, "  Pole Spacing:\t%.1f ft (%.2fx pole height)\n",
		result.Config.SpacingFt, result.SpacingToHeightRatio)
	w.Flush()
	fmt.Println()

	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     PER POLE DESIGN (symmetric pair)")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	printDesignResult(result.PerPole)

	fmt.Println("TWO-POLE CHECKS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Lateral Stability:\t%s\n", passMark(result.Checks.LateralStability))
	fmt.Fprintf(w, "  Differential Settlement:\t%s\t(limit %.1f in, spacing %.1f ft)\n",
		passMark(result.Checks.Settlement), result.SettlementLimitIn, result.Config.SpacingFt)
	w.Flush()
	fmt.Println()

	for _, warning := range result.Warnings {
		fmt.Printf("  ⚠ %s\n", warning)
	}
	if len(result.Warnings) > 0 {
		fmt.Println()
	}

	renderDiagrams(result.PerPole, 2, result.Config.SpacingFt)
	printVerdict(result.Approved, doubleLabel(result), result.CriticalFailureMode,
		result.ContentHash, result.CodeRefs)
}

// doubleLabel summarizes the approved pair for the verdict box.
func doubleLabel(res *solver.DoubleResult) string {
	return fmt.Sprintf("2 x %s at %.0f ft", res.PerPole.Section.Designation, res.Config.SpacingFt)
}
