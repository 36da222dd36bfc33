package cmd

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/apexsigns/signcalc/internal/catalog"
	"github.com/apexsigns/signcalc/internal/member"
	"github.com/apexsigns/signcalc/internal/selector"
)

var (
	selectMoment          float64
	selectShear           float64
	selectWindForce       float64
	selectCentroid        float64
	selectHeight          float64
	selectFamily          string
	selectSortBy          string
	selectMaxDepth        float64
	selectDeflectionLimit float64
	selectWorkers         int
	selectTop             int
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Select the lightest adequate pole section from the catalog",
	Long: `Search the section catalog for poles that pass every AISC 360-22
check under the given demands, sorted lightest first.

Infeasibility is explained, never silent: when nothing passes, the
nearest failing candidate and its governing check are reported so the
estimator knows what to change.

Examples:
  # Any family, lightest first
  signcalc select --moment 42.5 --shear 1.9 --wind-force 1900 \
    --centroid 17.5 --height 15

  # Square HSS only, limited to 10 in deep
  signcalc select --moment 42.5 --height 15 --family HSS --max-depth 10`,
	Run: runSelect,
}

func init() {
	rootCmd.AddCommand(selectCmd)

	selectCmd.Flags().Float64VarP(&selectMoment, "moment", "m", 0, "Governing moment at base (kip-ft) [required]")
	selectCmd.Flags().Float64VarP(&selectShear, "shear", "s", 0, "Governing shear at base (kips)")
	selectCmd.Flags().Float64Var(&selectWindForce, "wind-force", 0, "Service wind force for deflection (lbs)")
	selectCmd.Flags().Float64Var(&selectCentroid, "centroid", 0, "Height of wind force above grade (ft)")
	selectCmd.Flags().Float64Var(&selectHeight, "height", 0, "Pole height above grade (ft) [required]")
	selectCmd.Flags().StringVarP(&selectFamily, "family", "f", "", "Restrict to one family (HSS, Pipe, W, Aluminum)")
	selectCmd.Flags().StringVar(&selectSortBy, "sort", "weight", "Order feasible sections by: weight, sx, depth")
	selectCmd.Flags().Float64Var(&selectMaxDepth, "max-depth", 0, "Maximum outside depth (in)")
	selectCmd.Flags().Float64Var(&selectDeflectionLimit, "deflection-limit", member.DefaultLimits.DeflectionRatio, "Required deflection ratio L/x")
	selectCmd.Flags().IntVar(&selectWorkers, "workers", selector.DefaultWorkers, "Parallel check workers")
	selectCmd.Flags().IntVar(&selectTop, "top", 10, "Show at most this many feasible sections")

	selectCmd.MarkFlagRequired("moment")
	selectCmd.MarkFlagRequired("height")
}

func runSelect(cmd *cobra.Command, args []string) {
	cat, err := loadCatalog()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	family := catalog.Family(selectFamily)
	if selectFamily != "" && !family.Valid() {
		fmt.Printf("Error: unknown family %q (HSS, Pipe, W, Aluminum)\n", selectFamily)
		return
	}

	selection, err := selector.Select(cat, selector.Request{
		MomentKipFt:  selectMoment,
		ShearKips:    selectShear,
		WindForceLbs: selectWindForce,
		CentroidFt:   selectCentroid,
		HeightFt:     selectHeight,
		Family:       family,
		SortBy:       selector.SortKey(selectSortBy),
		MaxDepthIn:   selectMaxDepth,
		Limits:       member.Limits{DeflectionRatio: selectDeflectionLimit},
		Workers:      selectWorkers,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     SECTION SELECTION - AISC 360-22 ASD")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("DESIGN DEMANDS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Moment:\t%.2f kip-ft\n", selectMoment)
	fmt.Fprintf(w, "  Shear:\t%.2f kips\n", selectShear)
	fmt.Fprintf(w, "  Wind Force:\t%.0f lbs at %.2f ft\n", selectWindForce, selectCentroid)
	fmt.Fprintf(w, "  Pole Height:\t%.2f ft\n", selectHeight)
	fmt.Fprintf(w, "  Deflection Limit:\tL/%.0f\n", selectDeflectionLimit)
	if selectFamily != "" {
		fmt.Fprintf(w, "  Family:\t%s\n", selectFamily)
	}
	w.Flush()
	fmt.Println()

	if selection.MaterialLockViolation != "" {
		fmt.Println("  ╔═════════════════════════════════════════════════╗")
		fmt.Println("  ║  ⚠ MATERIAL LOCK                                ║")
		fmt.Println("  ╚═════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Printf("  %s\n", selection.MaterialLockViolation)
		fmt.Println()
		return
	}

	fmt.Printf("  Evaluated %d sections (%d excluded by modulus prefilter)\n",
		selection.Evaluated, selection.Prefiltered)
	fmt.Println()

	if !selection.HasFeasible() {
		fmt.Println("  ╔═════════════════════════════════════════════════╗")
		fmt.Println("  ║  ⚠ NO FEASIBLE SECTION                          ║")
		fmt.Println("  ╚═════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Printf("  %s\n", selection.Message)
		if n := selection.Nearest; n != nil {
			fmt.Println()
			fmt.Println("NEAREST MISS:")
			fmt.Println("───────────────────────────────────────────────────────────────")
			w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "  Section:\t%s (%.2f plf)\n", n.Section.Designation, n.Section.WeightPLF)
			fmt.Fprintf(w, "  Failing Check:\t%s at %.2f\n", n.FailingCheck, n.Severity)
			fmt.Fprintf(w, "  Bending Ratio:\t%.3f\n", n.Check.BendingRatio)
			fmt.Fprintf(w, "  Shear Ratio:\t%.3f\n", n.Check.ShearRatio)
			fmt.Fprintf(w, "  Combined Ratio:\t%.3f\n", n.Check.CombinedRatio)
			w.Flush()
		}
		fmt.Println()
		return
	}

	fmt.Println("FEASIBLE SECTIONS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  DESIGNATION\tWT (plf)\tBENDING\tSHEAR\tCOMBINED\tDEFLECTION\n")
	fmt.Fprintf(w, "  ───────────\t────────\t───────\t─────\t────────\t──────────\n")
	shown := selection.Feasible
	if selectTop > 0 && len(shown) > selectTop {
		shown = shown[:selectTop]
	}
	for _, c := range shown {
		fmt.Fprintf(w, "  %s\t%.2f\t%.3f\t%.3f\t%.3f\t%s\n",
			c.Section.Designation, c.Section.WeightPLF,
			c.Check.BendingRatio, c.Check.ShearRatio, c.Check.CombinedRatio, deflectionCell(c.Check))
	}
	w.Flush()
	if len(shown) < len(selection.Feasible) {
		fmt.Printf("  ... and %d more\n", len(selection.Feasible)-len(shown))
	}
	fmt.Println()

	best := selection.Feasible[0]
	fmt.Printf("  ╔═════════════════════════════════════════════════╗\n")
	fmt.Printf("  ║  ✓ SELECTED %s (%.2f plf)      \n", best.Section.Designation, best.Section.WeightPLF)
	fmt.Printf("  ╚═════════════════════════════════════════════════╝\n")
	fmt.Println()
	fmt.Printf("  %s\n", selection.Message)
	fmt.Println()
}

// deflectionCell formats the achieved L/x, which is unbounded with no
// lateral load.
func deflectionCell(c *member.CheckResult) string {
	if math.IsInf(c.DeflectionRatio, 1) {
		return "n/a"
	}
	return fmt.Sprintf("L/%.0f", c.DeflectionRatio)
}
