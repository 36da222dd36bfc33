package cmd

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/apexsigns/signcalc/internal/member"
)

var (
	checkDesignation     string
	checkMoment          float64
	checkShear           float64
	checkWindForce       float64
	checkCentroid        float64
	checkHeight          float64
	checkDeflectionLimit float64
)

var sectionsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check one section against design demands (AISC 360-22 ASD)",
	Long: `Check a named catalog section as a vertical cantilever pole under the
given moment, shear, and wind force.

Runs the bending, shear, combined interaction, and deflection checks and
reports the governing one.

Example:
  signcalc sections check --designation HSS8X8X3/8 --moment 42.5 --shear 1.9 \
    --wind-force 1900 --centroid 17.5 --height 15`,
	Run: runSectionsCheck,
}

func init() {
	sectionsCmd.AddCommand(sectionsCheckCmd)

	sectionsCheckCmd.Flags().StringVarP(&checkDesignation, "designation", "d", "", "Catalog designation, e.g. HSS8X8X3/8 [required]")
	sectionsCheckCmd.Flags().Float64VarP(&checkMoment, "moment", "m", 0, "Design moment at base (kip-ft) [required]")
	sectionsCheckCmd.Flags().Float64VarP(&checkShear, "shear", "s", 0, "Design shear at base (kips)")
	sectionsCheckCmd.Flags().Float64Var(&checkWindForce, "wind-force", 0, "Service wind force for deflection (lbs)")
	sectionsCheckCmd.Flags().Float64Var(&checkCentroid, "centroid", 0, "Height of wind force above grade (ft)")
	sectionsCheckCmd.Flags().Float64Var(&checkHeight, "height", 0, "Pole height above grade (ft) [required]")
	sectionsCheckCmd.Flags().Float64Var(&checkDeflectionLimit, "deflection-limit", member.DefaultLimits.DeflectionRatio, "Required deflection ratio L/x")

	sectionsCheckCmd.MarkFlagRequired("designation")
	sectionsCheckCmd.MarkFlagRequired("moment")
	sectionsCheckCmd.MarkFlagRequired("height")
}

func runSectionsCheck(cmd *cobra.Command, args []string) {
	cat, err := loadCatalog()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	section, ok := cat.FindByDesignation(checkDesignation)
	if !ok {
		fmt.Printf("Error: section %q not in catalog (try: signcalc sections list)\n", checkDesignation)
		return
	}

	loads := member.Loads{
		MomentKipFt:  checkMoment,
		ShearKips:    checkShear,
		WindForceLbs: checkWindForce,
		CentroidFt:   checkCentroid,
	}
	result, err := member.Check(section, loads, checkHeight, member.Limits{DeflectionRatio: checkDeflectionLimit})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     MEMBER CHECK - %s (AISC 360-22 ASD)\n", section.Designation)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("SECTION PROPERTIES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Family:\t%s\n", section.Family)
	fmt.Fprintf(w, "  Area A:\t%.2f in²\n", section.AreaIn2)
	fmt.Fprintf(w, "  Section Modulus Sx:\t%.1f in³\n", section.SxIn3)
	fmt.Fprintf(w, "  Moment of Inertia Ix:\t%.1f in⁴\n", section.IxIn4)
	fmt.Fprintf(w, "  Yield Strength Fy:\t%.0f ksi\n", section.FyKsi)
	fmt.Fprintf(w, "  Weight:\t%.2f plf\n", section.WeightPLF)
	w.Flush()
	fmt.Println()

	fmt.Println("STRESS CHECKS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Bending fb:\t%.2f ksi\tFb = %.2f ksi\tratio %.3f %s\n",
		result.BendingKsi, result.AllowableBendingKsi, result.BendingRatio, passMark(result.PassesBending))
	fmt.Fprintf(w, "  Shear fv:\t%.2f ksi\tFv = %.2f ksi\tratio %.3f %s\n",
		result.ShearKsi, result.AllowableShearKsi, result.ShearRatio, passMark(result.PassesShear))
	fmt.Fprintf(w, "  Combined:\t\t\tratio %.3f %s\n",
		result.CombinedRatio, passMark(result.PassesCombined))
	w.Flush()
	fmt.Println()

	fmt.Println("SERVICEABILITY:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Tip Deflection:\t%.3f in\n", result.DeflectionIn)
	if math.IsInf(result.DeflectionRatio, 1) {
		fmt.Fprintf(w, "  Deflection Ratio:\tno lateral load\tlimit L/%.0f %s\n",
			result.DeflectionLimit, passMark(result.PassesDeflection))
	} else {
		fmt.Fprintf(w, "  Deflection Ratio:\tL/%.0f\tlimit L/%.0f %s\n",
			result.DeflectionRatio, result.DeflectionLimit, passMark(result.PassesDeflection))
	}
	fmt.Fprintf(w, "  Slenderness L/r:\t%.1f\n", result.SlendernessRatio)
	w.Flush()
	fmt.Println()

	for _, warning := range result.Warnings {
		fmt.Printf("  ⚠ %s\n", warning)
	}
	if len(result.Warnings) > 0 {
		fmt.Println()
	}

	name, severity := result.WorstCheck()
	if result.Passes {
		fmt.Printf("  ╔═════════════════════════════════════════════════╗\n")
		fmt.Printf("  ║  ✓ SECTION ADEQUATE - worst ratio %.3f      \n", severity)
		fmt.Printf("  ╚═════════════════════════════════════════════════╝\n")
	} else {
		fmt.Printf("  ╔═════════════════════════════════════════════════╗\n")
		fmt.Printf("  ║  ⚠ NOT ADEQUATE - %s governs at %.2f      \n", name, severity)
		fmt.Printf("  ╚═════════════════════════════════════════════════╝\n")
	}
	fmt.Println()
	fmt.Printf("  %s\n", result.Message)
	fmt.Println()
}
