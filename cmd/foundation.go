package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/apexsigns/signcalc/internal/foundation"
	"github.com/apexsigns/signcalc/internal/ibc"
)

var (
	foundationMoment      float64
	foundationDead        float64
	foundationDiameter    float64
	foundationSoil        float64
	foundationMinDepth    float64
	foundationCalibration float64
	foundationSpread      bool
	foundationSignArea    float64
	foundationHeight      float64
	foundationWidth       float64
	foundationThickness   float64
)

var foundationCmd = &cobra.Command{
	Use:   "foundation",
	Short: "Size a drilled pier or spread footing (IBC 2024 Section 1807)",
	Long: `Size the foundation for a pole sign under an overturning moment.

The default mode iterates IBC 2024 Equation 18-1 for nonconstrained pole
embedment and checks overturning stability and soil bearing. With
--spread a square pad is sized instead, the monument-style footing.

Examples:
  # 3 ft diameter pier under 42.5 kip-ft
  signcalc foundation --moment 42.5 --dead 1250 --diameter 3.0

  # Stiff soil and a contractor minimum depth
  signcalc foundation --moment 42.5 --diameter 3.0 --soil 4000 --min-depth 5

  # Monument pad sized from the sign geometry
  signcalc foundation --moment 18.2 --dead 2200 --spread --sign-area 60 --height 6`,
	Run: runFoundation,
}

func init() {
	rootCmd.AddCommand(foundationCmd)

	foundationCmd.Flags().Float64VarP(&foundationMoment, "moment", "m", 0, "Overturning moment at grade (kip-ft) [required]")
	foundationCmd.Flags().Float64VarP(&foundationDead, "dead", "d", 0, "Dead load of pole, sign and hardware (lbs)")
	foundationCmd.Flags().Float64Var(&foundationDiameter, "diameter", 3.0, "Pier diameter (ft)")
	foundationCmd.Flags().Float64Var(&foundationSoil, "soil", 0, "Allowable soil bearing (psf), 0 = configured default")
	foundationCmd.Flags().Float64Var(&foundationMinDepth, "min-depth", 0, "Minimum embedment floor (ft)")
	foundationCmd.Flags().Float64Var(&foundationCalibration, "calibration", 1.0, "Initial depth estimate scale factor")
	foundationCmd.Flags().BoolVar(&foundationSpread, "spread", false, "Size a square spread footing instead of a pier")
	foundationCmd.Flags().Float64Var(&foundationSignArea, "sign-area", 0, "Sign face area for pad sizing (sq ft)")
	foundationCmd.Flags().Float64Var(&foundationHeight, "height", 0, "Pole height for pad sizing (ft)")
	foundationCmd.Flags().Float64Var(&foundationWidth, "width", 0, "Pad width override (ft)")
	foundationCmd.Flags().Float64Var(&foundationThickness, "thickness", 0, "Pad thickness override (ft)")

	foundationCmd.MarkFlagRequired("moment")
}

// resolveSoil prefers the flag, then the configured site default.
func resolveSoil(flagValue float64) float64 {
	if flagValue == 0 && cfg != nil {
		return cfg.SoilBearingPSF
	}
	return flagValue
}

func runFoundation(cmd *cobra.Command, args []string) {
	if foundationSpread {
		runSpreadFooting()
		return
	}

	result, err := foundation.Design(foundation.Input{
		MomentKipFt:    foundationMoment,
		DiameterFt:     foundationDiameter,
		SoilBearingPSF: resolveSoil(foundationSoil),
		DeadLoadLbs:    foundationDead,
		CalibrationK:   foundationCalibration,
		MinDepthFt:     foundationMinDepth,
	}, foundation.DefaultConfig())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     DRILLED PIER FOUNDATION - IBC 2024 SECTION 1807")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Overturning Moment:\t%.2f kip-ft\n", foundationMoment)
	fmt.Fprintf(w, "  Dead Load:\t%.0f lbs\n", foundationDead)
	fmt.Fprintf(w, "  Pier Diameter:\t%.2f ft\n", result.DiameterFt)
	fmt.Fprintf(w, "  Soil Bearing:\t%.0f psf\n", resolveSoil(foundationSoil))
	w.Flush()
	fmt.Println()

	fmt.Println("EMBEDMENT (Eq 18-1, nonconstrained):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Required Depth:\t%.2f ft\n", result.DepthFt)
	fmt.Fprintf(w, "  Iterations to Converge:\t%d\n", result.Iterations)
	fmt.Fprintf(w, "  Concrete Volume:\t%.2f cu yd\n", result.ConcreteVolumeCuYd)
	w.Flush()
	fmt.Println()

	fmt.Println("STABILITY CHECKS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Resisting Moment:\t%.2f kip-ft\n", result.ResistingMomentKipFt)
	fmt.Fprintf(w, "  Overturning SF:\t%.2f\trequired %.1f %s\n",
		result.SafetyFactor, ibc.OverturningSafetyFactorMin, passMark(result.PassesOverturning))
	fmt.Fprintf(w, "  Max Soil Pressure:\t%.0f psf\tallowable %.0f psf %s\n",
		result.MaxSoilPressurePSF, resolveSoil(foundationSoil), passMark(result.PassesSoilBearing))
	w.Flush()
	fmt.Println()

	for _, warning := range result.Warnings {
		fmt.Printf("  ⚠ %s\n", warning)
	}
	if len(result.Warnings) > 0 {
		fmt.Println()
	}

	if result.EngineeringReview {
		fmt.Println("  ╔═════════════════════════════════════════════════╗")
		fmt.Println("  ║  ⚠ ENGINEERING REVIEW REQUIRED                  ║")
		fmt.Println("  ╚═════════════════════════════════════════════════╝")
		fmt.Println()
	}

	if result.Passes {
		fmt.Printf("  ╔═════════════════════════════════════════════════╗\n")
		fmt.Printf("  ║  ✓ EMBEDMENT DEPTH = %.2f ft          \n", result.DepthFt)
		fmt.Printf("  ╚═════════════════════════════════════════════════╝\n")
	} else {
		fmt.Println("  ╔═════════════════════════════════════════════════╗")
		fmt.Println("  ║  ⚠ FOUNDATION NOT ADEQUATE                      ║")
		fmt.Println("  ╚═════════════════════════════════════════════════╝")
	}
	fmt.Println()

	fmt.Println("CODE REFERENCES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	for _, ref := range result.CodeRefs {
		fmt.Printf("  %s\n", ref)
	}
	fmt.Println()
}

func runSpreadFooting() {
	result, err := foundation.SpreadFooting(foundation.SpreadInput{
		MomentKipFt:    foundationMoment,
		DeadLoadLbs:    foundationDead,
		SignAreaSqFt:   foundationSignArea,
		PoleHeightFt:   foundationHeight,
		SoilBearingPSF: resolveSoil(foundationSoil),
		WidthFt:        foundationWidth,
		ThicknessFt:    foundationThickness,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     SPREAD FOOTING - IBC 2024 SECTION 1807")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("PAD SIZING:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Pad:\t%.2f x %.2f x %.2f ft\n", result.WidthFt, result.LengthFt, result.ThicknessFt)
	fmt.Fprintf(w, "  Footing Weight:\t%.0f lbs\n", result.FootingWeightLbs)
	fmt.Fprintf(w, "  Total Dead Load:\t%.0f lbs\n", result.TotalDeadLoadLbs)
	fmt.Fprintf(w, "  Concrete Volume:\t%.2f cu yd\n", result.ConcreteVolumeCuYd)
	w.Flush()
	fmt.Println()

	fmt.Println("STABILITY CHECKS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Overturning Moment:\t%.2f kip-ft\n", result.OverturningMomentKipFt)
	fmt.Fprintf(w, "  Resisting Moment:\t%.2f kip-ft\n", result.ResistingMomentKipFt)
	fmt.Fprintf(w, "  Overturning SF:\t%.2f\trequired %.1f %s\n",
		result.SafetyFactor, ibc.OverturningSafetyFactorMin, passMark(result.PassesOverturning))
	fmt.Fprintf(w, "  Max Soil Pressure:\t%.0f psf\tallowable %.0f psf %s\n",
		result.MaxSoilPressurePSF, result.SoilBearingPSF, passMark(result.PassesSoilBearing))
	w.Flush()
	fmt.Println()

	for _, warning := range result.Warnings {
		fmt.Printf("  ⚠ %s\n", warning)
	}
	if len(result.Warnings) > 0 {
		fmt.Println()
	}

	if result.Passes {
		fmt.Printf("  ╔═════════════════════════════════════════════════╗\n")
		fmt.Printf("  ║  ✓ PAD %.1f x %.1f x %.1f ft          \n", result.WidthFt, result.LengthFt, result.ThicknessFt)
		fmt.Printf("  ╚═════════════════════════════════════════════════╝\n")
	} else {
		fmt.Println("  ╔═════════════════════════════════════════════════╗")
		fmt.Println("  ║  ⚠ FOOTING NOT ADEQUATE                         ║")
		fmt.Println("  ╚═════════════════════════════════════════════════╝")
	}
	fmt.Println()

	fmt.Println("CODE REFERENCES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	for _, ref := range result.CodeRefs {
		fmt.Printf("  %s\n", ref)
	}
	fmt.Println()
}
