package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/apexsigns/signcalc/internal/asce"
)

var (
	windSpeed      float64
	windExposure   string
	windRisk       string
	windArea       float64
	windSignHeight float64
	windPoleHeight float64
	windKzt        float64
	windGust       float64
	windCf         float64
	windProfile    bool
)

var windCmd = &cobra.Command{
	Use:   "wind",
	Short: "Calculate wind pressure and force on a sign face",
	Long: `Calculate the ASCE 7-22 design wind pressure and total force on a
sign face. Velocity pressure is evaluated at the face centroid and
applied over the full face area.

The calculation follows ASCE 7-22 provisions:
  - Equation 26.10-1: Velocity pressure qz
  - Table 26.10-1:    Exposure coefficient Kz
  - Chapter 29:       Force on other structures (solid signs)

Examples:
  # 10x5 ft cabinet on a 10 ft pole, 115 mph, exposure C
  signcalc wind --speed 115 --area 50 --sign-height 5 --pole-height 10

  # Coastal site with the qz-vs-height profile chart
  signcalc wind -v 130 -e D --area 80 --sign-height 8 --pole-height 12 --profile`,
	Run: runWind,
}

func init() {
	rootCmd.AddCommand(windCmd)

	windCmd.Flags().Float64VarP(&windSpeed, "speed", "v", 0, "Basic wind speed V, 3-second gust (mph) [required]")
	windCmd.Flags().StringVarP(&windExposure, "exposure", "e", "C", "Exposure category (B, C, D)")
	windCmd.Flags().StringVar(&windRisk, "risk", "II", "Risk category (I, II, III, IV)")

	windCmd.Flags().Float64VarP(&windArea, "area", "a", 0, "Sign face area (sq ft) [required]")
	windCmd.Flags().Float64Var(&windSignHeight, "sign-height", 0, "Cabinet height (ft) [required]")
	windCmd.Flags().Float64Var(&windPoleHeight, "pole-height", 0, "Grade to cabinet bottom (ft) [required]")

	windCmd.Flags().Float64Var(&windKzt, "kzt", 1.0, "Topographic factor Kzt")
	windCmd.Flags().Float64Var(&windGust, "gust", asce.DefaultGustFactor, "Gust-effect factor G")
	windCmd.Flags().Float64Var(&windCf, "cf", asce.DefaultForceCoefficient, "Force coefficient Cf")

	windCmd.Flags().BoolVar(&windProfile, "profile", false, "Show ASCII qz-vs-height profile")

	windCmd.MarkFlagRequired("speed")
	windCmd.MarkFlagRequired("area")
	windCmd.MarkFlagRequired("sign-height")
}

func runWind(cmd *cobra.Command, args []string) {
	site := asce.SiteWind{
		SpeedMPH: windSpeed,
		Exposure: asce.ExposureCategory(windExposure),
		Risk:     asce.RiskCategory(windRisk),
		Kzt:      windKzt,
	}

	load, err := asce.ForceOnSign(site, windArea, windSignHeight, windPoleHeight, windGust, windCf)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     WIND LOAD ON SIGN FACE - ASCE 7-22 CHAPTER 29")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Basic Wind Speed (V):\t%.0f mph\n", windSpeed)
	fmt.Fprintf(w, "  Exposure Category:\t%s\n", windExposure)
	fmt.Fprintf(w, "  Risk Category:\t%s\n", windRisk)
	fmt.Fprintf(w, "  Sign Face Area:\t%.1f sq ft\n", windArea)
	fmt.Fprintf(w, "  Cabinet Height:\t%.1f ft\n", windSignHeight)
	fmt.Fprintf(w, "  Pole Height:\t%.1f ft\n", windPoleHeight)
	fmt.Fprintf(w, "  Face Centroid:\t%.1f ft\n", load.CentroidFt)
	w.Flush()
	fmt.Println()

	fmt.Println("VELOCITY PRESSURE (Eq 26.10-1):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Exposure Coefficient (Kz):\t%.3f\n", load.Kz)
	fmt.Fprintf(w, "  Importance Factor (Iw):\t%.2f\n", load.Iw)
	fmt.Fprintf(w, "  Velocity Pressure (qz):\t%.2f psf\n", load.QzPSF)
	w.Flush()
	fmt.Println()

	fmt.Println("DESIGN PRESSURE AND FORCE:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Gust-Effect Factor (G):\t%.2f\n", windGust)
	fmt.Fprintf(w, "  Force Coefficient (Cf):\t%.2f\n", windCf)
	fmt.Fprintf(w, "  Design Pressure (p):\t%.2f psf\n", load.DesignPressurePSF)
	fmt.Fprintf(w, "  Base Moment Arm:\t%.1f ft\n", load.CentroidFt)
	w.Flush()
	fmt.Println()

	fmt.Printf("  ╔═════════════════════════════════════════╗\n")
	fmt.Printf("  ║  WIND FORCE F = %.0f lbs     \n", load.ForceLbs)
	fmt.Printf("  ║  BASE MOMENT M = %.2f kip-ft     \n", load.MomentKipFt)
	fmt.Printf("  ╚═════════════════════════════════════════╝\n")
	fmt.Println()

	if windProfile {
		heights, qz, err := asce.PressureProfile(site, windPoleHeight+windSignHeight)
		if err == nil && len(qz) > 1 {
			fmt.Println("VELOCITY PRESSURE PROFILE:")
			fmt.Println("───────────────────────────────────────────────────────────────")
			fmt.Println(asciigraph.Plot(qz,
				asciigraph.Height(12),
				asciigraph.Width(56),
				asciigraph.Caption(fmt.Sprintf("qz (psf), grade to %.0f ft", heights[len(heights)-1]))))
			fmt.Println()
		}
	}

	fmt.Println("CODE REFERENCES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	for _, ref := range load.CodeRefs {
		fmt.Printf("  %s\n", ref)
	}
	fmt.Println()
}
