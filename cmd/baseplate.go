package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/apexsigns/signcalc/internal/aisc"
	"github.com/apexsigns/signcalc/internal/baseplate"
)

var (
	baseplateTension     float64
	baseplateShear       float64
	baseplateMoment      float64
	baseplateWidth       float64
	baseplateLength      float64
	baseplateThickness   float64
	baseplateFy          float64
	baseplateGrade       string
	baseplateEcc         float64
	baseplateWeldSize    float64
	baseplateElectrode   float64
	baseplateWeldLength  float64
	baseplateAnchors     int
	baseplateAnchorDia   float64
	baseplateEmbed       float64
	baseplateAnchorGrade float64
	baseplateFc          float64
	baseplateSpacing     float64
	baseplateAuto        bool
)

var baseplateCmd = &cobra.Command{
	Use:   "baseplate",
	Short: "Check a base plate and anchor bolt group",
	Long: `Check a welded base plate connection: plate bending, fillet weld
strength, anchor rod tension (steel and concrete breakout) and anchor
shear.

Dimensions left unset take shop defaults (12x12x1/2 A36 plate, 1/4 in
E70 weld, four 3/4 in rods at 10 in embedment in 4000 psi concrete).

With --auto the connection is designed instead of checked: a fixed grid
of plate sizes, thicknesses, rod diameters and bolt counts is searched
and the lightest passing combination reported.

Examples:
  # Check the default connection under 5 kips uplift
  signcalc baseplate --tension 5 --shear 2 --moment 100

  # Heavier plate in A572-50, eight 1 in rods
  signcalc baseplate --tension 12 --plate-thickness 1.0 --plate-grade A572-50 --anchors 8 --anchor-dia 1.0

  # Design the lightest connection for the demands
  signcalc baseplate --tension 5 --shear 2 --moment 100 --auto`,
	Run: runBaseplate,
}

func init() {
	rootCmd.AddCommand(baseplateCmd)

	baseplateCmd.Flags().Float64VarP(&baseplateTension, "tension", "t", 0, "Uplift tension on the connection (kips)")
	baseplateCmd.Flags().Float64VarP(&baseplateShear, "shear", "s", 0, "Shear on the connection (kips)")
	baseplateCmd.Flags().Float64VarP(&baseplateMoment, "moment", "m", 0, "Moment on the connection (kip-in)")
	baseplateCmd.Flags().Float64Var(&baseplateWidth, "plate-width", 0, "Plate width (in)")
	baseplateCmd.Flags().Float64Var(&baseplateLength, "plate-length", 0, "Plate length (in)")
	baseplateCmd.Flags().Float64Var(&baseplateThickness, "plate-thickness", 0, "Plate thickness (in)")
	baseplateCmd.Flags().Float64Var(&baseplateFy, "plate-fy", 0, "Plate yield strength (ksi)")
	baseplateCmd.Flags().StringVar(&baseplateGrade, "plate-grade", "", "Plate steel grade by ASTM name, sets the yield strength")
	baseplateCmd.Flags().Float64Var(&baseplateEcc, "eccentricity", 0, "Pole face to anchor line lever arm (in)")
	baseplateCmd.Flags().Float64Var(&baseplateWeldSize, "weld-size", 0, "Fillet weld size (in)")
	baseplateCmd.Flags().Float64Var(&baseplateElectrode, "weld-electrode", 0, "Weld electrode strength Fexx (ksi)")
	baseplateCmd.Flags().Float64Var(&baseplateWeldLength, "weld-length", 0, "Total weld length (in)")
	baseplateCmd.Flags().IntVarP(&baseplateAnchors, "anchors", "n", 0, "Anchor rod count")
	baseplateCmd.Flags().Float64Var(&baseplateAnchorDia, "anchor-dia", 0, "Anchor rod diameter (in)")
	baseplateCmd.Flags().Float64Var(&baseplateEmbed, "embed", 0, "Anchor embedment depth (in)")
	baseplateCmd.Flags().Float64Var(&baseplateAnchorGrade, "anchor-grade", 0, "Anchor rod tensile strength (ksi)")
	baseplateCmd.Flags().Float64Var(&baseplateFc, "fc", 0, "Concrete strength f'c (psi)")
	baseplateCmd.Flags().Float64Var(&baseplateSpacing, "spacing", 0, "Anchor spacing (in)")
	baseplateCmd.Flags().BoolVar(&baseplateAuto, "auto", false, "Search the design grid for the lightest passing connection")
}

func runBaseplate(cmd *cobra.Command, args []string) {
	if baseplateGrade != "" {
		g, ok := aisc.GradeByName(baseplateGrade)
		if !ok {
			names := make([]string, len(aisc.Grades))
			for i, gr := range aisc.Grades {
				names[i] = gr.Name
			}
			fmt.Printf("Error: unknown steel grade %q (known: %s)\n", baseplateGrade, strings.Join(names, ", "))
			return
		}
		baseplateFy = g.FyKsi
	}

	loads := baseplate.Loads{
		TensionKips: baseplateTension,
		ShearKips:   baseplateShear,
		MomentKipIn: baseplateMoment,
	}

	if baseplateAuto {
		runBaseplateAuto(loads)
		return
	}

	result, err := baseplate.Check(baseplate.Input{
		Plate: baseplate.Plate{
			WidthIn:        baseplateWidth,
			LengthIn:       baseplateLength,
			ThicknessIn:    baseplateThickness,
			FyKsi:          baseplateFy,
			EccentricityIn: baseplateEcc,
		},
		Weld: baseplate.Weld{
			SizeIn:       baseplateWeldSize,
			ElectrodeKsi: baseplateElectrode,
			LengthIn:     baseplateWeldLength,
		},
		Anchors: baseplate.Anchors{
			Count:      baseplateAnchors,
			DiameterIn: baseplateAnchorDia,
			EmbedIn:    baseplateEmbed,
			GradeKsi:   baseplateAnchorGrade,
			FcPsi:      baseplateFc,
			SpacingIn:  baseplateSpacing,
		},
		Loads: loads,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     BASE PLATE CONNECTION CHECK")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("CONNECTION:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	p, a, weld := result.Input.Plate, result.Input.Anchors, result.Input.Weld
	fmt.Fprintf(w, "  Plate:\t%.0f x %.0f x %.3f in, Fy %.0f ksi\n", p.WidthIn, p.LengthIn, p.ThicknessIn, p.FyKsi)
	fmt.Fprintf(w, "  Weld:\t%.3f in E%.0f fillet, %.0f in total\n", weld.SizeIn, weld.ElectrodeKsi, weld.LengthIn)
	fmt.Fprintf(w, "  Anchors:\t%d x %.3f in dia, %.0f in embed, f'c %.0f psi\n", a.Count, a.DiameterIn, a.EmbedIn, a.FcPsi)
	fmt.Fprintf(w, "  Loads:\tT=%.2f k, V=%.2f k, M=%.1f kip-in\n", loads.TensionKips, loads.ShearKips, loads.MomentKipIn)
	w.Flush()
	fmt.Println()

	printBaseplateChecks(result)

	if result.AllPass {
		fmt.Println("  ╔═════════════════════════════════════════════════╗")
		fmt.Println("  ║  ✓ CONNECTION ADEQUATE                          ║")
		fmt.Println("  ╚═════════════════════════════════════════════════╝")
	} else {
		fmt.Println("  ╔═════════════════════════════════════════════════╗")
		fmt.Println("  ║  ⚠ CONNECTION NOT ADEQUATE                      ║")
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

func runBaseplateAuto(loads baseplate.Loads) {
	result, err := baseplate.AutoSolve(baseplate.AutoInput{
		Loads:          loads,
		PlateFyKsi:     baseplateFy,
		AnchorGradeKsi: baseplateAnchorGrade,
		FcPsi:          baseplateFc,
		EmbedIn:        baseplateEmbed,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     BASE PLATE DESIGN - GRID SEARCH")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Printf("  Evaluated %d grid combinations, %d feasible\n", result.Evaluated, len(result.Feasible))
	fmt.Println()

	if result.Design == nil {
		fmt.Println("  ╔═════════════════════════════════════════════════╗")
		fmt.Println("  ║  ⚠ NO FEASIBLE CONNECTION                       ║")
		fmt.Println("  ╚═════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Printf("  %s\n", result.Message)
		fmt.Println()
		return
	}

	fmt.Println("LIGHTEST FEASIBLE CONNECTIONS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  REF\tPLATE\tTHICK\tROD DIA\tCOUNT\tWEIGHT\n")
	fmt.Fprintf(w, "  ───\t─────\t─────\t───────\t─────\t──────\n")
	shown := result.Feasible
	if len(shown) > 10 {
		shown = shown[:10]
	}
	for _, c := range shown {
		fmt.Fprintf(w, "  %s\t%.0f x %.0f in\t%.3f in\t%.3f in\t%d\t%.1f lbs\n",
			c.Ref, c.PlateIn, c.PlateIn, c.ThicknessIn, c.DiameterIn, c.Count, c.WeightLbs)
	}
	w.Flush()
	if len(shown) < len(result.Feasible) {
		fmt.Printf("  ... and %d more\n", len(result.Feasible)-len(shown))
	}
	fmt.Println()

	printBaseplateChecks(result.Design)

	fmt.Printf("  ╔═════════════════════════════════════════════════╗\n")
	fmt.Printf("  ║  ✓ SELECTED %s (%.1f lbs)      \n", result.Ref, result.WeightLbs)
	fmt.Printf("  ╚═════════════════════════════════════════════════╝\n")
	fmt.Println()
	fmt.Printf("  %s\n", result.Message)
	fmt.Println()
}

// printBaseplateChecks renders the four connection checks as a table.
func printBaseplateChecks(result *baseplate.Result) {
	fmt.Println("CONNECTION CHECKS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  CHECK\tDEMAND\tCAPACITY\tRATIO\t\n")
	fmt.Fprintf(w, "  ─────\t──────\t────────\t─────\t\n")
	for _, c := range result.Checks {
		name := c.Name
		if c.Governing != "" {
			name = fmt.Sprintf("%s (%s)", c.Name, c.Governing)
		}
		fmt.Fprintf(w, "  %s\t%.3f %s\t%.3f %s\t%.3f\t%s\n",
			name, c.Demand, c.Unit, c.Capacity, c.Unit, c.Ratio, passMark(c.Pass))
	}
	w.Flush()
	fmt.Println()
}
