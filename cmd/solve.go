package cmd

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/apexsigns/signcalc/internal/aci"
	"github.com/apexsigns/signcalc/internal/asce"
	"github.com/apexsigns/signcalc/internal/catalog"
	"github.com/apexsigns/signcalc/internal/diagram"
	"github.com/apexsigns/signcalc/internal/ibc"
	"github.com/apexsigns/signcalc/internal/solver"
)

var (
	solveApp         string
	solveHeight      float64
	solveWidth       float64
	solveSignHeight  float64
	solveArea        float64
	solveThickness   float64
	solveSignWeight  float64
	solveClearance   float64
	solveArm         float64
	solveWindSpeed   float64
	solveExposure    string
	solveRisk        string
	solveKzt         float64
	solveGust        float64
	solveCf          float64
	solveSection     string
	solveFamily      string
	solveSds         float64
	solveSnow        float64
	solveSoil        float64
	solveDiameter    float64
	solveTrial       float64
	solveDeflection  float64
	solveFc          float64
	solveRebarFy     float64
	solveBar         string
	solveCover       float64
	solveDiagram     bool
	solveOutput      string
	solveUtilization string
	solveJSON        bool
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Run the full design pipeline for a sign structure",
	Long: `Run the complete design pipeline: ASCE 7-22 wind, IBC 2024 load
combinations, AISC 360-22 section selection and member checks,
IBC 1807 foundation design and the ACI 318-19 rebar schedule.

The result is a deterministic design record with independent pass/fail
gates and a content hash over the whole record for estimate caching.

Subcommands:
  single  - One pole carrying the sign
  double  - Two poles sharing the sign`,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	f := solveCmd.PersistentFlags()
	f.StringVarP(&solveApp, "app", "a", string(solver.Pylon), "Application: pylon, monument, cantilever_post, wall_mount")
	f.Float64Var(&solveHeight, "height", 0, "Pole height, grade to cabinet bottom (ft), 0 = clearance default")
	f.Float64VarP(&solveWidth, "width", "w", 0, "Sign face width (ft)")
	f.Float64Var(&solveSignHeight, "sign-height", 0, "Sign face height (ft) [required]")
	f.Float64Var(&solveArea, "area", 0, "Sign face area (sq ft), 0 = width x height")
	f.Float64Var(&solveThickness, "thickness", 0, "Panel thickness for face weight (in)")
	f.Float64Var(&solveSignWeight, "sign-weight", 0, "Cabinet weight (psf), 0 = 3.0 default")
	f.Float64Var(&solveClearance, "clearance", 0, "Grade-to-cabinet clearance (ft), 0 = application default")
	f.Float64Var(&solveArm, "arm", 0, "Cabinet centroid offset from pole centerline (ft)")
	f.Float64VarP(&solveWindSpeed, "wind-speed", "v", 0, "Basic wind speed, 3-second gust (mph) [required]")
	f.StringVarP(&solveExposure, "exposure", "e", "C", "Exposure category: B, C or D")
	f.StringVar(&solveRisk, "risk", "II", "Risk category: I, II, III or IV")
	f.Float64Var(&solveKzt, "kzt", 1.0, "Topographic factor Kzt")
	f.Float64Var(&solveGust, "gust", asce.DefaultGustFactor, "Gust effect factor G")
	f.Float64Var(&solveCf, "cf", asce.DefaultForceCoefficient, "Force coefficient Cf")
	f.StringVar(&solveSection, "section", "", "Pole section designation, empty = run the selector")
	f.StringVar(&solveFamily, "family", "", "Restrict selection to one family (HSS, Pipe, W, Aluminum)")
	f.Float64Var(&solveSds, "sds", 0, "Seismic Sds for the monument lateral check")
	f.Float64Var(&solveSnow, "snow", 0, "Ground snow load (psf)")
	f.Float64Var(&solveSoil, "soil", 0, "Allowable soil bearing (psf), 0 = configured default")
	f.Float64Var(&solveDiameter, "diameter", 0, "Pier diameter (ft), 0 = size for overturning")
	f.Float64Var(&solveTrial, "trial", 0, "Trial embedment / standard burial depth (ft)")
	f.Float64Var(&solveDeflection, "deflection-limit", 0, "Deflection ratio L/x, 0 = application default")
	f.Float64Var(&solveFc, "fc", 0, "Concrete strength f'c (ksi), default 3.0")
	f.Float64Var(&solveRebarFy, "rebar-fy", 0, "Rebar yield strength (ksi), default 60")
	f.StringVar(&solveBar, "bar", "", "Rebar size #3-#11, default #4")
	f.Float64Var(&solveCover, "cover", 0, "Concrete cover (in), default 3.0")
	f.BoolVar(&solveDiagram, "diagram", false, "Draw an ASCII elevation of the structure")
	f.StringVarP(&solveOutput, "output", "o", "", "Write the elevation drawing to a file (.png, .svg, .pdf)")
	f.StringVar(&solveUtilization, "utilization", "", "Write the utilization bar chart to a file")
	f.BoolVar(&solveJSON, "json", false, "Emit the full design record as JSON")

	solveCmd.MarkPersistentFlagRequired("sign-height")
	solveCmd.MarkPersistentFlagRequired("wind-speed")
}

// buildSingleConfig assembles the pipeline configuration from the shared
// solve flags.
func buildSingleConfig() (solver.SingleConfig, error) {
	cat, err := loadCatalog()
	if err != nil {
		return solver.SingleConfig{}, err
	}
	return solver.SingleConfig{
		Application: solver.Application(solveApp),
		Geometry: solver.Geometry{
			PoleHeightFt:    solveHeight,
			SignWidthFt:     solveWidth,
			SignHeightFt:    solveSignHeight,
			SignAreaSqFt:    solveArea,
			SignThicknessIn: solveThickness,
			SignWeightPSF:   solveSignWeight,
			ClearanceFt:     solveClearance,
			ArmLengthFt:     solveArm,
		},
		Wind: asce.SiteWind{
			SpeedMPH: solveWindSpeed,
			Exposure: asce.ExposureCategory(solveExposure),
			Risk:     asce.RiskCategory(solveRisk),
			Kzt:      solveKzt,
		},
		GustFactor:           solveGust,
		ForceCoefficient:     solveCf,
		Section:              solveSection,
		Family:               catalog.Family(solveFamily),
		SeismicSds:           solveSds,
		GroundSnowPSF:        solveSnow,
		SoilBearingPSF:       resolveSoil(solveSoil),
		FoundationDiameterFt: solveDiameter,
		TrialEmbedmentFt:     solveTrial,
		DeflectionLimit:      solveDeflection,
		ConcreteFcKsi:        solveFc,
		RebarFyKsi:           solveRebarFy,
		RebarSize:            aci.BarSize(solveBar),
		RebarCoverIn:         solveCover,
		Catalog:              cat,
	}, nil
}

// printJSON emits the full design record for pipeline consumers.
func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

// printDesignResult renders the single-pole design record. The double
// command reuses it for the per-pole detail.
func printDesignResult(res *solver.DesignResult) {
	g := res.Config.Geometry

	fmt.Println("GEOMETRY:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Application:\t%s\n", res.Application)
	fmt.Fprintf(w, "  Sign Face:\t%.1f x %.1f ft (%.1f sq ft)\n", g.SignWidthFt, g.SignHeightFt, g.SignAreaSqFt)
	fmt.Fprintf(w, "  Pole Height:\t%.1f ft\n", g.PoleHeightFt)
	fmt.Fprintf(w, "  Overall Height:\t%.1f ft\n", g.OverallHeightFt())
	if g.ArmLengthFt > 0 {
		fmt.Fprintf(w, "  Arm Length:\t%.1f ft\n", g.ArmLengthFt)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("WIND (ASCE 7-22 Chapter 29):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Basic Speed:\t%.0f mph, Exposure %s, Risk %s\n",
		res.Config.Wind.SpeedMPH, res.Config.Wind.Exposure, res.Config.Wind.Risk)
	fmt.Fprintf(w, "  qz at Centroid:\t%.2f psf (Kz=%.3f, Iw=%.2f)\n", res.Wind.QzPSF, res.Wind.Kz, res.Wind.Iw)
	fmt.Fprintf(w, "  Design Pressure:\t%.2f psf\n", res.Wind.DesignPressurePSF)
	fmt.Fprintf(w, "  Wind Force:\t%.0f lbs at %.2f ft\n", res.Wind.ForceLbs, res.Wind.CentroidFt)
	fmt.Fprintf(w, "  Base Moment:\t%.2f kip-ft\n", res.Wind.MomentKipFt)
	w.Flush()
	fmt.Println()

	fmt.Println("SERVICE LOADS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Dead, Sign:\t%.0f lbs\n", res.Loads.DeadSignLbs)
	if res.Loads.DeadPoleLbs > 0 {
		fmt.Fprintf(w, "  Dead, Pole:\t%.0f lbs\n", res.Loads.DeadPoleLbs)
		fmt.Fprintf(w, "  Dead, Total:\t%.0f lbs\n", res.Loads.DeadTotalLbs)
	}
	if res.Loads.SnowLbs > 0 {
		fmt.Fprintf(w, "  Snow:\t%.0f lbs\n", res.Loads.SnowLbs)
	}
	if res.Loads.SeismicForceLbs > 0 {
		governs := ""
		if res.Loads.SeismicGoverns {
			governs = " ◄ governs"
		}
		fmt.Fprintf(w, "  Seismic (simplified):\t%.0f lbs%s\n", res.Loads.SeismicForceLbs, governs)
	}
	fmt.Fprintf(w, "  Lateral:\t%.0f lbs / %.2f kip-ft\n", res.Loads.LateralForceLbs, res.Loads.LateralMomentKipFt)
	w.Flush()
	fmt.Println()

	fmt.Println("LOAD COMBINATIONS (IBC 2024 Section 1605.2.1):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, c := range res.Combinations.Results {
		mark := ""
		if c.Governs {
			mark = " ◄ governs"
		}
		fmt.Fprintf(w, "  %s\t%s\t%.2f kip-ft%s\n", c.ID, c.Description, c.Demand, mark)
	}
	w.Flush()
	fmt.Println()

	if sel := res.Selection; sel != nil {
		if sel.MaterialLockViolation != "" {
			fmt.Printf("  ⚠ %s\n\n", sel.MaterialLockViolation)
		} else if !sel.HasFeasible() {
			fmt.Printf("  ⚠ %s\n", sel.Message)
			if n := sel.Nearest; n != nil {
				fmt.Printf("    nearest %s: bending %.2f, shear %.2f, combined %.2f\n",
					n.Section.Designation, n.Check.BendingRatio, n.Check.ShearRatio, n.Check.CombinedRatio)
			}
			fmt.Println()
		}
	}

	if res.Section.Designation != "" {
		fmt.Println("POLE SECTION:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Designation:\t%s (%s)\n", res.Section.Designation, res.Section.Family)
		fmt.Fprintf(w, "  Sx / Ix:\t%.1f in³ / %.1f in⁴\n", res.Section.SxIn3, res.Section.IxIn4)
		fmt.Fprintf(w, "  Weight:\t%.2f plf\n", res.Section.WeightPLF)
		if sel := res.Selection; sel != nil && sel.HasFeasible() {
			fmt.Fprintf(w, "  Selection:\t%d feasible of %d evaluated\n", len(sel.Feasible), sel.Evaluated)
		}
		w.Flush()
		fmt.Println()
	}

	if m := res.Member; m != nil {
		fmt.Println("MEMBER CHECKS (AISC 360-22 ASD):")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Bending:\t%.2f / %.2f ksi\tratio %.3f %s\n",
			m.BendingKsi, m.AllowableBendingKsi, m.BendingRatio, passMark(m.PassesBending))
		fmt.Fprintf(w, "  Shear:\t%.2f / %.2f ksi\tratio %.3f %s\n",
			m.ShearKsi, m.AllowableShearKsi, m.ShearRatio, passMark(m.PassesShear))
		fmt.Fprintf(w, "  Combined:\t\tratio %.3f %s\n", m.CombinedRatio, passMark(m.PassesCombined))
		if math.IsInf(m.DeflectionRatio, 1) {
			fmt.Fprintf(w, "  Deflection:\t%.3f in\tno lateral load %s\n", m.DeflectionIn, passMark(m.PassesDeflection))
		} else {
			fmt.Fprintf(w, "  Deflection:\t%.3f in\tL/%.0f vs L/%.0f %s\n",
				m.DeflectionIn, m.DeflectionRatio, m.DeflectionLimit, passMark(m.PassesDeflection))
		}
		w.Flush()
		fmt.Println()
	}

	if res.TorsionKipFt > 0 {
		fmt.Printf("  Torsion from eccentric cabinet: %.2f kip-ft\n\n", res.TorsionKipFt)
	}

	if f := res.Foundation; f != nil {
		fmt.Println("FOUNDATION - DRILLED PIER (IBC 2024 Section 1807):")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Pier:\t%.1f ft dia x %.2f ft deep (%d iterations)\n", f.DiameterFt, f.DepthFt, f.Iterations)
		fmt.Fprintf(w, "  Overturning SF:\t%.2f\trequired %.1f %s\n",
			f.SafetyFactor, ibc.OverturningSafetyFactorMin, passMark(f.PassesOverturning))
		fmt.Fprintf(w, "  Soil Pressure:\t%.0f psf\t%s\n", f.MaxSoilPressurePSF, passMark(f.PassesSoilBearing))
		fmt.Fprintf(w, "  Concrete:\t%.2f cu yd\n", f.ConcreteVolumeCuYd)
		w.Flush()
		fmt.Println()
	}

	if f := res.Footing; f != nil {
		fmt.Println("FOUNDATION - SPREAD FOOTING (IBC 2024 Section 1807):")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Pad:\t%.2f x %.2f x %.2f ft\n", f.WidthFt, f.LengthFt, f.ThicknessFt)
		fmt.Fprintf(w, "  Overturning SF:\t%.2f\trequired %.1f %s\n",
			f.SafetyFactor, ibc.OverturningSafetyFactorMin, passMark(f.PassesOverturning))
		fmt.Fprintf(w, "  Soil Pressure:\t%.0f psf\tallowable %.0f psf %s\n",
			f.MaxSoilPressurePSF, f.SoilBearingPSF, passMark(f.PassesSoilBearing))
		fmt.Fprintf(w, "  Concrete:\t%.2f cu yd\n", f.ConcreteVolumeCuYd)
		w.Flush()
		fmt.Println()
	}

	if s := res.Rebar; s != nil {
		fmt.Println("REINFORCEMENT (ACI 318-19):")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, b := range s.VerticalBars {
			fmt.Fprintf(w, "  %s:\t%d x %s, %.1f ft\t%s\n", b.Mark, b.Quantity, b.Size, b.LengthFt, b.Location)
		}
		for _, b := range s.HorizontalBars {
			fmt.Fprintf(w, "  %s:\t%d x %s, %.1f ft\t%s\n", b.Mark, b.Quantity, b.Size, b.LengthFt, b.Location)
		}
		fmt.Fprintf(w, "  Order:\t%.2f cu yd concrete, %.0f lbs rebar\n",
			s.ConcreteOrderCuYd, s.RebarOrderTons*2000)
		w.Flush()
		fmt.Println()
	}

	printCheckSummary(res.Checks)

	for _, warning := range res.Warnings {
		fmt.Printf("  ⚠ %s\n", warning)
	}
	if len(res.Warnings) > 0 {
		fmt.Println()
	}
}

// printCheckSummary renders the independent pass/fail gates.
func printCheckSummary(c solver.Checks) {
	fmt.Println("CHECK SUMMARY:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Strength:\t%s\n", passMark(c.Strength))
	fmt.Fprintf(w, "  Deflection:\t%s\n", passMark(c.Deflection))
	fmt.Fprintf(w, "  Overturning:\t%s\n", passMark(c.Overturning))
	fmt.Fprintf(w, "  Soil Bearing:\t%s\n", passMark(c.SoilBearing))
	fmt.Fprintf(w, "  Utilization:\t%s\n", passMark(c.Utilization))
	w.Flush()
	fmt.Println()
}

// printVerdict renders the approval box, hash and code references shared
// by the solve commands.
func printVerdict(approved bool, label, failureMode, hash string, codeRefs []string) {
	if approved {
		fmt.Printf("  ╔═════════════════════════════════════════════════╗\n")
		fmt.Printf("  ║  ✓ DESIGN APPROVED - %s      \n", label)
		fmt.Printf("  ╚═════════════════════════════════════════════════╝\n")
	} else {
		fmt.Printf("  ╔═════════════════════════════════════════════════╗\n")
		fmt.Printf("  ║  ⚠ NOT APPROVED - %s      \n", failureMode)
		fmt.Printf("  ╚═════════════════════════════════════════════════╝\n")
	}
	fmt.Println()
	fmt.Printf("  Content Hash: %s\n", hash)
	fmt.Println()

	fmt.Println("CODE REFERENCES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	for _, ref := range codeRefs {
		fmt.Printf("  %s\n", ref)
	}
	fmt.Println()
}

// elevationData maps a design record to the drawing input.
func elevationData(res *solver.DesignResult, poleCount int, spacingFt float64) diagram.ElevationData {
	g := res.Config.Geometry
	data := diagram.ElevationData{
		SignWidthFt:     g.SignWidthFt,
		SignHeightFt:    g.SignHeightFt,
		PoleHeightFt:    g.PoleHeightFt,
		OverallHeightFt: g.OverallHeightFt(),
		SectionName:     res.Section.Designation,
		PoleCount:       poleCount,
		PoleSpacingFt:   spacingFt,
	}
	if g.SignWidthFt == 0 && g.SignHeightFt > 0 {
		data.SignWidthFt = g.SignAreaSqFt / g.SignHeightFt
	}
	if f := res.Foundation; f != nil {
		data.EmbedDepthFt = f.DepthFt
		data.PierDiameterFt = f.DiameterFt
	}
	if f := res.Footing; f != nil {
		data.FootingWidthFt = f.WidthFt
		data.FootingThicknessFt = f.ThicknessFt
	}
	return data
}

// renderDiagrams handles the --diagram, --output and --utilization flags
// for a solved design.
func renderDiagrams(res *solver.DesignResult, poleCount int, spacingFt float64) {
	data := elevationData(res, poleCount, spacingFt)

	if solveDiagram {
		fmt.Println("ELEVATION:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		fmt.Println(diagram.DrawElevation(data))

		section := res.Section.Designation
		if poleCount == 2 {
			section = "2x " + section
		}
		lines := []string{
			"Section: " + section,
			fmt.Sprintf("Overall Height: %.1f ft", data.OverallHeightFt),
		}
		if poleCount == 2 {
			lines = append(lines, fmt.Sprintf("Pole Spacing: %.1f ft c/c", data.PoleSpacingFt))
		}
		if data.EmbedDepthFt > 0 {
			lines = append(lines, fmt.Sprintf("Embedment: %.2f ft, %.2f ft dia pier", data.EmbedDepthFt, data.PierDiameterFt))
		}
		if data.FootingWidthFt > 0 {
			lines = append(lines, fmt.Sprintf("Footing: %.1f ft pad, %.2f ft thick", data.FootingWidthFt, data.FootingThicknessFt))
		}
		fmt.Println(diagram.DrawSummaryBox("STRUCTURE", lines))
	}
	if solveOutput != "" {
		if err := diagram.ExportElevation(data, solveOutput); err != nil {
			fmt.Printf("Error: %v\n", err)
		} else {
			fmt.Printf("  Elevation drawing written to %s\n\n", solveOutput)
		}
	}
	if solveUtilization != "" {
		labels, ratios := utilizationSeries(res)
		if len(labels) == 0 {
			fmt.Println("  No utilization ratios to chart")
			return
		}
		if err := diagram.ExportUtilization(labels, ratios, solveUtilization); err != nil {
			fmt.Printf("Error: %v\n", err)
		} else {
			fmt.Printf("  Utilization chart written to %s\n\n", solveUtilization)
		}
	}
}

// utilizationSeries collects every check as a demand-over-capacity ratio
// on the shared above-1-fails scale.
func utilizationSeries(res *solver.DesignResult) (labels []string, ratios []float64) {
	if m := res.Member; m != nil {
		labels = append(labels, "Bending", "Shear", "Combined")
		ratios = append(ratios, m.BendingRatio, m.ShearRatio, m.CombinedRatio)
		if !math.IsInf(m.DeflectionRatio, 1) && m.DeflectionRatio > 0 {
			labels = append(labels, "Deflection")
			ratios = append(ratios, m.DeflectionLimit/m.DeflectionRatio)
		}
	}

	soil := res.Config.SoilBearingPSF
	if soil == 0 {
		soil = ibc.DefaultSoilBearingPSF
	}
	if f := res.Foundation; f != nil {
		if f.SafetyFactor > 0 && !math.IsInf(f.SafetyFactor, 1) {
			labels = append(labels, "Overturning")
			ratios = append(ratios, ibc.OverturningSafetyFactorMin/f.SafetyFactor)
		}
		labels = append(labels, "Soil")
		ratios = append(ratios, f.MaxSoilPressurePSF/soil)
	}
	if f := res.Footing; f != nil {
		if f.SafetyFactor > 0 && !math.IsInf(f.SafetyFactor, 1) {
			labels = append(labels, "Overturning")
			ratios = append(ratios, ibc.OverturningSafetyFactorMin/f.SafetyFactor)
		}
		if f.SoilBearingPSF > 0 {
			labels = append(labels, "Soil")
			ratios = append(ratios, f.MaxSoilPressurePSF/f.SoilBearingPSF)
		}
	}
	return labels, ratios
}
