// Package baseplate checks welded base plate connections and anchor bolt
// groups for pole-to-foundation attachment. Plate bending and weld strength
// follow AISC 360-22 ASD; anchor capacities follow the ACI 318-19 Chapter 17
// simplified single-anchor equations with a spacing reduction for the group.
package baseplate

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/apexsigns/signcalc/internal/errs"
)

const (
	// ASD allowable bending stress on the plate strip, 0.6*Fy
	PlateBendingFactor = 0.6

	// Fillet weld design stress 0.6*FEXX on the 0.707*size effective throat
	WeldStrengthFactor = 0.6
	WeldThroatFactor   = 0.707

	// Anchor steel strength reduction, ACI 318-19 17.5.1.2
	AnchorTensionPhi = 0.75
	AnchorShearPhi   = 0.65

	// Net tensile area of a threaded rod as a fraction of the gross area
	ThreadNetAreaFactor = 0.75

	// Shear on threads, 0.6 of the tensile strength
	ShearStrengthFactor = 0.6

	// Simplified concrete breakout coefficient on embed^1.5*sqrt(fc)
	BreakoutCoefficient = 25.0

	// Carbon steel density for the material weight proxy (lb/in3)
	SteelDensityLbIn3 = 0.2836
)

// Plate is the base plate geometry and material. Zero fields take the
// defaults of a 12x12x1/2 A36 plate with a 3 in anchor lever arm.
type Plate struct {
	WidthIn     float64 `json:"width_in,omitempty"`
	LengthIn    float64 `json:"length_in,omitempty"`
	ThicknessIn float64 `json:"thickness_in,omitempty"`
	FyKsi       float64 `json:"fy_ksi,omitempty"`

	// EccentricityIn is the cantilever strip length from the pole face to
	// the anchor line, the lever arm for plate bending.
	EccentricityIn float64 `json:"eccentricity_in,omitempty"`
}

// Weld is the pole-to-plate fillet weld. Zero fields take a 1/4 in E70
// fillet, 12 in total length.
type Weld struct {
	SizeIn       float64 `json:"size_in,omitempty"`
	ElectrodeKsi float64 `json:"electrode_ksi,omitempty"`
	LengthIn     float64 `json:"length_in,omitempty"`
}

// Anchors is the anchor bolt group. Zero fields take four 3/4 in F1554
// Grade 36 rods (58 ksi tensile), 10 in embedment in 4000 psi concrete at
// 6 in spacing.
type Anchors struct {
	Count      int     `json:"count,omitempty"`
	DiameterIn float64 `json:"diameter_in,omitempty"`
	EmbedIn    float64 `json:"embed_in,omitempty"`
	GradeKsi   float64 `json:"grade_ksi,omitempty"`
	FcPsi      float64 `json:"fc_psi,omitempty"`
	SpacingIn  float64 `json:"spacing_in,omitempty"`
}

// Loads are the service-level connection demands from the governing load
// combination.
type Loads struct {
	TensionKips float64 `json:"tension_kips"`
	ShearKips   float64 `json:"shear_kips"`
	MomentKipIn float64 `json:"moment_kipin"`
}

// Input bundles the connection design for checking.
type Input struct {
	Plate   Plate   `json:"plate"`
	Weld    Weld    `json:"weld"`
	Anchors Anchors `json:"anchors"`
	Loads   Loads   `json:"loads"`
}

func (in Input) withDefaults() Input {
	if in.Plate.WidthIn == 0 {
		in.Plate.WidthIn = 12.0
	}
	if in.Plate.LengthIn == 0 {
		in.Plate.LengthIn = 12.0
	}
	if in.Plate.ThicknessIn == 0 {
		in.Plate.ThicknessIn = 0.5
	}
	if in.Plate.FyKsi == 0 {
		in.Plate.FyKsi = 36.0
	}
	if in.Plate.EccentricityIn == 0 {
		in.Plate.EccentricityIn = 3.0
	}
	if in.Weld.SizeIn == 0 {
		in.Weld.SizeIn = 0.25
	}
	if in.Weld.ElectrodeKsi == 0 {
		in.Weld.ElectrodeKsi = 70.0
	}
	if in.Weld.LengthIn == 0 {
		in.Weld.LengthIn = 12.0
	}
	if in.Anchors.Count == 0 {
		in.Anchors.Count = 4
	}
	if in.Anchors.DiameterIn == 0 {
		in.Anchors.DiameterIn = 0.75
	}
	if in.Anchors.EmbedIn == 0 {
		in.Anchors.EmbedIn = 10.0
	}
	if in.Anchors.GradeKsi == 0 {
		in.Anchors.GradeKsi = 58.0
	}
	if in.Anchors.FcPsi == 0 {
		in.Anchors.FcPsi = 4000.0
	}
	if in.Anchors.SpacingIn == 0 {
		in.Anchors.SpacingIn = 6.0
	}
	return in
}

func (in Input) validate() error {
	if in.Plate.WidthIn < 0 || in.Plate.WidthIn > 60 {
		return errs.Validationf("plate_width_in", "AISC 360-22 Section F11",
			"plate width %.2f in outside accepted range 0-60 in", in.Plate.WidthIn)
	}
	if in.Plate.ThicknessIn < 0 || in.Plate.ThicknessIn > 4 {
		return errs.Validationf("plate_thickness_in", "AISC 360-22 Section F11",
			"plate thickness %.2f in outside accepted range 0-4 in", in.Plate.ThicknessIn)
	}
	if in.Plate.FyKsi < 0 || in.Plate.FyKsi > 100 {
		return errs.Validationf("plate_fy_ksi", "AISC 360-22 Section F11",
			"plate yield strength %.1f ksi outside accepted range 0-100 ksi", in.Plate.FyKsi)
	}
	if in.Plate.EccentricityIn < 0 {
		return errs.Validationf("plate_eccentricity_in", "AISC 360-22 Section F11",
			"anchor lever arm must be non-negative, got %.2f in", in.Plate.EccentricityIn)
	}
	if in.Weld.SizeIn < 0 || in.Weld.SizeIn > 1 {
		return errs.Validationf("weld_size_in", "AISC 360-22 Table J2.4",
			"fillet weld size %.3f in outside accepted range 0-1 in", in.Weld.SizeIn)
	}
	if in.Weld.LengthIn < 0 {
		return errs.Validationf("weld_length_in", "AISC 360-22 Section J2.2b",
			"weld length must be non-negative, got %.2f in", in.Weld.LengthIn)
	}
	if in.Anchors.Count < 2 || in.Anchors.Count > 16 {
		return errs.Validationf("anchor_count", "ACI 318-19 Section 17.1",
			"anchor count %d outside accepted range 2-16", in.Anchors.Count)
	}
	if in.Anchors.DiameterIn < 0 || in.Anchors.DiameterIn > 2.5 {
		return errs.Validationf("anchor_diameter_in", "ACI 318-19 Section 17.1",
			"anchor diameter %.3f in outside accepted range 0-2.5 in", in.Anchors.DiameterIn)
	}
	if in.Anchors.EmbedIn < 0 || in.Anchors.EmbedIn > 48 {
		return errs.Validationf("anchor_embed_in", "ACI 318-19 Section 17.6.2",
			"anchor embedment %.1f in outside accepted range 0-48 in", in.Anchors.EmbedIn)
	}
	if in.Anchors.FcPsi < 2500 || in.Anchors.FcPsi > 10000 {
		return errs.Validationf("anchor_fc_psi", "ACI 318-19 Section 19.2.1",
			"concrete strength %.0f psi outside accepted range 2500-10000 psi", in.Anchors.FcPsi)
	}
	if in.Anchors.SpacingIn < 0 {
		return errs.Validationf("anchor_spacing_in", "ACI 318-19 Section 17.9",
			"anchor spacing must be non-negative, got %.2f in", in.Anchors.SpacingIn)
	}
	if in.Loads.TensionKips < 0 || in.Loads.ShearKips < 0 || in.Loads.MomentKipIn < 0 {
		return errs.Validationf("loads", "ASCE 7-22 Section 2.4",
			"connection demands must be non-negative")
	}
	return nil
}

// CheckItem is one connection check: a demand against a capacity in a named
// unit. For anchor tension Governing reports whether anchor steel or concrete
// breakout set the capacity.
type CheckItem struct {
	Name      string  `json:"name"`
	Demand    float64 `json:"demand"`
	Capacity  float64 `json:"capacity"`
	Unit      string  `json:"unit"`
	Ratio     float64 `json:"ratio"`
	Governing string  `json:"governing"`
	Pass      bool    `json:"pass"`
}

// Result holds the four connection checks and the overall verdict.
type Result struct {
	Input    Input       `json:"input"`
	Checks   []CheckItem `json:"checks"`
	AllPass  bool        `json:"all_pass"`
	CodeRefs []string    `json:"code_references"`
}

// Check evaluates plate bending, weld strength, anchor tension and anchor
// shear for a base plate connection. Zero input fields take the documented
// defaults.
func Check(in Input) (*Result, error) {
	in = in.withDefaults()
	if err := in.validate(); err != nil {
		return nil, err
	}

	checks := []CheckItem{
		checkPlateBending(in.Plate, in.Loads),
		checkWeldStrength(in.Weld, in.Loads),
		checkAnchorTension(in.Anchors, in.Loads),
		checkAnchorShear(in.Anchors, in.Loads),
	}

	allPass := true
	for _, c := range checks {
		if !c.Pass {
			allPass = false
		}
	}

	return &Result{
		Input:   in,
		Checks:  checks,
		AllPass: allPass,
		CodeRefs: []string{
			"AISC 360-22 Section F11: Rectangular Bars Bent About Minor Axis",
			"AISC 360-22 Table J2.5: Available Strength of Welded Joints",
			"ACI 318-19 Section 17.6.1: Steel Strength of Anchor in Tension",
			"ACI 318-19 Section 17.6.2: Concrete Breakout Strength in Tension",
			"ACI 318-19 Section 17.7.1: Steel Strength of Anchor in Shear",
		},
	}, nil
}

// checkPlateBending treats the plate region outside the pole as a cantilever
// strip loaded by the anchor tension at the lever arm.
func checkPlateBending(p Plate, l Loads) CheckItem {
	momentKipIn := l.TensionKips * p.EccentricityIn
	sectionModulus := p.WidthIn * p.ThicknessIn * p.ThicknessIn / 6.0
	demand := momentKipIn / math.Max(sectionModulus, 0.01)
	capacity := PlateBendingFactor * p.FyKsi
	return CheckItem{
		Name:      "Plate Bending",
		Demand:    demand,
		Capacity:  capacity,
		Unit:      "ksi",
		Ratio:     demand / capacity,
		Governing: "bending",
		Pass:      demand <= capacity,
	}
}

// checkWeldStrength resolves shear and moment into a resultant line force on
// the fillet group.
func checkWeldStrength(w Weld, l Loads) CheckItem {
	capacity := WeldStrengthFactor * w.ElectrodeKsi * WeldThroatFactor * w.SizeIn * w.LengthIn
	demand := math.Sqrt(l.ShearKips*l.ShearKips + math.Pow(l.MomentKipIn/w.LengthIn, 2))
	return CheckItem{
		Name:      "Weld Strength",
		Demand:    demand,
		Capacity:  capacity,
		Unit:      "k",
		Ratio:     demand / capacity,
		Governing: "shear",
		Pass:      demand <= capacity,
	}
}

// checkAnchorTension takes the lower of anchor steel strength and the
// simplified concrete breakout cone, reduced when the group spacing is
// tighter than the embedment.
func checkAnchorTension(a Anchors, l Loads) CheckItem {
	perBolt := l.TensionKips / float64(a.Count)
	grossArea := math.Pi * a.DiameterIn * a.DiameterIn / 4.0

	steel := AnchorTensionPhi * ThreadNetAreaFactor * grossArea * a.GradeKsi
	spacingFactor := math.Min(1.0, a.SpacingIn/a.EmbedIn)
	breakout := BreakoutCoefficient * math.Pow(a.EmbedIn, 1.5) *
		math.Sqrt(a.FcPsi/1000.0) * spacingFactor / 1000.0

	capacity := math.Min(steel, breakout)
	governing := "breakout"
	if steel < breakout {
		governing = "steel"
	}
	return CheckItem{
		Name:      "Anchor Tension",
		Demand:    perBolt,
		Capacity:  capacity,
		Unit:      "k/bolt",
		Ratio:     perBolt / capacity,
		Governing: governing,
		Pass:      perBolt <= capacity,
	}
}

func checkAnchorShear(a Anchors, l Loads) CheckItem {
	perBolt := l.ShearKips / float64(a.Count)
	grossArea := math.Pi * a.DiameterIn * a.DiameterIn / 4.0
	capacity := AnchorShearPhi * ShearStrengthFactor * grossArea * a.GradeKsi
	return CheckItem{
		Name:      "Anchor Shear",
		Demand:    perBolt,
		Capacity:  capacity,
		Unit:      "k/bolt",
		Ratio:     perBolt / capacity,
		Governing: "steel",
		Pass:      perBolt <= capacity,
	}
}

// AutoInput describes the loads and fixed materials for an automatic
// connection design. Zero material fields take the Check defaults.
type AutoInput struct {
	Loads          Loads   `json:"loads"`
	PlateFyKsi     float64 `json:"plate_fy_ksi,omitempty"`
	AnchorGradeKsi float64 `json:"anchor_grade_ksi,omitempty"`
	FcPsi          float64 `json:"fc_psi,omitempty"`
	EmbedIn        float64 `json:"embed_in,omitempty"`
}

// Candidate is one feasible grid point with its material weight proxy.
type Candidate struct {
	PlateIn     float64 `json:"plate_in"`
	ThicknessIn float64 `json:"thickness_in"`
	DiameterIn  float64 `json:"diameter_in"`
	Count       int     `json:"count"`
	EmbedIn     float64 `json:"embed_in"`
	WeightLbs   float64 `json:"weight_lb"`
	Ref         string  `json:"ref"`
}

// AutoResult is the outcome of a grid search. Design holds the full check of
// the lightest feasible candidate, nil when nothing in the grid works.
type AutoResult struct {
	Design    *Result     `json:"design,omitempty"`
	Ref       string      `json:"ref,omitempty"`
	WeightLbs float64     `json:"weight_lb,omitempty"`
	Feasible  []Candidate `json:"feasible,omitempty"`
	Evaluated int         `json:"evaluated"`
	Message   string      `json:"message"`
}

// Search grid for AutoSolve. Plates are square; the anchor lever arm and
// group spacing scale with plate size to keep the geometry consistent.
var (
	autoPlateSizes  = []float64{10, 12, 14, 16, 18, 24}
	autoThicknesses = []float64{0.5, 0.625, 0.75, 1.0, 1.25, 1.5}
	autoDiameters   = []float64{0.625, 0.75, 0.875, 1.0, 1.25}
	autoCounts      = []int{4, 6, 8}
)

// AutoSolve searches a fixed grid of plate sizes, thicknesses, anchor
// diameters and counts for connections that pass every check, then ranks the
// feasible set by steel weight. The grid order and the stable sort make the
// selection deterministic for identical inputs.
func AutoSolve(in AutoInput) (*AutoResult, error) {
	if in.PlateFyKsi == 0 {
		in.PlateFyKsi = 36.0
	}
	if in.AnchorGradeKsi == 0 {
		in.AnchorGradeKsi = 58.0
	}
	if in.FcPsi == 0 {
		in.FcPsi = 4000.0
	}
	if in.EmbedIn == 0 {
		in.EmbedIn = 10.0
	}
	if in.Loads.TensionKips < 0 || in.Loads.ShearKips < 0 || in.Loads.MomentKipIn < 0 {
		return nil, errs.Validationf("loads", "ASCE 7-22 Section 2.4",
			"connection demands must be non-negative")
	}

	var feasible []Candidate
	evaluated := 0
	for _, size := range autoPlateSizes {
		for _, t := range autoThicknesses {
			for _, dia := range autoDiameters {
				for _, count := range autoCounts {
					evaluated++
					candidate := gridInput(in, size, t, dia, count)
					res, err := Check(candidate)
					if err != nil {
						return nil, err
					}
					if !res.AllPass {
						continue
					}
					feasible = append(feasible, Candidate{
						PlateIn:     size,
						ThicknessIn: t,
						DiameterIn:  dia,
						Count:       count,
						EmbedIn:     in.EmbedIn,
						WeightLbs:   steelWeight(size, t, dia, count, in.EmbedIn),
						Ref:         designRef(count, dia, in.EmbedIn, t),
					})
				}
			}
		}
	}

	if len(feasible) == 0 {
		return &AutoResult{
			Evaluated: evaluated,
			Message:   "no feasible base plate in the search grid; increase embedment or reduce connection demands",
		}, nil
	}

	sort.SliceStable(feasible, func(i, j int) bool {
		return feasible[i].WeightLbs < feasible[j].WeightLbs
	})

	best := feasible[0]
	design, err := Check(gridInput(in, best.PlateIn, best.ThicknessIn, best.DiameterIn, best.Count))
	if err != nil {
		return nil, err
	}

	return &AutoResult{
		Design:    design,
		Ref:       best.Ref,
		WeightLbs: best.WeightLbs,
		Feasible:  feasible,
		Evaluated: evaluated,
		Message: fmt.Sprintf("%d feasible connections, lightest %s at %.1f lb",
			len(feasible), best.Ref, best.WeightLbs),
	}, nil
}

// gridInput builds a Check input for one grid point. Lever arm is a quarter
// of the plate size, anchor spacing half, weld runs the plate width.
func gridInput(in AutoInput, size, t, dia float64, count int) Input {
	return Input{
		Plate: Plate{
			WidthIn:        size,
			LengthIn:       size,
			ThicknessIn:    t,
			FyKsi:          in.PlateFyKsi,
			EccentricityIn: size / 4.0,
		},
		Weld: Weld{
			SizeIn:       0.25,
			ElectrodeKsi: 70.0,
			LengthIn:     size,
		},
		Anchors: Anchors{
			Count:      count,
			DiameterIn: dia,
			EmbedIn:    in.EmbedIn,
			GradeKsi:   in.AnchorGradeKsi,
			FcPsi:      in.FcPsi,
			SpacingIn:  size / 2.0,
		},
		Loads: in.Loads,
	}
}

// steelWeight is the material cost proxy: plate volume plus embedded rod
// volume at carbon steel density.
func steelWeight(size, t, dia float64, count int, embed float64) float64 {
	plate := size * size * t
	rods := float64(count) * math.Pi * dia * dia / 4.0 * embed
	return (plate + rods) * SteelDensityLbIn3
}

// designRef encodes the anchor pattern the way shop drawings call it out,
// e.g. "4-anchors-3/4in-e10-t0.5".
func designRef(count int, dia, embed, t float64) string {
	return fmt.Sprintf("%d-anchors-%s-e%g-t%g", count,
		strings.ReplaceAll(diameterLabel(dia), " ", ""), embed, t)
}

// diameterLabel names common rod diameters in fractional inches.
func diameterLabel(dia float64) string {
	switch dia {
	case 0.5:
		return "1/2 in"
	case 0.625:
		return "5/8 in"
	case 0.75:
		return "3/4 in"
	case 0.875:
		return "7/8 in"
	case 1.0:
		return "1 in"
	case 1.25:
		return "1-1/4 in"
	case 1.5:
		return "1-1/2 in"
	}
	return fmt.Sprintf("%.3f in", dia)
}
