// Package solver assembles the complete design pipeline for sign
// structures: ASCE 7-22 wind loads, IBC 2024 ASD load combinations, AISC
// 360-22 member checks, foundation design and the concrete/rebar
// schedule, under per-application design criteria. Results are
// deterministic and carry a content hash over inputs and outputs.
package solver

import (
	"math"

	"github.com/apexsigns/signcalc/internal/errs"
	"github.com/apexsigns/signcalc/internal/member"
	"github.com/apexsigns/signcalc/internal/rebar"
)

// Platform limits. Structures outside these bounds need a project-specific
// engineering review rather than an estimate.
const (
	MaxPoleHeightFt = 100.0
	MaxSignAreaSqFt = 1000.0
)

const (
	// DefaultSignWeightPSF is the typical aluminum cabinet weight.
	DefaultSignWeightPSF = 3.0

	// AluminumDensityPCF converts a panel thickness to a face weight
	// when no cabinet weight is given.
	AluminumDensityPCF = 169.0

	// MaxArmLengthFt bounds cantilever arm projection to the practical
	// fabrication range.
	MaxArmLengthFt = 30.0
)

// Application identifies the sign structure type being designed.
type Application string

const (
	Pylon          Application = "pylon"
	Monument       Application = "monument"
	CantileverPost Application = "cantilever_post"
	WallMount      Application = "wall_mount"
)

// Valid reports whether a is a known application type.
func (a Application) Valid() bool {
	switch a {
	case Pylon, Monument, CantileverPost, WallMount:
		return true
	}
	return false
}

// Criteria is the design envelope an application binds: the default
// grade-to-cabinet clearance, the serviceability deflection limit, an
// optional bending utilization ceiling, and the foundation form. An empty
// Foundation means anchorage to a host structure governs and no
// foundation is designed.
type Criteria struct {
	ClearanceFt     float64
	DeflectionLimit float64
	UtilizationCap  float64
	Foundation      rebar.FoundationType
}

// Criteria returns the design criteria for the application. Monument
// structures carry the tighter L/200 limit and a 0.90 bending
// utilization ceiling on a spread footing; pole structures use L/240 on
// a drilled pier.
func (a Application) Criteria() Criteria {
	switch a {
	case Monument:
		return Criteria{
			DeflectionLimit: 200,
			UtilizationCap:  0.9,
			Foundation:      rebar.SpreadFooting,
		}
	case CantileverPost:
		return Criteria{
			ClearanceFt:     8.0,
			DeflectionLimit: member.DefaultLimits.DeflectionRatio,
			Foundation:      rebar.DrilledPier,
		}
	case WallMount:
		return Criteria{
			DeflectionLimit: member.DefaultLimits.DeflectionRatio,
		}
	default:
		return Criteria{
			ClearanceFt:     8.0,
			DeflectionLimit: member.DefaultLimits.DeflectionRatio,
			Foundation:      rebar.DrilledPier,
		}
	}
}

// Geometry describes the sign face and its support. The pole height runs
// from grade to the bottom of the cabinet; the cabinet extends above it,
// so the overall height is pole plus face height. ArmLengthFt is the
// horizontal offset of the cabinet centroid from the pole centerline
// (zero for concentric cabinets).
type Geometry struct {
	PoleHeightFt    float64 `json:"pole_height_ft"`
	SignWidthFt     float64 `json:"sign_width_ft,omitempty"`
	SignHeightFt    float64 `json:"sign_height_ft"`
	SignAreaSqFt    float64 `json:"sign_area_sqft,omitempty"`
	SignThicknessIn float64 `json:"sign_thickness_in,omitempty"`
	SignWeightPSF   float64 `json:"sign_weight_psf,omitempty"`
	ClearanceFt     float64 `json:"clearance_ft,omitempty"`
	ArmLengthFt     float64 `json:"arm_length_ft,omitempty"`
}

// withDefaults resolves derived fields: area from the face dimensions,
// face weight from panel thickness, pole height from clearance.
func (g Geometry) withDefaults(app Application) Geometry {
	if g.SignAreaSqFt == 0 && g.SignWidthFt > 0 && g.SignHeightFt > 0 {
		g.SignAreaSqFt = g.SignWidthFt * g.SignHeightFt
	}
	if g.SignWeightPSF == 0 {
		if g.SignThicknessIn > 0 {
			g.SignWeightPSF = AluminumDensityPCF * g.SignThicknessIn / 12.0
		} else {
			g.SignWeightPSF = DefaultSignWeightPSF
		}
	}
	if g.ClearanceFt == 0 {
		g.ClearanceFt = app.Criteria().ClearanceFt
	}
	if g.PoleHeightFt == 0 {
		g.PoleHeightFt = g.ClearanceFt
	}
	return g
}

// OverallHeightFt is the height from grade to the top of the cabinet.
func (g Geometry) OverallHeightFt() float64 {
	return g.PoleHeightFt + g.SignHeightFt
}

func (g Geometry) validate(app Application) error {
	if g.PoleHeightFt <= 0 {
		return errs.Validationf("pole_height_ft", "",
			"pole height must be positive, got %.2f ft", g.PoleHeightFt)
	}
	if g.PoleHeightFt > MaxPoleHeightFt {
		return errs.Validationf("pole_height_ft", "",
			"pole height %.1f ft exceeds supported maximum %.0f ft", g.PoleHeightFt, MaxPoleHeightFt)
	}
	if g.SignHeightFt <= 0 {
		return errs.Validationf("sign_height_ft", "",
			"sign height must be positive, got %.2f ft", g.SignHeightFt)
	}
	if g.SignAreaSqFt <= 0 {
		return errs.Validationf("sign_area_sqft", "",
			"sign area must be given or derivable from width and height")
	}
	if g.SignAreaSqFt > MaxSignAreaSqFt {
		return errs.Validationf("sign_area_sqft", "",
			"sign area %.1f sqft exceeds supported maximum %.0f sqft", g.SignAreaSqFt, MaxSignAreaSqFt)
	}
	if g.SignWidthFt > 0 && g.SignHeightFt > 0 {
		expected := g.SignWidthFt * g.SignHeightFt
		if math.Abs(g.SignAreaSqFt-expected) > 0.02*expected {
			return errs.Validationf("sign_area_sqft", "",
				"sign area %.1f sqft inconsistent with %.1f x %.1f ft face (%.1f sqft)",
				g.SignAreaSqFt, g.SignWidthFt, g.SignHeightFt, expected)
		}
	}
	if g.SignWeightPSF < 0 {
		return errs.Validationf("sign_weight_psf", "",
			"sign weight must not be negative, got %.2f psf", g.SignWeightPSF)
	}
	if g.ArmLengthFt < 0 {
		return errs.Validationf("arm_length_ft", "",
			"arm length must not be negative, got %.2f ft", g.ArmLengthFt)
	}
	if g.ArmLengthFt > MaxArmLengthFt {
		return errs.Validationf("arm_length_ft", "",
			"arm length %.1f ft exceeds practical limit of %.0f ft", g.ArmLengthFt, MaxArmLengthFt)
	}
	if app == CantileverPost && g.ArmLengthFt == 0 {
		return errs.Validationf("arm_length_ft", "",
			"cantilever post requires a positive arm length")
	}
	return nil
}
