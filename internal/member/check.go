package member

import (
	"fmt"
	"math"

	"github.com/apexsigns/signcalc/internal/aisc"
	"github.com/apexsigns/signcalc/internal/catalog"
	"github.com/apexsigns/signcalc/internal/errs"
)

// Loads carries the demands for a capacity check. Moment and shear come
// from the governing load combination; the wind force and its application
// height drive the service-load deflection.
type Loads struct {
	MomentKipFt  float64 `json:"moment_kipft"`
	ShearKips    float64 `json:"shear_kips"`
	WindForceLbs float64 `json:"wind_force_lbs"`
	CentroidFt   float64 `json:"centroid_ft"`
}

// Limits configures the serviceability check.
type Limits struct {
	// DeflectionRatio is the minimum acceptable L/δ (e.g. 240 for L/240).
	DeflectionRatio float64 `json:"deflection_ratio"`
}

// DefaultLimits is the freestanding sign default.
var DefaultLimits = Limits{DeflectionRatio: 240}

// CheckResult holds the member capacity check for one section.
// Overall pass is the AND of the four individual flags, never a single
// scalar margin.
type CheckResult struct {
	// Stresses (ksi)
	BendingKsi          float64 `json:"bending_ksi"`           // fb = M*12/Sx
	ShearKsi            float64 `json:"shear_ksi"`             // fv = V/A
	AllowableBendingKsi float64 `json:"allowable_bending_ksi"` // Fb = 0.66*Fy
	AllowableShearKsi   float64 `json:"allowable_shear_ksi"`   // Fv = 0.40*Fy

	// Unity ratios
	BendingRatio  float64 `json:"bending_ratio"`
	ShearRatio    float64 `json:"shear_ratio"`
	CombinedRatio float64 `json:"combined_ratio"` // fb/Fb + fv/Fv

	// Serviceability
	DeflectionIn     float64 `json:"deflection_in"`
	DeflectionRatio  float64 `json:"deflection_ratio"`  // achieved L/δ
	DeflectionLimit  float64 `json:"deflection_limit"`  // required L/δ
	SlendernessRatio float64 `json:"slenderness_ratio"` // L/r

	// Status
	PassesBending    bool     `json:"passes_bending"`
	PassesShear      bool     `json:"passes_shear"`
	PassesCombined   bool     `json:"passes_combined"`
	PassesDeflection bool     `json:"passes_deflection"`
	Passes           bool     `json:"passes"`
	Message          string   `json:"message"`
	Warnings         []string `json:"warnings,omitempty"`
}

// Check runs the AISC 360-22 ASD capacity and serviceability checks for a
// candidate section as a vertical cantilever of the given height.
func Check(section catalog.PoleSection, loads Loads, poleHeightFt float64, limits Limits) (*CheckResult, error) {
	// Guard section properties before any division
	if section.SxIn3 <= 0 {
		return nil, errs.Validationf("sx_in3", "AISC 360-22 Chapter F",
			"section %s has invalid section modulus %.3f in³", section.Designation, section.SxIn3)
	}
	if section.AreaIn2 <= 0 {
		return nil, errs.Validationf("area_in2", "AISC 360-22 Chapter G",
			"section %s has invalid cross-sectional area %.3f in²", section.Designation, section.AreaIn2)
	}
	if section.IxIn4 <= 0 {
		return nil, errs.Validationf("ix_in4", "AISC 360-22 Chapter L",
			"section %s has invalid moment of inertia %.3f in⁴", section.Designation, section.IxIn4)
	}
	if poleHeightFt <= 0 {
		return nil, errs.Validationf("pole_height_ft", "AISC 360-22 Chapter L",
			"pole height must be positive, got %.2f ft", poleHeightFt)
	}
	if limits.DeflectionRatio <= 0 {
		limits = DefaultLimits
	}

	result := &CheckResult{DeflectionLimit: limits.DeflectionRatio}

	// Bending: fb = M/Sx with M in kip-in
	result.BendingKsi = loads.MomentKipFt * 12.0 / section.SxIn3
	result.AllowableBendingKsi = aisc.Fb(section.FyKsi)
	result.BendingRatio = result.BendingKsi / result.AllowableBendingKsi

	// Shear: fv = V/A, conservative average shear
	result.ShearKsi = loads.ShearKips / section.AreaIn2
	result.AllowableShearKsi = aisc.Fv(section.FyKsi)
	result.ShearRatio = result.ShearKsi / result.AllowableShearKsi

	// Combined interaction, conservative linear sum
	result.CombinedRatio = result.BendingRatio + result.ShearRatio

	// Cantilever tip deflection under the wind force applied at the sign
	// centroid: δ = F*Lc³/(3*E*I)
	armIn := loads.CentroidFt * 12.0
	heightIn := poleHeightFt * 12.0
	result.DeflectionIn = loads.WindForceLbs * math.Pow(armIn, 3) /
		(3.0 * aisc.E * 1000.0 * section.IxIn4)
	if result.DeflectionIn > 0 {
		result.DeflectionRatio = heightIn / result.DeflectionIn
	} else {
		result.DeflectionRatio = math.Inf(1)
	}

	result.SlendernessRatio = heightIn / section.RxIn

	result.PassesBending = result.BendingRatio <= 1.0
	result.PassesShear = result.ShearRatio <= 1.0
	result.PassesCombined = result.CombinedRatio <= 1.0
	result.PassesDeflection = result.DeflectionRatio >= limits.DeflectionRatio
	result.Passes = result.PassesBending && result.PassesShear &&
		result.PassesCombined && result.PassesDeflection

	if result.SlendernessRatio > aisc.MaxSlendernessRatio {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"Slenderness ratio L/r = %.1f exceeds %.0f (AISC limit); pole may be susceptible to buckling",
			result.SlendernessRatio, aisc.MaxSlendernessRatio))
	}
	if result.Passes && result.BendingRatio > 0.9 {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"Bending stress ratio %.2f exceeds 0.90 - near capacity", result.BendingRatio))
	}

	if result.Passes {
		result.Message = fmt.Sprintf("Section %s adequate: bending %.2f, shear %.2f, combined %.2f, deflection L/%.0f",
			section.Designation, result.BendingRatio, result.ShearRatio, result.CombinedRatio, result.DeflectionRatio)
	} else {
		name, severity := result.WorstCheck()
		result.Message = fmt.Sprintf("Section %s inadequate: %s governs at %.2f", section.Designation, name, severity)
	}

	return result, nil
}

// WorstCheck returns the most severe check name and its severity ratio.
// Severity above 1.0 means failing; deflection severity is the required
// ratio over the achieved ratio so all checks compare on one scale.
// Combined is named only when it fails and neither constituent stress
// fails alone, since the sum always exceeds the larger term.
func (r *CheckResult) WorstCheck() (string, float64) {
	name := "BENDING"
	severity := r.BendingRatio

	if r.ShearRatio > severity {
		name, severity = "SHEAR", r.ShearRatio
	}

	if r.CombinedRatio > 1.0 && r.BendingRatio <= 1.0 && r.ShearRatio <= 1.0 {
		name, severity = "COMBINED", r.CombinedRatio
	}

	deflectionSeverity := 0.0
	if !math.IsInf(r.DeflectionRatio, 1) && r.DeflectionRatio > 0 {
		deflectionSeverity = r.DeflectionLimit / r.DeflectionRatio
	}
	if deflectionSeverity > severity {
		name, severity = "DEFLECTION", deflectionSeverity
	}

	return name, severity
}
