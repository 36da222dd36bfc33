package asce

import (
	"fmt"

	"github.com/apexsigns/signcalc/internal/errs"
)

// Default factors for solid freestanding signs
const (
	DefaultGustFactor       = 0.85 // G for rigid structures (Section 26.11)
	DefaultForceCoefficient = 1.2  // Cf for flat signs (Figure 29.3-1)
	DefaultDirectionality   = 0.85 // Kd for solid signs (Table 26.6-1)
)

// SiteWind is the resolved site wind input. Kzt, Kd and Ke default to the
// sign-structure values when left zero.
type SiteWind struct {
	SpeedMPH float64          `json:"speed_mph"` // V - basic wind speed, 3-second gust
	Exposure ExposureCategory `json:"exposure"`
	Risk     RiskCategory     `json:"risk_category"`
	Kzt      float64          `json:"kzt,omitempty"` // topographic factor (Section 26.8)
	Kd       float64          `json:"kd,omitempty"`  // directionality factor (Table 26.6-1)
	Ke       float64          `json:"ke,omitempty"`  // ground elevation factor (Section 26.9)
}

func (w SiteWind) withDefaults() SiteWind {
	if w.Kzt == 0 {
		w.Kzt = 1.0
	}
	if w.Kd == 0 {
		w.Kd = DefaultDirectionality
	}
	if w.Ke == 0 {
		w.Ke = 1.0
	}
	return w
}

// Validate checks the wind input against the code-defined ranges.
// Out-of-range values are errors, never clamped.
func (w SiteWind) Validate() error {
	if w.SpeedMPH < MinWindSpeedMPH || w.SpeedMPH > MaxWindSpeedMPH {
		return errs.Validationf("wind_speed_mph", "ASCE 7-22 Section 26.5.1",
			"basic wind speed %.1f mph outside supported range %.0f-%.0f mph",
			w.SpeedMPH, MinWindSpeedMPH, MaxWindSpeedMPH)
	}
	if !w.Exposure.Valid() {
		return errs.Validationf("exposure", "ASCE 7-22 Section 26.7.3",
			"unknown exposure category %q (expected B, C or D)", string(w.Exposure))
	}
	if !w.Risk.Valid() {
		return errs.Validationf("risk_category", "ASCE 7-22 Table 1.5-1",
			"unknown risk category %q (expected I, II, III or IV)", string(w.Risk))
	}
	return nil
}

// VelocityResult carries qz together with the coefficients that produced it.
type VelocityResult struct {
	QzPSF float64 `json:"qz_psf"`
	Kz    float64 `json:"kz"`
	Iw    float64 `json:"iw"`
}

// VelocityPressure calculates qz at the given height.
//
//	qz = 0.00256*Kz*Kzt*Kd*Ke*V²  (psf)
//
// The gust factor G and importance factor Iw are not part of velocity
// pressure; both enter in DesignPressure only.
// ASCE 7-22 Equation 26.10-1
func VelocityPressure(w SiteWind, heightFt float64) (*VelocityResult, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	w = w.withDefaults()

	kz, err := Kz(heightFt, w.Exposure)
	if err != nil {
		return nil, err
	}
	iw, err := ImportanceFactor(w.Risk)
	if err != nil {
		return nil, err
	}

	qz := 0.00256 * kz * w.Kzt * w.Kd * w.Ke * w.SpeedMPH * w.SpeedMPH

	return &VelocityResult{QzPSF: qz, Kz: kz, Iw: iw}, nil
}

// DesignPressure converts velocity pressure to the design pressure on the
// sign face: p = qz*G*Cf*Iw.
// ASCE 7-22 Section 29.3
func DesignPressure(qzPSF, g, cf, iw float64) float64 {
	return qzPSF * g * cf * iw
}

// SignLoad holds the complete wind derivation for one sign face.
type SignLoad struct {
	VelocityResult
	DesignPressurePSF float64  `json:"design_pressure_psf"`
	ForceLbs          float64  `json:"force_lbs"`
	CentroidFt        float64  `json:"centroid_ft"`
	MomentKipFt       float64  `json:"moment_kipft"`
	CodeRefs          []string `json:"code_refs"`
}

// ForceOnSign calculates the design wind force on a sign face. Pressure is
// evaluated at the sign centroid (pole height + half the face height) and
// applied over the full face area; the base overturning moment uses the
// same arm. Zero g or cf select the flat-sign defaults.
// ASCE 7-22 Chapter 29
func ForceOnSign(w SiteWind, signAreaSqFt, signHeightFt, poleHeightFt, g, cf float64) (*SignLoad, error) {
	if signAreaSqFt <= 0 {
		return nil, errs.Validationf("sign_area_sqft", "ASCE 7-22 Section 29.3",
			"sign area must be positive, got %.2f", signAreaSqFt)
	}
	if g == 0 {
		g = DefaultGustFactor
	}
	if cf == 0 {
		cf = DefaultForceCoefficient
	}

	centroid := poleHeightFt + signHeightFt/2.0

	vp, err := VelocityPressure(w, centroid)
	if err != nil {
		return nil, err
	}

	p := DesignPressure(vp.QzPSF, g, cf, vp.Iw)
	force := p * signAreaSqFt
	moment := force / 1000.0 * centroid

	wd := w.withDefaults()
	refs := []string{
		"ASCE 7-22 Eq 26.10-1: Velocity Pressure",
		"ASCE 7-22 Table 26.10-1: Kz Coefficients",
		"ASCE 7-22 Table 1.5-2: Importance Factors",
		fmt.Sprintf("ASCE 7-22 Table 26.6-1: Kd=%.2f", wd.Kd),
		fmt.Sprintf("ASCE 7-22 Fig 29.3-1: Cf=%.2f", cf),
		"ASCE 7-22 Chapter 29: Other Structures",
	}

	return &SignLoad{
		VelocityResult:    *vp,
		DesignPressurePSF: p,
		ForceLbs:          force,
		CentroidFt:        centroid,
		MomentKipFt:       moment,
		CodeRefs:          refs,
	}, nil
}

// PressureProfile samples qz at one-foot steps from the code minimum height
// up to maxHeightFt. Used for the exposure profile chart.
func PressureProfile(w SiteWind, maxHeightFt float64) (heights, qz []float64, err error) {
	if err := w.Validate(); err != nil {
		return nil, nil, err
	}
	if maxHeightFt < MinHeightFt {
		maxHeightFt = MinHeightFt
	}

	for h := MinHeightFt; h <= maxHeightFt; h++ {
		vp, err := VelocityPressure(w, h)
		if err != nil {
			return nil, nil, err
		}
		heights = append(heights, h)
		qz = append(qz, vp.QzPSF)
	}
	return heights, qz, nil
}
