package aci

import (
	"math"

	"github.com/apexsigns/signcalc/internal/errs"
)

// ACI 318-19 Reinforcement Constants

const (
	// Normal weight concrete density (pcf)
	ConcreteDensityPCF = 150.0

	// Default material strengths
	DefaultFcKsi = 3.0  // 3000 psi concrete
	DefaultFyKsi = 60.0 // Grade 60 rebar

	// Tension development length, Equation 25.4.2.3a simplified form:
	// ld = fy*ψt*ψe*ψs / (25*λ*√f'c) * db
	DevelopmentCoefficient = 25.0
	MinDevelopmentLengthIn = 12.0 // Section 25.4.2.1

	// Reinforcement ratio limits
	MinSteelRatio = 0.0018 // Section 24.4.3.2
	MaxSteelRatio = 0.025  // practical maximum

	// Concrete cover, Table 20.5.1.3.1
	CoverCastAgainstEarthIn = 3.0
	CoverFormedIn           = 1.5

	// Drilled piers, Section 13.3: minimum longitudinal bar count
	MinDrilledPierBars = 6

	// Accepted input ranges; outside is a validation error
	MinFcKsi    = 2.5 // Section 19.2.1.1 floor
	MaxFcKsi    = 10.0
	MinFyKsi    = 40.0 // Table 20.2.2.4(a)
	MaxFyKsi    = 80.0
	MinCoverIn  = 1.5
	MaxCoverIn  = 6.0
)

// BarSize is a US customary rebar designation.
type BarSize string

const (
	Bar3  BarSize = "#3"
	Bar4  BarSize = "#4"
	Bar5  BarSize = "#5"
	Bar6  BarSize = "#6"
	Bar7  BarSize = "#7"
	Bar8  BarSize = "#8"
	Bar9  BarSize = "#9"
	Bar10 BarSize = "#10"
	Bar11 BarSize = "#11"
)

// BarProperties holds nominal bar dimensions.
// ACI 318-19 Appendix A
type BarProperties struct {
	DiameterIn float64
	AreaIn2    float64
	WeightPLF  float64
}

// BarSizes lists the supported sizes in ascending order.
var BarSizes = []BarSize{Bar3, Bar4, Bar5, Bar6, Bar7, Bar8, Bar9, Bar10, Bar11}

var barTable = map[BarSize]BarProperties{
	Bar3:  {DiameterIn: 0.375, AreaIn2: 0.11, WeightPLF: 0.376},
	Bar4:  {DiameterIn: 0.500, AreaIn2: 0.20, WeightPLF: 0.668},
	Bar5:  {DiameterIn: 0.625, AreaIn2: 0.31, WeightPLF: 1.043},
	Bar6:  {DiameterIn: 0.750, AreaIn2: 0.44, WeightPLF: 1.502},
	Bar7:  {DiameterIn: 0.875, AreaIn2: 0.60, WeightPLF: 2.044},
	Bar8:  {DiameterIn: 1.000, AreaIn2: 0.79, WeightPLF: 2.670},
	Bar9:  {DiameterIn: 1.128, AreaIn2: 1.00, WeightPLF: 3.400},
	Bar10: {DiameterIn: 1.270, AreaIn2: 1.27, WeightPLF: 4.303},
	Bar11: {DiameterIn: 1.410, AreaIn2: 1.56, WeightPLF: 5.313},
}

// Properties returns the nominal properties for a bar size. The second
// return is false for an unknown designation.
func Properties(size BarSize) (BarProperties, bool) {
	p, ok := barTable[size]
	return p, ok
}

// DevelopmentFactors are the modification factors applied to the tension
// development length.
// ACI 318-19 Table 25.4.2.5
type DevelopmentFactors struct {
	PsiT   float64 `json:"psi_t"`  // top bar: 1.3 with >12 in fresh concrete below
	PsiE   float64 `json:"psi_e"`  // epoxy coating: 1.5
	PsiS   float64 `json:"psi_s"`  // size: 0.8 for #6 and smaller
	Lambda float64 `json:"lambda"` // lightweight concrete: 1.0 normal weight
}

// TensionDevelopmentLength calculates ld in inches per Equation 25.4.2.3a,
// floored at the 12 in code minimum. fc and fy are validated against the
// accepted ranges before use.
func TensionDevelopmentLength(size BarSize, fcKsi, fyKsi float64, coated, topBar bool) (float64, DevelopmentFactors, error) {
	props, ok := barTable[size]
	if !ok {
		return 0, DevelopmentFactors{}, errs.Validationf("bar_size", "ACI 318-19 Appendix A",
			"unknown bar size %q", string(size))
	}
	if err := ValidateMaterials(fcKsi, fyKsi); err != nil {
		return 0, DevelopmentFactors{}, err
	}

	f := DevelopmentFactors{PsiT: 1.0, PsiE: 1.0, PsiS: 1.0, Lambda: 1.0}
	if topBar {
		f.PsiT = 1.3
	}
	if coated {
		f.PsiE = 1.5
	}
	switch size {
	case Bar3, Bar4, Bar5, Bar6:
		f.PsiS = 0.8
	}

	fcPsi := fcKsi * 1000.0
	fyPsi := fyKsi * 1000.0

	ld := fyPsi * f.PsiT * f.PsiE * f.PsiS / (DevelopmentCoefficient * f.Lambda * math.Sqrt(fcPsi)) * props.DiameterIn

	return math.Max(MinDevelopmentLengthIn, ld), f, nil
}

// ValidateMaterials checks concrete and rebar strengths against the
// accepted code ranges.
func ValidateMaterials(fcKsi, fyKsi float64) error {
	if fcKsi < MinFcKsi || fcKsi > MaxFcKsi {
		return errs.Validationf("fc_ksi", "ACI 318-19 Section 19.2.1.1",
			"concrete strength %.2f ksi outside accepted range %.1f-%.1f ksi", fcKsi, MinFcKsi, MaxFcKsi)
	}
	if fyKsi < MinFyKsi || fyKsi > MaxFyKsi {
		return errs.Validationf("fy_ksi", "ACI 318-19 Table 20.2.2.4(a)",
			"rebar yield strength %.1f ksi outside accepted range %.0f-%.0f ksi", fyKsi, MinFyKsi, MaxFyKsi)
	}
	return nil
}

// ValidateCover checks concrete cover against Table 20.5.1.3.1 limits.
func ValidateCover(coverIn float64) error {
	if coverIn < MinCoverIn || coverIn > MaxCoverIn {
		return errs.Validationf("cover_in", "ACI 318-19 Table 20.5.1.3.1",
			"concrete cover %.2f in outside accepted range %.1f-%.1f in", coverIn, MinCoverIn, MaxCoverIn)
	}
	return nil
}
