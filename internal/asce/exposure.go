package asce

import (
	"math"

	"github.com/apexsigns/signcalc/internal/errs"
)

// ExposureCategory is the terrain roughness classification
// ASCE 7-22 Section 26.7.3
type ExposureCategory string

const (
	ExposureB ExposureCategory = "B" // urban, suburban, wooded terrain
	ExposureC ExposureCategory = "C" // open terrain, scattered obstructions
	ExposureD ExposureCategory = "D" // flat unobstructed areas, water surfaces
)

// RiskCategory classifies the structure per ASCE 7-22 Table 1.5-1
type RiskCategory string

const (
	RiskI   RiskCategory = "I"
	RiskII  RiskCategory = "II"
	RiskIII RiskCategory = "III"
	RiskIV  RiskCategory = "IV"
)

const (
	// MinHeightFt is the minimum lookup height for Kz; the code defines
	// constant velocity pressure below 15 ft.
	MinHeightFt = 15.0

	// Basic wind speed range covered by the ASCE 7-22 hazard maps (mph)
	MinWindSpeedMPH = 85.0
	MaxWindSpeedMPH = 200.0
)

// kzBreakpoint pairs a tabulated height with its exposure coefficient.
type kzBreakpoint struct {
	HeightFt float64
	Kz       float64
}

// exposureProfile holds the Kz breakpoint table and gradient-wind constants
// for one exposure category.
// ASCE 7-22 Table 26.10-1, Table 26.11-1
type exposureProfile struct {
	Alpha float64 // terrain exposure constant α
	Zg    float64 // gradient height zg (ft)
	Table []kzBreakpoint
}

var exposureProfiles = map[ExposureCategory]exposureProfile{
	ExposureB: {
		Alpha: 7.0,
		Zg:    1200.0,
		Table: []kzBreakpoint{
			{15, 0.57}, {20, 0.62}, {25, 0.66}, {30, 0.70},
			{40, 0.76}, {50, 0.81}, {60, 0.85}, {70, 0.89},
			{80, 0.93}, {90, 0.96}, {100, 0.99}, {120, 1.04},
			{140, 1.09}, {160, 1.13},
		},
	},
	ExposureC: {
		Alpha: 9.5,
		Zg:    900.0,
		Table: []kzBreakpoint{
			{15, 0.85}, {20, 0.90}, {25, 0.94}, {30, 0.98},
			{40, 1.04}, {50, 1.09}, {60, 1.13}, {70, 1.17},
			{80, 1.21}, {90, 1.24}, {100, 1.26}, {120, 1.31},
			{140, 1.36}, {160, 1.39},
		},
	},
	ExposureD: {
		Alpha: 11.5,
		Zg:    700.0,
		Table: []kzBreakpoint{
			{15, 1.03}, {20, 1.08}, {25, 1.12}, {30, 1.16},
			{40, 1.22}, {50, 1.27}, {60, 1.31}, {70, 1.34},
			{80, 1.38}, {90, 1.40}, {100, 1.43}, {120, 1.48},
			{140, 1.52}, {160, 1.55},
		},
	},
}

// Wind importance factors per ASCE 7-22 Table 1.5-2
var windImportanceFactors = map[RiskCategory]float64{
	RiskI:   0.87,
	RiskII:  1.00,
	RiskIII: 1.15,
	RiskIV:  1.15,
}

// Valid reports whether e is one of the defined exposure categories.
func (e ExposureCategory) Valid() bool {
	_, ok := exposureProfiles[e]
	return ok
}

// Valid reports whether r is one of the defined risk categories.
func (r RiskCategory) Valid() bool {
	_, ok := windImportanceFactors[r]
	return ok
}

// Kz calculates the velocity pressure exposure coefficient by linear
// interpolation over the breakpoint table, after clamping the height to the
// 15 ft code minimum. Above the last tabulated height the gradient-wind
// power law Kz = 2.01*(z/zg)^(2/α) applies.
// ASCE 7-22 Section 26.10.1, Table 26.10-1
func Kz(heightFt float64, exposure ExposureCategory) (float64, error) {
	profile, ok := exposureProfiles[exposure]
	if !ok {
		return 0, errs.Validationf("exposure", "ASCE 7-22 Section 26.7.3",
			"unknown exposure category %q (expected B, C or D)", string(exposure))
	}

	z := math.Max(heightFt, MinHeightFt)
	table := profile.Table

	if z > table[len(table)-1].HeightFt {
		return 2.01 * math.Pow(z/profile.Zg, 2.0/profile.Alpha), nil
	}

	for i, bp := range table {
		if z == bp.HeightFt {
			return bp.Kz, nil
		}
		if z < bp.HeightFt {
			lo := table[i-1]
			frac := (z - lo.HeightFt) / (bp.HeightFt - lo.HeightFt)
			return lo.Kz + frac*(bp.Kz-lo.Kz), nil
		}
	}

	return table[len(table)-1].Kz, nil
}

// ImportanceFactor returns the wind importance factor Iw.
// ASCE 7-22 Table 1.5-2
func ImportanceFactor(risk RiskCategory) (float64, error) {
	iw, ok := windImportanceFactors[risk]
	if !ok {
		return 0, errs.Validationf("risk_category", "ASCE 7-22 Table 1.5-1",
			"unknown risk category %q (expected I, II, III or IV)", string(risk))
	}
	return iw, nil
}
