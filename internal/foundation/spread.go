package foundation

import (
	"fmt"
	"math"

	"github.com/apexsigns/signcalc/internal/errs"
	"github.com/apexsigns/signcalc/internal/ibc"
)

// Spread footing sizing rules of thumb: pad width grows with the sign
// area, pad thickness with the pole height, both floored at 3 ft.
const (
	MinPadFt          = 3.0
	padWidthDivisor   = 3.0
	padDepthDivisor   = 8.0
	concreteWeightPCF = 150.0
)

// SpreadInput sizes a square spread footing under a short pole. Zero
// width or thickness sizes the pad by rule; overrides are taken as-is.
type SpreadInput struct {
	MomentKipFt    float64 `json:"moment_kipft"`
	DeadLoadLbs    float64 `json:"dead_load_lbs"`
	SignAreaSqFt   float64 `json:"sign_area_sqft,omitempty"`
	PoleHeightFt   float64 `json:"pole_height_ft,omitempty"`
	SoilBearingPSF float64 `json:"soil_bearing_psf,omitempty"`
	WidthFt        float64 `json:"width_ft,omitempty"`
	ThicknessFt    float64 `json:"thickness_ft,omitempty"`
}

func (in SpreadInput) withDefaults() SpreadInput {
	if in.SoilBearingPSF == 0 {
		in.SoilBearingPSF = ibc.DefaultSoilBearingPSF
	}
	if in.WidthFt == 0 {
		in.WidthFt = math.Max(MinPadFt, math.Sqrt(in.SignAreaSqFt)/padWidthDivisor)
	}
	if in.ThicknessFt == 0 {
		in.ThicknessFt = math.Max(MinPadFt, in.PoleHeightFt/padDepthDivisor)
	}
	return in
}

func (in SpreadInput) validate() error {
	if in.MomentKipFt < 0 {
		return errs.Validationf("moment_kipft", "IBC 2024 Section 1605.2.1",
			"overturning moment must not be negative, got %.2f kip-ft", in.MomentKipFt)
	}
	if in.DeadLoadLbs < 0 {
		return errs.Validationf("dead_load_lbs", "",
			"dead load must not be negative, got %.1f lbs", in.DeadLoadLbs)
	}
	if in.SoilBearingPSF < 0 {
		return errs.Validationf("soil_bearing_psf", "IBC 2024 Table 1806.2",
			"soil bearing capacity must not be negative, got %.1f psf", in.SoilBearingPSF)
	}
	if in.SignAreaSqFt < 0 || in.PoleHeightFt < 0 {
		return errs.Validationf("geometry", "",
			"sign area and pole height must not be negative")
	}
	if in.WidthFt < 0 || in.ThicknessFt < 0 {
		return errs.Validationf("pad_dimensions", "",
			"pad width and thickness must not be negative")
	}
	return nil
}

// SpreadResult is the sized pad with its stability and bearing checks.
// The footing self-weight counts toward the resisting dead load.
type SpreadResult struct {
	WidthFt     float64 `json:"width_ft"`
	LengthFt    float64 `json:"length_ft"`
	ThicknessFt float64 `json:"thickness_ft"`

	FootingWeightLbs float64 `json:"footing_weight_lbs"`
	TotalDeadLoadLbs float64 `json:"total_dead_load_lbs"`

	OverturningMomentKipFt float64 `json:"overturning_moment_kipft"`
	ResistingMomentKipFt   float64 `json:"resisting_moment_kipft"`
	SafetyFactor           float64 `json:"safety_factor"`
	MaxSoilPressurePSF     float64 `json:"max_soil_pressure_psf"`
	SoilBearingPSF         float64 `json:"soil_bearing_psf"`
	ConcreteVolumeCuYd     float64 `json:"concrete_volume_cuyd"`

	PassesOverturning bool `json:"passes_overturning"`
	PassesSoilBearing bool `json:"passes_soil_bearing"`
	Passes            bool `json:"passes"`

	Warnings []string `json:"warnings,omitempty"`
	CodeRefs []string `json:"code_refs,omitempty"`
}

// SpreadFooting sizes a square pad and checks overturning and soil
// bearing. Edge pressure uses the rectangular P/A + 6M/B³ form on the net
// moment after the resisting moment is subtracted.
func SpreadFooting(in SpreadInput) (*SpreadResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	in = in.withDefaults()

	width := in.WidthFt
	thickness := in.ThicknessFt

	footingWeight := width * width * thickness * concreteWeightPCF
	totalDead := in.DeadLoadLbs + footingWeight

	resisting := totalDead * width / 2.0 / 1000.0
	safetyFactor := math.Inf(1)
	if in.MomentKipFt > 0 {
		safetyFactor = resisting / in.MomentKipFt
	}

	netMoment := in.MomentKipFt - resisting
	area := width * width
	avgPressure := totalDead / area
	momentPressure := math.Abs(netMoment*1000.0*6.0) / math.Pow(width, 3)
	maxPressure := avgPressure + momentPressure

	res := &SpreadResult{
		WidthFt:     width,
		LengthFt:    width,
		ThicknessFt: thickness,

		FootingWeightLbs: footingWeight,
		TotalDeadLoadLbs: totalDead,

		OverturningMomentKipFt: in.MomentKipFt,
		ResistingMomentKipFt:   resisting,
		SafetyFactor:           safetyFactor,
		MaxSoilPressurePSF:     maxPressure,
		SoilBearingPSF:         in.SoilBearingPSF,
		ConcreteVolumeCuYd:     area * thickness / 27.0,

		PassesOverturning: safetyFactor >= ibc.OverturningSafetyFactorMin,
		PassesSoilBearing: maxPressure <= in.SoilBearingPSF,

		CodeRefs: []string{
			"IBC 2024 Section 1605.2.1: Overturning Stability",
			"IBC 2024 Section 1807: Foundations",
		},
	}
	res.Passes = res.PassesOverturning && res.PassesSoilBearing

	if safetyFactor < 2.0 {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("Low overturning safety factor: %.2f", safetyFactor))
	}

	return res, nil
}
