// Package foundation sizes drilled pier foundations for pole signs per
// IBC 2024 Chapter 18 and checks overturning stability per Section 1605.2.1.
package foundation

import (
	"fmt"
	"math"

	"github.com/apexsigns/signcalc/internal/errs"
	"github.com/apexsigns/signcalc/internal/ibc"
)

// Config controls the embedment iteration. Zero values take the defaults.
type Config struct {
	// ToleranceFt is the absolute convergence tolerance on depth (ft).
	ToleranceFt float64 `json:"tolerance_ft"`
	// MaxIterations caps the embedment iteration.
	MaxIterations int `json:"max_iterations"`
}

// DefaultConfig converges in 2-3 passes for typical sign foundations.
func DefaultConfig() Config {
	return Config{ToleranceFt: 0.1, MaxIterations: 20}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ToleranceFt <= 0 {
		c.ToleranceFt = d.ToleranceFt
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = d.MaxIterations
	}
	return c
}

// Input describes the loads and soil for a single pier.
type Input struct {
	MomentKipFt    float64 `json:"moment_kipft"`     // overturning moment at grade
	DiameterFt     float64 `json:"diameter_ft"`      // pier diameter
	SoilBearingPSF float64 `json:"soil_bearing_psf"` // allowable soil pressure
	DeadLoadLbs    float64 `json:"dead_load_lbs"`    // pole + sign + hardware
	// CalibrationK scales the initial depth estimate (typically 1.0-1.5).
	// Zero takes 1.0.
	CalibrationK float64 `json:"calibration_k,omitempty"`
	// MinDepthFt floors the converged depth, e.g. the contractor's
	// standard burial. The code minimum applies regardless.
	MinDepthFt float64 `json:"min_depth_ft,omitempty"`
}

func (in Input) withDefaults() Input {
	if in.CalibrationK == 0 {
		in.CalibrationK = 1.0
	}
	if in.SoilBearingPSF == 0 {
		in.SoilBearingPSF = ibc.DefaultSoilBearingPSF
	}
	return in
}

func (in Input) validate() error {
	if in.MomentKipFt <= 0 {
		return errs.Validationf("moment_kipft", "IBC 2024 Section 1807.3",
			"overturning moment must be positive, got %.2f kip-ft", in.MomentKipFt)
	}
	if in.DiameterFt <= 0 {
		return errs.Validationf("diameter_ft", "IBC 2024 Section 1807.3",
			"pier diameter must be positive, got %.2f ft", in.DiameterFt)
	}
	if in.SoilBearingPSF <= 0 {
		return errs.Validationf("soil_bearing_psf", "IBC 2024 Table 1806.2",
			"allowable soil pressure must be positive, got %.0f psf", in.SoilBearingPSF)
	}
	if in.CalibrationK < 0 {
		return errs.Validationf("calibration_k", "IBC 2024 Section 1807.3",
			"calibration factor must not be negative, got %.2f", in.CalibrationK)
	}
	if in.MinDepthFt < 0 {
		return errs.Validationf("min_depth_ft", "IBC 2024 Section 1807.3",
			"minimum depth must not be negative, got %.2f ft", in.MinDepthFt)
	}
	return nil
}

// Result is the sized foundation with stability checks. Pass flags are
// independent; Passes is their AND.
type Result struct {
	DepthFt    float64 `json:"depth_ft"`
	DiameterFt float64 `json:"diameter_ft"`
	Iterations int     `json:"iterations"`

	OverturningMomentKipFt float64 `json:"overturning_moment_kipft"`
	ResistingMomentKipFt   float64 `json:"resisting_moment_kipft"`
	SafetyFactor           float64 `json:"safety_factor_overturning"`
	MaxSoilPressurePSF     float64 `json:"max_soil_pressure_psf"`
	ConcreteVolumeCuYd     float64 `json:"concrete_volume_cuyd"`

	PassesOverturning bool `json:"passes_overturning"`
	PassesSoilBearing bool `json:"passes_soil_bearing"`
	Passes            bool `json:"passes"`

	// EngineeringReview marks configurations the estimating pipeline
	// should not price without a licensed engineer's signoff.
	EngineeringReview bool     `json:"engineering_review"`
	Warnings          []string `json:"warnings,omitempty"`
	CodeRefs          []string `json:"code_refs"`
}

// Embedment solves IBC 2024 Equation 18-1 for nonconstrained pole embedment:
//
//	d = (4.36 * h / b) * sqrt(P / S)
//
// where h = 2/3 of the trial depth, P = M/h is the equivalent lateral force
// and S is the allowable lateral soil pressure. Depth appears on both sides
// so the equation is iterated to convergence; an exhausted iteration cap is
// an error, never a silently returned unconverged depth. The depth floor
// (code minimum or caller minimum, whichever is larger) applies after
// convergence.
func Embedment(in Input, cfg Config) (depthFt float64, iterations int, err error) {
	in = in.withDefaults()
	if err := in.validate(); err != nil {
		return 0, 0, err
	}
	cfg = cfg.withDefaults()

	floor := math.Max(ibc.MinEmbedmentFt, in.MinDepthFt)
	estimate := 3.0 * in.CalibrationK
	for i := 1; i <= cfg.MaxIterations; i++ {
		armFt := estimate * ibc.LateralArmDepthFraction
		lateralLbs := in.MomentKipFt * 1000.0 / armFt
		depth := ibc.EmbedmentCoefficient * armFt / in.DiameterFt *
			math.Sqrt(lateralLbs/in.SoilBearingPSF)

		if math.Abs(depth-estimate) < math.Max(cfg.ToleranceFt, 0.01*depth) {
			return math.Max(floor, depth), i, nil
		}
		estimate = depth
	}

	return 0, cfg.MaxIterations, errs.Calculationf(cfg.MaxIterations,
		"IBC 2024 Section 1807.3.2.1",
		"embedment depth did not converge for diameter %.1f ft, soil %.0f psf",
		in.DiameterFt, in.SoilBearingPSF)
}

// Design sizes the pier embedment and runs the overturning and soil
// bearing checks.
func Design(in Input, cfg Config) (*Result, error) {
	in = in.withDefaults()
	if err := in.validate(); err != nil {
		return nil, err
	}

	result := &Result{
		DiameterFt:             in.DiameterFt,
		OverturningMomentKipFt: in.MomentKipFt,
		CodeRefs: []string{
			"IBC 2024 Section 1807.3.2.1: Nonconstrained Pole Embedment (Eq 18-1)",
			"IBC 2024 Section 1605.2.1: Overturning Stability",
			"IBC 2024 Table 1806.2: Presumptive Load-Bearing Values",
		},
	}

	// Upper bound on the moment this diameter and soil can resist; beyond
	// it the iteration lands at impractical depths.
	areaSqFt := math.Pi * math.Pow(in.DiameterFt/2.0, 2)
	maxResisting := in.SoilBearingPSF * areaSqFt * in.DiameterFt / 12.0 / 1000.0
	if in.MomentKipFt > maxResisting {
		result.EngineeringReview = true
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"Load %.1f kip-ft exceeds max resisting moment %.1f kip-ft for diameter %.1fft and soil %.0fpsf. Engineering review recommended.",
			in.MomentKipFt, maxResisting, in.DiameterFt, in.SoilBearingPSF))
	}

	depth, iterations, err := Embedment(in, cfg)
	if err != nil {
		return nil, err
	}
	result.DepthFt = depth
	result.Iterations = iterations

	if depth > ibc.MaxEmbedmentFt {
		result.EngineeringReview = true
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"Foundation depth %.1f ft exceeds %.0f ft practical limit. Engineering review recommended.",
			depth, ibc.MaxEmbedmentFt))
	}

	result.ResistingMomentKipFt = ResistingMoment(in.DeadLoadLbs, in.DiameterFt, depth)
	if in.MomentKipFt > 0 {
		result.SafetyFactor = result.ResistingMomentKipFt / in.MomentKipFt
	} else {
		result.SafetyFactor = math.Inf(1)
	}

	// Bearing under combined axial and overturning at the pier base,
	// P/A + M/S with S for a circular section (ft^3)
	radius := in.DiameterFt / 2.0
	result.MaxSoilPressurePSF = in.DeadLoadLbs/areaSqFt +
		in.MomentKipFt*1000.0*radius/(math.Pi*math.Pow(radius, 4)/4.0)

	result.ConcreteVolumeCuYd = areaSqFt * depth / 27.0

	result.PassesOverturning = result.SafetyFactor >= ibc.OverturningSafetyFactorMin
	result.PassesSoilBearing = result.MaxSoilPressurePSF <= in.SoilBearingPSF
	result.Passes = result.PassesOverturning && result.PassesSoilBearing

	if result.PassesOverturning && result.SafetyFactor < 2.0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"Overturning safety factor %.2f is below 2.0 (exceeds IBC minimum 1.5 but low margin)",
			result.SafetyFactor))
	}

	return result, nil
}

// ResistingMoment is the stabilizing moment from pier self-weight plus the
// passive soil wedge acting at one third of the embedment depth (kip-ft).
func ResistingMoment(deadLoadLbs, diameterFt, depthFt float64) float64 {
	weightMoment := deadLoadLbs / 1000.0 * (diameterFt / 2.0)
	passiveForceKips := 0.5 * ibc.SoilDensityPCF * depthFt * depthFt *
		ibc.PassivePressureCoefficient * diameterFt / 1000.0
	return weightMoment + passiveForceKips*(depthFt/3.0)
}

// DiameterForOverturning searches 3.0-10.0 ft in 0.1 ft steps for the
// smallest pier diameter meeting the overturning safety factor at the given
// embedment. Returns the practical maximum when no diameter in range works.
func DiameterForOverturning(momentKipFt, deadLoadLbs, depthFt, targetSF float64) float64 {
	const (
		minDiameterFt = 3.0
		maxDiameterFt = 10.0
	)
	if targetSF <= 0 {
		targetSF = ibc.OverturningSafetyFactorMin
	}
	if momentKipFt <= 0 {
		return minDiameterFt
	}

	for tenths := int(minDiameterFt * 10); tenths <= int(maxDiameterFt*10); tenths++ {
		diameter := float64(tenths) / 10.0
		if ResistingMoment(deadLoadLbs, diameter, depthFt)/momentKipFt >= targetSF {
			return diameter
		}
	}
	return maxDiameterFt
}
