package solver

import (
	"fmt"

	"github.com/apexsigns/signcalc/internal/asce"
	"github.com/apexsigns/signcalc/internal/errs"
	"github.com/apexsigns/signcalc/internal/ibc"
)

const (
	// MinPoleSpacingFt is the closest two independent foundations can sit.
	MinPoleSpacingFt = 3.0

	// Spacing-to-height thresholds for the lateral stability check.
	BracingRecommendedRatio = 1.5
	BracingRequiredRatio    = 2.0

	// SettlementSpacingLimitFt is the spacing beyond which differential
	// settlement between the two foundations needs coordination.
	SettlementSpacingLimitFt = 15.0

	// DefaultSettlementLimitIn is the allowed differential settlement.
	DefaultSettlementLimitIn = 0.5
)

// Distribution selects how the sign load splits between the two poles.
type Distribution string

const (
	DistributionEqual        Distribution = "equal"
	DistributionProportional Distribution = "proportional"
)

// Valid reports whether d is a known distribution method.
func (d Distribution) Valid() bool {
	return d == DistributionEqual || d == DistributionProportional
}

// DoubleConfig describes a sign carried on two poles. The single-pole
// fields describe the whole sign; the pipeline splits the load and
// designs one pole of the symmetric pair.
type DoubleConfig struct {
	SingleConfig

	SpacingFt       float64      `json:"spacing_ft"`
	Distribution    Distribution `json:"distribution,omitempty"`
	BracingProvided bool         `json:"bracing_provided,omitempty"`
}

func (cfg DoubleConfig) withDefaults() DoubleConfig {
	cfg.SingleConfig = cfg.SingleConfig.withDefaults()
	if cfg.Distribution == "" {
		cfg.Distribution = DistributionEqual
	}
	return cfg
}

func (cfg DoubleConfig) validate() error {
	if cfg.SpacingFt < MinPoleSpacingFt {
		return errs.Validationf("spacing_ft", "",
			"pole spacing %.1f ft is too small (minimum %.0f ft)", cfg.SpacingFt, MinPoleSpacingFt)
	}
	if !cfg.Distribution.Valid() {
		return errs.Validationf("distribution", "",
			"invalid load distribution method %q", string(cfg.Distribution))
	}
	if cfg.Application == WallMount {
		return errs.Validationf("application", "",
			"double-pole analysis requires a ground-mounted application, got %q", string(cfg.Application))
	}
	return nil
}

// DoubleChecks gates a two-pole design: every single-pole gate on the
// symmetric pole, plus the two checks that only exist between poles.
type DoubleChecks struct {
	PerPole          Checks `json:"per_pole"`
	LateralStability bool   `json:"lateral_stability"`
	Settlement       bool   `json:"settlement"`
}

// All reports whether every gate passed.
func (c DoubleChecks) All() bool {
	return c.PerPole.All() && c.LateralStability && c.Settlement
}

// DoubleResult is the complete two-pole design record. The two poles are
// symmetric, so PerPole is the design of either one; totals cover the
// whole structure.
type DoubleResult struct {
	Config DoubleConfig `json:"config"`

	TotalWind            *asce.SignLoad `json:"total_wind"`
	TotalDeadLbs         float64        `json:"total_dead_lbs"`
	ForcePerPoleLbs      float64        `json:"force_per_pole_lbs"`
	MomentPerPoleKipFt   float64        `json:"moment_per_pole_kipft"`
	SpacingToHeightRatio float64        `json:"spacing_to_height_ratio"`
	SettlementLimitIn    float64        `json:"settlement_limit_in"`

	PerPole *DesignResult `json:"per_pole"`

	Checks              DoubleChecks `json:"checks"`
	Approved            bool         `json:"approved"`
	CriticalFailureMode string       `json:"critical_failure_mode,omitempty"`
	Warnings            []string     `json:"warnings,omitempty"`
	CodeRefs            []string     `json:"code_refs,omitempty"`
	ContentHash         string       `json:"content_hash"`
}

// SolveDouble designs a two-pole sign: total wind, load split, lateral
// stability between the poles, the full single-pole pipeline on one pole
// of the pair, and the differential settlement check.
func SolveDouble(cfg DoubleConfig) (*DoubleResult, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := cfg.SingleConfig.validate(); err != nil {
		return nil, err
	}

	g := cfg.Geometry
	var warnings, codeRefs []string

	totalWind, err := asce.ForceOnSign(cfg.Wind, g.SignAreaSqFt, g.SignHeightFt, g.PoleHeightFt,
		cfg.GustFactor, cfg.ForceCoefficient)
	if err != nil {
		return nil, err
	}
	codeRefs = append(codeRefs, totalWind.CodeRefs...)

	// Both methods split 50/50 for a symmetric pair; proportional exists
	// for future non-symmetric faces and flags the assumption.
	switch cfg.Distribution {
	case DistributionProportional:
		warnings = append(warnings,
			"Proportional load distribution assumes symmetric sign geometry. "+
				"For non-symmetric signs, manual adjustment may be required.")
		codeRefs = append(codeRefs, "Load Distribution: Proportional (symmetric assumed)")
	default:
		codeRefs = append(codeRefs, "Load Distribution: Equal (50% per pole)")
	}

	ratio := cfg.SpacingFt / g.PoleHeightFt
	stabilityOK := true
	switch {
	case ratio > BracingRequiredRatio:
		warnings = append(warnings, fmt.Sprintf(
			"Pole spacing (%g ft) exceeds 2x pole height. Lateral bracing REQUIRED for stability.",
			cfg.SpacingFt))
		stabilityOK = false
	case ratio > BracingRecommendedRatio:
		warnings = append(warnings, fmt.Sprintf(
			"Pole spacing (%g ft) exceeds 1.5x pole height (%g ft). Lateral bracing recommended.",
			cfg.SpacingFt, g.PoleHeightFt))
		stabilityOK = false
	}
	if cfg.BracingProvided {
		stabilityOK = true
		codeRefs = append(codeRefs, "Lateral bracing provided between poles")
	}

	perPole, err := SolveSingle(halfConfig(cfg.SingleConfig))
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, perPole.Warnings...)

	perPoleDead := perPole.Loads.DeadTotalLbs
	if perPoleDead == 0 {
		perPoleDead = perPole.Loads.DeadSignLbs
	}

	res := &DoubleResult{
		Config: cfg,

		TotalWind:            totalWind,
		TotalDeadLbs:         2.0 * perPoleDead,
		ForcePerPoleLbs:      totalWind.ForceLbs / 2.0,
		MomentPerPoleKipFt:   totalWind.MomentKipFt / 2.0,
		SpacingToHeightRatio: ratio,
		SettlementLimitIn:    DefaultSettlementLimitIn,

		PerPole: perPole,
	}

	res.Checks = DoubleChecks{
		PerPole:          perPole.Checks,
		LateralStability: stabilityOK,
		Settlement:       cfg.SpacingFt <= SettlementSpacingLimitFt,
	}
	if !res.Checks.Settlement {
		warnings = append(warnings, fmt.Sprintf(
			"Large pole spacing (%g ft) may result in differential settlement. Foundation coordination critical.",
			cfg.SpacingFt))
	}

	res.Approved = res.Checks.All()
	if !res.Approved {
		soil := cfg.SoilBearingPSF
		if soil == 0 {
			soil = ibc.DefaultSoilBearingPSF
		}
		modes := designFailureModes(perPole, cfg.Application.Criteria(), soil)
		if perPole.Selection != nil && !perPole.Selection.HasFeasible() {
			modes = append(modes, failureMode{infeasibleMode(perPole.Selection), 1.0})
		}
		if !res.Checks.LateralStability {
			modes = append(modes, failureMode{"LATERAL_STABILITY", 1.0})
		}
		if !res.Checks.Settlement {
			modes = append(modes, failureMode{"DIFFERENTIAL_SETTLEMENT", cfg.SpacingFt / SettlementSpacingLimitFt})
		}
		res.CriticalFailureMode = worstMode(modes)
	}

	res.Warnings = warnings
	res.CodeRefs = codeRefs
	res.ContentHash = ""
	h, err := ContentHash(res)
	if err != nil {
		return nil, err
	}
	res.ContentHash = h
	return res, nil
}

// halfConfig builds the tributary configuration for one pole of a
// symmetric pair: half the face width and area, full pole height. Wind
// pressure is unchanged, so force and moment halve with the area.
func halfConfig(cfg SingleConfig) SingleConfig {
	cfg.Geometry.SignAreaSqFt /= 2.0
	if cfg.Geometry.SignWidthFt > 0 {
		cfg.Geometry.SignWidthFt /= 2.0
	}
	return cfg
}
