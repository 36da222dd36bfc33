package solver

import (
	"fmt"
	"math"
	"sort"

	"github.com/apexsigns/signcalc/internal/aci"
	"github.com/apexsigns/signcalc/internal/asce"
	"github.com/apexsigns/signcalc/internal/catalog"
	"github.com/apexsigns/signcalc/internal/errs"
	"github.com/apexsigns/signcalc/internal/foundation"
	"github.com/apexsigns/signcalc/internal/ibc"
	"github.com/apexsigns/signcalc/internal/member"
	"github.com/apexsigns/signcalc/internal/rebar"
	"github.com/apexsigns/signcalc/internal/selector"
)

const (
	// DefaultTrialEmbedmentFt seeds the foundation diameter search before
	// the embedment solver has produced a converged depth.
	DefaultTrialEmbedmentFt = 4.0

	// SeismicAreaFactor converts Sds and sign area to the simplified
	// lateral seismic force Fs = Sds * area * factor (lbs).
	SeismicAreaFactor = 5.0

	// EccentricityWarningFt is the cabinet offset beyond which torsional
	// effects need attention.
	EccentricityWarningFt = 0.5
)

// SingleConfig describes one sign supported on a single pole. Zero
// optional fields take the application and code defaults.
type SingleConfig struct {
	Application Application   `json:"application,omitempty"`
	Geometry    Geometry      `json:"geometry"`
	Wind        asce.SiteWind `json:"wind"`

	GustFactor       float64 `json:"gust_factor,omitempty"`
	ForceCoefficient float64 `json:"force_coefficient,omitempty"`

	// Section picks the pole by AISC designation; empty runs the section
	// selector, optionally restricted to one family.
	Section string         `json:"section,omitempty"`
	Family  catalog.Family `json:"family,omitempty"`

	// SeismicSds enables the simplified seismic lateral check for
	// monument structures.
	SeismicSds    float64 `json:"seismic_sds,omitempty"`
	GroundSnowPSF float64 `json:"ground_snow_psf,omitempty"`

	SoilBearingPSF       float64 `json:"soil_bearing_psf,omitempty"`
	FoundationDiameterFt float64 `json:"foundation_diameter_ft,omitempty"`
	TrialEmbedmentFt     float64 `json:"trial_embedment_ft,omitempty"`

	// DeflectionLimit overrides the application serviceability limit.
	DeflectionLimit float64 `json:"deflection_limit,omitempty"`

	ConcreteFcKsi float64     `json:"concrete_fc_ksi,omitempty"`
	RebarFyKsi    float64     `json:"rebar_fy_ksi,omitempty"`
	RebarSize     aci.BarSize `json:"rebar_size,omitempty"`
	RebarCoverIn  float64     `json:"rebar_cover_in,omitempty"`

	// Catalog overrides the built-in section dataset. The dataset version
	// is part of the content hash; the catalog itself is not serialized.
	Catalog *catalog.Catalog `json:"-"`
}

func (cfg SingleConfig) withDefaults() SingleConfig {
	if cfg.Application == "" {
		cfg.Application = Pylon
	}
	cfg.Geometry = cfg.Geometry.withDefaults(cfg.Application)
	if cfg.TrialEmbedmentFt == 0 {
		cfg.TrialEmbedmentFt = DefaultTrialEmbedmentFt
	}
	if cfg.DeflectionLimit == 0 {
		cfg.DeflectionLimit = cfg.Application.Criteria().DeflectionLimit
	}
	return cfg
}

func (cfg SingleConfig) validate() error {
	if !cfg.Application.Valid() {
		return errs.Validationf("application", "",
			"unknown application type %q", string(cfg.Application))
	}
	if err := cfg.Geometry.validate(cfg.Application); err != nil {
		return err
	}
	if err := cfg.Wind.Validate(); err != nil {
		return err
	}
	if cfg.SeismicSds < 0 {
		return errs.Validationf("seismic_sds", "ASCE 7-22 Section 11.4",
			"Sds must not be negative, got %.3f", cfg.SeismicSds)
	}
	if cfg.GroundSnowPSF < 0 {
		return errs.Validationf("ground_snow_psf", "ASCE 7-22 Chapter 7",
			"ground snow load must not be negative, got %.1f psf", cfg.GroundSnowPSF)
	}
	if cfg.SoilBearingPSF < 0 {
		return errs.Validationf("soil_bearing_psf", "IBC 2024 Table 1806.2",
			"soil bearing capacity must not be negative, got %.1f psf", cfg.SoilBearingPSF)
	}
	if cfg.FoundationDiameterFt < 0 {
		return errs.Validationf("foundation_diameter_ft", "",
			"foundation diameter must not be negative, got %.2f ft", cfg.FoundationDiameterFt)
	}
	if cfg.TrialEmbedmentFt < 0 {
		return errs.Validationf("trial_embedment_ft", "",
			"trial embedment must not be negative, got %.2f ft", cfg.TrialEmbedmentFt)
	}
	if cfg.DeflectionLimit < 0 {
		return errs.Validationf("deflection_limit", "",
			"deflection limit must not be negative, got %.1f", cfg.DeflectionLimit)
	}
	return nil
}

// LoadSet carries the derived service loads. It is computed by the
// pipeline, never supplied by the caller. The lateral force is the wind
// force, replaced by the simplified seismic force when that governs.
type LoadSet struct {
	DeadSignLbs     float64 `json:"dead_sign_lbs"`
	DeadPoleLbs     float64 `json:"dead_pole_lbs"`
	DeadTotalLbs    float64 `json:"dead_total_lbs"`
	DeadMomentKipFt float64 `json:"dead_moment_kipft"`

	SnowLbs         float64 `json:"snow_lbs,omitempty"`
	SnowMomentKipFt float64 `json:"snow_moment_kipft,omitempty"`

	SeismicForceLbs float64 `json:"seismic_force_lbs,omitempty"`
	SeismicGoverns  bool    `json:"seismic_governs,omitempty"`

	LateralForceLbs    float64 `json:"lateral_force_lbs"`
	LateralMomentKipFt float64 `json:"lateral_moment_kipft"`
}

// Checks are the independent pass/fail gates for one design; Approved is
// their AND. Gates that do not apply to the application pass vacuously.
type Checks struct {
	Strength    bool `json:"strength"`
	Deflection  bool `json:"deflection"`
	Overturning bool `json:"overturning"`
	SoilBearing bool `json:"soil_bearing"`
	Utilization bool `json:"utilization"`
}

// All reports whether every gate passed.
func (c Checks) All() bool {
	return c.Strength && c.Deflection && c.Overturning && c.SoilBearing && c.Utilization
}

// DesignResult is the complete single-pole design record: inputs echoed
// after default resolution, every intermediate derivation, the pass/fail
// gates and a content hash over the whole record.
type DesignResult struct {
	Config         SingleConfig        `json:"config"`
	Application    Application         `json:"application"`
	CatalogVersion string              `json:"catalog_version"`
	Section        catalog.PoleSection `json:"section"`
	Selection      *selector.Selection `json:"selection,omitempty"`

	Wind                 *asce.SignLoad `json:"wind"`
	Loads                LoadSet        `json:"loads"`
	Combinations         ibc.Evaluation `json:"combinations"`
	GoverningMomentKipFt float64        `json:"governing_moment_kipft"`
	ShearKips            float64        `json:"shear_kips"`
	TorsionKipFt         float64        `json:"torsion_kipft,omitempty"`

	Member     *member.CheckResult      `json:"member,omitempty"`
	Foundation *foundation.Result       `json:"foundation,omitempty"`
	Footing    *foundation.SpreadResult `json:"footing,omitempty"`
	Rebar      *rebar.Schedule          `json:"rebar,omitempty"`

	Checks              Checks   `json:"checks"`
	Approved            bool     `json:"approved"`
	CriticalFailureMode string   `json:"critical_failure_mode,omitempty"`
	Warnings            []string `json:"warnings,omitempty"`
	CodeRefs            []string `json:"code_refs,omitempty"`
	ContentHash         string   `json:"content_hash"`
}

// SolveSingle runs the full design pipeline for a single-pole sign:
// wind, dead loads, load combinations, member check, foundation, rebar,
// warnings and the critical failure mode. Infeasible selection is data
// on the result, not an error; only invalid input and non-convergence
// abort.
func SolveSingle(cfg SingleConfig) (*DesignResult, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cat := cfg.Catalog
	if cat == nil {
		cat = catalog.Builtin()
	}
	crit := cfg.Application.Criteria()
	g := cfg.Geometry

	wind, err := asce.ForceOnSign(cfg.Wind, g.SignAreaSqFt, g.SignHeightFt, g.PoleHeightFt,
		cfg.GustFactor, cfg.ForceCoefficient)
	if err != nil {
		return nil, err
	}

	var warnings []string
	codeRefs := append([]string{}, wind.CodeRefs...)

	loads := LoadSet{DeadSignLbs: g.SignAreaSqFt * g.SignWeightPSF}
	loads.DeadMomentKipFt = loads.DeadSignLbs * g.ArmLengthFt / 1000.0
	if cfg.GroundSnowPSF > 0 && g.SignWidthFt > 0 {
		// one-foot accumulation band along the top edge of the cabinet
		loads.SnowLbs = cfg.GroundSnowPSF * g.SignWidthFt
		loads.SnowMomentKipFt = loads.SnowLbs * g.ArmLengthFt / 1000.0
	}

	loads.LateralForceLbs = wind.ForceLbs
	loads.LateralMomentKipFt = wind.MomentKipFt
	if cfg.Application == Monument && cfg.SeismicSds > 0 {
		loads.SeismicForceLbs = cfg.SeismicSds * g.SignAreaSqFt * SeismicAreaFactor
		if loads.SeismicForceLbs > wind.ForceLbs {
			loads.SeismicGoverns = true
			loads.LateralForceLbs = loads.SeismicForceLbs
			loads.LateralMomentKipFt = loads.SeismicForceLbs * wind.CentroidFt / 1000.0
			warnings = append(warnings, fmt.Sprintf(
				"Simplified seismic force %.0f lbs exceeds wind force %.0f lbs (Sds=%.2f); seismic governs the lateral design",
				loads.SeismicForceLbs, wind.ForceLbs, cfg.SeismicSds))
			codeRefs = append(codeRefs, "ASCE 7-22 Section 13.3.1: Seismic Design Force (simplified)")
		}
	}

	demands := ibc.Demands{
		Dead: loads.DeadMomentKipFt,
		Snow: loads.SnowMomentKipFt,
		Wind: loads.LateralMomentKipFt,
	}
	eval := ibc.Evaluate(demands)
	codeRefs = append(codeRefs, "IBC 2024 Section 1605.2.1: Load Combinations (ASD)")

	// Shear at the base is the unfactored lateral force; the combinations
	// govern the moment demand.
	governingMoment := eval.MaxDemand
	shear := loads.LateralForceLbs / 1000.0

	limits := member.Limits{DeflectionRatio: cfg.DeflectionLimit}

	res := &DesignResult{
		Config:               cfg,
		Application:          cfg.Application,
		CatalogVersion:       cat.Version(),
		Wind:                 wind,
		Loads:                loads,
		Combinations:         eval,
		GoverningMomentKipFt: governingMoment,
		ShearKips:            shear,
	}

	var sec catalog.PoleSection
	if cfg.Section != "" {
		found, ok := cat.FindByDesignation(cfg.Section)
		if !ok {
			return nil, errs.Validationf("section", "",
				"unknown section designation %q", cfg.Section)
		}
		sec = found
	} else {
		sel, err := selector.Select(cat, selector.Request{
			MomentKipFt:  governingMoment,
			ShearKips:    shear,
			WindForceLbs: loads.LateralForceLbs,
			CentroidFt:   wind.CentroidFt,
			HeightFt:     g.PoleHeightFt,
			Family:       cfg.Family,
			Limits:       limits,
		})
		if err != nil {
			return nil, err
		}
		res.Selection = sel
		if !sel.HasFeasible() {
			if sel.Message != "" {
				warnings = append(warnings, sel.Message)
			}
			res.CriticalFailureMode = infeasibleMode(sel)
			res.Warnings = warnings
			res.CodeRefs = codeRefs
			if err := finalizeHash(res); err != nil {
				return nil, err
			}
			return res, nil
		}
		sec = sel.Feasible[0].Section
	}
	res.Section = sec

	loads.DeadPoleLbs = sec.WeightPLF * g.PoleHeightFt
	loads.DeadTotalLbs = loads.DeadSignLbs + loads.DeadPoleLbs
	res.Loads = loads

	mc, err := member.Check(sec, member.Loads{
		MomentKipFt:  governingMoment,
		ShearKips:    shear,
		WindForceLbs: loads.LateralForceLbs,
		CentroidFt:   wind.CentroidFt,
	}, g.PoleHeightFt, limits)
	if err != nil {
		return nil, err
	}
	res.Member = mc
	warnings = append(warnings, mc.Warnings...)
	codeRefs = append(codeRefs,
		"AISC 360-22 Chapter F: Flexural Design",
		"AISC 360-22 Chapter G: Shear Design",
		"AISC 360-22 Chapter L: Serviceability (Deflection)")

	res.Checks.Strength = mc.PassesBending && mc.PassesShear && mc.PassesCombined
	res.Checks.Deflection = mc.PassesDeflection

	res.Checks.Utilization = true
	if crit.UtilizationCap > 0 && mc.BendingRatio > crit.UtilizationCap {
		res.Checks.Utilization = false
		warnings = append(warnings, fmt.Sprintf(
			"Bending stress ratio %.2f exceeds the %.2f utilization limit for %s structures",
			mc.BendingRatio, crit.UtilizationCap, string(cfg.Application)))
	}

	if g.ArmLengthFt > 0 {
		res.TorsionKipFt = loads.LateralForceLbs * g.ArmLengthFt / 1000.0
		if cfg.Application == CantileverPost && g.ArmLengthFt > EccentricityWarningFt {
			warnings = append(warnings, fmt.Sprintf(
				"Eccentric loading detected: %.2f ft offset from pole centerline. "+
					"Torsional analysis recommended. Consider adding lateral bracing or redistributing cabinets.",
				g.ArmLengthFt))
		}
	}

	soil := cfg.SoilBearingPSF
	if soil == 0 {
		soil = ibc.DefaultSoilBearingPSF
	}

	switch crit.Foundation {
	case rebar.SpreadFooting:
		footing, err := foundation.SpreadFooting(foundation.SpreadInput{
			MomentKipFt:    governingMoment,
			DeadLoadLbs:    loads.DeadTotalLbs,
			SignAreaSqFt:   g.SignAreaSqFt,
			PoleHeightFt:   g.PoleHeightFt,
			SoilBearingPSF: cfg.SoilBearingPSF,
		})
		if err != nil {
			return nil, err
		}
		res.Footing = footing
		warnings = append(warnings, footing.Warnings...)
		codeRefs = append(codeRefs, footing.CodeRefs...)
		res.Checks.Overturning = footing.PassesOverturning
		res.Checks.SoilBearing = footing.PassesSoilBearing

		schedule, err := rebar.Design(rebar.Input{
			Type:        rebar.SpreadFooting,
			WidthFt:     footing.WidthFt,
			LengthFt:    footing.LengthFt,
			ThicknessFt: footing.ThicknessFt,
			FcKsi:       cfg.ConcreteFcKsi,
			FyKsi:       cfg.RebarFyKsi,
			BarSize:     cfg.RebarSize,
			CoverIn:     cfg.RebarCoverIn,
		})
		if err != nil {
			return nil, err
		}
		res.Rebar = schedule
		codeRefs = append(codeRefs, schedule.CodeRefs...)

	case rebar.DrilledPier:
		diameter := cfg.FoundationDiameterFt
		if diameter == 0 {
			diameter = foundation.DiameterForOverturning(governingMoment, loads.DeadTotalLbs,
				cfg.TrialEmbedmentFt, ibc.OverturningSafetyFactorMin)
		}
		// The trial embedment doubles as the standard burial depth: the
		// diameter search above assumes it, and the embedment solver may
		// only deepen from it, so the overturning check sees a depth at
		// least as large as the one the diameter was sized for.
		pier, err := foundation.Design(foundation.Input{
			MomentKipFt:    governingMoment,
			DiameterFt:     diameter,
			SoilBearingPSF: cfg.SoilBearingPSF,
			DeadLoadLbs:    loads.DeadTotalLbs,
			MinDepthFt:     cfg.TrialEmbedmentFt,
		}, foundation.DefaultConfig())
		if err != nil {
			return nil, err
		}
		res.Foundation = pier
		warnings = append(warnings, pier.Warnings...)
		codeRefs = append(codeRefs, pier.CodeRefs...)
		res.Checks.Overturning = pier.PassesOverturning
		res.Checks.SoilBearing = pier.PassesSoilBearing

		if pier.DiameterFt <= rebar.MaxDiameterFt && pier.DepthFt <= rebar.MaxDepthFt {
			schedule, err := rebar.Design(rebar.Input{
				Type:       rebar.DrilledPier,
				DiameterFt: pier.DiameterFt,
				DepthFt:    pier.DepthFt,
				FcKsi:      cfg.ConcreteFcKsi,
				FyKsi:      cfg.RebarFyKsi,
				BarSize:    cfg.RebarSize,
				CoverIn:    cfg.RebarCoverIn,
			})
			if err != nil {
				return nil, err
			}
			res.Rebar = schedule
			codeRefs = append(codeRefs, schedule.CodeRefs...)
		} else {
			warnings = append(warnings, fmt.Sprintf(
				"Pier %.1f ft dia x %.1f ft deep exceeds the prescriptive rebar schedule range; detail reinforcement separately",
				pier.DiameterFt, pier.DepthFt))
		}

	default:
		// Wall mount: no foundation is designed; the connection to the
		// host structure carries the loads.
		res.Checks.Overturning = true
		res.Checks.SoilBearing = true
		warnings = append(warnings,
			"Wall-mount anchorage to the host structure governs; verify the connection separately")
	}

	res.Approved = res.Checks.All()
	if !res.Approved {
		res.CriticalFailureMode = criticalFailureMode(res, crit, soil)
	}
	res.Warnings = warnings
	res.CodeRefs = codeRefs
	if err := finalizeHash(res); err != nil {
		return nil, err
	}
	return res, nil
}

// finalizeHash stamps the content hash over the completed record. The
// hash field itself is zeroed first so the digest covers everything else.
func finalizeHash(res *DesignResult) error {
	res.ContentHash = ""
	h, err := ContentHash(res)
	if err != nil {
		return err
	}
	res.ContentHash = h
	return nil
}

func infeasibleMode(sel *selector.Selection) string {
	if sel.Nearest != nil && sel.Nearest.FailingCheck != "" {
		return sel.Nearest.FailingCheck
	}
	return "NO_FEASIBLE_SECTION"
}

type failureMode struct {
	name     string
	severity float64
}

// criticalFailureMode names the worst failing check. Severity is the
// demand over capacity ratio for each check; deflection and overturning
// invert so that every mode compares on the same above-1-fails scale.
func criticalFailureMode(res *DesignResult, crit Criteria, soilPSF float64) string {
	return worstMode(designFailureModes(res, crit, soilPSF))
}

func worstMode(modes []failureMode) string {
	if len(modes) == 0 {
		return ""
	}
	sort.SliceStable(modes, func(i, j int) bool { return modes[i].severity > modes[j].severity })
	return modes[0].name
}

func designFailureModes(res *DesignResult, crit Criteria, soilPSF float64) []failureMode {
	var modes []failureMode

	if m := res.Member; m != nil {
		if !res.Checks.Strength {
			switch {
			case m.CombinedRatio > 1.0 && m.BendingRatio <= 1.0 && m.ShearRatio <= 1.0:
				modes = append(modes, failureMode{"COMBINED", m.CombinedRatio})
			case m.BendingRatio > m.ShearRatio:
				modes = append(modes, failureMode{"BENDING", m.BendingRatio})
			default:
				modes = append(modes, failureMode{"SHEAR", m.ShearRatio})
			}
		}
		if !res.Checks.Deflection {
			severity := 0.0
			if !math.IsInf(m.DeflectionRatio, 1) && m.DeflectionRatio > 0 {
				severity = m.DeflectionLimit / m.DeflectionRatio
			}
			modes = append(modes, failureMode{"DEFLECTION", severity})
		}
		if res.Checks.Strength && !res.Checks.Utilization && crit.UtilizationCap > 0 {
			modes = append(modes, failureMode{"BENDING", m.BendingRatio / crit.UtilizationCap})
		}
	}

	if f := res.Foundation; f != nil {
		if !res.Checks.Overturning && f.SafetyFactor > 0 {
			modes = append(modes, failureMode{"OVERTURNING", ibc.OverturningSafetyFactorMin / f.SafetyFactor})
		}
		if !res.Checks.SoilBearing && soilPSF > 0 {
			modes = append(modes, failureMode{"SOIL_BEARING", f.MaxSoilPressurePSF / soilPSF})
		}
	}
	if f := res.Footing; f != nil {
		if !res.Checks.Overturning && f.SafetyFactor > 0 {
			modes = append(modes, failureMode{"OVERTURNING", ibc.OverturningSafetyFactorMin / f.SafetyFactor})
		}
		if !res.Checks.SoilBearing && f.SoilBearingPSF > 0 {
			modes = append(modes, failureMode{"SOIL_BEARING", f.MaxSoilPressurePSF / f.SoilBearingPSF})
		}
	}

	return modes
}
