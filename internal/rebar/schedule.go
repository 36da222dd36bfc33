// Package rebar produces ACI 318-19 reinforcement schedules and concrete
// quantities for sign foundations, sized for material takeoff.
package rebar

import (
	"fmt"
	"math"

	"github.com/apexsigns/signcalc/internal/aci"
	"github.com/apexsigns/signcalc/internal/errs"
)

// FoundationType selects the reinforcement layout.
type FoundationType string

const (
	DirectBurial  FoundationType = "direct_burial"
	DrilledPier   FoundationType = "drilled_pier"
	SpreadFooting FoundationType = "spread_footing"
)

func (t FoundationType) cylindrical() bool {
	return t == DirectBurial || t == DrilledPier
}

// Valid reports whether the foundation type is known.
func (t FoundationType) Valid() bool {
	return t.cylindrical() || t == SpreadFooting
}

const (
	// Waste factors applied to order quantities
	ConcreteWasteFactor = 1.10
	RebarWasteFactor    = 1.05

	// Spiral confinement pitch for cylindrical piers (in)
	SpiralPitchIn = 4.0

	// Vertical bar projection above the pier for anchorage (ft)
	AnchorageProjectionFt = 2.0

	// Added bar length for hooks in spread footing mats (ft)
	HookAllowanceFt = 1.0

	// Practical geometry limits for sign foundations
	MaxDiameterFt = 10.0
	MaxDepthFt    = 20.0
)

// Input is the foundation geometry and material selection. Zero material
// fields take the code defaults (3 ksi concrete, Grade 60, #4 bars, 3 in
// cover).
type Input struct {
	Type       FoundationType `json:"foundation_type"`
	DiameterFt float64        `json:"diameter_ft,omitempty"`
	DepthFt    float64        `json:"depth_ft,omitempty"`

	// Spread footing dimensions
	WidthFt     float64 `json:"width_ft,omitempty"`
	LengthFt    float64 `json:"length_ft,omitempty"`
	ThicknessFt float64 `json:"thickness_ft,omitempty"`

	FcKsi   float64     `json:"fc_ksi,omitempty"`
	FyKsi   float64     `json:"fy_ksi,omitempty"`
	BarSize aci.BarSize `json:"bar_size,omitempty"`
	CoverIn float64     `json:"cover_in,omitempty"`
}

func (in Input) withDefaults() Input {
	if in.Type == "" {
		in.Type = DirectBurial
	}
	if in.FcKsi == 0 {
		in.FcKsi = aci.DefaultFcKsi
	}
	if in.FyKsi == 0 {
		in.FyKsi = aci.DefaultFyKsi
	}
	if in.BarSize == "" {
		in.BarSize = aci.Bar4
	}
	if in.CoverIn == 0 {
		in.CoverIn = aci.CoverCastAgainstEarthIn
	}
	return in
}

func (in Input) validate() error {
	if !in.Type.Valid() {
		return errs.Validationf("foundation_type", "ACI 318-19 Chapter 13",
			"unknown foundation type %q", string(in.Type))
	}
	if in.Type.cylindrical() {
		if in.DiameterFt <= 0 || in.DiameterFt > MaxDiameterFt {
			return errs.Validationf("diameter_ft", "ACI 318-19 Section 13.3",
				"pier diameter %.2f ft outside accepted range 0-%.0f ft", in.DiameterFt, MaxDiameterFt)
		}
		if in.DepthFt <= 0 || in.DepthFt > MaxDepthFt {
			return errs.Validationf("depth_ft", "ACI 318-19 Section 13.3",
				"pier depth %.2f ft outside accepted range 0-%.0f ft", in.DepthFt, MaxDepthFt)
		}
	} else {
		if in.WidthFt <= 0 || in.LengthFt <= 0 || in.ThicknessFt <= 0 {
			return errs.Validationf("footing_dimensions", "ACI 318-19 Section 13.2",
				"spread footing requires positive width, length and thickness")
		}
	}
	if err := aci.ValidateMaterials(in.FcKsi, in.FyKsi); err != nil {
		return err
	}
	if err := aci.ValidateCover(in.CoverIn); err != nil {
		return err
	}
	if _, ok := aci.Properties(in.BarSize); !ok {
		return errs.Validationf("bar_size", "ACI 318-19 Appendix A",
			"unknown bar size %q", string(in.BarSize))
	}
	return nil
}

// Bar is one schedule line: a mark covering identical bars.
type Bar struct {
	Mark      string      `json:"mark"`
	Size      aci.BarSize `json:"size"`
	Quantity  int         `json:"quantity"`
	LengthFt  float64     `json:"length_ft"`
	SpacingIn float64     `json:"spacing_in,omitempty"`
	Location  string      `json:"location"`
}

// TotalLengthFt is the combined length of all bars under this mark.
func (b Bar) TotalLengthFt() float64 {
	return float64(b.Quantity) * b.LengthFt
}

// WeightLbs is the combined weight of all bars under this mark.
func (b Bar) WeightLbs() float64 {
	props, ok := aci.Properties(b.Size)
	if !ok {
		return 0
	}
	return b.TotalLengthFt() * props.WeightPLF
}

// Concrete holds placed volume and ordering quantities.
type Concrete struct {
	VolumeCuFt  float64 `json:"volume_cf"`
	VolumeCuYd  float64 `json:"volume_cy"`
	WeightTons  float64 `json:"weight_ton"`
	WasteFactor float64 `json:"waste_factor"`
}

// OrderVolumeCuYd is the volume to order including waste.
func (c Concrete) OrderVolumeCuYd() float64 {
	return c.VolumeCuYd * c.WasteFactor
}

// Schedule is the complete reinforcement schedule with material takeoff.
type Schedule struct {
	VerticalBars   []Bar    `json:"vertical_bars"`
	HorizontalBars []Bar    `json:"horizontal_bars"`
	Concrete       Concrete `json:"concrete"`

	DevelopmentLengthIn float64                `json:"development_length_in"`
	DevelopmentFactors  aci.DevelopmentFactors `json:"development_factors"`

	TotalRebarWeightLbs  float64 `json:"total_rebar_weight_lb"`
	TotalRebarWeightTons float64 `json:"total_rebar_weight_ton"`

	// Order quantities with waste applied
	ConcreteOrderCuYd float64 `json:"concrete_cy_to_order"`
	RebarOrderTons    float64 `json:"rebar_ton_to_order"`

	CodeRefs []string `json:"code_references"`
}

// ConcreteVolume computes placed concrete quantities for the foundation
// geometry.
func ConcreteVolume(in Input) (Concrete, error) {
	in = in.withDefaults()
	if err := in.validate(); err != nil {
		return Concrete{}, err
	}

	var volumeCuFt float64
	if in.Type.cylindrical() {
		radius := in.DiameterFt / 2.0
		volumeCuFt = math.Pi * radius * radius * in.DepthFt
	} else {
		volumeCuFt = in.WidthFt * in.LengthFt * in.ThicknessFt
	}

	return Concrete{
		VolumeCuFt:  volumeCuFt,
		VolumeCuYd:  volumeCuFt / 27.0,
		WeightTons:  volumeCuFt * aci.ConcreteDensityPCF / 2000.0,
		WasteFactor: ConcreteWasteFactor,
	}, nil
}

// Design produces the reinforcement schedule and material takeoff for a
// foundation.
func Design(in Input) (*Schedule, error) {
	in = in.withDefaults()
	if err := in.validate(); err != nil {
		return nil, err
	}

	ld, factors, err := aci.TensionDevelopmentLength(in.BarSize, in.FcKsi, in.FyKsi, false, false)
	if err != nil {
		return nil, err
	}

	var vertical, horizontal []Bar
	if in.Type.cylindrical() {
		vertical, horizontal = cylindricalBars(in)
	} else {
		vertical, horizontal = spreadFootingBars(in)
	}

	concrete, err := ConcreteVolume(in)
	if err != nil {
		return nil, err
	}

	totalWeight := 0.0
	for _, b := range vertical {
		totalWeight += b.WeightLbs()
	}
	for _, b := range horizontal {
		totalWeight += b.WeightLbs()
	}
	totalTons := totalWeight / 2000.0

	return &Schedule{
		VerticalBars:         vertical,
		HorizontalBars:       horizontal,
		Concrete:             concrete,
		DevelopmentLengthIn:  ld,
		DevelopmentFactors:   factors,
		TotalRebarWeightLbs:  totalWeight,
		TotalRebarWeightTons: totalTons,
		ConcreteOrderCuYd:    concrete.OrderVolumeCuYd(),
		RebarOrderTons:       totalTons * RebarWasteFactor,
		CodeRefs: []string{
			"ACI 318-19 Section 13.3: Drilled Piers",
			"ACI 318-19 Section 25.4: Development of Reinforcement",
			"ACI 318-19 Section 20.6: Minimum Reinforcement",
			"ACI 318-19 Table 20.6.1.3.1: Minimum Cover",
		},
	}, nil
}

// cylindricalBars lays out a vertical cage with spiral confinement for
// direct burial and drilled pier foundations. One vertical bar per foot of
// circumference with the Section 13.3 minimum of six.
func cylindricalBars(in Input) (vertical, horizontal []Bar) {
	count := int(math.Pi * in.DiameterFt)
	if count < aci.MinDrilledPierBars {
		count = aci.MinDrilledPierBars
	}

	vertical = []Bar{{
		Mark:     "V1",
		Size:     in.BarSize,
		Quantity: count,
		LengthFt: in.DepthFt + AnchorageProjectionFt,
		Location: "Vertical reinforcement, equally spaced around perimeter",
	}}

	cageDiameterIn := in.DiameterFt*12.0 - 2.0*in.CoverIn
	horizontal = []Bar{{
		Mark:      "S1",
		Size:      aci.Bar3,
		Quantity:  int(in.DepthFt * 12.0 / SpiralPitchIn),
		LengthFt:  math.Pi * cageDiameterIn / 12.0 * 1.1, // 10% lap
		SpacingIn: SpiralPitchIn,
		Location:  fmt.Sprintf("Spiral @ %.0f\" o.c.", SpiralPitchIn),
	}}

	return vertical, horizontal
}

// spreadFootingBars lays out a bottom mat in both directions sized by the
// minimum steel ratio on the gross section.
func spreadFootingBars(in Input) (vertical, horizontal []Bar) {
	props, _ := aci.Properties(in.BarSize)

	grossIn2 := in.WidthFt * 12.0 * in.ThicknessFt * 12.0
	requiredIn2 := aci.MinSteelRatio * grossIn2

	count := int(requiredIn2 / props.AreaIn2 / 2.0)
	if count < 3 {
		count = 3
	}

	widthSpacing := in.LengthFt * 12.0 / float64(count-1)
	lengthSpacing := in.WidthFt * 12.0 / float64(count-1)

	horizontal = []Bar{
		{
			Mark:      "B1",
			Size:      in.BarSize,
			Quantity:  count,
			LengthFt:  in.WidthFt + HookAllowanceFt,
			SpacingIn: widthSpacing,
			Location:  fmt.Sprintf("Bottom mat, parallel to width @ %.1f\" o.c.", widthSpacing),
		},
		{
			Mark:      "B2",
			Size:      in.BarSize,
			Quantity:  count,
			LengthFt:  in.LengthFt + HookAllowanceFt,
			SpacingIn: lengthSpacing,
			Location:  fmt.Sprintf("Bottom mat, parallel to length @ %.1f\" o.c.", lengthSpacing),
		},
	}

	return nil, horizontal
}
