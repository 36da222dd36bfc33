package catalog

import "fmt"

// Family groups sections by product line and governing material spec.
type Family string

const (
	FamilyHSS      Family = "HSS"      // square tube, ASTM A500/A1085
	FamilyPipe     Family = "Pipe"     // round pipe, ASTM A53
	FamilyW        Family = "W"        // wide flange, ASTM A992
	FamilyAluminum Family = "Aluminum" // aluminum tube, 6061-T6
)

// Families lists the supported families in catalog order.
var Families = []Family{FamilyHSS, FamilyPipe, FamilyW, FamilyAluminum}

// Valid reports whether f is a known section family.
func (f Family) Valid() bool {
	for _, known := range Families {
		if f == known {
			return true
		}
	}
	return false
}

// PoleSection holds the structural properties of one catalog section.
// Sections are immutable reference data, looked up by designation.
type PoleSection struct {
	Designation string  `json:"designation"`
	Family      Family  `json:"family"`
	AreaIn2     float64 `json:"area_in2"`   // A - cross-sectional area
	DepthIn     float64 `json:"depth_in"`   // nominal outside depth/diameter
	WeightPLF   float64 `json:"weight_plf"` // self weight per foot
	SxIn3       float64 `json:"sx_in3"`     // elastic section modulus
	IxIn4       float64 `json:"ix_in4"`     // moment of inertia
	RxIn        float64 `json:"rx_in"`      // radius of gyration
	FyKsi       float64 `json:"fy_ksi"`     // yield strength
	FuKsi       float64 `json:"fu_ksi"`     // tensile strength
	IsA1085     bool    `json:"is_a1085,omitempty"`
}

// Validate checks that the section carries usable properties.
func (s PoleSection) Validate() error {
	if s.Designation == "" {
		return fmt.Errorf("section has empty designation")
	}
	if !s.Family.Valid() {
		return fmt.Errorf("section %s: unknown family %q", s.Designation, s.Family)
	}
	if s.AreaIn2 <= 0 || s.SxIn3 <= 0 || s.IxIn4 <= 0 || s.RxIn <= 0 {
		return fmt.Errorf("section %s: properties must be positive (A=%.2f, Sx=%.2f, Ix=%.2f, rx=%.2f)",
			s.Designation, s.AreaIn2, s.SxIn3, s.IxIn4, s.RxIn)
	}
	if s.WeightPLF <= 0 || s.FyKsi <= 0 {
		return fmt.Errorf("section %s: weight and yield strength must be positive", s.Designation)
	}
	return nil
}
