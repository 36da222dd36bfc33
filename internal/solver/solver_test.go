package solver

import (
	"math"
	"strings"
	"testing"

	"github.com/apexsigns/signcalc/internal/errs"
	"github.com/apexsigns/signcalc/internal/rebar"
)

func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %.4f, want %.4f (tol %.4f)", name, got, want, tol)
	}
}

func TestApplicationValid(t *testing.T) {
	for _, app := range []Application{Pylon, Monument, CantileverPost, WallMount} {
		if !app.Valid() {
			t.Errorf("%s should be valid", app)
		}
	}
	for _, app := range []Application{"", "billboard", "PYLON"} {
		if app.Valid() {
			t.Errorf("%q should not be valid", app)
		}
	}
}

func TestApplicationCriteria(t *testing.T) {
	cases := []struct {
		app        Application
		clearance  float64
		deflection float64
		cap        float64
		foundation rebar.FoundationType
	}{
		{Pylon, 8.0, 240, 0, rebar.DrilledPier},
		{Monument, 0, 200, 0.9, rebar.SpreadFooting},
		{CantileverPost, 8.0, 240, 0, rebar.DrilledPier},
		{WallMount, 0, 240, 0, ""},
	}
	for _, tc := range cases {
		t.Run(string(tc.app), func(t *testing.T) {
			crit := tc.app.Criteria()
			if crit.ClearanceFt != tc.clearance {
				t.Errorf("clearance = %.1f, want %.1f", crit.ClearanceFt, tc.clearance)
			}
			if crit.DeflectionLimit != tc.deflection {
				t.Errorf("deflection limit = %.0f, want %.0f", crit.DeflectionLimit, tc.deflection)
			}
			if crit.UtilizationCap != tc.cap {
				t.Errorf("utilization cap = %.2f, want %.2f", crit.UtilizationCap, tc.cap)
			}
			if crit.Foundation != tc.foundation {
				t.Errorf("foundation = %q, want %q", crit.Foundation, tc.foundation)
			}
		})
	}
}

func TestGeometryDerivedDefaults(t *testing.T) {
	g := Geometry{SignWidthFt: 10, SignHeightFt: 5}.withDefaults(Pylon)
	if g.SignAreaSqFt != 50 {
		t.Errorf("area = %.1f, want 50 from 10x5 face", g.SignAreaSqFt)
	}
	if g.SignWeightPSF != DefaultSignWeightPSF {
		t.Errorf("weight = %.2f, want default %.1f", g.SignWeightPSF, DefaultSignWeightPSF)
	}
	// Pylon clearance default becomes the pole height when neither is given
	if g.ClearanceFt != 8.0 || g.PoleHeightFt != 8.0 {
		t.Errorf("clearance/pole = %.1f/%.1f, want 8.0/8.0", g.ClearanceFt, g.PoleHeightFt)
	}
}

func TestGeometryThicknessDerivesWeight(t *testing.T) {
	// 1/8 in aluminum: 169 pcf * 0.125/12 = 1.7604 psf
	g := Geometry{SignWidthFt: 8, SignHeightFt: 4, SignThicknessIn: 0.125}.withDefaults(Pylon)
	approx(t, "face weight", g.SignWeightPSF, 1.7604, 0.0005)

	// explicit weight wins over thickness
	g = Geometry{SignWidthFt: 8, SignHeightFt: 4, SignThicknessIn: 0.125, SignWeightPSF: 5}.withDefaults(Pylon)
	if g.SignWeightPSF != 5 {
		t.Errorf("explicit weight overridden: %.2f", g.SignWeightPSF)
	}
}

func TestGeometryOverallHeight(t *testing.T) {
	g := Geometry{PoleHeightFt: 10, SignHeightFt: 5}
	if h := g.OverallHeightFt(); h != 15 {
		t.Errorf("overall height = %.1f, want 15", h)
	}
}

func TestGeometryValidate(t *testing.T) {
	valid := Geometry{PoleHeightFt: 10, SignWidthFt: 10, SignHeightFt: 5}

	cases := []struct {
		name   string
		mutate func(Geometry) Geometry
		app    Application
		field  string
	}{
		{"monument needs explicit pole height", func(g Geometry) Geometry {
			g.PoleHeightFt = 0
			return g
		}, Monument, "pole_height_ft"},
		{"pole beyond platform limit", func(g Geometry) Geometry {
			g.PoleHeightFt = 101
			return g
		}, Pylon, "pole_height_ft"},
		{"area beyond platform limit", func(g Geometry) Geometry {
			g.SignWidthFt = 0
			g.SignHeightFt = 10
			g.SignAreaSqFt = 1001
			return g
		}, Pylon, "sign_area_sqft"},
		{"area inconsistent with face", func(g Geometry) Geometry {
			g.SignAreaSqFt = 53 // 10x5 face, 6% off
			return g
		}, Pylon, "sign_area_sqft"},
		{"negative arm", func(g Geometry) Geometry {
			g.ArmLengthFt = -1
			return g
		}, Pylon, "arm_length_ft"},
		{"arm beyond practical limit", func(g Geometry) Geometry {
			g.ArmLengthFt = 31
			return g
		}, Pylon, "arm_length_ft"},
		{"cantilever requires arm", func(g Geometry) Geometry {
			return g
		}, CantileverPost, "arm_length_ft"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := tc.mutate(valid).withDefaults(tc.app)
			err := g.validate(tc.app)
			if !errs.IsValidation(err) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("error should name %s: %v", tc.field, err)
			}
		})
	}
}

func TestGeometryAreaToleranceWithinTwoPercent(t *testing.T) {
	// 50.9 sqft against a 50 sqft face is inside the 2% consistency band.
	g := Geometry{PoleHeightFt: 10, SignWidthFt: 10, SignHeightFt: 5, SignAreaSqFt: 50.9}.withDefaults(Pylon)
	if err := g.validate(Pylon); err != nil {
		t.Errorf("1.8%% deviation should pass: %v", err)
	}
}
