package member

import (
	"math"
	"strings"
	"testing"

	"github.com/apexsigns/signcalc/internal/catalog"
	"github.com/apexsigns/signcalc/internal/errs"
)

func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %.4f, want %.4f (tol %.4f)", name, got, want, tol)
	}
}

func hss8x8() catalog.PoleSection {
	cat := catalog.Builtin()
	s, ok := cat.FindByDesignation("HSS8X8X1/4")
	if !ok {
		panic("builtin catalog missing HSS8X8X1/4")
	}
	return s
}

func TestCheckHandCalc(t *testing.T) {
	// HSS8X8X1/4: Sx=17.7 in³, A=7.10 in², Ix=70.7 in⁴, Fy=46 ksi
	loads := Loads{
		MomentKipFt:  15.0,
		ShearKips:    1.5,
		WindForceLbs: 1500.0,
		CentroidFt:   12.5,
	}
	result, err := Check(hss8x8(), loads, 10.0, DefaultLimits)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}

	approx(t, "fb", result.BendingKsi, 10.169, 0.01)
	approx(t, "Fb", result.AllowableBendingKsi, 30.36, 0.01)
	approx(t, "bending ratio", result.BendingRatio, 0.335, 0.001)
	approx(t, "fv", result.ShearKsi, 0.2113, 0.001)
	approx(t, "Fv", result.AllowableShearKsi, 18.4, 0.01)
	approx(t, "combined", result.CombinedRatio, 0.3465, 0.001)
	// δ = 1500*(150)³/(3*29000000*70.7) = 0.823 in
	approx(t, "deflection", result.DeflectionIn, 0.823, 0.001)
	approx(t, "deflection ratio", result.DeflectionRatio, 145.8, 0.1)

	if !result.PassesBending || !result.PassesShear || !result.PassesCombined {
		t.Error("strength checks should pass")
	}
	if result.PassesDeflection {
		t.Error("L/145.8 should fail the L/240 limit")
	}
	if result.Passes {
		t.Error("overall pass must be the AND of all four checks")
	}
}

func TestCheckDeflectionGovernsFailureMode(t *testing.T) {
	loads := Loads{MomentKipFt: 15.0, ShearKips: 1.5, WindForceLbs: 1500.0, CentroidFt: 12.5}
	result, err := Check(hss8x8(), loads, 10.0, DefaultLimits)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	name, severity := result.WorstCheck()
	if name != "DEFLECTION" {
		t.Errorf("worst check = %s, want DEFLECTION", name)
	}
	approx(t, "deflection severity", severity, 240.0/145.8, 0.01)
}

func TestCheckPassingSection(t *testing.T) {
	loads := Loads{MomentKipFt: 15.0, ShearKips: 1.5, WindForceLbs: 500.0, CentroidFt: 12.5}
	result, err := Check(hss8x8(), loads, 10.0, DefaultLimits)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !result.Passes {
		t.Errorf("expected pass, got %s", result.Message)
	}
	if !strings.Contains(result.Message, "HSS8X8X1/4") {
		t.Errorf("message should name the section: %q", result.Message)
	}
}

func TestCheckBendingOverload(t *testing.T) {
	loads := Loads{MomentKipFt: 60.0, ShearKips: 1.0, WindForceLbs: 100.0, CentroidFt: 12.5}
	result, err := Check(hss8x8(), loads, 10.0, DefaultLimits)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result.PassesBending {
		t.Error("60 kip-ft should overload HSS8X8X1/4 in bending")
	}
	name, severity := result.WorstCheck()
	if name != "BENDING" {
		t.Errorf("worst check = %s, want BENDING", name)
	}
	if severity <= 1.0 {
		t.Errorf("failing severity should exceed 1.0, got %.3f", severity)
	}
}

func TestCheckCombinedGovernsWhenConstituentsPass(t *testing.T) {
	// Bending ratio 0.95, shear ratio 0.10: each passes alone but the
	// interaction sum exceeds unity.
	section := hss8x8()
	loads := Loads{
		MomentKipFt:  0.95 * 0.66 * section.FyKsi * section.SxIn3 / 12.0,
		ShearKips:    0.10 * 0.40 * section.FyKsi * section.AreaIn2,
		WindForceLbs: 100.0,
		CentroidFt:   12.5,
	}
	result, err := Check(section, loads, 10.0, DefaultLimits)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !result.PassesBending || !result.PassesShear {
		t.Fatal("constituent checks should pass individually")
	}
	if result.PassesCombined {
		t.Error("combined ratio 1.05 should fail")
	}
	name, severity := result.WorstCheck()
	if name != "COMBINED" {
		t.Errorf("worst check = %s, want COMBINED", name)
	}
	approx(t, "combined severity", severity, 1.05, 0.001)
}

func TestCheckZeroSectionModulusRejected(t *testing.T) {
	bad := hss8x8()
	bad.SxIn3 = 0
	_, err := Check(bad, Loads{MomentKipFt: 10}, 10.0, DefaultLimits)
	if err == nil {
		t.Fatal("expected validation error for zero section modulus")
	}
	if !errs.IsValidation(err) {
		t.Errorf("expected ValidationError, got %T", err)
	}
	if !strings.Contains(err.Error(), "HSS8X8X1/4") {
		t.Errorf("error should name the section: %v", err)
	}
}

func TestCheckZeroAreaRejected(t *testing.T) {
	bad := hss8x8()
	bad.AreaIn2 = 0
	_, err := Check(bad, Loads{MomentKipFt: 10, ShearKips: 1}, 10.0, DefaultLimits)
	if err == nil || !errs.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCheckSlendernessWarning(t *testing.T) {
	cat := catalog.Builtin()
	pipe, ok := cat.FindByDesignation("PIPE4STD")
	if !ok {
		t.Fatal("builtin catalog missing PIPE4STD")
	}
	loads := Loads{MomentKipFt: 1.0, ShearKips: 0.1, WindForceLbs: 50.0, CentroidFt: 30.0}
	result, err := Check(pipe, loads, 55.0, DefaultLimits)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Slenderness") {
			found = true
		}
	}
	if !found {
		t.Errorf("L/r = %.0f should produce slenderness warning, warnings: %v",
			result.SlendernessRatio, result.Warnings)
	}
}

func TestCheckZeroWindForceInfiniteDeflectionRatio(t *testing.T) {
	loads := Loads{MomentKipFt: 5.0, ShearKips: 0.5}
	result, err := Check(hss8x8(), loads, 10.0, DefaultLimits)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !math.IsInf(result.DeflectionRatio, 1) {
		t.Errorf("zero wind force should give infinite L/δ, got %.1f", result.DeflectionRatio)
	}
	if !result.PassesDeflection {
		t.Error("zero deflection must pass serviceability")
	}
}

func TestCheckDefaultLimitsWhenUnset(t *testing.T) {
	loads := Loads{MomentKipFt: 15.0, ShearKips: 1.5, WindForceLbs: 1500.0, CentroidFt: 12.5}
	result, err := Check(hss8x8(), loads, 10.0, Limits{})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result.DeflectionLimit != 240 {
		t.Errorf("unset limits should default to L/240, got L/%.0f", result.DeflectionLimit)
	}
}
