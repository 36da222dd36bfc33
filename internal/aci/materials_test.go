package aci

import (
	"math"
	"testing"

	"github.com/apexsigns/signcalc/internal/errs"
)

func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %.4f, want %.4f (tol %.4f)", name, got, want, tol)
	}
}

func TestBarProperties(t *testing.T) {
	props, ok := Properties(Bar6)
	if !ok {
		t.Fatal("missing #6 bar")
	}
	approx(t, "#6 diameter", props.DiameterIn, 0.750, 1e-9)
	approx(t, "#6 area", props.AreaIn2, 0.44, 1e-9)
	approx(t, "#6 weight", props.WeightPLF, 1.502, 1e-9)

	if _, ok := Properties(BarSize("#14")); ok {
		t.Error("#14 is not in the supported table")
	}

	for _, size := range BarSizes {
		if _, ok := Properties(size); !ok {
			t.Errorf("BarSizes lists %s but table lacks it", size)
		}
	}
}

func TestDevelopmentLengthHandCalc(t *testing.T) {
	// #5 bottom bar, uncoated, 3 ksi / Grade 60:
	// ld = 60000*0.8/(25*√3000)*0.625 = 21.91 in
	ld, factors, err := TensionDevelopmentLength(Bar5, 3.0, 60.0, false, false)
	if err != nil {
		t.Fatalf("TensionDevelopmentLength: %v", err)
	}
	approx(t, "ld #5", ld, 21.91, 0.01)
	approx(t, "psi_s", factors.PsiS, 0.8, 1e-9)
	approx(t, "psi_t", factors.PsiT, 1.0, 1e-9)
	approx(t, "psi_e", factors.PsiE, 1.0, 1e-9)
}

func TestDevelopmentLengthLargeBarSizeFactor(t *testing.T) {
	// #8 takes ψs = 1.0: ld = 60000/(25*√3000)*1.0 = 43.82 in
	ld, factors, err := TensionDevelopmentLength(Bar8, 3.0, 60.0, false, false)
	if err != nil {
		t.Fatalf("TensionDevelopmentLength: %v", err)
	}
	approx(t, "ld #8", ld, 43.82, 0.01)
	approx(t, "psi_s #8", factors.PsiS, 1.0, 1e-9)
}

func TestDevelopmentLengthModificationFactors(t *testing.T) {
	base, _, err := TensionDevelopmentLength(Bar5, 3.0, 60.0, false, false)
	if err != nil {
		t.Fatalf("base: %v", err)
	}

	coated, f, err := TensionDevelopmentLength(Bar5, 3.0, 60.0, true, false)
	if err != nil {
		t.Fatalf("coated: %v", err)
	}
	approx(t, "coated ld", coated, base*1.5, 0.01)
	approx(t, "coating factor", f.PsiE, 1.5, 1e-9)

	top, f, err := TensionDevelopmentLength(Bar5, 3.0, 60.0, false, true)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	approx(t, "top bar ld", top, base*1.3, 0.01)
	approx(t, "top factor", f.PsiT, 1.3, 1e-9)

	both, _, err := TensionDevelopmentLength(Bar5, 3.0, 60.0, true, true)
	if err != nil {
		t.Fatalf("both: %v", err)
	}
	approx(t, "coated top ld", both, base*1.95, 0.01)
}

func TestDevelopmentLengthMinimum(t *testing.T) {
	// #3 in 4 ksi concrete computes 11.38 in; the 12 in floor governs.
	ld, _, err := TensionDevelopmentLength(Bar3, 4.0, 60.0, false, false)
	if err != nil {
		t.Fatalf("TensionDevelopmentLength: %v", err)
	}
	if ld != MinDevelopmentLengthIn {
		t.Errorf("ld = %.2f, want %.1f minimum", ld, MinDevelopmentLengthIn)
	}
}

func TestDevelopmentLengthUnknownBar(t *testing.T) {
	_, _, err := TensionDevelopmentLength(BarSize("#18"), 3.0, 60.0, false, false)
	if !errs.IsValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestMaterialRangeValidation(t *testing.T) {
	cases := []struct {
		name   string
		fc, fy float64
		ok     bool
	}{
		{"typical", 3.0, 60.0, true},
		{"range floor", 2.5, 40.0, true},
		{"range ceiling", 10.0, 80.0, true},
		{"weak concrete", 2.0, 60.0, false},
		{"overstrength concrete", 12.0, 60.0, false},
		{"soft steel", 3.0, 36.0, false},
		{"overstrength steel", 3.0, 100.0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateMaterials(tc.fc, tc.fy)
			if tc.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.ok && !errs.IsValidation(err) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestCoverValidation(t *testing.T) {
	if err := ValidateCover(3.0); err != nil {
		t.Errorf("3 in cover should validate: %v", err)
	}
	if err := ValidateCover(1.0); !errs.IsValidation(err) {
		t.Errorf("1 in cover should fail: %v", err)
	}
	if err := ValidateCover(7.0); !errs.IsValidation(err) {
		t.Errorf("7 in cover should fail: %v", err)
	}
}
