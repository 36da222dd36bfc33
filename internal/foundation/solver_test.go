package foundation

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/apexsigns/signcalc/internal/errs"
)

func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %.4f, want %.4f (tol %.4f)", name, got, want, tol)
	}
}

func TestEmbedmentHandIteration(t *testing.T) {
	// M=10 kip-ft, b=3 ft, S=3000 psf. By hand: 3.00 → 3.75 → 4.20 →
	// 4.44 → 4.56 → 4.63, converged on the fifth pass.
	in := Input{MomentKipFt: 10, DiameterFt: 3, SoilBearingPSF: 3000}
	depth, iterations, err := Embedment(in, DefaultConfig())
	if err != nil {
		t.Fatalf("Embedment: %v", err)
	}
	approx(t, "depth", depth, 4.63, 0.05)
	if iterations != 5 {
		t.Errorf("iterations = %d, want 5", iterations)
	}
}

func TestEmbedmentMinimumFloorAfterConvergence(t *testing.T) {
	// Small moment converges near 0.3 ft; the 2 ft code minimum applies
	// after convergence, not inside the loop.
	in := Input{MomentKipFt: 0.5, DiameterFt: 3, SoilBearingPSF: 3000}
	depth, _, err := Embedment(in, DefaultConfig())
	if err != nil {
		t.Fatalf("Embedment: %v", err)
	}
	if depth != 2.0 {
		t.Errorf("depth = %.3f, want 2.0 minimum", depth)
	}
}

func TestEmbedmentCallerMinimumFloor(t *testing.T) {
	// Converges near 4.63 ft; a 6 ft standard burial floors it upward.
	in := Input{MomentKipFt: 10, DiameterFt: 3, SoilBearingPSF: 3000, MinDepthFt: 6}
	depth, _, err := Embedment(in, DefaultConfig())
	if err != nil {
		t.Fatalf("Embedment: %v", err)
	}
	if depth != 6.0 {
		t.Errorf("depth = %.3f, want the 6.0 caller floor", depth)
	}

	// A floor below the converged depth changes nothing.
	in.MinDepthFt = 3
	depth, _, err = Embedment(in, DefaultConfig())
	if err != nil {
		t.Fatalf("Embedment: %v", err)
	}
	approx(t, "depth", depth, 4.63, 0.05)
}

func TestEmbedmentIterationCapIsError(t *testing.T) {
	in := Input{MomentKipFt: 100, DiameterFt: 3, SoilBearingPSF: 3000}
	cfg := Config{ToleranceFt: 0.1, MaxIterations: 1}

	_, _, err := Embedment(in, cfg)
	if err == nil {
		t.Fatal("one iteration cannot converge from the initial estimate; want error")
	}
	if !errs.IsCalculation(err) {
		t.Fatalf("expected CalculationError, got %T: %v", err, err)
	}
	var calcErr *errs.CalculationError
	if !errors.As(err, &calcErr) {
		t.Fatalf("errors.As failed for %v", err)
	}
	if calcErr.Iterations != 1 {
		t.Errorf("Iterations = %d, want 1", calcErr.Iterations)
	}
	if !strings.Contains(err.Error(), "converge") {
		t.Errorf("error should mention convergence: %v", err)
	}

	// Design must propagate, never return a partial result
	if _, err := Design(in, cfg); err == nil {
		t.Error("Design should propagate the convergence failure")
	}
}

func TestEmbedmentMonotonicInDiameter(t *testing.T) {
	// Fixed load and soil: a narrower pier must embed at least as deep.
	prev := math.Inf(1)
	for _, dia := range []float64{3, 4, 5, 6} {
		in := Input{MomentKipFt: 30, DiameterFt: dia, SoilBearingPSF: 3000}
		depth, _, err := Embedment(in, DefaultConfig())
		if err != nil {
			t.Fatalf("diameter %.0f: %v", dia, err)
		}
		if depth > prev {
			t.Errorf("depth(%.0f ft) = %.2f exceeds depth at smaller diameter %.2f", dia, depth, prev)
		}
		prev = depth
	}
}

func TestEmbedmentValidation(t *testing.T) {
	cases := []struct {
		name string
		in   Input
	}{
		{"zero moment", Input{MomentKipFt: 0, DiameterFt: 3, SoilBearingPSF: 3000}},
		{"negative moment", Input{MomentKipFt: -5, DiameterFt: 3, SoilBearingPSF: 3000}},
		{"zero diameter", Input{MomentKipFt: 10, DiameterFt: 0, SoilBearingPSF: 3000}},
		{"negative soil", Input{MomentKipFt: 10, DiameterFt: 3, SoilBearingPSF: -100}},
		{"negative calibration", Input{MomentKipFt: 10, DiameterFt: 3, SoilBearingPSF: 3000, CalibrationK: -1}},
		{"negative min depth", Input{MomentKipFt: 10, DiameterFt: 3, SoilBearingPSF: 3000, MinDepthFt: -2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := Embedment(tc.in, DefaultConfig()); !errs.IsValidation(err) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestEmbedmentZeroSoilTakesDefault(t *testing.T) {
	in := Input{MomentKipFt: 10, DiameterFt: 3}
	if _, _, err := Embedment(in, DefaultConfig()); err != nil {
		t.Errorf("zero soil pressure should take the presumptive default: %v", err)
	}
}

func TestDesignPassingPier(t *testing.T) {
	// 5 ft pier, 2 kip-ft, 4000 lb dead load on 3000 psf soil.
	in := Input{MomentKipFt: 2, DiameterFt: 5, SoilBearingPSF: 3000, DeadLoadLbs: 4000}
	result, err := Design(in, DefaultConfig())
	if err != nil {
		t.Fatalf("Design: %v", err)
	}

	if result.DepthFt != 2.0 {
		t.Errorf("depth = %.2f, want 2.0 floor", result.DepthFt)
	}
	// Resisting: 10 kip-ft from weight plus 3.6 kips passive at 0.667 ft arm
	approx(t, "resisting moment", result.ResistingMomentKipFt, 12.4, 0.001)
	approx(t, "safety factor", result.SafetyFactor, 6.2, 0.001)
	// P/A + M/S: 4000/19.635 + 2000*2.5/30.680
	approx(t, "soil pressure", result.MaxSoilPressurePSF, 366.7, 0.5)
	approx(t, "concrete volume", result.ConcreteVolumeCuYd, 1.454, 0.01)

	if !result.PassesOverturning || !result.PassesSoilBearing || !result.Passes {
		t.Errorf("expected all checks to pass: %+v", result)
	}
	if result.EngineeringReview {
		t.Error("benign pier should not need engineering review")
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
	if len(result.CodeRefs) == 0 {
		t.Error("result should carry code references")
	}
}

func TestDesignLowOverturningMarginWarning(t *testing.T) {
	// SF = 12.4/7 = 1.77: passes the 1.5 minimum but below the 2.0
	// comfort margin.
	in := Input{MomentKipFt: 7, DiameterFt: 5, SoilBearingPSF: 3000, DeadLoadLbs: 4000}
	result, err := Design(in, DefaultConfig())
	if err != nil {
		t.Fatalf("Design: %v", err)
	}
	if !result.PassesOverturning {
		t.Fatalf("SF %.2f should pass the 1.5 minimum", result.SafetyFactor)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "below 2.0") {
			found = true
		}
	}
	if !found {
		t.Errorf("SF %.2f should warn about low margin, warnings: %v", result.SafetyFactor, result.Warnings)
	}
}

func TestDesignDeepFoundationNeedsReview(t *testing.T) {
	// 40 kip-ft on a 3 ft pier converges near 18.8 ft, past the 15 ft
	// practical limit.
	in := Input{MomentKipFt: 40, DiameterFt: 3, SoilBearingPSF: 3000, DeadLoadLbs: 3000}
	result, err := Design(in, DefaultConfig())
	if err != nil {
		t.Fatalf("Design: %v", err)
	}
	if result.DepthFt <= 15.0 {
		t.Fatalf("depth = %.1f, expected beyond the practical limit", result.DepthFt)
	}
	if !result.EngineeringReview {
		t.Error("deep foundation should be flagged for engineering review")
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Engineering review") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected review warning, got: %v", result.Warnings)
	}
}

func TestDesignOverloadedDiameterWarns(t *testing.T) {
	// 40 kip-ft far exceeds what a 3 ft pier on 3000 psf soil can
	// resist (about 5.3 kip-ft).
	in := Input{MomentKipFt: 40, DiameterFt: 3, SoilBearingPSF: 3000, DeadLoadLbs: 3000}
	result, err := Design(in, DefaultConfig())
	if err != nil {
		t.Fatalf("Design: %v", err)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "max resisting moment") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected max resisting moment warning, got: %v", result.Warnings)
	}
}

func TestResistingMomentHandCalc(t *testing.T) {
	// 8000 lbs on a 5 ft pier at 2 ft embedment: 20 kip-ft from weight,
	// 3.6 kips passive at 0.667 ft arm.
	approx(t, "resisting moment", ResistingMoment(8000, 5, 2), 22.4, 1e-9)
}

func TestDiameterForOverturning(t *testing.T) {
	// Resisting grows as 4.84·dia for W=2000 lbs at 4 ft embedment;
	// SF 1.5 against 20 kip-ft needs 6.2 ft.
	dia := DiameterForOverturning(20, 2000, 4, 1.5)
	approx(t, "diameter", dia, 6.2, 1e-6)

	if sf := ResistingMoment(2000, dia, 4) / 20; sf < 1.5 {
		t.Errorf("returned diameter gives SF %.3f below target", sf)
	}
	if sf := ResistingMoment(2000, dia-0.1, 4) / 20; sf >= 1.5 {
		t.Errorf("one step smaller already meets target (SF %.3f); search not minimal", sf)
	}
}

func TestDiameterForOverturningBounds(t *testing.T) {
	if dia := DiameterForOverturning(0, 2000, 4, 1.5); dia != 3.0 {
		t.Errorf("zero moment should return the minimum diameter, got %.1f", dia)
	}
	if dia := DiameterForOverturning(10000, 2000, 4, 1.5); dia != 10.0 {
		t.Errorf("unsatisfiable moment should return the maximum diameter, got %.1f", dia)
	}
}
