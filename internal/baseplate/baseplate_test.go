package baseplate

import (
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

// checkInput is a 12x12x3/4 plate on four 3/4 in rods, the shop standard
// for mid-size pole signs.
func checkInput() Input {
	return Input{
		Plate:   Plate{WidthIn: 12, LengthIn: 12, ThicknessIn: 0.75, FyKsi: 36, EccentricityIn: 3},
		Weld:    Weld{SizeIn: 0.25, ElectrodeKsi: 70, LengthIn: 12},
		Anchors: Anchors{Count: 4, DiameterIn: 0.75, EmbedIn: 10, GradeKsi: 58, FcPsi: 4000, SpacingIn: 6},
		Loads:   Loads{TensionKips: 5, ShearKips: 2, MomentKipIn: 100},
	}
}

func TestCheckBreakoutGoverns(t *testing.T) {
	// By hand: plate fb = 5*3/(12*0.75^2/6) = 13.33 ksi vs 21.6 allowable.
	// Weld demand = sqrt(2^2 + (100/12)^2) = 8.57 k vs 89.08 k. Breakout
	// cone at 6 in spacing carries only 0.949 k/bolt, under the 1.25 k/bolt
	// demand, so the group fails on breakout despite 14.4 k of rod steel.
	res, err := Check(checkInput())
	if err != nil {
		t.Fatalf("Check: %v", err)
	}

	if len(res.Checks) != 4 {
		t.Fatalf("len(Checks) = %d, want 4", len(res.Checks))
	}
	plate, weld, tension, shear := res.Checks[0], res.Checks[1], res.Checks[2], res.Checks[3]

	if plate.Name != "Plate Bending" || !plate.Pass {
		t.Errorf("plate check = %+v, want passing Plate Bending", plate)
	}
	approx(t, "plate demand", plate.Demand, 13.3333, 0.001)
	approx(t, "plate capacity", plate.Capacity, 21.6, 0.0001)
	approx(t, "plate ratio", plate.Ratio, 0.6173, 0.0005)

	if weld.Name != "Weld Strength" || !weld.Pass {
		t.Errorf("weld check = %+v, want passing Weld Strength", weld)
	}
	approx(t, "weld demand", weld.Demand, 8.5700, 0.001)
	approx(t, "weld capacity", weld.Capacity, 89.082, 0.005)

	if tension.Name != "Anchor Tension" || tension.Pass {
		t.Errorf("tension check = %+v, want failing Anchor Tension", tension)
	}
	if tension.Governing != "breakout" {
		t.Errorf("tension governing = %q, want breakout", tension.Governing)
	}
	approx(t, "tension demand", tension.Demand, 1.25, 1e-9)
	approx(t, "tension capacity", tension.Capacity, 0.9487, 0.0005)
	approx(t, "tension ratio", tension.Ratio, 1.3176, 0.001)
	if tension.Unit != "k/bolt" {
		t.Errorf("tension unit = %q, want k/bolt", tension.Unit)
	}

	if shear.Name != "Anchor Shear" || !shear.Pass {
		t.Errorf("shear check = %+v, want passing Anchor Shear", shear)
	}
	approx(t, "shear demand", shear.Demand, 0.5, 1e-9)
	approx(t, "shear capacity", shear.Capacity, 9.9932, 0.001)

	if res.AllPass {
		t.Error("AllPass = true with a failing breakout check")
	}
	if len(res.CodeRefs) != 5 {
		t.Errorf("len(CodeRefs) = %d, want 5", len(res.CodeRefs))
	}
}

func TestCheckPassingDesign(t *testing.T) {
	// Eight rods at 10 in spacing: full breakout cone (1.581 k/bolt)
	// against 0.625 k/bolt of demand.
	in := checkInput()
	in.Anchors.Count = 8
	in.Anchors.SpacingIn = 10

	res, err := Check(in)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	tension := res.Checks[2]
	approx(t, "tension demand", tension.Demand, 0.625, 1e-9)
	approx(t, "tension capacity", tension.Capacity, 1.5811, 0.0005)
	if !tension.Pass {
		t.Error("tension should pass with the full cone")
	}
	if !res.AllPass {
		for _, c := range res.Checks {
			if !c.Pass {
				t.Errorf("unexpected failing check %s at ratio %.3f", c.Name, c.Ratio)
			}
		}
	}
}

func TestCheckDefaultsApplied(t *testing.T) {
	res, err := Check(Input{})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}

	in := res.Input
	if in.Plate.WidthIn != 12 || in.Plate.LengthIn != 12 || in.Plate.ThicknessIn != 0.5 {
		t.Errorf("plate defaults = %+v, want 12x12x0.5", in.Plate)
	}
	if in.Plate.FyKsi != 36 || in.Plate.EccentricityIn != 3 {
		t.Errorf("plate material defaults = %+v", in.Plate)
	}
	if in.Weld.SizeIn != 0.25 || in.Weld.ElectrodeKsi != 70 || in.Weld.LengthIn != 12 {
		t.Errorf("weld defaults = %+v", in.Weld)
	}
	if in.Anchors.Count != 4 || in.Anchors.DiameterIn != 0.75 || in.Anchors.EmbedIn != 10 {
		t.Errorf("anchor defaults = %+v", in.Anchors)
	}
	if in.Anchors.GradeKsi != 58 || in.Anchors.FcPsi != 4000 || in.Anchors.SpacingIn != 6 {
		t.Errorf("anchor material defaults = %+v", in.Anchors)
	}

	// Zero loads pass everything with zero demand.
	if !res.AllPass {
		t.Error("zero loads should pass every check")
	}
	for _, c := range res.Checks {
		if c.Demand != 0 || c.Ratio != 0 {
			t.Errorf("%s demand = %.4f ratio = %.4f, want zero", c.Name, c.Demand, c.Ratio)
		}
	}
}

func TestCheckSteelGovernsAtDeepEmbedment(t *testing.T) {
	// 48 in embedment at 48 in spacing: cone grows to 16.63 k, past the
	// 14.41 k rod steel limit.
	in := checkInput()
	in.Anchors.EmbedIn = 48
	in.Anchors.SpacingIn = 48

	res, err := Check(in)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	tension := res.Checks[2]
	if tension.Governing != "steel" {
		t.Errorf("governing = %q, want steel", tension.Governing)
	}
	approx(t, "tension capacity", tension.Capacity, 14.4133, 0.001)
	if !tension.Pass {
		t.Error("1.25 k/bolt should pass the steel limit")
	}
}

func TestCheckThinPlateSectionFloor(t *testing.T) {
	// S = 12*0.05^2/6 = 0.005 in3 is floored at 0.01 before dividing, so
	// the demand lands at exactly M/0.01.
	in := checkInput()
	in.Plate.ThicknessIn = 0.05

	res, err := Check(in)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	plate := res.Checks[0]
	approx(t, "plate demand", plate.Demand, 1500.0, 0.01)
	if plate.Pass {
		t.Error("a 1/20 in plate should fail bending")
	}
	if res.AllPass {
		t.Error("AllPass = true with a failing plate check")
	}
}

func TestCheckValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Input)
		field  string
	}{
		{"negative tension", func(in *Input) { in.Loads.TensionKips = -1 }, "loads"},
		{"single anchor", func(in *Input) { in.Anchors.Count = 1 }, "anchor_count"},
		{"too many anchors", func(in *Input) { in.Anchors.Count = 20 }, "anchor_count"},
		{"slab plate", func(in *Input) { in.Plate.ThicknessIn = 5 }, "plate_thickness_in"},
		{"weak concrete", func(in *Input) { in.Anchors.FcPsi = 2000 }, "anchor_fc_psi"},
		{"negative spacing", func(in *Input) { in.Anchors.SpacingIn = -3 }, "anchor_spacing_in"},
		{"oversize weld", func(in *Input) { in.Weld.SizeIn = 1.5 }, "weld_size_in"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := checkInput()
			tc.mutate(&in)
			_, err := Check(in)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !errs.IsValidation(err) {
				t.Fatalf("error = %v, want ValidationError", err)
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("error %q does not name field %q", err.Error(), tc.field)
			}
		})
	}
}

func TestAutoSolveLightest(t *testing.T) {
	// Plate bending needs t >= 0.625 regardless of size (the width cancels
	// out of fb for a square plate). At 10 in plate the half-size spacing
	// cuts the cone to 0.79 k/bolt, so only the 8-rod pattern carries
	// 5 kips. Lightest grid point: 10 in plate, 5/8 thick, eight 5/8 rods.
	res, err := AutoSolve(AutoInput{Loads: Loads{TensionKips: 5, ShearKips: 2, MomentKipIn: 100}})
	if err != nil {
		t.Fatalf("AutoSolve: %v", err)
	}

	if res.Evaluated != 540 {
		t.Errorf("Evaluated = %d, want 540", res.Evaluated)
	}
	if len(res.Feasible) != 350 {
		t.Errorf("len(Feasible) = %d, want 350", len(res.Feasible))
	}
	if res.Ref != "8-anchors-5/8in-e10-t0.625" {
		t.Errorf("Ref = %q, want 8-anchors-5/8in-e10-t0.625", res.Ref)
	}
	approx(t, "weight", res.WeightLbs, 24.6856, 0.001)

	best := res.Feasible[0]
	if best.PlateIn != 10 || best.ThicknessIn != 0.625 || best.DiameterIn != 0.625 || best.Count != 8 {
		t.Errorf("best candidate = %+v", best)
	}

	for i := 1; i < len(res.Feasible); i++ {
		if res.Feasible[i].WeightLbs < res.Feasible[i-1].WeightLbs {
			t.Fatalf("feasible set not sorted by weight at index %d", i)
		}
	}

	if res.Design == nil {
		t.Fatal("Design = nil for a feasible search")
	}
	if !res.Design.AllPass {
		t.Error("chosen design should pass every check")
	}
	d := res.Design.Input
	if d.Plate.WidthIn != 10 || d.Plate.EccentricityIn != 2.5 {
		t.Errorf("design plate = %+v, want 10 in plate with 2.5 in lever", d.Plate)
	}
	if d.Anchors.SpacingIn != 5 || d.Anchors.Count != 8 {
		t.Errorf("design anchors = %+v, want 8 rods at 5 in", d.Anchors)
	}
	if res.Message != "350 feasible connections, lightest 8-anchors-5/8in-e10-t0.625 at 24.7 lb" {
		t.Errorf("Message = %q", res.Message)
	}
}

func TestAutoSolveDeterministic(t *testing.T) {
	in := AutoInput{Loads: Loads{TensionKips: 5, ShearKips: 2, MomentKipIn: 100}}
	first, err := AutoSolve(in)
	if err != nil {
		t.Fatalf("AutoSolve: %v", err)
	}
	second, err := AutoSolve(in)
	if err != nil {
		t.Fatalf("AutoSolve: %v", err)
	}
	if first.Ref != second.Ref || first.WeightLbs != second.WeightLbs {
		t.Errorf("runs disagree: %q %.4f vs %q %.4f",
			first.Ref, first.WeightLbs, second.Ref, second.WeightLbs)
	}
	for i := 0; i < 3 && i < len(first.Feasible); i++ {
		if first.Feasible[i] != second.Feasible[i] {
			t.Errorf("feasible order differs at %d: %+v vs %+v",
				i, first.Feasible[i], second.Feasible[i])
		}
	}
}

func TestAutoSolveInfeasible(t *testing.T) {
	res, err := AutoSolve(AutoInput{Loads: Loads{TensionKips: 1000}})
	if err != nil {
		t.Fatalf("AutoSolve: %v", err)
	}
	if res.Design != nil {
		t.Error("Design should be nil when nothing passes")
	}
	if len(res.Feasible) != 0 {
		t.Errorf("len(Feasible) = %d, want 0", len(res.Feasible))
	}
	if res.Evaluated != 540 {
		t.Errorf("Evaluated = %d, want 540", res.Evaluated)
	}
	if !strings.HasPrefix(res.Message, "no feasible base plate") {
		t.Errorf("Message = %q", res.Message)
	}
}

func TestAutoSolveValidation(t *testing.T) {
	_, err := AutoSolve(AutoInput{Loads: Loads{ShearKips: -2}})
	if err == nil || !errs.IsValidation(err) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}
