package rebar

import (
	"math"
	"strings"
	"testing"

	"github.com/apexsigns/signcalc/internal/aci"
	"github.com/apexsigns/signcalc/internal/errs"
)

func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %.4f, want %.4f (tol %.4f)", name, got, want, tol)
	}
}

func TestDrilledPierSchedule(t *testing.T) {
	// 3 ft x 6 ft pier with defaults: 9 verticals (one per foot of
	// circumference), 18 spiral turns at 4 in pitch on a 30 in cage.
	schedule, err := Design(Input{Type: DrilledPier, DiameterFt: 3, DepthFt: 6})
	if err != nil {
		t.Fatalf("Design: %v", err)
	}

	if len(schedule.VerticalBars) != 1 {
		t.Fatalf("vertical marks = %d, want 1", len(schedule.VerticalBars))
	}
	v := schedule.VerticalBars[0]
	if v.Mark != "V1" || v.Size != aci.Bar4 {
		t.Errorf("V1 = %s %s, want V1 #4", v.Mark, v.Size)
	}
	if v.Quantity != 9 {
		t.Errorf("vertical count = %d, want 9", v.Quantity)
	}
	approx(t, "vertical length", v.LengthFt, 8.0, 1e-9)

	if len(schedule.HorizontalBars) != 1 {
		t.Fatalf("horizontal marks = %d, want 1", len(schedule.HorizontalBars))
	}
	s := schedule.HorizontalBars[0]
	if s.Mark != "S1" || s.Size != aci.Bar3 {
		t.Errorf("S1 = %s %s, want S1 #3", s.Mark, s.Size)
	}
	if s.Quantity != 18 {
		t.Errorf("spiral count = %d, want 18", s.Quantity)
	}
	// π·30/12·1.1
	approx(t, "spiral turn length", s.LengthFt, 8.639, 0.001)
	approx(t, "spiral spacing", s.SpacingIn, 4.0, 1e-9)

	// #4 development: 60000*0.8/(25*√3000)*0.5 = 17.53 in
	approx(t, "development length", schedule.DevelopmentLengthIn, 17.53, 0.01)

	// V1: 9*8*0.668 = 48.10 lb; S1: 18*8.639*0.376 = 58.47 lb
	approx(t, "total rebar weight", schedule.TotalRebarWeightLbs, 106.57, 0.05)
	approx(t, "rebar to order", schedule.RebarOrderTons, 106.57/2000.0*1.05, 0.0005)

	// π·1.5²·6 = 42.41 cf = 1.571 cy
	approx(t, "concrete volume", schedule.Concrete.VolumeCuYd, 1.5708, 0.001)
	approx(t, "concrete to order", schedule.ConcreteOrderCuYd, 1.5708*1.10, 0.001)
	approx(t, "concrete weight", schedule.Concrete.WeightTons, 3.181, 0.001)

	if len(schedule.CodeRefs) == 0 {
		t.Error("schedule should carry code references")
	}
}

func TestDrilledPierMinimumBarCount(t *testing.T) {
	// π·1.5 ≈ 4.7 bars by circumference; Section 13.3 minimum of 6 governs.
	schedule, err := Design(Input{Type: DrilledPier, DiameterFt: 1.5, DepthFt: 4})
	if err != nil {
		t.Fatalf("Design: %v", err)
	}
	if got := schedule.VerticalBars[0].Quantity; got != aci.MinDrilledPierBars {
		t.Errorf("vertical count = %d, want code minimum %d", got, aci.MinDrilledPierBars)
	}
}

func TestDirectBurialUsesCylindricalLayout(t *testing.T) {
	pier, err := Design(Input{Type: DrilledPier, DiameterFt: 3, DepthFt: 6})
	if err != nil {
		t.Fatalf("pier: %v", err)
	}
	burial, err := Design(Input{Type: DirectBurial, DiameterFt: 3, DepthFt: 6})
	if err != nil {
		t.Fatalf("burial: %v", err)
	}
	if burial.VerticalBars[0].Quantity != pier.VerticalBars[0].Quantity {
		t.Error("direct burial and drilled pier share the cage layout")
	}
}

func TestSpreadFootingSchedule(t *testing.T) {
	// 4x5x1.5 ft footing with #5: As = 0.0018·48·18 = 1.56 in² needs
	// 2.5 bars per direction; the 3 bar minimum governs.
	schedule, err := Design(Input{
		Type: SpreadFooting, WidthFt: 4, LengthFt: 5, ThicknessFt: 1.5,
		BarSize: aci.Bar5,
	})
	if err != nil {
		t.Fatalf("Design: %v", err)
	}

	if len(schedule.VerticalBars) != 0 {
		t.Errorf("spread footing has no vertical bars, got %d marks", len(schedule.VerticalBars))
	}
	if len(schedule.HorizontalBars) != 2 {
		t.Fatalf("bottom mat marks = %d, want 2", len(schedule.HorizontalBars))
	}

	b1, b2 := schedule.HorizontalBars[0], schedule.HorizontalBars[1]
	if b1.Mark != "B1" || b2.Mark != "B2" {
		t.Errorf("marks = %s/%s, want B1/B2", b1.Mark, b2.Mark)
	}
	if b1.Quantity != 3 || b2.Quantity != 3 {
		t.Errorf("bar counts = %d/%d, want 3 minimum each way", b1.Quantity, b2.Quantity)
	}
	approx(t, "B1 length", b1.LengthFt, 5.0, 1e-9)
	approx(t, "B2 length", b2.LengthFt, 6.0, 1e-9)
	approx(t, "B1 spacing", b1.SpacingIn, 30.0, 1e-9)
	approx(t, "B2 spacing", b2.SpacingIn, 24.0, 1e-9)

	approx(t, "concrete volume", schedule.Concrete.VolumeCuYd, 30.0/27.0, 1e-9)
}

func TestSpreadFootingSteelRatioGovernsLargeFooting(t *testing.T) {
	// 8x8x2 ft with #4: As = 0.0018·96·24 = 4.15 in² → 10 bars each way.
	schedule, err := Design(Input{
		Type: SpreadFooting, WidthFt: 8, LengthFt: 8, ThicknessFt: 2,
	})
	if err != nil {
		t.Fatalf("Design: %v", err)
	}
	if got := schedule.HorizontalBars[0].Quantity; got != 10 {
		t.Errorf("bar count = %d, want 10 from steel ratio", got)
	}
	approx(t, "spacing", schedule.HorizontalBars[0].SpacingIn, 96.0/9.0, 0.01)
}

func TestScheduleValidation(t *testing.T) {
	cases := []struct {
		name string
		in   Input
	}{
		{"zero diameter", Input{Type: DrilledPier, DepthFt: 6}},
		{"oversize diameter", Input{Type: DrilledPier, DiameterFt: 12, DepthFt: 6}},
		{"oversize depth", Input{Type: DrilledPier, DiameterFt: 3, DepthFt: 25}},
		{"footing missing thickness", Input{Type: SpreadFooting, WidthFt: 4, LengthFt: 5}},
		{"weak concrete", Input{Type: DrilledPier, DiameterFt: 3, DepthFt: 6, FcKsi: 2.0}},
		{"thin cover", Input{Type: DrilledPier, DiameterFt: 3, DepthFt: 6, CoverIn: 1.0}},
		{"unknown bar", Input{Type: DrilledPier, DiameterFt: 3, DepthFt: 6, BarSize: "#18"}},
		{"unknown type", Input{Type: "caisson", DiameterFt: 3, DepthFt: 6}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Design(tc.in)
			if !errs.IsValidation(err) {
				t.Errorf("expected ValidationError, got %v", err)
			}
			if err != nil && !strings.Contains(err.Error(), "ACI 318-19") {
				t.Errorf("error should cite the code section: %v", err)
			}
		})
	}
}

func TestBarWeight(t *testing.T) {
	bar := Bar{Mark: "V1", Size: aci.Bar4, Quantity: 9, LengthFt: 8.0}
	approx(t, "total length", bar.TotalLengthFt(), 72.0, 1e-9)
	approx(t, "weight", bar.WeightLbs(), 72.0*0.668, 1e-9)
}

func TestConcreteVolumeCylinder(t *testing.T) {
	concrete, err := ConcreteVolume(Input{Type: DirectBurial, DiameterFt: 2, DepthFt: 5})
	if err != nil {
		t.Fatalf("ConcreteVolume: %v", err)
	}
	wantCuFt := math.Pi * 1.0 * 1.0 * 5.0
	approx(t, "cubic feet", concrete.VolumeCuFt, wantCuFt, 1e-9)
	approx(t, "cubic yards", concrete.VolumeCuYd, wantCuFt/27.0, 1e-9)
	approx(t, "order volume", concrete.OrderVolumeCuYd(), wantCuFt/27.0*1.10, 1e-9)
}
