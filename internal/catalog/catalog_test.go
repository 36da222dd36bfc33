package catalog

import "testing"

func TestBuiltinCatalogValid(t *testing.T) {
	c := Builtin()
	if c.Len() == 0 {
		t.Fatal("builtin catalog is empty")
	}
	if c.Version() != BuiltinVersion {
		t.Errorf("version = %q, want %q", c.Version(), BuiltinVersion)
	}
	for _, s := range c.Sections() {
		if err := s.Validate(); err != nil {
			t.Errorf("builtin section invalid: %v", err)
		}
	}
}

func TestFindByDesignation(t *testing.T) {
	c := Builtin()

	s, ok := c.FindByDesignation("HSS8X8X1/4")
	if !ok {
		t.Fatal("HSS8X8X1/4 missing from builtin catalog")
	}
	if s.Family != FamilyHSS {
		t.Errorf("family = %s, want HSS", s.Family)
	}
	if s.SxIn3 != 17.7 {
		t.Errorf("Sx = %.2f, want 17.7", s.SxIn3)
	}
	if s.FyKsi != 46 {
		t.Errorf("Fy = %.1f, want 46", s.FyKsi)
	}

	if _, ok := c.FindByDesignation("HSS99X99X9"); ok {
		t.Error("lookup of unknown designation succeeded")
	}
}

func TestFilterByFamily(t *testing.T) {
	c := Builtin()

	pipes := c.Filter(FamilyPipe, Constraints{})
	if len(pipes) == 0 {
		t.Fatal("no pipe sections in builtin catalog")
	}
	for _, s := range pipes {
		if s.Family != FamilyPipe {
			t.Errorf("filter leaked %s from family %s", s.Designation, s.Family)
		}
	}

	all := c.Filter("", Constraints{})
	if len(all) != c.Len() {
		t.Errorf("empty family filter returned %d of %d sections", len(all), c.Len())
	}
}

func TestFilterConstraints(t *testing.T) {
	c := Builtin()

	heavy := c.Filter(FamilyHSS, Constraints{MinSx: 50})
	for _, s := range heavy {
		if s.SxIn3 < 50 {
			t.Errorf("%s has Sx %.1f below MinSx", s.Designation, s.SxIn3)
		}
	}

	shallow := c.Filter(FamilyHSS, Constraints{MaxDepthIn: 8})
	for _, s := range shallow {
		if s.DepthIn > 8 {
			t.Errorf("%s has depth %.1f above MaxDepthIn", s.Designation, s.DepthIn)
		}
	}
}

func TestFilterPreservesCatalogOrder(t *testing.T) {
	c := Builtin()
	hss := c.Filter(FamilyHSS, Constraints{})
	for i := 1; i < len(hss); i++ {
		if hss[i].WeightPLF < hss[i-1].WeightPLF {
			t.Fatalf("builtin HSS family not in ascending weight order at %s", hss[i].Designation)
		}
	}
}

func TestNewRejectsDuplicatesAndBadSections(t *testing.T) {
	good := PoleSection{
		Designation: "T1", Family: FamilyHSS, AreaIn2: 1, DepthIn: 4,
		WeightPLF: 5, SxIn3: 2, IxIn4: 4, RxIn: 1.5, FyKsi: 46, FuKsi: 58,
	}

	if _, err := New("v1", []PoleSection{good, good}); err == nil {
		t.Error("duplicate designation accepted")
	}

	bad := good
	bad.Designation = "T2"
	bad.SxIn3 = 0
	if _, err := New("v1", []PoleSection{bad}); err == nil {
		t.Error("zero section modulus accepted")
	}

	if _, err := New("", []PoleSection{good}); err == nil {
		t.Error("empty version accepted")
	}
}

func TestCatalogIsolation(t *testing.T) {
	c := Builtin()
	sections := c.Sections()
	original := sections[0].SxIn3
	sections[0].SxIn3 = -1

	again, _ := c.FindByDesignation(sections[0].Designation)
	if again.SxIn3 != original {
		t.Error("mutating a returned slice changed catalog state")
	}
}
