package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Catalog is the read-only section reference dataset. All lookups return
// copies; nothing mutates the catalog after construction.
type Catalog struct {
	version  string
	sections []PoleSection
	index    map[string]int
}

// New builds a catalog from a section list, validating every entry and
// rejecting duplicate designations. Input order is preserved; it is the
// deterministic tie-break for selection.
func New(version string, sections []PoleSection) (*Catalog, error) {
	if version == "" {
		return nil, fmt.Errorf("catalog version must not be empty")
	}
	c := &Catalog{
		version:  version,
		sections: make([]PoleSection, len(sections)),
		index:    make(map[string]int, len(sections)),
	}
	copy(c.sections, sections)

	for i, s := range c.sections {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.index[s.Designation]; dup {
			return nil, fmt.Errorf("duplicate section designation %s", s.Designation)
		}
		c.index[s.Designation] = i
	}
	return c, nil
}

// Builtin returns the embedded reference catalog.
func Builtin() *Catalog {
	c, err := New(BuiltinVersion, builtinSections)
	if err != nil {
		// The embedded table is validated by tests; a bad entry is a
		// programming error.
		panic(err)
	}
	return c
}

// catalogFile is the JSON layout for an external catalog.
type catalogFile struct {
	Version  string        `json:"version"`
	Sections []PoleSection `json:"sections"`
}

// LoadFile loads a catalog from a JSON file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if len(file.Sections) == 0 {
		return nil, fmt.Errorf("catalog %s contains no sections", path)
	}

	return New(file.Version, file.Sections)
}

// Version returns the dataset version string.
func (c *Catalog) Version() string {
	return c.version
}

// Len returns the number of sections.
func (c *Catalog) Len() int {
	return len(c.sections)
}

// FindByDesignation looks up a section by its designation.
func (c *Catalog) FindByDesignation(id string) (PoleSection, bool) {
	i, ok := c.index[id]
	if !ok {
		return PoleSection{}, false
	}
	return c.sections[i], true
}

// Constraints narrow a family filter. Zero values mean unconstrained.
type Constraints struct {
	MinSx       float64 // minimum section modulus (in³)
	MaxDepthIn  float64 // maximum outside depth (in)
	MaxWeight   float64 // maximum weight (plf)
	MinFyKsi    float64 // minimum yield strength (ksi)
	A1085Only   bool    // restrict to A1085 tolerance product
}

// Filter returns the sections of one family satisfying the constraints, in
// catalog order. An empty family matches all families.
func (c *Catalog) Filter(family Family, constraints Constraints) []PoleSection {
	var out []PoleSection
	for _, s := range c.sections {
		if family != "" && s.Family != family {
			continue
		}
		if constraints.MinSx > 0 && s.SxIn3 < constraints.MinSx {
			continue
		}
		if constraints.MaxDepthIn > 0 && s.DepthIn > constraints.MaxDepthIn {
			continue
		}
		if constraints.MaxWeight > 0 && s.WeightPLF > constraints.MaxWeight {
			continue
		}
		if constraints.MinFyKsi > 0 && s.FyKsi < constraints.MinFyKsi {
			continue
		}
		if constraints.A1085Only && !s.IsA1085 {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Sections returns a copy of the full section list in catalog order.
func (c *Catalog) Sections() []PoleSection {
	out := make([]PoleSection, len(c.sections))
	copy(out, c.sections)
	return out
}
