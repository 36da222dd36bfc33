package solver

import (
	"github.com/apexsigns/signcalc/internal/asce"
	"github.com/apexsigns/signcalc/internal/cache"
	"github.com/apexsigns/signcalc/internal/catalog"
)

// Memo memoizes completed solves behind quantized-input keys. Identical
// configurations, including ones that differ only by float noise below
// the quantization decimals, share one entry. A memo is safe for
// concurrent solvers; results returned on a hit are shared and must be
// treated as immutable.
type Memo struct {
	single *cache.Cache[*DesignResult]
	double *cache.Cache[*DoubleResult]
}

// NewMemo creates a memo holding up to size entries per pipeline; zero
// or negative takes the cache default.
func NewMemo(size int) (*Memo, error) {
	single, err := cache.New[*DesignResult](size)
	if err != nil {
		return nil, err
	}
	double, err := cache.New[*DoubleResult](size)
	if err != nil {
		return nil, err
	}
	return &Memo{single: single, double: double}, nil
}

// SolveSingle returns the cached result for an identical configuration,
// computing and storing on a miss. The hit flag reports which happened.
// Errors are never cached: an invalid configuration fails identically on
// every call.
func (m *Memo) SolveSingle(cfg SingleConfig) (*DesignResult, bool, error) {
	key := singleKey(cfg)
	if res, ok := m.single.Get(key); ok {
		return res, true, nil
	}
	res, err := SolveSingle(cfg)
	if err != nil {
		return nil, false, err
	}
	m.single.Add(key, res)
	return res, false, nil
}

// SolveDouble is the two-pole counterpart of SolveSingle.
func (m *Memo) SolveDouble(cfg DoubleConfig) (*DoubleResult, bool, error) {
	key := doubleKey(cfg)
	if res, ok := m.double.Get(key); ok {
		return res, true, nil
	}
	res, err := SolveDouble(cfg)
	if err != nil {
		return nil, false, err
	}
	m.double.Add(key, res)
	return res, false, nil
}

// Purge drops every cached result, e.g. after a catalog reload.
func (m *Memo) Purge() {
	m.single.Purge()
	m.double.Purge()
}

// Len reports the cached entry count across both pipelines.
func (m *Memo) Len() int {
	return m.single.Len() + m.double.Len()
}

// singleKey builds the cache key over every input that can change the
// result. Defaults are resolved first so an explicit value and its
// default share an entry, and the catalog version scopes the key the
// same way it scopes the content hash.
func singleKey(cfg SingleConfig) string {
	cfg = cfg.withDefaults()
	if cfg.GustFactor == 0 {
		cfg.GustFactor = asce.DefaultGustFactor
	}
	if cfg.ForceCoefficient == 0 {
		cfg.ForceCoefficient = asce.DefaultForceCoefficient
	}
	if cfg.Wind.Kzt == 0 {
		cfg.Wind.Kzt = 1.0
	}
	if cfg.Wind.Kd == 0 {
		cfg.Wind.Kd = asce.DefaultDirectionality
	}
	if cfg.Wind.Ke == 0 {
		cfg.Wind.Ke = 1.0
	}
	version := catalog.Builtin().Version()
	if cfg.Catalog != nil {
		version = cfg.Catalog.Version()
	}
	g := cfg.Geometry
	return cache.NewKey(version).
		String("single").
		String(string(cfg.Application)).
		Float(g.PoleHeightFt).Float(g.SignWidthFt).Float(g.SignHeightFt).
		Float(g.SignAreaSqFt).Float(g.SignThicknessIn).Float(g.SignWeightPSF).
		Float(g.ClearanceFt).Float(g.ArmLengthFt).
		Float(cfg.Wind.SpeedMPH).
		String(string(cfg.Wind.Exposure)).
		String(string(cfg.Wind.Risk)).
		Float(cfg.Wind.Kzt).Float(cfg.Wind.Kd).Float(cfg.Wind.Ke).
		Float(cfg.GustFactor).Float(cfg.ForceCoefficient).
		String(cfg.Section).
		String(string(cfg.Family)).
		Float(cfg.SeismicSds).Float(cfg.GroundSnowPSF).
		Float(cfg.SoilBearingPSF).Float(cfg.FoundationDiameterFt).Float(cfg.TrialEmbedmentFt).
		Float(cfg.DeflectionLimit).
		Float(cfg.ConcreteFcKsi).Float(cfg.RebarFyKsi).
		String(string(cfg.RebarSize)).
		Float(cfg.RebarCoverIn).
		Sum()
}

// doubleKey extends the single key with the pair-specific fields. The
// mode tag keeps the two key spaces disjoint even across shared caches.
func doubleKey(cfg DoubleConfig) string {
	cfg = cfg.withDefaults()
	return cache.NewKey(singleKey(cfg.SingleConfig)).
		String("double").
		Float(cfg.SpacingFt).
		String(string(cfg.Distribution)).
		Bool(cfg.BracingProvided).
		Sum()
}
