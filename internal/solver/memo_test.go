package solver

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/apexsigns/signcalc/internal/asce"
)

func TestMemoSolveSingleHitMiss(t *testing.T) {
	memo, err := NewMemo(8)
	if err != nil {
		t.Fatalf("NewMemo: %v", err)
	}

	first, hit, err := memo.SolveSingle(pylonConfig("HSS8X8X3/8"))
	if err != nil {
		t.Fatalf("SolveSingle: %v", err)
	}
	if hit {
		t.Error("first solve reported a hit")
	}
	if memo.Len() != 1 {
		t.Errorf("Len = %d, want 1", memo.Len())
	}

	second, hit, err := memo.SolveSingle(pylonConfig("HSS8X8X3/8"))
	if err != nil {
		t.Fatalf("SolveSingle: %v", err)
	}
	if !hit {
		t.Error("identical configuration missed")
	}
	if second != first {
		t.Error("hit returned a new record instead of the shared one")
	}
	if memo.Len() != 1 {
		t.Errorf("Len = %d after a hit, want 1", memo.Len())
	}
}

func TestMemoKeySeparatesConfigurations(t *testing.T) {
	memo, err := NewMemo(8)
	if err != nil {
		t.Fatalf("NewMemo: %v", err)
	}

	base := pylonConfig("HSS8X8X3/8")
	if _, _, err := memo.SolveSingle(base); err != nil {
		t.Fatalf("SolveSingle: %v", err)
	}

	faster := base
	faster.Wind.SpeedMPH = 130
	res, hit, err := memo.SolveSingle(faster)
	if err != nil {
		t.Fatalf("SolveSingle: %v", err)
	}
	if hit {
		t.Error("changed wind speed must not reuse the cached record")
	}
	if res.Config.Wind.SpeedMPH != 130 {
		t.Errorf("result speed = %.0f, want 130", res.Config.Wind.SpeedMPH)
	}
	if memo.Len() != 2 {
		t.Errorf("Len = %d, want 2", memo.Len())
	}
}

// A configuration spelled with explicit code defaults keys the same as
// one that leaves them zero, and float noise below the quantization
// decimals does not split the entry.
func TestMemoNormalizedKeysShareEntry(t *testing.T) {
	memo, err := NewMemo(8)
	if err != nil {
		t.Fatalf("NewMemo: %v", err)
	}

	bare := pylonConfig("HSS8X8X3/8")
	if _, _, err := memo.SolveSingle(bare); err != nil {
		t.Fatalf("SolveSingle: %v", err)
	}

	explicit := pylonConfig("HSS8X8X3/8")
	explicit.GustFactor = asce.DefaultGustFactor
	explicit.ForceCoefficient = asce.DefaultForceCoefficient
	explicit.Wind.Kzt = 1.0
	explicit.Wind.Kd = asce.DefaultDirectionality
	explicit.Wind.Ke = 1.0
	explicit.TrialEmbedmentFt = DefaultTrialEmbedmentFt
	explicit.Geometry.SignWidthFt = 10.00000004

	_, hit, err := memo.SolveSingle(explicit)
	if err != nil {
		t.Fatalf("SolveSingle: %v", err)
	}
	if !hit {
		t.Error("explicit defaults keyed a second entry")
	}
	if memo.Len() != 1 {
		t.Errorf("Len = %d, want 1", memo.Len())
	}
}

func TestMemoErrorsNotCached(t *testing.T) {
	memo, err := NewMemo(8)
	if err != nil {
		t.Fatalf("NewMemo: %v", err)
	}

	bad := pylonConfig("HSS8X8X3/8")
	bad.Geometry.PoleHeightFt = -5

	for i := 0; i < 2; i++ {
		res, hit, err := memo.SolveSingle(bad)
		if err == nil || !strings.Contains(err.Error(), "pole height must be positive") {
			t.Fatalf("call %d error = %v", i, err)
		}
		if res != nil || hit {
			t.Errorf("call %d returned res=%v hit=%t for an invalid configuration", i, res, hit)
		}
	}
	if memo.Len() != 0 {
		t.Errorf("Len = %d, invalid configurations must not occupy entries", memo.Len())
	}
}

func TestMemoSolveDouble(t *testing.T) {
	memo, err := NewMemo(8)
	if err != nil {
		t.Fatalf("NewMemo: %v", err)
	}

	first, hit, err := memo.SolveDouble(doubleConfig())
	if err != nil {
		t.Fatalf("SolveDouble: %v", err)
	}
	if hit {
		t.Error("first solve reported a hit")
	}

	second, hit, err := memo.SolveDouble(doubleConfig())
	if err != nil {
		t.Fatalf("SolveDouble: %v", err)
	}
	if !hit || second != first {
		t.Error("identical pair configuration should reuse the record")
	}

	// The embedded single keys the other pipeline, not this entry.
	if _, hit, err := memo.SolveSingle(doubleConfig().SingleConfig); err != nil {
		t.Fatalf("SolveSingle: %v", err)
	} else if hit {
		t.Error("single pipeline hit on a key only the double pipeline wrote")
	}
	if memo.Len() != 2 {
		t.Errorf("Len = %d, want one entry per pipeline", memo.Len())
	}

	wider := doubleConfig()
	wider.SpacingFt = 20
	if _, hit, err := memo.SolveDouble(wider); err != nil {
		t.Fatalf("SolveDouble: %v", err)
	} else if hit {
		t.Error("changed spacing must not reuse the cached record")
	}
}

func TestMemoPurge(t *testing.T) {
	memo, err := NewMemo(8)
	if err != nil {
		t.Fatalf("NewMemo: %v", err)
	}
	if _, _, err := memo.SolveSingle(pylonConfig("HSS8X8X3/8")); err != nil {
		t.Fatalf("SolveSingle: %v", err)
	}

	memo.Purge()
	if memo.Len() != 0 {
		t.Errorf("Len = %d after purge, want 0", memo.Len())
	}
	if _, hit, err := memo.SolveSingle(pylonConfig("HSS8X8X3/8")); err != nil {
		t.Fatalf("SolveSingle: %v", err)
	} else if hit {
		t.Error("purged entry still served a hit")
	}
}

// A quote book repeating one configuration across sites solves it once;
// the repeats carry the cached flag and the identical content hash.
func TestSolveBatchMemoReusesRepeatedJobs(t *testing.T) {
	memo, err := NewMemo(8)
	if err != nil {
		t.Fatalf("NewMemo: %v", err)
	}
	cfg := pylonConfig("HSS8X8X3/8")
	jobs := []Job{
		{ID: "site-1", Single: &cfg},
		{ID: "site-2", Single: &cfg},
		{ID: "site-3", Single: &cfg},
	}

	// One worker keeps the hit order deterministic.
	batch := SolveBatchMemo(zap.NewNop(), jobs, 1, memo)
	if batch.Succeeded != 3 || batch.Failed != 0 {
		t.Fatalf("succeeded=%d failed=%d, want 3/0", batch.Succeeded, batch.Failed)
	}

	if batch.Results[0].Cached {
		t.Error("first job should compute, not hit")
	}
	hash := batch.Results[0].Single.ContentHash
	for _, r := range batch.Results[1:] {
		if !r.Cached {
			t.Errorf("job %s did not reuse the cached record", r.JobID)
		}
		if r.Single.ContentHash != hash {
			t.Errorf("job %s hash = %s, want %s", r.JobID, r.Single.ContentHash, hash)
		}
	}
	if memo.Len() != 1 {
		t.Errorf("Len = %d, want 1", memo.Len())
	}
}

func TestSolveBatchWithoutMemoNeverFlagsCached(t *testing.T) {
	cfg := pylonConfig("HSS8X8X3/8")
	jobs := []Job{
		{ID: "a", Single: &cfg},
		{ID: "b", Single: &cfg},
	}
	batch := SolveBatch(zap.NewNop(), jobs, 1)
	for _, r := range batch.Results {
		if r.Cached {
			t.Errorf("job %s flagged cached with no memo in play", r.JobID)
		}
	}
}
