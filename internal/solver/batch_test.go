package solver

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestSolveBatchOrderAndTallies(t *testing.T) {
	good := pylonConfig("HSS8X8X3/8")
	bad := pylonConfig("HSS8X8X3/8")
	bad.Geometry.PoleHeightFt = -5
	double := doubleConfig()

	jobs := []Job{
		{ID: "alpha", Single: &good},
		{Single: &bad},
		{ID: "gamma", Double: &double},
		{Single: &good, Double: &double},
		{},
	}
	batch := SolveBatch(zap.NewNop(), jobs, 2)

	if batch.RunID == "" {
		t.Error("run id missing")
	}
	if batch.Workers != 2 {
		t.Errorf("workers = %d, want 2", batch.Workers)
	}
	if len(batch.Results) != len(jobs) {
		t.Fatalf("results = %d, want %d", len(batch.Results), len(jobs))
	}
	for i, r := range batch.Results {
		if r.Index != i {
			t.Errorf("result %d carries index %d; order must match input", i, r.Index)
		}
		if r.JobID == "" {
			t.Errorf("result %d has no job id", i)
		}
		if r.ElapsedMS < 0 {
			t.Errorf("result %d elapsed = %f", i, r.ElapsedMS)
		}
	}

	if r := batch.Results[0]; r.JobID != "alpha" || r.Error != "" || r.Single == nil || !r.Single.Approved {
		t.Errorf("job alpha = %+v, want an approved single result", r)
	}
	if r := batch.Results[1]; r.Single != nil || !strings.Contains(r.Error, "pole height must be positive") {
		t.Errorf("invalid job error = %q", r.Error)
	}
	if r := batch.Results[2]; r.JobID != "gamma" || r.Double == nil || !r.Double.Approved {
		t.Errorf("job gamma = %+v, want an approved double result", r)
	}
	for _, i := range []int{3, 4} {
		if got := batch.Results[i].Error; got != "job must set exactly one of single or double" {
			t.Errorf("job %d error = %q", i, got)
		}
	}

	if batch.Succeeded != 2 || batch.Failed != 3 {
		t.Errorf("tallies = %d/%d, want 2 succeeded, 3 failed", batch.Succeeded, batch.Failed)
	}
}

func TestSolveBatchWorkerSizing(t *testing.T) {
	good := pylonConfig("HSS8X8X3/8")
	jobs := []Job{{Single: &good}, {Single: &good}}

	// Nil logger and zero workers take the defaults, clamped to the job count.
	batch := SolveBatch(nil, jobs, 0)
	if batch.Workers != 2 {
		t.Errorf("workers = %d, want default clamped to 2 jobs", batch.Workers)
	}
	if batch.Succeeded != 2 {
		t.Errorf("succeeded = %d, want 2", batch.Succeeded)
	}

	batch = SolveBatch(nil, jobs, 8)
	if batch.Workers != 2 {
		t.Errorf("workers = %d, want 8 clamped to 2 jobs", batch.Workers)
	}
}

func TestSolveBatchEmpty(t *testing.T) {
	batch := SolveBatch(nil, nil, 3)
	if len(batch.Results) != 0 || batch.Succeeded != 0 || batch.Failed != 0 {
		t.Errorf("empty batch = %+v", batch)
	}
	if batch.RunID == "" {
		t.Error("run id missing")
	}
}

func TestSolveBatchDeterministicHashesAcrossRuns(t *testing.T) {
	good := pylonConfig("HSS8X8X3/8")
	jobs := []Job{{Single: &good}}
	a := SolveBatch(nil, jobs, 1)
	b := SolveBatch(nil, jobs, 1)
	if a.Results[0].Single.ContentHash != b.Results[0].Single.ContentHash {
		t.Error("same job must hash identically across runs")
	}
	if a.RunID == b.RunID {
		t.Error("each run needs its own id")
	}
}
