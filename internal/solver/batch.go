package solver

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBatchWorkers sizes the batch pool when the caller does not.
const DefaultBatchWorkers = 4

// Job is one batch work item. Exactly one of Single or Double is set; a
// job violating that is captured as a failed result, not an error.
type Job struct {
	ID     string        `json:"id,omitempty"`
	Single *SingleConfig `json:"single,omitempty"`
	Double *DoubleConfig `json:"double,omitempty"`
}

// JobResult pairs a job with its outcome in the original input position.
// A failed or panicking job carries the error text in its own slot and
// never affects the rest of the batch.
type JobResult struct {
	JobID     string        `json:"job_id"`
	Index     int           `json:"index"`
	Single    *DesignResult `json:"single,omitempty"`
	Double    *DoubleResult `json:"double,omitempty"`
	Error     string        `json:"error,omitempty"`
	Cached    bool          `json:"cached,omitempty"`
	ElapsedMS float64       `json:"elapsed_ms"`
}

// BatchResult is the whole run: per-job results in input order plus the
// run identity and tallies.
type BatchResult struct {
	RunID     string      `json:"run_id"`
	Workers   int         `json:"workers"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Results   []JobResult `json:"results"`
}

// SolveBatch runs the jobs on a fixed worker pool and returns results in
// input order regardless of completion order. A nil logger disables
// logging.
func SolveBatch(log *zap.Logger, jobs []Job, workers int) *BatchResult {
	return SolveBatchMemo(log, jobs, workers, nil)
}

// SolveBatchMemo is SolveBatch with a shared memo: jobs repeating a
// configuration, common when one sign rolls out across sites, solve once
// and reuse the record. A nil memo solves every job directly.
func SolveBatchMemo(log *zap.Logger, jobs []Job, workers int, memo *Memo) *BatchResult {
	if log == nil {
		log = zap.NewNop()
	}
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}
	if len(jobs) > 0 && workers > len(jobs) {
		workers = len(jobs)
	}

	runID := uuid.NewString()
	results := make([]JobResult, len(jobs))

	log.Info("batch started",
		zap.String("run_id", runID),
		zap.Int("jobs", len(jobs)),
		zap.Int("workers", workers))

	type task struct {
		idx int
		job Job
	}
	tasks := make(chan task)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			wlog := log.With(zap.String("run_id", runID), zap.Int("worker", worker))
			wlog.Debug("worker started")
			for t := range tasks {
				results[t.idx] = runJob(wlog, t.idx, t.job, memo)
			}
			wlog.Debug("worker finished")
		}(w)
	}

	for i, j := range jobs {
		tasks <- task{idx: i, job: j}
	}
	close(tasks)
	wg.Wait()

	res := &BatchResult{RunID: runID, Workers: workers, Results: results}
	for _, r := range results {
		if r.Error == "" {
			res.Succeeded++
		} else {
			res.Failed++
		}
	}
	log.Info("batch finished",
		zap.String("run_id", runID),
		zap.Int("succeeded", res.Succeeded),
		zap.Int("failed", res.Failed))
	return res
}

func runJob(log *zap.Logger, idx int, job Job, memo *Memo) (out JobResult) {
	start := time.Now()
	out = JobResult{JobID: job.ID, Index: idx}
	if out.JobID == "" {
		out.JobID = uuid.NewString()
	}
	defer func() {
		out.ElapsedMS = float64(time.Since(start).Microseconds()) / 1000.0
		if r := recover(); r != nil {
			out.Single, out.Double = nil, nil
			out.Error = fmt.Sprintf("panic: %v", r)
			log.Error("job panicked",
				zap.String("job_id", out.JobID),
				zap.Int("index", idx),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()

	switch {
	case job.Single != nil && job.Double != nil:
		out.Error = "job must set exactly one of single or double"
	case job.Single != nil:
		var (
			r   *DesignResult
			err error
		)
		if memo != nil {
			r, out.Cached, err = memo.SolveSingle(*job.Single)
		} else {
			r, err = SolveSingle(*job.Single)
		}
		if err != nil {
			out.Error = err.Error()
			log.Warn("job failed", zap.String("job_id", out.JobID), zap.Error(err))
		} else {
			out.Single = r
			log.Debug("job solved",
				zap.String("job_id", out.JobID),
				zap.Bool("approved", r.Approved),
				zap.Bool("cached", out.Cached),
				zap.String("hash", r.ContentHash))
		}
	case job.Double != nil:
		var (
			r   *DoubleResult
			err error
		)
		if memo != nil {
			r, out.Cached, err = memo.SolveDouble(*job.Double)
		} else {
			r, err = SolveDouble(*job.Double)
		}
		if err != nil {
			out.Error = err.Error()
			log.Warn("job failed", zap.String("job_id", out.JobID), zap.Error(err))
		} else {
			out.Double = r
			log.Debug("job solved",
				zap.String("job_id", out.JobID),
				zap.Bool("approved", r.Approved),
				zap.Bool("cached", out.Cached),
				zap.String("hash", r.ContentHash))
		}
	default:
		out.Error = "job must set exactly one of single or double"
	}
	return out
}
