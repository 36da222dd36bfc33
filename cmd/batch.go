package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/apexsigns/signcalc/internal/cache"
	"github.com/apexsigns/signcalc/internal/solver"
)

var (
	batchFile    string
	batchWorkers int
	batchOut     string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Solve many sign designs from a JSON job file",
	Long: `Run a batch of design jobs on a worker pool. Each job is a single-
or double-pole configuration; a failing or panicking job is captured in
its own result slot and never stops the rest of the batch. Results come
back in input order regardless of completion order.

The job file is a JSON array:
[
  {"id": "store-041", "single": {"geometry": {...}, "wind": {...}}},
  {"id": "store-042", "double": {"spacing_ft": 12, "geometry": {...}, "wind": {...}}}
]

Examples:
  # Solve a quote book on 8 workers
  signcalc batch --file jobs.json --workers 8

  # Write the full result records for the estimating pipeline
  signcalc batch --file jobs.json --out results.json`,
	Run: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "JSON job file [required]")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", solver.DefaultBatchWorkers, "Worker pool size")
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "", "Write the full JSON results to a file")

	batchCmd.MarkFlagRequired("file")
}

func runBatch(cmd *cobra.Command, args []string) {
	raw, err := os.ReadFile(batchFile)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	var jobs []solver.Job
	if err := json.Unmarshal(raw, &jobs); err != nil {
		fmt.Printf("Error: parsing %s: %v\n", batchFile, err)
		return
	}
	if len(jobs) == 0 {
		fmt.Printf("Error: %s contains no jobs\n", batchFile)
		return
	}

	cat, err := loadCatalog()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	for i := range jobs {
		if jobs[i].Single != nil {
			jobs[i].Single.Catalog = cat
		}
		if jobs[i].Double != nil {
			jobs[i].Double.Catalog = cat
		}
	}

	size := cache.DefaultSize
	if cfg != nil {
		size = cfg.CacheSize
	}
	memo, err := solver.NewMemo(size)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	result := solver.SolveBatchMemo(log.Logger, jobs, batchWorkers, memo)

	cached := 0
	for _, r := range result.Results {
		if r.Cached {
			cached++
		}
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     BATCH SOLVE")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Run ID:\t%s\n", result.RunID)
	fmt.Fprintf(w, "  Jobs:\t%d on %d workers\n", len(result.Results), result.Workers)
	fmt.Fprintf(w, "  Succeeded:\t%d\n", result.Succeeded)
	fmt.Fprintf(w, "  Failed:\t%d\n", result.Failed)
	if cached > 0 {
		fmt.Fprintf(w, "  Cache hits:\t%d\n", cached)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("JOBS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  JOB\tSTATUS\tELAPSED\tRESULT\n")
	fmt.Fprintf(w, "  ───\t──────\t───────\t──────\n")
	for _, r := range result.Results {
		fmt.Fprintf(w, "  %s\t%s\t%.1f ms\t%s\n", r.JobID, jobStatus(r), r.ElapsedMS, jobSummary(r))
	}
	w.Flush()
	fmt.Println()

	if batchOut != "" {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := os.WriteFile(batchOut, out, 0o644); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("  Results written to %s\n", batchOut)
		fmt.Println()
	}
}

func jobStatus(r solver.JobResult) string {
	if r.Error != "" {
		return "⚠ error"
	}
	if r.Cached {
		return "✓ cached"
	}
	return "✓ solved"
}

// jobSummary is the one-line outcome: approval and the design identity,
// or the error text.
func jobSummary(r solver.JobResult) string {
	switch {
	case r.Error != "":
		return r.Error
	case r.Single != nil:
		return fmt.Sprintf("approved=%t %s hash=%.12s",
			r.Single.Approved, r.Single.Section.Designation, r.Single.ContentHash)
	case r.Double != nil:
		return fmt.Sprintf("approved=%t 2x%s hash=%.12s",
			r.Double.Approved, r.Double.PerPole.Section.Designation, r.Double.ContentHash)
	}
	return ""
}
