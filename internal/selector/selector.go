// Package selector searches the catalog for the lightest section passing
// the member checks. Infeasibility is an explained result, never an error:
// callers always learn either the winning sections or the nearest miss and
// why it fails.
package selector

import (
	"fmt"
	"sort"
	"sync"

	"github.com/apexsigns/signcalc/internal/aisc"
	"github.com/apexsigns/signcalc/internal/catalog"
	"github.com/apexsigns/signcalc/internal/member"
)

// MaxAluminumHeightFt is the hard material lock: aluminum poles are not
// offered above this height regardless of strength results.
const MaxAluminumHeightFt = 15.0

// DefaultWorkers is the parallel evaluation width.
const DefaultWorkers = 4

// SortKey orders feasible sections.
type SortKey string

const (
	SortByWeight SortKey = "weight"
	SortBySx     SortKey = "sx"
	SortByDepth  SortKey = "depth"
)

// Request describes the demands and search constraints.
type Request struct {
	MomentKipFt  float64 `json:"moment_kipft"`
	ShearKips    float64 `json:"shear_kips"`
	WindForceLbs float64 `json:"wind_force_lbs"`
	CentroidFt   float64 `json:"centroid_ft"`
	HeightFt     float64 `json:"height_ft"`

	// Family restricts the search; empty searches every family.
	Family catalog.Family `json:"family,omitempty"`
	// SortBy defaults to weight.
	SortBy SortKey `json:"sort_by,omitempty"`
	// MaxDepthIn excludes deeper sections; zero is unconstrained.
	MaxDepthIn float64 `json:"max_depth_in,omitempty"`

	Limits member.Limits `json:"limits"`
	// Workers bounds the parallel check pool; zero takes DefaultWorkers.
	Workers int `json:"-"`
}

// Candidate pairs a passing section with its check result.
type Candidate struct {
	Section catalog.PoleSection `json:"section"`
	Check   *member.CheckResult `json:"check"`
}

// Nearest is the closest failing candidate when nothing passes.
type Nearest struct {
	Section      catalog.PoleSection `json:"section"`
	FailingCheck string              `json:"failing_check"`
	Severity     float64             `json:"severity"`
	Check        *member.CheckResult `json:"check"`
}

// Selection is the structured search outcome. Empty Feasible with a
// populated Nearest is the soft-infeasible case.
type Selection struct {
	Feasible []Candidate `json:"feasible"`
	Nearest  *Nearest    `json:"nearest,omitempty"`

	// MaterialLockViolation names the hard rule that excluded the
	// requested family before any strength evaluation.
	MaterialLockViolation string `json:"material_lock_violation,omitempty"`

	Message     string `json:"message"`
	Evaluated   int    `json:"evaluated"`
	Prefiltered int    `json:"prefiltered"`
}

// HasFeasible reports whether any section passed.
func (s *Selection) HasFeasible() bool { return len(s.Feasible) > 0 }

// Select searches the catalog for sections satisfying the request.
func Select(cat *catalog.Catalog, req Request) (*Selection, error) {
	if req.HeightFt <= 0 {
		return nil, fmt.Errorf("selector: pole height must be positive, got %.2f ft", req.HeightFt)
	}
	if req.MomentKipFt <= 0 {
		return nil, fmt.Errorf("selector: governing moment must be positive, got %.2f kip-ft", req.MomentKipFt)
	}
	if req.SortBy == "" {
		req.SortBy = SortByWeight
	}
	if req.Workers <= 0 {
		req.Workers = DefaultWorkers
	}

	// Hard material lock before anything else
	if req.Family == catalog.FamilyAluminum && req.HeightFt > MaxAluminumHeightFt {
		lock := fmt.Sprintf("aluminum poles are limited to %.0f ft; requested height %.1f ft",
			MaxAluminumHeightFt, req.HeightFt)
		return &Selection{
			MaterialLockViolation: lock,
			Message:               "no feasible design: " + lock,
		}, nil
	}

	pool := cat.Filter(req.Family, catalog.Constraints{MaxDepthIn: req.MaxDepthIn})

	// With no family requested the lock still removes aluminum candidates
	// on tall poles.
	if req.Family == "" && req.HeightFt > MaxAluminumHeightFt {
		kept := pool[:0]
		for _, s := range pool {
			if s.Family != catalog.FamilyAluminum {
				kept = append(kept, s)
			}
		}
		pool = kept
	}

	selection := &Selection{}
	if len(pool) == 0 {
		selection.Message = fmt.Sprintf("no feasible design: no catalog sections match family %q and constraints", req.Family)
		return selection, nil
	}

	// Cheap necessary condition: fb <= Fb requires Sx >= M*12/Fb. Grade
	// varies by section so the threshold is per candidate.
	survivors := make([]catalog.PoleSection, 0, len(pool))
	var bestExcluded *catalog.PoleSection
	for i := range pool {
		minSx := req.MomentKipFt * 12.0 / aisc.Fb(pool[i].FyKsi)
		if pool[i].SxIn3 >= minSx {
			survivors = append(survivors, pool[i])
			continue
		}
		selection.Prefiltered++
		if bestExcluded == nil || pool[i].SxIn3 > bestExcluded.SxIn3 {
			bestExcluded = &pool[i]
		}
	}

	// Demand beyond every candidate: keep the strongest excluded section
	// so the nearest miss can still be explained with a full check.
	if len(survivors) == 0 && bestExcluded != nil {
		survivors = append(survivors, *bestExcluded)
		selection.Prefiltered--
	}

	checks, err := checkAll(survivors, req)
	if err != nil {
		return nil, err
	}
	selection.Evaluated = len(survivors)

	var nearest *Nearest
	for i, check := range checks {
		if check.Passes {
			selection.Feasible = append(selection.Feasible, Candidate{Section: survivors[i], Check: check})
			continue
		}
		name, severity := check.WorstCheck()
		if nearest == nil || severity < nearest.Severity {
			nearest = &Nearest{Section: survivors[i], FailingCheck: name, Severity: severity, Check: check}
		}
	}

	if len(selection.Feasible) == 0 {
		selection.Nearest = nearest
		if nearest != nil {
			selection.Message = fmt.Sprintf(
				"no feasible design: nearest candidate %s fails %s at %.2f",
				nearest.Section.Designation, nearest.FailingCheck, nearest.Severity)
		} else {
			selection.Message = "no feasible design: no candidates survived the constraints"
		}
		return selection, nil
	}

	sortCandidates(selection.Feasible, req.SortBy)
	selection.Message = fmt.Sprintf("%d feasible sections, lightest %s",
		len(selection.Feasible), selection.Feasible[0].Section.Designation)
	return selection, nil
}

// checkAll runs the full member check across a bounded worker pool.
// Results land at the candidate's index so parallel completion order never
// affects the outcome.
func checkAll(sections []catalog.PoleSection, req Request) ([]*member.CheckResult, error) {
	loads := member.Loads{
		MomentKipFt:  req.MomentKipFt,
		ShearKips:    req.ShearKips,
		WindForceLbs: req.WindForceLbs,
		CentroidFt:   req.CentroidFt,
	}

	results := make([]*member.CheckResult, len(sections))
	errors := make([]error, len(sections))

	var wg sync.WaitGroup
	sem := make(chan struct{}, req.Workers)
	for i := range sections {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i], errors[i] = member.Check(sections[i], loads, req.HeightFt, req.Limits)
		}(i)
	}
	wg.Wait()

	for _, err := range errors {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// sortCandidates orders by the requested key; the stable sort keeps
// catalog order for ties.
func sortCandidates(cands []Candidate, key SortKey) {
	less := func(a, b catalog.PoleSection) bool { return a.WeightPLF < b.WeightPLF }
	switch key {
	case SortBySx:
		less = func(a, b catalog.PoleSection) bool { return a.SxIn3 < b.SxIn3 }
	case SortByDepth:
		less = func(a, b catalog.PoleSection) bool { return a.DepthIn < b.DepthIn }
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return less(cands[i].Section, cands[j].Section)
	})
}
