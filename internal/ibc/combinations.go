package ibc

// Combination represents an IBC allowable stress design load combination
// Based on IBC 2024 Section 1605.2.1 - Basic ASD Load Combinations
type Combination struct {
	ID          string
	Description string
	// Load factors for each load type
	Dead     float64 // D - dead load
	Live     float64 // L - live load
	RoofLive float64 // Lr - roof live load
	Snow     float64 // S - snow load
	Wind     float64 // W - wind load
}

// ASDCombinations is the basic ASD set applied to sign structures.
// LC7 carries the reduced dead-load factor for the uplift check; it is
// always evaluated because it can govern foundation uplift even when LC6
// governs bending.
var ASDCombinations = []Combination{
	{
		ID:          "LC1",
		Description: "D",
		Dead:        1.0,
	},
	{
		ID:          "LC2",
		Description: "D + L",
		Dead:        1.0,
		Live:        1.0,
	},
	{
		ID:          "LC3",
		Description: "D + Lr",
		Dead:        1.0,
		RoofLive:    1.0,
	},
	{
		ID:          "LC4",
		Description: "D + S",
		Dead:        1.0,
		Snow:        1.0,
	},
	{
		ID:          "LC5",
		Description: "D + 0.75L + 0.75W",
		Dead:        1.0,
		Live:        0.75,
		Wind:        0.75,
	},
	{
		ID:          "LC6",
		Description: "D + W",
		Dead:        1.0,
		Wind:        1.0,
	},
	{
		ID:          "LC7",
		Description: "0.6D + W",
		Dead:        0.6,
		Wind:        1.0,
	},
}

// Demands holds unfactored demands from each load type in whatever unit the
// caller works in (moment, shear or axial); the factors are unit-agnostic.
// Missing components stay zero - a safe degenerate case, not an error.
type Demands struct {
	Dead     float64 `json:"dead"`
	Live     float64 `json:"live"`
	RoofLive float64 `json:"roof_live"`
	Snow     float64 `json:"snow"`
	Wind     float64 `json:"wind"`
}

// Factored calculates the combined demand for this combination.
func (c Combination) Factored(d Demands) float64 {
	return c.Dead*d.Dead +
		c.Live*d.Live +
		c.RoofLive*d.RoofLive +
		c.Snow*d.Snow +
		c.Wind*d.Wind
}

// CombinationResult pairs one combination with its factored demand.
type CombinationResult struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Demand      float64 `json:"demand"`
	Governs     bool    `json:"governs"`
}

// Evaluation retains every combination result for audit, not just the
// governing one.
type Evaluation struct {
	Results     []CombinationResult `json:"results"`
	GoverningID string              `json:"governing_id"`
	MaxDemand   float64             `json:"max_demand"`
}

// Governing finds the maximum factored demand from all combinations.
// Ties resolve to the earliest combination in table order.
func Governing(d Demands, combinations []Combination) (float64, Combination) {
	var maxDemand float64
	var governing Combination

	for i, combo := range combinations {
		demand := combo.Factored(d)
		if i == 0 || demand > maxDemand {
			maxDemand = demand
			governing = combo
		}
	}

	return maxDemand, governing
}

// Evaluate computes all seven ASD combinations and marks the governing one.
func Evaluate(d Demands) Evaluation {
	maxDemand, governing := Governing(d, ASDCombinations)

	results := make([]CombinationResult, 0, len(ASDCombinations))
	for _, combo := range ASDCombinations {
		results = append(results, CombinationResult{
			ID:          combo.ID,
			Description: combo.Description,
			Demand:      combo.Factored(d),
			Governs:     combo.ID == governing.ID,
		})
	}

	return Evaluation{
		Results:     results,
		GoverningID: governing.ID,
		MaxDemand:   maxDemand,
	}
}

// UpliftDemand returns the factored demand under the reduced-dead-load
// uplift combination (0.6D + W).
func UpliftDemand(d Demands) float64 {
	for _, combo := range ASDCombinations {
		if combo.ID == "LC7" {
			return combo.Factored(d)
		}
	}
	return 0
}
