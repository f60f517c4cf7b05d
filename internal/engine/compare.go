package engine

import (
	"fmt"

	"github.com/piwi3910/RodCut/internal/model"
)

// ComparisonScenario defines a named price table to compare.
type ComparisonScenario struct {
	Name    string
	Problem model.Problem
}

// ComparisonResult holds the solved trace and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario    ComparisonScenario
	Trace       *model.Trace
	MaxProfit   int
	Pieces      []int
	CutCount    int
	ProfitDelta int // relative to the first scenario that solved
	Err         error
}

// CompareScenarios solves each scenario and returns the results in scenario
// order. A scenario that fails validation keeps its error in Err and does
// not stop the others. ProfitDelta is measured against the first scenario
// that solves.
func CompareScenarios(scenarios []ComparisonScenario) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))
	baseline, haveBaseline := 0, false

	for _, scenario := range scenarios {
		trace, err := Solve(scenario.Problem)
		if err != nil {
			results = append(results, ComparisonResult{Scenario: scenario, Err: err})
			continue
		}

		pieces := trace.Pieces()
		profit := trace.MaxProfit()
		if !haveBaseline {
			baseline, haveBaseline = profit, true
		}

		results = append(results, ComparisonResult{
			Scenario:    scenario,
			Trace:       trace,
			MaxProfit:   profit,
			Pieces:      pieces,
			CutCount:    len(pieces) - 1,
			ProfitDelta: profit - baseline,
		})
	}

	return results
}

// BuildDefaultScenarios generates what-if variants of base, each one a
// question a learner might ask after watching the solution.
func BuildDefaultScenarios(base model.Problem) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:    "Current Prices",
			Problem: base.Clone(),
		},
	}
	if len(base.Prices) == 0 {
		return scenarios
	}

	// Scenario: double the price of length 1
	doubled := base.Clone()
	doubled.Prices[0] *= 2
	scenarios = append(scenarios, ComparisonScenario{
		Name:    fmt.Sprintf("Length 1 at $%d (double)", doubled.Prices[0]),
		Problem: doubled,
	})

	// Scenario: every unit is worth the same
	unit := base.Prices[0]
	if unit == 0 {
		unit = 1
	}
	linear := base.Clone()
	for k := range linear.Prices {
		linear.Prices[k] = unit * (k + 1)
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name:    fmt.Sprintf("Linear $%d per unit", unit),
		Problem: linear,
	})

	// Scenario: whole rod priced above any combination of pieces
	if base.RodLength > 1 {
		highest := 0
		for _, p := range base.Prices {
			if p > highest {
				highest = p
			}
		}
		premium := base.Clone()
		premium.Prices[base.RodLength-1] = highest*base.RodLength + 1
		scenarios = append(scenarios, ComparisonScenario{
			Name:    "Whole Rod Premium",
			Problem: premium,
		})
	}

	return scenarios
}
