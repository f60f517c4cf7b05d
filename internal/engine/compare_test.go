package engine

import (
	"testing"

	"github.com/piwi3910/RodCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaultScenarios(t *testing.T) {
	base := model.NewProblem(8, classicPrices)
	scenarios := BuildDefaultScenarios(base)

	require.Len(t, scenarios, 4)
	assert.Equal(t, "Current Prices", scenarios[0].Name)
	assert.True(t, scenarios[0].Problem.Equal(base))
	assert.Equal(t, 2, scenarios[1].Problem.Prices[0])
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, scenarios[2].Problem.Prices)
	assert.Equal(t, 20*8+1, scenarios[3].Problem.Prices[7])

	// The base problem is never modified
	assert.Equal(t, classicPrices, base.Prices)
}

func TestBuildDefaultScenarios_SingleUnitRod(t *testing.T) {
	scenarios := BuildDefaultScenarios(model.NewProblem(1, []int{0}))
	require.Len(t, scenarios, 3, "no whole-rod premium for a rod that cannot be cut")
	assert.Equal(t, []int{1}, scenarios[2].Problem.Prices, "zero unit price falls back to 1")
}

func TestCompareScenarios(t *testing.T) {
	results := CompareScenarios(BuildDefaultScenarios(model.NewProblem(8, classicPrices)))
	require.Len(t, results, 4)

	current := results[0]
	require.NoError(t, current.Err)
	assert.Equal(t, 22, current.MaxProfit)
	assert.Equal(t, []int{2, 6}, current.Pieces)
	assert.Equal(t, 1, current.CutCount)
	assert.Equal(t, 0, current.ProfitDelta)

	doubled := results[1]
	require.NoError(t, doubled.Err)
	assert.GreaterOrEqual(t, doubled.MaxProfit, current.MaxProfit)

	linear := results[2]
	assert.Equal(t, 8, linear.MaxProfit)
	assert.Equal(t, -14, linear.ProfitDelta)
	assert.Len(t, linear.Pieces, 8)

	premium := results[3]
	assert.Equal(t, []int{8}, premium.Pieces)
	assert.Equal(t, 0, premium.CutCount)
	assert.NotNil(t, premium.Trace)
}

func TestCompareScenarios_InvalidScenarioKeepsError(t *testing.T) {
	results := CompareScenarios([]ComparisonScenario{
		{Name: "ok", Problem: model.NewProblem(2, []int{1, 5})},
		{Name: "bad", Problem: model.NewProblem(2, []int{1})},
	})
	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, model.ErrPriceCountMismatch)
	assert.Nil(t, results[1].Trace)
}

func TestCompareScenarios_BaselineSkipsFailedFirst(t *testing.T) {
	results := CompareScenarios([]ComparisonScenario{
		{Name: "bad", Problem: model.NewProblem(0, nil)},
		{Name: "base", Problem: model.NewProblem(2, []int{1, 5})},
		{Name: "richer", Problem: model.NewProblem(2, []int{4, 5})},
	})
	require.Len(t, results, 3)
	assert.ErrorIs(t, results[0].Err, model.ErrInvalidLength)
	assert.Zero(t, results[0].ProfitDelta)
	assert.Equal(t, 0, results[1].ProfitDelta)
	assert.Equal(t, 8, results[2].MaxProfit)
	assert.Equal(t, 3, results[2].ProfitDelta)
}
