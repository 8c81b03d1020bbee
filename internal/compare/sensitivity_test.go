package compare

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moradia-app/moradia/internal/domain"
)

func TestSensitivitySweep(t *testing.T) {
	engine := NewEngine(nil)

	analysis, err := engine.Sensitivity(comparisonInput(), SensitivityParameter{
		Name:       ParamInvestmentReturn,
		StepPoints: decimal.NewFromInt(2),
		Steps:      3,
	})
	require.NoError(t, err)

	require.Len(t, analysis.Results, 7)
	assert.True(t, analysis.Results[0].DeltaPoints.Equal(decimal.NewFromInt(-6)))
	assert.True(t, analysis.Results[3].DeltaPoints.IsZero())
	assert.True(t, analysis.Results[6].DeltaPoints.Equal(decimal.NewFromInt(6)))
	assert.Equal(t, analysis.Results[3].BestScenario, analysis.BaseBest)

	for _, r := range analysis.Results {
		assert.Len(t, r.NetCosts, 3)
	}
}

func TestSensitivityHigherReturnsFavorInvesting(t *testing.T) {
	engine := NewEngine(nil)

	analysis, err := engine.Sensitivity(comparisonInput(), SensitivityParameter{
		Name:       ParamInvestmentReturn,
		StepPoints: decimal.NewFromInt(5),
		Steps:      2,
	})
	require.NoError(t, err)

	// The rent-and-invest net cost must fall monotonically as returns rise.
	prev := analysis.Results[0].NetCosts[domain.ScenarioRentAndInvest]
	for _, r := range analysis.Results[1:] {
		current := r.NetCosts[domain.ScenarioRentAndInvest]
		assert.True(t, current.LessThan(prev),
			"delta %s: net cost %s did not improve on %s", r.DeltaPoints, current, prev)
		prev = current
	}
}

func TestSensitivityLoanInterest(t *testing.T) {
	engine := NewEngine(nil)

	analysis, err := engine.Sensitivity(comparisonInput(), SensitivityParameter{
		Name:       ParamLoanInterest,
		StepPoints: decimal.NewFromInt(1),
		Steps:      2,
	})
	require.NoError(t, err)

	// Costlier financing makes the buy scenario strictly worse.
	prev := analysis.Results[0].NetCosts[domain.ScenarioBuy]
	for _, r := range analysis.Results[1:] {
		current := r.NetCosts[domain.ScenarioBuy]
		assert.True(t, current.GreaterThan(prev), "delta %s", r.DeltaPoints)
		prev = current
	}
}

func TestSensitivityValidation(t *testing.T) {
	engine := NewEngine(nil)

	_, err := engine.Sensitivity(comparisonInput(), SensitivityParameter{
		Name: ParamInflation, StepPoints: decimal.NewFromInt(1), Steps: 0,
	})
	assert.Error(t, err)

	_, err = engine.Sensitivity(comparisonInput(), SensitivityParameter{
		Name: ParamInflation, StepPoints: decimal.Zero, Steps: 2,
	})
	assert.Error(t, err)

	_, err = engine.Sensitivity(comparisonInput(), SensitivityParameter{
		Name: "cosmicRays", StepPoints: decimal.NewFromInt(1), Steps: 1,
	})
	assert.Error(t, err)
}

func TestSensitivityDoesNotMutateInput(t *testing.T) {
	engine := NewEngine(nil)
	input := comparisonInput()
	originalReturn := input.InvestmentReturns[0].AnnualRatePercent

	_, err := engine.Sensitivity(input, SensitivityParameter{
		Name:       ParamInvestmentReturn,
		StepPoints: decimal.NewFromInt(2),
		Steps:      1,
	})
	require.NoError(t, err)

	assert.True(t, input.InvestmentReturns[0].AnnualRatePercent.Equal(originalReturn))
	assert.Nil(t, input.AppreciationRatePercent)
}
