package compare

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/moradia-app/moradia/internal/calculation"
	"github.com/moradia-app/moradia/internal/domain"
)

// Sweepable parameter names.
const (
	ParamLoanInterest     = "loanInterest"
	ParamInvestmentReturn = "investmentReturn"
	ParamAppreciation     = "appreciation"
	ParamInflation        = "inflation"
)

// SensitivityParameter describes one parameter sweep: the annual rate named
// by Name is shifted by StepPoints percentage points, Steps times in each
// direction around the configured value.
type SensitivityParameter struct {
	Name       string          `json:"name"`
	StepPoints decimal.Decimal `json:"stepPoints"`
	Steps      int             `json:"steps"`
}

// SensitivityResult is the comparison outcome at one swept value.
type SensitivityResult struct {
	DeltaPoints  decimal.Decimal            `json:"deltaPoints"`
	BestScenario string                     `json:"bestScenario"`
	NetCosts     map[string]decimal.Decimal `json:"netCosts"`
}

// SensitivityAnalysis reports how the scenario ranking responds to one
// parameter. FlipPoints lists the deltas at which the winner changes from the
// base run's; an empty list means the recommendation is stable across the
// swept range.
type SensitivityAnalysis struct {
	Parameter  string              `json:"parameter"`
	BaseBest   string              `json:"baseBest"`
	Results    []SensitivityResult `json:"results"`
	FlipPoints []decimal.Decimal   `json:"flipPoints,omitempty"`
}

// Sensitivity sweeps one annual rate across ±Steps×StepPoints and reruns the
// full comparison at each value.
func (e *Engine) Sensitivity(input *domain.SimulationInput, param SensitivityParameter) (*SensitivityAnalysis, error) {
	if param.Steps <= 0 {
		return nil, fmt.Errorf("sensitivity steps must be positive, got %d", param.Steps)
	}
	if param.StepPoints.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("sensitivity step size must be positive, got %s", param.StepPoints)
	}

	analysis := &SensitivityAnalysis{Parameter: param.Name}

	for k := -param.Steps; k <= param.Steps; k++ {
		delta := param.StepPoints.Mul(decimal.NewFromInt(int64(k)))

		shifted, err := shiftParameter(input, param.Name, delta)
		if err != nil {
			return nil, err
		}

		result, err := e.Compare(shifted)
		if err != nil {
			return nil, fmt.Errorf("comparison at %s delta %s points failed: %w", param.Name, delta, err)
		}

		netCosts := make(map[string]decimal.Decimal, len(result.Scenarios))
		for i := range result.Scenarios {
			netCosts[result.Scenarios[i].Name] = result.Scenarios[i].NetCost
		}

		analysis.Results = append(analysis.Results, SensitivityResult{
			DeltaPoints:  delta,
			BestScenario: result.BestScenario,
			NetCosts:     netCosts,
		})

		if k == 0 {
			analysis.BaseBest = result.BestScenario
		}
	}

	for _, r := range analysis.Results {
		if r.BestScenario != analysis.BaseBest {
			analysis.FlipPoints = append(analysis.FlipPoints, r.DeltaPoints)
		}
	}

	e.logger.Info("sensitivity sweep finished",
		zap.String("parameter", param.Name),
		zap.String("baseBest", analysis.BaseBest),
		zap.Int("flips", len(analysis.FlipPoints)))

	return analysis, nil
}

// shiftParameter clones the input with the named annual rate moved by delta
// percentage points. The original input is never mutated.
func shiftParameter(input *domain.SimulationInput, name string, delta decimal.Decimal) (*domain.SimulationInput, error) {
	shifted := *input

	switch name {
	case ParamLoanInterest:
		annual, err := calculation.ResolveAnnualRate(input.InterestRates)
		if err != nil {
			return nil, err
		}
		newAnnual := annual.Add(delta)
		shifted.InterestRates = domain.RatePair{AnnualPercent: &newAnnual}

	case ParamInvestmentReturn:
		periods := make([]domain.InvestmentReturnPeriod, len(input.InvestmentReturns))
		copy(periods, input.InvestmentReturns)
		for i := range periods {
			periods[i].AnnualRatePercent = periods[i].AnnualRatePercent.Add(delta)
		}
		shifted.InvestmentReturns = periods

	case ParamAppreciation:
		base := input.AnnualInflationRatePercent
		if input.AppreciationRatePercent != nil {
			base = *input.AppreciationRatePercent
		}
		newRate := base.Add(delta)
		shifted.AppreciationRatePercent = &newRate

	case ParamInflation:
		shifted.AnnualInflationRatePercent = input.AnnualInflationRatePercent.Add(delta)

	default:
		return nil, fmt.Errorf("unknown sensitivity parameter %q", name)
	}

	return &shifted, nil
}
