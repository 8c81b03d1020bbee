package calculation

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/moradia-app/moradia/internal/domain"
)

// SimulationEngine runs the scenario simulators over a shared, pre-resolved
// input. It holds no cross-run state: every Simulate* call builds its
// accumulators fresh and discards them on return.
type SimulationEngine struct {
	logger *zap.Logger
}

// NewSimulationEngine creates an engine. A nil logger is replaced by a no-op.
func NewSimulationEngine(logger *zap.Logger) *SimulationEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimulationEngine{logger: logger}
}

// ResolvedInput is the validated, fully-resolved form of a SimulationInput.
// All rate resolution, schedule expansion, and period validation happens here
// so the month loops never encounter an error: fail fast, before any
// simulation state exists.
type ResolvedInput struct {
	Input *domain.SimulationInput

	MonthlyLoanRatePercent decimal.Decimal
	LoanValue              decimal.Decimal
	MonthlyRent            decimal.Decimal

	Amortizations *AmortizationSchedule
	Contributions *AmortizationSchedule
	Investments   *InvestmentCalculator
}

// ResolveInput validates a SimulationInput and resolves its derived values.
func ResolveInput(input *domain.SimulationInput) (*ResolvedInput, error) {
	monthlyRate, err := ResolveMonthlyRate(input.InterestRates)
	if err != nil {
		return nil, err
	}

	amortizations, err := BuildAmortizationSchedule(input.Amortizations, input.TermMonths, input.AnnualInflationRatePercent)
	if err != nil {
		return nil, err
	}
	contributions, err := BuildAmortizationSchedule(input.Contributions, input.TermMonths, input.AnnualInflationRatePercent)
	if err != nil {
		return nil, err
	}

	investments, err := NewInvestmentCalculator(input.InvestmentReturns, input.InvestmentTax)
	if err != nil {
		return nil, err
	}

	loanValue := input.PropertyPrice.Sub(input.DownPayment)
	// Surface bad loan parameters now rather than inside a scenario loop.
	if _, err := NewLoanSimulator(domain.LoanParameters{
		LoanValue:          loanValue,
		TermMonths:         input.TermMonths,
		MonthlyRatePercent: monthlyRate,
		System:             input.LoanSystem,
	}, nil, nil); err != nil {
		return nil, err
	}

	rent, err := resolveRent(input)
	if err != nil {
		return nil, err
	}

	return &ResolvedInput{
		Input:                  input,
		MonthlyLoanRatePercent: monthlyRate,
		LoanValue:              loanValue,
		MonthlyRent:            rent,
		Amortizations:          amortizations,
		Contributions:          contributions,
		Investments:            investments,
	}, nil
}

// resolveRent derives the monthly rent figure: a fixed value wins, then a
// percentage of the property price. Rent-based scenarios cannot run without
// one of the two.
func resolveRent(input *domain.SimulationInput) (decimal.Decimal, error) {
	if input.Rent.MonthlyRent != nil && input.Rent.MonthlyRent.GreaterThan(decimal.Zero) {
		return *input.Rent.MonthlyRent, nil
	}
	if input.Rent.RentPercentOfPrice != nil && input.Rent.RentPercentOfPrice.GreaterThan(decimal.Zero) {
		return input.PropertyPrice.Mul(*input.Rent.RentPercentOfPrice).Div(oneHundred), nil
	}
	return decimal.Zero, domain.ErrMissingRentValue
}

// LoanParams returns the resolved loan parameters for the full loan value,
// with no FGTS reduction applied.
func (ri *ResolvedInput) LoanParams() domain.LoanParameters {
	return ri.loanParameters(ri.LoanValue)
}

// loanParameters assembles the loan inputs for the resolved simulation.
func (ri *ResolvedInput) loanParameters(loanValue decimal.Decimal) domain.LoanParameters {
	return domain.LoanParameters{
		LoanValue:          loanValue,
		TermMonths:         ri.Input.TermMonths,
		MonthlyRatePercent: ri.MonthlyLoanRatePercent,
		System:             ri.Input.LoanSystem,
	}
}

// newFGTS builds the FGTS account for one run, or nil when not configured.
func (ri *ResolvedInput) newFGTS() *FGTSManager {
	if ri.Input.FGTS == nil {
		return nil
	}
	return NewFGTSManager(*ri.Input.FGTS)
}
