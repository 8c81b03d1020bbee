package calculation

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/moradia-app/moradia/internal/domain"
)

// AmortizationStrategy yields the scheduled principal payment for a month.
// The two national conventions differ only in this step; the surrounding
// month loop is shared.
type AmortizationStrategy interface {
	RegularAmortization(month int, outstanding decimal.Decimal) decimal.Decimal
	Name() domain.LoanSystem
}

// ConstantAmortization implements the SAC convention: the principal portion
// is loanValue/termMonths every month, so installments decrease as interest
// shrinks.
type ConstantAmortization struct {
	amount decimal.Decimal
}

// NewConstantAmortization creates the SAC strategy.
func NewConstantAmortization(loanValue decimal.Decimal, termMonths int) *ConstantAmortization {
	return &ConstantAmortization{amount: loanValue.Div(decimal.NewFromInt(int64(termMonths)))}
}

// RegularAmortization returns the fixed monthly principal payment.
func (s *ConstantAmortization) RegularAmortization(_ int, _ decimal.Decimal) decimal.Decimal {
	return s.amount
}

// Name returns the SAC system identifier.
func (s *ConstantAmortization) Name() domain.LoanSystem { return domain.LoanSystemSAC }

// ConstantInstallment implements the PRICE convention: every installment is
// the same annuity payment, and the principal portion is whatever remains
// after the month's interest.
type ConstantInstallment struct {
	installment        decimal.Decimal
	monthlyRatePercent decimal.Decimal
}

// NewConstantInstallment creates the PRICE strategy. A zero monthly rate has
// no annuity formula and falls back to loanValue/termMonths.
func NewConstantInstallment(loanValue decimal.Decimal, termMonths int, monthlyRatePercent decimal.Decimal) *ConstantInstallment {
	return &ConstantInstallment{
		installment:        priceInstallment(loanValue, termMonths, monthlyRatePercent),
		monthlyRatePercent: monthlyRatePercent,
	}
}

// Installment returns the fixed annuity payment.
func (s *ConstantInstallment) Installment() decimal.Decimal { return s.installment }

// RegularAmortization returns the principal portion for the month: the fixed
// installment minus the interest accrued on the outstanding balance.
func (s *ConstantInstallment) RegularAmortization(_ int, outstanding decimal.Decimal) decimal.Decimal {
	interest := outstanding.Mul(s.monthlyRatePercent).Div(oneHundred)
	return s.installment.Sub(interest)
}

// Name returns the PRICE system identifier.
func (s *ConstantInstallment) Name() domain.LoanSystem { return domain.LoanSystemPrice }

// priceInstallment is the standard annuity payment formula
// L * i / (1 - (1+i)^-n).
func priceInstallment(loanValue decimal.Decimal, termMonths int, monthlyRatePercent decimal.Decimal) decimal.Decimal {
	if monthlyRatePercent.IsZero() {
		return loanValue.Div(decimal.NewFromInt(int64(termMonths)))
	}
	rate, _ := monthlyRatePercent.Div(oneHundred).Float64()
	discount := 1 - math.Pow(1+rate, -float64(termMonths))
	return loanValue.Mul(monthlyRatePercent).Div(oneHundred).DivRound(decimal.NewFromFloat(discount), 10)
}

// LoanSimulator produces a month-by-month amortization schedule for one loan,
// applying scheduled extra amortizations as it goes. Extra amounts beyond the
// outstanding balance are discarded, never carried forward.
type LoanSimulator struct {
	params   domain.LoanParameters
	strategy AmortizationStrategy
	extras   *AmortizationSchedule
	logger   *zap.Logger
}

// NewLoanSimulator validates the parameters and selects the amortization
// strategy. Fails fast with InvalidLoanParametersError so a partial schedule
// is never produced.
func NewLoanSimulator(params domain.LoanParameters, extras *AmortizationSchedule, logger *zap.Logger) (*LoanSimulator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if params.TermMonths <= 0 {
		return nil, &domain.InvalidLoanParametersError{Reason: fmt.Sprintf("termMonths must be positive, got %d", params.TermMonths)}
	}
	if params.LoanValue.LessThan(decimal.Zero) {
		return nil, &domain.InvalidLoanParametersError{Reason: fmt.Sprintf("loanValue cannot be negative, got %s", params.LoanValue)}
	}
	if params.MonthlyRatePercent.LessThan(decimal.Zero) {
		return nil, &domain.InvalidLoanParametersError{Reason: fmt.Sprintf("monthlyRate cannot be negative, got %s", params.MonthlyRatePercent)}
	}

	var strategy AmortizationStrategy
	switch params.System {
	case domain.LoanSystemPrice:
		strategy = NewConstantInstallment(params.LoanValue, params.TermMonths, params.MonthlyRatePercent)
	case domain.LoanSystemSAC, "":
		strategy = NewConstantAmortization(params.LoanValue, params.TermMonths)
	default:
		return nil, &domain.InvalidLoanParametersError{Reason: fmt.Sprintf("unknown loan system %q", params.System)}
	}

	return &LoanSimulator{params: params, strategy: strategy, extras: extras, logger: logger}, nil
}

// Run generates the schedule. The loop terminates early once the balance
// reaches zero, producing actualTermMonths < originalTermMonths.
func (ls *LoanSimulator) Run() *domain.LoanSimulationResult {
	result := &domain.LoanSimulationResult{
		System:             ls.strategy.Name(),
		LoanValue:          ls.params.LoanValue,
		MonthlyRatePercent: ls.params.MonthlyRatePercent,
		OriginalTermMonths: ls.params.TermMonths,
	}

	outstanding := ls.params.LoanValue
	for month := 1; month <= ls.params.TermMonths && outstanding.GreaterThan(decimal.Zero); month++ {
		interest := outstanding.Mul(ls.params.MonthlyRatePercent).Div(oneHundred)
		regular := ls.strategy.RegularAmortization(month, outstanding)
		extra := ls.extras.TotalAt(month, outstanding)

		total := regular.Add(extra)
		// The final scheduled month settles whatever remains: the PRICE
		// annuity is float-derived and can round to either side of the
		// exact payoff.
		if month == ls.params.TermMonths || total.GreaterThan(outstanding) {
			if total.GreaterThan(outstanding) && extra.GreaterThan(decimal.Zero) {
				excess := total.Sub(outstanding)
				extra = decimal.Max(extra.Sub(excess), decimal.Zero)
			}
			total = outstanding
		}

		outstanding = outstanding.Sub(total)
		installment := interest.Add(total)

		if extra.GreaterThan(decimal.Zero) {
			ls.logger.Debug("applying extra amortization",
				zap.Int("month", month),
				zap.String("extra", extra.StringFixed(2)),
				zap.String("outstanding", outstanding.StringFixed(2)))
		}

		result.Installments = append(result.Installments, domain.LoanInstallment{
			Month:              month,
			Installment:        installment,
			Amortization:       total,
			Interest:           interest,
			ExtraAmortization:  extra,
			OutstandingBalance: outstanding,
		})

		result.TotalPaid = result.TotalPaid.Add(installment)
		result.TotalInterest = result.TotalInterest.Add(interest)
		result.TotalAmortization = result.TotalAmortization.Add(total)
		result.TotalExtraAmortization = result.TotalExtraAmortization.Add(extra)
	}

	result.ActualTermMonths = len(result.Installments)
	result.MonthsSaved = result.OriginalTermMonths - result.ActualTermMonths
	if n := len(result.Installments); n > 0 {
		result.FirstInstallment = result.Installments[0].Installment
		result.LastInstallment = result.Installments[n-1].Installment
	}
	return result
}

// SimulateLoan is the one-shot convenience path: build the extra-amortization
// schedule, validate, and run.
func SimulateLoan(params domain.LoanParameters, specs []domain.AmortizationSpec, annualInflationPercent decimal.Decimal, logger *zap.Logger) (*domain.LoanSimulationResult, error) {
	extras, err := BuildAmortizationSchedule(specs, params.TermMonths, annualInflationPercent)
	if err != nil {
		return nil, err
	}
	sim, err := NewLoanSimulator(params, extras, logger)
	if err != nil {
		return nil, err
	}
	return sim.Run(), nil
}
