package calculation

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/moradia-app/moradia/internal/domain"
)

// SimulateBuy runs the buy-with-financing scenario: down payment and upfront
// costs at month zero, a financed loan for the remainder (reduced by any FGTS
// released at purchase), monthly ownership costs indexed by inflation, and
// continuous property appreciation. Final equity is the final property value
// plus whatever FGTS balance remains.
func (e *SimulationEngine) SimulateBuy(resolved *ResolvedInput) (*domain.ScenarioResult, error) {
	input := resolved.Input
	fgts := resolved.newFGTS()

	loanValue := resolved.LoanValue
	fgtsAtPurchase := decimal.Zero
	if fgts != nil && input.FGTS.UseAtPurchase {
		w := fgts.Withdraw(0, loanValue, domain.FGTSReasonPurchase)
		if w.Success {
			fgtsAtPurchase = w.Allowed
			loanValue = loanValue.Sub(fgtsAtPurchase)
		}
	}

	sim, err := NewLoanSimulator(resolved.loanParameters(loanValue), resolved.Amortizations, e.logger)
	if err != nil {
		return nil, err
	}
	loan := sim.Run()

	e.logger.Debug("buy scenario loan simulated",
		zap.String("loanValue", loanValue.StringFixed(2)),
		zap.Int("actualTermMonths", loan.ActualTermMonths),
		zap.Int("monthsSaved", loan.MonthsSaved))

	upfront := UpfrontCosts(input.PropertyPrice, input.Costs)
	outflows := input.DownPayment.Add(upfront).Add(fgtsAtPurchase)

	result := &domain.ScenarioResult{
		Name:           domain.ScenarioBuy,
		InitialCapital: input.DownPayment,
		Loan:           loan,
	}

	outstanding := loanValue
	for month := 1; month <= input.TermMonths; month++ {
		if fgts != nil {
			fgts.AccumulateMonthly()
		}

		record := domain.MonthlyRecord{Month: month}

		if month <= loan.ActualTermMonths {
			inst := loan.Installments[month-1]
			record.Installment = inst.Installment
			record.Interest = inst.Interest
			record.Amortization = inst.Amortization
			record.ExtraAmortization = inst.ExtraAmortization
			outstanding = inst.OutstandingBalance
		}
		record.OutstandingBalance = outstanding

		record.MonthlyCosts = MonthlyOwnershipCosts(month, 1, input.Costs, input.AnnualInflationRatePercent)
		record.PropertyValue = ApplyPropertyAppreciation(input.PropertyPrice, month, 1,
			input.AppreciationRatePercent, input.AnnualInflationRatePercent)
		record.Equity = record.PropertyValue.Sub(outstanding)

		spent := record.Installment.Add(record.MonthlyCosts)
		record.CashFlow = spent.Neg()
		outflows = outflows.Add(spent)

		if fgts != nil {
			record.FGTSBalance = fgts.Balance()
		}

		result.MonthlyData = append(result.MonthlyData, record)
	}

	final := result.FinalRecord()
	result.FinalEquity = final.PropertyValue
	if fgts != nil {
		result.FinalEquity = result.FinalEquity.Add(fgts.Balance())
		result.FGTSHistory = fgts.History()
	}
	result.TotalOutflows = outflows
	result.NetCost = outflows.Sub(result.FinalEquity)
	result.TotalCost = result.NetCost
	return result, nil
}
