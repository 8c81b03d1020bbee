package calculation

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/moradia-app/moradia/internal/domain"
)

// SimulateRentAndInvest runs the rent-and-invest scenario: the would-be down
// payment seeds an investment balance, rent and recurring costs are paid each
// month per the rent flags, and the balance compounds at the scheduled return
// rates net of tax. Final equity is the final investment balance.
func (e *SimulationEngine) SimulateRentAndInvest(resolved *ResolvedInput) (*domain.ScenarioResult, error) {
	input := resolved.Input

	result := &domain.ScenarioResult{
		Name:           domain.ScenarioRentAndInvest,
		InitialCapital: input.DownPayment,
	}

	balance := input.DownPayment
	outflows := input.DownPayment

	for month := 1; month <= input.TermMonths; month++ {
		record := domain.MonthlyRecord{Month: month}

		record.Rent = ApplyInflation(resolved.MonthlyRent, month, 1, input.AnnualInflationRatePercent)
		record.MonthlyCosts = MonthlyOwnershipCosts(month, 1, input.Costs, input.AnnualInflationRatePercent)
		totalCost := record.Rent.Add(record.MonthlyCosts)

		cf := applyRentCashflow(balance, totalCost, input.Rent)
		balance = cf.NewBalance
		record.Withdrawal = cf.Withdrawal
		record.UnmetCost = cf.Unmet
		record.ExternalSavingsUsed = cf.ExternalUsed
		record.SurplusInvested = cf.SurplusInvested

		// Return applies after the withdrawal.
		ret, err := resolved.Investments.ApplyMonth(balance, month)
		if err != nil {
			return nil, err
		}
		balance = ret.NewBalance
		record.InvestmentReturn = ret.NetReturn
		record.InvestmentTax = ret.Tax
		record.InvestmentBalance = balance

		if cf.Withdrawal.GreaterThan(decimal.Zero) {
			ratio := ret.NetReturn.DivRound(cf.Withdrawal, 6)
			record.WithdrawalRatio = &ratio
			record.BurnMonth = ret.NetReturn.LessThan(cf.Withdrawal)
			if record.BurnMonth {
				e.logger.Debug("capital erosion month",
					zap.Int("month", month),
					zap.String("withdrawal", cf.Withdrawal.StringFixed(2)),
					zap.String("return", ret.NetReturn.StringFixed(2)))
			}
		}

		record.CashFlow = cf.OutOfPocket.Neg()
		outflows = outflows.Add(cf.OutOfPocket)

		result.MonthlyData = append(result.MonthlyData, record)
	}

	result.FinalEquity = balance
	result.TotalOutflows = outflows
	result.NetCost = outflows.Sub(balance)
	result.TotalCost = result.NetCost
	return result, nil
}
