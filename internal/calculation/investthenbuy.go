package calculation

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/moradia-app/moradia/internal/domain"
)

// SimulateInvestThenBuy runs the invest-until-able-to-buy-outright scenario.
// Pre-purchase, the balance grows through scheduled contributions, optional
// loan-payment-vs-rent spread investing, and monthly returns, while rent and
// costs drain it per the rent flags. The purchase executes in the first month
// the balance (plus usable FGTS) covers the appreciation-adjusted property
// price and upfront costs; FGTS may only close the gap on the price portion,
// never on transaction costs. Post-purchase, the scenario keeps investing and
// pays ownership costs.
func (e *SimulationEngine) SimulateInvestThenBuy(resolved *ResolvedInput) (*domain.ScenarioResult, error) {
	input := resolved.Input
	fgts := resolved.newFGTS()

	// Parallel baseline loan: what financing the purchase today would cost
	// per month. Only its payment stream is consulted.
	var baseline *domain.LoanSimulationResult
	if input.Rent.InvestLoanDifference {
		sim, err := NewLoanSimulator(resolved.loanParameters(resolved.LoanValue), nil, e.logger)
		if err != nil {
			return nil, err
		}
		baseline = sim.Run()
	}

	result := &domain.ScenarioResult{
		Name:           domain.ScenarioInvestThenBuy,
		InitialCapital: input.DownPayment,
	}

	balance := input.DownPayment
	outflows := input.DownPayment
	purchased := false
	var propertyValue decimal.Decimal
	lastMilestone := decimal.Zero

	for month := 1; month <= input.TermMonths; month++ {
		if fgts != nil {
			fgts.AccumulateMonthly()
		}

		record := domain.MonthlyRecord{Month: month}
		currentValue := ApplyPropertyAppreciation(input.PropertyPrice, month, 1,
			input.AppreciationRatePercent, input.AnnualInflationRatePercent)

		if purchased {
			var err error
			balance, outflows, err = e.investThenBuyOwnedMonth(resolved, month, balance, outflows, &record)
			if err != nil {
				return nil, err
			}
			record.PropertyValue = currentValue
			record.Equity = currentValue
			propertyValue = currentValue
		} else {
			// Scheduled contributions land first so they earn this month's return.
			contribution := resolved.Contributions.TotalAt(month, balance)
			balance = balance.Add(contribution)
			outflows = outflows.Add(contribution)
			record.Contribution = contribution

			record.Rent = ApplyInflation(resolved.MonthlyRent, month, 1, input.AnnualInflationRatePercent)
			record.MonthlyCosts = MonthlyOwnershipCosts(month, 1, input.Costs, input.AnnualInflationRatePercent)
			totalCost := record.Rent.Add(record.MonthlyCosts)

			cf := applyRentCashflow(balance, totalCost, input.Rent)
			balance = cf.NewBalance
			record.Withdrawal = cf.Withdrawal
			record.UnmetCost = cf.Unmet
			record.ExternalSavingsUsed = cf.ExternalUsed
			record.SurplusInvested = cf.SurplusInvested
			outOfPocket := cf.OutOfPocket.Add(contribution)

			ret, err := resolved.Investments.ApplyMonth(balance, month)
			if err != nil {
				return nil, err
			}
			balance = ret.NewBalance
			record.InvestmentReturn = ret.NetReturn
			record.InvestmentTax = ret.Tax

			if cf.Withdrawal.GreaterThan(decimal.Zero) {
				ratio := ret.NetReturn.DivRound(cf.Withdrawal, 6)
				record.WithdrawalRatio = &ratio
				record.BurnMonth = ret.NetReturn.LessThan(cf.Withdrawal)
			}

			// Additional investing: the positive spread between the baseline
			// loan payment and rent, plus the fixed recurring amount once its
			// start month is reached.
			extra := decimal.Zero
			if baseline != nil && month <= baseline.ActualTermMonths {
				spread := baseline.Installments[month-1].Installment.Sub(record.Rent)
				if spread.GreaterThan(decimal.Zero) {
					extra = extra.Add(spread)
				}
			}
			if input.Rent.FixedMonthlyInvestment.GreaterThan(decimal.Zero) && month >= input.Rent.FixedInvestmentStartMonth {
				extra = extra.Add(input.Rent.FixedMonthlyInvestment)
			}
			if extra.GreaterThan(decimal.Zero) {
				balance = balance.Add(extra)
				outflows = outflows.Add(extra)
				record.Contribution = record.Contribution.Add(extra)
				outOfPocket = outOfPocket.Add(extra)
			}

			// Purchase check against the month's adjusted total cost.
			upfront := UpfrontCosts(currentValue, input.Costs)
			totalPurchaseCost := currentValue.Add(upfront)
			usableFGTS := decimal.Zero
			if fgts != nil {
				// FGTS can cover the price portion only, never upfront costs.
				usableFGTS = decimal.Min(fgts.UsableAtPurchase(), currentValue)
			}

			if balance.Add(usableFGTS).GreaterThanOrEqual(totalPurchaseCost) {
				fgtsUsed := decimal.Zero
				if gap := totalPurchaseCost.Sub(balance); gap.GreaterThan(decimal.Zero) && fgts != nil {
					w := fgts.Withdraw(month, gap, domain.FGTSReasonPurchase)
					fgtsUsed = w.Allowed
				}
				balance = balance.Sub(totalPurchaseCost.Sub(fgtsUsed))
				outflows = outflows.Add(fgtsUsed)

				purchased = true
				propertyValue = currentValue
				m := month
				result.PurchaseMonth = &m

				record.PurchaseExecuted = true
				record.IsMilestone = true
				record.ProgressPercent = oneHundred
				record.PropertyValue = currentValue
				record.Equity = currentValue
				record.FGTSWithdrawal = fgtsUsed

				e.logger.Info("purchase executed",
					zap.Int("month", month),
					zap.String("propertyValue", currentValue.StringFixed(2)),
					zap.String("fgtsUsed", fgtsUsed.StringFixed(2)))
			} else {
				record.ProgressPercent = balance.Add(usableFGTS).Div(totalPurchaseCost).Mul(oneHundred)
				record.Shortfall = totalPurchaseCost.Sub(balance.Add(usableFGTS))

				// Quarter-progress milestones (25/50/75%).
				for _, threshold := range []int64{25, 50, 75} {
					t := decimal.NewFromInt(threshold)
					if record.ProgressPercent.GreaterThanOrEqual(t) && lastMilestone.LessThan(t) {
						record.IsMilestone = true
						lastMilestone = t
					}
				}
			}

			record.CashFlow = outOfPocket.Neg()
		}

		if fgts != nil {
			record.FGTSBalance = fgts.Balance()
		}
		record.InvestmentBalance = balance
		record.OutstandingBalance = decimal.Zero
		result.MonthlyData = append(result.MonthlyData, record)
	}

	if !purchased {
		result.ProjectedPurchaseMonth = projectPurchaseMonth(result.MonthlyData, input.TermMonths)
	}

	result.FinalEquity = balance
	if purchased {
		result.FinalEquity = result.FinalEquity.Add(propertyValue)
	}
	if fgts != nil {
		result.FinalEquity = result.FinalEquity.Add(fgts.Balance())
		result.FGTSHistory = fgts.History()
	}
	result.TotalOutflows = outflows
	result.NetCost = outflows.Sub(result.FinalEquity)
	result.TotalCost = result.NetCost
	return result, nil
}

// investThenBuyOwnedMonth advances one post-purchase month: ownership costs
// paid externally, fixed investing continues, returns keep compounding.
func (e *SimulationEngine) investThenBuyOwnedMonth(resolved *ResolvedInput, month int, balance, outflows decimal.Decimal, record *domain.MonthlyRecord) (decimal.Decimal, decimal.Decimal, error) {
	input := resolved.Input

	record.MonthlyCosts = MonthlyOwnershipCosts(month, 1, input.Costs, input.AnnualInflationRatePercent)
	outOfPocket := record.MonthlyCosts

	if input.Rent.FixedMonthlyInvestment.GreaterThan(decimal.Zero) && month >= input.Rent.FixedInvestmentStartMonth {
		record.Contribution = input.Rent.FixedMonthlyInvestment
		balance = balance.Add(record.Contribution)
		outOfPocket = outOfPocket.Add(record.Contribution)
	}

	ret, err := resolved.Investments.ApplyMonth(balance, month)
	if err != nil {
		return balance, outflows, err
	}
	balance = ret.NewBalance
	record.InvestmentReturn = ret.NetReturn
	record.InvestmentTax = ret.Tax

	record.CashFlow = outOfPocket.Neg()
	return balance, outflows.Add(outOfPocket), nil
}

// projectPurchaseMonth extrapolates when the purchase would happen from the
// trailing six-month average balance growth. Returns nil when growth is flat
// or negative.
func projectPurchaseMonth(records []domain.MonthlyRecord, termMonths int) *int {
	const window = 6
	if len(records) < window+1 {
		return nil
	}

	last := records[len(records)-1]
	prior := records[len(records)-1-window]
	growth := last.InvestmentBalance.Sub(prior.InvestmentBalance).Div(decimal.NewFromInt(window))
	if growth.LessThanOrEqual(decimal.Zero) || last.Shortfall.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	monthsNeeded := last.Shortfall.DivRound(growth, 0).IntPart()
	if last.Shortfall.GreaterThan(growth.Mul(decimal.NewFromInt(monthsNeeded))) {
		monthsNeeded++
	}
	projected := termMonths + int(monthsNeeded)
	return &projected
}
