package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/moradia-app/moradia/internal/domain"
)

// rentCashflow is the outcome of settling one month of rent and costs against
// external savings and the investment balance. Shared by the rent-and-invest
// and invest-then-buy simulators.
type rentCashflow struct {
	// NewBalance is the investment balance after withdrawal and surplus.
	NewBalance decimal.Decimal
	// ExternalUsed is the part of the cost covered by external savings.
	ExternalUsed decimal.Decimal
	// Withdrawal is the part covered by the investment balance.
	Withdrawal decimal.Decimal
	// Unmet is the cost left uncovered. Shortfalls are recorded, not modeled
	// as debt.
	Unmet decimal.Decimal
	// SurplusInvested is leftover external savings added to the balance.
	SurplusInvested decimal.Decimal
	// OutOfPocket is the external cash spent this month: cost coverage plus
	// invested surplus. Withdrawals are internal transfers and excluded.
	OutOfPocket decimal.Decimal
}

// applyRentCashflow settles a month's total cost (rent plus recurring costs)
// per the rent flags. With rentReducesInvestment, external savings cover the
// cost first and the remainder is withdrawn from the balance, clamped to what
// is available. Without it, the cost is a pure external expense and the
// balance only grows.
func applyRentCashflow(balance, totalCost decimal.Decimal, cfg domain.RentConfig) rentCashflow {
	cf := rentCashflow{NewBalance: balance}

	if !cfg.RentReducesInvestment {
		if cfg.InvestExternalSurplus {
			cf.SurplusInvested = cfg.MonthlyExternalSavings
			cf.NewBalance = balance.Add(cf.SurplusInvested)
		}
		cf.OutOfPocket = totalCost.Add(cf.SurplusInvested)
		return cf
	}

	cf.ExternalUsed = decimal.Min(cfg.MonthlyExternalSavings, totalCost)
	remainder := totalCost.Sub(cf.ExternalUsed)

	cf.Withdrawal = decimal.Min(remainder, decimal.Max(balance, decimal.Zero))
	cf.Unmet = remainder.Sub(cf.Withdrawal)
	cf.NewBalance = balance.Sub(cf.Withdrawal)

	leftover := cfg.MonthlyExternalSavings.Sub(cf.ExternalUsed)
	if cfg.InvestExternalSurplus && leftover.GreaterThan(decimal.Zero) {
		cf.SurplusInvested = leftover
		cf.NewBalance = cf.NewBalance.Add(leftover)
	}

	cf.OutOfPocket = cf.ExternalUsed.Add(cf.SurplusInvested)
	return cf
}
