package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/moradia-app/moradia/internal/domain"
)

// UpfrontCosts computes the one-time transfer costs (ITBI plus deed fees) as
// a percentage of the property price.
func UpfrontCosts(price decimal.Decimal, costs domain.CostConfig) decimal.Decimal {
	pct := costs.ITBIPercent.Add(costs.DeedCostPercent)
	return price.Mul(pct).Div(oneHundred)
}

// MonthlyOwnershipCosts computes the recurring ownership costs (HOA plus
// property tax) for a month, indexed by stepped annual inflation.
func MonthlyOwnershipCosts(month, baseMonth int, costs domain.CostConfig, annualInflationPercent decimal.Decimal) decimal.Decimal {
	base := costs.MonthlyHOA.Add(costs.MonthlyPropertyTax)
	return ApplyInflation(base, month, baseMonth, annualInflationPercent)
}
