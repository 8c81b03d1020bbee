package calculation

import (
	"github.com/shopspring/decimal"
)

// ApplyInflation indexes a value by annual inflation as a step function: the
// multiplier increases only at each complete 12-month boundary past baseMonth,
// so within any year the value is flat. This models annual readjustment of
// rent, fees, and price lists.
func ApplyInflation(value decimal.Decimal, month, baseMonth int, annualRatePercent decimal.Decimal) decimal.Decimal {
	if annualRatePercent.IsZero() {
		return value
	}
	years := (month - baseMonth) / 12
	if years <= 0 {
		return value
	}
	factor := decimal.NewFromInt(1).Add(annualRatePercent.Div(oneHundred))
	return value.Mul(factor.Pow(decimal.NewFromInt(int64(years))))
}

// ApplyPropertyAppreciation compounds a property value every month using the
// monthly equivalent of the annual rate. This is deliberately different from
// ApplyInflation: asset growth is continuous while price-list revision is
// stepped.
//
// An explicit zero appreciation rate means "no growth". Only a nil rate falls
// back to the inflation rate.
func ApplyPropertyAppreciation(value decimal.Decimal, month, baseMonth int, appreciationRatePercent *decimal.Decimal, fallbackInflationPercent decimal.Decimal) decimal.Decimal {
	rate := fallbackInflationPercent
	if appreciationRatePercent != nil {
		rate = *appreciationRatePercent
	}
	if rate.IsZero() {
		return value
	}
	months := month - baseMonth
	if months <= 0 {
		return value
	}
	monthlyRate := AnnualToMonthlyRate(rate)
	factor := decimal.NewFromInt(1).Add(monthlyRate.Div(oneHundred))
	return value.Mul(factor.Pow(decimal.NewFromInt(int64(months))))
}
