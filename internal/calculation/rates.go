// Package calculation implements the simulation core: rate conversion,
// inflation and appreciation models, amortization scheduling, the loan
// simulators, and the three competing housing scenarios. Everything here is
// deterministic and free of I/O; each top-level call is a pure function of
// its inputs.
package calculation

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/moradia-app/moradia/internal/domain"
)

var (
	oneHundred = decimal.NewFromInt(100)
	twelve     = decimal.NewFromInt(12)
)

// AnnualToMonthlyRate converts an annual percentage rate to its
// compound-equivalent monthly percentage rate.
func AnnualToMonthlyRate(annualPercent decimal.Decimal) decimal.Decimal {
	annual, _ := annualPercent.Div(oneHundred).Float64()
	monthly := math.Pow(1+annual, 1.0/12) - 1
	return decimal.NewFromFloat(monthly).Mul(oneHundred)
}

// MonthlyToAnnualRate converts a monthly percentage rate to its
// compound-equivalent annual percentage rate.
func MonthlyToAnnualRate(monthlyPercent decimal.Decimal) decimal.Decimal {
	monthly, _ := monthlyPercent.Div(oneHundred).Float64()
	annual := math.Pow(1+monthly, 12) - 1
	return decimal.NewFromFloat(annual).Mul(oneHundred)
}

// ResolveMonthlyRate resolves a RatePair into a monthly percentage rate.
// Exactly one of the two forms may be supplied, or both when mutually
// consistent: the annual rate derived from the stated monthly rate must agree
// with the stated annual rate within domain.RateTolerancePoints.
func ResolveMonthlyRate(pair domain.RatePair) (decimal.Decimal, error) {
	switch {
	case !pair.HasAnnual() && !pair.HasMonthly():
		return decimal.Zero, domain.ErrMissingRate
	case pair.HasAnnual() && pair.HasMonthly():
		derivedAnnual := MonthlyToAnnualRate(*pair.MonthlyPercent)
		diff := derivedAnnual.Sub(*pair.AnnualPercent).Abs()
		if diff.GreaterThan(domain.RateTolerancePoints) {
			return decimal.Zero, &domain.RateInconsistencyError{
				StatedAnnual:  pair.AnnualPercent.StringFixed(4),
				DerivedAnnual: derivedAnnual.StringFixed(4),
				Tolerance:     domain.RateTolerancePoints.String(),
			}
		}
		return *pair.MonthlyPercent, nil
	case pair.HasMonthly():
		return *pair.MonthlyPercent, nil
	default:
		return AnnualToMonthlyRate(*pair.AnnualPercent), nil
	}
}

// ResolveAnnualRate resolves a RatePair into an annual percentage rate,
// applying the same consistency rules as ResolveMonthlyRate.
func ResolveAnnualRate(pair domain.RatePair) (decimal.Decimal, error) {
	monthly, err := ResolveMonthlyRate(pair)
	if err != nil {
		return decimal.Zero, err
	}
	if pair.HasAnnual() {
		return *pair.AnnualPercent, nil
	}
	return MonthlyToAnnualRate(monthly), nil
}
