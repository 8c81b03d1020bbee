package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/moradia-app/moradia/internal/domain"
)

// MonthlyReturn is the outcome of applying one month of investment return.
type MonthlyReturn struct {
	GrossReturn decimal.Decimal
	Tax         decimal.Decimal
	NetReturn   decimal.Decimal
	NewBalance  decimal.Decimal
}

// InvestmentCalculator applies monthly returns resolved from scheduled return
// periods, with optional tax on positive gains.
type InvestmentCalculator struct {
	periods []returnPeriod
	tax     domain.InvestmentTaxPolicy
}

type returnPeriod struct {
	domain.InvestmentReturnPeriod
	monthlyRatePercent decimal.Decimal
}

// NewInvestmentCalculator validates the period set and precomputes monthly
// rates. Periods that cover a common month make the rate lookup ambiguous and
// are rejected with OverlappingReturnPeriodsError; this is a hard error, not
// a first-match-wins fallback.
func NewInvestmentCalculator(periods []domain.InvestmentReturnPeriod, tax domain.InvestmentTaxPolicy) (*InvestmentCalculator, error) {
	calc := &InvestmentCalculator{tax: tax}
	for _, p := range periods {
		calc.periods = append(calc.periods, returnPeriod{
			InvestmentReturnPeriod: p,
			monthlyRatePercent:     AnnualToMonthlyRate(p.AnnualRatePercent),
		})
	}

	for i := range periods {
		for j := i + 1; j < len(periods); j++ {
			if month, overlap := periodsOverlap(periods[i], periods[j]); overlap {
				return nil, &domain.OverlappingReturnPeriodsError{Month: month}
			}
		}
	}

	return calc, nil
}

// MonthlyRatePercent resolves the monthly rate in effect for a month. Months
// covered by no period earn nothing. More than one covering period is an
// error even if the construction-time check was bypassed.
func (c *InvestmentCalculator) MonthlyRatePercent(month int) (decimal.Decimal, error) {
	rate := decimal.Zero
	matches := 0
	for _, p := range c.periods {
		if p.Contains(month) {
			matches++
			if matches > 1 {
				return decimal.Zero, &domain.OverlappingReturnPeriodsError{Month: month}
			}
			rate = p.monthlyRatePercent
		}
	}
	return rate, nil
}

// ApplyMonth applies one month of return to a balance. Tax is charged only
// when the policy is enabled and the gross return is positive; losses are
// never offset.
func (c *InvestmentCalculator) ApplyMonth(balance decimal.Decimal, month int) (MonthlyReturn, error) {
	rate, err := c.MonthlyRatePercent(month)
	if err != nil {
		return MonthlyReturn{}, err
	}

	gross := balance.Mul(rate).Div(oneHundred)
	tax := decimal.Zero
	if c.tax.Enabled && gross.GreaterThan(decimal.Zero) {
		tax = gross.Mul(c.tax.EffectiveTaxRate).Div(oneHundred)
	}
	net := gross.Sub(tax)

	return MonthlyReturn{
		GrossReturn: gross,
		Tax:         tax,
		NetReturn:   net,
		NewBalance:  balance.Add(net),
	}, nil
}

// periodsOverlap reports whether two periods share at least one month, and
// the first shared month when they do.
func periodsOverlap(a, b domain.InvestmentReturnPeriod) (int, bool) {
	start := a.StartMonth
	if b.StartMonth > start {
		start = b.StartMonth
	}
	if a.Contains(start) && b.Contains(start) {
		return start, true
	}
	return 0, false
}
