package domain

import "github.com/shopspring/decimal"

// RatePair carries an interest or yield rate as supplied by the caller. At
// least one of the two forms must be present; when both are present they must
// agree within RateTolerancePoints (derived annual vs stated annual).
type RatePair struct {
	AnnualPercent  *decimal.Decimal `yaml:"annualPercent" json:"annualPercent,omitempty"`
	MonthlyPercent *decimal.Decimal `yaml:"monthlyPercent" json:"monthlyPercent,omitempty"`
}

// RateTolerancePoints is the maximum accepted disagreement, in percentage
// points, between a stated annual rate and the annual rate derived from a
// stated monthly rate.
var RateTolerancePoints = decimal.NewFromFloat(0.05)

// HasAnnual reports whether an annual rate was supplied.
func (rp RatePair) HasAnnual() bool { return rp.AnnualPercent != nil }

// HasMonthly reports whether a monthly rate was supplied.
func (rp RatePair) HasMonthly() bool { return rp.MonthlyPercent != nil }
