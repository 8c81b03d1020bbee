package domain

import "github.com/shopspring/decimal"

// LoanSystem identifies the amortization convention used by a loan.
type LoanSystem string

const (
	// LoanSystemSAC is the constant-amortization system: the principal portion
	// is fixed and installments decrease as interest shrinks.
	LoanSystemSAC LoanSystem = "sac"

	// LoanSystemPrice is the constant-installment (French) system: every
	// installment is the same annuity payment.
	LoanSystemPrice LoanSystem = "price"
)

// Valid reports whether the loan system is one of the supported conventions.
func (ls LoanSystem) Valid() bool {
	return ls == LoanSystemSAC || ls == LoanSystemPrice
}

// AmortizationValueType distinguishes fixed-amount entries from
// percentage-of-balance entries.
type AmortizationValueType string

const (
	AmortizationValueFixed      AmortizationValueType = "fixed"
	AmortizationValuePercentage AmortizationValueType = "percentage"
)

// AmortizationSpec describes one extra payment or contribution: a single
// occurrence at Month, or a recurrence stepping by IntervalMonths bounded by
// Occurrences or EndMonth (mutually exclusive) or the loan term.
type AmortizationSpec struct {
	Month           int                   `yaml:"month" json:"month"`
	Value           decimal.Decimal       `yaml:"value" json:"value"`
	ValueType       AmortizationValueType `yaml:"valueType" json:"valueType"`
	IntervalMonths  int                   `yaml:"intervalMonths" json:"intervalMonths,omitempty"`
	Occurrences     *int                  `yaml:"occurrences" json:"occurrences,omitempty"`
	EndMonth        *int                  `yaml:"endMonth" json:"endMonth,omitempty"`
	InflationAdjust bool                  `yaml:"inflationAdjust" json:"inflationAdjust,omitempty"`
}

// LoanParameters are the resolved inputs of one loan simulation.
type LoanParameters struct {
	LoanValue          decimal.Decimal `json:"loanValue"`
	TermMonths         int             `json:"termMonths"`
	MonthlyRatePercent decimal.Decimal `json:"monthlyRatePercent"`
	System             LoanSystem      `json:"system"`
}

// LoanInstallment is one month of an amortization schedule.
type LoanInstallment struct {
	Month              int             `json:"month"`
	Installment        decimal.Decimal `json:"installment"`
	Amortization       decimal.Decimal `json:"amortization"`
	Interest           decimal.Decimal `json:"interest"`
	ExtraAmortization  decimal.Decimal `json:"extraAmortization"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
}

// LoanSimulationResult aggregates a full amortization schedule. The
// outstanding balance is monotonically non-increasing and reaches zero at or
// before the nominal term; extra amortizations may shorten the term.
type LoanSimulationResult struct {
	System                 LoanSystem        `json:"system"`
	LoanValue              decimal.Decimal   `json:"loanValue"`
	MonthlyRatePercent     decimal.Decimal   `json:"monthlyRatePercent"`
	OriginalTermMonths     int               `json:"originalTermMonths"`
	ActualTermMonths       int               `json:"actualTermMonths"`
	MonthsSaved            int               `json:"monthsSaved"`
	TotalPaid              decimal.Decimal   `json:"totalPaid"`
	TotalInterest          decimal.Decimal   `json:"totalInterest"`
	TotalAmortization      decimal.Decimal   `json:"totalAmortization"`
	TotalExtraAmortization decimal.Decimal   `json:"totalExtraAmortization"`
	FirstInstallment       decimal.Decimal   `json:"firstInstallment"`
	LastInstallment        decimal.Decimal   `json:"lastInstallment"`
	Installments           []LoanInstallment `json:"installments"`
}
