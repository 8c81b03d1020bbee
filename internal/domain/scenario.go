package domain

import "github.com/shopspring/decimal"

// Scenario names as reported by the comparison engine.
const (
	ScenarioBuy           = "buy"
	ScenarioRentAndInvest = "rent_and_invest"
	ScenarioInvestThenBuy = "invest_then_buy"
)

// MonthlyRecord is one month of a scenario trajectory. It is a wide record:
// fields populate only when semantically meaningful to the scenario that
// produced it and stay zero-valued otherwise.
type MonthlyRecord struct {
	Month int `json:"month"`

	// Out-of-pocket cash flow for the month (negative = money spent).
	CashFlow decimal.Decimal `json:"cashFlow"`

	// Loan fields (buy scenario).
	Installment        decimal.Decimal `json:"installment,omitempty"`
	Interest           decimal.Decimal `json:"interest,omitempty"`
	Amortization       decimal.Decimal `json:"amortization,omitempty"`
	ExtraAmortization  decimal.Decimal `json:"extraAmortization,omitempty"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance,omitempty"`

	// Property fields.
	PropertyValue decimal.Decimal `json:"propertyValue,omitempty"`
	Equity        decimal.Decimal `json:"equity,omitempty"`
	MonthlyCosts  decimal.Decimal `json:"monthlyCosts,omitempty"`

	// Rent / investment fields.
	Rent                decimal.Decimal  `json:"rent,omitempty"`
	InvestmentBalance   decimal.Decimal  `json:"investmentBalance,omitempty"`
	InvestmentReturn    decimal.Decimal  `json:"investmentReturn,omitempty"`
	InvestmentTax       decimal.Decimal  `json:"investmentTax,omitempty"`
	Contribution        decimal.Decimal  `json:"contribution,omitempty"`
	Withdrawal          decimal.Decimal  `json:"withdrawal,omitempty"`
	UnmetCost           decimal.Decimal  `json:"unmetCost,omitempty"`
	ExternalSavingsUsed decimal.Decimal  `json:"externalSavingsUsed,omitempty"`
	SurplusInvested     decimal.Decimal  `json:"surplusInvested,omitempty"`
	WithdrawalRatio     *decimal.Decimal `json:"withdrawalRatio,omitempty"`
	BurnMonth           bool             `json:"burnMonth,omitempty"`

	// FGTS fields.
	FGTSBalance    decimal.Decimal `json:"fgtsBalance,omitempty"`
	FGTSWithdrawal decimal.Decimal `json:"fgtsWithdrawal,omitempty"`

	// Purchase / milestone fields (invest-then-buy scenario).
	PurchaseExecuted bool            `json:"purchaseExecuted,omitempty"`
	IsMilestone      bool            `json:"isMilestone,omitempty"`
	ProgressPercent  decimal.Decimal `json:"progressPercent,omitempty"`
	Shortfall        decimal.Decimal `json:"shortfall,omitempty"`
}

// ScenarioResult summarizes one scenario trajectory. The identity
// NetCost = TotalOutflows - FinalEquity holds exactly: TotalOutflows counts
// out-of-pocket cash only, so money moved between the investment balance and
// monthly costs is never double counted.
type ScenarioResult struct {
	Name           string          `json:"name"`
	TotalCost      decimal.Decimal `json:"totalCost"`
	NetCost        decimal.Decimal `json:"netCost"`
	TotalOutflows  decimal.Decimal `json:"totalOutflows"`
	FinalEquity    decimal.Decimal `json:"finalEquity"`
	InitialCapital decimal.Decimal `json:"initialCapital"`

	// Scenario-specific annotations.
	PurchaseMonth          *int                  `json:"purchaseMonth,omitempty"`
	ProjectedPurchaseMonth *int                  `json:"projectedPurchaseMonth,omitempty"`
	Loan                   *LoanSimulationResult `json:"loan,omitempty"`
	FGTSHistory            []FGTSWithdrawal      `json:"fgtsHistory,omitempty"`

	MonthlyData []MonthlyRecord `json:"monthlyData"`
}

// FinalRecord returns the last monthly record, or nil for an empty trajectory.
func (sr *ScenarioResult) FinalRecord() *MonthlyRecord {
	if len(sr.MonthlyData) == 0 {
		return nil
	}
	return &sr.MonthlyData[len(sr.MonthlyData)-1]
}
