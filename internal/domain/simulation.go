package domain

import "github.com/shopspring/decimal"

// CostConfig holds transaction and ownership costs. Upfront costs are
// percentages of the property price; monthly costs are absolute values
// indexed by inflation over the simulation.
type CostConfig struct {
	ITBIPercent        decimal.Decimal `yaml:"itbiPercent" json:"itbiPercent"`
	DeedCostPercent    decimal.Decimal `yaml:"deedCostPercent" json:"deedCostPercent"`
	MonthlyHOA         decimal.Decimal `yaml:"monthlyHoa" json:"monthlyHoa"`
	MonthlyPropertyTax decimal.Decimal `yaml:"monthlyPropertyTax" json:"monthlyPropertyTax"`
}

// RentConfig drives the rent-and-invest and invest-then-buy scenarios. Rent
// may be given as a fixed monthly value or derived from a percentage of the
// property price by the input-resolution layer.
type RentConfig struct {
	MonthlyRent        *decimal.Decimal `yaml:"monthlyRent" json:"monthlyRent,omitempty"`
	RentPercentOfPrice *decimal.Decimal `yaml:"rentPercentOfPrice" json:"rentPercentOfPrice,omitempty"`

	// When true, rent and costs are paid from external savings first and the
	// remainder is withdrawn from the investment balance. When false, rent is
	// a pure external expense and the balance only grows.
	RentReducesInvestment  bool            `yaml:"rentReducesInvestment" json:"rentReducesInvestment"`
	MonthlyExternalSavings decimal.Decimal `yaml:"monthlyExternalSavings" json:"monthlyExternalSavings"`
	InvestExternalSurplus  bool            `yaml:"investExternalSurplus" json:"investExternalSurplus"`

	// Invest-then-buy extras: invest the positive spread between a parallel
	// baseline loan payment and the current rent, and a fixed recurring
	// investment from a configurable start month.
	InvestLoanDifference      bool            `yaml:"investLoanDifference" json:"investLoanDifference"`
	FixedMonthlyInvestment    decimal.Decimal `yaml:"fixedMonthlyInvestment" json:"fixedMonthlyInvestment"`
	FixedInvestmentStartMonth int             `yaml:"fixedInvestmentStartMonth" json:"fixedInvestmentStartMonth"`
}

// SimulationInput is the full parameter set shared by the three scenario
// simulators and the comparison engine. Inputs are resolved and validated
// before any month loop runs.
type SimulationInput struct {
	PropertyPrice decimal.Decimal `yaml:"propertyPrice" json:"propertyPrice"`
	DownPayment   decimal.Decimal `yaml:"downPayment" json:"downPayment"`
	TermMonths    int             `yaml:"termMonths" json:"termMonths"`
	LoanSystem    LoanSystem      `yaml:"loanSystem" json:"loanSystem"`
	InterestRates RatePair        `yaml:"interestRates" json:"interestRates"`

	AnnualInflationRatePercent decimal.Decimal  `yaml:"annualInflationRatePercent" json:"annualInflationRatePercent"`
	AppreciationRatePercent    *decimal.Decimal `yaml:"appreciationRatePercent" json:"appreciationRatePercent,omitempty"`

	// Extra loan amortizations (buy scenario) and investment contributions
	// (invest-then-buy scenario).
	Amortizations []AmortizationSpec `yaml:"amortizations" json:"amortizations,omitempty"`
	Contributions []AmortizationSpec `yaml:"contributions" json:"contributions,omitempty"`

	Costs             CostConfig               `yaml:"costs" json:"costs"`
	InvestmentReturns []InvestmentReturnPeriod `yaml:"investmentReturns" json:"investmentReturns,omitempty"`
	InvestmentTax     InvestmentTaxPolicy      `yaml:"investmentTax" json:"investmentTax"`
	FGTS              *FGTSConfig              `yaml:"fgts" json:"fgts,omitempty"`
	Rent              RentConfig               `yaml:"rent" json:"rent"`
}
