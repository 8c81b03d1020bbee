// Package config parses and validates simulation input files.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/moradia-app/moradia/internal/calculation"
	"github.com/moradia-app/moradia/internal/domain"
)

// InputParser handles parsing of simulation input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a simulation input from a YAML file and validates it.
func (ip *InputParser) LoadFromFile(filename string) (*domain.SimulationInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Load(data)
}

// Load parses YAML bytes into a simulation input and validates it.
func (ip *InputParser) Load(data []byte) (*domain.SimulationInput, error) {
	var input domain.SimulationInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.Validate(&input); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}
	return &input, nil
}

// Validate checks structural constraints and then runs the full input
// resolution path, so every rate, spec, and period problem surfaces before a
// simulation is attempted.
func (ip *InputParser) Validate(input *domain.SimulationInput) error {
	if input.PropertyPrice.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("propertyPrice must be positive")
	}
	if input.DownPayment.LessThan(decimal.Zero) {
		return fmt.Errorf("downPayment cannot be negative")
	}
	if input.DownPayment.GreaterThan(input.PropertyPrice) {
		return fmt.Errorf("downPayment cannot exceed propertyPrice")
	}
	if input.TermMonths <= 0 {
		return fmt.Errorf("termMonths must be positive")
	}
	if input.LoanSystem != "" && !input.LoanSystem.Valid() {
		return fmt.Errorf("loanSystem must be %q or %q", domain.LoanSystemSAC, domain.LoanSystemPrice)
	}
	if input.AnnualInflationRatePercent.LessThan(decimal.NewFromInt(-10)) {
		return fmt.Errorf("annualInflationRatePercent cannot be less than -10%% (extreme deflation)")
	}
	if err := ip.validateCosts(&input.Costs); err != nil {
		return err
	}
	if err := ip.validateFGTS(input.FGTS); err != nil {
		return err
	}
	if err := ip.validateReturnPeriods(input.InvestmentReturns); err != nil {
		return err
	}
	if input.InvestmentTax.Enabled {
		rate := input.InvestmentTax.EffectiveTaxRate
		if rate.LessThan(decimal.Zero) || rate.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("effectiveTaxRate must be between 0 and 100")
		}
	}

	// The resolution path performs the domain-level checks: rate pair
	// consistency, amortization spec recurrence rules, loan parameters,
	// return period overlap, rent resolution.
	if _, err := calculation.ResolveInput(input); err != nil {
		return err
	}
	return nil
}

func (ip *InputParser) validateCosts(costs *domain.CostConfig) error {
	if costs.ITBIPercent.LessThan(decimal.Zero) {
		return fmt.Errorf("itbiPercent cannot be negative")
	}
	if costs.DeedCostPercent.LessThan(decimal.Zero) {
		return fmt.Errorf("deedCostPercent cannot be negative")
	}
	if costs.MonthlyHOA.LessThan(decimal.Zero) {
		return fmt.Errorf("monthlyHoa cannot be negative")
	}
	if costs.MonthlyPropertyTax.LessThan(decimal.Zero) {
		return fmt.Errorf("monthlyPropertyTax cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateFGTS(fgts *domain.FGTSConfig) error {
	if fgts == nil {
		return nil
	}
	if fgts.InitialBalance.LessThan(decimal.Zero) {
		return fmt.Errorf("fgts initialBalance cannot be negative")
	}
	if fgts.MonthlyContribution.LessThan(decimal.Zero) {
		return fmt.Errorf("fgts monthlyContribution cannot be negative")
	}
	if fgts.MaxWithdrawalAtPurchase != nil && fgts.MaxWithdrawalAtPurchase.LessThan(decimal.Zero) {
		return fmt.Errorf("fgts maxWithdrawalAtPurchase cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateReturnPeriods(periods []domain.InvestmentReturnPeriod) error {
	for i, p := range periods {
		if p.StartMonth < 1 {
			return fmt.Errorf("investment return period %d: startMonth must be at least 1", i)
		}
		if p.EndMonth != nil && *p.EndMonth < p.StartMonth {
			return fmt.Errorf("investment return period %d: endMonth cannot precede startMonth", i)
		}
	}
	return nil
}
