package domain

import "github.com/shopspring/decimal"

// InvestmentReturnPeriod declares the annual return rate in effect from
// StartMonth through EndMonth (inclusive); a nil EndMonth means open-ended.
// Periods covering the same month must not overlap.
type InvestmentReturnPeriod struct {
	StartMonth        int             `yaml:"startMonth" json:"startMonth"`
	EndMonth          *int            `yaml:"endMonth" json:"endMonth,omitempty"`
	AnnualRatePercent decimal.Decimal `yaml:"annualRatePercent" json:"annualRatePercent"`
}

// Contains reports whether the period covers the given month.
func (p InvestmentReturnPeriod) Contains(month int) bool {
	if month < p.StartMonth {
		return false
	}
	return p.EndMonth == nil || month <= *p.EndMonth
}

// InvestmentTaxPolicy configures taxation of monthly investment gains. Tax is
// charged only on positive gross gains; losses are never offset.
type InvestmentTaxPolicy struct {
	Enabled          bool            `yaml:"enabled" json:"enabled"`
	Mode             string          `yaml:"mode" json:"mode,omitempty"`
	EffectiveTaxRate decimal.Decimal `yaml:"effectiveTaxRate" json:"effectiveTaxRate"`
}

// FGTSConfig configures the tax-advantaged withdrawal account: opening
// balance, payroll contribution, annual yield, and how it participates in a
// property purchase.
type FGTSConfig struct {
	InitialBalance          decimal.Decimal  `yaml:"initialBalance" json:"initialBalance"`
	MonthlyContribution     decimal.Decimal  `yaml:"monthlyContribution" json:"monthlyContribution"`
	AnnualYieldRatePercent  decimal.Decimal  `yaml:"annualYieldRatePercent" json:"annualYieldRatePercent"`
	UseAtPurchase           bool             `yaml:"useAtPurchase" json:"useAtPurchase"`
	MaxWithdrawalAtPurchase *decimal.Decimal `yaml:"maxWithdrawalAtPurchase" json:"maxWithdrawalAtPurchase,omitempty"`
}

// FGTSWithdrawalReason classifies a withdrawal attempt.
type FGTSWithdrawalReason string

const (
	// FGTSReasonAmortization is a withdrawal applied to loan principal. These
	// are subject to the cooldown between consecutive withdrawals.
	FGTSReasonAmortization FGTSWithdrawalReason = "amortization"

	// FGTSReasonPurchase is a withdrawal applied at purchase time. Purchase
	// withdrawals never check the cooldown but honor the purchase cap.
	FGTSReasonPurchase FGTSWithdrawalReason = "purchase"
)

// FGTSWithdrawal is one entry of the append-only withdrawal audit log. Every
// attempt is recorded, including rejected ones.
type FGTSWithdrawal struct {
	Month          int                  `json:"month"`
	Reason         FGTSWithdrawalReason `json:"reason"`
	Requested      decimal.Decimal      `json:"requested"`
	Allowed        decimal.Decimal      `json:"allowed"`
	BalanceAfter   decimal.Decimal      `json:"balanceAfter"`
	Success        bool                 `json:"success"`
	Err            error                `json:"-"`
	CooldownEndsAt *int                 `json:"cooldownEndsAt,omitempty"`
}
