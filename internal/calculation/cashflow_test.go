package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/moradia-app/moradia/internal/domain"
)

func TestApplyRentCashflowExternalOnly(t *testing.T) {
	cfg := domain.RentConfig{RentReducesInvestment: false}
	balance := decimal.NewFromInt(10000)
	cost := decimal.NewFromInt(2000)

	cf := applyRentCashflow(balance, cost, cfg)
	assert.True(t, cf.NewBalance.Equal(balance), "balance untouched when rent is external")
	assert.True(t, cf.Withdrawal.IsZero())
	assert.True(t, cf.OutOfPocket.Equal(cost))
}

func TestApplyRentCashflowExternalWithSurplusInvesting(t *testing.T) {
	cfg := domain.RentConfig{
		RentReducesInvestment:  false,
		MonthlyExternalSavings: decimal.NewFromInt(3000),
		InvestExternalSurplus:  true,
	}

	cf := applyRentCashflow(decimal.NewFromInt(10000), decimal.NewFromInt(2000), cfg)
	assert.True(t, cf.SurplusInvested.Equal(decimal.NewFromInt(3000)))
	assert.True(t, cf.NewBalance.Equal(decimal.NewFromInt(13000)))
	assert.True(t, cf.OutOfPocket.Equal(decimal.NewFromInt(5000)))
}

func TestApplyRentCashflowWithdrawal(t *testing.T) {
	cfg := domain.RentConfig{
		RentReducesInvestment:  true,
		MonthlyExternalSavings: decimal.NewFromInt(800),
	}

	cf := applyRentCashflow(decimal.NewFromInt(10000), decimal.NewFromInt(2000), cfg)
	assert.True(t, cf.ExternalUsed.Equal(decimal.NewFromInt(800)))
	assert.True(t, cf.Withdrawal.Equal(decimal.NewFromInt(1200)))
	assert.True(t, cf.Unmet.IsZero())
	assert.True(t, cf.NewBalance.Equal(decimal.NewFromInt(8800)))
	// Withdrawals are internal transfers, not new money.
	assert.True(t, cf.OutOfPocket.Equal(decimal.NewFromInt(800)))
}

func TestApplyRentCashflowUnmetCost(t *testing.T) {
	cfg := domain.RentConfig{RentReducesInvestment: true}

	cf := applyRentCashflow(decimal.NewFromInt(500), decimal.NewFromInt(2000), cfg)
	assert.True(t, cf.Withdrawal.Equal(decimal.NewFromInt(500)))
	assert.True(t, cf.Unmet.Equal(decimal.NewFromInt(1500)))
	assert.True(t, cf.NewBalance.IsZero())
}

func TestApplyRentCashflowSurplusAfterCost(t *testing.T) {
	cfg := domain.RentConfig{
		RentReducesInvestment:  true,
		MonthlyExternalSavings: decimal.NewFromInt(3000),
		InvestExternalSurplus:  true,
	}

	cf := applyRentCashflow(decimal.NewFromInt(10000), decimal.NewFromInt(2000), cfg)
	assert.True(t, cf.ExternalUsed.Equal(decimal.NewFromInt(2000)))
	assert.True(t, cf.Withdrawal.IsZero())
	assert.True(t, cf.SurplusInvested.Equal(decimal.NewFromInt(1000)))
	assert.True(t, cf.NewBalance.Equal(decimal.NewFromInt(11000)))
	assert.True(t, cf.OutOfPocket.Equal(decimal.NewFromInt(3000)))
}
