package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/moradia-app/moradia/internal/domain"
)

// AmortizationCooldownMonths is the mandatory interval between consecutive
// amortization-purpose FGTS withdrawals.
const AmortizationCooldownMonths = 24

// FGTSManager tracks the balance of an FGTS account across one simulation
// run: monthly contribution plus yield accrual, and withdrawals restricted by
// the amortization cooldown and the purchase cap. Every withdrawal attempt,
// including rejected ones, is appended to the audit log.
type FGTSManager struct {
	cfg                 domain.FGTSConfig
	balance             decimal.Decimal
	monthlyYieldPercent decimal.Decimal
	lastWithdrawalMonth *int
	history             []domain.FGTSWithdrawal
}

// NewFGTSManager initializes an account from its configuration.
func NewFGTSManager(cfg domain.FGTSConfig) *FGTSManager {
	return &FGTSManager{
		cfg:                 cfg,
		balance:             cfg.InitialBalance,
		monthlyYieldPercent: AnnualToMonthlyRate(cfg.AnnualYieldRatePercent),
	}
}

// Balance returns the current account balance.
func (m *FGTSManager) Balance() decimal.Decimal { return m.balance }

// History returns the append-only withdrawal audit log.
func (m *FGTSManager) History() []domain.FGTSWithdrawal { return m.history }

// AccumulateMonthly applies one month of contribution and yield. Called once
// per simulated month regardless of withdrawals.
func (m *FGTSManager) AccumulateMonthly() {
	growth := decimal.NewFromInt(1).Add(m.monthlyYieldPercent.Div(oneHundred))
	m.balance = m.balance.Add(m.cfg.MonthlyContribution).Mul(growth)
}

// Withdraw attempts a withdrawal at the given month. Rejections are not
// fatal: the attempt is logged with its reason and the zero amount, and the
// caller decides how to proceed.
//
// Amortization withdrawals check the cooldown first. A non-positive request
// is rejected silently (no error). An empty account rejects with
// ErrInsufficientBalance. Otherwise the allowed amount is the request capped
// by the balance and, for purchase withdrawals, by the configured purchase
// cap. The cooldown clock restarts only on success.
func (m *FGTSManager) Withdraw(month int, amount decimal.Decimal, reason domain.FGTSWithdrawalReason) domain.FGTSWithdrawal {
	w := domain.FGTSWithdrawal{
		Month:     month,
		Reason:    reason,
		Requested: amount,
	}

	if reason == domain.FGTSReasonAmortization && m.lastWithdrawalMonth != nil {
		if month-*m.lastWithdrawalMonth < AmortizationCooldownMonths {
			endsAt := *m.lastWithdrawalMonth + AmortizationCooldownMonths
			w.Err = &domain.CooldownActiveError{Month: month, CooldownEndsAt: endsAt}
			w.CooldownEndsAt = &endsAt
			w.BalanceAfter = m.balance
			m.history = append(m.history, w)
			return w
		}
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		w.BalanceAfter = m.balance
		m.history = append(m.history, w)
		return w
	}

	if m.balance.LessThanOrEqual(decimal.Zero) {
		w.Err = domain.ErrInsufficientBalance
		w.BalanceAfter = m.balance
		m.history = append(m.history, w)
		return w
	}

	allowed := decimal.Min(amount, m.balance)
	if reason == domain.FGTSReasonPurchase && m.cfg.MaxWithdrawalAtPurchase != nil {
		allowed = decimal.Min(allowed, *m.cfg.MaxWithdrawalAtPurchase)
	}
	if allowed.LessThanOrEqual(decimal.Zero) {
		w.BalanceAfter = m.balance
		m.history = append(m.history, w)
		return w
	}

	m.balance = m.balance.Sub(allowed)
	m.lastWithdrawalMonth = &month
	w.Allowed = allowed
	w.Success = true
	w.BalanceAfter = m.balance
	m.history = append(m.history, w)
	return w
}

// UsableAtPurchase returns how much of the balance a purchase withdrawal at
// this moment could release, without mutating state.
func (m *FGTSManager) UsableAtPurchase() decimal.Decimal {
	if !m.cfg.UseAtPurchase || m.balance.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	usable := m.balance
	if m.cfg.MaxWithdrawalAtPurchase != nil {
		usable = decimal.Min(usable, *m.cfg.MaxWithdrawalAtPurchase)
	}
	return usable
}
