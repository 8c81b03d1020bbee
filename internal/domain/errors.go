package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for input resolution and validation failures. These are
// raised before any month loop runs so partial simulations are never returned.
var (
	// ErrMissingRate indicates neither an annual nor a monthly rate was supplied.
	ErrMissingRate = errors.New("missing rate: supply an annual rate, a monthly rate, or both")

	// ErrMissingRentValue indicates a rent-based scenario was requested but no
	// rent figure (fixed or percentage-of-price) could be resolved.
	ErrMissingRentValue = errors.New("missing rent value: supply monthlyRent or rentPercentOfPrice")

	// ErrInsufficientBalance indicates a withdrawal was requested against an
	// empty account. Withdrawal rejections are recoverable: they are recorded
	// in the withdrawal log and the simulation continues.
	ErrInsufficientBalance = errors.New("insufficient balance for withdrawal")
)

// RateInconsistencyError is returned when both an annual and a monthly rate
// are supplied but disagree beyond the accepted tolerance.
type RateInconsistencyError struct {
	StatedAnnual  string
	DerivedAnnual string
	Tolerance     string
}

func (e *RateInconsistencyError) Error() string {
	return fmt.Sprintf("inconsistent rates: stated annual %s%% vs %s%% derived from monthly (tolerance %s points)",
		e.StatedAnnual, e.DerivedAnnual, e.Tolerance)
}

// InvalidAmortizationSpecError reports a malformed extra-amortization or
// contribution specification.
type InvalidAmortizationSpecError struct {
	Index  int
	Reason string
}

func (e *InvalidAmortizationSpecError) Error() string {
	return fmt.Sprintf("invalid amortization spec %d: %s", e.Index, e.Reason)
}

// InvalidLoanParametersError reports loan inputs that cannot produce a schedule.
type InvalidLoanParametersError struct {
	Reason string
}

func (e *InvalidLoanParametersError) Error() string {
	return fmt.Sprintf("invalid loan parameters: %s", e.Reason)
}

// OverlappingReturnPeriodsError reports an ambiguous investment-rate lookup:
// more than one return period covers the same month.
type OverlappingReturnPeriodsError struct {
	Month int
}

func (e *OverlappingReturnPeriodsError) Error() string {
	return fmt.Sprintf("overlapping investment return periods cover month %d", e.Month)
}

// CooldownActiveError reports a rejected amortization-purpose FGTS withdrawal
// attempted before the mandatory interval since the previous one elapsed.
type CooldownActiveError struct {
	Month          int
	CooldownEndsAt int
}

func (e *CooldownActiveError) Error() string {
	return fmt.Sprintf("FGTS withdrawal cooldown active at month %d: next withdrawal allowed at month %d",
		e.Month, e.CooldownEndsAt)
}
