package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestApplyInflationStepsAtYearBoundaries(t *testing.T) {
	base := decimal.NewFromInt(1000)
	rate := decimal.NewFromInt(5)

	// Base at month 1: a value steps only after twelve complete months,
	// so month 12 is still year zero and month 13 opens year one.
	tests := []struct {
		name  string
		month int
		want  float64
	}{
		{"base month", 1, 1000},
		{"mid first year", 6, 1000},
		{"last month of first year", 12, 1000},
		{"first month of second year", 13, 1050},
		{"flat within second year", 24, 1050},
		{"third year", 25, 1102.50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyInflation(base, tt.month, 1, rate)
			assert.InDelta(t, tt.want, got.InexactFloat64(), 0.01)
		})
	}
}

func TestApplyInflationCompleteYearBoundary(t *testing.T) {
	base := decimal.NewFromInt(1000)
	rate := decimal.NewFromInt(5)

	// Twelve complete months since base is already one full year.
	assert.InDelta(t, 1050, ApplyInflation(base, 12, 0, rate).InexactFloat64(), 0.01)
	assert.InDelta(t, 1102.50, ApplyInflation(base, 24, 0, rate).InexactFloat64(), 0.01)
}

func TestApplyInflationZeroRate(t *testing.T) {
	base := decimal.NewFromInt(1000)
	got := ApplyInflation(base, 36, 0, decimal.Zero)
	assert.True(t, got.Equal(base))
}

func TestApplyInflationRespectsBaseMonth(t *testing.T) {
	base := decimal.NewFromInt(200)
	rate := decimal.NewFromInt(10)

	// Base at month 7: the step happens 12 full months later, not at the
	// calendar year boundary.
	assert.InDelta(t, 200, ApplyInflation(base, 18, 7, rate).InexactFloat64(), 0.001)
	assert.InDelta(t, 220, ApplyInflation(base, 19, 7, rate).InexactFloat64(), 0.001)
}

func TestApplyPropertyAppreciationCompoundsMonthly(t *testing.T) {
	base := decimal.NewFromInt(100000)
	rate := decimal.NewFromInt(6)

	prev := base
	for month := 1; month <= 14; month++ {
		got := ApplyPropertyAppreciation(base, month, 0, &rate, decimal.Zero)
		assert.True(t, got.GreaterThan(prev), "value must grow every month, not in yearly steps")
		prev = got
	}

	// After 12 months the compound monthly rate reproduces the annual rate.
	afterYear := ApplyPropertyAppreciation(base, 12, 0, &rate, decimal.Zero)
	assert.InDelta(t, 106000, afterYear.InexactFloat64(), 1.0)
}

func TestApplyPropertyAppreciationExplicitZero(t *testing.T) {
	base := decimal.NewFromInt(100000)
	zero := decimal.Zero
	inflation := decimal.NewFromInt(5)

	// An explicit zero means no growth even with nonzero inflation available.
	got := ApplyPropertyAppreciation(base, 24, 0, &zero, inflation)
	assert.True(t, got.Equal(base))
}

func TestApplyPropertyAppreciationFallsBackToInflation(t *testing.T) {
	base := decimal.NewFromInt(100000)
	inflation := decimal.NewFromInt(5)

	got := ApplyPropertyAppreciation(base, 12, 0, nil, inflation)
	assert.InDelta(t, 105000, got.InexactFloat64(), 1.0)
}
