package calculation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moradia-app/moradia/internal/domain"
)

func decPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func TestAnnualToMonthlyRate(t *testing.T) {
	tests := []struct {
		name          string
		annualPercent float64
		wantMonthly   float64
	}{
		{"twelve percent annual", 12.0, 0.9489},
		{"ten percent annual", 10.0, 0.7974},
		{"zero", 0.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnnualToMonthlyRate(decimal.NewFromFloat(tt.annualPercent))
			assert.InDelta(t, tt.wantMonthly, got.InexactFloat64(), 0.0001)
		})
	}
}

func TestRateConversionRoundTrip(t *testing.T) {
	annual := decimal.NewFromFloat(11.5)
	monthly := AnnualToMonthlyRate(annual)
	back := MonthlyToAnnualRate(monthly)
	assert.InDelta(t, 11.5, back.InexactFloat64(), 0.0001)
}

func TestMonthlyToAnnualRate(t *testing.T) {
	// 1% per month compounds to about 12.6825% per year.
	got := MonthlyToAnnualRate(decimal.NewFromInt(1))
	assert.InDelta(t, 12.6825, got.InexactFloat64(), 0.0001)
}

func TestResolveMonthlyRate(t *testing.T) {
	t.Run("missing both", func(t *testing.T) {
		_, err := ResolveMonthlyRate(domain.RatePair{})
		assert.ErrorIs(t, err, domain.ErrMissingRate)
	})

	t.Run("annual only derives monthly", func(t *testing.T) {
		got, err := ResolveMonthlyRate(domain.RatePair{AnnualPercent: decPtr(12.6825)})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, got.InexactFloat64(), 0.0001)
	})

	t.Run("monthly only passes through", func(t *testing.T) {
		got, err := ResolveMonthlyRate(domain.RatePair{MonthlyPercent: decPtr(0.85)})
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.NewFromFloat(0.85)))
	})

	t.Run("consistent pair keeps stated monthly", func(t *testing.T) {
		got, err := ResolveMonthlyRate(domain.RatePair{
			AnnualPercent:  decPtr(12.6825),
			MonthlyPercent: decPtr(1.0),
		})
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.NewFromFloat(1.0)))
	})

	t.Run("inconsistent pair rejected", func(t *testing.T) {
		_, err := ResolveMonthlyRate(domain.RatePair{
			AnnualPercent:  decPtr(14.0),
			MonthlyPercent: decPtr(1.0), // derives about 12.68% annual
		})
		var inconsistent *domain.RateInconsistencyError
		require.True(t, errors.As(err, &inconsistent))
		assert.Equal(t, "14.0000", inconsistent.StatedAnnual)
	})

	t.Run("disagreement within tolerance accepted", func(t *testing.T) {
		got, err := ResolveMonthlyRate(domain.RatePair{
			AnnualPercent:  decPtr(12.70), // derived is about 12.6825, gap under 0.05 points
			MonthlyPercent: decPtr(1.0),
		})
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.NewFromFloat(1.0)))
	})
}

func TestResolveAnnualRate(t *testing.T) {
	t.Run("annual passes through", func(t *testing.T) {
		got, err := ResolveAnnualRate(domain.RatePair{AnnualPercent: decPtr(8.0)})
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.NewFromFloat(8.0)))
	})

	t.Run("monthly derives annual", func(t *testing.T) {
		got, err := ResolveAnnualRate(domain.RatePair{MonthlyPercent: decPtr(1.0)})
		require.NoError(t, err)
		assert.InDelta(t, 12.6825, got.InexactFloat64(), 0.0001)
	})

	t.Run("missing both", func(t *testing.T) {
		_, err := ResolveAnnualRate(domain.RatePair{})
		assert.ErrorIs(t, err, domain.ErrMissingRate)
	})
}
