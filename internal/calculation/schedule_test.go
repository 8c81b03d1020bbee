package calculation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moradia-app/moradia/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestBuildAmortizationScheduleSingleOccurrence(t *testing.T) {
	schedule, err := BuildAmortizationSchedule([]domain.AmortizationSpec{
		{Month: 12, Value: decimal.NewFromInt(5000), ValueType: domain.AmortizationValueFixed},
	}, 360, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, schedule.FixedAt(12).Equal(decimal.NewFromInt(5000)))
	assert.True(t, schedule.FixedAt(11).IsZero())
	assert.True(t, schedule.FixedAt(13).IsZero())
}

func TestBuildAmortizationScheduleRecurrence(t *testing.T) {
	t.Run("bounded by occurrences", func(t *testing.T) {
		schedule, err := BuildAmortizationSchedule([]domain.AmortizationSpec{
			{Month: 12, Value: decimal.NewFromInt(1000), ValueType: domain.AmortizationValueFixed,
				IntervalMonths: 12, Occurrences: intPtr(3)},
		}, 360, decimal.Zero)
		require.NoError(t, err)

		for _, month := range []int{12, 24, 36} {
			assert.True(t, schedule.FixedAt(month).Equal(decimal.NewFromInt(1000)), "month %d", month)
		}
		assert.True(t, schedule.FixedAt(48).IsZero())
	})

	t.Run("bounded by endMonth", func(t *testing.T) {
		schedule, err := BuildAmortizationSchedule([]domain.AmortizationSpec{
			{Month: 6, Value: decimal.NewFromInt(500), ValueType: domain.AmortizationValueFixed,
				IntervalMonths: 6, EndMonth: intPtr(20)},
		}, 360, decimal.Zero)
		require.NoError(t, err)

		for _, month := range []int{6, 12, 18} {
			assert.False(t, schedule.FixedAt(month).IsZero(), "month %d", month)
		}
		assert.True(t, schedule.FixedAt(24).IsZero())
	})

	t.Run("bounded by term", func(t *testing.T) {
		schedule, err := BuildAmortizationSchedule([]domain.AmortizationSpec{
			{Month: 300, Value: decimal.NewFromInt(500), ValueType: domain.AmortizationValueFixed,
				IntervalMonths: 60, EndMonth: intPtr(999)},
		}, 360, decimal.Zero)
		require.NoError(t, err)

		assert.False(t, schedule.FixedAt(300).IsZero())
		assert.False(t, schedule.FixedAt(360).IsZero())
		assert.True(t, schedule.FixedAt(420).IsZero())
	})
}

func TestBuildAmortizationScheduleValidation(t *testing.T) {
	tests := []struct {
		name string
		spec domain.AmortizationSpec
	}{
		{
			"occurrences and endMonth together",
			domain.AmortizationSpec{Month: 1, Value: decimal.NewFromInt(100), IntervalMonths: 12,
				Occurrences: intPtr(2), EndMonth: intPtr(36)},
		},
		{
			"recurrence without interval",
			domain.AmortizationSpec{Month: 1, Value: decimal.NewFromInt(100), Occurrences: intPtr(2)},
		},
		{
			"non-positive occurrences",
			domain.AmortizationSpec{Month: 1, Value: decimal.NewFromInt(100), IntervalMonths: 12,
				Occurrences: intPtr(0)},
		},
		{
			"unknown value type",
			domain.AmortizationSpec{Month: 1, Value: decimal.NewFromInt(100), ValueType: "bogus"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildAmortizationSchedule([]domain.AmortizationSpec{tt.spec}, 360, decimal.Zero)
			var specErr *domain.InvalidAmortizationSpecError
			assert.True(t, errors.As(err, &specErr))
		})
	}
}

func TestBuildAmortizationScheduleDropsOutOfRange(t *testing.T) {
	schedule, err := BuildAmortizationSchedule([]domain.AmortizationSpec{
		{Month: 500, Value: decimal.NewFromInt(100), ValueType: domain.AmortizationValueFixed},
	}, 360, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, schedule.Empty())
}

func TestBuildAmortizationScheduleInflationAdjust(t *testing.T) {
	schedule, err := BuildAmortizationSchedule([]domain.AmortizationSpec{
		{Month: 12, Value: decimal.NewFromInt(1000), ValueType: domain.AmortizationValueFixed,
			IntervalMonths: 12, Occurrences: intPtr(3), InflationAdjust: true},
	}, 360, decimal.NewFromInt(10))
	require.NoError(t, err)

	// The first occurrence is the spec's own base month, so it is unadjusted;
	// later ones grow by the stepped inflation factor.
	assert.InDelta(t, 1000, schedule.FixedAt(12).InexactFloat64(), 0.01)
	assert.InDelta(t, 1100, schedule.FixedAt(24).InexactFloat64(), 0.01)
	assert.InDelta(t, 1210, schedule.FixedAt(36).InexactFloat64(), 0.01)
}

func TestAmortizationSchedulePercentages(t *testing.T) {
	schedule, err := BuildAmortizationSchedule([]domain.AmortizationSpec{
		{Month: 24, Value: decimal.NewFromInt(10), ValueType: domain.AmortizationValuePercentage},
	}, 360, decimal.Zero)
	require.NoError(t, err)

	balance := decimal.NewFromInt(200000)
	assert.InDelta(t, 20000, schedule.PercentageTotalAt(24, balance).InexactFloat64(), 0.001)
	assert.True(t, schedule.PercentageTotalAt(25, balance).IsZero())
	assert.InDelta(t, 20000, schedule.TotalAt(24, balance).InexactFloat64(), 0.001)
}

func TestAmortizationScheduleNilSafe(t *testing.T) {
	var schedule *AmortizationSchedule
	assert.True(t, schedule.FixedAt(1).IsZero())
	assert.True(t, schedule.PercentageTotalAt(1, decimal.NewFromInt(1000)).IsZero())
	assert.True(t, schedule.Empty())
}
