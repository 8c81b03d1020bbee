// Package compare runs the three housing scenarios against shared inputs,
// ranks them by net cost, and derives the enhanced cross-scenario metrics.
package compare

import (
	"github.com/shopspring/decimal"

	"github.com/moradia-app/moradia/internal/domain"
)

// ComparisonResult ranks the three scenarios. BestScenario is the name of the
// scenario with the numerically smallest net cost.
type ComparisonResult struct {
	BestScenario string                  `json:"bestScenario"`
	Scenarios    []domain.ScenarioResult `json:"scenarios"`
}

// Best returns the winning scenario's result.
func (cr *ComparisonResult) Best() *domain.ScenarioResult {
	for i := range cr.Scenarios {
		if cr.Scenarios[i].Name == cr.BestScenario {
			return &cr.Scenarios[i]
		}
	}
	return nil
}

// ScenarioMetrics are the enhanced per-scenario metrics, computed relative to
// the cheapest scenario.
type ScenarioMetrics struct {
	ScenarioName string `json:"scenarioName"`

	NetCost                decimal.Decimal  `json:"netCost"`
	CostDelta              decimal.Decimal  `json:"costDelta"`
	CostDeltaPct           decimal.Decimal  `json:"costDeltaPct"`
	ROI                    decimal.Decimal  `json:"roi"`
	AdjustedROI            decimal.Decimal  `json:"adjustedRoi"`
	BreakEvenMonth         *int             `json:"breakEvenMonth,omitempty"`
	CumulativeWithdrawals  decimal.Decimal  `json:"cumulativeWithdrawals"`
	AverageWithdrawalRatio *decimal.Decimal `json:"averageWithdrawalRatio,omitempty"`
	BurnMonthCount         int              `json:"burnMonthCount"`
}

// MonthlyComparisonRow is one row of the month-indexed cross-scenario table,
// keyed by scenario name. Consumed by the formatters and the HTTP boundary;
// the core has no awareness of the output format.
type MonthlyComparisonRow struct {
	Month    int                        `json:"month"`
	NetWorth map[string]decimal.Decimal `json:"netWorth"`
	CashFlow map[string]decimal.Decimal `json:"cashFlow"`
}

// EnhancedComparisonResult extends the ranking with derived metrics and the
// monthly cross-scenario table.
type EnhancedComparisonResult struct {
	ComparisonResult
	Metrics      []ScenarioMetrics      `json:"metrics"`
	MonthlyTable []MonthlyComparisonRow `json:"monthlyTable"`
}
