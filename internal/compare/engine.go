package compare

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/moradia-app/moradia/internal/calculation"
	"github.com/moradia-app/moradia/internal/domain"
)

// Engine orchestrates scenario comparison.
type Engine struct {
	calc   *calculation.SimulationEngine
	logger *zap.Logger
}

// NewEngine creates a comparison engine. A nil logger is replaced by a no-op.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		calc:   calculation.NewSimulationEngine(logger),
		logger: logger,
	}
}

// Compare resolves the input once, runs the three scenario simulators against
// it sequentially, and selects the lowest-net-cost scenario.
func (e *Engine) Compare(input *domain.SimulationInput) (*ComparisonResult, error) {
	resolved, err := calculation.ResolveInput(input)
	if err != nil {
		return nil, fmt.Errorf("input resolution failed: %w", err)
	}

	buy, err := e.calc.SimulateBuy(resolved)
	if err != nil {
		return nil, fmt.Errorf("buy scenario failed: %w", err)
	}
	rent, err := e.calc.SimulateRentAndInvest(resolved)
	if err != nil {
		return nil, fmt.Errorf("rent-and-invest scenario failed: %w", err)
	}
	investThenBuy, err := e.calc.SimulateInvestThenBuy(resolved)
	if err != nil {
		return nil, fmt.Errorf("invest-then-buy scenario failed: %w", err)
	}

	result := &ComparisonResult{
		Scenarios: []domain.ScenarioResult{*buy, *rent, *investThenBuy},
	}

	best := &result.Scenarios[0]
	for i := range result.Scenarios {
		if result.Scenarios[i].NetCost.LessThan(best.NetCost) {
			best = &result.Scenarios[i]
		}
	}
	result.BestScenario = best.Name

	e.logger.Info("scenario comparison finished",
		zap.String("best", result.BestScenario),
		zap.String("netCost", best.NetCost.StringFixed(2)))

	return result, nil
}

// EnhancedCompare runs Compare and derives the comparative metrics and the
// month-indexed cross-scenario table.
func (e *Engine) EnhancedCompare(input *domain.SimulationInput) (*EnhancedComparisonResult, error) {
	base, err := e.Compare(input)
	if err != nil {
		return nil, err
	}

	enhanced := &EnhancedComparisonResult{ComparisonResult: *base}
	cheapest := base.Best()

	for i := range base.Scenarios {
		enhanced.Metrics = append(enhanced.Metrics, scenarioMetrics(&base.Scenarios[i], cheapest))
	}
	enhanced.MonthlyTable = buildMonthlyTable(base.Scenarios)

	return enhanced, nil
}

// scenarioMetrics derives the enhanced metrics for one scenario relative to
// the cheapest one.
func scenarioMetrics(s, cheapest *domain.ScenarioResult) ScenarioMetrics {
	m := ScenarioMetrics{
		ScenarioName: s.Name,
		NetCost:      s.NetCost,
		CostDelta:    s.NetCost.Sub(cheapest.NetCost),
	}
	if !cheapest.NetCost.IsZero() {
		m.CostDeltaPct = m.CostDelta.Div(cheapest.NetCost.Abs()).Mul(decimal.NewFromInt(100))
	}

	if !s.InitialCapital.IsZero() {
		gain := s.FinalEquity.Sub(s.InitialCapital)
		m.ROI = gain.Div(s.InitialCapital)
	}

	cumulative := decimal.Zero
	ratioSum := decimal.Zero
	ratioCount := 0
	var breakEven *int
	cumulativeCashFlow := decimal.Zero

	for i := range s.MonthlyData {
		rec := &s.MonthlyData[i]
		cumulative = cumulative.Add(rec.Withdrawal)

		if rec.WithdrawalRatio != nil {
			ratioSum = ratioSum.Add(*rec.WithdrawalRatio)
			ratioCount++
		}
		if rec.BurnMonth {
			m.BurnMonthCount++
		}

		cumulativeCashFlow = cumulativeCashFlow.Add(rec.CashFlow)
		if breakEven == nil && cumulativeCashFlow.GreaterThanOrEqual(decimal.Zero) {
			month := rec.Month
			breakEven = &month
		}
	}

	m.CumulativeWithdrawals = cumulative
	m.BreakEvenMonth = breakEven
	if ratioCount > 0 {
		avg := ratioSum.Div(decimal.NewFromInt(int64(ratioCount)))
		m.AverageWithdrawalRatio = &avg
	}

	// Adjusted ROI adds withdrawn amounts back, as if they had been
	// distributed rather than consumed.
	if !s.InitialCapital.IsZero() {
		adjustedGain := s.FinalEquity.Add(cumulative).Sub(s.InitialCapital)
		m.AdjustedROI = adjustedGain.Div(s.InitialCapital)
	}

	return m
}

// buildMonthlyTable assembles the month-indexed cross-scenario table keyed by
// scenario name.
func buildMonthlyTable(scenarios []domain.ScenarioResult) []MonthlyComparisonRow {
	months := 0
	for i := range scenarios {
		if n := len(scenarios[i].MonthlyData); n > months {
			months = n
		}
	}

	table := make([]MonthlyComparisonRow, 0, months)
	for month := 1; month <= months; month++ {
		row := MonthlyComparisonRow{
			Month:    month,
			NetWorth: make(map[string]decimal.Decimal, len(scenarios)),
			CashFlow: make(map[string]decimal.Decimal, len(scenarios)),
		}
		for i := range scenarios {
			s := &scenarios[i]
			if month > len(s.MonthlyData) {
				continue
			}
			rec := &s.MonthlyData[month-1]
			row.NetWorth[s.Name] = netWorthAt(rec)
			row.CashFlow[s.Name] = rec.CashFlow
		}
		table = append(table, row)
	}
	return table
}

// netWorthAt is the month's wealth snapshot: equity for owned property,
// investment and FGTS balances, minus anything still owed on the loan.
func netWorthAt(rec *domain.MonthlyRecord) decimal.Decimal {
	return rec.Equity.Add(rec.InvestmentBalance).Add(rec.FGTSBalance)
}
