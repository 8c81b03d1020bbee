package compare

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var oneHundredDec = decimal.NewFromInt(100)

// CSVFormatter formats comparison results as CSV for spreadsheet consumption.
type CSVFormatter struct{}

// Format generates one summary row per scenario followed by the month-indexed
// cross-scenario table.
func (cf *CSVFormatter) Format(result *EnhancedComparisonResult) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Best",
		"Total Outflows",
		"Final Equity",
		"Net Cost",
		"Cost Delta",
		"Cost Delta %",
		"ROI %",
		"Adjusted ROI %",
		"Break-even Month",
		"Burn Months",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	metricsByName := make(map[string]ScenarioMetrics, len(result.Metrics))
	for _, m := range result.Metrics {
		metricsByName[m.ScenarioName] = m
	}

	for i := range result.Scenarios {
		s := &result.Scenarios[i]
		m := metricsByName[s.Name]

		breakEven := ""
		if m.BreakEvenMonth != nil {
			breakEven = fmt.Sprintf("%d", *m.BreakEvenMonth)
		}
		best := ""
		if s.Name == result.BestScenario {
			best = "yes"
		}

		row := []string{
			s.Name,
			best,
			s.TotalOutflows.StringFixed(2),
			s.FinalEquity.StringFixed(2),
			s.NetCost.StringFixed(2),
			m.CostDelta.StringFixed(2),
			m.CostDeltaPct.StringFixed(2),
			m.ROI.Mul(oneHundredDec).StringFixed(2),
			m.AdjustedROI.Mul(oneHundredDec).StringFixed(2),
			breakEven,
			fmt.Sprintf("%d", m.BurnMonthCount),
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	// Blank separator row, then the monthly table.
	if err := writer.Write([]string{}); err != nil {
		return "", err
	}

	names := make([]string, 0, len(result.Scenarios))
	monthlyHeader := []string{"Month"}
	for i := range result.Scenarios {
		names = append(names, result.Scenarios[i].Name)
		monthlyHeader = append(monthlyHeader,
			result.Scenarios[i].Name+" Net Worth",
			result.Scenarios[i].Name+" Cash Flow")
	}
	if err := writer.Write(monthlyHeader); err != nil {
		return "", err
	}

	for _, row := range result.MonthlyTable {
		record := []string{fmt.Sprintf("%d", row.Month)}
		for _, name := range names {
			record = append(record,
				row.NetWorth[name].StringFixed(2),
				row.CashFlow[name].StringFixed(2))
		}
		if err := writer.Write(record); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
