package compare

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/moradia-app/moradia/internal/domain"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	bestStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	headerStyle = lipgloss.NewStyle().Underline(true)
)

// TableFormatter renders a comparison as a console report.
type TableFormatter struct{}

// Format generates the console comparison table, marking the winning scenario.
func (tf *TableFormatter) Format(result *EnhancedComparisonResult) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("HOUSING SCENARIO COMPARISON"))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("=", 86)))
	sb.WriteString("\n\n")

	nameWidth := 18
	numWidth := 16

	sb.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %*s %*s %*s %*s",
		nameWidth, "Scenario",
		numWidth, "Total Outflows",
		numWidth, "Final Equity",
		numWidth, "Net Cost",
		numWidth, "ROI %")))
	sb.WriteString("\n")

	metricsByName := make(map[string]ScenarioMetrics, len(result.Metrics))
	for _, m := range result.Metrics {
		metricsByName[m.ScenarioName] = m
	}

	for i := range result.Scenarios {
		s := &result.Scenarios[i]
		m := metricsByName[s.Name]
		row := fmt.Sprintf("%-*s %*s %*s %*s %*s",
			nameWidth, s.Name,
			numWidth, s.TotalOutflows.StringFixed(2),
			numWidth, s.FinalEquity.StringFixed(2),
			numWidth, s.NetCost.StringFixed(2),
			numWidth, m.ROI.Mul(oneHundredDec).StringFixed(2))
		if s.Name == result.BestScenario {
			row = bestStyle.Render(row + "  *best")
		}
		sb.WriteString(row)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(titleStyle.Render("ENHANCED METRICS"))
	sb.WriteString("\n")
	for _, m := range result.Metrics {
		sb.WriteString(fmt.Sprintf("\n%s:\n", m.ScenarioName))
		sb.WriteString(fmt.Sprintf("  Cost vs best:      %s (%s%%)\n", m.CostDelta.StringFixed(2), m.CostDeltaPct.StringFixed(2)))
		sb.WriteString(fmt.Sprintf("  Adjusted ROI:      %s%%\n", m.AdjustedROI.Mul(oneHundredDec).StringFixed(2)))
		if m.BreakEvenMonth != nil {
			sb.WriteString(fmt.Sprintf("  Break-even month:  %d\n", *m.BreakEvenMonth))
		}
		if m.AverageWithdrawalRatio != nil {
			sb.WriteString(fmt.Sprintf("  Avg withdr. ratio: %s\n", m.AverageWithdrawalRatio.StringFixed(4)))
		}
		if m.BurnMonthCount > 0 {
			sb.WriteString(fmt.Sprintf("  Burn months:       %d\n", m.BurnMonthCount))
		}
	}

	if best := result.Best(); best != nil {
		sb.WriteString("\n")
		sb.WriteString(bestStyle.Render(fmt.Sprintf("Recommendation: %s (net cost %s)", best.Name, best.NetCost.StringFixed(2))))
		sb.WriteString("\n")
		if note := purchaseNote(best); note != "" {
			sb.WriteString(dimStyle.Render(note))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// purchaseNote annotates invest-then-buy outcomes with the purchase timing.
func purchaseNote(s *domain.ScenarioResult) string {
	switch {
	case s.PurchaseMonth != nil:
		return fmt.Sprintf("purchase executed at month %d", *s.PurchaseMonth)
	case s.ProjectedPurchaseMonth != nil:
		return fmt.Sprintf("purchase not reached within the term; projected for month %d", *s.ProjectedPurchaseMonth)
	default:
		return ""
	}
}
