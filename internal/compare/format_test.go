package compare

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moradia-app/moradia/internal/domain"
)

func enhancedResult(t *testing.T) *EnhancedComparisonResult {
	t.Helper()
	engine := NewEngine(nil)
	result, err := engine.EnhancedCompare(comparisonInput())
	require.NoError(t, err)
	return result
}

func TestTableFormatter(t *testing.T) {
	result := enhancedResult(t)

	out := (&TableFormatter{}).Format(result)
	assert.Contains(t, out, "HOUSING SCENARIO COMPARISON")
	assert.Contains(t, out, "ENHANCED METRICS")
	assert.Contains(t, out, "Recommendation: "+result.BestScenario)
	for _, s := range result.Scenarios {
		assert.Contains(t, out, s.Name)
	}
}

func TestCSVFormatter(t *testing.T) {
	result := enhancedResult(t)

	out, err := (&CSVFormatter{}).Format(result)
	require.NoError(t, err)

	sections := strings.SplitN(out, "\n\n", 2)
	require.Len(t, sections, 2)

	summary, err := csv.NewReader(strings.NewReader(sections[0])).ReadAll()
	require.NoError(t, err)
	require.Len(t, summary, 4, "header plus one row per scenario")
	assert.Equal(t, "Scenario", summary[0][0])

	monthly, err := csv.NewReader(strings.NewReader(sections[1])).ReadAll()
	require.NoError(t, err)
	assert.Len(t, monthly, 121, "header plus one row per month")
	// Month column, then net worth and cash flow per scenario.
	assert.Len(t, monthly[0], 1+2*3)
}

func TestJSONFormatter(t *testing.T) {
	result := enhancedResult(t)

	out, err := (&JSONFormatter{}).Format(result)
	require.NoError(t, err)

	var decoded EnhancedComparisonResult
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, result.BestScenario, decoded.BestScenario)
	assert.Len(t, decoded.Metrics, 3)
	assert.Len(t, decoded.MonthlyTable, 120)
}

func TestPurchaseNote(t *testing.T) {
	month := 42
	assert.Contains(t, purchaseNote(&domain.ScenarioResult{PurchaseMonth: &month}), "month 42")
	assert.Contains(t, purchaseNote(&domain.ScenarioResult{ProjectedPurchaseMonth: &month}), "projected")
	assert.Empty(t, purchaseNote(&domain.ScenarioResult{}))
}
