package compare

import (
	"encoding/json"
	"fmt"
)

// JSONFormatter formats comparison results as indented JSON.
type JSONFormatter struct{}

// Format serializes the full enhanced comparison result.
func (jf *JSONFormatter) Format(result *EnhancedComparisonResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal comparison result: %w", err)
	}
	return string(data), nil
}
