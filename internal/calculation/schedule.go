package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/moradia-app/moradia/internal/domain"
)

// AmortizationSchedule is the expansion of a list of AmortizationSpecs into
// per-month totals. Fixed-value entries are summed up front (inflation
// adjusted against each spec's first occurrence month); percentage entries
// stay unresolved because they depend on the balance in effect when the month
// is reached, and are applied inside the simulation loop.
type AmortizationSchedule struct {
	Fixed       map[int]decimal.Decimal
	Percentages map[int][]decimal.Decimal
}

// FixedAt returns the total fixed extra amount scheduled for a month.
func (s *AmortizationSchedule) FixedAt(month int) decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}
	return s.Fixed[month]
}

// PercentageTotalAt resolves the percentage entries scheduled for a month
// against the supplied balance.
func (s *AmortizationSchedule) PercentageTotalAt(month int, balance decimal.Decimal) decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, pct := range s.Percentages[month] {
		total = total.Add(balance.Mul(pct).Div(oneHundred))
	}
	return total
}

// TotalAt is the fixed amount plus the resolved percentage amount for a month.
func (s *AmortizationSchedule) TotalAt(month int, balance decimal.Decimal) decimal.Decimal {
	return s.FixedAt(month).Add(s.PercentageTotalAt(month, balance))
}

// Empty reports whether the schedule carries no entries at all.
func (s *AmortizationSchedule) Empty() bool {
	return s == nil || (len(s.Fixed) == 0 && len(s.Percentages) == 0)
}

// BuildAmortizationSchedule validates and expands specs over [1, termMonths].
// Occurrence months outside that range are silently dropped. Returns
// InvalidAmortizationSpecError for conflicting recurrence fields or a missing
// or non-positive interval.
func BuildAmortizationSchedule(specs []domain.AmortizationSpec, termMonths int, annualInflationPercent decimal.Decimal) (*AmortizationSchedule, error) {
	schedule := &AmortizationSchedule{
		Fixed:       make(map[int]decimal.Decimal),
		Percentages: make(map[int][]decimal.Decimal),
	}

	for i, spec := range specs {
		if err := validateSpec(i, spec); err != nil {
			return nil, err
		}

		for _, month := range occurrenceMonths(spec, termMonths) {
			switch spec.ValueType {
			case domain.AmortizationValuePercentage:
				schedule.Percentages[month] = append(schedule.Percentages[month], spec.Value)
			default:
				value := spec.Value
				if spec.InflationAdjust {
					value = ApplyInflation(value, month, spec.Month, annualInflationPercent)
				}
				schedule.Fixed[month] = schedule.Fixed[month].Add(value)
			}
		}
	}

	return schedule, nil
}

func validateSpec(index int, spec domain.AmortizationSpec) error {
	if spec.Occurrences != nil && spec.EndMonth != nil {
		return &domain.InvalidAmortizationSpecError{Index: index, Reason: "occurrences and endMonth are mutually exclusive"}
	}
	recurs := spec.Occurrences != nil || spec.EndMonth != nil
	if recurs && spec.IntervalMonths <= 0 {
		return &domain.InvalidAmortizationSpecError{Index: index, Reason: "intervalMonths must be positive when occurrences or endMonth is set"}
	}
	if spec.IntervalMonths < 0 {
		return &domain.InvalidAmortizationSpecError{Index: index, Reason: "intervalMonths cannot be negative"}
	}
	if spec.Occurrences != nil && *spec.Occurrences <= 0 {
		return &domain.InvalidAmortizationSpecError{Index: index, Reason: "occurrences must be positive"}
	}
	if spec.ValueType != domain.AmortizationValueFixed && spec.ValueType != domain.AmortizationValuePercentage && spec.ValueType != "" {
		return &domain.InvalidAmortizationSpecError{Index: index, Reason: "valueType must be fixed or percentage"}
	}
	return nil
}

// occurrenceMonths computes the arithmetic sequence of months a spec applies
// to: the single start month, or steps of IntervalMonths bounded by
// Occurrences, EndMonth, or the loan term.
func occurrenceMonths(spec domain.AmortizationSpec, termMonths int) []int {
	if spec.IntervalMonths == 0 {
		if spec.Month >= 1 && spec.Month <= termMonths {
			return []int{spec.Month}
		}
		return nil
	}

	last := termMonths
	if spec.EndMonth != nil && *spec.EndMonth < last {
		last = *spec.EndMonth
	}

	var months []int
	count := 0
	for month := spec.Month; month <= last; month += spec.IntervalMonths {
		if spec.Occurrences != nil && count >= *spec.Occurrences {
			break
		}
		count++
		if month < 1 {
			continue
		}
		months = append(months, month)
	}
	return months
}
