/*
summary.go - Final per-employee report aggregation

PURPOSE:
  Merges every upstream metric into one record per employee. The key set
  is the union of all metric maps: an employee seen by any rule appears
  in the summary, with zero values for metrics that never saw them.
*/
package attendance

import "sort"

// EmployeeSummary is the combined monthly report for one employee.
type EmployeeSummary struct {
	ValidWorkingDays   float64 `json:"valid_working_days"`
	InvalidWorkingDays float64 `json:"invalid_working_days"`
	OvertimePay        float64 `json:"overtime_to_be_paid_in_rupiah"`
	RemainingDebit     float64 `json:"remaining_debit_hours"`
	MealsCount         int     `json:"meals_count"`
}

// SummaryInput carries the upstream metric maps into the aggregator.
type SummaryInput struct {
	ValidWorkingDays   map[string]float64
	InvalidWorkingDays map[string]float64
	OvertimePay        map[string]float64
	RemainingDebit     map[string]float64
	MealsCount         map[string]int
}

// Summarize builds the combined report. Map marshalling keeps employee
// keys lexicographically sorted in the JSON object.
func Summarize(in SummaryInput) map[string]EmployeeSummary {
	summary := make(map[string]EmployeeSummary)
	for _, employee := range SummaryEmployees(in) {
		summary[employee] = EmployeeSummary{
			ValidWorkingDays:   in.ValidWorkingDays[employee],
			InvalidWorkingDays: in.InvalidWorkingDays[employee],
			OvertimePay:        in.OvertimePay[employee],
			RemainingDebit:     in.RemainingDebit[employee],
			MealsCount:         in.MealsCount[employee],
		}
	}
	return summary
}

// SummaryEmployees returns the sorted union of employee names across
// all metric maps.
func SummaryEmployees(in SummaryInput) []string {
	seen := make(map[string]struct{})
	for employee := range in.ValidWorkingDays {
		seen[employee] = struct{}{}
	}
	for employee := range in.InvalidWorkingDays {
		seen[employee] = struct{}{}
	}
	for employee := range in.OvertimePay {
		seen[employee] = struct{}{}
	}
	for employee := range in.RemainingDebit {
		seen[employee] = struct{}{}
	}
	for employee := range in.MealsCount {
		seen[employee] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for employee := range seen {
		names = append(names, employee)
	}
	sort.Strings(names)
	return names
}
