package attendance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/attendance-engine/attendance"
)

func TestPayroll_OvertimeExceedsDebit_SurplusPaid(t *testing.T) {
	// GIVEN: 10h valid overtime against 4h debit
	// WHEN: Reconciling
	// THEN: 6h surplus priced at 15000/h, no remaining debit

	r := attendance.NewPayrollReconciler()

	result := r.Reconcile(
		map[string]float64{"Alice": 4},
		map[string]float64{"Alice": 10},
	)

	assert.InDelta(t, 90000.0, result.OvertimePay["Alice"], 1e-9)
	assert.InDelta(t, 0.0, result.RemainingDebit["Alice"], 1e-9)
}

func TestPayroll_DebitExceedsOvertime_ResidualDebit(t *testing.T) {
	// GIVEN: 2h overtime against 5h debit
	// WHEN: Reconciling
	// THEN: Nothing paid, 3h debit remains

	r := attendance.NewPayrollReconciler()

	result := r.Reconcile(
		map[string]float64{"Bob": 5},
		map[string]float64{"Bob": 2},
	)

	assert.InDelta(t, 0.0, result.OvertimePay["Bob"], 1e-9)
	assert.InDelta(t, 3.0, result.RemainingDebit["Bob"], 1e-9)
}

func TestPayroll_EmployeeOnlyInDebitMap_OvertimeDefaultsToZero(t *testing.T) {
	// GIVEN: An employee who never logged overtime
	// WHEN: Reconciling
	// THEN: Their whole debit remains, nothing is paid

	r := attendance.NewPayrollReconciler()

	result := r.Reconcile(map[string]float64{"Cleo": 1.5}, nil)

	assert.InDelta(t, 0.0, result.OvertimePay["Cleo"], 1e-9)
	assert.InDelta(t, 1.5, result.RemainingDebit["Cleo"], 1e-9)
}

func TestPayroll_EmployeeOnlyInOvertimeMap_DebitDefaultsToZero(t *testing.T) {
	// GIVEN: An employee with overtime but no debit record
	// WHEN: Reconciling
	// THEN: The employee is still paid in full

	r := attendance.NewPayrollReconciler()

	result := r.Reconcile(nil, map[string]float64{"Dana": 8})

	assert.InDelta(t, 120000.0, result.OvertimePay["Dana"], 1e-9)
	assert.InDelta(t, 0.0, result.RemainingDebit["Dana"], 1e-9)
}

func TestPayroll_ResultsNeverNegative(t *testing.T) {
	// GIVEN: A grid of debit/overtime combinations including zeros
	// WHEN: Reconciling
	// THEN: Pay and remaining debit are non-negative everywhere

	r := attendance.NewPayrollReconciler()
	cases := []struct {
		name     string
		debit    float64
		overtime float64
	}{
		{"both zero", 0, 0},
		{"zero debit", 0, 3},
		{"zero overtime", 7, 0},
		{"equal", 4, 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Reconcile(
				map[string]float64{"X": tc.debit},
				map[string]float64{"X": tc.overtime},
			)
			require.Contains(t, result.OvertimePay, "X")
			assert.GreaterOrEqual(t, result.OvertimePay["X"], 0.0)
			assert.GreaterOrEqual(t, result.RemainingDebit["X"], 0.0)
		})
	}
}
