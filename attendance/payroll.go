/*
payroll.go - Overtime pay vs debit reconciliation

PURPOSE:
  Offsets each employee's valid overtime hours against their accrued
  debit hours and prices the surplus.

  pay             = max(0, overtime - debit) * rate
  remaining debit = max(0, debit - overtime)

  Both results are non-negative for any input. An employee present in
  only one of the two maps gets zero for the missing side.

PRECISION:
  Money math runs on decimal.Decimal; the hour inputs are converted once
  and the priced result is surfaced as a plain float in the payload.
*/
package attendance

import "github.com/shopspring/decimal"

// DefaultOvertimeRatePerHour is the contract overtime rate in rupiah.
var DefaultOvertimeRatePerHour = decimal.NewFromInt(15000)

// PayrollResult prices overtime and carries the unoffset debit.
type PayrollResult struct {
	OvertimePay    map[string]float64 `json:"overtime_to_be_paid_in_rupiah"`
	RemainingDebit map[string]float64 `json:"remaining_debit_hours"`
}

// PayrollReconciler combines debit and overtime totals into pay.
type PayrollReconciler struct {
	RatePerHour decimal.Decimal
}

// NewPayrollReconciler returns a reconciler with the contract rate.
func NewPayrollReconciler() *PayrollReconciler {
	return &PayrollReconciler{RatePerHour: DefaultOvertimeRatePerHour}
}

// Reconcile offsets overtime against debit over the union of both
// employee key sets.
func (r *PayrollReconciler) Reconcile(debitHours, overtimeHours map[string]float64) *PayrollResult {
	result := &PayrollResult{
		OvertimePay:    make(map[string]float64),
		RemainingDebit: make(map[string]float64),
	}

	for employee := range debitHours {
		r.reconcileOne(result, employee, debitHours[employee], overtimeHours[employee])
	}
	for employee := range overtimeHours {
		if _, done := result.OvertimePay[employee]; done {
			continue
		}
		r.reconcileOne(result, employee, debitHours[employee], overtimeHours[employee])
	}

	return result
}

func (r *PayrollReconciler) reconcileOne(result *PayrollResult, employee string, debit, overtime float64) {
	d := decimal.NewFromFloat(debit)
	o := decimal.NewFromFloat(overtime)

	pay := decimal.Max(decimal.Zero, o.Sub(d)).Mul(r.RatePerHour)
	remaining := decimal.Max(decimal.Zero, d.Sub(o))

	result.OvertimePay[employee] = pay.InexactFloat64()
	result.RemainingDebit[employee] = remaining.InexactFloat64()
}
