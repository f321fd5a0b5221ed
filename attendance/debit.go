/*
debit.go - Debit hour accrual

PURPOSE:
  Accumulates tardiness and early-departure hours per employee. Debit is
  later offset against overtime by the payroll reconciler.

THE RULE:
  A check-in later than window start by at least the grace period (16
  minutes) accrues the full lateness as debit. Otherwise, a check-out
  at or before window end accrues the full early departure. Debit is not
  capped and runs across the whole filtered record list; no event kind
  is exempt here, terminal events included.
*/
package attendance

import "go.uber.org/zap"

// DefaultLateGraceHours is the grace period within which a late
// check-in accrues no debit: 16 minutes.
const DefaultLateGraceHours = 16.0 / 60.0

// DebitCalculator accrues tardiness/early-departure hours.
type DebitCalculator struct {
	Window Window
	Grace  float64 // hours
	Logger *zap.Logger
}

// NewDebitCalculator returns a calculator with the standard window and
// grace period.
func NewDebitCalculator(logger *zap.Logger) *DebitCalculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DebitCalculator{
		Window: DefaultWindow(),
		Grace:  DefaultLateGraceHours,
		Logger: logger,
	}
}

// Evaluate returns total debit hours per employee. This is a strict
// rule: any unparseable timestamp on a filtered record is fatal.
func (c *DebitCalculator) Evaluate(set *RecordSet) (map[string]float64, error) {
	totals := make(map[string]float64, set.Len())

	for _, employee := range set.Employees() {
		total := 0.0
		for _, rec := range set.Records(employee) {
			ts, ok := ParseDateTime(rec.Timestamp)
			if !ok {
				return nil, &RecordError{Employee: employee, Record: rec}
			}

			deltaStart := c.Window.DeltaStartHours(ts)
			deltaEnd := c.Window.DeltaEndHours(ts)

			switch {
			case rec.Type.IsCheckIn() && deltaStart >= c.Grace:
				total += deltaStart
			case rec.Type.IsCheckOut() && deltaEnd <= 0:
				total += -deltaEnd
			}
		}
		totals[employee] = total
	}

	return totals, nil
}
