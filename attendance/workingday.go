/*
workingday.go - Working-day validity classification

PURPOSE:
  Classifies every check-in/check-out event of a month against the
  expected 08:00-17:00 window and accumulates fractional valid/invalid
  working-day credit per employee.

CREDIT MODEL:
  Each event direction (in/out) on a date carries one step of credit:
  0.5 for office events, 0.25 for home-work events. A valid event raises
  the date's per-direction valid credit, capped at the step; an invalid
  event lowers the per-direction invalid credit, floored at minus the
  step. A perfect office day is therefore +1.0 (0.5 in + 0.5 out), and a
  fully missed one -1.0.

VALIDITY:
  check-in  valid iff ts - windowStart < tolerance (31 minutes)
  check-out valid iff windowEnd - ts   < tolerance
  Terminal events (A IN / A OUT) are always valid: the fixed office
  terminal cannot be clocked remotely.

MONTH SCOPE:
  The evaluated month is inferred from the first record's date; days are
  walked 1..monthLength so the per-date breakdown is in calendar order.
*/
package attendance

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// =============================================================================
// RESULT SHAPES - JSON field names are part of the output contract
// =============================================================================

// ValidDayBreakdown is one date's valid credit detail.
type ValidDayBreakdown struct {
	Date          string  `json:"date"`
	ValidCheckIn  float64 `json:"valid_check_in_count"`
	ValidCheckOut float64 `json:"valid_check_out_count"`
}

// InvalidDayBreakdown is one date's invalid credit detail. Values are
// zero or negative.
type InvalidDayBreakdown struct {
	Date            string  `json:"date"`
	InvalidCheckIn  float64 `json:"invalid_check_in_count"`
	InvalidCheckOut float64 `json:"invalid_check_out_count"`
}

// WorkingDaysResult aggregates valid/invalid working-day credit per
// employee, with per-date breakdowns.
type WorkingDaysResult struct {
	Valid            map[string]float64               `json:"valid_working_days"`
	Invalid          map[string]float64               `json:"invalid_working_days"`
	ValidBreakdown   map[string][]ValidDayBreakdown   `json:"valid_days_breakdown"`
	InvalidBreakdown map[string][]InvalidDayBreakdown `json:"invalid_days_breakdown"`
}

// =============================================================================
// VALIDATOR
// =============================================================================

const (
	stepOffice = 0.5
	stepHome   = 0.25

	// DefaultValidityToleranceHours is how far an event may stray from
	// its window boundary and still count as valid: 31 minutes.
	DefaultValidityToleranceHours = 31.0 / 60.0
)

// WorkingDayValidator classifies check-in/check-out events into
// fractional valid/invalid working-day credit.
type WorkingDayValidator struct {
	Window    Window
	Tolerance float64 // hours
	Logger    *zap.Logger
}

// NewWorkingDayValidator returns a validator with the standard window
// and tolerance. A nil logger is replaced with a no-op one.
func NewWorkingDayValidator(logger *zap.Logger) *WorkingDayValidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkingDayValidator{
		Window:    DefaultWindow(),
		Tolerance: DefaultValidityToleranceHours,
		Logger:    logger,
	}
}

// Evaluate walks the evaluated month day by day for every employee.
// An empty record set yields an empty result with a logged warning; an
// unparseable timestamp on a filtered record is fatal.
func (v *WorkingDayValidator) Evaluate(set *RecordSet) (*WorkingDaysResult, error) {
	result := &WorkingDaysResult{
		Valid:            make(map[string]float64),
		Invalid:          make(map[string]float64),
		ValidBreakdown:   make(map[string][]ValidDayBreakdown),
		InvalidBreakdown: make(map[string][]InvalidDayBreakdown),
	}

	first, ok := v.firstRecordDate(set)
	if !ok {
		v.Logger.Warn("no attendance records found, cannot calculate valid/invalid working days")
		return result, nil
	}
	monthDays := DaysInMonth(first)

	for _, employee := range set.Employees() {
		byDate := GroupByDate(set.Records(employee))

		var validDays, invalidDays float64
		for day := 1; day <= monthDays; day++ {
			dateKey := fmt.Sprintf("%04d-%02d-%02d", first.Year(), int(first.Month()), day)
			attendances := byDate[dateKey]
			if len(attendances) == 0 {
				continue
			}

			var validIn, validOut, invalidIn, invalidOut float64
			for _, rec := range attendances {
				ts, ok := ParseDateTime(rec.Timestamp)
				if !ok {
					return nil, &RecordError{Employee: employee, Record: rec}
				}

				deltaStart := v.Window.DeltaStartHours(ts)
				deltaEnd := v.Window.DeltaEndHours(ts)

				if rec.Type.IsCheckIn() {
					validIn, invalidIn = creditStep(validIn, invalidIn, v.checkInValid(rec.Type, deltaStart), rec.Type)
				}
				if rec.Type.IsCheckOut() {
					validOut, invalidOut = creditStep(validOut, invalidOut, v.checkOutValid(rec.Type, deltaEnd), rec.Type)
				}
			}

			validDays += validIn + validOut
			invalidDays += invalidIn + invalidOut

			result.ValidBreakdown[employee] = append(result.ValidBreakdown[employee], ValidDayBreakdown{
				Date:          dateKey,
				ValidCheckIn:  validIn,
				ValidCheckOut: validOut,
			})
			result.InvalidBreakdown[employee] = append(result.InvalidBreakdown[employee], InvalidDayBreakdown{
				Date:            dateKey,
				InvalidCheckIn:  invalidIn,
				InvalidCheckOut: invalidOut,
			})
		}

		result.Valid[employee] = validDays
		result.Invalid[employee] = invalidDays
	}

	return result, nil
}

func (v *WorkingDayValidator) checkInValid(t Type, deltaStart float64) bool {
	if t == TypeTerminalIn {
		return true
	}
	return (t == TypeCheckIn || t == TypeHomeStart) && deltaStart < v.Tolerance
}

func (v *WorkingDayValidator) checkOutValid(t Type, deltaEnd float64) bool {
	if t == TypeTerminalOut {
		return true
	}
	return (t == TypeCheckOut || t == TypeHomeEnd) && -deltaEnd < v.Tolerance
}

// creditStep moves one of the two per-direction accumulators by one
// step: valid credit capped at +step, invalid credit floored at -step.
func creditStep(valid, invalid float64, isValid bool, t Type) (float64, float64) {
	step := stepOffice
	if t.IsHome() {
		step = stepHome
	}
	if isValid {
		valid = min(valid+step, step)
	} else {
		invalid = max(invalid-step, -step)
	}
	return valid, invalid
}

// firstRecordDate returns the date of the first employee's first
// parseable record, which anchors the evaluated month.
func (v *WorkingDayValidator) firstRecordDate(set *RecordSet) (first time.Time, ok bool) {
	employees := set.Employees()
	if len(employees) == 0 {
		return time.Time{}, false
	}
	for _, rec := range set.Records(employees[0]) {
		if ts, parsed := ParseDateTime(rec.Timestamp); parsed {
			return ts, true
		}
	}
	return time.Time{}, false
}
