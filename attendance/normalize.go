/*
normalize.go - Record normalization: per-date grouping and day state

PURPOSE:
  Pure transforms from an employee's flat record list into the per-date
  shapes the rules work on. Two consumers:

  - The working-day validator needs records bucketed by calendar date.
  - The meal evaluator needs one resolved state per date: the qualifying
    gate-in/gate-out and break boundary timestamps, with an explicit
    first-or-last occurrence policy per field.

DUPLICATE POLICY (per field, exact upstream semantics):
  gate in   (C IN)              first occurrence wins
  gate out  (C OUT)             last occurrence wins
  break start (Mulai Istirahat) last occurrence wins
  break end (Selesai Istirahat) first occurrence wins

  The asymmetry mirrors the field devices: the gate logs a C IN for every
  badge swipe but only the first entry starts the day, while repeated
  C OUT swipes mean the employee came back and left again later.
*/
package attendance

import "time"

// =============================================================================
// DATE GROUPING - Used by the working-day validator
// =============================================================================

// GroupByDate buckets records by their calendar date key (YYYY-MM-DD).
// Records whose timestamp fails to parse are skipped here; strict rules
// re-parse per record and turn the same condition into a fatal error.
func GroupByDate(records []RawRecord) map[string][]RawRecord {
	byDate := make(map[string][]RawRecord)
	for _, rec := range records {
		ts, ok := ParseDateTime(rec.Timestamp)
		if !ok {
			continue
		}
		key := DateKey(ts)
		byDate[key] = append(byDate[key], rec)
	}
	return byDate
}

// =============================================================================
// MEAL DAY STATE - Resolved per-date timestamps for the meal rule
// =============================================================================

// MealDayState holds the resolved timestamps the meal rule evaluates for
// one (employee, date). Nil means the event never occurred that date.
type MealDayState struct {
	GateIn     *time.Time // first C IN of the date
	GateOut    *time.Time // last C OUT of the date
	BreakStart *time.Time // last break start of the date
	BreakEnd   *time.Time // first break end of the date
}

// DateVisit is one record occurrence in file order: the meal rule visits
// each date once per record on it, relying on the entitlement set for
// per-date uniqueness.
type DateVisit struct {
	Date time.Time // midnight of the record's calendar date
}

// BuildMealDayStates resolves per-date meal state for one employee and
// returns the visit sequence in record order. Unparseable or non-meal
// records are skipped (tolerant path).
func BuildMealDayStates(records []RawRecord) (map[string]*MealDayState, []DateVisit) {
	states := make(map[string]*MealDayState)
	var visits []DateVisit

	for _, rec := range records {
		if !MealTypes().Contains(rec.Type) {
			continue
		}
		ts, ok := ParseDateTime(rec.Timestamp)
		if !ok {
			continue
		}

		key := DateKey(ts)
		state, exists := states[key]
		if !exists {
			state = &MealDayState{}
			states[key] = state
		}
		visits = append(visits, DateVisit{
			Date: time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location()),
		})

		parsed := ts
		switch rec.Type {
		case TypeGateIn:
			if state.GateIn == nil { // first wins
				state.GateIn = &parsed
			}
		case TypeGateOut:
			state.GateOut = &parsed // last wins
		case TypeBreakStart:
			state.BreakStart = &parsed // last wins
		case TypeBreakEnd:
			if state.BreakEnd == nil { // first wins
				state.BreakEnd = &parsed
			}
		}
	}

	return states, visits
}
