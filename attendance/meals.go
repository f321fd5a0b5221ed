/*
meals.go - Meal entitlement evaluation

PURPOSE:
  Derives breakfast/lunch/dinner entitlements per employee per date from
  canteen gate events (C IN / C OUT) and break markers.

THE RULES:
  Breakfast  first C IN of the date strictly before 09:01
  Dinner     last C OUT of the date at or after 16:00
  Lunch      both break markers present, break duration under one hour
             (plus a 60 second clock-skew tolerance), and the gate events
             bracket the break (C IN < break start, break end < C OUT)

ELIGIBILITY vs ENTITLEMENT:
  Eligibility is the pure timestamp predicate; entitlement additionally
  requires that the meal has not been granted for that date yet. Each
  (employee, date, meal) is granted at most once, however many qualifying
  records the export contains.

TOLERANCE:
  This rule never fails the run: unparseable rows are skipped, and a date
  with no qualifying events simply yields no entitlements. Partial meal
  data is common in the feed.
*/
package attendance

import (
	"time"

	"go.uber.org/zap"
)

// Meal names as emitted in the breakdown.
const (
	MealBreakfast = "Breakfast"
	MealLunch     = "Lunch"
	MealDinner    = "Dinner"
)

// =============================================================================
// RESULT SHAPES
// =============================================================================

// MealSession is one evaluated meal opportunity. Only the timestamps
// relevant to the meal kind are set.
type MealSession struct {
	MealType     string   `json:"meal_type"`
	CheckInTime  *string  `json:"check_in_time,omitempty"`
	CheckOutTime *string  `json:"check_out_time,omitempty"`
	BreakStart   *string  `json:"mulai,omitempty"`
	BreakEnd     *string  `json:"selesai,omitempty"`
	Duration     *float64 `json:"duration,omitempty"`
	Eligible     bool     `json:"is_eligible"`
	Entitled     bool     `json:"is_entitled"`
}

// MealsResult holds per-employee entitled-meal counts and the session
// breakdown.
type MealsResult struct {
	Totals    map[string]int           `json:"total_meal_count"`
	Breakdown map[string][]MealSession `json:"meal_hours_breakdown"`
}

// =============================================================================
// EVALUATOR
// =============================================================================

// Default meal rule constants.
var (
	DefaultBreakfastCutoff = TimeOfDay{Hour: 9, Minute: 1}
	DefaultDinnerEarliest  = TimeOfDay{Hour: 16}
)

// DefaultLunchMaxHours is one hour plus a 60 second tolerance for clock
// skew between the break devices.
const DefaultLunchMaxHours = 1.0 + 60.0/3600.0

// MealEvaluator derives meal entitlements from gate and break events.
type MealEvaluator struct {
	BreakfastCutoff TimeOfDay // C IN strictly before this
	DinnerEarliest  TimeOfDay // C OUT at or after this
	LunchMaxHours   float64
	Logger          *zap.Logger
}

// NewMealEvaluator returns an evaluator with the standard cutoffs.
func NewMealEvaluator(logger *zap.Logger) *MealEvaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MealEvaluator{
		BreakfastCutoff: DefaultBreakfastCutoff,
		DinnerEarliest:  DefaultDinnerEarliest,
		LunchMaxHours:   DefaultLunchMaxHours,
		Logger:          logger,
	}
}

// Evaluate derives meal entitlements for every employee in the set.
// Dates are visited once per record on them, in file order; the granted
// set keeps entitlements unique per (date, meal).
func (e *MealEvaluator) Evaluate(set *RecordSet) *MealsResult {
	result := &MealsResult{
		Totals:    make(map[string]int),
		Breakdown: make(map[string][]MealSession),
	}

	for _, employee := range set.Employees() {
		states, visits := BuildMealDayStates(set.Records(employee))
		granted := make(map[string]map[string]bool)
		sessions := []MealSession{}
		count := 0

		grant := func(dateKey, meal string) {
			if granted[dateKey] == nil {
				granted[dateKey] = make(map[string]bool)
			}
			granted[dateKey][meal] = true
			count++
		}

		for _, visit := range visits {
			dateKey := DateKey(visit.Date)
			state := states[dateKey]

			// Breakfast
			eligible := state.GateIn != nil && state.GateIn.Before(e.BreakfastCutoff.At(visit.Date))
			entitled := eligible && !granted[dateKey][MealBreakfast]
			if entitled {
				grant(dateKey, MealBreakfast)
			}
			sessions = append(sessions, MealSession{
				MealType:    MealBreakfast,
				CheckInTime: formatIfSet(state.GateIn),
				Eligible:    eligible,
				Entitled:    entitled,
			})

			// Dinner
			eligible = state.GateOut != nil && !state.GateOut.Before(e.DinnerEarliest.At(visit.Date))
			entitled = eligible && !granted[dateKey][MealDinner]
			if entitled {
				grant(dateKey, MealDinner)
			}
			sessions = append(sessions, MealSession{
				MealType:     MealDinner,
				CheckOutTime: formatIfSet(state.GateOut),
				Eligible:     eligible,
				Entitled:     entitled,
			})

			// Lunch
			if state.BreakStart == nil || state.BreakEnd == nil {
				continue
			}
			bracketed := state.GateIn != nil && state.GateOut != nil &&
				state.GateIn.Before(*state.BreakStart) &&
				state.BreakEnd.Before(*state.GateOut)
			duration := state.BreakEnd.Sub(*state.BreakStart).Hours()
			eligible = duration < e.LunchMaxHours && bracketed
			if eligible && !granted[dateKey][MealLunch] {
				grant(dateKey, MealLunch)
				d := duration
				sessions = append(sessions, MealSession{
					MealType:   MealLunch,
					BreakStart: formatIfSet(state.BreakStart),
					BreakEnd:   formatIfSet(state.BreakEnd),
					Duration:   &d,
					Eligible:   true,
					Entitled:   true,
				})
			}
		}

		result.Breakdown[employee] = sessions
		result.Totals[employee] = count
	}

	return result
}

func formatIfSet(ts *time.Time) *string {
	if ts == nil {
		return nil
	}
	s := FormatDateTime(*ts)
	return &s
}
