/*
Package factory builds configured rule evaluators.

PURPOSE:
  Converts the config layer's plain values (HH:MM strings, minutes,
  rupiah) into ready-to-run attendance evaluators. Payroll can tune the
  contract constants in the config file without code changes; every
  field falls back to the contract default when omitted.

USAGE:
  cfg, _ := config.Load(path)
  rules := factory.New(cfg, logger)
  result, err := rules.WorkingDays.Evaluate(set)
*/
package factory

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/config"
)

// Rules bundles the configured evaluators for one run.
type Rules struct {
	WorkingDays *attendance.WorkingDayValidator
	Overtime    *attendance.OvertimeMatcher
	Meals       *attendance.MealEvaluator
	Debit       *attendance.DebitCalculator
	Payroll     *attendance.PayrollReconciler
}

// New builds the evaluator set from configuration. A nil config yields
// the contract defaults.
func New(cfg *config.Config, logger *zap.Logger) *Rules {
	if logger == nil {
		logger = zap.NewNop()
	}

	workingDays := attendance.NewWorkingDayValidator(logger)
	overtime := attendance.NewOvertimeMatcher(logger)
	meals := attendance.NewMealEvaluator(logger)
	debit := attendance.NewDebitCalculator(logger)
	payroll := attendance.NewPayrollReconciler()

	if cfg != nil {
		window := cfg.Window()
		workingDays.Window = window
		workingDays.Tolerance = cfg.Rules.ValidityToleranceMinutes / 60.0

		overtime.MinimumHours = cfg.Rules.MinimumOvertimeHours

		meals.BreakfastCutoff = cfg.BreakfastCutoff()
		meals.DinnerEarliest = cfg.DinnerEarliest()
		meals.LunchMaxHours = cfg.Rules.LunchMaxSeconds / 3600.0

		debit.Window = window
		debit.Grace = cfg.Rules.LateGraceMinutes / 60.0

		payroll.RatePerHour = decimal.NewFromInt(cfg.Rules.OvertimeRatePerHour)
	}

	return &Rules{
		WorkingDays: workingDays,
		Overtime:    overtime,
		Meals:       meals,
		Debit:       debit,
		Payroll:     payroll,
	}
}
