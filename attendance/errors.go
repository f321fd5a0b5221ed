/*
errors.go - Centralized error types for the attendance engine

PURPOSE:
  All engine error types in one place. The strict evaluators (working-day,
  debit) surface these; the tolerant evaluators (meals, overtime) skip bad
  rows instead and never return them.

ERROR CATEGORIES:
  1. Record errors - A filtered row that cannot be evaluated (bad timestamp)
  2. Input errors - The record set as a whole is unusable

USAGE:
  if errors.Is(err, attendance.ErrUnparseableTimestamp) { ... }

  var recErr *attendance.RecordError
  if errors.As(err, &recErr) {
      log.Warn("bad row", zap.String("employee", recErr.Employee))
  }
*/
package attendance

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrUnparseableTimestamp is returned by the strict evaluators when a
	// filtered record carries a timestamp the datetime primitive rejects.
	// This indicates upstream data corruption, not a rule outcome.
	ErrUnparseableTimestamp = errors.New("unparseable timestamp")

	// ErrNoRecords is returned when an evaluator that needs at least one
	// record (to infer the calendar month) receives an empty set.
	ErrNoRecords = errors.New("no attendance records")
)

// =============================================================================
// STRUCTURED ERRORS - Carry the offending record
// =============================================================================

// RecordError identifies the exact record that made a strict evaluator
// fail, so the caller can report which export row is corrupt.
type RecordError struct {
	Employee string
	Record   RawRecord
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("cannot parse datetime %q for %s (%s)",
		e.Record.Timestamp, e.Employee, e.Record.Type)
}

func (e *RecordError) Unwrap() error {
	return ErrUnparseableTimestamp
}
