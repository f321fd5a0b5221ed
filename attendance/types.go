/*
Package attendance implements the payroll attendance rule engine.

PURPOSE:
  This package contains the domain types and algorithms that turn a raw
  time-clock export into payroll-relevant metrics: valid/invalid working
  days, overtime sessions, meal entitlements, debit hours, and the combined
  per-employee summary.

KEY CONCEPTS IN THIS FILE (types.go):
  - Type: The closed enumeration of attendance event kinds as they appear
    in the export ("Absensi Masuk", "Mulai Lembur", "A IN", ...)
  - RawRecord: One filtered export row (event kind + raw timestamp string)
  - RecordSet: An ordered per-employee collection of raw records

DESIGN PRINCIPLES:
  1. Determinism: RecordSet preserves export row order; every evaluator is
     a single sequential pass, so pairing and first-occurrence semantics
     are stable.
  2. Purity: No I/O in this package. Ingestion lives in report/.
  3. Exhaustiveness: Event kinds are a closed enum with category
     predicates, never bare strings.

SEE ALSO:
  - time.go: Datetime parsing primitive and the expected working window
  - workingday.go, overtime.go, meals.go, debit.go: The rule evaluators
  - payroll.go, summary.go: Reconciliation and final aggregation
*/
package attendance

import "encoding/json"

// =============================================================================
// ATTENDANCE EVENT TYPE - Closed enumeration of export event kinds
// =============================================================================

// Type is an attendance event kind, spelled exactly as in the export.
// The Indonesian labels come from the upstream GPS attendance system:
// masuk/pulang = clock in/out, lembur = overtime, istirahat = break,
// kerja di rumah = work from home. "A"-prefixed events come from the
// fixed office terminal, "C"-prefixed ones from the canteen gate.
type Type string

const (
	TypeCheckIn  Type = "Absensi Masuk"
	TypeCheckOut Type = "Absensi Pulang"

	TypeHomeStart Type = "Mulai Kerja di Rumah"
	TypeHomeEnd   Type = "Selesai Kerja di Rumah"

	TypeOvertimeStart Type = "Mulai Lembur"
	TypeOvertimeEnd   Type = "Selesai Lembur"

	TypeBreakStart Type = "Mulai Istirahat"
	TypeBreakEnd   Type = "Selesai Istirahat"

	TypeTerminalIn  Type = "A IN"
	TypeTerminalOut Type = "A OUT"

	TypeGateIn  Type = "C IN"
	TypeGateOut Type = "C OUT"
)

// IsCheckIn reports whether the event marks the start of a working day
// for the working-day and debit rules.
func (t Type) IsCheckIn() bool {
	switch t {
	case TypeCheckIn, TypeTerminalIn, TypeHomeStart:
		return true
	}
	return false
}

// IsCheckOut reports whether the event marks the end of a working day
// for the working-day and debit rules.
func (t Type) IsCheckOut() bool {
	switch t {
	case TypeCheckOut, TypeTerminalOut, TypeHomeEnd:
		return true
	}
	return false
}

// IsHome reports whether the event was recorded while working from home.
// Home events earn half the usual working-day credit.
func (t Type) IsHome() bool {
	return t == TypeHomeStart || t == TypeHomeEnd
}

// IsHighTrust reports whether the event came from the fixed office
// terminal. Terminal events are always counted as valid regardless of
// time: the device cannot be clocked from outside the building.
func (t Type) IsHighTrust() bool {
	return t == TypeTerminalIn || t == TypeTerminalOut
}

// =============================================================================
// TYPE SETS - Include-sets used to filter the export per rule
// =============================================================================

// TypeSet is a set of attendance event kinds.
type TypeSet map[Type]struct{}

// NewTypeSet builds a set from the given kinds.
func NewTypeSet(types ...Type) TypeSet {
	s := make(TypeSet, len(types))
	for _, t := range types {
		s[t] = struct{}{}
	}
	return s
}

// Contains reports set membership. The ingestion adapter calls this
// with unvalidated cell values, so unknown kinds simply test false.
func (s TypeSet) Contains(t Type) bool {
	_, ok := s[t]
	return ok
}

// WorkingDayTypes returns the include-set for the working-day and debit
// rules: office and home check-in/check-out plus terminal events.
func WorkingDayTypes() TypeSet {
	return NewTypeSet(
		TypeCheckIn, TypeCheckOut,
		TypeTerminalIn, TypeTerminalOut,
		TypeHomeStart, TypeHomeEnd,
	)
}

// OvertimeTypes returns the include-set for the overtime session matcher.
func OvertimeTypes() TypeSet {
	return NewTypeSet(TypeOvertimeStart, TypeOvertimeEnd)
}

// MealTypes returns the include-set for the meal entitlement evaluator:
// canteen gate events plus break markers.
func MealTypes() TypeSet {
	return NewTypeSet(TypeBreakStart, TypeBreakEnd, TypeGateIn, TypeGateOut)
}

// =============================================================================
// RAW RECORDS - Filtered export rows, still carrying raw timestamps
// =============================================================================

// RawRecord is one filtered export row. The timestamp stays a string
// here on purpose: rules differ on whether an unparseable timestamp is
// fatal or skippable, so each evaluator parses for itself.
type RawRecord struct {
	Type      Type
	Timestamp string
}

// RecordSet holds the filtered export grouped by employee. It preserves
// both the employee first-seen order and the per-employee row order of
// the source file, which the overtime pairing and first-occurrence rules
// depend on.
type RecordSet struct {
	order   []string
	records map[string][]RawRecord
}

// NewRecordSet returns an empty set.
func NewRecordSet() *RecordSet {
	return &RecordSet{records: make(map[string][]RawRecord)}
}

// Add appends a record to the employee's list, registering the employee
// on first sight.
func (s *RecordSet) Add(employee string, r RawRecord) {
	if _, seen := s.records[employee]; !seen {
		s.order = append(s.order, employee)
	}
	s.records[employee] = append(s.records[employee], r)
}

// Employees returns employee names in first-seen order.
func (s *RecordSet) Employees() []string {
	return s.order
}

// Records returns the employee's rows in file order.
func (s *RecordSet) Records(employee string) []RawRecord {
	return s.records[employee]
}

// Len returns the number of employees in the set.
func (s *RecordSet) Len() int { return len(s.order) }

// IsEmpty reports whether the set holds no records at all.
func (s *RecordSet) IsEmpty() bool {
	for _, recs := range s.records {
		if len(recs) > 0 {
			return false
		}
	}
	return true
}

// ToMap returns the plain employee -> rows mapping. Used by the debit
// entry point, whose output payload embeds the filtered report.
func (s *RecordSet) ToMap() map[string][]RawRecord {
	out := make(map[string][]RawRecord, len(s.records))
	for employee, recs := range s.records {
		out[employee] = recs
	}
	return out
}

// MarshalJSON reproduces the export row shape: a [type, timestamp] tuple.
func (r RawRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{string(r.Type), r.Timestamp})
}
