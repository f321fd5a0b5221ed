/*
overtime.go - Overtime session pairing

PURPOSE:
  Pairs overtime events into sessions and totals the hours of valid ones.

PAIRING ORDER:
  The export records overnight overtime end-first: a "Selesai Lembur"
  (overtime end) row precedes the "Mulai Lembur" (overtime start) row it
  belongs to, because the session is logged once it is over. The matcher
  therefore caches the most recent end event and closes a session when
  the next start event arrives.

  A session is valid only when both events fall on the same calendar
  date; invalid sessions stay in the breakdown but are excluded from the
  per-employee total. Orphaned events are dropped from the results, with
  a warning so start-before-end feeds are visible in the logs.

SESSION LENGTH:
  hours = max(end - start, minimum). The 8 hour minimum is the contract
  floor for a logged overtime session.
*/
package attendance

import (
	"time"

	"go.uber.org/zap"
)

// =============================================================================
// RESULT SHAPES
// =============================================================================

// OvertimeSession is one matched end/start pair. The mulai/selesai
// fields carry the raw export timestamps.
type OvertimeSession struct {
	Start string  `json:"mulai"`
	End   string  `json:"selesai"`
	Hours float64 `json:"hours"`
	Valid bool    `json:"isValid"`
}

// OvertimeResult holds per-employee sessions and valid-hour totals.
type OvertimeResult struct {
	Sessions map[string][]OvertimeSession `json:"overtime_sessions"`
	Totals   map[string]float64           `json:"total_overtime_hours"`
}

// =============================================================================
// MATCHER
// =============================================================================

// DefaultMinimumSessionHours is the contract floor for one overtime session.
const DefaultMinimumSessionHours = 8.0

// OvertimeMatcher pairs overtime end/start events into sessions.
type OvertimeMatcher struct {
	MinimumHours float64
	Logger       *zap.Logger
}

// NewOvertimeMatcher returns a matcher with the standard session floor.
func NewOvertimeMatcher(logger *zap.Logger) *OvertimeMatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OvertimeMatcher{MinimumHours: DefaultMinimumSessionHours, Logger: logger}
}

type cachedEnd struct {
	ts  time.Time
	raw string
}

// Evaluate scans each employee's overtime events in file order. It is
// tolerant: unparseable timestamps and orphaned events are skipped.
func (m *OvertimeMatcher) Evaluate(set *RecordSet) *OvertimeResult {
	result := &OvertimeResult{
		Sessions: make(map[string][]OvertimeSession),
		Totals:   make(map[string]float64),
	}

	for _, employee := range set.Employees() {
		sessions := []OvertimeSession{}
		var pending *cachedEnd

		for _, rec := range set.Records(employee) {
			if !OvertimeTypes().Contains(rec.Type) {
				continue
			}
			ts, ok := ParseDateTime(rec.Timestamp)
			if !ok {
				continue
			}

			switch rec.Type {
			case TypeOvertimeEnd:
				if pending != nil {
					m.Logger.Warn("overtime end overwrites an unmatched earlier end",
						zap.String("employee", employee),
						zap.String("dropped", pending.raw),
						zap.String("kept", rec.Timestamp))
				}
				pending = &cachedEnd{ts: ts, raw: rec.Timestamp}

			case TypeOvertimeStart:
				if pending == nil {
					m.Logger.Warn("overtime start without a preceding end, dropping",
						zap.String("employee", employee),
						zap.String("timestamp", rec.Timestamp))
					continue
				}
				sessions = append(sessions, OvertimeSession{
					Start: rec.Timestamp,
					End:   pending.raw,
					Hours: max(pending.ts.Sub(ts).Hours(), m.MinimumHours),
					Valid: SameDate(ts, pending.ts),
				})
				pending = nil
			}
		}

		if pending != nil {
			m.Logger.Warn("overtime end never matched by a start, dropping",
				zap.String("employee", employee),
				zap.String("timestamp", pending.raw))
		}

		total := 0.0
		for _, s := range sessions {
			if s.Valid {
				total += s.Hours
			}
		}
		result.Sessions[employee] = sessions
		result.Totals[employee] = total
	}

	return result
}
