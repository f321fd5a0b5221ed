package attendance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/warp/attendance-engine/attendance"
)

// =============================================================================
// SESSION PAIRING
// =============================================================================

func TestOvertime_EndThenStart_PairsIntoSession(t *testing.T) {
	// GIVEN: End at 23:00, then start at 18:00 the same date (end-first
	//        file order, as the export records sessions once over)
	// WHEN: Matching
	// THEN: One valid session; 5h of work is floored to the 8h minimum

	m := attendance.NewOvertimeMatcher(nil)
	set := newSet("Alice",
		rec(attendance.TypeOvertimeEnd, "2025-12-01 23:00:00"),
		rec(attendance.TypeOvertimeStart, "2025-12-01 18:00:00"),
	)

	result := m.Evaluate(set)

	require.Len(t, result.Sessions["Alice"], 1)
	session := result.Sessions["Alice"][0]
	assert.True(t, session.Valid)
	assert.InDelta(t, 8.0, session.Hours, 1e-9)
	assert.InDelta(t, 8.0, result.Totals["Alice"], 1e-9)
}

func TestOvertime_LongSession_KeepsComputedDuration(t *testing.T) {
	// GIVEN: A 10 hour session on one date
	// WHEN: Matching
	// THEN: The computed duration wins over the 8h floor

	m := attendance.NewOvertimeMatcher(nil)
	set := newSet("Bob",
		rec(attendance.TypeOvertimeEnd, "2025-12-05 23:30:00"),
		rec(attendance.TypeOvertimeStart, "2025-12-05 13:30:00"),
	)

	result := m.Evaluate(set)

	require.Len(t, result.Sessions["Bob"], 1)
	assert.InDelta(t, 10.0, result.Sessions["Bob"][0].Hours, 1e-9)
	assert.InDelta(t, 10.0, result.Totals["Bob"], 1e-9)
}

func TestOvertime_CrossDateSession_ExcludedFromTotal(t *testing.T) {
	// GIVEN: End on Dec 2 pairing with a start on Dec 1 (overnight)
	// WHEN: Matching
	// THEN: The session appears in the breakdown but not in the total

	m := attendance.NewOvertimeMatcher(nil)
	set := newSet("Cleo",
		rec(attendance.TypeOvertimeEnd, "2025-12-02 07:00:00"),
		rec(attendance.TypeOvertimeStart, "2025-12-01 23:00:00"),
	)

	result := m.Evaluate(set)

	require.Len(t, result.Sessions["Cleo"], 1)
	assert.False(t, result.Sessions["Cleo"][0].Valid)
	assert.InDelta(t, 8.0, result.Sessions["Cleo"][0].Hours, 1e-9)
	assert.InDelta(t, 0.0, result.Totals["Cleo"], 1e-9)
}

func TestOvertime_MultipleSessions_ValidOnesSum(t *testing.T) {
	// GIVEN: Two valid sessions and one cross-date session
	// WHEN: Matching
	// THEN: Only the valid sessions contribute to the total

	m := attendance.NewOvertimeMatcher(nil)
	set := newSet("Dana",
		rec(attendance.TypeOvertimeEnd, "2025-12-01 22:00:00"),
		rec(attendance.TypeOvertimeStart, "2025-12-01 18:00:00"),
		rec(attendance.TypeOvertimeEnd, "2025-12-02 23:00:00"),
		rec(attendance.TypeOvertimeStart, "2025-12-02 13:00:00"),
		rec(attendance.TypeOvertimeEnd, "2025-12-04 06:00:00"),
		rec(attendance.TypeOvertimeStart, "2025-12-03 22:00:00"),
	)

	result := m.Evaluate(set)

	require.Len(t, result.Sessions["Dana"], 3)
	assert.InDelta(t, 18.0, result.Totals["Dana"], 1e-9) // 8 (floored) + 10
}

// =============================================================================
// ORPHANED EVENTS
// =============================================================================

func TestOvertime_OrphanedStart_DroppedWithWarning(t *testing.T) {
	// GIVEN: A start event with no preceding end
	// WHEN: Matching
	// THEN: No session is emitted and a warning is logged

	core, logs := observer.New(zap.WarnLevel)
	m := attendance.NewOvertimeMatcher(zap.New(core))
	set := newSet("Eko", rec(attendance.TypeOvertimeStart, "2025-12-01 18:00:00"))

	result := m.Evaluate(set)

	assert.Empty(t, result.Sessions["Eko"])
	assert.InDelta(t, 0.0, result.Totals["Eko"], 1e-9)
	assert.Equal(t, 1, logs.Len())
}

func TestOvertime_UnconsumedEnd_OverwrittenByNewerEnd(t *testing.T) {
	// GIVEN: Two end events in a row, then a start
	// WHEN: Matching
	// THEN: The newer end wins the pairing; the older one is dropped

	m := attendance.NewOvertimeMatcher(nil)
	set := newSet("Fajar",
		rec(attendance.TypeOvertimeEnd, "2025-12-01 21:00:00"),
		rec(attendance.TypeOvertimeEnd, "2025-12-01 23:00:00"),
		rec(attendance.TypeOvertimeStart, "2025-12-01 14:00:00"),
	)

	result := m.Evaluate(set)

	require.Len(t, result.Sessions["Fajar"], 1)
	assert.Equal(t, "2025-12-01 23:00:00", result.Sessions["Fajar"][0].End)
	assert.InDelta(t, 9.0, result.Sessions["Fajar"][0].Hours, 1e-9)
}

func TestOvertime_UnparseableRow_Skipped(t *testing.T) {
	// GIVEN: A corrupt end row before a good pair
	// WHEN: Matching
	// THEN: The corrupt row is skipped silently; the good pair survives

	m := attendance.NewOvertimeMatcher(nil)
	set := newSet("Gita",
		rec(attendance.TypeOvertimeEnd, "garbage"),
		rec(attendance.TypeOvertimeEnd, "2025-12-01 22:00:00"),
		rec(attendance.TypeOvertimeStart, "2025-12-01 18:00:00"),
	)

	result := m.Evaluate(set)

	require.Len(t, result.Sessions["Gita"], 1)
	assert.True(t, result.Sessions["Gita"][0].Valid)
}
