package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/attendance-engine/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "attendance.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// GIVEN: No config file
	// WHEN: Loading from a directory without one
	// THEN: The payroll contract defaults apply

	cfg, err := config.Load(writeConfig(t, "{}"))
	require.NoError(t, err)

	assert.Equal(t, "08:00", cfg.Rules.WorkdayStart)
	assert.Equal(t, "17:00", cfg.Rules.WorkdayEnd)
	assert.InDelta(t, 31.0, cfg.Rules.ValidityToleranceMinutes, 1e-9)
	assert.InDelta(t, 16.0, cfg.Rules.LateGraceMinutes, 1e-9)
	assert.EqualValues(t, 15000, cfg.Rules.OvertimeRatePerHour)
	assert.InDelta(t, 8.0, cfg.Rules.MinimumOvertimeHours, 1e-9)
	assert.Equal(t, "09:01", cfg.Rules.BreakfastCutoff)
	assert.Equal(t, "16:00", cfg.Rules.DinnerEarliest)
	assert.InDelta(t, 3660.0, cfg.Rules.LunchMaxSeconds, 1e-9)
	assert.Equal(t, "outputs", cfg.Output.Folder)
}

func TestLoad_OverridesFromFile(t *testing.T) {
	// GIVEN: A config file with a custom window and rate
	// WHEN: Loading
	// THEN: Only those values change

	cfg, err := config.Load(writeConfig(t, `
rules:
  workday_start: "09:00"
  overtime_rate_per_hour: 20000
`))
	require.NoError(t, err)

	assert.Equal(t, "09:00", cfg.Rules.WorkdayStart)
	assert.EqualValues(t, 20000, cfg.Rules.OvertimeRatePerHour)
	assert.Equal(t, "17:00", cfg.Rules.WorkdayEnd)

	window := cfg.Window()
	assert.Equal(t, 9, window.Start.Hour)
	assert.Equal(t, 17, window.End.Hour)
}

func TestLoad_InvalidWindow_Rejected(t *testing.T) {
	// GIVEN: A malformed workday_start
	// WHEN: Loading
	// THEN: Validation fails

	_, err := config.Load(writeConfig(t, `
rules:
  workday_start: "eight"
`))
	assert.Error(t, err)
}

func TestLoad_NonPositiveRate_Rejected(t *testing.T) {
	_, err := config.Load(writeConfig(t, `
rules:
  overtime_rate_per_hour: 0
`))
	assert.Error(t, err)
}
