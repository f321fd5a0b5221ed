package report_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/report"
)

// writeExport builds a minimal XLSX export in a temp dir.
func writeExport(t *testing.T, header []interface{}, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func defaultHeader() []interface{} {
	return []interface{}{"Nama Karyawan", "Tanggal Absensi", "Tipe Absensi"}
}

func TestLoad_FiltersAndPreservesOrder(t *testing.T) {
	// GIVEN: An export with two employees, an excluded type, and a blank
	//        name row
	// WHEN: Loading with the working-day include-set
	// THEN: Only matching rows survive, in file order, employees in
	//       first-seen order

	path := writeExport(t, defaultHeader(), [][]interface{}{
		{"Alice", "2025-12-01 08:00:00", "Absensi Masuk"},
		{"Bob", "2025-12-01 08:05:00", "Absensi Masuk"},
		{"Alice", "2025-12-01 12:00:00", "Mulai Istirahat"}, // excluded type
		{"", "2025-12-01 08:10:00", "Absensi Masuk"},        // blank name
		{"Alice", "2025-12-01 17:00:00", "Absensi Pulang"},
	})

	set, err := report.Load(path, attendance.WorkingDayTypes(), report.Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Alice", "Bob"}, set.Employees())
	require.Len(t, set.Records("Alice"), 2)
	assert.Equal(t, attendance.TypeCheckIn, set.Records("Alice")[0].Type)
	assert.Equal(t, attendance.TypeCheckOut, set.Records("Alice")[1].Type)
}

func TestLoad_MissingColumn_Error(t *testing.T) {
	// GIVEN: An export without the Tipe Absensi column
	// WHEN: Loading
	// THEN: A MissingColumnsError naming the absent header

	path := writeExport(t,
		[]interface{}{"Nama Karyawan", "Tanggal Absensi"},
		[][]interface{}{{"Alice", "2025-12-01 08:00:00"}},
	)

	_, err := report.Load(path, attendance.WorkingDayTypes(), report.Options{})
	require.Error(t, err)

	assert.True(t, errors.Is(err, report.ErrMissingColumns))
	var colErr *report.MissingColumnsError
	require.ErrorAs(t, err, &colErr)
	assert.Equal(t, []string{"Tipe Absensi"}, colErr.Missing)
}

func TestLoad_StartDateCutoff(t *testing.T) {
	// GIVEN: Rows on Nov 30 and Dec 1
	// WHEN: Loading with a Dec 1 cutoff
	// THEN: The November row is dropped

	path := writeExport(t, defaultHeader(), [][]interface{}{
		{"Alice", "2025-11-30 08:00:00", "Absensi Masuk"},
		{"Alice", "2025-12-01 08:00:00", "Absensi Masuk"},
	})

	cutoff := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	set, err := report.Load(path, attendance.WorkingDayTypes(), report.Options{StartDate: &cutoff})
	require.NoError(t, err)

	require.Len(t, set.Records("Alice"), 1)
	assert.Equal(t, "2025-12-01 08:00:00", set.Records("Alice")[0].Timestamp)
}

func TestLoad_NormalizesISOSeparator(t *testing.T) {
	// GIVEN: A timestamp written with the T separator
	// WHEN: Loading
	// THEN: The stored raw string uses the export's space form

	path := writeExport(t, defaultHeader(), [][]interface{}{
		{"Alice", "2025-12-01T08:00:00", "Absensi Masuk"},
	})

	set, err := report.Load(path, attendance.WorkingDayTypes(), report.Options{})
	require.NoError(t, err)

	require.Len(t, set.Records("Alice"), 1)
	assert.Equal(t, "2025-12-01 08:00:00", set.Records("Alice")[0].Timestamp)
}

func TestLoad_UnparseableTimestampRow_Skipped(t *testing.T) {
	// GIVEN: A row whose timestamp cell is garbage
	// WHEN: Loading
	// THEN: The row is skipped, the rest loads

	path := writeExport(t, defaultHeader(), [][]interface{}{
		{"Alice", "soon", "Absensi Masuk"},
		{"Alice", "2025-12-01 08:00:00", "Absensi Masuk"},
	})

	set, err := report.Load(path, attendance.WorkingDayTypes(), report.Options{})
	require.NoError(t, err)

	assert.Len(t, set.Records("Alice"), 1)
}

func TestParseStartDate(t *testing.T) {
	ts, err := report.ParseStartDate("2025-12-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), ts)

	ts, err = report.ParseStartDate("2025-12-01 06:30:00")
	require.NoError(t, err)
	assert.Equal(t, 6, ts.Hour())

	_, err = report.ParseStartDate("December 1st")
	assert.Error(t, err)
}
