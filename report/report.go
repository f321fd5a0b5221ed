/*
Package report reads the GPS attendance spreadsheet export.

PURPOSE:
  The only I/O boundary of the engine. Load opens the XLSX export,
  checks the header row, and filters rows down to an ordered
  attendance.RecordSet: employee -> [(type, timestamp)] in file order.

FILTERING:
  - rows with a blank employee name are dropped
  - rows whose attendance type is outside the include-set are dropped
  - rows whose timestamp cannot be parsed are dropped (logged)
  - rows before the optional start cutoff are dropped

  Timestamps are kept as strings in the record set; the rules parse them
  again under their own strict/tolerant policies.
*/
package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/warp/attendance-engine/attendance"
)

// Required export columns, spelled as the upstream system writes them.
const (
	ColumnEmployee  = "Nama Karyawan"
	ColumnTimestamp = "Tanggal Absensi"
	ColumnType      = "Tipe Absensi"
)

// ErrMissingColumns is returned when the header row lacks a required column.
var ErrMissingColumns = errors.New("missing required columns")

// MissingColumnsError names the absent headers.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing columns: %s", strings.Join(e.Missing, ", "))
}

func (e *MissingColumnsError) Unwrap() error { return ErrMissingColumns }

// Options tune how the export is read.
type Options struct {
	Sheet     string     // sheet name; empty picks the first sheet
	StartDate *time.Time // drop rows strictly before this instant
	Logger    *zap.Logger
}

// Load reads the export at path and returns the filtered record set.
func Load(path string, include attendance.TypeSet, opts Options) (*attendance.RecordSet, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open export %s: %w", path, err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("unable to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, &MissingColumnsError{Missing: []string{ColumnEmployee, ColumnTimestamp, ColumnType}}
	}

	cols, err := columnIndexes(rows[0])
	if err != nil {
		return nil, err
	}

	set := attendance.NewRecordSet()
	for i, row := range rows[1:] {
		name := strings.TrimSpace(cell(row, cols[ColumnEmployee]))
		if name == "" {
			continue
		}

		kind := attendance.Type(strings.TrimSpace(cell(row, cols[ColumnType])))
		if !include.Contains(kind) {
			continue
		}

		raw := normalizeTimestamp(cell(row, cols[ColumnTimestamp]))
		parsed, ok := parseRowTimestamp(raw)
		if !ok {
			logger.Debug("skipping row with unparseable timestamp",
				zap.Int("row", i+2), zap.String("employee", name), zap.String("timestamp", raw))
			continue
		}
		if opts.StartDate != nil && parsed.Before(*opts.StartDate) {
			continue
		}

		set.Add(name, attendance.RawRecord{Type: kind, Timestamp: raw})
	}

	return set, nil
}

// ParseStartDate parses a --date cutoff: YYYY-MM-DD or a full timestamp.
func ParseStartDate(value string) (time.Time, error) {
	text := strings.TrimSpace(value)
	if ts, ok := attendance.ParseDateTime(text); ok {
		return ts, nil
	}
	if ts, err := time.Parse("2006-01-02", text); err == nil {
		return ts, nil
	}
	return time.Time{}, fmt.Errorf("start date must be YYYY-MM-DD or YYYY-MM-DD HH:MM[:SS], got %q", value)
}

func columnIndexes(header []string) (map[string]int, error) {
	indexes := make(map[string]int, 3)
	for i, h := range header {
		indexes[strings.TrimSpace(h)] = i
	}

	var missing []string
	for _, required := range []string{ColumnEmployee, ColumnTimestamp, ColumnType} {
		if _, ok := indexes[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}
	return indexes, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

// normalizeTimestamp rewrites the ISO T separator to the export's usual
// space form, as older exports mix both.
func normalizeTimestamp(value string) string {
	text := strings.TrimSpace(value)
	if strings.Contains(text, "T") {
		return strings.Replace(text, "T", " ", 1)
	}
	return text
}

// parseRowTimestamp accepts full timestamps and date-only cells; the
// latter pass the cutoff filter while keeping their raw string form.
func parseRowTimestamp(value string) (time.Time, bool) {
	if ts, ok := attendance.ParseDateTime(value); ok {
		return ts, true
	}
	if ts, err := time.Parse("2006-01-02", strings.TrimSpace(value)); err == nil {
		return ts, true
	}
	return time.Time{}, false
}
