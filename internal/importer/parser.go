package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Entry is one training day parsed from a program spreadsheet.
type Entry struct {
	WeekNumber  int
	DayOfWeek   int
	WorkoutName string
}

// ParseWorkbook reads a program spreadsheet: the first sheet, a header row of
// Week | Day | Workout, then one row per training day. Week and day numbers
// may be sparse but must be positive, and no (week, day) pair may repeat.
func ParseWorkbook(r io.Reader) ([]Entry, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	if err := checkHeader(rows[0]); err != nil {
		return nil, err
	}

	seen := make(map[[2]int]bool)
	var entries []Entry
	for i, row := range rows[1:] {
		line := i + 2 // 1-based, after header
		if isBlank(row) {
			continue
		}
		if len(row) < 3 {
			return nil, fmt.Errorf("row %d: want 3 columns (week, day, workout), got %d", line, len(row))
		}

		week, err := positiveInt(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: week: %w", line, err)
		}
		day, err := positiveInt(row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: day: %w", line, err)
		}
		workout := strings.TrimSpace(row[2])
		if workout == "" {
			return nil, fmt.Errorf("row %d: workout name is empty", line)
		}

		key := [2]int{week, day}
		if seen[key] {
			return nil, fmt.Errorf("row %d: week %d day %d is scheduled twice", line, week, day)
		}
		seen[key] = true

		entries = append(entries, Entry{WeekNumber: week, DayOfWeek: day, WorkoutName: workout})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("workbook has no training days")
	}
	return entries, nil
}

func checkHeader(header []string) error {
	want := []string{"week", "day", "workout"}
	if len(header) < len(want) {
		return fmt.Errorf("header row: want columns Week, Day, Workout")
	}
	for i, name := range want {
		if !strings.EqualFold(strings.TrimSpace(header[i]), name) {
			return fmt.Errorf("header row: column %d is %q, want %q", i+1, header[i], name)
		}
	}
	return nil
}

func positiveInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if n < 1 {
		return 0, fmt.Errorf("%d is not positive", n)
	}
	return n, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
