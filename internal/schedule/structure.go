package schedule

import (
	"sort"

	"github.com/meltforce/repsync/internal/models"
)

// Structure is the derived shape of a program schedule: the distinct week
// numbers actually present, ascending, and each week's rows sorted by day.
// It is recomputed from the raw rows on every resolution and never persisted.
// Progress indices address positions in this structure, so a schedule with
// weeks {1, 3, 5} has week index 1 pointing at week number 3.
type Structure struct {
	WeekNumbers []int
	DaysByWeek  map[int][]models.ScheduleRow
}

// BuildStructure groups schedule rows by week number and sorts each group by
// day of week. Input order is irrelevant; the output is deterministic.
func BuildStructure(rows []models.ScheduleRow) Structure {
	daysByWeek := make(map[int][]models.ScheduleRow)
	for _, row := range rows {
		daysByWeek[row.WeekNumber] = append(daysByWeek[row.WeekNumber], row)
	}

	weekNumbers := make([]int, 0, len(daysByWeek))
	for week := range daysByWeek {
		weekNumbers = append(weekNumbers, week)
	}
	sort.Ints(weekNumbers)

	for _, days := range daysByWeek {
		sort.SliceStable(days, func(i, j int) bool {
			return days[i].DayOfWeek < days[j].DayOfWeek
		})
	}

	return Structure{WeekNumbers: weekNumbers, DaysByWeek: daysByWeek}
}

// TotalWeeks returns the number of distinct scheduled weeks.
func (s Structure) TotalWeeks() int {
	return len(s.WeekNumbers)
}

// RowAt returns the schedule row addressed by the given zero-based indices.
// Indices come from stored progress and are not trusted: anything negative or
// past either bound returns ok=false rather than panicking.
func (s Structure) RowAt(weekIndex, dayIndex int) (models.ScheduleRow, bool) {
	if weekIndex < 0 || weekIndex >= len(s.WeekNumbers) {
		return models.ScheduleRow{}, false
	}
	days := s.DaysByWeek[s.WeekNumbers[weekIndex]]
	if dayIndex < 0 || dayIndex >= len(days) {
		return models.ScheduleRow{}, false
	}
	return days[dayIndex], true
}
