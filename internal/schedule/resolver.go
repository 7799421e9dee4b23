package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/meltforce/repsync/internal/models"
)

// Status classifies the outcome of a current-workout resolution.
type Status string

const (
	// StatusActive means a concrete workout was resolved.
	StatusActive Status = "active"
	// StatusCompleted means the client finished the program.
	StatusCompleted Status = "completed"
	// StatusNoProgram means the client has no eligible assignment, or
	// progress could not be read or created.
	StatusNoProgram Status = "no_program"
	// StatusNoSchedule means an assignment exists but the program has no
	// schedule rows, or the rows could not be fetched.
	StatusNoSchedule Status = "no_schedule"
	// StatusInvalidState means the stored progress indices point outside
	// the current schedule shape, e.g. after a coach shrank the program.
	StatusInvalidState Status = "invalid_state"
)

// CurrentWorkoutInfo is the complete result of a resolution. Which fields are
// populated depends on Status; Status itself is always set.
type CurrentWorkoutInfo struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`

	AssignmentID *uuid.UUID `json:"assignment_id,omitempty"`
	ProgramID    *uuid.UUID `json:"program_id,omitempty"`

	TemplateID    *uuid.UUID `json:"template_id,omitempty"`
	ScheduleRowID *uuid.UUID `json:"schedule_row_id,omitempty"`

	WeekIndex int  `json:"week_index"`
	DayIndex  int  `json:"day_index"`
	Completed bool `json:"is_completed"`

	// Labels and counts for display. ActualWeekNumber/ActualDayOfWeek carry
	// the raw scheduled values for callers that need ground truth instead
	// of positions.
	WeekLabel         string `json:"week_label,omitempty"`
	DayLabel          string `json:"day_label,omitempty"`
	PositionLabel     string `json:"position_label,omitempty"`
	ActualWeekNumber  int    `json:"actual_week_number,omitempty"`
	ActualDayOfWeek   int    `json:"actual_day_of_week,omitempty"`
	TotalWeeks        int    `json:"total_weeks,omitempty"`
	DaysInCurrentWeek int    `json:"days_in_current_week,omitempty"`
}

// Resolver maps a client's stored progress position onto a concrete schedule
// row. It is stateless; every call recomputes the schedule structure from the
// store. Store failures are absorbed into the returned status, never
// propagated, so CurrentWorkout is total over any client ID.
type Resolver struct {
	store Store
	log   *slog.Logger
}

// NewResolver creates a Resolver over the given store.
func NewResolver(store Store, log *slog.Logger) *Resolver {
	return &Resolver{store: store, log: log}
}

// CurrentWorkout resolves which workout applies next for a client.
//
// The steps run strictly in order: fetch the active assignment, fetch or
// lazily create progress, short-circuit on completion, fetch schedule rows,
// then map the stored indices onto the derived structure. The only write it
// ever performs is the one-time creation of an initial progress row.
func (r *Resolver) CurrentWorkout(ctx context.Context, clientID uuid.UUID) CurrentWorkoutInfo {
	assignments, err := r.store.ActiveAssignments(ctx, clientID)
	if err != nil {
		r.log.Error("fetching active assignments", "client_id", clientID, "error", err)
		return CurrentWorkoutInfo{Status: StatusNoProgram, Message: "could not load program assignment"}
	}
	if len(assignments) == 0 {
		return CurrentWorkoutInfo{Status: StatusNoProgram, Message: "No active program assignment"}
	}
	if len(assignments) > 1 {
		r.log.Warn("multiple active assignments, using most recent",
			"client_id", clientID, "count", len(assignments))
	}
	assignment := assignments[0]

	info := CurrentWorkoutInfo{
		AssignmentID: &assignment.ID,
		ProgramID:    &assignment.ProgramID,
	}

	progress, err := r.store.ProgressByAssignment(ctx, assignment.ID)
	if errors.Is(err, ErrProgressNotFound) {
		progress, err = r.store.CreateProgress(ctx, assignment.ID)
		if errors.Is(err, ErrDuplicateProgress) {
			// Lost a race with a concurrent first resolution; the row
			// exists now, so read it.
			progress, err = r.store.ProgressByAssignment(ctx, assignment.ID)
		}
		if err != nil {
			r.log.Error("initializing progress", "assignment_id", assignment.ID, "error", err)
			info.Status = StatusNoProgram
			info.Message = "could not initialize program progress"
			return info
		}
	} else if err != nil {
		r.log.Error("fetching progress", "assignment_id", assignment.ID, "error", err)
		info.Status = StatusNoProgram
		info.Message = "could not load program progress"
		return info
	}

	info.WeekIndex = progress.CurrentWeekIndex
	info.DayIndex = progress.CurrentDayIndex

	if progress.IsCompleted {
		info.Status = StatusCompleted
		info.Completed = true
		return info
	}

	rows, err := r.store.ScheduleRows(ctx, assignment.ProgramID)
	if err != nil {
		r.log.Error("fetching schedule rows", "program_id", assignment.ProgramID, "error", err)
		info.Status = StatusNoSchedule
		info.Message = "could not load program schedule"
		return info
	}
	if len(rows) == 0 {
		info.Status = StatusNoSchedule
		info.Message = "No training days configured"
		return info
	}

	structure := BuildStructure(rows)
	row, ok := structure.RowAt(progress.CurrentWeekIndex, progress.CurrentDayIndex)
	if !ok {
		info.Status = StatusInvalidState
		info.TotalWeeks = structure.TotalWeeks()
		info.Message = fmt.Sprintf(
			"progress position (week %d, day %d) is outside the current schedule of %d weeks",
			progress.CurrentWeekIndex, progress.CurrentDayIndex, structure.TotalWeeks())
		return info
	}

	days := structure.DaysByWeek[row.WeekNumber]

	info.Status = StatusActive
	info.TemplateID = &row.TemplateID
	info.ScheduleRowID = &row.ID
	info.ActualWeekNumber = row.WeekNumber
	info.ActualDayOfWeek = row.DayOfWeek
	info.TotalWeeks = structure.TotalWeeks()
	info.DaysInCurrentWeek = len(days)
	info.WeekLabel = fmt.Sprintf("Week %d", row.WeekNumber)
	info.DayLabel = fmt.Sprintf("Day %d", dayOrdinal(days, row.ID))
	info.PositionLabel = info.WeekLabel + " • " + info.DayLabel
	return info
}

// dayOrdinal is the 1-based position of a row within its week group, matched
// by ID so that sparse day_of_week values ({1, 3} reads as Day 1, Day 2) do
// not leak into the label.
func dayOrdinal(days []models.ScheduleRow, id uuid.UUID) int {
	for i, d := range days {
		if d.ID == id {
			return i + 1
		}
	}
	return 0
}
