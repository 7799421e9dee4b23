package schedule

import (
	"context"

	"github.com/google/uuid"
)

// CompleteCurrentDay marks the client's current training day as done and
// moves the progress pointer to the next scheduled day: the next day within
// the week, else the first day of the next week, else program completion.
//
// It resolves first and only writes when the resolution is active; any other
// status is returned as-is so callers see the same diagnostics as
// CurrentWorkout. On success the returned info reflects the position that was
// just completed, with Completed set when the program ended.
func (r *Resolver) CompleteCurrentDay(ctx context.Context, clientID uuid.UUID) CurrentWorkoutInfo {
	info := r.CurrentWorkout(ctx, clientID)
	if info.Status != StatusActive {
		return info
	}

	rows, err := r.store.ScheduleRows(ctx, *info.ProgramID)
	if err != nil {
		r.log.Error("fetching schedule rows", "program_id", *info.ProgramID, "error", err)
		info.Status = StatusNoSchedule
		info.Message = "could not load program schedule"
		return info
	}
	structure := BuildStructure(rows)

	nextWeek, nextDay := info.WeekIndex, info.DayIndex+1
	if _, ok := structure.RowAt(nextWeek, nextDay); !ok {
		nextWeek, nextDay = info.WeekIndex+1, 0
	}

	_, hasNext := structure.RowAt(nextWeek, nextDay)
	completed := !hasNext
	if completed {
		// Keep the last valid position so the pointer never dangles.
		nextWeek, nextDay = info.WeekIndex, info.DayIndex
	}

	if err := r.store.UpdateProgress(ctx, *info.AssignmentID, nextWeek, nextDay, completed); err != nil {
		r.log.Error("updating progress", "assignment_id", *info.AssignmentID, "error", err)
		info.Status = StatusNoProgram
		info.Message = "could not save progress"
		return info
	}

	info.Completed = completed
	if completed {
		info.Status = StatusCompleted
	}
	return info
}
