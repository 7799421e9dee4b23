package schedule

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/meltforce/repsync/internal/models"
)

// ErrProgressNotFound is returned by Store.ProgressByAssignment when no
// progress row exists yet for an assignment.
var ErrProgressNotFound = errors.New("program progress not found")

// ErrDuplicateProgress is returned by Store.CreateProgress when a progress
// row for the assignment already exists. The resolver treats it as "someone
// else just created it" and re-fetches.
var ErrDuplicateProgress = errors.New("program progress already exists")

// Store is the persistence contract the resolver depends on. *storage.DB
// satisfies it in production; tests substitute an in-memory fake.
type Store interface {
	// ActiveAssignments returns the client's assignments with status
	// "active", newest first by creation time.
	ActiveAssignments(ctx context.Context, clientID uuid.UUID) ([]models.ProgramAssignment, error)

	// ProgressByAssignment returns the progress row for an assignment, or
	// ErrProgressNotFound.
	ProgressByAssignment(ctx context.Context, assignmentID uuid.UUID) (*models.ProgramProgress, error)

	// CreateProgress inserts a fresh progress row at week 0, day 0, not
	// completed. Returns ErrDuplicateProgress if one already exists.
	CreateProgress(ctx context.Context, assignmentID uuid.UUID) (*models.ProgramProgress, error)

	// ScheduleRows returns every schedule row belonging to a program.
	ScheduleRows(ctx context.Context, programID uuid.UUID) ([]models.ScheduleRow, error)

	// UpdateProgress persists new indices and completion state for an
	// assignment's progress row.
	UpdateProgress(ctx context.Context, assignmentID uuid.UUID, weekIndex, dayIndex int, completed bool) error
}
