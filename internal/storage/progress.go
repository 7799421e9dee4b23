package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/meltforce/repsync/internal/models"
	"github.com/meltforce/repsync/internal/schedule"
)

// uniqueViolation is the Postgres error code for a unique constraint failure.
const uniqueViolation = "23505"

// ProgressByAssignment returns the progress row for an assignment, or
// schedule.ErrProgressNotFound when none exists yet.
func (db *DB) ProgressByAssignment(ctx context.Context, assignmentID uuid.UUID) (*models.ProgramProgress, error) {
	var p models.ProgramProgress
	err := db.Pool.QueryRow(ctx,
		`SELECT id, program_assignment_id, current_week_index, current_day_index, is_completed, updated_at
		 FROM program_progress
		 WHERE program_assignment_id = $1`,
		assignmentID).Scan(&p.ID, &p.ProgramAssignmentID, &p.CurrentWeekIndex,
		&p.CurrentDayIndex, &p.IsCompleted, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, schedule.ErrProgressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying progress: %w", err)
	}
	return &p, nil
}

// CreateProgress inserts the initial progress row (week 0, day 0, not
// completed) for an assignment. The unique constraint on
// program_assignment_id makes concurrent first resolutions safe: the loser
// gets schedule.ErrDuplicateProgress and re-fetches.
func (db *DB) CreateProgress(ctx context.Context, assignmentID uuid.UUID) (*models.ProgramProgress, error) {
	p := &models.ProgramProgress{ID: uuid.New(), ProgramAssignmentID: assignmentID}
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO program_progress (id, program_assignment_id, current_week_index, current_day_index, is_completed)
		 VALUES ($1, $2, 0, 0, FALSE)
		 RETURNING updated_at`,
		p.ID, p.ProgramAssignmentID).Scan(&p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, schedule.ErrDuplicateProgress
		}
		return nil, fmt.Errorf("inserting progress: %w", err)
	}
	return p, nil
}

// UpdateProgress persists new indices and completion state for an
// assignment's progress row.
func (db *DB) UpdateProgress(ctx context.Context, assignmentID uuid.UUID, weekIndex, dayIndex int, completed bool) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE program_progress
		 SET current_week_index = $2, current_day_index = $3, is_completed = $4, updated_at = NOW()
		 WHERE program_assignment_id = $1`,
		assignmentID, weekIndex, dayIndex, completed)
	if err != nil {
		return fmt.Errorf("updating progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrProgressNotFound
	}
	return nil
}
