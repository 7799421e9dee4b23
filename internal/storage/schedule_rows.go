package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/meltforce/repsync/internal/models"
)

// InsertScheduleRow adds a training day to a program. Returns true if
// inserted, false when the (program, week, day) slot is already taken.
func (db *DB) InsertScheduleRow(ctx context.Context, row models.ScheduleRow) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO program_schedule_rows (id, program_id, week_number, day_of_week, template_id)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (program_id, week_number, day_of_week) DO NOTHING`,
		row.ID, row.ProgramID, row.WeekNumber, row.DayOfWeek, row.TemplateID)
	if err != nil {
		return false, fmt.Errorf("inserting schedule row: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ScheduleRows returns every schedule row belonging to a program. Ordering is
// left to the caller; the resolver derives its own structure.
func (db *DB) ScheduleRows(ctx context.Context, programID uuid.UUID) ([]models.ScheduleRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, program_id, week_number, day_of_week, template_id
		 FROM program_schedule_rows
		 WHERE program_id = $1`,
		programID)
	if err != nil {
		return nil, fmt.Errorf("querying schedule rows: %w", err)
	}
	defer rows.Close()

	var result []models.ScheduleRow
	for rows.Next() {
		var r models.ScheduleRow
		if err := rows.Scan(&r.ID, &r.ProgramID, &r.WeekNumber, &r.DayOfWeek, &r.TemplateID); err != nil {
			return nil, fmt.Errorf("scanning schedule row: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// DeleteScheduleRow removes a training day from a program.
func (db *DB) DeleteScheduleRow(ctx context.Context, id uuid.UUID) error {
	if _, err := db.Pool.Exec(ctx,
		`DELETE FROM program_schedule_rows WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting schedule row: %w", err)
	}
	return nil
}
