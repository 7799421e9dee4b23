package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/meltforce/repsync/internal/models"
)

// CreateAssignment binds a program to a client with status "active".
func (db *DB) CreateAssignment(ctx context.Context, programID, clientID uuid.UUID) (*models.ProgramAssignment, error) {
	a := &models.ProgramAssignment{
		ID:        uuid.New(),
		ProgramID: programID,
		ClientID:  clientID,
		Status:    models.AssignmentActive,
	}
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO program_assignments (id, program_id, client_id, status)
		 VALUES ($1, $2, $3, $4) RETURNING created_at`,
		a.ID, a.ProgramID, a.ClientID, a.Status).Scan(&a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting assignment: %w", err)
	}
	return a, nil
}

// ActiveAssignments returns the client's active assignments, newest first.
// More than one row indicates upstream data drift; the resolver picks the
// most recent.
func (db *DB) ActiveAssignments(ctx context.Context, clientID uuid.UUID) ([]models.ProgramAssignment, error) {
	return db.assignmentsByStatus(ctx, clientID, models.AssignmentActive)
}

// AssignmentsByClient returns every assignment a client has, newest first.
func (db *DB) AssignmentsByClient(ctx context.Context, clientID uuid.UUID) ([]models.ProgramAssignment, error) {
	return db.assignmentsByStatus(ctx, clientID, "")
}

func (db *DB) assignmentsByStatus(ctx context.Context, clientID uuid.UUID, status string) ([]models.ProgramAssignment, error) {
	query := `SELECT id, program_id, client_id, status, created_at
		 FROM program_assignments
		 WHERE client_id = $1`
	args := []any{clientID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying assignments: %w", err)
	}
	defer rows.Close()

	var result []models.ProgramAssignment
	for rows.Next() {
		var a models.ProgramAssignment
		if err := rows.Scan(&a.ID, &a.ProgramID, &a.ClientID, &a.Status, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning assignment: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// SetAssignmentStatus moves an assignment through its lifecycle
// (active/paused/completed).
func (db *DB) SetAssignmentStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE program_assignments SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("updating assignment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("assignment %s not found", id)
	}
	return nil
}
