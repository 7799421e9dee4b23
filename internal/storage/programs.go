package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/meltforce/repsync/internal/models"
)

// CreateProgram inserts a training program.
func (db *DB) CreateProgram(ctx context.Context, name string, description *string, durationWeeks int) (*models.Program, error) {
	p := &models.Program{ID: uuid.New(), Name: name, Description: description, DurationWeeks: durationWeeks}
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO programs (id, name, description, duration_weeks) VALUES ($1, $2, $3, $4) RETURNING created_at`,
		p.ID, p.Name, p.Description, p.DurationWeeks).Scan(&p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting program: %w", err)
	}
	return p, nil
}

// GetProgram retrieves a program by ID.
func (db *DB) GetProgram(ctx context.Context, id uuid.UUID) (*models.Program, error) {
	var p models.Program
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name, description, duration_weeks, created_at FROM programs WHERE id = $1`,
		id).Scan(&p.ID, &p.Name, &p.Description, &p.DurationWeeks, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying program: %w", err)
	}
	return &p, nil
}

// ListPrograms returns all programs, newest first.
func (db *DB) ListPrograms(ctx context.Context) ([]models.Program, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, description, duration_weeks, created_at FROM programs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying programs: %w", err)
	}
	defer rows.Close()

	var result []models.Program
	for rows.Next() {
		var p models.Program
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.DurationWeeks, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning program: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
