package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/meltforce/repsync/internal/models"
)

// CreateTemplate inserts a workout template.
func (db *DB) CreateTemplate(ctx context.Context, name string, description *string) (*models.WorkoutTemplate, error) {
	t := &models.WorkoutTemplate{ID: uuid.New(), Name: name, Description: description}
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO workout_templates (id, name, description) VALUES ($1, $2, $3) RETURNING created_at`,
		t.ID, t.Name, t.Description).Scan(&t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting workout template: %w", err)
	}
	return t, nil
}

// GetTemplate retrieves a workout template by ID.
func (db *DB) GetTemplate(ctx context.Context, id uuid.UUID) (*models.WorkoutTemplate, error) {
	var t models.WorkoutTemplate
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name, description, created_at FROM workout_templates WHERE id = $1`,
		id).Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying workout template: %w", err)
	}
	return &t, nil
}

// GetTemplateByName retrieves a workout template by exact name, or nil when
// absent. The importer uses this to reuse templates across imports.
func (db *DB) GetTemplateByName(ctx context.Context, name string) (*models.WorkoutTemplate, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, description, created_at FROM workout_templates WHERE name = $1 LIMIT 1`,
		name)
	if err != nil {
		return nil, fmt.Errorf("querying workout template by name: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var t models.WorkoutTemplate
	if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt); err != nil {
		return nil, fmt.Errorf("scanning workout template: %w", err)
	}
	return &t, rows.Err()
}

// ListTemplates returns all workout templates ordered by name.
func (db *DB) ListTemplates(ctx context.Context) ([]models.WorkoutTemplate, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, description, created_at FROM workout_templates ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying workout templates: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutTemplate
	for rows.Next() {
		var t models.WorkoutTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning workout template: %w", err)
		}
		result = append(result, t)
	}
	return result, rows.Err()
}
