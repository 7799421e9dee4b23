package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/meltforce/repsync/internal/models"
)

// CreateClient inserts a new client and returns it with generated fields.
func (db *DB) CreateClient(ctx context.Context, name, email string) (*models.Client, error) {
	c := &models.Client{ID: uuid.New(), Name: name, Email: email}
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO clients (id, name, email) VALUES ($1, $2, $3) RETURNING created_at`,
		c.ID, c.Name, c.Email).Scan(&c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting client: %w", err)
	}
	return c, nil
}

// ListClients returns all clients ordered by name.
func (db *DB) ListClients(ctx context.Context) ([]models.Client, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, email, created_at FROM clients ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying clients: %w", err)
	}
	defer rows.Close()

	var result []models.Client
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
