package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"teamtasks/internal/models"
)

const developerColumns = `id, first_name, last_name, email, is_active, created_at`

// ListActiveDevelopers returns active developers ordered by first name.
func (s *Store) ListActiveDevelopers(ctx context.Context) ([]models.Developer, error) {
	var developers []models.Developer
	err := s.db.SelectContext(ctx, &developers, `SELECT `+developerColumns+`
        FROM developers WHERE is_active = 1 ORDER BY first_name, last_name, id`)
	if err != nil {
		return nil, fmt.Errorf("list developers: %w", err)
	}
	return developers, nil
}

// GetDeveloper fetches a single developer by id regardless of activity.
func (s *Store) GetDeveloper(ctx context.Context, id int64) (models.Developer, error) {
	var d models.Developer
	err := s.db.GetContext(ctx, &d, `SELECT `+developerColumns+` FROM developers WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Developer{}, fmt.Errorf("developer %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.Developer{}, fmt.Errorf("get developer: %w", err)
	}
	return d, nil
}

// DeveloperExists checks existence only; inactive developers still exist.
func (s *Store) DeveloperExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := s.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM developers WHERE id = ?)`, id); err != nil {
		return false, fmt.Errorf("developer exists: %w", err)
	}
	return exists, nil
}

// CreateDeveloper persists a developer. Used by seeding and tests; the API
// exposes no developer writes.
func (s *Store) CreateDeveloper(ctx context.Context, d models.Developer) (models.Developer, error) {
	if strings.TrimSpace(d.FirstName) == "" || strings.TrimSpace(d.LastName) == "" {
		return models.Developer{}, fmt.Errorf("developer name must not be empty")
	}
	if strings.TrimSpace(d.Email) == "" {
		return models.Developer{}, fmt.Errorf("developer email must not be empty")
	}
	createdAt := d.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO developers(first_name, last_name, email, is_active, created_at) VALUES(?, ?, ?, ?, ?)`,
		strings.TrimSpace(d.FirstName), strings.TrimSpace(d.LastName), strings.ToLower(strings.TrimSpace(d.Email)), d.IsActive, formatTimestamp(createdAt))
	if err != nil {
		return models.Developer{}, fmt.Errorf("insert developer: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Developer{}, fmt.Errorf("developer id: %w", err)
	}
	return s.GetDeveloper(ctx, id)
}
