package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"teamtasks/internal/models"
)

const projectColumns = `p.id, p.name, p.client_name, p.start_date, p.end_date, p.status`

// ListProjectsWithStats returns every project with its task counters.
func (s *Store) ListProjectsWithStats(ctx context.Context) ([]models.ProjectWithStats, error) {
	var projects []models.ProjectWithStats
	err := s.db.SelectContext(ctx, &projects, `SELECT `+projectColumns+`,
            COUNT(t.id) AS total_tasks,
            COUNT(CASE WHEN t.status <> 'Completed' THEN 1 END) AS open_tasks,
            COUNT(CASE WHEN t.status = 'Completed' THEN 1 END) AS completed_tasks
        FROM projects p
        LEFT JOIN tasks t ON t.project_id = p.id
        GROUP BY p.id
        ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// GetProject fetches a single project by id.
func (s *Store) GetProject(ctx context.Context, id int64) (models.Project, error) {
	var p models.Project
	err := s.db.GetContext(ctx, &p, `SELECT `+projectColumns+` FROM projects p WHERE p.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, fmt.Errorf("project %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// ProjectExists reports whether a project with id is stored.
func (s *Store) ProjectExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := s.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM projects WHERE id = ?)`, id); err != nil {
		return false, fmt.Errorf("project exists: %w", err)
	}
	return exists, nil
}

// CreateProject persists a project. Used by seeding and tests.
func (s *Store) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	if strings.TrimSpace(p.Name) == "" {
		return models.Project{}, fmt.Errorf("project name must not be empty")
	}
	if p.StartDate.IsZero() {
		return models.Project{}, fmt.Errorf("project start date is required")
	}
	if p.Status == "" {
		p.Status = models.ProjectStatusPlanned
	}
	status, err := models.ParseProjectStatus(string(p.Status))
	if err != nil {
		return models.Project{}, err
	}
	p.Status = status

	res, err := s.db.ExecContext(ctx, `INSERT INTO projects(name, client_name, start_date, end_date, status) VALUES(?, ?, ?, ?, ?)`,
		strings.TrimSpace(p.Name), strings.TrimSpace(p.ClientName), p.StartDate, p.EndDate, p.Status)
	if err != nil {
		return models.Project{}, fmt.Errorf("insert project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Project{}, fmt.Errorf("project id: %w", err)
	}
	return s.GetProject(ctx, id)
}
