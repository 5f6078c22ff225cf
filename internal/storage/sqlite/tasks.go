package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"teamtasks/internal/models"
)

const taskSelect = `SELECT t.id, t.project_id, p.name AS project_name, t.title, t.description,
            t.assignee_id,
            CASE WHEN d.id IS NULL THEN NULL ELSE d.first_name || ' ' || d.last_name END AS assignee_name,
            t.status, t.priority, t.estimated_complexity, t.due_date, t.completion_date, t.created_at
        FROM tasks t
        JOIN projects p ON p.id = t.project_id
        LEFT JOIN developers d ON d.id = t.assignee_id`

// ListProjectTasks returns one page of a project's tasks ordered by due date.
// Filters in f are combined with AND.
func (s *Store) ListProjectTasks(ctx context.Context, projectID int64, f models.TaskFilter, req models.PageRequest) (models.Page[models.Task], error) {
	where := []string{"t.project_id = ?"}
	args := []any{projectID}
	if f.Status != nil {
		where = append(where, "t.status = ?")
		args = append(args, *f.Status)
	}
	if f.AssigneeID != nil {
		where = append(where, "t.assignee_id = ?")
		args = append(args, *f.AssigneeID)
	}
	clause := " WHERE " + strings.Join(where, " AND ")

	page, err := paginate[models.Task](ctx, s.db,
		`SELECT COUNT(*) FROM tasks t`+clause,
		taskSelect+clause+` ORDER BY t.due_date ASC, t.id ASC`,
		req, args...)
	if err != nil {
		return models.Page[models.Task]{}, fmt.Errorf("list project tasks: %w", err)
	}
	return page, nil
}

// ListDeveloperTasks returns every task assigned to a developer by due date.
func (s *Store) ListDeveloperTasks(ctx context.Context, developerID int64) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.SelectContext(ctx, &tasks, taskSelect+` WHERE t.assignee_id = ? ORDER BY t.due_date ASC, t.id ASC`, developerID)
	if err != nil {
		return nil, fmt.Errorf("list developer tasks: %w", err)
	}
	return tasks, nil
}

// ListOpenTasksDueBetween returns tasks not yet completed whose due date lies
// in [from, to], soonest first.
func (s *Store) ListOpenTasksDueBetween(ctx context.Context, from, to models.Date) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.SelectContext(ctx, &tasks, taskSelect+`
        WHERE t.status <> 'Completed' AND t.due_date BETWEEN ? AND ?
        ORDER BY t.due_date ASC, t.id ASC`, from, to)
	if err != nil {
		return nil, fmt.Errorf("list tasks due soon: %w", err)
	}
	return tasks, nil
}

// GetTask retrieves a task by id with project and assignee names joined.
func (s *Store) GetTask(ctx context.Context, id int64) (models.Task, error) {
	var t models.Task
	err := s.db.GetContext(ctx, &t, taskSelect+` WHERE t.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, fmt.Errorf("task %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// CreateTask inserts a new task and reads it back with joined names.
func (s *Store) CreateTask(ctx context.Context, t models.Task) (models.Task, error) {
	if strings.TrimSpace(t.Title) == "" {
		return models.Task{}, fmt.Errorf("task title must not be empty")
	}
	createdAt := t.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO tasks(project_id, assignee_id, title, description, status, priority,
            estimated_complexity, due_date, completion_date, created_at)
        VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ProjectID, t.AssigneeID, strings.TrimSpace(t.Title), trimmed(t.Description), t.Status, t.Priority,
		t.EstimatedComplexity, t.DueDate, nullableTimestamp(t.CompletionDate), formatTimestamp(createdAt))
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Task{}, fmt.Errorf("task id: %w", err)
	}
	return s.GetTask(ctx, id)
}

// UpdateTaskStatus applies a status change. Priority and complexity are kept
// when nil. An existing completion date is never overwritten or cleared.
func (s *Store) UpdateTaskStatus(ctx context.Context, id int64, change models.StatusChange) (models.Task, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE tasks SET
            status = ?,
            priority = COALESCE(?, priority),
            estimated_complexity = COALESCE(?, estimated_complexity),
            completion_date = COALESCE(completion_date, ?)
        WHERE id = ?`,
		change.Status, change.Priority, change.EstimatedComplexity, nullableTimestamp(change.CompletionDate), id)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Task{}, err
	}
	if affected == 0 {
		return models.Task{}, fmt.Errorf("task %d: %w", id, models.ErrNotFound)
	}
	return s.GetTask(ctx, id)
}

func trimmed(v *string) any {
	if v == nil {
		return nil
	}
	out := strings.TrimSpace(*v)
	if out == "" {
		return nil
	}
	return out
}
