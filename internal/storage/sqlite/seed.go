package sqlite

import (
	"context"
	"fmt"
	"log/slog"

	"teamtasks/internal/models"
)

type seedTask struct {
	project    int
	assignee   int // index into seedDevelopers, -1 for unassigned
	title      string
	status     models.TaskStatus
	priority   models.TaskPriority
	complexity int // 0 means unset
	dueIn      int // days from today
	lateBy     int // completed tasks only: days after due date
}

var seedDevelopers = []models.Developer{
	{FirstName: "Juan", LastName: "Perez", Email: "juan.perez@teamtasks.dev", IsActive: true},
	{FirstName: "Maria", LastName: "Gomez", Email: "maria.gomez@teamtasks.dev", IsActive: true},
	{FirstName: "Carlos", LastName: "Ruiz", Email: "carlos.ruiz@teamtasks.dev", IsActive: true},
	{FirstName: "Ana", LastName: "Torres", Email: "ana.torres@teamtasks.dev", IsActive: true},
	{FirstName: "Luis", LastName: "Mendez", Email: "luis.mendez@teamtasks.dev", IsActive: false},
}

var seedProjects = []struct {
	name, client string
	status       models.ProjectStatus
	startedAgo   int
}{
	{"Customer Portal", "Acme Corp", models.ProjectStatusInProgress, 60},
	{"Mobile Banking", "Northwind Bank", models.ProjectStatusInProgress, 30},
	{"Data Warehouse", "Globex", models.ProjectStatusPlanned, 0},
	{"Legacy Migration", "Initech", models.ProjectStatusCompleted, 180},
}

var seedTasks = []seedTask{
	{0, 0, "Design login flow", models.TaskStatusCompleted, models.TaskPriorityHigh, 3, -20, 3},
	{0, 0, "Implement session refresh", models.TaskStatusInProgress, models.TaskPriorityHigh, 4, 5, 0},
	{0, 1, "Profile page", models.TaskStatusToDo, models.TaskPriorityMedium, 2, 12, 0},
	{0, 2, "Audit log export", models.TaskStatusBlocked, models.TaskPriorityLow, 5, 3, 0},
	{0, -1, "Accessibility review", models.TaskStatusToDo, models.TaskPriorityMedium, 0, 20, 0},
	{1, 1, "Transfer limits", models.TaskStatusCompleted, models.TaskPriorityHigh, 3, -10, 0},
	{1, 1, "Push notifications", models.TaskStatusInProgress, models.TaskPriorityMedium, 3, 8, 0},
	{1, 2, "Card freeze toggle", models.TaskStatusCompleted, models.TaskPriorityMedium, 2, -6, 5},
	{1, 2, "Statement download", models.TaskStatusToDo, models.TaskPriorityLow, 1, 15, 0},
	{1, 3, "Biometric login", models.TaskStatusToDo, models.TaskPriorityHigh, 0, 2, 0},
	{3, 0, "Decommission mainframe jobs", models.TaskStatusCompleted, models.TaskPriorityHigh, 5, -90, 1},
	{3, 4, "Archive reports", models.TaskStatusCompleted, models.TaskPriorityLow, 1, -100, 0},
}

// Seed inserts demo developers, projects and tasks when the database holds no
// developers yet. It reports whether anything was written.
func (s *Store) Seed(ctx context.Context) (bool, error) {
	var count int64
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM developers`); err != nil {
		return false, fmt.Errorf("count developers: %w", err)
	}
	if count > 0 {
		s.logger.Info("seed skipped, database not empty", slog.Int64("developers", count))
		return false, nil
	}

	today := models.NewDate(s.now())
	createdAt := formatTimestamp(s.now())

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	developerIDs := make([]int64, len(seedDevelopers))
	for i, d := range seedDevelopers {
		res, err := tx.ExecContext(ctx, `INSERT INTO developers(first_name, last_name, email, is_active, created_at) VALUES(?, ?, ?, ?, ?)`,
			d.FirstName, d.LastName, d.Email, d.IsActive, createdAt)
		if err != nil {
			return false, fmt.Errorf("seed developer %s: %w", d.Email, err)
		}
		if developerIDs[i], err = res.LastInsertId(); err != nil {
			return false, fmt.Errorf("seed developer id: %w", err)
		}
	}

	projectIDs := make([]int64, len(seedProjects))
	for i, p := range seedProjects {
		start := today.AddDays(-p.startedAgo)
		var end *models.Date
		if p.status == models.ProjectStatusCompleted {
			e := today.AddDays(-30)
			end = &e
		}
		res, err := tx.ExecContext(ctx, `INSERT INTO projects(name, client_name, start_date, end_date, status) VALUES(?, ?, ?, ?, ?)`,
			p.name, p.client, start, end, p.status)
		if err != nil {
			return false, fmt.Errorf("seed project %s: %w", p.name, err)
		}
		if projectIDs[i], err = res.LastInsertId(); err != nil {
			return false, fmt.Errorf("seed project id: %w", err)
		}
	}

	for _, t := range seedTasks {
		due := today.AddDays(t.dueIn)
		var assignee, complexity, completion any
		if t.assignee >= 0 {
			assignee = developerIDs[t.assignee]
		}
		if t.complexity > 0 {
			complexity = t.complexity
		}
		if t.status == models.TaskStatusCompleted {
			completion = formatTimestamp(due.AddDays(t.lateBy).Time)
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO tasks(project_id, assignee_id, title, status, priority,
                estimated_complexity, due_date, completion_date, created_at)
            VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			projectIDs[t.project], assignee, t.title, t.status, t.priority, complexity, due, completion, createdAt)
		if err != nil {
			return false, fmt.Errorf("seed task %q: %w", t.title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit seed: %w", err)
	}
	s.logger.Info("seed data inserted",
		slog.Int("developers", len(seedDevelopers)),
		slog.Int("projects", len(seedProjects)),
		slog.Int("tasks", len(seedTasks)))
	return true, nil
}
