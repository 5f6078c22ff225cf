package service

import (
	"context"

	"teamtasks/internal/models"
)

// DeveloperReader is the read contract for developers.
type DeveloperReader interface {
	ListActiveDevelopers(ctx context.Context) ([]models.Developer, error)
	GetDeveloper(ctx context.Context, id int64) (models.Developer, error)
	DeveloperExists(ctx context.Context, id int64) (bool, error)
}

// ProjectReader is the read contract for projects.
type ProjectReader interface {
	ListProjectsWithStats(ctx context.Context) ([]models.ProjectWithStats, error)
	GetProject(ctx context.Context, id int64) (models.Project, error)
	ProjectExists(ctx context.Context, id int64) (bool, error)
}

// TaskReader is the read contract for tasks.
type TaskReader interface {
	GetTask(ctx context.Context, id int64) (models.Task, error)
	ListProjectTasks(ctx context.Context, projectID int64, f models.TaskFilter, req models.PageRequest) (models.Page[models.Task], error)
	ListDeveloperTasks(ctx context.Context, developerID int64) ([]models.Task, error)
	ListOpenTasksDueBetween(ctx context.Context, from, to models.Date) ([]models.Task, error)
}

// TaskWriter is the write contract for tasks. Tasks are never deleted.
type TaskWriter interface {
	CreateTask(ctx context.Context, t models.Task) (models.Task, error)
	UpdateTaskStatus(ctx context.Context, id int64, change models.StatusChange) (models.Task, error)
}

// TaskStore combines task reads and writes.
type TaskStore interface {
	TaskReader
	TaskWriter
}

// ReportReader produces the grouped dashboard reports.
type ReportReader interface {
	DeveloperWorkload(ctx context.Context, req models.PageRequest) (models.Page[models.DeveloperWorkload], error)
	ProjectHealth(ctx context.Context, req models.PageRequest) (models.Page[models.ProjectHealth], error)
	DeveloperDelayRisk(ctx context.Context, req models.PageRequest) (models.Page[models.DeveloperDelayRisk], error)
}
