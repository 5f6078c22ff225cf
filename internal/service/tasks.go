package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"teamtasks/internal/models"
)

const (
	DefaultDueSoonDays = 7
	MaxDueSoonDays     = 90
)

// CreateTaskInput is the raw data for a new task. Status and Priority are
// parsed ignoring case and default to ToDo and Medium when empty.
type CreateTaskInput struct {
	ProjectID           int64
	Title               string
	Description         *string
	AssigneeID          *int64
	Status              string
	Priority            string
	EstimatedComplexity *int
	DueDate             *models.Date
}

// UpdateStatusInput moves a task to a new status. Nil fields are left as is.
type UpdateStatusInput struct {
	Status              string
	Priority            *string
	EstimatedComplexity *int
}

// TaskQuery filters a project task listing. Empty Status means any.
type TaskQuery struct {
	Status     string
	AssigneeID *int64
}

// TaskService owns task creation, status transitions and task listings.
type TaskService struct {
	projects   ProjectReader
	developers DeveloperReader
	tasks      TaskStore
	logger     *slog.Logger
	now        func() time.Time
}

// NewTaskService builds a TaskService on top of the entity readers and the
// task store.
func NewTaskService(projects ProjectReader, developers DeveloperReader, tasks TaskStore, logger *slog.Logger) *TaskService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &TaskService{
		projects:   projects,
		developers: developers,
		tasks:      tasks,
		logger:     logger,
		now:        time.Now,
	}
}

// Create validates in, checks that the project and assignee exist and stores
// the task. A task created as Completed is stamped with a completion date.
func (s *TaskService) Create(ctx context.Context, in CreateTaskInput) (models.Task, error) {
	task, err := s.validateCreate(in)
	if err != nil {
		return models.Task{}, err
	}

	exists, err := s.projects.ProjectExists(ctx, in.ProjectID)
	if err != nil {
		return models.Task{}, err
	}
	if !exists {
		return models.Task{}, models.NewValidationError("project does not exist",
			fmt.Sprintf("projectId: project %d does not exist", in.ProjectID))
	}

	if in.AssigneeID != nil {
		exists, err := s.developers.DeveloperExists(ctx, *in.AssigneeID)
		if err != nil {
			return models.Task{}, err
		}
		if !exists {
			return models.Task{}, models.NewValidationError("developer does not exist",
				fmt.Sprintf("assigneeId: developer %d does not exist", *in.AssigneeID))
		}
	}

	now := s.now().UTC()
	task.CreatedAt = now
	if task.Status == models.TaskStatusCompleted {
		task.CompletionDate = &now
	}

	created, err := s.tasks.CreateTask(ctx, task)
	if err != nil {
		return models.Task{}, err
	}
	s.logger.Info("task created",
		slog.Int64("task_id", created.ID),
		slog.Int64("project_id", created.ProjectID),
		slog.String("status", string(created.Status)))
	return created, nil
}

// validateCreate collects every field problem of in before any lookup.
func (s *TaskService) validateCreate(in CreateTaskInput) (models.Task, error) {
	var problems []string
	task := models.Task{
		ProjectID:           in.ProjectID,
		Title:               strings.TrimSpace(in.Title),
		Description:         in.Description,
		AssigneeID:          in.AssigneeID,
		Status:              models.TaskStatusToDo,
		Priority:            models.TaskPriorityMedium,
		EstimatedComplexity: in.EstimatedComplexity,
	}

	if in.ProjectID <= 0 {
		problems = append(problems, "projectId: must be greater than 0")
	}
	if task.Title == "" {
		problems = append(problems, "title: is required")
	} else if utf8.RuneCountInString(task.Title) > models.MaxTitleLength {
		problems = append(problems, fmt.Sprintf("title: must not exceed %d characters", models.MaxTitleLength))
	}
	if strings.TrimSpace(in.Status) != "" {
		status, err := models.ParseTaskStatus(in.Status)
		if err != nil {
			problems = append(problems, "status: "+err.Error())
		}
		task.Status = status
	}
	if strings.TrimSpace(in.Priority) != "" {
		priority, err := models.ParseTaskPriority(in.Priority)
		if err != nil {
			problems = append(problems, "priority: "+err.Error())
		}
		task.Priority = priority
	}
	if msg, ok := checkComplexity(in.EstimatedComplexity); !ok {
		problems = append(problems, msg)
	}
	switch {
	case in.DueDate == nil || in.DueDate.IsZero():
		problems = append(problems, "dueDate: is required")
	case in.DueDate.Before(models.NewDate(s.now())):
		problems = append(problems, "dueDate: must be today or later")
	default:
		task.DueDate = *in.DueDate
	}

	if len(problems) > 0 {
		return models.Task{}, models.NewValidationError("validation failed", problems...)
	}
	return task, nil
}

// UpdateStatus transitions task id. The completion date is stamped the first
// time the task reaches Completed and is kept through later transitions.
func (s *TaskService) UpdateStatus(ctx context.Context, id int64, in UpdateStatusInput) (models.Task, error) {
	current, err := s.tasks.GetTask(ctx, id)
	if err != nil {
		return models.Task{}, err
	}

	var problems []string
	change := models.StatusChange{EstimatedComplexity: in.EstimatedComplexity}

	status, err := models.ParseTaskStatus(in.Status)
	if err != nil {
		problems = append(problems, "status: "+err.Error())
	}
	change.Status = status

	if in.Priority != nil && strings.TrimSpace(*in.Priority) != "" {
		priority, err := models.ParseTaskPriority(*in.Priority)
		if err != nil {
			problems = append(problems, "priority: "+err.Error())
		}
		change.Priority = &priority
	}
	if msg, ok := checkComplexity(in.EstimatedComplexity); !ok {
		problems = append(problems, msg)
	}
	if len(problems) > 0 {
		return models.Task{}, models.NewValidationError("validation failed", problems...)
	}

	if change.Status == models.TaskStatusCompleted && current.CompletionDate == nil {
		now := s.now().UTC()
		change.CompletionDate = &now
	}

	updated, err := s.tasks.UpdateTaskStatus(ctx, id, change)
	if err != nil {
		return models.Task{}, err
	}
	s.logger.Info("task status updated",
		slog.Int64("task_id", id),
		slog.String("from", string(current.Status)),
		slog.String("to", string(updated.Status)))
	return updated, nil
}

// Get returns a single task.
func (s *TaskService) Get(ctx context.Context, id int64) (models.Task, error) {
	return s.tasks.GetTask(ctx, id)
}

// ListByProject pages through a project's tasks by due date.
func (s *TaskService) ListByProject(ctx context.Context, projectID int64, q TaskQuery, req models.PageRequest) (models.Page[models.Task], error) {
	var filter models.TaskFilter
	if strings.TrimSpace(q.Status) != "" {
		status, err := models.ParseTaskStatus(q.Status)
		if err != nil {
			return models.Page[models.Task]{}, models.NewValidationError("invalid filter", "status: "+err.Error())
		}
		filter.Status = &status
	}
	filter.AssigneeID = q.AssigneeID

	exists, err := s.projects.ProjectExists(ctx, projectID)
	if err != nil {
		return models.Page[models.Task]{}, err
	}
	if !exists {
		return models.Page[models.Task]{}, fmt.Errorf("project %d: %w", projectID, models.ErrNotFound)
	}

	return s.tasks.ListProjectTasks(ctx, projectID, filter, models.NewPageRequest(req.Page, req.PageSize))
}

// ListByDeveloper returns all tasks assigned to developerID.
func (s *TaskService) ListByDeveloper(ctx context.Context, developerID int64) ([]models.Task, error) {
	if _, err := s.developers.GetDeveloper(ctx, developerID); err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListDeveloperTasks(ctx, developerID)
	if tasks == nil && err == nil {
		tasks = []models.Task{}
	}
	return tasks, err
}

// DueSoon returns open tasks due between today and today+days inclusive.
func (s *TaskService) DueSoon(ctx context.Context, days int) ([]models.Task, error) {
	if days < 1 || days > MaxDueSoonDays {
		return nil, models.NewValidationError("invalid range",
			fmt.Sprintf("days: must be between 1 and %d", MaxDueSoonDays))
	}
	today := models.NewDate(s.now())
	tasks, err := s.tasks.ListOpenTasksDueBetween(ctx, today, today.AddDays(days))
	if tasks == nil && err == nil {
		tasks = []models.Task{}
	}
	return tasks, err
}

// checkComplexity accepts nil or a value within the complexity bounds.
func checkComplexity(v *int) (string, bool) {
	if v == nil || (*v >= models.MinComplexity && *v <= models.MaxComplexity) {
		return "", true
	}
	return fmt.Sprintf("estimatedComplexity: must be between %d and %d", models.MinComplexity, models.MaxComplexity), false
}
