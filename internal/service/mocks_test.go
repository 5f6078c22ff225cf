package service

import (
	"context"
	"fmt"

	"teamtasks/internal/models"
)

// MockProjects implements ProjectReader with overridable funcs.
type MockProjects struct {
	ListProjectsWithStatsFunc func(ctx context.Context) ([]models.ProjectWithStats, error)
	GetProjectFunc            func(ctx context.Context, id int64) (models.Project, error)
	ProjectExistsFunc         func(ctx context.Context, id int64) (bool, error)
}

func (m *MockProjects) ListProjectsWithStats(ctx context.Context) ([]models.ProjectWithStats, error) {
	if m.ListProjectsWithStatsFunc != nil {
		return m.ListProjectsWithStatsFunc(ctx)
	}
	return nil, nil
}

func (m *MockProjects) GetProject(ctx context.Context, id int64) (models.Project, error) {
	if m.GetProjectFunc != nil {
		return m.GetProjectFunc(ctx, id)
	}
	return models.Project{ID: id}, nil
}

func (m *MockProjects) ProjectExists(ctx context.Context, id int64) (bool, error) {
	if m.ProjectExistsFunc != nil {
		return m.ProjectExistsFunc(ctx, id)
	}
	return true, nil
}

// MockDevelopers implements DeveloperReader with overridable funcs.
type MockDevelopers struct {
	ListActiveDevelopersFunc func(ctx context.Context) ([]models.Developer, error)
	GetDeveloperFunc         func(ctx context.Context, id int64) (models.Developer, error)
	DeveloperExistsFunc      func(ctx context.Context, id int64) (bool, error)
}

func (m *MockDevelopers) ListActiveDevelopers(ctx context.Context) ([]models.Developer, error) {
	if m.ListActiveDevelopersFunc != nil {
		return m.ListActiveDevelopersFunc(ctx)
	}
	return nil, nil
}

func (m *MockDevelopers) GetDeveloper(ctx context.Context, id int64) (models.Developer, error) {
	if m.GetDeveloperFunc != nil {
		return m.GetDeveloperFunc(ctx, id)
	}
	return models.Developer{ID: id}, nil
}

func (m *MockDevelopers) DeveloperExists(ctx context.Context, id int64) (bool, error) {
	if m.DeveloperExistsFunc != nil {
		return m.DeveloperExistsFunc(ctx, id)
	}
	return true, nil
}

// MockTasks is an in-memory TaskStore. The Func fields override individual
// methods; otherwise tasks are kept in a map.
type MockTasks struct {
	tasks  map[int64]models.Task
	nextID int64

	ListProjectTasksFunc        func(ctx context.Context, projectID int64, f models.TaskFilter, req models.PageRequest) (models.Page[models.Task], error)
	ListDeveloperTasksFunc      func(ctx context.Context, developerID int64) ([]models.Task, error)
	ListOpenTasksDueBetweenFunc func(ctx context.Context, from, to models.Date) ([]models.Task, error)
}

func NewMockTasks() *MockTasks {
	return &MockTasks{tasks: make(map[int64]models.Task)}
}

func (m *MockTasks) GetTask(_ context.Context, id int64) (models.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return models.Task{}, fmt.Errorf("task %d: %w", id, models.ErrNotFound)
	}
	return t, nil
}

func (m *MockTasks) ListProjectTasks(ctx context.Context, projectID int64, f models.TaskFilter, req models.PageRequest) (models.Page[models.Task], error) {
	if m.ListProjectTasksFunc != nil {
		return m.ListProjectTasksFunc(ctx, projectID, f, req)
	}
	return models.NewPage[models.Task](nil, 0, req), nil
}

func (m *MockTasks) ListDeveloperTasks(ctx context.Context, developerID int64) ([]models.Task, error) {
	if m.ListDeveloperTasksFunc != nil {
		return m.ListDeveloperTasksFunc(ctx, developerID)
	}
	return nil, nil
}

func (m *MockTasks) ListOpenTasksDueBetween(ctx context.Context, from, to models.Date) ([]models.Task, error) {
	if m.ListOpenTasksDueBetweenFunc != nil {
		return m.ListOpenTasksDueBetweenFunc(ctx, from, to)
	}
	return nil, nil
}

func (m *MockTasks) CreateTask(_ context.Context, t models.Task) (models.Task, error) {
	m.nextID++
	t.ID = m.nextID
	m.tasks[t.ID] = t
	return t, nil
}

// UpdateTaskStatus mirrors the store: nil fields are kept and a completion
// date, once set, is never replaced.
func (m *MockTasks) UpdateTaskStatus(_ context.Context, id int64, change models.StatusChange) (models.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return models.Task{}, fmt.Errorf("task %d: %w", id, models.ErrNotFound)
	}
	t.Status = change.Status
	if change.Priority != nil {
		t.Priority = *change.Priority
	}
	if change.EstimatedComplexity != nil {
		t.EstimatedComplexity = change.EstimatedComplexity
	}
	if t.CompletionDate == nil {
		t.CompletionDate = change.CompletionDate
	}
	m.tasks[id] = t
	return t, nil
}

// MockReports records the page request each report receives.
type MockReports struct {
	LastRequest models.PageRequest
}

func (m *MockReports) DeveloperWorkload(_ context.Context, req models.PageRequest) (models.Page[models.DeveloperWorkload], error) {
	m.LastRequest = req
	return models.NewPage[models.DeveloperWorkload](nil, 0, req), nil
}

func (m *MockReports) ProjectHealth(_ context.Context, req models.PageRequest) (models.Page[models.ProjectHealth], error) {
	m.LastRequest = req
	return models.NewPage[models.ProjectHealth](nil, 0, req), nil
}

func (m *MockReports) DeveloperDelayRisk(_ context.Context, req models.PageRequest) (models.Page[models.DeveloperDelayRisk], error) {
	m.LastRequest = req
	return models.NewPage[models.DeveloperDelayRisk](nil, 0, req), nil
}
