package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"teamtasks/internal/models"
)

// newTestStore opens a fresh SQLite database in a temp dir.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"), nil)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

var emailSeq int

func mustDeveloper(t *testing.T, s *Store, first, last string, active bool) models.Developer {
	t.Helper()
	emailSeq++
	d, err := s.CreateDeveloper(context.Background(), models.Developer{
		FirstName: first,
		LastName:  last,
		Email:     fmt.Sprintf("%s.%s.%d@example.com", first, last, emailSeq),
		IsActive:  active,
	})
	if err != nil {
		t.Fatalf("Failed to create developer %s %s: %v", first, last, err)
	}
	return d
}

func mustProject(t *testing.T, s *Store, name string) models.Project {
	t.Helper()
	p, err := s.CreateProject(context.Background(), models.Project{
		Name:       name,
		ClientName: "Client of " + name,
		StartDate:  models.MustParseDate("2024-01-01"),
		Status:     models.ProjectStatusInProgress,
	})
	if err != nil {
		t.Fatalf("Failed to create project %s: %v", name, err)
	}
	return p
}

// taskFixture describes a task to insert. completed is the completion day for
// Completed tasks and ignored otherwise.
type taskFixture struct {
	project    models.Project
	assignee   *models.Developer
	title      string
	status     models.TaskStatus
	complexity int
	due        string
	completed  string
}

func mustTask(t *testing.T, s *Store, fx taskFixture) models.Task {
	t.Helper()
	task := models.Task{
		ProjectID: fx.project.ID,
		Title:     fx.title,
		Status:    fx.status,
		Priority:  models.TaskPriorityMedium,
		DueDate:   models.MustParseDate(fx.due),
	}
	if task.Title == "" {
		task.Title = "task due " + fx.due
	}
	if task.Status == "" {
		task.Status = models.TaskStatusToDo
	}
	if fx.assignee != nil {
		id := fx.assignee.ID
		task.AssigneeID = &id
	}
	if fx.complexity > 0 {
		c := fx.complexity
		task.EstimatedComplexity = &c
	}
	if fx.completed != "" {
		ts := models.MustParseDate(fx.completed).Add(10 * time.Hour)
		task.CompletionDate = &ts
	}
	created, err := s.CreateTask(context.Background(), task)
	if err != nil {
		t.Fatalf("Failed to create task %q: %v", task.Title, err)
	}
	return created
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open("", nil); err == nil {
		t.Fatal("Expected error for empty path")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")

	first, err := Open(path, nil)
	if err != nil {
		t.Fatalf("First open failed: %v", err)
	}
	mustProject(t, first, "Survivor")
	first.Close()

	second, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Second open failed: %v", err)
	}
	defer second.Close()

	exists, err := second.ProjectExists(context.Background(), 1)
	if err != nil {
		t.Fatalf("ProjectExists failed: %v", err)
	}
	if !exists {
		t.Error("Expected project to survive reopening")
	}
	if err := second.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestSeedInsertsOnce(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	inserted, err := store.Seed(ctx)
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if !inserted {
		t.Fatal("Expected first seed to insert data")
	}

	again, err := store.Seed(ctx)
	if err != nil {
		t.Fatalf("Second seed failed: %v", err)
	}
	if again {
		t.Error("Expected second seed to be a no-op")
	}

	devs, err := store.ListActiveDevelopers(ctx)
	if err != nil {
		t.Fatalf("ListActiveDevelopers failed: %v", err)
	}
	if len(devs) != len(seedDevelopers)-1 {
		t.Errorf("Expected %d active developers, got %d", len(seedDevelopers)-1, len(devs))
	}

	health, err := store.ProjectHealth(ctx, models.NewPageRequest(1, 100))
	if err != nil {
		t.Fatalf("ProjectHealth failed: %v", err)
	}
	var total int64
	for _, row := range health.Items {
		total += row.TotalTasks
	}
	if total != int64(len(seedTasks)) {
		t.Errorf("Expected %d seeded tasks, got %d", len(seedTasks), total)
	}
}

func TestCreateProjectCanonicalizesStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p, err := store.CreateProject(ctx, models.Project{
		Name:      "Lowercase",
		StartDate: models.MustParseDate("2024-01-01"),
		Status:    "planned",
	})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if p.Status != models.ProjectStatusPlanned {
		t.Errorf("Expected status %s, got %s", models.ProjectStatusPlanned, p.Status)
	}

	if _, err := store.CreateProject(ctx, models.Project{
		Name:      "Bogus",
		StartDate: models.MustParseDate("2024-01-01"),
		Status:    "archived",
	}); err == nil {
		t.Error("Expected error for unknown project status")
	}
}
