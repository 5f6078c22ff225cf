package models

import (
	"strings"
	"time"
)

// Developer is a team member that tasks can be assigned to.
type Developer struct {
	ID        int64     `json:"developerId" db:"id"`
	FirstName string    `json:"firstName" db:"first_name"`
	LastName  string    `json:"lastName" db:"last_name"`
	Email     string    `json:"email" db:"email"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// FullName joins first and last name the same way the reports do.
func (d Developer) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// Project groups tasks delivered for a client.
type Project struct {
	ID         int64         `json:"projectId" db:"id"`
	Name       string        `json:"name" db:"name"`
	ClientName string        `json:"clientName" db:"client_name"`
	StartDate  Date          `json:"startDate" db:"start_date"`
	EndDate    *Date         `json:"endDate,omitempty" db:"end_date"`
	Status     ProjectStatus `json:"status" db:"status"`
}

// ProjectWithStats is a project together with its task counters.
type ProjectWithStats struct {
	Project
	TotalTasks     int64 `json:"totalTasks" db:"total_tasks"`
	OpenTasks      int64 `json:"openTasks" db:"open_tasks"`
	CompletedTasks int64 `json:"completedTasks" db:"completed_tasks"`
}

// Task is a unit of work inside a project. ProjectName and AssigneeName are
// filled from joins when the task is read back.
type Task struct {
	ID                  int64        `json:"taskId" db:"id"`
	ProjectID           int64        `json:"projectId" db:"project_id"`
	ProjectName         string       `json:"projectName" db:"project_name"`
	Title               string       `json:"title" db:"title"`
	Description         *string      `json:"description,omitempty" db:"description"`
	AssigneeID          *int64       `json:"assigneeId,omitempty" db:"assignee_id"`
	AssigneeName        *string      `json:"assigneeName,omitempty" db:"assignee_name"`
	Status              TaskStatus   `json:"status" db:"status"`
	Priority            TaskPriority `json:"priority" db:"priority"`
	EstimatedComplexity *int         `json:"estimatedComplexity,omitempty" db:"estimated_complexity"`
	DueDate             Date         `json:"dueDate" db:"due_date"`
	CompletionDate      *time.Time   `json:"completionDate,omitempty" db:"completion_date"`
	CreatedAt           time.Time    `json:"createdAt" db:"created_at"`
}

// TaskFilter narrows a project task listing. Nil fields are not applied.
type TaskFilter struct {
	Status     *TaskStatus
	AssigneeID *int64
}

// StatusChange carries a status transition and the optional fields that may
// change with it.
type StatusChange struct {
	Status              TaskStatus
	Priority            *TaskPriority
	EstimatedComplexity *int
	CompletionDate      *time.Time
}

const (
	// MinComplexity and MaxComplexity bound EstimatedComplexity.
	MinComplexity = 1
	MaxComplexity = 5
	// MaxTitleLength bounds Task.Title.
	MaxTitleLength = 150
)
