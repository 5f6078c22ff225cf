package models

import (
	"fmt"
	"strings"
)

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	TaskStatusToDo       TaskStatus = "ToDo"
	TaskStatusInProgress TaskStatus = "InProgress"
	TaskStatusBlocked    TaskStatus = "Blocked"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// TaskStatuses lists every valid status in board order.
var TaskStatuses = []TaskStatus{TaskStatusToDo, TaskStatusInProgress, TaskStatusBlocked, TaskStatusCompleted}

// ParseTaskStatus matches raw against the known statuses ignoring case.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	for _, s := range TaskStatuses {
		if strings.EqualFold(strings.TrimSpace(raw), string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid status %q, allowed values: %s", raw, joinValues(TaskStatuses))
}

// IsOpen reports whether the task still counts as pending work.
func (s TaskStatus) IsOpen() bool {
	return s != TaskStatusCompleted
}

// TaskPriority ranks tasks for the team.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

// TaskPriorities lists every valid priority from lowest to highest.
var TaskPriorities = []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}

// ParseTaskPriority matches raw against the known priorities ignoring case.
func ParseTaskPriority(raw string) (TaskPriority, error) {
	for _, p := range TaskPriorities {
		if strings.EqualFold(strings.TrimSpace(raw), string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid priority %q, allowed values: %s", raw, joinValues(TaskPriorities))
}

// ProjectStatus is the delivery state of a project.
type ProjectStatus string

const (
	ProjectStatusPlanned    ProjectStatus = "Planned"
	ProjectStatusInProgress ProjectStatus = "InProgress"
	ProjectStatusCompleted  ProjectStatus = "Completed"
)

// ProjectStatuses lists every valid project status.
var ProjectStatuses = []ProjectStatus{ProjectStatusPlanned, ProjectStatusInProgress, ProjectStatusCompleted}

// ParseProjectStatus matches raw against the known project statuses ignoring case.
func ParseProjectStatus(raw string) (ProjectStatus, error) {
	for _, s := range ProjectStatuses {
		if strings.EqualFold(strings.TrimSpace(raw), string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid project status %q, allowed values: %s", raw, joinValues(ProjectStatuses))
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
