package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"teamtasks/internal/models"
	"teamtasks/internal/service"
)

type createTaskRequest struct {
	ProjectID           int64        `json:"projectId" binding:"required,gt=0"`
	Title               string       `json:"title" binding:"required,max=150"`
	Description         *string      `json:"description"`
	AssigneeID          *int64       `json:"assigneeId" binding:"omitempty,gt=0"`
	Status              string       `json:"status" binding:"omitempty,task_status"`
	Priority            string       `json:"priority" binding:"omitempty,task_priority"`
	EstimatedComplexity *int         `json:"estimatedComplexity" binding:"omitempty,min=1,max=5"`
	DueDate             *models.Date `json:"dueDate" binding:"required"`
}

type updateStatusRequest struct {
	Status              string  `json:"status" binding:"required,task_status"`
	Priority            *string `json:"priority" binding:"omitempty,task_priority"`
	EstimatedComplexity *int    `json:"estimatedComplexity" binding:"omitempty,min=1,max=5"`
}

// handleCreateTask inserts a new task into a project.
func (s *Server) handleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := s.tasks.Create(c.Request.Context(), service.CreateTaskInput{
		ProjectID:           req.ProjectID,
		Title:               req.Title,
		Description:         req.Description,
		AssigneeID:          req.AssigneeID,
		Status:              req.Status,
		Priority:            req.Priority,
		EstimatedComplexity: req.EstimatedComplexity,
		DueDate:             req.DueDate,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/api/tasks/%d", task.ID))
	respondSuccess(c, http.StatusCreated, task, "task created")
}

// handleGetTask returns a single task by id.
func (s *Server) handleGetTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	task, err := s.tasks.Get(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, task, "")
}

// handleUpdateTaskStatus moves a task to a new status.
func (s *Server) handleUpdateTaskStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := s.tasks.UpdateStatus(c.Request.Context(), id, service.UpdateStatusInput{
		Status:              req.Status,
		Priority:            req.Priority,
		EstimatedComplexity: req.EstimatedComplexity,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, task, "task status updated")
}

// handleTasksDueSoon lists open tasks due within the next days (default 7).
func (s *Server) handleTasksDueSoon(c *gin.Context) {
	days := service.DefaultDueSoonDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, envelope{Success: false, Message: "invalid range", Errors: []string{"days: must be an integer"}})
			return
		}
		days = parsed
	}

	tasks, err := s.tasks.DueSoon(c.Request.Context(), days)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, tasks, "")
}
