package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"teamtasks/internal/service"
)

// handleListProjects returns all projects with their task counters.
func (s *Server) handleListProjects(c *gin.Context) {
	projects, err := s.directory.ProjectsWithStats(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, projects, "")
}

// handleGetProject returns a single project by id.
func (s *Server) handleGetProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	project, err := s.directory.Project(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, project, "")
}

// handleListTasks pages through a project's tasks with optional status and
// assignee filters.
func (s *Server) handleListTasks(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	query := service.TaskQuery{Status: c.Query("status")}
	if raw := strings.TrimSpace(c.Query("assigneeId")); raw != "" {
		assignee, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, envelope{Success: false, Message: "invalid filter", Errors: []string{"assigneeId: must be an integer"}})
			return
		}
		query.AssigneeID = &assignee
	}

	page, err := s.tasks.ListByProject(c.Request.Context(), projectID, query, pageFromQuery(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, page, "")
}
