package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleListDevelopers returns the active developers.
func (s *Server) handleListDevelopers(c *gin.Context) {
	developers, err := s.directory.ActiveDevelopers(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, developers, "")
}

// handleGetDeveloper returns a single developer by id.
func (s *Server) handleGetDeveloper(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	developer, err := s.directory.Developer(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, developer, "")
}

// handleListDeveloperTasks returns every task assigned to a developer.
func (s *Server) handleListDeveloperTasks(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	tasks, err := s.tasks.ListByDeveloper(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, tasks, "")
}
