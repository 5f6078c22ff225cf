package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleDeveloperWorkload returns open work per active developer.
func (s *Server) handleDeveloperWorkload(c *gin.Context) {
	page, err := s.dashboard.DeveloperWorkload(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, page, "developer workload retrieved")
}

// handleProjectHealth returns task counters per project.
func (s *Server) handleProjectHealth(c *gin.Context) {
	page, err := s.dashboard.ProjectHealth(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, page, "project health retrieved")
}

// handleDeveloperDelayRisk returns delay history and predictions per developer.
func (s *Server) handleDeveloperDelayRisk(c *gin.Context) {
	page, err := s.dashboard.DeveloperDelayRisk(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, page, "developer delay risk retrieved")
}
