package service

import (
	"context"

	"teamtasks/internal/models"
)

// DirectoryService exposes the pre-seeded developers and projects.
type DirectoryService struct {
	developers DeveloperReader
	projects   ProjectReader
}

// NewDirectoryService builds a DirectoryService.
func NewDirectoryService(developers DeveloperReader, projects ProjectReader) *DirectoryService {
	return &DirectoryService{developers: developers, projects: projects}
}

// ActiveDevelopers lists developers that can take new work.
func (s *DirectoryService) ActiveDevelopers(ctx context.Context) ([]models.Developer, error) {
	developers, err := s.developers.ListActiveDevelopers(ctx)
	if developers == nil && err == nil {
		developers = []models.Developer{}
	}
	return developers, err
}

// Developer returns one developer, active or not.
func (s *DirectoryService) Developer(ctx context.Context, id int64) (models.Developer, error) {
	return s.developers.GetDeveloper(ctx, id)
}

// ProjectsWithStats lists all projects with their task counters.
func (s *DirectoryService) ProjectsWithStats(ctx context.Context) ([]models.ProjectWithStats, error) {
	projects, err := s.projects.ListProjectsWithStats(ctx)
	if projects == nil && err == nil {
		projects = []models.ProjectWithStats{}
	}
	return projects, err
}

// Project returns one project without task counters.
func (s *DirectoryService) Project(ctx context.Context, id int64) (models.Project, error) {
	return s.projects.GetProject(ctx, id)
}
