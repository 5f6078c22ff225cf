package service

import (
	"context"

	"teamtasks/internal/models"
)

// DashboardService serves the aggregate reports. Paging input is clamped
// again here so direct callers get the same bounds as HTTP clients.
type DashboardService struct {
	reports ReportReader
}

// NewDashboardService wires the dashboard to a report source.
func NewDashboardService(reports ReportReader) *DashboardService {
	return &DashboardService{reports: reports}
}

// DeveloperWorkload pages open task counts and complexity per active developer.
func (s *DashboardService) DeveloperWorkload(ctx context.Context, req models.PageRequest) (models.Page[models.DeveloperWorkload], error) {
	return s.reports.DeveloperWorkload(ctx, models.NewPageRequest(req.Page, req.PageSize))
}

// ProjectHealth pages task counters per project.
func (s *DashboardService) ProjectHealth(ctx context.Context, req models.PageRequest) (models.Page[models.ProjectHealth], error) {
	return s.reports.ProjectHealth(ctx, models.NewPageRequest(req.Page, req.PageSize))
}

// DeveloperDelayRisk pages delay history and predicted completion per active developer.
func (s *DashboardService) DeveloperDelayRisk(ctx context.Context, req models.PageRequest) (models.Page[models.DeveloperDelayRisk], error) {
	return s.reports.DeveloperDelayRisk(ctx, models.NewPageRequest(req.Page, req.PageSize))
}
