package models

import "math"

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPage keeps (page-1)*pageSize within int for every allowed page size.
	MaxPage = math.MaxInt / MaxPageSize
)

// PageRequest selects one page of a listing. Page is 1-based.
type PageRequest struct {
	Page     int
	PageSize int
}

// NewPageRequest clamps raw paging input: page below 1 becomes 1 and page is
// capped at MaxPage, a page size below 1 falls back to the default and
// anything above MaxPageSize is capped.
func NewPageRequest(page, pageSize int) PageRequest {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return PageRequest{Page: page, PageSize: pageSize}
}

// Offset is the number of rows skipped before this page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Page is one slice of a larger ordered result. TotalCount is the size of the
// whole result, not of Items.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
}

// NewPage wraps items for req, never returning a nil Items slice.
func NewPage[T any](items []T, total int64, req PageRequest) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, TotalCount: total, Page: req.Page, PageSize: req.PageSize}
}

// TotalPages is the number of pages needed for TotalCount.
func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return int((p.TotalCount + int64(p.PageSize) - 1) / int64(p.PageSize))
}

// DeveloperWorkload is one row of the workload report.
type DeveloperWorkload struct {
	DeveloperID                int64   `json:"developerId" db:"developer_id"`
	DeveloperName              string  `json:"developerName" db:"developer_name"`
	OpenTasksCount             int64   `json:"openTasksCount" db:"open_tasks_count"`
	AverageEstimatedComplexity float64 `json:"averageEstimatedComplexity" db:"average_estimated_complexity"`
}

// ProjectHealth is one row of the project health report.
type ProjectHealth struct {
	ProjectID      int64  `json:"projectId" db:"project_id"`
	ProjectName    string `json:"projectName" db:"project_name"`
	TotalTasks     int64  `json:"totalTasks" db:"total_tasks"`
	OpenTasks      int64  `json:"openTasks" db:"open_tasks"`
	CompletedTasks int64  `json:"completedTasks" db:"completed_tasks"`
}

// DeveloperDelayRisk is one row of the delay-risk report. The date fields are
// nil for developers without open tasks.
type DeveloperDelayRisk struct {
	DeveloperID             int64   `json:"developerId" db:"developer_id"`
	DeveloperName           string  `json:"developerName" db:"developer_name"`
	OpenTasksCount          int64   `json:"openTasksCount" db:"open_tasks_count"`
	AvgDelayDays            float64 `json:"avgDelayDays" db:"avg_delay_days"`
	NearestDueDate          *Date   `json:"nearestDueDate" db:"nearest_due_date"`
	LatestDueDate           *Date   `json:"latestDueDate" db:"latest_due_date"`
	PredictedCompletionDate *Date   `json:"predictedCompletionDate" db:"predicted_completion_date"`
	HighRiskFlag            int     `json:"highRiskFlag" db:"high_risk_flag"`
}
