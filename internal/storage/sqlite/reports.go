package sqlite

import (
	"context"
	"fmt"

	"teamtasks/internal/models"
)

// Every report groups first and pages the grouped rows. The count queries
// therefore count groups (developers or projects), never task rows.

const activeDevelopersCount = `SELECT COUNT(*) FROM developers WHERE is_active = 1`

const developerWorkloadQuery = `SELECT d.id AS developer_id,
            d.first_name || ' ' || d.last_name AS developer_name,
            COUNT(CASE WHEN t.status <> 'Completed' THEN 1 END) AS open_tasks_count,
            COALESCE(AVG(CASE WHEN t.status <> 'Completed' THEN t.estimated_complexity END), 0.0) AS average_estimated_complexity
        FROM developers d
        LEFT JOIN tasks t ON t.assignee_id = d.id
        WHERE d.is_active = 1
        GROUP BY d.id, d.first_name, d.last_name
        ORDER BY d.id`

const projectHealthQuery = `SELECT p.id AS project_id,
            p.name AS project_name,
            COUNT(t.id) AS total_tasks,
            COUNT(CASE WHEN t.status <> 'Completed' THEN 1 END) AS open_tasks,
            COUNT(CASE WHEN t.status = 'Completed' THEN 1 END) AS completed_tasks
        FROM projects p
        LEFT JOIN tasks t ON t.project_id = p.id
        GROUP BY p.id, p.name
        ORDER BY p.id`

// Delays are whole days between the completion day and the due day, floored
// at zero. The predicted date adds the unrounded average to the latest open
// due date and truncates to a day. A developer is flagged when the prediction
// lands after the latest due date or the average delay reaches three days.
const developerDelayRiskQuery = `WITH developer_stats AS (
            SELECT d.id AS developer_id,
                d.first_name || ' ' || d.last_name AS developer_name,
                COUNT(CASE WHEN t.status <> 'Completed' THEN 1 END) AS open_tasks_count,
                COALESCE(AVG(CASE WHEN t.status = 'Completed' THEN
                    CASE
                        WHEN julianday(date(t.completion_date)) > julianday(t.due_date)
                            THEN julianday(date(t.completion_date)) - julianday(t.due_date)
                        ELSE 0
                    END
                END), 0.0) AS avg_delay_days,
                MIN(CASE WHEN t.status <> 'Completed' THEN t.due_date END) AS nearest_due_date,
                MAX(CASE WHEN t.status <> 'Completed' THEN t.due_date END) AS latest_due_date
            FROM developers d
            LEFT JOIN tasks t ON t.assignee_id = d.id
            WHERE d.is_active = 1
            GROUP BY d.id, d.first_name, d.last_name
        )
        SELECT developer_id,
            developer_name,
            open_tasks_count,
            ROUND(avg_delay_days, 1) AS avg_delay_days,
            nearest_due_date,
            latest_due_date,
            CASE WHEN latest_due_date IS NULL THEN NULL
                ELSE date(julianday(latest_due_date) + avg_delay_days)
            END AS predicted_completion_date,
            CASE
                WHEN latest_due_date IS NOT NULL
                    AND (julianday(latest_due_date) + avg_delay_days > julianday(latest_due_date)
                        OR avg_delay_days >= 3)
                    THEN 1
                ELSE 0
            END AS high_risk_flag
        FROM developer_stats
        ORDER BY developer_id`

// DeveloperWorkload reports open work per active developer.
func (s *Store) DeveloperWorkload(ctx context.Context, req models.PageRequest) (models.Page[models.DeveloperWorkload], error) {
	page, err := paginate[models.DeveloperWorkload](ctx, s.db, activeDevelopersCount, developerWorkloadQuery, req)
	if err != nil {
		return models.Page[models.DeveloperWorkload]{}, fmt.Errorf("developer workload: %w", err)
	}
	return page, nil
}

// ProjectHealth reports task counters for every project, including empty ones.
func (s *Store) ProjectHealth(ctx context.Context, req models.PageRequest) (models.Page[models.ProjectHealth], error) {
	page, err := paginate[models.ProjectHealth](ctx, s.db, `SELECT COUNT(*) FROM projects`, projectHealthQuery, req)
	if err != nil {
		return models.Page[models.ProjectHealth]{}, fmt.Errorf("project health: %w", err)
	}
	return page, nil
}

// DeveloperDelayRisk reports historical delay and predicted completion per
// active developer.
func (s *Store) DeveloperDelayRisk(ctx context.Context, req models.PageRequest) (models.Page[models.DeveloperDelayRisk], error) {
	page, err := paginate[models.DeveloperDelayRisk](ctx, s.db, activeDevelopersCount, developerDelayRiskQuery, req)
	if err != nil {
		return models.Page[models.DeveloperDelayRisk]{}, fmt.Errorf("developer delay risk: %w", err)
	}
	return page, nil
}
