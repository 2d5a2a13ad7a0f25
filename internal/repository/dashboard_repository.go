package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nunukkam/admin-portal-api/internal/models"
)

// DashboardRepository aggregates headline counters across resources for the
// landing screen.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository constructs a DashboardRepository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Summary computes the full counter set in a single round-trip.
func (r *DashboardRepository) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	const query = `SELECT
        (SELECT COUNT(*) FROM courses) AS courses,
        (SELECT COUNT(*) FROM courses WHERE status = $1) AS published_courses,
        (SELECT COUNT(*) FROM chapters) AS chapters,
        (SELECT COUNT(*) FROM colleges) AS colleges,
        (SELECT COALESCE(SUM(jsonb_array_length(students)), 0) FROM colleges) AS students,
        (SELECT COUNT(*) FROM users WHERE status = $2) AS active_users,
        (SELECT COUNT(*) FROM roles) AS roles,
        (SELECT COUNT(*) FROM notifications WHERE cleared = FALSE AND read = FALSE) AS notifications`

	var row struct {
		Courses          int `db:"courses"`
		PublishedCourses int `db:"published_courses"`
		Chapters         int `db:"chapters"`
		Colleges         int `db:"colleges"`
		Students         int `db:"students"`
		ActiveUsers      int `db:"active_users"`
		Roles            int `db:"roles"`
		Notifications    int `db:"notifications"`
	}
	if err := r.db.GetContext(ctx, &row, query, models.CourseStatusPublished, models.UserStatusActive); err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}

	return &models.DashboardSummary{
		Courses:          row.Courses,
		PublishedCourses: row.PublishedCourses,
		Chapters:         row.Chapters,
		Colleges:         row.Colleges,
		Students:         row.Students,
		ActiveUsers:      row.ActiveUsers,
		Roles:            row.Roles,
		Notifications:    row.Notifications,
		GeneratedAt:      time.Now().UTC(),
	}, nil
}
