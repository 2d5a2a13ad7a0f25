package models

import "time"

// SystemMetrics is a lightweight snapshot of runtime instrumentation.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}

// DashboardSummary aggregates headline counters for the landing screen.
type DashboardSummary struct {
	Courses          int       `json:"courses"`
	PublishedCourses int       `json:"published_courses"`
	Chapters         int       `json:"chapters"`
	Colleges         int       `json:"colleges"`
	Students         int       `json:"students"`
	ActiveUsers      int       `json:"active_users"`
	Roles            int       `json:"roles"`
	Notifications    int       `json:"notifications"`
	GeneratedAt      time.Time `json:"generated_at"`
}
