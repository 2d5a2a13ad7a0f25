package models

import "time"

// NotificationAudience scopes who a notification targets.
type NotificationAudience string

const (
	AudienceAll      NotificationAudience = "all"
	AudienceAdmins   NotificationAudience = "admins"
	AudienceTrainers NotificationAudience = "trainers"
)

// Notification is a broadcast message shown in the portal header.
type Notification struct {
	ID        string               `db:"id" json:"id"`
	Title     string               `db:"title" json:"title"`
	Body      string               `db:"body" json:"body"`
	Audience  NotificationAudience `db:"audience" json:"audience"`
	Read      bool                 `db:"read" json:"read"`
	Cleared   bool                 `db:"cleared" json:"cleared"`
	CreatedBy string               `db:"created_by" json:"created_by"`
	CreatedAt time.Time            `db:"created_at" json:"created_at"`
}

// NotificationFilter captures list filtering for notifications.
type NotificationFilter struct {
	UnreadOnly     bool
	IncludeCleared bool
	Page           int
	PageSize       int
}
