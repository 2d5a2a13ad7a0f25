package models

import "time"

// Role groups users under a title and carries the module permission grants.
type Role struct {
	ID          string        `db:"id" json:"id"`
	Title       string        `db:"title" json:"title"`
	Permissions PermissionSet `db:"permissions" json:"permissions"`
	AddedBy     string        `db:"added_by" json:"added_by"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}

// Designation is a job title users reference by id. It cannot be removed
// while an active user still carries it.
type Designation struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
