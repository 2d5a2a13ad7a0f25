package models

import "time"

// UserStatus enumerates account lifecycle states. Deletion is soft: the
// status flips to deactivated and can be reversed.
type UserStatus string

const (
	UserStatusActive      UserStatus = "active"
	UserStatusDeactivated UserStatus = "deactivated"
)

// User represents a portal user stored in the users table. Designation and
// role are referenced by id; the legacy title-string matching was dropped.
type User struct {
	ID                 string     `db:"id" json:"id"`
	Email              string     `db:"email" json:"email"`
	PasswordHash       string     `db:"password_hash" json:"-"`
	FullName           string     `db:"full_name" json:"full_name"`
	Phone              string     `db:"phone" json:"phone"`
	DesignationID      string     `db:"designation_id" json:"designation_id"`
	RoleID             string     `db:"role_id" json:"role_id"`
	ReportingManagerID *string    `db:"reporting_manager_id" json:"reporting_manager_id,omitempty"`
	Status             UserStatus `db:"status" json:"status"`
	LastLogin          *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

// Active reports whether the account may authenticate and appear in search.
func (u User) Active() bool {
	return u.Status == UserStatusActive
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	RoleID        string
	DesignationID string
	Status        *UserStatus
	Search        string
	Page          int
	PageSize      int
	SortBy        string
	SortOrder     string
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
