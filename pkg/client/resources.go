package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/nunukkam/admin-portal-api/internal/models"
	"github.com/nunukkam/admin-portal-api/internal/navigation"
	"github.com/nunukkam/admin-portal-api/internal/service"
)

// Auth returns the authentication sub-client.
func (c *Client) Auth() *AuthClient { return &AuthClient{c} }

// Users returns the user management sub-client.
func (c *Client) Users() *UserClient { return &UserClient{c} }

// Roles returns the role sub-client.
func (c *Client) Roles() *RoleClient { return &RoleClient{c} }

// Designations returns the designation sub-client.
func (c *Client) Designations() *DesignationClient { return &DesignationClient{c} }

// Courses returns the course and skill sub-client.
func (c *Client) Courses() *CourseClient { return &CourseClient{c} }

// Chapters returns the chapter sub-client.
func (c *Client) Chapters() *ChapterClient { return &ChapterClient{c} }

// Colleges returns the college sub-client.
func (c *Client) Colleges() *CollegeClient { return &CollegeClient{c} }

// Notifications returns the notification sub-client.
func (c *Client) Notifications() *NotificationClient { return &NotificationClient{c} }

// Reports returns the report sub-client.
func (c *Client) Reports() *ReportClient { return &ReportClient{c} }

// Certificates returns the certificate sub-client.
func (c *Client) Certificates() *CertificateClient { return &CertificateClient{c} }

// Dashboard returns the dashboard sub-client.
func (c *Client) Dashboard() *DashboardClient { return &DashboardClient{c} }

// Navigation returns the navigation sub-client.
func (c *Client) Navigation() *NavigationClient { return &NavigationClient{c} }

// AuthClient calls the authentication endpoints.
type AuthClient struct{ c *Client }

// Login authenticates and stores the issued token pair on the client.
func (a *AuthClient) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var res models.LoginResponse
	body := map[string]string{"email": email, "password": password}
	if _, err := a.c.do(ctx, http.MethodPost, "/api/v1/auth/login", nil, body, &res); err != nil {
		return nil, err
	}
	a.c.SetSession(res.AccessToken, res.RefreshToken)
	return &res, nil
}

// Logout revokes the stored refresh token and clears the session.
func (a *AuthClient) Logout(ctx context.Context) error {
	_, refreshToken := a.c.Session()
	body := map[string]string{"refresh_token": refreshToken}
	_, err := a.c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, body, nil)
	a.c.ClearSession()
	return err
}

// ChangePassword updates the caller's password.
func (a *AuthClient) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{"old_password": oldPassword, "new_password": newPassword}
	_, err := a.c.do(ctx, http.MethodPut, "/api/v1/auth/password", nil, body, nil)
	return err
}

// UserClient calls the user endpoints.
type UserClient struct{ c *Client }

// List fetches users matching the filter.
func (u *UserClient) List(ctx context.Context, filter models.UserFilter) ([]models.User, *models.Pagination, error) {
	query := map[string]string{}
	if filter.Search != "" {
		query["search"] = filter.Search
	}
	if filter.RoleID != "" {
		query["roleId"] = filter.RoleID
	}
	if filter.DesignationID != "" {
		query["designationId"] = filter.DesignationID
	}
	if filter.Status != nil {
		query["status"] = string(*filter.Status)
	}
	if filter.Page > 0 {
		query["page"] = strconv.Itoa(filter.Page)
	}
	if filter.PageSize > 0 {
		query["limit"] = strconv.Itoa(filter.PageSize)
	}
	var users []models.User
	pagination, err := u.c.do(ctx, http.MethodGet, "/api/v1/users", query, nil, &users)
	return users, pagination, err
}

// Get fetches a single user.
func (u *UserClient) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if _, err := u.c.do(ctx, http.MethodGet, "/api/v1/users/"+id, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create adds a user.
func (u *UserClient) Create(ctx context.Context, req service.CreateUserRequest) (*models.User, error) {
	var user models.User
	if _, err := u.c.do(ctx, http.MethodPost, "/api/v1/users", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update edits a user.
func (u *UserClient) Update(ctx context.Context, id string, req service.UpdateUserRequest) (*models.User, error) {
	var user models.User
	if _, err := u.c.do(ctx, http.MethodPut, "/api/v1/users/"+id, nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Deactivate soft-deletes a user.
func (u *UserClient) Deactivate(ctx context.Context, id string) error {
	_, err := u.c.do(ctx, http.MethodDelete, "/api/v1/users/"+id, nil, nil, nil)
	return err
}

// Reactivate restores a deactivated user.
func (u *UserClient) Reactivate(ctx context.Context, id string) error {
	_, err := u.c.do(ctx, http.MethodPost, "/api/v1/users/"+id+"/reactivate", nil, nil, nil)
	return err
}

// RoleClient calls the role endpoints.
type RoleClient struct{ c *Client }

// List fetches all roles.
func (r *RoleClient) List(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	_, err := r.c.do(ctx, http.MethodGet, "/api/v1/roles", nil, nil, &roles)
	return roles, err
}

// Get fetches a role with its grants.
func (r *RoleClient) Get(ctx context.Context, id string) (*models.Role, error) {
	var role models.Role
	if _, err := r.c.do(ctx, http.MethodGet, "/api/v1/roles/"+id, nil, nil, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// Create adds a role.
func (r *RoleClient) Create(ctx context.Context, req service.CreateRoleRequest) (*models.Role, error) {
	var role models.Role
	if _, err := r.c.do(ctx, http.MethodPost, "/api/v1/roles", nil, req, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// Update replaces a role's title and grants.
func (r *RoleClient) Update(ctx context.Context, id string, req service.UpdateRoleRequest) (*models.Role, error) {
	var role models.Role
	if _, err := r.c.do(ctx, http.MethodPut, "/api/v1/roles/"+id, nil, req, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// TogglePermission flips one grant and returns the updated role.
func (r *RoleClient) TogglePermission(ctx context.Context, id, module, action string) (*models.Role, error) {
	var role models.Role
	body := service.TogglePermissionRequest{Module: module, Action: action}
	if _, err := r.c.do(ctx, http.MethodPatch, "/api/v1/roles/"+id+"/permissions/toggle", nil, body, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// Delete removes a role.
func (r *RoleClient) Delete(ctx context.Context, id string) error {
	_, err := r.c.do(ctx, http.MethodDelete, "/api/v1/roles/"+id, nil, nil, nil)
	return err
}

// DesignationClient calls the designation endpoints.
type DesignationClient struct{ c *Client }

// List fetches all designations.
func (d *DesignationClient) List(ctx context.Context) ([]models.Designation, error) {
	var designations []models.Designation
	_, err := d.c.do(ctx, http.MethodGet, "/api/v1/designations", nil, nil, &designations)
	return designations, err
}

// Create adds a designation.
func (d *DesignationClient) Create(ctx context.Context, title string) (*models.Designation, error) {
	var designation models.Designation
	body := service.DesignationRequest{Title: title}
	if _, err := d.c.do(ctx, http.MethodPost, "/api/v1/designations", nil, body, &designation); err != nil {
		return nil, err
	}
	return &designation, nil
}

// Update renames a designation.
func (d *DesignationClient) Update(ctx context.Context, id, title string) (*models.Designation, error) {
	var designation models.Designation
	body := service.DesignationRequest{Title: title}
	if _, err := d.c.do(ctx, http.MethodPut, "/api/v1/designations/"+id, nil, body, &designation); err != nil {
		return nil, err
	}
	return &designation, nil
}

// Delete removes a designation.
func (d *DesignationClient) Delete(ctx context.Context, id string) error {
	_, err := d.c.do(ctx, http.MethodDelete, "/api/v1/designations/"+id, nil, nil, nil)
	return err
}

// CourseClient calls the course and skill endpoints.
type CourseClient struct{ c *Client }

// List fetches courses matching the filter.
func (cc *CourseClient) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, *models.Pagination, error) {
	query := map[string]string{}
	if filter.Search != "" {
		query["search"] = filter.Search
	}
	if filter.Status != nil {
		query["status"] = string(*filter.Status)
	}
	if filter.Page > 0 {
		query["page"] = strconv.Itoa(filter.Page)
	}
	if filter.PageSize > 0 {
		query["limit"] = strconv.Itoa(filter.PageSize)
	}
	var courses []models.Course
	pagination, err := cc.c.do(ctx, http.MethodGet, "/api/v1/courses", query, nil, &courses)
	return courses, pagination, err
}

// Get fetches a course.
func (cc *CourseClient) Get(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	if _, err := cc.c.do(ctx, http.MethodGet, "/api/v1/courses/"+id, nil, nil, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// Create adds a course.
func (cc *CourseClient) Create(ctx context.Context, req service.CourseRequest) (*models.Course, error) {
	var course models.Course
	if _, err := cc.c.do(ctx, http.MethodPost, "/api/v1/courses", nil, req, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// Update edits a course.
func (cc *CourseClient) Update(ctx context.Context, id string, req service.CourseRequest) (*models.Course, error) {
	var course models.Course
	if _, err := cc.c.do(ctx, http.MethodPut, "/api/v1/courses/"+id, nil, req, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// Delete removes a course.
func (cc *CourseClient) Delete(ctx context.Context, id string) error {
	_, err := cc.c.do(ctx, http.MethodDelete, "/api/v1/courses/"+id, nil, nil, nil)
	return err
}

// ListSkills fetches the skill catalogue.
func (cc *CourseClient) ListSkills(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	_, err := cc.c.do(ctx, http.MethodGet, "/api/v1/skills", nil, nil, &skills)
	return skills, err
}

// CreateSkill adds a skill.
func (cc *CourseClient) CreateSkill(ctx context.Context, req service.SkillRequest) (*models.Skill, error) {
	var skill models.Skill
	if _, err := cc.c.do(ctx, http.MethodPost, "/api/v1/skills", nil, req, &skill); err != nil {
		return nil, err
	}
	return &skill, nil
}

// DeleteSkill removes a skill.
func (cc *CourseClient) DeleteSkill(ctx context.Context, id string) error {
	_, err := cc.c.do(ctx, http.MethodDelete, "/api/v1/skills/"+id, nil, nil, nil)
	return err
}

// ChapterClient calls the chapter endpoints.
type ChapterClient struct{ c *Client }

// List fetches chapters, optionally filtered by search.
func (ch *ChapterClient) List(ctx context.Context, search string) ([]models.Chapter, error) {
	query := map[string]string{}
	if search != "" {
		query["search"] = search
	}
	var chapters []models.Chapter
	_, err := ch.c.do(ctx, http.MethodGet, "/api/v1/chapters", query, nil, &chapters)
	return chapters, err
}

// Get fetches a chapter with its assessments.
func (ch *ChapterClient) Get(ctx context.Context, id string) (*models.Chapter, error) {
	var chapter models.Chapter
	if _, err := ch.c.do(ctx, http.MethodGet, "/api/v1/chapters/"+id, nil, nil, &chapter); err != nil {
		return nil, err
	}
	return &chapter, nil
}

// Create adds a chapter.
func (ch *ChapterClient) Create(ctx context.Context, req service.ChapterRequest) (*models.Chapter, error) {
	var chapter models.Chapter
	if _, err := ch.c.do(ctx, http.MethodPost, "/api/v1/chapters", nil, req, &chapter); err != nil {
		return nil, err
	}
	return &chapter, nil
}

// AddAssessment attaches an assessment to a chapter.
func (ch *ChapterClient) AddAssessment(ctx context.Context, chapterID string, req service.AssessmentRequest) (*models.Assessment, error) {
	var assessment models.Assessment
	if _, err := ch.c.do(ctx, http.MethodPost, "/api/v1/chapters/"+chapterID+"/assessments", nil, req, &assessment); err != nil {
		return nil, err
	}
	return &assessment, nil
}

// CollegeClient calls the college endpoints.
type CollegeClient struct{ c *Client }

// List fetches colleges matching the filter.
func (cl *CollegeClient) List(ctx context.Context, filter models.CollegeFilter) ([]models.College, *models.Pagination, error) {
	query := map[string]string{}
	if filter.Search != "" {
		query["search"] = filter.Search
	}
	if filter.State != "" {
		query["state"] = filter.State
	}
	if filter.Page > 0 {
		query["page"] = strconv.Itoa(filter.Page)
	}
	if filter.PageSize > 0 {
		query["limit"] = strconv.Itoa(filter.PageSize)
	}
	var colleges []models.College
	pagination, err := cl.c.do(ctx, http.MethodGet, "/api/v1/colleges", query, nil, &colleges)
	return colleges, pagination, err
}

// Get fetches a college with roster and schedules.
func (cl *CollegeClient) Get(ctx context.Context, id string) (*models.College, error) {
	var college models.College
	if _, err := cl.c.do(ctx, http.MethodGet, "/api/v1/colleges/"+id, nil, nil, &college); err != nil {
		return nil, err
	}
	return &college, nil
}

// Create adds a college.
func (cl *CollegeClient) Create(ctx context.Context, req service.CollegeRequest) (*models.College, error) {
	var college models.College
	if _, err := cl.c.do(ctx, http.MethodPost, "/api/v1/colleges", nil, req, &college); err != nil {
		return nil, err
	}
	return &college, nil
}

// AddStudent adds a student to the college roster.
func (cl *CollegeClient) AddStudent(ctx context.Context, collegeID string, req service.StudentRequest) (*models.Student, error) {
	var student models.Student
	if _, err := cl.c.do(ctx, http.MethodPost, "/api/v1/colleges/"+collegeID+"/students", nil, req, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// RemoveStudent removes a student from the roster.
func (cl *CollegeClient) RemoveStudent(ctx context.Context, collegeID, studentID string) error {
	_, err := cl.c.do(ctx, http.MethodDelete, "/api/v1/colleges/"+collegeID+"/students/"+studentID, nil, nil, nil)
	return err
}

// NotificationClient calls the notification endpoints.
type NotificationClient struct{ c *Client }

// List fetches notifications.
func (n *NotificationClient) List(ctx context.Context, unreadOnly bool) ([]models.Notification, *models.Pagination, error) {
	query := map[string]string{}
	if unreadOnly {
		query["unread"] = "true"
	}
	var notifications []models.Notification
	pagination, err := n.c.do(ctx, http.MethodGet, "/api/v1/notifications", query, nil, &notifications)
	return notifications, pagination, err
}

// Publish creates a notification.
func (n *NotificationClient) Publish(ctx context.Context, req service.PublishNotificationRequest) (*models.Notification, error) {
	var notification models.Notification
	if _, err := n.c.do(ctx, http.MethodPost, "/api/v1/notifications", nil, req, &notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

// MarkRead marks one notification read.
func (n *NotificationClient) MarkRead(ctx context.Context, id string) error {
	_, err := n.c.do(ctx, http.MethodPost, "/api/v1/notifications/"+id+"/read", nil, nil, nil)
	return err
}

// MarkAllRead marks every notification read.
func (n *NotificationClient) MarkAllRead(ctx context.Context) error {
	_, err := n.c.do(ctx, http.MethodPost, "/api/v1/notifications/read-all", nil, nil, nil)
	return err
}

// ReportClient calls the report endpoints.
type ReportClient struct{ c *Client }

// Generate queues a report export.
func (r *ReportClient) Generate(ctx context.Context, req service.GenerateReportRequest) (*models.ReportJob, error) {
	var job models.ReportJob
	if _, err := r.c.do(ctx, http.MethodPost, "/api/v1/reports", nil, req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// Status fetches a report job's state, including the download token when done.
func (r *ReportClient) Status(ctx context.Context, jobID string) (*models.ReportJob, error) {
	var job models.ReportJob
	if _, err := r.c.do(ctx, http.MethodGet, "/api/v1/reports/"+jobID, nil, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// ListMine fetches the caller's recent report jobs.
func (r *ReportClient) ListMine(ctx context.Context, limit int) ([]models.ReportJob, error) {
	query := map[string]string{}
	if limit > 0 {
		query["limit"] = strconv.Itoa(limit)
	}
	var reportJobs []models.ReportJob
	_, err := r.c.do(ctx, http.MethodGet, "/api/v1/reports", query, nil, &reportJobs)
	return reportJobs, err
}

// CertificateClient calls the certificate endpoints.
type CertificateClient struct{ c *Client }

// Issue requests a course completion certificate.
func (cr *CertificateClient) Issue(ctx context.Context, req service.IssueCertificateRequest) (*models.Certificate, error) {
	var cert models.Certificate
	if _, err := cr.c.do(ctx, http.MethodPost, "/api/v1/certificates", nil, req, &cert); err != nil {
		return nil, err
	}
	return &cert, nil
}

// ListByCollege fetches certificates issued for a college.
func (cr *CertificateClient) ListByCollege(ctx context.Context, collegeID string) ([]models.Certificate, error) {
	var certs []models.Certificate
	_, err := cr.c.do(ctx, http.MethodGet, "/api/v1/colleges/"+collegeID+"/certificates", nil, nil, &certs)
	return certs, err
}

// DashboardClient calls the dashboard endpoints.
type DashboardClient struct{ c *Client }

// Summary fetches the landing-screen counters.
func (d *DashboardClient) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	var summary models.DashboardSummary
	if _, err := d.c.do(ctx, http.MethodGet, "/api/v1/dashboard/summary", nil, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// NavigationClient calls the navigation endpoints.
type NavigationClient struct{ c *Client }

// Breadcrumbs resolves a route path into a breadcrumb trail.
func (n *NavigationClient) Breadcrumbs(ctx context.Context, path string) ([]navigation.Crumb, error) {
	var trail []navigation.Crumb
	_, err := n.c.do(ctx, http.MethodGet, "/api/v1/navigation/breadcrumbs", map[string]string{"path": path}, nil, &trail)
	return trail, err
}

// Search performs a cross-entity search.
func (n *NavigationClient) Search(ctx context.Context, query string) ([]navigation.SearchResult, error) {
	var results []navigation.SearchResult
	_, err := n.c.do(ctx, http.MethodGet, "/api/v1/navigation/search", map[string]string{"q": query}, nil, &results)
	return results, err
}
