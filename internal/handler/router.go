package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/nunukkam/admin-portal-api/internal/middleware"
	"github.com/nunukkam/admin-portal-api/internal/service"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Auth          *AuthHandler
	Users         *UserHandler
	Roles         *RoleHandler
	Designations  *DesignationHandler
	Courses       *CourseHandler
	Chapters      *ChapterHandler
	Colleges      *CollegeHandler
	Notifications *NotificationHandler
	Reports       *ReportHandler
	Certificates  *CertificateHandler
	Audit         *AuditHandler
	Dashboard     *DashboardHandler
	Navigation    *NavigationHandler
	Metrics       *MetricsHandler
}

// RegisterRoutes mounts all API routes under /api/v1. Download endpoints are
// public: the signed token in the query string authorises them. Resource
// groups whose services do not write their own audit trail get the audit
// middleware instead.
func RegisterRoutes(r *gin.Engine, h Handlers, authSvc *service.AuthService, audit middleware.AuditWriter) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Health)
	r.GET("/metrics", h.Metrics.Prometheus)

	v1 := r.Group("/api/v1")

	v1.POST("/auth/login", h.Auth.Login)
	v1.POST("/auth/refresh", h.Auth.Refresh)

	v1.GET("/reports/download", h.Reports.Download)
	v1.GET("/certificates/download", h.Certificates.Download)

	authed := v1.Group("")
	authed.Use(middleware.JWT(authSvc))

	authed.POST("/auth/logout", h.Auth.Logout)
	authed.PUT("/auth/password", h.Auth.ChangePassword)
	authed.GET("/auth/me", h.Auth.Me)

	authed.GET("/navigation/breadcrumbs", h.Navigation.Breadcrumbs)
	authed.GET("/navigation/search", h.Navigation.Search)

	authed.GET("/dashboard/summary", middleware.WithResponseMeta(), h.Dashboard.Summary)
	authed.GET("/dashboard/metrics", middleware.RequirePermission("dashboard", "metrics"), h.Dashboard.SystemMetrics)

	users := authed.Group("/users")
	{
		users.GET("", middleware.RequirePermission("users", "view"), h.Users.List)
		users.GET("/:id", middleware.RequireSelfOrPermission("users", "view"), h.Users.Get)
		users.POST("", middleware.RequirePermission("users", "create"), h.Users.Create)
		users.PUT("/:id", middleware.RequirePermission("users", "edit"), h.Users.Update)
		users.DELETE("/:id", middleware.RequirePermission("users", "delete"), h.Users.Deactivate)
		users.POST("/:id/reactivate", middleware.RequirePermission("users", "edit"), h.Users.Reactivate)
	}

	roles := authed.Group("/roles")
	{
		roles.GET("", middleware.RequirePermission("roles", "view"), h.Roles.List)
		roles.GET("/:id", middleware.RequirePermission("roles", "view"), h.Roles.Get)
		roles.POST("", middleware.RequirePermission("roles", "create"), h.Roles.Create)
		roles.PUT("/:id", middleware.RequirePermission("roles", "edit"), h.Roles.Update)
		roles.PATCH("/:id/permissions/toggle", middleware.RequirePermission("roles", "edit"), h.Roles.TogglePermission)
		roles.DELETE("/:id", middleware.RequirePermission("roles", "delete"), h.Roles.Delete)
	}

	designations := authed.Group("/designations")
	designations.Use(middleware.Audit(audit, "designations"))
	{
		designations.GET("", middleware.RequirePermission("users", "view"), h.Designations.List)
		designations.POST("", middleware.RequirePermission("users", "create"), h.Designations.Create)
		designations.PUT("/:id", middleware.RequirePermission("users", "edit"), h.Designations.Update)
		designations.DELETE("/:id", middleware.RequirePermission("users", "delete"), h.Designations.Delete)
	}

	courses := authed.Group("/courses")
	courses.Use(middleware.Audit(audit, "courses"))
	{
		courses.GET("", middleware.RequirePermission("courses", "view"), h.Courses.List)
		courses.GET("/:id", middleware.RequirePermission("courses", "view"), h.Courses.Get)
		courses.POST("", middleware.RequirePermission("courses", "create"), h.Courses.Create)
		courses.PUT("/:id", middleware.RequirePermission("courses", "edit"), h.Courses.Update)
		courses.DELETE("/:id", middleware.RequirePermission("courses", "delete"), h.Courses.Delete)
	}

	skills := authed.Group("/skills")
	skills.Use(middleware.Audit(audit, "skills"))
	{
		skills.GET("", middleware.RequirePermission("courses", "view"), h.Courses.ListSkills)
		skills.POST("", middleware.RequirePermission("courses", "create"), h.Courses.CreateSkill)
		skills.PUT("/:id", middleware.RequirePermission("courses", "edit"), h.Courses.UpdateSkill)
		skills.DELETE("/:id", middleware.RequirePermission("courses", "delete"), h.Courses.DeleteSkill)
	}

	chapters := authed.Group("/chapters")
	chapters.Use(middleware.Audit(audit, "chapters"))
	{
		chapters.GET("", middleware.RequirePermission("courses", "view"), h.Chapters.List)
		chapters.GET("/:id", middleware.RequirePermission("courses", "view"), h.Chapters.Get)
		chapters.POST("", middleware.RequirePermission("courses", "create"), h.Chapters.Create)
		chapters.PUT("/:id", middleware.RequirePermission("courses", "edit"), h.Chapters.Update)
		chapters.DELETE("/:id", middleware.RequirePermission("courses", "delete"), h.Chapters.Delete)
		chapters.POST("/:id/assessments", middleware.RequirePermission("courses", "edit"), h.Chapters.AddAssessment)
		chapters.PUT("/:id/assessments/:assessmentId", middleware.RequirePermission("courses", "edit"), h.Chapters.UpdateAssessment)
		chapters.DELETE("/:id/assessments/:assessmentId", middleware.RequirePermission("courses", "edit"), h.Chapters.RemoveAssessment)
	}

	colleges := authed.Group("/colleges")
	colleges.Use(middleware.Audit(audit, "colleges"))
	{
		colleges.GET("", middleware.RequirePermission("colleges", "view"), h.Colleges.List)
		colleges.GET("/:id", middleware.RequirePermission("colleges", "view"), h.Colleges.Get)
		colleges.POST("", middleware.RequirePermission("colleges", "create"), h.Colleges.Create)
		colleges.PUT("/:id", middleware.RequirePermission("colleges", "edit"), h.Colleges.Update)
		colleges.DELETE("/:id", middleware.RequirePermission("colleges", "delete"), h.Colleges.Delete)
		colleges.POST("/:id/students", middleware.RequirePermission("colleges", "edit"), h.Colleges.AddStudent)
		colleges.PUT("/:id/students/:studentId", middleware.RequirePermission("colleges", "edit"), h.Colleges.UpdateStudent)
		colleges.DELETE("/:id/students/:studentId", middleware.RequirePermission("colleges", "edit"), h.Colleges.RemoveStudent)
		colleges.GET("/:id/certificates", middleware.RequirePermission("certificates", "view"), h.Certificates.ListByCollege)
	}

	notifications := authed.Group("/notifications")
	notifications.Use(middleware.Audit(audit, "notifications"))
	{
		notifications.GET("", h.Notifications.List)
		notifications.POST("", middleware.RequirePermission("notifications", "create"), h.Notifications.Publish)
		notifications.POST("/:id/read", h.Notifications.MarkRead)
		notifications.POST("/read-all", h.Notifications.MarkAllRead)
		notifications.DELETE("", h.Notifications.ClearAll)
	}

	reports := authed.Group("/reports")
	{
		reports.GET("", middleware.RequirePermission("reports", "view"), h.Reports.ListMine)
		reports.POST("", middleware.RequirePermission("reports", "create"), h.Reports.Generate)
		reports.GET("/:id", middleware.RequirePermission("reports", "view"), h.Reports.Status)
	}

	certificates := authed.Group("/certificates")
	{
		certificates.POST("", middleware.RequirePermission("certificates", "create"), h.Certificates.Issue)
		certificates.GET("/:id", middleware.RequirePermission("certificates", "view"), h.Certificates.Get)
	}

	authed.GET("/audit-logs", middleware.RequirePermission("audit", "view"), h.Audit.List)
}
