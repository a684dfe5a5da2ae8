package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-attendance-gateway/internal/middleware"
	"github.com/noah-isme/campus-attendance-gateway/internal/models"
)

// Router groups every handler the gateway mounts.
type Router struct {
	Auth        *AuthHandler
	Schedules   *ScheduleHandler
	Instructors *InstructorHandler
	Users       *UserHandler
	Attendance  *AttendanceHandler
	Rooms       *RoomHandler
	Feedback    *FeedbackHandler
	AuditLogs   *AuditLogHandler
	Health      *HealthHandler

	Authenticator middleware.Authenticator
	Audit         middleware.AuditRecorder
}

// Register mounts the public probes at the root and the API under prefix.
func (rt *Router) Register(r *gin.Engine, prefix string) {
	r.GET("/health", rt.Health.Health)
	r.GET("/ready", rt.Health.Ready)
	r.GET("/metrics", rt.Health.Prometheus)

	api := r.Group(prefix)
	api.Use(middleware.WithResponseMeta())
	api.POST("/auth/login", rt.Auth.Login)

	secured := api.Group("")
	secured.Use(middleware.JWT(rt.Authenticator))
	secured.POST("/auth/logout", rt.Auth.Logout)
	secured.GET("/auth/me", rt.Auth.Me)

	audit := func(action, resource string) gin.HandlerFunc {
		return middleware.Audit(rt.Audit, action, resource)
	}

	admin := secured.Group("/admin")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/instructors", rt.Instructors.List)
		admin.POST("/instructors", audit(models.AuditActionCreate, "instructors"), rt.Instructors.Create)
		admin.PUT("/instructors/:id", audit(models.AuditActionUpdate, "instructors"), rt.Instructors.Update)
		admin.DELETE("/instructors/:id", audit(models.AuditActionDelete, "instructors"), rt.Instructors.Delete)

		admin.GET("/schedules", rt.Schedules.List)
		admin.POST("/schedules", audit(models.AuditActionCreate, "schedules"), rt.Schedules.Create)
		admin.PUT("/schedules/:id", audit(models.AuditActionUpdate, "schedules"), rt.Schedules.Update)
		admin.DELETE("/schedules/:id", audit(models.AuditActionDelete, "schedules"), rt.Schedules.Delete)

		admin.GET("/users", rt.Users.List)
		admin.POST("/users", audit(models.AuditActionCreate, "users"), rt.Users.Create)
		admin.PUT("/users/:id", audit(models.AuditActionUpdate, "users"), rt.Users.Update)
		admin.DELETE("/users/:id", audit(models.AuditActionDelete, "users"), rt.Users.Delete)
		admin.GET("/checkers", rt.Users.Checkers)

		admin.GET("/attendance", rt.Attendance.List)
		admin.GET("/attendance/export", audit(models.AuditActionExport, "attendance"), rt.Attendance.Export)

		admin.GET("/rooms", rt.Rooms.List)
		admin.PUT("/rooms/:id/checker", audit(models.AuditActionAssignChecker, "rooms"), rt.Rooms.AssignChecker)

		admin.GET("/feedback", rt.Feedback.List)
		admin.PUT("/feedback/:id", audit(models.AuditActionFeedbackResponse, "feedback"), rt.Feedback.Review)
		admin.DELETE("/feedback/:id", audit(models.AuditActionDelete, "feedback"), rt.Feedback.Delete)

		admin.GET("/audit-logs", rt.AuditLogs.List)
	}

	checker := secured.Group("/checker")
	checker.Use(middleware.RequireRoles(models.RoleChecker))
	{
		checker.GET("/dashboard", rt.Schedules.Dashboard)
		checker.GET("/schedules", rt.Schedules.CheckerList)
		checker.GET("/schedules/today", rt.Schedules.CheckerToday)
		checker.GET("/attendance", rt.Attendance.CheckerList)
		checker.GET("/feedback", rt.Feedback.List)
		checker.POST("/feedback", audit(models.AuditActionCreate, "feedback"), rt.Feedback.Submit)
	}
}
