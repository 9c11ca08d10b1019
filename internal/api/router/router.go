package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dushyanth88/Attendance-project-sub001/config"
	"github.com/dushyanth88/Attendance-project-sub001/internal/api/handler"
	"github.com/dushyanth88/Attendance-project-sub001/internal/api/middleware"
	"github.com/dushyanth88/Attendance-project-sub001/pkg/jwt"
	"github.com/dushyanth88/Attendance-project-sub001/pkg/redis"
)

// New builds the Gin engine with all routes and middleware wired.
// rdb may be nil; rate limiting and token revocation then degrade.
func New(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, accounts middleware.AccountChecker, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	r.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Server.CORS.AllowOrigins),
		middleware.Metrics(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	auth := middleware.JWTAuth(jwtMgr, rdb, accounts, logger)

	// ── auth ──
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimit(rdb, logger, 10, time.Minute))
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.RefreshToken)
		authGroup.POST("/logout", auth, h.Auth.Logout)
		authGroup.GET("/me", auth, h.Auth.Me)
		authGroup.POST("/change-password", auth, h.Auth.ChangePassword)
	}

	// ── users (admin) ──
	users := api.Group("/users", auth, middleware.AdminOnly())
	{
		users.POST("", h.User.Create)
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Deactivate)
		users.POST("/:id/reset-password", h.User.ResetPassword)
	}

	// ── faculties ──
	faculties := api.Group("/faculties", auth)
	{
		faculties.GET("/resolve", middleware.FacultyAndAbove(), h.Faculty.Resolve)
		faculties.GET("/audit-logs", middleware.HODAndAbove(), h.Faculty.AuditLogs)
		faculties.POST("", middleware.HODAndAbove(), h.Faculty.Create)
		faculties.GET("", middleware.FacultyAndAbove(), h.Faculty.List)
		faculties.GET("/:id", middleware.FacultyAndAbove(), h.Faculty.Get)
		faculties.PUT("/:id", middleware.HODAndAbove(), h.Faculty.Update)
		faculties.DELETE("/:id", middleware.HODAndAbove(), h.Faculty.Delete)
	}

	// ── class assignments ──
	assignments := api.Group("/class-assignments", auth)
	{
		assignments.GET("/can-mark", middleware.FacultyAndAbove(), h.Assignment.CanMark)
		assignments.POST("", middleware.HODAndAbove(), h.Assignment.Create)
		assignments.GET("", middleware.FacultyAndAbove(), h.Assignment.List)
		assignments.GET("/:id", middleware.FacultyAndAbove(), h.Assignment.Get)
		assignments.PUT("/:id", middleware.HODAndAbove(), h.Assignment.Update)
		assignments.DELETE("/:id", middleware.HODAndAbove(), h.Assignment.Delete)
		assignments.PUT("/:id/attendance-dates", middleware.HODAndAbove(), h.Assignment.UpdateAttendanceDates)
	}

	// ── students ──
	students := api.Group("/students", auth)
	{
		students.POST("", middleware.FacultyAndAbove(), h.Student.Create)
		students.POST("/bulk-import",
			middleware.FacultyAndAbove(),
			middleware.BodyLimit(cfg.Upload.MaxBodyBytes),
			h.Student.BulkImport,
		)
		students.GET("", middleware.FacultyAndAbove(), h.Student.List)
		students.GET("/:id", h.Student.Get)
		students.PUT("/:id", middleware.FacultyAndAbove(), h.Student.Update)
		students.DELETE("/:id", middleware.HODAndAbove(), h.Student.Delete)
	}

	// ── attendance ──
	attendance := api.Group("/attendance", auth)
	{
		attendance.POST("/mark", middleware.FacultyAndAbove(), h.Attendance.MarkStudents)
		attendance.PUT("/student", middleware.FacultyAndAbove(), h.Attendance.EditStudent)
		attendance.GET("/history/class", middleware.FacultyAndAbove(), h.Attendance.HistoryByClass)
		attendance.GET("/history/student/:id", h.Attendance.HistoryByStudent)
	}

	// ── holidays ──
	holidays := api.Group("/holidays", auth)
	{
		holidays.POST("", middleware.HODAndAbove(), h.Holiday.Create)
		holidays.GET("", h.Holiday.List)
		holidays.GET("/calendar.ics", h.Holiday.ExportICS)
		holidays.GET("/:id", h.Holiday.Get)
		holidays.PUT("/:id", middleware.HODAndAbove(), h.Holiday.Update)
		holidays.DELETE("/:id", middleware.HODAndAbove(), h.Holiday.Delete)
	}

	// ── reports ──
	reports := api.Group("/reports", auth, middleware.FacultyAndAbove())
	{
		reports.GET("/summary", h.Report.Summary)
		reports.GET("/detailed", h.Report.Detailed)
		reports.GET("/absentee", h.Report.Absentee)
		reports.GET("/summary/export/excel", h.Report.ExportExcel)
		reports.GET("/summary/export/pdf", h.Report.ExportPDF)
	}

	return r
}
