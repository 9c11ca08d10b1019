package handler

import (
	"go.uber.org/zap"

	"github.com/dushyanth88/Attendance-project-sub001/internal/api/middleware"
	"github.com/dushyanth88/Attendance-project-sub001/internal/service"
	"github.com/gin-gonic/gin"
)

// Handler bundles the HTTP handlers behind one constructor.
type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Faculty    *FacultyHandler
	Assignment *AssignmentHandler
	Student    *StudentHandler
	Attendance *AttendanceHandler
	Holiday    *HolidayHandler
	Report     *ReportHandler
}

// NewHandler wires the handler layer.
func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:       &AuthHandler{svc: svc.Auth, logger: logger},
		User:       &UserHandler{svc: svc.User, logger: logger},
		Faculty:    &FacultyHandler{svc: svc.Faculty, logger: logger},
		Assignment: &AssignmentHandler{svc: svc.Assignment, logger: logger},
		Student:    &StudentHandler{svc: svc.Student, logger: logger},
		Attendance: &AttendanceHandler{svc: svc.Attendance, students: svc.Student, logger: logger},
		Holiday:    &HolidayHandler{svc: svc.Holiday, logger: logger},
		Report:     &ReportHandler{svc: svc.Report, logger: logger},
	}
}

// ── context helpers ──

func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserID)
}

func currentRole(c *gin.Context) string {
	return c.GetString(middleware.CtxRole)
}

func currentDepartment(c *gin.Context) string {
	return c.GetString(middleware.CtxDepartment)
}
