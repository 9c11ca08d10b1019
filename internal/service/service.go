package service

import (
	"go.uber.org/zap"

	"github.com/dushyanth88/Attendance-project-sub001/config"
	"github.com/dushyanth88/Attendance-project-sub001/internal/repository"
	"github.com/dushyanth88/Attendance-project-sub001/pkg/jwt"
	"github.com/dushyanth88/Attendance-project-sub001/pkg/redis"
)

// Service bundles the business services behind one constructor.
type Service struct {
	Auth       AuthService
	User       UserService
	Faculty    FacultyService
	Assignment AssignmentService
	Student    StudentService
	Attendance AttendanceService
	Holiday    HolidayService
	Report     ReportService
}

// NewService wires the service layer. rdb may be nil when Redis is
// unavailable; token revocation then degrades to expiry-only.
func NewService(cfg *config.Config, repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *Service {
	facultySvc := NewFacultyService(repo, logger)
	holidaySvc := NewHolidayService(repo, logger)

	return &Service{
		Auth:       NewAuthService(&cfg.Auth, repo, jwtMgr, rdb, logger),
		User:       NewUserService(repo, logger),
		Faculty:    facultySvc,
		Assignment: NewAssignmentService(repo, logger),
		Student:    NewStudentService(repo, facultySvc, cfg.Upload.MaxImportRows, logger),
		Attendance: NewAttendanceService(repo, facultySvc, holidaySvc, logger),
		Holiday:    holidaySvc,
		Report:     NewReportService(repo, holidaySvc, logger),
	}
}
