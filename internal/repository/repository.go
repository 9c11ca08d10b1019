package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every data-access interface.
type Repository struct {
	db *gorm.DB

	User            UserRepository
	Faculty         FacultyRepository
	ClassAssignment ClassAssignmentRepository
	Student         StudentRepository
	Attendance      AttendanceRepository
	Holiday         HolidayRepository
	AuditLog        AuditLogRepository
}

// NewRepository wires the GORM implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:              db,
		User:            NewUserRepo(db),
		Faculty:         NewFacultyRepo(db),
		ClassAssignment: NewClassAssignmentRepo(db),
		Student:         NewStudentRepo(db),
		Attendance:      NewAttendanceRepo(db),
		Holiday:         NewHolidayRepo(db),
		AuditLog:        NewAuditLogRepo(db),
	}
}

// InTx runs fn against a Repository bound to one transaction; fn
// returning an error rolls everything back. A Repository assembled
// without a db (mock-backed) runs fn directly.
func (r *Repository) InTx(ctx context.Context, fn func(*Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
