package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dushyanth88/Attendance-project-sub001/internal/model"
)

// AttendanceRepository is the attendance-record access interface.
type AttendanceRepository interface {
	// Upsert writes one record per (student, date); re-marking the same
	// date overwrites status and marked_by instead of duplicating.
	Upsert(ctx context.Context, record *model.AttendanceRecord) error
	GetByStudentDate(ctx context.Context, studentID string, date time.Time) (*model.AttendanceRecord, error)
	ListByClassDate(ctx context.Context, batch, year string, semester int, section string, date time.Time) ([]model.AttendanceRecord, error)
	ListByClassRange(ctx context.Context, batch, year string, semester int, section string, from, to time.Time) ([]model.AttendanceRecord, error)
	ListByStudentRange(ctx context.Context, studentID string, from, to time.Time) ([]model.AttendanceRecord, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo creates the GORM-backed AttendanceRepository.
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Upsert(ctx context.Context, record *model.AttendanceRecord) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "student_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "marked_by", "updated_at",
			}),
		}).
		Create(record).Error
}

func (r *attendanceRepo) GetByStudentDate(ctx context.Context, studentID string, date time.Time) (*model.AttendanceRecord, error) {
	var record model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND date = ?", studentID, date).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepo) ListByClassDate(ctx context.Context, batch, year string, semester int, section string, date time.Time) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("batch = ? AND year = ? AND semester = ? AND section = ? AND date = ?",
			batch, year, semester, section, date).
		Find(&records).Error
	return records, err
}

func (r *attendanceRepo) ListByClassRange(ctx context.Context, batch, year string, semester int, section string, from, to time.Time) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("batch = ? AND year = ? AND semester = ? AND section = ? AND date BETWEEN ? AND ?",
			batch, year, semester, section, from, to).
		Order("date ASC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepo) ListByStudentRange(ctx context.Context, studentID string, from, to time.Time) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND date BETWEEN ? AND ?", studentID, from, to).
		Order("date ASC").
		Find(&records).Error
	return records, err
}
