package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dushyanth88/Attendance-project-sub001/internal/model"
)

// AuditLogFilters narrows audit-trail listings.
type AuditLogFilters struct {
	Operation string
	FacultyID string
	Source    string
	Status    string
}

// AuditLogRepository is the append-only resolution trace interface.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *model.FacultyAuditLog) error
	List(ctx context.Context, filters *AuditLogFilters, offset, limit int) ([]model.FacultyAuditLog, int64, error)
}

type auditLogRepo struct {
	db *gorm.DB
}

// NewAuditLogRepo creates the GORM-backed AuditLogRepository.
func NewAuditLogRepo(db *gorm.DB) AuditLogRepository {
	return &auditLogRepo{db: db}
}

func (r *auditLogRepo) Create(ctx context.Context, entry *model.FacultyAuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditLogRepo) List(ctx context.Context, filters *AuditLogFilters, offset, limit int) ([]model.FacultyAuditLog, int64, error) {
	var entries []model.FacultyAuditLog
	var total int64

	db := r.db.WithContext(ctx).Model(&model.FacultyAuditLog{})

	if filters != nil {
		if filters.Operation != "" {
			db = db.Where("operation = ?", filters.Operation)
		}
		if filters.FacultyID != "" {
			db = db.Where("faculty_id = ?", filters.FacultyID)
		}
		if filters.Source != "" {
			db = db.Where("source = ?", filters.Source)
		}
		if filters.Status != "" {
			db = db.Where("status = ?", filters.Status)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("resolved_at DESC").
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
