package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dushyanth88/Attendance-project-sub001/internal/model"
)

// ClassAssignmentRepository is the class-assignment access interface.
type ClassAssignmentRepository interface {
	Create(ctx context.Context, assignment *model.ClassAssignment) error
	GetByID(ctx context.Context, id string) (*model.ClassAssignment, error)
	GetByClass(ctx context.Context, batch, year string, semester int, section, department string) (*model.ClassAssignment, error)
	ListByFaculty(ctx context.Context, facultyID string) ([]model.ClassAssignment, error)
	List(ctx context.Context, department string, offset, limit int) ([]model.ClassAssignment, int64, error)
	Update(ctx context.Context, assignment *model.ClassAssignment) error
	Delete(ctx context.Context, id string) error
}

type classAssignmentRepo struct {
	db *gorm.DB
}

// NewClassAssignmentRepo creates the GORM-backed ClassAssignmentRepository.
func NewClassAssignmentRepo(db *gorm.DB) ClassAssignmentRepository {
	return &classAssignmentRepo{db: db}
}

func (r *classAssignmentRepo) Create(ctx context.Context, assignment *model.ClassAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *classAssignmentRepo) GetByID(ctx context.Context, id string) (*model.ClassAssignment, error) {
	var assignment model.ClassAssignment
	err := r.db.WithContext(ctx).
		Preload("Faculty").
		Where("class_assignment_id = ?", id).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *classAssignmentRepo) GetByClass(ctx context.Context, batch, year string, semester int, section, department string) (*model.ClassAssignment, error) {
	var assignment model.ClassAssignment
	err := r.db.WithContext(ctx).
		Preload("Faculty").
		Where("batch = ? AND year = ? AND semester = ? AND section = ? AND department = ? AND active = ?",
			batch, year, semester, section, department, true).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *classAssignmentRepo) ListByFaculty(ctx context.Context, facultyID string) ([]model.ClassAssignment, error) {
	var assignments []model.ClassAssignment
	err := r.db.WithContext(ctx).
		Where("faculty_id = ?", facultyID).
		Order("batch ASC, semester ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *classAssignmentRepo) List(ctx context.Context, department string, offset, limit int) ([]model.ClassAssignment, int64, error) {
	var assignments []model.ClassAssignment
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ClassAssignment{})
	if department != "" {
		db = db.Where("department = ?", department)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Faculty").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&assignments).Error; err != nil {
		return nil, 0, err
	}

	return assignments, total, nil
}

func (r *classAssignmentRepo) Update(ctx context.Context, assignment *model.ClassAssignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *classAssignmentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("class_assignment_id = ?", id).
		Delete(&model.ClassAssignment{}).Error
}
