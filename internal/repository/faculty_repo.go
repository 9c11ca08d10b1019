package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dushyanth88/Attendance-project-sub001/internal/model"
)

// FacultyRepository is the faculty-binding access interface.
type FacultyRepository interface {
	Create(ctx context.Context, faculty *model.Faculty) error
	GetByID(ctx context.Context, id string) (*model.Faculty, error)
	GetByUserID(ctx context.Context, userID string) (*model.Faculty, error)
	// ListActive returns active faculty, optionally narrowed to one
	// department; binding matching against legacy spellings happens in
	// the service layer.
	ListActive(ctx context.Context, department string) ([]model.Faculty, error)
	List(ctx context.Context, department string, offset, limit int) ([]model.Faculty, int64, error)
	Update(ctx context.Context, faculty *model.Faculty) error
	Delete(ctx context.Context, id string) error
}

type facultyRepo struct {
	db *gorm.DB
}

// NewFacultyRepo creates the GORM-backed FacultyRepository.
func NewFacultyRepo(db *gorm.DB) FacultyRepository {
	return &facultyRepo{db: db}
}

func (r *facultyRepo) Create(ctx context.Context, faculty *model.Faculty) error {
	return r.db.WithContext(ctx).Create(faculty).Error
}

func (r *facultyRepo) GetByID(ctx context.Context, id string) (*model.Faculty, error) {
	var faculty model.Faculty
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("faculty_id = ?", id).
		First(&faculty).Error
	if err != nil {
		return nil, err
	}
	return &faculty, nil
}

func (r *facultyRepo) GetByUserID(ctx context.Context, userID string) (*model.Faculty, error) {
	var faculty model.Faculty
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&faculty).Error
	if err != nil {
		return nil, err
	}
	return &faculty, nil
}

func (r *facultyRepo) ListActive(ctx context.Context, department string) ([]model.Faculty, error) {
	var faculties []model.Faculty
	db := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", model.StatusActive)
	if department != "" {
		db = db.Where("department = ?", department)
	}
	err := db.Order("created_at ASC").Find(&faculties).Error
	return faculties, err
}

func (r *facultyRepo) List(ctx context.Context, department string, offset, limit int) ([]model.Faculty, int64, error) {
	var faculties []model.Faculty
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Faculty{})
	if department != "" {
		db = db.Where("department = ?", department)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("User").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&faculties).Error; err != nil {
		return nil, 0, err
	}

	return faculties, total, nil
}

func (r *facultyRepo) Update(ctx context.Context, faculty *model.Faculty) error {
	return r.db.WithContext(ctx).Save(faculty).Error
}

func (r *facultyRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("faculty_id = ?", id).
		Delete(&model.Faculty{}).Error
}
