package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/dushyanth88/Attendance-project-sub001/internal/model"
)

// StudentListFilters narrows roster listings.
type StudentListFilters struct {
	ClassID    string
	Department string
	Batch      string
	Status     string
	Keyword    string // matches name, email or roll number
}

// StudentRepository is the roster access interface.
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id string) (*model.Student, error)
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
	GetByRollNumber(ctx context.Context, rollNumber, batch, department string) (*model.Student, error)
	GetByMobile(ctx context.Context, mobile string) (*model.Student, error)
	// ListByClass returns the active roster for one class_id, ordered by
	// roll number — the order attendance is marked and reported in.
	ListByClass(ctx context.Context, classID string) ([]model.Student, error)
	List(ctx context.Context, filters *StudentListFilters, offset, limit int) ([]model.Student, int64, error)
	Update(ctx context.Context, student *model.Student) error
	Delete(ctx context.Context, id string) error
}

type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo creates the GORM-backed StudentRepository.
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("student_id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetByRollNumber(ctx context.Context, rollNumber, batch, department string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("roll_number = ? AND batch = ? AND department = ?", rollNumber, batch, department).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetByMobile(ctx context.Context, mobile string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("mobile = ?", mobile).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) ListByClass(ctx context.Context, classID string) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Where("class_id = ? AND status = ?", classID, model.StatusActive).
		Order("roll_number ASC").
		Find(&students).Error
	return students, err
}

func (r *studentRepo) List(ctx context.Context, filters *StudentListFilters, offset, limit int) ([]model.Student, int64, error) {
	var students []model.Student
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Student{})

	if filters != nil {
		if filters.ClassID != "" {
			db = db.Where("class_id = ?", filters.ClassID)
		}
		if filters.Department != "" {
			db = db.Where("department = ?", filters.Department)
		}
		if filters.Batch != "" {
			db = db.Where("batch = ?", filters.Batch)
		}
		if filters.Status != "" {
			db = db.Where("status = ?", filters.Status)
		}
		if filters.Keyword != "" {
			kw := "%" + filters.Keyword + "%"
			db = db.Where("name ILIKE ? OR email ILIKE ? OR roll_number ILIKE ?", kw, kw, kw)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("roll_number ASC").
		Find(&students).Error; err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

func (r *studentRepo) Update(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *studentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("student_id = ?", id).
		Delete(&model.Student{}).Error
}
