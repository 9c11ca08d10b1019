package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dushyanth88/Attendance-project-sub001/internal/model"
)

// HolidayRepository is the holiday-calendar access interface.
type HolidayRepository interface {
	Create(ctx context.Context, holiday *model.Holiday) error
	GetByID(ctx context.Context, id string) (*model.Holiday, error)
	GetByDateDepartment(ctx context.Context, date time.Time, department string) (*model.Holiday, error)
	ListByDepartment(ctx context.Context, department string, from, to *time.Time) ([]model.Holiday, error)
	Update(ctx context.Context, holiday *model.Holiday) error
	Delete(ctx context.Context, id string) error
}

type holidayRepo struct {
	db *gorm.DB
}

// NewHolidayRepo creates the GORM-backed HolidayRepository.
func NewHolidayRepo(db *gorm.DB) HolidayRepository {
	return &holidayRepo{db: db}
}

func (r *holidayRepo) Create(ctx context.Context, holiday *model.Holiday) error {
	return r.db.WithContext(ctx).Create(holiday).Error
}

func (r *holidayRepo) GetByID(ctx context.Context, id string) (*model.Holiday, error) {
	var holiday model.Holiday
	err := r.db.WithContext(ctx).
		Where("holiday_id = ?", id).
		First(&holiday).Error
	if err != nil {
		return nil, err
	}
	return &holiday, nil
}

func (r *holidayRepo) GetByDateDepartment(ctx context.Context, date time.Time, department string) (*model.Holiday, error) {
	var holiday model.Holiday
	err := r.db.WithContext(ctx).
		Where("holiday_date = ? AND department = ?", date, department).
		First(&holiday).Error
	if err != nil {
		return nil, err
	}
	return &holiday, nil
}

func (r *holidayRepo) ListByDepartment(ctx context.Context, department string, from, to *time.Time) ([]model.Holiday, error) {
	var holidays []model.Holiday
	db := r.db.WithContext(ctx).Where("department = ?", department)
	if from != nil {
		db = db.Where("holiday_date >= ?", *from)
	}
	if to != nil {
		db = db.Where("holiday_date <= ?", *to)
	}
	err := db.Order("holiday_date ASC").Find(&holidays).Error
	return holidays, err
}

func (r *holidayRepo) Update(ctx context.Context, holiday *model.Holiday) error {
	return r.db.WithContext(ctx).Save(holiday).Error
}

func (r *holidayRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("holiday_id = ?", id).
		Delete(&model.Holiday{}).Error
}
