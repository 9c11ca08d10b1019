package service

import (
	"context"
	"errors"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dushyanth88/Attendance-project-sub001/internal/dto"
	"github.com/dushyanth88/Attendance-project-sub001/internal/model"
	"github.com/dushyanth88/Attendance-project-sub001/internal/repository"
)

// ── holiday module errors ──

var (
	ErrHolidayNotFound = errors.New("holiday not found")
	ErrHolidayExists   = errors.New("a holiday already exists for this date and department")
)

// HolidayService owns the per-department holiday calendar.
type HolidayService interface {
	Create(ctx context.Context, req *dto.CreateHolidayRequest, callerID string) (*dto.HolidayResponse, error)
	GetByID(ctx context.Context, id string) (*dto.HolidayResponse, error)
	List(ctx context.Context, req *dto.HolidayListRequest) ([]dto.HolidayResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateHolidayRequest, callerID string) (*dto.HolidayResponse, error)
	Delete(ctx context.Context, id string) error

	// IsHoliday reports whether marking is blocked for a date: every
	// Sunday, plus dates declared for the department.
	IsHoliday(ctx context.Context, date time.Time, department string) (bool, error)

	// ExportICS renders a department's holidays as an iCalendar feed.
	ExportICS(ctx context.Context, department string) (string, error)
}

type holidayService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewHolidayService creates the HolidayService.
func NewHolidayService(repo *repository.Repository, logger *zap.Logger) HolidayService {
	return &holidayService{repo: repo, logger: logger}
}

func (s *holidayService) Create(ctx context.Context, req *dto.CreateHolidayRequest, callerID string) (*dto.HolidayResponse, error) {
	date, err := parseDay(req.HolidayDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}

	if _, err := s.repo.Holiday.GetByDateDepartment(ctx, date, req.Department); err == nil {
		return nil, ErrHolidayExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	holiday := &model.Holiday{
		HolidayDate:     date,
		Department:      req.Department,
		Reason:          req.Reason,
		SoftDeleteModel: model.SoftDeleteModel{BaseModel: model.BaseModel{CreatedBy: &callerID}},
	}

	if err := s.repo.Holiday.Create(ctx, holiday); err != nil {
		s.logger.Error("create holiday failed", zap.Error(err))
		return nil, err
	}
	return toHolidayResponse(holiday), nil
}

func (s *holidayService) GetByID(ctx context.Context, id string) (*dto.HolidayResponse, error) {
	holiday, err := s.repo.Holiday.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHolidayNotFound
		}
		s.logger.Error("get holiday failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toHolidayResponse(holiday), nil
}

func (s *holidayService) List(ctx context.Context, req *dto.HolidayListRequest) ([]dto.HolidayResponse, error) {
	var from, to *time.Time
	if req.From != "" {
		t, err := parseDay(req.From)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		from = &t
	}
	if req.To != "" {
		t, err := parseDay(req.To)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		to = &t
	}

	holidays, err := s.repo.Holiday.ListByDepartment(ctx, req.Department, from, to)
	if err != nil {
		s.logger.Error("list holidays failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.HolidayResponse, 0, len(holidays))
	for i := range holidays {
		result = append(result, *toHolidayResponse(&holidays[i]))
	}
	return result, nil
}

func (s *holidayService) Update(ctx context.Context, id string, req *dto.UpdateHolidayRequest, callerID string) (*dto.HolidayResponse, error) {
	holiday, err := s.repo.Holiday.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHolidayNotFound
		}
		return nil, err
	}

	if req.HolidayDate != nil {
		date, err := parseDay(*req.HolidayDate)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		if !sameDay(date, holiday.HolidayDate) {
			if _, err := s.repo.Holiday.GetByDateDepartment(ctx, date, holiday.Department); err == nil {
				return nil, ErrHolidayExists
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			holiday.HolidayDate = date
		}
	}
	if req.Reason != nil {
		holiday.Reason = *req.Reason
	}
	holiday.UpdatedBy = &callerID

	if err := s.repo.Holiday.Update(ctx, holiday); err != nil {
		s.logger.Error("update holiday failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toHolidayResponse(holiday), nil
}

func (s *holidayService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Holiday.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHolidayNotFound
		}
		return err
	}
	return s.repo.Holiday.Delete(ctx, id)
}

func (s *holidayService) IsHoliday(ctx context.Context, date time.Time, department string) (bool, error) {
	if date.Weekday() == time.Sunday {
		return true, nil
	}
	_, err := s.repo.Holiday.GetByDateDepartment(ctx, truncateDay(date), department)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *holidayService) ExportICS(ctx context.Context, department string) (string, error) {
	holidays, err := s.repo.Holiday.ListByDepartment(ctx, department, nil, nil)
	if err != nil {
		s.logger.Error("export holiday calendar failed", zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//attendance-backend//holiday-calendar//EN")

	for i := range holidays {
		h := &holidays[i]
		event := cal.AddEvent(h.HolidayID)
		event.SetCreatedTime(h.CreatedAt)
		event.SetDtStampTime(h.CreatedAt)
		event.SetAllDayStartAt(h.HolidayDate)
		event.SetAllDayEndAt(h.HolidayDate.AddDate(0, 0, 1))
		event.SetSummary(h.Reason)
		event.SetDescription("Holiday — " + h.Department)
	}

	return cal.Serialize(), nil
}

// ── helpers ──

func toHolidayResponse(holiday *model.Holiday) *dto.HolidayResponse {
	return &dto.HolidayResponse{
		ID:          holiday.HolidayID,
		HolidayDate: formatDay(holiday.HolidayDate),
		Department:  holiday.Department,
		Reason:      holiday.Reason,
	}
}
