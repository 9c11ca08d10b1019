package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dushyanth88/Attendance-project-sub001/internal/classid"
	"github.com/dushyanth88/Attendance-project-sub001/internal/dto"
	"github.com/dushyanth88/Attendance-project-sub001/internal/model"
	"github.com/dushyanth88/Attendance-project-sub001/internal/repository"
)

// ── class-assignment module errors ──

var (
	ErrAssignmentNotFound = errors.New("class assignment not found")
	ErrAssignmentExists   = errors.New("class assignment already exists for this class")
	ErrStartDateNotSet    = errors.New("attendance start date is not set for this class")
	ErrInvalidDateRange   = errors.New("attendance start date must be strictly before the end date")
)

// WindowError reports a date outside the configured marking window,
// naming the boundary that was crossed.
type WindowError struct {
	Before   bool // true: target precedes the start date
	Boundary time.Time
}

func (e *WindowError) Error() string {
	if e.Before {
		return fmt.Sprintf("attendance cannot be marked before %s", formatDay(e.Boundary))
	}
	return fmt.Sprintf("attendance cannot be marked after %s", formatDay(e.Boundary))
}

// CanMarkAttendance checks one target date against an assignment's
// marking window. A nil return means marking is allowed.
func CanMarkAttendance(assignment *model.ClassAssignment, target time.Time) error {
	if assignment.AttendanceStartDate == nil {
		return ErrStartDateNotSet
	}
	start := truncateDay(*assignment.AttendanceStartDate)
	day := truncateDay(target)
	if day.Before(start) {
		return &WindowError{Before: true, Boundary: start}
	}
	if assignment.AttendanceEndDate != nil {
		end := truncateDay(*assignment.AttendanceEndDate)
		if day.After(end) {
			return &WindowError{Boundary: end}
		}
	}
	return nil
}

// AssignmentService owns class assignments and the attendance window.
type AssignmentService interface {
	Create(ctx context.Context, req *dto.CreateClassAssignmentRequest, callerID string) (*dto.ClassAssignmentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ClassAssignmentResponse, error)
	List(ctx context.Context, req *dto.ClassAssignmentListRequest) ([]dto.ClassAssignmentResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateClassAssignmentRequest, callerID string) (*dto.ClassAssignmentResponse, error)
	Delete(ctx context.Context, id string) error

	// UpdateAttendanceDates sets the marking window; start is mandatory
	// and must be strictly before end when both are present.
	UpdateAttendanceDates(ctx context.Context, id string, req *dto.UpdateAttendanceDatesRequest, callerID string) (*dto.ClassAssignmentResponse, error)

	// CanMark answers whether a date is markable for a class.
	CanMark(ctx context.Context, batch, year string, semester int, section, department, date string) (*dto.CanMarkResponse, error)
}

type assignmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAssignmentService creates the AssignmentService.
func NewAssignmentService(repo *repository.Repository, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, logger: logger}
}

func (s *assignmentService) Create(ctx context.Context, req *dto.CreateClassAssignmentRequest, callerID string) (*dto.ClassAssignmentResponse, error) {
	if !classid.ValidBatch(req.Batch) || !classid.ValidYear(req.Year) || !classid.ValidSemester(req.Semester) {
		return nil, ErrInvalidClassFields
	}
	section := req.Section
	if section == "" {
		section = classid.DefaultSection
	}

	if _, err := s.repo.Faculty.GetByID(ctx, req.FacultyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacultyNotFound
		}
		return nil, err
	}

	if _, err := s.repo.ClassAssignment.GetByClass(ctx, req.Batch, req.Year, req.Semester, section, req.Department); err == nil {
		return nil, ErrAssignmentExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	assignment := &model.ClassAssignment{
		FacultyID:       req.FacultyID,
		Batch:           req.Batch,
		Year:            req.Year,
		Semester:        req.Semester,
		Section:         section,
		Department:      req.Department,
		Active:          true,
		SoftDeleteModel: model.SoftDeleteModel{BaseModel: model.BaseModel{CreatedBy: &callerID}},
	}

	if req.AttendanceStartDate != "" {
		start, err := parseDay(req.AttendanceStartDate)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		assignment.AttendanceStartDate = &start
	}
	if req.AttendanceEndDate != "" {
		end, err := parseDay(req.AttendanceEndDate)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		if assignment.AttendanceStartDate == nil || !assignment.AttendanceStartDate.Before(end) {
			return nil, ErrInvalidDateRange
		}
		assignment.AttendanceEndDate = &end
	}

	if err := s.repo.ClassAssignment.Create(ctx, assignment); err != nil {
		s.logger.Error("create class assignment failed", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.ClassAssignment.GetByID(ctx, assignment.ClassAssignmentID)
	if err != nil {
		return nil, err
	}
	return toAssignmentResponse(created), nil
}

func (s *assignmentService) GetByID(ctx context.Context, id string) (*dto.ClassAssignmentResponse, error) {
	assignment, err := s.repo.ClassAssignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("get class assignment failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toAssignmentResponse(assignment), nil
}

func (s *assignmentService) List(ctx context.Context, req *dto.ClassAssignmentListRequest) ([]dto.ClassAssignmentResponse, int64, error) {
	assignments, total, err := s.repo.ClassAssignment.List(ctx, req.Department, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list class assignments failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ClassAssignmentResponse, 0, len(assignments))
	for i := range assignments {
		result = append(result, *toAssignmentResponse(&assignments[i]))
	}
	return result, total, nil
}

func (s *assignmentService) Update(ctx context.Context, id string, req *dto.UpdateClassAssignmentRequest, callerID string) (*dto.ClassAssignmentResponse, error) {
	assignment, err := s.repo.ClassAssignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	if req.FacultyID != nil {
		if _, err := s.repo.Faculty.GetByID(ctx, *req.FacultyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrFacultyNotFound
			}
			return nil, err
		}
		assignment.FacultyID = *req.FacultyID
	}
	if req.Active != nil {
		assignment.Active = *req.Active
	}
	assignment.UpdatedBy = &callerID

	if err := s.repo.ClassAssignment.Update(ctx, assignment); err != nil {
		s.logger.Error("update class assignment failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toAssignmentResponse(assignment), nil
}

func (s *assignmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.ClassAssignment.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}
	return s.repo.ClassAssignment.Delete(ctx, id)
}

func (s *assignmentService) UpdateAttendanceDates(ctx context.Context, id string, req *dto.UpdateAttendanceDatesRequest, callerID string) (*dto.ClassAssignmentResponse, error) {
	assignment, err := s.repo.ClassAssignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	start, err := parseDay(req.AttendanceStartDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	assignment.AttendanceStartDate = &start
	assignment.AttendanceEndDate = nil

	if req.AttendanceEndDate != "" {
		end, err := parseDay(req.AttendanceEndDate)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		// equal or inverted range is rejected
		if !start.Before(end) {
			return nil, ErrInvalidDateRange
		}
		assignment.AttendanceEndDate = &end
	}
	assignment.UpdatedBy = &callerID

	if err := s.repo.ClassAssignment.Update(ctx, assignment); err != nil {
		s.logger.Error("update attendance dates failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toAssignmentResponse(assignment), nil
}

func (s *assignmentService) CanMark(ctx context.Context, batch, year string, semester int, section, department, date string) (*dto.CanMarkResponse, error) {
	if section == "" {
		section = classid.DefaultSection
	}
	target, err := parseDay(date)
	if err != nil {
		return nil, ErrInvalidDateRange
	}

	assignment, err := s.repo.ClassAssignment.GetByClass(ctx, batch, year, semester, section, department)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	if err := CanMarkAttendance(assignment, target); err != nil {
		return &dto.CanMarkResponse{Allowed: false, Reason: err.Error()}, nil
	}
	return &dto.CanMarkResponse{Allowed: true}, nil
}

// ── helpers ──

func toAssignmentResponse(assignment *model.ClassAssignment) *dto.ClassAssignmentResponse {
	key := classid.Key{
		Batch:    assignment.Batch,
		Year:     assignment.Year,
		Semester: assignment.Semester,
		Section:  assignment.Section,
	}
	resp := &dto.ClassAssignmentResponse{
		ID:         assignment.ClassAssignmentID,
		FacultyID:  assignment.FacultyID,
		Batch:      assignment.Batch,
		Year:       assignment.Year,
		Semester:   assignment.Semester,
		Section:    assignment.Section,
		Department: assignment.Department,
		ClassID:    key.ClassID(),
		Active:     assignment.Active,
	}
	if assignment.AttendanceStartDate != nil {
		resp.AttendanceStartDate = formatDay(*assignment.AttendanceStartDate)
	}
	if assignment.AttendanceEndDate != nil {
		resp.AttendanceEndDate = formatDay(*assignment.AttendanceEndDate)
	}
	if assignment.Faculty != nil && assignment.Faculty.User != nil {
		resp.FacultyName = assignment.Faculty.User.Name
	}
	return resp
}
