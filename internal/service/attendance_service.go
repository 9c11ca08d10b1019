package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dushyanth88/Attendance-project-sub001/internal/classid"
	"github.com/dushyanth88/Attendance-project-sub001/internal/dto"
	"github.com/dushyanth88/Attendance-project-sub001/internal/model"
	"github.com/dushyanth88/Attendance-project-sub001/internal/repository"
)

// ── attendance module errors ──

var (
	ErrMarkingOnSunday  = errors.New("attendance cannot be marked on a Sunday")
	ErrMarkingOnHoliday = errors.New("attendance cannot be marked on a holiday")
	ErrEmptyRoster      = errors.New("no active students found for this class")
	ErrStudentNotFound  = errors.New("student not found")
	ErrNotBoundToClass  = errors.New("caller is not bound to this student's class")
	ErrRecordNotFound   = errors.New("attendance record not found")
)

// AmbiguousRollsError rejects a marking request that lists the same roll
// number as both absent and on-duty. Nothing is written.
type AmbiguousRollsError struct {
	Rolls []string
}

func (e *AmbiguousRollsError) Error() string {
	return fmt.Sprintf("roll numbers listed as both absent and OD: %s", strings.Join(e.Rolls, ", "))
}

// UnknownRollsError rejects a marking request naming roll numbers that
// are not on the class roster. Nothing is written.
type UnknownRollsError struct {
	Rolls []string
}

func (e *UnknownRollsError) Error() string {
	return fmt.Sprintf("roll numbers not on the class roster: %s", strings.Join(e.Rolls, ", "))
}

// AttendanceService owns marking, correction and history queries.
type AttendanceService interface {
	// MarkStudents writes the whole class roster for one date in a single
	// transaction. Students absent from both lists are marked Present;
	// re-marking a date overwrites the earlier run.
	MarkStudents(ctx context.Context, userID string, req *dto.MarkStudentsRequest) (*dto.MarkStudentsResponse, error)

	// EditStudent corrects one student's record for one date. Historical
	// corrections skip the window and holiday checks but still require
	// the caller's binding to the student's class.
	EditStudent(ctx context.Context, userID string, req *dto.EditStudentRequest) (*dto.AttendanceRecordResponse, error)

	HistoryByClass(ctx context.Context, req *dto.HistoryByClassRequest) ([]dto.AttendanceRecordResponse, error)
	HistoryByStudent(ctx context.Context, studentID, from, to string) ([]dto.AttendanceRecordResponse, error)
}

type attendanceService struct {
	repo       *repository.Repository
	facultySvc FacultyService
	holidaySvc HolidayService
	logger     *zap.Logger
}

// NewAttendanceService creates the AttendanceService.
func NewAttendanceService(repo *repository.Repository, facultySvc FacultyService, holidaySvc HolidayService, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, facultySvc: facultySvc, holidaySvc: holidaySvc, logger: logger}
}

// ────────────────────── MarkStudents ──────────────────────

func (s *attendanceService) MarkStudents(ctx context.Context, userID string, req *dto.MarkStudentsRequest) (*dto.MarkStudentsResponse, error) {
	if !classid.ValidBatch(req.Batch) || !classid.ValidYear(req.Year) || !classid.ValidSemester(req.Semester) {
		return nil, ErrInvalidClassFields
	}
	section := req.Section
	if section == "" {
		section = classid.DefaultSection
	}
	date, err := parseDay(req.Date)
	if err != nil {
		return nil, ErrInvalidDateRange
	}

	key := classid.Key{Batch: req.Batch, Year: req.Year, Semester: req.Semester, Section: section}

	// Who is marking. The resolution also fixes the department the
	// holiday and window checks run against.
	res, err := s.facultySvc.Resolve(ctx, "mark_attendance", userID, ClassContext{
		Batch: req.Batch, Year: req.Year, Semester: req.Semester, Section: section,
	})
	if err != nil {
		return nil, err
	}
	department := res.Faculty.Department

	if date.Weekday() == time.Sunday {
		return nil, ErrMarkingOnSunday
	}
	blocked, err := s.holidaySvc.IsHoliday(ctx, date, department)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, ErrMarkingOnHoliday
	}

	assignment, err := s.repo.ClassAssignment.GetByClass(ctx, req.Batch, req.Year, req.Semester, section, department)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStartDateNotSet
		}
		return nil, err
	}
	if err := CanMarkAttendance(assignment, date); err != nil {
		return nil, err
	}

	students, err := s.repo.Student.ListByClass(ctx, key.ClassID())
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, ErrEmptyRoster
	}

	statusByRoll, err := buildStatusMap(students, req.AbsentRollNumbers, req.ODRollNumbers)
	if err != nil {
		return nil, err
	}

	resp := &dto.MarkStudentsResponse{Date: req.Date, ClassID: key.ClassID(), Total: len(students)}
	studentIDs := make([]string, 0, len(students))

	// All rows land atomically: a failed write leaves the date untouched.
	err = s.repo.InTx(ctx, func(txRepo *repository.Repository) error {
		for i := range students {
			st := &students[i]
			status := statusByRoll[st.RollNumber]
			record := &model.AttendanceRecord{
				StudentID: st.StudentID,
				Date:      date,
				Status:    status,
				Batch:     st.Batch,
				Year:      st.Year,
				Semester:  st.Semester,
				Section:   st.Section,
				MarkedBy:  res.Faculty.FacultyID,
			}
			if err := txRepo.Attendance.Upsert(ctx, record); err != nil {
				return err
			}
			studentIDs = append(studentIDs, st.StudentID)
			switch status {
			case model.AttendanceAbsent:
				resp.Absent++
			case model.AttendanceOD:
				resp.OD++
			default:
				resp.Present++
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("mark attendance failed",
			zap.String("class_id", key.ClassID()),
			zap.String("date", req.Date),
			zap.Error(err),
		)
		return nil, err
	}

	s.auditMarking(userID, key.ClassID(), res, studentIDs)

	s.logger.Info("attendance marked",
		zap.String("class_id", key.ClassID()),
		zap.String("date", req.Date),
		zap.String("faculty_id", res.Faculty.FacultyID),
		zap.String("source", res.Source),
		zap.Int("total", resp.Total),
		zap.Int("absent", resp.Absent),
		zap.Int("od", resp.OD),
	)
	return resp, nil
}

// buildStatusMap folds the two exception lists over the roster. The
// request is rejected whole when a roll appears in both lists or names a
// student the roster does not have.
func buildStatusMap(students []model.Student, absent, od []string) (map[string]string, error) {
	onRoster := make(map[string]bool, len(students))
	for i := range students {
		onRoster[students[i].RollNumber] = true
	}

	statusByRoll := make(map[string]string, len(students))
	inAbsent := make(map[string]bool, len(absent))
	var ambiguous, unknown []string

	for _, roll := range absent {
		inAbsent[roll] = true
		if !onRoster[roll] {
			unknown = append(unknown, roll)
			continue
		}
		statusByRoll[roll] = model.AttendanceAbsent
	}
	for _, roll := range od {
		if inAbsent[roll] {
			ambiguous = append(ambiguous, roll)
			continue
		}
		if !onRoster[roll] {
			unknown = append(unknown, roll)
			continue
		}
		statusByRoll[roll] = model.AttendanceOD
	}

	if len(ambiguous) > 0 {
		sort.Strings(ambiguous)
		return nil, &AmbiguousRollsError{Rolls: ambiguous}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &UnknownRollsError{Rolls: unknown}
	}

	for i := range students {
		if _, ok := statusByRoll[students[i].RollNumber]; !ok {
			statusByRoll[students[i].RollNumber] = model.AttendancePresent
		}
	}
	return statusByRoll, nil
}

// auditMarking records the committed run with the affected student IDs.
// Fire-and-forget, same discipline as the resolver's trail.
func (s *attendanceService) auditMarking(userID, classID string, res *Resolution, studentIDs []string) {
	entry := &model.FacultyAuditLog{
		Operation:    "mark_attendance_commit",
		ClassID:      classID,
		FacultyID:    &res.Faculty.FacultyID,
		Source:       res.Source,
		StudentCount: len(studentIDs),
		StudentIDs:   studentIDs,
		Status:       model.AuditStatusSuccess,
		ResolvedAt:   time.Now(),
	}
	if userID != "" {
		entry.UserID = &userID
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.AuditLog.Create(ctx, entry); err != nil {
			s.logger.Warn("marking audit write failed", zap.String("class_id", classID), zap.Error(err))
		}
	}()
}

// ────────────────────── EditStudent ──────────────────────

func (s *attendanceService) EditStudent(ctx context.Context, userID string, req *dto.EditStudentRequest) (*dto.AttendanceRecordResponse, error) {
	date, err := parseDay(req.Date)
	if err != nil {
		return nil, ErrInvalidDateRange
	}

	student, err := s.repo.Student.GetByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	faculty, err := s.repo.Faculty.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotBoundToClass
		}
		return nil, err
	}
	if !s.facultySvc.ValidateBinding(ctx, faculty.FacultyID, ClassContext{
		Batch: student.Batch, Year: student.Year, Semester: student.Semester, Section: student.Section,
	}) {
		return nil, ErrNotBoundToClass
	}

	record := &model.AttendanceRecord{
		StudentID: student.StudentID,
		Date:      date,
		Status:    req.Status,
		Batch:     student.Batch,
		Year:      student.Year,
		Semester:  student.Semester,
		Section:   student.Section,
		MarkedBy:  faculty.FacultyID,
	}
	if err := s.repo.Attendance.Upsert(ctx, record); err != nil {
		s.logger.Error("edit attendance failed",
			zap.String("student_id", student.StudentID),
			zap.String("date", req.Date),
			zap.Error(err),
		)
		return nil, err
	}

	saved, err := s.repo.Attendance.GetByStudentDate(ctx, student.StudentID, date)
	if err != nil {
		return nil, err
	}
	resp := toAttendanceRecordResponse(saved)
	resp.RollNumber = student.RollNumber
	resp.Name = student.Name
	return resp, nil
}

// ────────────────────── history ──────────────────────

func (s *attendanceService) HistoryByClass(ctx context.Context, req *dto.HistoryByClassRequest) ([]dto.AttendanceRecordResponse, error) {
	section := req.Section
	if section == "" {
		section = classid.DefaultSection
	}
	from, to, err := parseRange(req.From, req.To)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.Attendance.ListByClassRange(ctx, req.Batch, req.Year, req.Semester, section, from, to)
	if err != nil {
		s.logger.Error("class history query failed", zap.Error(err))
		return nil, err
	}
	return toAttendanceRecordResponses(records), nil
}

func (s *attendanceService) HistoryByStudent(ctx context.Context, studentID, from, to string) ([]dto.AttendanceRecordResponse, error) {
	if _, err := s.repo.Student.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	fromDay, toDay, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.Attendance.ListByStudentRange(ctx, studentID, fromDay, toDay)
	if err != nil {
		s.logger.Error("student history query failed", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}
	return toAttendanceRecordResponses(records), nil
}

// ── helpers ──

func parseRange(from, to string) (time.Time, time.Time, error) {
	fromDay, err := parseDay(from)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	toDay, err := parseDay(to)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	if toDay.Before(fromDay) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return fromDay, toDay, nil
}

func toAttendanceRecordResponse(record *model.AttendanceRecord) *dto.AttendanceRecordResponse {
	resp := &dto.AttendanceRecordResponse{
		ID:        record.AttendanceRecordID,
		StudentID: record.StudentID,
		Date:      formatDay(record.Date),
		Status:    record.Status,
		MarkedBy:  record.MarkedBy,
	}
	if record.Student != nil {
		resp.RollNumber = record.Student.RollNumber
		resp.Name = record.Student.Name
	}
	return resp
}

func toAttendanceRecordResponses(records []model.AttendanceRecord) []dto.AttendanceRecordResponse {
	result := make([]dto.AttendanceRecordResponse, 0, len(records))
	for i := range records {
		result = append(result, *toAttendanceRecordResponse(&records[i]))
	}
	return result
}
