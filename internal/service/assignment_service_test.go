package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dushyanth88/Attendance-project-sub001/internal/dto"
	"github.com/dushyanth88/Attendance-project-sub001/internal/model"
)

func setupTestAssignmentService() (AssignmentService, *mockFacultyRepo, *mockClassAssignmentRepo) {
	repo, users, faculties, assignments, _, _, _, _ := newMockRepository()
	seedUser(users, "u1", model.RoleFaculty, "CSE")
	seedFaculty(faculties, "f1", "u1", "CSE", true, csBinding())
	return NewAssignmentService(repo, zap.NewNop()), faculties, assignments
}

func seedAssignment(assignments *mockClassAssignmentRepo, id, facultyID string, start, end *time.Time) *model.ClassAssignment {
	a := &model.ClassAssignment{
		ClassAssignmentID:   id,
		FacultyID:           facultyID,
		Batch:               "2023-2027",
		Year:                "2nd Year",
		Semester:            3,
		Section:             "A",
		Department:          "CSE",
		AttendanceStartDate: start,
		AttendanceEndDate:   end,
		Active:              true,
	}
	assignments.assignments[id] = a
	return a
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func dayPtr(s string) *time.Time {
	d := day(s)
	return &d
}

// ────────────────────── CanMarkAttendance ──────────────────────

func TestCanMarkAttendanceWindow(t *testing.T) {
	assignment := &model.ClassAssignment{
		AttendanceStartDate: dayPtr("2025-01-10"),
		AttendanceEndDate:   dayPtr("2025-01-20"),
	}

	cases := []struct {
		name    string
		target  string
		allowed bool
		before  bool
	}{
		{"day before start", "2025-01-09", false, true},
		{"start date itself", "2025-01-10", true, false},
		{"inside window", "2025-01-15", true, false},
		{"end date itself", "2025-01-20", true, false},
		{"day after end", "2025-01-21", false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CanMarkAttendance(assignment, day(tc.target))
			if tc.allowed {
				if err != nil {
					t.Fatalf("expected %s to be markable, got %v", tc.target, err)
				}
				return
			}
			var winErr *WindowError
			if !errors.As(err, &winErr) {
				t.Fatalf("expected WindowError, got %v", err)
			}
			if winErr.Before != tc.before {
				t.Errorf("expected Before=%v, got %v", tc.before, winErr.Before)
			}
		})
	}
}

func TestCanMarkAttendanceNoStartDate(t *testing.T) {
	err := CanMarkAttendance(&model.ClassAssignment{}, day("2025-01-10"))
	if !errors.Is(err, ErrStartDateNotSet) {
		t.Errorf("expected ErrStartDateNotSet, got %v", err)
	}
}

func TestCanMarkAttendanceOpenEnded(t *testing.T) {
	assignment := &model.ClassAssignment{AttendanceStartDate: dayPtr("2025-01-10")}
	if err := CanMarkAttendance(assignment, day("2026-06-01")); err != nil {
		t.Errorf("expected open-ended window to allow any later date, got %v", err)
	}
}

// ────────────────────── UpdateAttendanceDates ──────────────────────

func TestUpdateAttendanceDates(t *testing.T) {
	svc, _, assignments := setupTestAssignmentService()
	seedAssignment(assignments, "a1", "f1", nil, nil)

	resp, err := svc.UpdateAttendanceDates(context.Background(), "a1", &dto.UpdateAttendanceDatesRequest{
		AttendanceStartDate: "2025-01-10",
		AttendanceEndDate:   "2025-05-30",
	}, "hod1")
	if err != nil {
		t.Fatalf("UpdateAttendanceDates failed: %v", err)
	}
	if resp.AttendanceStartDate != "2025-01-10" || resp.AttendanceEndDate != "2025-05-30" {
		t.Errorf("unexpected window: %s .. %s", resp.AttendanceStartDate, resp.AttendanceEndDate)
	}
}

func TestUpdateAttendanceDatesStartOnly(t *testing.T) {
	svc, _, assignments := setupTestAssignmentService()
	// a previously set end date is cleared when the new request omits it
	seedAssignment(assignments, "a1", "f1", dayPtr("2024-08-01"), dayPtr("2024-12-20"))

	resp, err := svc.UpdateAttendanceDates(context.Background(), "a1", &dto.UpdateAttendanceDatesRequest{
		AttendanceStartDate: "2025-01-10",
	}, "hod1")
	if err != nil {
		t.Fatalf("UpdateAttendanceDates failed: %v", err)
	}
	if resp.AttendanceEndDate != "" {
		t.Errorf("expected end date cleared, got %s", resp.AttendanceEndDate)
	}
}

func TestUpdateAttendanceDatesRejectsEqualAndInverted(t *testing.T) {
	svc, _, assignments := setupTestAssignmentService()
	seedAssignment(assignments, "a1", "f1", nil, nil)

	for _, end := range []string{"2025-01-10", "2025-01-05"} {
		_, err := svc.UpdateAttendanceDates(context.Background(), "a1", &dto.UpdateAttendanceDatesRequest{
			AttendanceStartDate: "2025-01-10",
			AttendanceEndDate:   end,
		}, "hod1")
		if !errors.Is(err, ErrInvalidDateRange) {
			t.Errorf("end=%s: expected ErrInvalidDateRange, got %v", end, err)
		}
	}
}

func TestUpdateAttendanceDatesUnknownAssignment(t *testing.T) {
	svc, _, _ := setupTestAssignmentService()

	_, err := svc.UpdateAttendanceDates(context.Background(), "missing", &dto.UpdateAttendanceDatesRequest{
		AttendanceStartDate: "2025-01-10",
	}, "hod1")
	if !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("expected ErrAssignmentNotFound, got %v", err)
	}
}

// ────────────────────── CanMark ──────────────────────

func TestCanMark(t *testing.T) {
	svc, _, assignments := setupTestAssignmentService()
	seedAssignment(assignments, "a1", "f1", dayPtr("2025-01-10"), dayPtr("2025-05-30"))

	resp, err := svc.CanMark(context.Background(), "2023-2027", "2nd Year", 3, "A", "CSE", "2025-02-14")
	if err != nil {
		t.Fatalf("CanMark failed: %v", err)
	}
	if !resp.Allowed {
		t.Errorf("expected allowed, got reason %q", resp.Reason)
	}

	resp, err = svc.CanMark(context.Background(), "2023-2027", "2nd Year", 3, "A", "CSE", "2025-01-09")
	if err != nil {
		t.Fatalf("CanMark failed: %v", err)
	}
	if resp.Allowed {
		t.Error("expected date before window to be rejected")
	}
	if resp.Reason == "" {
		t.Error("expected a human-readable reason")
	}
}

func TestCanMarkUnknownClass(t *testing.T) {
	svc, _, _ := setupTestAssignmentService()

	_, err := svc.CanMark(context.Background(), "2020-2024", "4th Year", 8, "A", "CSE", "2025-01-10")
	if !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("expected ErrAssignmentNotFound, got %v", err)
	}
}

// ────────────────────── CRUD ──────────────────────

func TestCreateAssignment(t *testing.T) {
	svc, _, _ := setupTestAssignmentService()

	req := &dto.CreateClassAssignmentRequest{
		FacultyID:           "f1",
		Batch:               "2023-2027",
		Year:                "2nd Year",
		Semester:            3,
		Department:          "CSE",
		AttendanceStartDate: "2025-01-10",
	}
	resp, err := svc.Create(context.Background(), req, "hod1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if resp.Section != "A" {
		t.Errorf("expected section defaulted to A, got %s", resp.Section)
	}
	if resp.ClassID != "2023-2027_2nd Year_3_A" {
		t.Errorf("unexpected class id %s", resp.ClassID)
	}
	if !resp.Active {
		t.Error("expected new assignment active")
	}
}

func TestCreateAssignmentDuplicateClass(t *testing.T) {
	svc, _, assignments := setupTestAssignmentService()
	seedAssignment(assignments, "a1", "f1", nil, nil)

	req := &dto.CreateClassAssignmentRequest{
		FacultyID:  "f1",
		Batch:      "2023-2027",
		Year:       "2nd Year",
		Semester:   3,
		Department: "CSE",
	}
	_, err := svc.Create(context.Background(), req, "hod1")
	if !errors.Is(err, ErrAssignmentExists) {
		t.Errorf("expected ErrAssignmentExists, got %v", err)
	}
}

func TestCreateAssignmentRejectsNonCanonicalFields(t *testing.T) {
	svc, _, _ := setupTestAssignmentService()

	cases := []dto.CreateClassAssignmentRequest{
		{FacultyID: "f1", Batch: "2023", Year: "2nd Year", Semester: 3, Department: "CSE"},
		{FacultyID: "f1", Batch: "2023-2027", Year: "II", Semester: 3, Department: "CSE"},
		{FacultyID: "f1", Batch: "2023-2027", Year: "2nd Year", Semester: 9, Department: "CSE"},
	}
	for i := range cases {
		if _, err := svc.Create(context.Background(), &cases[i], "hod1"); !errors.Is(err, ErrInvalidClassFields) {
			t.Errorf("case %d: expected ErrInvalidClassFields, got %v", i, err)
		}
	}
}

func TestCreateAssignmentUnknownFaculty(t *testing.T) {
	svc, _, _ := setupTestAssignmentService()

	req := &dto.CreateClassAssignmentRequest{
		FacultyID:  "missing",
		Batch:      "2023-2027",
		Year:       "2nd Year",
		Semester:   3,
		Department: "CSE",
	}
	_, err := svc.Create(context.Background(), req, "hod1")
	if !errors.Is(err, ErrFacultyNotFound) {
		t.Errorf("expected ErrFacultyNotFound, got %v", err)
	}
}

func TestUpdateAssignmentReassignsFaculty(t *testing.T) {
	svc, faculties, assignments := setupTestAssignmentService()
	seedAssignment(assignments, "a1", "f1", nil, nil)
	seedFaculty(faculties, "f2", "u2", "CSE", false)

	newID := "f2"
	resp, err := svc.Update(context.Background(), "a1", &dto.UpdateClassAssignmentRequest{FacultyID: &newID}, "hod1")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if resp.FacultyID != "f2" {
		t.Errorf("expected faculty f2, got %s", resp.FacultyID)
	}
}
