//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dushyanth88/Attendance-project-sub001/internal/model"
	"github.com/dushyanth88/Attendance-project-sub001/internal/repository"
)

var (
	testDB   *gorm.DB
	testRepo *repository.Repository
)

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=attendance password=attendance_password dbname=attendance_test sslmode=disable TimeZone=Asia/Kolkata"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot connect to test database: %v\n", err)
		os.Exit(1)
	}

	err = testDB.AutoMigrate(
		&model.User{},
		&model.Faculty{},
		&model.ClassAssignment{},
		&model.Student{},
		&model.AttendanceRecord{},
		&model.Holiday{},
		&model.FacultyAuditLog{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate failed: %v\n", err)
		os.Exit(1)
	}

	testRepo = repository.NewRepository(testDB)
	os.Exit(m.Run())
}

// setupTestData creates one user, faculty and student; returns a cleanup
// closure that hard-deletes everything the test created.
func setupTestData(t *testing.T) (user *model.User, faculty *model.Faculty, student *model.Student, cleanup func()) {
	t.Helper()
	ctx := context.Background()
	nonce := time.Now().UnixNano()

	user = &model.User{
		Name:         "Test Faculty",
		Email:        fmt.Sprintf("fac%d@college.edu", nonce),
		PasswordHash: "$2a$10$placeholder",
		Role:         model.RoleFaculty,
		Department:   "CSE",
		Status:       model.StatusActive,
	}
	if err := testRepo.User.Create(ctx, user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	faculty = &model.Faculty{
		UserID:     user.UserID,
		Department: "CSE",
		AssignedClasses: model.ClassBindingList{
			{Batch: "2023-2027", Year: "2nd Year", Semester: 3, Section: "A", Active: true},
		},
		Status: model.StatusActive,
	}
	if err := testRepo.Faculty.Create(ctx, faculty); err != nil {
		t.Fatalf("create faculty failed: %v", err)
	}

	studentUser := &model.User{
		Name:         "Test Student",
		Email:        fmt.Sprintf("stu%d@college.edu", nonce),
		PasswordHash: "$2a$10$placeholder",
		Role:         model.RoleStudent,
		Department:   "CSE",
		Status:       model.StatusActive,
	}
	if err := testRepo.User.Create(ctx, studentUser); err != nil {
		t.Fatalf("create student user failed: %v", err)
	}

	student = &model.Student{
		UserID:        studentUser.UserID,
		RollNumber:    fmt.Sprintf("CS%d", nonce%100000),
		Name:          "Test Student",
		Email:         studentUser.Email,
		Batch:         "2023-2027",
		Year:          "2nd Year",
		Semester:      3,
		Section:       "A",
		ClassID:       "2023-2027_2nd Year_3_A",
		ClassAssigned: "2nd Year - Sem 3 - Section A (2023-2027)",
		FacultyID:     faculty.FacultyID,
		Department:    "CSE",
		Status:        model.StatusActive,
	}
	if err := testRepo.Student.Create(ctx, student); err != nil {
		t.Fatalf("create student failed: %v", err)
	}

	cleanup = func() {
		testDB.Unscoped().Where("student_id = ?", student.StudentID).Delete(&model.AttendanceRecord{})
		testDB.Unscoped().Where("student_id = ?", student.StudentID).Delete(&model.Student{})
		testDB.Unscoped().Where("faculty_id = ?", faculty.FacultyID).Delete(&model.Faculty{})
		testDB.Unscoped().Where("user_id IN ?", []string{user.UserID, studentUser.UserID}).Delete(&model.User{})
	}
	return user, faculty, student, cleanup
}

func TestUserGetByEmailCaseInsensitive(t *testing.T) {
	user, _, _, cleanup := setupTestData(t)
	defer cleanup()

	found, err := testRepo.User.GetByEmail(context.Background(), user.Email)
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if found.UserID != user.UserID {
		t.Errorf("expected %s, got %s", user.UserID, found.UserID)
	}

	upper, err := testRepo.User.GetByEmail(context.Background(), "FAC"+user.Email[3:])
	if err != nil {
		t.Fatalf("uppercase lookup failed: %v", err)
	}
	if upper.UserID != user.UserID {
		t.Error("expected case-insensitive match")
	}
}

func TestAttendanceUpsertOverwrites(t *testing.T) {
	_, faculty, student, cleanup := setupTestData(t)
	defer cleanup()
	ctx := context.Background()

	date := time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)
	record := &model.AttendanceRecord{
		StudentID: student.StudentID,
		Date:      date,
		Status:    model.AttendanceAbsent,
		Batch:     student.Batch,
		Year:      student.Year,
		Semester:  student.Semester,
		Section:   student.Section,
		MarkedBy:  faculty.FacultyID,
	}
	if err := testRepo.Attendance.Upsert(ctx, record); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	record2 := *record
	record2.AttendanceRecordID = ""
	record2.Status = model.AttendancePresent
	if err := testRepo.Attendance.Upsert(ctx, &record2); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	var count int64
	testDB.Model(&model.AttendanceRecord{}).
		Where("student_id = ? AND date = ?", student.StudentID, date).
		Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 row per (student, date), got %d", count)
	}

	saved, err := testRepo.Attendance.GetByStudentDate(ctx, student.StudentID, date)
	if err != nil {
		t.Fatalf("GetByStudentDate failed: %v", err)
	}
	if saved.Status != model.AttendancePresent {
		t.Errorf("expected overwritten status Present, got %s", saved.Status)
	}
}

func TestStudentListByClassOrdersByRoll(t *testing.T) {
	_, faculty, student, cleanup := setupTestData(t)
	defer cleanup()
	ctx := context.Background()

	second := *student
	second.StudentID = ""
	second.UserID = student.UserID
	second.RollNumber = "AA" + student.RollNumber
	second.Email = "second-" + student.Email
	if err := testRepo.Student.Create(ctx, &second); err != nil {
		t.Fatalf("create second student failed: %v", err)
	}
	defer testDB.Unscoped().Where("student_id = ?", second.StudentID).Delete(&model.Student{})

	students, err := testRepo.Student.ListByClass(ctx, student.ClassID)
	if err != nil {
		t.Fatalf("ListByClass failed: %v", err)
	}
	for i := 1; i < len(students); i++ {
		if students[i-1].RollNumber > students[i].RollNumber {
			t.Fatalf("roster not ordered by roll number: %s before %s",
				students[i-1].RollNumber, students[i].RollNumber)
		}
	}

	_ = faculty
}

func TestInTxRollsBack(t *testing.T) {
	user, _, _, cleanup := setupTestData(t)
	defer cleanup()
	ctx := context.Background()

	var createdID string
	err := testRepo.InTx(ctx, func(txRepo *repository.Repository) error {
		u := &model.User{
			Name:         "Rollback Target",
			Email:        fmt.Sprintf("rollback%d@college.edu", time.Now().UnixNano()),
			PasswordHash: "$2a$10$placeholder",
			Role:         model.RoleStudent,
			Department:   "CSE",
			Status:       model.StatusActive,
		}
		if err := txRepo.User.Create(ctx, u); err != nil {
			return err
		}
		createdID = u.UserID
		return fmt.Errorf("force rollback")
	})
	if err == nil {
		t.Fatal("expected the forced error to propagate")
	}

	if _, err := testRepo.User.GetByID(ctx, createdID); err == nil {
		t.Error("expected rolled-back row to be absent")
	}

	_ = user
}

func TestHolidayUniquePerDepartment(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 1, 26, 0, 0, 0, 0, time.UTC)

	h1 := &model.Holiday{HolidayDate: date, Department: "CSE", Reason: "Republic Day"}
	if err := testRepo.Holiday.Create(ctx, h1); err != nil {
		t.Fatalf("create holiday failed: %v", err)
	}
	defer testDB.Unscoped().Where("holiday_id = ?", h1.HolidayID).Delete(&model.Holiday{})

	found, err := testRepo.Holiday.GetByDateDepartment(ctx, date, "CSE")
	if err != nil {
		t.Fatalf("GetByDateDepartment failed: %v", err)
	}
	if found.HolidayID != h1.HolidayID {
		t.Errorf("expected %s, got %s", h1.HolidayID, found.HolidayID)
	}

	if _, err := testRepo.Holiday.GetByDateDepartment(ctx, date, "ECE"); err == nil {
		t.Error("expected no holiday for the other department")
	}
}
