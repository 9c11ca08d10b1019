package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/dushyanth88/Attendance-project-sub001/internal/model"
	"github.com/dushyanth88/Attendance-project-sub001/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	if u, ok := m.users[id]; ok {
		u.LastLogin = &at
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, filters *repository.UserListFilters, offset, limit int) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range m.users {
		if filters != nil {
			if filters.Role != "" && u.Role != filters.Role {
				continue
			}
			if filters.Department != "" && u.Department != filters.Department {
				continue
			}
			if filters.Status != "" && u.Status != filters.Status {
				continue
			}
			if filters.Keyword != "" &&
				!strings.Contains(u.Name, filters.Keyword) &&
				!strings.Contains(u.Email, filters.Keyword) {
				continue
			}
		}
		all = append(all, *u)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

// ── Mock FacultyRepository ──

type mockFacultyRepo struct {
	faculties map[string]*model.Faculty
	users     *mockUserRepo // for GetByUserID preloads
}

func newMockFacultyRepo(users *mockUserRepo) *mockFacultyRepo {
	return &mockFacultyRepo{faculties: make(map[string]*model.Faculty), users: users}
}

func (m *mockFacultyRepo) Create(_ context.Context, faculty *model.Faculty) error {
	if faculty.FacultyID == "" {
		faculty.FacultyID = fmt.Sprintf("fac-%d", len(m.faculties)+1)
	}
	m.faculties[faculty.FacultyID] = faculty
	return nil
}

func (m *mockFacultyRepo) GetByID(_ context.Context, id string) (*model.Faculty, error) {
	if f, ok := m.faculties[id]; ok {
		return f, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFacultyRepo) GetByUserID(_ context.Context, userID string) (*model.Faculty, error) {
	for _, f := range m.faculties {
		if f.UserID == userID {
			if m.users != nil {
				if u, ok := m.users.users[userID]; ok {
					f.User = u
				}
			}
			return f, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFacultyRepo) ListActive(_ context.Context, department string) ([]model.Faculty, error) {
	var result []model.Faculty
	for _, f := range m.faculties {
		if f.Status != model.StatusActive {
			continue
		}
		if department != "" && f.Department != department {
			continue
		}
		result = append(result, *f)
	}
	return result, nil
}

func (m *mockFacultyRepo) List(_ context.Context, department string, offset, limit int) ([]model.Faculty, int64, error) {
	var all []model.Faculty
	for _, f := range m.faculties {
		if department != "" && f.Department != department {
			continue
		}
		all = append(all, *f)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockFacultyRepo) Update(_ context.Context, faculty *model.Faculty) error {
	m.faculties[faculty.FacultyID] = faculty
	return nil
}

func (m *mockFacultyRepo) Delete(_ context.Context, id string) error {
	delete(m.faculties, id)
	return nil
}

// ── Mock ClassAssignmentRepository ──

type mockClassAssignmentRepo struct {
	assignments map[string]*model.ClassAssignment
}

func newMockClassAssignmentRepo() *mockClassAssignmentRepo {
	return &mockClassAssignmentRepo{assignments: make(map[string]*model.ClassAssignment)}
}

func (m *mockClassAssignmentRepo) Create(_ context.Context, assignment *model.ClassAssignment) error {
	if assignment.ClassAssignmentID == "" {
		assignment.ClassAssignmentID = fmt.Sprintf("asg-%d", len(m.assignments)+1)
	}
	m.assignments[assignment.ClassAssignmentID] = assignment
	return nil
}

func (m *mockClassAssignmentRepo) GetByID(_ context.Context, id string) (*model.ClassAssignment, error) {
	if a, ok := m.assignments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassAssignmentRepo) GetByClass(_ context.Context, batch, year string, semester int, section, department string) (*model.ClassAssignment, error) {
	for _, a := range m.assignments {
		if a.Active && a.Batch == batch && a.Year == year && a.Semester == semester &&
			a.Section == section && a.Department == department {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassAssignmentRepo) ListByFaculty(_ context.Context, facultyID string) ([]model.ClassAssignment, error) {
	var result []model.ClassAssignment
	for _, a := range m.assignments {
		if a.FacultyID == facultyID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockClassAssignmentRepo) List(_ context.Context, department string, offset, limit int) ([]model.ClassAssignment, int64, error) {
	var all []model.ClassAssignment
	for _, a := range m.assignments {
		if department != "" && a.Department != department {
			continue
		}
		all = append(all, *a)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockClassAssignmentRepo) Update(_ context.Context, assignment *model.ClassAssignment) error {
	m.assignments[assignment.ClassAssignmentID] = assignment
	return nil
}

func (m *mockClassAssignmentRepo) Delete(_ context.Context, id string) error {
	delete(m.assignments, id)
	return nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if student.StudentID == "" {
		student.StudentID = fmt.Sprintf("stu-%d", len(m.students)+1)
	}
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByEmail(_ context.Context, email string) (*model.Student, error) {
	for _, s := range m.students {
		if strings.EqualFold(s.Email, email) {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByRollNumber(_ context.Context, rollNumber, batch, department string) (*model.Student, error) {
	for _, s := range m.students {
		if s.RollNumber == rollNumber && s.Batch == batch && s.Department == department {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByMobile(_ context.Context, mobile string) (*model.Student, error) {
	for _, s := range m.students {
		if s.Mobile == mobile {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) ListByClass(_ context.Context, classID string) ([]model.Student, error) {
	var result []model.Student
	for _, s := range m.students {
		if s.ClassID == classID && s.Status == model.StatusActive {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RollNumber < result[j].RollNumber })
	return result, nil
}

func (m *mockStudentRepo) List(_ context.Context, filters *repository.StudentListFilters, offset, limit int) ([]model.Student, int64, error) {
	var all []model.Student
	for _, s := range m.students {
		if filters != nil {
			if filters.ClassID != "" && s.ClassID != filters.ClassID {
				continue
			}
			if filters.Department != "" && s.Department != filters.Department {
				continue
			}
			if filters.Batch != "" && s.Batch != filters.Batch {
				continue
			}
			if filters.Status != "" && s.Status != filters.Status {
				continue
			}
		}
		all = append(all, *s)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id string) error {
	delete(m.students, id)
	return nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	// key: studentID + "|" + date
	records map[string]*model.AttendanceRecord
	failOnN int // fail the Nth Upsert, 0 = never
	calls   int
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{records: make(map[string]*model.AttendanceRecord)}
}

func attKey(studentID string, date time.Time) string {
	return studentID + "|" + date.Format("2006-01-02")
}

func (m *mockAttendanceRepo) Upsert(_ context.Context, record *model.AttendanceRecord) error {
	m.calls++
	if m.failOnN > 0 && m.calls == m.failOnN {
		return fmt.Errorf("simulated write failure")
	}
	key := attKey(record.StudentID, record.Date)
	if existing, ok := m.records[key]; ok {
		existing.Status = record.Status
		existing.MarkedBy = record.MarkedBy
		return nil
	}
	if record.AttendanceRecordID == "" {
		record.AttendanceRecordID = fmt.Sprintf("att-%d", len(m.records)+1)
	}
	copied := *record
	m.records[key] = &copied
	return nil
}

func (m *mockAttendanceRepo) GetByStudentDate(_ context.Context, studentID string, date time.Time) (*model.AttendanceRecord, error) {
	if r, ok := m.records[attKey(studentID, date)]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) ListByClassDate(_ context.Context, batch, year string, semester int, section string, date time.Time) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if r.Batch == batch && r.Year == year && r.Semester == semester && r.Section == section &&
			r.Date.Equal(date) {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListByClassRange(_ context.Context, batch, year string, semester int, section string, from, to time.Time) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if r.Batch == batch && r.Year == year && r.Semester == semester && r.Section == section &&
			!r.Date.Before(from) && !r.Date.After(to) {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListByStudentRange(_ context.Context, studentID string, from, to time.Time) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if r.StudentID == studentID && !r.Date.Before(from) && !r.Date.After(to) {
			result = append(result, *r)
		}
	}
	return result, nil
}

// ── Mock HolidayRepository ──

type mockHolidayRepo struct {
	holidays map[string]*model.Holiday
}

func newMockHolidayRepo() *mockHolidayRepo {
	return &mockHolidayRepo{holidays: make(map[string]*model.Holiday)}
}

func (m *mockHolidayRepo) Create(_ context.Context, holiday *model.Holiday) error {
	if holiday.HolidayID == "" {
		holiday.HolidayID = fmt.Sprintf("hol-%d", len(m.holidays)+1)
	}
	m.holidays[holiday.HolidayID] = holiday
	return nil
}

func (m *mockHolidayRepo) GetByID(_ context.Context, id string) (*model.Holiday, error) {
	if h, ok := m.holidays[id]; ok {
		return h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHolidayRepo) GetByDateDepartment(_ context.Context, date time.Time, department string) (*model.Holiday, error) {
	for _, h := range m.holidays {
		if h.Department == department &&
			h.HolidayDate.Format("2006-01-02") == date.Format("2006-01-02") {
			return h, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHolidayRepo) ListByDepartment(_ context.Context, department string, from, to *time.Time) ([]model.Holiday, error) {
	var result []model.Holiday
	for _, h := range m.holidays {
		if h.Department != department {
			continue
		}
		if from != nil && h.HolidayDate.Before(*from) {
			continue
		}
		if to != nil && h.HolidayDate.After(*to) {
			continue
		}
		result = append(result, *h)
	}
	return result, nil
}

func (m *mockHolidayRepo) Update(_ context.Context, holiday *model.Holiday) error {
	m.holidays[holiday.HolidayID] = holiday
	return nil
}

func (m *mockHolidayRepo) Delete(_ context.Context, id string) error {
	delete(m.holidays, id)
	return nil
}

// ── Mock AuditLogRepository ──

// mutex-guarded because audit writes run on their own goroutine.
type mockAuditLogRepo struct {
	mu      sync.Mutex
	entries []model.FacultyAuditLog
}

func newMockAuditLogRepo() *mockAuditLogRepo {
	return &mockAuditLogRepo{}
}

func (m *mockAuditLogRepo) Create(_ context.Context, entry *model.FacultyAuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry.AuditLogID == "" {
		entry.AuditLogID = fmt.Sprintf("audit-%d", len(m.entries)+1)
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockAuditLogRepo) List(_ context.Context, filters *repository.AuditLogFilters, offset, limit int) ([]model.FacultyAuditLog, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []model.FacultyAuditLog
	for _, e := range m.entries {
		if filters != nil {
			if filters.Operation != "" && e.Operation != filters.Operation {
				continue
			}
			if filters.FacultyID != "" && (e.FacultyID == nil || *e.FacultyID != filters.FacultyID) {
				continue
			}
			if filters.Source != "" && e.Source != filters.Source {
				continue
			}
			if filters.Status != "" && e.Status != filters.Status {
				continue
			}
		}
		all = append(all, e)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

// snapshot returns a copy of the trail for assertions.
func (m *mockAuditLogRepo) snapshot() []model.FacultyAuditLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.FacultyAuditLog, len(m.entries))
	copy(out, m.entries)
	return out
}

// ── shared helpers ──

func paginate[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

// newMockRepository assembles a Repository over fresh mocks.
func newMockRepository() (*repository.Repository, *mockUserRepo, *mockFacultyRepo, *mockClassAssignmentRepo, *mockStudentRepo, *mockAttendanceRepo, *mockHolidayRepo, *mockAuditLogRepo) {
	users := newMockUserRepo()
	faculties := newMockFacultyRepo(users)
	assignments := newMockClassAssignmentRepo()
	students := newMockStudentRepo()
	attendance := newMockAttendanceRepo()
	holidays := newMockHolidayRepo()
	audits := newMockAuditLogRepo()

	repo := &repository.Repository{
		User:            users,
		Faculty:         faculties,
		ClassAssignment: assignments,
		Student:         students,
		Attendance:      attendance,
		Holiday:         holidays,
		AuditLog:        audits,
	}
	return repo, users, faculties, assignments, students, attendance, holidays, audits
}
