package service

import (
	"context"
	"errors"
	"io"
	"net/mail"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dushyanth88/Attendance-project-sub001/internal/classid"
	"github.com/dushyanth88/Attendance-project-sub001/internal/dto"
	"github.com/dushyanth88/Attendance-project-sub001/internal/model"
	"github.com/dushyanth88/Attendance-project-sub001/internal/repository"
)

// ── student module errors ──

var (
	ErrDuplicateEmail      = errors.New("email is already registered")
	ErrDuplicateRollNumber = errors.New("roll number is already registered for this batch and department")
	ErrDuplicateMobile     = errors.New("mobile number is already registered")
)

// StudentService owns roster entries: single admission, bulk import and
// roster queries. Each admitted student gets a login account; account
// and roster row are created in one transaction.
type StudentService interface {
	Create(ctx context.Context, userID string, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.StudentResponse, error)
	List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateStudentRequest, callerID string) (*dto.StudentResponse, error)
	Delete(ctx context.Context, id string) error

	// BulkImport admits one spreadsheet of students into one class. Rows
	// fail independently; the response pairs every rejected row with the
	// reason so the uploader can fix and retry just those.
	BulkImport(ctx context.Context, userID string, class ClassContext, filename string, file io.Reader) (*dto.BulkImportResponse, error)
}

type studentService struct {
	repo          *repository.Repository
	facultySvc    FacultyService
	maxImportRows int
	logger        *zap.Logger
}

// NewStudentService creates the StudentService. maxImportRows bounds a
// single bulk-import sheet; zero means no bound.
func NewStudentService(repo *repository.Repository, facultySvc FacultyService, maxImportRows int, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, facultySvc: facultySvc, maxImportRows: maxImportRows, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *studentService) Create(ctx context.Context, userID string, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	if !classid.ValidBatch(req.Batch) || !classid.ValidYear(req.Year) || !classid.ValidSemester(req.Semester) {
		return nil, ErrInvalidClassFields
	}
	section := req.Section
	if section == "" {
		section = classid.DefaultSection
	}

	res, err := s.facultySvc.Resolve(ctx, "student_admission", userID, ClassContext{
		Batch: req.Batch, Year: req.Year, Semester: req.Semester, Section: section,
		Department: req.Department,
	})
	if err != nil {
		return nil, err
	}
	department := req.Department
	if department == "" {
		department = res.Faculty.Department
	}

	student, err := s.admit(ctx, req, section, department, res.Faculty.FacultyID, userID)
	if err != nil {
		return nil, err
	}
	return toStudentResponse(student), nil
}

// admit runs the duplicate checks and writes account plus roster row in
// one transaction. Shared by single admission and bulk import.
func (s *studentService) admit(ctx context.Context, req *dto.CreateStudentRequest, section, department, facultyID, callerID string) (*model.Student, error) {
	if err := s.checkDuplicates(ctx, req, department); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	key := classid.Key{Batch: req.Batch, Year: req.Year, Semester: req.Semester, Section: section}

	user := &model.User{
		Name:            req.Name,
		Email:           req.Email,
		PasswordHash:    string(hash),
		Role:            model.RoleStudent,
		Department:      department,
		Status:          model.StatusActive,
		SoftDeleteModel: model.SoftDeleteModel{BaseModel: model.BaseModel{CreatedBy: &callerID}},
	}

	var student *model.Student
	err = s.repo.InTx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.User.Create(ctx, user); err != nil {
			return err
		}
		student = &model.Student{
			UserID:          user.UserID,
			RollNumber:      req.RollNumber,
			Name:            req.Name,
			Email:           req.Email,
			Mobile:          req.Mobile,
			ParentContact:   req.ParentContact,
			Batch:           req.Batch,
			Year:            req.Year,
			Semester:        req.Semester,
			Section:         section,
			ClassID:         key.ClassID(),
			ClassAssigned:   key.ClassAssigned(),
			FacultyID:       facultyID,
			Department:      department,
			Status:          model.StatusActive,
			SoftDeleteModel: model.SoftDeleteModel{BaseModel: model.BaseModel{CreatedBy: &callerID}},
		}
		return txRepo.Student.Create(ctx, student)
	})
	if err != nil {
		s.logger.Error("admit student failed",
			zap.String("email", req.Email),
			zap.String("roll_number", req.RollNumber),
			zap.Error(err),
		)
		return nil, err
	}
	return student, nil
}

// checkDuplicates enforces the uniqueness rules before writing: email is
// globally unique across accounts and roster, roll number unique per
// (batch, department), mobile unique across the roster.
func (s *studentService) checkDuplicates(ctx context.Context, req *dto.CreateStudentRequest, department string) error {
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if _, err := s.repo.Student.GetByEmail(ctx, req.Email); err == nil {
		return ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if _, err := s.repo.Student.GetByRollNumber(ctx, req.RollNumber, req.Batch, department); err == nil {
		return ErrDuplicateRollNumber
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if req.Mobile != "" {
		if _, err := s.repo.Student.GetByMobile(ctx, req.Mobile); err == nil {
			return ErrDuplicateMobile
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	return nil
}

// ────────────────────── BulkImport ──────────────────────

func (s *studentService) BulkImport(ctx context.Context, userID string, class ClassContext, filename string, file io.Reader) (*dto.BulkImportResponse, error) {
	if !classid.ValidBatch(class.Batch) || !classid.ValidYear(class.Year) || !classid.ValidSemester(class.Semester) {
		return nil, ErrInvalidClassFields
	}
	if class.Section == "" {
		class.Section = classid.DefaultSection
	}

	rows, err := parseImportFile(filename, file)
	if err != nil {
		return nil, err
	}
	if s.maxImportRows > 0 && len(rows) > s.maxImportRows {
		return nil, &ImportTooLargeError{Rows: len(rows), Max: s.maxImportRows}
	}

	// One resolution covers the whole sheet: every row lands in the same
	// class, under the same faculty.
	res, err := s.facultySvc.Resolve(ctx, "bulk_import", userID, class)
	if err != nil {
		return nil, err
	}
	department := class.Department
	if department == "" {
		department = res.Faculty.Department
	}

	resp := &dto.BulkImportResponse{
		Successful: []dto.StudentResponse{},
		Failed:     []dto.BulkImportFailure{},
		Total:      len(rows),
	}
	seenEmail := make(map[string]bool, len(rows))
	seenRoll := make(map[string]bool, len(rows))

	for _, row := range rows {
		req, err := rowToCreateRequest(row.Data, class)
		if err == nil {
			switch {
			case seenEmail[req.Email]:
				err = ErrDuplicateEmail
			case seenRoll[req.RollNumber]:
				err = ErrDuplicateRollNumber
			}
		}

		var student *model.Student
		if err == nil {
			student, err = s.admit(ctx, req, class.Section, department, res.Faculty.FacultyID, userID)
		}
		if err != nil {
			resp.Failed = append(resp.Failed, dto.BulkImportFailure{
				Index:       row.Index,
				StudentData: row.Data,
				Error:       err.Error(),
			})
			continue
		}

		seenEmail[req.Email] = true
		seenRoll[req.RollNumber] = true
		resp.Successful = append(resp.Successful, *toStudentResponse(student))
	}

	s.logger.Info("bulk import finished",
		zap.String("class_id", classid.Key{Batch: class.Batch, Year: class.Year, Semester: class.Semester, Section: class.Section}.ClassID()),
		zap.Int("total", resp.Total),
		zap.Int("imported", len(resp.Successful)),
		zap.Int("rejected", len(resp.Failed)),
	)
	return resp, nil
}

// rowToCreateRequest validates one sheet row. A missing password column
// defaults to the roll number; the student must change it on first login.
func rowToCreateRequest(data map[string]string, class ClassContext) (*dto.CreateStudentRequest, error) {
	roll := data[colRollNumber]
	name := data[colName]
	email := data[colEmail]

	switch {
	case roll == "":
		return nil, errors.New("missing roll number")
	case name == "":
		return nil, errors.New("missing name")
	case email == "":
		return nil, errors.New("missing email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, errors.New("invalid email address")
	}
	if m := data[colMobile]; m != "" && !validMobile(m) {
		return nil, errors.New("invalid mobile number")
	}
	if p := data[colParentContact]; p != "" && !validMobile(p) {
		return nil, errors.New("invalid parent contact number")
	}

	password := data[colPassword]
	if password == "" {
		password = roll
	}

	return &dto.CreateStudentRequest{
		RollNumber:    roll,
		Name:          name,
		Email:         email,
		Password:      password,
		Mobile:        data[colMobile],
		ParentContact: data[colParentContact],
		Batch:         class.Batch,
		Year:          class.Year,
		Semester:      class.Semester,
		Section:       class.Section,
		Department:    class.Department,
	}, nil
}

func validMobile(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ────────────────────── queries / CRUD ──────────────────────

func (s *studentService) GetByID(ctx context.Context, id string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("get student failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toStudentResponse(student), nil
}

func (s *studentService) List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, int64, error) {
	filters := &repository.StudentListFilters{
		ClassID:    req.ClassID,
		Department: req.Department,
		Batch:      req.Batch,
		Status:     req.Status,
		Keyword:    req.Keyword,
	}
	students, total, err := s.repo.Student.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list students failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		result = append(result, *toStudentResponse(&students[i]))
	}
	return result, total, nil
}

func (s *studentService) Update(ctx context.Context, id string, req *dto.UpdateStudentRequest, callerID string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.Mobile != nil && *req.Mobile != student.Mobile {
		if *req.Mobile != "" {
			if _, err := s.repo.Student.GetByMobile(ctx, *req.Mobile); err == nil {
				return nil, ErrDuplicateMobile
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
		student.Mobile = *req.Mobile
	}
	if req.ParentContact != nil {
		student.ParentContact = *req.ParentContact
	}
	if req.Status != nil {
		student.Status = *req.Status
	}
	student.UpdatedBy = &callerID

	if err := s.repo.Student.Update(ctx, student); err != nil {
		s.logger.Error("update student failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toStudentResponse(student), nil
}

func (s *studentService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Student.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	return s.repo.Student.Delete(ctx, id)
}

// ── helpers ──

func toStudentResponse(student *model.Student) *dto.StudentResponse {
	return &dto.StudentResponse{
		ID:            student.StudentID,
		UserID:        student.UserID,
		RollNumber:    student.RollNumber,
		Name:          student.Name,
		Email:         student.Email,
		Mobile:        student.Mobile,
		ParentContact: student.ParentContact,
		Batch:         student.Batch,
		Year:          student.Year,
		Semester:      student.Semester,
		Section:       student.Section,
		ClassID:       student.ClassID,
		ClassAssigned: student.ClassAssigned,
		FacultyID:     student.FacultyID,
		Department:    student.Department,
		Status:        student.Status,
	}
}
