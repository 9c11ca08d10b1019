package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dushyanth88/Attendance-project-sub001/internal/classid"
	"github.com/dushyanth88/Attendance-project-sub001/internal/dto"
	"github.com/dushyanth88/Attendance-project-sub001/internal/model"
	"github.com/dushyanth88/Attendance-project-sub001/internal/repository"
)

// ── faculty module errors ──

var (
	ErrNoFacultyFound     = errors.New("no valid faculty found for this class")
	ErrFacultyNotFound    = errors.New("faculty not found")
	ErrFacultyExists      = errors.New("faculty record already exists for this user")
	ErrFacultyWrongRole   = errors.New("user does not have the faculty role")
	ErrInvalidClassFields = errors.New("invalid class fields")
)

// ClassContext describes the class a caller wants to act on. Either
// ClassID or the batch/year/semester triple identifies the class;
// Section defaults to "A".
type ClassContext struct {
	ClassID    string
	Batch      string
	Year       string
	Semester   int
	Section    string
	Department string
}

// Resolution is a successful faculty lookup plus the strategy that won.
type Resolution struct {
	Faculty *model.Faculty
	Source  string
}

// FacultyService owns faculty records, the class-binding resolver and
// the binding validator.
type FacultyService interface {
	Create(ctx context.Context, req *dto.CreateFacultyRequest, callerID string) (*dto.FacultyResponse, error)
	GetByID(ctx context.Context, id string) (*dto.FacultyResponse, error)
	List(ctx context.Context, req *dto.FacultyListRequest) ([]dto.FacultyResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateFacultyRequest, callerID string) (*dto.FacultyResponse, error)
	Delete(ctx context.Context, id string) error

	// Resolve maps (user, class context) to the faculty authorized for
	// that class using the priority-ordered fallback chain. Every
	// outcome is traced to the audit log.
	Resolve(ctx context.Context, operation, userID string, class ClassContext) (*Resolution, error)

	// ValidateBinding re-confirms a resolved faculty is still active and
	// bound to the class. Returns false on any doubt; never errors.
	ValidateBinding(ctx context.Context, facultyID string, class ClassContext) bool

	ListAuditLogs(ctx context.Context, req *dto.AuditLogListRequest) ([]dto.AuditLogResponse, int64, error)
}

type facultyService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewFacultyService creates the FacultyService.
func NewFacultyService(repo *repository.Repository, logger *zap.Logger) FacultyService {
	return &facultyService{repo: repo, logger: logger}
}

// ────────────────────── Resolve ──────────────────────

func (s *facultyService) Resolve(ctx context.Context, operation, userID string, class ClassContext) (*Resolution, error) {
	res, err := s.resolve(ctx, userID, class)
	s.audit(operation, userID, class, res, err)
	if err != nil {
		return nil, err
	}

	if res.Source == model.SourceDepartmentFallback {
		s.logger.Warn("faculty resolved via department fallback",
			zap.String("operation", operation),
			zap.String("faculty_id", res.Faculty.FacultyID),
			zap.String("department", class.Department),
		)
	}

	return res, nil
}

func (s *facultyService) resolve(ctx context.Context, userID string, class ClassContext) (*Resolution, error) {
	if class.Section == "" {
		class.Section = classid.DefaultSection
	}

	// 1/2. session identity: the caller's own faculty record
	if userID != "" {
		faculty, err := s.repo.Faculty.GetByUserID(ctx, userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err == nil && faculty.IsActive() {
			if s.matchesClass(faculty, class) {
				return &Resolution{Faculty: faculty, Source: model.SourceUserSession}, nil
			}
			if faculty.IsClassAdvisor {
				return &Resolution{Faculty: faculty, Source: model.SourceUserSessionLegacy}, nil
			}
		}
	}

	// Candidate scans below are department-scoped. An unset department
	// falls back to the caller's own, so a matching class in another
	// department is never picked up.
	if class.Department == "" && userID != "" {
		if user, err := s.repo.User.GetByID(ctx, userID); err == nil {
			class.Department = user.Department
		}
	}

	// 3. class-identifier lookup
	if class.ClassID != "" {
		key, err := classid.Parse(class.ClassID)
		if err != nil {
			return nil, ErrInvalidClassFields
		}
		mapped := class
		mapped.Batch, mapped.Year, mapped.Semester, mapped.Section = key.Batch, key.Year, key.Semester, key.Section
		if res, err := s.searchCandidates(ctx, mapped, model.SourceClassMapping, model.SourceClassMappingLegacy); err != nil || res != nil {
			return res, err
		}
	}

	// 4. batch/year/semester lookup
	if class.Batch != "" && class.Year != "" && class.Semester != 0 {
		if res, err := s.searchCandidates(ctx, class, model.SourceBatchLookup, model.SourceBatchLookupLegacy); err != nil || res != nil {
			return res, err
		}
	}

	// 5. department fallback: any active class-advisor in the department.
	if class.Department != "" {
		candidates, err := s.repo.Faculty.ListActive(ctx, class.Department)
		if err != nil {
			return nil, err
		}
		for i := range candidates {
			if candidates[i].IsClassAdvisor {
				return &Resolution{Faculty: &candidates[i], Source: model.SourceDepartmentFallback}, nil
			}
		}
	}

	return nil, ErrNoFacultyFound
}

// searchCandidates scans active faculty for a structured binding match,
// falling back to any class-advisor among them (legacy single-class
// binding). Returns (nil, nil) when nothing matched so the next
// strategy can run.
func (s *facultyService) searchCandidates(ctx context.Context, class ClassContext, source, legacySource string) (*Resolution, error) {
	candidates, err := s.repo.Faculty.ListActive(ctx, class.Department)
	if err != nil {
		return nil, err
	}

	var legacy *model.Faculty
	for i := range candidates {
		f := &candidates[i]
		if s.matchesClass(f, class) {
			return &Resolution{Faculty: f, Source: source}, nil
		}
		if legacy == nil && f.IsClassAdvisor && s.matchesLegacyScalars(f, class) {
			legacy = f
		}
	}
	if legacy != nil {
		return &Resolution{Faculty: legacy, Source: legacySource}, nil
	}
	return nil, nil
}

// matchesClass checks the folded binding list against the class context.
func (s *facultyService) matchesClass(faculty *model.Faculty, class ClassContext) bool {
	for _, b := range faculty.Bindings() {
		if b.Matches(class.Batch, class.Year, class.Semester, class.Section) {
			return true
		}
	}
	return false
}

// matchesLegacyScalars compares only the scalar columns, normalizing
// legacy year/semester spellings, ignoring fields the row leaves empty.
func (s *facultyService) matchesLegacyScalars(faculty *model.Faculty, class ClassContext) bool {
	if faculty.Batch != "" && faculty.Batch != class.Batch {
		return false
	}
	if faculty.Year != "" && !classid.SameYear(faculty.Year, class.Year) {
		return false
	}
	if faculty.Semester != nil && *faculty.Semester != class.Semester {
		return false
	}
	if faculty.Section != "" && class.Section != "" && faculty.Section != class.Section {
		return false
	}
	return faculty.Batch != "" || faculty.Year != "" || faculty.Semester != nil
}

// ────────────────────── ValidateBinding ──────────────────────

func (s *facultyService) ValidateBinding(ctx context.Context, facultyID string, class ClassContext) bool {
	faculty, err := s.repo.Faculty.GetByID(ctx, facultyID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("binding validation query failed", zap.String("faculty_id", facultyID), zap.Error(err))
		}
		return false
	}
	if !faculty.IsActive() {
		return false
	}
	if class.Section == "" {
		class.Section = classid.DefaultSection
	}
	return s.matchesClass(faculty, class)
}

// ────────────────────── audit trail ──────────────────────

// audit records one resolution outcome. Fire-and-forget: runs on its own
// goroutine with a detached context, and failures are logged, never
// propagated to the primary operation.
func (s *facultyService) audit(operation, userID string, class ClassContext, res *Resolution, resolveErr error) {
	entry := &model.FacultyAuditLog{
		Operation:  operation,
		ClassID:    class.ClassID,
		Status:     model.AuditStatusSuccess,
		ResolvedAt: time.Now(),
	}
	if class.ClassID == "" && class.Batch != "" {
		entry.ClassID = classid.Key{Batch: class.Batch, Year: class.Year, Semester: class.Semester, Section: class.Section}.ClassID()
	}
	if userID != "" {
		entry.UserID = &userID
	}
	if res != nil {
		entry.FacultyID = &res.Faculty.FacultyID
		entry.Source = res.Source
	}
	if resolveErr != nil {
		entry.Status = model.AuditStatusFailed
		entry.ErrorMessage = resolveErr.Error()
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.AuditLog.Create(ctx, entry); err != nil {
			s.logger.Warn("audit log write failed", zap.String("operation", operation), zap.Error(err))
		}
	}()
}

// ────────────────────── CRUD ──────────────────────

func (s *facultyService) Create(ctx context.Context, req *dto.CreateFacultyRequest, callerID string) (*dto.FacultyResponse, error) {
	user, err := s.repo.User.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Role != model.RoleFaculty {
		return nil, ErrFacultyWrongRole
	}

	if _, err := s.repo.Faculty.GetByUserID(ctx, req.UserID); err == nil {
		return nil, ErrFacultyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	bindings, err := toBindings(req.AssignedClasses)
	if err != nil {
		return nil, err
	}

	faculty := &model.Faculty{
		UserID:          req.UserID,
		Department:      req.Department,
		IsClassAdvisor:  req.IsClassAdvisor,
		AssignedClasses: bindings,
		Status:          model.StatusActive,
		SoftDeleteModel: model.SoftDeleteModel{BaseModel: model.BaseModel{CreatedBy: &callerID}},
	}

	if err := s.repo.Faculty.Create(ctx, faculty); err != nil {
		s.logger.Error("create faculty failed", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Faculty.GetByID(ctx, faculty.FacultyID)
	if err != nil {
		return nil, err
	}
	return toFacultyResponse(created), nil
}

func (s *facultyService) GetByID(ctx context.Context, id string) (*dto.FacultyResponse, error) {
	faculty, err := s.repo.Faculty.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacultyNotFound
		}
		s.logger.Error("get faculty failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toFacultyResponse(faculty), nil
}

func (s *facultyService) List(ctx context.Context, req *dto.FacultyListRequest) ([]dto.FacultyResponse, int64, error) {
	faculties, total, err := s.repo.Faculty.List(ctx, req.Department, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list faculty failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.FacultyResponse, 0, len(faculties))
	for i := range faculties {
		result = append(result, *toFacultyResponse(&faculties[i]))
	}
	return result, total, nil
}

func (s *facultyService) Update(ctx context.Context, id string, req *dto.UpdateFacultyRequest, callerID string) (*dto.FacultyResponse, error) {
	faculty, err := s.repo.Faculty.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacultyNotFound
		}
		return nil, err
	}

	if req.Department != nil {
		faculty.Department = *req.Department
	}
	if req.IsClassAdvisor != nil {
		faculty.IsClassAdvisor = *req.IsClassAdvisor
	}
	if req.AssignedClasses != nil {
		bindings, err := toBindings(*req.AssignedClasses)
		if err != nil {
			return nil, err
		}
		faculty.AssignedClasses = bindings
	}
	if req.Status != nil {
		faculty.Status = *req.Status
	}
	faculty.UpdatedBy = &callerID

	if err := s.repo.Faculty.Update(ctx, faculty); err != nil {
		s.logger.Error("update faculty failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toFacultyResponse(faculty), nil
}

func (s *facultyService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Faculty.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFacultyNotFound
		}
		return err
	}
	return s.repo.Faculty.Delete(ctx, id)
}

func (s *facultyService) ListAuditLogs(ctx context.Context, req *dto.AuditLogListRequest) ([]dto.AuditLogResponse, int64, error) {
	filters := &repository.AuditLogFilters{
		Operation: req.Operation,
		FacultyID: req.FacultyID,
		Source:    req.Source,
		Status:    req.Status,
	}
	entries, total, err := s.repo.AuditLog.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list audit logs failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.AuditLogResponse, 0, len(entries))
	for _, e := range entries {
		item := dto.AuditLogResponse{
			ID:           e.AuditLogID,
			Operation:    e.Operation,
			ClassID:      e.ClassID,
			Source:       e.Source,
			StudentCount: e.StudentCount,
			StudentIDs:   e.StudentIDs,
			Status:       e.Status,
			ErrorMessage: e.ErrorMessage,
			ResolvedAt:   e.ResolvedAt.Format(time.RFC3339),
		}
		if e.FacultyID != nil {
			item.FacultyID = *e.FacultyID
		}
		if e.UserID != nil {
			item.UserID = *e.UserID
		}
		result = append(result, item)
	}
	return result, total, nil
}

// ── helpers ──

// toBindings converts binding payloads, enforcing canonical field values
// at the data-entry boundary.
func toBindings(payloads []dto.ClassBindingPayload) (model.ClassBindingList, error) {
	bindings := make(model.ClassBindingList, 0, len(payloads))
	for _, p := range payloads {
		if !classid.ValidBatch(p.Batch) || !classid.ValidYear(p.Year) || !classid.ValidSemester(p.Semester) {
			return nil, ErrInvalidClassFields
		}
		section := p.Section
		if section == "" {
			section = classid.DefaultSection
		}
		bindings = append(bindings, model.ClassBinding{
			Batch:    p.Batch,
			Year:     p.Year,
			Semester: p.Semester,
			Section:  section,
			Active:   p.Active,
		})
	}
	return bindings, nil
}

func toFacultyResponse(faculty *model.Faculty) *dto.FacultyResponse {
	bindings := faculty.Bindings()
	payloads := make([]dto.ClassBindingPayload, 0, len(bindings))
	for _, b := range bindings {
		payloads = append(payloads, dto.ClassBindingPayload{
			Batch:    b.Batch,
			Year:     b.Year,
			Semester: b.Semester,
			Section:  b.Section,
			Active:   b.Active,
		})
	}

	resp := &dto.FacultyResponse{
		ID:              faculty.FacultyID,
		UserID:          faculty.UserID,
		Department:      faculty.Department,
		IsClassAdvisor:  faculty.IsClassAdvisor,
		AssignedClasses: payloads,
		Status:          faculty.Status,
	}
	if faculty.User != nil {
		resp.Name = faculty.User.Name
		resp.Email = faculty.User.Email
	}
	return resp
}
