package dto

// ClassBindingPayload is one class binding in faculty requests/responses.
type ClassBindingPayload struct {
	Batch    string `json:"batch"    binding:"required"`
	Year     string `json:"year"     binding:"required"`
	Semester int    `json:"semester" binding:"required,min=1,max=8"`
	Section  string `json:"section"`
	Active   bool   `json:"active"`
}

// CreateFacultyRequest binds an existing faculty-role user to classes.
type CreateFacultyRequest struct {
	UserID          string                `json:"user_id"    binding:"required,uuid"`
	Department      string                `json:"department" binding:"required"`
	IsClassAdvisor  bool                  `json:"is_class_advisor"`
	AssignedClasses []ClassBindingPayload `json:"assigned_classes" binding:"omitempty,dive"`
}

// UpdateFacultyRequest edits a faculty record; nil fields are untouched.
type UpdateFacultyRequest struct {
	Department      *string                `json:"department"`
	IsClassAdvisor  *bool                  `json:"is_class_advisor"`
	AssignedClasses *[]ClassBindingPayload `json:"assigned_classes" binding:"omitempty,dive"`
	Status          *string                `json:"status" binding:"omitempty,oneof=active inactive"`
}

// FacultyListRequest filters faculty listings.
type FacultyListRequest struct {
	PaginationRequest
	Department string `form:"department"`
}

// FacultyResponse is the faculty view including the folded binding list.
type FacultyResponse struct {
	ID              string                `json:"id"`
	UserID          string                `json:"user_id"`
	Name            string                `json:"name,omitempty"`
	Email           string                `json:"email,omitempty"`
	Department      string                `json:"department"`
	IsClassAdvisor  bool                  `json:"is_class_advisor"`
	AssignedClasses []ClassBindingPayload `json:"assigned_classes"`
	Status          string                `json:"status"`
}

// ResolveFacultyRequest is a class context to resolve a faculty for.
// Either class_id or the batch/year/semester fields identify the class.
type ResolveFacultyRequest struct {
	ClassID    string `form:"class_id"`
	Batch      string `form:"batch"`
	Year       string `form:"year"`
	Semester   int    `form:"semester" binding:"omitempty,min=1,max=8"`
	Section    string `form:"section"`
	Department string `form:"department"`
}

// ResolveFacultyResponse names the resolved faculty and the strategy used.
type ResolveFacultyResponse struct {
	FacultyID string `json:"faculty_id"`
	Name      string `json:"name,omitempty"`
	Source    string `json:"source"`
}

// AuditLogListRequest filters the resolution trace.
type AuditLogListRequest struct {
	PaginationRequest
	Operation string `form:"operation"`
	FacultyID string `form:"faculty_id" binding:"omitempty,uuid"`
	Source    string `form:"source"`
	Status    string `form:"status" binding:"omitempty,oneof=success failed"`
}

// AuditLogResponse is one resolution trace entry.
type AuditLogResponse struct {
	ID           string   `json:"id"`
	Operation    string   `json:"operation"`
	FacultyID    string   `json:"faculty_id,omitempty"`
	ClassID      string   `json:"class_id,omitempty"`
	Source       string   `json:"source,omitempty"`
	UserID       string   `json:"user_id,omitempty"`
	StudentCount int      `json:"student_count"`
	StudentIDs   []string `json:"student_ids,omitempty"`
	Status       string   `json:"status"`
	ErrorMessage string   `json:"error_message,omitempty"`
	ResolvedAt   string   `json:"resolved_at"`
}
