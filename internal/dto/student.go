package dto

// CreateStudentRequest creates one roster entry plus its account.
type CreateStudentRequest struct {
	RollNumber    string `json:"roll_number" binding:"required"`
	Name          string `json:"name"        binding:"required,min=2,max=100"`
	Email         string `json:"email"       binding:"required,email"`
	Password      string `json:"password"    binding:"required,min=6,max=64"`
	Mobile        string `json:"mobile"         binding:"omitempty,len=10,numeric"`
	ParentContact string `json:"parent_contact" binding:"omitempty,len=10,numeric"`
	Batch         string `json:"batch"    binding:"required"`
	Year          string `json:"year"     binding:"required"`
	Semester      int    `json:"semester" binding:"required,min=1,max=8"`
	Section       string `json:"section"`
	Department    string `json:"department"`
}

// UpdateStudentRequest edits a roster entry; nil fields untouched.
type UpdateStudentRequest struct {
	Name          *string `json:"name"           binding:"omitempty,min=2,max=100"`
	Mobile        *string `json:"mobile"         binding:"omitempty,len=10,numeric"`
	ParentContact *string `json:"parent_contact" binding:"omitempty,len=10,numeric"`
	Status        *string `json:"status"         binding:"omitempty,oneof=active inactive"`
}

// StudentListRequest filters roster listings.
type StudentListRequest struct {
	PaginationRequest
	ClassID    string `form:"class_id"`
	Batch      string `form:"batch"`
	Department string `form:"department"`
	Status     string `form:"status" binding:"omitempty,oneof=active inactive"`
	Keyword    string `form:"keyword"`
}

// StudentResponse is the roster entry view.
type StudentResponse struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	RollNumber    string `json:"roll_number"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Mobile        string `json:"mobile,omitempty"`
	ParentContact string `json:"parent_contact,omitempty"`
	Batch         string `json:"batch"`
	Year          string `json:"year"`
	Semester      int    `json:"semester"`
	Section       string `json:"section"`
	ClassID       string `json:"class_id"`
	ClassAssigned string `json:"class_assigned"`
	FacultyID     string `json:"faculty_id"`
	Department    string `json:"department"`
	Status        string `json:"status"`
}

// BulkImportFailure is one rejected import row.
type BulkImportFailure struct {
	Index       int               `json:"index"`
	StudentData map[string]string `json:"student_data"`
	Error       string            `json:"error"`
}

// BulkImportResponse aggregates per-row outcomes; one row failing never
// aborts the batch.
type BulkImportResponse struct {
	Successful []StudentResponse   `json:"successful"`
	Failed     []BulkImportFailure `json:"failed"`
	Total      int                 `json:"total"`
}
