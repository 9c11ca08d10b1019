package dto

// CreateClassAssignmentRequest creates the canonical faculty↔class record.
type CreateClassAssignmentRequest struct {
	FacultyID           string `json:"faculty_id" binding:"required,uuid"`
	Batch               string `json:"batch"      binding:"required"`
	Year                string `json:"year"       binding:"required"`
	Semester            int    `json:"semester"   binding:"required,min=1,max=8"`
	Section             string `json:"section"`
	Department          string `json:"department" binding:"required"`
	AttendanceStartDate string `json:"attendance_start_date" binding:"omitempty,datetime=2006-01-02"`
	AttendanceEndDate   string `json:"attendance_end_date"   binding:"omitempty,datetime=2006-01-02"`
}

// UpdateClassAssignmentRequest edits an assignment; nil fields untouched.
type UpdateClassAssignmentRequest struct {
	FacultyID *string `json:"faculty_id" binding:"omitempty,uuid"`
	Active    *bool   `json:"active"`
}

// UpdateAttendanceDatesRequest sets the marking window.
// The start date is mandatory; when both are present start must be
// strictly before end.
type UpdateAttendanceDatesRequest struct {
	AttendanceStartDate string `json:"attendance_start_date" binding:"required,datetime=2006-01-02"`
	AttendanceEndDate   string `json:"attendance_end_date"   binding:"omitempty,datetime=2006-01-02"`
}

// ClassAssignmentListRequest filters assignment listings.
type ClassAssignmentListRequest struct {
	PaginationRequest
	Department string `form:"department"`
}

// ClassAssignmentResponse is the assignment view.
type ClassAssignmentResponse struct {
	ID                  string `json:"id"`
	FacultyID           string `json:"faculty_id"`
	FacultyName         string `json:"faculty_name,omitempty"`
	Batch               string `json:"batch"`
	Year                string `json:"year"`
	Semester            int    `json:"semester"`
	Section             string `json:"section"`
	Department          string `json:"department"`
	ClassID             string `json:"class_id"`
	AttendanceStartDate string `json:"attendance_start_date,omitempty"`
	AttendanceEndDate   string `json:"attendance_end_date,omitempty"`
	Active              bool   `json:"active"`
}
