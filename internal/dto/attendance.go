package dto

// MarkStudentsRequest marks one class roster for one date.
// Roll numbers absent from both lists are marked Present.
type MarkStudentsRequest struct {
	Batch             string   `json:"batch"    binding:"required"`
	Year              string   `json:"year"     binding:"required"`
	Semester          int      `json:"semester" binding:"required,min=1,max=8"`
	Section           string   `json:"section"`
	Date              string   `json:"date"     binding:"required,datetime=2006-01-02"`
	AbsentRollNumbers []string `json:"absent_roll_numbers"`
	ODRollNumbers     []string `json:"od_roll_numbers"`
}

// MarkStudentsResponse summarizes one marking run.
type MarkStudentsResponse struct {
	Date    string `json:"date"`
	ClassID string `json:"class_id"`
	Total   int    `json:"total"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	OD      int    `json:"od"`
}

// EditStudentRequest corrects one student's record for one date.
// Bypasses window/holiday checks (historical correction) but still
// requires the caller's binding to the student's class.
type EditStudentRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	Date      string `json:"date"       binding:"required,datetime=2006-01-02"`
	Status    string `json:"status"     binding:"required,oneof=Present Absent OD"`
}

// HistoryByClassRequest queries records for one class over a range.
type HistoryByClassRequest struct {
	Batch    string `form:"batch"    binding:"required"`
	Year     string `form:"year"     binding:"required"`
	Semester int    `form:"semester" binding:"required,min=1,max=8"`
	Section  string `form:"section"`
	DateRangeRequest
}

// AttendanceRecordResponse is one attendance record view.
type AttendanceRecordResponse struct {
	ID         string `json:"id"`
	StudentID  string `json:"student_id"`
	RollNumber string `json:"roll_number,omitempty"`
	Name       string `json:"name,omitempty"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	MarkedBy   string `json:"marked_by"`
}

// CanMarkRequest asks whether one class can be marked on one date.
type CanMarkRequest struct {
	Batch    string `form:"batch"    binding:"required"`
	Year     string `form:"year"     binding:"required"`
	Semester int    `form:"semester" binding:"required,min=1,max=8"`
	Section  string `form:"section"`
	Date     string `form:"date" binding:"required,datetime=2006-01-02"`
}

// CanMarkResponse reports whether marking is allowed for a date.
type CanMarkResponse struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}
