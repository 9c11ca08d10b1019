package dto

// ReportRequest selects one class and date range to aggregate.
type ReportRequest struct {
	Batch    string `form:"batch"    binding:"required"`
	Year     string `form:"year"     binding:"required"`
	Semester int    `form:"semester" binding:"required,min=1,max=8"`
	Section  string `form:"section"`
	DateRangeRequest
}

// SummaryRow is one student's aggregate over the range.
// OD days count toward the attendance percentage.
type SummaryRow struct {
	RollNumber  string  `json:"roll_number"`
	Name        string  `json:"name"`
	Present     int     `json:"present"`
	Absent      int     `json:"absent"`
	OD          int     `json:"od"`
	WorkingDays int     `json:"working_days"`
	Percentage  float64 `json:"percentage"`
}

// SummaryReportResponse is the per-student aggregate report.
type SummaryReportResponse struct {
	ClassID     string       `json:"class_id"`
	From        string       `json:"from"`
	To          string       `json:"to"`
	WorkingDays int          `json:"working_days"`
	Rows        []SummaryRow `json:"rows"`
}

// DetailedCell is one student's status on one date.
type DetailedCell struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

// DetailedRow is one student's day-by-day record over the range.
type DetailedRow struct {
	RollNumber string         `json:"roll_number"`
	Name       string         `json:"name"`
	Days       []DetailedCell `json:"days"`
}

// DetailedReportResponse is the per-day matrix report.
type DetailedReportResponse struct {
	ClassID string        `json:"class_id"`
	From    string        `json:"from"`
	To      string        `json:"to"`
	Dates   []string      `json:"dates"`
	Rows    []DetailedRow `json:"rows"`
}

// AbsenteeDay lists who was out on one date.
type AbsenteeDay struct {
	Date   string   `json:"date"`
	Absent []string `json:"absent"` // roll numbers
	OD     []string `json:"od"`
}

// AbsenteeReportResponse is the per-day absentee report.
type AbsenteeReportResponse struct {
	ClassID string        `json:"class_id"`
	From    string        `json:"from"`
	To      string        `json:"to"`
	Days    []AbsenteeDay `json:"days"`
}
