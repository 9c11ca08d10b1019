package model

import "time"

// Attendance status values. OD counts as present for percentage purposes
// but is reported separately.
const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
	AttendanceOD      = "OD"
)

// AttendanceRecord is one student's status for one calendar date — maps
// to attendance_records. At most one row exists per (student, date);
// re-marking updates in place.
type AttendanceRecord struct {
	AttendanceRecordID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"attendance_record_id"`
	StudentID          string    `gorm:"type:uuid;not null"                             json:"student_id"`
	Date               time.Time `gorm:"type:date;not null"                             json:"date"`
	Status             string    `gorm:"type:varchar(10);not null"                      json:"status"`
	Batch              string    `gorm:"type:varchar(20);not null"                      json:"batch"`
	Year               string    `gorm:"type:varchar(20);not null"                      json:"year"`
	Semester           int       `gorm:"type:smallint;not null"                         json:"semester"`
	Section            string    `gorm:"type:varchar(5);not null"                       json:"section"`
	MarkedBy           string    `gorm:"type:uuid;not null"                             json:"marked_by"`
	CreatedAt          time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt          time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`

	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
}

// TableName sets the table name.
func (AttendanceRecord) TableName() string { return "attendance_records" }
