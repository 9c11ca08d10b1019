package model

import "time"

// ClassAssignment is the canonical "this faculty owns this class" record —
// maps to class_assignments. The attendance window dates live here, not on
// the Faculty document, so advisor changes never move the window.
type ClassAssignment struct {
	ClassAssignmentID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"class_assignment_id"`
	FacultyID           string     `gorm:"type:uuid;not null"                             json:"faculty_id"`
	Batch               string     `gorm:"type:varchar(20);not null"                      json:"batch"`
	Year                string     `gorm:"type:varchar(20);not null"                      json:"year"`
	Semester            int        `gorm:"type:smallint;not null"                         json:"semester"`
	Section             string     `gorm:"type:varchar(5);not null;default:'A'"           json:"section"`
	Department          string     `gorm:"type:varchar(100);not null"                     json:"department"`
	AttendanceStartDate *time.Time `gorm:"type:date"                                      json:"attendance_start_date,omitempty"`
	AttendanceEndDate   *time.Time `gorm:"type:date"                                      json:"attendance_end_date,omitempty"`
	Active              bool       `gorm:"not null;default:true"                          json:"active"`
	SoftDeleteModel

	Faculty *Faculty `gorm:"foreignKey:FacultyID;references:FacultyID" json:"faculty,omitempty"`
}

// TableName sets the table name.
func (ClassAssignment) TableName() string { return "class_assignments" }
