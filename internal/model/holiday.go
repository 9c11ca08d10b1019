package model

import "time"

// Holiday is a dated exclusion for one department — maps to holidays.
// Unique per (holiday_date, department): a date can be a holiday for one
// department and a working day for another.
type Holiday struct {
	HolidayID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"holiday_id"`
	HolidayDate time.Time `gorm:"type:date;not null"                             json:"holiday_date"`
	Department  string    `gorm:"type:varchar(100);not null"                     json:"department"`
	Reason      string    `gorm:"type:varchar(255);not null"                     json:"reason"`
	SoftDeleteModel
}

// TableName sets the table name.
func (Holiday) TableName() string { return "holidays" }
