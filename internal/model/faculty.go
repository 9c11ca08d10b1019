package model

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/dushyanth88/Attendance-project-sub001/internal/classid"
)

// ClassBinding is one class a faculty member is authorized for.
type ClassBinding struct {
	Batch    string `json:"batch"`
	Year     string `json:"year"`
	Semester int    `json:"semester"`
	Section  string `json:"section"`
	Active   bool   `json:"active"`
}

// Matches reports whether the binding covers the given class, tolerating
// legacy year/semester spellings in stored data.
func (b ClassBinding) Matches(batch, year string, semester int, section string) bool {
	if !b.Active {
		return false
	}
	if b.Batch != batch || b.Semester != semester {
		return false
	}
	if !classid.SameYear(b.Year, year) {
		return false
	}
	bSection := b.Section
	if bSection == "" {
		bSection = classid.DefaultSection
	}
	if section == "" {
		section = classid.DefaultSection
	}
	return bSection == section
}

// ClassBindingList maps to a JSONB array of bindings.
type ClassBindingList []ClassBinding

// Scan implements sql.Scanner.
func (l *ClassBindingList) Scan(src interface{}) error {
	*l = ClassBindingList{}
	return jsonbScan(src, l)
}

// Value implements driver.Valuer.
func (l ClassBindingList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Faculty binds a user to the classes they may act on — maps to faculties.
// AssignedClasses is the current representation; the scalar batch/year/
// semester/section columns are the legacy single-assignment form still
// present in older rows. Bindings() folds both into one list so callers
// never branch on which form a row uses.
type Faculty struct {
	FacultyID      string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"faculty_id"`
	UserID         string           `gorm:"type:uuid;not null"                             json:"user_id"`
	Department     string           `gorm:"type:varchar(100);not null"                     json:"department"`
	IsClassAdvisor bool             `gorm:"not null;default:false"                         json:"is_class_advisor"`
	Batch          string           `gorm:"type:varchar(20)"                               json:"batch,omitempty"`
	Year           string           `gorm:"type:varchar(20)"                               json:"year,omitempty"`
	Semester       *int             `gorm:"type:smallint"                                  json:"semester,omitempty"`
	Section        string           `gorm:"type:varchar(5)"                                json:"section,omitempty"`
	AssignedClasses ClassBindingList `gorm:"type:jsonb;not null;default:'[]'"              json:"assigned_classes"`
	Status         string           `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	SoftDeleteModel

	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName sets the table name.
func (Faculty) TableName() string { return "faculties" }

// IsActive reports whether the faculty record is usable for resolution.
func (f *Faculty) IsActive() bool { return f.Status == StatusActive }

// Bindings returns the assigned classes plus the legacy scalar fields
// folded into the same list. The legacy entry is synthesized only when
// the scalar fields describe a complete class.
func (f *Faculty) Bindings() []ClassBinding {
	bindings := make([]ClassBinding, 0, len(f.AssignedClasses)+1)
	bindings = append(bindings, f.AssignedClasses...)

	if f.Batch != "" && f.Year != "" && f.Semester != nil {
		section := f.Section
		if section == "" {
			section = classid.DefaultSection
		}
		bindings = append(bindings, ClassBinding{
			Batch:    f.Batch,
			Year:     f.Year,
			Semester: *f.Semester,
			Section:  section,
			Active:   true,
		})
	}

	return bindings
}
