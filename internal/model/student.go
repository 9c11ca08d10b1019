package model

// Student is one roster entry — maps to students.
// FacultyID is a snapshot taken from faculty resolution at create/import
// time; later reassignment does not rewrite historical ownership.
type Student struct {
	StudentID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	UserID        string `gorm:"type:uuid;not null"                             json:"user_id"`
	RollNumber    string `gorm:"type:varchar(30);not null"                      json:"roll_number"`
	Name          string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email         string `gorm:"type:varchar(255);not null"                     json:"email"`
	Mobile        string `gorm:"type:varchar(15)"                               json:"mobile,omitempty"`
	ParentContact string `gorm:"type:varchar(15)"                               json:"parent_contact,omitempty"`
	Batch         string `gorm:"type:varchar(20);not null"                      json:"batch"`
	Year          string `gorm:"type:varchar(20);not null"                      json:"year"`
	Semester      int    `gorm:"type:smallint;not null"                         json:"semester"`
	Section       string `gorm:"type:varchar(5);not null;default:'A'"           json:"section"`
	ClassID       string `gorm:"type:varchar(60);not null"                      json:"class_id"`
	ClassAssigned string `gorm:"type:varchar(120);not null"                     json:"class_assigned"`
	FacultyID     string `gorm:"type:uuid;not null"                             json:"faculty_id"`
	Department    string `gorm:"type:varchar(100);not null"                     json:"department"`
	Status        string `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	SoftDeleteModel

	User    *User    `gorm:"foreignKey:UserID;references:UserID"       json:"user,omitempty"`
	Faculty *Faculty `gorm:"foreignKey:FacultyID;references:FacultyID" json:"faculty,omitempty"`
}

// TableName sets the table name.
func (Student) TableName() string { return "students" }
