package model

import "time"

// Role values, strongest first.
const (
	RoleAdmin     = "admin"
	RolePrincipal = "principal"
	RoleHOD       = "hod"
	RoleFaculty   = "faculty"
	RoleStudent   = "student"
)

// Account status values.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User is an account in the identity store — maps to users.
// Accounts are never hard-deleted in normal flow; deactivation flips
// Status to inactive.
type User struct {
	UserID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string     `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string     `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string     `gorm:"type:varchar(20);not null;default:'student'"    json:"role"`
	Department   string     `gorm:"type:varchar(100)"                              json:"department,omitempty"`
	Status       string     `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	SoftDeleteModel
}

// TableName sets the table name.
func (User) TableName() string { return "users" }

// IsActive reports whether the account may authenticate.
func (u *User) IsActive() bool { return u.Status == StatusActive }
