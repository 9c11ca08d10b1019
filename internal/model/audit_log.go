package model

import "time"

// Resolution source tags, strongest strategy first. Recorded so operators
// can spot bindings silently degrading to a weaker strategy.
const (
	SourceUserSession        = "user_session"
	SourceUserSessionLegacy  = "user_session_legacy"
	SourceClassMapping       = "class_mapping"
	SourceClassMappingLegacy = "class_mapping_legacy"
	SourceBatchLookup        = "batch_lookup"
	SourceBatchLookupLegacy  = "batch_lookup_legacy"
	SourceDepartmentFallback = "department_fallback"
)

// Audit outcome values.
const (
	AuditStatusSuccess = "success"
	AuditStatusFailed  = "failed"
)

// FacultyAuditLog is an append-only trace of one faculty resolution —
// maps to faculty_audit_logs. Diagnostic only, never authoritative:
// writes are fire-and-forget and failures are swallowed.
type FacultyAuditLog struct {
	AuditLogID   string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"audit_log_id"`
	Operation    string      `gorm:"type:varchar(50);not null"                      json:"operation"`
	FacultyID    *string     `gorm:"type:uuid"                                      json:"faculty_id,omitempty"`
	ClassID      string      `gorm:"type:varchar(60)"                               json:"class_id,omitempty"`
	Source       string      `gorm:"type:varchar(40)"                               json:"source,omitempty"`
	UserID       *string     `gorm:"type:uuid"                                      json:"user_id,omitempty"`
	StudentCount int         `gorm:"not null;default:0"                             json:"student_count"`
	StudentIDs   StringArray `gorm:"type:jsonb;not null;default:'[]'"               json:"student_ids"`
	Status       string      `gorm:"type:varchar(20);not null"                      json:"status"`
	ErrorMessage string      `gorm:"type:text"                                      json:"error_message,omitempty"`
	ResolvedAt   time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"resolved_at"`
}

// TableName sets the table name.
func (FacultyAuditLog) TableName() string { return "faculty_audit_logs" }
