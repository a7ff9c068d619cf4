package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of action being audited
type AuditAction string

const (
	AuditActionCreate       AuditAction = "CREATE"
	AuditActionUpdate       AuditAction = "UPDATE"
	AuditActionDelete       AuditAction = "DELETE"
	AuditActionStatusChange AuditAction = "STATUS_CHANGE"
)

// AuditLog records a change to a platform record, used by the admin
// monitoring views.
type AuditLog struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TableName string      `json:"table_name"`
	RecordID  uuid.UUID   `gorm:"type:uuid;index" json:"record_id"`
	Action    AuditAction `json:"action"`
	OldData   *string     `json:"old_data,omitempty"`
	NewData   *string     `json:"new_data,omitempty"`
	ChangedBy *uuid.UUID  `gorm:"type:uuid" json:"changed_by,omitempty"`
	ChangedAt time.Time   `json:"changed_at"`
}
