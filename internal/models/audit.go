package models

import (
	"encoding/json"
	"time"
)

// AuditAction constants name the gateway mutations that are recorded.
const (
	AuditActionLogin            = "LOGIN"
	AuditActionLogout           = "LOGOUT"
	AuditActionCreate           = "CREATE"
	AuditActionUpdate           = "UPDATE"
	AuditActionDelete           = "DELETE"
	AuditActionAssignChecker    = "ASSIGN_CHECKER"
	AuditActionFeedbackResponse = "FEEDBACK_RESPONSE"
	AuditActionExport           = "EXPORT"
)

// AuditLog represents an audit trail record.
type AuditLog struct {
	ID         string          `db:"id" json:"id"`
	UserID     *int64          `db:"user_id" json:"user_id,omitempty"`
	Role       string          `db:"role" json:"role"`
	Action     string          `db:"action" json:"action"`
	Resource   string          `db:"resource" json:"resource"`
	ResourceID *string         `db:"resource_id" json:"resource_id,omitempty"`
	Details    json.RawMessage `db:"details" json:"details,omitempty"`
	IPAddress  string          `db:"ip_address" json:"ip_address"`
	UserAgent  string          `db:"user_agent" json:"user_agent"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}
