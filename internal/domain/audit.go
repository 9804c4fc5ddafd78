package domain

import "time"

// AuditStatus classifies the outcome an audit entry records.
type AuditStatus string

const (
	AuditSuccess AuditStatus = "success"
	AuditFailure AuditStatus = "failure"
	AuditWarning AuditStatus = "warning"
	AuditInfo    AuditStatus = "info"
)

// AuditLogEntry is one append-only record of a state-changing action.
// Before and After hold JSON snapshots of the mutated record.
type AuditLogEntry struct {
	ID          int64
	Category    string
	Status      AuditStatus
	Action      string
	Message     string
	TargetTable string
	TargetID    int64
	Actor       string
	Before      *string
	After       *string
	CreatedAt   time.Time
}

// AuditLogFilter narrows audit log listings.
type AuditLogFilter struct {
	TargetTable *string
	TargetID    *int64
	Category    *string
	Limit       int
	Offset      int
}
