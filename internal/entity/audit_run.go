package entity

import (
	"database/sql"
	"time"
)

// RunStatus is the lifecycle state of one (company, category) fetch.
// A run moves Pending -> Committed or Pending -> Failed; overwrite categories
// may go back to Pending when a new audit is requested.
type RunStatus string

const (
	StatusPending   RunStatus = "pending"
	StatusCommitted RunStatus = "committed"
	StatusFailed    RunStatus = "failed"
)

// AuditRun tracks the outcome of the most recent fetch for one category of
// one company. Exactly one row per (company_name, category).
type AuditRun struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CompanyName  string         `gorm:"uniqueIndex:uq_audit_runs_company_category;not null" json:"company_name"`
	Category     Category       `gorm:"uniqueIndex:uq_audit_runs_company_category;not null" json:"category"`
	Status       RunStatus      `gorm:"not null" json:"status"`
	ErrorMessage sql.NullString `json:"error_message"`
	StartedAt    time.Time      `json:"started_at"`
	CompletedAt  sql.NullTime   `json:"completed_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the AuditRun model.
func (AuditRun) TableName() string {
	return "audit_runs"
}
