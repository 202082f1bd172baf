package entity

import (
	"time"

	"gorm.io/datatypes"
)

// AuditRecord is the core company profile sub-record. One row per company;
// re-fetching overwrites in place.
type AuditRecord struct {
	ID                 uint           `gorm:"primaryKey" json:"-"`
	CompanyName        string         `gorm:"uniqueIndex;not null" json:"company_name"`
	WebsiteURL         string         `gorm:"not null" json:"website_url"`
	RegistrationNumber string         `json:"registration_number,omitempty"`
	Properties         datatypes.JSON `gorm:"type:jsonb" json:"properties"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the AuditRecord model.
func (AuditRecord) TableName() string {
	return "audits"
}

func (AuditRecord) Category() Category { return CategoryProfile }

func (r *AuditRecord) Key() string { return r.CompanyName }
