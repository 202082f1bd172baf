package entity

import (
	"time"

	"github.com/lib/pq"
)

// LegalRiskRecord aggregates legal and regulatory findings for a company.
// Each list holds free-text entries from its source, or a one-element
// placeholder ("No Lawsuits Found" and the like) when the source returned
// nothing. One row per company; overwrite on re-fetch.
type LegalRiskRecord struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	CompanyName string `gorm:"uniqueIndex;not null" json:"company_name"`

	Lawsuits            pq.StringArray `gorm:"type:text[]" json:"lawsuits"`
	Patents             pq.StringArray `gorm:"type:text[]" json:"patents"`
	TrademarkDecisions  pq.StringArray `gorm:"type:text[]" json:"trademark_decisions"`
	DataBreaches        pq.StringArray `gorm:"type:text[]" json:"data_breaches"`
	FATFBlacklist       pq.StringArray `gorm:"type:text[]" json:"fatf_blacklist"`
	Copyrights          pq.StringArray `gorm:"type:text[]" json:"copyrights"`
	PrivacyCompliance   pq.StringArray `gorm:"type:text[]" json:"privacy_compliance"`
	OFACSanctions       pq.StringArray `gorm:"type:text[]" json:"ofac_sanctions"`
	FinCEN              pq.StringArray `gorm:"type:text[]" json:"fincen"`
	InterpolNotices     pq.StringArray `gorm:"type:text[]" json:"interpol_notices"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the LegalRiskRecord model.
func (LegalRiskRecord) TableName() string {
	return "legal_risk_records"
}

func (LegalRiskRecord) Category() Category { return CategoryLegalRisk }

func (r *LegalRiskRecord) Key() string { return r.CompanyName }
