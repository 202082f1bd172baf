package entity

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Executive is one entry of the ordered key-executives list. Missing fields
// carry the "N/A" sentinel rather than being omitted.
type Executive struct {
	Name         string `json:"name"`
	Title        string `json:"title"`
	Compensation string `json:"compensation"`
	YearBorn     string `json:"year_born"`
}

// ESGScores holds the four sustainability risk scores as reported by the
// source, "N/A" when unavailable.
type ESGScores struct {
	Total         string `json:"total"`
	Environmental string `json:"environmental"`
	Social        string `json:"social"`
	Governance    string `json:"governance"`
}

// ExecutivesRecord captures leadership and ESG data for a company. Written at
// most once per company: executive data is treated as immutable once captured,
// so a later fetch is discarded rather than merged.
type ExecutivesRecord struct {
	ID              uint           `gorm:"primaryKey" json:"-"`
	CompanyName     string         `gorm:"uniqueIndex;not null" json:"company_name"`
	Ticker          string         `json:"ticker"`
	Executives      datatypes.JSON `gorm:"type:jsonb" json:"executives"`
	ESGScores       datatypes.JSON `gorm:"type:jsonb" json:"esg_scores"`
	BusinessHistory pq.StringArray `gorm:"type:text[]" json:"business_history"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the ExecutivesRecord model.
func (ExecutivesRecord) TableName() string {
	return "executives_records"
}

func (ExecutivesRecord) Category() Category { return CategoryExecutives }

func (r *ExecutivesRecord) Key() string { return r.CompanyName }
