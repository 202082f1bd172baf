package dto

import (
	"time"

	"due-diligence-backend/internal/entity"
)

// CreateAuditRequest is the DTO for starting a new company audit.
type CreateAuditRequest struct {
	CompanyName        string   `json:"company_name" validate:"required"`
	WebsiteURL         string   `json:"website_url" validate:"required"`
	RegistrationNumber string   `json:"registration_number"`
	Categories         []string `json:"categories" validate:"omitempty,dive,oneof=profile executives financials legal_risk competitors"`
	Mode               string   `json:"mode" validate:"omitempty,oneof=sync async"`
}

// CategoryStatus reports the outcome of one category of an audit.
type CategoryStatus struct {
	Status      entity.RunStatus `json:"status"`
	Error       string           `json:"error,omitempty"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
}

// AuditResponse is returned from a runAudit request. In sync mode Profile
// carries the identity-confirmation sub-record; in async mode it is nil and
// every status is pending.
type AuditResponse struct {
	CompanyName string                    `json:"company_name"`
	Mode        string                    `json:"mode"`
	Statuses    map[string]CategoryStatus `json:"statuses"`
	Profile     *entity.AuditRecord       `json:"profile,omitempty"`
}

// RecordSetResponse is the merged view of everything committed for one
// company. A category that never committed is null.
type RecordSetResponse struct {
	CompanyName string                    `json:"company_name"`
	Profile     *entity.AuditRecord       `json:"profile"`
	Executives  *entity.ExecutivesRecord  `json:"executives"`
	Financials  *entity.FinancialRecord   `json:"financials"`
	LegalRisk   *entity.LegalRiskRecord   `json:"legal_risk"`
	Competitors *entity.CompetitorsRecord `json:"competitors"`
	Statuses    map[string]CategoryStatus `json:"statuses"`
}

// CompanyListItem is one row of the paginated company listing.
type CompanyListItem struct {
	CompanyName string    `json:"company_name"`
	WebsiteURL  string    `json:"website_url"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListCompaniesResponse is the paginated company search result.
type ListCompaniesResponse struct {
	Items    []CompanyListItem `json:"items"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// SummaryResponse carries the AI-generated risk summary for a company.
type SummaryResponse struct {
	CompanyName string `json:"company_name"`
	Summary     string `json:"summary"`
}
