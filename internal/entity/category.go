package entity

import "fmt"

// Category identifies one of the independent data domains aggregated per
// company.
type Category string

const (
	CategoryProfile     Category = "profile"
	CategoryExecutives  Category = "executives"
	CategoryFinancials  Category = "financials"
	CategoryLegalRisk   Category = "legal_risk"
	CategoryCompetitors Category = "competitors"
)

// AllCategories returns every known category in a stable order.
func AllCategories() []Category {
	return []Category{
		CategoryProfile,
		CategoryExecutives,
		CategoryFinancials,
		CategoryLegalRisk,
		CategoryCompetitors,
	}
}

// ParseCategory validates a category name from an API request.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	switch c {
	case CategoryProfile, CategoryExecutives, CategoryFinancials, CategoryLegalRisk, CategoryCompetitors:
		return c, nil
	}
	return "", fmt.Errorf("unknown category: %q", s)
}

// CompanyIdentity is the aggregation key for an audit. CompanyName is the
// natural key; comparison is case-sensitive exact match.
type CompanyIdentity struct {
	CompanyName        string
	RegistrationNumber string
	WebsiteURL         string
}

// SubRecord is a normalized per-category result ready to be committed.
type SubRecord interface {
	Category() Category
	// Key returns the company name the record belongs to.
	Key() string
}
