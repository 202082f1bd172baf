package entity

import "time"

// FinancialRecord holds the financial statement snapshot for a company.
// Numeric attributes use *float64 with nil meaning "unknown", so downstream
// consumers can tell an unavailable figure from a real zero. Qualitative
// attributes use the "N/A" string sentinel. One row per company; overwrite on
// re-fetch (last successful statement wins).
type FinancialRecord struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	CompanyName string `gorm:"uniqueIndex;not null" json:"company_name"`
	Source      string `json:"source"`

	Revenue         *float64 `json:"revenue"`
	EBITDA          *float64 `json:"ebitda"`
	NetProfitLoss   *float64 `json:"net_profit_loss"`
	GrossMargin     *float64 `json:"gross_margin"`
	OperatingMargin *float64 `json:"operating_margin"`
	TotalAssets     *float64 `json:"total_assets"`
	TotalLiability  *float64 `json:"total_liabilities"`
	FreeCashFlow    *float64 `json:"free_cash_flow"`
	WorkingCapital  *float64 `json:"working_capital"`
	CurrentRatio    *float64 `json:"current_ratio"`
	QuickRatio      *float64 `json:"quick_ratio"`
	DebtToEquity    *float64 `json:"debt_to_equity"`
	OutstandingDebt *float64 `json:"outstanding_debt"`
	UnpaidTaxes     *float64 `json:"unpaid_taxes"`

	CreditScore          string `json:"credit_score"`
	LoanHistory          string `json:"loan_history"`
	PaymentHistory       string `json:"payment_history"`
	CorporateTaxFilings  string `json:"corporate_tax_filings"`
	VATRecords           string `json:"vat_records"`
	GovernmentIncentives string `json:"government_incentives"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the FinancialRecord model.
func (FinancialRecord) TableName() string {
	return "financial_records"
}

func (FinancialRecord) Category() Category { return CategoryFinancials }

func (r *FinancialRecord) Key() string { return r.CompanyName }
