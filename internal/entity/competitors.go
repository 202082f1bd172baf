package entity

import (
	"time"

	"gorm.io/datatypes"
)

// MarketSnapshot holds the market and income-statement figures scraped for a
// single listed company. Fields the source could not supply carry the "NA"
// sentinel. The same shape is reused for the audited company and for each of
// its competitors.
type MarketSnapshot struct {
	StockName            string `json:"stock_name"`
	StockValue           string `json:"stock_value"`
	MarketCap            string `json:"market_cap"`
	AvgVolume            string `json:"avg_volume"`
	PERatio              string `json:"pe_ratio"`
	Revenue              string `json:"revenue"`
	RevenueGrowthRate    string `json:"revenue_growth_rate"`
	OperatingExpense     string `json:"operating_expense"`
	OperatingExpenseRate string `json:"operating_expense_rate"`
	NetIncome            string `json:"net_income"`
	NetIncomeRate        string `json:"net_income_rate"`
	NetProfitMargin      string `json:"net_profit_margin"`
	NetProfitMarginRate  string `json:"net_profit_margin_rate"`
}

// CompetitorsRecord is the competitor-benchmark sub-record: the audited
// company's own market snapshot plus sector/industry/market-share context and
// an embedded list of competitor snapshots. One row per company; overwrite on
// re-fetch.
type CompetitorsRecord struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	CompanyName string `gorm:"uniqueIndex;not null" json:"company_name"`

	StockName            string `json:"stock_name"`
	StockValue           string `json:"stock_value"`
	MarketCap            string `json:"market_cap"`
	AvgVolume            string `json:"avg_volume"`
	PERatio              string `json:"pe_ratio"`
	Revenue              string `json:"revenue"`
	RevenueGrowthRate    string `json:"revenue_growth_rate"`
	OperatingExpense     string `json:"operating_expense"`
	OperatingExpenseRate string `json:"operating_expense_rate"`
	NetIncome            string `json:"net_income"`
	NetIncomeRate        string `json:"net_income_rate"`
	NetProfitMargin      string `json:"net_profit_margin"`
	NetProfitMarginRate  string `json:"net_profit_margin_rate"`
	Sector               string `json:"sector"`
	Industry             string `json:"industry"`
	MarketShare          string `json:"market_share"`

	Competitors datatypes.JSON `gorm:"type:jsonb" json:"competitors"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// CompetitorSnapshot is one element of the embedded competitors list.
type CompetitorSnapshot struct {
	Name string `json:"name"`
	MarketSnapshot
}

// TableName specifies the table name for the CompetitorsRecord model.
func (CompetitorsRecord) TableName() string {
	return "competitors_records"
}

func (CompetitorsRecord) Category() Category { return CategoryCompetitors }

func (r *CompetitorsRecord) Key() string { return r.CompanyName }
