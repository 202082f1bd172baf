package dto

// ProfilePayload is the raw, source-shaped profile document. Keys and nesting
// vary by provider; the normalizer stores it as-is under the audit record's
// properties.
type ProfilePayload map[string]interface{}

// FinancialsPayload is the latest as-reported statement for a company along
// with the label of the source it came from.
type FinancialsPayload struct {
	Source string
	Report map[string]interface{}
}

// ExecutiveRow is one scraped row of the key-executives table, column values
// exactly as they appear on the page.
type ExecutiveRow struct {
	Name     string
	Title    string
	Pay      string
	YearBorn string
}

// ExecutivesPayload is the raw leadership data for a company. Any slice or
// map may be empty when the corresponding page or API returned nothing.
type ExecutivesPayload struct {
	Ticker  string
	Rows    []ExecutiveRow
	ESG     map[string]string
	History []string
}

// LegalRiskPayload carries one raw entry list per legal/regulatory sub-source.
// A nil list means the sub-source returned nothing or could not be reached.
type LegalRiskPayload struct {
	Lawsuits           []string
	Patents            []string
	TrademarkDecisions []string
	DataBreaches       []string
	FATFBlacklist      []string
	Copyrights         []string
	PrivacyCompliance  []string
	OFACSanctions      []string
	FinCEN             []string
	InterpolNotices    []string
}

// MarketFigures is one scraped market snapshot, values as displayed by the
// source ("$1.2T", "2.5%", ...).
type MarketFigures struct {
	StockName            string
	StockValue           string
	MarketCap            string
	AvgVolume            string
	PERatio              string
	Revenue              string
	RevenueGrowthRate    string
	OperatingExpense     string
	OperatingExpenseRate string
	NetIncome            string
	NetIncomeRate        string
	NetProfitMargin      string
	NetProfitMarginRate  string
}

// CompetitorFigures is a competitor name plus its market snapshot.
type CompetitorFigures struct {
	Name string
	MarketFigures
}

// CompetitorsPayload is the raw competitor-benchmark data for a company.
type CompetitorsPayload struct {
	Snapshot    MarketFigures
	Sector      string
	Industry    string
	MarketShare string
	Competitors []CompetitorFigures
}
