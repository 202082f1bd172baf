package normalizer

import (
	"encoding/json"

	"due-diligence-backend/internal/audit/dto"
	"due-diligence-backend/internal/entity"
)

// NormalizeCompetitors builds the competitor-benchmark record. Snapshot
// fields use the "NA" sentinel, matching what the source itself displays for
// figures it cannot supply.
func NormalizeCompetitors(identity entity.CompanyIdentity, payload dto.CompetitorsPayload) *entity.CompetitorsRecord {
	record := &entity.CompetitorsRecord{
		CompanyName: identity.CompanyName,
		Sector:      orSentinel(payload.Sector, SnapshotNA),
		Industry:    orSentinel(payload.Industry, SnapshotNA),
		MarketShare: orSentinel(payload.MarketShare, SnapshotNA),
	}
	own := normalizeSnapshot(payload.Snapshot)
	record.StockName = own.StockName
	record.StockValue = own.StockValue
	record.MarketCap = own.MarketCap
	record.AvgVolume = own.AvgVolume
	record.PERatio = own.PERatio
	record.Revenue = own.Revenue
	record.RevenueGrowthRate = own.RevenueGrowthRate
	record.OperatingExpense = own.OperatingExpense
	record.OperatingExpenseRate = own.OperatingExpenseRate
	record.NetIncome = own.NetIncome
	record.NetIncomeRate = own.NetIncomeRate
	record.NetProfitMargin = own.NetProfitMargin
	record.NetProfitMarginRate = own.NetProfitMarginRate

	competitors := make([]entity.CompetitorSnapshot, 0, len(payload.Competitors))
	for _, c := range payload.Competitors {
		competitors = append(competitors, entity.CompetitorSnapshot{
			Name:           orSentinel(c.Name, SnapshotNA),
			MarketSnapshot: normalizeSnapshot(c.MarketFigures),
		})
	}
	competitorsJSON, err := json.Marshal(competitors)
	if err != nil {
		competitorsJSON = []byte("[]")
	}
	record.Competitors = competitorsJSON

	return record
}

func normalizeSnapshot(figures dto.MarketFigures) entity.MarketSnapshot {
	return entity.MarketSnapshot{
		StockName:            orSentinel(figures.StockName, SnapshotNA),
		StockValue:           orSentinel(figures.StockValue, SnapshotNA),
		MarketCap:            orSentinel(figures.MarketCap, SnapshotNA),
		AvgVolume:            orSentinel(figures.AvgVolume, SnapshotNA),
		PERatio:              orSentinel(figures.PERatio, SnapshotNA),
		Revenue:              orSentinel(figures.Revenue, SnapshotNA),
		RevenueGrowthRate:    orSentinel(figures.RevenueGrowthRate, SnapshotNA),
		OperatingExpense:     orSentinel(figures.OperatingExpense, SnapshotNA),
		OperatingExpenseRate: orSentinel(figures.OperatingExpenseRate, SnapshotNA),
		NetIncome:            orSentinel(figures.NetIncome, SnapshotNA),
		NetIncomeRate:        orSentinel(figures.NetIncomeRate, SnapshotNA),
		NetProfitMargin:      orSentinel(figures.NetProfitMargin, SnapshotNA),
		NetProfitMarginRate:  orSentinel(figures.NetProfitMarginRate, SnapshotNA),
	}
}
