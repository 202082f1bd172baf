package normalizer

import (
	"encoding/json"
	"testing"

	"due-diligence-backend/internal/audit/dto"
	"due-diligence-backend/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCompetitors_SentinelsFillGaps(t *testing.T) {
	payload := dto.CompetitorsPayload{
		Snapshot: dto.MarketFigures{
			StockName:  "Acme Corp",
			StockValue: "$42.00",
			MarketCap:  "$1.2B",
		},
		Sector: "Industrials",
		Competitors: []dto.CompetitorFigures{
			{Name: "Beta Inc", MarketFigures: dto.MarketFigures{StockValue: "$10.00"}},
		},
	}

	record := NormalizeCompetitors(acme, payload)

	assert.Equal(t, "Acme Corp", record.StockName)
	assert.Equal(t, "$1.2B", record.MarketCap)
	assert.Equal(t, SnapshotNA, record.PERatio)
	assert.Equal(t, SnapshotNA, record.NetProfitMarginRate)
	assert.Equal(t, "Industrials", record.Sector)
	assert.Equal(t, SnapshotNA, record.Industry)
	assert.Equal(t, SnapshotNA, record.MarketShare)

	var competitors []entity.CompetitorSnapshot
	require.NoError(t, json.Unmarshal(record.Competitors, &competitors))
	require.Len(t, competitors, 1)
	assert.Equal(t, "Beta Inc", competitors[0].Name)
	assert.Equal(t, "$10.00", competitors[0].StockValue)
	assert.Equal(t, SnapshotNA, competitors[0].MarketCap)
}

func TestNormalizeCompetitors_Total(t *testing.T) {
	record := NormalizeCompetitors(acme, dto.CompetitorsPayload{})

	assert.Equal(t, "Acme", record.CompanyName)
	assert.Equal(t, SnapshotNA, record.StockName)
	assert.Equal(t, SnapshotNA, record.Sector)
	assert.Equal(t, "[]", string(record.Competitors))
}
