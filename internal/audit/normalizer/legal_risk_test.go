package normalizer

import (
	"testing"

	"due-diligence-backend/internal/audit/dto"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeLegalRisk_PlaceholdersOnEmptyPayload(t *testing.T) {
	record := NormalizeLegalRisk(acme, dto.LegalRiskPayload{})

	assert.Equal(t, "Acme", record.CompanyName)
	assert.Equal(t, pq.StringArray{"No Data"}, record.Lawsuits)
	assert.Equal(t, pq.StringArray{"No Patents Found"}, record.Patents)
	assert.Equal(t, pq.StringArray{"No Data"}, record.TrademarkDecisions)
	assert.Equal(t, pq.StringArray{"No Data"}, record.DataBreaches)
	assert.Equal(t, pq.StringArray{"Not Listed"}, record.FATFBlacklist)
	assert.Equal(t, pq.StringArray{"No Data"}, record.Copyrights)
	assert.Equal(t, pq.StringArray{"No Data"}, record.PrivacyCompliance)
	assert.Equal(t, pq.StringArray{"No Sanctions"}, record.OFACSanctions)
	assert.Equal(t, pq.StringArray{"No Data"}, record.FinCEN)
	assert.Equal(t, pq.StringArray{"No Data"}, record.InterpolNotices)
}

func TestNormalizeLegalRisk_KeepsFoundEntries(t *testing.T) {
	payload := dto.LegalRiskPayload{
		Lawsuits:      []string{"Acme v. Example", "State v. Acme"},
		OFACSanctions: []string{"Acme Trading LLC - SDN"},
	}

	record := NormalizeLegalRisk(acme, payload)

	assert.Equal(t, pq.StringArray{"Acme v. Example", "State v. Acme"}, record.Lawsuits)
	assert.Equal(t, pq.StringArray{"Acme Trading LLC - SDN"}, record.OFACSanctions)
	// Lists the sources had nothing for still get their placeholder.
	assert.Equal(t, pq.StringArray{"No Patents Found"}, record.Patents)
}
