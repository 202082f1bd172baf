package normalizer

import (
	"encoding/json"

	"due-diligence-backend/internal/audit/dto"
	"due-diligence-backend/internal/entity"

	"github.com/lib/pq"
)

// NormalizeExecutives builds the leadership record. Row order from the source
// is preserved; every absent field carries the "N/A" sentinel.
func NormalizeExecutives(identity entity.CompanyIdentity, payload dto.ExecutivesPayload) *entity.ExecutivesRecord {
	executives := make([]entity.Executive, 0, len(payload.Rows))
	for _, row := range payload.Rows {
		executives = append(executives, entity.Executive{
			Name:         orSentinel(row.Name, NotAvailable),
			Title:        orSentinel(row.Title, NotAvailable),
			Compensation: orSentinel(row.Pay, NotAvailable),
			YearBorn:     orSentinel(row.YearBorn, NotAvailable),
		})
	}

	esg := entity.ESGScores{
		Total:         orSentinel(payload.ESG["total"], NotAvailable),
		Environmental: orSentinel(payload.ESG["environmental"], NotAvailable),
		Social:        orSentinel(payload.ESG["social"], NotAvailable),
		Governance:    orSentinel(payload.ESG["governance"], NotAvailable),
	}

	executivesJSON, err := json.Marshal(executives)
	if err != nil {
		executivesJSON = []byte("[]")
	}
	esgJSON, err := json.Marshal(esg)
	if err != nil {
		esgJSON = []byte("{}")
	}

	return &entity.ExecutivesRecord{
		CompanyName:     identity.CompanyName,
		Ticker:          orSentinel(payload.Ticker, NotAvailable),
		Executives:      executivesJSON,
		ESGScores:       esgJSON,
		BusinessHistory: pq.StringArray(payload.History),
	}
}
