package normalizer

import (
	"due-diligence-backend/internal/audit/dto"
	"due-diligence-backend/internal/entity"

	"github.com/lib/pq"
)

// Per-list placeholders stored when a sub-source returned nothing. Consumers
// rely on these exact strings.
const (
	placeholderGeneric   = "No Data"
	placeholderPatents   = "No Patents Found"
	placeholderFATF      = "Not Listed"
	placeholderSanctions = "No Sanctions"
)

// NormalizeLegalRisk builds the legal risk record. Every list is guaranteed
// non-empty: a sub-source that found nothing, failed or has no reachable
// source contributes its one-element placeholder.
func NormalizeLegalRisk(identity entity.CompanyIdentity, payload dto.LegalRiskPayload) *entity.LegalRiskRecord {
	return &entity.LegalRiskRecord{
		CompanyName:        identity.CompanyName,
		Lawsuits:           pq.StringArray(orPlaceholder(payload.Lawsuits, placeholderGeneric)),
		Patents:            pq.StringArray(orPlaceholder(payload.Patents, placeholderPatents)),
		TrademarkDecisions: pq.StringArray(orPlaceholder(payload.TrademarkDecisions, placeholderGeneric)),
		DataBreaches:       pq.StringArray(orPlaceholder(payload.DataBreaches, placeholderGeneric)),
		FATFBlacklist:      pq.StringArray(orPlaceholder(payload.FATFBlacklist, placeholderFATF)),
		Copyrights:         pq.StringArray(orPlaceholder(payload.Copyrights, placeholderGeneric)),
		PrivacyCompliance:  pq.StringArray(orPlaceholder(payload.PrivacyCompliance, placeholderGeneric)),
		OFACSanctions:      pq.StringArray(orPlaceholder(payload.OFACSanctions, placeholderSanctions)),
		FinCEN:             pq.StringArray(orPlaceholder(payload.FinCEN, placeholderGeneric)),
		InterpolNotices:    pq.StringArray(orPlaceholder(payload.InterpolNotices, placeholderGeneric)),
	}
}
