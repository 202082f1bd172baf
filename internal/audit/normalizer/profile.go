package normalizer

import (
	"encoding/json"

	"due-diligence-backend/internal/audit/dto"
	"due-diligence-backend/internal/entity"
)

// NormalizeProfile wraps the source-shaped profile document into the audit
// record. The document is stored as-is; only the identity columns are fixed.
func NormalizeProfile(identity entity.CompanyIdentity, payload dto.ProfilePayload) *entity.AuditRecord {
	if payload == nil {
		payload = dto.ProfilePayload{}
	}
	properties, err := json.Marshal(payload)
	if err != nil {
		properties = []byte("{}")
	}
	return &entity.AuditRecord{
		CompanyName:        identity.CompanyName,
		WebsiteURL:         identity.WebsiteURL,
		RegistrationNumber: identity.RegistrationNumber,
		Properties:         properties,
	}
}
