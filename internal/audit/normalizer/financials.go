package normalizer

import (
	"due-diligence-backend/internal/audit/dto"
	"due-diligence-backend/internal/entity"
)

// NormalizeFinancials maps the as-reported statement onto the financial
// record. Direct attributes come straight from the report; derived metrics
// are computed from their inputs and stay nil when any required input is
// absent, so an unknown figure is never mistaken for a zero.
func NormalizeFinancials(identity entity.CompanyIdentity, payload dto.FinancialsPayload) *entity.FinancialRecord {
	record := &entity.FinancialRecord{
		CompanyName: identity.CompanyName,
		Source:      orSentinel(payload.Source, NotAvailable),

		CreditScore:          NotAvailable,
		LoanHistory:          NotAvailable,
		PaymentHistory:       NotAvailable,
		CorporateTaxFilings:  NotAvailable,
		VATRecords:           NotAvailable,
		GovernmentIncentives: NotAvailable,
	}

	report := payload.Report
	if report == nil {
		return record
	}

	record.Revenue = floatAt(report, "revenuefromcontractwithcustomerexcludingassessedtax")
	record.NetProfitLoss = floatAt(report, "netincomeloss")
	record.TotalAssets = floatAt(report, "assets")
	record.TotalLiability = floatAt(report, "liabilities")
	record.OutstandingDebt = floatAt(report, "longtermdebt")
	record.UnpaidTaxes = floatAt(report, "unrecognizedtaxbenefits")

	record.EBITDA = addOpt(
		floatAt(report, "operatingincomeloss"),
		floatAt(report, "depreciationdepletionandamortization"))
	record.FreeCashFlow = subOpt(
		floatAt(report, "netcashprovidedbyusedinoperatingactivities"),
		floatAt(report, "paymentstoacquirepropertyplantandequipment"))

	currentAssets := floatAt(report, "assetscurrent")
	currentLiabilities := floatAt(report, "liabilitiescurrent")
	record.WorkingCapital = subOpt(currentAssets, currentLiabilities)

	if record.Revenue != nil && *record.Revenue != 0 {
		if cost := floatAt(report, "costofrevenue"); cost != nil {
			grossMargin := (*record.Revenue - *cost) / *record.Revenue
			record.GrossMargin = &grossMargin
		}
		if record.EBITDA != nil {
			operatingMargin := *record.EBITDA / *record.Revenue
			record.OperatingMargin = &operatingMargin
		}
	}

	if record.TotalAssets != nil && record.TotalLiability != nil {
		if equity := *record.TotalAssets - *record.TotalLiability; equity != 0 {
			debtToEquity := *record.TotalLiability / equity
			record.DebtToEquity = &debtToEquity
		}
	}

	if currentAssets != nil && currentLiabilities != nil && *currentLiabilities != 0 {
		currentRatio := *currentAssets / *currentLiabilities
		record.CurrentRatio = &currentRatio

		inventory := 0.0
		if v := floatAt(report, "inventorynet"); v != nil {
			inventory = *v
		}
		quickRatio := (*currentAssets - inventory) / *currentLiabilities
		record.QuickRatio = &quickRatio
	}

	return record
}

// floatAt reads a numeric report field, nil when absent or non-numeric.
func floatAt(report map[string]interface{}, key string) *float64 {
	raw, ok := report[key]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	}
	return nil
}

// addOpt sums two optional values, treating one absent operand as zero. Both
// absent yields nil.
func addOpt(a, b *float64) *float64 {
	if a == nil && b == nil {
		return nil
	}
	sum := 0.0
	if a != nil {
		sum += *a
	}
	if b != nil {
		sum += *b
	}
	return &sum
}

// subOpt computes a-b with the same absence rules as addOpt.
func subOpt(a, b *float64) *float64 {
	if a == nil && b == nil {
		return nil
	}
	diff := 0.0
	if a != nil {
		diff = *a
	}
	if b != nil {
		diff -= *b
	}
	return &diff
}
