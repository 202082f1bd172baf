package repository

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BuildRiskSummaryPrompt renders the committed record set of a company into
// the due-diligence summary prompt.
func BuildRiskSummaryPrompt(companyName string, set *RecordSet) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are a due-diligence analyst. Summarize the risk profile of the company %q from the data below.

Write a concise assessment (max 300 words) covering: financial health, leadership, legal and regulatory exposure, and competitive position. Flag any red flags explicitly. If a section has no data, say so rather than speculating.

`, companyName)

	appendSection(&b, "COMPANY PROFILE", set.Profile)
	appendSection(&b, "EXECUTIVES AND ESG", set.Executives)
	appendSection(&b, "FINANCIALS", set.Financials)
	appendSection(&b, "LEGAL AND REGULATORY", set.LegalRisk)
	appendSection(&b, "MARKET AND COMPETITORS", set.Competitors)

	return b.String()
}

func appendSection(b *strings.Builder, title string, record interface{}) {
	fmt.Fprintf(b, "=== %s ===\n", title)
	data, err := json.Marshal(record)
	if err != nil || string(data) == "null" {
		b.WriteString("no data\n\n")
		return
	}
	b.Write(data)
	b.WriteString("\n\n")
}
