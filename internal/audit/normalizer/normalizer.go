// Package normalizer turns raw source payloads into the fixed per-category
// sub-records. Every Normalize function is total: whatever fields the adapter
// could not supply come out as the category's sentinel, never as a missing
// column.
package normalizer

// Sentinels. Profile, executives and financials use NotAvailable for absent
// text fields; the market snapshot uses SnapshotNA to stay byte-compatible
// with what its source renders for missing figures.
const (
	NotAvailable = "N/A"
	SnapshotNA   = "NA"
)

// orSentinel substitutes the sentinel for empty strings.
func orSentinel(value, sentinel string) string {
	if value == "" {
		return sentinel
	}
	return value
}

// orPlaceholder substitutes a one-element placeholder list for empty lists.
func orPlaceholder(entries []string, placeholder string) []string {
	if len(entries) == 0 {
		return []string{placeholder}
	}
	return entries
}
