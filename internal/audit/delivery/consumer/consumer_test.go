package consumer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDigest(t *testing.T) {
	digest := FormatDigest("Acme", map[string]string{
		"profile":     "committed",
		"legal_risk":  "failed",
		"financials":  "committed",
		"competitors": "committed",
		"executives":  "committed",
	})

	lines := strings.Split(strings.TrimRight(digest, "\n"), "\n")
	assert.Equal(t, "*Audit completed: Acme*", lines[0])

	assert.Equal(t, []string{
		"✅ competitors: committed",
		"✅ executives: committed",
		"✅ financials: committed",
		"❌ legal_risk: failed",
		"✅ profile: committed",
	}, lines[1:], "categories must sort alphabetically with failure markers")
}

func TestFormatDigest_PendingIsNotSuccess(t *testing.T) {
	digest := FormatDigest("Acme", map[string]string{"profile": "pending"})
	assert.Contains(t, digest, "❌ profile: pending")
}
