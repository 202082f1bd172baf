package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"due-diligence-backend/internal/audit/config"
	"due-diligence-backend/internal/audit/dto"
	"due-diligence-backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const caseLawPage = `<html><body>
<span class="judgment-listing__title">Acme Corp v. Example Ltd</span>
<span class="judgment-listing__title">Unrelated Holdings v. Someone</span>
<span class="judgment-listing__title">Regina v. Acme</span>
</body></html>`

const patentFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Search results</title>
<item><title>Self-sealing widget</title><applicants>ACME CORP</applicants></item>
<item><title>Unrelated process</title><applicants>OTHER GMBH</applicants></item>
</channel></rss>`

const trademarkPage = `<html><body><table>
<tr><th>No</th><th>Party</th><th>Mark</th><th>Case</th></tr>
<tr><td>1</td><td>Acme Corp</td><td>ACME</td><td>O/123/24</td></tr>
</table></body></html>`

const breachListPage = `<html><body><table class="wikitable">
<tr><th>Entity</th><th>Year</th><th>Records</th></tr>
<tr><td>Acme</td><td>2021</td><td>3,000,000</td></tr>
<tr><td>Somebody Else</td><td>2020</td><td>500</td></tr>
</table></body></html>`

const sanctionsPage = `<html><body><table>
<tr class="alternatingRowColor"><td>ACME TRADING LLC</td><td>-</td><td>-</td><td>SDN</td></tr>
</table></body></html>`

const gdprPage = `<html><body><table>
<tr class="odd"><td>1</td><td>ETid-1</td><td>IT</td><td>2023</td><td>x</td><td>EUR 50,000</td><td>Art. 32 GDPR</td><td>x</td><td>x</td><td>Acme Corp</td></tr>
</table></body></html>`

const interpolPage = `<html><body>
<div class="redNoticeItem__labelText"><a data-singleurl="/notice/1">DOE, John</a></div>
</body></html>`

func legalTestConfig(serverURL string) config.LegalSources {
	return config.LegalSources{
		CaseLawBaseURL:   serverURL + "/caselaw",
		PatentFeedURL:    serverURL + "/patents",
		TrademarkBaseURL: serverURL + "/trademarks",
		BreachBaseURL:    serverURL + "/breaches",
		BreachAPIURL:     serverURL + "/breachapi",
		FATFBaseURL:      serverURL + "/fatf",
		SanctionsBaseURL: serverURL + "/sanctions",
		GDPRBaseURL:      serverURL + "/gdpr",
		InterpolBaseURL:  serverURL + "/interpol",
	}
}

func TestLegalRiskAdapter_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/caselaw/search":
			w.Write([]byte(caseLawPage))
		case "/patents":
			w.Write([]byte(patentFeed))
		case "/trademarks/t-challenge-decision-results":
			w.Write([]byte(trademarkPage))
		case "/breaches":
			w.Write([]byte(breachListPage))
		case "/breachapi":
			w.Write([]byte(`[{"Name":"Acme","Description":"Emails and\npasswords exposed"},{"Name":"Other","Description":"x"}]`))
		case "/fatf":
			w.Write([]byte(`<html><body><h3 id="Current_FATF_blacklist">Blacklist</h3><ol><li><a>North Korea</a></li></ol></body></html>`))
		case "/sanctions/search":
			w.Write([]byte(sanctionsPage))
		case "/gdpr/fines":
			w.Write([]byte(gdprPage))
		case "/interpol/notices":
			w.Write([]byte(interpolPage))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	a := NewLegalRiskAdapter(legalTestConfig(server.URL), logger.NewNop())

	payload, err := a.Fetch(context.Background(), testIdentity)
	require.NoError(t, err)

	legal, ok := payload.(dto.LegalRiskPayload)
	require.True(t, ok)

	assert.Equal(t, []string{"Acme Corp v. Example Ltd", "Regina v. Acme"}, legal.Lawsuits,
		"only judgments naming the company count")
	assert.Equal(t, []string{"Self-sealing widget - ACME CORP"}, legal.Patents)
	assert.Equal(t, []string{"Acme Corp - O/123/24"}, legal.TrademarkDecisions)
	assert.Equal(t, []string{
		"Acme - 3,000,000 records breached",
		"Acme - Emails and passwords exposed",
	}, legal.DataBreaches, "list page and breach API results merge")
	assert.Empty(t, legal.FATFBlacklist, "the company is not a listed jurisdiction")
	assert.Equal(t, []string{"ACME TRADING LLC - SDN"}, legal.OFACSanctions)
	assert.Equal(t, []string{"EUR 50,000 - Art. 32 GDPR - Acme Corp"}, legal.PrivacyCompliance)
	assert.Equal(t, []string{"DOE, John (/notice/1)"}, legal.InterpolNotices)

	assert.Nil(t, legal.Copyrights)
	assert.Nil(t, legal.FinCEN)
}

func TestLegalRiskAdapter_PartialFailureSucceeds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/caselaw/search" {
			w.Write([]byte(caseLawPage))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	a := NewLegalRiskAdapter(legalTestConfig(server.URL), logger.NewNop())

	payload, err := a.Fetch(context.Background(), testIdentity)
	require.NoError(t, err, "one healthy sub-source is enough")

	legal := payload.(dto.LegalRiskPayload)
	assert.Len(t, legal.Lawsuits, 2)
	assert.Nil(t, legal.OFACSanctions)
}

func TestLegalRiskAdapter_AllSubSourcesFailedIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	a := NewLegalRiskAdapter(legalTestConfig(server.URL), logger.NewNop())

	_, err := a.Fetch(context.Background(), testIdentity)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestLegalRiskAdapter_ProxyRewrite(t *testing.T) {
	a := NewLegalRiskAdapter(config.LegalSources{
		ProxyBaseURL: "http://proxy.example.com",
		ProxyAPIKey:  "secret",
	}, logger.NewNop())

	proxied := a.proxied("https://target.example.com/page?x=1")
	parsed, err := url.Parse(proxied)
	require.NoError(t, err)
	assert.Equal(t, "proxy.example.com", parsed.Host)
	assert.Equal(t, "secret", parsed.Query().Get("api_key"))
	assert.Equal(t, "https://target.example.com/page?x=1", parsed.Query().Get("url"))

	direct := NewLegalRiskAdapter(config.LegalSources{}, logger.NewNop())
	assert.Equal(t, "https://target.example.com/page?x=1", direct.proxied("https://target.example.com/page?x=1"))
}
