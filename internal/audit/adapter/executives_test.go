package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"due-diligence-backend/internal/audit/config"
	"due-diligence-backend/internal/audit/dto"
	"due-diligence-backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSymbols struct {
	symbol string
	err    error
}

func (f *fakeSymbols) Lookup(ctx context.Context, companyName string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.symbol, nil
}

const executivesPage = `<html><body><table><tbody>
<tr><td>Jordan Doe</td><td>CEO</td><td>1.2M</td><td>12k</td><td>1970</td></tr>
<tr><td>Sam Roe</td><td>CFO</td><td>800k</td><td>5k</td><td>1980</td></tr>
<tr><td>short</td><td>row</td></tr>
</tbody></table></body></html>`

const sustainabilityPage = `<html><body>
<section data-testid="TOTAL_ESG_SCORE"><h4>25.1</h4></section>
<section data-testid="ENVIRONMENTAL_SCORE"><h4>5.0</h4></section>
<section data-testid="SOCIAL_SCORE"><h4>11.8</h4></section>
<section data-testid="GOVERNANCE_SCORE"><h4>8.3</h4></section>
</body></html>`

func TestExecutivesAdapter_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/quote/ACME/profile":
			w.Write([]byte(executivesPage))
		case "/quote/ACME/sustainability":
			w.Write([]byte(sustainabilityPage))
		case "/search":
			w.Write([]byte(`{"organic_results":[{"title":"Acme history","snippet":"Founded 1990"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	source := config.HTTPSource{BaseURL: server.URL}
	a := NewExecutivesAdapter(source, source, &fakeSymbols{symbol: "ACME"}, logger.NewNop())

	payload, err := a.Fetch(context.Background(), testIdentity)
	require.NoError(t, err)

	executives, ok := payload.(dto.ExecutivesPayload)
	require.True(t, ok)
	assert.Equal(t, "ACME", executives.Ticker)

	require.Len(t, executives.Rows, 2, "short rows must be skipped")
	assert.Equal(t, "Jordan Doe", executives.Rows[0].Name)
	assert.Equal(t, "CEO", executives.Rows[0].Title)
	assert.Equal(t, "1.2M", executives.Rows[0].Pay)
	assert.Equal(t, "1970", executives.Rows[0].YearBorn)

	assert.Equal(t, "25.1", executives.ESG["total"])
	assert.Equal(t, "8.3", executives.ESG["governance"])

	require.Len(t, executives.History, 1)
	assert.Equal(t, "Acme history - Founded 1990", executives.History[0])
}

func TestExecutivesAdapter_NoTableIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>quote page without executives</p></body></html>`))
	}))
	defer server.Close()

	source := config.HTTPSource{BaseURL: server.URL}
	a := NewExecutivesAdapter(source, source, &fakeSymbols{symbol: "ACME"}, logger.NewNop())

	_, err := a.Fetch(context.Background(), testIdentity)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExecutivesAdapter_ESGDegradesGracefully(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/quote/ACME/profile" {
			w.Write([]byte(executivesPage))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	source := config.HTTPSource{BaseURL: server.URL}
	a := NewExecutivesAdapter(source, source, &fakeSymbols{symbol: "ACME"}, logger.NewNop())

	payload, err := a.Fetch(context.Background(), testIdentity)
	require.NoError(t, err, "ESG and history pages are optional")

	executives := payload.(dto.ExecutivesPayload)
	assert.Len(t, executives.Rows, 2)
	assert.Empty(t, executives.ESG)
	assert.Empty(t, executives.History)
}

func TestExecutivesAdapter_SymbolFailurePropagates(t *testing.T) {
	a := NewExecutivesAdapter(config.HTTPSource{}, config.HTTPSource{},
		&fakeSymbols{err: NotFoundError("symbol search", nil)}, logger.NewNop())

	_, err := a.Fetch(context.Background(), testIdentity)
	assert.ErrorIs(t, err, ErrNotFound)
}
