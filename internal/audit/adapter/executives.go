package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"due-diligence-backend/internal/audit/config"
	"due-diligence-backend/internal/audit/dto"
	"due-diligence-backend/internal/entity"
	"due-diligence-backend/pkg/logger"

	"github.com/PuerkitoBio/goquery"
)

// ExecutivesAdapter scrapes leadership data for a company: the key-executives
// table and ESG scores from the market data site, and past business history
// snippets from a search API.
type ExecutivesAdapter struct {
	market     config.HTTPSource
	search     config.HTTPSource
	log        *logger.Logger
	symbols    SymbolRepository
	httpClient *http.Client
}

// NewExecutivesAdapter creates a new ExecutivesAdapter.
func NewExecutivesAdapter(market, search config.HTTPSource, symbols SymbolRepository, log *logger.Logger) *ExecutivesAdapter {
	return &ExecutivesAdapter{
		market:     market,
		search:     search,
		log:        log,
		symbols:    symbols,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

// Category returns the category this adapter serves.
func (a *ExecutivesAdapter) Category() entity.Category {
	return entity.CategoryExecutives
}

// Fetch collects the raw leadership payload. The executives table is the
// must-have piece; ESG scores and business history degrade to empty when
// their pages fail, mirroring the profile page being the only hard
// dependency.
func (a *ExecutivesAdapter) Fetch(ctx context.Context, identity entity.CompanyIdentity) (interface{}, error) {
	ticker, err := a.symbols.Lookup(ctx, identity.CompanyName)
	if err != nil {
		return nil, err
	}

	rows, err := a.scrapeKeyExecutives(ctx, ticker)
	if err != nil {
		return nil, err
	}

	payload := dto.ExecutivesPayload{
		Ticker: ticker,
		Rows:   rows,
	}

	if esg, err := a.scrapeESGScores(ctx, ticker); err != nil {
		a.log.DebugContext(ctx, "No ESG data", logger.StringField("ticker", ticker), logger.ErrorField(err))
	} else {
		payload.ESG = esg
	}

	if history, err := a.fetchBusinessHistory(ctx, identity.CompanyName); err != nil {
		a.log.DebugContext(ctx, "No business history", logger.StringField("company", identity.CompanyName), logger.ErrorField(err))
	} else {
		payload.History = history
	}

	return payload, nil
}

// scrapeKeyExecutives parses the executives table on the ticker profile page.
func (a *ExecutivesAdapter) scrapeKeyExecutives(ctx context.Context, ticker string) ([]dto.ExecutiveRow, error) {
	pageURL := fmt.Sprintf("%s/quote/%s/profile", a.market.BaseURL, ticker)
	doc, err := getDocument(ctx, a.httpClient, "executives page", pageURL)
	if err != nil {
		return nil, err
	}

	var rows []dto.ExecutiveRow
	doc.Find("table tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cols := tr.Find("td")
		if cols.Length() < 5 {
			return
		}
		rows = append(rows, dto.ExecutiveRow{
			Name:     strings.TrimSpace(cols.Eq(0).Text()),
			Title:    strings.TrimSpace(cols.Eq(1).Text()),
			Pay:      strings.TrimSpace(cols.Eq(2).Text()),
			YearBorn: strings.TrimSpace(cols.Eq(4).Text()),
		})
	})

	if len(rows) == 0 {
		return nil, NotFoundError("executives page", fmt.Errorf("no executives table for %s", ticker))
	}
	return rows, nil
}

// scrapeESGScores parses the four sustainability score cards.
func (a *ExecutivesAdapter) scrapeESGScores(ctx context.Context, ticker string) (map[string]string, error) {
	pageURL := fmt.Sprintf("%s/quote/%s/sustainability", a.market.BaseURL, ticker)
	doc, err := getDocument(ctx, a.httpClient, "sustainability page", pageURL)
	if err != nil {
		return nil, err
	}

	scores := map[string]string{}
	for selector, key := range map[string]string{
		"section[data-testid='TOTAL_ESG_SCORE'] h4":    "total",
		"section[data-testid='ENVIRONMENTAL_SCORE'] h4": "environmental",
		"section[data-testid='SOCIAL_SCORE'] h4":        "social",
		"section[data-testid='GOVERNANCE_SCORE'] h4":    "governance",
	} {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			scores[key] = text
		}
	}

	if len(scores) == 0 {
		return nil, NotFoundError("sustainability page", fmt.Errorf("no ESG cards for %s", ticker))
	}
	return scores, nil
}

type searchResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

const businessHistoryQuery = "Past Business History of %s Previous Companies of Executives, Past Bankruptcies, Regulatory Actions"

// fetchBusinessHistory pulls search snippets about the company's past
// business conduct.
func (a *ExecutivesAdapter) fetchBusinessHistory(ctx context.Context, companyName string) ([]string, error) {
	query := fmt.Sprintf(businessHistoryQuery, companyName)
	searchURL := fmt.Sprintf("%s/search?q=%s&num=10&api_key=%s",
		a.search.BaseURL, url.QueryEscape(query), a.search.APIKey)

	var response searchResponse
	if err := getJSON(ctx, a.httpClient, "search api", searchURL, nil, &response); err != nil {
		return nil, err
	}

	var snippets []string
	for _, result := range response.OrganicResults {
		snippet := result.Snippet
		if snippet == "" {
			snippet = "N/A"
		}
		snippets = append(snippets, fmt.Sprintf("%s - %s", result.Title, snippet))
	}
	return snippets, nil
}
