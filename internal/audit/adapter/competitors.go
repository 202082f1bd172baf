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

// maxCompetitorSnapshots caps how many competitor quote pages are scraped per
// audit; each one is a full page fetch.
const maxCompetitorSnapshots = 3

// CompetitorsAdapter scrapes the company's own market snapshot from its quote
// page, discovers competitor names from the comparison strip, and collects a
// snapshot for each of the top competitors.
type CompetitorsAdapter struct {
	market     config.HTTPSource
	log        *logger.Logger
	symbols    SymbolRepository
	httpClient *http.Client
}

// NewCompetitorsAdapter creates a new CompetitorsAdapter.
func NewCompetitorsAdapter(market config.HTTPSource, symbols SymbolRepository, log *logger.Logger) *CompetitorsAdapter {
	return &CompetitorsAdapter{
		market:     market,
		log:        log,
		symbols:    symbols,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

// Category returns the category this adapter serves.
func (a *CompetitorsAdapter) Category() entity.Category {
	return entity.CategoryCompetitors
}

// Fetch collects the raw competitor-benchmark payload. The company's own
// snapshot is the hard dependency; competitor discovery and per-competitor
// snapshots degrade to empty on failure.
func (a *CompetitorsAdapter) Fetch(ctx context.Context, identity entity.CompanyIdentity) (interface{}, error) {
	ticker, err := a.symbols.Lookup(ctx, identity.CompanyName)
	if err != nil {
		return nil, err
	}

	snapshot, sector, industry, err := a.scrapeQuote(ctx, identity.CompanyName)
	if err != nil {
		return nil, err
	}

	payload := dto.CompetitorsPayload{
		Snapshot: snapshot,
		Sector:   sector,
		Industry: industry,
	}

	names, err := a.discoverCompetitors(ctx, ticker)
	if err != nil {
		a.log.DebugContext(ctx, "No competitor names",
			logger.StringField("ticker", ticker), logger.ErrorField(err))
		return payload, nil
	}

	for _, name := range names {
		if len(payload.Competitors) >= maxCompetitorSnapshots {
			break
		}
		figures, _, _, err := a.scrapeQuote(ctx, name)
		if err != nil {
			a.log.DebugContext(ctx, "Competitor snapshot failed",
				logger.StringField("competitor", name), logger.ErrorField(err))
			continue
		}
		payload.Competitors = append(payload.Competitors, dto.CompetitorFigures{
			Name:          name,
			MarketFigures: figures,
		})
	}

	return payload, nil
}

// quoteLabels maps the statistic labels on the quote page onto snapshot
// fields. Labels appear verbatim in the page's summary and financials strips.
var quoteLabels = map[string]func(*dto.MarketFigures, string){
	"Market cap":        func(m *dto.MarketFigures, v string) { m.MarketCap = v },
	"Avg Volume":        func(m *dto.MarketFigures, v string) { m.AvgVolume = v },
	"P/E ratio":         func(m *dto.MarketFigures, v string) { m.PERatio = v },
	"Revenue":           func(m *dto.MarketFigures, v string) { m.Revenue = v },
	"Operating expense": func(m *dto.MarketFigures, v string) { m.OperatingExpense = v },
	"Net income":        func(m *dto.MarketFigures, v string) { m.NetIncome = v },
	"Net profit margin": func(m *dto.MarketFigures, v string) { m.NetProfitMargin = v },
}

// growthLabels maps the year-over-year change labels onto rate fields.
var growthLabels = map[string]func(*dto.MarketFigures, string){
	"Revenue":           func(m *dto.MarketFigures, v string) { m.RevenueGrowthRate = v },
	"Operating expense": func(m *dto.MarketFigures, v string) { m.OperatingExpenseRate = v },
	"Net income":        func(m *dto.MarketFigures, v string) { m.NetIncomeRate = v },
	"Net profit margin": func(m *dto.MarketFigures, v string) { m.NetProfitMarginRate = v },
}

// scrapeQuote loads the quote page for a company name and extracts the market
// snapshot plus sector and industry classification.
func (a *CompetitorsAdapter) scrapeQuote(ctx context.Context, companyName string) (dto.MarketFigures, string, string, error) {
	pageURL := fmt.Sprintf("%s/finance/quote?q=%s", a.market.BaseURL, url.QueryEscape(companyName))
	doc, err := getDocument(ctx, a.httpClient, "quote page", pageURL)
	if err != nil {
		return dto.MarketFigures{}, "", "", err
	}

	var figures dto.MarketFigures
	figures.StockName = strings.TrimSpace(doc.Find("div[data-entity-type] .zzDege").First().Text())
	figures.StockValue = strings.TrimSpace(doc.Find("div.YMlKec.fxKbKc").First().Text())

	if figures.StockName == "" && figures.StockValue == "" {
		return dto.MarketFigures{}, "", "", NotFoundError("quote page", fmt.Errorf("no quote for %q", companyName))
	}

	doc.Find("div.gyFHrc").Each(func(_ int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Find("div.mfs7Fc").Text())
		value := strings.TrimSpace(s.Find("div.P6K39c").Text())
		if set, ok := quoteLabels[label]; ok && value != "" {
			set(&figures, value)
		}
	})

	// The financials strip repeats the statement labels with a Y/Y column.
	doc.Find("tr.roXhBd").Each(func(_ int, tr *goquery.Selection) {
		label := strings.TrimSpace(tr.Find("td.J9Jhg div").First().Text())
		value := strings.TrimSpace(tr.Find("td.QXDnM").Text())
		growth := strings.TrimSpace(tr.Find("td.gEUVJe span").Text())
		if set, ok := quoteLabels[label]; ok && value != "" {
			set(&figures, value)
		}
		if set, ok := growthLabels[label]; ok && growth != "" {
			set(&figures, growth)
		}
	})

	var sector, industry string
	doc.Find("div.gyFHrc").Each(func(_ int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Find("div.mfs7Fc").Text())
		value := strings.TrimSpace(s.Find("div.P6K39c").Text())
		switch label {
		case "Sector":
			sector = value
		case "Industry":
			industry = value
		}
	})

	return figures, sector, industry, nil
}

// discoverCompetitors reads competitor names from the "X vs. Y" comparison
// strip on the ticker's quote page.
func (a *CompetitorsAdapter) discoverCompetitors(ctx context.Context, ticker string) ([]string, error) {
	pageURL := fmt.Sprintf("%s/finance/quote/%s", a.market.BaseURL, url.QueryEscape(ticker))
	doc, err := getDocument(ctx, a.httpClient, "comparison strip", pageURL)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var names []string
	doc.Find("div.tOzDHb a, span.HlqNh").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		// Comparison entries read "Alpha Corp vs. Beta Inc"; keep the side
		// that is not the audited ticker.
		if idx := strings.Index(text, " vs. "); idx >= 0 {
			text = strings.TrimSpace(text[idx+len(" vs. "):])
		}
		if text == "" || strings.EqualFold(text, ticker) || seen[text] {
			return
		}
		seen[text] = true
		names = append(names, text)
	})

	if len(names) == 0 {
		return nil, NotFoundError("comparison strip", fmt.Errorf("no competitors listed for %s", ticker))
	}
	return names, nil
}
