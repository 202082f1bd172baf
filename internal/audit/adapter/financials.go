package adapter

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"due-diligence-backend/internal/audit/config"
	"due-diligence-backend/internal/audit/dto"
	"due-diligence-backend/internal/entity"
	"due-diligence-backend/pkg/logger"

	"golang.org/x/time/rate"
)

// FinancialsAdapter fetches the latest annual as-reported financial statement
// for a company from a JSON statements API, resolving the ticker first.
type FinancialsAdapter struct {
	cfg            config.HTTPSource
	log            *logger.Logger
	symbols        SymbolRepository
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewFinancialsAdapter creates a new FinancialsAdapter.
func NewFinancialsAdapter(cfg config.HTTPSource, symbols SymbolRepository, log *logger.Logger) *FinancialsAdapter {
	perMinute := cfg.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 30
	}
	return &FinancialsAdapter{
		cfg:            cfg,
		log:            log,
		symbols:        symbols,
		httpClient:     &http.Client{Timeout: 15 * time.Second},
		requestLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

// Category returns the category this adapter serves.
func (a *FinancialsAdapter) Category() entity.Category {
	return entity.CategoryFinancials
}

const statementEndpoint = "financial-statement-full-as-reported"

// Fetch retrieves the most recent annual statement. An empty statement list
// is a not-found failure: the source was reached but knows nothing about the
// company.
func (a *FinancialsAdapter) Fetch(ctx context.Context, identity entity.CompanyIdentity) (interface{}, error) {
	symbol, err := a.symbols.Lookup(ctx, identity.CompanyName)
	if err != nil {
		return nil, err
	}

	if err := a.requestLimiter.Wait(ctx); err != nil {
		return nil, UnavailableError("financial statements", err)
	}

	statementURL := fmt.Sprintf("%s/%s/%s?period=annual&limit=1&apikey=%s",
		a.cfg.BaseURL, statementEndpoint, symbol, a.cfg.APIKey)

	var reports []map[string]interface{}
	if err := getJSON(ctx, a.httpClient, "financial statements", statementURL, nil, &reports); err != nil {
		return nil, err
	}

	if len(reports) == 0 {
		return nil, NotFoundError("financial statements", fmt.Errorf("no statements for %s", symbol))
	}

	a.log.DebugContext(ctx, "Fetched financial statement",
		logger.StringField("company", identity.CompanyName),
		logger.StringField("symbol", symbol))

	return dto.FinancialsPayload{
		Source: fmt.Sprintf("Financial Modeling Prep - %s", statementEndpoint),
		Report: reports[0],
	}, nil
}
