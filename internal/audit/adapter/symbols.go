package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"due-diligence-backend/internal/audit/config"
	"due-diligence-backend/pkg/logger"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// SymbolRepository resolves a company name to its stock ticker symbol.
// Several adapters need the ticker before they can fetch anything, so lookups
// are cached and rate limited.
type SymbolRepository interface {
	Lookup(ctx context.Context, companyName string) (string, error)
}

type symbolRepository struct {
	cfg            config.HTTPSource
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	inmemoryCache  *cache.Cache
}

// NewSymbolRepository creates a new SymbolRepository.
func NewSymbolRepository(cfg config.HTTPSource, log *logger.Logger) SymbolRepository {
	perMinute := cfg.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 30
	}
	secondsPerRequest := time.Minute / time.Duration(perMinute)
	return &symbolRepository{
		cfg:            cfg,
		log:            log,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		inmemoryCache:  cache.New(30*time.Minute, 10*time.Minute),
	}
}

type symbolSearchResponse struct {
	BestMatches []struct {
		Symbol string `json:"symbol"`
		Name   string `json:"name"`
	} `json:"best_matches"`
}

// Lookup searches the symbol API for the best-matching ticker. A company with
// no listing resolves to a not-found fetch error.
func (r *symbolRepository) Lookup(ctx context.Context, companyName string) (string, error) {
	if cached, found := r.inmemoryCache.Get(companyName); found {
		return cached.(string), nil
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", UnavailableError("symbol search", err)
	}

	lookupURL := fmt.Sprintf("%s/symbol-search?keywords=%s&apikey=%s",
		r.cfg.BaseURL, url.QueryEscape(companyName), r.cfg.APIKey)

	var response symbolSearchResponse
	if err := getJSON(ctx, r.httpClient, "symbol search", lookupURL, nil, &response); err != nil {
		return "", err
	}

	if len(response.BestMatches) == 0 {
		return "", NotFoundError("symbol search", fmt.Errorf("no symbol for %q", companyName))
	}

	symbol := response.BestMatches[0].Symbol
	r.log.DebugContext(ctx, "Resolved ticker symbol",
		logger.StringField("company", companyName),
		logger.StringField("symbol", symbol))

	r.inmemoryCache.Set(companyName, symbol, cache.DefaultExpiration)
	return symbol, nil
}
