package config

import (
	"time"

	"due-diligence-backend/internal/entity"
	pkgconfig "due-diligence-backend/pkg/config"
)

// Audit holds coordinator configuration. Timeouts is keyed by category name;
// browser-rendered sources warrant longer deadlines than JSON APIs, so each
// category can be tuned independently.
type Audit struct {
	Timeouts       map[string]string `mapstructure:"timeouts"`
	DefaultTimeout string            `mapstructure:"default_timeout"`
	LockTTL        string            `mapstructure:"lock_ttl"`
}

// TimeoutFor resolves the deadline for a category, falling back to the
// default and finally to a fixed 30s.
func (a Audit) TimeoutFor(category entity.Category) time.Duration {
	if raw, ok := a.Timeouts[string(category)]; ok {
		if d, err := time.ParseDuration(raw); err == nil {
			return d
		}
	}
	if d, err := time.ParseDuration(a.DefaultTimeout); err == nil {
		return d
	}
	return 30 * time.Second
}

// LockTTLDuration resolves the in-flight lock TTL, defaulting to 10 minutes.
func (a Audit) LockTTLDuration() time.Duration {
	if d, err := time.ParseDuration(a.LockTTL); err == nil {
		return d
	}
	return 10 * time.Minute
}

// HTTPSource holds settings for a JSON API source.
type HTTPSource struct {
	BaseURL             string `mapstructure:"base_url"`
	APIKey              string `mapstructure:"api_key"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// LegalSources lists the base URLs of the legal/regulatory sub-sources. Pages
// that render server-side are fetched through the scraping proxy.
type LegalSources struct {
	ProxyBaseURL     string `mapstructure:"proxy_base_url"`
	ProxyAPIKey      string `mapstructure:"proxy_api_key"`
	CaseLawBaseURL   string `mapstructure:"case_law_base_url"`
	PatentFeedURL    string `mapstructure:"patent_feed_url"`
	TrademarkBaseURL string `mapstructure:"trademark_base_url"`
	BreachBaseURL    string `mapstructure:"breach_base_url"`
	FATFBaseURL      string `mapstructure:"fatf_base_url"`
	BreachAPIURL     string `mapstructure:"breach_api_url"`
	SanctionsBaseURL string `mapstructure:"sanctions_base_url"`
	GDPRBaseURL      string `mapstructure:"gdpr_base_url"`
	InterpolBaseURL  string `mapstructure:"interpol_base_url"`
}

// Sources groups the external source endpoints per category.
type Sources struct {
	Profile    HTTPSource   `mapstructure:"profile"`
	Financials HTTPSource   `mapstructure:"financials"`
	Symbols    HTTPSource   `mapstructure:"symbols"`
	Search     HTTPSource   `mapstructure:"search"`
	Market     HTTPSource   `mapstructure:"market"`
	Quotes     HTTPSource   `mapstructure:"quotes"`
	Legal      LegalSources `mapstructure:"legal"`
}

// Telegram holds notifier configuration.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// AI holds AI provider selection.
type AI struct {
	Provider string `mapstructure:"provider"`
}

// Gemini holds Gemini API configuration.
type Gemini struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Refresh controls the scheduled re-audit of stale companies.
type Refresh struct {
	Enabled        bool   `mapstructure:"enabled"`
	CronExpression string `mapstructure:"cron_expression"`
	MaxAge         string `mapstructure:"max_age"`
}

// MaxAgeDuration resolves the staleness cutoff, defaulting to 30 days.
func (r Refresh) MaxAgeDuration() time.Duration {
	if d, err := time.ParseDuration(r.MaxAge); err == nil {
		return d
	}
	return 30 * 24 * time.Hour
}

// Config is the root configuration for the audit service.
type Config struct {
	App      pkgconfig.App      `mapstructure:"app"`
	Logger   pkgconfig.Logger   `mapstructure:"logger"`
	Database pkgconfig.Database `mapstructure:"database"`
	Redis    pkgconfig.Redis    `mapstructure:"redis"`
	API      pkgconfig.API      `mapstructure:"api"`
	Audit    Audit              `mapstructure:"audit"`
	Sources  Sources            `mapstructure:"sources"`
	Telegram Telegram           `mapstructure:"telegram"`
	AI       AI                 `mapstructure:"ai"`
	Gemini   Gemini             `mapstructure:"gemini"`
	Refresh  Refresh            `mapstructure:"refresh"`
}

// Load reads the audit service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := pkgconfig.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
