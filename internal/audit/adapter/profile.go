package adapter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"due-diligence-backend/internal/audit/config"
	"due-diligence-backend/internal/audit/dto"
	"due-diligence-backend/internal/entity"
	"due-diligence-backend/pkg/logger"

	"github.com/mauidude/go-readability"
)

// ProfileAdapter fetches the core company profile from a structured JSON API.
// When the provider has no description for the company, the adapter falls
// back to extracting readable text from the company website itself.
type ProfileAdapter struct {
	cfg        config.HTTPSource
	log        *logger.Logger
	httpClient *http.Client
}

// NewProfileAdapter creates a new ProfileAdapter.
func NewProfileAdapter(cfg config.HTTPSource, log *logger.Logger) *ProfileAdapter {
	return &ProfileAdapter{
		cfg:        cfg,
		log:        log,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Category returns the category this adapter serves.
func (a *ProfileAdapter) Category() entity.Category {
	return entity.CategoryProfile
}

type profileEnvelope struct {
	Data map[string]interface{} `json:"data"`
}

// Fetch retrieves the raw profile document for the company.
func (a *ProfileAdapter) Fetch(ctx context.Context, identity entity.CompanyIdentity) (interface{}, error) {
	fetchURL := fmt.Sprintf("%s/company-profile?name=%s&website=%s",
		a.cfg.BaseURL, url.QueryEscape(identity.CompanyName), url.QueryEscape(identity.WebsiteURL))

	headers := map[string]string{}
	if a.cfg.APIKey != "" {
		headers["x-api-key"] = a.cfg.APIKey
	}

	var envelope profileEnvelope
	if err := getJSON(ctx, a.httpClient, "profile api", fetchURL, headers, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return nil, NotFoundError("profile api", fmt.Errorf("empty profile for %q", identity.CompanyName))
	}

	payload := dto.ProfilePayload(envelope.Data)

	if _, ok := payload["description"]; !ok && identity.WebsiteURL != "" {
		if description := a.describeFromWebsite(ctx, identity.WebsiteURL); description != "" {
			payload["description"] = description
		}
	}

	return payload, nil
}

// describeFromWebsite extracts the readable text of the company homepage.
// Best effort only; any failure just leaves the description absent.
func (a *ProfileAdapter) describeFromWebsite(ctx context.Context, websiteURL string) string {
	if !urlHasScheme(websiteURL) {
		websiteURL = "https://" + websiteURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, websiteURL, nil)
	if err != nil {
		return ""
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return ""
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}

	doc, err := readability.NewDocument(string(body))
	if err != nil {
		a.log.DebugContext(ctx, "Failed to parse company website", logger.ErrorField(err))
		return ""
	}

	content := doc.Content()
	if len(content) > 2000 {
		content = content[:2000]
	}
	return content
}

func urlHasScheme(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != ""
}
