package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"due-diligence-backend/internal/entity"

	"github.com/PuerkitoBio/goquery"
)

// SourceAdapter pulls raw data for one company from one category of external
// source. Implementations must honor the context deadline, never write to the
// store, and report failures through the fetch error taxonomy in this
// package. The returned payload type is category-specific (see dto).
type SourceAdapter interface {
	Fetch(ctx context.Context, identity entity.CompanyIdentity) (interface{}, error)
	Category() entity.Category
}

// getJSON performs a GET request and decodes the JSON body into out.
// Non-2xx statuses and transport failures map onto the fetch error kinds.
func getJSON(ctx context.Context, client *http.Client, source, url string, headers map[string]string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return UnavailableError(source, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return UnavailableError(source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return NotFoundError(source, nil)
	}
	if resp.StatusCode >= 400 {
		return UnavailableError(source, fmt.Errorf("status code %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return UnavailableError(source, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return ParseError(source, err)
	}
	return nil
}

// getDocument fetches a page and parses it with goquery.
func getDocument(ctx context.Context, client *http.Client, source, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, UnavailableError(source, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, UnavailableError(source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, NotFoundError(source, nil)
	}
	if resp.StatusCode >= 400 {
		return nil, UnavailableError(source, fmt.Errorf("status code %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, ParseError(source, err)
	}
	return doc, nil
}
