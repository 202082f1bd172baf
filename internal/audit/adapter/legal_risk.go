package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"due-diligence-backend/internal/audit/config"
	"due-diligence-backend/internal/audit/dto"
	"due-diligence-backend/internal/entity"
	"due-diligence-backend/pkg/logger"
	"due-diligence-backend/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// LegalRiskAdapter aggregates legal and regulatory findings from several
// independent sub-sources: case law, patents, trademark decisions, data
// breaches, sanctions, GDPR fines and Interpol notices. Server-rendered pages
// are fetched through a scraping proxy. A failed sub-source only empties its
// own list; the adapter as a whole fails only when every sub-source failed.
type LegalRiskAdapter struct {
	cfg        config.LegalSources
	log        *logger.Logger
	httpClient *http.Client
}

// NewLegalRiskAdapter creates a new LegalRiskAdapter.
func NewLegalRiskAdapter(cfg config.LegalSources, log *logger.Logger) *LegalRiskAdapter {
	return &LegalRiskAdapter{
		cfg:        cfg,
		log:        log,
		httpClient: &http.Client{Timeout: 25 * time.Second},
	}
}

// Category returns the category this adapter serves.
func (a *LegalRiskAdapter) Category() entity.Category {
	return entity.CategoryLegalRisk
}

// Fetch runs all sub-sources concurrently and assembles the raw payload.
func (a *LegalRiskAdapter) Fetch(ctx context.Context, identity entity.CompanyIdentity) (interface{}, error) {
	var (
		payload  dto.LegalRiskPayload
		mu       sync.Mutex
		wg       sync.WaitGroup
		failures int
		total    int
	)

	run := func(name string, fetch func(ctx context.Context) ([]string, error), assign func([]string)) {
		total++
		wg.Add(1)
		utils.GoSafe(func() {
			defer wg.Done()
			entries, err := fetch(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures++
				a.log.DebugContext(ctx, "Legal sub-source failed",
					logger.StringField("sub_source", name), logger.ErrorField(err))
				return
			}
			assign(entries)
		})
	}

	run("case law", func(ctx context.Context) ([]string, error) {
		return a.fetchCaseLaw(ctx, identity.CompanyName)
	}, func(v []string) { payload.Lawsuits = v })

	run("patents", func(ctx context.Context) ([]string, error) {
		return a.fetchPatents(ctx, identity.CompanyName)
	}, func(v []string) { payload.Patents = v })

	run("trademark decisions", func(ctx context.Context) ([]string, error) {
		return a.fetchTrademarkDecisions(ctx, identity.CompanyName)
	}, func(v []string) { payload.TrademarkDecisions = v })

	run("data breaches", func(ctx context.Context) ([]string, error) {
		return a.fetchDataBreaches(ctx, identity.CompanyName)
	}, func(v []string) { payload.DataBreaches = v })

	run("sanctions", func(ctx context.Context) ([]string, error) {
		return a.fetchSanctions(ctx, identity.CompanyName)
	}, func(v []string) { payload.OFACSanctions = v })

	run("fatf blacklist", func(ctx context.Context) ([]string, error) {
		return a.fetchFATFBlacklist(ctx, identity.CompanyName)
	}, func(v []string) { payload.FATFBlacklist = v })

	run("gdpr fines", func(ctx context.Context) ([]string, error) {
		return a.fetchGDPRFines(ctx, identity.CompanyName)
	}, func(v []string) { payload.PrivacyCompliance = v })

	run("interpol notices", func(ctx context.Context) ([]string, error) {
		return a.fetchInterpolNotices(ctx, identity.CompanyName)
	}, func(v []string) { payload.InterpolNotices = v })

	wg.Wait()

	// Copyrights and FinCEN have no reachable source; their lists stay nil
	// and the normalizer substitutes the placeholder.

	if failures == total {
		return nil, UnavailableError("legal sources", fmt.Errorf("all %d sub-sources failed", total))
	}
	return payload, nil
}

// proxied rewrites a target URL through the scraping proxy, when configured.
func (a *LegalRiskAdapter) proxied(target string) string {
	if a.cfg.ProxyBaseURL == "" {
		return target
	}
	return fmt.Sprintf("%s?api_key=%s&url=%s", a.cfg.ProxyBaseURL, a.cfg.ProxyAPIKey, url.QueryEscape(target))
}

func (a *LegalRiskAdapter) fetchCaseLaw(ctx context.Context, companyName string) ([]string, error) {
	target := fmt.Sprintf("%s/search?per_page=50&order=relevance&query=%s&page=1",
		a.cfg.CaseLawBaseURL, url.QueryEscape(companyName))
	doc, err := getDocument(ctx, a.httpClient, "case law", a.proxied(target))
	if err != nil {
		return nil, err
	}

	namePattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(companyName) + `\b`)
	if err != nil {
		return nil, ParseError("case law", err)
	}

	var titles []string
	doc.Find("span.judgment-listing__title").Each(func(_ int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Text())
		if namePattern.MatchString(title) {
			titles = append(titles, title)
		}
	})
	return titles, nil
}

func (a *LegalRiskAdapter) fetchPatents(ctx context.Context, companyName string) ([]string, error) {
	feedURL := fmt.Sprintf("%s?DB=EPODOC&PA=%s&ST=advanced&locale=en_EP",
		a.cfg.PatentFeedURL, url.QueryEscape(companyName))

	fp := gofeed.NewParser()
	feed, err := fp.ParseURLWithContext(a.proxied(feedURL), ctx)
	if err != nil {
		return nil, UnavailableError("patent feed", err)
	}

	upper := strings.ToUpper(companyName)
	var patents []string
	for _, item := range feed.Items {
		applicants := "Unknown Applicant"
		if item.Custom != nil {
			if v, ok := item.Custom["applicants"]; ok && v != "" {
				applicants = v
			}
		}
		if applicants == "Unknown Applicant" && len(item.Authors) > 0 {
			applicants = item.Authors[0].Name
		}
		if strings.HasPrefix(strings.ToUpper(applicants), upper) || strings.Contains(strings.ToUpper(item.Title), upper) {
			patents = append(patents, fmt.Sprintf("%s - %s", item.Title, applicants))
		}
	}
	return patents, nil
}

func (a *LegalRiskAdapter) fetchTrademarkDecisions(ctx context.Context, companyName string) ([]string, error) {
	target := fmt.Sprintf("%s/t-challenge-decision-results?party=%s",
		a.cfg.TrademarkBaseURL, url.QueryEscape(companyName))
	doc, err := getDocument(ctx, a.httpClient, "trademark decisions", a.proxied(target))
	if err != nil {
		return nil, err
	}

	var decisions []string
	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cols := tr.Find("td")
		if cols.Length() < 4 {
			return
		}
		party := strings.TrimSpace(cols.Eq(1).Text())
		caseNumber := strings.TrimSpace(cols.Eq(3).Text())
		decisions = append(decisions, fmt.Sprintf("%s - %s", party, caseNumber))
	})
	return decisions, nil
}

type breachAPIEntry struct {
	Name        string `json:"Name"`
	Description string `json:"Description"`
}

func (a *LegalRiskAdapter) fetchDataBreaches(ctx context.Context, companyName string) ([]string, error) {
	var breaches []string

	namePattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(companyName) + `\b`)
	if err != nil {
		return nil, ParseError("data breaches", err)
	}

	doc, docErr := getDocument(ctx, a.httpClient, "breach list", a.proxied(a.cfg.BreachBaseURL))
	if docErr == nil {
		doc.Find("table.wikitable tr").Each(func(i int, tr *goquery.Selection) {
			if i == 0 {
				return
			}
			cols := tr.Find("td")
			if cols.Length() < 3 {
				return
			}
			org := strings.TrimSpace(cols.Eq(0).Text())
			records := strings.TrimSpace(cols.Eq(2).Text())
			if namePattern.MatchString(org) {
				breaches = append(breaches, fmt.Sprintf("%s - %s records breached", org, records))
			}
		})
	}

	var apiEntries []breachAPIEntry
	apiErr := getJSON(ctx, a.httpClient, "breach api", a.cfg.BreachAPIURL, nil, &apiEntries)
	if apiErr == nil {
		lower := strings.ToLower(companyName)
		for _, entry := range apiEntries {
			if strings.Contains(strings.ToLower(entry.Name), lower) {
				description := strings.ReplaceAll(entry.Description, "\n", " ")
				breaches = append(breaches, fmt.Sprintf("%s - %s", entry.Name, strings.TrimSpace(description)))
			}
		}
	}

	if docErr != nil && apiErr != nil {
		return nil, docErr
	}
	return breaches, nil
}

// fetchFATFBlacklist matches the company name against the current FATF
// blacklist of jurisdictions. Almost always empty for a company; a hit is a
// strong signal.
func (a *LegalRiskAdapter) fetchFATFBlacklist(ctx context.Context, companyName string) ([]string, error) {
	doc, err := getDocument(ctx, a.httpClient, "fatf blacklist", a.proxied(a.cfg.FATFBaseURL))
	if err != nil {
		return nil, err
	}

	namePattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(companyName) + `\b`)
	if err != nil {
		return nil, ParseError("fatf blacklist", err)
	}

	var matches []string
	doc.Find("h3#Current_FATF_blacklist").NextAllFiltered("ol").First().Find("a").Each(func(_ int, s *goquery.Selection) {
		name := strings.TrimSpace(s.Text())
		if namePattern.MatchString(name) {
			matches = append(matches, name)
		}
	})
	return matches, nil
}

func (a *LegalRiskAdapter) fetchSanctions(ctx context.Context, companyName string) ([]string, error) {
	target := fmt.Sprintf("%s/search?name=%s", a.cfg.SanctionsBaseURL, url.QueryEscape(companyName))
	doc, err := getDocument(ctx, a.httpClient, "sanctions", a.proxied(target))
	if err != nil {
		return nil, err
	}

	var results []string
	doc.Find("tr.alternatingRowColor, tr.sanction-row").Each(func(_ int, tr *goquery.Selection) {
		cols := tr.Find("td")
		if cols.Length() < 4 {
			return
		}
		entityName := strings.TrimSpace(cols.Eq(0).Text())
		sanctionType := strings.TrimSpace(cols.Eq(3).Text())
		results = append(results, fmt.Sprintf("%s - %s", entityName, sanctionType))
	})
	return results, nil
}

func (a *LegalRiskAdapter) fetchGDPRFines(ctx context.Context, companyName string) ([]string, error) {
	target := fmt.Sprintf("%s/fines?controller=%s", a.cfg.GDPRBaseURL, url.QueryEscape(companyName))
	doc, err := getDocument(ctx, a.httpClient, "gdpr fines", a.proxied(target))
	if err != nil {
		return nil, err
	}

	var fines []string
	doc.Find("tr.odd, tr.even").Each(func(_ int, tr *goquery.Selection) {
		cols := tr.Find("td")
		if cols.Length() < 10 {
			return
		}
		amount := strings.TrimSpace(cols.Eq(5).Text())
		violation := strings.TrimSpace(cols.Eq(6).Text())
		controller := strings.TrimSpace(cols.Eq(9).Text())
		fines = append(fines, fmt.Sprintf("%s - %s - %s", amount, violation, controller))
	})
	return fines, nil
}

func (a *LegalRiskAdapter) fetchInterpolNotices(ctx context.Context, companyName string) ([]string, error) {
	target := fmt.Sprintf("%s/notices?name=%s", a.cfg.InterpolBaseURL, url.QueryEscape(companyName))
	doc, err := getDocument(ctx, a.httpClient, "interpol notices", a.proxied(target))
	if err != nil {
		return nil, err
	}

	var notices []string
	doc.Find("div.redNoticeItem__labelText").Each(func(_ int, s *goquery.Selection) {
		link := s.Find("a").First()
		name := strings.TrimSpace(link.Text())
		profileURL, _ := link.Attr("data-singleurl")
		if name != "" && profileURL != "" {
			notices = append(notices, fmt.Sprintf("%s (%s)", name, profileURL))
		}
	})
	return notices, nil
}
