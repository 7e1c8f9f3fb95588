package scrape

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NewsSentinel/internal/domain"
	"NewsSentinel/internal/source"
)

// PageSource scrapes one HTML document and extracts candidates from anchor
// elements matched by the configured CSS selector. It covers the ad-hoc
// sources that publish link lists or headings instead of a feed.
type PageSource struct {
	client *http.Client
}

var _ source.Source = (*PageSource)(nil)

// NewPageSource wires an HTTP client; a nil client gets a 10s timeout default.
func NewPageSource(client *http.Client) *PageSource {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &PageSource{client: client}
}

// Name identifies the strategy inside the registry.
func (s *PageSource) Name() string {
	return "page"
}

// Fetch downloads the page and yields one candidate per matched anchor.
// Relative hrefs are resolved against the configured base URL; anchors
// without an absolute http(s) target are dropped. A configured limit stops
// extraction after that many candidates.
func (s *PageSource) Fetch(ctx context.Context, req source.Request) ([]domain.Candidate, error) {
	doc, err := s.fetchDocument(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	var candidates []domain.Candidate
	doc.Find(req.Selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok {
			return true
		}

		href = resolveHref(href, req.BaseURL)
		if !strings.HasPrefix(href, "http") {
			return true
		}
		if req.HostContains != "" && !strings.Contains(href, req.HostContains) {
			return true
		}
		if !matchesHref(href, req.HrefContains) {
			return true
		}

		title := req.Title
		if title == "" {
			title = strings.TrimSpace(sel.Text())
		}
		if title == "" {
			return true
		}

		candidates = append(candidates, domain.Candidate{
			Identity:    href,
			Title:       title,
			Body:        req.Lead,
			SourceLabel: req.Name,
		})

		return req.Limit <= 0 || len(candidates) < req.Limit
	})

	return candidates, nil
}

// matchesHref reports whether the href contains every configured substring.
func matchesHref(href string, parts []string) bool {
	lowered := strings.ToLower(href)
	for _, part := range parts {
		if !strings.Contains(lowered, strings.ToLower(part)) {
			return false
		}
	}
	return true
}

func (s *PageSource) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "NewsSentinel/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	return doc, nil
}

func resolveHref(href, base string) string {
	if strings.HasPrefix(href, "/") && base != "" {
		return strings.TrimSuffix(base, "/") + href
	}
	return href
}
