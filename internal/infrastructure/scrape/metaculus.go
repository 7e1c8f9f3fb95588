package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"NewsSentinel/internal/domain"
	"NewsSentinel/internal/source"
)

const defaultQuestionLimit = 10

// MetaculusSource pulls open forecasting questions from the Metaculus API.
type MetaculusSource struct {
	client *http.Client
}

var _ source.Source = (*MetaculusSource)(nil)

// NewMetaculusSource wires an HTTP client; a nil client gets a 10s timeout
// default.
func NewMetaculusSource(client *http.Client) *MetaculusSource {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &MetaculusSource{client: client}
}

// Name identifies the strategy inside the registry.
func (s *MetaculusSource) Name() string {
	return "metaculus"
}

// Fetch lists open questions and turns each into a candidate. Question page
// URLs are relative, so req.URL doubles as the site base.
func (s *MetaculusSource) Fetch(ctx context.Context, req source.Request) ([]domain.Candidate, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultQuestionLimit
	}

	base := strings.TrimSuffix(req.URL, "/")
	apiURL := base + "/api2/questions/?status=open&limit=" + strconv.Itoa(limit)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("User-Agent", "NewsSentinel/1.0")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request questions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metaculus returned %s", resp.Status)
	}

	var payload struct {
		Results []struct {
			Title       string `json:"title"`
			PageURL     string `json:"page_url"`
			Description string `json:"description"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	candidates := make([]domain.Candidate, 0, len(payload.Results))
	for _, q := range payload.Results {
		title := strings.TrimSpace(q.Title)
		pageURL := strings.TrimSpace(q.PageURL)
		if title == "" || pageURL == "" {
			continue
		}

		candidates = append(candidates, domain.Candidate{
			Identity:    base + pageURL,
			Title:       title,
			Body:        clipDescription(q.Description),
			SourceLabel: req.Name,
		})
	}

	return candidates, nil
}

// clipDescription strips markup before clipping so the cut can never land
// inside a tag and leak an unclosed fragment into the lead.
func clipDescription(desc string) string {
	desc = domain.StripTags(desc)
	runes := []rune(desc)
	if len(runes) <= 200 {
		return desc
	}
	return string(runes[:200]) + "..."
}
