package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"NewsSentinel/internal/domain"
	"NewsSentinel/internal/source"
)

// RSSSource fetches one RSS or Atom feed and normalizes its entries into
// candidates. Entries without a link are skipped silently.
type RSSSource struct {
	parser *gofeed.Parser
}

var _ source.Source = (*RSSSource)(nil)

// NewRSSSource wires an HTTP client; a nil client gets a 10s timeout default.
func NewRSSSource(client *http.Client) *RSSSource {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = "NewsSentinel/1.0"
	return &RSSSource{parser: parser}
}

// Name identifies the strategy inside the registry.
func (s *RSSSource) Name() string {
	return "rss"
}

// Fetch downloads and parses the configured feed URL.
func (s *RSSSource) Fetch(ctx context.Context, req source.Request) ([]domain.Candidate, error) {
	parsed, err := s.parser.ParseURLWithContext(req.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", req.URL, err)
	}

	candidates := make([]domain.Candidate, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		if entry == nil || entry.Link == "" {
			continue
		}

		var publishedAt time.Time
		if entry.PublishedParsed != nil {
			publishedAt = entry.PublishedParsed.UTC()
		} else if entry.UpdatedParsed != nil {
			publishedAt = entry.UpdatedParsed.UTC()
		}

		body := entry.Description
		if body == "" {
			body = entry.Content
		}

		candidates = append(candidates, domain.Candidate{
			Identity:    entry.Link,
			Title:       entry.Title,
			Body:        body,
			SourceLabel: req.Name,
			PublishedAt: publishedAt,
		})
	}

	return candidates, nil
}
