package source

import (
	"context"
	"fmt"

	"NewsSentinel/internal/domain"
)

// Request carries all parameters required to fetch one configured source.
type Request struct {
	// Name becomes the SourceLabel on every yielded candidate.
	Name string
	URL  string
	// Selector is the CSS selector page strategies extract anchors from.
	Selector string
	// BaseURL resolves relative hrefs on scraped pages.
	BaseURL string
	// Lead is a fixed lead text for pages that expose titles only.
	Lead string
	// Title overrides the anchor text with a fixed title; used for pages
	// whose links carry no usable text.
	Title string
	// HostContains narrows scraped links to one host; empty means no guard.
	HostContains string
	// HrefContains keeps only links whose href contains every listed
	// substring (case-insensitive).
	HrefContains []string
	// Limit caps the number of candidates a strategy yields.
	Limit int
}

// Source captures a single fetch strategy (rss, page, metaculus).
// A strategy may return partial results alongside a nil error; a source
// outage surfaces as an error and must not take other sources down.
type Source interface {
	Name() string
	Fetch(ctx context.Context, req Request) ([]domain.Candidate, error)
}

// Registry keeps a mapping from strategy names to their implementations.
type Registry struct {
	strategies map[string]Source
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: map[string]Source{}}
}

// Register adds or replaces a strategy implementation.
func (r *Registry) Register(src Source) {
	if r.strategies == nil {
		r.strategies = map[string]Source{}
	}
	r.strategies[src.Name()] = src
}

// Resolve returns a strategy by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Source, error) {
	if src, ok := r.strategies[name]; ok {
		return src, nil
	}
	return nil, fmt.Errorf("source strategy %s is not registered", name)
}
