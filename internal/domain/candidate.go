package domain

import (
	"html"
	"regexp"
	"strings"
	"time"
)

var tagExpr = regexp.MustCompile(`<[^>]+>`)

// StripTags removes markup tags, decodes entities and trims whitespace.
func StripTags(raw string) string {
	return strings.TrimSpace(html.UnescapeString(tagExpr.ReplaceAllString(raw, "")))
}

// Candidate is one unit of content pulled from a source before filtering.
type Candidate struct {
	// Identity is the stable dedup key, normally the canonical URL.
	Identity    string
	Title       string
	Body        string
	SourceLabel string
	// PublishedAt is zero when the source did not report a timestamp.
	PublishedAt time.Time
}

// Normalize strips markup and surrounding whitespace from title and body.
func (c Candidate) Normalize() Candidate {
	c.Identity = strings.TrimSpace(c.Identity)
	c.Title = StripTags(c.Title)
	c.Body = StripTags(c.Body)
	return c
}

// Complete reports whether the candidate carries everything the pipeline
// needs after normalization.
func (c Candidate) Complete() bool {
	return c.Identity != "" && c.Title != "" && c.Body != ""
}

// Expired reports whether the candidate is older than the recency window.
// An unknown publication time never expires; an item exactly at the window
// boundary is still fresh.
func (c Candidate) Expired(now time.Time, window time.Duration) bool {
	if c.PublishedAt.IsZero() || window <= 0 {
		return false
	}
	return now.Sub(c.PublishedAt) > window
}

// Lead derives the short text shown under the title: the first sentence of
// the body, or its first 150 characters when no sentence break exists.
func (c Candidate) Lead() string {
	body := strings.TrimSpace(c.Body)
	if idx := strings.Index(body, ". "); idx > 0 {
		return body[:idx+1]
	}
	runes := []rune(body)
	if len(runes) <= 150 {
		return body
	}
	return string(runes[:150]) + "..."
}

// SeenRecord is the persisted marker preventing re-delivery of an identity.
// The title is denormalized for auditing only.
type SeenRecord struct {
	Identity  string
	Title     string
	CreatedAt time.Time
}

// Notification is the ephemeral message built for one delivered candidate.
type Notification struct {
	Prefix    string
	Title     string
	Lead      string
	SourceURL string
}
