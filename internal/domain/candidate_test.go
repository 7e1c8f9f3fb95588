package domain

import (
	"strings"
	"testing"
	"time"
)

func TestNormalizeStripsMarkup(t *testing.T) {
	t.Parallel()

	c := Candidate{
		Identity: "  https://x/a ",
		Title:    "<b>Breaking</b> news",
		Body:     "<p>Moscow announced &amp; confirmed.</p>",
	}.Normalize()

	if c.Identity != "https://x/a" {
		t.Fatalf("unexpected identity: %q", c.Identity)
	}
	if c.Title != "Breaking news" {
		t.Fatalf("unexpected title: %q", c.Title)
	}
	if c.Body != "Moscow announced & confirmed." {
		t.Fatalf("unexpected body: %q", c.Body)
	}
}

func TestCompleteRequiresAllFields(t *testing.T) {
	t.Parallel()

	base := Candidate{Identity: "https://x/a", Title: "t", Body: "b"}
	if !base.Complete() {
		t.Fatal("expected complete candidate")
	}

	for _, c := range []Candidate{
		{Title: "t", Body: "b"},
		{Identity: "https://x/a", Body: "b"},
		{Identity: "https://x/a", Title: "t"},
	} {
		if c.Complete() {
			t.Fatalf("expected incomplete candidate: %+v", c)
		}
	}
}

func TestExpiredBoundaryIsInclusive(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	window := 7 * 24 * time.Hour

	exactlyAtBoundary := Candidate{PublishedAt: now.Add(-window)}
	if exactlyAtBoundary.Expired(now, window) {
		t.Fatal("item exactly at the window boundary must not be expired")
	}

	oneSecondPast := Candidate{PublishedAt: now.Add(-window - time.Second)}
	if !oneSecondPast.Expired(now, window) {
		t.Fatal("item one second past the boundary must be expired")
	}

	unknown := Candidate{}
	if unknown.Expired(now, window) {
		t.Fatal("item without a publication time never expires")
	}
}

func TestLeadPrefersFirstSentence(t *testing.T) {
	t.Parallel()

	c := Candidate{Body: "Moscow announced new measures. More details follow tomorrow."}
	if lead := c.Lead(); lead != "Moscow announced new measures." {
		t.Fatalf("unexpected lead: %q", lead)
	}
}

func TestLeadClipsLongSingleSentence(t *testing.T) {
	t.Parallel()

	c := Candidate{Body: strings.Repeat("abcde", 40)}
	lead := c.Lead()
	if len([]rune(lead)) != 153 {
		t.Fatalf("expected clipped lead of 153 runes, got %d", len([]rune(lead)))
	}
}

func TestLeadKeepsShortBody(t *testing.T) {
	t.Parallel()

	c := Candidate{Body: "Short summary without sentence break"}
	if lead := c.Lead(); lead != c.Body {
		t.Fatalf("unexpected lead: %q", lead)
	}
}
