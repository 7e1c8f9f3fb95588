package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"NewsSentinel/internal/source"
)

const samplePage = `<html><body>
  <div class="question-title"><a href="/questions/1">Will sanctions expand this year?</a></div>
  <div class="question-title"><a href="https://other.example.net/q/2">Offsite question</a></div>
  <div class="question-title"><a href="mailto:team@example.org">Contact</a></div>
  <div class="question-title"><a href="/questions/3">   </a></div>
  <li><a href="/unrelated">Elsewhere</a></li>
</body></html>`

func TestPageSourceFetch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(samplePage))
	}))
	defer server.Close()

	src := NewPageSource(server.Client())
	req := source.Request{
		Name:     "GOODJ",
		URL:      server.URL,
		Selector: ".question-title a",
		BaseURL:  "https://goodjudgment.com",
		Lead:     "Superforecasting question",
	}

	candidates, err := src.Fetch(context.Background(), req)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}

	if candidates[0].Identity != "https://goodjudgment.com/questions/1" {
		t.Fatalf("relative href not resolved: %s", candidates[0].Identity)
	}
	if candidates[0].Title != "Will sanctions expand this year?" {
		t.Fatalf("unexpected title: %s", candidates[0].Title)
	}
	if candidates[0].Body != "Superforecasting question" {
		t.Fatalf("unexpected lead body: %s", candidates[0].Body)
	}
	if candidates[1].Identity != "https://other.example.net/q/2" {
		t.Fatalf("absolute href must pass through: %s", candidates[1].Identity)
	}
}

func TestPageSourceHostGuard(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(samplePage))
	}))
	defer server.Close()

	src := NewPageSource(server.Client())
	req := source.Request{
		Name:         "GOODJ",
		URL:          server.URL,
		Selector:     ".question-title a",
		BaseURL:      "https://goodjudgment.com",
		HostContains: "goodjudgment.com",
		Lead:         "Superforecasting question",
	}

	candidates, err := src.Fetch(context.Background(), req)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if len(candidates) != 1 {
		t.Fatalf("expected host guard to drop offsite link, got %d candidates", len(candidates))
	}
}

func TestPageSourceFixedTitleAndHrefGuards(t *testing.T) {
	t.Parallel()

	page := `<html><body>
	  <a href="/newsroom">Newsroom</a>
	  <a href="/gt2040-home">About</a>
	  <a href="/index.php/global-trends-home">Read the report</a>
	  <a href="/files/GlobalTrends_2040.pdf">Download</a>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	src := NewPageSource(server.Client())
	req := source.Request{
		Name:         "DNI",
		URL:          server.URL,
		Selector:     "a",
		BaseURL:      "https://www.dni.gov",
		HrefContains: []string{"global", "trend"},
		Title:        "DNI Global Trends Report",
		Lead:         "US intelligence forecast",
		Limit:        1,
	}

	candidates, err := src.Fetch(context.Background(), req)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if len(candidates) != 1 {
		t.Fatalf("expected the first matching link only, got %d candidates", len(candidates))
	}
	if candidates[0].Identity != "https://www.dni.gov/index.php/global-trends-home" {
		t.Fatalf("unexpected identity: %s", candidates[0].Identity)
	}
	if candidates[0].Title != "DNI Global Trends Report" {
		t.Fatalf("anchor text must be replaced by the fixed title: %s", candidates[0].Title)
	}
	if candidates[0].Body != "US intelligence forecast" {
		t.Fatalf("unexpected lead body: %s", candidates[0].Body)
	}
}

func TestPageSourceNonOKStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	src := NewPageSource(server.Client())
	if _, err := src.Fetch(context.Background(), source.Request{Name: "X", URL: server.URL, Selector: "a"}); err == nil {
		t.Fatal("expected error for non-200 page")
	}
}
