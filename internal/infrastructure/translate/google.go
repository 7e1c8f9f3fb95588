package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"NewsSentinel/internal/ports"
)

const googleEndpoint = "https://translate.googleapis.com/translate_a/single"

// GoogleClient talks to the unauthenticated Google translate endpoint.
type GoogleClient struct {
	endpoint   string
	httpClient *http.Client
}

var _ ports.Translator = (*GoogleClient)(nil)

// NewGoogleClient builds the primary translation provider. An empty endpoint
// selects the public Google endpoint.
func NewGoogleClient(endpoint string) *GoogleClient {
	if endpoint == "" {
		endpoint = googleEndpoint
	}
	return &GoogleClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Translate requests a translation with source-language auto-detection.
func (c *GoogleClient) Translate(ctx context.Context, text, targetLang string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", "auto")
	params.Set("tl", targetLang)
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("google translate error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	// The gtx response is nested arrays: [[[translated, original, ...], ...], ...].
	var raw []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("empty translate response")
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(raw[0], &segments); err != nil {
		return "", fmt.Errorf("decode segments: %w", err)
	}

	var sb strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(seg[0], &part); err != nil {
			continue
		}
		sb.WriteString(part)
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("translate response contained no text")
	}
	return sb.String(), nil
}
