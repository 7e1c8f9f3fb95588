package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"NewsSentinel/internal/ports"
)

const myMemoryEndpoint = "https://api.mymemory.translated.net/get"

// MyMemoryClient is the secondary translation provider.
type MyMemoryClient struct {
	endpoint   string
	httpClient *http.Client
}

var _ ports.Translator = (*MyMemoryClient)(nil)

// NewMyMemoryClient builds the fallback provider. An empty endpoint selects
// the public MyMemory API.
func NewMyMemoryClient(endpoint string) *MyMemoryClient {
	if endpoint == "" {
		endpoint = myMemoryEndpoint
	}
	return &MyMemoryClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Translate requests an English-to-target translation. MyMemory has no
// auto-detection, so English is assumed as the source language.
func (c *MyMemoryClient) Translate(ctx context.Context, text, targetLang string) (string, error) {
	params := url.Values{}
	params.Set("q", text)
	params.Set("langpair", "en|"+targetLang)

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
		return "", fmt.Errorf("mymemory error: %s", resp.Status)
	}

	var payload struct {
		ResponseData struct {
			TranslatedText string `json:"translatedText"`
		} `json:"responseData"`
		ResponseStatus json.Number `json:"responseStatus"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if payload.ResponseStatus.String() != "200" {
		return "", fmt.Errorf("mymemory status %s", payload.ResponseStatus)
	}

	translated := strings.TrimSpace(payload.ResponseData.TranslatedText)
	if translated == "" {
		return "", fmt.Errorf("mymemory returned empty translation")
	}
	return translated, nil
}
