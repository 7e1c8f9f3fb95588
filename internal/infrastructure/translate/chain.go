package translate

import (
	"context"
	"log/slog"
	"strings"

	"NewsSentinel/internal/ports"
)

// Chain tries each provider in order and degrades to the original text when
// all of them fail, so a translation outage never stalls the pipeline.
type Chain struct {
	providers []ports.Translator
	logger    *slog.Logger
}

var _ ports.Translator = (*Chain)(nil)

// NewChain wires providers in fallback order.
func NewChain(logger *slog.Logger, providers ...ports.Translator) *Chain {
	return &Chain{providers: providers, logger: logger}
}

// Translate returns the first successful provider result. Empty input short
// circuits without a network call; total provider failure returns the input
// unchanged with a nil error.
func (c *Chain) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	for i, provider := range c.providers {
		translated, err := provider.Translate(ctx, text, targetLang)
		if err == nil {
			return translated, nil
		}
		if c.logger != nil {
			c.logger.Warn("translation provider failed", "provider", i, "error", err)
		}
	}

	return text, nil
}
