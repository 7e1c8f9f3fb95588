package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"NewsSentinel/internal/config"
	"NewsSentinel/internal/domain"
	"NewsSentinel/internal/ports"
	"NewsSentinel/internal/source"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Registry   *source.Registry
	Sources    []config.SourceConfig
	Store      ports.SeenStore
	Filter     ports.RelevanceFilter
	Translator ports.Translator
	Notifier   ports.Notifier
	TargetLang string
	// RecencyWindow drops candidates older than this; zero disables the check.
	RecencyWindow time.Duration
	// PacingDelay is slept after each successful delivery; zero in tests.
	PacingDelay time.Duration
	Logger      *slog.Logger
}

// Pipeline runs one poll cycle: every configured source in order, every
// candidate through the per-item checks, delivered at most once per identity.
type Pipeline struct {
	registry      *source.Registry
	sources       []config.SourceConfig
	store         ports.SeenStore
	filter        ports.RelevanceFilter
	translator    ports.Translator
	notifier      ports.Notifier
	targetLang    string
	recencyWindow time.Duration
	pacingDelay   time.Duration
	logger        *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		registry:      deps.Registry,
		sources:       deps.Sources,
		store:         deps.Store,
		filter:        deps.Filter,
		translator:    deps.Translator,
		notifier:      deps.Notifier,
		targetLang:    deps.TargetLang,
		recencyWindow: deps.RecencyWindow,
		pacingDelay:   deps.PacingDelay,
		logger:        logger,
	}
}

// RunCycle performs one complete pass over all configured sources. Sources
// are processed strictly in configured order; a failing source is logged and
// the cycle continues with the rest. The error return is reserved for an
// unusable pipeline and never reflects per-item failures.
func (p *Pipeline) RunCycle(ctx context.Context, now time.Time) error {
	logger := p.logger.With("cycle", uuid.NewString())
	logger.Info("poll cycle started", "sources", len(p.sources))

	var delivered, skipped int
	for _, src := range p.sources {
		strategy, err := p.registry.Resolve(src.Strategy)
		if err != nil {
			logger.Error("source misconfigured", "source", src.Name, "error", err)
			continue
		}

		candidates, err := strategy.Fetch(ctx, fetchRequest(src))
		if err != nil {
			logger.Error("source fetch failed", "source", src.Name, "error", err)
			continue
		}

		for _, candidate := range candidates {
			if processed := p.processCandidate(ctx, logger, src, candidate, now); processed {
				delivered++
			} else {
				skipped++
			}
		}
	}

	logger.Info("poll cycle finished", "delivered", delivered, "skipped", skipped)
	return nil
}

// processCandidate walks one candidate through the sequential checks and
// reports whether a delivery was attempted. Every predicate failure is a
// silent skip; collaborator failures past the dedup check are logged and the
// item still advances (translation degrades, delivery is best effort, the
// seen record is written regardless of delivery outcome).
func (p *Pipeline) processCandidate(ctx context.Context, logger *slog.Logger, src config.SourceConfig, raw domain.Candidate, now time.Time) bool {
	candidate := raw.Normalize()

	if candidate.Identity == "" {
		return false
	}
	if candidate.Expired(now, p.recencyWindow) {
		return false
	}
	if !matchesPathFilter(candidate.Identity, src.PathFilter) {
		return false
	}
	if !candidate.Complete() {
		return false
	}
	if p.store.HasSeen(ctx, candidate.Identity) {
		return false
	}
	if !src.SkipRelevance && !p.filter.IsRelevant(candidate.Title+" "+candidate.Body) {
		return false
	}

	msg := domain.Notification{
		Prefix:    candidate.SourceLabel,
		Title:     p.translate(ctx, logger, candidate.Title),
		Lead:      p.translate(ctx, logger, candidate.Lead()),
		SourceURL: candidate.Identity,
	}

	deliverErr := p.notifier.Deliver(ctx, msg)
	if deliverErr != nil {
		logger.Error("delivery failed", "identity", candidate.Identity, "error", deliverErr)
	}

	// Recorded even when every channel failed: a missed notification is
	// preferred over a future duplicate.
	if err := p.store.MarkSeen(ctx, domain.SeenRecord{Identity: candidate.Identity, Title: candidate.Title}); err != nil {
		logger.Error("mark seen failed", "identity", candidate.Identity, "error", err)
	}

	if deliverErr == nil && p.pacingDelay > 0 {
		select {
		case <-time.After(p.pacingDelay):
		case <-ctx.Done():
		}
	}

	return true
}

func (p *Pipeline) translate(ctx context.Context, logger *slog.Logger, text string) string {
	if p.translator == nil {
		return text
	}
	translated, err := p.translator.Translate(ctx, text, p.targetLang)
	if err != nil {
		logger.Warn("translation failed, passing original through", "error", err)
		return text
	}
	return translated
}

// matchesPathFilter keeps the identity when no filter is configured or when
// it contains at least one of the configured substrings.
func matchesPathFilter(identity string, filter []string) bool {
	if len(filter) == 0 {
		return true
	}
	lowered := strings.ToLower(identity)
	for _, part := range filter {
		if strings.Contains(lowered, strings.ToLower(part)) {
			return true
		}
	}
	return false
}

func fetchRequest(src config.SourceConfig) source.Request {
	return source.Request{
		Name:         src.Name,
		URL:          src.URL,
		Selector:     src.Selector,
		BaseURL:      src.BaseURL,
		Lead:         src.Lead,
		Title:        src.Title,
		HostContains: src.HostContains,
		HrefContains: src.HrefContains,
		Limit:        src.Limit,
	}
}
