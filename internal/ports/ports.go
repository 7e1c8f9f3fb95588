package ports

import (
	"context"
	"time"

	"NewsSentinel/internal/domain"
)

// SeenStore persists delivered identities for deduplication.
type SeenStore interface {
	// HasSeen reports whether the identity was already recorded. Lookup
	// failures degrade to "not seen" inside the implementation, so the
	// pipeline keeps moving on a store outage.
	HasSeen(ctx context.Context, identity string) bool
	MarkSeen(ctx context.Context, record domain.SeenRecord) error
	Ping(ctx context.Context) error
}

// Translator converts free text into the configured target language.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// Notifier delivers one notification to every configured channel.
type Notifier interface {
	Deliver(ctx context.Context, msg domain.Notification) error
}

// RelevanceFilter classifies candidate text as worth notifying about.
type RelevanceFilter interface {
	IsRelevant(text string) bool
}

// Scheduler controls when poll cycles execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
