package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"NewsSentinel/internal/domain"
	"NewsSentinel/internal/ports"
)

const seenTable = "published_articles"

// PostgresStore persists seen records into Postgres. It is a pure façade
// over the database and holds no in-memory state.
type PostgresStore struct {
	db      *sql.DB
	builder sq.StatementBuilderType
	logger  *slog.Logger
}

var _ ports.SeenStore = (*PostgresStore)(nil)

// NewPostgresStore wires a sql.DB implementation.
func NewPostgresStore(db *sql.DB, logger *slog.Logger) *PostgresStore {
	return &PostgresStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger:  logger,
	}
}

// HasSeen reports whether the identity is already recorded. Lookup failures
// degrade to "not seen": the pipeline keeps delivering during a store outage
// at the risk of a duplicate notification.
func (s *PostgresStore) HasSeen(ctx context.Context, identity string) bool {
	if s.db == nil || identity == "" {
		return false
	}

	query, args, err := s.builder.
		Select("1").
		From(seenTable).
		Where(sq.Eq{"url": identity}).
		Limit(1).
		ToSql()
	if err != nil {
		s.warn("build seen lookup", identity, err)
		return false
	}

	var one int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	switch {
	case err == nil:
		return true
	case errors.Is(err, sql.ErrNoRows):
		return false
	default:
		s.warn("seen lookup failed, assuming not seen", identity, err)
		return false
	}
}

// MarkSeen records the identity. The record is insert-only; a concurrent or
// repeated insert of the same identity is a no-op.
func (s *PostgresStore) MarkSeen(ctx context.Context, record domain.SeenRecord) error {
	if s.db == nil {
		return fmt.Errorf("seen store is not connected")
	}

	query, args, err := s.builder.
		Insert(seenTable).
		Columns("url", "title").
		Values(record.Identity, record.Title).
		Suffix("ON CONFLICT (url) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build seen insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert seen record: %w", err)
	}

	return nil
}

// EnsureSchema creates the seen-record table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("seen store is not connected")
	}

	query := `CREATE TABLE IF NOT EXISTS ` + seenTable + ` (
                url        TEXT PRIMARY KEY,
                title      TEXT NOT NULL DEFAULT '',
                created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
              )`

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure seen schema: %w", err)
	}
	return nil
}

// Ping verifies store connectivity; used as the startup probe.
func (s *PostgresStore) Ping(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("seen store is not connected")
	}
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping seen store: %w", err)
	}
	return nil
}

func (s *PostgresStore) warn(msg, identity string, err error) {
	if s.logger != nil {
		s.logger.Warn(msg, "identity", identity, "error", err)
	}
}
