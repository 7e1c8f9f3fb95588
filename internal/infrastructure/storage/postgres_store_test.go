package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsSentinel/internal/domain"
)

func newStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewPostgresStore(db, nil), mock
}

func TestHasSeenFound(t *testing.T) {
	t.Parallel()

	store, mock := newStore(t)
	mock.ExpectQuery(`SELECT 1 FROM published_articles`).
		WithArgs("https://x/a").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	assert.True(t, store.HasSeen(context.Background(), "https://x/a"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasSeenNotFound(t *testing.T) {
	t.Parallel()

	store, mock := newStore(t)
	mock.ExpectQuery(`SELECT 1 FROM published_articles`).
		WithArgs("https://x/b").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	assert.False(t, store.HasSeen(context.Background(), "https://x/b"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasSeenFailsOpenOnQueryError(t *testing.T) {
	t.Parallel()

	store, mock := newStore(t)
	mock.ExpectQuery(`SELECT 1 FROM published_articles`).
		WithArgs("https://x/c").
		WillReturnError(errors.New("connection reset"))

	assert.False(t, store.HasSeen(context.Background(), "https://x/c"),
		"lookup errors degrade to not-seen")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSeenInsertsRecord(t *testing.T) {
	t.Parallel()

	store, mock := newStore(t)
	mock.ExpectExec(`INSERT INTO published_articles \(url,title\) VALUES \(\$1,\$2\) ON CONFLICT \(url\) DO NOTHING`).
		WithArgs("https://x/a", "Russia imposes new sanctions").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.MarkSeen(context.Background(), domain.SeenRecord{
		Identity: "https://x/a",
		Title:    "Russia imposes new sanctions",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSeenDuplicateIsNoOp(t *testing.T) {
	t.Parallel()

	store, mock := newStore(t)
	mock.ExpectExec(`INSERT INTO published_articles`).
		WithArgs("https://x/a", "t").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.MarkSeen(context.Background(), domain.SeenRecord{Identity: "https://x/a", Title: "t"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSeenPropagatesInsertError(t *testing.T) {
	t.Parallel()

	store, mock := newStore(t)
	mock.ExpectExec(`INSERT INTO published_articles`).
		WithArgs("https://x/a", "t").
		WillReturnError(errors.New("disk full"))

	err := store.MarkSeen(context.Background(), domain.SeenRecord{Identity: "https://x/a", Title: "t"})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	t.Parallel()

	store, mock := newStore(t)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS published_articles`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPing(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := NewPostgresStore(db, nil)
	mock.ExpectPing()
	require.NoError(t, store.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("unreachable"))
	require.Error(t, store.Ping(context.Background()))
}
