package app

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsSentinel/internal/config"
	"NewsSentinel/internal/infrastructure/health"
	"NewsSentinel/internal/infrastructure/scheduler"
	"NewsSentinel/internal/usecase"
)

func TestRunClosesStoreWhenSchedulerFailsToStart(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	application := &Application{
		cfg:    config.Config{},
		logger: slog.Default(),
		db:     db,
		runner: usecase.NewRunner(
			scheduler.NewCronScheduler("not a schedule", time.UTC),
			usecase.NewPipeline(usecase.PipelineDeps{}),
		),
		health: health.NewServer(0, nil),
	}

	err = application.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start scheduler")
	assert.NoError(t, mock.ExpectationsWereMet())
}
