package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"NewsSentinel/internal/ports"
	"NewsSentinel/pkg/logger"
)

// CronScheduler drives poll cycles with robfig/cron. Jobs are wrapped with
// SkipIfStillRunning so cycles never overlap; a tick that arrives while the
// previous cycle is in flight is dropped.
type CronScheduler struct {
	spec string
	loc  *time.Location
	cron *cron.Cron
}

var _ ports.Scheduler = (*CronScheduler)(nil)

// NewCronScheduler builds a scheduler from a cron spec ("@every 15m" or a
// five-field expression) and timezone.
func NewCronScheduler(spec string, loc *time.Location) *CronScheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &CronScheduler{spec: spec, loc: loc}
}

// Start runs the job once eagerly, then registers it with cron. Returns an
// error on an invalid schedule expression.
func (c *CronScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}
	if c.cron != nil {
		return nil
	}

	cronLogger := cron.PrintfLogger(logger.New("cron"))
	c.cron = cron.New(
		cron.WithLocation(c.loc),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger)),
	)

	wrapped := func() {
		if ctx.Err() != nil {
			return
		}
		job(time.Now().In(c.loc))
	}

	if _, err := c.cron.AddFunc(c.spec, wrapped); err != nil {
		c.cron = nil
		return fmt.Errorf("schedule %q: %w", c.spec, err)
	}

	wrapped()
	c.cron.Start()
	return nil
}

// Stop halts scheduling and waits for an in-flight cycle to finish.
func (c *CronScheduler) Stop(ctx context.Context) error {
	if c.cron == nil {
		return nil
	}

	done := c.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	c.cron = nil
	return nil
}
