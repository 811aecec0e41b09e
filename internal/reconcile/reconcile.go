// Package reconcile periodically re-derives wishlist availability from the
// reservation ledger so entries converge even if an event was missed.
package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/XCypherusX/tbs-api/internal/logger"
)

const runTimeout = time.Minute

type Reconciler interface {
	Reconcile(ctx context.Context) (int64, error)
}

// QueueGauge refreshes the notification queue metric on each tick.
type QueueGauge interface {
	QueueLength(ctx context.Context) int64
}

type Job struct {
	wishlist Reconciler
	queue    QueueGauge
	cron     *cron.Cron
}

func New(wishlist Reconciler, queue QueueGauge) *Job {
	return &Job{
		wishlist: wishlist,
		queue:    queue,
		cron:     cron.New(),
	}
}

// Start schedules the job with a standard cron expression or a descriptor such as
// "@every 5m".
func (j *Job) Start(schedule string) error {
	if _, err := j.cron.AddFunc(schedule, func() { _ = j.Run(context.Background()) }); err != nil {
		return fmt.Errorf("invalid reconcile schedule %q: %w", schedule, err)
	}
	j.cron.Start()
	logger.Info("reconciler scheduled", "schedule", schedule)
	return nil
}

// Stop waits for a running job to finish or ctx to expire.
func (j *Job) Stop(ctx context.Context) {
	select {
	case <-j.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (j *Job) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	started := time.Now()
	n, err := j.wishlist.Reconcile(ctx)
	if err != nil {
		logger.Error("wishlist reconcile failed", "error", err)
		return err
	}

	if j.queue != nil {
		j.queue.QueueLength(ctx)
	}

	logger.Info("wishlist reconciled", "updated", n, "duration", time.Since(started).String())
	return nil
}
