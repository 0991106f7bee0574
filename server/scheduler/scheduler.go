// Package scheduler fires the daily purge on a cron schedule.
package scheduler

import (
	"context"
	"time"

	"github.com/adhocore/gronx"
	"github.com/ericzzh/telegram-deletewatch/server/bot"
	"github.com/pkg/errors"
)

// retryDelay is how long to wait when the next tick cannot be computed.
const retryDelay = 30 * time.Second

// Scheduler hands a Job to its worker at every cron tick.
type Scheduler struct {
	cron     string
	location *time.Location
	worker   *Worker
	logger   bot.Logger

	now   func() time.Time
	after func(time.Duration) <-chan time.Time
}

// New creates a scheduler for cron evaluated in location.
func New(cron string, location *time.Location, worker *Worker, logger bot.Logger) (*Scheduler, error) {
	if !gronx.New().IsValid(cron) {
		return nil, errors.Errorf("invalid purge cron expression: %s", cron)
	}
	if location == nil {
		location = time.UTC
	}

	return &Scheduler{
		cron:     cron,
		location: location,
		worker:   worker,
		logger:   logger,
		now:      time.Now,
		after:    time.After,
	}, nil
}

func (scheduler *Scheduler) Name() string {
	return JobName + "Scheduler"
}

// NextScheduleTime returns the first tick strictly after now.
func (scheduler *Scheduler) NextScheduleTime(now time.Time) (time.Time, error) {
	next, err := gronx.NextTickAfter(scheduler.cron, now.In(scheduler.location), false)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "failed to compute next tick for %q", scheduler.cron)
	}
	return next, nil
}

// Run starts the worker and blocks until ctx is done, dispatching one job per tick.
func (scheduler *Scheduler) Run(ctx context.Context) {
	go scheduler.worker.Run()
	defer scheduler.worker.Stop()

	for {
		now := scheduler.now()
		next, err := scheduler.NextScheduleTime(now)
		if err != nil {
			scheduler.logger.Errorf("%s: %v", scheduler.Name(), err)
			select {
			case <-scheduler.after(retryDelay):
				continue
			case <-ctx.Done():
				return
			}
		}

		scheduler.logger.Debugf("%s: next purge at %s", scheduler.Name(), next.Format(time.RFC3339))

		select {
		case <-scheduler.after(next.Sub(now)):
		case <-ctx.Done():
			scheduler.logger.Debugf("%s: stopping", scheduler.Name())
			return
		}

		select {
		case scheduler.worker.JobChannel() <- Job{Scheduled: next}:
		case <-ctx.Done():
			return
		}
	}
}
