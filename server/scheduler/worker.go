package scheduler

import (
	"context"
	"time"

	"github.com/ericzzh/telegram-deletewatch/server/app"
	"github.com/ericzzh/telegram-deletewatch/server/bot"
)

const (
	JobName = "DailyPurge"

	PurgeOK     = "ok"
	PurgeFailed = "failed"
)

// Job is one scheduled purge.
type Job struct {
	Scheduled time.Time
}

// PurgeObserver is told the result of each purge. metrics.Metrics implements it.
type PurgeObserver interface {
	ObservePurge(result string)
}

// Worker runs purge jobs one at a time.
type Worker struct {
	name     string
	stop     chan bool
	stopped  chan bool
	jobs     chan Job
	purge    app.PurgeService
	logger   bot.Logger
	observer PurgeObserver
	timeout  time.Duration
}

// NewWorker creates a worker. observer may be nil.
func NewWorker(purge app.PurgeService, logger bot.Logger, observer PurgeObserver) *Worker {
	return &Worker{
		name:     JobName,
		stop:     make(chan bool, 1),
		stopped:  make(chan bool, 1),
		jobs:     make(chan Job),
		purge:    purge,
		logger:   logger,
		observer: observer,
		timeout:  5 * time.Minute,
	}
}

// Run blocks, executing jobs until Stop is called.
func (worker *Worker) Run() {
	worker.logger.Debugf("Worker started. worker: %s", worker.name)

	defer func() {
		worker.logger.Debugf("Worker finished. worker: %s", worker.name)
		worker.stopped <- true
	}()

	for {
		select {
		case <-worker.stop:
			worker.logger.Debugf("Worker received stop signal. worker: %s", worker.name)
			return
		case job := <-worker.jobs:
			worker.DoJob(job)
		}
	}
}

// Stop asks Run to return and waits for it.
func (worker *Worker) Stop() {
	worker.logger.Debugf("Worker stopping. worker: %s", worker.name)
	worker.stop <- true
	<-worker.stopped
}

// JobChannel is where the scheduler hands over due jobs.
func (worker *Worker) JobChannel() chan<- Job {
	return worker.jobs
}

// DoJob purges once. A failure is logged and left for the next tick.
func (worker *Worker) DoJob(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), worker.timeout)
	defer cancel()

	if _, err := worker.purge.Purge(ctx); err != nil {
		worker.logger.Errorf("Worker: purge failed. worker: %s, scheduled: %s, error: %v",
			worker.name, job.Scheduled.Format(time.RFC3339), err)
		worker.observe(PurgeFailed)
		return
	}

	worker.logger.Infof("Worker: job is complete. worker: %s, scheduled: %s", worker.name, job.Scheduled.Format(time.RFC3339))
	worker.observe(PurgeOK)
}

func (worker *Worker) observe(result string) {
	if worker.observer != nil {
		worker.observer.ObservePurge(result)
	}
}
