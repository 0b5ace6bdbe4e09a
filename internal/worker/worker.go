// Package worker executes the background side of the system: tasks pushed by
// the request path and the periodic expiry sweep. Task handling is at-least
// once with no retry queue, so every handler must tolerate duplicates and
// treat missing rows as terminal.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"jobdesk/internal/notification"
	"jobdesk/internal/queue"
	"jobdesk/internal/repository"
)

type Worker struct {
	jobs     repository.JobRepository
	apps     repository.ApplicationRepository
	notifier *notification.Notifier
	logger   *log.Logger
}

func New(jobs repository.JobRepository, apps repository.ApplicationRepository, notifier *notification.Notifier, logger *log.Logger) *Worker {
	if logger == nil {
		logger = log.Default()
	}
	return &Worker{jobs: jobs, apps: apps, notifier: notifier, logger: logger}
}

// Handle dispatches a single queue task. A nil return drops the task; the
// rows a task references may have been deleted between enqueue and execution,
// which is terminal rather than an error.
func (w *Worker) Handle(ctx context.Context, t queue.Task) error {
	switch t.Type {
	case queue.TaskJobView:
		return w.handleJobView(ctx, t)
	case queue.TaskApplicationReceived:
		return w.handleApplicationReceived(ctx, t)
	default:
		w.logger.Printf("[Worker] unknown task type %q dropped", t.Type)
		return nil
	}
}

func (w *Worker) handleJobView(ctx context.Context, t queue.Task) error {
	err := w.jobs.IncrementViews(ctx, t.JobID)
	if errors.Is(err, repository.ErrJobNotFound) {
		w.logger.Printf("[Worker] view for deleted job %s dropped", t.JobID)
		return nil
	}
	return err
}

func (w *Worker) handleApplicationReceived(ctx context.Context, t queue.Task) error {
	details, err := w.apps.GetNotificationDetails(ctx, t.ApplicationID)
	if errors.Is(err, repository.ErrApplicationNotFound) {
		w.logger.Printf("[Worker] notification for missing application %s dropped", t.ApplicationID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load application %s: %w", t.ApplicationID, err)
	}

	w.notifier.ApplicationReceived(ctx, details)
	return nil
}

// StartSweep registers the job-expiry sweep on its own cron scheduler and
// starts it. The returned stop function waits for an in-flight sweep.
func (w *Worker) StartSweep(ctx context.Context, spec string) (stop func(), err error) {
	c := cron.New()
	_, err = c.AddFunc(spec, func() {
		closed, err := w.jobs.CloseExpired(ctx, time.Now().UTC())
		if err != nil {
			w.logger.Printf("[Sweep] close expired jobs: %v", err)
			return
		}
		if closed > 0 {
			w.logger.Printf("[Sweep] closed %d expired jobs", closed)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("register sweep %q: %w", spec, err)
	}

	c.Start()
	return func() {
		<-c.Stop().Done()
	}, nil
}
