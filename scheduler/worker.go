package scheduler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Worker drives the scheduler on a fixed interval for deployments without an
// external cron. Each tick is one full Run; ticks do not pile up because the
// ticker drops missed beats, and the lead claim keeps an overlapping
// external trigger safe anyway.
type Worker struct {
	Scheduler *Scheduler
	Interval  time.Duration
	Logger    *logrus.Logger
}

func NewWorker(s *Scheduler, interval time.Duration, logger *logrus.Logger) *Worker {
	return &Worker{
		Scheduler: s,
		Interval:  interval,
		Logger:    logger,
	}
}

func (w *Worker) Start(ctx context.Context) {
	// Initial delay to let the server start up
	time.Sleep(5 * time.Second)

	w.Logger.WithField("interval", w.Interval.String()).Info("scheduler worker started")

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("scheduler worker shutting down...")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *Worker) tick(ctx context.Context) {
	summary, err := w.Scheduler.Run(ctx)
	if err != nil {
		w.Logger.WithError(err).Error("scheduler run failed")
		return
	}
	w.Logger.WithFields(logrus.Fields{
		"campaigns_seen": summary.CampaignsSeen,
		"eligible":       summary.Eligible,
		"dispatched":     summary.Dispatched,
		"skipped":        summary.Skipped,
		"failed":         summary.Failed,
	}).Info("scheduler run completed")
}
