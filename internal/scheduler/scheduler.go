package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Backfiller classifies messages that have no sentiment record yet
type Backfiller interface {
	Backfill(ctx context.Context, batch int) (int, error)
}

// Service runs the periodic sentiment backfill
type Service struct {
	backfiller Backfiller
	schedule   string
	batch      int
	timeout    time.Duration
	cron       *cron.Cron
}

// NewService creates a new scheduler service. The schedule uses the
// six-field cron format with seconds.
func NewService(backfiller Backfiller, schedule string, batch int) *Service {
	return &Service{
		backfiller: backfiller,
		schedule:   schedule,
		batch:      batch,
		timeout:    2 * time.Minute,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
	}
}

// Start registers the backfill job and starts the scheduler.
// An empty schedule leaves the scheduler idle.
func (s *Service) Start() error {
	if s.schedule == "" {
		logrus.Info("BACKFILL_SCHEDULE empty, sentiment backfill disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.run); err != nil {
		return err
	}

	s.cron.Start()
	logrus.WithField("schedule", s.schedule).Info("Sentiment backfill scheduler started")
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *Service) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
		logrus.Info("Scheduler stopped")
	}
}

func (s *Service) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.backfiller.Backfill(ctx, s.batch)
	if err != nil {
		logrus.WithError(err).Error("Scheduled sentiment backfill failed")
		return
	}
	if n > 0 {
		logrus.WithField("analysed", n).Info("Scheduled sentiment backfill completed")
	}
}
