package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/ranch/internal/config"
	"github.com/mamadbah2/ranch/internal/service/reporting"
)

// DigestGenerator produces the weekly digest.
type DigestGenerator interface {
	GenerateWeeklyDigest(ctx context.Context, now time.Time) (*reporting.Digest, error)
}

// Notifier delivers a text message.
type Notifier interface {
	SendText(ctx context.Context, to, body string) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	schedule  string
	reporting DigestGenerator
	notifier  Notifier
	recipient string
	logger    *zap.Logger
	now       func() time.Time
}

// NewScheduler creates a scheduler running in the configured timezone. A nil
// notifier or empty recipient means digests are only logged.
func NewScheduler(cfg config.Config, reportingSvc DigestGenerator, notifier Notifier, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Reporting.Timezone, err)
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		schedule:  cfg.Reporting.CronSchedule,
		reporting: reportingSvc,
		notifier:  notifier,
		recipient: cfg.WhatsApp.DigestTo,
		logger:    logger,
		now:       func() time.Time { return time.Now().In(loc) },
	}, nil
}

// Start registers the weekly digest and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.sendWeeklyDigest); err != nil {
		return fmt.Errorf("schedule weekly digest: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sendWeeklyDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.RunDigest(ctx); err != nil {
		s.logger.Error("weekly digest failed", zap.Error(err))
	}
}

// RunDigest generates the digest now and delivers it when a notifier and a
// recipient are configured.
func (s *Scheduler) RunDigest(ctx context.Context) error {
	s.logger.Info("generating weekly digest")

	digest, err := s.reporting.GenerateWeeklyDigest(ctx, s.now())
	if err != nil {
		return fmt.Errorf("generate weekly digest: %w", err)
	}

	msg := digest.Message()
	if s.notifier == nil || s.recipient == "" {
		s.logger.Info("weekly digest not delivered, no recipient configured", zap.String("digest", msg))
		return nil
	}

	if err := s.notifier.SendText(ctx, s.recipient, msg); err != nil {
		return fmt.Errorf("send weekly digest: %w", err)
	}
	s.logger.Info("weekly digest sent", zap.Int("analyses", digest.Analyses))
	return nil
}
