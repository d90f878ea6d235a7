package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ReminderWorker periodically sends reminders for appointments starting within Lead.
type ReminderWorker struct {
	service  Service
	log      *zap.Logger
	interval time.Duration
	lead     time.Duration
}

type ReminderConfig struct {
	Interval time.Duration
	Lead     time.Duration
}

func NewReminderWorker(service Service, log *zap.Logger, cfg ReminderConfig) *ReminderWorker {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.Lead <= 0 {
		cfg.Lead = 24 * time.Hour
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ReminderWorker{service: service, log: log, interval: cfg.Interval, lead: cfg.Lead}
}

// Run blocks until ctx is done.
func (w *ReminderWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *ReminderWorker) tick(ctx context.Context) {
	sent, err := w.service.SendReminders(ctx, w.lead)
	if err != nil {
		w.log.Error("reminder batch failed", zap.Error(err))
		return
	}
	if sent > 0 {
		w.log.Info("reminders sent", zap.Int("count", sent))
	}
}
