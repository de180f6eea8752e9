package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ReminderWorker periodically creates vaccine reminders and purges expired
// sessions.
type ReminderWorker struct {
	log           *zap.Logger
	notifications *NotificationService
	auth          *AuthService
	interval      time.Duration
	onCreated     func(n int)
}

// NewReminderWorker creates a worker that runs every interval. onCreated,
// if set, is called with the number of reminders each run creates.
func NewReminderWorker(log *zap.Logger, notifications *NotificationService, auth *AuthService, interval time.Duration, onCreated func(n int)) *ReminderWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &ReminderWorker{
		log:           log,
		notifications: notifications,
		auth:          auth,
		interval:      interval,
		onCreated:     onCreated,
	}
}

// Run executes once immediately and then on every tick until ctx is done.
func (w *ReminderWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.RunOnce(ctx)
	for {
		select {
		case <-ticker.C:
			w.RunOnce(ctx)
		case <-ctx.Done():
			w.log.Info("reminder worker stopped")
			return
		}
	}
}

// Start runs the worker in its own goroutine. The returned stop function
// cancels it and blocks until the current pass has finished.
func (w *ReminderWorker) Start(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx)
	}()
	return func() {
		cancel()
		<-done
	}
}

// RunOnce performs a single pass. Failures are logged, not returned.
func (w *ReminderWorker) RunOnce(ctx context.Context) {
	n, err := w.notifications.GenerateReminders(ctx)
	if err != nil {
		w.log.Error("failed to generate reminders", zap.Error(err), zap.Int("created", n))
	}
	if n > 0 {
		w.log.Info("vaccine reminders created", zap.Int("count", n))
		if w.onCreated != nil {
			w.onCreated(n)
		}
	}

	if w.auth == nil {
		return
	}
	purged, err := w.auth.PurgeExpiredSessions(ctx)
	if err != nil {
		w.log.Error("failed to purge sessions", zap.Error(err))
		return
	}
	if purged > 0 {
		w.log.Debug("expired sessions purged", zap.Int64("count", purged))
	}
}
