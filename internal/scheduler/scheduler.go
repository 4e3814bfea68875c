// Package scheduler runs the daily cycle-alert sweep.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/umaralireal1/qisst2026/internal/calendar"
	"github.com/umaralireal1/qisst2026/internal/ledger"
	"github.com/umaralireal1/qisst2026/internal/metrics"
	"github.com/umaralireal1/qisst2026/internal/models"
	"github.com/umaralireal1/qisst2026/internal/notify"
)

// Source provides the data a sweep evaluates. *book.Book satisfies it.
type Source interface {
	Snapshot() models.Snapshot
	Today() calendar.Date
}

// AlertScheduler evaluates cycle alerts on a cron schedule and hands them to a notifier.
type AlertScheduler struct {
	cronEngine *cron.Cron
	spec       string
	source     Source
	notifier   notify.Notifier
	timeout    time.Duration
}

// New validates spec (standard five-field cron) and returns a stopped scheduler.
func New(spec string, loc *time.Location, source Source, notifier notify.Notifier) (*AlertScheduler, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid alert schedule %q: %w", spec, err)
	}
	if loc == nil {
		loc = time.Local
	}
	return &AlertScheduler{
		cronEngine: cron.New(cron.WithLocation(loc)),
		spec:       spec,
		source:     source,
		notifier:   notifier,
		timeout:    time.Minute,
	}, nil
}

// Start registers the sweep and starts the cron engine.
func (s *AlertScheduler) Start() error {
	_, err := s.cronEngine.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if _, err := s.RunOnce(ctx); err != nil {
			slog.Error("Cycle alert sweep failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule alert sweep: %w", err)
	}
	s.cronEngine.Start()
	slog.Info("Alert scheduler started", "schedule", s.spec)
	return nil
}

// Stop halts the engine and waits for a running sweep to finish.
func (s *AlertScheduler) Stop() {
	<-s.cronEngine.Stop().Done()
	slog.Info("Alert scheduler stopped")
}

// RunOnce evaluates today's alerts and notifies if any are raised.
func (s *AlertScheduler) RunOnce(ctx context.Context) ([]ledger.CycleStatus, error) {
	today := s.source.Today()
	alerts := ledger.CycleAlerts(s.source.Snapshot().Circles, today)
	if len(alerts) == 0 {
		slog.Debug("No cycle alerts", "date", today.String())
		return nil, nil
	}

	metrics.CycleAlerts.Add(float64(len(alerts)))
	if err := s.notifier.NotifyAlerts(ctx, today, alerts); err != nil {
		return alerts, fmt.Errorf("failed to deliver %d alert(s): %w", len(alerts), err)
	}
	slog.Info("Cycle alerts delivered", "date", today.String(), "count", len(alerts))
	return alerts, nil
}
