package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/umaralireal1/qisst2026/internal/calendar"
	"github.com/umaralireal1/qisst2026/internal/ledger"
	"github.com/umaralireal1/qisst2026/internal/models"
)

type staticSource struct {
	snap  models.Snapshot
	today calendar.Date
}

func (s staticSource) Snapshot() models.Snapshot { return s.snap }
func (s staticSource) Today() calendar.Date      { return s.today }

type recordingNotifier struct {
	calls  int
	alerts []ledger.CycleStatus
	err    error
}

func (r *recordingNotifier) NotifyAlerts(_ context.Context, _ calendar.Date, alerts []ledger.CycleStatus) error {
	r.calls++
	r.alerts = alerts
	return r.err
}

func TestRunOnce(t *testing.T) {
	today := calendar.MustParse("2024-03-01")
	source := staticSource{
		today: today,
		snap: models.Snapshot{Circles: []models.Circle{
			{ID: "near", Name: "Bazaar", StartDate: today.AddDays(-25)},
			{ID: "quiet", Name: "Office", StartDate: today.AddDays(-3)},
		}},
	}

	tests := []struct {
		name      string
		source    staticSource
		notifyErr error
		wantCalls int
		wantErr   bool
	}{
		{name: "alert delivered", source: source, wantCalls: 1},
		{name: "nothing to say", source: staticSource{today: today}, wantCalls: 0},
		{name: "delivery failure", source: source, notifyErr: errors.New("offline"), wantCalls: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &recordingNotifier{err: tt.notifyErr}
			s, err := New("0 9 * * *", time.UTC, tt.source, n)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}

			alerts, err := s.RunOnce(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("RunOnce() error = %v, wantErr %v", err, tt.wantErr)
			}
			if n.calls != tt.wantCalls {
				t.Errorf("notifier calls = %d, want %d", n.calls, tt.wantCalls)
			}
			if tt.wantCalls > 0 && (len(alerts) != 1 || alerts[0].CircleID != "near" || alerts[0].DaysRemaining != 5) {
				t.Errorf("unexpected alerts %+v", alerts)
			}
		})
	}
}

func TestNewRejectsBadSchedule(t *testing.T) {
	if _, err := New("every morning", time.UTC, staticSource{}, &recordingNotifier{}); err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
}

func TestStartStop(t *testing.T) {
	s, err := New("*/5 * * * *", nil, staticSource{}, &recordingNotifier{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	s.Stop()
}
