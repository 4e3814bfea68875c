package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gopkg.in/telebot.v3"

	"github.com/umaralireal1/qisst2026/internal/calendar"
	"github.com/umaralireal1/qisst2026/internal/ledger"
)

type fakeSender struct {
	to   telebot.Recipient
	text string
	err  error
}

func (f *fakeSender) Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error) {
	f.to = to
	f.text, _ = what.(string)
	return &telebot.Message{}, f.err
}

type failingNotifier struct{ err error }

func (f failingNotifier) NotifyAlerts(context.Context, calendar.Date, []ledger.CycleStatus) error {
	return f.err
}

var sampleAlerts = []ledger.CycleStatus{
	{CircleID: "c1", CircleName: "Bazaar", DayInCycle: 25, CycleNumber: 1, DaysRemaining: 5, Alert: true},
	{CircleID: "c2", CircleName: "Office", DayInCycle: 0, CycleNumber: 3, DaysRemaining: 30, Alert: true},
	{CircleID: "c3", CircleName: "New", DayInCycle: 0, CycleNumber: 1, DaysRemaining: 30, Alert: true},
}

func TestFormatAlerts(t *testing.T) {
	msg := FormatAlerts(calendar.MustParse("2024-01-26"), sampleAlerts)

	for _, want := range []string{
		"2024-01-26",
		"Bazaar: cycle 1 ends in 5 day(s)",
		"Office: cycle 3 starts today, draw for cycle 2 is due",
		"New: cycle 1 starts today",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
	if strings.HasSuffix(msg, "\n") {
		t.Error("message has trailing newline")
	}
}

func TestTelegramNotifier(t *testing.T) {
	sender := &fakeSender{}
	n := NewTelegramNotifierWithSender(sender, 4242)

	if err := n.NotifyAlerts(context.Background(), calendar.MustParse("2024-01-26"), nil); err != nil {
		t.Fatalf("empty alerts: %v", err)
	}
	if sender.to != nil {
		t.Fatal("sent a message for no alerts")
	}

	if err := n.NotifyAlerts(context.Background(), calendar.MustParse("2024-01-26"), sampleAlerts); err != nil {
		t.Fatalf("NotifyAlerts failed: %v", err)
	}
	if sender.to.Recipient() != "4242" {
		t.Errorf("recipient = %q, want 4242", sender.to.Recipient())
	}
	if !strings.Contains(sender.text, "Bazaar") {
		t.Errorf("unexpected text %q", sender.text)
	}

	sender.err = errors.New("blocked by user")
	if err := n.NotifyAlerts(context.Background(), calendar.MustParse("2024-01-26"), sampleAlerts); err == nil {
		t.Fatal("expected send error")
	}
}

func TestMultiCollectsFailures(t *testing.T) {
	m := Multi{
		LogNotifier{},
		failingNotifier{err: errors.New("first")},
		failingNotifier{err: errors.New("second")},
	}
	err := m.NotifyAlerts(context.Background(), calendar.MustParse("2024-01-26"), sampleAlerts)
	if err == nil {
		t.Fatal("expected aggregated error")
	}
	if !strings.Contains(err.Error(), "first") || !strings.Contains(err.Error(), "second") {
		t.Errorf("error %q does not mention both failures", err)
	}

	if err := (Multi{LogNotifier{}}).NotifyAlerts(context.Background(), calendar.MustParse("2024-01-26"), sampleAlerts); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}
