// Package notify delivers cycle alerts to the operator.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/umaralireal1/qisst2026/internal/calendar"
	"github.com/umaralireal1/qisst2026/internal/ledger"
)

// Notifier receives the alerts raised on a given day.
type Notifier interface {
	NotifyAlerts(ctx context.Context, today calendar.Date, alerts []ledger.CycleStatus) error
}

// LogNotifier writes each alert as a structured log line.
type LogNotifier struct{}

func (LogNotifier) NotifyAlerts(_ context.Context, today calendar.Date, alerts []ledger.CycleStatus) error {
	for _, a := range alerts {
		slog.Warn("Cycle alert",
			"date", today.String(),
			"circle_id", a.CircleID,
			"circle", a.CircleName,
			"cycle", a.CycleNumber,
			"day_in_cycle", a.DayInCycle,
			"days_remaining", a.DaysRemaining,
		)
	}
	return nil
}

// Multi fans alerts out to every notifier and collects their failures.
type Multi []Notifier

func (m Multi) NotifyAlerts(ctx context.Context, today calendar.Date, alerts []ledger.CycleStatus) error {
	var result *multierror.Error
	for _, n := range m {
		if err := n.NotifyAlerts(ctx, today, alerts); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// FormatAlerts renders alerts as a short plain-text message.
func FormatAlerts(today calendar.Date, alerts []ledger.CycleStatus) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Qisst cycle alerts for %s\n", today)
	for _, a := range alerts {
		switch {
		case a.DayInCycle == 0 && a.CycleNumber == 1:
			fmt.Fprintf(&b, "• %s: cycle 1 starts today\n", a.CircleName)
		case a.DayInCycle == 0:
			fmt.Fprintf(&b, "• %s: cycle %d starts today, draw for cycle %d is due\n", a.CircleName, a.CycleNumber, a.CycleNumber-1)
		default:
			fmt.Fprintf(&b, "• %s: cycle %d ends in %d day(s)\n", a.CircleName, a.CycleNumber, a.DaysRemaining)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
