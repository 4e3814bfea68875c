package ledger

import (
	"iter"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/umaralireal1/qisst2026/internal/calendar"
	"github.com/umaralireal1/qisst2026/internal/models"
)

// StatementEntry is one day of a member's statement.
type StatementEntry struct {
	Date   calendar.Date
	Status models.PaymentStatus
	Amount decimal.Decimal

	// Recorded is false for days with no attendance record (reported as UNPAID, 0).
	Recorded bool
}

// Statement yields one entry per day from the circle's start date through today,
// most recent first. The sequence is recomputed on every range and is empty when
// neither the circle nor the member carries a date.
func Statement(member models.Member, circle models.Circle, ix *Index, today calendar.Date) iter.Seq[StatementEntry] {
	start := anchorDate(member, circle)
	return func(yield func(StatementEntry) bool) {
		if start.IsZero() {
			return
		}
		for day := range calendar.DaysDescending(start, today) {
			entry := StatementEntry{Date: day, Status: models.StatusUnpaid, Amount: decimal.Zero}
			key := models.AttendanceKey{MemberID: member.ID, CircleID: member.CircleID, Date: day}
			if rec, ok := ix.Record(key); ok {
				entry.Status = rec.Status
				entry.Amount = rec.AmountPaid
				entry.Recorded = true
			}
			if !yield(entry) {
				return
			}
		}
	}
}

// FilterStatement keeps entries whose YYYY-MM-DD date contains query.
// An empty query keeps everything.
func FilterStatement(entries iter.Seq[StatementEntry], query string) iter.Seq[StatementEntry] {
	query = strings.TrimSpace(query)
	return func(yield func(StatementEntry) bool) {
		for entry := range entries {
			if query != "" && !strings.Contains(entry.Date.String(), query) {
				continue
			}
			if !yield(entry) {
				return
			}
		}
	}
}
